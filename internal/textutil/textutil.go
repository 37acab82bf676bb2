package textutil

import (
	"strings"
	"unicode"
)

// Normalize lowercases text and splits it into word tokens, dropping
// punctuation. The same input always yields the same token sequence.
func Normalize(text string) []string {
	var b strings.Builder
	b.Grow(len(text))
	prevSpace := true
	for _, r := range strings.ToLower(text) {
		if unicode.IsLetter(r) || unicode.IsDigit(r) || r == '\'' {
			b.WriteRune(r)
			prevSpace = false
		} else if !prevSpace {
			b.WriteRune(' ')
			prevSpace = true
		}
	}
	return strings.Fields(b.String())
}

// NGrams joins every window of n consecutive words into a single
// space-separated fragment string. Element i is the window starting at word
// index i; the result has max(0, len(words)-n+1) elements.
func NGrams(words []string, n int) []string {
	if n <= 0 || len(words) < n {
		return nil
	}
	out := make([]string, 0, len(words)-n+1)
	for i := 0; i+n <= len(words); i++ {
		out = append(out, strings.Join(words[i:i+n], " "))
	}
	return out
}
