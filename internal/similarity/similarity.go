package similarity

import "strings"

// Similar reports whether two fragments count as matching under the given
// metric and cutoff. It is a pure function; the cutoff boundary is inclusive
// for every metric (distance <= cutoff for Levenshtein, ratio*100 >= cutoff
// for WordOverlap).
func Similar(a, b string, m Metric, cutoff int) bool {
	switch m {
	case Equal:
		return a == b
	case Levenshtein:
		return levenshtein(a, b) <= cutoff
	case WordOverlap:
		return overlapPercent(a, b) >= cutoff
	default:
		return false
	}
}

// levenshtein computes the edit distance between two strings using the
// two-row dynamic programming table.
func levenshtein(a, b string) int {
	ra := []rune(a)
	rb := []rune(b)
	if len(ra) == 0 {
		return len(rb)
	}
	if len(rb) == 0 {
		return len(ra)
	}

	prev := make([]int, len(rb)+1)
	curr := make([]int, len(rb)+1)
	for j := range prev {
		prev[j] = j
	}

	for i := 1; i <= len(ra); i++ {
		curr[0] = i
		for j := 1; j <= len(rb); j++ {
			cost := 1
			if ra[i-1] == rb[j-1] {
				cost = 0
			}
			curr[j] = min(prev[j]+1, curr[j-1]+1, prev[j-1]+cost)
		}
		prev, curr = curr, prev
	}
	return prev[len(rb)]
}

// overlapPercent scores two fragments by the words they share, relative to
// the smaller fragment, scaled to 0-100.
func overlapPercent(a, b string) int {
	wa := strings.Fields(a)
	wb := strings.Fields(b)
	if len(wa) == 0 || len(wb) == 0 {
		return 0
	}

	set := make(map[string]struct{}, len(wa))
	for _, w := range wa {
		set[w] = struct{}{}
	}
	shared := 0
	seen := make(map[string]struct{}, len(wb))
	for _, w := range wb {
		if _, dup := seen[w]; dup {
			continue
		}
		seen[w] = struct{}{}
		if _, ok := set[w]; ok {
			shared++
		}
	}

	smaller := len(set)
	if len(seen) < smaller {
		smaller = len(seen)
	}
	return shared * 100 / smaller
}
