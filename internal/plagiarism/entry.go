package plagiarism

import "plagiarism_checker/internal/textutil"

// OwnerID identifies one submission or source text.
type OwnerID string

// FragmentLocation is a half-open [Start, End) word-index interval into the
// owner's normalized word sequence. End-Start always equals the configured
// n-gram size.
type FragmentLocation struct {
	Start int `json:"start"`
	End   int `json:"end"`
}

// TextEntry is one owner's text broken into fragments. It is built once at
// insertion time and never mutated afterwards; Locations has exactly the
// same keys as Fragments, each list ordered by increasing Start.
type TextEntry struct {
	Owner     OwnerID
	Words     []string
	Fragments map[string]struct{}
	Locations map[string][]FragmentLocation
}

func newTextEntry(owner OwnerID, raw string, n int) *TextEntry {
	words := textutil.Normalize(raw)
	fragments, locations := indexFragments(words, n)
	return &TextEntry{
		Owner:     owner,
		Words:     words,
		Fragments: fragments,
		Locations: locations,
	}
}

// indexFragments builds the fragment set and the fragment-to-locations map
// in a single pass over the n-gram sequence; position information is not
// recoverable from the set alone. Fewer than n words yields empty results,
// not an error.
func indexFragments(words []string, n int) (map[string]struct{}, map[string][]FragmentLocation) {
	grams := textutil.NGrams(words, n)
	fragments := make(map[string]struct{}, len(grams))
	locations := make(map[string][]FragmentLocation, len(grams))
	for start, gram := range grams {
		fragments[gram] = struct{}{}
		locations[gram] = append(locations[gram], FragmentLocation{Start: start, End: start + n})
	}
	return fragments, locations
}
