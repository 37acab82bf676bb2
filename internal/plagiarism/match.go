package plagiarism

import (
	"slices"
	"strings"

	"plagiarism_checker/internal/similarity"
)

// matchFragments returns every matching fragment pair between two entries
// under the given metric, in a deterministic order. An empty result means no
// plagiarism evidence for this pair.
func matchFragments(source, against *TextEntry, metric similarity.Metric, cutoff int) []FragmentPair {
	if metric == similarity.Equal {
		return matchEqual(source, against)
	}
	return matchSimilar(source, against, metric, cutoff)
}

// matchEqual intersects the two fragment sets, iterating the smaller one.
func matchEqual(source, against *TextEntry) []FragmentPair {
	small, large := source.Fragments, against.Fragments
	if len(large) < len(small) {
		small, large = large, small
	}
	var pairs []FragmentPair
	for f := range small {
		if _, ok := large[f]; ok {
			pairs = append(pairs, FragmentPair{A: f, B: f})
		}
	}
	slices.SortFunc(pairs, comparePairsLex)
	return pairs
}

// matchSimilar runs the full double loop, consulting the similarity oracle
// for every cross pair. This is O(|source|*|against|) and the dominant cost
// of the whole system. Nothing is deduplicated: one source fragment may
// match many against fragments and vice versa.
func matchSimilar(source, against *TextEntry, metric similarity.Metric, cutoff int) []FragmentPair {
	sourceFrags := sortedFragments(source.Fragments)
	againstFrags := sortedFragments(against.Fragments)

	var pairs []FragmentPair
	for _, fa := range sourceFrags {
		for _, fb := range againstFrags {
			if similarity.Similar(fa, fb, metric, cutoff) {
				pairs = append(pairs, FragmentPair{A: fa, B: fb})
			}
		}
	}
	return pairs
}

func comparePairsLex(a, b FragmentPair) int {
	if c := strings.Compare(a.A, b.A); c != 0 {
		return c
	}
	return strings.Compare(a.B, b.B)
}

func sortedFragments(set map[string]struct{}) []string {
	out := make([]string, 0, len(set))
	for f := range set {
		out = append(out, f)
	}
	slices.Sort(out)
	return out
}
