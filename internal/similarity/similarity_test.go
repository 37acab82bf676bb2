package similarity

import "testing"

func TestEqualMetric(t *testing.T) {
	if !Similar("one two", "one two", Equal, 0) {
		t.Fatal("identical fragments should match under equal")
	}
	if Similar("one two", "one too", Equal, 0) {
		t.Fatal("different fragments should not match under equal")
	}
}

func TestLevenshteinDistance(t *testing.T) {
	cases := []struct {
		a, b string
		want int
	}{
		{"", "", 0},
		{"abc", "", 3},
		{"", "abc", 3},
		{"kitten", "sitting", 3},
		{"flaw", "lawn", 2},
		{"same", "same", 0},
	}
	for _, c := range cases {
		if got := levenshtein(c.a, c.b); got != c.want {
			t.Fatalf("levenshtein(%q, %q) = %d, want %d", c.a, c.b, got, c.want)
		}
	}
}

// The cutoff is inclusive: a pair at exactly the cutoff distance matches,
// one edit further does not.
func TestLevenshteinBoundary(t *testing.T) {
	// kitten -> sitting is distance 3
	if !Similar("kitten", "sitting", Levenshtein, 3) {
		t.Fatal("distance equal to cutoff must match")
	}
	if Similar("kitten", "sitting", Levenshtein, 2) {
		t.Fatal("distance one past cutoff must not match")
	}
	// Fixed cutoff of 1: one edit matches, two edits do not.
	if !Similar("abc", "abd", Levenshtein, 1) {
		t.Fatal("distance 1 must match at cutoff 1")
	}
	if Similar("abc", "add", Levenshtein, 1) {
		t.Fatal("distance 2 must not match at cutoff 1")
	}
}

func TestWordOverlapBoundary(t *testing.T) {
	// "a b c d" vs "a b x y": 2 shared of 4 -> 50
	if !Similar("a b c d", "a b x y", WordOverlap, 50) {
		t.Fatal("ratio equal to cutoff must match")
	}
	if Similar("a b c d", "a b x y", WordOverlap, 51) {
		t.Fatal("ratio below cutoff must not match")
	}
	if !Similar("a b", "b a", WordOverlap, 100) {
		t.Fatal("full overlap regardless of order must score 100")
	}
	if Similar("", "a b", WordOverlap, 1) {
		t.Fatal("empty fragment shares nothing")
	}
}

func TestParseMetric(t *testing.T) {
	for _, name := range []string{"equal", "lev", "levenshtein", "overlap", "wordoverlap"} {
		if _, err := ParseMetric(name); err != nil {
			t.Fatalf("ParseMetric(%q) failed: %v", name, err)
		}
	}
	if _, err := ParseMetric("cosine"); err == nil {
		t.Fatal("expected error for unknown metric")
	}
	m, err := ParseMetric("lev")
	if err != nil {
		t.Fatalf("ParseMetric(lev): %v", err)
	}
	if m.String() != "lev" {
		t.Fatalf("String() = %q, want lev", m.String())
	}
}
