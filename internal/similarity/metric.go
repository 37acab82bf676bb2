package similarity

import "fmt"

// Metric selects how two fragments are compared.
type Metric int

const (
	// Equal matches only identical fragment strings.
	Equal Metric = iota
	// Levenshtein matches fragments whose edit distance is at most the
	// cutoff (inclusive).
	Levenshtein
	// WordOverlap matches fragments whose shared-word ratio, scaled to
	// 0-100, is at least the cutoff (inclusive).
	WordOverlap
)

func (m Metric) String() string {
	switch m {
	case Equal:
		return "equal"
	case Levenshtein:
		return "lev"
	case WordOverlap:
		return "overlap"
	default:
		return fmt.Sprintf("metric(%d)", int(m))
	}
}

// ParseMetric maps a CLI/config name to a Metric.
func ParseMetric(name string) (Metric, error) {
	switch name {
	case "equal":
		return Equal, nil
	case "lev", "levenshtein":
		return Levenshtein, nil
	case "overlap", "wordoverlap":
		return WordOverlap, nil
	default:
		return 0, fmt.Errorf("unknown metric %q (want equal, lev or overlap)", name)
	}
}
