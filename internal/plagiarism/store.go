// Package plagiarism detects textual overlap between submissions by breaking
// each text into overlapping word n-grams and comparing fragment sets
// pairwise.
package plagiarism

import (
	"context"
	"errors"
	"fmt"
	"runtime"
	"slices"
	"strings"
	"sync"

	"plagiarism_checker/internal/similarity"
)

// ErrInconsistentIndex reports a fragment that matched but has no recorded
// locations. It can only come from an internal bug, never from user input.
var ErrInconsistentIndex = errors.New("fragment index inconsistent")

// Database stores the trusted and untrusted corpora and runs plagiarism
// checks over them. The n-gram size, cutoff and metric are fixed at
// construction. Insertion and queries may run concurrently; queries never
// mutate stored entries.
type Database struct {
	mu      sync.RWMutex
	n       int
	s       int
	metric  similarity.Metric
	workers int

	trusted   map[OwnerID]*TextEntry
	untrusted map[OwnerID]*TextEntry
}

// New builds an empty database. n is the fragment length in words, s the
// metric-specific cutoff.
func New(n, s int, metric similarity.Metric) (*Database, error) {
	if n < 1 {
		return nil, fmt.Errorf("fragment length must be at least 1, got %d", n)
	}
	return &Database{
		n:         n,
		s:         s,
		metric:    metric,
		trusted:   make(map[OwnerID]*TextEntry),
		untrusted: make(map[OwnerID]*TextEntry),
	}, nil
}

// SetWorkers bounds the comparison worker pool. Zero or negative selects
// runtime.NumCPU.
func (db *Database) SetWorkers(w int) {
	db.mu.Lock()
	db.workers = w
	db.mu.Unlock()
}

// AddTrustedText normalizes and indexes raw text as reference material under
// the given owner, replacing any prior entry for that owner.
func (db *Database) AddTrustedText(owner OwnerID, raw string) {
	entry := newTextEntry(owner, raw, db.n)
	db.mu.Lock()
	db.trusted[owner] = entry
	db.mu.Unlock()
}

// AddUntrustedText normalizes and indexes raw text as material to be
// screened, replacing any prior entry for that owner.
func (db *Database) AddUntrustedText(owner OwnerID, raw string) {
	entry := newTextEntry(owner, raw, db.n)
	db.mu.Lock()
	db.untrusted[owner] = entry
	db.mu.Unlock()
}

// AllNormalizedText merges both partitions into one owner-to-words map.
// When an owner id exists in both partitions the untrusted words win, since
// that entry is the artifact under scrutiny. Returned slices are copies.
func (db *Database) AllNormalizedText() map[OwnerID][]string {
	db.mu.RLock()
	defer db.mu.RUnlock()

	out := make(map[OwnerID][]string, len(db.trusted)+len(db.untrusted))
	for owner, entry := range db.trusted {
		out[owner] = slices.Clone(entry.Words)
	}
	for owner, entry := range db.untrusted {
		out[owner] = slices.Clone(entry.Words)
	}
	return out
}

// CheckUntrustedPlagiarism compares every unordered pair of distinct owners
// within the untrusted partition exactly once. Results come back sorted by
// owner pair. If ctx is cancelled the comparisons finished so far are
// returned together with the context error.
func (db *Database) CheckUntrustedPlagiarism(ctx context.Context) ([]PlagiarismResult, error) {
	db.mu.RLock()
	defer db.mu.RUnlock()

	owners := sortedOwners(db.untrusted)
	var pairs []ownerPair
	for i, a := range owners {
		for _, b := range owners[i+1:] {
			pairs = append(pairs, ownerPair{a: a, b: b})
		}
	}
	return db.comparePairs(ctx, pairs, false)
}

// CheckTrustedPlagiarism compares every trusted owner against every
// untrusted owner. Results come back sorted by owner pair; partial results
// plus the context error are returned on cancellation.
func (db *Database) CheckTrustedPlagiarism(ctx context.Context) ([]PlagiarismResult, error) {
	db.mu.RLock()
	defer db.mu.RUnlock()

	trusted := sortedOwners(db.trusted)
	untrusted := sortedOwners(db.untrusted)
	var pairs []ownerPair
	for _, a := range trusted {
		for _, b := range untrusted {
			pairs = append(pairs, ownerPair{a: a, b: b})
		}
	}
	return db.comparePairs(ctx, pairs, true)
}

type ownerPair struct {
	a, b OwnerID
}

// comparePairs fans the pair list out across a bounded worker pool. Each
// comparison reads disjoint immutable entries, so workers share the caller's
// read lock. Cancellation stops feeding new pairs; in-flight comparisons
// drain before returning.
func (db *Database) comparePairs(ctx context.Context, pairs []ownerPair, trustedFirst bool) ([]PlagiarismResult, error) {
	if len(pairs) == 0 {
		return nil, nil
	}

	workers := db.workers
	if workers <= 0 {
		workers = runtime.NumCPU()
	}
	if workers > len(pairs) {
		workers = len(pairs)
	}

	type outcome struct {
		result *PlagiarismResult
		err    error
	}
	jobs := make(chan ownerPair)
	out := make(chan outcome, len(pairs))
	var wg sync.WaitGroup

	for i := 0; i < workers; i++ {
		wg.Add(1)
		go func() {
			defer wg.Done()
			for p := range jobs {
				result, err := db.comparePair(p, trustedFirst)
				if err != nil {
					out <- outcome{err: err}
					continue
				}
				if result != nil {
					out <- outcome{result: result}
				}
			}
		}()
	}

feed:
	for _, p := range pairs {
		select {
		case jobs <- p:
		case <-ctx.Done():
			break feed
		}
	}
	close(jobs)
	wg.Wait()
	close(out)

	var results []PlagiarismResult
	var firstErr error
	for o := range out {
		if o.err != nil {
			if firstErr == nil {
				firstErr = o.err
			}
			continue
		}
		results = append(results, *o.result)
	}
	if firstErr != nil {
		return nil, firstErr
	}

	slices.SortFunc(results, func(a, b PlagiarismResult) int {
		if c := strings.Compare(string(a.Owner1), string(b.Owner1)); c != 0 {
			return c
		}
		return strings.Compare(string(a.Owner2), string(b.Owner2))
	})
	return results, ctx.Err()
}

// comparePair runs the matching engine for one owner pair and, when matches
// exist, resolves every fragment back to its source locations. A nil result
// with nil error means no evidence for this pair.
func (db *Database) comparePair(p ownerPair, trustedFirst bool) (*PlagiarismResult, error) {
	source := db.untrusted[p.a]
	if trustedFirst {
		source = db.trusted[p.a]
	}
	against := db.untrusted[p.b]

	matches := matchFragments(source, against, db.metric, db.s)
	if len(matches) == 0 {
		return nil, nil
	}

	locations := make([]LocationPair, len(matches))
	for i, m := range matches {
		la, ok := source.Locations[m.A]
		if !ok {
			return nil, fmt.Errorf("%w: %q missing for owner %s", ErrInconsistentIndex, m.A, source.Owner)
		}
		lb, ok := against.Locations[m.B]
		if !ok {
			return nil, fmt.Errorf("%w: %q missing for owner %s", ErrInconsistentIndex, m.B, against.Owner)
		}
		locations[i] = LocationPair{A: slices.Clone(la), B: slices.Clone(lb)}
	}

	return &PlagiarismResult{
		Owner1:                     p.a,
		Owner2:                     p.b,
		MatchingFragments:          matches,
		MatchingFragmentsLocations: locations,
		TrustedOwner1:              trustedFirst,
		EqualFragments:             db.metric == similarity.Equal,
	}, nil
}

func sortedOwners(partition map[OwnerID]*TextEntry) []OwnerID {
	owners := make([]OwnerID, 0, len(partition))
	for owner := range partition {
		owners = append(owners, owner)
	}
	slices.Sort(owners)
	return owners
}
