package plagiarism

// FragmentPair is one matching fragment from each of two texts. Under the
// equal metric both members are the same string.
type FragmentPair struct {
	A string `json:"fragment_a"`
	B string `json:"fragment_b"`
}

// LocationPair holds where each member of a FragmentPair occurs in its
// owning text.
type LocationPair struct {
	A []FragmentLocation `json:"locations_a"`
	B []FragmentLocation `json:"locations_b"`
}

// PlagiarismResult reports the overlap found between two owners. Index i of
// MatchingFragments corresponds to index i of MatchingFragmentsLocations.
// Location slices are copies, so a result stays valid after the store
// overwrites either owner's entry.
type PlagiarismResult struct {
	Owner1                     OwnerID        `json:"owner_id1"`
	Owner2                     OwnerID        `json:"owner_id2"`
	MatchingFragments          []FragmentPair `json:"matching_fragments"`
	MatchingFragmentsLocations []LocationPair `json:"matching_fragments_locations"`
	// TrustedOwner1 is true when Owner1 comes from the trusted partition.
	TrustedOwner1 bool `json:"trusted_owner1"`
	// EqualFragments is true when the equal metric produced this result,
	// meaning both members of every pair are identical strings.
	EqualFragments bool `json:"equal_fragments"`
}
