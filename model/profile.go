package model

// Repeat records one repeated substring and where it occurs. Deltas are the
// pairwise distances between occurrence start positions, the raw material for
// period hypotheses.
type Repeat struct {
	Substring string `json:"substring"`
	Positions []int  `json:"positions"`
	Deltas    []int  `json:"deltas"`
}

// KeyLengthCandidate ranks a possible key period by how many repeat deltas it
// divides.
type KeyLengthCandidate struct {
	Length int `json:"length"`
	Votes  int `json:"votes"`
}

// ProfileReport is the statistical characterization of a ciphertext. It is
// advisory: search may use it to narrow bounds, but it never asserts ground
// truth about the plaintext.
type ProfileReport struct {
	Length              int                  `json:"length"`
	Frequencies         [26]int              `json:"frequencies"`
	RelativeFrequencies [26]float64          `json:"relative_frequencies"`
	IC                  float64              `json:"index_of_coincidence"`
	Entropy             float64              `json:"entropy_bits"`
	ChiSquared          float64              `json:"chi_squared"`
	Repeats             []Repeat             `json:"repeats,omitempty"`
	KeyLengthCandidates []KeyLengthCandidate `json:"key_length_candidates,omitempty"`
}
