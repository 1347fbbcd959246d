package model

import (
	"time"
)

// Provenance labels how a plaintext position was derived.
type Provenance string

const (
	// ProvenanceConstrained marks positions backed by a known plaintext
	// constraint.
	ProvenanceConstrained Provenance = "constrained"

	// ProvenanceExtrapolated marks positions whose plaintext comes only from
	// the unverified base formula. Extrapolated rows are never validated.
	ProvenanceExtrapolated Provenance = "extrapolated"
)

// LedgerRow is the audit record for a single position of a candidate
// plaintext. Matched may only be true on constrained rows; an extrapolated
// row always reports false regardless of how plausible its symbol looks.
type LedgerRow struct {
	Position     int        `json:"position"`
	CipherSymbol string     `json:"cipher_symbol"`
	PlainSymbol  string     `json:"plain_symbol"`
	BaseShift    int        `json:"base_shift"`
	Correction   int        `json:"correction"`
	TotalShift   int        `json:"total_shift"`
	Provenance   Provenance `json:"provenance"`
	Matched      bool       `json:"matched"`
}

// RunStatus summarizes the evidentiary outcome of a search run.
type RunStatus string

const (
	// RunStatusOK means a unique leader satisfied at least one constraint
	// without corrections.
	RunStatusOK RunStatus = "ok"

	// RunStatusNoDiscriminatingModel means no parameter set satisfied a
	// single constraint unaided; attached results are evidence-free.
	RunStatusNoDiscriminatingModel RunStatus = "no_discriminating_model"

	// RunStatusAmbiguousTie means several parameter sets tied on every
	// ranking criterion; all co-leaders are reported, none is chosen.
	RunStatusAmbiguousTie RunStatus = "ambiguous_tie"
)

// RankedResult is one retained candidate with its full audit trail.
type RankedResult struct {
	Rank        int                 `json:"rank"`
	Assignment  CandidateAssignment `json:"assignment"`
	Score       Score               `json:"score"`
	Plaintext   string              `json:"plaintext"`
	Ledger      []LedgerRow         `json:"ledger,omitempty"`
	Annotations []string            `json:"annotations,omitempty"`
}

// ScreenApplication records one plausibility screen firing on one result.
type ScreenApplication struct {
	ScreenName string `json:"screen_name"`
	Rank       int    `json:"rank"`
	Note       string `json:"note"`
}

// SolutionRecord is the versioned, self-describing output of one search run.
// Records are immutable once archived; a new run produces a new record
// rather than overwriting an earlier claim.
type SolutionRecord struct {
	ID              string              `json:"id"`
	CaseName        string              `json:"case_name"`
	CreatedAt       time.Time           `json:"created_at"`
	Status          RunStatus           `json:"status"`
	TrialsEvaluated int64               `json:"trials_evaluated"`
	GridSize        int64               `json:"grid_size"`
	Elapsed         time.Duration       `json:"elapsed_ns"`
	Results         []RankedResult      `json:"results"`
	Screens         []ScreenApplication `json:"screens,omitempty"`
	Warnings        []string            `json:"warnings,omitempty"`
}

// Best returns the rank-1 result, or nil when the run retained nothing.
func (r *SolutionRecord) Best() *RankedResult {
	if r == nil || len(r.Results) == 0 {
		return nil
	}
	return &r.Results[0]
}

// RunSummary is the listing view of a solution record, cheap enough to return
// in bulk.
type RunSummary struct {
	ID          string    `json:"id"`
	CaseName    string    `json:"case_name"`
	CreatedAt   time.Time `json:"created_at"`
	Status      RunStatus `json:"status"`
	BestScore   *Score    `json:"best_score,omitempty"`
	ResultCount int       `json:"result_count"`
}

// Summary derives the listing view of the record.
func (r *SolutionRecord) Summary() RunSummary {
	s := RunSummary{
		ID:          r.ID,
		CaseName:    r.CaseName,
		CreatedAt:   r.CreatedAt,
		Status:      r.Status,
		ResultCount: len(r.Results),
	}
	if best := r.Best(); best != nil {
		score := best.Score
		s.BestScore = &score
	}
	return s
}
