package search

import (
	"time"

	"github.com/k4lab/go-cipher-search/model"
)

// Outcome carries the scored survivors of one search run. Results hold
// assignments and scores only; plaintexts and ledgers are attached by the
// reporter, which owns presentation.
type Outcome struct {
	Results         []model.RankedResult
	Status          model.RunStatus
	GridSize        int64
	TrialsEvaluated int64
	TrialsByFamily  map[model.FormulaFamily]int64
	Elapsed         time.Duration
	Warnings        []string
}

// ProgressFunc receives the running trial count and the grid total after
// every evaluated trial. Callers that report progress less often than per
// trial do their own throttling.
type ProgressFunc func(done, total int64)
