package engine

import (
	"context"
	"fmt"

	"github.com/k4lab/go-cipher-search/cipher"
	"github.com/k4lab/go-cipher-search/config"
	"github.com/k4lab/go-cipher-search/constraints"
	"github.com/k4lab/go-cipher-search/internal/formula"
	"github.com/k4lab/go-cipher-search/internal/metrics"
	"github.com/k4lab/go-cipher-search/internal/profile"
	"github.com/k4lab/go-cipher-search/internal/report"
	"github.com/k4lab/go-cipher-search/internal/search"
	"github.com/k4lab/go-cipher-search/model"
	"github.com/k4lab/go-cipher-search/store"
)

// CaseInstance holds all components and services for a single cipher case.
// It implements the services.CaseAccessor interface.
type CaseInstance struct {
	config      *config.CaseConfig
	text        cipher.Text
	set         *constraints.Set
	RunStore    *store.RunStore
	searcher    *search.Service
	instruments *metrics.Metrics
}

// NewCaseInstance creates and initializes a new CaseInstance. The
// configuration must already have defaults applied and be validated; parsing
// the ciphertext and placing the anchors can still fail here, and those
// failures carry the domain error types.
func NewCaseInstance(cfg config.CaseConfig) (*CaseInstance, error) {
	if cfg.Name == "" {
		return nil, fmt.Errorf("case name cannot be empty")
	}

	text, err := cipher.ParseText(cfg.Ciphertext)
	if err != nil {
		return nil, fmt.Errorf("parsing ciphertext for case '%s': %w", cfg.Name, err)
	}

	set, err := constraints.Build(text, cfg.Anchors)
	if err != nil {
		return nil, fmt.Errorf("placing anchors for case '%s': %w", cfg.Name, err)
	}

	searcher, err := search.NewService(text, set, &cfg.Settings)
	if err != nil {
		return nil, fmt.Errorf("creating search service for case '%s': %w", cfg.Name, err)
	}

	return &CaseInstance{
		config:   &cfg,
		text:     text,
		set:      set,
		RunStore: store.NewRunStore(),
		searcher: searcher,
	}, nil
}

// SetInstruments attaches Prometheus instruments. A nil value leaves the
// instance un-instrumented, which every recording path tolerates.
func (ci *CaseInstance) SetInstruments(instruments *metrics.Metrics) {
	ci.instruments = instruments
}

// Search runs a synchronous search and archives the resulting record.
// This satisfies a part of the services.CaseAccessor interface.
func (ci *CaseInstance) Search(ctx context.Context) (*model.SolutionRecord, error) {
	return ci.SearchWithProgress(ctx, nil)
}

// SearchWithProgress runs a search, reporting trial progress through the
// given callback. The record is archived in the run store before it is
// returned; persistence to disk is the engine's job.
func (ci *CaseInstance) SearchWithProgress(ctx context.Context, progress search.ProgressFunc) (*model.SolutionRecord, error) {
	outcome, err := ci.searcher.Run(ctx, progress)
	if err != nil {
		return nil, err
	}

	record, err := report.BuildRecord(ci.config.Name, ci.text, ci.set, &ci.config.Settings, outcome)
	if err != nil {
		return nil, fmt.Errorf("building solution record: %w", err)
	}
	if err := ci.RunStore.Add(record); err != nil {
		return nil, fmt.Errorf("archiving solution record: %w", err)
	}

	ci.recordRunMetrics(outcome)
	return record, nil
}

func (ci *CaseInstance) recordRunMetrics(outcome *search.Outcome) {
	for family, n := range outcome.TrialsByFamily {
		ci.instruments.RecordTrials(ci.config.Name, string(family), n)
	}
	best := 0
	if len(outcome.Results) > 0 {
		best = outcome.Results[0].Score.BaseMatches
	}
	ci.instruments.RecordRun(ci.config.Name, string(outcome.Status), outcome.Elapsed, best)
}

// Profile computes the statistical profile of the case ciphertext.
// This satisfies a part of the services.CaseAccessor interface.
func (ci *CaseInstance) Profile() model.ProfileReport {
	return profile.Profile(ci.text)
}

// Runs lists archived solution records, newest first.
func (ci *CaseInstance) Runs() []model.RunSummary {
	return ci.RunStore.List()
}

// Run returns one archived solution record.
func (ci *CaseInstance) Run(runID string) (*model.SolutionRecord, error) {
	return ci.RunStore.Get(runID)
}

// DeleteRun removes a record from the in-memory archive.
func (ci *CaseInstance) DeleteRun(runID string) error {
	return ci.RunStore.Delete(runID)
}

// Config returns a copy of the case configuration.
func (ci *CaseInstance) Config() config.CaseConfig {
	return *ci.config
}

// ConstraintCount returns the number of anchored positions.
func (ci *CaseInstance) ConstraintCount() int {
	return ci.set.Len()
}

// GridSize returns the number of formulas the current settings enumerate.
func (ci *CaseInstance) GridSize() int {
	size, err := formula.GridSize(ci.config.Settings)
	if err != nil {
		return 0
	}
	return size
}
