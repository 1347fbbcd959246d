// Package search implements the two-stage parameter search: a parallel sweep
// of the bounded formula grid scored on uncorrected constraint satisfaction,
// then correction refinement of the retained top K. Base matches are the only
// discriminating signal; the corrected count always reaches the constraint
// count by construction and is carried for honesty, never for ranking.
package search

import (
	"context"
	"fmt"
	"log"
	"sync/atomic"
	"time"

	"github.com/k4lab/go-cipher-search/cipher"
	"github.com/k4lab/go-cipher-search/config"
	"github.com/k4lab/go-cipher-search/constraints"
	apperrors "github.com/k4lab/go-cipher-search/internal/errors"
	"github.com/k4lab/go-cipher-search/internal/formula"
	"github.com/k4lab/go-cipher-search/internal/profile"
	"github.com/k4lab/go-cipher-search/model"
	"golang.org/x/sync/errgroup"
)

// Service runs parameter searches for a single case. The ciphertext and the
// constraint set are shared read-only by every worker; a trial never mutates
// them, performs I/O, or depends on another trial.
type Service struct {
	text     cipher.Text
	set      *constraints.Set
	settings *config.CaseSettings
}

// NewService creates a new search Service.
func NewService(text cipher.Text, set *constraints.Set, settings *config.CaseSettings) (*Service, error) {
	if set == nil {
		return nil, fmt.Errorf("constraint set cannot be nil")
	}
	if settings == nil {
		return nil, fmt.Errorf("settings cannot be nil")
	}
	return &Service{text: text, set: set, settings: settings}, nil
}

// Run executes the search. Stage one fans the formula grid out over a worker
// pool and keeps the top K trials; stage two derives each survivor's
// correction table and full score. Cancellation and an exhausted trial
// budget both stop scheduling cooperatively and are reported as
// partial-coverage warnings on the outcome rather than errors.
func (s *Service) Run(ctx context.Context, progress ProgressFunc) (*Outcome, error) {
	startTime := time.Now()

	if s.set.Len() == 0 {
		log.Printf("Warning: refusing to search with an empty constraint set")
		return nil, apperrors.ErrEmptyConstraintSet
	}

	formulas, err := formula.Grid(*s.settings)
	if err != nil {
		return nil, fmt.Errorf("enumerating formula grid: %w", err)
	}
	if s.settings.UseProfilerBounds {
		report := profile.Profile(s.text)
		narrowed := formula.Restrict(formulas, report.KeyLengthCandidates)
		if len(narrowed) < len(formulas) {
			log.Printf("Profiler bounds narrowed the grid from %d to %d formulas",
				len(formulas), len(narrowed))
		}
		formulas = narrowed
	}

	total := int64(len(formulas))
	collector := newTopKCollector(s.settings.TopK)
	var evaluated int64
	var linearTrials, clockTrials int64

	trialCh := make(chan formula.Formula)
	g, gctx := errgroup.WithContext(ctx)
	for i := 0; i < s.settings.Workers; i++ {
		g.Go(func() error {
			for f := range trialCh {
				baseMatches, totalAbs := s.scoreBase(f)
				collector.Offer(trial{
					params:      f.Params(),
					baseMatches: baseMatches,
					totalAbs:    totalAbs,
				})
				switch f.Family() {
				case model.FamilyLinear:
					atomic.AddInt64(&linearTrials, 1)
				case model.FamilyClock:
					atomic.AddInt64(&clockTrials, 1)
				}
				done := atomic.AddInt64(&evaluated, 1)
				if progress != nil {
					progress(done, total)
				}
			}
			return nil
		})
	}

	var warnings []string
	scheduled := int64(0)
feed:
	for _, f := range formulas {
		if s.settings.TrialBudget > 0 && scheduled == s.settings.TrialBudget {
			warnings = append(warnings, fmt.Sprintf(
				"trial budget %d covered only %d of %d formulas; ranking reflects partial grid coverage",
				s.settings.TrialBudget, scheduled, total))
			break
		}
		select {
		case trialCh <- f:
			scheduled++
		case <-gctx.Done():
			warnings = append(warnings, fmt.Sprintf(
				"search cancelled after %d of %d formulas; ranking reflects partial grid coverage",
				scheduled, total))
			break feed
		}
	}
	close(trialCh)
	_ = g.Wait() // workers only return on channel close

	results, err := s.refineRanked(collector.Ranked())
	if err != nil {
		return nil, err
	}

	byFamily := make(map[model.FormulaFamily]int64)
	if n := atomic.LoadInt64(&linearTrials); n > 0 {
		byFamily[model.FamilyLinear] = n
	}
	if n := atomic.LoadInt64(&clockTrials); n > 0 {
		byFamily[model.FamilyClock] = n
	}

	return &Outcome{
		Results:         results,
		Status:          statusOf(results),
		GridSize:        total,
		TrialsEvaluated: atomic.LoadInt64(&evaluated),
		TrialsByFamily:  byFamily,
		Elapsed:         time.Since(startTime),
		Warnings:        warnings,
	}, nil
}

// refineRanked runs stage two over the retained trials best-first.
func (s *Service) refineRanked(ranked []trial) ([]model.RankedResult, error) {
	results := make([]model.RankedResult, 0, len(ranked))
	for i, t := range ranked {
		f, err := formula.New(t.params)
		if err != nil {
			return nil, fmt.Errorf("rebuilding formula %s: %w", t.params, err)
		}
		corrections := s.refine(f)
		results = append(results, model.RankedResult{
			Rank: i + 1,
			Assignment: model.CandidateAssignment{
				Params:      t.params,
				Corrections: corrections,
			},
			Score: s.scoreAssignment(f, corrections),
		})
	}
	return results, nil
}

// statusOf applies the evidentiary rules. A usable run needs a leader that
// satisfied at least one constraint unaided; co-leaders equal on both ranking
// criteria leave the run ambiguous. Ties are judged at rank one only.
func statusOf(results []model.RankedResult) model.RunStatus {
	if len(results) == 0 || results[0].Score.BaseMatches == 0 {
		return model.RunStatusNoDiscriminatingModel
	}
	if len(results) > 1 {
		first, second := results[0].Score, results[1].Score
		if first.BaseMatches == second.BaseMatches &&
			first.TotalAbsCorrection == second.TotalAbsCorrection {
			return model.RunStatusAmbiguousTie
		}
	}
	return model.RunStatusOK
}
