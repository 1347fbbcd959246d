// Package report turns search outcomes into auditable output: the
// per-position ledger, the candidate plaintext, the immutable solution
// record, and a text rendering for the CLI. The reporter is deliberately
// strict about provenance: a position is only ever marked matched when a
// known plaintext constraint backs it, and a fully corrected assignment is
// presented as exactly that, never as a validated solution.
package report

import (
	"fmt"
	"time"

	"github.com/google/uuid"
	"github.com/k4lab/go-cipher-search/cipher"
	"github.com/k4lab/go-cipher-search/config"
	"github.com/k4lab/go-cipher-search/constraints"
	"github.com/k4lab/go-cipher-search/internal/cribs"
	"github.com/k4lab/go-cipher-search/internal/formula"
	"github.com/k4lab/go-cipher-search/internal/search"
	"github.com/k4lab/go-cipher-search/model"
)

// BuildLedger derives the full plaintext for an assignment together with one
// audit row per position. Constrained rows carry the match verdict against
// their required symbol; every other row is extrapolated and never marked
// matched, regardless of how plausible its symbol looks.
func BuildLedger(text cipher.Text, set *constraints.Set, assignment model.CandidateAssignment) ([]model.LedgerRow, string, error) {
	f, err := formula.New(assignment.Params)
	if err != nil {
		return nil, "", fmt.Errorf("building ledger formula: %w", err)
	}

	ledger := make([]model.LedgerRow, 0, text.Len())
	plaintext := make([]byte, text.Len())

	for pos := 0; pos < text.Len(); pos++ {
		base := f.Base(pos)
		correction := assignment.Corrections.Get(pos)
		total := cipher.Mod(base + correction)
		plain := cipher.Decrypt(text.At(pos), total)
		plaintext[pos] = cipher.IndexSymbol(plain)

		row := model.LedgerRow{
			Position:     pos,
			CipherSymbol: string(cipher.IndexSymbol(text.At(pos))),
			PlainSymbol:  string(cipher.IndexSymbol(plain)),
			BaseShift:    base,
			Correction:   correction,
			TotalShift:   total,
			Provenance:   model.ProvenanceExtrapolated,
		}
		if c, ok := set.At(pos); ok {
			row.Provenance = model.ProvenanceConstrained
			row.Matched = plain == c.RequiredPlain
		}
		ledger = append(ledger, row)
	}

	return ledger, string(plaintext), nil
}

// BuildRecord assembles the versioned solution record for one search
// outcome: ledgers and plaintexts for every ranked result, speculative crib
// annotations on unconstrained spans, and plausibility screen applications.
// The record gets a fresh id; it is archived alongside earlier runs, never
// in place of them.
func BuildRecord(caseName string, text cipher.Text, set *constraints.Set, settings *config.CaseSettings, outcome *search.Outcome) (*model.SolutionRecord, error) {
	record := &model.SolutionRecord{
		ID:              uuid.New().String(),
		CaseName:        caseName,
		CreatedAt:       time.Now().UTC(),
		Status:          outcome.Status,
		TrialsEvaluated: outcome.TrialsEvaluated,
		GridSize:        outcome.GridSize,
		Elapsed:         outcome.Elapsed,
		Warnings:        outcome.Warnings,
		Results:         make([]model.RankedResult, len(outcome.Results)),
	}
	copy(record.Results, outcome.Results)

	for i := range record.Results {
		result := &record.Results[i]

		ledger, plaintext, err := BuildLedger(text, set, result.Assignment)
		if err != nil {
			return nil, err
		}
		result.Ledger = ledger
		result.Plaintext = plaintext

		if len(settings.CribWords) > 0 {
			result.Annotations = annotateSightings(plaintext, set, settings)
		}
	}

	record.Screens = applyScreens(record.Results, settings.Screens)
	return record, nil
}

// annotateSightings runs the crib scanner over a candidate plaintext and
// keeps only sightings on fully unconstrained spans. A word overlapping an
// anchor is partially forced by the corrections and carries no independent
// signal.
func annotateSightings(plaintext string, set *constraints.Set, settings *config.CaseSettings) []string {
	var annotations []string
	for _, sighting := range cribs.Scan(plaintext, settings.CribWords, settings.CribMaxDistance) {
		if overlapsConstraint(sighting, set) {
			continue
		}
		annotations = append(annotations, fmt.Sprintf(
			"speculative crib %q at position %d (distance %d)",
			sighting.Word, sighting.Start, sighting.Distance))
	}
	return annotations
}

func overlapsConstraint(s cribs.Sighting, set *constraints.Set) bool {
	start, end := s.Span()
	for pos := start; pos < end; pos++ {
		if set.Has(pos) {
			return true
		}
	}
	return false
}
