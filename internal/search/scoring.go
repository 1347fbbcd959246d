package search

import (
	"github.com/k4lab/go-cipher-search/cipher"
	"github.com/k4lab/go-cipher-search/internal/formula"
	"github.com/k4lab/go-cipher-search/model"
)

// scoreBase evaluates one formula against the constraint set with no
// corrections. It returns the number of constraints the base formula
// satisfies outright and the total absolute correction the remaining
// mismatches would need. Both are pure functions of the formula and the set,
// so a trial can run on any worker.
func (s *Service) scoreBase(f formula.Formula) (baseMatches, totalAbs int) {
	for _, c := range s.set.Constraints() {
		delta := cipher.WrapSigned(c.RequiredShift - f.Base(c.Position))
		if delta == 0 {
			baseMatches++
			continue
		}
		if delta < 0 {
			delta = -delta
		}
		totalAbs += delta
	}
	return baseMatches, totalAbs
}

// refine derives the sparse correction table that closes every remaining
// mismatch: at each constrained position still missed by the base formula,
// the wrapped difference between the required shift and the base shift.
// Unconstrained positions are never corrected; there is nothing to aim at.
func (s *Service) refine(f formula.Formula) model.CorrectionTable {
	table := make(model.CorrectionTable)
	for _, c := range s.set.Constraints() {
		if delta := cipher.WrapSigned(c.RequiredShift - f.Base(c.Position)); delta != 0 {
			table[c.Position] = delta
		}
	}
	return table
}

// scoreAssignment recomputes the full score for a refined assignment. The
// corrected count is checked against the constraints rather than assumed,
// even though refinement makes it equal the constraint count by
// construction.
func (s *Service) scoreAssignment(f formula.Formula, corrections model.CorrectionTable) model.Score {
	score := model.Score{
		ConstraintCount:    s.set.Len(),
		TotalAbsCorrection: corrections.TotalAbs(),
	}
	for _, c := range s.set.Constraints() {
		if f.Base(c.Position) == c.RequiredShift {
			score.BaseMatches++
		}
		if formula.TotalShift(f, corrections, c.Position) == c.RequiredShift {
			score.CorrectedMatches++
		}
	}
	return score
}
