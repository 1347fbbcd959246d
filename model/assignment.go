package model

import (
	"fmt"
	"sort"
)

// FormulaFamily names a base-formula family.
type FormulaFamily string

const (
	FamilyLinear FormulaFamily = "linear"
	FamilyClock  FormulaFamily = "clock"
)

// ParameterSet is the small fixed tuple defining a base formula. The linear
// family uses Multiplier and Offset; the clock family uses StartSecond and
// StepSeconds. Fields a family does not use stay zero. A trial never mutates
// its parameter set.
type ParameterSet struct {
	Family      FormulaFamily `json:"family"`
	Multiplier  int           `json:"multiplier"`
	Offset      int           `json:"offset"`
	StartSecond int           `json:"start_second,omitempty"`
	StepSeconds int           `json:"step_seconds,omitempty"`
}

// Compare orders parameter sets field-wise (family, multiplier, offset,
// start second, step seconds) and returns -1, 0, or +1. It is the final,
// deterministic tie-break of the ranking policy.
func (p ParameterSet) Compare(o ParameterSet) int {
	if p.Family != o.Family {
		if p.Family < o.Family {
			return -1
		}
		return 1
	}
	fields := [4][2]int{
		{p.Multiplier, o.Multiplier},
		{p.Offset, o.Offset},
		{p.StartSecond, o.StartSecond},
		{p.StepSeconds, o.StepSeconds},
	}
	for _, f := range fields {
		if f[0] != f[1] {
			if f[0] < f[1] {
				return -1
			}
			return 1
		}
	}
	return 0
}

func (p ParameterSet) String() string {
	switch p.Family {
	case FamilyClock:
		return fmt.Sprintf("clock(start=%d, step=%d)", p.StartSecond, p.StepSeconds)
	default:
		return fmt.Sprintf("%s(mult=%d, offset=%d)", p.Family, p.Multiplier, p.Offset)
	}
}

// CorrectionTable is the sparse per-position override applied on top of a
// base formula. Offsets are stored wrapped into the signed range [-12, +13].
// A position absent from the table carries no correction and, at
// unconstrained positions, no evidentiary weight.
type CorrectionTable map[int]int

// Get returns the correction for a position, zero when absent.
func (ct CorrectionTable) Get(pos int) int {
	if ct == nil {
		return 0
	}
	return ct[pos]
}

// Positions returns the corrected positions in ascending order.
func (ct CorrectionTable) Positions() []int {
	positions := make([]int, 0, len(ct))
	for pos := range ct {
		positions = append(positions, pos)
	}
	sort.Ints(positions)
	return positions
}

// TotalAbs sums the absolute correction magnitudes. Lower totals win ties
// between parameter sets with equal base scores.
func (ct CorrectionTable) TotalAbs() int {
	total := 0
	for _, c := range ct {
		if c < 0 {
			total -= c
		} else {
			total += c
		}
	}
	return total
}

// Clone returns an independent copy of the table.
func (ct CorrectionTable) Clone() CorrectionTable {
	if ct == nil {
		return nil
	}
	out := make(CorrectionTable, len(ct))
	for pos, c := range ct {
		out[pos] = c
	}
	return out
}

// CandidateAssignment pairs a parameter set with its correction table and
// fully determines a shift function over all positions.
type CandidateAssignment struct {
	Params      ParameterSet    `json:"params"`
	Corrections CorrectionTable `json:"corrections,omitempty"`
}

// Score separates the two constraint-satisfaction counts. BaseMatches counts
// constraints satisfied by the base formula alone and is the only
// discriminating signal; CorrectedMatches counts satisfaction after
// per-position corrections, which trivially reaches ConstraintCount once one
// free offset per constraint is allowed. The two must never be conflated.
type Score struct {
	BaseMatches        int `json:"base_matches"`
	CorrectedMatches   int `json:"corrected_matches"`
	ConstraintCount    int `json:"constraint_count"`
	TotalAbsCorrection int `json:"total_abs_correction"`
}
