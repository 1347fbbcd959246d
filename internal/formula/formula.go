// Package formula defines the base-formula families a search can draw from
// and the bounded grids that enumerate their parameter spaces. A formula maps
// a ciphertext position to a base shift in [0, 26) with no per-position
// corrections; corrections are layered on top by the search engine and the
// reporter.
package formula

import (
	"fmt"

	"github.com/k4lab/go-cipher-search/cipher"
	"github.com/k4lab/go-cipher-search/config"
	"github.com/k4lab/go-cipher-search/internal/clock"
	"github.com/k4lab/go-cipher-search/internal/errors"
	"github.com/k4lab/go-cipher-search/model"
)

// Formula is a deterministic mapping from position to base shift.
type Formula interface {
	Family() model.FormulaFamily
	// Base returns the shift at pos, normalized to [0, alphabet size).
	Base(pos int) int
	Params() model.ParameterSet
}

// Linear is the affine family: shift(pos) = (Multiplier*pos + Offset) mod 26.
type Linear struct {
	Multiplier int
	Offset     int
}

func (l Linear) Family() model.FormulaFamily {
	return model.FamilyLinear
}

func (l Linear) Base(pos int) int {
	return cipher.Mod(l.Multiplier*pos + l.Offset)
}

func (l Linear) Params() model.ParameterSet {
	return model.ParameterSet{
		Family:     model.FamilyLinear,
		Multiplier: l.Multiplier,
		Offset:     l.Offset,
	}
}

// Clock derives shifts from the lamp display: position pos reads the display
// at (StartSecond + pos*StepSeconds) mod 86400 and takes its lit-lamp count
// mod 26.
type Clock struct {
	StartSecond int
	StepSeconds int
}

func (c Clock) Family() model.FormulaFamily {
	return model.FamilyClock
}

func (c Clock) Base(pos int) int {
	// wrapSeconds keeps the input inside the generator's domain.
	state, _ := clock.FromSeconds(wrapSeconds(c.StartSecond + pos*c.StepSeconds))
	return state.Shift(cipher.AlphabetSize)
}

func (c Clock) Params() model.ParameterSet {
	return model.ParameterSet{
		Family:      model.FamilyClock,
		StartSecond: c.StartSecond,
		StepSeconds: c.StepSeconds,
	}
}

func wrapSeconds(v int) int {
	v %= clock.SecondsPerDay
	if v < 0 {
		v += clock.SecondsPerDay
	}
	return v
}

// New builds the Formula a parameter set describes.
func New(params model.ParameterSet) (Formula, error) {
	switch params.Family {
	case model.FamilyLinear:
		return Linear{Multiplier: params.Multiplier, Offset: params.Offset}, nil
	case model.FamilyClock:
		return Clock{StartSecond: params.StartSecond, StepSeconds: params.StepSeconds}, nil
	default:
		return nil, errors.NewInvalidDomainError("family",
			fmt.Sprintf("unknown formula family %q", params.Family))
	}
}

// TotalShift applies a formula's base shift plus the correction at pos,
// normalized to [0, alphabet size).
func TotalShift(f Formula, corrections model.CorrectionTable, pos int) int {
	return cipher.Mod(f.Base(pos) + corrections.Get(pos))
}

// Grid enumerates every formula the settings allow, in deterministic order:
// families in their configured order, linear multiplier-major then offset,
// clock step-major then start second.
func Grid(settings config.CaseSettings) ([]Formula, error) {
	size, err := GridSize(settings)
	if err != nil {
		return nil, err
	}

	formulas := make([]Formula, 0, size)
	for _, family := range settings.Families {
		switch family {
		case config.FamilyNameLinear:
			for mult := settings.MultiplierMin; mult <= settings.MultiplierMax; mult++ {
				for offset := settings.OffsetMin; offset <= settings.OffsetMax; offset++ {
					formulas = append(formulas, Linear{Multiplier: mult, Offset: offset})
				}
			}
		case config.FamilyNameClock:
			for _, step := range settings.ClockStepsSeconds {
				for start := 0; start < clock.SecondsPerDay; start += settings.ClockStartStride {
					formulas = append(formulas, Clock{StartSecond: start, StepSeconds: step})
				}
			}
		}
	}
	return formulas, nil
}

// GridSize reports how many formulas Grid will produce, without materializing
// them. Used for budget checks and job progress totals.
func GridSize(settings config.CaseSettings) (int, error) {
	size := 0
	for _, family := range settings.Families {
		switch family {
		case config.FamilyNameLinear:
			size += (settings.MultiplierMax - settings.MultiplierMin + 1) *
				(settings.OffsetMax - settings.OffsetMin + 1)
		case config.FamilyNameClock:
			starts := (clock.SecondsPerDay + settings.ClockStartStride - 1) / settings.ClockStartStride
			size += len(settings.ClockStepsSeconds) * starts
		default:
			return 0, errors.NewInvalidDomainError("families",
				fmt.Sprintf("unknown formula family %q", family))
		}
	}
	return size, nil
}

// Restrict filters linear formulas to multipliers whose induced period
// 26/gcd(m, 26) matches one of the profiled key-length candidates. Multiplier
// 0 (a constant shift) is always kept, and non-linear formulas pass through
// untouched. The profiler is advisory, so this narrowing is opt-in.
func Restrict(formulas []Formula, candidates []model.KeyLengthCandidate) []Formula {
	lengths := make(map[int]bool, len(candidates))
	for _, c := range candidates {
		lengths[c.Length] = true
	}

	kept := make([]Formula, 0, len(formulas))
	for _, f := range formulas {
		linear, ok := f.(Linear)
		if !ok {
			kept = append(kept, f)
			continue
		}
		if linear.Multiplier == 0 || lengths[period(linear.Multiplier)] {
			kept = append(kept, f)
		}
	}
	return kept
}

// period returns the cycle length of m*pos mod 26 as pos advances.
func period(m int) int {
	return cipher.AlphabetSize / gcd(cipher.Mod(m), cipher.AlphabetSize)
}

func gcd(a, b int) int {
	for b != 0 {
		a, b = b, a%b
	}
	return a
}
