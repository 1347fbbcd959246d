// Package clock implements the auxiliary state generator: a deterministic
// 24-lamp time display (one seconds lamp, four 5-hour lamps, four 1-hour
// lamps, eleven 5-minute lamps, four 1-minute lamps). The lamp count of a
// state is one candidate source of shift values for the search engine, with
// no privileged standing over any other formula family.
package clock

import (
	"fmt"

	"github.com/k4lab/go-cipher-search/internal/errors"
)

// SecondsPerDay bounds the generator's input domain.
const SecondsPerDay = 86400

// LampCount is the fixed width of the display.
const LampCount = 24

// State captures which lamps are lit for one instant. The seconds lamp is lit
// on odd seconds; the upper rows count complete 5-hour and 5-minute blocks,
// the lower rows count the remainders.
type State struct {
	Second      bool
	HourUpper   [4]bool
	HourLower   [4]bool
	MinuteUpper [11]bool
	MinuteLower [4]bool
}

// FromParts builds the state for a wall-clock time. Hour must be in [0, 24),
// minute and second in [0, 60).
func FromParts(hour, minute, second int) (State, error) {
	if hour < 0 || hour > 23 {
		return State{}, errors.NewInvalidDomainError("hour", fmt.Sprintf("must be 0-23, got %d", hour))
	}
	if minute < 0 || minute > 59 {
		return State{}, errors.NewInvalidDomainError("minute", fmt.Sprintf("must be 0-59, got %d", minute))
	}
	if second < 0 || second > 59 {
		return State{}, errors.NewInvalidDomainError("second", fmt.Sprintf("must be 0-59, got %d", second))
	}

	var s State
	s.Second = second%2 == 1

	for i := 0; i < hour/5; i++ {
		s.HourUpper[i] = true
	}
	for i := 0; i < hour%5; i++ {
		s.HourLower[i] = true
	}
	for i := 0; i < minute/5; i++ {
		s.MinuteUpper[i] = true
	}
	for i := 0; i < minute%5; i++ {
		s.MinuteLower[i] = true
	}

	return s, nil
}

// FromSeconds builds the state for a seconds-of-day value in [0, 86400).
func FromSeconds(total int) (State, error) {
	if total < 0 || total >= SecondsPerDay {
		return State{}, errors.NewInvalidDomainError("totalSeconds",
			fmt.Sprintf("must be in [0, %d), got %d", SecondsPerDay, total))
	}
	return FromParts(total/3600, (total/60)%60, total%60)
}

// LitCount returns the number of lit lamps, in [0, 23]. All 24 lamps are
// counted; 24 is unreachable because a full pair of hour rows would read
// hour 24, outside the input domain.
func (s State) LitCount() int {
	count := 0
	if s.Second {
		count++
	}
	for _, lit := range s.HourUpper {
		if lit {
			count++
		}
	}
	for _, lit := range s.HourLower {
		if lit {
			count++
		}
	}
	for _, lit := range s.MinuteUpper {
		if lit {
			count++
		}
	}
	for _, lit := range s.MinuteLower {
		if lit {
			count++
		}
	}
	return count
}

// Bits returns the lamps in display order: seconds lamp, hour upper row,
// hour lower row, minute upper row, minute lower row.
func (s State) Bits() [LampCount]bool {
	var bits [LampCount]bool
	bits[0] = s.Second
	i := 1
	for _, lit := range s.HourUpper {
		bits[i] = lit
		i++
	}
	for _, lit := range s.HourLower {
		bits[i] = lit
		i++
	}
	for _, lit := range s.MinuteUpper {
		bits[i] = lit
		i++
	}
	for _, lit := range s.MinuteLower {
		bits[i] = lit
		i++
	}
	return bits
}

// BitString renders the lamps as a 24-character binary string, seconds lamp
// first.
func (s State) BitString() string {
	bits := s.Bits()
	out := make([]byte, LampCount)
	for i, lit := range bits {
		if lit {
			out[i] = '1'
		} else {
			out[i] = '0'
		}
	}
	return string(out)
}

// Uint32 packs the bit string big-endian, seconds lamp as the most
// significant bit.
func (s State) Uint32() uint32 {
	var v uint32
	for _, lit := range s.Bits() {
		v <<= 1
		if lit {
			v |= 1
		}
	}
	return v
}

// Shift maps the lamp count into a shift value for the given alphabet size,
// which must be positive.
func (s State) Shift(alphabetSize int) int {
	return s.LitCount() % alphabetSize
}
