// Package constraints holds the known-plaintext constraint store: anchor
// fragments placed against the ciphertext, the per-position shifts they
// force, and the conflict checks that keep the set internally consistent.
// Constraints are inputs only; nothing a search discovers is ever promoted
// into the set.
package constraints

import (
	"fmt"
	"sort"

	"github.com/k4lab/go-cipher-search/cipher"
	"github.com/k4lab/go-cipher-search/config"
	"github.com/k4lab/go-cipher-search/internal/errors"
)

// Constraint asserts the plaintext symbol at one ciphertext position.
// RequiredShift is the unique shift mapping RequiredPlain onto CipherSymbol.
type Constraint struct {
	Position      int
	CipherSymbol  int
	RequiredPlain int
	RequiredShift int
}

// SelfMapped reports whether the position encrypts a symbol to itself, which
// forces a required shift of zero.
func (c Constraint) SelfMapped() bool {
	return c.CipherSymbol == c.RequiredPlain
}

// Set is an immutable collection of constraints, at most one per position.
type Set struct {
	byPos     map[int]Constraint
	positions []int
}

// Build derives the constraint set from anchor placements against a parsed
// ciphertext. Overlapping anchors that agree collapse into one constraint;
// anchors that disagree about a position, or that fall outside the text, are
// rejected as domain errors.
func Build(text cipher.Text, anchors []config.Anchor) (*Set, error) {
	byPos := make(map[int]Constraint)

	for _, anchor := range anchors {
		plainRunes := []rune(anchor.Plain)
		if anchor.Start < 0 || anchor.Start+len(plainRunes) > text.Len() {
			return nil, errors.NewInvalidDomainError("anchors",
				fmt.Sprintf("anchor %q at %d does not fit a text of length %d",
					anchor.Plain, anchor.Start, text.Len()))
		}

		for i, r := range plainRunes {
			plain, ok := cipher.SymbolIndex(r)
			if !ok {
				return nil, errors.NewInvalidDomainError("anchors",
					fmt.Sprintf("anchor %q contains non-alphabet symbol %q", anchor.Plain, r))
			}

			pos := anchor.Start + i
			next := Constraint{
				Position:      pos,
				CipherSymbol:  text.At(pos),
				RequiredPlain: plain,
				RequiredShift: cipher.RequiredShift(text.At(pos), plain),
			}

			if existing, dup := byPos[pos]; dup {
				if existing.RequiredPlain != next.RequiredPlain {
					return nil, errors.NewInvalidDomainError("anchors",
						fmt.Sprintf("position %d is claimed as both %q and %q",
							pos, cipher.IndexSymbol(existing.RequiredPlain), cipher.IndexSymbol(next.RequiredPlain)))
				}
				continue
			}
			byPos[pos] = next
		}
	}

	positions := make([]int, 0, len(byPos))
	for pos := range byPos {
		positions = append(positions, pos)
	}
	sort.Ints(positions)

	return &Set{byPos: byPos, positions: positions}, nil
}

// At returns the constraint at a position, if any.
func (s *Set) At(pos int) (Constraint, bool) {
	c, ok := s.byPos[pos]
	return c, ok
}

// Has reports whether a position is constrained.
func (s *Set) Has(pos int) bool {
	_, ok := s.byPos[pos]
	return ok
}

// Len returns the number of constrained positions.
func (s *Set) Len() int {
	return len(s.positions)
}

// Positions returns the constrained positions in ascending order.
func (s *Set) Positions() []int {
	out := make([]int, len(s.positions))
	copy(out, s.positions)
	return out
}

// Constraints returns all constraints ordered by position.
func (s *Set) Constraints() []Constraint {
	out := make([]Constraint, 0, len(s.positions))
	for _, pos := range s.positions {
		out = append(out, s.byPos[pos])
	}
	return out
}

// SelfMapped returns the positions whose symbol encrypts to itself.
func (s *Set) SelfMapped() []int {
	var out []int
	for _, pos := range s.positions {
		if s.byPos[pos].SelfMapped() {
			out = append(out, pos)
		}
	}
	return out
}
