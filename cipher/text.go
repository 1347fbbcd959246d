package cipher

import (
	"fmt"
	"unicode"

	"github.com/k4lab/go-cipher-search/internal/errors"
)

// Text is an immutable symbol sequence over the alphabet, indexed 0..Len()-1.
type Text struct {
	symbols []int
}

// ParseText builds a Text from raw input. Lowercase letters are folded to
// uppercase and Unicode whitespace is dropped, so ciphertexts may be written
// in spaced groups. Any other rune is rejected as out of domain.
func ParseText(raw string) (Text, error) {
	symbols := make([]int, 0, len(raw))
	for offset, r := range raw {
		if unicode.IsSpace(r) {
			continue
		}
		idx, ok := SymbolIndex(r)
		if !ok {
			return Text{}, errors.NewInvalidDomainError("ciphertext",
				fmt.Sprintf("symbol %q at byte offset %d is outside the alphabet", r, offset))
		}
		symbols = append(symbols, idx)
	}
	return Text{symbols: symbols}, nil
}

// MustParseText is ParseText for known-good literals; it panics on error.
// Intended for fixtures and tests.
func MustParseText(raw string) Text {
	t, err := ParseText(raw)
	if err != nil {
		panic(err)
	}
	return t
}

// Len returns the number of symbols.
func (t Text) Len() int {
	return len(t.symbols)
}

// At returns the symbol index at position i. It panics on out-of-range i,
// like a slice access.
func (t Text) At(i int) int {
	return t.symbols[i]
}

// Symbols returns a copy of the underlying symbol indices.
func (t Text) Symbols() []int {
	out := make([]int, len(t.symbols))
	copy(out, t.symbols)
	return out
}

// String renders the sequence as uppercase letters.
func (t Text) String() string {
	out := make([]byte, len(t.symbols))
	for i, s := range t.symbols {
		out[i] = IndexSymbol(s)
	}
	return string(out)
}
