package cipher

import (
	"errors"
	"testing"

	internalErrors "github.com/k4lab/go-cipher-search/internal/errors"
)

func TestParseText(t *testing.T) {
	t.Run("plain uppercase", func(t *testing.T) {
		text, err := ParseText("OBKR")
		if err != nil {
			t.Fatalf("ParseText returned error: %v", err)
		}
		if text.Len() != 4 {
			t.Fatalf("Len() = %d, want 4", text.Len())
		}
		want := []int{14, 1, 10, 17}
		for i, w := range want {
			if got := text.At(i); got != w {
				t.Errorf("At(%d) = %d, want %d", i, got, w)
			}
		}
	})

	t.Run("folds case and strips whitespace", func(t *testing.T) {
		text, err := ParseText("ob kr\nUo")
		if err != nil {
			t.Fatalf("ParseText returned error: %v", err)
		}
		if got := text.String(); got != "OBKRUO" {
			t.Errorf("String() = %q, want %q", got, "OBKRUO")
		}
	})

	t.Run("rejects non-alphabet symbols", func(t *testing.T) {
		_, err := ParseText("OB?R")
		if err == nil {
			t.Fatal("expected error for non-alphabet symbol")
		}
		if !errors.Is(err, internalErrors.ErrInvalidDomain) {
			t.Errorf("error %v should match ErrInvalidDomain", err)
		}
	})

	t.Run("empty input", func(t *testing.T) {
		text, err := ParseText("")
		if err != nil {
			t.Fatalf("ParseText(\"\") returned error: %v", err)
		}
		if text.Len() != 0 {
			t.Errorf("Len() = %d, want 0", text.Len())
		}
		if text.String() != "" {
			t.Errorf("String() = %q, want empty", text.String())
		}
	})
}

func TestTextRoundTrip(t *testing.T) {
	const raw = "OBKRUOXOGHULBSOLIFBBWFLRVQQPRNGKSS"
	text := MustParseText(raw)
	if text.String() != raw {
		t.Errorf("String() = %q, want %q", text.String(), raw)
	}
}

func TestTextSymbolsIsACopy(t *testing.T) {
	text := MustParseText("ABC")
	syms := text.Symbols()
	syms[0] = 25
	if text.At(0) != 0 {
		t.Error("mutating the Symbols() slice must not affect the Text")
	}
}
