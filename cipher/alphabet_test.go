package cipher

import "testing"

func TestSymbolIndex(t *testing.T) {
	tests := []struct {
		name    string
		r       rune
		want    int
		wantOK  bool
	}{
		{"uppercase A", 'A', 0, true},
		{"uppercase Z", 'Z', 25, true},
		{"uppercase K", 'K', 10, true},
		{"lowercase folds", 'k', 10, true},
		{"digit rejected", '7', 0, false},
		{"punctuation rejected", '?', 0, false},
		{"space rejected", ' ', 0, false},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			got, ok := SymbolIndex(tt.r)
			if ok != tt.wantOK {
				t.Fatalf("SymbolIndex(%q) ok = %v, want %v", tt.r, ok, tt.wantOK)
			}
			if ok && got != tt.want {
				t.Errorf("SymbolIndex(%q) = %d, want %d", tt.r, got, tt.want)
			}
		})
	}
}

func TestIndexSymbol(t *testing.T) {
	if got := IndexSymbol(0); got != 'A' {
		t.Errorf("IndexSymbol(0) = %c, want A", got)
	}
	if got := IndexSymbol(25); got != 'Z' {
		t.Errorf("IndexSymbol(25) = %c, want Z", got)
	}
	// Negative and oversized indices normalize instead of panicking
	if got := IndexSymbol(-1); got != 'Z' {
		t.Errorf("IndexSymbol(-1) = %c, want Z", got)
	}
	if got := IndexSymbol(26); got != 'A' {
		t.Errorf("IndexSymbol(26) = %c, want A", got)
	}
}

func TestMod(t *testing.T) {
	tests := []struct {
		in   int
		want int
	}{
		{0, 0},
		{25, 25},
		{26, 0},
		{27, 1},
		{-1, 25},
		{-26, 0},
		{-27, 25},
		{52, 0},
	}

	for _, tt := range tests {
		if got := Mod(tt.in); got != tt.want {
			t.Errorf("Mod(%d) = %d, want %d", tt.in, got, tt.want)
		}
	}
}

func TestEncryptDecryptInverseLaw(t *testing.T) {
	// Decrypt must be the exact algebraic inverse of Encrypt for every
	// symbol and every shift, including negative and oversized shifts.
	for sym := 0; sym < AlphabetSize; sym++ {
		for shift := -40; shift <= 40; shift++ {
			enc := Encrypt(sym, shift)
			if enc < 0 || enc >= AlphabetSize {
				t.Fatalf("Encrypt(%d, %d) = %d, outside alphabet", sym, shift, enc)
			}
			if got := Decrypt(enc, shift); got != sym {
				t.Fatalf("Decrypt(Encrypt(%d, %d), %d) = %d, want %d", sym, shift, shift, got, sym)
			}
		}
	}
}

func TestRequiredShift(t *testing.T) {
	// RequiredShift must be the unique shift that round-trips the pair.
	for cipherSym := 0; cipherSym < AlphabetSize; cipherSym++ {
		for plain := 0; plain < AlphabetSize; plain++ {
			s := RequiredShift(cipherSym, plain)
			if got := Encrypt(plain, s); got != cipherSym {
				t.Fatalf("Encrypt(%d, RequiredShift(%d, %d)) = %d, want %d",
					plain, cipherSym, plain, got, cipherSym)
			}
			if got := Decrypt(cipherSym, s); got != plain {
				t.Fatalf("Decrypt(%d, %d) = %d, want %d", cipherSym, s, got, plain)
			}
		}
	}

	// A symbol that encrypts to itself needs shift zero
	if got := RequiredShift(10, 10); got != 0 {
		t.Errorf("RequiredShift(K, K) = %d, want 0", got)
	}
}

func TestWrapSigned(t *testing.T) {
	tests := []struct {
		in   int
		want int
	}{
		{0, 0},
		{1, 1},
		{13, 13},  // +13 keeps its sign
		{14, -12}, // first value past the midpoint wraps negative
		{25, -1},
		{26, 0},
		{-1, -1},
		{-13, 13}, // -13 normalizes to 13 before the wrap check
		{-9, -9},
		{17, -9},
	}

	for _, tt := range tests {
		if got := WrapSigned(tt.in); got != tt.want {
			t.Errorf("WrapSigned(%d) = %d, want %d", tt.in, got, tt.want)
		}
	}

	// The wrapped value must stay congruent to the input mod 26
	for v := -60; v <= 60; v++ {
		w := WrapSigned(v)
		if Mod(w) != Mod(v) {
			t.Fatalf("WrapSigned(%d) = %d changed the residue", v, w)
		}
		if w < -12 || w > 13 {
			t.Fatalf("WrapSigned(%d) = %d outside [-12, 13]", v, w)
		}
	}
}
