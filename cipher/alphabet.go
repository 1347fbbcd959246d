// Package cipher provides the 26-letter alphabet arithmetic shared by every
// other component: symbol/index mapping, the shift transform and its exact
// inverse, and parsing of raw ciphertext into an immutable symbol sequence.
package cipher

// AlphabetSize is the number of symbols in the working alphabet (A-Z).
const AlphabetSize = 26

// SymbolIndex maps a letter to its 0-based alphabet index (A=0 .. Z=25).
// Lowercase letters are accepted and folded. The second return value is false
// for any rune outside the alphabet.
func SymbolIndex(r rune) (int, bool) {
	switch {
	case r >= 'A' && r <= 'Z':
		return int(r - 'A'), true
	case r >= 'a' && r <= 'z':
		return int(r - 'a'), true
	default:
		return 0, false
	}
}

// IndexSymbol maps an alphabet index back to its uppercase letter. The index
// is normalized first, so any integer is safe to pass.
func IndexSymbol(i int) byte {
	return byte('A' + Mod(i))
}

// Mod normalizes v into [0, AlphabetSize). Every modular operation in the
// module routes through here so that negative intermediate values cannot
// introduce a sign error.
func Mod(v int) int {
	v %= AlphabetSize
	if v < 0 {
		v += AlphabetSize
	}
	return v
}

// Encrypt applies a forward shift to a plaintext symbol index.
func Encrypt(plain, shift int) int {
	return Mod(plain + shift)
}

// Decrypt applies the inverse shift to a ciphertext symbol index. It is the
// exact algebraic inverse of Encrypt for every shift value, including
// negative shifts and shifts beyond one alphabet length.
func Decrypt(cipherSym, shift int) int {
	return Mod(cipherSym - shift)
}

// RequiredShift returns the shift that maps the plaintext symbol onto the
// ciphertext symbol, i.e. the unique s with Encrypt(plain, s) == cipherSym.
func RequiredShift(cipherSym, plain int) int {
	return Mod(cipherSym - plain)
}

// WrapSigned folds a shift difference into the signed range [-12, +13],
// picking the congruent representative with the smallest absolute magnitude.
// The midpoint 13 keeps its positive sign.
func WrapSigned(v int) int {
	v = Mod(v)
	if v > AlphabetSize/2 {
		v -= AlphabetSize
	}
	return v
}
