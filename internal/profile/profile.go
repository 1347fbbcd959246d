// Package profile computes the statistical characterization of a ciphertext:
// symbol frequencies, index of coincidence, Shannon entropy, chi-squared
// distance from English, and Kasiski-style repeated-substring statistics with
// the key-length hypotheses they suggest. Everything here is pure and
// deterministic; empty input yields neutral values rather than errors. The
// output is advisory only and never asserts ground truth.
package profile

import (
	"math"
	"sort"

	"github.com/k4lab/go-cipher-search/cipher"
	"github.com/k4lab/go-cipher-search/model"
)

// Relative letter frequencies of English text, in percent, A through Z.
var englishFrequencies = [26]float64{
	8.2, 1.5, 2.8, 4.3, 12.7, 2.2, 2.0, 6.1, 7.0, 0.15, 0.8, 4.0, 2.4,
	6.7, 7.5, 1.9, 0.095, 6.0, 6.3, 9.1, 2.8, 1.0, 2.4, 0.15, 2.0, 0.074,
}

// Repeat search bounds: substrings shorter than 3 repeat by chance too often
// to be useful, and nothing longer than 8 repeats in a 97-symbol text.
const (
	minRepeatLen = 3
	maxRepeatLen = 8
)

// maxKeyLength bounds the periods considered by factor counting.
const maxKeyLength = 20

// Frequencies counts each symbol's occurrences.
func Frequencies(text cipher.Text) [26]int {
	var freq [26]int
	for i := 0; i < text.Len(); i++ {
		freq[text.At(i)]++
	}
	return freq
}

// IndexOfCoincidence returns the probability that two distinct positions hold
// the same symbol. Uniform random text approaches 1/26; English approaches
// 0.0667. Texts shorter than two symbols return 0.
func IndexOfCoincidence(text cipher.Text) float64 {
	n := text.Len()
	if n < 2 {
		return 0
	}
	freq := Frequencies(text)
	sum := 0.0
	for _, f := range freq {
		sum += float64(f) * float64(f-1)
	}
	return sum / (float64(n) * float64(n-1))
}

// Entropy returns the Shannon entropy of the symbol distribution in bits per
// symbol. Empty text returns 0.
func Entropy(text cipher.Text) float64 {
	n := text.Len()
	if n == 0 {
		return 0
	}
	freq := Frequencies(text)
	entropy := 0.0
	for _, f := range freq {
		if f == 0 {
			continue
		}
		p := float64(f) / float64(n)
		entropy -= p * math.Log2(p)
	}
	return entropy
}

// ChiSquared measures the distance between the observed symbol distribution
// and expected English letter frequencies. Empty text returns 0.
func ChiSquared(text cipher.Text) float64 {
	n := text.Len()
	if n == 0 {
		return 0
	}
	freq := Frequencies(text)
	chi := 0.0
	for i, f := range freq {
		expected := float64(n) * englishFrequencies[i] / 100.0
		diff := float64(f) - expected
		chi += diff * diff / expected
	}
	return chi
}

// Repeats finds every substring of length 3 through 8 that occurs more than
// once and records its occurrence positions with all pairwise deltas, the raw
// material of the Kasiski examination. Results are ordered by first
// occurrence, then by substring.
func Repeats(text cipher.Text) []model.Repeat {
	raw := text.String()
	n := len(raw)

	var repeats []model.Repeat
	for length := minRepeatLen; length <= maxRepeatLen && length <= n; length++ {
		positionsBySub := make(map[string][]int)
		for start := 0; start+length <= n; start++ {
			sub := raw[start : start+length]
			positionsBySub[sub] = append(positionsBySub[sub], start)
		}

		for sub, positions := range positionsBySub {
			if len(positions) < 2 {
				continue
			}
			var deltas []int
			for i := 0; i < len(positions); i++ {
				for j := i + 1; j < len(positions); j++ {
					deltas = append(deltas, positions[j]-positions[i])
				}
			}
			repeats = append(repeats, model.Repeat{
				Substring: sub,
				Positions: positions,
				Deltas:    deltas,
			})
		}
	}

	sort.Slice(repeats, func(i, j int) bool {
		if repeats[i].Positions[0] != repeats[j].Positions[0] {
			return repeats[i].Positions[0] < repeats[j].Positions[0]
		}
		return repeats[i].Substring < repeats[j].Substring
	})
	return repeats
}

// KeyLengthCandidates ranks possible key periods by counting, for each
// length, how many repeat deltas it divides. Lengths with no votes are
// omitted. Ties order by shorter length first.
func KeyLengthCandidates(repeats []model.Repeat) []model.KeyLengthCandidate {
	votes := make(map[int]int)
	for _, repeat := range repeats {
		for _, delta := range repeat.Deltas {
			for length := 2; length <= maxKeyLength; length++ {
				if delta%length == 0 {
					votes[length]++
				}
			}
		}
	}

	candidates := make([]model.KeyLengthCandidate, 0, len(votes))
	for length, v := range votes {
		candidates = append(candidates, model.KeyLengthCandidate{Length: length, Votes: v})
	}
	sort.Slice(candidates, func(i, j int) bool {
		if candidates[i].Votes != candidates[j].Votes {
			return candidates[i].Votes > candidates[j].Votes
		}
		return candidates[i].Length < candidates[j].Length
	})
	return candidates
}

// ColumnIC returns the mean index of coincidence over the keyLen columns of
// the text. A true period shows up as a column IC near plain-language levels.
// Non-positive key lengths return 0.
func ColumnIC(text cipher.Text, keyLen int) float64 {
	if keyLen <= 0 {
		return 0
	}
	n := text.Len()
	if n == 0 {
		return 0
	}

	total := 0.0
	for col := 0; col < keyLen && col < n; col++ {
		var freq [26]int
		count := 0
		for i := col; i < n; i += keyLen {
			freq[text.At(i)]++
			count++
		}
		if count < 2 {
			continue
		}
		sum := 0.0
		for _, f := range freq {
			sum += float64(f) * float64(f-1)
		}
		total += sum / (float64(count) * float64(count-1))
	}

	cols := keyLen
	if cols > n {
		cols = n
	}
	return total / float64(cols)
}

// Profile assembles the full statistical report for a ciphertext.
func Profile(text cipher.Text) model.ProfileReport {
	n := text.Len()
	freq := Frequencies(text)

	var rel [26]float64
	if n > 0 {
		for i, f := range freq {
			rel[i] = float64(f) / float64(n)
		}
	}

	repeats := Repeats(text)
	return model.ProfileReport{
		Length:              n,
		Frequencies:         freq,
		RelativeFrequencies: rel,
		IC:                  IndexOfCoincidence(text),
		Entropy:             Entropy(text),
		ChiSquared:          ChiSquared(text),
		Repeats:             repeats,
		KeyLengthCandidates: KeyLengthCandidates(repeats),
	}
}
