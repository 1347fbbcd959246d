// Package cribs scans candidate plaintexts for dictionary words. A sighting
// is always speculative: it annotates a result for a human reader and never
// flows back into the constraint store, no matter how clean the match looks.
package cribs

import (
	"sort"
	"strings"
)

// Sighting records one word found in a candidate plaintext. Distance is the
// Damerau-Levenshtein distance between the word and the window it matched;
// zero means an exact occurrence. Speculative is hard-wired true so a
// sighting can never masquerade as a verified constraint downstream.
type Sighting struct {
	Word        string `json:"word"`
	Start       int    `json:"start"`
	Distance    int    `json:"distance"`
	Speculative bool   `json:"speculative"`
}

// Span returns the half-open position range the sighting covers.
func (s Sighting) Span() (start, end int) {
	return s.Start, s.Start + len(s.Word)
}

// Scan slides every word across the plaintext and records each window within
// maxDistance edits. Words are folded to uppercase to match parsed
// plaintexts; empty words and words longer than the text yield nothing.
// Sightings come back ordered by position, then word.
func Scan(plaintext string, words []string, maxDistance int) []Sighting {
	if maxDistance < 0 {
		maxDistance = 0
	}
	textRunes := []rune(strings.ToUpper(plaintext))

	var sightings []Sighting
	for _, word := range words {
		wordRunes := []rune(strings.ToUpper(word))
		if len(wordRunes) == 0 || len(wordRunes) > len(textRunes) {
			continue
		}
		for start := 0; start+len(wordRunes) <= len(textRunes); start++ {
			window := textRunes[start : start+len(wordRunes)]
			if d := damerauLevenshtein(window, wordRunes); d <= maxDistance {
				sightings = append(sightings, Sighting{
					Word:        string(wordRunes),
					Start:       start,
					Distance:    d,
					Speculative: true,
				})
			}
		}
	}

	sort.Slice(sightings, func(i, j int) bool {
		if sightings[i].Start != sightings[j].Start {
			return sightings[i].Start < sightings[j].Start
		}
		return sightings[i].Word < sightings[j].Word
	})
	return sightings
}

// damerauLevenshtein computes the minimum number of single-rune insertions,
// deletions, substitutions, or adjacent transpositions required to turn a
// into b.
func damerauLevenshtein(a, b []rune) int {
	lenA := len(a)
	lenB := len(b)

	if lenA == 0 {
		return lenB
	}
	if lenB == 0 {
		return lenA
	}

	matrix := make([][]int, lenA+1)
	for i := range matrix {
		matrix[i] = make([]int, lenB+1)
	}
	for i := 0; i <= lenA; i++ {
		matrix[i][0] = i
	}
	for j := 0; j <= lenB; j++ {
		matrix[0][j] = j
	}

	for i := 1; i <= lenA; i++ {
		for j := 1; j <= lenB; j++ {
			cost := 0
			if a[i-1] != b[j-1] {
				cost = 1
			}

			deletion := matrix[i-1][j] + 1
			insertion := matrix[i][j-1] + 1
			substitution := matrix[i-1][j-1] + cost
			matrix[i][j] = min3(deletion, insertion, substitution)

			if i > 1 && j > 1 && a[i-1] == b[j-2] && a[i-2] == b[j-1] {
				if transposition := matrix[i-2][j-2] + cost; transposition < matrix[i][j] {
					matrix[i][j] = transposition
				}
			}
		}
	}

	return matrix[lenA][lenB]
}

func min3(a, b, c int) int {
	if b < a {
		a = b
	}
	if c < a {
		a = c
	}
	return a
}
