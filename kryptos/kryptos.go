// Package kryptos pins the canonical case this engine was built around: the
// fourth, still-unsolved panel of the Kryptos sculpture at CIA headquarters.
// The 97-symbol ciphertext and the four plaintext anchors published by the
// sculptor (EAST, NORTHEAST, BERLIN, CLOCK) are fixed facts; everything else
// about the case is search configuration. Tests, the CLI default case, and
// the documentation all build from here so the canonical values exist in
// exactly one place.
package kryptos

import (
	"github.com/k4lab/go-cipher-search/config"
)

// CaseName is the default name the fixture registers under.
const CaseName = "kryptos-k4"

// Ciphertext is the 97-symbol K4 panel, positions 0-96.
const Ciphertext = "OBKRUOXOGHULBSOLIFBBWFLRVQQPRNGKSSOTWTQSJQSSEKZZWATJKLUDIAWINFBNYPVTTMZFPKWGDKZXTJCDIGKUHUAUEKCAR"

// The sculptor's plaintext clues, 0-based. BERLIN and CLOCK were released in
// 2010 and 2014; EAST and NORTHEAST in 2020.
const (
	EastStart      = 21
	NortheastStart = 25
	BerlinStart    = 63
	ClockStart     = 69
)

// SelfMapPositions are the ciphertext positions the anchors force to encrypt
// to themselves (S->S at 32, K->K at 73), so any base formula must produce a
// total shift of zero there.
var SelfMapPositions = []int{32, 73}

// Anchors returns the four published plaintext placements.
func Anchors() []config.Anchor {
	return []config.Anchor{
		{Start: EastStart, Plain: "EAST"},
		{Start: NortheastStart, Plain: "NORTHEAST"},
		{Start: BerlinStart, Plain: "BERLIN"},
		{Start: ClockStart, Plain: "CLOCK"},
	}
}

// NewCase builds the canonical case with both formula families enabled and
// the anchor words doubling as crib candidates for the unconstrained spans.
func NewCase() config.CaseConfig {
	cfg := config.CaseConfig{
		Name:       CaseName,
		Ciphertext: Ciphertext,
		Anchors:    Anchors(),
		Settings: config.CaseSettings{
			Families:  []string{config.FamilyNameLinear, config.FamilyNameClock},
			CribWords: []string{"BERLIN", "CLOCK", "EAST", "NORTHEAST", "TIME", "WATCH"},
		},
	}
	cfg.ApplyDefaults()
	return cfg
}
