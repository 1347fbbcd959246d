// Package config provides configuration structures for the cipher search
// engine. It defines case settings (formula families, grid bounds, worker and
// budget limits), anchor placements, plausibility screens, and the YAML case
// file format.
package config

import (
	"strings"
)

// Supported formula family names. The search engine enumerates one bounded
// grid per enabled family.
const (
	FamilyNameLinear = "linear"
	FamilyNameClock  = "clock"
)

// Anchor places a known plaintext fragment at a fixed 0-based position of the
// ciphertext. Each symbol of Plain becomes one constraint.
type Anchor struct {
	Start int    `json:"start" yaml:"start"`
	Plain string `json:"plain" yaml:"plain"`
}

// Screen is a declarative plausibility check evaluated against every ranked
// result after a search. Screens only annotate: they never drop results and
// never change the ranking.
type Screen struct {
	Name     string  `json:"name" yaml:"name"`
	Metric   string  `json:"metric" yaml:"metric"`     // "ic", "chi_squared", "entropy", "base_matches", "total_abs_correction"
	Operator string  `json:"operator" yaml:"operator"` // "gt", "gte", "lt", "lte", "eq"
	Value    float64 `json:"value" yaml:"value"`
	Note     string  `json:"note" yaml:"note"`
}

// CaseSettings contains all tunables for searching one case. Grid bounds are
// inclusive. Zero values are replaced by defaults in ApplyDefaults, so a grid
// pinned to a single point should use equal non-zero bounds.
type CaseSettings struct {
	AlphabetSize      int      `json:"alphabet_size" yaml:"alphabet_size"`             // Symbol alphabet size; only 26 is supported
	Families          []string `json:"families" yaml:"families"`                       // Formula families to enumerate, e.g. ["linear", "clock"]
	MultiplierMin     int      `json:"multiplier_min" yaml:"multiplier_min"`           // Linear grid: lowest multiplier
	MultiplierMax     int      `json:"multiplier_max" yaml:"multiplier_max"`           // Linear grid: highest multiplier (0 means full range)
	OffsetMin         int      `json:"offset_min" yaml:"offset_min"`                   // Linear grid: lowest offset
	OffsetMax         int      `json:"offset_max" yaml:"offset_max"`                   // Linear grid: highest offset (0 means full range)
	ClockStepsSeconds []int    `json:"clock_steps_seconds" yaml:"clock_steps_seconds"` // Clock grid: seconds advanced per position
	ClockStartStride  int      `json:"clock_start_stride" yaml:"clock_start_stride"`   // Clock grid: stride between enumerated start seconds
	TopK              int      `json:"top_k" yaml:"top_k"`                             // Number of candidates retained
	TrialBudget       int64    `json:"trial_budget" yaml:"trial_budget"`               // Maximum trials to evaluate; 0 means the full grid
	Workers           int      `json:"workers" yaml:"workers"`                         // Parallel trial workers
	UseProfilerBounds bool     `json:"use_profiler_bounds" yaml:"use_profiler_bounds"` // Narrow linear multipliers to profiled period candidates
	CribWords         []string `json:"crib_words" yaml:"crib_words"`                   // Words scanned for speculative sightings in candidate plaintexts
	CribMaxDistance   int      `json:"crib_max_distance" yaml:"crib_max_distance"`     // Edit-distance tolerance for crib sightings (0-2)
	Screens           []Screen `json:"screens" yaml:"screens"`                         // Plausibility screens applied to ranked results
}

// CaseConfig is the full description of a case: the ciphertext, its known
// plaintext anchors, and the search settings. It is both the API creation
// payload and the YAML case file schema.
type CaseConfig struct {
	Name       string       `json:"name" yaml:"name"`
	Ciphertext string       `json:"ciphertext" yaml:"ciphertext"`
	Anchors    []Anchor     `json:"anchors" yaml:"anchors"`
	Settings   CaseSettings `json:"settings" yaml:"settings"`
}

// ApplyDefaults applies default values to the case settings
func (settings *CaseSettings) ApplyDefaults() {
	if settings.AlphabetSize == 0 {
		settings.AlphabetSize = 26
	}
	if len(settings.Families) == 0 {
		settings.Families = []string{FamilyNameLinear}
	}
	if settings.MultiplierMax == 0 && settings.MultiplierMin == 0 {
		settings.MultiplierMax = settings.AlphabetSize - 1
	}
	if settings.OffsetMax == 0 && settings.OffsetMin == 0 {
		settings.OffsetMax = settings.AlphabetSize - 1
	}
	if len(settings.ClockStepsSeconds) == 0 {
		settings.ClockStepsSeconds = []int{1, 60}
	}
	if settings.ClockStartStride == 0 {
		settings.ClockStartStride = 60
	}
	if settings.TopK == 0 {
		settings.TopK = 10
	}
	if settings.Workers == 0 {
		settings.Workers = 4
	}
	if settings.CribMaxDistance == 0 {
		settings.CribMaxDistance = 1
	}

	// Initialize empty slices if nil to prevent nil pointer issues
	if settings.CribWords == nil {
		settings.CribWords = []string{}
	}
	if settings.Screens == nil {
		settings.Screens = []Screen{}
	}
}

// Validate checks the settings for internal consistency and returns a list of
// human-readable conflicts. An empty result means the settings are usable.
func (settings *CaseSettings) Validate() []string {
	var conflicts []string

	if settings.AlphabetSize != 26 {
		conflicts = append(conflicts, "Only the 26-letter alphabet is supported")
	}

	conflicts = append(conflicts, checkDuplicates("families", settings.Families)...)
	for _, family := range settings.Families {
		if family != FamilyNameLinear && family != FamilyNameClock {
			conflicts = append(conflicts, "Unknown formula family '"+family+"'")
		}
	}

	if settings.MultiplierMin < 0 || settings.MultiplierMax >= settings.AlphabetSize ||
		settings.MultiplierMin > settings.MultiplierMax {
		conflicts = append(conflicts, "Multiplier bounds must satisfy 0 <= min <= max < alphabet size")
	}
	if settings.OffsetMin < 0 || settings.OffsetMax >= settings.AlphabetSize ||
		settings.OffsetMin > settings.OffsetMax {
		conflicts = append(conflicts, "Offset bounds must satisfy 0 <= min <= max < alphabet size")
	}

	for _, step := range settings.ClockStepsSeconds {
		if step < 1 {
			conflicts = append(conflicts, "Clock steps must be positive seconds")
			break
		}
	}
	if settings.ClockStartStride < 1 || settings.ClockStartStride > 86400 {
		conflicts = append(conflicts, "Clock start stride must be in [1, 86400]")
	}

	if settings.TopK < 1 {
		conflicts = append(conflicts, "top_k must be at least 1")
	}
	if settings.TrialBudget < 0 {
		conflicts = append(conflicts, "trial_budget cannot be negative")
	}
	if settings.Workers < 1 {
		conflicts = append(conflicts, "workers must be at least 1")
	}
	if settings.CribMaxDistance < 0 || settings.CribMaxDistance > 2 {
		conflicts = append(conflicts, "crib_max_distance must be between 0 and 2")
	}

	conflicts = append(conflicts, settings.validateScreens()...)

	return conflicts
}

// validateScreens validates the screen declarations
func (settings *CaseSettings) validateScreens() []string {
	var conflicts []string

	validMetrics := map[string]bool{
		"ic":                   true,
		"chi_squared":          true,
		"entropy":              true,
		"base_matches":         true,
		"total_abs_correction": true,
	}
	validOperators := map[string]bool{
		"gt": true, "gte": true, "lt": true, "lte": true, "eq": true,
	}

	seen := make(map[string]bool)
	for _, screen := range settings.Screens {
		if strings.TrimSpace(screen.Name) == "" {
			conflicts = append(conflicts, "Screen name cannot be empty")
			continue
		}
		if seen[screen.Name] {
			conflicts = append(conflicts, "Duplicate screen '"+screen.Name+"'")
		}
		seen[screen.Name] = true
		if !validMetrics[screen.Metric] {
			conflicts = append(conflicts, "Screen '"+screen.Name+"' uses unknown metric '"+screen.Metric+"'")
		}
		if !validOperators[screen.Operator] {
			conflicts = append(conflicts, "Screen '"+screen.Name+"' uses unknown operator '"+screen.Operator+"'")
		}
	}

	return conflicts
}

// checkDuplicates checks for duplicate values in a slice and returns error messages
func checkDuplicates(fieldName string, values []string) []string {
	var errors []string
	seen := make(map[string]bool)

	for _, value := range values {
		if seen[value] {
			errors = append(errors, "Duplicate value '"+value+"' found in "+fieldName)
		}
		seen[value] = true
	}

	return errors
}

// ApplyDefaults applies default values to the whole case configuration
func (c *CaseConfig) ApplyDefaults() {
	c.Settings.ApplyDefaults()
	if c.Anchors == nil {
		c.Anchors = []Anchor{}
	}
}

// Validate checks the case configuration and returns a list of
// human-readable conflicts. Anchor placements are only range-checked here;
// conflicts between overlapping anchors surface when the constraint set is
// built against the parsed ciphertext.
func (c *CaseConfig) Validate() []string {
	var conflicts []string

	if c.Name == "" {
		conflicts = append(conflicts, "Case name is required")
	} else if strings.TrimSpace(c.Name) != c.Name {
		conflicts = append(conflicts, "Case name cannot have leading or trailing whitespace")
	}

	if strings.TrimSpace(c.Ciphertext) == "" {
		conflicts = append(conflicts, "Ciphertext is required")
	}

	for _, anchor := range c.Anchors {
		if anchor.Start < 0 {
			conflicts = append(conflicts, "Anchor starts cannot be negative")
		}
		if strings.TrimSpace(anchor.Plain) == "" {
			conflicts = append(conflicts, "Anchor plaintext cannot be empty")
		}
	}

	conflicts = append(conflicts, c.Settings.Validate()...)

	return conflicts
}
