package report

import (
	"fmt"

	"github.com/k4lab/go-cipher-search/cipher"
	"github.com/k4lab/go-cipher-search/config"
	"github.com/k4lab/go-cipher-search/internal/profile"
	"github.com/k4lab/go-cipher-search/model"
)

// applyScreens evaluates every declared screen against every ranked result.
// Screens observe and annotate: they never drop a result and never change
// its rank.
func applyScreens(results []model.RankedResult, screens []config.Screen) []model.ScreenApplication {
	if len(screens) == 0 {
		return nil
	}

	var applications []model.ScreenApplication
	for i := range results {
		result := &results[i]
		metrics := screenMetrics{result: result}
		for _, screen := range screens {
			value, ok := metrics.value(screen.Metric)
			if !ok || !compare(value, screen.Operator, screen.Value) {
				continue
			}
			applications = append(applications, model.ScreenApplication{
				ScreenName: screen.Name,
				Rank:       result.Rank,
				Note:       screenNote(screen, value),
			})
		}
	}
	return applications
}

// screenMetrics resolves metric names for one result. The plaintext profile
// is computed at most once per result, and only when a text metric is
// actually screened.
type screenMetrics struct {
	result   *model.RankedResult
	profiled bool
	report   model.ProfileReport
}

func (m *screenMetrics) value(metric string) (float64, bool) {
	switch metric {
	case "base_matches":
		return float64(m.result.Score.BaseMatches), true
	case "total_abs_correction":
		return float64(m.result.Score.TotalAbsCorrection), true
	case "ic", "chi_squared", "entropy":
		if !m.profiled {
			text, err := cipher.ParseText(m.result.Plaintext)
			if err != nil {
				return 0, false
			}
			m.report = profile.Profile(text)
			m.profiled = true
		}
		switch metric {
		case "ic":
			return m.report.IC, true
		case "chi_squared":
			return m.report.ChiSquared, true
		default:
			return m.report.Entropy, true
		}
	default:
		return 0, false
	}
}

func compare(value float64, operator string, threshold float64) bool {
	switch operator {
	case "gt":
		return value > threshold
	case "gte":
		return value >= threshold
	case "lt":
		return value < threshold
	case "lte":
		return value <= threshold
	case "eq":
		return value == threshold
	default:
		return false
	}
}

func screenNote(screen config.Screen, value float64) string {
	note := fmt.Sprintf("%s %s %g, observed %.4f", screen.Metric, screen.Operator, screen.Value, value)
	if screen.Note != "" {
		note = screen.Note + " (" + note + ")"
	}
	return note
}
