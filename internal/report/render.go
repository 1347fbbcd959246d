package report

import (
	"fmt"
	"io"
	"strings"
	"time"

	"github.com/k4lab/go-cipher-search/model"
)

// WriteText renders a solution record for human reading: a run summary, then
// each ranked result with its parameters, both match counts kept visibly
// separate, the plaintext in ten-symbol groups, and the constrained rows of
// its ledger.
func WriteText(w io.Writer, record *model.SolutionRecord) error {
	var b strings.Builder

	fmt.Fprintf(&b, "Run %s (case %s)\n", record.ID, record.CaseName)
	fmt.Fprintf(&b, "Status: %s\n", record.Status)
	fmt.Fprintf(&b, "Trials: %d of %d formulas in %s\n",
		record.TrialsEvaluated, record.GridSize, record.Elapsed.Round(time.Millisecond))
	for _, warning := range record.Warnings {
		fmt.Fprintf(&b, "Warning: %s\n", warning)
	}

	for _, result := range record.Results {
		fmt.Fprintf(&b, "\n#%d %s\n", result.Rank, result.Assignment.Params)
		score := result.Score
		fmt.Fprintf(&b, "  base matches %d/%d, corrected %d/%d, total |correction| %d\n",
			score.BaseMatches, score.ConstraintCount,
			score.CorrectedMatches, score.ConstraintCount, score.TotalAbsCorrection)
		fmt.Fprintf(&b, "  plaintext: %s\n", groupSymbols(result.Plaintext, 10))
		writeConstrainedRows(&b, result.Ledger)
		for _, annotation := range result.Annotations {
			fmt.Fprintf(&b, "  %s\n", annotation)
		}
	}

	if len(record.Screens) > 0 {
		fmt.Fprintf(&b, "\nScreens:\n")
		for _, app := range record.Screens {
			fmt.Fprintf(&b, "  [%s] rank %d: %s\n", app.ScreenName, app.Rank, app.Note)
		}
	}

	_, err := io.WriteString(w, b.String())
	return err
}

func writeConstrainedRows(b *strings.Builder, ledger []model.LedgerRow) {
	constrained := 0
	for _, row := range ledger {
		if row.Provenance == model.ProvenanceConstrained {
			constrained++
		}
	}
	if constrained == 0 {
		return
	}

	fmt.Fprintf(b, "  constrained rows (%d of %d positions):\n", constrained, len(ledger))
	fmt.Fprintf(b, "    pos cipher plain base corr total matched\n")
	for _, row := range ledger {
		if row.Provenance != model.ProvenanceConstrained {
			continue
		}
		matched := "no"
		if row.Matched {
			matched = "yes"
		}
		fmt.Fprintf(b, "    %3d %6s %5s %4d %+5d %5d %s\n",
			row.Position, row.CipherSymbol, row.PlainSymbol,
			row.BaseShift, row.Correction, row.TotalShift, matched)
	}
}

// groupSymbols splits a symbol string into space-separated groups of the
// given size for reading.
func groupSymbols(s string, size int) string {
	if len(s) <= size {
		return s
	}
	var b strings.Builder
	for i := 0; i < len(s); i += size {
		if i > 0 {
			b.WriteByte(' ')
		}
		end := i + size
		if end > len(s) {
			end = len(s)
		}
		b.WriteString(s[i:end])
	}
	return b.String()
}
