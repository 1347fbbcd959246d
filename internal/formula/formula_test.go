package formula

import (
	"errors"
	"testing"

	"github.com/k4lab/go-cipher-search/config"
	apperrors "github.com/k4lab/go-cipher-search/internal/errors"
	"github.com/k4lab/go-cipher-search/model"
)

func TestLinearBase(t *testing.T) {
	tests := []struct {
		name       string
		multiplier int
		offset     int
		pos        int
		want       int
	}{
		{"offset at position zero", 4, 20, 0, 20},
		{"first step", 4, 20, 1, 24},
		{"wraps past alphabet", 4, 20, 2, 2},
		{"full cycle returns to offset", 4, 20, 26, 20},
		{"constant when multiplier zero", 0, 5, 96, 5},
		{"large product normalizes", 25, 25, 96, 7},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			f := Linear{Multiplier: tt.multiplier, Offset: tt.offset}
			if got := f.Base(tt.pos); got != tt.want {
				t.Errorf("Expected base %d, got %d", tt.want, got)
			}
		})
	}
}

func TestClockBase(t *testing.T) {
	tests := []struct {
		name  string
		start int
		step  int
		pos   int
		want  int
	}{
		{"midnight start", 0, 1, 0, 0},
		{"one second in", 0, 1, 1, 1},
		{"one minute one second in", 0, 1, 61, 2},
		{"last second of the day", 86399, 1, 0, 23},
		{"wraps past midnight", 86399, 1, 1, 0},
		{"negative step wraps backwards", 0, -60, 1, 22},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			f := Clock{StartSecond: tt.start, StepSeconds: tt.step}
			if got := f.Base(tt.pos); got != tt.want {
				t.Errorf("Expected base %d, got %d", tt.want, got)
			}
		})
	}
}

func TestNewFromParams(t *testing.T) {
	t.Run("linear round trip", func(t *testing.T) {
		params := model.ParameterSet{Family: model.FamilyLinear, Multiplier: 4, Offset: 20}
		f, err := New(params)
		if err != nil {
			t.Fatalf("New failed: %v", err)
		}
		if f.Family() != model.FamilyLinear {
			t.Errorf("Expected linear family, got %q", f.Family())
		}
		if f.Params() != params {
			t.Errorf("Expected params to round trip, got %+v", f.Params())
		}
	})

	t.Run("clock round trip", func(t *testing.T) {
		params := model.ParameterSet{Family: model.FamilyClock, StartSecond: 3600, StepSeconds: 60}
		f, err := New(params)
		if err != nil {
			t.Fatalf("New failed: %v", err)
		}
		if f.Params() != params {
			t.Errorf("Expected params to round trip, got %+v", f.Params())
		}
	})

	t.Run("unknown family", func(t *testing.T) {
		_, err := New(model.ParameterSet{Family: "affine"})
		if err == nil {
			t.Fatal("Expected error for unknown family")
		}
		if !errors.Is(err, apperrors.ErrInvalidDomain) {
			t.Errorf("Expected ErrInvalidDomain, got %v", err)
		}
	})
}

func TestTotalShift(t *testing.T) {
	f := Linear{Multiplier: 0, Offset: 20}
	corrections := model.CorrectionTable{5: -12, 6: 13}

	if got := TotalShift(f, corrections, 5); got != 8 {
		t.Errorf("Expected total shift 8, got %d", got)
	}
	if got := TotalShift(f, corrections, 6); got != 7 {
		t.Errorf("Expected total shift 7, got %d", got)
	}
	if got := TotalShift(f, corrections, 0); got != 20 {
		t.Errorf("Expected base shift where no correction exists, got %d", got)
	}
	if got := TotalShift(Linear{}, model.CorrectionTable{0: -1}, 0); got != 25 {
		t.Errorf("Expected negative total to normalize to 25, got %d", got)
	}
}

func linearOnlySettings() config.CaseSettings {
	return config.CaseSettings{
		Families:      []string{config.FamilyNameLinear},
		MultiplierMin: 0, MultiplierMax: 25,
		OffsetMin: 0, OffsetMax: 25,
	}
}

func TestGrid(t *testing.T) {
	t.Run("full linear grid", func(t *testing.T) {
		formulas, err := Grid(linearOnlySettings())
		if err != nil {
			t.Fatalf("Grid failed: %v", err)
		}
		if len(formulas) != 676 {
			t.Fatalf("Expected 676 formulas, got %d", len(formulas))
		}
		if formulas[0].Params() != (model.ParameterSet{Family: model.FamilyLinear}) {
			t.Errorf("Expected linear(0,0) first, got %+v", formulas[0].Params())
		}
		if formulas[1].(Linear).Offset != 1 {
			t.Errorf("Expected offset-minor order, got %+v", formulas[1].Params())
		}
		last := formulas[675].(Linear)
		if last.Multiplier != 25 || last.Offset != 25 {
			t.Errorf("Expected linear(25,25) last, got %+v", last)
		}
	})

	t.Run("single point grid", func(t *testing.T) {
		settings := config.CaseSettings{
			Families:      []string{config.FamilyNameLinear},
			MultiplierMin: 4, MultiplierMax: 4,
			OffsetMin: 20, OffsetMax: 20,
		}
		formulas, err := Grid(settings)
		if err != nil {
			t.Fatalf("Grid failed: %v", err)
		}
		if len(formulas) != 1 {
			t.Fatalf("Expected 1 formula, got %d", len(formulas))
		}
		if f := formulas[0].(Linear); f.Multiplier != 4 || f.Offset != 20 {
			t.Errorf("Expected linear(4,20), got %+v", f)
		}
	})

	t.Run("mixed families", func(t *testing.T) {
		settings := linearOnlySettings()
		settings.Families = []string{config.FamilyNameLinear, config.FamilyNameClock}
		settings.ClockStepsSeconds = []int{1, 60}
		settings.ClockStartStride = 60

		formulas, err := Grid(settings)
		if err != nil {
			t.Fatalf("Grid failed: %v", err)
		}
		want := 676 + 2*1440
		if len(formulas) != want {
			t.Fatalf("Expected %d formulas, got %d", want, len(formulas))
		}
		first := formulas[676].(Clock)
		if first.StartSecond != 0 || first.StepSeconds != 1 {
			t.Errorf("Expected clock(start=0, step=1) after the linear block, got %+v", first)
		}
		second := formulas[676+1440].(Clock)
		if second.StartSecond != 0 || second.StepSeconds != 60 {
			t.Errorf("Expected step-major clock order, got %+v", second)
		}

		size, err := GridSize(settings)
		if err != nil {
			t.Fatalf("GridSize failed: %v", err)
		}
		if size != len(formulas) {
			t.Errorf("Expected GridSize %d to match Grid length %d", size, len(formulas))
		}
	})

	t.Run("unknown family", func(t *testing.T) {
		settings := linearOnlySettings()
		settings.Families = []string{"affine"}
		if _, err := Grid(settings); !errors.Is(err, apperrors.ErrInvalidDomain) {
			t.Errorf("Expected ErrInvalidDomain, got %v", err)
		}
	})
}

func TestRestrict(t *testing.T) {
	full, err := Grid(linearOnlySettings())
	if err != nil {
		t.Fatalf("Grid failed: %v", err)
	}

	t.Run("period thirteen keeps even multipliers", func(t *testing.T) {
		kept := Restrict(full, []model.KeyLengthCandidate{{Length: 13, Votes: 9}})
		// Multipliers 0, 2, 4, ..., 24: 14 values over 26 offsets each.
		if len(kept) != 14*26 {
			t.Errorf("Expected 364 formulas, got %d", len(kept))
		}
	})

	t.Run("period two keeps only zero and thirteen", func(t *testing.T) {
		kept := Restrict(full, []model.KeyLengthCandidate{{Length: 2, Votes: 3}})
		if len(kept) != 2*26 {
			t.Errorf("Expected 52 formulas, got %d", len(kept))
		}
	})

	t.Run("no candidates keeps constants", func(t *testing.T) {
		kept := Restrict(full, nil)
		if len(kept) != 26 {
			t.Errorf("Expected only multiplier 0, got %d formulas", len(kept))
		}
	})

	t.Run("clock formulas pass through", func(t *testing.T) {
		mixed := []Formula{Clock{StartSecond: 0, StepSeconds: 1}, Linear{Multiplier: 3}}
		kept := Restrict(mixed, []model.KeyLengthCandidate{{Length: 2, Votes: 1}})
		if len(kept) != 1 {
			t.Fatalf("Expected 1 formula, got %d", len(kept))
		}
		if _, ok := kept[0].(Clock); !ok {
			t.Errorf("Expected the clock formula to survive, got %+v", kept[0].Params())
		}
	})
}
