package clock

import (
	"errors"
	"testing"

	internalErrors "github.com/k4lab/go-cipher-search/internal/errors"
)

func TestFromPartsLitCounts(t *testing.T) {
	tests := []struct {
		name   string
		hour   int
		minute int
		second int
		want   int
	}{
		{"midnight", 0, 0, 0, 0},
		{"one second past midnight", 0, 0, 1, 1},
		{"last second of the day", 23, 59, 59, 23}, // the documented maximum
		{"mid afternoon", 17, 35, 42, 12},          // 3+2 hour lamps, 7+0 minute lamps, even second
		{"before five-minute rollover", 10, 4, 59, 7},
		{"after five-minute rollover", 10, 5, 0, 3},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			s, err := FromParts(tt.hour, tt.minute, tt.second)
			if err != nil {
				t.Fatalf("FromParts returned error: %v", err)
			}
			if got := s.LitCount(); got != tt.want {
				t.Errorf("LitCount(%02d:%02d:%02d) = %d, want %d",
					tt.hour, tt.minute, tt.second, got, tt.want)
			}
		})
	}
}

func TestFromPartsDomain(t *testing.T) {
	bad := [][3]int{
		{-1, 0, 0},
		{24, 0, 0},
		{0, -1, 0},
		{0, 60, 0},
		{0, 0, -1},
		{0, 0, 60},
	}
	for _, parts := range bad {
		if _, err := FromParts(parts[0], parts[1], parts[2]); err == nil {
			t.Errorf("FromParts(%v) should fail", parts)
		} else if !errors.Is(err, internalErrors.ErrInvalidDomain) {
			t.Errorf("FromParts(%v) error should match ErrInvalidDomain, got %v", parts, err)
		}
	}
}

func TestFromSeconds(t *testing.T) {
	t.Run("agrees with FromParts", func(t *testing.T) {
		for _, total := range []int{0, 1, 3599, 3600, 36299, 86399} {
			fromSeconds, err := FromSeconds(total)
			if err != nil {
				t.Fatalf("FromSeconds(%d) returned error: %v", total, err)
			}
			fromParts, err := FromParts(total/3600, (total/60)%60, total%60)
			if err != nil {
				t.Fatalf("FromParts returned error: %v", err)
			}
			if fromSeconds != fromParts {
				t.Errorf("FromSeconds(%d) disagrees with FromParts", total)
			}
		}
	})

	t.Run("rejects out-of-domain input", func(t *testing.T) {
		for _, total := range []int{-1, SecondsPerDay, SecondsPerDay + 1} {
			if _, err := FromSeconds(total); err == nil {
				t.Errorf("FromSeconds(%d) should fail", total)
			} else if !errors.Is(err, internalErrors.ErrInvalidDomain) {
				t.Errorf("FromSeconds(%d) error should match ErrInvalidDomain, got %v", total, err)
			}
		}
	})

	t.Run("pure function", func(t *testing.T) {
		a, _ := FromSeconds(45296)
		b, _ := FromSeconds(45296)
		if a != b {
			t.Error("equal inputs must produce equal states")
		}
	})
}

func TestBitString(t *testing.T) {
	// 13:17:01 lights the seconds lamp, two 5-hour lamps, three 1-hour
	// lamps, three 5-minute lamps, and two 1-minute lamps.
	s, err := FromParts(13, 17, 1)
	if err != nil {
		t.Fatalf("FromParts returned error: %v", err)
	}

	want := "1" + "1100" + "1110" + "11100000000" + "1100"
	if got := s.BitString(); got != want {
		t.Errorf("BitString() = %s, want %s", got, want)
	}
	if len(s.BitString()) != LampCount {
		t.Errorf("BitString length = %d, want %d", len(s.BitString()), LampCount)
	}

	zero, _ := FromParts(0, 0, 0)
	if zero.Uint32() != 0 {
		t.Errorf("Uint32 at midnight = %d, want 0", zero.Uint32())
	}
	// Only the seconds lamp (most significant bit) lit
	oneSecond, _ := FromParts(0, 0, 1)
	if oneSecond.Uint32() != 1<<23 {
		t.Errorf("Uint32 at 00:00:01 = %d, want %d", oneSecond.Uint32(), 1<<23)
	}
}

func TestMinuteBlockProgression(t *testing.T) {
	// Within a 5-minute block, at fixed seconds parity, the count rises by
	// exactly one lamp per minute.
	for minute := 5; minute < 9; minute++ {
		cur, _ := FromParts(10, minute, 0)
		next, _ := FromParts(10, minute+1, 0)
		if next.LitCount() != cur.LitCount()+1 {
			t.Errorf("10:%02d -> 10:%02d count %d -> %d, want +1",
				minute, minute+1, cur.LitCount(), next.LitCount())
		}
	}

	// Crossing the 5-minute boundary clears four 1-minute lamps and lights
	// one 5-minute lamp.
	before, _ := FromParts(10, 9, 0)
	after, _ := FromParts(10, 10, 0)
	if before.LitCount()-after.LitCount() != 3 {
		t.Errorf("5-minute rollover 10:09 -> 10:10 count %d -> %d, want a drop of 3",
			before.LitCount(), after.LitCount())
	}
}

func TestWholeDayInvariants(t *testing.T) {
	seen := make(map[uint32]struct{}, 2880)

	for total := 0; total < SecondsPerDay; total++ {
		s, err := FromSeconds(total)
		if err != nil {
			t.Fatalf("FromSeconds(%d) returned error: %v", total, err)
		}
		count := s.LitCount()
		if count < 0 || count > 23 {
			t.Fatalf("LitCount at %d = %d, outside [0, 23]", total, count)
		}
		if shift := s.Shift(26); shift != count%26 {
			t.Fatalf("Shift(26) at %d = %d, want %d", total, shift, count%26)
		}
		seen[s.Uint32()] = struct{}{}
	}

	// 24 hour rows x 60 minute values x 2 seconds parities
	if len(seen) != 2880 {
		t.Errorf("distinct states = %d, want 2880", len(seen))
	}
}
