package clock_test

import (
	"errors"
	"testing"
	"time"

	"github.com/warp/worktime-engine/clock"
)

// =============================================================================
// PARSE / FORMAT
// =============================================================================

func TestParseFormat_RoundTrip_EveryMinuteOfDay(t *testing.T) {
	// Property: parseTime(formatMinutes(m)) == m for every wall-clock minute.
	for m := clock.Minutes(0); m < clock.MinutesPerDay; m++ {
		s := clock.FormatMinutes(m)
		got, err := clock.ParseClock(s)
		if err != nil {
			t.Fatalf("ParseClock(%q): unexpected error %v", s, err)
		}
		if got != m {
			t.Fatalf("round trip of %d via %q gave %d", m, s, got)
		}
	}
}

func TestParseClock_SingleDigitHour(t *testing.T) {
	got, err := clock.ParseClock("8:05")
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if got != 485 {
		t.Errorf("expected 485, got %d", got)
	}
}

func TestParseClock_RejectsMalformed(t *testing.T) {
	cases := []string{
		"",
		"8",
		"8:5",
		"08:5",
		"125:00",
		"24:00",
		"23:60",
		"23:75",
		"-1:30",
		"+9:30", // Atoi accepts a leading sign; the parser must not
		"10:+5",
		"1:-30",
		"ab:cd",
		"08-30",
		"08:30:00",
	}
	for _, input := range cases {
		_, err := clock.ParseClock(input)
		if err == nil {
			t.Errorf("ParseClock(%q): expected error, got none", input)
			continue
		}
		if !errors.Is(err, clock.ErrInvalidTimeFormat) {
			t.Errorf("ParseClock(%q): error %v is not ErrInvalidTimeFormat", input, err)
		}
		var ite *clock.InvalidTimeError
		if !errors.As(err, &ite) {
			t.Errorf("ParseClock(%q): error %v is not *InvalidTimeError", input, err)
		}
	}
}

func TestFormatMinutes_Negative(t *testing.T) {
	if got := clock.FormatMinutes(-30); got != "-00:30" {
		t.Errorf("expected -00:30, got %s", got)
	}
	if got := clock.FormatMinutes(-90); got != "-01:30" {
		t.Errorf("expected -01:30, got %s", got)
	}
}

func TestFormatSignedMinutes(t *testing.T) {
	if got := clock.FormatSignedMinutes(30); got != "+00:30" {
		t.Errorf("expected +00:30, got %s", got)
	}
	if got := clock.FormatSignedMinutes(0); got != "+00:00" {
		t.Errorf("expected +00:00, got %s", got)
	}
	if got := clock.FormatSignedMinutes(-20); got != "-00:20" {
		t.Errorf("expected -00:20, got %s", got)
	}
}

// =============================================================================
// OVERNIGHT RESOLUTION
// =============================================================================

func TestResolveOvernight(t *testing.T) {
	// 22:00 -> 02:00 wraps midnight.
	if got := clock.ResolveOvernight(1320, 120); got != 1560 {
		t.Errorf("expected 1560, got %d", got)
	}
	// 08:00 -> 17:00 does not.
	if got := clock.ResolveOvernight(480, 1020); got != 1020 {
		t.Errorf("expected 1020, got %d", got)
	}
	// An already-resolved end (>= start) passes through unchanged, so a
	// correctly composed calculation applies the wrap exactly once.
	if got := clock.ResolveOvernight(1320, 1560); got != 1560 {
		t.Errorf("re-resolving an already-resolved pair changed it: %d", got)
	}
}

func TestInterval_Duration_Overnight(t *testing.T) {
	iv := clock.Interval{Start: 1320, End: 120} // 22:00-02:00
	if got := iv.Duration(); got != 240 {
		t.Errorf("expected 240, got %d", got)
	}
}

func TestInterval_Overlap_Clipping(t *testing.T) {
	window := clock.Interval{Start: 1020, End: 1140} // 17:00-19:00

	// Fully inside.
	if got := (clock.Interval{Start: 1050, End: 1080}).Overlap(window); got != 30 {
		t.Errorf("inside: expected 30, got %d", got)
	}
	// Straddles the window start: only the inside half counts.
	if got := (clock.Interval{Start: 990, End: 1050}).Overlap(window); got != 30 {
		t.Errorf("straddle: expected 30, got %d", got)
	}
	// Disjoint.
	if got := (clock.Interval{Start: 600, End: 660}).Overlap(window); got != 0 {
		t.Errorf("disjoint: expected 0, got %d", got)
	}
}

// =============================================================================
// DATES AND WEEKS
// =============================================================================

func TestWeekOf(t *testing.T) {
	// Wednesday 2025-03-12 -> week of Monday 2025-03-10.
	wed := clock.NewDate(2025, time.March, 12)
	week := clock.WeekOf(wed)
	if !week.Start.Equal(clock.NewDate(2025, time.March, 10)) {
		t.Errorf("expected week start 2025-03-10, got %s", week.Start)
	}
	if !week.End.Equal(clock.NewDate(2025, time.March, 16)) {
		t.Errorf("expected week end 2025-03-16, got %s", week.End)
	}

	// Sunday belongs to the week that started the previous Monday.
	sun := clock.NewDate(2025, time.March, 16)
	if got := clock.WeekOf(sun); !got.Start.Equal(week.Start) {
		t.Errorf("Sunday: expected week start %s, got %s", week.Start, got.Start)
	}

	// Monday starts its own week.
	mon := clock.NewDate(2025, time.March, 10)
	if got := clock.WeekOf(mon); !got.Start.Equal(mon) {
		t.Errorf("Monday: expected week start %s, got %s", mon, got.Start)
	}
}

func TestWeek_Days(t *testing.T) {
	week := clock.WeekOf(clock.NewDate(2025, time.March, 12))
	days := week.Days()
	if len(days) != 7 {
		t.Fatalf("expected 7 days, got %d", len(days))
	}
	if !days[0].Equal(week.Start) || !days[6].Equal(week.End) {
		t.Errorf("days span %s..%s, want %s..%s", days[0], days[6], week.Start, week.End)
	}
}
