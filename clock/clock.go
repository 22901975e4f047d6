/*
Package clock provides the time primitives for the working-time engine.

PURPOSE:
  Everything in this system reduces to minutes-since-midnight arithmetic.
  This package owns that representation and the conversions around it:
  parsing "HH:MM" wall-clock strings, formatting (possibly signed) minute
  counts back to "HH:MM", and resolving overnight spans where a shift or
  break ends after midnight.

KEY CONCEPTS:
  - Minutes:  a wall-clock time as minutes since midnight (0-1439), or a
    signed duration in minutes when used as a delta (flex-bank balances).
  - Interval: a start/end pair of wall-clock times. End < start means the
    interval wraps past midnight and resolves to end + 1440.
  - Date:     a calendar day with no time component. Records are keyed by
    Date; week windows are built from it.

INVARIANT:
  ResolveOvernight must be applied exactly once per interval boundary
  before taking a difference. Interval.Duration and Interval.Overlap do
  this internally; callers working with raw Minutes pairs do it themselves.

SEE ALSO:
  - engine/daily.go: consumes these primitives for the daily calculation
  - clock/date.go:   Date and the week windows built on it
*/
package clock

import (
	"fmt"
	"strconv"
	"strings"
)

// =============================================================================
// MINUTES - Wall-clock time or signed duration, in minutes
// =============================================================================

// Minutes is a count of minutes. As a wall-clock time it is minutes since
// midnight (0-1439, or up to 2879 once overnight-resolved). As a duration
// or balance it may be negative.
type Minutes int

// MinutesPerDay is the wrap amount for overnight resolution.
const MinutesPerDay Minutes = 1440

// ParseClock parses a "HH:MM" wall-clock string into Minutes.
//
// The input must match ^\d{1,2}:\d{2}$ with hour in [0,23] and minute in
// [0,59]. Out-of-range values are REJECTED, not clamped: "23:75" is an
// InvalidTimeError, never 23:59 or a silent wrap.
func ParseClock(s string) (Minutes, error) {
	hh, mm, ok := strings.Cut(s, ":")
	if !ok || !allDigits(hh, 1, 2) || !allDigits(mm, 2, 2) {
		return 0, &InvalidTimeError{Input: s, Reason: "must be HH:MM"}
	}
	hour, _ := strconv.Atoi(hh)
	minute, _ := strconv.Atoi(mm)
	if hour > 23 {
		return 0, &InvalidTimeError{Input: s, Reason: "hour out of range"}
	}
	if minute > 59 {
		return 0, &InvalidTimeError{Input: s, Reason: "minute out of range"}
	}
	return Minutes(hour*60 + minute), nil
}

// allDigits reports whether s is minLen to maxLen ASCII digits. Atoi alone
// is too lenient here: it tolerates a leading sign, which would let "+9:30"
// slip through as a valid clock time.
func allDigits(s string, minLen, maxLen int) bool {
	if len(s) < minLen || len(s) > maxLen {
		return false
	}
	for _, c := range []byte(s) {
		if c < '0' || c > '9' {
			return false
		}
	}
	return true
}

// FormatMinutes renders a minute count as "HH:MM". Negative values render
// with a leading "-" and absolute-value components ("-00:30"); non-negative
// values are zero-padded with no sign. Hours are not wrapped at 24, so
// durations above a day format as "25:30" etc.
func FormatMinutes(m Minutes) string {
	if m < 0 {
		return "-" + FormatMinutes(-m)
	}
	return fmt.Sprintf("%02d:%02d", m/60, m%60)
}

// FormatSignedMinutes is FormatMinutes with an explicit "+" on non-negative
// values. Used for flex-bank deltas where the sign carries meaning.
func FormatSignedMinutes(m Minutes) string {
	if m < 0 {
		return FormatMinutes(m)
	}
	return "+" + FormatMinutes(m)
}

// ResolveOvernight corrects an interval end for midnight wrap: if end is
// before start the span crossed midnight and end+1440 is returned, otherwise
// end is returned unchanged. Apply exactly once per boundary.
func ResolveOvernight(start, end Minutes) Minutes {
	if end < start {
		return end + MinutesPerDay
	}
	return end
}

func (m Minutes) String() string { return FormatMinutes(m) }

// =============================================================================
// INTERVAL - A wall-clock span, possibly wrapping midnight
// =============================================================================

// Interval is a start/end pair of wall-clock times. An End before Start
// denotes an overnight span.
type Interval struct {
	Start Minutes
	End   Minutes
}

// ResolvedEnd returns the overnight-corrected end of the interval.
func (iv Interval) ResolvedEnd() Minutes {
	return ResolveOvernight(iv.Start, iv.End)
}

// Duration returns the span length in minutes, overnight-resolved.
func (iv Interval) Duration() Minutes {
	return iv.ResolvedEnd() - iv.Start
}

// Overlap returns how many minutes of iv fall inside window, both resolved.
// Partial intersections are clipped; disjoint intervals yield 0.
func (iv Interval) Overlap(window Interval) Minutes {
	start := max(iv.Start, window.Start)
	end := min(iv.ResolvedEnd(), window.ResolvedEnd())
	if end <= start {
		return 0
	}
	return end - start
}
