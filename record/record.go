/*
Package record defines the raw attendance data the engine consumes.

PURPOSE:
  A DailyRecord is one employee-day exactly as entered: clock times as the
  "HH:MM" strings the UI captured, breaks in entry order, and a reference
  to the shift policy in force. Records are the source of truth - every
  derived number is recomputed from them on demand and never stored back.

KEY OPERATIONS:
  - SortByDate:       stable date-ascending order, required before any
    flex-bank fold.
  - ConsolidateByDay: collapses multiple records sharing a date into one
    synthetic record (earliest in, latest out, concatenated breaks) before
    daily totals are computed.

VALIDATION:
  Records are NOT validated here. Malformed time strings surface as
  InvalidTimeFormat errors from whichever calculation first parses them;
  the record package only compares times where consolidation needs to.

SEE ALSO:
  - engine/daily.go:  turns one record + policy into a CalculationResult
  - engine/weekly.go: consolidates and aggregates records per week
*/
package record

import (
	"sort"

	"github.com/warp/worktime-engine/clock"
)

// =============================================================================
// DAILY RECORD - One employee-day as entered
// =============================================================================

// BreakEntry is a single non-lunch break, as entered.
type BreakEntry struct {
	Start string `json:"start"`
	End   string `json:"end"`
}

// DailyRecord is one employee-day of raw attendance data. Time fields hold
// "HH:MM" strings; parsing happens at calculation time so that bad input is
// reported against the calculation that needed it.
type DailyRecord struct {
	ID         string
	EmployeeID string
	Date       clock.Date

	ClockIn  string
	ClockOut string

	LunchStart string
	LunchEnd   string

	// Breaks are non-lunch breaks in entry order. Assumed pairwise
	// non-overlapping; not validated.
	Breaks []BreakEntry

	ShiftPolicyID string

	// OvertimeStart/End declare a pre-approved overtime window, distinct
	// from late-stay overtime. Both empty means no declared overtime.
	OvertimeStart string
	OvertimeEnd   string

	// FlexBank is an optional precomputed balance carried by the UI for
	// display. The engine ignores it and always recomputes.
	FlexBank *clock.Minutes
}

// HasDeclaredOvertime reports whether the record carries an explicit
// overtime window.
func (r DailyRecord) HasDeclaredOvertime() bool {
	return r.OvertimeStart != "" && r.OvertimeEnd != ""
}

// =============================================================================
// ORDERING AND CONSOLIDATION
// =============================================================================

// SortByDate sorts records date-ascending, in place. The sort is stable so
// same-day records keep their entry order.
func SortByDate(recs []DailyRecord) {
	sort.SliceStable(recs, func(i, j int) bool {
		return recs[i].Date.Before(recs[j].Date)
	})
}

// ConsolidateByDay collapses records sharing a calendar date into one
// synthetic record per day: earliest clock-in, latest clock-out, earliest
// lunch start, latest lunch end, and all breaks concatenated in entry order
// (overlaps are not merged). Single-record days pass through unchanged.
//
// Input order is preserved by first occurrence of each date. Comparing
// times requires parsing them, so malformed input fails here with an
// InvalidTimeFormat error.
func ConsolidateByDay(recs []DailyRecord) ([]DailyRecord, error) {
	byDate := make(map[string]int)
	var out []DailyRecord

	for _, rec := range recs {
		key := rec.Date.String()
		idx, seen := byDate[key]
		if !seen {
			merged := rec
			merged.Breaks = append([]BreakEntry(nil), rec.Breaks...)
			byDate[key] = len(out)
			out = append(out, merged)
			continue
		}

		merged, err := mergeRecords(out[idx], rec)
		if err != nil {
			return nil, err
		}
		out[idx] = merged
	}
	return out, nil
}

func mergeRecords(a, b DailyRecord) (DailyRecord, error) {
	var err error
	if a.ClockIn, err = earliest(a.ClockIn, b.ClockIn); err != nil {
		return DailyRecord{}, err
	}
	if a.ClockOut, err = latest(a.ClockOut, b.ClockOut); err != nil {
		return DailyRecord{}, err
	}
	if a.LunchStart, err = earliest(a.LunchStart, b.LunchStart); err != nil {
		return DailyRecord{}, err
	}
	if a.LunchEnd, err = latest(a.LunchEnd, b.LunchEnd); err != nil {
		return DailyRecord{}, err
	}
	a.Breaks = append(a.Breaks, b.Breaks...)
	return a, nil
}

// earliest and latest pick between two "HH:MM" strings. An empty string
// means the field was not entered (a no-lunch record leaves both lunch
// fields blank), so the non-empty side wins and two blanks stay blank.
func earliest(a, b string) (string, error) {
	if a == "" || b == "" {
		return a + b, nil
	}
	am, bm, err := parsePair(a, b)
	if err != nil {
		return "", err
	}
	if bm < am {
		return b, nil
	}
	return a, nil
}

func latest(a, b string) (string, error) {
	if a == "" || b == "" {
		return a + b, nil
	}
	am, bm, err := parsePair(a, b)
	if err != nil {
		return "", err
	}
	if bm > am {
		return b, nil
	}
	return a, nil
}

func parsePair(a, b string) (clock.Minutes, clock.Minutes, error) {
	am, err := clock.ParseClock(a)
	if err != nil {
		return 0, 0, err
	}
	bm, err := clock.ParseClock(b)
	if err != nil {
		return 0, 0, err
	}
	return am, bm, nil
}
