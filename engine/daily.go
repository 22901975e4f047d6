/*
daily.go - The daily working-time calculation

PURPOSE:
  Turns one DailyRecord plus its resolved ShiftPolicy into one
  CalculationResult. This is the heart of the engine: a pure, deterministic
  function with no I/O, no ambient state, and no caching. Any failure is a
  caller data-integrity problem, never something to retry.

ALGORITHM:
  1. Parse and overnight-resolve every interval (clock span, lunch, breaks,
     shift bounds), each relative to its own start.
  2. Effective start: early arrival within the policy allowance counts from
     the actual clock-in when the policy says so; otherwise the shift start.
     Late arrival always counts from the actual clock-in - lateness reduces
     the total by itself, with no extra penalty.
  3. Effective end: a stay within the late-stay allowance counts (or is
     truncated to shift end, per policy) with NO overtime; a stay beyond the
     allowance truncates to shift end and books the ENTIRE late-by amount
     as overtime, not just the excess. Both behaviors are deliberate policy
     semantics carried over from the product - see the open questions in
     DESIGN.md before "fixing" either one.
  4. Total working = effective window - lunch - other breaks. Negative
     totals are legal output.

SEE ALSO:
  - engine/overtime.go: segmentation of separately DECLARED overtime windows
  - engine/flexbank.go: folds daily deltas into the running balance
*/
package engine

import (
	"fmt"

	"github.com/shopspring/decimal"

	"github.com/warp/worktime-engine/clock"
	"github.com/warp/worktime-engine/policy"
	"github.com/warp/worktime-engine/record"
)

var sixty = decimal.NewFromInt(60)

// CalculateDaily computes the full working-time breakdown for one record
// against one resolved shift policy.
//
// The policy must be fully populated; a zero policy is ErrInvalidInput.
// Malformed time strings fail with an InvalidTimeFormat error naming the
// offending field. Nothing is silently defaulted.
func CalculateDaily(rec record.DailyRecord, pol policy.ShiftPolicy) (CalculationResult, error) {
	if pol.ID == "" {
		return CalculationResult{}, fmt.Errorf("%w: record %s has no resolved shift policy", ErrInvalidInput, rec.ID)
	}

	clockIn, err := parseField("clock_in", rec.ClockIn)
	if err != nil {
		return CalculationResult{}, err
	}
	clockOut, err := parseField("clock_out", rec.ClockOut)
	if err != nil {
		return CalculationResult{}, err
	}
	clockOut = clock.ResolveOvernight(clockIn, clockOut)

	shiftStart := pol.RegularStart
	shiftEnd := clock.ResolveOvernight(pol.RegularStart, pol.RegularEnd)

	lunchDuration, lunchStart, lunchEnd, err := lunchSpan(rec)
	if err != nil {
		return CalculationResult{}, err
	}

	otherBreaks := clock.Minutes(0)
	for i, br := range rec.Breaks {
		start, err := parseField(fmt.Sprintf("breaks[%d].start", i), br.Start)
		if err != nil {
			return CalculationResult{}, err
		}
		end, err := parseField(fmt.Sprintf("breaks[%d].end", i), br.End)
		if err != nil {
			return CalculationResult{}, err
		}
		otherBreaks += clock.ResolveOvernight(start, end) - start
	}

	res := CalculationResult{
		LunchDuration:       lunchDuration,
		OtherBreaksDuration: otherBreaks,
	}

	// Effective start: early arrival may count, late arrival always counts
	// from the actual clock-in.
	res.EffectiveStart = clockIn
	if clockIn < shiftStart {
		earlyBy := shiftStart - clockIn
		res.EarlyArrival = true
		res.EarlyArrivalMinutes = earlyBy
		if earlyBy > pol.EarlyArrival.MaxMinutes || !pol.EarlyArrival.CountsTowardTotal {
			res.EffectiveStart = shiftStart
		}
	} else if clockIn > shiftStart {
		res.LateArrival = true
		res.LateArrivalMinutes = clockIn - shiftStart
	}

	// Effective end and the late-stay overtime split.
	res.EffectiveEnd = clockOut
	switch {
	case clockOut > shiftEnd:
		lateBy := clockOut - shiftEnd
		res.LateDeparture = true
		res.LateDepartureMinutes = lateBy
		if lateBy <= pol.LateStay.MaxMinutes {
			// Within the allowance: no overtime booked, even when the stay
			// is truncated below.
			if !pol.LateStay.CountsTowardTotal {
				res.EffectiveEnd = shiftEnd
			}
		} else {
			// Beyond the allowance: the whole late-by amount is overtime.
			res.EffectiveEnd = shiftEnd
			res.OvertimeMinutes = lateBy
		}
	case clockOut < shiftEnd:
		res.EarlyDeparture = true
		res.EarlyDepartureMinutes = shiftEnd - clockOut
	}

	res.TotalWorkingMinutes = (res.EffectiveEnd - res.EffectiveStart) - lunchDuration - otherBreaks
	res.RegularMinutes = res.TotalWorkingMinutes

	otMinutes := decimal.NewFromInt(int64(res.OvertimeMinutes))
	res.OvertimePay = otMinutes.Div(sixty).Mul(pol.LateStay.OvertimeMultiplier)
	if res.OvertimeMinutes > 0 && !pol.ShiftBonus.IsZero() {
		res.OvertimePay = res.OvertimePay.Add(pol.ShiftBonus)
	}
	res.TotalEffectiveMinutes = decimal.NewFromInt(int64(res.TotalWorkingMinutes)).
		Add(otMinutes.Mul(pol.LateStay.OvertimeMultiplier))

	// Lunch compliance. The flex window itself never wraps midnight.
	window := pol.Lunch.FlexWindow
	res.IsLunchInWindow = rec.LunchStart != "" &&
		lunchStart >= window.Start && lunchEnd <= window.End
	res.IsLunchCorrectDuration = lunchDuration == pol.Lunch.DurationMinutes

	return res, nil
}

// lunchSpan parses the lunch interval. A record with both lunch fields empty
// is treated as a day without lunch: zero duration, never in-window.
func lunchSpan(rec record.DailyRecord) (duration, start, end clock.Minutes, err error) {
	if rec.LunchStart == "" && rec.LunchEnd == "" {
		return 0, 0, 0, nil
	}
	if start, err = parseField("lunch_start", rec.LunchStart); err != nil {
		return 0, 0, 0, err
	}
	if end, err = parseField("lunch_end", rec.LunchEnd); err != nil {
		return 0, 0, 0, err
	}
	end = clock.ResolveOvernight(start, end)
	return end - start, start, end, nil
}

func parseField(field, value string) (clock.Minutes, error) {
	m, err := clock.ParseClock(value)
	if err != nil {
		return 0, fmt.Errorf("%s: %w", field, err)
	}
	return m, nil
}
