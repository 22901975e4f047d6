/*
weekly.go - Per-week aggregation and display rows

PURPOSE:
  Produces one employee's week: a display row per worked day plus weekly
  totals and the flex-bank balances at both ends of the week.

PIPELINE:
  1. Window the week around any date in it (Monday through Sunday).
  2. Partition the employee's records into before-week and in-week.
  3. Fold the flex bank over everything before the week - the start-of-week
     balance is recomputed from full history, never read from a checkpoint.
  4. Consolidate same-day entries (earliest in, latest out, concatenated
     breaks), then run the daily calculation per day, continuing the fold.
  5. Sum requireds, actuals, and deltas into weekly totals.

PARTIAL RESULTS:
  A day whose shift policy cannot be resolved is skipped, logged, and
  flagged in SkippedDates - one bad reference does not kill the week.
  Malformed time strings, by contrast, abort the whole summary: they mean
  the stored data is corrupt, not merely incomplete.
*/
package engine

import (
	"fmt"

	"go.uber.org/zap"

	"github.com/warp/worktime-engine/clock"
	"github.com/warp/worktime-engine/record"
)

// =============================================================================
// OUTPUT TYPES
// =============================================================================

// DayRow is one day's display row: formatted times alongside the raw
// calculation result it was built from.
type DayRow struct {
	Date     clock.Date
	ClockIn  string
	ClockOut string

	// LunchWindow is the taken lunch span, "11:45-12:15".
	LunchWindow string

	// Elapsed is total wall-clock presence, clock-in to clock-out.
	Elapsed string

	// BreakComparison is "minimum / taken", e.g. "01:00 / 00:45".
	BreakComparison string

	// RequiredVsActual is "required / actual", e.g. "08:00 / 07:32".
	RequiredVsActual string

	// FlexDelta is the signed daily delta, e.g. "+00:30" or "-00:20".
	FlexDelta string

	// FlexNarrative explains the day's effect on the bank:
	// "{prev} {+|-} {|delta|} = {new}", all HH:MM.
	FlexNarrative string

	Result CalculationResult
}

// WeeklySummary is the aggregated week for one employee. When SkippedDates
// is non-empty the summary is partial: those days had unresolvable shift
// policies and contribute nothing to the totals.
type WeeklySummary struct {
	EmployeeID string
	Week       clock.Week
	Days       []DayRow

	RequiredMinutes  clock.Minutes
	ActualMinutes    clock.Minutes
	FlexDeltaMinutes clock.Minutes

	FlexBankStartOfWeek clock.Minutes
	FlexBankEndOfWeek   clock.Minutes

	SkippedDates []clock.Date
}

// =============================================================================
// WEEKLY CALCULATOR
// =============================================================================

// WeeklyCalculator aggregates an employee's records into weekly summaries.
// It holds no state beyond its collaborators and may be shared freely.
type WeeklyCalculator struct {
	policies PolicyResolver
	logger   *zap.Logger
}

// NewWeeklyCalculator builds a calculator over the given policy resolver.
// A nil logger disables logging.
func NewWeeklyCalculator(policies PolicyResolver, logger *zap.Logger) *WeeklyCalculator {
	if logger == nil {
		logger = zap.NewNop()
	}
	return &WeeklyCalculator{policies: policies, logger: logger}
}

// Summary computes the week containing anyDate for the given employee.
// The records slice may contain other employees and any date range; it is
// filtered and sorted internally.
func (c *WeeklyCalculator) Summary(all []record.DailyRecord, employeeID string, anyDate clock.Date) (WeeklySummary, error) {
	week := clock.WeekOf(anyDate)
	summary := WeeklySummary{EmployeeID: employeeID, Week: week}

	var before, within []record.DailyRecord
	for _, rec := range all {
		if rec.EmployeeID != employeeID {
			continue
		}
		switch {
		case rec.Date.Before(week.Start):
			before = append(before, rec)
		case week.Contains(rec.Date):
			within = append(within, rec)
		}
	}
	record.SortByDate(before)
	record.SortByDate(within)

	// Start-of-week balance: fold full prior history. Days with dangling
	// policy references are dropped from the seed too, and flagged.
	before = c.dropUnresolvable(before, &summary)
	prior, err := foldFlexBank(before, c.policies, 0)
	if err != nil {
		return WeeklySummary{}, err
	}
	balance := clock.Minutes(0)
	if len(prior) > 0 {
		balance = prior[len(prior)-1].RunningBalanceMinutes
	}
	summary.FlexBankStartOfWeek = balance

	days, err := record.ConsolidateByDay(within)
	if err != nil {
		return WeeklySummary{}, err
	}

	for _, day := range days {
		pol, perr := c.policies.ResolvePolicy(day.ShiftPolicyID)
		if perr != nil {
			c.logSkip(day)
			summary.SkippedDates = append(summary.SkippedDates, day.Date)
			continue
		}

		res, err := CalculateDaily(day, pol)
		if err != nil {
			return WeeklySummary{}, err
		}

		required := pol.RequiredMinutes()
		actual := res.TotalWorkingMinutes
		delta := actual - required
		prev := balance
		balance += delta

		summary.RequiredMinutes += required
		summary.ActualMinutes += actual
		summary.FlexDeltaMinutes += delta

		row := DayRow{
			Date:             day.Date,
			ClockIn:          clock.FormatMinutes(res.EffectiveStart),
			ClockOut:         clock.FormatMinutes(res.EffectiveEnd),
			LunchWindow:      day.LunchStart + "-" + day.LunchEnd,
			BreakComparison:  compare(pol.Lunch.DurationMinutes, res.LunchDuration+res.OtherBreaksDuration),
			RequiredVsActual: compare(required, actual),
			FlexDelta:        clock.FormatSignedMinutes(delta),
			FlexNarrative:    narrative(prev, delta, balance),
			Result:           res,
		}
		if elapsed, err := elapsedSpan(day); err == nil {
			row.Elapsed = elapsed
		}
		summary.Days = append(summary.Days, row)
	}

	summary.FlexBankEndOfWeek = balance
	return summary, nil
}

// dropUnresolvable filters out records whose policy cannot be resolved,
// flagging and logging each one.
func (c *WeeklyCalculator) dropUnresolvable(recs []record.DailyRecord, summary *WeeklySummary) []record.DailyRecord {
	kept := recs[:0]
	for _, rec := range recs {
		if _, err := c.policies.ResolvePolicy(rec.ShiftPolicyID); err != nil {
			c.logSkip(rec)
			summary.SkippedDates = append(summary.SkippedDates, rec.Date)
			continue
		}
		kept = append(kept, rec)
	}
	return kept
}

func (c *WeeklyCalculator) logSkip(rec record.DailyRecord) {
	c.logger.Warn("skipping day with unresolvable shift policy",
		zap.String("record_id", rec.ID),
		zap.String("employee_id", rec.EmployeeID),
		zap.String("date", rec.Date.String()),
		zap.String("shift_policy_id", rec.ShiftPolicyID))
}

// =============================================================================
// FORMATTING
// =============================================================================

// narrative renders "{prev} {+|-} {|delta|} = {new}" with the operator
// taken from the delta's sign.
func narrative(prev, delta, next clock.Minutes) string {
	op := "+"
	if delta < 0 {
		op = "-"
		delta = -delta
	}
	return fmt.Sprintf("%s %s %s = %s",
		clock.FormatMinutes(prev), op, clock.FormatMinutes(delta), clock.FormatMinutes(next))
}

func compare(expected, got clock.Minutes) string {
	return clock.FormatMinutes(expected) + " / " + clock.FormatMinutes(got)
}

func elapsedSpan(rec record.DailyRecord) (string, error) {
	in, err := clock.ParseClock(rec.ClockIn)
	if err != nil {
		return "", err
	}
	out, err := clock.ParseClock(rec.ClockOut)
	if err != nil {
		return "", err
	}
	return clock.FormatMinutes(clock.ResolveOvernight(in, out) - in), nil
}
