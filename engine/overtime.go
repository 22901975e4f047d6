/*
overtime.go - Tiered segmentation of declared overtime windows

PURPOSE:
  A record may carry an explicitly declared overtime window (pre-approved
  extra hours), separate from the late-stay overtime the daily calculation
  books. When the shift policy configures tiered overtime, that window is
  split into successive multiplier bands:

    [0, free)            at multiplier 1
    [free, free+next)    at the next-tier multiplier
    [free+next, ...)     at the beyond-tier multiplier

  Break minutes that intersect the window are clipped out of the total
  before allocation - only the overlapping portion of each break counts,
  and breaks are assumed pairwise non-overlapping (not validated).
*/
package engine

import (
	"fmt"

	"github.com/shopspring/decimal"

	"github.com/warp/worktime-engine/clock"
	"github.com/warp/worktime-engine/policy"
	"github.com/warp/worktime-engine/record"
)

// CalculateOvertimeSegments splits a declared overtime interval into tiered
// multiplier segments. Tiers with zero allocated minutes are omitted, so a
// short window may yield only the free segment. A nil tier config or a
// window with no positive minutes yields nil.
func CalculateOvertimeSegments(overtime clock.Interval, breaks []clock.Interval, tiers *policy.OvertimeTiers) []OvertimeSegment {
	if tiers == nil {
		return nil
	}

	total := overtime.Duration()
	for _, br := range breaks {
		total -= br.Overlap(overtime)
	}
	if total <= 0 {
		return nil
	}

	var segments []OvertimeSegment
	allocate := func(capacity clock.Minutes, multiplier decimal.Decimal) {
		if total <= 0 || capacity <= 0 {
			return
		}
		dur := min(total, capacity)
		segments = append(segments, OvertimeSegment{DurationMinutes: dur, Multiplier: multiplier})
		total -= dur
	}

	allocate(tiers.FreeDuration, decimal.NewFromInt(1))
	allocate(tiers.NextDuration, tiers.NextMultiplier)
	if total > 0 {
		segments = append(segments, OvertimeSegment{DurationMinutes: total, Multiplier: tiers.BeyondMultiplier})
	}
	return segments
}

// SegmentsForRecord parses a record's declared overtime window and breaks
// (lunch included) and segments them against the policy's tier config.
// Records without a declared window, or policies without tiers, yield nil.
func SegmentsForRecord(rec record.DailyRecord, pol policy.ShiftPolicy) ([]OvertimeSegment, error) {
	if !rec.HasDeclaredOvertime() || !pol.HasOvertimeTiers() {
		return nil, nil
	}

	otStart, err := parseField("overtime_start", rec.OvertimeStart)
	if err != nil {
		return nil, err
	}
	otEnd, err := parseField("overtime_end", rec.OvertimeEnd)
	if err != nil {
		return nil, err
	}
	window := clock.Interval{Start: otStart, End: otEnd}

	var breaks []clock.Interval
	if rec.LunchStart != "" && rec.LunchEnd != "" {
		ls, err := parseField("lunch_start", rec.LunchStart)
		if err != nil {
			return nil, err
		}
		le, err := parseField("lunch_end", rec.LunchEnd)
		if err != nil {
			return nil, err
		}
		breaks = append(breaks, clock.Interval{Start: ls, End: le})
	}
	for i, br := range rec.Breaks {
		bs, err := parseField(fmt.Sprintf("breaks[%d].start", i), br.Start)
		if err != nil {
			return nil, err
		}
		be, err := parseField(fmt.Sprintf("breaks[%d].end", i), br.End)
		if err != nil {
			return nil, err
		}
		breaks = append(breaks, clock.Interval{Start: bs, End: be})
	}

	return CalculateOvertimeSegments(window, breaks, pol.OvertimeTiers), nil
}
