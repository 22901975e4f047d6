package policy

import (
	"github.com/shopspring/decimal"

	"github.com/warp/worktime-engine/clock"
)

// =============================================================================
// PATCH - Typed, immutable policy edits
// =============================================================================

// Patch collects optional field updates for a ShiftPolicy. Nil fields are
// left untouched. Apply never mutates the input policy; it returns an
// updated copy, so stored policies stay immutable values.
//
// This replaces path-string mutation ("lunchBreak.duration" style): every
// editable field has a typed slot and nothing is addressed by string key.
type Patch struct {
	Name *string

	RegularStart *clock.Minutes
	RegularEnd   *clock.Minutes

	LunchDefaultStart *clock.Minutes
	LunchDuration     *clock.Minutes
	LunchFlexWindow   *clock.Interval

	EarlyArrivalMax    *clock.Minutes
	EarlyArrivalCounts *bool

	LateStayMax        *clock.Minutes
	LateStayCounts     *bool
	OvertimeMultiplier *decimal.Decimal

	// SetOvertimeTiers replaces the tier config wholesale. Use ClearOvertimeTiers
	// to remove an existing config.
	SetOvertimeTiers   *OvertimeTiers
	ClearOvertimeTiers bool

	ShiftBonus *decimal.Decimal
}

// Apply returns a copy of p with every non-nil patch field applied.
func (pt Patch) Apply(p ShiftPolicy) ShiftPolicy {
	if pt.Name != nil {
		p.Name = *pt.Name
	}
	if pt.RegularStart != nil {
		p.RegularStart = *pt.RegularStart
	}
	if pt.RegularEnd != nil {
		p.RegularEnd = *pt.RegularEnd
	}
	if pt.LunchDefaultStart != nil {
		p.Lunch.DefaultStart = *pt.LunchDefaultStart
	}
	if pt.LunchDuration != nil {
		p.Lunch.DurationMinutes = *pt.LunchDuration
	}
	if pt.LunchFlexWindow != nil {
		p.Lunch.FlexWindow = *pt.LunchFlexWindow
	}
	if pt.EarlyArrivalMax != nil {
		p.EarlyArrival.MaxMinutes = *pt.EarlyArrivalMax
	}
	if pt.EarlyArrivalCounts != nil {
		p.EarlyArrival.CountsTowardTotal = *pt.EarlyArrivalCounts
	}
	if pt.LateStayMax != nil {
		p.LateStay.MaxMinutes = *pt.LateStayMax
	}
	if pt.LateStayCounts != nil {
		p.LateStay.CountsTowardTotal = *pt.LateStayCounts
	}
	if pt.OvertimeMultiplier != nil {
		p.LateStay.OvertimeMultiplier = *pt.OvertimeMultiplier
	}
	if pt.ClearOvertimeTiers {
		p.OvertimeTiers = nil
	} else if pt.SetOvertimeTiers != nil {
		tiers := *pt.SetOvertimeTiers
		p.OvertimeTiers = &tiers
	}
	if pt.ShiftBonus != nil {
		p.ShiftBonus = *pt.ShiftBonus
	}
	return p
}

// IsEmpty reports whether the patch changes nothing.
func (pt Patch) IsEmpty() bool {
	return pt == Patch{}
}
