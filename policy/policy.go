/*
Package policy defines shift policy configuration.

PURPOSE:
  A ShiftPolicy is the immutable ruleset a company attaches to a shift:
  regular hours, lunch rules, how early arrival and late stay are credited,
  and (optionally) tiered overtime multipliers. Daily records reference a
  policy by ID; the engine consumes a fully resolved ShiftPolicy and never
  a dangling reference.

KEY CONCEPTS:
  - LunchPolicy:      default lunch slot, expected duration, and the flex
    window inside which a compliant lunch must fall.
  - EarlyArrivalRule: up to MaxMinutes before shift start may count toward
    the total, if CountsTowardTotal is set.
  - LateStayRule:     up to MaxMinutes past shift end may count toward the
    total; beyond that the stay becomes overtime paid at OvertimeMultiplier.
  - OvertimeTiers:    free/next/beyond multiplier bands for a separately
    declared overtime window. Optional; nil disables segmentation.

MUTATION:
  Policies are value types and never mutated in place. Edits go through
  Patch (patch.go), which applies typed field updates and returns a copy.

SEE ALSO:
  - policy/factory.go: construction and validation from the stored JSON shape
  - engine/daily.go:   consumes ShiftPolicy for the daily calculation
*/
package policy

import (
	"github.com/shopspring/decimal"

	"github.com/warp/worktime-engine/clock"
)

// =============================================================================
// SHIFT POLICY - Immutable configuration owned by a company
// =============================================================================

type ShiftPolicy struct {
	ID        string
	CompanyID string
	Name      string

	// Regular shift bounds. RegularEnd before RegularStart denotes an
	// overnight shift.
	RegularStart clock.Minutes
	RegularEnd   clock.Minutes

	Lunch        LunchPolicy
	EarlyArrival EarlyArrivalRule
	LateStay     LateStayRule

	// OvertimeTiers configures tiered segmentation of a declared overtime
	// window. Nil means the shift has no tiered overtime.
	OvertimeTiers *OvertimeTiers

	// ShiftBonus is a flat hours-equivalent bonus added to the overtime pay
	// of any day worked with nonzero overtime. Zero when absent.
	ShiftBonus decimal.Decimal
}

type LunchPolicy struct {
	DefaultStart    clock.Minutes
	DurationMinutes clock.Minutes

	// FlexWindow bounds when a lunch may start and end without being
	// flagged non-compliant. No overnight wrap is assumed for the window.
	FlexWindow clock.Interval
}

type EarlyArrivalRule struct {
	MaxMinutes        clock.Minutes
	CountsTowardTotal bool
}

type LateStayRule struct {
	MaxMinutes         clock.Minutes
	CountsTowardTotal  bool
	OvertimeMultiplier decimal.Decimal
}

// OvertimeTiers splits a declared overtime window into successive pay bands:
// the first FreeDuration minutes at multiplier 1, the next NextDuration
// minutes at NextMultiplier, and anything beyond at BeyondMultiplier.
type OvertimeTiers struct {
	FreeDuration     clock.Minutes
	NextDuration     clock.Minutes
	NextMultiplier   decimal.Decimal
	BeyondMultiplier decimal.Decimal
}

// =============================================================================
// DERIVED VALUES
// =============================================================================

// ShiftSpanMinutes is the overnight-resolved length of the regular shift.
func (p ShiftPolicy) ShiftSpanMinutes() clock.Minutes {
	return clock.Interval{Start: p.RegularStart, End: p.RegularEnd}.Duration()
}

// RequiredMinutes is the daily working-time requirement under this policy:
// the regular shift span minus the expected lunch duration. This is the
// "required" side of every flex-bank delta.
func (p ShiftPolicy) RequiredMinutes() clock.Minutes {
	return p.ShiftSpanMinutes() - p.Lunch.DurationMinutes
}

// HasOvertimeTiers reports whether tiered overtime segmentation is enabled.
func (p ShiftPolicy) HasOvertimeTiers() bool {
	return p.OvertimeTiers != nil
}
