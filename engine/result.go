package engine

import (
	"github.com/shopspring/decimal"

	"github.com/warp/worktime-engine/clock"
)

// =============================================================================
// CALCULATION RESULT - Ephemeral breakdown of one employee-day
// =============================================================================

// CalculationResult is the validated, explainable breakdown of one daily
// record against one shift policy. It is recomputed on demand and never
// persisted; the raw record remains the source of truth.
type CalculationResult struct {
	// Effective bounds after early/late policy clipping.
	EffectiveStart clock.Minutes
	EffectiveEnd   clock.Minutes

	// TotalWorkingMinutes = (effective end - effective start) - lunch -
	// other breaks. May be negative when breaks exceed the effective
	// window; displayed as-is, never clamped.
	TotalWorkingMinutes clock.Minutes

	LunchDuration       clock.Minutes
	OtherBreaksDuration clock.Minutes

	RegularMinutes  clock.Minutes
	OvertimeMinutes clock.Minutes

	// OvertimePay is hours-equivalent: overtimeMinutes/60 x multiplier,
	// plus the policy's flat shift bonus when overtime is nonzero.
	OvertimePay decimal.Decimal

	// TotalEffectiveMinutes is minutes-equivalent:
	// totalWorking + overtimeMinutes x multiplier.
	TotalEffectiveMinutes decimal.Decimal

	// Arrival/departure status relative to the regular shift bounds, each
	// with its unsigned minute delta.
	EarlyArrival          bool
	EarlyArrivalMinutes   clock.Minutes
	LateArrival           bool
	LateArrivalMinutes    clock.Minutes
	EarlyDeparture        bool
	EarlyDepartureMinutes clock.Minutes
	LateDeparture         bool
	LateDepartureMinutes  clock.Minutes

	// Lunch compliance: inside the flex window, and exactly the expected
	// duration.
	IsLunchInWindow        bool
	IsLunchCorrectDuration bool
}

// =============================================================================
// OVERTIME SEGMENT - One tier of a declared overtime window
// =============================================================================

// OvertimeSegment is one multiplier band of a segmented overtime window.
// Segments come back in tier order (free, next, beyond); wall-clock
// sub-intervals are reconstructed by walking forward from the window start.
type OvertimeSegment struct {
	DurationMinutes clock.Minutes
	Multiplier      decimal.Decimal
}

// =============================================================================
// FLEX BANK ENTRY - One day of the running balance
// =============================================================================

// FlexBankEntry is one day's contribution to the flex-time balance:
// the signed daily delta (actual - required) and the running balance
// after folding it in.
type FlexBankEntry struct {
	Date                  clock.Date
	DailyDeltaMinutes     clock.Minutes
	RunningBalanceMinutes clock.Minutes
}
