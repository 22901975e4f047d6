/*
errors.go - Error types for the calculation engine

PURPOSE:
  All engine error types in one place. The taxonomy is small:

  1. InvalidTimeFormat (clock package) - malformed "HH:MM" input. Fatal to
     the single calculation that hit it. Never caught or defaulted.
  2. MissingPolicy - a record references a shift policy that cannot be
     resolved. Fatal at the daily level; recoverable at the weekly level,
     where the offending day is skipped and flagged.

  Negative working-time totals are NOT errors. A day whose breaks exceed
  the effective window produces a negative total that is surfaced as-is;
  it is a data-quality signal for the user, not an engine failure.

USAGE:
  if errors.Is(err, engine.ErrMissingPolicy) { ... }

  var mpe *engine.MissingPolicyError
  if errors.As(err, &mpe) { log(mpe.PolicyID) }

SEE ALSO:
  - clock/errors.go: InvalidTimeError / ErrInvalidTimeFormat
  - engine/weekly.go: per-day MissingPolicy recovery
*/
package engine

import (
	"errors"
	"fmt"

	"github.com/warp/worktime-engine/clock"
)

// =============================================================================
// SENTINEL ERRORS - Use with errors.Is()
// =============================================================================

var (
	// ErrMissingPolicy is returned when a record references a shift policy
	// that the resolver cannot supply. Callers must hand the engine fully
	// resolved policies, never dangling IDs.
	ErrMissingPolicy = errors.New("shift policy not found")

	// ErrInvalidInput is returned for structurally unusable input, such as
	// a record with no clock times at all.
	ErrInvalidInput = errors.New("invalid calculation input")
)

// =============================================================================
// STRUCTURED ERRORS - Carry additional context
// =============================================================================

// MissingPolicyError reports which record pointed at which missing policy.
type MissingPolicyError struct {
	RecordID string
	PolicyID string
	Date     clock.Date
}

func (e *MissingPolicyError) Error() string {
	return fmt.Sprintf("record %s on %s references unknown shift policy %q",
		e.RecordID, e.Date, e.PolicyID)
}

func (e *MissingPolicyError) Unwrap() error {
	return ErrMissingPolicy
}

// =============================================================================
// ERROR HELPERS
// =============================================================================

// IsDataError returns true if the error is caused by bad caller data
// (malformed times or dangling policy references) rather than an engine bug.
func IsDataError(err error) bool {
	return errors.Is(err, clock.ErrInvalidTimeFormat) ||
		errors.Is(err, ErrMissingPolicy) ||
		errors.Is(err, ErrInvalidInput)
}
