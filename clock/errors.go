package clock

import (
	"errors"
	"fmt"
)

// ErrInvalidTimeFormat is the sentinel for malformed wall-clock input.
// Use with errors.Is; the concrete error is always an *InvalidTimeError.
var ErrInvalidTimeFormat = errors.New("invalid time format")

// InvalidTimeError reports a wall-clock string that failed to parse,
// with the offending input and the reason it was rejected.
type InvalidTimeError struct {
	Input  string
	Reason string
}

func (e *InvalidTimeError) Error() string {
	return fmt.Sprintf("invalid time %q: %s", e.Input, e.Reason)
}

func (e *InvalidTimeError) Unwrap() error {
	return ErrInvalidTimeFormat
}
