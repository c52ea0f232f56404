package series

import (
	"errors"
	"fmt"
)

// Error kinds surfaced by kernel operations. Callers are expected to match
// them with errors.Is and report the failure as a formula evaluation error.
var (
	// ErrInsufficientData means the requested window or lookback exceeds the
	// available history, or an input is empty where at least one element is
	// required.
	ErrInsufficientData = errors.New("insufficient data")

	// ErrMisalignedInput means the inputs could not be trimmed to a common
	// trailing window (e.g. every input is empty).
	ErrMisalignedInput = errors.New("misaligned input")

	// ErrInvalidParameter means a scalar parameter is out of range, such as a
	// non-positive window size or a zero smoothing factor.
	ErrInvalidParameter = errors.New("invalid parameter")

	// ErrComputationFailure means the underlying transform function itself
	// failed. The original cause is always attached, never discarded.
	ErrComputationFailure = errors.New("computation failure")
)

// ComputationError wraps a failure raised inside a transform function. It
// matches ErrComputationFailure under errors.Is while keeping the cause
// reachable through Unwrap.
type ComputationError struct {
	Op    string
	Cause error
}

func (e *ComputationError) Error() string {
	return fmt.Sprintf("%s: %v", e.Op, e.Cause)
}

func (e *ComputationError) Unwrap() error { return e.Cause }

func (e *ComputationError) Is(target error) bool {
	return target == ErrComputationFailure
}
