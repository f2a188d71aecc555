package dynamo

import (
	"errors"
	"fmt"
)

// Domain errors for simulation operations.
var (
	// ErrInvalidTimeSpan indicates a non-positive step or an empty time span.
	ErrInvalidTimeSpan = errors.New("dynamo: invalid time span")

	// ErrInvalidState indicates a state vector with invalid dimensions or values.
	ErrInvalidState = errors.New("dynamo: invalid state (NaN or Inf detected)")

	// ErrDimensionMismatch indicates mismatched state/control dimensions.
	ErrDimensionMismatch = errors.New("dynamo: dimension mismatch between state and system")
)

// TimeSpanError identifies which time-span parameter was rejected.
type TimeSpanError struct {
	Param string
	Value float64
}

func (e *TimeSpanError) Error() string {
	return fmt.Sprintf("%s: %s=%g", ErrInvalidTimeSpan, e.Param, e.Value)
}

func (e *TimeSpanError) Unwrap() error {
	return ErrInvalidTimeSpan
}

// SimulationError wraps an error with simulation context.
type SimulationError struct {
	Step    int
	Time    float64
	State   State
	Wrapped error
}

func (e *SimulationError) Error() string {
	return fmt.Sprintf("step %d (t=%.4f): %v", e.Step, e.Time, e.Wrapped)
}

func (e *SimulationError) Unwrap() error {
	return e.Wrapped
}
