package ode

import (
	"errors"
	"fmt"
)

// Domain errors for integration.
var (
	// ErrEmptyState indicates a zero-length state vector.
	ErrEmptyState = errors.New("ode: empty state vector")

	// ErrNonFiniteState indicates NaN or Inf in the input state.
	ErrNonFiniteState = errors.New("ode: non-finite state value")

	// ErrBadTimeStep indicates a non-finite time or requested interval.
	ErrBadTimeStep = errors.New("ode: non-finite time or dt")

	// ErrOddStateLength indicates a symplectic solver was handed a state
	// that cannot be split into position and velocity halves.
	ErrOddStateLength = errors.New("ode: symplectic solver requires even state length")

	// ErrDiverged indicates the error estimate went non-finite and the
	// step controller refused to commit a garbage state.
	ErrDiverged = errors.New("ode: solution diverged (non-finite error estimate)")
)

// StepError wraps a domain error with the time at which it occurred.
type StepError struct {
	T       float64
	Wrapped error
}

func (e *StepError) Error() string {
	return fmt.Sprintf("t=%.6g: %v", e.T, e.Wrapped)
}

func (e *StepError) Unwrap() error {
	return e.Wrapped
}
