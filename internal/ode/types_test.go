package ode

import (
	"errors"
	"math"
	"testing"
)

func TestStateClone(t *testing.T) {
	x := State{1, 2, 3}
	c := x.Clone()
	c[0] = 99
	if x[0] != 1 {
		t.Error("clone shares backing array")
	}
	if len(c) != 3 || c[1] != 2 || c[2] != 3 {
		t.Errorf("clone = %v", c)
	}
}

func TestStateIsValid(t *testing.T) {
	for _, tc := range []struct {
		x    State
		want bool
	}{
		{State{}, true},
		{State{1, -2, 0}, true},
		{State{math.NaN()}, false},
		{State{1, math.Inf(1)}, false},
		{State{math.Inf(-1), 0}, false},
	} {
		if got := tc.x.IsValid(); got != tc.want {
			t.Errorf("IsValid(%v) = %v, want %v", tc.x, got, tc.want)
		}
	}
}

func TestStateNorm(t *testing.T) {
	if got := (State{3, 4}).Norm(); math.Abs(got-5) > 1e-12 {
		t.Errorf("norm = %v, want 5", got)
	}
	if got := (State{}).Norm(); got != 0 {
		t.Errorf("empty norm = %v", got)
	}
}

func TestStepErrorUnwrap(t *testing.T) {
	err := &StepError{T: 1.5, Wrapped: ErrDiverged}
	if !errors.Is(err, ErrDiverged) {
		t.Error("errors.Is should see the wrapped sentinel")
	}
	if msg := err.Error(); msg == "" || !errors.Is(err, ErrDiverged) {
		t.Errorf("message = %q", msg)
	}
}
