package solvers

import (
	"math"

	"github.com/pmorenz/oscilab/internal/ode"
)

// DefaultStep is the nominal internal step every solver starts with.
const DefaultStep = 0.001

// fixedStep carries the nominal internal step size shared by all solvers.
type fixedStep struct {
	h float64
}

func (f *fixedStep) SetFixedStep(h float64) {
	if h > 0 && !math.IsInf(h, 0) && !math.IsNaN(h) {
		f.h = h
	}
}

func (f *fixedStep) FixedStep() float64 { return f.h }

// checkStep validates inputs before any mutation happens.
func checkStep(x ode.State, t, dt float64) error {
	if len(x) == 0 {
		return &ode.StepError{T: t, Wrapped: ode.ErrEmptyState}
	}
	if !x.IsValid() {
		return &ode.StepError{T: t, Wrapped: ode.ErrNonFiniteState}
	}
	if math.IsNaN(t) || math.IsInf(t, 0) || math.IsNaN(dt) || math.IsInf(dt, 0) {
		return &ode.StepError{T: t, Wrapped: ode.ErrBadTimeStep}
	}
	return nil
}

// substep covers the interval [t, t+dt] with internal steps of at most h,
// preserving the sign of dt so time can run backward. If |dt| <= h the
// whole interval is taken in a single step, which keeps the numerical
// behavior independent of the caller's frame-driven dt.
func substep(t, dt, h float64, one func(t, hs float64)) float64 {
	if math.Abs(dt) <= h {
		one(t, dt)
		return t + dt
	}
	sign := 1.0
	if dt < 0 {
		sign = -1.0
	}
	remaining := math.Abs(dt)
	for remaining > 0 {
		hs := math.Min(h, remaining)
		one(t, sign*hs)
		t += sign * hs
		remaining -= hs
	}
	return t
}

// grow resizes a scratch buffer to n elements, reallocating only when the
// capacity is exceeded. Buffers grow to the largest state seen and never
// shrink.
func grow(buf ode.State, n int) ode.State {
	if cap(buf) < n {
		return make(ode.State, n)
	}
	return buf[:n]
}
