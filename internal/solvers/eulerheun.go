package solvers

import "github.com/pmorenz/oscilab/internal/ode"

// DefaultEulerHeunTolerance is looser than the higher-order pairs: with
// only two derivative evaluations per trial this solver is meant for
// smooth, non-stiff systems where cheap beats tight.
const DefaultEulerHeunTolerance = 1e-4

// AdaptiveEulerHeun pairs explicit Euler with Heun's improved Euler,
// using their difference as the local error estimate.
type AdaptiveEulerHeun struct {
	adaptive
	k1, k2 ode.State
	hi, lo ode.State
}

func NewAdaptiveEulerHeun() *AdaptiveEulerHeun {
	return &AdaptiveEulerHeun{adaptive: newAdaptive(DefaultEulerHeunTolerance)}
}

func (e *AdaptiveEulerHeun) ensureScratch(n int) {
	e.k1 = grow(e.k1, n)
	e.k2 = grow(e.k2, n)
	e.hi = grow(e.hi, n)
	e.lo = grow(e.lo, n)
}

func (e *AdaptiveEulerHeun) Step(sys ode.System, x ode.State, t, dt float64) (float64, error) {
	if err := checkStep(x, t, dt); err != nil {
		return t, err
	}
	if dt == 0 {
		return t, nil
	}
	e.ensureScratch(len(x))

	trial := func(t, h float64) float64 {
		e.trial(sys, x, t, h)
		return maxDiff(e.hi, e.lo)
	}
	commit := func() { copy(x, e.hi) }

	return e.integrate(t, dt, trial, commit)
}

func (e *AdaptiveEulerHeun) trial(sys ode.System, x ode.State, t, h float64) {
	n := len(x)

	sys.Derivatives(x, e.k1, t)
	for i := 0; i < n; i++ {
		e.lo[i] = x[i] + h*e.k1[i]
	}

	sys.Derivatives(e.lo, e.k2, t+h)
	for i := 0; i < n; i++ {
		e.hi[i] = x[i] + 0.5*h*(e.k1[i]+e.k2[i])
	}
}
