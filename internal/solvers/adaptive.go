package solvers

import (
	"math"

	"github.com/pmorenz/oscilab/internal/ode"
)

// Step-size controller constants shared by the adaptive solvers.
const (
	growFactor    = 1.5
	shrinkFactor  = 0.5
	growThreshold = 10.0 // grow only when error < tol/growThreshold
	defaultMin    = 1e-8
)

// adaptive implements the accept/reject step-size control loop shared by
// the embedded-pair solvers. The concrete solver supplies one trial step
// (fills a candidate and returns the max component-wise difference between
// its high- and low-order estimates) and a commit of the accepted
// candidate into x.
type adaptive struct {
	tol     float64
	minStep float64
	maxStep float64
	initial float64
}

func newAdaptive(tol float64) adaptive {
	return adaptive{
		tol:     tol,
		minStep: defaultMin,
		maxStep: DefaultStep,
		initial: DefaultStep,
	}
}

// SetFixedStep sets the nominal step size, which for adaptive solvers is
// both the initial trial size and the cap the controller may grow to.
func (a *adaptive) SetFixedStep(h float64) {
	if h > 0 && !math.IsInf(h, 0) && !math.IsNaN(h) {
		a.initial = h
		a.maxStep = h
	}
}

func (a *adaptive) FixedStep() float64 { return a.initial }

func (a *adaptive) SetTolerance(tol float64) {
	if tol > 0 {
		a.tol = tol
	}
}

func (a *adaptive) Tolerance() float64 { return a.tol }

func (a *adaptive) SetMinStep(h float64) {
	if h > 0 {
		a.minStep = h
	}
}

// integrate covers [t, t+dt], retrying each trial with half the step size
// until the error estimate satisfies the tolerance. A step at the minimum
// size is accepted regardless of the estimate, trading accuracy for
// guaranteed termination. A non-finite estimate is never accepted: at the
// floor it aborts with ErrDiverged instead of committing garbage.
func (a *adaptive) integrate(t, dt float64, trial func(t, h float64) float64, commit func()) (float64, error) {
	sign := 1.0
	if dt < 0 {
		sign = -1.0
	}
	remaining := math.Abs(dt)
	h := math.Min(a.initial, remaining)

	for remaining > 0 {
		if h > remaining {
			h = remaining
		}

		errMax := trial(t, sign*h)

		if math.IsNaN(errMax) || math.IsInf(errMax, 0) {
			if h <= a.minStep {
				return t, &ode.StepError{T: t, Wrapped: ode.ErrDiverged}
			}
			h = math.Max(h*shrinkFactor, a.minStep)
			continue
		}

		if errMax < a.tol || h <= a.minStep {
			commit()
			t += sign * h
			remaining -= h
			if errMax < a.tol/growThreshold {
				h = math.Min(h*growFactor, a.maxStep)
			}
			continue
		}

		h = math.Max(h*shrinkFactor, a.minStep)
	}
	return t, nil
}

// maxDiff is the component-wise error estimate used by all embedded pairs.
func maxDiff(hi, lo ode.State) float64 {
	errMax := 0.0
	for i := range hi {
		d := math.Abs(hi[i] - lo[i])
		if math.IsNaN(d) {
			return math.NaN()
		}
		if d > errMax {
			errMax = d
		}
	}
	return errMax
}
