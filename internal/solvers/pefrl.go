package solvers

import "github.com/pmorenz/oscilab/internal/ode"

// Omelyan-Mryglod-Folk optimized composition coefficients. The stage
// ordering below is load-bearing: permuting it loses the symplectic
// energy-bounded property.
const (
	pefrlXi     = 0.1786178958448091
	pefrlLambda = -0.2123418310626054
	pefrlChi    = -0.06626458266981849
)

// PEFRL is the position-extended Forest-Ruth-like symplectic integrator.
// It requires an even-length state laid out as the position half followed
// by the velocity half, and is intended for undamped Hamiltonian systems
// where bounded long-term energy drift matters more than raw local order.
type PEFRL struct {
	fixedStep
	dz ode.State
}

func NewPEFRL() *PEFRL {
	return &PEFRL{fixedStep: fixedStep{h: DefaultStep}}
}

func (p *PEFRL) Step(sys ode.System, x ode.State, t, dt float64) (float64, error) {
	if err := checkStep(x, t, dt); err != nil {
		return t, err
	}
	if len(x)%2 != 0 {
		return t, &ode.StepError{T: t, Wrapped: ode.ErrOddStateLength}
	}
	if dt == 0 {
		return t, nil
	}
	p.dz = grow(p.dz, len(x))
	return substep(t, dt, p.h, func(t, hs float64) {
		p.advance(sys, x, t, hs)
	}), nil
}

func (p *PEFRL) advance(sys ode.System, x ode.State, t, h float64) {
	half := len(x) / 2

	drift := func(c float64) {
		for i := 0; i < half; i++ {
			x[i] += c * h * x[half+i]
		}
	}
	kick := func(c float64) {
		sys.Derivatives(x, p.dz, t)
		for i := 0; i < half; i++ {
			x[half+i] += c * h * p.dz[half+i]
		}
	}

	// Nine-stage composition: five position drifts interleaved with four
	// velocity kicks.
	drift(pefrlXi)
	kick((1 - 2*pefrlLambda) / 2)
	drift(pefrlChi)
	kick(pefrlLambda)
	drift(1 - 2*(pefrlChi+pefrlXi))
	kick(pefrlLambda)
	drift(pefrlChi)
	kick((1 - 2*pefrlLambda) / 2)
	drift(pefrlXi)
}
