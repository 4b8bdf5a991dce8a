package solvers

import "github.com/pmorenz/oscilab/internal/ode"

// RK4 is the classical fourth-order Runge-Kutta method.
type RK4 struct {
	fixedStep
	k1, k2, k3, k4 ode.State
	yt             ode.State
}

func NewRK4() *RK4 {
	return &RK4{fixedStep: fixedStep{h: DefaultStep}}
}

func (r *RK4) ensureScratch(n int) {
	r.k1 = grow(r.k1, n)
	r.k2 = grow(r.k2, n)
	r.k3 = grow(r.k3, n)
	r.k4 = grow(r.k4, n)
	r.yt = grow(r.yt, n)
}

func (r *RK4) Step(sys ode.System, x ode.State, t, dt float64) (float64, error) {
	if err := checkStep(x, t, dt); err != nil {
		return t, err
	}
	if dt == 0 {
		return t, nil
	}
	r.ensureScratch(len(x))
	return substep(t, dt, r.h, func(t, hs float64) {
		r.advance(sys, x, t, hs)
	}), nil
}

func (r *RK4) advance(sys ode.System, x ode.State, t, h float64) {
	n := len(x)
	half := 0.5 * h

	sys.Derivatives(x, r.k1, t)

	for i := 0; i < n; i++ {
		r.yt[i] = x[i] + half*r.k1[i]
	}
	sys.Derivatives(r.yt, r.k2, t+half)

	for i := 0; i < n; i++ {
		r.yt[i] = x[i] + half*r.k2[i]
	}
	sys.Derivatives(r.yt, r.k3, t+half)

	for i := 0; i < n; i++ {
		r.yt[i] = x[i] + h*r.k3[i]
	}
	sys.Derivatives(r.yt, r.k4, t+h)

	h6 := h / 6.0
	for i := 0; i < n; i++ {
		x[i] += h6 * (r.k1[i] + 2*r.k2[i] + 2*r.k3[i] + r.k4[i])
	}
}
