package ode

import "math"

// State is the ordered vector of dynamical variables of one system.
// Its layout is owned by the model that produced it and must stay
// consistent for the lifetime of that model.
type State []float64

func (s State) Clone() State {
	c := make(State, len(s))
	copy(c, s)
	return c
}

func (s State) IsValid() bool {
	for _, v := range s {
		if math.IsNaN(v) || math.IsInf(v, 0) {
			return false
		}
	}
	return true
}

func (s State) Norm() float64 {
	sum := 0.0
	for _, v := range s {
		sum += v * v
	}
	return math.Sqrt(sum)
}

// System supplies the right-hand side of dX/dt = f(X, t).
//
// Derivatives must fill dxdt in place (len(dxdt) == len(x)) and must not
// retain either slice past the call. It has to be pure with respect to
// x and t; model parameters (mass, stiffness, gravity...) are read live
// from the implementing struct and may change between calls.
type System interface {
	Derivatives(x State, dxdt State, t float64)
	Dim() int
}

// Model is a System that also owns named state fields: the stepper pulls
// the state vector out before integrating and writes the result back.
type Model interface {
	System
	State() State
	SetState(x State)
}

// Hamiltonian is implemented by conservative systems that can report
// total energy, used for drift metrics and symplectic checks.
type Hamiltonian interface {
	Energy(x State) float64
}

// Configurable exposes live-editable model parameters.
type Configurable interface {
	Params() map[string]float64
	SetParam(name string, value float64) error
}

// Solver advances a state vector over an arbitrary interval, sub-stepping
// internally with its own fixed (or adaptively bounded) step size.
//
// Step mutates x in place and returns the new simulation time. dt may be
// negative (manual step-back) or zero (no-op). A non-nil error means x
// was either left untouched (input validation) or abandoned mid-interval
// (numerical divergence); the returned time covers what was integrated.
type Solver interface {
	Step(sys System, x State, t, dt float64) (float64, error)

	// SetFixedStep configures the internal step granularity. For adaptive
	// solvers this also caps the largest step the controller may grow to.
	SetFixedStep(h float64)
	FixedStep() float64
}

// Metric accumulates a scalar observation over a run.
type Metric interface {
	Name() string
	Observe(x State, t float64)
	Value() float64
	Reset()
}

// Observer is notified after every committed step.
type Observer interface {
	OnStep(x State, t float64)
}
