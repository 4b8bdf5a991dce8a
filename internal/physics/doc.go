// Package physics provides the oscillator models that feed the solvers.
//
// Each model implements [ode.Model]: it supplies the derivative function
// and owns the named fields the stepper writes integrated state back into.
// Parameters are live: editing mass or stiffness between steps is the
// expected use, and the derivative reads whatever the fields hold at call
// time.
//
// All models also implement [ode.Hamiltonian] (energy for drift checks)
// and [ode.Configurable] (runtime parameter editing). State layout is
// position variables first, velocity variables second, so the even-length
// models work with the symplectic solver unchanged.
package physics
