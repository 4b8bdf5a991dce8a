// Package ode defines the core contracts for numerical integration of
// ordinary differential equations:
//
//   - [State]: vector of dynamical variables
//   - [System]: right-hand side of dX/dt = f(X, t), filled in place
//   - [Model]: a System owning named state fields
//   - [Solver]: fixed- or adaptive-step integrator
//
// # Example
//
//	spring := physics.NewSpring()
//	solver := solvers.NewRK4()
//	x := spring.State()
//	t, err := solver.Step(spring, x, 0, 1.0/60)
//
// # Thread safety
//
// Nothing in this package is safe for concurrent use. A (state, solver)
// pair must have at most one caller in Step at a time; solvers reuse
// private scratch buffers across calls.
package ode
