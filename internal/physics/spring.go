package physics

import (
	"fmt"

	"github.com/pmorenz/oscilab/internal/ode"
)

const (
	DefaultMass      = 1.0
	DefaultStiffness = 10.0
	DefaultGravity   = 9.81
)

// Spring is a mass hanging from a vertical spring. Displacement is
// measured downward from the natural length, so gravity enters as a
// constant positive forcing term.
type Spring struct {
	Mass      float64
	Stiffness float64
	Damping   float64
	Gravity   float64

	Position float64
	Velocity float64
}

func NewSpring() *Spring {
	return &Spring{
		Mass:      DefaultMass,
		Stiffness: DefaultStiffness,
		Damping:   0.0,
		Gravity:   DefaultGravity,
	}
}

func (s *Spring) Dim() int { return 2 }

func (s *Spring) State() ode.State { return ode.State{s.Position, s.Velocity} }

func (s *Spring) SetState(x ode.State) {
	s.Position = x[0]
	s.Velocity = x[1]
}

func (s *Spring) Derivatives(x ode.State, dxdt ode.State, t float64) {
	pos, vel := x[0], x[1]
	dxdt[0] = vel
	dxdt[1] = (-s.Stiffness*pos-s.Damping*vel)/s.Mass + s.Gravity
}

func (s *Spring) Energy(x ode.State) float64 {
	pos, vel := x[0], x[1]
	ke := 0.5 * s.Mass * vel * vel
	pe := 0.5 * s.Stiffness * pos * pos
	// Gravitational potential decreases as the mass drops.
	return ke + pe - s.Mass*s.Gravity*pos
}

func (s *Spring) Params() map[string]float64 {
	return map[string]float64{
		"mass":      s.Mass,
		"stiffness": s.Stiffness,
		"damping":   s.Damping,
		"gravity":   s.Gravity,
	}
}

func (s *Spring) SetParam(name string, value float64) error {
	switch name {
	case "mass":
		s.Mass = value
	case "stiffness":
		s.Stiffness = value
	case "damping":
		s.Damping = value
	case "gravity":
		s.Gravity = value
	default:
		return fmt.Errorf("unknown param: %s", name)
	}
	return nil
}
