package physics

import (
	"fmt"
	"math"

	"github.com/pmorenz/oscilab/internal/ode"
)

// Pendulum is a point mass on a rigid massless rod. State is [theta, omega]
// with theta measured from the hanging rest position.
type Pendulum struct {
	Mass    float64
	Length  float64
	Damping float64
	Gravity float64

	Angle           float64
	AngularVelocity float64
}

func NewPendulum() *Pendulum {
	return &Pendulum{
		Mass:    DefaultMass,
		Length:  1.0,
		Damping: 0.0,
		Gravity: DefaultGravity,
	}
}

func (p *Pendulum) Dim() int { return 2 }

func (p *Pendulum) State() ode.State { return ode.State{p.Angle, p.AngularVelocity} }

func (p *Pendulum) SetState(x ode.State) {
	p.Angle = x[0]
	p.AngularVelocity = x[1]
}

func (p *Pendulum) Derivatives(x ode.State, dxdt ode.State, t float64) {
	theta, omega := x[0], x[1]
	dxdt[0] = omega
	dxdt[1] = (-p.Damping*omega - p.Mass*p.Gravity*p.Length*math.Sin(theta)) /
		(p.Mass * p.Length * p.Length)
}

func (p *Pendulum) Energy(x ode.State) float64 {
	theta, omega := x[0], x[1]
	v := p.Length * omega
	ke := 0.5 * p.Mass * v * v
	pe := p.Mass * p.Gravity * p.Length * (1.0 - math.Cos(theta))
	return ke + pe
}

func (p *Pendulum) Params() map[string]float64 {
	return map[string]float64{
		"mass":    p.Mass,
		"length":  p.Length,
		"damping": p.Damping,
		"gravity": p.Gravity,
	}
}

func (p *Pendulum) SetParam(name string, value float64) error {
	switch name {
	case "mass":
		p.Mass = value
	case "length":
		p.Length = value
	case "damping":
		p.Damping = value
	case "gravity":
		p.Gravity = value
	default:
		return fmt.Errorf("unknown param: %s", name)
	}
	return nil
}
