package physics

import (
	"fmt"

	"github.com/pmorenz/oscilab/internal/ode"
)

// TwoSprings is two masses coupled in series: wall -> spring1 -> m1 ->
// spring2 -> m2. State layout is position half then velocity half
// [x1, x2, v1, v2] so the symplectic solver applies directly.
type TwoSprings struct {
	Mass1, Mass2           float64
	Stiffness1, Stiffness2 float64
	Damping1, Damping2     float64

	Position1, Position2 float64
	Velocity1, Velocity2 float64
}

func NewTwoSprings() *TwoSprings {
	return &TwoSprings{
		Mass1: DefaultMass, Mass2: DefaultMass,
		Stiffness1: DefaultStiffness, Stiffness2: DefaultStiffness,
	}
}

func (w *TwoSprings) Dim() int { return 4 }

func (w *TwoSprings) State() ode.State {
	return ode.State{w.Position1, w.Position2, w.Velocity1, w.Velocity2}
}

func (w *TwoSprings) SetState(x ode.State) {
	w.Position1, w.Position2 = x[0], x[1]
	w.Velocity1, w.Velocity2 = x[2], x[3]
}

func (w *TwoSprings) Derivatives(x ode.State, dxdt ode.State, t float64) {
	x1, x2, v1, v2 := x[0], x[1], x[2], x[3]
	stretch := x2 - x1

	dxdt[0] = v1
	dxdt[1] = v2
	dxdt[2] = (-w.Stiffness1*x1 + w.Stiffness2*stretch - w.Damping1*v1) / w.Mass1
	dxdt[3] = (-w.Stiffness2*stretch - w.Damping2*v2) / w.Mass2
}

func (w *TwoSprings) Energy(x ode.State) float64 {
	x1, x2, v1, v2 := x[0], x[1], x[2], x[3]
	stretch := x2 - x1
	ke := 0.5*w.Mass1*v1*v1 + 0.5*w.Mass2*v2*v2
	pe := 0.5*w.Stiffness1*x1*x1 + 0.5*w.Stiffness2*stretch*stretch
	return ke + pe
}

func (w *TwoSprings) Params() map[string]float64 {
	return map[string]float64{
		"mass1": w.Mass1, "mass2": w.Mass2,
		"stiffness1": w.Stiffness1, "stiffness2": w.Stiffness2,
		"damping1": w.Damping1, "damping2": w.Damping2,
	}
}

func (w *TwoSprings) SetParam(name string, value float64) error {
	switch name {
	case "mass1":
		w.Mass1 = value
	case "mass2":
		w.Mass2 = value
	case "stiffness1":
		w.Stiffness1 = value
	case "stiffness2":
		w.Stiffness2 = value
	case "damping1":
		w.Damping1 = value
	case "damping2":
		w.Damping2 = value
	default:
		return fmt.Errorf("unknown param: %s", name)
	}
	return nil
}
