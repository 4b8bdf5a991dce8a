package physics

import (
	"fmt"
	"math"

	"github.com/pmorenz/oscilab/internal/ode"
)

// DoublePendulum is two pendulums hinged end to end, chaotic for most
// initial conditions. State is [theta1, theta2, omega1, omega2].
type DoublePendulum struct {
	Mass1, Mass2     float64
	Length1, Length2 float64
	Gravity          float64

	Angle1, Angle2                     float64
	AngularVelocity1, AngularVelocity2 float64
}

func NewDoublePendulum() *DoublePendulum {
	return &DoublePendulum{
		Mass1: DefaultMass, Mass2: DefaultMass,
		Length1: 1.0, Length2: 1.0,
		Gravity: DefaultGravity,
	}
}

func (d *DoublePendulum) Dim() int { return 4 }

func (d *DoublePendulum) State() ode.State {
	return ode.State{d.Angle1, d.Angle2, d.AngularVelocity1, d.AngularVelocity2}
}

func (d *DoublePendulum) SetState(x ode.State) {
	d.Angle1, d.Angle2 = x[0], x[1]
	d.AngularVelocity1, d.AngularVelocity2 = x[2], x[3]
}

func (d *DoublePendulum) Derivatives(x ode.State, dxdt ode.State, t float64) {
	theta1, theta2, omega1, omega2 := x[0], x[1], x[2], x[3]
	m1, m2, l1, l2, g := d.Mass1, d.Mass2, d.Length1, d.Length2, d.Gravity

	delta := theta2 - theta1
	sinD, cosD := math.Sin(delta), math.Cos(delta)

	den1 := (m1+m2)*l1 - m2*l1*cosD*cosD
	den2 := (l2 / l1) * den1

	dxdt[0] = omega1
	dxdt[1] = omega2
	dxdt[2] = (m2*l1*omega1*omega1*sinD*cosD +
		m2*g*math.Sin(theta2)*cosD +
		m2*l2*omega2*omega2*sinD -
		(m1+m2)*g*math.Sin(theta1)) / den1
	dxdt[3] = (-m2*l2*omega2*omega2*sinD*cosD +
		(m1+m2)*g*math.Sin(theta1)*cosD -
		(m1+m2)*l1*omega1*omega1*sinD -
		(m1+m2)*g*math.Sin(theta2)) / den2
}

func (d *DoublePendulum) Energy(x ode.State) float64 {
	theta1, theta2, omega1, omega2 := x[0], x[1], x[2], x[3]
	m1, m2, l1, l2, g := d.Mass1, d.Mass2, d.Length1, d.Length2, d.Gravity

	v1sq := l1 * l1 * omega1 * omega1
	v2sq := v1sq + l2*l2*omega2*omega2 +
		2*l1*l2*omega1*omega2*math.Cos(theta1-theta2)

	ke := 0.5*m1*v1sq + 0.5*m2*v2sq
	y1 := -l1 * math.Cos(theta1)
	y2 := y1 - l2*math.Cos(theta2)
	pe := m1*g*y1 + m2*g*y2

	return ke + pe
}

func (d *DoublePendulum) Params() map[string]float64 {
	return map[string]float64{
		"mass1": d.Mass1, "mass2": d.Mass2,
		"length1": d.Length1, "length2": d.Length2,
		"gravity": d.Gravity,
	}
}

func (d *DoublePendulum) SetParam(name string, value float64) error {
	switch name {
	case "mass1":
		d.Mass1 = value
	case "mass2":
		d.Mass2 = value
	case "length1":
		d.Length1 = value
	case "length2":
		d.Length2 = value
	case "gravity":
		d.Gravity = value
	default:
		return fmt.Errorf("unknown param: %s", name)
	}
	return nil
}
