package physics

import (
	"math"
	"testing"

	"github.com/pmorenz/oscilab/internal/ode"
	"github.com/pmorenz/oscilab/internal/solvers"
)

func TestSpringEquilibrium(t *testing.T) {
	s := NewSpring()
	// At x = mg/k the spring force cancels gravity.
	eq := s.Mass * s.Gravity / s.Stiffness
	dxdt := make(ode.State, 2)
	s.Derivatives(ode.State{eq, 0}, dxdt, 0)
	if math.Abs(dxdt[0]) > 1e-12 || math.Abs(dxdt[1]) > 1e-12 {
		t.Errorf("equilibrium derivatives = %v, want zero", dxdt)
	}
}

func TestSpringRestoringForce(t *testing.T) {
	s := NewSpring()
	s.Gravity = 0
	dxdt := make(ode.State, 2)

	s.Derivatives(ode.State{1, 0}, dxdt, 0)
	if dxdt[1] >= 0 {
		t.Errorf("stretched spring accel = %v, want negative", dxdt[1])
	}
	s.Derivatives(ode.State{-1, 0}, dxdt, 0)
	if dxdt[1] <= 0 {
		t.Errorf("compressed spring accel = %v, want positive", dxdt[1])
	}
}

func TestSpringDampingOpposesVelocity(t *testing.T) {
	s := NewSpring()
	s.Gravity = 0
	s.Damping = 0.5
	dxdt := make(ode.State, 2)
	s.Derivatives(ode.State{0, 2}, dxdt, 0)
	want := -s.Damping * 2 / s.Mass
	if math.Abs(dxdt[1]-want) > 1e-12 {
		t.Errorf("damped accel = %v, want %v", dxdt[1], want)
	}
}

func TestPendulumSmallAngleLimit(t *testing.T) {
	p := NewPendulum()
	theta := 1e-4
	dxdt := make(ode.State, 2)
	p.Derivatives(ode.State{theta, 0}, dxdt, 0)
	linear := -p.Gravity / p.Length * theta
	if math.Abs(dxdt[1]-linear) > math.Abs(linear)*1e-6 {
		t.Errorf("small-angle accel = %v, want ~%v", dxdt[1], linear)
	}
}

func TestPendulumEnergyAtRest(t *testing.T) {
	p := NewPendulum()
	if e := p.Energy(ode.State{0, 0}); e != 0 {
		t.Errorf("rest energy = %v, want 0", e)
	}
	// Inverted position holds the full potential 2mgL.
	top := p.Energy(ode.State{math.Pi, 0})
	want := 2 * p.Mass * p.Gravity * p.Length
	if math.Abs(top-want) > 1e-12 {
		t.Errorf("inverted energy = %v, want %v", top, want)
	}
}

func TestTwoSpringsMomentumBalance(t *testing.T) {
	w := NewTwoSprings()
	x := ode.State{0.3, -0.2, 0.1, 0.4}
	dxdt := make(ode.State, 4)
	w.Derivatives(x, dxdt, 0)

	// Internal spring forces cancel pairwise, so the net force on the
	// system equals the wall spring pulling on the first mass.
	net := w.Mass1*dxdt[2] + w.Mass2*dxdt[3]
	want := -w.Stiffness1 * x[0]
	if math.Abs(net-want) > 1e-12 {
		t.Errorf("net force = %v, want %v", net, want)
	}
}

func TestDoublePendulumEnergyConserved(t *testing.T) {
	d := NewDoublePendulum()
	solver := solvers.NewRK4()
	solver.SetFixedStep(1e-4)

	x := ode.State{0.5, 0.5, 0, 0}
	e0 := d.Energy(x)
	tt := 0.0
	for i := 0; i < 100; i++ {
		var err error
		tt, err = solver.Step(d, x, tt, 0.01)
		if err != nil {
			t.Fatal(err)
		}
	}
	drift := math.Abs(d.Energy(x)-e0) / math.Max(math.Abs(e0), 1)
	if drift > 1e-6 {
		t.Errorf("relative energy drift = %v after 1s", drift)
	}
}

func TestDoublePendulumReducesToSinglePendulum(t *testing.T) {
	d := NewDoublePendulum()
	d.Mass2 = 1e-9
	p := NewPendulum()

	dxdt := make(ode.State, 4)
	d.Derivatives(ode.State{0.5, 0.5, 0, 0}, dxdt, 0)

	ref := make(ode.State, 2)
	p.Derivatives(ode.State{0.5, 0}, ref, 0)

	if math.Abs(dxdt[2]-ref[1]) > 1e-6 {
		t.Errorf("upper arm accel = %v, single pendulum gives %v", dxdt[2], ref[1])
	}
}

func TestModelStateRoundTrip(t *testing.T) {
	for _, name := range Models() {
		m, err := NewModel(name)
		if err != nil {
			t.Fatal(err)
		}
		x, err := DefaultState(name)
		if err != nil {
			t.Fatal(err)
		}
		if len(x) != m.Dim() {
			t.Errorf("%s: default state len %d, Dim %d", name, len(x), m.Dim())
		}
		m.SetState(x)
		got := m.State()
		for i := range x {
			if got[i] != x[i] {
				t.Errorf("%s: state round trip got %v, want %v", name, got, x)
				break
			}
		}
	}
}

func TestModelParamsRoundTrip(t *testing.T) {
	for _, name := range Models() {
		m, err := NewModel(name)
		if err != nil {
			t.Fatal(err)
		}
		cfg, ok := m.(ode.Configurable)
		if !ok {
			t.Fatalf("%s: not configurable", name)
		}
		for param := range cfg.Params() {
			if err := cfg.SetParam(param, 2.5); err != nil {
				t.Errorf("%s: SetParam(%s): %v", name, param, err)
			}
		}
		if err := cfg.SetParam("no-such-param", 1); err == nil {
			t.Errorf("%s: expected error for unknown param", name)
		}
	}
}

func TestUnknownModel(t *testing.T) {
	if _, err := NewModel("triple-pendulum"); err == nil {
		t.Error("expected error for unknown model")
	}
	if _, err := DefaultState("triple-pendulum"); err == nil {
		t.Error("expected error for unknown model")
	}
}
