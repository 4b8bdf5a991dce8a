package metrics

import (
	"testing"

	"github.com/pmorenz/oscilab/internal/ode"
	"github.com/pmorenz/oscilab/internal/physics"
)

func TestEnergyDriftTracksWorstDeviation(t *testing.T) {
	spring := physics.NewSpring()
	spring.Gravity = 0
	m := NewEnergyDrift(spring)

	// E = 5 at {1, 0} with k = 10.
	m.Observe(ode.State{1, 0}, 0)
	if m.Value() != 0 {
		t.Errorf("drift after first sample = %v", m.Value())
	}

	// Same energy, different phase.
	m.Observe(ode.State{0, 3.1622776601683795}, 0.5)
	if m.Value() > 1e-12 {
		t.Errorf("drift on equal-energy state = %v", m.Value())
	}

	// 10% higher energy, then back: max is sticky.
	m.Observe(ode.State{1.0488088481701516, 0}, 1.0)
	peak := m.Value()
	if peak < 0.09 || peak > 0.11 {
		t.Errorf("drift = %v, want ~0.1", peak)
	}
	m.Observe(ode.State{1, 0}, 1.5)
	if m.Value() != peak {
		t.Errorf("drift dropped from %v to %v", peak, m.Value())
	}

	m.Reset()
	if m.Value() != 0 {
		t.Errorf("drift after reset = %v", m.Value())
	}
}

func TestEnergyDriftNonHamiltonianSystem(t *testing.T) {
	m := NewEnergyDrift(plainSystem{})
	m.Observe(ode.State{1, 2}, 0)
	m.Observe(ode.State{100, 200}, 1)
	if m.Value() != 0 {
		t.Errorf("drift on non-Hamiltonian system = %v", m.Value())
	}
}

func TestStabilityFraction(t *testing.T) {
	m := NewStability(10)
	if m.Value() != 1.0 {
		t.Errorf("empty stability = %v", m.Value())
	}

	m.Observe(ode.State{1, 1}, 0)
	m.Observe(ode.State{5, -5}, 1)
	m.Observe(ode.State{50, 0}, 2)
	m.Observe(ode.State{0, -50}, 3)

	if m.Value() != 0.5 {
		t.Errorf("stability = %v, want 0.5", m.Value())
	}

	m.Reset()
	if m.Value() != 1.0 {
		t.Errorf("stability after reset = %v", m.Value())
	}
}

type plainSystem struct{}

func (plainSystem) Dim() int { return 2 }

func (plainSystem) Derivatives(x ode.State, d ode.State, t float64) {
	d[0], d[1] = x[1], -x[0]
}
