package metrics

import (
	"math"

	"github.com/pmorenz/oscilab/internal/ode"
)

// EnergyDrift tracks the worst relative deviation of total energy from its
// value at the first observation. For symplectic solvers on conservative
// systems this should stay bounded; secular growth points at the solver.
type EnergyDrift struct {
	sys      ode.System
	initial  float64
	maxDrift float64
	samples  int
}

func NewEnergyDrift(sys ode.System) *EnergyDrift {
	return &EnergyDrift{sys: sys}
}

func (e *EnergyDrift) Name() string { return "energy_drift" }

func (e *EnergyDrift) Observe(x ode.State, t float64) {
	h, ok := e.sys.(ode.Hamiltonian)
	if !ok {
		return
	}

	energy := h.Energy(x)
	if e.samples == 0 {
		e.initial = energy
	}
	e.samples++

	if e.initial != 0 {
		drift := math.Abs(energy-e.initial) / math.Abs(e.initial)
		e.maxDrift = math.Max(e.maxDrift, drift)
	}
}

func (e *EnergyDrift) Value() float64 { return e.maxDrift }

func (e *EnergyDrift) Reset() {
	e.initial = 0
	e.maxDrift = 0
	e.samples = 0
}
