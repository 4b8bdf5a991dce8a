package sim

import (
	"context"
	"fmt"
	"math"

	"github.com/pmorenz/oscilab/internal/ode"
)

// RunConfig drives a batch integration.
type RunConfig struct {
	// FrameDelta is the interval handed to the solver per iteration; the
	// solver sub-steps internally at its own granularity.
	FrameDelta float64
	Duration   float64
	// ValidateState aborts the run when the state goes non-finite instead
	// of silently propagating garbage.
	ValidateState bool
}

func DefaultRunConfig() RunConfig {
	return RunConfig{
		FrameDelta:    1.0 / 60.0,
		Duration:      10.0,
		ValidateState: true,
	}
}

// Result holds a completed run.
type Result struct {
	States      []ode.State
	Times       []float64
	Metrics     map[string]float64
	EnergyDrift float64
	StepsTaken  int
}

// Runner integrates a system over a fixed duration, recording the
// trajectory and feeding metrics and observers. It exercises solvers
// exactly the way the interactive stepper does, minus play/pause.
type Runner struct {
	sys       ode.System
	solver    ode.Solver
	metrics   []ode.Metric
	observers []ode.Observer
}

func NewRunner(sys ode.System, solver ode.Solver) *Runner {
	return &Runner{sys: sys, solver: solver}
}

func (r *Runner) AddMetric(m ode.Metric)     { r.metrics = append(r.metrics, m) }
func (r *Runner) AddObserver(o ode.Observer) { r.observers = append(r.observers, o) }

func (r *Runner) Run(ctx context.Context, x0 ode.State, cfg RunConfig) (*Result, error) {
	if err := validateRunConfig(cfg); err != nil {
		return nil, err
	}

	steps := int(cfg.Duration / cfg.FrameDelta)
	result := &Result{
		States:  make([]ode.State, 0, steps+1),
		Times:   make([]float64, 0, steps+1),
		Metrics: make(map[string]float64),
	}

	for _, m := range r.metrics {
		m.Reset()
	}

	x := x0.Clone()
	t := 0.0

	result.States = append(result.States, x.Clone())
	result.Times = append(result.Times, t)

	initialEnergy := r.energy(x)

	for i := 0; i < steps; i++ {
		select {
		case <-ctx.Done():
			return result, ctx.Err()
		default:
		}

		for _, m := range r.metrics {
			m.Observe(x, t)
		}
		for _, obs := range r.observers {
			obs.OnStep(x, t)
		}

		newT, err := r.solver.Step(r.sys, x, t, cfg.FrameDelta)
		if err != nil {
			return result, err
		}
		t = newT

		if cfg.ValidateState && !x.IsValid() {
			return result, &ode.StepError{T: t, Wrapped: ode.ErrNonFiniteState}
		}

		result.StepsTaken++
		result.States = append(result.States, x.Clone())
		result.Times = append(result.Times, t)
	}

	if initialEnergy != 0 {
		finalEnergy := r.energy(x)
		result.EnergyDrift = math.Abs(finalEnergy-initialEnergy) / math.Abs(initialEnergy)
	}

	for _, m := range r.metrics {
		result.Metrics[m.Name()] = m.Value()
	}

	return result, nil
}

func validateRunConfig(cfg RunConfig) error {
	if cfg.FrameDelta <= 0 {
		return fmt.Errorf("frame delta must be positive, got %f", cfg.FrameDelta)
	}
	if cfg.Duration <= 0 {
		return fmt.Errorf("duration must be positive, got %f", cfg.Duration)
	}
	return nil
}

func (r *Runner) energy(x ode.State) float64 {
	if h, ok := r.sys.(ode.Hamiltonian); ok {
		return h.Energy(x)
	}
	return 0
}
