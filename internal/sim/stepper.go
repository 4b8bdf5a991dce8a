package sim

import (
	"math"

	"github.com/pmorenz/oscilab/internal/ode"
	"github.com/pmorenz/oscilab/internal/solvers"
)

// MaxFrameDelta caps the real-time delta fed into one step. Tab switches
// and frame-rate hiccups can hand us a huge dt; clamping it keeps the
// physics from visibly jumping.
const MaxFrameDelta = 0.1

// Speed is the time multiplier applied to incoming frame deltas.
type Speed float64

const (
	Slow   Speed = 0.5
	Normal Speed = 1.0
	Fast   Speed = 2.0
)

// Stepper owns simulation time and play state for one model. It is driven
// once per animation tick by the caller and delegates the actual
// integration to whichever solver is currently active.
type Stepper struct {
	model   ode.Model
	solver  ode.Solver
	kind    solvers.Kind
	t       float64
	playing bool
	speed   Speed
}

func NewStepper(model ode.Model, kind solvers.Kind) (*Stepper, error) {
	solver, err := solvers.New(kind)
	if err != nil {
		return nil, err
	}
	return &Stepper{
		model:   model,
		solver:  solver,
		kind:    kind,
		playing: true,
		speed:   Normal,
	}, nil
}

func (s *Stepper) Model() ode.Model     { return s.model }
func (s *Stepper) Solver() ode.Solver   { return s.solver }
func (s *Stepper) Kind() solvers.Kind   { return s.kind }
func (s *Stepper) Time() float64        { return s.t }
func (s *Stepper) Playing() bool        { return s.playing }
func (s *Stepper) CurrentSpeed() Speed  { return s.speed }
func (s *Stepper) Play()                { s.playing = true }
func (s *Stepper) Pause()               { s.playing = false }
func (s *Stepper) TogglePlay()          { s.playing = !s.playing }
func (s *Stepper) SetSpeed(speed Speed) { s.speed = speed }

// SetTime adjusts simulation time directly; manual step-back passes a
// negative dt to Step instead, but tooling sometimes needs a hard reset.
func (s *Stepper) SetTime(t float64) { s.t = t }

// Step advances the model by one frame.
//
// When paused it is a pure no-op unless force is set (manual single-step).
// The incoming delta is magnitude-clamped before anything else, then
// speed-scaled. A forced step always runs at 1x so manual stepping is
// deterministic regardless of the speed setting.
func (s *Stepper) Step(dt float64, force bool) error {
	if !s.playing && !force {
		return nil
	}

	if math.Abs(dt) > MaxFrameDelta {
		dt = math.Copysign(MaxFrameDelta, dt)
	}
	if !force {
		dt *= float64(s.speed)
	}

	x := s.model.State()
	t, err := s.solver.Step(s.model, x, s.t, dt)
	if err != nil {
		return err
	}
	s.model.SetState(x)
	s.t = t
	return nil
}

// SwapSolver replaces the active solver with a fresh instance of the given
// kind, carrying the current nominal step size over. State vector and
// simulation time are untouched: physical continuity survives the swap
// even though the new solver's adaptation history starts from scratch.
func (s *Stepper) SwapSolver(kind solvers.Kind) error {
	next, err := solvers.New(kind)
	if err != nil {
		return err
	}
	next.SetFixedStep(s.solver.FixedStep())
	s.solver = next
	s.kind = kind
	return nil
}

// SetFixedStep applies a nominal step size to the active solver. It is
// re-applied automatically by SwapSolver, so callers only need this when
// the granularity preference itself changes.
func (s *Stepper) SetFixedStep(h float64) { s.solver.SetFixedStep(h) }
