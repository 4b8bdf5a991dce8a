package config

import (
	"fmt"

	"github.com/pmorenz/oscilab/internal/solvers"
)

// Granularity is a named nominal time step. The set is deliberately small:
// the preference surface offers a handful of choices, not a free dial.
type Granularity string

const (
	Coarse Granularity = "coarse"
	Normal Granularity = "normal"
	Fine   Granularity = "fine"
)

var granularitySteps = map[Granularity]float64{
	Coarse: 0.01,
	Normal: 0.001,
	Fine:   0.0001,
}

// StepSize returns the fixed step a granularity stands for.
func (g Granularity) StepSize() (float64, error) {
	h, ok := granularitySteps[g]
	if !ok {
		return 0, fmt.Errorf("unknown granularity: %s", g)
	}
	return h, nil
}

func Granularities() []Granularity {
	return []Granularity{Coarse, Normal, Fine}
}

// Settings holds the live solver preferences shared by every model view.
// It is injected at construction rather than read from globals; consumers
// subscribe for hot-swap notification.
type Settings struct {
	solver      solvers.Kind
	granularity Granularity
	subscribers []func(*Settings)
}

func NewSettings() *Settings {
	return &Settings{
		solver:      solvers.KindRK4,
		granularity: Normal,
	}
}

func (s *Settings) Solver() solvers.Kind     { return s.solver }
func (s *Settings) Granularity() Granularity { return s.granularity }

// StepSize resolves the current granularity.
func (s *Settings) StepSize() float64 {
	h, err := s.granularity.StepSize()
	if err != nil {
		h, _ = Normal.StepSize()
	}
	return h
}

// Subscribe registers a callback fired after every settings change.
func (s *Settings) Subscribe(fn func(*Settings)) {
	s.subscribers = append(s.subscribers, fn)
}

func (s *Settings) SetSolver(kind solvers.Kind) {
	if kind == s.solver {
		return
	}
	s.solver = kind
	s.notify()
}

func (s *Settings) SetGranularity(g Granularity) {
	if _, err := g.StepSize(); err != nil {
		return
	}
	if g == s.granularity {
		return
	}
	s.granularity = g
	s.notify()
}

func (s *Settings) notify() {
	for _, fn := range s.subscribers {
		fn(s)
	}
}
