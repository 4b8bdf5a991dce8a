package physics

import (
	"fmt"
	"sort"

	"github.com/pmorenz/oscilab/internal/ode"
)

var models = map[string]func() ode.Model{
	"spring":          func() ode.Model { return NewSpring() },
	"two-springs":     func() ode.Model { return NewTwoSprings() },
	"pendulum":        func() ode.Model { return NewPendulum() },
	"double-pendulum": func() ode.Model { return NewDoublePendulum() },
}

var defaultStates = map[string]ode.State{
	"spring":          {1.0, 0.0},
	"two-springs":     {1.0, 0.0, 0.0, 0.0},
	"pendulum":        {0.5, 0.0},
	"double-pendulum": {0.5, 0.5, 0.0, 0.0},
}

// NewModel builds a model by name.
func NewModel(name string) (ode.Model, error) {
	ctor, ok := models[name]
	if !ok {
		return nil, fmt.Errorf("unknown model: %s", name)
	}
	return ctor(), nil
}

// DefaultState returns a copy of the model's default initial state.
func DefaultState(name string) (ode.State, error) {
	x, ok := defaultStates[name]
	if !ok {
		return nil, fmt.Errorf("unknown model: %s", name)
	}
	return x.Clone(), nil
}

// Models returns the available model names, sorted.
func Models() []string {
	names := make([]string, 0, len(models))
	for name := range models {
		names = append(names, name)
	}
	sort.Strings(names)
	return names
}
