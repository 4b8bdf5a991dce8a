package solvers

import (
	"fmt"
	"sort"

	"github.com/pmorenz/oscilab/internal/ode"
)

// Kind names one of the available solver implementations.
type Kind string

const (
	KindRK4              Kind = "rk4"
	KindModifiedMidpoint Kind = "modified-midpoint"
	KindPEFRL            Kind = "pefrl"
	KindAdaptiveRK45     Kind = "adaptive-rk45"
	KindAdaptiveEuler    Kind = "adaptive-euler"
	KindDormandPrince87  Kind = "dormand-prince-87"
)

var constructors = map[Kind]func() ode.Solver{
	KindRK4:              func() ode.Solver { return NewRK4() },
	KindModifiedMidpoint: func() ode.Solver { return NewModifiedMidpoint() },
	KindPEFRL:            func() ode.Solver { return NewPEFRL() },
	KindAdaptiveRK45:     func() ode.Solver { return NewAdaptiveRK45() },
	KindAdaptiveEuler:    func() ode.Solver { return NewAdaptiveEulerHeun() },
	KindDormandPrince87:  func() ode.Solver { return NewDormandPrince87() },
}

// New builds a fresh solver instance of the given kind. Swapping kinds at
// runtime always goes through here so the replacement starts with clean
// scratch buffers and step-size adaptation state.
func New(kind Kind) (ode.Solver, error) {
	ctor, ok := constructors[kind]
	if !ok {
		return nil, fmt.Errorf("unknown solver: %s", kind)
	}
	return ctor(), nil
}

// Kinds returns the available solver names, sorted.
func Kinds() []Kind {
	kinds := make([]Kind, 0, len(constructors))
	for k := range constructors {
		kinds = append(kinds, k)
	}
	sort.Slice(kinds, func(i, j int) bool { return kinds[i] < kinds[j] })
	return kinds
}
