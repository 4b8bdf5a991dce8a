package solvers

import (
	"testing"

	"github.com/pmorenz/oscilab/internal/ode"
)

func benchmarkSolver(b *testing.B, s ode.Solver) {
	sys := &oscillator{omega2: 10}
	x := ode.State{1, 0}
	s.SetFixedStep(0.001)
	b.ResetTimer()
	t := 0.0
	for i := 0; i < b.N; i++ {
		var err error
		t, err = s.Step(sys, x, t, 1.0/60.0)
		if err != nil {
			b.Fatal(err)
		}
	}
}

func BenchmarkRK4(b *testing.B)              { benchmarkSolver(b, NewRK4()) }
func BenchmarkModifiedMidpoint(b *testing.B) { benchmarkSolver(b, NewModifiedMidpoint()) }
func BenchmarkPEFRL(b *testing.B)            { benchmarkSolver(b, NewPEFRL()) }
func BenchmarkAdaptiveRK45(b *testing.B)     { benchmarkSolver(b, NewAdaptiveRK45()) }
func BenchmarkDormandPrince87(b *testing.B)  { benchmarkSolver(b, NewDormandPrince87()) }
