package solvers

import (
	"math"

	. "github.com/onsi/ginkgo/v2"
	. "github.com/onsi/gomega"

	"github.com/pmorenz/oscilab/internal/ode"
)

// nanSystem always produces a non-finite derivative.
type nanSystem struct{}

func (n *nanSystem) Dim() int { return 2 }

func (n *nanSystem) Derivatives(x ode.State, dxdt ode.State, t float64) {
	dxdt[0] = math.NaN()
	dxdt[1] = math.NaN()
}

var _ = Describe("adaptive step-size control", func() {
	var sys *oscillator

	BeforeEach(func() {
		sys = &oscillator{omega2: 1.0}
	})

	Describe("AdaptiveRK45", func() {
		It("covers the full requested interval", func() {
			solver := NewAdaptiveRK45()
			solver.SetFixedStep(0.05)
			x := ode.State{1.0, 0.0}

			tEnd, err := solver.Step(sys, x, 0, 3.7)
			Expect(err).NotTo(HaveOccurred())
			Expect(tEnd).To(BeNumerically("~", 3.7, 1e-9))
		})

		It("does not get less accurate when the tolerance tightens", func() {
			finalError := func(tol float64) float64 {
				solver := NewAdaptiveRK45()
				solver.SetFixedStep(0.05)
				solver.SetTolerance(tol)
				x := ode.State{1.0, 0.0}
				_, err := solver.Step(sys, x, 0, 10.0)
				Expect(err).NotTo(HaveOccurred())
				return oscillatorError(x, 1.0, 10.0)
			}

			loose := finalError(1e-6)
			tight := finalError(1e-9)
			Expect(tight).To(BeNumerically("<=", loose*1.001+1e-12))
		})

		It("tracks the analytic solution within tolerance scale", func() {
			solver := NewAdaptiveRK45()
			solver.SetFixedStep(0.05)
			x := ode.State{1.0, 0.0}
			_, err := solver.Step(sys, x, 0, 2*math.Pi)
			Expect(err).NotTo(HaveOccurred())
			Expect(oscillatorError(x, 1.0, 2*math.Pi)).To(BeNumerically("<", 1e-4))
		})

		It("terminates via forced acceptance when the tolerance is unreachable", func() {
			solver := NewAdaptiveRK45()
			solver.SetFixedStep(0.001)
			solver.SetTolerance(1e-300)
			x := ode.State{1.0, 0.0}

			tEnd, err := solver.Step(sys, x, 0, 1e-4)
			Expect(err).NotTo(HaveOccurred())
			Expect(tEnd).To(BeNumerically("~", 1e-4, 1e-12))
			Expect(x.IsValid()).To(BeTrue())
		})

		It("refuses to accept a non-finite state", func() {
			solver := NewAdaptiveRK45()
			x := ode.State{1.0, 0.0}

			_, err := solver.Step(&nanSystem{}, x, 0, 0.1)
			Expect(err).To(MatchError(ode.ErrDiverged))
		})

		It("uses the nominal step as its growth cap", func() {
			solver := NewAdaptiveRK45()
			solver.SetFixedStep(0.02)
			Expect(solver.FixedStep()).To(Equal(0.02))
		})

		It("integrates backward in time", func() {
			solver := NewAdaptiveRK45()
			solver.SetFixedStep(0.01)
			solver.SetTolerance(1e-10)
			x := ode.State{1.0, 0.0}

			tMid, err := solver.Step(sys, x, 0, 1.0)
			Expect(err).NotTo(HaveOccurred())
			tEnd, err := solver.Step(sys, x, tMid, -1.0)
			Expect(err).NotTo(HaveOccurred())

			Expect(tEnd).To(BeNumerically("~", 0, 1e-9))
			Expect(x[0]).To(BeNumerically("~", 1.0, 1e-6))
			Expect(x[1]).To(BeNumerically("~", 0.0, 1e-6))
		})
	})

	Describe("AdaptiveEulerHeun", func() {
		It("resolves a smooth system within its loose tolerance", func() {
			solver := NewAdaptiveEulerHeun()
			solver.SetFixedStep(0.01)
			x := ode.State{1.0, 0.0}

			_, err := solver.Step(sys, x, 0, 2*math.Pi)
			Expect(err).NotTo(HaveOccurred())
			Expect(oscillatorError(x, 1.0, 2*math.Pi)).To(BeNumerically("<", 1e-2))
		})

		It("refuses to accept a non-finite state", func() {
			solver := NewAdaptiveEulerHeun()
			x := ode.State{1.0, 0.0}
			_, err := solver.Step(&nanSystem{}, x, 0, 0.1)
			Expect(err).To(MatchError(ode.ErrDiverged))
		})
	})

	Describe("DormandPrince87", func() {
		It("is the most accurate of the family", func() {
			run := func(solver ode.Solver) float64 {
				solver.SetFixedStep(0.05)
				x := ode.State{1.0, 0.0}
				_, err := solver.Step(sys, x, 0, 10.0)
				Expect(err).NotTo(HaveOccurred())
				return oscillatorError(x, 1.0, 10.0)
			}

			dp := run(NewDormandPrince87())
			eh := run(NewAdaptiveEulerHeun())
			Expect(dp).To(BeNumerically("<", eh))
			Expect(dp).To(BeNumerically("<", 1e-6))
		})

		It("refuses to accept a non-finite state", func() {
			solver := NewDormandPrince87()
			x := ode.State{1.0, 0.0}
			_, err := solver.Step(&nanSystem{}, x, 0, 0.1)
			Expect(err).To(MatchError(ode.ErrDiverged))
		})
	})
})
