package solvers

import "github.com/pmorenz/oscilab/internal/ode"

// Cash-Karp embedded 4(5) coefficients.
var (
	ckA = []float64{0, 1.0 / 5.0, 3.0 / 10.0, 3.0 / 5.0, 1.0, 7.0 / 8.0}

	ckB21 = 1.0 / 5.0
	ckB31 = 3.0 / 40.0
	ckB32 = 9.0 / 40.0
	ckB41 = 3.0 / 10.0
	ckB42 = -9.0 / 10.0
	ckB43 = 6.0 / 5.0
	ckB51 = -11.0 / 54.0
	ckB52 = 5.0 / 2.0
	ckB53 = -70.0 / 27.0
	ckB54 = 35.0 / 27.0
	ckB61 = 1631.0 / 55296.0
	ckB62 = 175.0 / 512.0
	ckB63 = 575.0 / 13824.0
	ckB64 = 44275.0 / 110592.0
	ckB65 = 253.0 / 4096.0

	// Fifth-order solution weights.
	ckC1 = 37.0 / 378.0
	ckC3 = 250.0 / 621.0
	ckC4 = 125.0 / 594.0
	ckC6 = 512.0 / 1771.0

	// Embedded fourth-order weights.
	ckD1 = 2825.0 / 27648.0
	ckD3 = 18575.0 / 48384.0
	ckD4 = 13525.0 / 55296.0
	ckD5 = 277.0 / 14336.0
	ckD6 = 1.0 / 4.0
)

// DefaultRK45Tolerance balances accuracy against the six derivative
// evaluations each trial costs.
const DefaultRK45Tolerance = 1e-6

// AdaptiveRK45 is the Cash-Karp embedded Runge-Kutta 4(5) pair.
type AdaptiveRK45 struct {
	adaptive
	k1, k2, k3, k4, k5, k6 ode.State
	yt, hi, lo             ode.State
}

func NewAdaptiveRK45() *AdaptiveRK45 {
	return &AdaptiveRK45{adaptive: newAdaptive(DefaultRK45Tolerance)}
}

func (r *AdaptiveRK45) ensureScratch(n int) {
	r.k1 = grow(r.k1, n)
	r.k2 = grow(r.k2, n)
	r.k3 = grow(r.k3, n)
	r.k4 = grow(r.k4, n)
	r.k5 = grow(r.k5, n)
	r.k6 = grow(r.k6, n)
	r.yt = grow(r.yt, n)
	r.hi = grow(r.hi, n)
	r.lo = grow(r.lo, n)
}

func (r *AdaptiveRK45) Step(sys ode.System, x ode.State, t, dt float64) (float64, error) {
	if err := checkStep(x, t, dt); err != nil {
		return t, err
	}
	if dt == 0 {
		return t, nil
	}
	r.ensureScratch(len(x))

	trial := func(t, h float64) float64 {
		r.trial(sys, x, t, h)
		return maxDiff(r.hi, r.lo)
	}
	commit := func() { copy(x, r.hi) }

	return r.integrate(t, dt, trial, commit)
}

func (r *AdaptiveRK45) trial(sys ode.System, x ode.State, t, h float64) {
	n := len(x)

	sys.Derivatives(x, r.k1, t)

	for i := 0; i < n; i++ {
		r.yt[i] = x[i] + h*ckB21*r.k1[i]
	}
	sys.Derivatives(r.yt, r.k2, t+ckA[1]*h)

	for i := 0; i < n; i++ {
		r.yt[i] = x[i] + h*(ckB31*r.k1[i]+ckB32*r.k2[i])
	}
	sys.Derivatives(r.yt, r.k3, t+ckA[2]*h)

	for i := 0; i < n; i++ {
		r.yt[i] = x[i] + h*(ckB41*r.k1[i]+ckB42*r.k2[i]+ckB43*r.k3[i])
	}
	sys.Derivatives(r.yt, r.k4, t+ckA[3]*h)

	for i := 0; i < n; i++ {
		r.yt[i] = x[i] + h*(ckB51*r.k1[i]+ckB52*r.k2[i]+ckB53*r.k3[i]+ckB54*r.k4[i])
	}
	sys.Derivatives(r.yt, r.k5, t+ckA[4]*h)

	for i := 0; i < n; i++ {
		r.yt[i] = x[i] + h*(ckB61*r.k1[i]+ckB62*r.k2[i]+ckB63*r.k3[i]+ckB64*r.k4[i]+ckB65*r.k5[i])
	}
	sys.Derivatives(r.yt, r.k6, t+ckA[5]*h)

	for i := 0; i < n; i++ {
		r.hi[i] = x[i] + h*(ckC1*r.k1[i]+ckC3*r.k3[i]+ckC4*r.k4[i]+ckC6*r.k6[i])
		r.lo[i] = x[i] + h*(ckD1*r.k1[i]+ckD3*r.k3[i]+ckD4*r.k4[i]+ckD5*r.k5[i]+ckD6*r.k6[i])
	}
}
