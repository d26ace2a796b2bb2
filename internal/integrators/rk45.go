package integrators

import (
	"fmt"
	"math"

	"github.com/san-kum/sixdof/internal/dynamo"
)

// Dormand-Prince 5(4) coefficients.
var (
	a2 = 1.0 / 5.0
	a3 = 3.0 / 10.0
	a4 = 4.0 / 5.0
	a5 = 8.0 / 9.0

	b21 = 1.0 / 5.0
	b31 = 3.0 / 40.0
	b32 = 9.0 / 40.0
	b41 = 44.0 / 45.0
	b42 = -56.0 / 15.0
	b43 = 32.0 / 9.0
	b51 = 19372.0 / 6561.0
	b52 = -25360.0 / 2187.0
	b53 = 64448.0 / 6561.0
	b54 = -212.0 / 729.0
	b61 = 9017.0 / 3168.0
	b62 = -355.0 / 33.0
	b63 = 46732.0 / 5247.0
	b64 = 49.0 / 176.0
	b65 = -5103.0 / 18656.0

	c1 = 35.0 / 384.0
	c3 = 500.0 / 1113.0
	c4 = 125.0 / 192.0
	c5 = -2187.0 / 6784.0
	c6 = 11.0 / 84.0

	dc1 = c1 - 5179.0/57600.0
	dc3 = c3 - 7571.0/16695.0
	dc4 = c4 - 393.0/640.0
	dc5 = c5 - -92097.0/339200.0
	dc6 = c6 - 187.0/2100.0
	dc7 = -1.0 / 40.0
)

// RK45 is an adaptive embedded Dormand-Prince 5(4) solver. The local-error
// controller picks the internal step size; Solve produces samples on an
// explicit output grid by clamping internal steps to land on grid points.
type RK45 struct {
	tol   float64
	minDt float64
	maxDt float64

	safety   float64
	minScale float64
	maxScale float64
}

func NewRK45(tol, minDt, maxDt float64) *RK45 {
	def := dynamo.DefaultConfig()
	if tol <= 0 {
		tol = def.Tolerance
	}
	if minDt <= 0 {
		minDt = def.MinDt
	}
	if maxDt <= 0 {
		maxDt = def.MaxDt
	}
	return &RK45{
		tol:      tol,
		minDt:    minDt,
		maxDt:    maxDt,
		safety:   0.9,
		minScale: 0.2,
		maxScale: 10.0,
	}
}

// Step takes a single fixed step, discarding the error estimate. It lets the
// solver stand in for a fixed-step integrator in cross-checks.
func (r *RK45) Step(dyn dynamo.System, x dynamo.State, u dynamo.Loads, t, dt float64) dynamo.State {
	xNew, _ := r.attempt(dyn, x, u, t, dt)
	return xNew
}

// attempt performs one trial step and returns the 5th-order solution along
// with the scaled local error estimate. Scratch slots are zeroed before
// every substage and end up holding the final substage's accelerations.
func (r *RK45) attempt(dyn dynamo.System, x dynamo.State, u dynamo.Loads, t, dt float64) (dynamo.State, float64) {
	n := len(x)
	stage := func(s dynamo.State, at float64) dynamo.State {
		s.ResetScratch()
		return dyn.Derive(s, u, at)
	}

	base := x.Clone()
	base.ResetScratch()
	k1 := dyn.Derive(base, u, t)

	x2 := make(dynamo.State, n)
	for i := 0; i < n; i++ {
		x2[i] = base[i] + dt*b21*k1[i]
	}
	k2 := stage(x2, t+a2*dt)

	x3 := make(dynamo.State, n)
	for i := 0; i < n; i++ {
		x3[i] = base[i] + dt*(b31*k1[i]+b32*k2[i])
	}
	k3 := stage(x3, t+a3*dt)

	x4 := make(dynamo.State, n)
	for i := 0; i < n; i++ {
		x4[i] = base[i] + dt*(b41*k1[i]+b42*k2[i]+b43*k3[i])
	}
	k4 := stage(x4, t+a4*dt)

	x5 := make(dynamo.State, n)
	for i := 0; i < n; i++ {
		x5[i] = base[i] + dt*(b51*k1[i]+b52*k2[i]+b53*k3[i]+b54*k4[i])
	}
	k5 := stage(x5, t+a5*dt)

	x6 := make(dynamo.State, n)
	for i := 0; i < n; i++ {
		x6[i] = base[i] + dt*(b61*k1[i]+b62*k2[i]+b63*k3[i]+b64*k4[i]+b65*k5[i])
	}
	k6 := stage(x6, t+dt)

	xNew := make(dynamo.State, n)
	for i := 0; i < n; i++ {
		xNew[i] = base[i] + dt*(c1*k1[i]+c3*k3[i]+c4*k4[i]+c5*k5[i]+c6*k6[i])
	}
	k7 := stage(xNew, t+dt)
	xNew.SetAccelerations(k7)

	// Error control covers the integrated slots only; the scratch slots are
	// report-only and carry no history.
	lim := len(x.Integrated())
	errMax := 0.0
	for i := 0; i < lim; i++ {
		errEst := dt * (dc1*k1[i] + dc3*k3[i] + dc4*k4[i] + dc5*k5[i] + dc6*k6[i] + dc7*k7[i])
		scale := math.Abs(base[i]) + math.Abs(dt*k1[i]) + 1e-10
		errMax = math.Max(errMax, math.Abs(errEst)/scale)
	}
	return xNew, errMax
}

// Solve integrates from t0 with adaptive internal stepping and returns one
// sample per entry of ts. A grid point at or before t0 is the initial
// condition; every later sample is a properly advanced state. dt0 is the
// initial step hint. Failure to meet the tolerance above the step floor
// aborts the run.
func (r *RK45) Solve(dyn dynamo.System, x0 dynamo.State, src dynamo.LoadModel, t0, t1, dt0 float64, ts []float64) ([]dynamo.State, error) {
	if dt0 <= 0 {
		dt0 = dynamo.DefaultConfig().Dt
	}
	out := make([]dynamo.State, 0, len(ts))
	x := x0.Clone()
	x.ResetScratch()
	t := t0
	dt := math.Min(dt0, r.maxDt)

	for _, target := range ts {
		if target > t1 {
			target = t1
		}
		for target-t > 1e-12 {
			h := math.Min(dt, target-t)
			u := src.ForcesMoments(x, t)
			xNew, errMax := r.attempt(dyn, x, u, t, h)
			if errMax > r.tol {
				if h <= r.minDt {
					return nil, fmt.Errorf("t=%.6g dt=%.3g: %w", t, h, dynamo.ErrStepTooSmall)
				}
				dt = math.Max(r.minDt, h*math.Max(r.minScale, r.safety*math.Pow(errMax/r.tol, -0.25)))
				continue
			}
			x = xNew
			t += h
			if errMax > 0 {
				dt = h * math.Min(r.maxScale, r.safety*math.Pow(errMax/r.tol, -0.2))
			} else {
				dt = h * r.maxScale
			}
			dt = math.Min(math.Max(dt, r.minDt), r.maxDt)
		}
		out = append(out, r.sample(dyn, x, src, t))
	}
	return out, nil
}

// sample reports a grid state with freshly evaluated accelerations in its
// scratch slots.
func (r *RK45) sample(dyn dynamo.System, x dynamo.State, src dynamo.LoadModel, t float64) dynamo.State {
	s := x.Clone()
	s.ResetScratch()
	d := dyn.Derive(s, src.ForcesMoments(s, t), t)
	s.SetAccelerations(d)
	return s
}
