package integrators

import "github.com/san-kum/sixdof/internal/dynamo"

// RK4 is the classical fixed-step 4-stage Runge-Kutta integrator with
// stage weights (1,2,2,1)/6. Stage buffers are reused across steps.
type RK4 struct {
	k1, k2, k3, k4 dynamo.State
	base, scratch  dynamo.State
}

func NewRK4() *RK4 {
	return &RK4{}
}

func (r *RK4) ensureScratch(n int) {
	if len(r.k1) != n {
		r.k1 = make(dynamo.State, n)
		r.k2 = make(dynamo.State, n)
		r.k3 = make(dynamo.State, n)
		r.k4 = make(dynamo.State, n)
		r.base = make(dynamo.State, n)
		r.scratch = make(dynamo.State, n)
	}
}

func (r *RK4) Step(dyn dynamo.System, x dynamo.State, u dynamo.Loads, t, dt float64) dynamo.State {
	n := len(x)
	r.ensureScratch(n)

	copy(r.base, x)
	r.base.ResetScratch()
	copy(r.k1, dyn.Derive(r.base, u, t))

	for i := 0; i < n; i++ {
		r.scratch[i] = r.base[i] + dt*0.5*r.k1[i]
	}
	r.scratch.ResetScratch()
	copy(r.k2, dyn.Derive(r.scratch, u, t+dt*0.5))

	for i := 0; i < n; i++ {
		r.scratch[i] = r.base[i] + dt*0.5*r.k2[i]
	}
	r.scratch.ResetScratch()
	copy(r.k3, dyn.Derive(r.scratch, u, t+dt*0.5))

	for i := 0; i < n; i++ {
		r.scratch[i] = r.base[i] + dt*r.k3[i]
	}
	r.scratch.ResetScratch()
	copy(r.k4, dyn.Derive(r.scratch, u, t+dt))

	result := make(dynamo.State, n)
	dt6 := dt / 6.0
	for i := 0; i < n; i++ {
		result[i] = r.base[i] + dt6*(r.k1[i]+2*r.k2[i]+2*r.k3[i]+r.k4[i])
	}
	result.SetAccelerations(r.k4)
	return result
}
