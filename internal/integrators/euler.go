package integrators

import "github.com/san-kum/sixdof/internal/dynamo"

// Euler is the fixed-step explicit Euler integrator: one derivative
// evaluation per step. Lower order than RK4, kept as a cheap baseline and
// for cross-checking.
type Euler struct{}

func NewEuler() *Euler {
	return &Euler{}
}

func (e *Euler) Step(dyn dynamo.System, x dynamo.State, u dynamo.Loads, t, dt float64) dynamo.State {
	base := x.Clone()
	base.ResetScratch()
	dx := dyn.Derive(base, u, t)

	result := make(dynamo.State, len(x))
	for i := range base {
		result[i] = base[i] + dt*dx[i]
	}
	result.SetAccelerations(dx)
	return result
}
