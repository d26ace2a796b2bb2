// Package integrators provides the numerical integration strategies:
// fixed-step RK4, fixed-step explicit Euler and an adaptive embedded
// Dormand-Prince 5(4) solver.
//
// All strategies honor the scratch-slot contract of [dynamo.State]: the
// report-only acceleration slots are zeroed before every derivative
// evaluation (each substage, not just once per step) and, after a step, hold
// the accelerations computed at the step's final substage.
package integrators

import (
	"fmt"

	"github.com/san-kum/sixdof/internal/dynamo"
)

// New binds a configured method to its strategy. Exactly one of the two
// returned strategies is non-nil: a fixed-step Integrator for RK4 and Euler,
// a GridSolver for the adaptive method.
func New(cfg dynamo.Config) (dynamo.Integrator, dynamo.GridSolver, error) {
	switch cfg.Method {
	case dynamo.MethodRK4:
		return NewRK4(), nil, nil
	case dynamo.MethodEuler:
		return NewEuler(), nil, nil
	case dynamo.MethodAdaptive:
		return nil, NewRK45(cfg.Tolerance, cfg.MinDt, cfg.MaxDt), nil
	default:
		return nil, nil, fmt.Errorf("%w: %v", dynamo.ErrUnknownMethod, cfg.Method)
	}
}
