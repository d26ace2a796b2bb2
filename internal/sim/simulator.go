// Package sim drives a rigid-body simulation across a time horizon: it
// builds the time grid, threads the state through the selected integration
// strategy and collects the trajectory.
package sim

import (
	"context"
	"fmt"
	"math"

	"github.com/san-kum/sixdof/internal/dynamo"
	"github.com/san-kum/sixdof/internal/integrators"
	"github.com/san-kum/sixdof/internal/models"
)

// Simulator runs 6DOF simulations for one rigid body. The integration
// strategy is bound once at construction.
type Simulator struct {
	dyn        dynamo.System
	integrator dynamo.Integrator
	solver     dynamo.GridSolver
	cfg        dynamo.Config
	metrics    []dynamo.Metric
}

// New builds a simulator for the given body. Configuration errors (unknown
// method, non-positive step size) are fatal here, not during a run.
func New(body *models.RigidBody, cfg dynamo.Config) (*Simulator, error) {
	if cfg.Dt <= 0 {
		return nil, fmt.Errorf("sim: step size must be positive, got %g", cfg.Dt)
	}
	integ, solver, err := integrators.New(cfg)
	if err != nil {
		return nil, err
	}
	return &Simulator{
		dyn:        models.NewSixDOF(body),
		integrator: integ,
		solver:     solver,
		cfg:        cfg,
	}, nil
}

func (s *Simulator) AddMetric(m dynamo.Metric) { s.metrics = append(s.metrics, m) }

// Run simulates over [t0, t1] with the force/moment pair held constant
// across the horizon.
func (s *Simulator) Run(ctx context.Context, x0 dynamo.State, loads dynamo.Loads, t0, t1 float64) (*dynamo.Result, error) {
	return s.RunWith(ctx, x0, dynamo.ConstantLoads(loads), t0, t1)
}

// RunWith simulates over [t0, t1] with per-step loads from src. This is the
// entry point for a caller with an aerodynamic model: src sees the current
// state and time before every step.
func (s *Simulator) RunWith(ctx context.Context, x0 dynamo.State, src dynamo.LoadModel, t0, t1 float64) (*dynamo.Result, error) {
	if t1 <= t0 {
		return nil, fmt.Errorf("sim: t1 must be greater than t0, got [%g, %g]", t0, t1)
	}
	times := s.grid(t0, t1)
	for _, m := range s.metrics {
		m.Reset()
	}

	result := &dynamo.Result{
		Times:   times,
		States:  make([]dynamo.State, 0, len(times)),
		Loads:   make([]dynamo.Loads, 0, len(times)),
		Metrics: make(map[string]float64),
	}

	x := x0.Clone()
	x.ResetScratch()

	if s.solver != nil {
		states, err := s.solver.Solve(s.dyn, x, src, t0, t1, s.cfg.Dt, times)
		if err != nil {
			return nil, err
		}
		for i, xs := range states {
			s.record(result, xs, src, times[i])
		}
		result.StepsTaken = len(states) - 1
		for _, m := range s.metrics {
			result.Metrics[m.Name()] = m.Value()
		}
		return result, nil
	}

	s.record(result, x, src, t0)
	for i := 1; i < len(times); i++ {
		select {
		case <-ctx.Done():
			return result, ctx.Err()
		default:
		}

		t := times[i-1]
		h := times[i] - t
		u := src.ForcesMoments(x, t)
		x = s.integrator.Step(s.dyn, x, u, t, h)

		if s.cfg.ValidateState && !x.IsValid() {
			return result, dynamo.SimError{Step: i, Time: times[i], Message: dynamo.ErrInvalidState.Error()}
		}

		s.record(result, x, src, times[i])
		result.StepsTaken++
	}

	for _, m := range s.metrics {
		result.Metrics[m.Name()] = m.Value()
	}
	return result, nil
}

// grid builds the output time grid: ceil((t1-t0)/dt) steps of size dt, the
// last point clamped to t1. Sample i is the state after i steps.
func (s *Simulator) grid(t0, t1 float64) []float64 {
	steps := int(math.Ceil((t1-t0)/s.cfg.Dt - 1e-9))
	if steps < 1 {
		steps = 1
	}
	times := make([]float64, steps+1)
	for i := range times {
		times[i] = t0 + float64(i)*s.cfg.Dt
	}
	if times[steps] > t1 {
		times[steps] = t1
	}
	return times
}

func (s *Simulator) record(result *dynamo.Result, x dynamo.State, src dynamo.LoadModel, t float64) {
	u := src.ForcesMoments(x, t)
	for _, m := range s.metrics {
		m.Observe(x, u, t)
	}
	result.States = append(result.States, x.Clone())
	result.Loads = append(result.Loads, u)
}
