// Package dynamo provides core primitives for rigid-body flight dynamics
// simulation.
//
// The package defines the vocabulary shared by the equations-of-motion
// evaluator, the integrator strategies and the simulation driver:
//
//   - [State]: the 21-slot kinematic state vector
//   - [Loads]: body-frame forces and moments acting on the vehicle
//   - [System]: interface for the equations of motion (dX/dt = f(X, u, t))
//   - [Integrator]: fixed-step numerical integrator interface
//   - [GridSolver]: adaptive solver sampling an explicit output grid
//   - [LoadModel]: per-step force/moment source (the hook an aerodynamic
//     model implements)
//
// # State layout
//
// The state layout is load-bearing: every consumer reads the vector
// positionally. Slots 0..14 hold the genuinely integrated quantities
// (inertial velocity, inertial position, body velocity, Euler angles, body
// rates). Slots 15..20 are report-only: the integrators zero them before
// every derivative evaluation and fill them with the accelerations computed
// at the final substage of each step. They never accumulate across steps.
//
// # Example
//
//	body, _ := models.NewRigidBodyDiag(10, 0.5, 0.5, 0.8)
//	s, _ := sim.New(body, dynamo.DefaultConfig())
//	result, _ := s.Run(ctx, x0, loads, 0, 30)
//
// # Thread safety
//
// A simulation run is single-threaded; steps are sequentially dependent.
// Running independent simulations concurrently is safe as long as each has
// its own Simulator.
package dynamo
