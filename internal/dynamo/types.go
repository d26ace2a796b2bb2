package dynamo

import (
	"fmt"
	"math"
	"strings"
)

// State vector layout. The order is consumed positionally by the evaluator
// and must not change.
const (
	ixVe     = 0  // inertial (NED) velocity
	ixXe     = 3  // inertial (NED) position
	ixVb     = 6  // body velocity [u, v, w]
	ixEuler  = 9  // attitude [phi, theta, psi], radians
	ixPQR    = 12 // body rates [p, q, r]
	ixAb     = 15 // report-only body linear acceleration
	ixDotPQR = 18 // report-only body angular acceleration

	// IntegratedDim is the number of state slots carrying integration
	// history. Slots beyond it are report-only acceleration scratch.
	IntegratedDim = 15

	// StateDim is the full kinematic state vector length.
	StateDim = 21
)

// State is a kinematic state vector.
type State []float64

// NewState assembles a full state vector from its five integrated groups.
// Each argument is a 3-vector; the acceleration slots start zeroed.
func NewState(ve, xe, vb, euler, pqr []float64) State {
	s := make(State, StateDim)
	copy(s[ixVe:], ve[:3])
	copy(s[ixXe:], xe[:3])
	copy(s[ixVb:], vb[:3])
	copy(s[ixEuler:], euler[:3])
	copy(s[ixPQR:], pqr[:3])
	return s
}

func (s State) Ve() []float64     { return s[ixVe : ixVe+3] }
func (s State) Xe() []float64     { return s[ixXe : ixXe+3] }
func (s State) Vb() []float64     { return s[ixVb : ixVb+3] }
func (s State) Euler() []float64  { return s[ixEuler : ixEuler+3] }
func (s State) PQR() []float64    { return s[ixPQR : ixPQR+3] }
func (s State) Ab() []float64     { return s[ixAb : ixAb+3] }
func (s State) DotPQR() []float64 { return s[ixDotPQR : ixDotPQR+3] }

func (s State) Clone() State {
	c := make(State, len(s))
	copy(c, s)
	return c
}

func (s State) IsValid() bool {
	for _, v := range s {
		if math.IsNaN(v) || math.IsInf(v, 0) {
			return false
		}
	}
	return true
}

// Integrated returns the view of s carrying integration history. For a full
// kinematic state that is the first 15 slots; shorter vectors (as used by
// integrator unit tests) are returned whole.
func (s State) Integrated() State {
	if len(s) >= StateDim {
		return s[:IntegratedDim]
	}
	return s
}

// ResetScratch zeroes the report-only acceleration slots. It must be called
// before every derivative evaluation, including intermediate substages.
// A no-op for vectors without scratch slots.
func (s State) ResetScratch() {
	if len(s) < StateDim {
		return
	}
	for i := IntegratedDim; i < StateDim; i++ {
		s[i] = 0
	}
}

// SetAccelerations copies the acceleration slots of a derivative vector d
// into s. The derivative layout mirrors the state layout, so d's scratch
// slots hold [udot, vdot, wdot] and [pdot, qdot, rdot].
func (s State) SetAccelerations(d State) {
	if len(s) < StateDim || len(d) < StateDim {
		return
	}
	copy(s.Ab(), d.Ab())
	copy(s.DotPQR(), d.DotPQR())
}

// Loads is the body-frame force and moment input [Fx, Fy, Fz, Mx, My, Mz].
type Loads []float64

// NewLoads assembles a Loads vector from a force and a moment 3-vector.
func NewLoads(force, moment []float64) Loads {
	l := make(Loads, 6)
	copy(l[0:], force[:3])
	copy(l[3:], moment[:3])
	return l
}

func (l Loads) Force() []float64  { return l[0:3] }
func (l Loads) Moment() []float64 { return l[3:6] }

// System is the equations of motion: dX/dt = Derive(X, u, t).
type System interface {
	Derive(x State, u Loads, t float64) State
	StateDim() int
}

// Integrator advances a state by one fixed step.
type Integrator interface {
	Step(dyn System, x State, u Loads, t, dt float64) State
}

// GridSolver integrates over [t0, t1] with internal adaptive stepping,
// returning one sample per entry of the output grid ts. dt0 is the initial
// step hint.
type GridSolver interface {
	Solve(dyn System, x0 State, src LoadModel, t0, t1, dt0 float64, ts []float64) ([]State, error)
}

// LoadModel supplies per-step forces and moments. An aerodynamic model
// plugs in here; the core never knows how the loads were computed.
type LoadModel interface {
	ForcesMoments(x State, t float64) Loads
}

// ConstantLoads broadcasts a fixed force/moment pair to every step.
type ConstantLoads Loads

func (c ConstantLoads) ForcesMoments(State, float64) Loads { return Loads(c) }

// Metric observes states during a run and reduces them to a scalar.
type Metric interface {
	Name() string
	Observe(x State, u Loads, t float64)
	Value() float64
	Reset()
}

// Method selects an integration strategy. The selection happens once at
// simulator construction; strategies are never re-dispatched per call.
type Method int

const (
	MethodRK4 Method = iota
	MethodEuler
	MethodAdaptive
)

func (m Method) String() string {
	switch m {
	case MethodRK4:
		return "rk4"
	case MethodEuler:
		return "euler"
	case MethodAdaptive:
		return "adaptive"
	default:
		return fmt.Sprintf("method(%d)", int(m))
	}
}

// ParseMethod maps a configuration string to a Method. "diffrax" is accepted
// as a legacy alias for the adaptive solver.
func ParseMethod(s string) (Method, error) {
	switch strings.ToLower(s) {
	case "rk4":
		return MethodRK4, nil
	case "euler":
		return MethodEuler, nil
	case "adaptive", "rk45", "diffrax":
		return MethodAdaptive, nil
	default:
		return 0, fmt.Errorf("%w: %q", ErrUnknownMethod, s)
	}
}

// Config holds the numerical settings of a run.
type Config struct {
	Method        Method
	Dt            float64 // fixed step size, and initial step hint for the adaptive solver
	Tolerance     float64 // adaptive local error tolerance
	MinDt         float64 // adaptive step floor; going below it is a convergence failure
	MaxDt         float64 // adaptive step ceiling
	ValidateState bool    // abort on NaN/Inf states
}

func DefaultConfig() Config {
	return Config{
		Method:        MethodRK4,
		Dt:            0.01,
		Tolerance:     1e-6,
		MinDt:         1e-8,
		MaxDt:         0.1,
		ValidateState: true,
	}
}

// Result is the trajectory of a run: one state per time-grid point.
type Result struct {
	Times      []float64
	States     []State
	Loads      []Loads
	Metrics    map[string]float64
	StepsTaken int
}
