package integrators

import (
	"math"
	"testing"

	"github.com/gonum/floats"

	"github.com/san-kum/sixdof/internal/dynamo"
	"github.com/san-kum/sixdof/internal/models"
)

// harmonicOscillator is a minimal 2-state system for accuracy checks.
type harmonicOscillator struct{}

func (h *harmonicOscillator) Derive(x dynamo.State, _ dynamo.Loads, _ float64) dynamo.State {
	return dynamo.State{x[1], -x[0]}
}

func (h *harmonicOscillator) StateDim() int { return 2 }

func freeFallBody(t *testing.T) (*models.SixDOF, dynamo.Loads) {
	t.Helper()
	body, err := models.NewRigidBodyDiag(10, 0.5, 0.5, 0.8)
	if err != nil {
		t.Fatalf("NewRigidBodyDiag: %v", err)
	}
	return models.NewSixDOF(body), dynamo.NewLoads([]float64{0, 0, -98.1}, []float64{0, 0, 0})
}

func freeFallState() dynamo.State {
	return dynamo.NewState(
		[]float64{0, 0, 0},
		[]float64{0, 0, 0},
		[]float64{30, 0, 0},
		[]float64{0, 0, 0},
		[]float64{0, 0, 0},
	)
}

func TestRK4Accuracy(t *testing.T) {
	dyn := &harmonicOscillator{}
	integ := NewRK4()

	x := dynamo.State{1.0, 0.0}
	dt := 0.01
	steps := 100

	for i := 0; i < steps; i++ {
		x = integ.Step(dyn, x, nil, float64(i)*dt, dt)
	}

	expectedX := math.Cos(float64(steps) * dt)
	expectedV := -math.Sin(float64(steps) * dt)

	if math.Abs(x[0]-expectedX) > 1e-4 {
		t.Errorf("position error too large: got %.6f, expected %.6f", x[0], expectedX)
	}
	if math.Abs(x[1]-expectedV) > 1e-4 {
		t.Errorf("velocity error too large: got %.6f, expected %.6f", x[1], expectedV)
	}
}

func TestRK4FreeFallStep(t *testing.T) {
	dyn, loads := freeFallBody(t)
	x := NewRK4().Step(dyn, freeFallState(), loads, 0, 0.01)

	if !floats.EqualWithinAbs(x.Vb()[2], -0.0981, 1e-3) {
		t.Errorf("w(0.01) = %g, want -0.0981", x.Vb()[2])
	}
	if !floats.EqualWithinAbs(x.Vb()[0], 30, 1e-9) {
		t.Errorf("u(0.01) = %g, want 30", x.Vb()[0])
	}
	// Report slots hold the raw acceleration from the final substage, not an
	// h-scaled increment.
	if !floats.EqualWithinAbs(x.Ab()[2], -9.81, 1e-6) {
		t.Errorf("ab slot = %g, want -9.81", x.Ab()[2])
	}
	// No moments: attitude and rates untouched.
	for i, v := range x.Euler() {
		if v != 0 {
			t.Errorf("euler[%d] = %g, want 0", i, v)
		}
	}
}

func TestRK4ScratchSlotsIndependent(t *testing.T) {
	dyn, loads := freeFallBody(t)
	integ := NewRK4()

	x1 := integ.Step(dyn, freeFallState(), loads, 0, 0.01)
	clean := integ.Step(dyn, x1, loads, 0.01, 0.01)

	// Corrupting the previous step's report slots must not change anything.
	dirty := x1.Clone()
	copy(dirty.Ab(), []float64{1e9, -1e9, 1e9})
	copy(dirty.DotPQR(), []float64{-1e9, 1e9, -1e9})
	got := integ.Step(dyn, dirty, loads, 0.01, 0.01)

	for i := 0; i < dynamo.StateDim; i++ {
		if clean[i] != got[i] {
			t.Fatalf("state[%d] depends on prior scratch values: %g vs %g", i, clean[i], got[i])
		}
	}
}

func TestEulerFreeFallStep(t *testing.T) {
	dyn, loads := freeFallBody(t)
	x := NewEuler().Step(dyn, freeFallState(), loads, 0, 0.01)

	if !floats.EqualWithinAbs(x.Vb()[2], -0.0981, 1e-3) {
		t.Errorf("w(0.01) = %g, want -0.0981", x.Vb()[2])
	}
	if !floats.EqualWithinAbs(x.Ab()[2], -9.81, 1e-9) {
		t.Errorf("ab slot = %g, want -9.81", x.Ab()[2])
	}
}

func TestEulerLowerOrderThanRK4(t *testing.T) {
	dyn := &harmonicOscillator{}
	rk4 := NewRK4()
	euler := NewEuler()

	x4 := dynamo.State{1.0, 0.0}
	xe := dynamo.State{1.0, 0.0}
	dt := 0.01
	steps := 500

	for i := 0; i < steps; i++ {
		x4 = rk4.Step(dyn, x4, nil, float64(i)*dt, dt)
		xe = euler.Step(dyn, xe, nil, float64(i)*dt, dt)
	}

	want := math.Cos(float64(steps) * dt)
	err4 := math.Abs(x4[0] - want)
	errE := math.Abs(xe[0] - want)

	if err4 > 1e-6 {
		t.Errorf("RK4 error %g too large", err4)
	}
	if errE < err4 {
		t.Errorf("Euler (%g) unexpectedly beat RK4 (%g)", errE, err4)
	}
	if errE > 0.1 {
		t.Errorf("Euler error %g beyond its expected band", errE)
	}
}
