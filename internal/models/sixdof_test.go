package models

import (
	"math"
	"testing"

	"github.com/gonum/floats"
	"github.com/gonum/matrix/mat64"

	"github.com/san-kum/sixdof/internal/dynamo"
)

func zeroLoads() dynamo.Loads {
	return dynamo.NewLoads([]float64{0, 0, 0}, []float64{0, 0, 0})
}

func testBody(t *testing.T) *RigidBody {
	t.Helper()
	body, err := NewRigidBodyDiag(10, 0.5, 0.5, 0.8)
	if err != nil {
		t.Fatalf("NewRigidBodyDiag: %v", err)
	}
	return body
}

func TestDCMIdentity(t *testing.T) {
	dcm := DCM(0, 0, 0)
	for i := 0; i < 3; i++ {
		for j := 0; j < 3; j++ {
			want := 0.0
			if i == j {
				want = 1.0
			}
			if !floats.EqualWithinAbs(dcm.At(i, j), want, 1e-15) {
				t.Errorf("DCM(0,0,0)[%d,%d] = %g, want %g", i, j, dcm.At(i, j), want)
			}
		}
	}
}

func TestDCMOrthonormal(t *testing.T) {
	angles := []float64{-math.Pi, -1.2, -0.5, 0, 0.3, 1.0, math.Pi / 2, 2.8}
	for _, phi := range angles {
		for _, theta := range angles {
			for _, psi := range angles {
				dcm := DCM(phi, theta, psi)

				var rtr mat64.Dense
				rtr.Mul(dcm.T(), dcm)
				for i := 0; i < 3; i++ {
					for j := 0; j < 3; j++ {
						want := 0.0
						if i == j {
							want = 1.0
						}
						if !floats.EqualWithinAbs(rtr.At(i, j), want, 1e-12) {
							t.Fatalf("RtR[%d,%d] = %g at (%g,%g,%g)", i, j, rtr.At(i, j), phi, theta, psi)
						}
					}
				}

				if det := mat64.Det(dcm); !floats.EqualWithinAbs(det, 1, 1e-12) {
					t.Fatalf("det = %g at (%g,%g,%g)", det, phi, theta, psi)
				}
			}
		}
	}
}

func TestRestEquilibrium(t *testing.T) {
	dyn := NewSixDOF(testBody(t))
	x := make(dynamo.State, dynamo.StateDim)

	dx := dyn.Derive(x, zeroLoads(), 0)
	for i, v := range dx {
		if v != 0 {
			t.Errorf("derivative[%d] = %g at rest, want 0", i, v)
		}
	}
}

func TestFreeFallDerivative(t *testing.T) {
	dyn := NewSixDOF(testBody(t))
	x := dynamo.NewState(
		[]float64{0, 0, 0},
		[]float64{0, 0, 0},
		[]float64{30, 0, 0},
		[]float64{0, 0, 0},
		[]float64{0, 0, 0},
	)
	loads := dynamo.NewLoads([]float64{0, 0, -98.1}, []float64{0, 0, 0})

	dx := dyn.Derive(x, loads, 0)

	if !floats.EqualWithinAbs(dx.Vb()[2], -9.81, 1e-12) {
		t.Errorf("wdot = %g, want -9.81", dx.Vb()[2])
	}
	if dx.Vb()[0] != 0 || dx.Vb()[1] != 0 {
		t.Errorf("udot, vdot = %g, %g, want 0", dx.Vb()[0], dx.Vb()[1])
	}
	// Level attitude: position derivative is the body velocity.
	if !floats.EqualWithinAbs(dx.Xe()[0], 30, 1e-12) {
		t.Errorf("dXe = %g, want 30", dx.Xe()[0])
	}
	// Acceleration report slots repeat the body accelerations.
	if !floats.EqualWithinAbs(dx.Ab()[2], -9.81, 1e-12) {
		t.Errorf("ab slot = %g, want -9.81", dx.Ab()[2])
	}
}

func TestDeriveIgnoresScratchSlots(t *testing.T) {
	dyn := NewSixDOF(testBody(t))
	x := dynamo.NewState(
		[]float64{1, 2, 3},
		[]float64{4, 5, 6},
		[]float64{30, -1, 2},
		[]float64{0.1, -0.2, 0.3},
		[]float64{0.05, 0.1, -0.15},
	)
	loads := dynamo.NewLoads([]float64{1, -2, -98.1}, []float64{0.1, 0, -0.1})

	clean := dyn.Derive(x, loads, 0)

	dirty := x.Clone()
	copy(dirty.Ab(), []float64{1e6, -1e6, 42})
	copy(dirty.DotPQR(), []float64{7, 8, 9})
	got := dyn.Derive(dirty, loads, 0)

	for i := 0; i < dynamo.StateDim; i++ {
		if clean[i] != got[i] {
			t.Fatalf("derivative[%d] depends on scratch slots: %g vs %g", i, clean[i], got[i])
		}
	}
}

func TestGimbalLockGuard(t *testing.T) {
	dyn := NewSixDOF(testBody(t))
	x := dynamo.NewState(
		[]float64{0, 0, 0},
		[]float64{0, 0, 0},
		[]float64{10, 0, 0},
		[]float64{0, math.Pi / 2, 0},
		[]float64{0, 1, 0.5},
	)

	dx := dyn.Derive(x, zeroLoads(), 0)
	if !dx.IsValid() {
		t.Fatalf("derivative not finite at theta=pi/2: %v", dx)
	}
}

func TestEulerRates(t *testing.T) {
	dyn := NewSixDOF(testBody(t))
	phi, theta := 0.3, -0.4
	p, q, r := 0.2, -0.1, 0.15
	x := dynamo.NewState(
		[]float64{0, 0, 0},
		[]float64{0, 0, 0},
		[]float64{0, 0, 0},
		[]float64{phi, theta, 0.7},
		[]float64{p, q, r},
	)

	dx := dyn.Derive(x, zeroLoads(), 0)
	eul := dx.Euler()

	wantPhi := p + q*math.Sin(phi)*math.Tan(theta) + r*math.Cos(phi)*math.Tan(theta)
	wantTheta := q*math.Cos(phi) - r*math.Sin(phi)
	wantPsi := (q*math.Sin(phi) + r*math.Cos(phi)) / (math.Cos(theta) + 1e-6)

	if !floats.EqualWithinAbs(eul[0], wantPhi, 1e-12) {
		t.Errorf("phidot = %g, want %g", eul[0], wantPhi)
	}
	if !floats.EqualWithinAbs(eul[1], wantTheta, 1e-12) {
		t.Errorf("thetadot = %g, want %g", eul[1], wantTheta)
	}
	if !floats.EqualWithinAbs(eul[2], wantPsi, 1e-12) {
		t.Errorf("psidot = %g, want %g", eul[2], wantPsi)
	}
}
