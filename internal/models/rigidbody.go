package models

import (
	"fmt"

	"github.com/gonum/matrix/mat64"

	"github.com/san-kum/sixdof/internal/dynamo"
)

// RigidBody holds the immutable mass properties of the vehicle. The inertia
// inverse is computed once at construction and reused on every derivative
// evaluation.
type RigidBody struct {
	Mass    float64
	Inertia *mat64.Dense

	inv *mat64.Dense
}

// NewRigidBody validates the mass properties and precomputes the inertia
// inverse. A singular inertia tensor is a construction-time error, never a
// per-step one.
func NewRigidBody(mass float64, inertia *mat64.Dense) (*RigidBody, error) {
	if mass <= 0 {
		return nil, fmt.Errorf("%w: got %g", dynamo.ErrNonPositiveMass, mass)
	}
	if r, c := inertia.Dims(); r != 3 || c != 3 {
		return nil, fmt.Errorf("%w: inertia must be 3x3, got %dx%d", dynamo.ErrSingularInertia, r, c)
	}
	inv := mat64.NewDense(3, 3, nil)
	if err := inv.Inverse(inertia); err != nil {
		return nil, fmt.Errorf("%w: %v", dynamo.ErrSingularInertia, err)
	}
	return &RigidBody{Mass: mass, Inertia: inertia, inv: inv}, nil
}

// NewRigidBodyDiag builds a rigid body with a diagonal inertia tensor.
func NewRigidBodyDiag(mass, ixx, iyy, izz float64) (*RigidBody, error) {
	return NewRigidBody(mass, mat64.NewDense(3, 3, []float64{
		ixx, 0, 0,
		0, iyy, 0,
		0, 0, izz,
	}))
}

// Energy returns the kinetic energy of the body: translational plus
// rotational.
func (b *RigidBody) Energy(x dynamo.State) float64 {
	vb := x.Vb()
	pqr := x.PQR()
	iw := mulVec3(b.Inertia, pqr)
	return 0.5*b.Mass*dot3(vb, vb) + 0.5*dot3(pqr, iw)
}

// AngularMomentum returns |I*omega|, conserved for torque-free motion.
func (b *RigidBody) AngularMomentum(x dynamo.State) float64 {
	iw := mulVec3(b.Inertia, x.PQR())
	return norm3(iw)
}
