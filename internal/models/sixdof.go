package models

import (
	"math"

	"github.com/gonum/matrix/mat64"

	"github.com/san-kum/sixdof/internal/dynamo"
)

// gimbalEps bounds the yaw-rate division near theta = +-90 deg. This keeps
// the kinematics finite through gimbal lock at the cost of a bounded error
// in psi-dot near that attitude; it is an accepted approximation, not exact
// kinematics.
const gimbalEps = 1e-6

// DCM returns the body-to-NED direction cosine matrix for the 3-2-1 Euler
// sequence, i.e. the transpose of R1(phi)*R2(theta)*R3(psi). It is
// orthonormal with determinant 1 for all inputs.
func DCM(phi, theta, psi float64) *mat64.Dense {
	sphi, cphi := math.Sincos(phi)
	sth, cth := math.Sincos(theta)
	spsi, cpsi := math.Sincos(psi)
	return mat64.NewDense(3, 3, []float64{
		cth * cpsi, sphi*sth*cpsi - cphi*spsi, cphi*sth*cpsi + sphi*spsi,
		cth * spsi, sphi*sth*spsi + cphi*cpsi, cphi*sth*spsi - sphi*cpsi,
		-sth, sphi * cth, cphi * cth,
	})
}

// SixDOF is the equations-of-motion evaluator for a rigid body. It
// implements [dynamo.System] over the 21-slot state layout.
type SixDOF struct {
	body *RigidBody
}

func NewSixDOF(body *RigidBody) *SixDOF {
	return &SixDOF{body: body}
}

func (s *SixDOF) StateDim() int { return dynamo.StateDim }

// Derive evaluates the state derivative for the given body-frame loads.
// The output mirrors the state layout; its scratch slots repeat the body
// linear and angular accelerations so a consumer can read them positionally.
func (s *SixDOF) Derive(x dynamo.State, load dynamo.Loads, _ float64) dynamo.State {
	vb := x.Vb()
	u, v, w := vb[0], vb[1], vb[2]
	eul := x.Euler()
	phi, theta := eul[0], eul[1]
	pqr := x.PQR()
	p, q, r := pqr[0], pqr[1], pqr[2]
	f, m := load.Force(), load.Moment()

	dcm := DCM(phi, theta, eul[2])

	// Body velocity rotated into the NED frame.
	dXe := mulVec3(dcm, vb)

	// Newton's law in the rotating body frame.
	du := f[0]/s.body.Mass + r*v - q*w
	dv := f[1]/s.body.Mass + p*w - r*u
	dw := f[2]/s.body.Mass + q*u - p*v
	ab := []float64{du, dv, dw}

	dVe := mulVec3(dcm, ab)

	// Euler's rigid-body equations: dpqr = Iinv * (M - w x Iw).
	iw := mulVec3(s.body.Inertia, pqr)
	gyro := cross3(pqr, iw)
	dpqr := mulVec3(s.body.inv, []float64{
		m[0] - gyro[0],
		m[1] - gyro[1],
		m[2] - gyro[2],
	})

	// Euler-angle kinematics, yaw rate guarded near theta = +-90 deg.
	sphi, cphi := math.Sincos(phi)
	tth := math.Tan(theta)
	dphi := p + q*sphi*tth + r*cphi*tth
	dtheta := q*cphi - r*sphi
	dpsi := (q*sphi + r*cphi) / (math.Cos(theta) + gimbalEps)

	d := make(dynamo.State, dynamo.StateDim)
	copy(d.Ve(), dVe)
	copy(d.Xe(), dXe)
	copy(d.Vb(), ab)
	copy(d.Euler(), []float64{dphi, dtheta, dpsi})
	copy(d.PQR(), dpqr)
	copy(d.Ab(), ab)
	copy(d.DotPQR(), dpqr)
	return d
}
