// Package metrics provides per-step observers reducing a trajectory to
// scalar diagnostics.
package metrics

import (
	"math"

	"github.com/san-kum/sixdof/internal/dynamo"
	"github.com/san-kum/sixdof/internal/models"
)

// KineticEnergy reports the mean kinetic energy over a run.
type KineticEnergy struct {
	body    *models.RigidBody
	samples int
	total   float64
}

func NewKineticEnergy(body *models.RigidBody) *KineticEnergy {
	return &KineticEnergy{body: body}
}

func (k *KineticEnergy) Name() string { return "kinetic_energy" }

func (k *KineticEnergy) Observe(x dynamo.State, _ dynamo.Loads, _ float64) {
	if len(x) < dynamo.StateDim {
		return
	}
	k.total += k.body.Energy(x)
	k.samples++
}

func (k *KineticEnergy) Value() float64 {
	if k.samples == 0 {
		return 0
	}
	return k.total / float64(k.samples)
}

func (k *KineticEnergy) Reset() {
	k.total = 0
	k.samples = 0
}

// AngularMomentum reports the peak drift of |I*omega| from its initial
// value. For torque-free motion the drift should stay near zero.
type AngularMomentum struct {
	body     *models.RigidBody
	initial  float64
	maxDrift float64
	seen     bool
}

func NewAngularMomentum(body *models.RigidBody) *AngularMomentum {
	return &AngularMomentum{body: body}
}

func (a *AngularMomentum) Name() string { return "angular_momentum_drift" }

func (a *AngularMomentum) Observe(x dynamo.State, _ dynamo.Loads, _ float64) {
	if len(x) < dynamo.StateDim {
		return
	}
	h := a.body.AngularMomentum(x)
	if !a.seen {
		a.initial = h
		a.seen = true
		return
	}
	a.maxDrift = math.Max(a.maxDrift, math.Abs(h-a.initial))
}

func (a *AngularMomentum) Value() float64 { return a.maxDrift }

func (a *AngularMomentum) Reset() {
	a.initial = 0
	a.maxDrift = 0
	a.seen = false
}
