package dynamo

import (
	"errors"
	"fmt"
)

// Domain errors for simulation operations.
var (
	// ErrInvalidState indicates a state vector with NaN or Inf entries.
	ErrInvalidState = errors.New("dynamo: invalid state (NaN or Inf detected)")

	// ErrUnknownMethod indicates an unrecognized integration method.
	ErrUnknownMethod = errors.New("dynamo: unknown integration method")

	// ErrNonPositiveMass indicates a rigid body with mass <= 0.
	ErrNonPositiveMass = errors.New("dynamo: mass must be positive")

	// ErrSingularInertia indicates a non-invertible inertia tensor.
	ErrSingularInertia = errors.New("dynamo: inertia tensor is not invertible")

	// ErrStepTooSmall indicates the adaptive step fell below its floor
	// without meeting the error tolerance.
	ErrStepTooSmall = errors.New("dynamo: adaptive step below minimum")
)

// SimError wraps a failure with the step and time it occurred at.
type SimError struct {
	Step    int
	Time    float64
	Message string
}

func (e SimError) Error() string {
	return fmt.Sprintf("step %d (t=%.4f): %s", e.Step, e.Time, e.Message)
}
