// Package models provides the rigid-body vehicle model.
//
// [RigidBody] holds the immutable mass properties; [SixDOF] implements the
// [dynamo.System] interface with the Newton-Euler equations of motion in
// Euler-angle kinematics, following the MathWorks 6DOF (Euler angles) block
// conventions: NED inertial frame, 3-2-1 rotation sequence, body-frame
// forces and moments.
package models
