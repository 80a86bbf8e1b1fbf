// Package optimization implements the residual (cost) functions the pose
// graph hands to its nonlinear least-squares solver. Each cost is bound to
// its measurements at construction and is afterwards a pure evaluator: the
// solver calls it repeatedly, concurrently, and with derivative-carrying
// scalars, and it holds no mutable state between calls.
package optimization

import (
	"time"

	"gonum.org/v1/gonum/num/quat"

	"github.com/openslam/posegraph/spatialmath"
)

// NodeSpec2D is a trajectory node whose local pose is two-dimensional,
// embedded in 3D by its gravity alignment. The full node orientation is
// Rz(Yaw) composed with GravityAlignment.
type NodeSpec2D struct {
	Time             time.Time
	X, Y, Yaw        float64
	GravityAlignment quat.Number
}

// NodeSpec3D is a trajectory node with a full 3D pose.
type NodeSpec3D struct {
	Time time.Time
	Pose spatialmath.Rigid
}
