package optimization

import (
	"github.com/openslam/posegraph/num"
	"github.com/openslam/posegraph/spatialmath"
)

// RelativePose2D is a measured relative transform between two 2D node poses.
type RelativePose2D struct {
	X, Y, Yaw float64
}

// SpaCost2D is the relative-pose residual between two consecutive 2D nodes
// under a measured relative transform, in sparse pose adjustment form. The
// residual has 3 components: translation error in the start frame and the
// normalized yaw difference.
type SpaCost2D struct {
	measured          RelativePose2D
	translationWeight float64
	rotationWeight    float64
}

// NewSpaCost2D binds a relative-pose cost to one measured constraint.
func NewSpaCost2D(measured RelativePose2D, translationWeight, rotationWeight float64) *SpaCost2D {
	return &SpaCost2D{
		measured:          measured,
		translationWeight: translationWeight,
		rotationWeight:    rotationWeight,
	}
}

// EvaluateSpaCost2D computes the residual for the parameter blocks start
// pose (x, y, yaw) and end pose (x, y, yaw).
func EvaluateSpaCost2D[T num.Number[T]](c *SpaCost2D, startPose, endPose []T) [3]T {
	cosA := startPose[2].Cos()
	sinA := startPose[2].Sin()
	dx := endPose[0].Sub(startPose[0])
	dy := endPose[1].Sub(startPose[1])
	// end pose expressed in the start frame
	hx := cosA.Mul(dx).Add(sinA.Mul(dy))
	hy := sinA.Neg().Mul(dx).Add(cosA.Mul(dy))
	hyaw := endPose[2].Sub(startPose[2])
	return [3]T{
		hx.Lift(c.measured.X).Sub(hx).Scale(c.translationWeight),
		hy.Lift(c.measured.Y).Sub(hy).Scale(c.translationWeight),
		normalizeAngleDifference(hyaw.Lift(c.measured.Yaw).Sub(hyaw)).Scale(c.rotationWeight),
	}
}

// SpaCost2DFunc adapts the cost to the solver-facing residual function
// shape.
func SpaCost2DFunc[T num.Number[T]](c *SpaCost2D) num.Func[T] {
	return func(params [][]T) []T {
		e := EvaluateSpaCost2D(c, params[0], params[1])
		return e[:]
	}
}

// SpaCost3D is the relative-pose residual between two 3D nodes under a
// measured rigid transform. The residual has 6 components in the unscaled
// error layout, scaled by the translation and rotation weights; unlike the
// landmark costs there is no covariance matrix and the translation error
// stays in the start frame.
type SpaCost3D struct {
	measured          spatialmath.Rigid
	translationWeight float64
	rotationWeight    float64
}

// NewSpaCost3D binds a relative-pose cost to one measured constraint.
func NewSpaCost3D(measured spatialmath.Rigid, translationWeight, rotationWeight float64) *SpaCost3D {
	return &SpaCost3D{
		measured:          measured,
		translationWeight: translationWeight,
		rotationWeight:    rotationWeight,
	}
}

// EvaluateSpaCost3D computes the residual for the parameter blocks start
// rotation (w, x, y, z), start translation, end rotation, end translation.
func EvaluateSpaCost3D[T num.Number[T]](c *SpaCost3D, startRotation, startTranslation, endRotation, endTranslation []T) [6]T {
	e := computeUnscaledError(
		c.measured,
		quatFromBlock(startRotation), vec3FromBlock(startTranslation),
		quatFromBlock(endRotation), vec3FromBlock(endTranslation),
	)
	for i := 0; i < 3; i++ {
		e[i] = e[i].Scale(c.translationWeight)
		e[i+3] = e[i+3].Scale(c.rotationWeight)
	}
	return e
}

// SpaCost3DFunc adapts the cost to the solver-facing residual function
// shape.
func SpaCost3DFunc[T num.Number[T]](c *SpaCost3D) num.Func[T] {
	return func(params [][]T) []T {
		e := EvaluateSpaCost3D(c, params[0], params[1], params[2], params[3])
		return e[:]
	}
}
