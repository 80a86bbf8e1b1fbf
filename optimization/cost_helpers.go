package optimization

import (
	"math"

	"gonum.org/v1/gonum/num/quat"

	"github.com/openslam/posegraph/num"
	"github.com/openslam/posegraph/spatialmath"
)

// quatFromBlock reads a quaternion parameter block, w first.
func quatFromBlock[T num.Number[T]](b []T) spatialmath.Quaternion[T] {
	return spatialmath.Quaternion[T]{W: b[0], X: b[1], Y: b[2], Z: b[3]}
}

// vec3FromBlock reads a translation parameter block.
func vec3FromBlock[T num.Number[T]](b []T) spatialmath.Vec3[T] {
	return spatialmath.Vec3[T]{X: b[0], Y: b[1], Z: b[2]}
}

// normalizeAngleDifference shifts an angle difference into (-pi, pi]. The
// branch inspects the value part only; shifting by a constant leaves the
// derivative untouched.
func normalizeAngleDifference[T num.Number[T]](a T) T {
	for a.Real() > math.Pi {
		a = a.Sub(a.Lift(2 * math.Pi))
	}
	for a.Real() <= -math.Pi {
		a = a.Add(a.Lift(2 * math.Pi))
	}
	return a
}

// interpolateNodes2D produces the pose at fractional position t between two
// 2D node poses (x, y, yaw). The yaw is interpolated along the shorter
// direction and re-composed with the gravity alignment already interpolated
// at t, so t=0 and t=1 reproduce the endpoint poses exactly.
func interpolateNodes2D[T num.Number[T]](
	prevPose, nextPose []T,
	t float64,
	interpolatedGravity quat.Number,
) (spatialmath.Quaternion[T], spatialmath.Vec3[T]) {
	proto := prevPose[0]
	yaw := prevPose[2].Add(normalizeAngleDifference(nextPose[2].Sub(prevPose[2])).Scale(t))
	half := yaw.Scale(0.5)
	rz := spatialmath.Quaternion[T]{W: half.Cos(), X: proto.Lift(0), Y: proto.Lift(0), Z: half.Sin()}
	rotation := rz.Mul(spatialmath.LiftQuaternion(interpolatedGravity, proto))
	translation := spatialmath.Vec3[T]{
		X: prevPose[0].Add(nextPose[0].Sub(prevPose[0]).Scale(t)),
		Y: prevPose[1].Add(nextPose[1].Sub(prevPose[1]).Scale(t)),
		Z: proto.Lift(0),
	}
	return rotation, translation
}

// interpolateNodes3D produces the pose at fractional position t between two
// full 3D node poses, slerping the rotations along the shortest arc and
// lerping the translations.
func interpolateNodes3D[T num.Number[T]](
	prevRotation, prevTranslation, nextRotation, nextTranslation []T,
	t float64,
) (spatialmath.Quaternion[T], spatialmath.Vec3[T]) {
	rotation := spatialmath.SlerpGeneric(quatFromBlock(prevRotation), quatFromBlock(nextRotation), t)
	translation := spatialmath.Lerp(vec3FromBlock(prevTranslation), vec3FromBlock(nextTranslation), t)
	return rotation, translation
}

// computeUnscaledError returns the 6-vector [translation error, rotation
// error] between the measured start-to-end transform and the transform
// implied by the start and end pose variables. The translation error is
// expressed in the start frame; the rotation error is twice the imaginary
// part of the relative quaternion, a first-order angle-axis that is exactly
// zero when the rotations agree.
func computeUnscaledError[T num.Number[T]](
	measured spatialmath.Rigid,
	startRotation spatialmath.Quaternion[T], startTranslation spatialmath.Vec3[T],
	endRotation spatialmath.Quaternion[T], endTranslation spatialmath.Vec3[T],
) [6]T {
	proto := startTranslation.X
	delta := endTranslation.Sub(startTranslation)
	h := startRotation.Conj().Rotate(delta)
	terr := spatialmath.LiftVec3(measured.Translation, proto).Sub(h)
	rel := endRotation.Conj().Mul(startRotation).Mul(spatialmath.LiftQuaternion(measured.Rotation, proto))
	return [6]T{
		terr.X, terr.Y, terr.Z,
		rel.X.Scale(2), rel.Y.Scale(2), rel.Z.Scale(2),
	}
}

// rotateErrorToWorld rotates the translation components of the error into
// the fixed world (ENU) frame using the interpolated node orientation. The
// rotation components are left untouched.
func rotateErrorToWorld[T num.Number[T]](e [6]T, rotation spatialmath.Quaternion[T]) [6]T {
	v := rotation.Rotate(spatialmath.Vec3[T]{X: e[0], Y: e[1], Z: e[2]})
	e[0], e[1], e[2] = v.X, v.Y, v.Z
	return e
}
