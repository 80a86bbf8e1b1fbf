package spatialmath

import (
	"math"

	"gonum.org/v1/gonum/num/quat"

	"github.com/openslam/posegraph/num"
)

// Below this distance from the poles of the 4-sphere, slerp degrades to a
// normalized lerp to avoid dividing by a vanishing sine.
const slerpEpsilon = 1e-9

// Slerp spherically interpolates between two unit quaternions along the
// shortest arc. At t=0 and t=1 the endpoints are reproduced exactly.
func Slerp(a, b quat.Number, t float64) quat.Number {
	dot := a.Real*b.Real + a.Imag*b.Imag + a.Jmag*b.Jmag + a.Kmag*b.Kmag
	if dot < 0 {
		b = Flip(b)
		dot = -dot
	}
	if dot > 1-slerpEpsilon {
		out := quat.Add(quat.Scale(1-t, a), quat.Scale(t, b))
		return quat.Scale(1/quat.Abs(out), out)
	}
	theta := math.Acos(dot)
	sinTheta := math.Sin(theta)
	wa := math.Sin((1-t)*theta) / sinTheta
	wb := math.Sin(t*theta) / sinTheta
	return quat.Add(quat.Scale(wa, a), quat.Scale(wb, b))
}

// SlerpGeneric is Slerp over the generic scalar type, for rotations that are
// optimization variables. The octant choice branches on the value part only,
// which keeps derivative propagation consistent on either side of the
// branch.
func SlerpGeneric[T num.Number[T]](a, b Quaternion[T], t float64) Quaternion[T] {
	dot := a.Dot(b)
	if dot.Real() < 0 {
		b = b.Neg()
		dot = dot.Neg()
	}
	if dot.Real() > 1-slerpEpsilon {
		return a.ScaleBy(a.W.Lift(1 - t)).AddQ(b.ScaleBy(b.W.Lift(t))).Normalize()
	}
	theta := dot.Acos()
	invSin := theta.Sin().Inv()
	wa := theta.Scale(1 - t).Sin().Mul(invSin)
	wb := theta.Scale(t).Sin().Mul(invSin)
	return a.ScaleBy(wa).AddQ(b.ScaleBy(wb))
}

// Lerp linearly interpolates between two vectors.
func Lerp[T num.Number[T]](a, b Vec3[T], t float64) Vec3[T] {
	return a.Add(b.Sub(a).Scale(t))
}
