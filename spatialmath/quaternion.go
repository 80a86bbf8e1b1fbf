// Package spatialmath defines the spatial mathematical operations used by
// the pose graph cost functions. The quaternion and vector algebra is
// generic over the scalar type so the same formulas run with plain floats
// and with derivative-carrying jets.
package spatialmath

import (
	"math"

	"github.com/golang/geo/r3"
	"gonum.org/v1/gonum/num/quat"

	"github.com/openslam/posegraph/num"
)

// Vec3 is a 3-vector over a generic scalar.
type Vec3[T num.Number[T]] struct {
	X, Y, Z T
}

// Add returns v+w.
func (v Vec3[T]) Add(w Vec3[T]) Vec3[T] {
	return Vec3[T]{v.X.Add(w.X), v.Y.Add(w.Y), v.Z.Add(w.Z)}
}

// Sub returns v-w.
func (v Vec3[T]) Sub(w Vec3[T]) Vec3[T] {
	return Vec3[T]{v.X.Sub(w.X), v.Y.Sub(w.Y), v.Z.Sub(w.Z)}
}

// Scale returns v*c.
func (v Vec3[T]) Scale(c float64) Vec3[T] {
	return Vec3[T]{v.X.Scale(c), v.Y.Scale(c), v.Z.Scale(c)}
}

// Quaternion is a rotation quaternion over a generic scalar, w first.
type Quaternion[T num.Number[T]] struct {
	W, X, Y, Z T
}

// Mul returns the Hamilton product q*r.
func (q Quaternion[T]) Mul(r Quaternion[T]) Quaternion[T] {
	return Quaternion[T]{
		W: q.W.Mul(r.W).Sub(q.X.Mul(r.X)).Sub(q.Y.Mul(r.Y)).Sub(q.Z.Mul(r.Z)),
		X: q.W.Mul(r.X).Add(q.X.Mul(r.W)).Add(q.Y.Mul(r.Z)).Sub(q.Z.Mul(r.Y)),
		Y: q.W.Mul(r.Y).Sub(q.X.Mul(r.Z)).Add(q.Y.Mul(r.W)).Add(q.Z.Mul(r.X)),
		Z: q.W.Mul(r.Z).Add(q.X.Mul(r.Y)).Sub(q.Y.Mul(r.X)).Add(q.Z.Mul(r.W)),
	}
}

// Conj returns the conjugate of q. For unit quaternions this is the inverse.
func (q Quaternion[T]) Conj() Quaternion[T] {
	return Quaternion[T]{q.W, q.X.Neg(), q.Y.Neg(), q.Z.Neg()}
}

// Neg returns -q, the same orientation in the opposing octant.
func (q Quaternion[T]) Neg() Quaternion[T] {
	return Quaternion[T]{q.W.Neg(), q.X.Neg(), q.Y.Neg(), q.Z.Neg()}
}

// Dot returns the 4-dimensional dot product of q and r.
func (q Quaternion[T]) Dot(r Quaternion[T]) T {
	return q.W.Mul(r.W).Add(q.X.Mul(r.X)).Add(q.Y.Mul(r.Y)).Add(q.Z.Mul(r.Z))
}

// ScaleBy multiplies every component of q by the scalar s.
func (q Quaternion[T]) ScaleBy(s T) Quaternion[T] {
	return Quaternion[T]{q.W.Mul(s), q.X.Mul(s), q.Y.Mul(s), q.Z.Mul(s)}
}

// AddQ returns the componentwise sum of q and r. Only meaningful as an
// intermediate inside interpolation, where the result is renormalized or
// already a weighted combination of unit quaternions.
func (q Quaternion[T]) AddQ(r Quaternion[T]) Quaternion[T] {
	return Quaternion[T]{q.W.Add(r.W), q.X.Add(r.X), q.Y.Add(r.Y), q.Z.Add(r.Z)}
}

// Normalize returns q scaled to unit norm. Zero-length input is not checked
// and produces an undefined result.
func (q Quaternion[T]) Normalize() Quaternion[T] {
	return q.ScaleBy(q.Dot(q).Sqrt().Inv())
}

// Rotate applies the rotation q to v by quaternion sandwich, q*(0,v)*q^-1.
// q must be a unit quaternion.
func (q Quaternion[T]) Rotate(v Vec3[T]) Vec3[T] {
	p := Quaternion[T]{W: v.X.Lift(0), X: v.X, Y: v.Y, Z: v.Z}
	r := q.Mul(p).Mul(q.Conj())
	return Vec3[T]{r.X, r.Y, r.Z}
}

// LiftQuaternion promotes a double-precision quaternion into the scalar type
// of proto, with zero derivative.
func LiftQuaternion[T num.Number[T]](q quat.Number, proto T) Quaternion[T] {
	return Quaternion[T]{
		W: proto.Lift(q.Real),
		X: proto.Lift(q.Imag),
		Y: proto.Lift(q.Jmag),
		Z: proto.Lift(q.Kmag),
	}
}

// LiftVec3 promotes a double-precision vector into the scalar type of proto,
// with zero derivative.
func LiftVec3[T num.Number[T]](v r3.Vector, proto T) Vec3[T] {
	return Vec3[T]{X: proto.Lift(v.X), Y: proto.Lift(v.Y), Z: proto.Lift(v.Z)}
}

// Norm returns the norm of the quaternion, i.e. the sqrt of the squares of
// the imaginary parts.
func Norm(q quat.Number) float64 {
	return math.Sqrt(q.Imag*q.Imag + q.Jmag*q.Jmag + q.Kmag*q.Kmag)
}

// Flip will multiply a quaternion by -1, returning a quaternion representing
// the same orientation but in the opposing octant.
func Flip(q quat.Number) quat.Number {
	return quat.Number{Real: -q.Real, Imag: -q.Imag, Jmag: -q.Jmag, Kmag: -q.Kmag}
}
