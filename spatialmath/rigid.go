package spatialmath

import (
	"github.com/golang/geo/r3"
	"gonum.org/v1/gonum/num/quat"
)

// Rigid is a double-precision rigid transform: a rotation followed by a
// translation. It represents measured transforms and node poses handed in by
// the pose graph; solver variables use the generic types instead.
type Rigid struct {
	Rotation    quat.Number
	Translation r3.Vector
}

// NewRigid returns the rigid transform with the given rotation and
// translation.
func NewRigid(rotation quat.Number, translation r3.Vector) Rigid {
	return Rigid{Rotation: rotation, Translation: translation}
}

// NewZeroRigid returns the identity transform. The zero value of Rigid has a
// zero-length rotation quaternion, so this should be used instead of
// Rigid{}.
func NewZeroRigid() Rigid {
	return Rigid{Rotation: quat.Number{Real: 1}}
}

// Mul composes r with s, applying s first.
func (r Rigid) Mul(s Rigid) Rigid {
	return Rigid{
		Rotation:    quat.Mul(r.Rotation, s.Rotation),
		Translation: r.Translation.Add(RotateVec(r.Rotation, s.Translation)),
	}
}

// Inverse returns the transform undoing r. r must have a unit rotation.
func (r Rigid) Inverse() Rigid {
	inv := quat.Conj(r.Rotation)
	return Rigid{
		Rotation:    inv,
		Translation: RotateVec(inv, r.Translation).Mul(-1),
	}
}

// Apply transforms the point p by r.
func (r Rigid) Apply(p r3.Vector) r3.Vector {
	return RotateVec(r.Rotation, p).Add(r.Translation)
}

// RotateVec rotates v by the unit quaternion q.
func RotateVec(q quat.Number, v r3.Vector) r3.Vector {
	p := quat.Number{Imag: v.X, Jmag: v.Y, Kmag: v.Z}
	r := quat.Mul(quat.Mul(q, p), quat.Conj(q))
	return r3.Vector{X: r.Imag, Y: r.Jmag, Z: r.Kmag}
}
