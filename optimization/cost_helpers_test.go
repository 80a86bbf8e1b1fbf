package optimization

import (
	"math"
	"testing"

	"go.viam.com/test"
	"gonum.org/v1/gonum/num/quat"

	"github.com/openslam/posegraph/num"
	"github.com/openslam/posegraph/spatialmath"
)

func rz(yaw float64) quat.Number {
	return quat.Number{Real: math.Cos(yaw / 2), Kmag: math.Sin(yaw / 2)}
}

func floatBlock(vals ...float64) []num.Float {
	out := make([]num.Float, len(vals))
	for i, v := range vals {
		out[i] = num.Float(v)
	}
	return out
}

func TestNormalizeAngleDifference(t *testing.T) {
	for _, tc := range []struct{ in, want float64 }{
		{0, 0},
		{1, 1},
		{-1, -1},
		{math.Pi, math.Pi},
		{math.Pi + 0.5, -math.Pi + 0.5},
		{-math.Pi - 0.5, math.Pi - 0.5},
		{5 * math.Pi, math.Pi},
	} {
		got := normalizeAngleDifference(num.Float(tc.in))
		test.That(t, got.Real(), test.ShouldAlmostEqual, tc.want)
	}
}

func TestInterpolateNodes2DEndpoints(t *testing.T) {
	prevGravity := quat.Number{Real: math.Cos(0.1), Imag: math.Sin(0.1)}
	nextGravity := quat.Number{Real: math.Cos(0.15), Jmag: math.Sin(0.15)}
	prev := floatBlock(2, 1, 0.3)
	next := floatBlock(3, -1, 0.8)

	// t=0 must reproduce the previous node pose exactly
	rot, trans := interpolateNodes2D(prev, next, 0, spatialmath.Slerp(prevGravity, nextGravity, 0))
	want := quat.Mul(rz(0.3), prevGravity)
	test.That(t, rot.W.Real(), test.ShouldAlmostEqual, want.Real)
	test.That(t, rot.X.Real(), test.ShouldAlmostEqual, want.Imag)
	test.That(t, rot.Y.Real(), test.ShouldAlmostEqual, want.Jmag)
	test.That(t, rot.Z.Real(), test.ShouldAlmostEqual, want.Kmag)
	test.That(t, trans.X.Real(), test.ShouldAlmostEqual, 2)
	test.That(t, trans.Y.Real(), test.ShouldAlmostEqual, 1)
	test.That(t, trans.Z.Real(), test.ShouldAlmostEqual, 0)

	// t=1 must reproduce the next node pose exactly
	rot, trans = interpolateNodes2D(prev, next, 1, spatialmath.Slerp(prevGravity, nextGravity, 1))
	want = quat.Mul(rz(0.8), nextGravity)
	test.That(t, rot.W.Real(), test.ShouldAlmostEqual, want.Real)
	test.That(t, rot.X.Real(), test.ShouldAlmostEqual, want.Imag)
	test.That(t, rot.Y.Real(), test.ShouldAlmostEqual, want.Jmag)
	test.That(t, rot.Z.Real(), test.ShouldAlmostEqual, want.Kmag)
	test.That(t, trans.X.Real(), test.ShouldAlmostEqual, 3)
	test.That(t, trans.Y.Real(), test.ShouldAlmostEqual, -1)
}

func TestInterpolateNodes2DYawTakesShorterDirection(t *testing.T) {
	ident := quat.Number{Real: 1}
	// 170 degrees to -170 degrees should pass through 180, not 0
	prev := floatBlock(0, 0, 170*math.Pi/180)
	next := floatBlock(0, 0, -170*math.Pi/180)
	rot, _ := interpolateNodes2D(prev, next, 0.5, ident)
	want := rz(math.Pi)
	test.That(t, math.Abs(rot.W.Real()*want.Real+rot.Z.Real()*want.Kmag), test.ShouldAlmostEqual, 1)
}

func TestInterpolateNodes3DEndpoints(t *testing.T) {
	prevRot := rz(0.3)
	nextRot := quat.Mul(rz(1.2), quat.Number{Real: math.Cos(0.2), Imag: math.Sin(0.2)})
	prevBlock := floatBlock(prevRot.Real, prevRot.Imag, prevRot.Jmag, prevRot.Kmag)
	nextBlock := floatBlock(nextRot.Real, nextRot.Imag, nextRot.Jmag, nextRot.Kmag)
	prevTrans := floatBlock(1, 2, 3)
	nextTrans := floatBlock(-1, 0, 5)

	rot, trans := interpolateNodes3D(prevBlock, prevTrans, nextBlock, nextTrans, 0)
	test.That(t, rot.W.Real(), test.ShouldAlmostEqual, prevRot.Real)
	test.That(t, rot.Z.Real(), test.ShouldAlmostEqual, prevRot.Kmag)
	test.That(t, trans.X.Real(), test.ShouldAlmostEqual, 1)
	test.That(t, trans.Z.Real(), test.ShouldAlmostEqual, 3)

	rot, trans = interpolateNodes3D(prevBlock, prevTrans, nextBlock, nextTrans, 1)
	test.That(t, rot.W.Real(), test.ShouldAlmostEqual, nextRot.Real)
	test.That(t, rot.X.Real(), test.ShouldAlmostEqual, nextRot.Imag)
	test.That(t, rot.Z.Real(), test.ShouldAlmostEqual, nextRot.Kmag)
	test.That(t, trans.X.Real(), test.ShouldAlmostEqual, -1)
	test.That(t, trans.Y.Real(), test.ShouldAlmostEqual, 0)
}

func TestComputeUnscaledErrorZeroAtConsistency(t *testing.T) {
	measured := spatialmath.NewRigid(rz(0.4), r3vec(0.3, -0.1, 0.2))
	start := spatialmath.NewRigid(quat.Mul(rz(0.7), quat.Number{Real: math.Cos(0.1), Jmag: math.Sin(0.1)}), r3vec(1, 2, 3))
	end := start.Mul(measured)

	e := computeUnscaledError(
		measured,
		liftQuat(start.Rotation), liftVec(start.Translation),
		liftQuat(end.Rotation), liftVec(end.Translation),
	)
	for i := range e {
		test.That(t, e[i].Real(), test.ShouldAlmostEqual, 0, 1e-12)
	}
}

func TestRotateErrorToWorld(t *testing.T) {
	rot := liftQuat(rz(math.Pi / 2))
	e := [6]num.Float{1, 0, 0, 0.5, 0.6, 0.7}
	out := rotateErrorToWorld(e, rot)
	// x axis maps to y under a 90 degree z rotation
	test.That(t, out[0].Real(), test.ShouldAlmostEqual, 0)
	test.That(t, out[1].Real(), test.ShouldAlmostEqual, 1)
	test.That(t, out[2].Real(), test.ShouldAlmostEqual, 0)
	// rotation components untouched
	test.That(t, out[3].Real(), test.ShouldEqual, 0.5)
	test.That(t, out[4].Real(), test.ShouldEqual, 0.6)
	test.That(t, out[5].Real(), test.ShouldEqual, 0.7)
}
