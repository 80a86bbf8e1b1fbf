package num

import (
	"math"
	"testing"

	"go.viam.com/test"
)

func TestJetSeedAndLift(t *testing.T) {
	x := Seed(1.5, 0, 3)
	test.That(t, x.Re, test.ShouldEqual, 1.5)
	test.That(t, x.Inf, test.ShouldResemble, []float64{1, 0, 0})

	c := x.Lift(2.5)
	test.That(t, c.Re, test.ShouldEqual, 2.5)
	test.That(t, c.Inf, test.ShouldResemble, []float64{0, 0, 0})
}

func TestJetArithmetic(t *testing.T) {
	x := Seed(1.3, 0, 2)
	y := Seed(0.7, 1, 2)

	sum := x.Add(y)
	test.That(t, sum.Re, test.ShouldAlmostEqual, 2.0)
	test.That(t, sum.Inf, test.ShouldResemble, []float64{1, 1})

	diff := x.Sub(y)
	test.That(t, diff.Re, test.ShouldAlmostEqual, 0.6)
	test.That(t, diff.Inf, test.ShouldResemble, []float64{1, -1})

	prod := x.Mul(y)
	test.That(t, prod.Re, test.ShouldAlmostEqual, 1.3*0.7)
	test.That(t, prod.Inf[0], test.ShouldAlmostEqual, 0.7)
	test.That(t, prod.Inf[1], test.ShouldAlmostEqual, 1.3)

	neg := x.Neg()
	test.That(t, neg.Re, test.ShouldAlmostEqual, -1.3)
	test.That(t, neg.Inf[0], test.ShouldAlmostEqual, -1)

	scaled := x.Scale(3)
	test.That(t, scaled.Re, test.ShouldAlmostEqual, 3.9)
	test.That(t, scaled.Inf[0], test.ShouldAlmostEqual, 3)

	inv := x.Inv()
	test.That(t, inv.Re, test.ShouldAlmostEqual, 1/1.3)
	test.That(t, inv.Inf[0], test.ShouldAlmostEqual, -1/(1.3*1.3))
}

func TestJetFunctions(t *testing.T) {
	x := Seed(1.3, 0, 1)

	sqrt := x.Sqrt()
	test.That(t, sqrt.Re, test.ShouldAlmostEqual, math.Sqrt(1.3))
	test.That(t, sqrt.Inf[0], test.ShouldAlmostEqual, 1/(2*math.Sqrt(1.3)))

	sin := x.Sin()
	test.That(t, sin.Re, test.ShouldAlmostEqual, math.Sin(1.3))
	test.That(t, sin.Inf[0], test.ShouldAlmostEqual, math.Cos(1.3))

	cos := x.Cos()
	test.That(t, cos.Re, test.ShouldAlmostEqual, math.Cos(1.3))
	test.That(t, cos.Inf[0], test.ShouldAlmostEqual, -math.Sin(1.3))

	y := Seed(0.4, 0, 1)
	acos := y.Acos()
	test.That(t, acos.Re, test.ShouldAlmostEqual, math.Acos(0.4))
	test.That(t, acos.Inf[0], test.ShouldAlmostEqual, -1/math.Sqrt(1-0.4*0.4))
}

func TestJetNoAliasing(t *testing.T) {
	x := Seed(2, 0, 2)
	y := Seed(3, 1, 2)
	sum := x.Add(y)
	sum.Inf[0] = 99
	test.That(t, x.Inf, test.ShouldResemble, []float64{1, 0})
	test.That(t, y.Inf, test.ShouldResemble, []float64{0, 1})
}

func TestJetChainRuleAgainstFiniteDifferences(t *testing.T) {
	// f(x) = sqrt(x*x + sin(x)) * cos(x)
	f := func(x float64) float64 {
		return math.Sqrt(x*x+math.Sin(x)) * math.Cos(x)
	}
	fj := func(x Jet) Jet {
		return x.Mul(x).Add(x.Sin()).Sqrt().Mul(x.Cos())
	}
	for _, x0 := range []float64{0.3, 0.9, 1.7, 2.4} {
		j := fj(Seed(x0, 0, 1))
		test.That(t, j.Re, test.ShouldAlmostEqual, f(x0))
		const h = 1e-6
		fd := (f(x0+h) - f(x0-h)) / (2 * h)
		test.That(t, j.Inf[0], test.ShouldAlmostEqual, fd, 1e-6)
	}
}

func TestJetDeterminism(t *testing.T) {
	eval := func() Jet {
		x := Seed(1.234, 0, 2)
		y := Seed(-0.567, 1, 2)
		return x.Mul(y).Add(x.Sin()).Sqrt().Mul(y.Cos())
	}
	test.That(t, eval(), test.ShouldResemble, eval())
}
