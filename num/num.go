// Package num provides the scalar types the residual evaluators are written
// against: a plain float64 scalar for ordinary evaluation and a forward-mode
// dual number (jet) carrying a derivative vector, both satisfying a common
// generic constraint so the same formula yields values and Jacobians.
package num

import "math"

// Number is the arithmetic surface a scalar type must provide. Scale and
// Lift take float64 constants so that constant factors and constant terms
// never carry derivative bookkeeping of their own.
type Number[T any] interface {
	Add(T) T
	Sub(T) T
	Mul(T) T
	Neg() T
	// Scale multiplies by a constant.
	Scale(c float64) T
	// Lift returns the constant c as a scalar compatible with the receiver.
	Lift(c float64) T
	// Inv returns the reciprocal.
	Inv() T
	Sqrt() T
	Acos() T
	Sin() T
	Cos() T
	// Real returns the value part.
	Real() float64
}

// Float is the plain evaluation scalar.
type Float float64

// Add returns f+g.
func (f Float) Add(g Float) Float { return f + g }

// Sub returns f-g.
func (f Float) Sub(g Float) Float { return f - g }

// Mul returns f*g.
func (f Float) Mul(g Float) Float { return f * g }

// Neg returns -f.
func (f Float) Neg() Float { return -f }

// Scale returns f*c.
func (f Float) Scale(c float64) Float { return f * Float(c) }

// Lift returns c.
func (f Float) Lift(c float64) Float { return Float(c) }

// Inv returns 1/f.
func (f Float) Inv() Float { return 1 / f }

// Sqrt returns the square root of f.
func (f Float) Sqrt() Float { return Float(math.Sqrt(float64(f))) }

// Acos returns the arccosine of f.
func (f Float) Acos() Float { return Float(math.Acos(float64(f))) }

// Sin returns the sine of f.
func (f Float) Sin() Float { return Float(math.Sin(float64(f))) }

// Cos returns the cosine of f.
func (f Float) Cos() Float { return Float(math.Cos(float64(f))) }

// Real returns f as a float64.
func (f Float) Real() float64 { return float64(f) }
