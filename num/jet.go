package num

import "math"

// Jet is a forward-mode dual number: a value and its partial derivatives
// with respect to a fixed set of variables. Propagating jets through a
// residual evaluation yields the residual's Jacobian from the same code path
// as the plain evaluation.
//
// Every operation allocates a fresh derivative slice; a jet's Inf is never
// aliased by a result, so evaluations sharing input jets remain independent.
// All jets participating in one evaluation must have the same dimension.
type Jet struct {
	Re  float64
	Inf []float64
}

// NewJet returns the constant c with an n-dimensional zero derivative.
func NewJet(c float64, n int) Jet {
	return Jet{Re: c, Inf: make([]float64, n)}
}

// Seed returns variable i of n with value c, i.e. a jet whose derivative is
// the i-th unit vector.
func Seed(c float64, i, n int) Jet {
	j := NewJet(c, n)
	j.Inf[i] = 1
	return j
}

// Add returns j+k.
func (j Jet) Add(k Jet) Jet {
	inf := make([]float64, len(j.Inf))
	for i := range inf {
		inf[i] = j.Inf[i] + k.Inf[i]
	}
	return Jet{Re: j.Re + k.Re, Inf: inf}
}

// Sub returns j-k.
func (j Jet) Sub(k Jet) Jet {
	inf := make([]float64, len(j.Inf))
	for i := range inf {
		inf[i] = j.Inf[i] - k.Inf[i]
	}
	return Jet{Re: j.Re - k.Re, Inf: inf}
}

// Mul returns j*k.
func (j Jet) Mul(k Jet) Jet {
	inf := make([]float64, len(j.Inf))
	for i := range inf {
		inf[i] = j.Inf[i]*k.Re + k.Inf[i]*j.Re
	}
	return Jet{Re: j.Re * k.Re, Inf: inf}
}

// Neg returns -j.
func (j Jet) Neg() Jet {
	return j.Scale(-1)
}

// Scale returns j*c.
func (j Jet) Scale(c float64) Jet {
	inf := make([]float64, len(j.Inf))
	for i := range inf {
		inf[i] = j.Inf[i] * c
	}
	return Jet{Re: j.Re * c, Inf: inf}
}

// Lift returns the constant c with the same dimension as j.
func (j Jet) Lift(c float64) Jet {
	return NewJet(c, len(j.Inf))
}

// Inv returns 1/j.
func (j Jet) Inv() Jet {
	re := 1 / j.Re
	d := -re * re
	inf := make([]float64, len(j.Inf))
	for i := range inf {
		inf[i] = j.Inf[i] * d
	}
	return Jet{Re: re, Inf: inf}
}

// Sqrt returns the square root of j.
func (j Jet) Sqrt() Jet {
	re := math.Sqrt(j.Re)
	d := 1 / (2 * re)
	inf := make([]float64, len(j.Inf))
	for i := range inf {
		inf[i] = j.Inf[i] * d
	}
	return Jet{Re: re, Inf: inf}
}

// Acos returns the arccosine of j.
func (j Jet) Acos() Jet {
	d := -1 / math.Sqrt(1-j.Re*j.Re)
	inf := make([]float64, len(j.Inf))
	for i := range inf {
		inf[i] = j.Inf[i] * d
	}
	return Jet{Re: math.Acos(j.Re), Inf: inf}
}

// Sin returns the sine of j.
func (j Jet) Sin() Jet {
	d := math.Cos(j.Re)
	inf := make([]float64, len(j.Inf))
	for i := range inf {
		inf[i] = j.Inf[i] * d
	}
	return Jet{Re: math.Sin(j.Re), Inf: inf}
}

// Cos returns the cosine of j.
func (j Jet) Cos() Jet {
	d := -math.Sin(j.Re)
	inf := make([]float64, len(j.Inf))
	for i := range inf {
		inf[i] = j.Inf[i] * d
	}
	return Jet{Re: math.Cos(j.Re), Inf: inf}
}

// Real returns the value part of j.
func (j Jet) Real() float64 { return j.Re }
