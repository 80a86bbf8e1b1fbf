package num

import "gonum.org/v1/gonum/mat"

// Func is a residual function over parameter blocks of scalar type T. The
// solver owns the block layout; a Func only assigns meaning to each block.
type Func[T Number[T]] func(params [][]T) []T

// Evaluate runs f on plain float64 parameter blocks and returns the residual
// values.
func Evaluate(f Func[Float], params [][]float64) []float64 {
	blocks := make([][]Float, len(params))
	for b, p := range params {
		block := make([]Float, len(p))
		for i, v := range p {
			block[i] = Float(v)
		}
		blocks[b] = block
	}
	res := f(blocks)
	out := make([]float64, len(res))
	for i, r := range res {
		out[i] = float64(r)
	}
	return out
}

// Jacobian evaluates f once with seeded jets and returns the residual values
// together with the dense Jacobian. Rows correspond to residual components,
// columns to parameters in block order.
func Jacobian(f Func[Jet], params [][]float64) ([]float64, *mat.Dense) {
	n := 0
	for _, p := range params {
		n += len(p)
	}
	blocks := make([][]Jet, len(params))
	col := 0
	for b, p := range params {
		block := make([]Jet, len(p))
		for i, v := range p {
			block[i] = Seed(v, col, n)
			col++
		}
		blocks[b] = block
	}
	res := f(blocks)
	out := make([]float64, len(res))
	jac := mat.NewDense(len(res), n, nil)
	for i, r := range res {
		out[i] = r.Re
		jac.SetRow(i, r.Inf)
	}
	return out, jac
}

// NumericJacobian approximates the Jacobian of f by central finite
// differences with the given step. It exists to cross-check jet evaluation;
// the solver consumes Jacobian.
func NumericJacobian(f Func[Float], params [][]float64, step float64) *mat.Dense {
	n := 0
	for _, p := range params {
		n += len(p)
	}
	base := Evaluate(f, params)
	jac := mat.NewDense(len(base), n, nil)
	col := 0
	for b := range params {
		for i := range params[b] {
			orig := params[b][i]
			params[b][i] = orig + step
			plus := Evaluate(f, params)
			params[b][i] = orig - step
			minus := Evaluate(f, params)
			params[b][i] = orig
			for r := range base {
				jac.Set(r, col, (plus[r]-minus[r])/(2*step))
			}
			col++
		}
	}
	return jac
}
