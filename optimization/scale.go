package optimization

import (
	"math"

	"github.com/edaniels/golog"
	"gonum.org/v1/gonum/mat"

	"github.com/openslam/posegraph/num"
)

// scaleError applies the scalar weights and the square-root-information
// factor to the unscaled 6-vector error. The factor entries are constants,
// so only constant-scale operations touch the generic scalars.
func scaleError[T num.Number[T]](e [6]T, translationWeight, rotationWeight float64, sqrtInformation *[6][6]float64) [6]T {
	var weighted [6]T
	for i := 0; i < 3; i++ {
		weighted[i] = e[i].Scale(translationWeight)
		weighted[i+3] = e[i+3].Scale(rotationWeight)
	}
	var out [6]T
	for i := range out {
		acc := weighted[0].Scale(sqrtInformation[i][0])
		for j := 1; j < 6; j++ {
			acc = acc.Add(weighted[j].Scale(sqrtInformation[i][j]))
		}
		out[i] = acc
	}
	return out
}

// sqrtInformation factors the 6x6 inverse covariance into F with F^T F equal
// to the input, so that the squared norm of F*e is the Mahalanobis distance
// of e. Cholesky is used when the matrix is positive definite; otherwise the
// factor falls back to a symmetric eigendecomposition with negative
// eigenvalues clamped to zero, and a warning is logged. Near-singular input
// still produces very large (possibly unusable) residual scales; that is the
// caller's covariance model to fix.
func sqrtInformation(inverseCovariance *mat.SymDense, logger golog.Logger) [6][6]float64 {
	var out [6][6]float64
	var chol mat.Cholesky
	if chol.Factorize(inverseCovariance) {
		var u mat.TriDense
		chol.UTo(&u)
		for i := 0; i < 6; i++ {
			for j := 0; j < 6; j++ {
				out[i][j] = u.At(i, j)
			}
		}
		return out
	}
	logger.Warnw("inverse covariance is not positive definite; clamping negative eigenvalues to zero")
	var eig mat.EigenSym
	if !eig.Factorize(inverseCovariance, true) {
		logger.Errorw("inverse covariance eigendecomposition failed; residuals will be unweighted by covariance")
		for i := 0; i < 6; i++ {
			out[i][i] = 1
		}
		return out
	}
	vals := eig.Values(nil)
	var q mat.Dense
	eig.VectorsTo(&q)
	// F = diag(sqrt(max(lambda, 0))) * Q^T
	for i := 0; i < 6; i++ {
		s := 0.0
		if vals[i] > 0 {
			s = math.Sqrt(vals[i])
		}
		for j := 0; j < 6; j++ {
			out[i][j] = s * q.At(j, i)
		}
	}
	return out
}
