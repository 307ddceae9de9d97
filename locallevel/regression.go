package locallevel

import (
	"errors"

	"gonum.org/v1/gonum/mat"
)

// olsCoefficients estimates the static regression of y on the control
// columns by least squares. An intercept column is included in the design so
// the returned control coefficients are not biased by the series' mean, but
// the intercept itself is discarded: the level component of the state model
// absorbs it. Rank-deficient designs are handled by a truncated SVD solve.
func olsCoefficients(y []float64, controls [][]float64) ([]float64, error) {
	n := len(y)
	k := len(controls)
	if k == 0 {
		return nil, nil
	}
	for _, c := range controls {
		if len(c) != n {
			return nil, errors.New("control length does not match target length")
		}
	}
	if n < k+1 {
		return nil, errors.New("fewer observations than regression parameters")
	}

	design := mat.NewDense(n, k+1, nil)
	for i := 0; i < n; i++ {
		design.Set(i, 0, 1)
		for j, c := range controls {
			design.Set(i, j+1, c[i])
		}
	}

	var svd mat.SVD
	if ok := svd.Factorize(design, mat.SVDThin); !ok {
		return nil, errors.New("SVD factorization of the design matrix failed")
	}

	values := svd.Values(nil)
	rank := 0
	tol := float64(n) * values[0] * 1e-12
	for _, sv := range values {
		if sv > tol {
			rank++
		}
	}
	if rank == 0 {
		return nil, errors.New("design matrix has zero rank")
	}

	target := mat.NewVecDense(n, nil)
	for i, v := range y {
		target.SetVec(i, v)
	}

	var solution mat.VecDense
	svd.SolveVecTo(&solution, target, rank)

	coeffs := make([]float64, k)
	for j := 0; j < k; j++ {
		coeffs[j] = solution.AtVec(j + 1)
	}
	return coeffs, nil
}

// regressionComponent evaluates the fitted regression at every row of the
// given control columns.
func regressionComponent(coeffs []float64, controls [][]float64, n int) []float64 {
	reg := make([]float64, n)
	for j, c := range controls {
		for i := 0; i < n && i < len(c); i++ {
			reg[i] += coeffs[j] * c[i]
		}
	}
	return reg
}
