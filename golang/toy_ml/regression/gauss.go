package regression

import (
	"fmt"
	"math"

	"gonum.org/v1/gonum/mat"
)

// pivotTolerance is relative to the largest absolute entry of the system matrix.
const pivotTolerance = 1e-10

// solveGauss solves lhs·x = rhs by Gaussian elimination with partial pivoting.
// The pivot of column k is the largest |entry| among rows k..n-1; on ties the
// first such row is kept. A pivot at or below tolerance·max|lhs| is singular,
// so a zero tolerance rejects only exactly zero pivots. lhs and rhs are not modified.
func solveGauss(lhs *mat.Dense, rhs *mat.VecDense, tolerance float64) ([]float64, error) {
	n, c := lhs.Dims()
	if n != c || rhs.Len() != n {
		return nil, fmt.Errorf("system %dx%d with right side %d: %w", n, c, rhs.Len(), ErrDimensionMismatch)
	}

	a := mat.DenseCopyOf(lhs)
	b := mat.VecDenseCopyOf(rhs)

	scale := 0.0
	for p := 0; p < n; p++ {
		for q := 0; q < n; q++ {
			scale = math.Max(scale, math.Abs(a.At(p, q)))
		}
	}
	if scale == 0 {
		return nil, fmt.Errorf("zero system matrix: %w", ErrSingularSystem)
	}
	threshold := tolerance * scale

	for k := 0; k < n; k++ {
		maxRow := k
		for r := k + 1; r < n; r++ {
			if math.Abs(a.At(r, k)) > math.Abs(a.At(maxRow, k)) {
				maxRow = r
			}
		}
		pivot := a.At(maxRow, k)
		if math.Abs(pivot) <= threshold || math.IsNaN(pivot) {
			return nil, fmt.Errorf("pivot %g in column %d: %w", pivot, k, ErrSingularSystem)
		}
		if maxRow != k {
			swapRows(a, k, maxRow)
			bk, bm := b.AtVec(k), b.AtVec(maxRow)
			b.SetVec(k, bm)
			b.SetVec(maxRow, bk)
		}

		for r := k + 1; r < n; r++ {
			factor := a.At(r, k) / pivot
			if factor == 0 {
				continue
			}
			for q := k; q < n; q++ {
				a.Set(r, q, a.At(r, q)-factor*a.At(k, q))
			}
			b.SetVec(r, b.AtVec(r)-factor*b.AtVec(k))
		}
	}

	x := make([]float64, n)
	for i := n - 1; i >= 0; i-- {
		sum := b.AtVec(i)
		for j := i + 1; j < n; j++ {
			sum -= a.At(i, j) * x[j]
		}
		x[i] = sum / a.At(i, i)
	}
	return x, nil
}

func swapRows(a *mat.Dense, i, j int) {
	_, c := a.Dims()
	for q := 0; q < c; q++ {
		vi, vj := a.At(i, q), a.At(j, q)
		a.Set(i, q, vj)
		a.Set(j, q, vi)
	}
}
