package regression

import (
	"math"

	"gonum.org/v1/gonum/floats"
)

// Coordinate descent defaults.
const (
	DefaultMaxIterations = 1000
	DefaultTolerance     = 1e-6
)

// LassoParams collect arguments of the coordinate descent solver.
type LassoParams struct {
	Alpha         float64
	MaxIterations int
	Tolerance     float64
}

// DefaultLassoParams returns the solver defaults for the given penalty.
func DefaultLassoParams(alpha float64) LassoParams {
	return LassoParams{Alpha: alpha, MaxIterations: DefaultMaxIterations, Tolerance: DefaultTolerance}
}

// LassoReport describes how a coordinate descent run ended.
type LassoReport struct {
	Iterations int
	Converged  bool
	MaxChange  float64
}

// SoftThreshold is the proximal operator of the L1 penalty.
func SoftThreshold(z, alpha float64) float64 {
	switch {
	case z > alpha:
		return z - alpha
	case z < -alpha:
		return z + alpha
	default:
		return 0
	}
}

// FitLasso fits an L1-penalized linear model by cyclic coordinate descent.
// Running out of iterations is not an error: the last iterate is returned.
func FitLasso(samples []Sample, alpha float64, maxIterations int, tolerance float64) (LinearModel, error) {
	model, _, err := FitLassoReport(samples, LassoParams{Alpha: alpha, MaxIterations: maxIterations, Tolerance: tolerance})
	return model, err
}

// FitLassoWith is FitLasso driven by a parameter struct.
func FitLassoWith(samples []Sample, params LassoParams) (LinearModel, error) {
	model, _, err := FitLassoReport(samples, params)
	return model, err
}

// FitLassoReport runs coordinate descent and also reports the number of sweeps
// and whether the tolerance was reached.
//
// Every sweep first moves the intercept by the mean residual, then visits the
// weights in index order with w_j = soft(ρ_j, α) / Σx_ij², where
// ρ_j = Σ x_ij·(y_i − ŷ_i + w_j·x_ij). A coordinate with a zero column or a
// non-finite update keeps its previous value. The sweep stops once the largest
// change, intercept included, falls below the tolerance.
func FitLassoReport(samples []Sample, params LassoParams) (LinearModel, LassoReport, error) {
	if err := validateAlpha(params.Alpha); err != nil {
		return LinearModel{}, LassoReport{}, regressionErrorf(opFitLasso, err)
	}
	h, w, err := validatedDimensions(samples)
	if err != nil {
		return LinearModel{}, LassoReport{}, regressionErrorf(opFitLasso, err)
	}
	maxIterations := params.MaxIterations
	if maxIterations <= 0 {
		maxIterations = DefaultMaxIterations
	}
	tolerance := params.Tolerance
	if !(tolerance > 0) {
		tolerance = DefaultTolerance
	}

	columns := make([][]float64, w)
	sumSquares := make([]float64, w)
	for q := 0; q < w; q++ {
		columns[q] = make([]float64, h)
		for p, sample := range samples {
			columns[q][p] = sample.Features[q]
		}
		sumSquares[q] = floats.Dot(columns[q], columns[q])
	}

	weights := make([]float64, w)
	intercept := 0.0
	residual := make([]float64, h)
	for p, sample := range samples {
		residual[p] = sample.Target
	}

	var report LassoReport
	for iter := 0; iter < maxIterations; iter++ {
		maxChange := 0.0

		shift := floats.Sum(residual) / float64(h)
		if isFinite(shift) {
			intercept += shift
			floats.AddConst(-shift, residual)
			maxChange = math.Max(maxChange, math.Abs(shift))
		}

		for q := 0; q < w; q++ {
			if sumSquares[q] == 0 || !isFinite(sumSquares[q]) {
				continue
			}
			column := columns[q]
			rho := floats.Dot(column, residual) + weights[q]*sumSquares[q]
			updated := SoftThreshold(rho, params.Alpha) / sumSquares[q]
			if !isFinite(updated) {
				continue
			}
			delta := updated - weights[q]
			if delta != 0 {
				floats.AddScaled(residual, -delta, column)
				weights[q] = updated
			}
			maxChange = math.Max(maxChange, math.Abs(delta))
		}

		report.Iterations = iter + 1
		report.MaxChange = maxChange
		if maxChange < tolerance {
			report.Converged = true
			break
		}
	}

	return LinearModel{Weights: weights, Intercept: intercept}, report, nil
}
