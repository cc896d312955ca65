package regression

import (
	"gonum.org/v1/gonum/floats"
	"gonum.org/v1/gonum/mat"
	"gonum.org/v1/gonum/stat"
)

// FitRidge fits an L2-penalized linear model by solving the centered normal
// equations (XcᵀXc + αI)w = Xcᵀyc. The intercept is recovered as ȳ − x̄·w and
// is never penalized. alpha == 0 is ordinary least squares and returns
// ErrSingularSystem when the centered features are rank deficient.
func FitRidge(samples []Sample, alpha float64) (LinearModel, error) {
	if err := validateAlpha(alpha); err != nil {
		return LinearModel{}, regressionErrorf(opFitRidge, err)
	}
	h, w, err := validatedDimensions(samples)
	if err != nil {
		return LinearModel{}, regressionErrorf(opFitRidge, err)
	}

	features, target := designMatrix(samples, h, w)

	means := make([]float64, w)
	column := make([]float64, h)
	for q := 0; q < w; q++ {
		means[q] = stat.Mean(mat.Col(column, q, features), nil)
	}
	targetMean := stat.Mean(target.RawVector().Data, nil)

	centered := mat.NewDense(h, w, nil)
	centeredTarget := mat.NewVecDense(h, nil)
	for p := 0; p < h; p++ {
		for q := 0; q < w; q++ {
			centered.Set(p, q, features.At(p, q)-means[q])
		}
		centeredTarget.SetVec(p, target.AtVec(p)-targetMean)
	}

	var gram mat.Dense
	gram.Mul(centered.T(), centered)
	for q := 0; q < w; q++ {
		gram.Set(q, q, gram.At(q, q)+alpha)
	}
	var moment mat.VecDense
	moment.MulVec(centered.T(), centeredTarget)

	// αI keeps the penalized system positive definite, so only an exactly
	// zero pivot is singular there.
	tolerance := pivotTolerance
	if alpha > 0 {
		tolerance = 0
	}
	weights, err := solveGauss(&gram, &moment, tolerance)
	if err != nil {
		return LinearModel{}, regressionErrorf(opFitRidge, err)
	}

	return LinearModel{
		Weights:   weights,
		Intercept: targetMean - floats.Dot(means, weights),
	}, nil
}

// FitOLS is FitRidge without a penalty.
func FitOLS(samples []Sample) (LinearModel, error) {
	return FitRidge(samples, 0)
}
