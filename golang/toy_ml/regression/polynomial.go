package regression

import (
	"fmt"
	"math"
)

// PolynomialFeatures expands a scalar into [x, x², …, x^degree].
// The constant term is left to the model intercept.
func PolynomialFeatures(x float64, degree int) ([]float64, error) {
	if degree < 1 {
		return nil, regressionErrorf(opPolynomial, fmt.Errorf("degree %d < 1: %w", degree, ErrConfiguration))
	}
	features := make([]float64, degree)
	power := 1.0
	for d := 0; d < degree; d++ {
		power *= x
		features[d] = power
	}
	return features, nil
}

// ExpandPolynomial turns 1D points (x, y) into samples with polynomial features.
func ExpandPolynomial(xs, ys []float64, degree int) ([]Sample, error) {
	if len(xs) != len(ys) {
		return nil, regressionErrorf(opPolynomial, fmt.Errorf("%d inputs for %d targets: %w", len(xs), len(ys), ErrDimensionMismatch))
	}
	samples := make([]Sample, len(xs))
	for p, x := range xs {
		if math.IsNaN(x) || math.IsInf(x, 0) {
			return nil, regressionErrorf(opPolynomial, fmt.Errorf("input %d is not finite: %w", p, ErrInvalidInput))
		}
		features, err := PolynomialFeatures(x, degree)
		if err != nil {
			return nil, err
		}
		samples[p] = Sample{Features: features, Target: ys[p]}
	}
	return samples, nil
}

// PredictPolynomial evaluates a model fitted on ExpandPolynomial samples at x.
func PredictPolynomial(model LinearModel, x float64) (float64, error) {
	features, err := PolynomialFeatures(x, len(model.Weights))
	if err != nil {
		return 0, err
	}
	return Predict(model, features)
}
