package regression

import (
	"errors"
	"fmt"
)

// Sentinels are returned wrapped with the operation name; match them with errors.Is.
var (
	// ErrInvalidInput is returned for empty sample sets, zero-width or ragged
	// feature rows and non-finite values in the data.
	ErrInvalidInput = errors.New("regression: invalid input")

	// ErrSingularSystem is returned when the normal equations have a (numerically)
	// zero pivot. It can only happen at alpha == 0 with rank-deficient features.
	ErrSingularSystem = errors.New("regression: singular system")

	// ErrConfiguration is returned for a negative or NaN penalty and other bad parameters.
	ErrConfiguration = errors.New("regression: invalid configuration")

	// ErrDimensionMismatch is returned when a feature vector does not match the model width.
	ErrDimensionMismatch = errors.New("regression: dimension mismatch")
)

const (
	opFitRidge   = "FitRidge"
	opFitLasso   = "FitLasso"
	opPredict    = "Predict"
	opScore      = "Score"
	opPath       = "RegularizationPath"
	opPolynomial = "PolynomialFeatures"
	opLoadModel  = "LoadModel"
)

func regressionErrorf(op string, err error) error {
	return fmt.Errorf("%s: %w", op, err)
}
