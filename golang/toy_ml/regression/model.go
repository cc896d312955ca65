package regression

import (
	"encoding/json"
	"fmt"
	"os"

	"gonum.org/v1/gonum/floats"
	"gonum.org/v1/gonum/stat"
)

// LinearModel is the result of a fit: y ≈ Weights·x + Intercept.
type LinearModel struct {
	Weights   []float64 `json:"weights"`
	Intercept float64   `json:"intercept"`
}

// Predict evaluates the model on one feature vector.
func Predict(model LinearModel, features []float64) (float64, error) {
	if len(features) != len(model.Weights) {
		return 0, regressionErrorf(opPredict, fmt.Errorf("%d features for %d weights: %w", len(features), len(model.Weights), ErrDimensionMismatch))
	}
	return floats.Dot(model.Weights, features) + model.Intercept, nil
}

// PredictAll evaluates the model on every row.
func PredictAll(model LinearModel, rows [][]float64) ([]float64, error) {
	prediction := make([]float64, len(rows))
	for p, row := range rows {
		value, err := Predict(model, row)
		if err != nil {
			return nil, fmt.Errorf("row %d: %w", p, err)
		}
		prediction[p] = value
	}
	return prediction, nil
}

func predictSamples(model LinearModel, samples []Sample) (estimates, values []float64, err error) {
	estimates = make([]float64, len(samples))
	values = make([]float64, len(samples))
	for p, sample := range samples {
		if estimates[p], err = Predict(model, sample.Features); err != nil {
			return nil, nil, fmt.Errorf("sample %d: %w", p, err)
		}
		values[p] = sample.Target
	}
	return estimates, values, nil
}

// Score returns the coefficient of determination R² of the model on the samples.
// It is exactly 1 when all targets are identical, whatever the weights.
func Score(model LinearModel, samples []Sample) (float64, error) {
	if len(samples) == 0 {
		return 0, regressionErrorf(opScore, fmt.Errorf("no samples: %w", ErrInvalidInput))
	}
	estimates, values, err := predictSamples(model, samples)
	if err != nil {
		return 0, regressionErrorf(opScore, err)
	}

	// the mean of identical values is not exact in floating point, so a
	// constant target is detected before any sum of squares
	if isConstant(values) {
		return 1, nil
	}
	return stat.RSquaredFrom(estimates, values, nil), nil
}

func isConstant(values []float64) bool {
	for _, v := range values[1:] {
		if v != values[0] {
			return false
		}
	}
	return true
}

// MeanSquaredError of the model on the samples.
func MeanSquaredError(model LinearModel, samples []Sample) (float64, error) {
	if len(samples) == 0 {
		return 0, regressionErrorf(opScore, fmt.Errorf("no samples: %w", ErrInvalidInput))
	}
	estimates, values, err := predictSamples(model, samples)
	if err != nil {
		return 0, regressionErrorf(opScore, err)
	}
	floats.Sub(estimates, values)
	return floats.Dot(estimates, estimates) / float64(len(values)), nil
}

// L1Norm is Σ|w_j|; the intercept is not included.
func (model LinearModel) L1Norm() float64 {
	return floats.Norm(model.Weights, 1)
}

// NonZero counts weights that are exactly non-zero.
func (model LinearModel) NonZero() int {
	count := 0
	for _, v := range model.Weights {
		if v != 0 {
			count++
		}
	}
	return count
}

// SaveModel writes the model as indented JSON.
func SaveModel(filename string, model LinearModel) error {
	modelByteRepr, err := json.MarshalIndent(model, "", "  ")
	if err != nil {
		return err
	}
	return os.WriteFile(filename, modelByteRepr, 0o644)
}

// LoadModel reads a model written by SaveModel.
func LoadModel(filename string) (model LinearModel, err error) {
	source, err := os.Open(filename)
	if err != nil {
		return LinearModel{}, err
	}
	defer func() {
		if closeErr := source.Close(); err == nil {
			err = closeErr
		}
	}()

	if err = json.NewDecoder(source).Decode(&model); err != nil {
		return LinearModel{}, regressionErrorf(opLoadModel, err)
	}
	for q, v := range model.Weights {
		if !isFinite(v) {
			return LinearModel{}, regressionErrorf(opLoadModel, fmt.Errorf("weight %d is not finite: %w", q, ErrInvalidInput))
		}
	}
	return model, nil
}
