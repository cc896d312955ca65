// Package dataset synthesizes the toy data sets used by the demos and moves
// data between npy files, gonum matrices and the model packages.
package dataset

import (
	"errors"
	"fmt"
	"math"
	"math/rand"
	"strings"

	"github.com/tarstars/toy_ml_playground/golang/toy_ml/regression"
)

// ErrConfiguration is returned for negative sizes, unknown shapes and
// matrices of the wrong width.
var ErrConfiguration = errors.New("dataset: invalid configuration")

// Line is a one-feature sample set together with the curve it was drawn from.
type Line struct {
	X, Y  []float64
	Truth func(x float64) float64
}

// Samples turns the line into one-feature regression samples.
func (l Line) Samples() []regression.Sample {
	samples := make([]regression.Sample, len(l.X))
	for ind := range l.X {
		samples[ind] = regression.Sample{Features: []float64{l.X[ind]}, Target: l.Y[ind]}
	}
	return samples
}

func uniformNoise(rng *rand.Rand, level float64) float64 {
	return (rng.Float64() - 0.5) * level
}

func checkCount(n int) error {
	if n < 0 {
		return fmt.Errorf("%d samples: %w", n, ErrConfiguration)
	}
	return nil
}

// LinearLine draws y = 2·(x/50) + 10 for x in [50, 350) with uniform noise of width noise.
func LinearLine(n int, noise float64, rng *rand.Rand) (Line, error) {
	if err := checkCount(n); err != nil {
		return Line{}, err
	}
	truth := func(x float64) float64 { return 2*(x/50) + 10 }
	line := Line{X: make([]float64, n), Y: make([]float64, n), Truth: truth}
	for ind := 0; ind < n; ind++ {
		x := 50 + rng.Float64()*300
		line.X[ind] = x
		line.Y[ind] = truth(x) + uniformNoise(rng, noise)
	}
	return line, nil
}

// Shape names a curve for PolynomialShape.
type Shape string

const (
	Quadratic   Shape = "quadratic"
	Cubic       Shape = "cubic"
	Sine        Shape = "sin"
	Exponential Shape = "exponential"
)

var shapes = map[Shape]func(x float64) float64{
	Quadratic:   func(x float64) float64 { return 0.5*x*x - 2*x + 3 },
	Cubic:       func(x float64) float64 { return 0.1*x*x*x - 0.5*x*x + x + 2 },
	Sine:        func(x float64) float64 { return 3*math.Sin(x) + 5 },
	Exponential: func(x float64) float64 { return math.Exp(0.3 * x) },
}

// PolynomialShape draws one of the named curves over x in [0, 10) with uniform noise.
func PolynomialShape(shape Shape, n int, noise float64, rng *rand.Rand) (Line, error) {
	truth, ok := shapes[Shape(strings.ToLower(string(shape)))]
	if !ok {
		return Line{}, fmt.Errorf("shape %q: %w", shape, ErrConfiguration)
	}
	if err := checkCount(n); err != nil {
		return Line{}, err
	}
	line := Line{X: make([]float64, n), Y: make([]float64, n), Truth: truth}
	for ind := 0; ind < n; ind++ {
		x := rng.Float64() * 10
		line.X[ind] = x
		line.Y[ind] = truth(x) + uniformNoise(rng, noise)
	}
	return line, nil
}

// SparseTruth returns the weights SparseLinear draws from: 2.5 and 1.5 for the
// first two features and 0 for the rest.
func SparseTruth(p int) []float64 {
	weights := make([]float64, p)
	copy(weights, []float64{2.5, 1.5})
	return weights
}

// SparseIntercept is the intercept of SparseLinear data.
const SparseIntercept = 10.0

// SparseLinear draws n samples with p features uniform in [-1, 1) where only
// the first two features carry signal.
func SparseLinear(n, p int, noise float64, rng *rand.Rand) ([]regression.Sample, error) {
	if err := checkCount(n); err != nil {
		return nil, err
	}
	if p < 1 {
		return nil, fmt.Errorf("%d features: %w", p, ErrConfiguration)
	}
	weights := SparseTruth(p)
	samples := make([]regression.Sample, n)
	for ind := range samples {
		features := make([]float64, p)
		target := SparseIntercept
		for j := range features {
			features[j] = (rng.Float64() - 0.5) * 2
			target += weights[j] * features[j]
		}
		samples[ind] = regression.Sample{Features: features, Target: target + uniformNoise(rng, noise)}
	}
	return samples, nil
}
