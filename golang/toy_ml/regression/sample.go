package regression

import (
	"fmt"
	"math"

	"gonum.org/v1/gonum/mat"
)

// Sample is one feature vector with its regression target.
type Sample struct {
	Features []float64
	Target   float64
}

// validatedDimensions checks the consistency of a sample set and returns the height
//(the number of samples) and the width (the number of features).
func validatedDimensions(samples []Sample) (h, w int, err error) {
	h = len(samples)
	if h == 0 {
		return 0, 0, fmt.Errorf("no samples: %w", ErrInvalidInput)
	}
	w = len(samples[0].Features)
	if w == 0 {
		return 0, 0, fmt.Errorf("samples have no features: %w", ErrInvalidInput)
	}
	for p, sample := range samples {
		if len(sample.Features) != w {
			return 0, 0, fmt.Errorf("sample %d has %d features, want %d: %w", p, len(sample.Features), w, ErrInvalidInput)
		}
		if !isFinite(sample.Target) {
			return 0, 0, fmt.Errorf("sample %d has non-finite target: %w", p, ErrInvalidInput)
		}
		for q, v := range sample.Features {
			if !isFinite(v) {
				return 0, 0, fmt.Errorf("sample %d feature %d is not finite: %w", p, q, ErrInvalidInput)
			}
		}
	}
	return h, w, nil
}

func validateAlpha(alpha float64) error {
	if math.IsNaN(alpha) || math.IsInf(alpha, 0) || alpha < 0 {
		return fmt.Errorf("alpha %v must be finite and non-negative: %w", alpha, ErrConfiguration)
	}
	return nil
}

// designMatrix copies features and targets of the samples into dense storage.
func designMatrix(samples []Sample, h, w int) (features *mat.Dense, target *mat.VecDense) {
	features = mat.NewDense(h, w, nil)
	target = mat.NewVecDense(h, nil)
	for p, sample := range samples {
		features.SetRow(p, sample.Features)
		target.SetVec(p, sample.Target)
	}
	return
}

func isFinite(v float64) bool {
	return !math.IsNaN(v) && !math.IsInf(v, 0)
}
