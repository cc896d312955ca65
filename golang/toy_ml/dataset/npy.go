package dataset

import (
	"fmt"
	"os"

	"github.com/sbinet/npyio"
	"gonum.org/v1/gonum/mat"

	"github.com/tarstars/toy_ml_playground/golang/toy_ml/density"
	"github.com/tarstars/toy_ml_playground/golang/toy_ml/regression"
)

// ReadNpy reads a two-dimensional float array from an npy file.
func ReadNpy(fileName string) (denseMat *mat.Dense, err error) {
	f, err := os.Open(fileName)
	if err != nil {
		return nil, err
	}
	defer func() {
		if closeErr := f.Close(); err == nil {
			err = closeErr
		}
	}()

	r, err := npyio.NewReader(f)
	if err != nil {
		return nil, fmt.Errorf("%s: %w", fileName, err)
	}

	denseMat = &mat.Dense{}
	if err = r.Read(denseMat); err != nil {
		return nil, fmt.Errorf("%s: %w", fileName, err)
	}
	return denseMat, nil
}

// ReadNpyVector reads an npy array of any shape as a flat slice in row-major order.
func ReadNpyVector(fileName string) (values []float64, err error) {
	f, err := os.Open(fileName)
	if err != nil {
		return nil, err
	}
	defer func() {
		if closeErr := f.Close(); err == nil {
			err = closeErr
		}
	}()

	r, err := npyio.NewReader(f)
	if err != nil {
		return nil, fmt.Errorf("%s: %w", fileName, err)
	}
	if err = r.Read(&values); err != nil {
		return nil, fmt.Errorf("%s: %w", fileName, err)
	}
	return values, nil
}

// WriteNpy stores a matrix as an npy file.
func WriteNpy(fileName string, m mat.Matrix) (err error) {
	f, err := os.Create(fileName)
	if err != nil {
		return err
	}
	defer func() {
		if closeErr := f.Close(); err == nil {
			err = closeErr
		}
	}()
	return npyio.Write(f, m)
}

// SamplesFromDense pairs the rows of features with the targets.
func SamplesFromDense(features *mat.Dense, target []float64) ([]regression.Sample, error) {
	h, w := features.Dims()
	if h != len(target) {
		return nil, fmt.Errorf("%d rows and %d targets: %w", h, len(target), ErrConfiguration)
	}
	samples := make([]regression.Sample, h)
	for p := 0; p < h; p++ {
		row := make([]float64, w)
		mat.Row(row, p, features)
		samples[p] = regression.Sample{Features: row, Target: target[p]}
	}
	return samples, nil
}

// DenseFromSamples is the inverse of SamplesFromDense. Rows must share one width.
func DenseFromSamples(samples []regression.Sample) (features *mat.Dense, target []float64, err error) {
	if len(samples) == 0 || len(samples[0].Features) == 0 {
		return nil, nil, fmt.Errorf("no samples: %w", ErrConfiguration)
	}
	w := len(samples[0].Features)
	features = mat.NewDense(len(samples), w, nil)
	target = make([]float64, len(samples))
	for p, sample := range samples {
		if len(sample.Features) != w {
			return nil, nil, fmt.Errorf("row %d has %d features, want %d: %w", p, len(sample.Features), w, ErrConfiguration)
		}
		features.SetRow(p, sample.Features)
		target[p] = sample.Target
	}
	return features, target, nil
}

// PointsFromDense reads an n x 2 matrix as points.
func PointsFromDense(m *mat.Dense) ([]density.Point, error) {
	h, w := m.Dims()
	if w != 2 {
		return nil, fmt.Errorf("%d columns, want 2: %w", w, ErrConfiguration)
	}
	points := make([]density.Point, h)
	for p := range points {
		points[p] = density.Point{X: m.At(p, 0), Y: m.At(p, 1)}
	}
	return points, nil
}

// DenseFromPoints stores points as an n x 2 matrix.
func DenseFromPoints(points []density.Point) (*mat.Dense, error) {
	if len(points) == 0 {
		return nil, fmt.Errorf("no points: %w", ErrConfiguration)
	}
	m := mat.NewDense(len(points), 2, nil)
	for p, point := range points {
		m.Set(p, 0, point.X)
		m.Set(p, 1, point.Y)
	}
	return m, nil
}
