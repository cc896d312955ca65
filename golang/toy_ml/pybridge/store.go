// SPDX-License-Identifier: Apache-2.0

package main

import (
	"errors"
	"fmt"
	"sync"

	"github.com/tarstars/toy_ml_playground/golang/toy_ml/density"
	"github.com/tarstars/toy_ml_playground/golang/toy_ml/hierarchy"
	"github.com/tarstars/toy_ml_playground/golang/toy_ml/regression"
)

var (
	handleMu   sync.Mutex
	nextHandle uint64 = 1
	models            = make(map[uint64]*regression.LinearModel)

	lastErrorMu sync.Mutex
	lastError   string
)

var errInvalidHandle = errors.New("invalid model handle")

func setLastError(err error) {
	lastErrorMu.Lock()
	defer lastErrorMu.Unlock()
	if err != nil {
		lastError = err.Error()
	} else {
		lastError = ""
	}
}

func getLastError() string {
	lastErrorMu.Lock()
	defer lastErrorMu.Unlock()
	return lastError
}

func storeModel(model regression.LinearModel) uint64 {
	handleMu.Lock()
	defer handleMu.Unlock()
	handle := nextHandle
	models[handle] = &model
	nextHandle++
	return handle
}

func fetchModel(handle uint64) (regression.LinearModel, error) {
	handleMu.Lock()
	defer handleMu.Unlock()
	model, ok := models[handle]
	if !ok {
		return regression.LinearModel{}, errInvalidHandle
	}
	return *model, nil
}

func freeModel(handle uint64) {
	handleMu.Lock()
	defer handleMu.Unlock()
	delete(models, handle)
}

//samplesFromRows cuts row-major feature data into samples.
func samplesFromRows(features []float64, rows, cols int, target []float64) ([]regression.Sample, error) {
	if rows <= 0 || cols <= 0 {
		return nil, fmt.Errorf("matrix %dx%d: %w", rows, cols, regression.ErrInvalidInput)
	}
	if len(features) != rows*cols || len(target) != rows {
		return nil, fmt.Errorf("%d values for a %dx%d matrix and %d targets: %w",
			len(features), rows, cols, len(target), regression.ErrInvalidInput)
	}
	samples := make([]regression.Sample, rows)
	for p := range samples {
		samples[p] = regression.Sample{Features: features[p*cols : (p+1)*cols : (p+1)*cols], Target: target[p]}
	}
	return samples, nil
}

func pointsFromRows(coords []float64, n int) ([]density.Point, error) {
	if n < 0 || len(coords) != 2*n {
		return nil, fmt.Errorf("%d coordinates for %d points: %w", len(coords), n, density.ErrConfiguration)
	}
	points := make([]density.Point, n)
	for p := range points {
		points[p] = density.Point{X: coords[2*p], Y: coords[2*p+1]}
	}
	return points, nil
}

func trainRidge(features []float64, rows, cols int, target []float64, alpha float64) (uint64, error) {
	samples, err := samplesFromRows(features, rows, cols, target)
	if err != nil {
		return 0, err
	}
	model, err := regression.FitRidge(samples, alpha)
	if err != nil {
		return 0, err
	}
	return storeModel(model), nil
}

func trainLasso(features []float64, rows, cols int, target []float64, params regression.LassoParams) (uint64, error) {
	samples, err := samplesFromRows(features, rows, cols, target)
	if err != nil {
		return 0, err
	}
	model, err := regression.FitLassoWith(samples, params)
	if err != nil {
		return 0, err
	}
	return storeModel(model), nil
}

func predictRows(handle uint64, features []float64, rows, cols int, out []float64) error {
	model, err := fetchModel(handle)
	if err != nil {
		return err
	}
	if len(out) != rows {
		return fmt.Errorf("output has room for %d of %d rows: %w", len(out), rows, regression.ErrDimensionMismatch)
	}
	samples, err := samplesFromRows(features, rows, cols, make([]float64, rows))
	if err != nil {
		return err
	}
	for p, sample := range samples {
		if out[p], err = regression.Predict(model, sample.Features); err != nil {
			return err
		}
	}
	return nil
}

func scoreRows(handle uint64, features []float64, rows, cols int, target []float64) (float64, error) {
	model, err := fetchModel(handle)
	if err != nil {
		return 0, err
	}
	samples, err := samplesFromRows(features, rows, cols, target)
	if err != nil {
		return 0, err
	}
	return regression.Score(model, samples)
}

//dbscanRows fills labels and roles, roles coded 1 core, 2 border, 3 noise.
func dbscanRows(coords []float64, n int, params density.Params, labels, roles []int) (int, error) {
	points, err := pointsFromRows(coords, n)
	if err != nil {
		return 0, err
	}
	if len(labels) != n || len(roles) != n {
		return 0, fmt.Errorf("output has room for %d labels and %d roles of %d: %w", len(labels), len(roles), n, density.ErrConfiguration)
	}
	assignment, err := density.DBSCANWith(points, params)
	if err != nil {
		return 0, err
	}
	copy(labels, assignment.Labels)
	for p, role := range assignment.Roles {
		roles[p] = int(role)
	}
	return assignment.NumClusters, nil
}

func agglomerativeRows(coords []float64, n int, params hierarchy.Params, k int, labels []int) error {
	points, err := pointsFromRows(coords, n)
	if err != nil {
		return err
	}
	if len(labels) != n {
		return fmt.Errorf("output has room for %d of %d labels: %w", len(labels), n, hierarchy.ErrConfiguration)
	}
	dendrogram, err := hierarchy.Cluster(points, params)
	if err != nil {
		return err
	}
	cut, err := dendrogram.Cut(k)
	if err != nil {
		return err
	}
	copy(labels, cut)
	return nil
}
