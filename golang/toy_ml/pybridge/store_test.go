// SPDX-License-Identifier: Apache-2.0

package main

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/tarstars/toy_ml_playground/golang/toy_ml/density"
	"github.com/tarstars/toy_ml_playground/golang/toy_ml/hierarchy"
	"github.com/tarstars/toy_ml_playground/golang/toy_ml/regression"
)

// y = 1 + 2·x0 − x1 on a small grid.
func planeRows() (features, target []float64) {
	for x0 := 0.0; x0 < 4; x0++ {
		for x1 := 0.0; x1 < 3; x1++ {
			features = append(features, x0, x1)
			target = append(target, 1+2*x0-x1)
		}
	}
	return features, target
}

func TestTrainPredictScoreFree(t *testing.T) {
	features, target := planeRows()
	rows := len(target)

	handle, err := trainRidge(features, rows, 2, target, 0)
	require.NoError(t, err)
	require.NotZero(t, handle)
	defer freeModel(handle)

	model, err := fetchModel(handle)
	require.NoError(t, err)
	assert.InDeltaSlice(t, []float64{2, -1}, model.Weights, 1e-9)
	assert.InDelta(t, 1, model.Intercept, 1e-9)

	out := make([]float64, rows)
	require.NoError(t, predictRows(handle, features, rows, 2, out))
	assert.InDeltaSlice(t, target, out, 1e-9)

	score, err := scoreRows(handle, features, rows, 2, target)
	require.NoError(t, err)
	assert.InDelta(t, 1, score, 1e-12)

	assert.ErrorIs(t, predictRows(handle, features, rows, 2, out[:1]), regression.ErrDimensionMismatch)
	assert.ErrorIs(t, predictRows(handle, features, rows, 3, out), regression.ErrInvalidInput)

	freeModel(handle)
	_, err = fetchModel(handle)
	assert.ErrorIs(t, err, errInvalidHandle)
}

func TestTrainLassoShrinks(t *testing.T) {
	features, target := planeRows()
	rows := len(target)

	loose, err := trainLasso(features, rows, 2, target, regression.LassoParams{Alpha: 0, MaxIterations: 5000, Tolerance: 1e-10})
	require.NoError(t, err)
	defer freeModel(loose)
	tight, err := trainLasso(features, rows, 2, target, regression.LassoParams{Alpha: 1e6, MaxIterations: 100, Tolerance: 1e-6})
	require.NoError(t, err)
	defer freeModel(tight)

	looseModel, err := fetchModel(loose)
	require.NoError(t, err)
	assert.InDeltaSlice(t, []float64{2, -1}, looseModel.Weights, 1e-4)

	tightModel, err := fetchModel(tight)
	require.NoError(t, err)
	assert.Zero(t, tightModel.NonZero())
	assert.NotEqual(t, loose, tight)
}

func TestTrainRejectsBadInput(t *testing.T) {
	_, err := trainRidge([]float64{1, 2, 3}, 2, 2, []float64{1, 2}, 0)
	assert.ErrorIs(t, err, regression.ErrInvalidInput)

	_, err = trainRidge(nil, 0, 2, nil, 0)
	assert.ErrorIs(t, err, regression.ErrInvalidInput)

	features, target := planeRows()
	_, err = trainRidge(features, len(target), 2, target, -1)
	assert.Error(t, err)

	_, err = scoreRows(0, features, len(target), 2, target)
	assert.ErrorIs(t, err, errInvalidHandle)
}

func TestLastError(t *testing.T) {
	setLastError(errInvalidHandle)
	assert.Equal(t, errInvalidHandle.Error(), getLastError())
	setLastError(nil)
	assert.Empty(t, getLastError())
}

func TestDbscanRows(t *testing.T) {
	coords := []float64{
		0, 0, 0, 1, 1, 0, 1, 1,
		10, 10,
	}
	n := len(coords) / 2
	labels := make([]int, n)
	roles := make([]int, n)

	for _, index := range []density.IndexKind{density.Linear, density.KDTree} {
		numClusters, err := dbscanRows(coords, n, density.Params{Epsilon: 1.5, MinPts: 3, Index: index}, labels, roles)
		require.NoError(t, err)
		assert.Equal(t, 1, numClusters)
		assert.Equal(t, []int{0, 0, 0, 0, density.NoiseLabel}, labels)
		assert.Equal(t, []int{1, 1, 1, 1, 3}, roles)
	}

	_, err := dbscanRows(coords[:3], n, density.Params{Epsilon: 1, MinPts: 1}, labels, roles)
	assert.ErrorIs(t, err, density.ErrConfiguration)
	_, err = dbscanRows(coords, n, density.Params{Epsilon: 1, MinPts: 1}, labels[:2], roles)
	assert.ErrorIs(t, err, density.ErrConfiguration)
	_, err = dbscanRows(coords, n, density.Params{Epsilon: -1, MinPts: 1}, labels, roles)
	assert.ErrorIs(t, err, density.ErrConfiguration)
}

func TestAgglomerativeRows(t *testing.T) {
	coords := []float64{0, 0, 1, 0, 5, 0, 6, 0, 20, 0}
	labels := make([]int, 5)

	require.NoError(t, agglomerativeRows(coords, 5, hierarchy.Params{Linkage: hierarchy.Single}, 3, labels))
	assert.Equal(t, []int{0, 0, 1, 1, 2}, labels)

	require.NoError(t, agglomerativeRows(coords, 5, hierarchy.Params{Linkage: hierarchy.Ward}, 1, labels))
	assert.Equal(t, []int{0, 0, 0, 0, 0}, labels)

	assert.ErrorIs(t, agglomerativeRows(coords, 5, hierarchy.Params{}, 6, labels), hierarchy.ErrConfiguration)
	assert.ErrorIs(t, agglomerativeRows(coords, 5, hierarchy.Params{}, 2, labels[:4]), hierarchy.ErrConfiguration)
}
