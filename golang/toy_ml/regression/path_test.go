package regression_test

import (
	"math/rand"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/tarstars/toy_ml_playground/golang/toy_ml/regression"
)

func TestRegularizationPathKeepsOrder(t *testing.T) {
	rng := rand.New(rand.NewSource(17))
	samples := randomSamples(rng, 40, 5, []float64{2.5, 1.5}, 10, 1)
	alphas := []float64{64, 0.1, 8, 1, 32, 0}

	for _, penalty := range []regression.Penalty{regression.Ridge, regression.Lasso} {
		sequential, err := regression.RegularizationPath(samples, penalty, alphas, 1)
		require.NoError(t, err)
		parallel, err := regression.RegularizationPath(samples, penalty, alphas, 4)
		require.NoError(t, err)

		require.Len(t, parallel, len(alphas))
		for ind, point := range parallel {
			assert.Equal(t, alphas[ind], point.Alpha)
			assert.Equal(t, sequential[ind], point, "%v alpha %g", penalty, point.Alpha)

			direct, err := regression.Fit(samples, penalty, point.Alpha)
			require.NoError(t, err)
			assert.Equal(t, direct, point.Model)
		}
	}
}

func TestRegularizationPathRejectsBadAlpha(t *testing.T) {
	samples := []regression.Sample{{Features: []float64{1}, Target: 1}, {Features: []float64{2}, Target: 2}}
	_, err := regression.RegularizationPath(samples, regression.Lasso, []float64{1, -1}, 2)
	assert.ErrorIs(t, err, regression.ErrConfiguration)
}

func TestParsePenalty(t *testing.T) {
	for name, want := range map[string]regression.Penalty{
		"ridge": regression.Ridge,
		"OLS":   regression.OLS,
		"lasso": regression.Lasso,
		" l1 ":  regression.Lasso,
	} {
		got, err := regression.ParsePenalty(name)
		require.NoError(t, err)
		assert.Equal(t, want, got)
	}
	_, err := regression.ParsePenalty("elastic")
	assert.ErrorIs(t, err, regression.ErrConfiguration)
	assert.Equal(t, "ols", regression.OLS.String())
}

func TestFitOLSRejectsAlpha(t *testing.T) {
	samples := []regression.Sample{
		{Features: []float64{1}, Target: 3},
		{Features: []float64{2}, Target: 5},
		{Features: []float64{3}, Target: 7},
	}

	_, err := regression.Fit(samples, regression.OLS, 5)
	assert.ErrorIs(t, err, regression.ErrConfiguration)
	_, err = regression.RegularizationPath(samples, regression.OLS, []float64{0, 5}, 2)
	assert.ErrorIs(t, err, regression.ErrConfiguration)

	model, err := regression.Fit(samples, regression.OLS, 0)
	require.NoError(t, err)
	assert.InDeltaSlice(t, []float64{2}, model.Weights, 1e-12)
	assert.InDelta(t, 1, model.Intercept, 1e-12)
}
