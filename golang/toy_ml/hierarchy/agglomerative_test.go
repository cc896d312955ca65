package hierarchy_test

import (
	"math"
	"math/rand"
	"os"
	"path/filepath"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/tarstars/toy_ml_playground/golang/toy_ml/density"
	"github.com/tarstars/toy_ml_playground/golang/toy_ml/hierarchy"
)

func linePoints() []density.Point {
	return []density.Point{{X: 0}, {X: 1}, {X: 5}, {X: 6}, {X: 20}}
}

func TestClusterSingleLinkage(t *testing.T) {
	dendrogram, err := hierarchy.Cluster(linePoints(), hierarchy.Params{Linkage: hierarchy.Single})
	require.NoError(t, err)

	// the tie between {0,1} and {5,6} goes to the pair found first
	assert.Equal(t, []hierarchy.Merge{
		{Left: 0, Right: 1, ID: 5, Height: 1, Size: 2},
		{Left: 2, Right: 3, ID: 6, Height: 1, Size: 2},
		{Left: 5, Right: 6, ID: 7, Height: 4, Size: 4},
		{Left: 4, Right: 7, ID: 8, Height: 14, Size: 5},
	}, dendrogram.Merges)
	assert.Equal(t, 8, dendrogram.Root())
}

func TestClusterLinkageHeights(t *testing.T) {
	for _, tc := range []struct {
		linkage hierarchy.Linkage
		heights []float64
	}{
		{hierarchy.Single, []float64{1, 1, 4, 14}},
		{hierarchy.Complete, []float64{1, 1, 6, 20}},
		{hierarchy.Average, []float64{1, 1, 5, 17}},
		{hierarchy.Ward, []float64{0.5, 0.5, 25, 231.2}},
	} {
		t.Run(tc.linkage.String(), func(t *testing.T) {
			dendrogram, err := hierarchy.Cluster(linePoints(), hierarchy.Params{Linkage: tc.linkage})
			require.NoError(t, err)
			assert.InDeltaSlice(t, tc.heights, dendrogram.Heights(), 1e-9)
		})
	}
}

func TestClusterMetrics(t *testing.T) {
	points := []density.Point{{X: 0, Y: 0}, {X: 1, Y: 1}, {X: 3, Y: 0}}

	manhattan, err := hierarchy.Cluster(points, hierarchy.Params{Linkage: hierarchy.Single, Metric: hierarchy.Manhattan})
	require.NoError(t, err)
	assert.InDeltaSlice(t, []float64{2, 3}, manhattan.Heights(), 1e-12)

	euclidean, err := hierarchy.Cluster(points, hierarchy.Params{Linkage: hierarchy.Single, Metric: hierarchy.Euclidean})
	require.NoError(t, err)
	assert.InDeltaSlice(t, []float64{math.Sqrt2, math.Sqrt(5)}, euclidean.Heights(), 1e-12)
}

func TestClusterSmallInputs(t *testing.T) {
	empty, err := hierarchy.Cluster(nil, hierarchy.Params{})
	require.NoError(t, err)
	assert.Equal(t, 0, empty.N)
	assert.Empty(t, empty.Merges)

	single, err := hierarchy.Cluster([]density.Point{{X: 3, Y: 4}}, hierarchy.Params{Linkage: hierarchy.Ward})
	require.NoError(t, err)
	assert.Empty(t, single.Merges)
	labels, err := single.Cut(1)
	require.NoError(t, err)
	assert.Equal(t, []int{0}, labels)
}

func TestClusterConfigurationErrors(t *testing.T) {
	points := linePoints()
	for name, params := range map[string]hierarchy.Params{
		"linkage": {Linkage: hierarchy.Linkage(9)},
		"metric":  {Metric: hierarchy.Metric(-1)},
	} {
		t.Run(name, func(t *testing.T) {
			_, err := hierarchy.Cluster(points, params)
			assert.ErrorIs(t, err, hierarchy.ErrConfiguration)
		})
	}

	_, err := hierarchy.Cluster([]density.Point{{X: math.NaN()}}, hierarchy.Params{})
	assert.ErrorIs(t, err, hierarchy.ErrConfiguration)
}

func TestClusterProperties(t *testing.T) {
	rng := rand.New(rand.NewSource(3))
	points := make([]density.Point, 40)
	for ind := range points {
		points[ind] = density.Point{X: rng.Float64() * 100, Y: rng.Float64() * 100}
	}

	for _, linkage := range []hierarchy.Linkage{hierarchy.Single, hierarchy.Complete, hierarchy.Average, hierarchy.Ward} {
		dendrogram, err := hierarchy.Cluster(points, hierarchy.Params{Linkage: linkage})
		require.NoError(t, err)
		require.Len(t, dendrogram.Merges, len(points)-1)
		assert.Equal(t, len(points), dendrogram.Merges[len(points)-2].Size)

		for ind, merge := range dendrogram.Merges {
			assert.Equal(t, len(points)+ind, merge.ID)
			if ind > 0 && linkage != hierarchy.Ward {
				assert.GreaterOrEqual(t, merge.Height, dendrogram.Merges[ind-1].Height-1e-12, "%v", linkage)
			}
		}

		for k := 1; k <= len(points); k++ {
			labels, err := dendrogram.Cut(k)
			require.NoError(t, err)
			distinct := make(map[int]bool)
			for _, label := range labels {
				distinct[label] = true
			}
			assert.Len(t, distinct, k)
			assert.Equal(t, 0, labels[0])
		}
	}
}

func TestCut(t *testing.T) {
	dendrogram, err := hierarchy.Cluster(linePoints(), hierarchy.Params{Linkage: hierarchy.Single})
	require.NoError(t, err)

	for k, want := range map[int][]int{
		1: {0, 0, 0, 0, 0},
		2: {0, 0, 0, 0, 1},
		3: {0, 0, 1, 1, 2},
		5: {0, 1, 2, 3, 4},
	} {
		labels, err := dendrogram.Cut(k)
		require.NoError(t, err)
		assert.Equal(t, want, labels, "k = %d", k)
	}

	for _, k := range []int{0, 6} {
		_, err = dendrogram.Cut(k)
		assert.ErrorIs(t, err, hierarchy.ErrConfiguration)
	}

	corrupt := dendrogram
	corrupt.Merges = corrupt.Merges[:2]
	_, err = corrupt.Cut(2)
	assert.ErrorIs(t, err, hierarchy.ErrCorruptDendrogram)
}

func TestDendrogramSaveAndLoad(t *testing.T) {
	dendrogram, err := hierarchy.Cluster(linePoints(), hierarchy.Params{Linkage: hierarchy.Average, Metric: hierarchy.Manhattan})
	require.NoError(t, err)

	filename := filepath.Join(t.TempDir(), "dendrogram.json")
	require.NoError(t, dendrogram.Save(filename))
	loaded, err := hierarchy.LoadDendrogram(filename)
	require.NoError(t, err)
	assert.Equal(t, dendrogram, loaded)
}

func TestRender(t *testing.T) {
	dendrogram, err := hierarchy.Cluster(linePoints(), hierarchy.Params{Linkage: hierarchy.Complete})
	require.NoError(t, err)

	filename := filepath.Join(t.TempDir(), "dendrogram.dot")
	require.NoError(t, dendrogram.Render(filename, "dot"))
	content, err := os.ReadFile(filename)
	require.NoError(t, err)
	assert.Contains(t, string(content), "node_8")
	assert.Contains(t, string(content), "node_4")

	assert.ErrorIs(t, dendrogram.Render(filename, "bmp"), hierarchy.ErrConfiguration)
}

func TestParseLinkageAndMetric(t *testing.T) {
	linkage, err := hierarchy.ParseLinkage("Ward")
	require.NoError(t, err)
	assert.Equal(t, hierarchy.Ward, linkage)
	_, err = hierarchy.ParseLinkage("centroid")
	assert.ErrorIs(t, err, hierarchy.ErrConfiguration)

	metric, err := hierarchy.ParseMetric("manhattan")
	require.NoError(t, err)
	assert.Equal(t, hierarchy.Manhattan, metric)
	_, err = hierarchy.ParseMetric("cosine")
	assert.ErrorIs(t, err, hierarchy.ErrConfiguration)
}
