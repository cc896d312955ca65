package density_test

import (
	"math"
	"math/rand"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/tarstars/toy_ml_playground/golang/toy_ml/density"
)

func squareWithOutlier() []density.Point {
	return []density.Point{{X: 0, Y: 0}, {X: 0, Y: 1}, {X: 1, Y: 0}, {X: 1, Y: 1}, {X: 100, Y: 100}}
}

func randomPoints(rng *rand.Rand, n int, scale float64) []density.Point {
	points := make([]density.Point, n)
	for ind := range points {
		// snap to a grid so that duplicates and exact-epsilon distances occur
		points[ind] = density.Point{
			X: math.Round(rng.Float64()*scale*4) / 4,
			Y: math.Round(rng.Float64()*scale*4) / 4,
		}
	}
	return points
}

func TestDBSCANSquareWithOutlier(t *testing.T) {
	assignment, err := density.DBSCAN(squareWithOutlier(), 1.5, 3)
	require.NoError(t, err)

	assert.Equal(t, 1, assignment.NumClusters)
	assert.Equal(t, []int{0, 0, 0, 0, density.NoiseLabel}, assignment.Labels)
	assert.Equal(t, []int{0, 1, 2, 3}, assignment.Members(0))
	assert.Equal(t, density.Noise, assignment.Roles[4])
	assert.Equal(t, density.RoleCounts{Core: 4, Noise: 1}, assignment.Counts())
}

func TestDBSCANBorderPoint(t *testing.T) {
	// the chain end at x=3 is reachable from the core at x=2 but has too few neighbors itself
	points := []density.Point{{X: 3, Y: 0}, {X: 0, Y: 0}, {X: 1, Y: 0}, {X: 2, Y: 0}, {X: 10, Y: 0}}
	assignment, err := density.DBSCAN(points, 1, 3)
	require.NoError(t, err)

	assert.Equal(t, 1, assignment.NumClusters)
	assert.Equal(t, []int{0, 0, 0, 0, density.NoiseLabel}, assignment.Labels)
	assert.Equal(t, []density.Role{density.Border, density.Border, density.Core, density.Core, density.Noise}, assignment.Roles)
	assert.Equal(t, "border", assignment.Roles[0].String())
}

func TestDBSCANEmptyInput(t *testing.T) {
	assignment, err := density.DBSCAN(nil, 1, 2)
	require.NoError(t, err)
	assert.Equal(t, 0, assignment.NumClusters)
	assert.Empty(t, assignment.Labels)
	assert.Empty(t, assignment.Roles)
}

func TestDBSCANMinPtsAboveCountIsAllNoise(t *testing.T) {
	points := squareWithOutlier()
	assignment, err := density.DBSCAN(points, 1000, len(points)+1)
	require.NoError(t, err)
	assert.Equal(t, 0, assignment.NumClusters)
	for ind := range points {
		assert.Equal(t, density.NoiseLabel, assignment.Labels[ind])
		assert.Equal(t, density.Noise, assignment.Roles[ind])
	}
}

func TestDBSCANZeroEpsilon(t *testing.T) {
	points := []density.Point{{X: 1, Y: 1}, {X: 2, Y: 2}, {X: 1, Y: 1}, {X: 3, Y: 3}}

	assignment, err := density.DBSCAN(points, 0, 2)
	require.NoError(t, err)
	assert.Equal(t, 1, assignment.NumClusters)
	assert.Equal(t, []int{0, density.NoiseLabel, 0, density.NoiseLabel}, assignment.Labels)

	assignment, err = density.DBSCAN(points[1:2], 0, 2)
	require.NoError(t, err)
	assert.Equal(t, []int{density.NoiseLabel}, assignment.Labels)
}

func TestDBSCANConfigurationErrors(t *testing.T) {
	points := squareWithOutlier()
	for name, params := range map[string]density.Params{
		"negative epsilon": {Epsilon: -1, MinPts: 2},
		"nan epsilon":      {Epsilon: math.NaN(), MinPts: 2},
		"zero minPts":      {Epsilon: 1, MinPts: 0},
		"unknown index":    {Epsilon: 1, MinPts: 2, Index: density.IndexKind(7)},
	} {
		t.Run(name, func(t *testing.T) {
			_, err := density.DBSCANWith(points, params)
			assert.ErrorIs(t, err, density.ErrConfiguration)
		})
	}

	_, err := density.DBSCAN([]density.Point{{X: math.Inf(1), Y: 0}}, 1, 1)
	assert.ErrorIs(t, err, density.ErrConfiguration)
}

func TestDBSCANProperties(t *testing.T) {
	rng := rand.New(rand.NewSource(5))
	for trial := 0; trial < 20; trial++ {
		points := randomPoints(rng, 80, 10)
		epsilon := 0.25 + rng.Float64()*1.5
		minPts := 1 + rng.Intn(6)

		assignment, err := density.DBSCAN(points, epsilon, minPts)
		require.NoError(t, err)

		for ind := range points {
			neighbors, err := density.RegionQuery(points, ind, epsilon)
			require.NoError(t, err)

			switch assignment.Roles[ind] {
			case density.Core:
				assert.GreaterOrEqual(t, len(neighbors), minPts)
				// neighbors of a core point are clustered, core neighbors in the same cluster
				for _, other := range neighbors {
					assert.NotEqual(t, density.NoiseLabel, assignment.Labels[other])
					if assignment.Roles[other] == density.Core {
						assert.Equal(t, assignment.Labels[ind], assignment.Labels[other])
					}
				}
			case density.Border:
				assert.Less(t, len(neighbors), minPts)
				assert.NotEqual(t, density.NoiseLabel, assignment.Labels[ind])
			case density.Noise:
				assert.Equal(t, density.NoiseLabel, assignment.Labels[ind])
				for _, other := range neighbors {
					assert.NotEqual(t, density.Core, assignment.Roles[other])
				}
			default:
				t.Fatalf("point %d left %v", ind, assignment.Roles[ind])
			}
		}

		// clusters are numbered by their lowest core point
		firstCore := make([]int, 0, assignment.NumClusters)
		for ind, label := range assignment.Labels {
			require.Less(t, label, assignment.NumClusters)
			if assignment.Roles[ind] == density.Core && label == len(firstCore) {
				firstCore = append(firstCore, ind)
			}
		}
		assert.Len(t, firstCore, assignment.NumClusters)
	}
}

func TestDBSCANCoreStructureIgnoresInputOrder(t *testing.T) {
	rng := rand.New(rand.NewSource(11))
	points := randomPoints(rng, 60, 8)
	const epsilon, minPts = 1.0, 4

	base, err := density.DBSCAN(points, epsilon, minPts)
	require.NoError(t, err)

	perm := rng.Perm(len(points))
	shuffled := make([]density.Point, len(points))
	for to, from := range perm {
		shuffled[to] = points[from]
	}
	permuted, err := density.DBSCAN(shuffled, epsilon, minPts)
	require.NoError(t, err)

	assert.Equal(t, base.NumClusters, permuted.NumClusters)
	// roles and the partition of core points do not depend on order; borders may switch clusters
	coreClusters := func(a density.Assignment, original func(int) int) map[int]map[int]bool {
		grouped := make(map[int]map[int]bool)
		for ind, role := range a.Roles {
			if role != density.Core {
				continue
			}
			if grouped[a.Labels[ind]] == nil {
				grouped[a.Labels[ind]] = make(map[int]bool)
			}
			grouped[a.Labels[ind]][original(ind)] = true
		}
		return grouped
	}
	baseCores := coreClusters(base, func(ind int) int { return ind })
	permutedCores := coreClusters(permuted, func(ind int) int { return perm[ind] })
	assert.ElementsMatch(t, mapValues(baseCores), mapValues(permutedCores))

	for to, from := range perm {
		assert.Equal(t, base.Roles[from] == density.Noise, permuted.Roles[to] == density.Noise)
	}
}

func TestDBSCANPartitionIgnoresInputOrderWithoutBorders(t *testing.T) {
	rng := rand.New(rand.NewSource(17))
	for trial := 0; trial < 10; trial++ {
		points := randomPoints(rng, 80, 10)
		// with minPts 1 or 2 every clustered point is core
		minPts := 1 + trial%2

		base, err := density.DBSCAN(points, 1, minPts)
		require.NoError(t, err)
		require.Zero(t, base.Counts().Border)

		perm := rng.Perm(len(points))
		shuffled := make([]density.Point, len(points))
		for to, from := range perm {
			shuffled[to] = points[from]
		}
		permuted, err := density.DBSCAN(shuffled, 1, minPts)
		require.NoError(t, err)

		restored := density.Assignment{
			Labels:      make([]int, len(points)),
			Roles:       make([]density.Role, len(points)),
			NumClusters: permuted.NumClusters,
		}
		for to, from := range perm {
			restored.Labels[from] = permuted.Labels[to]
			restored.Roles[from] = permuted.Roles[to]
		}
		assert.Equal(t, base.Partition(), restored.Partition(), "trial %d", trial)
		assert.Equal(t, base.Roles, restored.Roles, "trial %d", trial)
	}
}

func mapValues(m map[int]map[int]bool) []map[int]bool {
	values := make([]map[int]bool, 0, len(m))
	for _, v := range m {
		values = append(values, v)
	}
	return values
}

func TestKDTreeMatchesLinearScan(t *testing.T) {
	rng := rand.New(rand.NewSource(23))
	for trial := 0; trial < 15; trial++ {
		points := randomPoints(rng, 150, 12)
		params := density.Params{Epsilon: float64(rng.Intn(8)) * 0.25, MinPts: 1 + rng.Intn(5)}

		linear, err := density.DBSCANWith(points, params)
		require.NoError(t, err)
		params.Index = density.KDTree
		tree, err := density.DBSCANWith(points, params)
		require.NoError(t, err)

		assert.Equal(t, linear, tree, "epsilon %g minPts %d", params.Epsilon, params.MinPts)
	}
}

func TestRegionQuery(t *testing.T) {
	points := squareWithOutlier()

	neighbors, err := density.RegionQuery(points, 3, 1)
	require.NoError(t, err)
	assert.Equal(t, []int{1, 2, 3}, neighbors)

	_, err = density.RegionQuery(points, 5, 1)
	assert.ErrorIs(t, err, density.ErrOutOfRange)
	_, err = density.RegionQuery(points, 0, -1)
	assert.ErrorIs(t, err, density.ErrConfiguration)
}

func TestParseIndexKind(t *testing.T) {
	kind, err := density.ParseIndexKind("KD-Tree")
	require.NoError(t, err)
	assert.Equal(t, density.KDTree, kind)

	kind, err = density.ParseIndexKind("")
	require.NoError(t, err)
	assert.Equal(t, density.Linear, kind)

	_, err = density.ParseIndexKind("grid")
	assert.ErrorIs(t, err, density.ErrConfiguration)
}
