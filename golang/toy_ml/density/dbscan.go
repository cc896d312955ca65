package density

import (
	"fmt"
	"math"
)

// Params configures a DBSCAN run.
type Params struct {
	// Epsilon is the inclusive neighborhood radius.
	Epsilon float64 `json:"epsilon"`
	// MinPts is the neighborhood size, the point itself included, that makes a point core.
	MinPts int       `json:"min_pts"`
	Index  IndexKind `json:"index"`
}

func (p Params) validate() error {
	if math.IsNaN(p.Epsilon) || p.Epsilon < 0 {
		return fmt.Errorf("epsilon %v: %w", p.Epsilon, ErrConfiguration)
	}
	if p.MinPts < 1 {
		return fmt.Errorf("minPts %d: %w", p.MinPts, ErrConfiguration)
	}
	if p.Index != Linear && p.Index != KDTree {
		return fmt.Errorf("%v: %w", p.Index, ErrConfiguration)
	}
	return nil
}

func validatePoints(points []Point) error {
	for ind, p := range points {
		if math.IsNaN(p.X) || math.IsInf(p.X, 0) || math.IsNaN(p.Y) || math.IsInf(p.Y, 0) {
			return fmt.Errorf("point %d (%v, %v): %w", ind, p.X, p.Y, ErrConfiguration)
		}
	}
	return nil
}

// DBSCAN clusters points with a linear-scan neighborhood search.
func DBSCAN(points []Point, epsilon float64, minPts int) (Assignment, error) {
	return DBSCANWith(points, Params{Epsilon: epsilon, MinPts: minPts})
}

// DBSCANWith clusters points by density. Points are seeded in index order;
// every core point starts a cluster that grows breadth-first through the
// neighborhoods of the core points it reaches. Clusters are numbered from 0 in
// order of discovery. Points reached by no cluster keep NoiseLabel.
func DBSCANWith(points []Point, params Params) (Assignment, error) {
	if err := params.validate(); err != nil {
		return Assignment{}, densityErrorf(opDBSCAN, err)
	}
	if err := validatePoints(points); err != nil {
		return Assignment{}, densityErrorf(opDBSCAN, err)
	}

	n := len(points)
	labels := make([]int, n)
	roles := make([]Role, n)
	for ind := range labels {
		labels[ind] = NoiseLabel
	}
	if n == 0 {
		return Assignment{Labels: labels, Roles: roles}, nil
	}

	var index neighborIndex = linearIndex{points: points, epsilon: params.Epsilon}
	if params.Index == KDTree {
		index = newTreeIndex(points, params.Epsilon)
	}

	clusterID := 0
	for seed := 0; seed < n; seed++ {
		if roles[seed] != Unvisited {
			continue
		}
		seedNeighbors := index.neighbors(seed)
		if len(seedNeighbors) < params.MinPts {
			// may still be claimed as a border point later
			roles[seed] = Noise
			continue
		}

		roles[seed] = Core
		labels[seed] = clusterID
		growCluster(index, seed, seedNeighbors, clusterID, params.MinPts, labels, roles)
		clusterID++
	}

	return Assignment{Labels: labels, Roles: roles, NumClusters: clusterID}, nil
}

func growCluster(index neighborIndex, seed int, seedNeighbors []int, clusterID, minPts int, labels []int, roles []Role) {
	queue := NewWorklist(len(labels))
	queue.Push(seed)
	queue.PushAll(seedNeighbors)
	queue.GetNext()

	for queue.HasNext() {
		ind := queue.GetNext()
		switch roles[ind] {
		case Noise:
			roles[ind] = Border
			labels[ind] = clusterID
		case Unvisited:
			labels[ind] = clusterID
			neighbors := index.neighbors(ind)
			if len(neighbors) >= minPts {
				roles[ind] = Core
				queue.PushAll(neighbors)
			} else {
				roles[ind] = Border
			}
		}
	}
}

// RegionQuery returns the indices of all points within epsilon of points[ind],
// ind itself included, in ascending order.
func RegionQuery(points []Point, ind int, epsilon float64) ([]int, error) {
	if ind < 0 || ind >= len(points) {
		return nil, densityErrorf(opRegionQuery, fmt.Errorf("index %d of %d: %w", ind, len(points), ErrOutOfRange))
	}
	if math.IsNaN(epsilon) || epsilon < 0 {
		return nil, densityErrorf(opRegionQuery, fmt.Errorf("epsilon %v: %w", epsilon, ErrConfiguration))
	}
	return linearIndex{points: points, epsilon: epsilon}.neighbors(ind), nil
}
