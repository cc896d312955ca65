package density

import (
	"fmt"
	"math"
	"sort"
)

// NoiseLabel is the label of points that belong to no cluster.
const NoiseLabel = -1

// Point is a 2D coordinate; its identity is its index in the input.
type Point struct {
	X, Y float64
}

// Distance is the Euclidean distance between two points.
func Distance(a, b Point) float64 {
	dx := a.X - b.X
	dy := a.Y - b.Y
	return math.Sqrt(dx*dx + dy*dy)
}

// Role is the DBSCAN classification of a point.
type Role int

const (
	// Unvisited only exists while the algorithm runs.
	Unvisited Role = iota
	Core
	Border
	Noise
)

func (r Role) String() string {
	switch r {
	case Unvisited:
		return "unvisited"
	case Core:
		return "core"
	case Border:
		return "border"
	case Noise:
		return "noise"
	default:
		return fmt.Sprintf("Role(%d)", int(r))
	}
}

// Assignment is the result of one clustering pass. Labels and Roles are
// indexed like the input points.
type Assignment struct {
	Labels      []int
	Roles       []Role
	NumClusters int
}

// Members returns the indices of points labeled with the cluster id, ascending.
func (a Assignment) Members(clusterID int) []int {
	members := make([]int, 0)
	for ind, label := range a.Labels {
		if label == clusterID {
			members = append(members, ind)
		}
	}
	return members
}

// RoleCounts tallies points per role.
type RoleCounts struct {
	Core, Border, Noise int
}

// Counts returns how many points ended up core, border and noise.
func (a Assignment) Counts() (counts RoleCounts) {
	for _, role := range a.Roles {
		switch role {
		case Core:
			counts.Core++
		case Border:
			counts.Border++
		case Noise:
			counts.Noise++
		}
	}
	return
}

// Partition returns the clusters as sets of point indices, ordered by their
// smallest member. Two assignments that only differ by cluster numbering have
// equal partitions. Noise points are not part of any set.
func (a Assignment) Partition() [][]int {
	groups := make(map[int][]int, a.NumClusters)
	for ind, label := range a.Labels {
		if label != NoiseLabel {
			groups[label] = append(groups[label], ind)
		}
	}
	partition := make([][]int, 0, len(groups))
	for _, members := range groups {
		partition = append(partition, members)
	}
	sort.Slice(partition, func(i, j int) bool { return partition[i][0] < partition[j][0] })
	return partition
}
