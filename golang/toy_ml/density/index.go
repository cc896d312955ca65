package density

import (
	"fmt"
	"sort"
	"strings"

	"gonum.org/v1/gonum/spatial/kdtree"
)

// IndexKind selects how epsilon-neighborhoods are found.
type IndexKind int

const (
	// Linear compares every pair of points.
	Linear IndexKind = iota
	// KDTree answers range queries with a gonum k-d tree.
	KDTree
)

func (k IndexKind) String() string {
	switch k {
	case Linear:
		return "linear"
	case KDTree:
		return "kdtree"
	default:
		return fmt.Sprintf("IndexKind(%d)", int(k))
	}
}

// ParseIndexKind maps "linear" and "kdtree" (also "kd-tree") to an IndexKind.
func ParseIndexKind(name string) (IndexKind, error) {
	switch strings.ToLower(strings.TrimSpace(name)) {
	case "", "linear":
		return Linear, nil
	case "kdtree", "kd-tree":
		return KDTree, nil
	}
	return Linear, fmt.Errorf("index %q: %w", name, ErrConfiguration)
}

// neighborIndex returns the epsilon-neighborhood of a point, itself included,
// as indices in ascending order.
type neighborIndex interface {
	neighbors(ind int) []int
}

func inNeighborhood(a, b Point, epsilon float64) bool {
	return Distance(a, b) <= epsilon
}

type linearIndex struct {
	points  []Point
	epsilon float64
}

func (l linearIndex) neighbors(ind int) []int {
	found := make([]int, 0)
	for other := range l.points {
		if inNeighborhood(l.points[ind], l.points[other], l.epsilon) {
			found = append(found, other)
		}
	}
	return found
}

// treeSlack widens the squared search radius so that rounding in the tree's
// squared distances never drops a point the exact predicate accepts.
const treeSlack = 1e-9

type treeIndex struct {
	points  []Point
	epsilon float64
	tree    *kdtree.Tree
}

func newTreeIndex(points []Point, epsilon float64) *treeIndex {
	nodes := make(indexedPoints, len(points))
	for ind, p := range points {
		nodes[ind] = indexedPoint{Point: p, ind: ind}
	}
	return &treeIndex{
		points:  points,
		epsilon: epsilon,
		tree:    kdtree.New(nodes, false),
	}
}

func (t *treeIndex) neighbors(ind int) []int {
	keeper := kdtree.NewDistKeeper(t.epsilon * t.epsilon * (1 + treeSlack))
	t.tree.NearestSet(keeper, indexedPoint{Point: t.points[ind], ind: ind})

	found := make([]int, 0, len(keeper.Heap))
	for _, candidate := range keeper.Heap {
		// the keeper seeds its heap with a sentinel that carries no point
		if candidate.Comparable == nil {
			continue
		}
		other := candidate.Comparable.(indexedPoint).ind
		if inNeighborhood(t.points[ind], t.points[other], t.epsilon) {
			found = append(found, other)
		}
	}
	sort.Ints(found)
	return found
}

type indexedPoint struct {
	Point
	ind int
}

func (p indexedPoint) coord(d kdtree.Dim) float64 {
	if d == 0 {
		return p.X
	}
	return p.Y
}

// Compare returns the signed distance of p from the plane through c along d.
func (p indexedPoint) Compare(c kdtree.Comparable, d kdtree.Dim) float64 {
	return p.coord(d) - c.(indexedPoint).coord(d)
}

func (p indexedPoint) Dims() int { return 2 }

// Distance is the squared Euclidean distance, as the tree expects.
func (p indexedPoint) Distance(c kdtree.Comparable) float64 {
	q := c.(indexedPoint)
	dx := p.X - q.X
	dy := p.Y - q.Y
	return dx*dx + dy*dy
}

type indexedPoints []indexedPoint

func (p indexedPoints) Index(i int) kdtree.Comparable         { return p[i] }
func (p indexedPoints) Len() int                              { return len(p) }
func (p indexedPoints) Slice(start, end int) kdtree.Interface { return p[start:end] }
func (p indexedPoints) Pivot(d kdtree.Dim) int {
	return plane{indexedPoints: p, dim: d}.pivot()
}

// plane orders points along one dimension for median partitioning.
type plane struct {
	indexedPoints
	dim kdtree.Dim
}

func (p plane) Less(i, j int) bool {
	return p.indexedPoints[i].coord(p.dim) < p.indexedPoints[j].coord(p.dim)
}
func (p plane) Swap(i, j int) {
	p.indexedPoints[i], p.indexedPoints[j] = p.indexedPoints[j], p.indexedPoints[i]
}
func (p plane) Slice(start, end int) kdtree.SortSlicer {
	return plane{indexedPoints: p.indexedPoints[start:end], dim: p.dim}
}
func (p plane) pivot() int {
	return kdtree.Partition(p, kdtree.MedianOfMedians(p))
}
