package hierarchy

import (
	"fmt"
	"math"
	"strings"

	"github.com/tarstars/toy_ml_playground/golang/toy_ml/density"
)

//Linkage is the rule that turns point distances into a cluster distance.
type Linkage int

const (
	Single Linkage = iota
	Complete
	Average
	// Ward is n1·n2/(n1+n2)·d(c1, c2)² for cluster centroids c1 and c2.
	Ward
)

func (l Linkage) String() string {
	switch l {
	case Single:
		return "single"
	case Complete:
		return "complete"
	case Average:
		return "average"
	case Ward:
		return "ward"
	default:
		return fmt.Sprintf("Linkage(%d)", int(l))
	}
}

//ParseLinkage maps a linkage name to a Linkage. The empty name is Average.
func ParseLinkage(name string) (Linkage, error) {
	switch strings.ToLower(strings.TrimSpace(name)) {
	case "single":
		return Single, nil
	case "complete":
		return Complete, nil
	case "", "average":
		return Average, nil
	case "ward":
		return Ward, nil
	}
	return Average, fmt.Errorf("linkage %q: %w", name, ErrConfiguration)
}

//Params configures an agglomerative clustering run.
type Params struct {
	Linkage Linkage `json:"linkage"`
	Metric  Metric  `json:"metric"`
}

func (p Params) validate() error {
	if p.Linkage < Single || p.Linkage > Ward {
		return fmt.Errorf("%v: %w", p.Linkage, ErrConfiguration)
	}
	if p.Metric != Euclidean && p.Metric != Manhattan {
		return fmt.Errorf("%v: %w", p.Metric, ErrConfiguration)
	}
	return nil
}

type activeCluster struct {
	id      int
	members []int
	cx, cy  float64
}

func leafCluster(ind int, p density.Point) activeCluster {
	return activeCluster{id: ind, members: []int{ind}, cx: p.X, cy: p.Y}
}

func mergeClusters(id int, left, right activeCluster) activeCluster {
	n1 := float64(len(left.members))
	n2 := float64(len(right.members))
	members := make([]int, 0, len(left.members)+len(right.members))
	members = append(members, left.members...)
	members = append(members, right.members...)
	return activeCluster{
		id:      id,
		members: members,
		cx:      (left.cx*n1 + right.cx*n2) / (n1 + n2),
		cy:      (left.cy*n1 + right.cy*n2) / (n1 + n2),
	}
}

type linker struct {
	params    Params
	distances *pointDistances
}

func (l linker) distance(c1, c2 activeCluster) float64 {
	switch l.params.Linkage {
	case Single:
		best := math.Inf(1)
		for _, p := range c1.members {
			for _, q := range c2.members {
				best = math.Min(best, l.distances.at(p, q))
			}
		}
		return best
	case Complete:
		worst := math.Inf(-1)
		for _, p := range c1.members {
			for _, q := range c2.members {
				worst = math.Max(worst, l.distances.at(p, q))
			}
		}
		return worst
	case Average:
		sum := 0.0
		for _, p := range c1.members {
			for _, q := range c2.members {
				sum += l.distances.at(p, q)
			}
		}
		return sum / float64(len(c1.members)*len(c2.members))
	default:
		n1 := float64(len(c1.members))
		n2 := float64(len(c2.members))
		dist := l.params.Metric.between(density.Point{X: c1.cx, Y: c1.cy}, density.Point{X: c2.cx, Y: c2.cy})
		return n1 * n2 / (n1 + n2) * dist * dist
	}
}

//Cluster merges the two closest clusters until one is left, starting from
//one cluster per point. The closest pair is the first strict minimum of a
//row-major scan over the active clusters (i < j); the merged cluster is
//appended after the remaining ones and gets the next free id, N for the first merge.
func Cluster(points []density.Point, params Params) (Dendrogram, error) {
	if err := params.validate(); err != nil {
		return Dendrogram{}, hierarchyErrorf(opCluster, err)
	}
	for ind, p := range points {
		if math.IsNaN(p.X) || math.IsInf(p.X, 0) || math.IsNaN(p.Y) || math.IsInf(p.Y, 0) {
			return Dendrogram{}, hierarchyErrorf(opCluster, fmt.Errorf("point %d: %w", ind, ErrConfiguration))
		}
	}

	n := len(points)
	dendrogram := Dendrogram{N: n, Linkage: params.Linkage, Metric: params.Metric, Merges: make([]Merge, 0, max(n-1, 0))}
	if n < 2 {
		return dendrogram, nil
	}

	distances, err := newPointDistances(points, params.Metric)
	if err != nil {
		return Dendrogram{}, hierarchyErrorf(opCluster, err)
	}
	link := linker{params: params, distances: distances}

	active := make([]activeCluster, n)
	for ind, p := range points {
		active[ind] = leafCluster(ind, p)
	}

	for nextID := n; len(active) > 1; nextID++ {
		mergeI, mergeJ := 0, 1
		minDist := link.distance(active[0], active[1])
		for i := 0; i < len(active); i++ {
			for j := i + 1; j < len(active); j++ {
				if d := link.distance(active[i], active[j]); d < minDist {
					minDist, mergeI, mergeJ = d, i, j
				}
			}
		}

		left, right := active[mergeI], active[mergeJ]
		merged := mergeClusters(nextID, left, right)
		dendrogram.Merges = append(dendrogram.Merges, Merge{
			Left:   left.id,
			Right:  right.id,
			ID:     nextID,
			Height: minDist,
			Size:   len(merged.members),
		})

		remaining := active[:0]
		for ind, cluster := range active {
			if ind != mergeI && ind != mergeJ {
				remaining = append(remaining, cluster)
			}
		}
		active = append(remaining, merged)
	}

	return dendrogram, nil
}
