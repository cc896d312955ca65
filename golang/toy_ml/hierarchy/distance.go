package hierarchy

import (
	"fmt"
	"math"
	"strings"

	"gorgonia.org/tensor"

	"github.com/tarstars/toy_ml_playground/golang/toy_ml/density"
)

//Metric is the point-to-point distance.
type Metric int

const (
	Euclidean Metric = iota
	Manhattan
)

func (m Metric) String() string {
	switch m {
	case Euclidean:
		return "euclidean"
	case Manhattan:
		return "manhattan"
	default:
		return fmt.Sprintf("Metric(%d)", int(m))
	}
}

//ParseMetric maps "euclidean" and "manhattan" to a Metric.
func ParseMetric(name string) (Metric, error) {
	switch strings.ToLower(strings.TrimSpace(name)) {
	case "", "euclidean":
		return Euclidean, nil
	case "manhattan":
		return Manhattan, nil
	}
	return Euclidean, fmt.Errorf("metric %q: %w", name, ErrConfiguration)
}

func (m Metric) between(a, b density.Point) float64 {
	if m == Manhattan {
		return math.Abs(a.X-b.X) + math.Abs(a.Y-b.Y)
	}
	return density.Distance(a, b)
}

//pointDistances caches the symmetric matrix of distances between all input points.
type pointDistances struct {
	values *tensor.Dense
}

func newPointDistances(points []density.Point, metric Metric) (*pointDistances, error) {
	n := len(points)
	values := tensor.New(tensor.WithShape(n, n), tensor.Of(tensor.Float64))
	for p := 0; p < n; p++ {
		for q := p + 1; q < n; q++ {
			dist := metric.between(points[p], points[q])
			if err := values.SetAt(dist, p, q); err != nil {
				return nil, err
			}
			if err := values.SetAt(dist, q, p); err != nil {
				return nil, err
			}
		}
	}
	return &pointDistances{values: values}, nil
}

func (d *pointDistances) at(p, q int) float64 {
	element, err := d.values.At(p, q)
	if err != nil {
		// indices always come from the points the cache was built for
		panic(err)
	}
	return element.(float64)
}
