package dataset

import (
	"fmt"
	"math"
	"math/rand"
	"strings"

	"github.com/tarstars/toy_ml_playground/golang/toy_ml/density"
)

type center struct {
	x, y  float64
	count int
}

func disc(rng *rand.Rand, points []density.Point, c center, radius float64) []density.Point {
	for ind := 0; ind < c.count; ind++ {
		angle := rng.Float64() * math.Pi * 2
		r := rng.Float64() * radius
		points = append(points, density.Point{X: c.x + math.Cos(angle)*r, Y: c.y + math.Sin(angle)*r})
	}
	return points
}

// Blobs draws perCenter points in each of three discs of radius 40.
func Blobs(perCenter int, rng *rand.Rand) []density.Point {
	points := make([]density.Point, 0, 3*max(perCenter, 0))
	for _, c := range []center{{200, 150, perCenter}, {400, 250, perCenter}, {600, 350, perCenter}} {
		points = disc(rng, points, c, 40)
	}
	return points
}

// Moons draws two interleaved half circles of radius 100 with n points each.
func Moons(n int, rng *rand.Rand) []density.Point {
	points := make([]density.Point, 0, 2*max(n, 0))
	for ind := 0; ind < n; ind++ {
		t := float64(ind) / float64(n) * math.Pi
		points = append(points, density.Point{X: 200 + math.Cos(t)*100, Y: 200 + math.Sin(t)*100 + uniformNoise(rng, 10)})
	}
	for ind := 0; ind < n; ind++ {
		t := float64(ind)/float64(n)*math.Pi + math.Pi
		points = append(points, density.Point{X: 350 + math.Cos(t)*100, Y: 300 + math.Sin(t)*100 + uniformNoise(rng, 10)})
	}
	return points
}

// Circles draws two noisy concentric rings of radius 60 and 140, alternating inner and outer points.
func Circles(n int, rng *rand.Rand) []density.Point {
	points := make([]density.Point, 0, 2*max(n, 0))
	for ind := 0; ind < n; ind++ {
		angle := float64(ind) / float64(n) * math.Pi * 2
		inner := 60 + uniformNoise(rng, 10)
		points = append(points, density.Point{X: 400 + math.Cos(angle)*inner, Y: 250 + math.Sin(angle)*inner})
		outer := 140 + uniformNoise(rng, 10)
		points = append(points, density.Point{X: 400 + math.Cos(angle)*outer, Y: 250 + math.Sin(angle)*outer})
	}
	return points
}

// Uniform draws n points uniformly from [100, 700) x [50, 450).
func Uniform(n int, rng *rand.Rand) []density.Point {
	points := make([]density.Point, 0, max(n, 0))
	for ind := 0; ind < n; ind++ {
		points = append(points, density.Point{X: 100 + rng.Float64()*600, Y: 50 + rng.Float64()*400})
	}
	return points
}

// Chain draws n points along a noisy sine wave.
func Chain(n int, rng *rand.Rand) []density.Point {
	points := make([]density.Point, 0, max(n, 0))
	for ind := 0; ind < n; ind++ {
		points = append(points, density.Point{
			X: 80 + float64(ind)*10 + uniformNoise(rng, 15),
			Y: 150 + math.Sin(float64(ind)*0.3)*50 + uniformNoise(rng, 15),
		})
	}
	return points
}

// Uneven draws three discs of radius 25 holding 30, 8 and 15 points.
func Uneven(rng *rand.Rand) []density.Point {
	points := make([]density.Point, 0, 53)
	for _, c := range []center{{100, 100, 30}, {300, 200, 8}, {200, 50, 15}} {
		points = disc(rng, points, c, 25)
	}
	return points
}

// Points generates a named 2D data set; n is the per-group size where the shape has groups.
func Points(kind string, n int, rng *rand.Rand) ([]density.Point, error) {
	if err := checkCount(n); err != nil {
		return nil, err
	}
	switch strings.ToLower(kind) {
	case "blobs":
		return Blobs(n, rng), nil
	case "moons":
		return Moons(n, rng), nil
	case "circles":
		return Circles(n, rng), nil
	case "random", "uniform":
		return Uniform(n, rng), nil
	case "chain":
		return Chain(n, rng), nil
	case "uneven":
		return Uneven(rng), nil
	}
	return nil, fmt.Errorf("point set %q: %w", kind, ErrConfiguration)
}
