// Package render draws fitted models, clusterings and regularization paths as
// static images (gonum/plot) and interactive HTML pages (go-echarts).
package render

import (
	"errors"
	"fmt"
	"image/color"
	"math"

	"gonum.org/v1/plot"
	"gonum.org/v1/plot/plotter"
	"gonum.org/v1/plot/plotutil"
	"gonum.org/v1/plot/vg"
	"gonum.org/v1/plot/vg/draw"

	"github.com/tarstars/toy_ml_playground/golang/toy_ml/density"
	"github.com/tarstars/toy_ml_playground/golang/toy_ml/regression"
)

// ErrNothingToDraw is returned for empty inputs and mismatched label slices.
var ErrNothingToDraw = errors.New("render: nothing to draw")

const (
	figureSize  = 6 * vg.Inch
	curvePoints = 200
)

var noiseColor = color.RGBA{R: 220, G: 38, B: 38, A: 255}

// FitPlot saves a scatter of one-feature samples with the model curve drawn
// over their x range. Models with more weights are read as polynomials in x.
// The image format follows the file extension.
func FitPlot(filename string, samples []regression.Sample, model regression.LinearModel) error {
	if len(samples) == 0 {
		return ErrNothingToDraw
	}

	pts := make(plotter.XYs, len(samples))
	lo, hi := math.Inf(1), math.Inf(-1)
	for ind, sample := range samples {
		if len(sample.Features) != 1 {
			return fmt.Errorf("sample %d has %d features: %w", ind, len(sample.Features), ErrNothingToDraw)
		}
		pts[ind] = plotter.XY{X: sample.Features[0], Y: sample.Target}
		lo = math.Min(lo, sample.Features[0])
		hi = math.Max(hi, sample.Features[0])
	}

	curve := make(plotter.XYs, curvePoints)
	for ind := range curve {
		x := lo + (hi-lo)*float64(ind)/float64(curvePoints-1)
		y, err := regression.PredictPolynomial(model, x)
		if err != nil {
			return err
		}
		curve[ind] = plotter.XY{X: x, Y: y}
	}

	p := plot.New()
	p.Title.Text = fmt.Sprintf("fit, %d weights", len(model.Weights))
	p.X.Label.Text = "x"
	p.Y.Label.Text = "y"

	s, err := plotter.NewScatter(pts)
	if err != nil {
		return err
	}
	s.GlyphStyle.Color = plotutil.Color(0)
	l, err := plotter.NewLine(curve)
	if err != nil {
		return err
	}
	l.LineStyle.Width = vg.Points(2)
	l.LineStyle.Color = plotutil.Color(1)

	p.Add(s, l)
	p.Legend.Add("data", s)
	p.Legend.Add("model", l)

	return p.Save(figureSize, figureSize, filename)
}

// ClusterPlot saves a scatter of points colored by cluster label. Points
// labeled density.NoiseLabel are drawn as red crosses.
func ClusterPlot(filename string, points []density.Point, labels []int) error {
	if len(points) == 0 || len(points) != len(labels) {
		return ErrNothingToDraw
	}

	groups := make(map[int]plotter.XYs)
	order := make([]int, 0)
	for ind, p := range points {
		label := labels[ind]
		if _, ok := groups[label]; !ok {
			order = append(order, label)
		}
		groups[label] = append(groups[label], plotter.XY{X: p.X, Y: p.Y})
	}

	p := plot.New()
	p.Title.Text = fmt.Sprintf("%d clusters", countClusters(labels))
	for _, label := range order {
		s, err := plotter.NewScatter(groups[label])
		if err != nil {
			return err
		}
		name := fmt.Sprint("cluster ", label)
		if label == density.NoiseLabel {
			name = "noise"
			s.GlyphStyle.Color = noiseColor
			s.GlyphStyle.Shape = draw.CrossGlyph{}
		} else {
			s.GlyphStyle.Color = plotutil.Color(label)
			s.GlyphStyle.Shape = draw.CircleGlyph{}
		}
		s.GlyphStyle.Radius = vg.Points(3)
		p.Add(s)
		p.Legend.Add(name, s)
	}

	return p.Save(figureSize, figureSize, filename)
}

func countClusters(labels []int) int {
	seen := make(map[int]bool)
	for _, label := range labels {
		if label != density.NoiseLabel {
			seen[label] = true
		}
	}
	return len(seen)
}
