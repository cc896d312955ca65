package render

import (
	"fmt"
	"io"
	"sort"
	"strconv"

	"github.com/go-echarts/go-echarts/v2/charts"
	"github.com/go-echarts/go-echarts/v2/opts"
	"github.com/go-echarts/go-echarts/v2/types"

	"github.com/tarstars/toy_ml_playground/golang/toy_ml/density"
	"github.com/tarstars/toy_ml_playground/golang/toy_ml/regression"
)

func legendOpts() charts.GlobalOpts {
	return charts.WithLegendOpts(opts.Legend{
		Type:   "scroll",
		Orient: "vertical",
		Right:  "10",
		Top:    "20",
		Bottom: "20",
	})
}

// ClusterHTML writes an interactive scatter page with one series per cluster
// and a separate noise series.
func ClusterHTML(w io.Writer, title string, points []density.Point, labels []int) error {
	if len(points) == 0 || len(points) != len(labels) {
		return ErrNothingToDraw
	}

	scatter := charts.NewScatter()
	scatter.SetGlobalOptions(
		charts.WithInitializationOpts(opts.Initialization{Theme: types.ThemeWesteros}),
		charts.WithTitleOpts(opts.Title{
			Title:    title,
			Subtitle: fmt.Sprintf("%d points, %d clusters", len(points), countClusters(labels)),
		}),
		legendOpts(),
		charts.WithXAxisOpts(opts.XAxis{Type: "value", Scale: opts.Bool(true)}),
		charts.WithYAxisOpts(opts.YAxis{Type: "value", Scale: opts.Bool(true)}),
		charts.WithTooltipOpts(opts.Tooltip{Show: opts.Bool(true)}),
	)

	groups := make(map[int][]opts.ScatterData)
	for ind, p := range points {
		groups[labels[ind]] = append(groups[labels[ind]], opts.ScatterData{
			Name:       strconv.Itoa(ind),
			Value:      []float64{p.X, p.Y},
			SymbolSize: 8,
		})
	}
	keys := make([]int, 0, len(groups))
	for label := range groups {
		keys = append(keys, label)
	}
	sort.Ints(keys)

	for _, label := range keys {
		if label == density.NoiseLabel {
			scatter.AddSeries("noise", groups[label],
				charts.WithItemStyleOpts(opts.ItemStyle{Color: "#dc2626"}))
			continue
		}
		scatter.AddSeries(fmt.Sprint("cluster ", label), groups[label])
	}

	return scatter.Render(w)
}

// PathHTML writes a line chart of every weight against alpha, one series per
// feature, with the R² of each fit as an extra series.
func PathHTML(w io.Writer, path []regression.PathPoint) error {
	if len(path) == 0 {
		return ErrNothingToDraw
	}
	width := len(path[0].Model.Weights)

	line := charts.NewLine()
	line.SetGlobalOptions(
		charts.WithInitializationOpts(opts.Initialization{Theme: types.ThemeWesteros}),
		charts.WithTitleOpts(opts.Title{
			Title:    "regularization path",
			Subtitle: "weights against alpha",
		}),
		legendOpts(),
		charts.WithYAxisOpts(opts.YAxis{Scale: opts.Bool(true)}),
		charts.WithTooltipOpts(opts.Tooltip{Show: opts.Bool(true), Trigger: "axis"}),
		charts.WithAnimation(true),
	)

	alphas := make([]string, len(path))
	weights := make([][]opts.LineData, width)
	for j := range weights {
		weights[j] = make([]opts.LineData, len(path))
	}
	scores := make([]opts.LineData, len(path))
	for ind, point := range path {
		if len(point.Model.Weights) != width {
			return fmt.Errorf("path point %d has %d weights, want %d: %w", ind, len(point.Model.Weights), width, ErrNothingToDraw)
		}
		alphas[ind] = strconv.FormatFloat(point.Alpha, 'g', 4, 64)
		for j, weight := range point.Model.Weights {
			weights[j][ind] = opts.LineData{Value: weight}
		}
		scores[ind] = opts.LineData{Value: point.Score}
	}

	line.SetXAxis(alphas)
	for j := range weights {
		line.AddSeries(fmt.Sprint("w", j), weights[j])
	}
	line.AddSeries("R²", scores, charts.WithLineChartOpts(opts.LineChart{Smooth: opts.Bool(true)}))

	return line.Render(w)
}
