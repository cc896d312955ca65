package main

import (
	"encoding/json"
	"fmt"
	"os"
	"path/filepath"
	"strings"

	"go.uber.org/zap"

	"github.com/tarstars/toy_ml_playground/golang/toy_ml/regression"
	"github.com/tarstars/toy_ml_playground/golang/toy_ml/render"
)

//chart redraws saved results: a fitted model over its data, a labeled point
//set or a regularization path.
func (a *app) chart(srcConfig string) error {
	var chartConfig ChartConfig
	if err := decodeConfig(srcConfig, &chartConfig); err != nil {
		return err
	}
	output := a.settings.resolve(chartConfig.FileNameOutput)

	switch chartConfig.Kind {
	case "fit":
		model, err := regression.LoadModel(a.settings.resolve(chartConfig.FileNameModel))
		if err != nil {
			return err
		}
		samples, err := a.loadSamples(chartConfig.FileNameFeatures, chartConfig.FileNameTarget, 1)
		if err != nil {
			return err
		}
		if err = render.FitPlot(output, samples, model); err != nil {
			return err
		}
	case "clusters":
		points, err := a.loadPoints(chartConfig.FileNameFeatures)
		if err != nil {
			return err
		}
		labels, err := readLabels(a.settings.resolve(chartConfig.FileNameLabels))
		if err != nil {
			return err
		}
		if strings.EqualFold(filepath.Ext(output), ".html") {
			err = writeHTML(output, func(f *os.File) error { return render.ClusterHTML(f, "clusters", points, labels) })
		} else {
			err = render.ClusterPlot(output, points, labels)
		}
		if err != nil {
			return err
		}
	case "path":
		repr, err := os.ReadFile(a.settings.resolve(chartConfig.FileNamePath))
		if err != nil {
			return err
		}
		var path []regression.PathPoint
		if err = json.Unmarshal(repr, &path); err != nil {
			return err
		}
		if err = writeHTML(output, func(f *os.File) error { return render.PathHTML(f, path) }); err != nil {
			return err
		}
	default:
		return fmt.Errorf("unknown chart kind %q, expected fit, clusters or path", chartConfig.Kind)
	}

	a.logger.Info("chart written", zap.String("kind", chartConfig.Kind), zap.String("output", output))
	return nil
}
