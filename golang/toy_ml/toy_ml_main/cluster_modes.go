package main

import (
	"os"

	"go.uber.org/zap"
	"gonum.org/v1/gonum/mat"

	"github.com/tarstars/toy_ml_playground/golang/toy_ml/dataset"
	"github.com/tarstars/toy_ml_playground/golang/toy_ml/density"
	"github.com/tarstars/toy_ml_playground/golang/toy_ml/hierarchy"
	"github.com/tarstars/toy_ml_playground/golang/toy_ml/metrics"
	"github.com/tarstars/toy_ml_playground/golang/toy_ml/regression"
	"github.com/tarstars/toy_ml_playground/golang/toy_ml/render"
)

func recordFit(penalty regression.Penalty) {
	metrics.FitsTotal.WithLabelValues(penalty.String()).Inc()
}

func writeHTML(fileName string, write func(f *os.File) error) (err error) {
	f, err := os.Create(fileName)
	if err != nil {
		return err
	}
	defer func() {
		if closeErr := f.Close(); err == nil {
			err = closeErr
		}
	}()
	return write(f)
}

func (a *app) loadPoints(fileName string) ([]density.Point, error) {
	m, err := dataset.ReadNpy(a.settings.resolve(fileName))
	if err != nil {
		return nil, err
	}
	return dataset.PointsFromDense(m)
}

func writeLabels(fileName string, labels []int) error {
	column := make([]float64, len(labels))
	for ind, label := range labels {
		column[ind] = float64(label)
	}
	return dataset.WriteNpy(fileName, mat.NewDense(len(column), 1, column))
}

func readLabels(fileName string) ([]int, error) {
	column, err := dataset.ReadNpyVector(fileName)
	if err != nil {
		return nil, err
	}
	labels := make([]int, len(column))
	for ind, value := range column {
		labels[ind] = int(value)
	}
	return labels, nil
}

func (a *app) cluster(srcConfig string) error {
	var clusterConfig ClusterConfig
	if err := decodeConfig(srcConfig, &clusterConfig); err != nil {
		return err
	}
	index, err := density.ParseIndexKind(clusterConfig.Index)
	if err != nil {
		return err
	}
	points, err := a.loadPoints(clusterConfig.FileNamePoints)
	if err != nil {
		return err
	}

	assignment, err := density.DBSCANWith(points, density.Params{
		Epsilon: clusterConfig.Epsilon,
		MinPts:  clusterConfig.MinPts,
		Index:   index,
	})
	if err != nil {
		return err
	}
	counts := assignment.Counts()
	metrics.ClustersFound.WithLabelValues("dbscan").Set(float64(assignment.NumClusters))
	metrics.NoisePoints.Set(float64(counts.Noise))
	a.logger.Info("clustered",
		zap.Int("points", len(points)),
		zap.Int("clusters", assignment.NumClusters),
		zap.Int("core", counts.Core),
		zap.Int("border", counts.Border),
		zap.Int("noise", counts.Noise),
		zap.Stringer("index", index),
	)

	return a.writeClusterOutputs(points, assignment.Labels, "dbscan",
		clusterConfig.FileNameLabels, clusterConfig.FileNamePlot, clusterConfig.FileNameHTML)
}

func (a *app) writeClusterOutputs(points []density.Point, labels []int, title, labelsName, plotName, htmlName string) error {
	if labelsName != "" {
		if err := writeLabels(a.settings.resolve(labelsName), labels); err != nil {
			return err
		}
	}
	if plotName != "" {
		if err := render.ClusterPlot(a.settings.resolve(plotName), points, labels); err != nil {
			return err
		}
	}
	if htmlName != "" {
		return writeHTML(a.settings.resolve(htmlName), func(f *os.File) error {
			return render.ClusterHTML(f, title, points, labels)
		})
	}
	return nil
}

func (a *app) hierarchy(srcConfig string) error {
	var hierarchyConfig HierarchyConfig
	if err := decodeConfig(srcConfig, &hierarchyConfig); err != nil {
		return err
	}
	linkage, err := hierarchy.ParseLinkage(hierarchyConfig.Linkage)
	if err != nil {
		return err
	}
	metric, err := hierarchy.ParseMetric(hierarchyConfig.Metric)
	if err != nil {
		return err
	}
	points, err := a.loadPoints(hierarchyConfig.FileNamePoints)
	if err != nil {
		return err
	}

	dendrogram, err := hierarchy.Cluster(points, hierarchy.Params{Linkage: linkage, Metric: metric})
	if err != nil {
		return err
	}
	a.logger.Info("dendrogram built",
		zap.Stringer("linkage", linkage),
		zap.Stringer("metric", metric),
		zap.Int("merges", len(dendrogram.Merges)),
	)

	if hierarchyConfig.FileNameDendrogram != "" {
		if err = dendrogram.Save(a.settings.resolve(hierarchyConfig.FileNameDendrogram)); err != nil {
			return err
		}
	}
	if hierarchyConfig.FileNameGraph != "" {
		figureType := hierarchyConfig.FigureType
		if figureType == "" {
			figureType = "svg"
		}
		if err = dendrogram.Render(a.settings.resolve(hierarchyConfig.FileNameGraph), figureType); err != nil {
			return err
		}
	}
	if hierarchyConfig.Clusters == 0 {
		return nil
	}

	labels, err := dendrogram.Cut(hierarchyConfig.Clusters)
	if err != nil {
		return err
	}
	metrics.ClustersFound.WithLabelValues("hierarchy").Set(float64(hierarchyConfig.Clusters))
	return a.writeClusterOutputs(points, labels, linkage.String()+" linkage",
		hierarchyConfig.FileNameLabels, hierarchyConfig.FileNamePlot, "")
}
