package main

import (
	"encoding/json"
	"fmt"
	"os"
	"path/filepath"
)

//Settings are the ambient options read from TOYML_* environment variables.
type Settings struct {
	LogLevel    string `envconfig:"LOG_LEVEL" default:"info"`
	LogFormat   string `envconfig:"LOG_FORMAT" default:"console"`
	Threads     int    `envconfig:"THREADS" default:"4"`
	BaseDir     string `envconfig:"BASE_DIR"`
	MetricsFile string `envconfig:"METRICS_FILE"`
}

func decodeConfig(srcConfig string, out interface{}) (err error) {
	file, err := os.Open(srcConfig)
	if err != nil {
		return err
	}
	defer func() {
		if closeErr := file.Close(); err == nil {
			err = closeErr
		}
	}()

	decoder := json.NewDecoder(file)
	decoder.DisallowUnknownFields()
	if err = decoder.Decode(out); err != nil {
		return fmt.Errorf("config %s: %w", srcConfig, err)
	}
	return nil
}

//resolve places relative file names under BaseDir. Empty names stay empty.
func (s Settings) resolve(fileName string) string {
	if fileName == "" || s.BaseDir == "" || filepath.IsAbs(fileName) {
		return fileName
	}
	return filepath.Join(s.BaseDir, fileName)
}

type GenerateConfig struct {
	Kind             string  `json:"kind"` // linear, polynomial, sparse or a point set name
	Shape            string  `json:"shape"`
	Samples          int     `json:"samples"`
	Features         int     `json:"features"`
	Noise            float64 `json:"noise"`
	Seed             int64   `json:"seed"`
	FileNameFeatures string  `json:"filename_features"`
	FileNameTarget   string  `json:"filename_target"`
}

type FitConfig struct {
	FileNameFeatures string  `json:"filename_features"`
	FileNameTarget   string  `json:"filename_target"`
	Penalty          string  `json:"penalty"`
	Alpha            float64 `json:"alpha"`
	MaxIterations    int     `json:"max_iterations"`
	Tolerance        float64 `json:"tolerance"`
	Degree           int     `json:"degree"`
	FileNameModel    string  `json:"filename_model"`
	FileNamePlot     string  `json:"filename_plot"`
}

type PredictConfig struct {
	FileNameFeatures   string `json:"filename_features"`
	FileNameModel      string `json:"filename_model"`
	FileNamePrediction string `json:"filename_prediction"`
	FileNameTarget     string `json:"filename_target"`
	Degree             int    `json:"degree"`
}

type PathConfig struct {
	FileNameFeatures string    `json:"filename_features"`
	FileNameTarget   string    `json:"filename_target"`
	Penalty          string    `json:"penalty"`
	Alphas           []float64 `json:"alphas"`
	Threads          int       `json:"threads"`
	FileNamePath     string    `json:"filename_path"`
	FileNameHTML     string    `json:"filename_html"`
}

type ClusterConfig struct {
	FileNamePoints string  `json:"filename_points"`
	Epsilon        float64 `json:"epsilon"`
	MinPts         int     `json:"min_pts"`
	Index          string  `json:"index"`
	FileNameLabels string  `json:"filename_labels"`
	FileNamePlot   string  `json:"filename_plot"`
	FileNameHTML   string  `json:"filename_html"`
}

type HierarchyConfig struct {
	FileNamePoints     string `json:"filename_points"`
	Linkage            string `json:"linkage"`
	Metric             string `json:"metric"`
	Clusters           int    `json:"clusters"`
	FileNameDendrogram string `json:"filename_dendrogram"`
	FileNameGraph      string `json:"filename_graph"`
	FigureType         string `json:"figure_type"`
	FileNameLabels     string `json:"filename_labels"`
	FileNamePlot       string `json:"filename_plot"`
}

type ChartConfig struct {
	Kind             string `json:"kind"` // fit, clusters or path
	FileNameFeatures string `json:"filename_features"`
	FileNameTarget   string `json:"filename_target"`
	FileNameModel    string `json:"filename_model"`
	FileNameLabels   string `json:"filename_labels"`
	FileNamePath     string `json:"filename_path"`
	FileNameOutput   string `json:"filename_output"`
}
