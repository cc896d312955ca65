// Package metrics holds the Prometheus collectors of the command line tool.
// Nothing is served over HTTP; a run dumps the registry into a textfile that
// a node exporter textfile collector can pick up.
package metrics

import (
	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/promauto"
)

// Registry collects every metric of this package.
var Registry = prometheus.NewRegistry()

var factory = promauto.With(Registry)

var (
	// LogEntriesTotal counts log entries by level
	LogEntriesTotal = factory.NewCounterVec(
		prometheus.CounterOpts{
			Name: "toyml_log_entries_total",
			Help: "Total number of log entries by level",
		},
		[]string{"level"},
	)

	// FitsTotal counts fitted linear models by penalty
	FitsTotal = factory.NewCounterVec(
		prometheus.CounterOpts{
			Name: "toyml_fits_total",
			Help: "Total number of fitted linear models by penalty",
		},
		[]string{"penalty"},
	)

	// ModeDuration observes the wall time of one command mode
	ModeDuration = factory.NewHistogramVec(
		prometheus.HistogramOpts{
			Name:    "toyml_mode_duration_seconds",
			Help:    "Wall time of a command mode",
			Buckets: prometheus.ExponentialBuckets(0.001, 4, 8),
		},
		[]string{"mode"},
	)

	// ClustersFound is the number of clusters of the last clustering per algorithm
	ClustersFound = factory.NewGaugeVec(
		prometheus.GaugeOpts{
			Name: "toyml_clusters_found",
			Help: "Number of clusters found by the last run",
		},
		[]string{"algorithm"},
	)

	// NoisePoints is the number of points DBSCAN left unclustered in the last run
	NoisePoints = factory.NewGauge(
		prometheus.GaugeOpts{
			Name: "toyml_noise_points",
			Help: "Number of noise points of the last DBSCAN run",
		},
	)
)

// WriteTextfile stores the current values of all metrics in the text exposition format.
func WriteTextfile(filename string) error {
	return prometheus.WriteToTextfile(filename, Registry)
}
