package main

import (
	"errors"
	"flag"
	"fmt"
	"io/fs"
	"os"
	"runtime"
	"runtime/pprof"
	"sort"
	"time"

	"github.com/joho/godotenv"
	"github.com/kelseyhightower/envconfig"
	"go.uber.org/zap"

	"github.com/tarstars/toy_ml_playground/golang/toy_ml/logging"
	"github.com/tarstars/toy_ml_playground/golang/toy_ml/metrics"
)

type app struct {
	settings Settings
	logger   *zap.Logger
}

type modeFunc func(a *app, srcConfig string) error

var modes = map[string]modeFunc{
	"generate":  (*app).generate,
	"fit":       (*app).fit,
	"predict":   (*app).predict,
	"path":      (*app).path,
	"cluster":   (*app).cluster,
	"hierarchy": (*app).hierarchy,
	"chart":     (*app).chart,
}

func modeNames() []string {
	names := make([]string, 0, len(modes))
	for name := range modes {
		names = append(names, name)
	}
	sort.Strings(names)
	return names
}

//HandleError logs a fatal error and stops the program.
func HandleError(logger *zap.Logger, err error) {
	if err != nil {
		logger.Fatal("unrecoverable error", zap.Error(err))
	}
}

func loadSettings() (Settings, error) {
	var settings Settings
	if err := godotenv.Load(); err != nil && !errors.Is(err, fs.ErrNotExist) {
		return settings, err
	}
	err := envconfig.Process("TOYML", &settings)
	return settings, err
}

//run executes one mode and records its duration.
func (a *app) run(runMode, srcConfig string) error {
	mode, ok := modes[runMode]
	if !ok {
		return fmt.Errorf("unknown mode %q, expected one of %v", runMode, modeNames())
	}

	logger := a.logger
	a.logger = logger.With(zap.String("mode", runMode))
	defer func() { a.logger = logger }()

	start := time.Now()
	err := mode(a, srcConfig)
	metrics.ModeDuration.WithLabelValues(runMode).Observe(time.Since(start).Seconds())
	if err != nil {
		return err
	}
	a.logger.Info("done", zap.Duration("elapsed", time.Since(start)))
	return nil
}

func main() {
	runMode := flag.String("mode", "fit", fmt.Sprintf("one of %v", modeNames()))
	config := flag.String("config", "toy_ml_config.json", "a config file for the run of the program")
	memprofile := flag.String("memprofile", "", "write memory profile to `file`")

	flag.Parse()

	settings, err := loadSettings()
	if err != nil {
		fmt.Fprintln(os.Stderr, "settings:", err)
		os.Exit(2)
	}
	logger, err := logging.NewLogger(logging.Config{Format: settings.LogFormat, Level: settings.LogLevel})
	if err != nil {
		fmt.Fprintln(os.Stderr, "logger:", err)
		os.Exit(2)
	}
	defer func() { _ = logger.Sync() }()

	a := &app{settings: settings, logger: logger}
	HandleError(logger, a.run(*runMode, *config))

	if settings.MetricsFile != "" {
		HandleError(logger, metrics.WriteTextfile(settings.MetricsFile))
	}

	if *memprofile != "" {
		f, err := os.Create(*memprofile)
		HandleError(logger, err)
		defer func() { HandleError(logger, f.Close()) }()
		runtime.GC()
		HandleError(logger, pprof.WriteHeapProfile(f))
	}
}
