package main

import (
	"encoding/json"
	"fmt"
	"math/rand"
	"os"

	"go.uber.org/zap"
	"gonum.org/v1/gonum/mat"

	"github.com/tarstars/toy_ml_playground/golang/toy_ml/dataset"
	"github.com/tarstars/toy_ml_playground/golang/toy_ml/regression"
	"github.com/tarstars/toy_ml_playground/golang/toy_ml/render"
)

func (a *app) generate(srcConfig string) error {
	var generateConfig GenerateConfig
	if err := decodeConfig(srcConfig, &generateConfig); err != nil {
		return err
	}
	rng := rand.New(rand.NewSource(generateConfig.Seed))

	var samples []regression.Sample
	switch generateConfig.Kind {
	case "linear":
		line, err := dataset.LinearLine(generateConfig.Samples, generateConfig.Noise, rng)
		if err != nil {
			return err
		}
		samples = line.Samples()
	case "polynomial":
		line, err := dataset.PolynomialShape(dataset.Shape(generateConfig.Shape), generateConfig.Samples, generateConfig.Noise, rng)
		if err != nil {
			return err
		}
		samples = line.Samples()
	case "sparse":
		var err error
		samples, err = dataset.SparseLinear(generateConfig.Samples, generateConfig.Features, generateConfig.Noise, rng)
		if err != nil {
			return err
		}
	default:
		points, err := dataset.Points(generateConfig.Kind, generateConfig.Samples, rng)
		if err != nil {
			return err
		}
		m, err := dataset.DenseFromPoints(points)
		if err != nil {
			return err
		}
		a.logger.Info("generated points", zap.String("kind", generateConfig.Kind), zap.Int("points", len(points)))
		return dataset.WriteNpy(a.settings.resolve(generateConfig.FileNameFeatures), m)
	}

	features, target, err := dataset.DenseFromSamples(samples)
	if err != nil {
		return err
	}
	if err = dataset.WriteNpy(a.settings.resolve(generateConfig.FileNameFeatures), features); err != nil {
		return err
	}
	a.logger.Info("generated samples", zap.String("kind", generateConfig.Kind), zap.Int("samples", len(samples)))
	return dataset.WriteNpy(a.settings.resolve(generateConfig.FileNameTarget), mat.NewDense(len(target), 1, target))
}

//loadSamples reads features and targets. A degree above one expands a single
//feature column into its powers.
func (a *app) loadSamples(featuresName, targetName string, degree int) ([]regression.Sample, error) {
	features, err := dataset.ReadNpy(a.settings.resolve(featuresName))
	if err != nil {
		return nil, err
	}
	target, err := dataset.ReadNpyVector(a.settings.resolve(targetName))
	if err != nil {
		return nil, err
	}
	if degree <= 1 {
		return dataset.SamplesFromDense(features, target)
	}

	if _, w := features.Dims(); w != 1 {
		return nil, fmt.Errorf("degree %d needs one feature column, got %d: %w", degree, w, regression.ErrConfiguration)
	}
	return regression.ExpandPolynomial(mat.Col(nil, 0, features), target, degree)
}

func (a *app) fit(srcConfig string) error {
	var fitConfig FitConfig
	if err := decodeConfig(srcConfig, &fitConfig); err != nil {
		return err
	}
	penalty, err := regression.ParsePenalty(fitConfig.Penalty)
	if err != nil {
		return err
	}
	samples, err := a.loadSamples(fitConfig.FileNameFeatures, fitConfig.FileNameTarget, fitConfig.Degree)
	if err != nil {
		return err
	}

	var model regression.LinearModel
	if penalty == regression.Lasso {
		var report regression.LassoReport
		model, report, err = regression.FitLassoReport(samples, regression.LassoParams{
			Alpha:         fitConfig.Alpha,
			MaxIterations: fitConfig.MaxIterations,
			Tolerance:     fitConfig.Tolerance,
		})
		if err != nil {
			return err
		}
		if !report.Converged {
			a.logger.Warn("lasso stopped at the iteration cap",
				zap.Int("iterations", report.Iterations), zap.Float64("max_change", report.MaxChange))
		}
	} else if model, err = regression.Fit(samples, penalty, fitConfig.Alpha); err != nil {
		return err
	}
	recordFit(penalty)

	score, err := regression.Score(model, samples)
	if err != nil {
		return err
	}
	a.logger.Info("model fitted",
		zap.Stringer("penalty", penalty),
		zap.Float64("alpha", fitConfig.Alpha),
		zap.Float64s("weights", model.Weights),
		zap.Float64("intercept", model.Intercept),
		zap.Float64("r2", score),
		zap.Int("non_zero", model.NonZero()),
	)

	if err = regression.SaveModel(a.settings.resolve(fitConfig.FileNameModel), model); err != nil {
		return err
	}
	if fitConfig.FileNamePlot == "" {
		return nil
	}
	raw, err := a.loadSamples(fitConfig.FileNameFeatures, fitConfig.FileNameTarget, 1)
	if err != nil {
		return err
	}
	return render.FitPlot(a.settings.resolve(fitConfig.FileNamePlot), raw, model)
}

func (a *app) predict(srcConfig string) error {
	var predictConfig PredictConfig
	if err := decodeConfig(srcConfig, &predictConfig); err != nil {
		return err
	}
	model, err := regression.LoadModel(a.settings.resolve(predictConfig.FileNameModel))
	if err != nil {
		return err
	}
	features, err := dataset.ReadNpy(a.settings.resolve(predictConfig.FileNameFeatures))
	if err != nil {
		return err
	}

	h, _ := features.Dims()
	prediction := make([]float64, h)
	for p := 0; p < h; p++ {
		row := mat.Row(nil, p, features)
		if predictConfig.Degree > 1 {
			prediction[p], err = regression.PredictPolynomial(model, row[0])
		} else {
			prediction[p], err = regression.Predict(model, row)
		}
		if err != nil {
			return fmt.Errorf("row %d: %w", p, err)
		}
	}
	if err = dataset.WriteNpy(a.settings.resolve(predictConfig.FileNamePrediction), mat.NewDense(h, 1, prediction)); err != nil {
		return err
	}

	if predictConfig.FileNameTarget != "" {
		samples, err := a.loadSamples(predictConfig.FileNameFeatures, predictConfig.FileNameTarget, predictConfig.Degree)
		if err != nil {
			return err
		}
		score, err := regression.Score(model, samples)
		if err != nil {
			return err
		}
		mse, err := regression.MeanSquaredError(model, samples)
		if err != nil {
			return err
		}
		a.logger.Info("scored", zap.Float64("r2", score), zap.Float64("mse", mse))
	}
	return nil
}

func (a *app) path(srcConfig string) error {
	var pathConfig PathConfig
	if err := decodeConfig(srcConfig, &pathConfig); err != nil {
		return err
	}
	penalty, err := regression.ParsePenalty(pathConfig.Penalty)
	if err != nil {
		return err
	}
	samples, err := a.loadSamples(pathConfig.FileNameFeatures, pathConfig.FileNameTarget, 1)
	if err != nil {
		return err
	}

	threads := pathConfig.Threads
	if threads <= 0 {
		threads = a.settings.Threads
	}
	path, err := regression.RegularizationPath(samples, penalty, pathConfig.Alphas, threads)
	if err != nil {
		return err
	}
	for _, point := range path {
		recordFit(penalty)
		a.logger.Debug("path point", zap.Float64("alpha", point.Alpha), zap.Float64("r2", point.Score),
			zap.Int("non_zero", point.Model.NonZero()))
	}
	a.logger.Info("path computed", zap.Stringer("penalty", penalty), zap.Int("alphas", len(path)), zap.Int("threads", threads))

	if pathConfig.FileNamePath != "" {
		repr, err := json.MarshalIndent(path, "", "  ")
		if err != nil {
			return err
		}
		if err = os.WriteFile(a.settings.resolve(pathConfig.FileNamePath), repr, 0o644); err != nil {
			return err
		}
	}
	if pathConfig.FileNameHTML != "" {
		return writeHTML(a.settings.resolve(pathConfig.FileNameHTML), func(f *os.File) error {
			return render.PathHTML(f, path)
		})
	}
	return nil
}
