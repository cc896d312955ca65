package regression

import (
	"fmt"
	"strings"

	"golang.org/x/sync/errgroup"
)

// Penalty selects the regularizer of a fit.
type Penalty int

const (
	Ridge Penalty = iota
	Lasso
	// OLS is Ridge pinned to alpha = 0.
	OLS
)

func (p Penalty) String() string {
	switch p {
	case Ridge:
		return "ridge"
	case Lasso:
		return "lasso"
	case OLS:
		return "ols"
	default:
		return fmt.Sprintf("Penalty(%d)", int(p))
	}
}

// ParsePenalty accepts "ridge", "ols" and "lasso".
func ParsePenalty(name string) (Penalty, error) {
	switch strings.ToLower(strings.TrimSpace(name)) {
	case "ridge", "l2":
		return Ridge, nil
	case "ols":
		return OLS, nil
	case "lasso", "l1":
		return Lasso, nil
	default:
		return 0, fmt.Errorf("unknown penalty %q: %w", name, ErrConfiguration)
	}
}

// Fit dispatches to FitRidge or FitLasso with default solver settings. OLS
// rejects any alpha other than zero.
func Fit(samples []Sample, penalty Penalty, alpha float64) (LinearModel, error) {
	switch penalty {
	case Ridge:
		return FitRidge(samples, alpha)
	case OLS:
		if err := validateOLSAlpha(alpha); err != nil {
			return LinearModel{}, regressionErrorf(opFitRidge, err)
		}
		return FitOLS(samples)
	case Lasso:
		return FitLassoWith(samples, DefaultLassoParams(alpha))
	default:
		return LinearModel{}, fmt.Errorf("penalty %v: %w", penalty, ErrConfiguration)
	}
}

// PathPoint is one fit of a regularization path.
type PathPoint struct {
	Alpha float64     `json:"alpha"`
	Model LinearModel `json:"model"`
	Score float64     `json:"score"`
}

// RegularizationPath fits one model per alpha. Fits are independent, so up to
// threads of them run at once; the result keeps the order of alphas.
func RegularizationPath(samples []Sample, penalty Penalty, alphas []float64, threads int) ([]PathPoint, error) {
	if _, _, err := validatedDimensions(samples); err != nil {
		return nil, regressionErrorf(opPath, err)
	}
	for _, alpha := range alphas {
		if err := validateAlpha(alpha); err != nil {
			return nil, regressionErrorf(opPath, err)
		}
		if penalty == OLS {
			if err := validateOLSAlpha(alpha); err != nil {
				return nil, regressionErrorf(opPath, err)
			}
		}
	}
	if threads < 1 {
		threads = 1
	}

	result := make([]PathPoint, len(alphas))
	var group errgroup.Group
	group.SetLimit(threads)
	for ind, alpha := range alphas {
		group.Go(func() error {
			model, err := Fit(samples, penalty, alpha)
			if err != nil {
				return fmt.Errorf("alpha %g: %w", alpha, err)
			}
			score, err := Score(model, samples)
			if err != nil {
				return err
			}
			result[ind] = PathPoint{Alpha: alpha, Model: model, Score: score}
			return nil
		})
	}
	if err := group.Wait(); err != nil {
		return nil, regressionErrorf(opPath, err)
	}
	return result, nil
}

func validateOLSAlpha(alpha float64) error {
	if alpha != 0 {
		return fmt.Errorf("ols with alpha %v: %w", alpha, ErrConfiguration)
	}
	return nil
}
