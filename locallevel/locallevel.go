// Package locallevel implements a local-level structural time series model
// with drift and optional static regression on control series.
package locallevel

import (
	"fmt"
	"math"

	"github.com/rs/zerolog"

	"github.com/gabriellapppaixao/causal-impact-mvp/stats"
	"github.com/gabriellapppaixao/causal-impact-mvp/timeseries"
)

// Config holds estimation settings for the likelihood search.
type Config struct {
	MaxIter     int     // iteration budget for the likelihood search
	LogRatioMin float64 // lower log10 bound for the signal-to-noise ratio
	LogRatioMax float64 // upper log10 bound for the signal-to-noise ratio
	Tolerance   float64 // bracket width (in log10 space) at which the search stops
	Logger      zerolog.Logger
}

// DefaultConfig returns the default estimation settings.
func DefaultConfig() Config {
	return Config{
		MaxIter:     100,
		LogRatioMin: -8,
		LogRatioMax: 8,
		Tolerance:   1e-5,
		Logger:      zerolog.Nop(),
	}
}

// Model represents a local-level model with drift:
//
//	level[t] = level[t-1] + drift + eta[t],   eta ~ N(0, LevelVariance)
//	y[t]     = level[t] + x[t]·beta + eps[t], eps ~ N(0, ObsVariance)
//
// The drift term lets the counterfactual carry an established trend forward
// instead of projecting flat from the last level. All parameters are
// estimated from the training window alone.
type Model struct {
	LevelVariance float64   // variance of the level innovations
	ObsVariance   float64   // variance of the observation noise
	Drift         float64   // per-step deterministic level change
	Coeffs        []float64 // regression coefficients, one per control
	ControlNames  []string
	LogLik        float64
	AIC           float64
	BIC           float64

	config     Config
	fitted     bool
	nObs       int
	finalLevel float64 // filtered level after the last training observation
	finalVar   float64 // filtered level variance after the last training observation
	fittedVals []float64
	predVars   []float64
	residuals  []float64
}

// New creates a new unfitted model with the given configuration.
func New(cfg Config) *Model {
	if cfg.MaxIter <= 0 {
		cfg.MaxIter = DefaultConfig().MaxIter
	}
	if cfg.LogRatioMin >= cfg.LogRatioMax {
		cfg.LogRatioMin = DefaultConfig().LogRatioMin
		cfg.LogRatioMax = DefaultConfig().LogRatioMax
	}
	if cfg.Tolerance <= 0 {
		cfg.Tolerance = DefaultConfig().Tolerance
	}
	return &Model{config: cfg}
}

// NumParams returns the number of free parameters for a model with k
// controls: k coefficients, the drift, and the two variances.
func NumParams(k int) int {
	return k + 3
}

// Fit estimates the model from the training window. The target and every
// control must cover the same rows. Estimation is in two stages: control
// coefficients by least squares, then the two variances by maximum
// likelihood on the regression-adjusted series, concentrating the
// observation variance out and searching the signal-to-noise ratio with a
// bounded golden-section search.
func (m *Model) Fit(target *timeseries.Series, controls []*timeseries.Series) error {
	n := target.Len()
	k := len(controls)

	if n <= NumParams(k) {
		return &FitError{
			Reason: InsufficientData,
			Detail: fmt.Sprintf("%d observations for %d free parameters", n, NumParams(k)),
		}
	}

	controlCols := make([][]float64, k)
	names := make([]string, k)
	for i, c := range controls {
		if c.Len() != n {
			return &FitError{
				Reason: InsufficientData,
				Detail: fmt.Sprintf("control %s has %d rows, target has %d", c.Name, c.Len(), n),
			}
		}
		controlCols[i] = c.Values
		names[i] = c.Name
	}

	log := m.config.Logger
	log.Debug().Int("observations", n).Int("controls", k).Msg("fitting local level model")

	coeffs, err := olsCoefficients(target.Values, controlCols)
	if err != nil {
		return &FitError{Reason: NonConvergence, Detail: "control regression: " + err.Error()}
	}

	reg := regressionComponent(coeffs, controlCols, n)
	z := make([]float64, n)
	for i, v := range target.Values {
		z[i] = v - reg[i]
	}

	drift := meanDiff(z)

	logRatio, evals, err := m.searchRatio(z, drift)
	if err != nil {
		return err
	}
	ratio := math.Pow(10, logRatio)

	// Recover the concentrated observation variance at the optimum.
	unit := runFilter(z, drift, ratio, 1)
	sigma2, sumLogF, steps := concentratedVariance(unit)
	if steps == 0 {
		return &FitError{Reason: InsufficientData, Detail: "no usable likelihood terms"}
	}

	m.Drift = drift
	m.Coeffs = coeffs
	m.ControlNames = names
	m.ObsVariance = sigma2
	m.LevelVariance = ratio * sigma2
	m.nObs = n

	if sigma2 > 0 {
		sf := float64(steps)
		m.LogLik = -0.5*sf*(math.Log(2*math.Pi)+math.Log(sigma2)+1) - 0.5*sumLogF
	} else {
		// Noiseless training data: the likelihood is unbounded above.
		m.LogLik = math.Inf(1)
	}
	kf := float64(NumParams(k))
	m.AIC = -2*m.LogLik + 2*kf
	m.BIC = -2*m.LogLik + kf*math.Log(float64(n))

	final := runFilter(z, drift, m.LevelVariance, m.ObsVariance)
	m.finalLevel = final.finalLevel
	m.finalVar = final.finalVar

	m.fittedVals = make([]float64, n)
	m.predVars = make([]float64, n)
	m.residuals = make([]float64, n)
	for t := 0; t < n; t++ {
		m.fittedVals[t] = final.preds[t] + reg[t]
		m.predVars[t] = final.predVars[t]
		m.residuals[t] = target.Values[t] - m.fittedVals[t]
	}

	m.fitted = true
	log.Debug().
		Float64("signal_to_noise", ratio).
		Float64("obs_variance", sigma2).
		Int("evaluations", evals).
		Msg("local level model fitted")
	return nil
}

// searchRatio maximizes the concentrated log-likelihood over the
// signal-to-noise ratio using golden-section search in log10 space.
func (m *Model) searchRatio(z []float64, drift float64) (logRatio float64, evals int, err error) {
	const golden = 0.6180339887498949

	lo := m.config.LogRatioMin
	hi := m.config.LogRatioMax

	objective := func(lr float64) float64 {
		evals++
		res := runFilter(z, drift, math.Pow(10, lr), 1)
		sigma2, sumLogF, steps := concentratedVariance(res)
		if steps == 0 {
			return math.Inf(-1)
		}
		if sigma2 <= 0 {
			// Perfect in-sample fit; any ratio is as good as another.
			return math.Inf(1)
		}
		sf := float64(steps)
		return -0.5*sf*(math.Log(2*math.Pi)+math.Log(sigma2)+1) - 0.5*sumLogF
	}

	x1 := hi - golden*(hi-lo)
	x2 := lo + golden*(hi-lo)
	f1 := objective(x1)
	f2 := objective(x2)

	iter := 0
	for hi-lo > m.config.Tolerance {
		if iter >= m.config.MaxIter {
			return 0, evals, &FitError{
				Reason: NonConvergence,
				Detail: fmt.Sprintf("likelihood search did not converge in %d iterations", m.config.MaxIter),
			}
		}
		iter++

		if math.IsNaN(f1) && math.IsNaN(f2) {
			return 0, evals, &FitError{Reason: NonConvergence, Detail: "likelihood is undefined over the search range"}
		}

		if f1 > f2 || math.IsNaN(f2) {
			hi = x2
			x2 = x1
			f2 = f1
			x1 = hi - golden*(hi-lo)
			f1 = objective(x1)
		} else {
			lo = x1
			x1 = x2
			f1 = f2
			x2 = lo + golden*(hi-lo)
			f2 = objective(x2)
		}
	}

	best := (lo + hi) / 2
	if fBest := objective(best); math.IsNaN(fBest) || math.IsInf(fBest, -1) {
		return 0, evals, &FitError{Reason: NonConvergence, Detail: "no finite likelihood found"}
	}
	return best, evals, nil
}

// concentratedVariance computes the profile estimate of the observation
// variance from a unit-variance filter pass, along with the accumulated
// log predictive variances. The diffuse first step is excluded.
func concentratedVariance(res filterResult) (sigma2, sumLogF float64, steps int) {
	ssq := 0.0
	for t := 1; t < len(res.innov); t++ {
		f := res.predVars[t]
		if f <= 0 || math.IsInf(f, 0) || math.IsNaN(f) {
			continue
		}
		ssq += res.innov[t] * res.innov[t] / f
		sumLogF += math.Log(f)
		steps++
	}
	if steps == 0 {
		return 0, 0, 0
	}
	return ssq / float64(steps), sumLogF, steps
}

// meanDiff returns the mean first difference of the series, the drift
// estimate for the level component.
func meanDiff(z []float64) float64 {
	if len(z) < 2 {
		return 0
	}
	sum := 0.0
	for i := 1; i < len(z); i++ {
		sum += z[i] - z[i-1]
	}
	return sum / float64(len(z)-1)
}

// Fitted reports whether the model has been fitted.
func (m *Model) Fitted() bool {
	return m.fitted
}

// NObs returns the number of training observations.
func (m *Model) NObs() int {
	return m.nObs
}

// FittedValues returns the one-step-ahead fitted values on the target scale.
func (m *Model) FittedValues() []float64 {
	if !m.fitted {
		return nil
	}
	result := make([]float64, len(m.fittedVals))
	copy(result, m.fittedVals)
	return result
}

// PredictiveVariances returns the one-step-ahead predictive variances.
func (m *Model) PredictiveVariances() []float64 {
	if !m.fitted {
		return nil
	}
	result := make([]float64, len(m.predVars))
	copy(result, m.predVars)
	return result
}

// Residuals returns the one-step-ahead residuals.
func (m *Model) Residuals() []float64 {
	if !m.fitted {
		return nil
	}
	result := make([]float64, len(m.residuals))
	copy(result, m.residuals)
	return result
}

// Summary holds a fitted model summary with residual diagnostics.
type Summary struct {
	LevelVariance float64
	ObsVariance   float64
	Drift         float64
	Coeffs        []float64
	ControlNames  []string
	LogLik        float64
	AIC           float64
	BIC           float64
	NObs          int
	LjungBox      *stats.LjungBoxResult
	DurbinWatson  *stats.DurbinWatsonResult
	// ACFSignificantLags lists residual autocorrelation lags outside the 95%
	// bounds; a well-specified model leaves it empty or near-empty.
	ACFSignificantLags []int
}

// Summary returns a summary of the fitted model. Diagnostics run on the
// standardized one-step-ahead residuals.
func (m *Model) Summary() *Summary {
	if !m.fitted {
		return nil
	}

	standardized := make([]float64, 0, len(m.residuals))
	for t := 1; t < len(m.residuals); t++ {
		if m.predVars[t] > 0 {
			standardized = append(standardized, m.residuals[t]/math.Sqrt(m.predVars[t]))
		} else {
			standardized = append(standardized, m.residuals[t])
		}
	}

	residSeries := timeseries.New(standardized)
	lb := stats.LjungBox(residSeries, 10, NumParams(len(m.Coeffs)))
	dw := stats.DurbinWatson(standardized)

	var acfLags []int
	if acf := stats.ACFWithConfidence(residSeries, 10); acf != nil {
		acfLags = stats.SignificantLags(acf.Values, acf.ConfBounds)
	}

	return &Summary{
		LevelVariance:      m.LevelVariance,
		ObsVariance:        m.ObsVariance,
		Drift:              m.Drift,
		Coeffs:             m.Coeffs,
		ControlNames:       m.ControlNames,
		LogLik:             m.LogLik,
		AIC:                m.AIC,
		BIC:                m.BIC,
		NObs:               m.nObs,
		LjungBox:           lb,
		DurbinWatson:       dw,
		ACFSignificantLags: acfLags,
	}
}
