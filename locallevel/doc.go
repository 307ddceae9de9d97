// Package locallevel implements a local-level structural time series model
// with drift and optional static regression on control series.
//
// The model is
//
//	level[t] = level[t-1] + drift + eta[t],   eta ~ N(0, levelVar)
//	y[t]     = level[t] + x[t]·beta + eps[t], eps ~ N(0, obsVar)
//
// Control coefficients beta are estimated by least squares; the two
// variances by maximum likelihood through the Kalman filter, concentrating
// the observation variance out of the likelihood and searching the
// signal-to-noise ratio with a golden-section search. The drift is the mean
// first difference of the regression-adjusted training series.
//
// # Fitting and Forecasting
//
//	model := locallevel.New(locallevel.DefaultConfig())
//	if err := model.Fit(target, controls); err != nil {
//	    var fitErr *locallevel.FitError
//	    if errors.As(err, &fitErr) && fitErr.Reason == locallevel.NonConvergence {
//	        // retry without controls
//	    }
//	}
//	points, variances, err := model.Forecast(20, futureControls)
//
// Fit failures are typed: InsufficientData when the training window is
// shorter than the parameter count, NonConvergence when the likelihood
// search exhausts its budget. Both are recoverable by the caller.
// Forecast reports a DegenerateForecastError when a predictive variance is
// negative or non-finite instead of silently approximating.
package locallevel
