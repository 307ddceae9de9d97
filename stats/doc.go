// Package stats provides residual diagnostics for fitted time series models.
//
// The diagnostics operate on one-step-ahead model residuals and are
// advisory: they flag remaining autocorrelation the model did not capture
// but never fail an analysis.
//
// # Autocorrelation
//
// Calculate the autocorrelation function of a residual series:
//
//	acf := stats.ACF(residuals, 10)
//	result := stats.ACFWithConfidence(residuals, 10)
//	flagged := stats.SignificantLags(result.Values, result.ConfBounds)
//
// # Portmanteau Tests
//
// Test residuals for joint autocorrelation:
//
//	lb := stats.LjungBox(residuals, 10, fitdf)
//	if lb != nil && lb.PValue < 0.05 {
//	    // residuals still autocorrelated
//	}
//
//	dw := stats.DurbinWatson(residuals.Values)
package stats
