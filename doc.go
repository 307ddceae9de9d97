// Package causalimpact estimates the causal effect of an intervention on a
// time series.
//
// The library fits a local-level structural time-series model (optionally
// with a static regression on correlated control series) on a
// pre-intervention window, projects the counterfactual trajectory the target
// would have followed absent the intervention, and quantifies the divergence
// between observation and projection with confidence bounds and a
// significance estimate.
//
// # Quick Start
//
// Load a table and run an analysis:
//
//	table, _ := timeseries.LoadTable("sales.csv", nil)
//	window, _ := impact.WindowAround(table, intervention)
//	result, err := impact.Run(table, impact.Config{
//	    Target: "sales",
//	    Window: window,
//	})
//	fmt.Println(result.Report.Summary())
//
// # Packages
//
// The library is organized into the following packages:
//
//   - timeseries: Series and Table data structures, CSV loading
//   - stats: residual diagnostics (ACF, Ljung-Box, Durbin-Watson)
//   - locallevel: the local-level structural model, Kalman filter, forecasting
//   - impact: validation, effect calculation, reporting, and the Run entry point
//
// # References
//
//   - Harvey, A.C. (1989). Forecasting, Structural Time Series Models and the Kalman Filter
//   - Brodersen, K.H. et al. (2015). Inferring causal impact using Bayesian structural time-series models
package causalimpact
