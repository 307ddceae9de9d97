// Package impact estimates the causal effect of an intervention on a time
// series.
//
// An analysis compares the target's observed post-intervention trajectory
// against a counterfactual projected by a local-level structural model
// fitted on pre-intervention data only. The divergence between observation
// and projection, with confidence bounds, is the estimated causal effect.
//
// # Running an Analysis
//
//	table, err := timeseries.LoadTable("sales.csv", nil)
//	window, err := impact.WindowAround(table, intervention)
//	result, err := impact.Run(table, impact.Config{
//	    Target:   "sales",
//	    Controls: []string{"visits"},
//	    Window:   window,
//	})
//	fmt.Println(result.Report.Summary())
//
// # Error Taxonomy
//
// Run fails fast with a typed error and never returns a partial result:
//
//   - *ValidationError: malformed table, columns, or window. Fix the input
//     and retry.
//   - *locallevel.FitError: the model could not be estimated. Retrying with
//     fewer controls or a longer pre-period is the caller's decision; the
//     core never retries on its own.
//   - *locallevel.DegenerateForecastError: numerically unstable projection,
//     surfaced rather than silently approximated.
//
// Distinguish them with errors.As:
//
//	var verr *impact.ValidationError
//	if errors.As(err, &verr) && verr.Code == impact.MissingTargetColumn {
//	    // ask the user to pick a different column
//	}
package impact
