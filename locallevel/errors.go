package locallevel

import "fmt"

// FitReason identifies why a model fit failed.
type FitReason string

const (
	// InsufficientData means the training window holds fewer observations
	// than the model has free parameters.
	InsufficientData FitReason = "insufficient_data"
	// NonConvergence means the likelihood search exhausted its iteration
	// budget without settling on finite parameter estimates. Recoverable:
	// the caller may retry with fewer controls or a longer window.
	NonConvergence FitReason = "non_convergence"
)

// FitError reports a failed model estimation.
type FitError struct {
	Reason FitReason
	Detail string
}

func (e *FitError) Error() string {
	return fmt.Sprintf("locallevel: fit failed (%s): %s", e.Reason, e.Detail)
}

// DegenerateForecastError reports a numerically unstable projection, such as
// a negative or non-finite predictive variance.
type DegenerateForecastError struct {
	Horizon int
	Detail  string
}

func (e *DegenerateForecastError) Error() string {
	return fmt.Sprintf("locallevel: degenerate forecast at horizon %d: %s", e.Horizon, e.Detail)
}
