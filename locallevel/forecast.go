package locallevel

import (
	"errors"
	"fmt"
	"math"
)

// Forecast projects the model forward from the end of the training window.
// controls carries future control values, one column per fitted control in
// the same order, each at least steps long; pass nil when the model was
// fitted without controls.
//
// The point forecast propagates the final filtered level plus drift; the
// predictive variance accumulates one level innovation per step on top of
// the final state uncertainty and the observation noise, so uncertainty
// widens with the horizon. The actual target is never re-observed during
// projection.
func (m *Model) Forecast(steps int, controls [][]float64) (points, variances []float64, err error) {
	if !m.fitted {
		return nil, nil, errors.New("model must be fitted before forecasting")
	}
	if steps < 1 {
		return nil, nil, errors.New("steps must be at least 1")
	}
	if len(controls) != len(m.Coeffs) {
		return nil, nil, fmt.Errorf("model has %d controls, got %d forecast columns", len(m.Coeffs), len(controls))
	}
	for j, c := range controls {
		if len(c) < steps {
			return nil, nil, fmt.Errorf("control column %d has %d rows, need %d", j, len(c), steps)
		}
	}

	reg := regressionComponent(m.Coeffs, controls, steps)

	points = make([]float64, steps)
	variances = make([]float64, steps)
	for h := 0; h < steps; h++ {
		horizon := float64(h + 1)
		points[h] = m.finalLevel + m.Drift*horizon + reg[h]
		variances[h] = m.finalVar + horizon*m.LevelVariance + m.ObsVariance

		if math.IsNaN(points[h]) || math.IsInf(points[h], 0) {
			return nil, nil, &DegenerateForecastError{Horizon: h + 1, Detail: "non-finite point forecast"}
		}
		if variances[h] < 0 || math.IsNaN(variances[h]) || math.IsInf(variances[h], 0) {
			return nil, nil, &DegenerateForecastError{
				Horizon: h + 1,
				Detail:  fmt.Sprintf("predictive variance %v", variances[h]),
			}
		}
	}

	return points, variances, nil
}
