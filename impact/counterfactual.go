package impact

import (
	"math"
	"time"

	"gonum.org/v1/gonum/stat/distuv"

	"github.com/gabriellapppaixao/causal-impact-mvp/locallevel"
	"github.com/gabriellapppaixao/causal-impact-mvp/timeseries"
)

// Counterfactual is the estimated trajectory the target would have followed
// absent the intervention, with confidence bounds, spanning every row from
// the start of the pre-period to the end of the post-period.
type Counterfactual struct {
	Dates      []time.Time
	Point      []float64
	Lower      []float64
	Upper      []float64
	Variance   []float64
	Confidence float64
}

// Len returns the number of rows in the counterfactual.
func (c *Counterfactual) Len() int {
	return len(c.Dates)
}

// buildCounterfactual assembles the counterfactual over preLo..postHi:
// one-step-ahead fitted values inside the pre-period, forward projection
// from the end of the pre-period onwards. Rows between the pre and post
// periods (when the window leaves a gap) are part of the projection.
func buildCounterfactual(model *locallevel.Model, table *timeseries.Table, controls []string, idx windowIndexes, confidence float64) (*Counterfactual, error) {
	steps := idx.postHi - idx.preHi

	futureControls := make([][]float64, len(controls))
	for j, name := range controls {
		futureControls[j] = table.Columns[name][idx.preHi:idx.postHi]
	}

	points, variances, err := model.Forecast(steps, futureControls)
	if err != nil {
		return nil, err
	}

	total := idx.postHi - idx.preLo
	cf := &Counterfactual{
		Dates:      make([]time.Time, total),
		Point:      make([]float64, total),
		Lower:      make([]float64, total),
		Upper:      make([]float64, total),
		Variance:   make([]float64, total),
		Confidence: confidence,
	}
	copy(cf.Dates, table.Dates[idx.preLo:idx.postHi])

	fitted := model.FittedValues()
	fittedVars := model.PredictiveVariances()
	nPre := idx.preHi - idx.preLo
	copy(cf.Point[:nPre], fitted)
	copy(cf.Variance[:nPre], fittedVars)
	copy(cf.Point[nPre:], points)
	copy(cf.Variance[nPre:], variances)

	z := distuv.Normal{Mu: 0, Sigma: 1}.Quantile((1 + confidence) / 2)
	for i := range cf.Point {
		se := math.Sqrt(cf.Variance[i])
		cf.Lower[i] = cf.Point[i] - z*se
		cf.Upper[i] = cf.Point[i] + z*se
	}

	return cf, nil
}
