package impact

import (
	"math"
	"time"

	"gonum.org/v1/gonum/stat/distuv"
)

// Report holds the estimated causal effect over the post-period.
type Report struct {
	Confidence float64

	// Per post-period row, aligned with Dates.
	Dates           []time.Time
	Pointwise       []float64
	PointwiseLower  []float64
	PointwiseUpper  []float64
	Cumulative      []float64
	CumulativeLower []float64
	CumulativeUpper []float64

	// Summary statistics.
	AverageEffect        float64
	AverageEffectLower   float64
	AverageEffectUpper   float64
	CumulativeEffect     float64
	CumulativeLowerTotal float64
	CumulativeUpperTotal float64
	RelativeEffectPct    float64
	RelativeLowerPct     float64
	RelativeUpperPct     float64

	// TailProbability is the probability that the true cumulative effect is
	// zero or of the opposite sign, from the aggregated predictive
	// distribution. Values near 0.5 mean no evidence of an effect.
	TailProbability float64

	ObservedAverage  float64
	ObservedTotal    float64
	PredictedAverage float64
	PredictedTotal   float64
}

// computeEffect derives the effect report from the observed post-period
// target and the matching counterfactual slice. Cumulative bounds aggregate
// per-step predictive variances under an independence assumption; this is a
// conservative approximation when forecast errors are correlated across
// time.
func computeEffect(dates []time.Time, observed []float64, point, lower, upper, variance []float64, confidence float64) *Report {
	n := len(observed)
	r := &Report{
		Confidence:      confidence,
		Dates:           make([]time.Time, n),
		Pointwise:       make([]float64, n),
		PointwiseLower:  make([]float64, n),
		PointwiseUpper:  make([]float64, n),
		Cumulative:      make([]float64, n),
		CumulativeLower: make([]float64, n),
		CumulativeUpper: make([]float64, n),
	}
	copy(r.Dates, dates)

	z := distuv.Normal{Mu: 0, Sigma: 1}.Quantile((1 + confidence) / 2)

	cumEffect := 0.0
	cumVariance := 0.0
	for i := 0; i < n; i++ {
		r.Pointwise[i] = observed[i] - point[i]
		// Subtracting the upper counterfactual bound gives the lower effect
		// bound, and vice versa.
		r.PointwiseLower[i] = observed[i] - upper[i]
		r.PointwiseUpper[i] = observed[i] - lower[i]

		cumEffect += r.Pointwise[i]
		cumVariance += variance[i]
		se := math.Sqrt(cumVariance)
		r.Cumulative[i] = cumEffect
		r.CumulativeLower[i] = cumEffect - z*se
		r.CumulativeUpper[i] = cumEffect + z*se

		r.ObservedTotal += observed[i]
		r.PredictedTotal += point[i]
	}

	nf := float64(n)
	r.ObservedAverage = r.ObservedTotal / nf
	r.PredictedAverage = r.PredictedTotal / nf

	r.CumulativeEffect = cumEffect
	r.CumulativeLowerTotal = r.CumulativeLower[n-1]
	r.CumulativeUpperTotal = r.CumulativeUpper[n-1]

	r.AverageEffect = cumEffect / nf
	r.AverageEffectLower = r.CumulativeLowerTotal / nf
	r.AverageEffectUpper = r.CumulativeUpperTotal / nf

	if r.PredictedTotal != 0 {
		r.RelativeEffectPct = cumEffect / r.PredictedTotal * 100
		relLo := r.CumulativeLowerTotal / r.PredictedTotal * 100
		relHi := r.CumulativeUpperTotal / r.PredictedTotal * 100
		// Dividing by a negative total flips the bound order.
		if relLo > relHi {
			relLo, relHi = relHi, relLo
		}
		r.RelativeLowerPct = relLo
		r.RelativeUpperPct = relHi
	}

	r.TailProbability = tailProbability(cumEffect, cumVariance)
	return r
}

// tailProbability evaluates the mass of the cumulative effect's predictive
// distribution on the far side of zero.
func tailProbability(effect, variance float64) float64 {
	se := math.Sqrt(variance)
	if se <= 1e-12 {
		// Degenerate distribution: either exactly no effect or certain one.
		if math.Abs(effect) <= 1e-9 {
			return 0.5
		}
		return 0
	}
	normal := distuv.Normal{Mu: 0, Sigma: 1}
	return normal.CDF(-math.Abs(effect) / se)
}
