package impact

import (
	"testing"

	"github.com/stretchr/testify/assert"
)

func sampleReport(tail float64) *Report {
	return &Report{
		Confidence:           0.95,
		ObservedAverage:      120.504,
		PredictedAverage:     100.246,
		AverageEffect:        20.258,
		AverageEffectLower:   15.1,
		AverageEffectUpper:   25.4,
		ObservedTotal:        2410.08,
		PredictedTotal:       2004.92,
		CumulativeEffect:     405.16,
		CumulativeLowerTotal: 302.0,
		CumulativeUpperTotal: 508.3,
		RelativeEffectPct:    20.21,
		RelativeLowerPct:     15.06,
		RelativeUpperPct:     25.35,
		TailProbability:      tail,
	}
}

func TestSummaryRounding(t *testing.T) {
	text := sampleReport(0.001).Summary()

	// Absolute values to 2 decimals, percentages to 1.
	assert.Contains(t, text, "average value of approximately 120.50")
	assert.Contains(t, text, "expected an average response of 100.25")
	assert.Contains(t, text, "20.26 on average")
	assert.Contains(t, text, "+20.2%")
	assert.Contains(t, text, "95% interval")
}

func TestSummarySignificant(t *testing.T) {
	text := sampleReport(0.001).Summary()
	assert.Contains(t, text, "statistically significant")
	assert.NotContains(t, text, "spurious")
}

func TestSummaryNotSignificant(t *testing.T) {
	text := sampleReport(0.3).Summary()
	assert.Contains(t, text, "spurious")
}

func TestSummaryDeterministic(t *testing.T) {
	r := sampleReport(0.02)
	assert.Equal(t, r.Summary(), r.Summary())
}

func TestSignificant(t *testing.T) {
	assert.True(t, sampleReport(0.01).Significant())  // below (1-0.95)/2
	assert.False(t, sampleReport(0.03).Significant()) // above (1-0.95)/2
	assert.False(t, sampleReport(0.5).Significant())
}
