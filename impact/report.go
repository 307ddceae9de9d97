package impact

import (
	"fmt"
	"strings"
)

// Summary renders the report as a human-readable narrative. Absolute values
// are rounded to 2 decimal places and percentages to 1; the wording is
// deterministic given the report numbers.
func (r *Report) Summary() string {
	var b strings.Builder

	fmt.Fprintf(&b,
		"During the post-intervention period, the response variable had an average value of approximately %.2f. ",
		r.ObservedAverage)
	fmt.Fprintf(&b,
		"By contrast, in the absence of an intervention, we would have expected an average response of %.2f. ",
		r.PredictedAverage)
	fmt.Fprintf(&b,
		"Subtracting this prediction from the observed response yields an estimate of the causal effect the intervention had on the response variable: %.2f on average, with a %s interval of [%.2f, %.2f].\n\n",
		r.AverageEffect, r.confidenceLabel(), r.AverageEffectLower, r.AverageEffectUpper)

	fmt.Fprintf(&b,
		"Summing up the individual data points during the post-intervention period, the response variable had an overall value of %.2f, where %.2f would have been expected. ",
		r.ObservedTotal, r.PredictedTotal)
	fmt.Fprintf(&b,
		"The cumulative effect of the intervention is therefore %.2f, with a %s interval of [%.2f, %.2f]. ",
		r.CumulativeEffect, r.confidenceLabel(), r.CumulativeLowerTotal, r.CumulativeUpperTotal)
	fmt.Fprintf(&b,
		"In relative terms, the response variable showed a change of %+.1f%% (%s interval: [%+.1f%%, %+.1f%%]).\n\n",
		r.RelativeEffectPct, r.confidenceLabel(), r.RelativeLowerPct, r.RelativeUpperPct)

	if r.Significant() {
		fmt.Fprintf(&b,
			"The probability of obtaining this effect by chance is small (tail probability p = %.3f). The causal effect can be considered statistically significant.",
			r.TailProbability)
	} else {
		fmt.Fprintf(&b,
			"The probability of obtaining this effect by chance is p = %.3f. The effect may be spurious and would generally not be considered statistically significant.",
			r.TailProbability)
	}

	return b.String()
}

// Significant reports whether the estimated effect is statistically
// significant at the report's confidence level.
func (r *Report) Significant() bool {
	return r.TailProbability < (1-r.Confidence)/2
}

func (r *Report) confidenceLabel() string {
	return fmt.Sprintf("%.0f%%", r.Confidence*100)
}
