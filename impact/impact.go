// Package impact estimates the causal effect of an intervention on a time
// series by comparing its observed post-intervention trajectory against a
// counterfactual projected from pre-intervention behavior.
package impact

import (
	"github.com/go-playground/validator/v10"
	"github.com/rs/zerolog"

	"github.com/gabriellapppaixao/causal-impact-mvp/locallevel"
	"github.com/gabriellapppaixao/causal-impact-mvp/timeseries"
)

// DefaultConfidence is the coverage level of the counterfactual confidence
// band when none is configured.
const DefaultConfidence = 0.95

// Config describes one analysis request.
type Config struct {
	// Target is the name of the column whose causal response is measured.
	Target string `validate:"required"`
	// Controls names columns assumed unaffected by the intervention, used
	// to improve the counterfactual. May be empty.
	Controls []string `validate:"omitempty,dive,required"`
	// Window delimits the pre- and post-intervention periods.
	Window Window `validate:"required"`
	// Confidence is the coverage of the uncertainty bands, in (0, 1).
	// Defaults to DefaultConfidence.
	Confidence float64 `validate:"omitempty,gt=0,lt=1"`
	// MinPreObs overrides the minimum pre-period length accepted by
	// validation. Defaults to DefaultMinPreObs.
	MinPreObs int `validate:"omitempty,gte=2"`
	// Model overrides the model estimation settings.
	Model *locallevel.Config `validate:"-"`
	// Logger receives progress events. Defaults to a no-op logger.
	Logger zerolog.Logger `validate:"-"`
}

// Result is the full outcome of one analysis run.
type Result struct {
	Report         *Report
	Counterfactual *Counterfactual
	Model          *locallevel.Summary
}

var configValidator = validator.New()

// Run executes one causal impact analysis: validate the table and window,
// fit the local-level model on the pre-period, project the counterfactual
// across the remaining rows, and derive the effect report.
//
// Each invocation is isolated: the input table is never modified and no
// state is shared across runs. Errors are typed and fail fast with no
// partial result: *ValidationError for malformed input,
// *locallevel.FitError when the model cannot be estimated (recoverable by
// retrying with fewer controls or a longer pre-period), and
// *locallevel.DegenerateForecastError for numerically unstable projections.
func Run(table *timeseries.Table, cfg Config) (*Result, error) {
	if cfg.Confidence == 0 {
		cfg.Confidence = DefaultConfidence
	}
	if err := configValidator.Struct(cfg); err != nil {
		return nil, &ValidationError{Code: InvalidConfig, Detail: err.Error()}
	}

	log := cfg.Logger

	idx, err := validateInputs(table, cfg.Target, cfg.Controls, cfg.Window, cfg.MinPreObs)
	if err != nil {
		return nil, err
	}
	log.Debug().
		Int("pre_rows", idx.preHi-idx.preLo).
		Int("post_rows", idx.postHi-idx.postLo).
		Str("target", cfg.Target).
		Strs("controls", cfg.Controls).
		Msg("inputs validated")

	modelCfg := locallevel.DefaultConfig()
	if cfg.Model != nil {
		modelCfg = *cfg.Model
	}
	modelCfg.Logger = log

	preTarget := table.Column(cfg.Target).Slice(idx.preLo, idx.preHi)
	preControls := make([]*timeseries.Series, len(cfg.Controls))
	for i, name := range cfg.Controls {
		preControls[i] = table.Column(name).Slice(idx.preLo, idx.preHi)
	}

	model := locallevel.New(modelCfg)
	if err := model.Fit(preTarget, preControls); err != nil {
		return nil, err
	}

	cf, err := buildCounterfactual(model, table, cfg.Controls, idx, cfg.Confidence)
	if err != nil {
		return nil, err
	}

	// Post-period rows inside the counterfactual.
	lo := idx.postLo - idx.preLo
	hi := idx.postHi - idx.preLo
	observed := table.Columns[cfg.Target][idx.postLo:idx.postHi]

	report := computeEffect(
		cf.Dates[lo:hi],
		observed,
		cf.Point[lo:hi],
		cf.Lower[lo:hi],
		cf.Upper[lo:hi],
		cf.Variance[lo:hi],
		cfg.Confidence,
	)

	log.Info().
		Float64("average_effect", report.AverageEffect).
		Float64("relative_effect_pct", report.RelativeEffectPct).
		Float64("tail_probability", report.TailProbability).
		Msg("analysis complete")

	return &Result{
		Report:         report,
		Counterfactual: cf,
		Model:          model.Summary(),
	}, nil
}
