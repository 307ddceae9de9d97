// Package main demonstrates a causal impact analysis on CSV data.
//
// Configuration comes from flags-free sources: an optional impact.yaml in
// the working directory, IMPACT_* environment variables, and a CSV path as
// the first command-line argument. Results are printed as a narrative and
// exported as JSON for external charting.
package main

import (
	"encoding/json"
	"errors"
	"fmt"
	"os"
	"strings"
	"time"

	"github.com/rs/zerolog"
	"github.com/spf13/viper"

	"github.com/gabriellapppaixao/causal-impact-mvp/impact"
	"github.com/gabriellapppaixao/causal-impact-mvp/locallevel"
	"github.com/gabriellapppaixao/causal-impact-mvp/timeseries"
)

// ImpactExport holds the analysis output for JSON export.
type ImpactExport struct {
	Target          string    `json:"target"`
	Controls        []string  `json:"controls,omitempty"`
	Dates           []string  `json:"dates"`
	Observed        []float64 `json:"observed"`
	Counterfactual  []float64 `json:"counterfactual"`
	Lower           []float64 `json:"lower"`
	Upper           []float64 `json:"upper"`
	Pointwise       []float64 `json:"pointwise_effect"`
	Cumulative      []float64 `json:"cumulative_effect"`
	AverageEffect   float64   `json:"average_effect"`
	RelativePct     float64   `json:"relative_effect_pct"`
	TailProbability float64   `json:"tail_probability"`
	Summary         string    `json:"summary"`
}

func main() {
	viper.SetDefault("csv", "data.csv")
	viper.SetDefault("target", "y")
	viper.SetDefault("controls", "")
	viper.SetDefault("intervention", "")
	viper.SetDefault("confidence", impact.DefaultConfidence)
	viper.SetDefault("output", "impact_results.json")
	viper.SetDefault("verbose", false)

	viper.SetEnvPrefix("impact")
	viper.AutomaticEnv()

	viper.SetConfigName("impact")
	viper.SetConfigType("yaml")
	viper.AddConfigPath(".")
	if err := viper.ReadInConfig(); err != nil {
		var notFound viper.ConfigFileNotFoundError
		if !errors.As(err, &notFound) {
			fmt.Fprintf(os.Stderr, "config: %v\n", err)
			os.Exit(1)
		}
	}

	if len(os.Args) > 1 {
		viper.Set("csv", os.Args[1])
	}

	level := zerolog.InfoLevel
	if viper.GetBool("verbose") {
		level = zerolog.DebugLevel
	}
	log := zerolog.New(zerolog.ConsoleWriter{Out: os.Stderr}).
		Level(level).
		With().Timestamp().Logger()

	if err := run(log); err != nil {
		log.Fatal().Err(err).Msg("analysis failed")
	}
}

func run(log zerolog.Logger) error {
	csvPath := viper.GetString("csv")
	target := viper.GetString("target")
	controls := splitList(viper.GetString("controls"))

	table, err := timeseries.LoadTable(csvPath, nil)
	if err != nil {
		return fmt.Errorf("loading %s: %w", csvPath, err)
	}
	log.Info().Str("csv", csvPath).Int("rows", table.Len()).Strs("columns", table.Names).Msg("table loaded")

	// Daily grid with gaps filled, the preprocessing interactive callers do
	// before handing data to the engine.
	table = table.Regularize(0)

	window, err := buildWindow(table)
	if err != nil {
		return err
	}
	log.Info().
		Str("pre", fmt.Sprintf("%s..%s", window.PreStart.Format("2006-01-02"), window.PreEnd.Format("2006-01-02"))).
		Str("post", fmt.Sprintf("%s..%s", window.PostStart.Format("2006-01-02"), window.PostEnd.Format("2006-01-02"))).
		Msg("analysis window")

	cfg := impact.Config{
		Target:     target,
		Controls:   controls,
		Window:     window,
		Confidence: viper.GetFloat64("confidence"),
		Logger:     log,
	}

	result, err := impact.Run(table, cfg)
	if err != nil {
		// A fit that does not converge is recoverable: retry with the
		// controls dropped.
		var fitErr *locallevel.FitError
		if errors.As(err, &fitErr) && fitErr.Reason == locallevel.NonConvergence && len(controls) > 0 {
			log.Warn().Err(err).Msg("fit did not converge, retrying without controls")
			cfg.Controls = nil
			result, err = impact.Run(table, cfg)
		}
		if err != nil {
			return err
		}
	}

	fmt.Println(strings.Repeat("=", 72))
	fmt.Println("CAUSAL IMPACT ANALYSIS")
	fmt.Println(strings.Repeat("=", 72))
	fmt.Println()
	fmt.Println(result.Report.Summary())
	fmt.Println()

	if lb := result.Model.LjungBox; lb != nil && result.Model.DurbinWatson != nil {
		fmt.Printf("Residual diagnostics: Ljung-Box Q=%.2f (p=%.3f), Durbin-Watson=%.2f\n",
			lb.Statistic, lb.PValue, result.Model.DurbinWatson.Statistic)
	}

	return export(result, table, target, controls, viper.GetString("output"), log)
}

// buildWindow splits the table span at the configured intervention date, or
// at 80% of the rows when none is configured.
func buildWindow(table *timeseries.Table) (impact.Window, error) {
	interventionStr := viper.GetString("intervention")
	if interventionStr == "" {
		split := table.Len() * 4 / 5
		return impact.WindowAround(table, table.Dates[split])
	}
	intervention, err := time.Parse("2006-01-02", interventionStr)
	if err != nil {
		return impact.Window{}, fmt.Errorf("parsing intervention date %q: %w", interventionStr, err)
	}
	return impact.WindowAround(table, intervention)
}

// export writes the analysis result as JSON for external charting.
func export(result *impact.Result, table *timeseries.Table, target string, controls []string, path string, log zerolog.Logger) error {
	cf := result.Counterfactual
	report := result.Report

	dates := make([]string, cf.Len())
	observed := make([]float64, cf.Len())
	targetCol := table.Columns[target]
	offset := table.Index(cf.Dates[0])
	for i := range cf.Dates {
		dates[i] = cf.Dates[i].Format("2006-01-02")
		observed[i] = targetCol[offset+i]
	}

	out := ImpactExport{
		Target:          target,
		Controls:        controls,
		Dates:           dates,
		Observed:        observed,
		Counterfactual:  cf.Point,
		Lower:           cf.Lower,
		Upper:           cf.Upper,
		Pointwise:       report.Pointwise,
		Cumulative:      report.Cumulative,
		AverageEffect:   report.AverageEffect,
		RelativePct:     report.RelativeEffectPct,
		TailProbability: report.TailProbability,
		Summary:         report.Summary(),
	}

	data, err := json.MarshalIndent(out, "", "  ")
	if err != nil {
		return err
	}
	if err := os.WriteFile(path, data, 0644); err != nil {
		return err
	}
	log.Info().Str("path", path).Msg("results exported")
	return nil
}

func splitList(s string) []string {
	if strings.TrimSpace(s) == "" {
		return nil
	}
	parts := strings.Split(s, ",")
	var out []string
	for _, p := range parts {
		if trimmed := strings.TrimSpace(p); trimmed != "" {
			out = append(out, trimmed)
		}
	}
	return out
}
