package impact

import (
	"fmt"
	"math"
	"sort"
	"time"

	"github.com/gabriellapppaixao/causal-impact-mvp/timeseries"
)

// DefaultMinPreObs is the minimum number of pre-period observations the
// validator accepts. The model fitter applies its own stricter bound based
// on the parameter count.
const DefaultMinPreObs = 2

// windowIndexes holds the validated row ranges, half-open.
type windowIndexes struct {
	preLo, preHi   int // pre-period rows [preLo, preHi)
	postLo, postHi int // post-period rows [postLo, postHi)
}

// validateInputs checks the table and window against the analysis contract:
// a dated table with the requested numeric columns, strictly increasing
// fixed-step dates, and a well-formed window inside the table span. Window
// boundaries snap inward to the rows they enclose; a boundary pair that
// encloses no rows yields an empty-period error. Pure function: the table is
// never modified.
func validateInputs(table *timeseries.Table, target string, controls []string, w Window, minPreObs int) (windowIndexes, error) {
	var idx windowIndexes

	if table == nil || table.Len() == 0 {
		return idx, &ValidationError{Code: MissingDateColumn, Detail: "table has no date rows"}
	}
	if !table.HasColumn(target) {
		return idx, &ValidationError{Code: MissingTargetColumn, Detail: fmt.Sprintf("target column %q not found", target)}
	}
	for _, name := range controls {
		if !table.HasColumn(name) {
			return idx, &ValidationError{Code: MissingTargetColumn, Detail: fmt.Sprintf("control column %q not found", name)}
		}
	}

	// Strictly increasing dates on a fixed step.
	if table.Len() > 1 {
		step := table.Dates[1].Sub(table.Dates[0])
		for i := 1; i < table.Len(); i++ {
			gap := table.Dates[i].Sub(table.Dates[i-1])
			if gap == 0 {
				return idx, &ValidationError{
					Code:   DuplicateTimestamp,
					Detail: fmt.Sprintf("duplicate date %s", fmtDate(table.Dates[i])),
				}
			}
			if gap != step {
				return idx, &ValidationError{
					Code:   NonUniformFrequency,
					Detail: fmt.Sprintf("gap of %s before %s, expected %s", gap, fmtDate(table.Dates[i]), step),
				}
			}
		}
	}

	// Window ordering and bounds.
	if w.PreStart.After(w.PreEnd) || !w.PreEnd.Before(w.PostStart) || w.PostStart.After(w.PostEnd) {
		return idx, &ValidationError{
			Code: WindowOutOfRange,
			Detail: fmt.Sprintf("window must satisfy pre_start <= pre_end < post_start <= post_end, got %s..%s / %s..%s",
				fmtDate(w.PreStart), fmtDate(w.PreEnd), fmtDate(w.PostStart), fmtDate(w.PostEnd)),
		}
	}

	first := table.Dates[0]
	last := table.Dates[table.Len()-1]
	if w.PreStart.Before(first) || w.PostEnd.After(last) {
		return idx, &ValidationError{
			Code: WindowOutOfRange,
			Detail: fmt.Sprintf("window %s..%s extends beyond the table span %s..%s",
				fmtDate(w.PreStart), fmtDate(w.PostEnd), fmtDate(first), fmtDate(last)),
		}
	}

	idx = windowIndexes{
		preLo:  firstAtOrAfter(table.Dates, w.PreStart),
		preHi:  firstAfter(table.Dates, w.PreEnd),
		postLo: firstAtOrAfter(table.Dates, w.PostStart),
		postHi: firstAfter(table.Dates, w.PostEnd),
	}

	if minPreObs <= 0 {
		minPreObs = DefaultMinPreObs
	}
	if idx.preHi-idx.preLo < minPreObs {
		return idx, &ValidationError{
			Code:   EmptyPreWindow,
			Detail: fmt.Sprintf("pre-period has %d observations, need at least %d", idx.preHi-idx.preLo, minPreObs),
		}
	}
	if idx.postHi <= idx.postLo {
		return idx, &ValidationError{
			Code: EmptyPostWindow,
			Detail: fmt.Sprintf("post-period %s..%s encloses no table rows",
				fmtDate(w.PostStart), fmtDate(w.PostEnd)),
		}
	}

	// No missing values inside the analysis range.
	columns := append([]string{target}, controls...)
	for _, name := range columns {
		col := table.Columns[name]
		for i := idx.preLo; i < idx.postHi; i++ {
			if math.IsNaN(col[i]) {
				return idx, &ValidationError{
					Code:   NonNumericTarget,
					Detail: fmt.Sprintf("column %q has a non-numeric value at %s", name, fmtDate(table.Dates[i])),
				}
			}
		}
	}

	return idx, nil
}

// firstAtOrAfter returns the index of the first date not before t.
func firstAtOrAfter(dates []time.Time, t time.Time) int {
	return sort.Search(len(dates), func(i int) bool { return !dates[i].Before(t) })
}

// firstAfter returns the index of the first date after t.
func firstAfter(dates []time.Time, t time.Time) int {
	return sort.Search(len(dates), func(i int) bool { return dates[i].After(t) })
}
