package impact

import (
	"fmt"
	"time"

	"github.com/gabriellapppaixao/causal-impact-mvp/timeseries"
)

// Window delimits the pre-intervention (training) and post-intervention
// (measurement) periods. Both ranges are inclusive and must satisfy
// PreStart <= PreEnd < PostStart <= PostEnd.
type Window struct {
	PreStart  time.Time
	PreEnd    time.Time
	PostStart time.Time
	PostEnd   time.Time
}

// WindowAround splits the table's full span at the intervention date: the
// pre-period runs from the first row to the step before the intervention,
// the post-period from the intervention to the last row.
func WindowAround(table *timeseries.Table, intervention time.Time) (Window, error) {
	if table == nil || table.Len() == 0 {
		return Window{}, &ValidationError{Code: MissingDateColumn, Detail: "table has no rows"}
	}

	first, last := table.Span()
	if intervention.Before(first) || intervention.After(last) {
		return Window{}, &ValidationError{
			Code:   WindowOutOfRange,
			Detail: fmt.Sprintf("intervention %s outside table span %s..%s", fmtDate(intervention), fmtDate(first), fmtDate(last)),
		}
	}
	if intervention.Equal(first) {
		return Window{}, &ValidationError{Code: EmptyPreWindow, Detail: "intervention at the first row leaves no pre-period"}
	}

	idx := table.Index(intervention)
	if idx <= 0 {
		return Window{}, &ValidationError{
			Code:   WindowOutOfRange,
			Detail: fmt.Sprintf("intervention %s is not a table row", fmtDate(intervention)),
		}
	}

	return Window{
		PreStart:  first,
		PreEnd:    table.Dates[idx-1],
		PostStart: intervention,
		PostEnd:   last,
	}, nil
}

func fmtDate(t time.Time) string {
	return t.Format("2006-01-02")
}
