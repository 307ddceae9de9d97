package timeseries

import (
	"errors"
	"math"
	"sort"
	"time"
)

// Table represents a dated table of named numeric columns, one row per
// timestamp. Rows are kept in date order.
type Table struct {
	Dates   []time.Time
	Names   []string             // column order as loaded
	Columns map[string][]float64 // column name -> values, aligned with Dates
}

// NewTable creates a table from dates and named columns. Every column must
// have the same length as dates.
func NewTable(dates []time.Time, names []string, columns map[string][]float64) (*Table, error) {
	for _, name := range names {
		col, ok := columns[name]
		if !ok {
			return nil, errors.New("column " + name + " missing from column map")
		}
		if len(col) != len(dates) {
			return nil, errors.New("column " + name + " length does not match dates")
		}
	}
	return &Table{
		Dates:   dates,
		Names:   names,
		Columns: columns,
	}, nil
}

// Len returns the number of rows in the table.
func (t *Table) Len() int {
	return len(t.Dates)
}

// HasColumn reports whether the named column exists.
func (t *Table) HasColumn(name string) bool {
	_, ok := t.Columns[name]
	return ok
}

// Column returns the named column as a Series sharing the table's dates.
// Returns nil if the column does not exist.
func (t *Table) Column(name string) *Series {
	col, ok := t.Columns[name]
	if !ok {
		return nil
	}
	values := make([]float64, len(col))
	copy(values, col)
	timestamps := make([]time.Time, len(t.Dates))
	copy(timestamps, t.Dates)
	return &Series{Timestamps: timestamps, Values: values, Name: name}
}

// Span returns the first and last dates of the table.
func (t *Table) Span() (first, last time.Time) {
	if len(t.Dates) == 0 {
		return time.Time{}, time.Time{}
	}
	return t.Dates[0], t.Dates[len(t.Dates)-1]
}

// Index returns the row index of the given date, or -1 if absent.
func (t *Table) Index(date time.Time) int {
	i := sort.Search(len(t.Dates), func(i int) bool {
		return !t.Dates[i].Before(date)
	})
	if i < len(t.Dates) && t.Dates[i].Equal(date) {
		return i
	}
	return -1
}

// SortByDate sorts all rows by date, keeping columns aligned.
func (t *Table) SortByDate() {
	idx := make([]int, len(t.Dates))
	for i := range idx {
		idx[i] = i
	}
	sort.SliceStable(idx, func(a, b int) bool {
		return t.Dates[idx[a]].Before(t.Dates[idx[b]])
	})

	dates := make([]time.Time, len(t.Dates))
	for i, j := range idx {
		dates[i] = t.Dates[j]
	}
	t.Dates = dates

	for name, col := range t.Columns {
		sorted := make([]float64, len(col))
		for i, j := range idx {
			sorted[i] = col[j]
		}
		t.Columns[name] = sorted
	}
}

// Copy creates a deep copy of the table.
func (t *Table) Copy() *Table {
	dates := make([]time.Time, len(t.Dates))
	copy(dates, t.Dates)

	names := make([]string, len(t.Names))
	copy(names, t.Names)

	columns := make(map[string][]float64, len(t.Columns))
	for name, col := range t.Columns {
		c := make([]float64, len(col))
		copy(c, col)
		columns[name] = c
	}

	return &Table{Dates: dates, Names: names, Columns: columns}
}

// Regularize reindexes the table onto a fixed-step date grid from the first
// to the last date, filling gaps and NaN cells by carrying the last observed
// value forward (leading gaps are backfilled from the first observed value).
// A step of zero defaults to one day. The receiver must already be sorted by
// date; duplicate dates keep their first occurrence.
func (t *Table) Regularize(step time.Duration) *Table {
	if step <= 0 {
		step = 24 * time.Hour
	}
	if len(t.Dates) == 0 {
		return t.Copy()
	}

	first, last := t.Span()
	var grid []time.Time
	for d := first; !d.After(last); d = d.Add(step) {
		grid = append(grid, d)
	}

	columns := make(map[string][]float64, len(t.Columns))
	for name, col := range t.Columns {
		filled := make([]float64, len(grid))
		src := 0
		lastVal := math.NaN()
		for i, d := range grid {
			for src < len(t.Dates) && t.Dates[src].Before(d) {
				src++
			}
			if src < len(t.Dates) && t.Dates[src].Equal(d) && !math.IsNaN(col[src]) {
				lastVal = col[src]
			}
			filled[i] = lastVal
		}
		// Backfill leading gaps from the first observed value.
		firstVal := math.NaN()
		for _, v := range filled {
			if !math.IsNaN(v) {
				firstVal = v
				break
			}
		}
		for i := range filled {
			if math.IsNaN(filled[i]) {
				filled[i] = firstVal
			} else {
				break
			}
		}
		columns[name] = filled
	}

	names := make([]string, len(t.Names))
	copy(names, t.Names)

	return &Table{Dates: grid, Names: names, Columns: columns}
}
