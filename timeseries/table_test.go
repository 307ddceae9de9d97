package timeseries

import (
	"math"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func day(n int) time.Time {
	return time.Date(2024, 1, 1, 0, 0, 0, 0, time.UTC).AddDate(0, 0, n)
}

func TestNewTable(t *testing.T) {
	dates := []time.Time{day(0), day(1), day(2)}

	table, err := NewTable(dates, []string{"y", "x"}, map[string][]float64{
		"y": {1, 2, 3},
		"x": {4, 5, 6},
	})
	require.NoError(t, err)
	assert.Equal(t, 3, table.Len())

	_, err = NewTable(dates, []string{"y"}, map[string][]float64{"y": {1, 2}})
	assert.Error(t, err, "length mismatch must be rejected")

	_, err = NewTable(dates, []string{"missing"}, map[string][]float64{"y": {1, 2, 3}})
	assert.Error(t, err)
}

func TestTableColumn(t *testing.T) {
	table, err := NewTable([]time.Time{day(0), day(1)}, []string{"y"}, map[string][]float64{"y": {10, 20}})
	require.NoError(t, err)

	col := table.Column("y")
	require.NotNil(t, col)
	assert.Equal(t, "y", col.Name)
	assert.Equal(t, []float64{10, 20}, col.Values)
	assert.Equal(t, day(0), col.Timestamps[0])

	// Column returns a copy.
	col.Values[0] = -1
	assert.Equal(t, 10.0, table.Columns["y"][0])

	assert.Nil(t, table.Column("nope"))
}

func TestTableIndexAndSpan(t *testing.T) {
	table, err := NewTable([]time.Time{day(0), day(1), day(2)}, []string{"y"}, map[string][]float64{"y": {1, 2, 3}})
	require.NoError(t, err)

	first, last := table.Span()
	assert.Equal(t, day(0), first)
	assert.Equal(t, day(2), last)

	assert.Equal(t, 1, table.Index(day(1)))
	assert.Equal(t, -1, table.Index(day(7)))
}

func TestTableSortByDate(t *testing.T) {
	table, err := NewTable(
		[]time.Time{day(2), day(0), day(1)},
		[]string{"y"},
		map[string][]float64{"y": {3, 1, 2}},
	)
	require.NoError(t, err)

	table.SortByDate()

	assert.Equal(t, []time.Time{day(0), day(1), day(2)}, table.Dates)
	assert.Equal(t, []float64{1, 2, 3}, table.Columns["y"])
}

func TestTableRegularize(t *testing.T) {
	// Day 2 is missing and day 3 holds a NaN cell.
	table, err := NewTable(
		[]time.Time{day(0), day(1), day(3), day(4)},
		[]string{"y"},
		map[string][]float64{"y": {1, 2, math.NaN(), 5}},
	)
	require.NoError(t, err)

	daily := table.Regularize(0)

	require.Equal(t, 5, daily.Len())
	assert.Equal(t, []time.Time{day(0), day(1), day(2), day(3), day(4)}, daily.Dates)
	// Gap and NaN both carry the last observed value forward.
	assert.Equal(t, []float64{1, 2, 2, 2, 5}, daily.Columns["y"])
}

func TestTableRegularizeBackfillsLeadingGap(t *testing.T) {
	table, err := NewTable(
		[]time.Time{day(0), day(1), day(2)},
		[]string{"y"},
		map[string][]float64{"y": {math.NaN(), 4, 5}},
	)
	require.NoError(t, err)

	daily := table.Regularize(24 * time.Hour)
	assert.Equal(t, []float64{4, 4, 5}, daily.Columns["y"])
}

func TestTableCopy(t *testing.T) {
	table, err := NewTable([]time.Time{day(0)}, []string{"y"}, map[string][]float64{"y": {1}})
	require.NoError(t, err)

	clone := table.Copy()
	table.Columns["y"][0] = 99

	assert.Equal(t, 1.0, clone.Columns["y"][0])
}
