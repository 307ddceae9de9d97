package impact

import (
	"math"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/gabriellapppaixao/causal-impact-mvp/timeseries"
)

func simpleTable(t *testing.T, dates []time.Time, y []float64) *timeseries.Table {
	t.Helper()
	table, err := timeseries.NewTable(dates, []string{"y"}, map[string][]float64{"y": y})
	require.NoError(t, err)
	return table
}

func dateRange(n int) []time.Time {
	dates := make([]time.Time, n)
	for i := range dates {
		dates[i] = day(i)
	}
	return dates
}

func validWindow(n int) Window {
	split := n * 2 / 3
	return Window{PreStart: day(0), PreEnd: day(split - 1), PostStart: day(split), PostEnd: day(n - 1)}
}

func assertCode(t *testing.T, err error, code ValidationCode) {
	t.Helper()
	var verr *ValidationError
	require.ErrorAs(t, err, &verr)
	assert.Equal(t, code, verr.Code)
}

func TestValidateAccepts(t *testing.T) {
	table := simpleTable(t, dateRange(12), []float64{1, 2, 3, 4, 5, 6, 7, 8, 9, 10, 11, 12})

	idx, err := validateInputs(table, "y", nil, validWindow(12), 0)
	require.NoError(t, err)
	assert.Equal(t, 0, idx.preLo)
	assert.Equal(t, 8, idx.preHi)
	assert.Equal(t, 8, idx.postLo)
	assert.Equal(t, 12, idx.postHi)
}

func TestValidateMissingTarget(t *testing.T) {
	table := simpleTable(t, dateRange(12), make([]float64, 12))

	_, err := validateInputs(table, "sales", nil, validWindow(12), 0)
	assertCode(t, err, MissingTargetColumn)
}

func TestValidateMissingControl(t *testing.T) {
	table := simpleTable(t, dateRange(12), make([]float64, 12))

	_, err := validateInputs(table, "y", []string{"x"}, validWindow(12), 0)
	assertCode(t, err, MissingTargetColumn)
}

func TestValidateDuplicateTimestamp(t *testing.T) {
	dates := dateRange(12)
	dates[5] = dates[4]
	table := simpleTable(t, dates, make([]float64, 12))

	_, err := validateInputs(table, "y", nil, validWindow(12), 0)
	assertCode(t, err, DuplicateTimestamp)
}

func TestValidateNonUniformFrequency(t *testing.T) {
	dates := dateRange(12)
	dates[7] = dates[7].AddDate(0, 0, 3) // introduces a gap
	table := simpleTable(t, dates, make([]float64, 12))

	_, err := validateInputs(table, "y", nil, Window{
		PreStart: day(0), PreEnd: day(5), PostStart: day(6), PostEnd: dates[11],
	}, 0)
	assertCode(t, err, NonUniformFrequency)
}

func TestValidateWindowOrdering(t *testing.T) {
	table := simpleTable(t, dateRange(12), make([]float64, 12))

	tests := []struct {
		name string
		w    Window
	}{
		{"post before pre end", Window{PreStart: day(0), PreEnd: day(8), PostStart: day(4), PostEnd: day(11)}},
		{"pre reversed", Window{PreStart: day(5), PreEnd: day(2), PostStart: day(8), PostEnd: day(11)}},
		{"post reversed", Window{PreStart: day(0), PreEnd: day(5), PostStart: day(10), PostEnd: day(8)}},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			_, err := validateInputs(table, "y", nil, tt.w, 0)
			assertCode(t, err, WindowOutOfRange)
		})
	}
}

func TestValidateWindowOutsideSpan(t *testing.T) {
	table := simpleTable(t, dateRange(12), make([]float64, 12))

	w := Window{PreStart: day(0), PreEnd: day(7), PostStart: day(8), PostEnd: day(30)}
	_, err := validateInputs(table, "y", nil, w, 0)
	assertCode(t, err, WindowOutOfRange)
}

func TestValidateEmptyPreWindow(t *testing.T) {
	table := simpleTable(t, dateRange(12), make([]float64, 12))

	w := Window{PreStart: day(0), PreEnd: day(0), PostStart: day(1), PostEnd: day(11)}
	_, err := validateInputs(table, "y", nil, w, 0)
	assertCode(t, err, EmptyPreWindow)
}

func TestValidateEmptyPostWindow(t *testing.T) {
	table := simpleTable(t, dateRange(12), make([]float64, 12))

	// Both post boundaries fall between two consecutive rows, so the
	// post-period selects nothing.
	w := Window{
		PreStart:  day(0),
		PreEnd:    day(7),
		PostStart: day(7).Add(6 * time.Hour),
		PostEnd:   day(7).Add(18 * time.Hour),
	}
	_, err := validateInputs(table, "y", nil, w, 0)
	assertCode(t, err, EmptyPostWindow)
}

func TestValidateBoundariesSnapToRows(t *testing.T) {
	table := simpleTable(t, dateRange(12), make([]float64, 12))

	w := Window{
		PreStart:  day(0),
		PreEnd:    day(7).Add(12 * time.Hour),
		PostStart: day(7).Add(18 * time.Hour),
		PostEnd:   day(11),
	}
	idx, err := validateInputs(table, "y", nil, w, 0)
	require.NoError(t, err)
	assert.Equal(t, 0, idx.preLo)
	assert.Equal(t, 8, idx.preHi)
	assert.Equal(t, 8, idx.postLo)
	assert.Equal(t, 12, idx.postHi)
}

func TestValidateNaNTarget(t *testing.T) {
	y := make([]float64, 12)
	y[9] = math.NaN()
	table := simpleTable(t, dateRange(12), y)

	_, err := validateInputs(table, "y", nil, validWindow(12), 0)
	assertCode(t, err, NonNumericTarget)
}

func TestValidateNaNOutsideWindowIgnored(t *testing.T) {
	y := make([]float64, 12)
	y[11] = math.NaN()
	table := simpleTable(t, dateRange(12), y)

	// Window ends before the NaN row.
	w := Window{PreStart: day(0), PreEnd: day(7), PostStart: day(8), PostEnd: day(10)}
	_, err := validateInputs(table, "y", nil, w, 0)
	assert.NoError(t, err)
}

func TestValidateEmptyTable(t *testing.T) {
	_, err := validateInputs(nil, "y", nil, validWindow(12), 0)
	assertCode(t, err, MissingDateColumn)
}
