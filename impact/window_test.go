package impact

import (
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestWindowAround(t *testing.T) {
	table := simpleTable(t, dateRange(10), make([]float64, 10))

	w, err := WindowAround(table, day(6))
	require.NoError(t, err)

	assert.Equal(t, day(0), w.PreStart)
	assert.Equal(t, day(5), w.PreEnd)
	assert.Equal(t, day(6), w.PostStart)
	assert.Equal(t, day(9), w.PostEnd)
}

func TestWindowAroundOutsideSpan(t *testing.T) {
	table := simpleTable(t, dateRange(10), make([]float64, 10))

	_, err := WindowAround(table, day(20))
	assertCode(t, err, WindowOutOfRange)

	_, err = WindowAround(table, day(-1))
	assertCode(t, err, WindowOutOfRange)
}

func TestWindowAroundAtFirstRow(t *testing.T) {
	table := simpleTable(t, dateRange(10), make([]float64, 10))

	_, err := WindowAround(table, day(0))
	assertCode(t, err, EmptyPreWindow)
}

func TestWindowAroundNotARow(t *testing.T) {
	table := simpleTable(t, dateRange(10), make([]float64, 10))

	_, err := WindowAround(table, day(5).Add(12*time.Hour))
	assertCode(t, err, WindowOutOfRange)
}

func TestWindowAroundEmptyTable(t *testing.T) {
	_, err := WindowAround(nil, day(0))
	assertCode(t, err, MissingDateColumn)
}
