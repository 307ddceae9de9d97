package timeseries

import (
	"math"
	"strings"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestLoadTableFromReader(t *testing.T) {
	csv := `date,sales,visits
2024-01-01,100.5,20
2024-01-02,101.0,21
2024-01-03,99.5,19
`
	table, err := LoadTableFromReader(strings.NewReader(csv), nil)
	require.NoError(t, err)

	assert.Equal(t, 3, table.Len())
	assert.Equal(t, []string{"sales", "visits"}, table.Names)
	assert.Equal(t, []float64{100.5, 101.0, 99.5}, table.Columns["sales"])
	assert.Equal(t, time.Date(2024, 1, 1, 0, 0, 0, 0, time.UTC), table.Dates[0])
}

func TestLoadTableDateColumnDetection(t *testing.T) {
	tests := []struct {
		name   string
		header string
	}{
		{"english", "date,y"},
		{"portuguese", "data,y"},
		{"portuguese day", "dia,y"},
		{"prophet style", "ds,y"},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			csv := tt.header + "\n2024-01-01,1\n2024-01-02,2\n"
			table, err := LoadTableFromReader(strings.NewReader(csv), nil)
			require.NoError(t, err)
			assert.Equal(t, []string{"y"}, table.Names)
			assert.Equal(t, 2, table.Len())
		})
	}
}

func TestLoadTableExplicitDateColumn(t *testing.T) {
	csv := "y,when\n3,2024-01-01\n4,2024-01-02\n"
	opts := DefaultTableOptions()
	opts.DateColumn = "when"

	table, err := LoadTableFromReader(strings.NewReader(csv), opts)
	require.NoError(t, err)
	assert.Equal(t, []string{"y"}, table.Names)
	assert.Equal(t, []float64{3, 4}, table.Columns["y"])
}

func TestLoadTableMissingCellsBecomeNaN(t *testing.T) {
	csv := "date,y\n2024-01-01,1\n2024-01-02,NA\n2024-01-03,\n2024-01-04,4\n"

	table, err := LoadTableFromReader(strings.NewReader(csv), nil)
	require.NoError(t, err)

	col := table.Columns["y"]
	assert.Equal(t, 1.0, col[0])
	assert.True(t, math.IsNaN(col[1]))
	assert.True(t, math.IsNaN(col[2]))
	assert.Equal(t, 4.0, col[3])
}

func TestLoadTableSortsByDate(t *testing.T) {
	csv := "date,y\n2024-01-03,3\n2024-01-01,1\n2024-01-02,2\n"

	table, err := LoadTableFromReader(strings.NewReader(csv), nil)
	require.NoError(t, err)
	assert.Equal(t, []float64{1, 2, 3}, table.Columns["y"])
}

func TestLoadTableDropsUnparsableDates(t *testing.T) {
	csv := "date,y\n2024-01-01,1\nnot-a-date,2\n2024-01-03,3\n"

	table, err := LoadTableFromReader(strings.NewReader(csv), nil)
	require.NoError(t, err)
	assert.Equal(t, 2, table.Len())
}

func TestLoadTableEmpty(t *testing.T) {
	_, err := LoadTableFromReader(strings.NewReader("date,y\n"), nil)
	assert.Error(t, err)
}
