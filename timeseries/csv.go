package timeseries

import (
	"encoding/csv"
	"errors"
	"fmt"
	"io"
	"math"
	"os"
	"strconv"
	"strings"
	"time"
)

// TableOptions holds options for loading a table from CSV.
type TableOptions struct {
	DateColumn string // Column name for dates (autodetected when empty)
	DateFormat string // Date format (default: "2006-01-02")
	Delimiter  rune   // Field delimiter (default: ',')
	SkipRows   int    // Number of rows to skip at start
}

// DefaultTableOptions returns default options for CSV table loading.
func DefaultTableOptions() *TableOptions {
	return &TableOptions{
		DateFormat: "2006-01-02",
		Delimiter:  ',',
	}
}

// dateColumnCandidates are header names recognized as the date column when
// none is specified.
var dateColumnCandidates = []string{"date", "Date", "DATE", "data", "Data", "DATA", "dia", "Dia", "ds", "timestamp"}

// LoadTable loads a dated table from a CSV file.
func LoadTable(filename string, opts *TableOptions) (*Table, error) {
	file, err := os.Open(filename)
	if err != nil {
		return nil, err
	}
	defer file.Close()

	return LoadTableFromReader(file, opts)
}

// LoadTableFromReader loads a dated table from an io.Reader. The first
// non-skipped row must be a header naming every column; all columns other
// than the date column are parsed as float64, with blank/NA cells stored as
// NaN. Rows whose date cell cannot be parsed are dropped. Rows are sorted by
// date before the table is returned.
func LoadTableFromReader(r io.Reader, opts *TableOptions) (*Table, error) {
	if opts == nil {
		opts = DefaultTableOptions()
	}
	if opts.DateFormat == "" {
		opts.DateFormat = "2006-01-02"
	}
	if opts.Delimiter == 0 {
		opts.Delimiter = ','
	}

	reader := csv.NewReader(r)
	reader.Comma = opts.Delimiter
	reader.TrimLeadingSpace = true

	for i := 0; i < opts.SkipRows; i++ {
		if _, err := reader.Read(); err != nil {
			return nil, err
		}
	}

	header, err := reader.Read()
	if err != nil {
		return nil, err
	}
	for i, h := range header {
		header[i] = strings.TrimSpace(strings.Trim(h, "\""))
	}

	dateIdx := findDateColumn(header, opts.DateColumn)
	if dateIdx == -1 {
		if opts.DateColumn != "" {
			return nil, fmt.Errorf("date column %q not found in header", opts.DateColumn)
		}
		// Fall back to the first column, the common layout for exported data.
		dateIdx = 0
	}

	var names []string
	for i, h := range header {
		if i != dateIdx {
			names = append(names, h)
		}
	}

	var dates []time.Time
	columns := make(map[string][]float64, len(names))
	for _, name := range names {
		columns[name] = nil
	}

	for {
		record, err := reader.Read()
		if err == io.EOF {
			break
		}
		if err != nil {
			return nil, err
		}
		if dateIdx >= len(record) {
			continue
		}

		ts, ok := parseDate(record[dateIdx], opts.DateFormat)
		if !ok {
			continue
		}
		dates = append(dates, ts)

		for i, h := range header {
			if i == dateIdx {
				continue
			}
			val := math.NaN()
			if i < len(record) {
				cell := strings.TrimSpace(strings.Trim(record[i], "\""))
				if cell != "" && cell != "NA" && cell != "NaN" && cell != "null" {
					if parsed, err := strconv.ParseFloat(cell, 64); err == nil {
						val = parsed
					}
				}
			}
			columns[h] = append(columns[h], val)
		}
	}

	if len(dates) == 0 {
		return nil, errors.New("no valid data rows found in CSV")
	}

	table, err := NewTable(dates, names, columns)
	if err != nil {
		return nil, err
	}
	table.SortByDate()
	return table, nil
}

// findDateColumn locates the date column index in the header, or -1.
func findDateColumn(header []string, explicit string) int {
	if explicit != "" {
		for i, h := range header {
			if h == explicit {
				return i
			}
		}
		return -1
	}
	for _, candidate := range dateColumnCandidates {
		for i, h := range header {
			if h == candidate {
				return i
			}
		}
	}
	return -1
}

// parseDate parses a date cell trying the preferred format first, then a few
// common fallbacks.
func parseDate(cell, preferred string) (time.Time, bool) {
	cell = strings.TrimSpace(strings.Trim(cell, "\""))
	formats := []string{
		preferred,
		"2006-01-02",
		"2006-01-02T15:04:05",
		"2006/01/02",
		"01/02/2006",
		"02-Jan-2006",
	}
	for _, format := range formats {
		if ts, err := time.Parse(format, cell); err == nil {
			return ts, true
		}
	}
	return time.Time{}, false
}
