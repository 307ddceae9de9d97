// Package timeseries provides time series data structures and utilities.
//
// This package includes the Series type for a single dated series and the
// Table type for a dated table of named numeric columns, along with CSV
// loading and basic transformations.
//
// # Creating a Series
//
// Create a time series from a slice:
//
//	values := []float64{100, 102, 105, 103, 108, 110}
//	series := timeseries.New(values)
//
// # Loading a Table from CSV
//
// Load a dated table with a target and control columns:
//
//	table, err := timeseries.LoadTable("sales.csv", nil)
//
// The date column is autodetected among common header names ("date", "data",
// "dia", "ds", ...) or can be named explicitly:
//
//	opts := timeseries.DefaultTableOptions()
//	opts.DateColumn = "day"
//	opts.DateFormat = "2006/01/02"
//	table, err := timeseries.LoadTableFromReader(reader, opts)
//
// # Working with Tables
//
// Access columns and regularize irregular data:
//
//	sales := table.Column("sales")   // *Series aligned with table dates
//	daily := table.Regularize(0)     // reindex onto a daily grid, fill gaps
//	first, last := table.Span()
//
// # Basic Statistics
//
// Calculate summary statistics on a series:
//
//	mean := series.Mean()
//	std := series.Std()
//	min := series.Min()
//	max := series.Max()
package timeseries
