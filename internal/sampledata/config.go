// Package sampledata generates synthetic result sheets for a tour and checks
// that a running service ranks them the way the pipeline does.
package sampledata

import "time"

// Output formats.
const (
	FormatCSV  = "csv"
	FormatXLSX = "xlsx"
)

// Config holds configuration for a sample season run.
type Config struct {
	Out      string        // CSV directory or XLSX file
	Format   string        // csv or xlsx
	Players  int           // roster size
	Seed     uint64        // generator seed; equal seeds give equal seasons
	Unplayed []string      // events left without a sheet
	Entrants string        // entrants table name, empty to skip it
	BaseURL  string        // optional service to verify against
	Timeout  time.Duration // HTTP request timeout
	TopN     int           // leaders to log
	Verbose  bool
}

// Season is a generated set of tables keyed by table name.
type Season struct {
	Roster   []string
	Entrants []string
	Tables   map[string][][]string
}

// Stats holds run statistics.
type Stats struct {
	Players         int
	EventsGenerated int
	RowsGenerated   int
	Leaders         int
	Verified        bool
	StartTime       time.Time
	EndTime         time.Time
	Duration        time.Duration
}
