// Package tabular reads named tables of text cells from an external store.
//
// A table is a rectangular-ish grid: rows may be ragged and the first row may
// be a header. Sources only read; nothing here writes back to the store.
package tabular

import (
	"context"
	"errors"
)

// Source fetches one named table.
type Source interface {
	Table(ctx context.Context, name string) ([][]string, error)
}

// Kind names a Source implementation in configuration.
type Kind string

// Supported source kinds.
const (
	KindMemory Kind = "memory"
	KindXLSX   Kind = "xlsx"
	KindCSV    Kind = "csv"
	KindHTML   Kind = "html"
	KindSheets Kind = "sheets"
)

var (
	// ErrTableNotFound is returned when the store has no table of that name.
	ErrTableNotFound = errors.New("table not found")
	// ErrSourceUnavailable is returned when the store cannot be reached or read.
	ErrSourceUnavailable = errors.New("source unavailable")
)

func copyRows(rows [][]string) [][]string {
	out := make([][]string, len(rows))
	for i, r := range rows {
		out[i] = append([]string(nil), r...)
	}
	return out
}
