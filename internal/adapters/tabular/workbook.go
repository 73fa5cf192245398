package tabular

import (
	"context"
	"fmt"
	"slices"

	"github.com/xuri/excelize/v2"
)

// WorkbookSource reads sheet tabs of an XLSX workbook; each table is a tab.
// The file is reopened on every call so an updated export is picked up.
type WorkbookSource struct {
	path string
}

// NewWorkbookSource creates a source over the workbook at path.
func NewWorkbookSource(path string) *WorkbookSource {
	return &WorkbookSource{path: path}
}

// Table implements Source.
func (w *WorkbookSource) Table(ctx context.Context, name string) ([][]string, error) {
	if err := ctx.Err(); err != nil {
		return nil, fmt.Errorf("%w: %w", ErrSourceUnavailable, err)
	}
	f, err := excelize.OpenFile(w.path)
	if err != nil {
		return nil, fmt.Errorf("%w: open workbook: %w", ErrSourceUnavailable, err)
	}
	defer f.Close()

	if !slices.Contains(f.GetSheetList(), name) {
		return nil, fmt.Errorf("%w: sheet %q", ErrTableNotFound, name)
	}
	rows, err := f.GetRows(name)
	if err != nil {
		return nil, fmt.Errorf("%w: read sheet %q: %w", ErrSourceUnavailable, name, err)
	}
	return rows, nil
}
