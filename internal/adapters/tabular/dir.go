package tabular

import (
	"context"
	"encoding/csv"
	"errors"
	"fmt"
	"io/fs"
	"os"
	"path/filepath"
	"strings"
)

// DirSource reads <dir>/<name>.csv.
type DirSource struct {
	dir string
}

// NewDirSource creates a source over a directory of CSV files.
func NewDirSource(dir string) *DirSource {
	return &DirSource{dir: dir}
}

// Table implements Source.
func (d *DirSource) Table(ctx context.Context, name string) ([][]string, error) {
	if err := ctx.Err(); err != nil {
		return nil, fmt.Errorf("%w: %w", ErrSourceUnavailable, err)
	}
	if name == "" || strings.ContainsAny(name, `/\`) || name == "." || name == ".." {
		return nil, fmt.Errorf("%w: %q", ErrTableNotFound, name)
	}

	f, err := os.Open(filepath.Join(d.dir, name+".csv"))
	if errors.Is(err, fs.ErrNotExist) {
		return nil, fmt.Errorf("%w: %q", ErrTableNotFound, name)
	}
	if err != nil {
		return nil, fmt.Errorf("%w: %w", ErrSourceUnavailable, err)
	}
	defer f.Close()

	r := csv.NewReader(f)
	r.FieldsPerRecord = -1
	r.LazyQuotes = true
	r.TrimLeadingSpace = true
	rows, err := r.ReadAll()
	if err != nil {
		return nil, fmt.Errorf("%w: parse %q: %w", ErrSourceUnavailable, name, err)
	}
	return rows, nil
}
