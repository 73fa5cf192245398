package sampledata

import (
	"context"
	"encoding/csv"
	"fmt"
	"os"
	"path/filepath"
	"slices"

	"github.com/midex/tourboard/pkg/logger"
	"github.com/xuri/excelize/v2"
)

// File permission constants.
const (
	directoryPermission = 0o750
	filePermission      = 0o600
)

// Write stores the season in the configured format.
func Write(ctx context.Context, cfg *Config, s *Season) error {
	switch cfg.Format {
	case "", FormatCSV:
		return WriteCSV(ctx, cfg.Out, s)
	case FormatXLSX:
		return WriteXLSX(ctx, cfg.Out, s)
	default:
		return fmt.Errorf("unknown output format %q", cfg.Format)
	}
}

// WriteCSV writes one <table>.csv per table into dir.
func WriteCSV(ctx context.Context, dir string, s *Season) error {
	if err := os.MkdirAll(dir, directoryPermission); err != nil {
		return fmt.Errorf("failed to create directory: %w", err)
	}
	for _, name := range s.tableNames() {
		if err := writeCSVFile(filepath.Join(dir, name+".csv"), s.Tables[name]); err != nil {
			return fmt.Errorf("table %q: %w", name, err)
		}
	}
	logger.Get().Info(ctx, "season written", logger.String("dir", dir), logger.Int("tables", len(s.Tables)))
	return nil
}

func writeCSVFile(path string, rows [][]string) error {
	file, err := os.OpenFile(path, os.O_CREATE|os.O_WRONLY|os.O_TRUNC, filePermission)
	if err != nil {
		return fmt.Errorf("failed to create file: %w", err)
	}
	w := csv.NewWriter(file)
	if err := w.WriteAll(rows); err != nil {
		_ = file.Close()
		return fmt.Errorf("failed to write rows: %w", err)
	}
	return file.Close()
}

// WriteXLSX writes every table as a sheet tab of one workbook.
func WriteXLSX(ctx context.Context, path string, s *Season) error {
	names := s.tableNames()
	if len(names) == 0 {
		return fmt.Errorf("no tables to write")
	}
	if dir := filepath.Dir(path); dir != "." {
		if err := os.MkdirAll(dir, directoryPermission); err != nil {
			return fmt.Errorf("failed to create directory: %w", err)
		}
	}

	f := excelize.NewFile()
	defer func() {
		if err := f.Close(); err != nil {
			logger.Get().Error(ctx, "failed to close workbook", logger.Error(err))
		}
	}()

	if err := f.SetSheetName(f.GetSheetName(0), names[0]); err != nil {
		return fmt.Errorf("sheet %q: %w", names[0], err)
	}
	for i, name := range names {
		if i > 0 {
			if _, err := f.NewSheet(name); err != nil {
				return fmt.Errorf("sheet %q: %w", name, err)
			}
		}
		for r, row := range s.Tables[name] {
			cells := make([]any, len(row))
			for c, v := range row {
				cells[c] = v
			}
			axis, err := excelize.CoordinatesToCellName(1, r+1)
			if err != nil {
				return err
			}
			if err := f.SetSheetRow(name, axis, &cells); err != nil {
				return fmt.Errorf("sheet %q row %d: %w", name, r+1, err)
			}
		}
	}
	if err := f.SaveAs(path); err != nil {
		return fmt.Errorf("failed to save workbook: %w", err)
	}
	logger.Get().Info(ctx, "season written", logger.String("workbook", path), logger.Int("sheets", len(names)))
	return nil
}

func (s *Season) tableNames() []string {
	names := make([]string, 0, len(s.Tables))
	for name := range s.Tables {
		names = append(names, name)
	}
	slices.Sort(names)
	return names
}
