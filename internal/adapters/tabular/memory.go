package tabular

import (
	"context"
	"fmt"
	"sync"
)

// MemorySource serves tables held in memory. Safe for concurrent use.
type MemorySource struct {
	mu     sync.RWMutex
	tables map[string][][]string
}

// NewMemorySource creates a source seeded with tables.
func NewMemorySource(tables map[string][][]string) *MemorySource {
	m := &MemorySource{tables: make(map[string][][]string, len(tables))}
	for name, rows := range tables {
		m.tables[name] = copyRows(rows)
	}
	return m
}

// Set replaces a table.
func (m *MemorySource) Set(name string, rows [][]string) {
	m.mu.Lock()
	defer m.mu.Unlock()
	m.tables[name] = copyRows(rows)
}

// Table implements Source.
func (m *MemorySource) Table(ctx context.Context, name string) ([][]string, error) {
	if err := ctx.Err(); err != nil {
		return nil, fmt.Errorf("%w: %w", ErrSourceUnavailable, err)
	}
	m.mu.RLock()
	defer m.mu.RUnlock()
	rows, ok := m.tables[name]
	if !ok {
		return nil, fmt.Errorf("%w: %q", ErrTableNotFound, name)
	}
	return copyRows(rows), nil
}
