package eligibility

import (
	"strconv"
	"strings"

	"github.com/shopspring/decimal"
)

// Header names recognised in an entrants listing.
var (
	nameHeaders    = []string{"name", "player", "entrant", "member"}
	entriesHeaders = []string{"total entries", "entries", "entry count"}
	paidHeaders    = []string{"total paid", "paid", "prize pool"}
)

type columns struct {
	name, entries, paid int
}

// FromRows builds a registry from an entrants listing. The first column holds
// names unless a header row names the columns; optional "Total Entries" and
// "Total Paid" columns override the derived figures.
func FromRows(rows [][]string, opts ...Option) *Registry {
	r := New(nil, opts...)
	if len(rows) == 0 {
		return r
	}

	cols, hasHeader := detectColumns(rows[0])
	if hasHeader {
		rows = rows[1:]
	}

	for _, row := range rows {
		if cols.name < len(row) {
			r.add(row[cols.name])
		}
		if r.totalEntries == nil && cols.entries >= 0 && cols.entries < len(row) {
			if n, err := strconv.Atoi(strings.TrimSpace(row[cols.entries])); err == nil && n >= 0 {
				r.totalEntries = &n
			}
		}
		if r.totalPaid == nil && cols.paid >= 0 && cols.paid < len(row) {
			if d, ok := parseMoney(row[cols.paid]); ok {
				r.totalPaid = &d
			}
		}
	}
	return r
}

func detectColumns(header []string) (columns, bool) {
	cols := columns{name: 0, entries: -1, paid: -1}
	found := false
	for i, cell := range header {
		h := strings.ToLower(strings.TrimSpace(cell))
		switch {
		case matches(h, nameHeaders):
			cols.name = i
			found = true
		case matches(h, entriesHeaders):
			cols.entries = i
			found = true
		case matches(h, paidHeaders):
			cols.paid = i
			found = true
		}
	}
	return cols, found
}

func matches(h string, candidates []string) bool {
	for _, c := range candidates {
		if h == c {
			return true
		}
	}
	return false
}

// parseMoney accepts "£120", "120.50" and "1,200".
func parseMoney(cell string) (decimal.Decimal, bool) {
	cell = strings.TrimSpace(cell)
	cell = strings.TrimLeft(cell, "£$€")
	cell = strings.ReplaceAll(cell, ",", "")
	if cell == "" {
		return decimal.Decimal{}, false
	}
	d, err := decimal.NewFromString(cell)
	if err != nil || d.IsNegative() {
		return decimal.Decimal{}, false
	}
	return d, true
}
