package results

import (
	"strings"

	"github.com/midex/tourboard/internal/domain/model"
)

// Layout identifies the column layout of an event sheet.
type Layout int

// Observed sheet layouts, selected by column count.
const (
	// LayoutUnreadable has fewer than two columns.
	LayoutUnreadable Layout = iota
	// LayoutNamePosition is [name, position].
	LayoutNamePosition
	// LayoutEmbeddedHandicap is [name(handicap), position, score].
	LayoutEmbeddedHandicap
	// LayoutSeparateHandicap is [name, position, handicap, score].
	LayoutSeparateHandicap
)

func (l Layout) String() string {
	switch l {
	case LayoutNamePosition:
		return "name_position"
	case LayoutEmbeddedHandicap:
		return "embedded_handicap"
	case LayoutSeparateHandicap:
		return "separate_handicap"
	default:
		return "unreadable"
	}
}

// DetectLayout picks the layout from the most common row width of the block,
// preferring the wider layout on a tie. A header row does not vote while data
// rows follow it, so a stray cell or an over-wide header cannot re-layout the
// whole sheet.
func DetectLayout(rows [][]string) Layout {
	votes := map[int]int{}
	for i, r := range rows {
		if i == 0 && len(rows) > 1 && isHeader(r) {
			continue
		}
		if w := effectiveWidth(r); w > 0 {
			votes[min(w, 4)]++
		}
	}
	width, best := 0, 0
	for w, n := range votes {
		if n > best || (n == best && w > width) {
			width, best = w, n
		}
	}
	switch {
	case width >= 4:
		return LayoutSeparateHandicap
	case width == 3:
		return LayoutEmbeddedHandicap
	case width == 2:
		return LayoutNamePosition
	default:
		return LayoutUnreadable
	}
}

// isHeader reports whether row carries labels rather than a result.
func isHeader(row []string) bool {
	if effectiveWidth(row) < 2 {
		return false
	}
	_, ok := ParsePosition(row[1])
	return !ok
}

// Blank reports whether the block has no non-empty cell.
func Blank(rows [][]string) bool {
	for _, r := range rows {
		if effectiveWidth(r) > 0 {
			return false
		}
	}
	return true
}

// effectiveWidth ignores trailing blank cells.
func effectiveWidth(row []string) int {
	n := len(row)
	for n > 0 && strings.TrimSpace(row[n-1]) == "" {
		n--
	}
	return n
}

// SkipReason explains why a row was dropped.
type SkipReason string

// Row-level skip reasons.
const (
	SkipHeader      SkipReason = "header"
	SkipShortRow    SkipReason = "short_row"
	SkipEmptyName   SkipReason = "empty_name"
	SkipBadPosition SkipReason = "bad_position"
)

// Skip records a dropped row for inspection.
type Skip struct {
	Row    int // zero-based index in the block
	Reason SkipReason
}

// Normalized is the outcome of normalizing one event block.
type Normalized struct {
	Layout  Layout
	Results []model.NormalizedResult
	Skipped []Skip
}

// rowAdapter extracts raw fields from a row of one layout.
type rowAdapter func(row []string) (name string, handicap *int, position string, score *float64)

var adapters = map[Layout]rowAdapter{
	LayoutNamePosition: func(row []string) (string, *int, string, *float64) {
		name, hcp := SplitHandicap(row[0])
		return name, hcp, row[1], nil
	},
	LayoutEmbeddedHandicap: func(row []string) (string, *int, string, *float64) {
		name, hcp := SplitHandicap(row[0])
		return name, hcp, row[1], parseScore(cell(row, 2))
	},
	LayoutSeparateHandicap: func(row []string) (string, *int, string, *float64) {
		name, hcp := SplitHandicap(row[0])
		if sep := parseHandicap(cell(row, 2)); sep != nil {
			hcp = sep
		}
		return name, hcp, row[1], parseScore(cell(row, 3))
	},
}

func cell(row []string, i int) string {
	if i < len(row) {
		return row[i]
	}
	return ""
}

// Normalize extracts results from a raw block in input row order. Rows that
// are short, nameless or carry no usable position are skipped, never fatal.
// The first row is treated as a header when its position cell does not parse.
func Normalize(eventName string, rows [][]string) Normalized {
	out := Normalized{Layout: DetectLayout(rows)}
	adapt, ok := adapters[out.Layout]
	if !ok {
		for i := range rows {
			out.Skipped = append(out.Skipped, Skip{Row: i, Reason: SkipShortRow})
		}
		return out
	}

	for i, row := range rows {
		if len(row) < 2 {
			out.Skipped = append(out.Skipped, Skip{Row: i, Reason: SkipShortRow})
			continue
		}
		name, hcp, rawPos, score := adapt(row)
		pos, ok := ParsePosition(rawPos)
		switch {
		case !ok && i == 0:
			out.Skipped = append(out.Skipped, Skip{Row: i, Reason: SkipHeader})
			continue
		case name == "":
			out.Skipped = append(out.Skipped, Skip{Row: i, Reason: SkipEmptyName})
			continue
		case !ok:
			out.Skipped = append(out.Skipped, Skip{Row: i, Reason: SkipBadPosition})
			continue
		}
		out.Results = append(out.Results, model.NormalizedResult{
			EventName:  eventName,
			PlayerName: name,
			Position:   pos,
			Handicap:   hcp,
			Score:      score,
		})
	}
	return out
}
