package results

import (
	"regexp"
	"strconv"
	"strings"
)

// "Name(12)" or "Name (12)": trailing parenthesized digits are the handicap.
var handicapPattern = regexp.MustCompile(`^(.*?)\s*\((\d+)\)\s*$`)

// SplitHandicap splits a combined "name(handicap)" cell. Without the trailing
// pattern the whole trimmed cell is the name and no handicap is returned.
func SplitHandicap(cell string) (string, *int) {
	cell = strings.TrimSpace(cell)
	m := handicapPattern.FindStringSubmatch(cell)
	if m == nil {
		return cell, nil
	}
	h, err := strconv.Atoi(m[2])
	if err != nil {
		return cell, nil
	}
	return strings.TrimSpace(m[1]), &h
}

// parseHandicap reads a separate handicap column: "12", "(12)" or blank.
func parseHandicap(cell string) *int {
	cell = strings.Trim(strings.TrimSpace(cell), "()")
	if cell == "" {
		return nil
	}
	h, err := strconv.Atoi(strings.TrimSpace(cell))
	if err != nil {
		return nil
	}
	return &h
}

// parseScore reads an optional numeric score; "NR", "DQ" and blanks yield nil.
func parseScore(cell string) *float64 {
	cell = strings.TrimSpace(cell)
	if cell == "" {
		return nil
	}
	f, err := strconv.ParseFloat(cell, 64)
	if err != nil {
		return nil
	}
	return &f
}
