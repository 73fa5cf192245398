// Package results turns raw event sheet cells into normalized finishing results.
package results

import (
	"encoding/json"
	"math"
	"strconv"
	"strings"
)

// ParsePosition normalizes a raw position cell into a positive integer.
// It accepts integers, integral floats and strings with a leading digit run
// ("1st", " 10th ", "3"). Anything else yields ok == false, which callers
// treat as "exclude this row".
func ParsePosition(v any) (int, bool) {
	switch p := v.(type) {
	case nil:
		return 0, false
	case int:
		return positive(int64(p))
	case int32:
		return positive(int64(p))
	case int64:
		return positive(p)
	case uint:
		if uint64(p) > math.MaxInt32 {
			return 0, false
		}
		return positive(int64(p))
	case float32:
		return fromFloat(float64(p))
	case float64:
		return fromFloat(p)
	case json.Number:
		if i, err := p.Int64(); err == nil {
			return positive(i)
		}
		if f, err := p.Float64(); err == nil {
			return fromFloat(f)
		}
		return 0, false
	case string:
		return fromString(p)
	default:
		return 0, false
	}
}

func fromString(s string) (int, bool) {
	s = strings.TrimSpace(s)
	end := strings.IndexFunc(s, func(r rune) bool { return r < '0' || r > '9' })
	if end == -1 {
		end = len(s)
	}
	if end == 0 {
		return 0, false
	}
	n, err := strconv.ParseInt(s[:end], 10, 32)
	if err != nil {
		return 0, false
	}
	return positive(n)
}

func fromFloat(f float64) (int, bool) {
	if math.IsNaN(f) || math.IsInf(f, 0) || f != math.Trunc(f) || f > math.MaxInt32 {
		return 0, false
	}
	return positive(int64(f))
}

func positive(n int64) (int, bool) {
	if n < 1 || n > math.MaxInt32 {
		return 0, false
	}
	return int(n), true
}
