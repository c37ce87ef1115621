package table

import (
	"math"
	"strconv"
	"strings"
	"time"

	"github.com/huangsam/repocat/schema"
)

// dateLayouts are tried in order. Layouts without a zone yield UTC.
// Fractional seconds are accepted after the seconds field by time.Parse.
var dateLayouts = []string{
	time.RFC3339Nano,
	"2006-01-02 15:04:05Z07:00",
	"2006-01-02 15:04:05 -0700",
	"2006-01-02 15:04:05 -0700 MST",
	"2006-01-02 15:04:05 MST",
	"2006-01-02 15:04:05",
	"2006-01-02T15:04:05",
	time.DateOnly,
}

// ParseCount parses a count cell. It accepts plain integers and integral
// floats such as "12.0". Empty, negative, fractional or unparseable cells
// are absent.
func ParseCount(s string) *int {
	s = strings.TrimSpace(s)
	if s == "" {
		return nil
	}
	if n, err := strconv.Atoi(s); err == nil {
		if n < 0 {
			return nil
		}
		return schema.Int(n)
	}
	f, err := strconv.ParseFloat(s, 64)
	if err != nil || math.IsNaN(f) || math.IsInf(f, 0) || f < 0 || f != math.Trunc(f) || f > math.MaxInt32 {
		return nil
	}
	return schema.Int(int(f))
}

// ParseDate parses a date cell into a UTC timestamp. Unparseable cells are absent.
func ParseDate(s string) *time.Time {
	s = strings.TrimSpace(s)
	if s == "" {
		return nil
	}
	for _, layout := range dateLayouts {
		if t, err := time.Parse(layout, s); err == nil {
			return schema.Time(t)
		}
	}
	return nil
}
