package contract

import (
	"testing"
	"time"
	"unicode/utf8"
)

// FuzzTruncateName fuzzes TruncateName with random names and widths.
func FuzzTruncateName(f *testing.F) {
	f.Add("kubernetes/kubernetes", 10)
	f.Add("", 0)
	f.Add("日本語", 4)

	f.Fuzz(func(t *testing.T, name string, width int) {
		got := TruncateName(name, width)
		if width > 3 && utf8.RuneCountInString(got) > width {
			t.Fatalf("TruncateName(%q, %d) = %q is wider than %d", name, width, got, width)
		}
	})
}

// FuzzParseAsOf makes sure arbitrary input never panics and successes are UTC.
func FuzzParseAsOf(f *testing.F) {
	for _, seed := range []string{"", "2024-01-01", "3 weeks ago", "2024-01-01T00:00:00Z", "nope"} {
		f.Add(seed)
	}
	now := time.Date(2025, time.November, 3, 10, 0, 0, 0, time.UTC)

	f.Fuzz(func(t *testing.T, s string) {
		got, err := ParseAsOf(s, now)
		if err == nil && got.Location() != time.UTC {
			t.Fatalf("ParseAsOf(%q) returned non-UTC time %v", s, got)
		}
	})
}
