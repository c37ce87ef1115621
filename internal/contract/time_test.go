package contract

import (
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

var fixedNow = time.Date(2025, time.November, 3, 10, 0, 0, 0, time.UTC)

// TestParseRelativeTimeUnit covers various valid and invalid cases.
func TestParseRelativeTimeUnit(t *testing.T) {
	tests := []struct {
		name        string
		input       string
		expected    time.Time
		expectError bool
	}{
		{
			name:     "valid plural months (mixed case)",
			input:    "3 MoNtHs AgO",
			expected: fixedNow.AddDate(0, -3, 0),
		},
		{
			name:     "valid singular week (capitalized)",
			input:    "1 Week Ago",
			expected: fixedNow.AddDate(0, 0, -7),
		},
		{
			name:     "valid 10 days (upper case)",
			input:    "10 DAYS AGO",
			expected: fixedNow.AddDate(0, 0, -10),
		},
		{
			name:     "valid hours",
			input:    "  6 hours ago ",
			expected: fixedNow.Add(-6 * time.Hour),
		},
		{
			name:        "invalid missing ago",
			input:       "2 years",
			expectError: true,
		},
		{
			name:        "invalid bad unit (decades)",
			input:       "4 decades ago",
			expectError: true,
		},
		{
			name:        "invalid non-numeric value",
			input:       "one year ago",
			expectError: true,
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			got, err := ParseRelativeTime(tt.input, fixedNow)
			if tt.expectError {
				assert.Error(t, err)
				return
			}
			require.NoError(t, err)
			assert.True(t, tt.expected.Equal(got), "expected %v, got %v", tt.expected, got)
		})
	}
}

func TestParseAsOf(t *testing.T) {
	tests := []struct {
		name        string
		input       string
		expected    time.Time
		expectError bool
	}{
		{name: "empty uses now", input: "", expected: fixedNow},
		{name: "rfc3339 with offset", input: "2024-05-01T12:00:00+02:00", expected: time.Date(2024, 5, 1, 10, 0, 0, 0, time.UTC)},
		{name: "date only", input: "2024-05-01", expected: time.Date(2024, 5, 1, 0, 0, 0, 0, time.UTC)},
		{name: "relative", input: "2 days ago", expected: fixedNow.AddDate(0, 0, -2)},
		{name: "garbage", input: "soon", expectError: true},
		{name: "bad date", input: "2024-13-40", expectError: true},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			got, err := ParseAsOf(tt.input, fixedNow)
			if tt.expectError {
				assert.Error(t, err)
				return
			}
			require.NoError(t, err)
			assert.True(t, tt.expected.Equal(got), "expected %v, got %v", tt.expected, got)
			assert.Equal(t, time.UTC, got.Location())
		})
	}
}
