package algo

import (
	"testing"

	"github.com/huangsam/repocat/schema"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestMedian(t *testing.T) {
	tests := []struct {
		name     string
		values   []int
		expected *float64
	}{
		{"empty", nil, nil},
		{"single", []int{7}, schema.Float(7)},
		{"odd count", []int{3, 1, 2}, schema.Float(2)},
		{"even count", []int{1, 2, 3, 4}, schema.Float(2.5)},
		{"unsorted even", []int{10, 0, 4, 6}, schema.Float(5)},
		{"ties", []int{5, 5, 5, 9}, schema.Float(5)},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			assert.Equal(t, tt.expected, Median(tt.values))
		})
	}
}

func TestMedianKeepsInput(t *testing.T) {
	values := []int{4, 3, 2, 1}
	Median(values)
	assert.Equal(t, []int{4, 3, 2, 1}, values)
}

func TestComputeThresholdsSkipsAbsent(t *testing.T) {
	subset := []schema.ProjectMetrics{
		{Stars: schema.Int(1), Forks: schema.Int(8)},
		{Stars: schema.Int(2)},
		{Stars: schema.Int(3), Commits6M: schema.Int(5)},
		{Stars: schema.Int(4)},
	}
	th := ComputeThresholds(subset)
	assert.Equal(t, schema.Float(2.5), th.Stars)
	assert.Equal(t, schema.Float(8), th.Forks)
	assert.Equal(t, schema.Float(5), th.Commits6M)
	assert.Nil(t, th.Developers)
	assert.Nil(t, th.Contributors)
	assert.Equal(t, 4, th.SampleSize)
}

func TestMedianStrictlyExceeds(t *testing.T) {
	subset := []schema.ProjectMetrics{
		{Stars: schema.Int(1)}, {Stars: schema.Int(2)}, {Stars: schema.Int(3)}, {Stars: schema.Int(4)},
	}
	m := NewMedianClassifier(subset)

	popular, _, _ := m.Factors(schema.ProjectMetrics{Stars: schema.Int(3)}, testNow)
	assert.True(t, popular)
	popular, _, _ = m.Factors(schema.ProjectMetrics{Stars: schema.Int(2)}, testNow)
	assert.False(t, popular)
}

func TestMedianClassifierLabels(t *testing.T) {
	subset := []schema.ProjectMetrics{
		{Stars: schema.Int(10), Forks: schema.Int(2), Commits6M: schema.Int(10), Developers: schema.Int(2), Contributors: schema.Int(4)},
		{Stars: schema.Int(20), Forks: schema.Int(4), Commits6M: schema.Int(20), Developers: schema.Int(4), Contributors: schema.Int(8)},
		{Stars: schema.Int(30), Forks: schema.Int(6), Commits6M: schema.Int(30), Developers: schema.Int(6), Contributors: schema.Int(12)},
	}
	m := NewMedianClassifier(subset) // medians: 20, 4, 20, 4, 8

	tests := []struct {
		name     string
		record   schema.ProjectMetrics
		expected schema.Category
		matched  bool
	}{
		{
			name:     "high high large",
			record:   schema.ProjectMetrics{Stars: schema.Int(30), Commits6M: schema.Int(30), Developers: schema.Int(6)},
			expected: schema.HighHighLarge, matched: true,
		},
		{
			name:     "high high small by recency",
			record:   schema.ProjectMetrics{Forks: schema.Int(5), LastCommit: daysAgo(180)},
			expected: schema.HighHighSmall, matched: true,
		},
		{
			name:     "high low large",
			record:   schema.ProjectMetrics{Stars: schema.Int(21), Contributors: schema.Int(9), LastCommit: daysAgo(181)},
			expected: schema.HighLowLarge, matched: true,
		},
		{
			name:     "high low small",
			record:   schema.ProjectMetrics{Stars: schema.Int(21)},
			expected: schema.HighLowSmall, matched: true,
		},
		{
			name:     "low high large",
			record:   schema.ProjectMetrics{Commits6M: schema.Int(21), Developers: schema.Int(5)},
			expected: schema.LowHighLarge, matched: true,
		},
		{
			name:     "low high small",
			record:   schema.ProjectMetrics{Stars: schema.Int(20), Commits6M: schema.Int(21)},
			expected: schema.LowHighSmall, matched: true,
		},
		{
			name:     "low low large has no label",
			record:   schema.ProjectMetrics{Developers: schema.Int(50)},
			expected: schema.Unmatched, matched: false,
		},
		{
			name:     "low low small has no label",
			record:   schema.ProjectMetrics{},
			expected: schema.Unmatched, matched: false,
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			got, matched := m.Classify(tt.record, testNow)
			assert.Equal(t, tt.expected, got)
			assert.Equal(t, tt.matched, matched)
		})
	}
}

func TestMedianEmptySubsetOnlyUsesRecency(t *testing.T) {
	m := NewMedianClassifier(nil)
	assert.Nil(t, m.Thresholds().Stars)

	got, matched := m.Classify(schema.ProjectMetrics{Stars: schema.Int(1000), LastCommit: daysAgo(1)}, testNow)
	assert.True(t, matched)
	assert.Equal(t, schema.LowHighSmall, got)
}

func TestMedianDependsOnSubset(t *testing.T) {
	record := schema.ProjectMetrics{Stars: schema.Int(10), LastCommit: daysAgo(3)}
	small := []schema.ProjectMetrics{{Stars: schema.Int(1)}, {Stars: schema.Int(2)}, {Stars: schema.Int(3)}}
	large := []schema.ProjectMetrics{{Stars: schema.Int(20)}, {Stars: schema.Int(30)}, {Stars: schema.Int(40)}}

	first, _ := NewMedianClassifier(small).Classify(record, testNow)
	second, _ := NewMedianClassifier(large).Classify(record, testNow)
	require.NotEqual(t, first, second)
	assert.Equal(t, schema.HighHighSmall, first)
	assert.Equal(t, schema.LowHighSmall, second)

	again, _ := NewMedianClassifier(small).Classify(record, testNow)
	assert.Equal(t, first, again)
}
