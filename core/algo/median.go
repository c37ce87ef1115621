package algo

import (
	"slices"
	"time"

	"github.com/huangsam/repocat/schema"
)

// Median returns the median of values, or nil for an empty slice.
// An even count yields the mean of the two middle values. The input is not modified.
func Median(values []int) *float64 {
	if len(values) == 0 {
		return nil
	}
	sorted := slices.Clone(values)
	slices.Sort(sorted)
	mid := len(sorted) / 2
	if len(sorted)%2 == 1 {
		return schema.Float(float64(sorted[mid]))
	}
	return schema.Float((float64(sorted[mid-1]) + float64(sorted[mid])) / 2)
}

// ComputeThresholds derives the per-metric medians of the subset.
// Absent values are skipped.
func ComputeThresholds(subset []schema.ProjectMetrics) schema.Thresholds {
	return schema.Thresholds{
		Stars:        Median(schema.IntValues(subset, func(p schema.ProjectMetrics) *int { return p.Stars })),
		Forks:        Median(schema.IntValues(subset, func(p schema.ProjectMetrics) *int { return p.Forks })),
		Commits6M:    Median(schema.IntValues(subset, func(p schema.ProjectMetrics) *int { return p.Commits6M })),
		Developers:   Median(schema.IntValues(subset, func(p schema.ProjectMetrics) *int { return p.Developers })),
		Contributors: Median(schema.IntValues(subset, func(p schema.ProjectMetrics) *int { return p.Contributors })),
		SampleSize:   len(subset),
	}
}

// exceeds reports v > median. Either side being absent yields false.
func exceeds(v *int, median *float64) bool {
	if v == nil || median == nil {
		return false
	}
	return float64(*v) > *median
}

// MedianClassifier labels records against the medians of one subset.
// It is bound to that subset for its whole lifetime; a new subset needs a new classifier.
type MedianClassifier struct {
	thresholds schema.Thresholds
}

var _ Classifier = &MedianClassifier{} // Compile-time check

// NewMedianClassifier computes the thresholds of subset and returns a classifier bound to them.
func NewMedianClassifier(subset []schema.ProjectMetrics) *MedianClassifier {
	return &MedianClassifier{thresholds: ComputeThresholds(subset)}
}

// Thresholds returns the medians the classifier compares against.
func (m *MedianClassifier) Thresholds() schema.Thresholds {
	return m.thresholds
}

// Strategy implements Classifier.
func (m *MedianClassifier) Strategy() schema.Strategy {
	return schema.MedianStrategy
}

// Factors returns the three binary factors of a record: high popularity,
// high activity and large size.
func (m *MedianClassifier) Factors(p schema.ProjectMetrics, now time.Time) (popular, active, large bool) {
	t := m.thresholds
	popular = exceeds(p.Stars, t.Stars) || exceeds(p.Forks, t.Forks)
	active = exceeds(p.Commits6M, t.Commits6M)
	if !active {
		if recency := DaysSince(now, p.LastCommit); recency != nil && *recency <= ActiveRecencyDays {
			active = true
		}
	}
	large = exceeds(p.Developers, t.Developers) || exceeds(p.Contributors, t.Contributors)
	return popular, active, large
}

// Classify implements Classifier. Low popularity with low activity has no
// label and is reported as unmatched.
func (m *MedianClassifier) Classify(p schema.ProjectMetrics, now time.Time) (schema.Category, bool) {
	label := medianLabel(m.Factors(p, now))
	return label, label != schema.Unmatched
}

// medianLabel maps a factor combination to its label, or Unmatched.
func medianLabel(popular, active, large bool) schema.Category {
	switch {
	case popular && active && large:
		return schema.HighHighLarge
	case popular && active:
		return schema.HighHighSmall
	case popular && large:
		return schema.HighLowLarge
	case popular:
		return schema.HighLowSmall
	case active && large:
		return schema.LowHighLarge
	case active:
		return schema.LowHighSmall
	default:
		return schema.Unmatched
	}
}
