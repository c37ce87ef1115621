package algo

import (
	"fmt"
	"sync"
	"time"

	"github.com/huangsam/repocat/schema"
)

// Classifier maps one record to a label at a given instant.
// The boolean is false when the strategy has no label for the record.
type Classifier interface {
	Strategy() schema.Strategy
	Classify(p schema.ProjectMetrics, now time.Time) (schema.Category, bool)
}

// NewClassifier returns the classifier of a strategy. The subset is only
// used by the median strategy, which derives its thresholds from it.
func NewClassifier(strategy schema.Strategy, subset []schema.ProjectMetrics) (Classifier, error) {
	switch strategy {
	case schema.StandardStrategy:
		return StandardLadder(), nil
	case schema.ScaledStrategy:
		return ScaledLadder(), nil
	case schema.MedianStrategy:
		return NewMedianClassifier(subset), nil
	default:
		return nil, fmt.Errorf("unknown strategy %q", strategy)
	}
}

// ClassifyOne builds the labelled view of a single record.
func ClassifyOne(c Classifier, p schema.ProjectMetrics, now time.Time) schema.ClassifiedProject {
	category, matched := c.Classify(p, now)
	return schema.ClassifiedProject{
		ProjectMetrics: p,
		DerivedMetrics: Derive(p, now),
		Category:       category,
		Matched:        matched,
		Strategy:       c.Strategy(),
	}
}

// ClassifyAll labels every record with up to workers goroutines.
// The output has the same length and order as the input.
func ClassifyAll(records []schema.ProjectMetrics, c Classifier, now time.Time, workers int) []schema.ClassifiedProject {
	results := make([]schema.ClassifiedProject, len(records))
	if workers < 1 {
		workers = 1
	}
	if workers > len(records) {
		workers = len(records)
	}

	indices := make(chan int, len(records))
	for i := range records {
		indices <- i
	}
	close(indices)

	var wg sync.WaitGroup
	for range workers {
		wg.Go(func() {
			for i := range indices {
				results[i] = ClassifyOne(c, records[i], now) // each index is written once
			}
		})
	}
	wg.Wait()
	return results
}
