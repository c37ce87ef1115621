package core

import (
	"fmt"

	"github.com/huangsam/repocat/core/algo"
	"github.com/huangsam/repocat/internal/contract"
	"github.com/huangsam/repocat/internal/table"
	"github.com/huangsam/repocat/schema"
)

// RunBuilder builds one classification run using a builder pattern.
// Steps must be called in order: LoadTable, SelectSubset, BuildClassifier, Classify.
type RunBuilder struct {
	cfg        *contract.Config
	mgr        contract.TableManager
	tbl        *table.Table
	subset     []schema.ProjectMetrics
	classifier algo.Classifier
	results    []schema.ClassifiedProject
}

// NewRunBuilder creates a new builder for a classification run.
func NewRunBuilder(cfg *contract.Config, mgr contract.TableManager) *RunBuilder {
	return &RunBuilder{cfg: cfg, mgr: mgr}
}

// LoadTable resolves and loads the metrics table.
func (b *RunBuilder) LoadTable() (*RunBuilder, error) {
	tbl, err := LoadSource(b.cfg, b.mgr)
	if err != nil {
		return nil, err
	}
	b.tbl = tbl
	return b, nil
}

// SelectSubset narrows the table to the configured collection.
// An unknown collection is an error rather than an empty result.
func (b *RunBuilder) SelectSubset() (*RunBuilder, error) {
	if b.tbl == nil {
		return nil, fmt.Errorf("table not loaded")
	}
	b.subset = b.tbl.Filter(b.cfg.Collection)
	if b.cfg.Collection != "" && len(b.subset) == 0 {
		return nil, fmt.Errorf("collection %q not found", b.cfg.Collection)
	}
	return b, nil
}

// BuildClassifier creates the classifier of the configured strategy.
// For the median strategy it is bound to the selected subset.
func (b *RunBuilder) BuildClassifier() (*RunBuilder, error) {
	c, err := algo.NewClassifier(b.cfg.Strategy, b.subset)
	if err != nil {
		return nil, err
	}
	b.classifier = c
	return b, nil
}

// Classify labels every record of the subset in table order.
func (b *RunBuilder) Classify() (*RunBuilder, error) {
	if b.classifier == nil {
		return nil, fmt.Errorf("classifier not built")
	}
	b.results = algo.ClassifyAll(b.subset, b.classifier, b.cfg.Now, b.cfg.Workers)
	return b, nil
}

// Table returns the loaded table.
func (b *RunBuilder) Table() *table.Table {
	return b.tbl
}

// Subset returns the records selected for classification.
func (b *RunBuilder) Subset() []schema.ProjectMetrics {
	return b.subset
}

// GetResults returns the classified projects.
func (b *RunBuilder) GetResults() []schema.ClassifiedProject {
	return b.results
}

// runClassification executes every builder step.
func runClassification(cfg *contract.Config, mgr contract.TableManager) (*RunBuilder, error) {
	b := NewRunBuilder(cfg, mgr)
	steps := []func() (*RunBuilder, error){b.LoadTable, b.SelectSubset, b.BuildClassifier, b.Classify}
	for _, step := range steps {
		if _, err := step(); err != nil {
			return nil, err
		}
	}
	return b, nil
}
