// Package outwriter has output and writer logic.
package outwriter

import (
	"os"
	"time"

	"github.com/huangsam/repocat/internal/contract"
	"github.com/huangsam/repocat/schema"
	"golang.org/x/term"
)

// OutWriter provides a unified interface for all output operations.
// It encapsulates the various output formats and provides a clean API for the core logic.
type OutWriter struct{}

// NewOutWriter creates a new instance of the output writer.
func NewOutWriter() *OutWriter {
	return &OutWriter{}
}

// WriteClassified prints classified projects using the configured output format.
func (ow *OutWriter) WriteClassified(projects []schema.ClassifiedProject, cfg *contract.Config, duration time.Duration) error {
	return WriteClassifiedProjects(projects, cfg, duration)
}

// WriteSummary prints the per-category breakdown using the configured output format.
func (ow *OutWriter) WriteSummary(result schema.SummaryResult, cfg *contract.Config) error {
	return WriteSummaryResult(result, cfg)
}

// WriteCollections prints the collections of a table using the configured output format.
func (ow *OutWriter) WriteCollections(infos []schema.CollectionInfo, cfg *contract.Config) error {
	return WriteCollectionInfos(infos, cfg)
}

// WriteThresholds prints median thresholds using the configured output format.
func (ow *OutWriter) WriteThresholds(thresholds schema.Thresholds, cfg *contract.Config) error {
	return WriteThresholdValues(thresholds, cfg)
}

// WriteRules prints the rule ladders and median definitions using the configured output format.
func (ow *OutWriter) WriteRules(model schema.RulesRenderModel, cfg *contract.Config) error {
	return WriteRulesModel(model, cfg)
}

// GetMaxTableNameWidth calculates the maximum width for project names in table output
// based on terminal width and table configuration.
func GetMaxTableNameWidth(cfg *contract.Config) int {
	var termWidth int

	// Check for absolute width override from flag/env
	if cfg.Width > 0 {
		termWidth = cfg.Width
	}

	if termWidth == 0 { // Not set by override
		detectedWidth, _, err := term.GetSize(int(os.Stdout.Fd()))
		if err != nil || detectedWidth <= 0 {
			termWidth = 80 // Conservative default for narrow terminals and CI
		} else {
			termWidth = detectedWidth
		}
	}

	// Position + Category with borders/padding
	baseWidth := 50

	// Count and day columns
	if cfg.Detail {
		baseWidth += 75
	}

	// Table borders and separators
	baseWidth += 15

	available := termWidth - baseWidth
	if available < 15 {
		return 15
	}
	if available > 60 {
		return 60
	}
	return available
}
