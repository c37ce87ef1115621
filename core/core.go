// Package core orchestrates a classification run: it resolves the metrics
// table, selects the in-scope subset, classifies it and hands the results to
// the output layer.
package core

import (
	"context"
	"fmt"
	"os"
	"time"

	"github.com/huangsam/repocat/core/algo"
	"github.com/huangsam/repocat/internal/contract"
	"github.com/huangsam/repocat/internal/outwriter"
	"github.com/huangsam/repocat/internal/table"
	"github.com/huangsam/repocat/schema"
)

// ExecutorFunc defines the function signature for executing the table views.
type ExecutorFunc func(ctx context.Context, cfg *contract.Config, mgr contract.TableManager) error

// GetClassifyResults classifies the subset and applies grouping, the category filter and the limit.
func GetClassifyResults(cfg *contract.Config, mgr contract.TableManager) ([]schema.ClassifiedProject, error) {
	b, err := runClassification(cfg, mgr)
	if err != nil {
		return nil, err
	}
	results := b.GetResults()
	if cfg.Group {
		results = algo.GroupByCategory(results, cfg.Strategy)
	}
	if cfg.Category != "" {
		results = algo.FilterCategory(results, cfg.Category)
	}
	return algo.Limit(results, cfg.ResultLimit), nil
}

// GetSummaryResult classifies the subset and counts projects per category.
func GetSummaryResult(cfg *contract.Config, mgr contract.TableManager) (schema.SummaryResult, error) {
	b, err := runClassification(cfg, mgr)
	if err != nil {
		return schema.SummaryResult{}, err
	}
	results := b.GetResults()
	counts, unmatched := algo.Summarize(results, cfg.Strategy)
	return schema.SummaryResult{
		Collection: cfg.Collection,
		Strategy:   cfg.Strategy,
		AsOf:       cfg.Now,
		Total:      len(results),
		Unmatched:  unmatched,
		Counts:     counts,
	}, nil
}

// GetCollections lists the collections of the resolved table.
func GetCollections(cfg *contract.Config, mgr contract.TableManager) ([]schema.CollectionInfo, error) {
	b, err := NewRunBuilder(cfg, mgr).LoadTable()
	if err != nil {
		return nil, err
	}
	return b.Table().Collections(), nil
}

// GetThresholds computes the medians of the in-scope subset.
func GetThresholds(cfg *contract.Config, mgr contract.TableManager) (schema.Thresholds, error) {
	b, err := NewRunBuilder(cfg, mgr).LoadTable()
	if err != nil {
		return schema.Thresholds{}, err
	}
	if _, err := b.SelectSubset(); err != nil {
		return schema.Thresholds{}, err
	}
	return algo.ComputeThresholds(b.Subset()), nil
}

// ExecuteClassify labels the table and prints one row per project.
// It serves as the main entry point for the 'classify' command.
func ExecuteClassify(ctx context.Context, cfg *contract.Config, mgr contract.TableManager) error {
	if err := ctx.Err(); err != nil {
		return err
	}
	start := time.Now()
	results, err := GetClassifyResults(cfg, mgr)
	if err != nil {
		return err
	}
	return outwriter.NewOutWriter().WriteClassified(results, cfg, time.Since(start))
}

// ExecuteSummary prints the per-category breakdown of the table.
func ExecuteSummary(ctx context.Context, cfg *contract.Config, mgr contract.TableManager) error {
	if err := ctx.Err(); err != nil {
		return err
	}
	result, err := GetSummaryResult(cfg, mgr)
	if err != nil {
		return err
	}
	return outwriter.NewOutWriter().WriteSummary(result, cfg)
}

// ExecuteCollections prints the collections of the table.
func ExecuteCollections(ctx context.Context, cfg *contract.Config, mgr contract.TableManager) error {
	if err := ctx.Err(); err != nil {
		return err
	}
	infos, err := GetCollections(cfg, mgr)
	if err != nil {
		return err
	}
	return outwriter.NewOutWriter().WriteCollections(infos, cfg)
}

// ExecuteThresholds prints the medians used by the median strategy.
func ExecuteThresholds(ctx context.Context, cfg *contract.Config, mgr contract.TableManager) error {
	if err := ctx.Err(); err != nil {
		return err
	}
	thresholds, err := GetThresholds(cfg, mgr)
	if err != nil {
		return err
	}
	return outwriter.NewOutWriter().WriteThresholds(thresholds, cfg)
}

// ExecuteRules prints the rule ladders and the median label definitions.
// It needs no table.
func ExecuteRules(cfg *contract.Config) error {
	return outwriter.NewOutWriter().WriteRules(algo.DescribeRules(), cfg)
}

// ExecuteImport loads a table file and stores it in the configured backend,
// replacing the rows of every collection it contains.
func ExecuteImport(ctx context.Context, cfg *contract.Config, mgr contract.TableManager) error {
	if err := ctx.Err(); err != nil {
		return err
	}
	if cfg.SourcePath == "" {
		return fmt.Errorf("import requires a .csv or .parquet path")
	}
	if cfg.Backend == schema.NoneBackend || cfg.Backend == "" {
		return fmt.Errorf("import requires --backend sqlite, mysql or postgresql")
	}
	store := mgr.GetTableStore()
	if store == nil {
		return fmt.Errorf("table store is not initialized")
	}

	tbl, err := table.LoadFile(cfg.SourcePath)
	if err != nil {
		return err
	}
	records := tbl.Filter(cfg.Collection)
	if cfg.Collection != "" && len(records) == 0 {
		return fmt.Errorf("collection %q not found", cfg.Collection)
	}

	n, err := store.Import(records)
	if err != nil {
		return fmt.Errorf("failed to import %s: %w", cfg.SourcePath, err)
	}
	_, _ = fmt.Fprintf(os.Stderr, "Imported %d rows from %s into %s backend\n", n, cfg.SourcePath, cfg.Backend)
	return nil
}
