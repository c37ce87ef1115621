package cmd

import (
	"github.com/huangsam/repocat/core"
	"github.com/huangsam/repocat/internal/contract"
	"github.com/spf13/cobra"
)

// runView returns a cobra Run function that executes a table view and exits on failure.
func runView(exec core.ExecutorFunc, failure string) func(*cobra.Command, []string) {
	return func(_ *cobra.Command, _ []string) {
		if err := exec(rootCtx, cfg, tableManager); err != nil {
			contract.LogFatal(failure, err)
		}
	}
}

// classifyCmd labels every project of the table.
var classifyCmd = &cobra.Command{
	Use:   "classify [table]",
	Short: "Label each project with a popularity and activity category.",
	Long: `Classify every project of a metrics table.

The table is a .csv or .parquet file given as the only argument. Without an
argument the rows stored by 'repocat table import' are used.

Strategies:
  standard - fixed thresholds tuned for collections of typical size (default)
  scaled   - the same ladder with every count bound five times larger
  median   - popularity, activity and size measured against the medians of
             the selected collection

Rules are checked top to bottom and the first match wins. Projects that match
no rule are labelled Uncategorized (fixed strategies) or left without a label
(median).

Examples:
  # Classify a CSV export
  repocat classify metrics.csv

  # Only one collection, measured against its own medians
  repocat classify metrics.csv --collection cncf --strategy median

  # Group by category and show the metric columns
  repocat classify metrics.csv --group --detail

  # Reproduce an earlier run
  repocat classify metrics.csv --as-of 2024-06-01

  # Export labels to Parquet
  repocat classify metrics.csv --output parquet --output-file labels.parquet`,
	Args:    cobra.MaximumNArgs(1),
	PreRunE: sharedSetupWrapper,
	Run:     runView(core.ExecuteClassify, "Cannot classify projects"),
}

// summaryCmd counts projects per category.
var summaryCmd = &cobra.Command{
	Use:   "summary [table]",
	Short: "Count projects per category.",
	Long: `Show how many projects fall into each category, in display order.

Categories without projects are listed with a zero count. Projects without a
label are reported separately.

Examples:
  repocat summary metrics.csv
  repocat summary metrics.csv --collection cncf --strategy median --output json`,
	Args:    cobra.MaximumNArgs(1),
	PreRunE: sharedSetupWrapper,
	Run:     runView(core.ExecuteSummary, "Cannot summarize categories"),
}

// collectionsCmd lists the collections of the table.
var collectionsCmd = &cobra.Command{
	Use:   "collections [table]",
	Short: "List the collections of a table with their project counts.",
	Long: `List collection names in first-seen order with the number of projects in each.

Examples:
  repocat collections metrics.csv
  repocat collections --backend sqlite`,
	Args:    cobra.MaximumNArgs(1),
	PreRunE: sharedSetupWrapper,
	Run:     runView(core.ExecuteCollections, "Cannot list collections"),
}

// thresholdsCmd prints the medians of the selected subset.
var thresholdsCmd = &cobra.Command{
	Use:   "thresholds [table]",
	Short: "Show the medians used by the median strategy.",
	Long: `Compute the medians of stars, forks, commits, developers and contributors
over the selected collection (or the whole table). Missing values are skipped.

Examples:
  repocat thresholds metrics.csv --collection cncf`,
	Args:    cobra.MaximumNArgs(1),
	PreRunE: sharedSetupWrapper,
	Run:     runView(core.ExecuteThresholds, "Cannot compute thresholds"),
}

// rulesCmd prints the classification rules. It needs no table.
var rulesCmd = &cobra.Command{
	Use:   "rules",
	Short: "Show the rule ladders and the median label definitions.",
	Long: `Print the rules of every strategy in evaluation order.

Examples:
  repocat rules
  repocat rules --output csv --output-file rules.csv`,
	Args:    cobra.NoArgs,
	PreRunE: sharedSetupWrapper,
	Run: func(_ *cobra.Command, _ []string) {
		if err := core.ExecuteRules(cfg); err != nil {
			contract.LogFatal("Cannot print rules", err)
		}
	},
}
