package outwriter

import (
	"encoding/csv"
	"fmt"
	"io"
	"strconv"

	"github.com/huangsam/repocat/internal/contract"
	"github.com/huangsam/repocat/schema"

	"github.com/olekukonko/tablewriter"
)

// WriteThresholdValues outputs the medians of the in-scope subset, dispatching based on the output format configured.
func WriteThresholdValues(t schema.Thresholds, cfg *contract.Config) error {
	fmtFloat := createFloatFormatter(cfg.Precision)
	rows := [][]string{
		{"star_count", optFloat(t.Stars, fmtFloat)},
		{"fork_count", optFloat(t.Forks, fmtFloat)},
		{"commit_count_6_months", optFloat(t.Commits6M, fmtFloat)},
		{"developer_count", optFloat(t.Developers, fmtFloat)},
		{"contributor_count", optFloat(t.Contributors, fmtFloat)},
	}

	switch cfg.Output {
	case schema.JSONOut:
		return writeWithFile(cfg.OutputFile, func(w io.Writer) error {
			return writeJSON(w, t)
		}, "Wrote JSON")
	case schema.CSVOut:
		return writeWithFile(cfg.OutputFile, func(w io.Writer) error {
			return writeCSVWithHeader(w, []string{"metric", "median"}, func(cw *csv.Writer) error {
				return cw.WriteAll(rows)
			})
		}, "Wrote CSV")
	case schema.ParquetOut:
		return errParquetView("thresholds")
	default:
		return writeWithFile(cfg.OutputFile, func(w io.Writer) error {
			table := tablewriter.NewWriter(w)
			table.Header([]string{"Metric", "Median"})
			if err := table.Bulk(rows); err != nil {
				return err
			}
			if err := table.Render(); err != nil {
				return err
			}
			_, err := fmt.Fprintf(w, "Medians over %d projects; a project must strictly exceed a median\n", t.SampleSize)
			return err
		}, "Wrote table")
	}
}

var rulesCSVHeader = []string{
	"strategy", "position", "category",
	"star_count", "fork_count", "developer_count", "contributor_count",
	"commit_count_6_months", "project_age_days", "recent_activity_days",
}

func ruleCells(r schema.RuleView) []string {
	return []string{r.Stars, r.Forks, r.Developers, r.Contributors, r.Commits6M, r.AgeDays, r.RecencyDays}
}

// WriteRulesModel outputs the rule ladders and median definitions, dispatching based on the output format configured.
func WriteRulesModel(model schema.RulesRenderModel, cfg *contract.Config) error {
	switch cfg.Output {
	case schema.JSONOut:
		return writeWithFile(cfg.OutputFile, func(w io.Writer) error {
			return writeJSON(w, model)
		}, "Wrote JSON")
	case schema.CSVOut:
		return writeWithFile(cfg.OutputFile, func(w io.Writer) error {
			return writeCSVWithHeader(w, rulesCSVHeader, func(cw *csv.Writer) error {
				for _, ladder := range model.Ladders {
					for _, r := range ladder.Rules {
						rec := append([]string{string(ladder.Strategy), strconv.Itoa(r.Position), string(r.Category)}, ruleCells(r)...)
						if err := cw.Write(rec); err != nil {
							return err
						}
					}
				}
				return nil
			})
		}, "Wrote CSV")
	case schema.ParquetOut:
		return errParquetView("rules")
	default:
		return writeWithFile(cfg.OutputFile, func(w io.Writer) error {
			return writeRulesText(w, model)
		}, "Wrote text")
	}
}

func level(b bool, high, low string) string {
	if b {
		return high
	}
	return low
}

func writeRulesText(w io.Writer, model schema.RulesRenderModel) error {
	for _, ladder := range model.Ladders {
		if _, err := fmt.Fprintf(w, "📐 %s strategy (first matching rule wins, otherwise %s)\n", ladder.Strategy, schema.Uncategorized); err != nil {
			return err
		}
		table := tablewriter.NewWriter(w)
		table.Header([]string{"#", "Category", "Stars", "Forks", "Devs", "Contribs", "Commits 6M", "Age (d)", "Recency (d)"})
		var data [][]string
		for _, r := range ladder.Rules {
			data = append(data, append([]string{strconv.Itoa(r.Position), contract.GetColorLabel(r.Category)}, ruleCells(r)...))
		}
		if err := table.Bulk(data); err != nil {
			return err
		}
		if err := table.Render(); err != nil {
			return err
		}
		if _, err := fmt.Fprintln(w); err != nil {
			return err
		}
	}

	if _, err := fmt.Fprintf(w, "📊 %s strategy (medians of the selected projects)\n", schema.MedianStrategy); err != nil {
		return err
	}
	for _, f := range model.MedianFactors {
		if _, err := fmt.Fprintf(w, "   %s: %s\n", f.Name, f.Definition); err != nil {
			return err
		}
	}
	table := tablewriter.NewWriter(w)
	table.Header([]string{"Popularity", "Activity", "Size", "Category"})
	var data [][]string
	for _, l := range model.MedianLabels {
		label := contract.GetColorLabel(l.Category)
		if l.Category == schema.Unmatched {
			label = "(unmatched)"
		}
		data = append(data, []string{level(l.Popular, "high", "low"), level(l.Active, "high", "low"), level(l.Large, "large", "small"), label})
	}
	if err := table.Bulk(data); err != nil {
		return err
	}
	return table.Render()
}
