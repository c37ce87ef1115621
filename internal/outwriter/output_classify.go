package outwriter

import (
	"encoding/csv"
	"errors"
	"fmt"
	"io"
	"os"
	"strconv"
	"time"

	"github.com/huangsam/repocat/internal/contract"
	"github.com/huangsam/repocat/internal/parquet"
	"github.com/huangsam/repocat/schema"

	"github.com/olekukonko/tablewriter"
	"github.com/olekukonko/tablewriter/tw"
)

// classifiedCSVHeader is the CSV header of classified projects: the input
// columns followed by the derived values and the outcome.
var classifiedCSVHeader = []string{
	"position",
	"collection_name",
	"display_name",
	"star_count",
	"fork_count",
	"developer_count",
	"contributor_count",
	"active_developer_count_6_months",
	"commit_count_6_months",
	"merged_pull_request_count_6_months",
	"closed_issue_count_6_months",
	"first_commit_date",
	"last_commit_date",
	"project_age_days",
	"recent_activity_days",
	"commits_per_active_developer",
	"category",
	"matched",
	"strategy",
}

// WriteClassifiedProjects outputs classified projects, dispatching based on the output format configured.
func WriteClassifiedProjects(projects []schema.ClassifiedProject, cfg *contract.Config, duration time.Duration) error {
	fmtFloat := createFloatFormatter(cfg.Precision)

	switch cfg.Output {
	case schema.JSONOut:
		return writeWithFile(cfg.OutputFile, func(w io.Writer) error {
			return writeJSON(w, schema.EnrichProjects(projects))
		}, "Wrote JSON")
	case schema.CSVOut:
		return writeWithFile(cfg.OutputFile, func(w io.Writer) error {
			return writeCSVWithHeader(w, classifiedCSVHeader, func(cw *csv.Writer) error {
				return writeClassifiedCSVRows(cw, projects, fmtFloat)
			})
		}, "Wrote CSV")
	case schema.ParquetOut:
		return writeClassifiedParquet(projects, cfg.OutputFile)
	default:
		return writeWithFile(cfg.OutputFile, func(w io.Writer) error {
			return writeClassifiedTable(w, projects, cfg, fmtFloat, duration)
		}, "Wrote table")
	}
}

// writeClassifiedParquet writes classified projects as Parquet. A file path is required.
func writeClassifiedParquet(projects []schema.ClassifiedProject, outputFile string) error {
	if outputFile == "" {
		return errors.New("parquet output requires --output-file")
	}
	if err := parquet.WriteClassifiedRowsParquet(parquet.ConvertClassifiedProjects(projects), outputFile); err != nil {
		return fmt.Errorf("error writing Parquet output: %w", err)
	}
	_, _ = fmt.Fprintf(os.Stderr, "💾 Wrote Parquet to %s\n", outputFile)
	return nil
}

// writeClassifiedCSVRows writes one CSV row per project. Absent values are blank.
func writeClassifiedCSVRows(w *csv.Writer, projects []schema.ClassifiedProject, fmtFloat func(float64) string) error {
	for i, p := range projects {
		rec := []string{
			strconv.Itoa(i + 1),
			p.CollectionName,
			p.DisplayName,
			optInt(p.Stars),
			optInt(p.Forks),
			optInt(p.Developers),
			optInt(p.Contributors),
			optInt(p.ActiveDevs6M),
			optInt(p.Commits6M),
			optInt(p.MergedPRs6M),
			optInt(p.ClosedIssues6M),
			optDate(p.FirstCommit),
			optDate(p.LastCommit),
			optInt(p.AgeDays),
			optInt(p.RecencyDays),
			fmtFloat(p.CommitsPerActiveDeveloper),
			contract.GetPlainLabel(p.Category),
			strconv.FormatBool(p.Matched),
			string(p.Strategy),
		}
		if err := w.Write(rec); err != nil {
			return fmt.Errorf("failed to write CSV row: %w", err)
		}
	}
	return nil
}

// writeClassifiedTable generates and writes the human-readable table.
func writeClassifiedTable(w io.Writer, projects []schema.ClassifiedProject, cfg *contract.Config, fmtFloat func(float64) string, duration time.Duration) error {
	table := tablewriter.NewWriter(w)

	showCollection := cfg.Collection == ""
	headers := []string{"#", "Project"}
	align := []tw.Align{tw.AlignRight, tw.AlignLeft}
	if showCollection {
		headers = append(headers, "Collection")
		align = append(align, tw.AlignLeft)
	}
	headers = append(headers, "Category")
	align = append(align, tw.AlignLeft)
	if cfg.Detail {
		headers = append(headers, "Stars", "Forks", "Devs", "Contribs", "Commits 6M", "Age (d)", "Recency (d)", "Commits/Dev")
		for range 8 {
			align = append(align, tw.AlignRight)
		}
	}
	table.Header(headers)
	table.Configure(func(tc *tablewriter.Config) {
		tc.Row.Alignment.PerColumn = align
	})

	nameWidth := GetMaxTableNameWidth(cfg)
	var data [][]string
	for i, p := range projects {
		row := []string{
			strconv.Itoa(i + 1),
			contract.TruncateName(p.DisplayName, nameWidth),
		}
		if showCollection {
			row = append(row, p.CollectionName)
		}
		row = append(row, contract.GetColorLabel(p.Category))
		if cfg.Detail {
			row = append(row,
				optIntHuman(p.Stars),
				optIntHuman(p.Forks),
				optIntHuman(p.Developers),
				optIntHuman(p.Contributors),
				optIntHuman(p.Commits6M),
				optIntHuman(p.AgeDays),
				optIntHuman(p.RecencyDays),
				fmtFloat(p.CommitsPerActiveDeveloper),
			)
		}
		data = append(data, row)
	}

	if err := table.Bulk(data); err != nil {
		return err
	}
	if err := table.Render(); err != nil {
		return err
	}

	unmatched := 0
	for _, p := range projects {
		if !p.Matched {
			unmatched++
		}
	}
	if _, err := fmt.Fprintf(w, "Showing %d projects (strategy: %s, as of %s, unmatched: %d)\n",
		len(projects), cfg.Strategy, cfg.Now.Format(time.DateOnly), unmatched); err != nil {
		return err
	}
	if _, err := fmt.Fprintf(w, "Classification completed in %v with %d workers. Backend: %s\n", duration, cfg.Workers, cfg.Backend); err != nil {
		return err
	}
	return nil
}
