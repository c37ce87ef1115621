package outwriter

import (
	"encoding/csv"
	"fmt"
	"io"
	"math"
	"strconv"
	"strings"
	"time"

	"github.com/dustin/go-humanize"
	"github.com/huangsam/repocat/internal/contract"
	"github.com/huangsam/repocat/schema"

	"github.com/olekukonko/tablewriter"
	"github.com/olekukonko/tablewriter/tw"
)

// barWidth is the length of a full-share bar in the summary table.
const barWidth = 30

// errParquetView is returned for views that have no Parquet rendering.
func errParquetView(view string) error {
	return fmt.Errorf("parquet output is not supported for %s; use classify", view)
}

// WriteSummaryResult outputs the per-category breakdown, dispatching based on the output format configured.
func WriteSummaryResult(result schema.SummaryResult, cfg *contract.Config) error {
	fmtFloat := createFloatFormatter(cfg.Precision)

	switch cfg.Output {
	case schema.JSONOut:
		return writeWithFile(cfg.OutputFile, func(w io.Writer) error {
			return writeJSON(w, result)
		}, "Wrote JSON")
	case schema.CSVOut:
		return writeWithFile(cfg.OutputFile, func(w io.Writer) error {
			return writeCSVWithHeader(w, []string{"category", "count", "share"}, func(cw *csv.Writer) error {
				for _, c := range result.Counts {
					if err := cw.Write([]string{string(c.Category), strconv.Itoa(c.Count), fmtFloat(c.Share)}); err != nil {
						return err
					}
				}
				return nil
			})
		}, "Wrote CSV")
	case schema.ParquetOut:
		return errParquetView("summary")
	default:
		return writeWithFile(cfg.OutputFile, func(w io.Writer) error {
			return writeSummaryTable(w, result, fmtFloat)
		}, "Wrote table")
	}
}

// bar renders a share in [0,1] as a block bar.
func bar(share float64) string {
	n := int(math.Round(share * barWidth))
	return strings.Repeat("█", max(0, min(n, barWidth)))
}

func writeSummaryTable(w io.Writer, result schema.SummaryResult, fmtFloat func(float64) string) error {
	table := tablewriter.NewWriter(w)
	table.Header([]string{"Category", "Projects", "Share", ""})
	table.Configure(func(tc *tablewriter.Config) {
		tc.Row.Alignment.PerColumn = []tw.Align{tw.AlignLeft, tw.AlignRight, tw.AlignRight, tw.AlignLeft}
	})

	var data [][]string
	for _, c := range result.Counts {
		data = append(data, []string{
			contract.GetColorLabel(c.Category),
			humanize.Comma(int64(c.Count)),
			fmtFloat(c.Share*100) + "%",
			bar(c.Share),
		})
	}
	if err := table.Bulk(data); err != nil {
		return err
	}
	if err := table.Render(); err != nil {
		return err
	}

	scope := "all collections"
	if result.Collection != "" {
		scope = result.Collection
	}
	_, err := fmt.Fprintf(w, "Total: %s projects in %s, unmatched: %s (strategy: %s, as of %s)\n",
		humanize.Comma(int64(result.Total)), scope, humanize.Comma(int64(result.Unmatched)),
		result.Strategy, result.AsOf.Format(time.DateOnly))
	return err
}

// WriteCollectionInfos outputs the collections of a table, dispatching based on the output format configured.
func WriteCollectionInfos(infos []schema.CollectionInfo, cfg *contract.Config) error {
	switch cfg.Output {
	case schema.JSONOut:
		return writeWithFile(cfg.OutputFile, func(w io.Writer) error {
			return writeJSON(w, infos)
		}, "Wrote JSON")
	case schema.CSVOut:
		return writeWithFile(cfg.OutputFile, func(w io.Writer) error {
			return writeCSVWithHeader(w, []string{"collection_name", "projects"}, func(cw *csv.Writer) error {
				for _, c := range infos {
					if err := cw.Write([]string{c.Name, strconv.Itoa(c.Projects)}); err != nil {
						return err
					}
				}
				return nil
			})
		}, "Wrote CSV")
	case schema.ParquetOut:
		return errParquetView("collections")
	default:
		return writeWithFile(cfg.OutputFile, func(w io.Writer) error {
			table := tablewriter.NewWriter(w)
			table.Header([]string{"Collection", "Projects"})
			table.Configure(func(tc *tablewriter.Config) {
				tc.Row.Alignment.PerColumn = []tw.Align{tw.AlignLeft, tw.AlignRight}
			})
			total := 0
			var data [][]string
			for _, c := range infos {
				total += c.Projects
				data = append(data, []string{c.Name, humanize.Comma(int64(c.Projects))})
			}
			if err := table.Bulk(data); err != nil {
				return err
			}
			if err := table.Render(); err != nil {
				return err
			}
			_, err := fmt.Fprintf(w, "%d collections, %s projects\n", len(infos), humanize.Comma(int64(total)))
			return err
		}, "Wrote table")
	}
}
