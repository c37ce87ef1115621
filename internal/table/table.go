// Package table loads the project metrics table from CSV or Parquet files and
// offers the read-only views a classification pass needs.
package table

import (
	"encoding/csv"
	"errors"
	"fmt"
	"io"
	"os"
	"path/filepath"
	"slices"
	"strings"

	"github.com/huangsam/repocat/internal/parquet"
	"github.com/huangsam/repocat/schema"
)

// Column names of the metrics table.
const (
	ColCollectionName = "collection_name"
	ColDisplayName    = "display_name"
	ColStars          = "star_count"
	ColForks          = "fork_count"
	ColDevelopers     = "developer_count"
	ColContributors   = "contributor_count"
	ColActiveDevs6M   = "active_developer_count_6_months"
	ColCommits6M      = "commit_count_6_months"
	ColMergedPRs6M    = "merged_pull_request_count_6_months"
	ColClosedIssues6M = "closed_issue_count_6_months"
	ColFirstCommit    = "first_commit_date"
	ColLastCommit     = "last_commit_date"
)

// Columns lists every column of the metrics table in canonical order.
var Columns = []string{
	ColCollectionName, ColDisplayName,
	ColStars, ColForks, ColDevelopers, ColContributors,
	ColActiveDevs6M, ColCommits6M, ColMergedPRs6M, ColClosedIssues6M,
	ColFirstCommit, ColLastCommit,
}

// ErrEmptyTable is returned when a CSV source has no header row.
var ErrEmptyTable = errors.New("table has no header row")

// Table is an ordered, immutable collection of project metrics.
type Table struct {
	records []schema.ProjectMetrics
}

// New builds a table from records. The slice is copied.
func New(records []schema.ProjectMetrics) *Table {
	return &Table{records: slices.Clone(records)}
}

// Len returns the number of records.
func (t *Table) Len() int {
	return len(t.records)
}

// Records returns a copy of all records in table order.
func (t *Table) Records() []schema.ProjectMetrics {
	return slices.Clone(t.records)
}

// Filter returns the records of one collection in table order.
// An empty collection selects every record.
func (t *Table) Filter(collection string) []schema.ProjectMetrics {
	if collection == "" {
		return t.Records()
	}
	var out []schema.ProjectMetrics
	for _, r := range t.records {
		if r.CollectionName == collection {
			out = append(out, r)
		}
	}
	return out
}

// Collections returns the distinct collection names in first-seen order with their sizes.
func (t *Table) Collections() []schema.CollectionInfo {
	index := map[string]int{}
	var out []schema.CollectionInfo
	for _, r := range t.records {
		i, ok := index[r.CollectionName]
		if !ok {
			i = len(out)
			index[r.CollectionName] = i
			out = append(out, schema.CollectionInfo{Name: r.CollectionName})
		}
		out[i].Projects++
	}
	return out
}

// LoadFile loads a table from a .csv or .parquet file, chosen by extension.
func LoadFile(path string) (*Table, error) {
	switch strings.ToLower(filepath.Ext(path)) {
	case ".csv":
		return LoadCSV(path)
	case ".parquet":
		return LoadParquet(path)
	default:
		return nil, fmt.Errorf("unsupported table file %q", path)
	}
}

// LoadParquet loads a table from a Parquet file of ProjectRow rows.
func LoadParquet(path string) (*Table, error) {
	rows, err := parquet.ReadProjectRowsParquet(path)
	if err != nil {
		return nil, err
	}
	return &Table{records: parquet.ConvertProjectRows(rows)}, nil
}

// LoadCSV loads a table from a CSV file.
func LoadCSV(path string) (*Table, error) {
	file, err := os.Open(path)
	if err != nil {
		return nil, fmt.Errorf("failed to open table file: %w", err)
	}
	defer func() { _ = file.Close() }()
	return ReadCSV(file)
}

// ReadCSV reads a CSV table. Columns are looked up by header name, so their
// order does not matter; unknown columns are ignored and missing ones are
// absent for every row. Bad cells never fail the load.
func ReadCSV(r io.Reader) (*Table, error) {
	reader := csv.NewReader(r)
	reader.FieldsPerRecord = -1
	reader.TrimLeadingSpace = true
	reader.LazyQuotes = true

	header, err := reader.Read()
	if errors.Is(err, io.EOF) {
		return nil, ErrEmptyTable
	}
	if err != nil {
		return nil, fmt.Errorf("failed to read CSV header: %w", err)
	}
	pos := make(map[string]int, len(header))
	for i, name := range header {
		name = strings.ToLower(strings.TrimSpace(strings.TrimPrefix(name, "\ufeff")))
		if _, seen := pos[name]; !seen {
			pos[name] = i
		}
	}

	t := &Table{}
	for {
		row, err := reader.Read()
		if errors.Is(err, io.EOF) {
			break
		}
		if err != nil {
			return nil, fmt.Errorf("failed to read CSV row %d: %w", len(t.records)+2, err)
		}
		cell := func(col string) string {
			if i, ok := pos[col]; ok && i < len(row) {
				return row[i]
			}
			return ""
		}
		t.records = append(t.records, schema.ProjectMetrics{
			CollectionName: strings.TrimSpace(cell(ColCollectionName)),
			DisplayName:    strings.TrimSpace(cell(ColDisplayName)),
			Stars:          ParseCount(cell(ColStars)),
			Forks:          ParseCount(cell(ColForks)),
			Developers:     ParseCount(cell(ColDevelopers)),
			Contributors:   ParseCount(cell(ColContributors)),
			ActiveDevs6M:   ParseCount(cell(ColActiveDevs6M)),
			Commits6M:      ParseCount(cell(ColCommits6M)),
			MergedPRs6M:    ParseCount(cell(ColMergedPRs6M)),
			ClosedIssues6M: ParseCount(cell(ColClosedIssues6M)),
			FirstCommit:    ParseDate(cell(ColFirstCommit)),
			LastCommit:     ParseDate(cell(ColLastCommit)),
		})
	}
	return t, nil
}
