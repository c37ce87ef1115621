// Package parquet provides data structures and functions for reading project
// metrics from, and writing classified projects to, Parquet files using
// github.com/parquet-go/parquet-go.
package parquet

import (
	"errors"
	"fmt"
	"io"
	"os"
	"time"

	"github.com/huangsam/repocat/schema"
	"github.com/parquet-go/parquet-go"
)

// ProjectRow is one row of a metrics table stored as Parquet.
// Every count and date is optional; a null cell is an absent value.
type ProjectRow struct {
	CollectionName string     `parquet:"collection_name,snappy"`
	DisplayName    string     `parquet:"display_name,snappy"`
	Stars          *int64     `parquet:"star_count,optional,snappy"`
	Forks          *int64     `parquet:"fork_count,optional,snappy"`
	Developers     *int64     `parquet:"developer_count,optional,snappy"`
	Contributors   *int64     `parquet:"contributor_count,optional,snappy"`
	ActiveDevs6M   *int64     `parquet:"active_developer_count_6_months,optional,snappy"`
	Commits6M      *int64     `parquet:"commit_count_6_months,optional,snappy"`
	MergedPRs6M    *int64     `parquet:"merged_pull_request_count_6_months,optional,snappy"`
	ClosedIssues6M *int64     `parquet:"closed_issue_count_6_months,optional,snappy"`
	FirstCommit    *time.Time `parquet:"first_commit_date,optional,snappy"`
	LastCommit     *time.Time `parquet:"last_commit_date,optional,snappy"`
}

// ClassifiedRow is a project row plus the classification outcome.
type ClassifiedRow struct {
	CollectionName string     `parquet:"collection_name,snappy"`
	DisplayName    string     `parquet:"display_name,snappy"`
	Stars          *int64     `parquet:"star_count,optional,snappy"`
	Forks          *int64     `parquet:"fork_count,optional,snappy"`
	Developers     *int64     `parquet:"developer_count,optional,snappy"`
	Contributors   *int64     `parquet:"contributor_count,optional,snappy"`
	ActiveDevs6M   *int64     `parquet:"active_developer_count_6_months,optional,snappy"`
	Commits6M      *int64     `parquet:"commit_count_6_months,optional,snappy"`
	MergedPRs6M    *int64     `parquet:"merged_pull_request_count_6_months,optional,snappy"`
	ClosedIssues6M *int64     `parquet:"closed_issue_count_6_months,optional,snappy"`
	FirstCommit    *time.Time `parquet:"first_commit_date,optional,snappy"`
	LastCommit     *time.Time `parquet:"last_commit_date,optional,snappy"`

	// ProjectAgeDays is null when the first commit date is absent
	ProjectAgeDays *int64 `parquet:"project_age_days,optional,snappy"`
	// RecentActivityDays is null when the last commit date is absent
	RecentActivityDays        *int64  `parquet:"recent_activity_days,optional,snappy"`
	CommitsPerActiveDeveloper float64 `parquet:"commits_per_active_developer,snappy"`
	Category                  string  `parquet:"category,snappy"`
	Matched                   bool    `parquet:"matched,snappy"`
	Strategy                  string  `parquet:"strategy,snappy"`
}

// WriteProjectRowsParquet writes a slice of ProjectRow structs to a Parquet file.
func WriteProjectRowsParquet(data []ProjectRow, outputPath string) error {
	return writeParquet(data, outputPath)
}

// WriteClassifiedRowsParquet writes a slice of ClassifiedRow structs to a Parquet file.
func WriteClassifiedRowsParquet(data []ClassifiedRow, outputPath string) error {
	return writeParquet(data, outputPath)
}

func writeParquet[T any](data []T, outputPath string) error {
	file, err := os.Create(outputPath)
	if err != nil {
		return fmt.Errorf("failed to create output file: %w", err)
	}
	defer func() { _ = file.Close() }()

	// The schema is derived from the struct tags of T
	writer := parquet.NewGenericWriter[T](file)
	if _, err := writer.Write(data); err != nil {
		_ = writer.Close()
		return fmt.Errorf("failed to write data to parquet file: %w", err)
	}
	if err := writer.Close(); err != nil {
		return fmt.Errorf("failed to finalize parquet file: %w", err)
	}
	return nil
}

// ReadProjectRowsParquet reads every ProjectRow of a Parquet file in file order.
func ReadProjectRowsParquet(inputPath string) ([]ProjectRow, error) {
	file, err := os.Open(inputPath)
	if err != nil {
		return nil, fmt.Errorf("failed to open parquet file: %w", err)
	}
	defer func() { _ = file.Close() }()

	reader := parquet.NewGenericReader[ProjectRow](file)
	defer func() { _ = reader.Close() }()

	rows := make([]ProjectRow, reader.NumRows())
	n, err := reader.Read(rows)
	if err != nil && !errors.Is(err, io.EOF) {
		return nil, fmt.Errorf("failed to read parquet rows: %w", err)
	}
	return rows[:n], nil
}

func toInt(v *int64) *int {
	if v == nil || *v < 0 {
		return nil
	}
	i := int(*v)
	return &i
}

func toInt64(v *int) *int64 {
	if v == nil {
		return nil
	}
	i := int64(*v)
	return &i
}

func toUTC(t *time.Time) *time.Time {
	if t == nil || t.IsZero() {
		return nil
	}
	return schema.Time(*t)
}

// ConvertProjectRows maps Parquet rows to project metrics. Negative counts become absent.
func ConvertProjectRows(rows []ProjectRow) []schema.ProjectMetrics {
	records := make([]schema.ProjectMetrics, len(rows))
	for i, r := range rows {
		records[i] = schema.ProjectMetrics{
			CollectionName: r.CollectionName,
			DisplayName:    r.DisplayName,
			Stars:          toInt(r.Stars),
			Forks:          toInt(r.Forks),
			Developers:     toInt(r.Developers),
			Contributors:   toInt(r.Contributors),
			ActiveDevs6M:   toInt(r.ActiveDevs6M),
			Commits6M:      toInt(r.Commits6M),
			MergedPRs6M:    toInt(r.MergedPRs6M),
			ClosedIssues6M: toInt(r.ClosedIssues6M),
			FirstCommit:    toUTC(r.FirstCommit),
			LastCommit:     toUTC(r.LastCommit),
		}
	}
	return records
}

// ConvertProjectMetrics maps project metrics to Parquet rows.
func ConvertProjectMetrics(records []schema.ProjectMetrics) []ProjectRow {
	rows := make([]ProjectRow, len(records))
	for i, p := range records {
		rows[i] = ProjectRow{
			CollectionName: p.CollectionName,
			DisplayName:    p.DisplayName,
			Stars:          toInt64(p.Stars),
			Forks:          toInt64(p.Forks),
			Developers:     toInt64(p.Developers),
			Contributors:   toInt64(p.Contributors),
			ActiveDevs6M:   toInt64(p.ActiveDevs6M),
			Commits6M:      toInt64(p.Commits6M),
			MergedPRs6M:    toInt64(p.MergedPRs6M),
			ClosedIssues6M: toInt64(p.ClosedIssues6M),
			FirstCommit:    p.FirstCommit,
			LastCommit:     p.LastCommit,
		}
	}
	return rows
}

// ConvertClassifiedProjects maps classified projects to Parquet rows.
func ConvertClassifiedProjects(projects []schema.ClassifiedProject) []ClassifiedRow {
	rows := make([]ClassifiedRow, len(projects))
	for i, p := range projects {
		rows[i] = ClassifiedRow{
			CollectionName:            p.CollectionName,
			DisplayName:               p.DisplayName,
			Stars:                     toInt64(p.Stars),
			Forks:                     toInt64(p.Forks),
			Developers:                toInt64(p.Developers),
			Contributors:              toInt64(p.Contributors),
			ActiveDevs6M:              toInt64(p.ActiveDevs6M),
			Commits6M:                 toInt64(p.Commits6M),
			MergedPRs6M:               toInt64(p.MergedPRs6M),
			ClosedIssues6M:            toInt64(p.ClosedIssues6M),
			FirstCommit:               p.FirstCommit,
			LastCommit:                p.LastCommit,
			ProjectAgeDays:            toInt64(p.AgeDays),
			RecentActivityDays:        toInt64(p.RecencyDays),
			CommitsPerActiveDeveloper: p.CommitsPerActiveDeveloper,
			Category:                  string(p.Category),
			Matched:                   p.Matched,
			Strategy:                  string(p.Strategy),
		}
	}
	return rows
}
