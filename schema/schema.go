// Package schema has models, constants and shared value types for all parts of repocat.
package schema

import "time"

// ProjectMetrics is one row of the metrics table. Counts and dates are pointers
// because any of them may be missing from the source; a nil value means "absent",
// which is not the same thing as zero.
type ProjectMetrics struct {
	CollectionName string     `json:"collection_name"`
	DisplayName    string     `json:"display_name"`
	Stars          *int       `json:"star_count"`
	Forks          *int       `json:"fork_count"`
	Developers     *int       `json:"developer_count"`
	Contributors   *int       `json:"contributor_count"`
	ActiveDevs6M   *int       `json:"active_developer_count_6_months"`
	Commits6M      *int       `json:"commit_count_6_months"`
	MergedPRs6M    *int       `json:"merged_pull_request_count_6_months"`
	ClosedIssues6M *int       `json:"closed_issue_count_6_months"`
	FirstCommit    *time.Time `json:"first_commit_date"`
	LastCommit     *time.Time `json:"last_commit_date"`
}

// DerivedMetrics holds the values computed from a record at classification time.
// They are never written back to the record.
type DerivedMetrics struct {
	AgeDays                   *int    `json:"project_age_days"`
	RecencyDays               *int    `json:"recent_activity_days"`
	CommitsPerActiveDeveloper float64 `json:"commits_per_active_developer"`
}

// ClassifiedProject is the labelled view of a record handed to the presentation layer.
type ClassifiedProject struct {
	ProjectMetrics
	DerivedMetrics
	Category Category `json:"category"`
	Matched  bool     `json:"matched"`
	Strategy Strategy `json:"strategy"`
}

// Thresholds are the medians of the in-scope subset used by the median strategy.
// A nil field means the subset had no value for that metric.
type Thresholds struct {
	Stars        *float64 `json:"star_count"`
	Forks        *float64 `json:"fork_count"`
	Commits6M    *float64 `json:"commit_count_6_months"`
	Developers   *float64 `json:"developer_count"`
	Contributors *float64 `json:"contributor_count"`
	SampleSize   int      `json:"sample_size"`
}

// CollectionInfo describes one collection found in the metrics table.
type CollectionInfo struct {
	Name     string `json:"collection_name"`
	Projects int    `json:"projects"`
}

// CategoryCount is the number of projects assigned to one category.
type CategoryCount struct {
	Category Category `json:"category"`
	Count    int      `json:"count"`
	Share    float64  `json:"share"`
}

// SummaryResult is the per-category breakdown of one classification pass.
type SummaryResult struct {
	Collection string          `json:"collection,omitempty"`
	Strategy   Strategy        `json:"strategy"`
	AsOf       time.Time       `json:"as_of"`
	Total      int             `json:"total"`
	Unmatched  int             `json:"unmatched"`
	Counts     []CategoryCount `json:"counts"`
}
