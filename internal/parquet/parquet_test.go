package parquet

import (
	"path/filepath"
	"testing"
	"time"

	"github.com/huangsam/repocat/schema"
	"github.com/parquet-go/parquet-go"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func sampleProjects() []schema.ProjectMetrics {
	first := time.Date(2019, 3, 1, 8, 30, 0, 0, time.UTC)
	last := time.Date(2024, 5, 30, 17, 0, 0, 0, time.UTC)
	return []schema.ProjectMetrics{
		{
			CollectionName: "cncf",
			DisplayName:    "kubernetes/kubernetes",
			Stars:          schema.Int(110000),
			Forks:          schema.Int(39000),
			Developers:     schema.Int(3500),
			Contributors:   schema.Int(3700),
			ActiveDevs6M:   schema.Int(400),
			Commits6M:      schema.Int(4200),
			MergedPRs6M:    schema.Int(1800),
			ClosedIssues6M: schema.Int(900),
			FirstCommit:    &first,
			LastCommit:     &last,
		},
		{
			CollectionName: "cncf",
			DisplayName:    "sparse/project",
			Stars:          schema.Int(0),
		},
	}
}

func TestProjectRowStructTags(t *testing.T) {
	s := parquet.SchemaOf(new(ProjectRow))
	require.NotNil(t, s)

	expectedColumns := []string{
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
	}

	for _, colName := range expectedColumns {
		col, ok := s.Lookup(colName)
		require.True(t, ok, "Column %s should exist in schema", colName)
		require.NotNil(t, col, "Column %s should not be nil", colName)
	}
}

func TestClassifiedRowStructTags(t *testing.T) {
	s := parquet.SchemaOf(new(ClassifiedRow))
	require.NotNil(t, s)

	for _, colName := range []string{"display_name", "project_age_days", "recent_activity_days", "commits_per_active_developer", "category", "matched", "strategy"} {
		_, ok := s.Lookup(colName)
		assert.True(t, ok, "Column %s should exist in schema", colName)
	}
}

func TestProjectRowsRoundTrip(t *testing.T) {
	path := filepath.Join(t.TempDir(), "metrics.parquet")
	projects := sampleProjects()

	require.NoError(t, WriteProjectRowsParquet(ConvertProjectMetrics(projects), path))

	rows, err := ReadProjectRowsParquet(path)
	require.NoError(t, err)
	got := ConvertProjectRows(rows)
	require.Len(t, got, len(projects))

	assert.Equal(t, "kubernetes/kubernetes", got[0].DisplayName)
	assert.Equal(t, projects[0].Stars, got[0].Stars)
	assert.Equal(t, projects[0].ClosedIssues6M, got[0].ClosedIssues6M)
	require.NotNil(t, got[0].LastCommit)
	assert.True(t, projects[0].LastCommit.Equal(*got[0].LastCommit))
	assert.Equal(t, time.UTC, got[0].LastCommit.Location())

	assert.Equal(t, schema.Int(0), got[1].Stars, "zero must stay zero")
	assert.Nil(t, got[1].Forks, "absent must stay absent")
	assert.Nil(t, got[1].FirstCommit)
}

func TestConvertProjectRowsDropsNegativeCounts(t *testing.T) {
	neg := int64(-4)
	got := ConvertProjectRows([]ProjectRow{{DisplayName: "x", Stars: &neg}})
	require.Len(t, got, 1)
	assert.Nil(t, got[0].Stars)
}

func TestClassifiedRowsWrite(t *testing.T) {
	path := filepath.Join(t.TempDir(), "classified.parquet")
	projects := []schema.ClassifiedProject{
		{
			ProjectMetrics: sampleProjects()[0],
			DerivedMetrics: schema.DerivedMetrics{AgeDays: schema.Int(1900), RecencyDays: schema.Int(11), CommitsPerActiveDeveloper: 10.5},
			Category:       schema.HighPopularityActive,
			Matched:        true,
			Strategy:       schema.StandardStrategy,
		},
		{
			ProjectMetrics: sampleProjects()[1],
			Category:       schema.Unmatched,
			Strategy:       schema.MedianStrategy,
		},
	}

	rows := ConvertClassifiedProjects(projects)
	require.NoError(t, WriteClassifiedRowsParquet(rows, path))

	read, err := parquet.ReadFile[ClassifiedRow](path)
	require.NoError(t, err)
	require.Len(t, read, 2)
	assert.Equal(t, string(schema.HighPopularityActive), read[0].Category)
	assert.Equal(t, 10.5, read[0].CommitsPerActiveDeveloper)
	require.NotNil(t, read[0].RecentActivityDays)
	assert.Equal(t, int64(11), *read[0].RecentActivityDays)
	assert.Nil(t, read[1].ProjectAgeDays)
	assert.False(t, read[1].Matched)
	assert.Equal(t, "", read[1].Category)
}

func TestReadProjectRowsMissingFile(t *testing.T) {
	_, err := ReadProjectRowsParquet(filepath.Join(t.TempDir(), "nope.parquet"))
	assert.ErrorContains(t, err, "failed to open parquet file")
}
