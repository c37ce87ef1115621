package core

import (
	"context"
	"errors"
	"os"
	"path/filepath"
	"testing"
	"time"

	"github.com/huangsam/repocat/internal/contract"
	"github.com/huangsam/repocat/internal/table"
	"github.com/huangsam/repocat/internal/tablestore"
	"github.com/huangsam/repocat/schema"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/mock"
	"github.com/stretchr/testify/require"
)

const fixtureCSV = `collection_name,display_name,star_count,fork_count,developer_count,contributor_count,active_developer_count_6_months,commit_count_6_months,merged_pull_request_count_6_months,closed_issue_count_6_months,first_commit_date,last_commit_date
cncf,kubernetes/kubernetes,110000,39000,3500,3700,400,4200,1800,900,2014-06-06,2024-05-30
cncf,tiny/tool,5,,,,,,,,,
apache,apache/kafka,28000,13000,1200,1100,150,1600,700,300,2011-08-01,2024-05-29
cncf,quiet/repo,0,0,0,0,0,0,0,0,2020-01-01,2023-01-01
`

var asOf = time.Date(2024, 6, 1, 0, 0, 0, 0, time.UTC)

func writeFixture(t *testing.T) string {
	t.Helper()
	path := filepath.Join(t.TempDir(), "metrics.csv")
	require.NoError(t, os.WriteFile(path, []byte(fixtureCSV), 0o644))
	return path
}

func newTestConfig(sourcePath string) *contract.Config {
	return &contract.Config{
		SourcePath: sourcePath,
		Strategy:   schema.StandardStrategy,
		Now:        asOf,
		Workers:    2,
		Precision:  1,
		Output:     schema.JSONOut,
		Backend:    schema.NoneBackend,
	}
}

func fixtureRecords(t *testing.T) []schema.ProjectMetrics {
	t.Helper()
	tbl, err := table.LoadFile(writeFixture(t))
	require.NoError(t, err)
	return tbl.Records()
}

func TestLoadSource(t *testing.T) {
	t.Run("file path wins over store", func(t *testing.T) {
		cfg := newTestConfig(writeFixture(t))
		cfg.Backend = schema.SQLiteBackend
		mgr := &tablestore.MockTableManager{}

		tbl, err := LoadSource(cfg, mgr)
		require.NoError(t, err)
		assert.Equal(t, 4, tbl.Len())
		mgr.AssertNotCalled(t, "GetTableStore")
	})

	t.Run("none backend without path", func(t *testing.T) {
		_, err := LoadSource(newTestConfig(""), &tablestore.MockTableManager{})
		assert.ErrorIs(t, err, errNoSource)
	})

	t.Run("store backend", func(t *testing.T) {
		cfg := newTestConfig("")
		cfg.Backend = schema.SQLiteBackend
		store := &tablestore.MockTableStore{}
		store.On("Load", "").Return(fixtureRecords(t), nil)
		mgr := &tablestore.MockTableManager{}
		mgr.On("GetTableStore").Return(store)

		tbl, err := LoadSource(cfg, mgr)
		require.NoError(t, err)
		assert.Equal(t, 4, tbl.Len())
		store.AssertExpectations(t)
	})

	t.Run("store error is wrapped", func(t *testing.T) {
		cfg := newTestConfig("")
		cfg.Backend = schema.MySQLBackend
		store := &tablestore.MockTableStore{}
		store.On("Load", "").Return(nil, errors.New("connection refused"))
		mgr := &tablestore.MockTableManager{}
		mgr.On("GetTableStore").Return(store)

		_, err := LoadSource(cfg, mgr)
		assert.ErrorContains(t, err, "failed to load table from mysql store")
	})

	t.Run("uninitialized store", func(t *testing.T) {
		cfg := newTestConfig("")
		cfg.Backend = schema.SQLiteBackend
		mgr := &tablestore.MockTableManager{}
		mgr.On("GetTableStore").Return(nil)

		_, err := LoadSource(cfg, mgr)
		assert.ErrorIs(t, err, errNoSource)
	})

	t.Run("empty store", func(t *testing.T) {
		cfg := newTestConfig("")
		cfg.Backend = schema.SQLiteBackend
		store := &tablestore.MockTableStore{}
		store.On("Load", "").Return([]schema.ProjectMetrics{}, nil)
		mgr := &tablestore.MockTableManager{}
		mgr.On("GetTableStore").Return(store)

		_, err := LoadSource(cfg, mgr)
		assert.ErrorIs(t, err, errEmptyStore)
		store.AssertExpectations(t)
	})
}

func TestRunBuilderSteps(t *testing.T) {
	cfg := newTestConfig(writeFixture(t))
	b := NewRunBuilder(cfg, nil)

	_, err := b.SelectSubset()
	assert.Error(t, err, "subset before load")
	_, err = b.Classify()
	assert.Error(t, err, "classify before classifier")

	_, err = b.LoadTable()
	require.NoError(t, err)
	_, err = b.SelectSubset()
	require.NoError(t, err)
	_, err = b.BuildClassifier()
	require.NoError(t, err)
	_, err = b.Classify()
	require.NoError(t, err)

	results := b.GetResults()
	require.Len(t, results, 4)
	assert.Equal(t, "kubernetes/kubernetes", results[0].DisplayName)
	assert.Equal(t, schema.HighPopularityActive, results[0].Category)
	assert.Equal(t, schema.Uncategorized, results[1].Category)
	assert.Equal(t, schema.HighPopularityActive, results[2].Category)
	assert.Equal(t, schema.InactiveOrAbandoned, results[3].Category)
	assert.Equal(t, 2, *results[0].RecencyDays)
}

func TestRunBuilderUnknownStrategy(t *testing.T) {
	cfg := newTestConfig(writeFixture(t))
	cfg.Strategy = "fancy"
	_, err := runClassification(cfg, nil)
	assert.ErrorContains(t, err, "unknown strategy")
}

func TestGetClassifyResults(t *testing.T) {
	path := writeFixture(t)

	t.Run("collection subset", func(t *testing.T) {
		cfg := newTestConfig(path)
		cfg.Collection = "cncf"
		results, err := GetClassifyResults(cfg, nil)
		require.NoError(t, err)
		require.Len(t, results, 3)
		for _, r := range results {
			assert.Equal(t, "cncf", r.CollectionName)
		}
	})

	t.Run("missing collection", func(t *testing.T) {
		cfg := newTestConfig(path)
		cfg.Collection = "nope"
		_, err := GetClassifyResults(cfg, nil)
		assert.EqualError(t, err, `collection "nope" not found`)
	})

	t.Run("group then filter then limit", func(t *testing.T) {
		cfg := newTestConfig(path)
		cfg.Group = true
		results, err := GetClassifyResults(cfg, nil)
		require.NoError(t, err)
		require.Len(t, results, 4)
		assert.Equal(t, schema.HighPopularityActive, results[0].Category)
		assert.Equal(t, schema.HighPopularityActive, results[1].Category)
		assert.Equal(t, schema.InactiveOrAbandoned, results[2].Category)
		assert.Equal(t, schema.Uncategorized, results[3].Category)

		cfg.Category = schema.HighPopularityActive
		cfg.ResultLimit = 1
		results, err = GetClassifyResults(cfg, nil)
		require.NoError(t, err)
		require.Len(t, results, 1)
		assert.Equal(t, "kubernetes/kubernetes", results[0].DisplayName)
	})

	t.Run("median thresholds follow the subset", func(t *testing.T) {
		cfg := newTestConfig(path)
		cfg.Strategy = schema.MedianStrategy
		cfg.Collection = "cncf"
		results, err := GetClassifyResults(cfg, nil)
		require.NoError(t, err)
		require.Len(t, results, 3)
		assert.Equal(t, schema.HighHighLarge, results[0].Category)
		assert.True(t, results[0].Matched)
		assert.Equal(t, schema.Unmatched, results[1].Category)
		assert.False(t, results[1].Matched)
		assert.False(t, results[2].Matched)
	})
}

func TestGetSummaryResult(t *testing.T) {
	cfg := newTestConfig(writeFixture(t))
	result, err := GetSummaryResult(cfg, nil)
	require.NoError(t, err)

	assert.Equal(t, 4, result.Total)
	assert.Equal(t, 0, result.Unmatched)
	assert.Equal(t, asOf, result.AsOf)
	require.Len(t, result.Counts, len(schema.CategoryOrder(schema.StandardStrategy)))
	assert.Equal(t, schema.HighPopularityActive, result.Counts[0].Category)
	assert.Equal(t, 2, result.Counts[0].Count)
	assert.InDelta(t, 0.5, result.Counts[0].Share, 1e-9)

	cfg.Strategy = schema.MedianStrategy
	cfg.Collection = "cncf"
	result, err = GetSummaryResult(cfg, nil)
	require.NoError(t, err)
	assert.Equal(t, 3, result.Total)
	assert.Equal(t, 2, result.Unmatched)
	assert.Equal(t, "cncf", result.Collection)
}

func TestGetCollectionsAndThresholds(t *testing.T) {
	cfg := newTestConfig(writeFixture(t))

	infos, err := GetCollections(cfg, nil)
	require.NoError(t, err)
	assert.Equal(t, []schema.CollectionInfo{{Name: "cncf", Projects: 3}, {Name: "apache", Projects: 1}}, infos)

	cfg.Collection = "cncf"
	th, err := GetThresholds(cfg, nil)
	require.NoError(t, err)
	assert.Equal(t, 3, th.SampleSize)
	require.NotNil(t, th.Stars)
	assert.InDelta(t, 5.0, *th.Stars, 1e-9)
	require.NotNil(t, th.Forks)
	assert.InDelta(t, 19500.0, *th.Forks, 1e-9)

	cfg.Collection = "missing"
	_, err = GetThresholds(cfg, nil)
	assert.Error(t, err)
}

func TestExecuteViews(t *testing.T) {
	ctx := context.Background()
	cfg := newTestConfig(writeFixture(t))
	dir := t.TempDir()

	executors := map[string]ExecutorFunc{
		"classify":    ExecuteClassify,
		"summary":     ExecuteSummary,
		"collections": ExecuteCollections,
		"thresholds":  ExecuteThresholds,
	}
	for name, exec := range executors {
		t.Run(name, func(t *testing.T) {
			runCfg := cfg.Clone()
			runCfg.OutputFile = filepath.Join(dir, name+".json")
			require.NoError(t, exec(ctx, runCfg, nil))
			data, err := os.ReadFile(runCfg.OutputFile)
			require.NoError(t, err)
			assert.NotEmpty(t, data)
		})
	}

	cancelled, cancel := context.WithCancel(ctx)
	cancel()
	assert.ErrorIs(t, ExecuteClassify(cancelled, cfg, nil), context.Canceled)
}

func TestExecuteRules(t *testing.T) {
	cfg := newTestConfig("")
	cfg.OutputFile = filepath.Join(t.TempDir(), "rules.json")
	require.NoError(t, ExecuteRules(cfg))
	data, err := os.ReadFile(cfg.OutputFile)
	require.NoError(t, err)
	assert.Contains(t, string(data), string(schema.NicheActive))
}

func TestExecuteImport(t *testing.T) {
	ctx := context.Background()
	path := writeFixture(t)

	t.Run("imports one collection", func(t *testing.T) {
		cfg := newTestConfig(path)
		cfg.Backend = schema.SQLiteBackend
		cfg.Collection = "apache"
		store := &tablestore.MockTableStore{}
		store.On("Import", mock.MatchedBy(func(records []schema.ProjectMetrics) bool {
			return len(records) == 1 && records[0].DisplayName == "apache/kafka"
		})).Return(1, nil)
		mgr := &tablestore.MockTableManager{}
		mgr.On("GetTableStore").Return(store)

		require.NoError(t, ExecuteImport(ctx, cfg, mgr))
		store.AssertExpectations(t)
	})

	t.Run("requires a path", func(t *testing.T) {
		cfg := newTestConfig("")
		cfg.Backend = schema.SQLiteBackend
		assert.ErrorContains(t, ExecuteImport(ctx, cfg, &tablestore.MockTableManager{}), "requires a .csv or .parquet path")
	})

	t.Run("requires a backend", func(t *testing.T) {
		cfg := newTestConfig(path)
		assert.ErrorContains(t, ExecuteImport(ctx, cfg, &tablestore.MockTableManager{}), "requires --backend")
	})

	t.Run("store failure", func(t *testing.T) {
		cfg := newTestConfig(path)
		cfg.Backend = schema.PostgreSQLBackend
		store := &tablestore.MockTableStore{}
		store.On("Import", mock.Anything).Return(0, errors.New("tx aborted"))
		mgr := &tablestore.MockTableManager{}
		mgr.On("GetTableStore").Return(store)

		err := ExecuteImport(ctx, cfg, mgr)
		assert.ErrorContains(t, err, "tx aborted")
	})

	t.Run("real sqlite store round trip", func(t *testing.T) {
		store, err := tablestore.NewTableStore(schema.SQLiteBackend, filepath.Join(t.TempDir(), "repocat.db"), nil)
		require.NoError(t, err)
		t.Cleanup(func() { _ = store.Close() })
		mgr := &tablestore.MockTableManager{}
		mgr.On("GetTableStore").Return(store)

		cfg := newTestConfig(path)
		cfg.Backend = schema.SQLiteBackend
		require.NoError(t, ExecuteImport(ctx, cfg, mgr))

		cfg.SourcePath = ""
		results, err := GetClassifyResults(cfg, mgr)
		require.NoError(t, err)
		require.Len(t, results, 4)
		assert.Equal(t, schema.HighPopularityActive, results[0].Category)
		assert.Equal(t, schema.InactiveOrAbandoned, results[3].Category)
	})
}
