package algo

import (
	"testing"

	"github.com/huangsam/repocat/schema"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func labelled(name string, c schema.Category, matched bool) schema.ClassifiedProject {
	return schema.ClassifiedProject{
		ProjectMetrics: schema.ProjectMetrics{DisplayName: name},
		Category:       c,
		Matched:        matched,
	}
}

func names(projects []schema.ClassifiedProject) []string {
	out := make([]string, len(projects))
	for i, p := range projects {
		out[i] = p.DisplayName
	}
	return out
}

func TestGroupByCategory(t *testing.T) {
	projects := []schema.ClassifiedProject{
		labelled("a", schema.Uncategorized, true),
		labelled("b", schema.NewAndGrowing, true),
		labelled("c", schema.HighPopularityActive, true),
		labelled("d", schema.NewAndGrowing, true),
	}
	got := GroupByCategory(projects, schema.StandardStrategy)
	assert.Equal(t, []string{"c", "b", "d", "a"}, names(got))
	assert.Equal(t, "a", projects[0].DisplayName, "input must stay untouched")
}

func TestGroupByCategoryUnmatchedLast(t *testing.T) {
	projects := []schema.ClassifiedProject{
		labelled("x", schema.Unmatched, false),
		labelled("y", schema.LowHighSmall, true),
		labelled("z", schema.HighHighLarge, true),
	}
	got := GroupByCategory(projects, schema.MedianStrategy)
	assert.Equal(t, []string{"z", "y", "x"}, names(got))
}

func TestFilterCategoryAndLimit(t *testing.T) {
	projects := []schema.ClassifiedProject{
		labelled("a", schema.NewAndGrowing, true),
		labelled("b", schema.Uncategorized, true),
		labelled("c", schema.NewAndGrowing, true),
	}
	assert.Equal(t, []string{"a", "c"}, names(FilterCategory(projects, schema.NewAndGrowing)))
	assert.Empty(t, FilterCategory(projects, schema.NicheActive))

	assert.Len(t, Limit(projects, 2), 2)
	assert.Len(t, Limit(projects, 10), 3)
	assert.Len(t, Limit(projects, 0), 3)
}

func TestSummarize(t *testing.T) {
	projects := []schema.ClassifiedProject{
		labelled("a", schema.HighHighLarge, true),
		labelled("b", schema.HighHighLarge, true),
		labelled("c", schema.LowHighSmall, true),
		labelled("d", schema.Unmatched, false),
	}
	counts, unmatched := Summarize(projects, schema.MedianStrategy)
	require.Len(t, counts, len(schema.MedianCategoryOrder))
	assert.Equal(t, 1, unmatched)
	assert.Equal(t, schema.HighHighLarge, counts[0].Category)
	assert.Equal(t, 2, counts[0].Count)
	assert.InDelta(t, 0.5, counts[0].Share, 1e-9)
	assert.Equal(t, 0, counts[1].Count)
	assert.Equal(t, 1, counts[5].Count)
}
