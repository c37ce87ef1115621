package algo

import (
	"slices"

	"github.com/huangsam/repocat/schema"
)

// GroupByCategory stably sorts projects by the display order of their
// category. Labels outside the order (including unmatched) go last.
// Projects within a category keep their table order.
func GroupByCategory(projects []schema.ClassifiedProject, strategy schema.Strategy) []schema.ClassifiedProject {
	last := len(schema.CategoryOrder(strategy))
	rank := func(c schema.Category) int {
		if r := schema.CategoryRank(strategy, c); r >= 0 {
			return r
		}
		return last
	}
	sorted := slices.Clone(projects)
	slices.SortStableFunc(sorted, func(a, b schema.ClassifiedProject) int {
		return rank(a.Category) - rank(b.Category)
	})
	return sorted
}

// FilterCategory keeps the projects labelled c, in table order.
func FilterCategory(projects []schema.ClassifiedProject, c schema.Category) []schema.ClassifiedProject {
	var kept []schema.ClassifiedProject
	for _, p := range projects {
		if p.Category == c {
			kept = append(kept, p)
		}
	}
	return kept
}

// Limit returns the first limit projects. If limit is not positive or is
// greater than the number of projects, all projects are returned.
func Limit(projects []schema.ClassifiedProject, limit int) []schema.ClassifiedProject {
	if limit > 0 && len(projects) > limit {
		return projects[:limit]
	}
	return projects
}

// Summarize counts projects per category in display order. Categories with no
// projects are reported with a zero count. Unmatched projects are counted apart.
func Summarize(projects []schema.ClassifiedProject, strategy schema.Strategy) (counts []schema.CategoryCount, unmatched int) {
	tally := make(map[schema.Category]int, len(projects))
	for _, p := range projects {
		if !p.Matched {
			unmatched++
			continue
		}
		tally[p.Category]++
	}
	for _, c := range schema.CategoryOrder(strategy) {
		cc := schema.CategoryCount{Category: c, Count: tally[c]}
		if len(projects) > 0 {
			cc.Share = float64(cc.Count) / float64(len(projects))
		}
		counts = append(counts, cc)
	}
	return counts, unmatched
}
