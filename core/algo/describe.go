package algo

import (
	"fmt"

	"github.com/huangsam/repocat/schema"
)

// DescribeLadder renders the rules of a ladder in evaluation order.
func DescribeLadder(l *Ladder) schema.LadderView {
	rules := l.Rules()
	view := schema.LadderView{Strategy: l.Strategy(), Rules: make([]schema.RuleView, len(rules))}
	for i, r := range rules {
		view.Rules[i] = schema.RuleView{
			Position:     i + 1,
			Category:     r.Category,
			Stars:        r.Stars.String(),
			Forks:        r.Forks.String(),
			Developers:   r.Developers.String(),
			Contributors: r.Contributors.String(),
			Commits6M:    r.Commits6M.String(),
			AgeDays:      r.AgeDays.String(),
			RecencyDays:  r.RecencyDays.String(),
		}
	}
	return view
}

// DescribeRules builds the rules view: both fixed ladders and the median factor table.
func DescribeRules() schema.RulesRenderModel {
	model := schema.RulesRenderModel{
		Ladders: []schema.LadderView{
			DescribeLadder(StandardLadder()),
			DescribeLadder(ScaledLadder()),
		},
		MedianFactors: []schema.FactorView{
			{Name: "popular", Definition: "star_count > median OR fork_count > median"},
			{Name: "active", Definition: fmt.Sprintf("commit_count_6_months > median OR recent_activity_days <= %d", ActiveRecencyDays)},
			{Name: "large", Definition: "developer_count > median OR contributor_count > median"},
		},
	}

	// Enumerate the eight combinations through the classifier itself so the table cannot drift.
	for _, popular := range []bool{true, false} {
		for _, active := range []bool{true, false} {
			for _, large := range []bool{true, false} {
				model.MedianLabels = append(model.MedianLabels, schema.MedianLabelView{
					Popular:  popular,
					Active:   active,
					Large:    large,
					Category: medianLabel(popular, active, large),
				})
			}
		}
	}
	return model
}
