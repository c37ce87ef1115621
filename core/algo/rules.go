package algo

import (
	"time"

	"github.com/huangsam/repocat/schema"
)

// Rule is one rung of a classification ladder. Every range must hold for the rule to match.
type Rule struct {
	Category     schema.Category
	Stars        Range
	Forks        Range
	Developers   Range
	Contributors Range
	Commits6M    Range
	AgeDays      Range
	RecencyDays  Range
}

// Matches reports whether the record and its derived metrics satisfy every range of the rule.
func (r Rule) Matches(p schema.ProjectMetrics, d schema.DerivedMetrics) bool {
	return r.Stars.Contains(p.Stars) &&
		r.Forks.Contains(p.Forks) &&
		r.Developers.Contains(p.Developers) &&
		r.Contributors.Contains(p.Contributors) &&
		r.Commits6M.Contains(p.Commits6M) &&
		r.AgeDays.Contains(d.AgeDays) &&
		r.RecencyDays.Contains(d.RecencyDays)
}

// standardRules is the ladder tuned for collections of typical size.
// Order is significant: several rungs overlap and the first match wins.
var standardRules = []Rule{
	{
		Category:     schema.HighPopularityActive,
		Stars:        Above(200),
		Forks:        Above(100),
		Developers:   Above(10),
		Contributors: Above(50),
		Commits6M:    Above(200),
		RecencyDays:  AtMost(ActiveRecencyDays),
	},
	{
		Category:     schema.HighPopularityLowMaintenance,
		Stars:        Above(200),
		Forks:        Above(100),
		Developers:   Between(4, 10),
		Contributors: Between(10, 50),
		Commits6M:    Below(30),
		AgeDays:      Above(730),
		RecencyDays:  Above(ActiveRecencyDays),
	},
	{
		Category:     schema.NicheActive,
		Stars:        Between(30, 200),
		Forks:        Between(10, 100),
		Developers:   Above(4),
		Contributors: Above(10),
		Commits6M:    Above(200),
		RecencyDays:  AtMost(ActiveRecencyDays),
	},
	{
		Category:     schema.NewAndGrowing,
		Stars:        Between(2, 30),
		Forks:        Between(1, 10),
		Developers:   Between(1, 4),
		Contributors: Between(2, 10),
		Commits6M:    Above(30),
		AgeDays:      AtMost(730),
		RecencyDays:  AtMost(ActiveRecencyDays),
	},
	{
		Category:     schema.MatureLowActivity,
		Stars:        Above(200),
		Forks:        Above(100),
		Developers:   Below(4),
		Contributors: Below(10),
		Commits6M:    Below(30),
		AgeDays:      Above(730),
		RecencyDays:  Above(ActiveRecencyDays),
	},
	{
		Category:     schema.InactiveOrAbandoned,
		Stars:        Below(2),
		Forks:        Below(1),
		Developers:   Below(1),
		Contributors: Below(2),
		Commits6M:    Below(1),
		RecencyDays:  Above(365),
	},
	{
		Category:     schema.LowPopularityLowActivity,
		Stars:        Below(30),
		Forks:        Below(10),
		Developers:   AtMost(4),
		Contributors: AtMost(15),
		Commits6M:    AtMost(12),
	},
	{
		Category:     schema.ModeratePopularityLowActivity,
		Stars:        Between(7, 200),
		Forks:        Between(3, 70),
		Developers:   Between(2, 9),
		Contributors: Between(5, 34),
		Commits6M:    AtMost(23),
	},
	{
		Category:    schema.ModeratelyMaintained,
		Commits6M:   Above(50),
		RecencyDays: AtMost(ActiveRecencyDays),
	},
}

// scaledRules has the same shape as standardRules with every count bound five
// times larger, for collections dominated by large projects. Day bounds are unchanged.
var scaledRules = []Rule{
	{
		Category:     schema.HighPopularityActive,
		Stars:        Above(1000),
		Forks:        Above(500),
		Developers:   Above(50),
		Contributors: Above(250),
		Commits6M:    Above(1000),
		RecencyDays:  AtMost(ActiveRecencyDays),
	},
	{
		Category:     schema.HighPopularityLowMaintenance,
		Stars:        Above(1000),
		Forks:        Above(500),
		Developers:   Between(20, 50),
		Contributors: Between(50, 250),
		Commits6M:    Below(150),
		AgeDays:      Above(730),
		RecencyDays:  Above(ActiveRecencyDays),
	},
	{
		Category:     schema.NicheActive,
		Stars:        Between(150, 1000),
		Forks:        Between(50, 500),
		Developers:   Above(20),
		Contributors: Above(50),
		Commits6M:    Above(1000),
		RecencyDays:  AtMost(ActiveRecencyDays),
	},
	{
		Category:     schema.NewAndGrowing,
		Stars:        Between(10, 150),
		Forks:        Between(5, 50),
		Developers:   Between(5, 20),
		Contributors: Between(10, 50),
		Commits6M:    Above(150),
		AgeDays:      AtMost(730),
		RecencyDays:  AtMost(ActiveRecencyDays),
	},
	{
		Category:     schema.MatureLowActivity,
		Stars:        Above(1000),
		Forks:        Above(500),
		Developers:   Below(20),
		Contributors: Below(50),
		Commits6M:    Below(150),
		AgeDays:      Above(730),
		RecencyDays:  Above(ActiveRecencyDays),
	},
	{
		Category:     schema.InactiveOrAbandoned,
		Stars:        Below(10),
		Forks:        Below(5),
		Developers:   Below(5),
		Contributors: Below(10),
		Commits6M:    Below(5),
		RecencyDays:  Above(365),
	},
	{
		Category:     schema.LowPopularityLowActivity,
		Stars:        Below(150),
		Forks:        Below(50),
		Developers:   AtMost(20),
		Contributors: AtMost(75),
		Commits6M:    AtMost(60),
	},
	{
		Category:     schema.ModeratePopularityLowActivity,
		Stars:        Between(35, 1000),
		Forks:        Between(15, 350),
		Developers:   Between(10, 45),
		Contributors: Between(25, 170),
		Commits6M:    AtMost(115),
	},
	{
		Category:    schema.ModeratelyMaintained,
		Commits6M:   Above(250),
		RecencyDays: AtMost(ActiveRecencyDays),
	},
}

// Ladder is a fixed-threshold classifier: an ordered list of rules evaluated
// top to bottom, falling back to Uncategorized.
type Ladder struct {
	strategy schema.Strategy
	rules    []Rule
}

var _ Classifier = &Ladder{} // Compile-time check

// NewLadder builds a ladder from rules. The rules are copied.
func NewLadder(strategy schema.Strategy, rules []Rule) *Ladder {
	return &Ladder{strategy: strategy, rules: append([]Rule(nil), rules...)}
}

// StandardLadder returns the ladder of the standard strategy.
func StandardLadder() *Ladder {
	return NewLadder(schema.StandardStrategy, standardRules)
}

// ScaledLadder returns the ladder of the scaled strategy.
func ScaledLadder() *Ladder {
	return NewLadder(schema.ScaledStrategy, scaledRules)
}

// Strategy implements Classifier.
func (l *Ladder) Strategy() schema.Strategy {
	return l.strategy
}

// Rules returns a copy of the ladder's rules in evaluation order.
func (l *Ladder) Rules() []Rule {
	return append([]Rule(nil), l.rules...)
}

// Classify implements Classifier. A ladder always produces a label.
func (l *Ladder) Classify(p schema.ProjectMetrics, now time.Time) (schema.Category, bool) {
	d := Derive(p, now)
	for _, r := range l.rules {
		if r.Matches(p, d) {
			return r.Category, true
		}
	}
	return schema.Uncategorized, true
}
