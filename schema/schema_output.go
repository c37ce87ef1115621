package schema

// RuleView is one rung of a rule ladder rendered for display.
// Every bound is a printable interval such as ">200", "[4,10]" or "-".
type RuleView struct {
	Position     int      `json:"position"`
	Category     Category `json:"category"`
	Stars        string   `json:"star_count"`
	Forks        string   `json:"fork_count"`
	Developers   string   `json:"developer_count"`
	Contributors string   `json:"contributor_count"`
	Commits6M    string   `json:"commit_count_6_months"`
	AgeDays      string   `json:"project_age_days"`
	RecencyDays  string   `json:"recent_activity_days"`
}

// LadderView is the ordered rule list of one fixed strategy.
type LadderView struct {
	Strategy Strategy   `json:"strategy"`
	Rules    []RuleView `json:"rules"`
}

// FactorView describes one boolean factor of the median strategy.
type FactorView struct {
	Name       string `json:"name"`
	Definition string `json:"definition"`
}

// MedianLabelView maps one factor combination to its label.
type MedianLabelView struct {
	Popular  bool     `json:"popular"`
	Active   bool     `json:"active"`
	Large    bool     `json:"large"`
	Category Category `json:"category"`
}

// RulesRenderModel is everything the rules view shows.
type RulesRenderModel struct {
	Ladders       []LadderView      `json:"ladders"`
	MedianFactors []FactorView      `json:"median_factors"`
	MedianLabels  []MedianLabelView `json:"median_labels"`
}
