package schema

import "time"

// Int returns a pointer to v. It is used to build records with present counts.
func Int(v int) *int {
	return &v
}

// Float returns a pointer to v.
func Float(v float64) *float64 {
	return &v
}

// Time returns a pointer to t normalized to UTC.
func Time(t time.Time) *time.Time {
	u := t.UTC()
	return &u
}

// IntValues collects the present values returned by pick for each record, skipping absent ones.
func IntValues(records []ProjectMetrics, pick func(ProjectMetrics) *int) []int {
	values := make([]int, 0, len(records))
	for _, r := range records {
		if v := pick(r); v != nil {
			values = append(values, *v)
		}
	}
	return values
}

// EnrichedProject adds the 1-based table position to a classified project.
type EnrichedProject struct {
	Position int `json:"position"`
	ClassifiedProject
}

// EnrichProjects numbers the classified projects in table order.
func EnrichProjects(projects []ClassifiedProject) []EnrichedProject {
	output := make([]EnrichedProject, len(projects))
	for i, p := range projects {
		output[i] = EnrichedProject{
			Position:          i + 1,
			ClassifiedProject: p,
		}
	}
	return output
}
