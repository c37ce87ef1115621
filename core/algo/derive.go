// Package algo has the pure classification logic: derived metrics, rule ladders and medians.
package algo

import (
	"time"

	"github.com/huangsam/repocat/schema"
)

// ActiveRecencyDays is the recency bound used by every "actively maintained" test.
const ActiveRecencyDays = 180

const day = 24 * time.Hour

// DaysSince returns the number of whole days elapsed between ts and now, rounded down.
// It returns nil when ts is absent. Both times are compared in UTC.
func DaysSince(now time.Time, ts *time.Time) *int {
	if ts == nil {
		return nil
	}
	elapsed := now.UTC().Sub(ts.UTC())
	days := int(elapsed / day)
	if elapsed < 0 && elapsed%day != 0 {
		days-- // floor, not truncation, for timestamps in the future
	}
	return &days
}

// CommitsPerActiveDeveloper divides recent commits by recent active developers.
// It returns 0 whenever the ratio is undefined: absent numerator, absent or zero
// denominator. A project with commits but no recorded active developers is
// therefore indistinguishable from one without commits.
func CommitsPerActiveDeveloper(commits, activeDevs *int) float64 {
	if commits == nil || activeDevs == nil || *activeDevs == 0 {
		return 0
	}
	return float64(*commits) / float64(*activeDevs)
}

// Derive computes the derived metrics of one record at the given instant.
func Derive(p schema.ProjectMetrics, now time.Time) schema.DerivedMetrics {
	return schema.DerivedMetrics{
		AgeDays:                   DaysSince(now, p.FirstCommit),
		RecencyDays:               DaysSince(now, p.LastCommit),
		CommitsPerActiveDeveloper: CommitsPerActiveDeveloper(p.Commits6M, p.ActiveDevs6M),
	}
}
