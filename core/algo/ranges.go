package algo

import (
	"fmt"
	"strconv"
)

// Range is a numeric interval test used by rule predicates. The zero value is
// unbounded and accepts anything, including absent values. A bounded range
// rejects absent values.
type Range struct {
	min, max         int
	hasMin, hasMax   bool
	minOpen, maxOpen bool
}

// Any returns an unbounded range.
func Any() Range {
	return Range{}
}

// Above returns the range v > n.
func Above(n int) Range {
	return Range{min: n, hasMin: true, minOpen: true}
}

// Below returns the range v < n.
func Below(n int) Range {
	return Range{max: n, hasMax: true, maxOpen: true}
}

// AtMost returns the range v <= n.
func AtMost(n int) Range {
	return Range{max: n, hasMax: true}
}

// Between returns the closed range lo <= v <= hi.
func Between(lo, hi int) Range {
	return Range{min: lo, max: hi, hasMin: true, hasMax: true}
}

// Unbounded reports whether the range places no constraint.
func (r Range) Unbounded() bool {
	return !r.hasMin && !r.hasMax
}

// Contains reports whether v satisfies the range.
func (r Range) Contains(v *int) bool {
	if r.Unbounded() {
		return true
	}
	if v == nil {
		return false
	}
	x := *v
	if r.hasMin {
		if r.minOpen && x <= r.min {
			return false
		}
		if !r.minOpen && x < r.min {
			return false
		}
	}
	if r.hasMax {
		if r.maxOpen && x >= r.max {
			return false
		}
		if !r.maxOpen && x > r.max {
			return false
		}
	}
	return true
}

// String renders the range the way the rules table shows it.
func (r Range) String() string {
	switch {
	case r.Unbounded():
		return "-"
	case r.hasMin && r.hasMax:
		return fmt.Sprintf("[%d,%d]", r.min, r.max)
	case r.hasMin && r.minOpen:
		return ">" + strconv.Itoa(r.min)
	case r.hasMin:
		return ">=" + strconv.Itoa(r.min)
	case r.maxOpen:
		return "<" + strconv.Itoa(r.max)
	default:
		return "<=" + strconv.Itoa(r.max)
	}
}
