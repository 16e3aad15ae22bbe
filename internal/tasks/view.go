package tasks

import (
	"sort"
	"strings"
	"time"
)

// Filter holds the three composable visibility predicates.
type Filter struct {
	Category      Category
	Search        string
	ShowCompleted bool
}

// DefaultFilter shows every task.
func DefaultFilter() Filter {
	return Filter{Category: CategoryAll, ShowCompleted: true}
}

// Match reports whether t passes every predicate.
func (f Filter) Match(t Task) bool {
	if !f.ShowCompleted && t.Completed {
		return false
	}
	if f.Category != "" && f.Category != CategoryAll && t.Category != f.Category {
		return false
	}
	if f.Search != "" && !strings.Contains(strings.ToLower(t.Text), strings.ToLower(f.Search)) {
		return false
	}
	return true
}

// Visible returns the filtered, ordered view of all. all is not modified.
func Visible(all []Task, f Filter) []Task {
	out := make([]Task, 0, len(all))
	for _, t := range all {
		if f.Match(t) {
			out = append(out, t)
		}
	}
	Sort(out)
	return out
}

// Sort orders tasks in place: incomplete first, then higher priority, then
// newest first.
func Sort(ts []Task) {
	sort.SliceStable(ts, func(i, j int) bool { return less(ts[i], ts[j]) })
}

func less(a, b Task) bool {
	if a.Completed != b.Completed {
		return !a.Completed
	}
	if ra, rb := a.Priority.Rank(), b.Priority.Rank(); ra != rb {
		return ra > rb
	}
	if !a.CreatedAt.Equal(b.CreatedAt) {
		return a.CreatedAt.After(b.CreatedAt)
	}
	// UUIDv7 identifiers sort by creation time.
	return a.ID > b.ID
}

// Stats summarizes a collection.
type Stats struct {
	Total     int
	Completed int
	Pending   int
	Overdue   int
}

// ComputeStats counts all as of now.
func ComputeStats(all []Task, now time.Time) Stats {
	var s Stats
	s.Total = len(all)
	for _, t := range all {
		if t.Completed {
			s.Completed++
		}
		if t.Overdue(now) {
			s.Overdue++
		}
	}
	s.Pending = s.Total - s.Completed
	return s
}
