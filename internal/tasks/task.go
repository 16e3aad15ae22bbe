// Package tasks defines task records and the pure view logic over a task
// collection: filtering, ordering, overdue checks and statistics.
package tasks

import (
	"time"

	"github.com/jask/tasktimer/internal/timefmt"
)

// Category tags a task with one of a fixed set of areas.
type Category string

const (
	CategoryPersonal  Category = "personal"
	CategoryWork      Category = "work"
	CategoryShopping  Category = "shopping"
	CategoryHealth    Category = "health"
	CategoryEducation Category = "education"
)

// CategoryAll is the filter value that matches every category.
const CategoryAll Category = "all"

// CategoryInfo is the display metadata for a category.
type CategoryInfo struct {
	Value Category
	Label string
	Icon  string
}

var categories = []CategoryInfo{
	{Value: CategoryPersonal, Label: "Personal", Icon: "🌟"},
	{Value: CategoryWork, Label: "Work", Icon: "💼"},
	{Value: CategoryShopping, Label: "Shopping", Icon: "🛒"},
	{Value: CategoryHealth, Label: "Health", Icon: "💪"},
	{Value: CategoryEducation, Label: "Education", Icon: "📚"},
}

// Categories returns every category in display order.
func Categories() []CategoryInfo {
	return append([]CategoryInfo(nil), categories...)
}

// Info returns the metadata for c, falling back to Personal.
func (c Category) Info() CategoryInfo {
	for _, info := range categories {
		if info.Value == c {
			return info
		}
	}
	return categories[0]
}

// Valid reports whether c is one of the fixed categories.
func (c Category) Valid() bool {
	for _, info := range categories {
		if info.Value == c {
			return true
		}
	}
	return false
}

// Priority ranks tasks within equal completion status.
type Priority string

const (
	PriorityLow    Priority = "low"
	PriorityMedium Priority = "medium"
	PriorityHigh   Priority = "high"
)

// PriorityInfo is the display metadata for a priority.
type PriorityInfo struct {
	Value Priority
	Label string
	Icon  string
	Rank  int
}

var priorities = []PriorityInfo{
	{Value: PriorityLow, Label: "Low", Icon: "🐌", Rank: 1},
	{Value: PriorityMedium, Label: "Medium", Icon: "🚀", Rank: 2},
	{Value: PriorityHigh, Label: "High", Icon: "⚡", Rank: 3},
}

// Priorities returns every priority from lowest to highest.
func Priorities() []PriorityInfo {
	return append([]PriorityInfo(nil), priorities...)
}

// Info returns the metadata for p, falling back to Medium.
func (p Priority) Info() PriorityInfo {
	for _, info := range priorities {
		if info.Value == p {
			return info
		}
	}
	return priorities[1]
}

// Valid reports whether p is one of the fixed priorities.
func (p Priority) Valid() bool {
	for _, info := range priorities {
		if info.Value == p {
			return true
		}
	}
	return false
}

// Rank orders priorities: high=3, medium=2, low=1.
func (p Priority) Rank() int { return p.Info().Rank }

// Task is one entry of the collection.
type Task struct {
	ID        string
	Text      string
	Completed bool
	Category  Category
	Priority  Priority
	Due       string // YYYY-MM-DD, empty when unset
	CreatedAt time.Time
}

// DueDate parses Due at midnight in loc.
func (t Task) DueDate(loc *time.Location) (time.Time, bool) {
	if t.Due == "" {
		return time.Time{}, false
	}
	d, err := timefmt.ParseDate(t.Due, loc)
	if err != nil {
		return time.Time{}, false
	}
	return d, true
}

// Overdue reports whether t is incomplete and due strictly before the start
// of now's calendar day.
func (t Task) Overdue(now time.Time) bool {
	if t.Completed {
		return false
	}
	due, ok := t.DueDate(now.Location())
	if !ok {
		return false
	}
	return due.Before(timefmt.StartOfDay(now))
}
