package demo

import (
	"context"
	"fmt"
	"time"

	"github.com/jask/tasktimer/internal/service"
	"github.com/jask/tasktimer/internal/tasks"
	"github.com/jask/tasktimer/internal/timefmt"
)

type sample struct {
	Text     string
	Category tasks.Category
	Priority tasks.Priority
	// DueIn is days from today; nil means no due date.
	DueIn *int
	Done  bool
}

func days(n int) *int { return &n }

var samples = []sample{
	{Text: "Renew passport", Category: tasks.CategoryPersonal, Priority: tasks.PriorityHigh, DueIn: days(-2)},
	{Text: "Prepare quarterly report", Category: tasks.CategoryWork, Priority: tasks.PriorityHigh, DueIn: days(3)},
	{Text: "Reply to design review comments", Category: tasks.CategoryWork, Priority: tasks.PriorityMedium},
	{Text: "Oat milk, eggs, spinach", Category: tasks.CategoryShopping, Priority: tasks.PriorityLow, DueIn: days(0)},
	{Text: "Book dentist appointment", Category: tasks.CategoryHealth, Priority: tasks.PriorityMedium, DueIn: days(-1)},
	{Text: "30 minute run", Category: tasks.CategoryHealth, Priority: tasks.PriorityLow, Done: true},
	{Text: "Finish Go concurrency chapter", Category: tasks.CategoryEducation, Priority: tasks.PriorityMedium, DueIn: days(7)},
	{Text: "Water the plants", Category: tasks.CategoryPersonal, Priority: tasks.PriorityLow, Done: true},
}

// SampleCount is the number of tasks Seed creates.
var SampleCount = len(samples)

// Seed creates a spread of demo tasks through svc: every category, every
// priority, a couple overdue and a couple already completed. Due dates are
// relative to now.
func Seed(ctx context.Context, svc *service.TaskService, now time.Time) error {
	today := timefmt.StartOfDay(now)
	for _, s := range samples {
		due := ""
		if s.DueIn != nil {
			due = today.AddDate(0, 0, *s.DueIn).Format(timefmt.DateLayout)
		}
		res, err := svc.Create(ctx, service.Draft{Text: s.Text, Category: s.Category, Priority: s.Priority, Due: due})
		if err != nil {
			return fmt.Errorf("seed %q: %w", s.Text, err)
		}
		if s.Done {
			if _, _, err := svc.Toggle(ctx, res.Task.ID); err != nil {
				return fmt.Errorf("seed %q: %w", s.Text, err)
			}
		}
	}
	return nil
}
