package service

import (
	"context"
	"errors"
	"fmt"
	"strings"
	"time"

	"github.com/google/uuid"

	"github.com/jask/tasktimer/internal/database/repository"
	"github.com/jask/tasktimer/internal/tasks"
	"github.com/jask/tasktimer/internal/timefmt"
)

// ErrInvalidDueDate is returned by Create for a due date that is not YYYY-MM-DD.
var ErrInvalidDueDate = errors.New("due date must be YYYY-MM-DD")

// Draft is the input to Create.
type Draft struct {
	Text     string
	Category tasks.Category
	Priority tasks.Priority
	Due      string
}

// CreateResult reports what Create did.
type CreateResult struct {
	Task    tasks.Task
	Created bool
	// Similar lists existing tasks whose text closely matches the new one.
	Similar []tasks.Task
}

// TaskService applies the task list operations to a Store and owns the
// single edit session.
type TaskService struct {
	Store Store
	// Now defaults to time.Now. Its location decides calendar days.
	Now func() time.Time
	// NewID defaults to UUIDv7, which is time-ordered and unique per call.
	NewID               func() (string, error)
	SimilarityThreshold float64
	// OnCelebrate is called after a create and after a toggle to completed.
	OnCelebrate func(tasks.Task)

	editingID string
}

// Create inserts a task at the front of the collection. Blank text is
// ignored: the result has Created=false and the error is nil.
func (s *TaskService) Create(ctx context.Context, d Draft) (CreateResult, error) {
	text := strings.TrimSpace(d.Text)
	if text == "" {
		return CreateResult{}, nil
	}
	now := s.now()
	due := strings.TrimSpace(d.Due)
	if due != "" {
		parsed, err := timefmt.ParseDate(due, now.Location())
		if err != nil {
			return CreateResult{}, fmt.Errorf("%w: %q", ErrInvalidDueDate, due)
		}
		due = parsed.Format(timefmt.DateLayout)
	}
	id, err := s.newID()
	if err != nil {
		return CreateResult{}, fmt.Errorf("new task id: %w", err)
	}

	existing, err := s.Store.List(ctx)
	if err != nil {
		return CreateResult{}, fmt.Errorf("list tasks: %w", err)
	}

	t := tasks.Task{
		ID:        id,
		Text:      text,
		Category:  d.Category.Info().Value,
		Priority:  d.Priority.Info().Value,
		Due:       due,
		CreatedAt: now,
	}
	if err := s.Store.Insert(ctx, t); err != nil {
		return CreateResult{}, err
	}
	s.celebrate(t)
	return CreateResult{
		Task:    t,
		Created: true,
		Similar: similarTo(existing, text, t.ID, s.threshold()),
	}, nil
}

// Toggle flips the completion flag of id. Unknown ids are a no-op and
// report found=false.
func (s *TaskService) Toggle(ctx context.Context, id string) (t tasks.Task, found bool, err error) {
	t, err = s.Store.Get(ctx, id)
	if errors.Is(err, repository.ErrTaskNotFound) {
		return tasks.Task{}, false, nil
	}
	if err != nil {
		return tasks.Task{}, false, fmt.Errorf("get task %s: %w", id, err)
	}
	t.Completed = !t.Completed
	if err := s.Store.SetCompleted(ctx, id, t.Completed); err != nil {
		return tasks.Task{}, true, fmt.Errorf("toggle task %s: %w", id, err)
	}
	if t.Completed {
		s.celebrate(t)
	}
	return t, true, nil
}

// BeginEdit puts id into edit mode, replacing any other edit, and returns
// the text to seed the edit buffer with.
func (s *TaskService) BeginEdit(ctx context.Context, id string) (string, error) {
	t, err := s.Store.Get(ctx, id)
	if err != nil {
		return "", err
	}
	s.editingID = t.ID
	return t.Text, nil
}

// Editing returns the id in edit mode, if any.
func (s *TaskService) Editing() (string, bool) {
	return s.editingID, s.editingID != ""
}

// ConfirmEdit replaces the edited task's text with the trimmed buffer when it
// is non-empty, then leaves edit mode. It reports whether the text was replaced.
func (s *TaskService) ConfirmEdit(ctx context.Context, buffer string) (bool, error) {
	id := s.editingID
	s.editingID = ""
	text := strings.TrimSpace(buffer)
	if id == "" || text == "" {
		return false, nil
	}
	if err := s.Store.UpdateText(ctx, id, text); err != nil {
		return false, fmt.Errorf("edit task %s: %w", id, err)
	}
	return true, nil
}

// CancelEdit leaves edit mode without changes.
func (s *TaskService) CancelEdit() {
	s.editingID = ""
}

// Delete removes id. Unknown ids are a no-op.
func (s *TaskService) Delete(ctx context.Context, id string) error {
	if s.editingID == id {
		s.editingID = ""
	}
	if err := s.Store.Delete(ctx, id); err != nil {
		return fmt.Errorf("delete task %s: %w", id, err)
	}
	return nil
}

// List returns the collection front first.
func (s *TaskService) List(ctx context.Context) ([]tasks.Task, error) {
	return s.Store.List(ctx)
}

// Board is everything the task pane renders, derived on each call.
type Board struct {
	All     []tasks.Task
	Visible []tasks.Task
	Stats   tasks.Stats
	Now     time.Time
}

// Board reads the collection and derives the filtered view and statistics.
func (s *TaskService) Board(ctx context.Context, f tasks.Filter) (Board, error) {
	all, err := s.Store.List(ctx)
	if err != nil {
		return Board{}, fmt.Errorf("list tasks: %w", err)
	}
	now := s.now()
	return Board{
		All:     all,
		Visible: tasks.Visible(all, f),
		Stats:   tasks.ComputeStats(all, now),
		Now:     now,
	}, nil
}

func (s *TaskService) now() time.Time {
	if s.Now != nil {
		return s.Now()
	}
	return time.Now()
}

func (s *TaskService) newID() (string, error) {
	if s.NewID != nil {
		return s.NewID()
	}
	id, err := uuid.NewV7()
	if err != nil {
		return "", err
	}
	return id.String(), nil
}

func (s *TaskService) threshold() float64 {
	if s.SimilarityThreshold > 0 {
		return s.SimilarityThreshold
	}
	return DefaultSimilarityThreshold
}

func (s *TaskService) celebrate(t tasks.Task) {
	if s.OnCelebrate != nil {
		s.OnCelebrate(t)
	}
}
