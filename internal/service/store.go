package service

import (
	"context"

	"github.com/jask/tasktimer/internal/database/repository"
	"github.com/jask/tasktimer/internal/tasks"
)

// Store holds the task collection. List returns the collection front first,
// i.e. the most recent insert at index 0.
type Store interface {
	Insert(ctx context.Context, t tasks.Task) error
	List(ctx context.Context) ([]tasks.Task, error)
	Get(ctx context.Context, id string) (tasks.Task, error)
	SetCompleted(ctx context.Context, id string, completed bool) error
	UpdateText(ctx context.Context, id, text string) error
	Delete(ctx context.Context, id string) error
	DeleteCompleted(ctx context.Context) (int, error)
}

var _ Store = (*repository.TaskRepo)(nil)

// MemoryStore is a slice-backed Store for callers that do not want SQLite.
type MemoryStore struct {
	tasks []tasks.Task
}

func NewMemoryStore() *MemoryStore { return &MemoryStore{} }

func (s *MemoryStore) Insert(_ context.Context, t tasks.Task) error {
	s.tasks = append([]tasks.Task{t}, s.tasks...)
	return nil
}

func (s *MemoryStore) List(context.Context) ([]tasks.Task, error) {
	return append([]tasks.Task(nil), s.tasks...), nil
}

func (s *MemoryStore) Get(_ context.Context, id string) (tasks.Task, error) {
	if i := s.index(id); i >= 0 {
		return s.tasks[i], nil
	}
	return tasks.Task{}, repository.ErrTaskNotFound
}

func (s *MemoryStore) SetCompleted(_ context.Context, id string, completed bool) error {
	if i := s.index(id); i >= 0 {
		s.tasks[i].Completed = completed
	}
	return nil
}

func (s *MemoryStore) UpdateText(_ context.Context, id, text string) error {
	if i := s.index(id); i >= 0 {
		s.tasks[i].Text = text
	}
	return nil
}

func (s *MemoryStore) Delete(_ context.Context, id string) error {
	if i := s.index(id); i >= 0 {
		s.tasks = append(s.tasks[:i], s.tasks[i+1:]...)
	}
	return nil
}

func (s *MemoryStore) DeleteCompleted(context.Context) (int, error) {
	kept := s.tasks[:0]
	for _, t := range s.tasks {
		if !t.Completed {
			kept = append(kept, t)
		}
	}
	n := len(s.tasks) - len(kept)
	s.tasks = kept
	return n, nil
}

func (s *MemoryStore) index(id string) int {
	for i := range s.tasks {
		if s.tasks[i].ID == id {
			return i
		}
	}
	return -1
}
