package repository

import (
	"context"
	"database/sql"
	"errors"
	"fmt"
	"time"

	"github.com/jask/tasktimer/internal/tasks"
)

// TaskRepo stores the task collection. Rows keep insertion order in seq so
// List can return the newest insert first.
type TaskRepo struct {
	db *sql.DB
}

func NewTaskRepo(db *sql.DB) *TaskRepo { return &TaskRepo{db: db} }

const taskColumns = "id, text, completed, category_id, priority, due_date, created_at"

func (r *TaskRepo) Insert(ctx context.Context, t tasks.Task) error {
	_, err := r.db.ExecContext(ctx, `
	INSERT INTO tasks(id, seq, text, completed, category_id, priority, due_date, created_at)
	VALUES (?, (SELECT COALESCE(MAX(seq), 0) + 1 FROM tasks), ?, ?, ?, ?, ?, ?);
	`, t.ID, t.Text, t.Completed, string(t.Category), string(t.Priority), t.Due, t.CreatedAt)
	if err != nil {
		return fmt.Errorf("insert task %s: %w", t.ID, err)
	}
	return nil
}

func (r *TaskRepo) List(ctx context.Context) ([]tasks.Task, error) {
	rows, err := r.db.QueryContext(ctx, "SELECT "+taskColumns+" FROM tasks ORDER BY seq DESC")
	if err != nil {
		return nil, fmt.Errorf("list tasks: %w", err)
	}
	defer rows.Close()

	var out []tasks.Task
	for rows.Next() {
		t, err := scanTask(rows)
		if err != nil {
			return nil, err
		}
		out = append(out, t)
	}
	return out, rows.Err()
}

func (r *TaskRepo) Get(ctx context.Context, id string) (tasks.Task, error) {
	row := r.db.QueryRowContext(ctx, "SELECT "+taskColumns+" FROM tasks WHERE id = ?", id)
	t, err := scanTask(row)
	if errors.Is(err, sql.ErrNoRows) {
		return tasks.Task{}, ErrTaskNotFound
	}
	return t, err
}

func (r *TaskRepo) SetCompleted(ctx context.Context, id string, completed bool) error {
	_, err := r.db.ExecContext(ctx, `UPDATE tasks SET completed = ? WHERE id = ?`, completed, id)
	return err
}

func (r *TaskRepo) UpdateText(ctx context.Context, id, text string) error {
	_, err := r.db.ExecContext(ctx, `UPDATE tasks SET text = ? WHERE id = ?`, text, id)
	return err
}

func (r *TaskRepo) Delete(ctx context.Context, id string) error {
	_, err := r.db.ExecContext(ctx, `DELETE FROM tasks WHERE id = ?`, id)
	return err
}

// DeleteCompleted removes every completed task and reports how many went.
func (r *TaskRepo) DeleteCompleted(ctx context.Context) (int, error) {
	res, err := r.db.ExecContext(ctx, `DELETE FROM tasks WHERE completed = 1`)
	if err != nil {
		return 0, err
	}
	n, err := res.RowsAffected()
	return int(n), err
}

type scanner interface {
	Scan(dest ...any) error
}

func scanTask(s scanner) (tasks.Task, error) {
	var (
		t         tasks.Task
		category  string
		priority  string
		createdAt time.Time
	)
	if err := s.Scan(&t.ID, &t.Text, &t.Completed, &category, &priority, &t.Due, &createdAt); err != nil {
		return tasks.Task{}, err
	}
	t.Category = tasks.Category(category)
	t.Priority = tasks.Priority(priority)
	t.CreatedAt = createdAt
	return t, nil
}
