package repository

import (
	"context"
	"database/sql"
)

// execer is satisfied by *sql.DB and *sql.Tx.
type execer interface {
	ExecContext(ctx context.Context, query string, args ...any) (sql.Result, error)
}

// CategoryRepo handles categories.
type CategoryRepo struct {
	db *sql.DB
}

func NewCategoryRepo(db *sql.DB) *CategoryRepo {
	return &CategoryRepo{db: db}
}

func (r *CategoryRepo) Upsert(ctx context.Context, c Category) error {
	return upsertCategory(ctx, r.db, c)
}

// UpsertTx is Upsert inside a caller-owned transaction.
func (r *CategoryRepo) UpsertTx(ctx context.Context, tx *sql.Tx, c Category) error {
	return upsertCategory(ctx, tx, c)
}

func upsertCategory(ctx context.Context, ex execer, c Category) error {
	_, err := ex.ExecContext(ctx, `
	INSERT INTO categories(id, label, icon, sort_order)
	VALUES (?, ?, ?, ?)
	ON CONFLICT(id) DO UPDATE SET
	 label=excluded.label,
	 icon=excluded.icon,
	 sort_order=excluded.sort_order;
	`, c.ID, c.Label, c.Icon, c.SortOrder)
	return err
}

func (r *CategoryRepo) List(ctx context.Context) ([]Category, error) {
	rows, err := r.db.QueryContext(ctx, `SELECT id, label, icon, sort_order FROM categories ORDER BY sort_order, label`)
	if err != nil {
		return nil, err
	}
	defer rows.Close()
	var out []Category
	for rows.Next() {
		var c Category
		if err := rows.Scan(&c.ID, &c.Label, &c.Icon, &c.SortOrder); err != nil {
			return nil, err
		}
		out = append(out, c)
	}
	return out, rows.Err()
}
