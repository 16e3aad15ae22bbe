package database

import (
	"context"
	"database/sql"
	"fmt"

	"github.com/jask/tasktimer/internal/database/repository"
	"github.com/jask/tasktimer/internal/tasks"
)

// SeedDefaults ensures the fixed task categories exist so task rows can
// reference them. It is idempotent and safe to run on every startup.
func SeedDefaults(ctx context.Context, db *sql.DB) error {
	catRepo := repository.NewCategoryRepo(db)
	existing, err := catRepo.List(ctx)
	if err == nil && len(existing) == len(tasks.Categories()) {
		return nil
	}
	return WithTx(db, func(tx *sql.Tx) error {
		for idx, info := range tasks.Categories() {
			c := repository.Category{ID: string(info.Value), Label: info.Label, Icon: info.Icon, SortOrder: idx}
			if err := catRepo.UpsertTx(ctx, tx, c); err != nil {
				return err
			}
		}
		return nil
	})
}

// ResetSession removes every task so a file-backed store starts each run
// empty, the same as a MemoryPath store.
func ResetSession(ctx context.Context, db *sql.DB) error {
	if _, err := db.ExecContext(ctx, `DELETE FROM tasks`); err != nil {
		return fmt.Errorf("reset session: %w", err)
	}
	return nil
}
