package repository_test

import (
	"context"
	"database/sql"
	"testing"
	"time"

	"github.com/stretchr/testify/require"

	"github.com/jask/tasktimer/internal/database"
	"github.com/jask/tasktimer/internal/database/repository"
	"github.com/jask/tasktimer/internal/tasks"
)

func openStore(t *testing.T) *sql.DB {
	t.Helper()
	db, err := database.Open(database.MemoryPath)
	require.NoError(t, err)
	t.Cleanup(func() { _ = db.Close() })
	require.NoError(t, database.RunMigrations(db))
	require.NoError(t, database.SeedDefaults(context.Background(), db))
	return db
}

func TestTaskRepoRoundTrip(t *testing.T) {
	t.Parallel()

	ctx := context.Background()
	repo := repository.NewTaskRepo(openStore(t))
	created := time.Date(2026, 10, 19, 9, 30, 0, 123456789, time.UTC)

	first := tasks.Task{ID: "a", Text: "Buy milk", Category: tasks.CategoryShopping, Priority: tasks.PriorityLow, Due: "2026-10-18", CreatedAt: created}
	second := tasks.Task{ID: "b", Text: "Write report", Category: tasks.CategoryWork, Priority: tasks.PriorityHigh, CreatedAt: created.Add(time.Second)}
	require.NoError(t, repo.Insert(ctx, first))
	require.NoError(t, repo.Insert(ctx, second))

	list, err := repo.List(ctx)
	require.NoError(t, err)
	require.Len(t, list, 2)
	require.Equal(t, "b", list[0].ID, "newest insert is at the front")
	require.Equal(t, "a", list[1].ID)

	got, err := repo.Get(ctx, "a")
	require.NoError(t, err)
	require.Equal(t, "Buy milk", got.Text)
	require.Equal(t, tasks.CategoryShopping, got.Category)
	require.Equal(t, tasks.PriorityLow, got.Priority)
	require.Equal(t, "2026-10-18", got.Due)
	require.False(t, got.Completed)
	require.True(t, got.CreatedAt.Equal(created))

	require.NoError(t, repo.SetCompleted(ctx, "a", true))
	require.NoError(t, repo.UpdateText(ctx, "a", "Buy oat milk"))
	got, err = repo.Get(ctx, "a")
	require.NoError(t, err)
	require.True(t, got.Completed)
	require.Equal(t, "Buy oat milk", got.Text)

	require.NoError(t, repo.Delete(ctx, "b"))
	require.NoError(t, repo.Delete(ctx, "missing"))
	_, err = repo.Get(ctx, "b")
	require.ErrorIs(t, err, repository.ErrTaskNotFound)
}

func TestTaskRepoRejectsInvalidRows(t *testing.T) {
	t.Parallel()

	ctx := context.Background()
	repo := repository.NewTaskRepo(openStore(t))
	now := time.Now()

	require.Error(t, repo.Insert(ctx, tasks.Task{ID: "blank", Text: "   ", Category: tasks.CategoryWork, Priority: tasks.PriorityLow, CreatedAt: now}))
	require.Error(t, repo.Insert(ctx, tasks.Task{ID: "cat", Text: "x", Category: "garden", Priority: tasks.PriorityLow, CreatedAt: now}))
	require.Error(t, repo.Insert(ctx, tasks.Task{ID: "pri", Text: "x", Category: tasks.CategoryWork, Priority: "urgent", CreatedAt: now}))

	require.NoError(t, repo.Insert(ctx, tasks.Task{ID: "dup", Text: "x", Category: tasks.CategoryWork, Priority: tasks.PriorityLow, CreatedAt: now}))
	require.Error(t, repo.Insert(ctx, tasks.Task{ID: "dup", Text: "y", Category: tasks.CategoryWork, Priority: tasks.PriorityLow, CreatedAt: now}))
}

func TestTaskRepoDeleteCompleted(t *testing.T) {
	t.Parallel()

	ctx := context.Background()
	repo := repository.NewTaskRepo(openStore(t))
	now := time.Now()
	for i, id := range []string{"a", "b", "c"} {
		require.NoError(t, repo.Insert(ctx, tasks.Task{ID: id, Text: id, Category: tasks.CategoryWork, Priority: tasks.PriorityMedium, CreatedAt: now.Add(time.Duration(i) * time.Second)}))
	}
	require.NoError(t, repo.SetCompleted(ctx, "a", true))
	require.NoError(t, repo.SetCompleted(ctx, "c", true))

	n, err := repo.DeleteCompleted(ctx)
	require.NoError(t, err)
	require.Equal(t, 2, n)

	list, err := repo.List(ctx)
	require.NoError(t, err)
	require.Len(t, list, 1)
	require.Equal(t, "b", list[0].ID)
}

func TestSeedDefaultsIsIdempotent(t *testing.T) {
	t.Parallel()

	ctx := context.Background()
	db := openStore(t)
	require.NoError(t, database.SeedDefaults(ctx, db))
	require.NoError(t, database.RunMigrations(db))

	cats, err := repository.NewCategoryRepo(db).List(ctx)
	require.NoError(t, err)
	require.Len(t, cats, len(tasks.Categories()))
	require.Equal(t, "personal", cats[0].ID)
	require.Equal(t, "Personal", cats[0].Label)
	require.Equal(t, "education", cats[len(cats)-1].ID)
}

func TestResetSessionEmptiesTasks(t *testing.T) {
	t.Parallel()

	ctx := context.Background()
	db := openStore(t)
	repo := repository.NewTaskRepo(db)
	require.NoError(t, repo.Insert(ctx, tasks.Task{ID: "a", Text: "Left over", Category: tasks.CategoryWork, Priority: tasks.PriorityLow, CreatedAt: time.Now()}))

	require.NoError(t, database.ResetSession(ctx, db))
	list, err := repo.List(ctx)
	require.NoError(t, err)
	require.Empty(t, list)

	cats, err := repository.NewCategoryRepo(db).List(ctx)
	require.NoError(t, err)
	require.Len(t, cats, len(tasks.Categories()))
}
