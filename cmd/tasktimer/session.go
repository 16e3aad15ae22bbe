package main

import (
	"context"
	"database/sql"
	"fmt"
	"log"
	"os"
	"path/filepath"
	"time"

	"github.com/jask/tasktimer/internal/clock"
	"github.com/jask/tasktimer/internal/config"
	"github.com/jask/tasktimer/internal/database"
	"github.com/jask/tasktimer/internal/database/repository"
	"github.com/jask/tasktimer/internal/demo"
	"github.com/jask/tasktimer/internal/service"
	"github.com/jask/tasktimer/internal/stopwatch"
	"github.com/jask/tasktimer/internal/tasks"
	"github.com/jask/tasktimer/internal/timefmt"
	"github.com/jask/tasktimer/internal/tui"
)

type panes struct {
	clock bool
	tasks bool
}

// session owns everything a run needs: the store handle and the root model.
type session struct {
	db  *sql.DB
	App *tui.App
}

// newSession wires configuration into the services and the TUI. A nil now
// uses the wall clock.
func newSession(ctx context.Context, cfg config.Config, want panes, seed bool, now func() time.Time) (*session, error) {
	zone, err := timefmt.ResolveZone(cfg.UI.Timezone)
	if err != nil {
		return nil, err
	}
	locale := timefmt.ResolveLocale(cfg.UI.Locale)
	clk := clock.New(zone, locale, now)
	log.Printf("session: zone=%s locale=%s", zone.Name, locale.Tag)

	keys := tui.NewKeyRegistry()
	if err := keys.ApplyKeybindingConfig(cfg.Keybindings); err != nil {
		return nil, err
	}

	opts := tui.Options{
		Locale:   locale,
		Keys:     keys,
		StartTab: cfg.UI.StartTab,
		TaskOptions: tui.TasksOptions{
			DefaultCategory: tasks.Category(cfg.Tasks.DefaultCategory),
			DefaultPriority: tasks.Priority(cfg.Tasks.DefaultPriority),
			Celebrate:       cfg.Tasks.Celebrate,
		},
	}
	s := &session{}

	if want.clock {
		mode, err := stopwatch.ParseMode(cfg.Stopwatch.Accumulation)
		if err != nil {
			return nil, err
		}
		opts.Clock = clk
		opts.Stopwatch = stopwatch.New(
			stopwatch.WithMode(mode),
			stopwatch.WithQuantum(time.Duration(cfg.Stopwatch.QuantumMS)*time.Millisecond),
		)
	}

	if want.tasks {
		db, err := openStore(ctx, cfg.Database.Path)
		if err != nil {
			return nil, err
		}
		s.db = db
		repo := repository.NewTaskRepo(db)
		svc := &service.TaskService{Store: repo, Now: clk.Now, SimilarityThreshold: cfg.Tasks.SimilarityThreshold}
		if seed {
			if err := demo.Seed(ctx, svc, clk.Now()); err != nil {
				_ = db.Close()
				return nil, fmt.Errorf("demo seed: %w", err)
			}
			log.Printf("demo: seeded %d tasks", demo.SampleCount)
		}
		opts.Tasks = svc
		opts.Maintenance = &service.MaintenanceService{Store: repo}
	}

	s.App = tui.New(ctx, opts)
	return s, nil
}

// openStore opens the session store, migrates it and starts it empty.
func openStore(ctx context.Context, path string) (*sql.DB, error) {
	if path != database.MemoryPath {
		if err := os.MkdirAll(filepath.Dir(path), 0o755); err != nil {
			return nil, fmt.Errorf("mkdir db dir: %w", err)
		}
	}
	db, err := database.Open(path)
	if err != nil {
		return nil, err
	}
	if err := database.RunMigrations(db); err != nil {
		_ = db.Close()
		return nil, fmt.Errorf("migrate: %w", err)
	}
	if err := database.SeedDefaults(ctx, db); err != nil {
		_ = db.Close()
		return nil, fmt.Errorf("seed defaults: %w", err)
	}
	if err := database.ResetSession(ctx, db); err != nil {
		_ = db.Close()
		return nil, err
	}
	return db, nil
}

func (s *session) Close() error {
	if s.db == nil {
		return nil
	}
	return s.db.Close()
}
