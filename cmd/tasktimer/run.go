package main

import (
	"context"
	"fmt"
	"io"
	"log"
	"os"

	tea "github.com/charmbracelet/bubbletea"
	"github.com/spf13/cobra"

	"github.com/jask/tasktimer/internal/config"
)

var clockCmd = &cobra.Command{
	Use:   "clock",
	Short: "Run only the clock and stopwatch",
	Run: func(cmd *cobra.Command, args []string) {
		runPanes(cmd, panes{clock: true})
	},
}

var tasksCmd = &cobra.Command{
	Use:   "tasks",
	Short: "Run only the task list",
	Run: func(cmd *cobra.Command, args []string) {
		runPanes(cmd, panes{tasks: true})
	},
}

func runPanes(cmd *cobra.Command, want panes) {
	ctx := cmd.Context()
	if ctx == nil {
		ctx = context.Background()
	}

	cfg, err := config.Load(configPath)
	if err != nil {
		fatal("config: %v", err)
	}
	if timezone != "" {
		cfg.UI.Timezone = timezone
	}

	logFile, err := redirectLog(cfg.Log.File)
	if err != nil {
		fatal("log: %v", err)
	}
	if logFile != nil {
		defer logFile.Close()
	}

	s, err := newSession(ctx, cfg, want, seedDemo, nil)
	if err != nil {
		fatal("startup: %v", err)
	}
	defer s.Close()

	p := tea.NewProgram(s.App, tea.WithAltScreen(), tea.WithContext(ctx))
	if _, err := p.Run(); err != nil {
		fmt.Printf("error: %v\n", err)
	}
}

// redirectLog sends log output to path while the TUI owns the terminal, or
// discards it when path is empty.
func redirectLog(path string) (*os.File, error) {
	if path == "" {
		log.SetOutput(io.Discard)
		return nil, nil
	}
	return tea.LogToFile(path, "tasktimer")
}

// fatal restores stderr logging so startup failures are visible, then exits.
func fatal(format string, args ...any) {
	log.SetOutput(os.Stderr)
	log.Fatalf(format, args...)
}
