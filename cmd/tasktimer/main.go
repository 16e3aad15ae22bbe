package main

import (
	"os"

	"github.com/spf13/cobra"
)

var (
	configPath string
	seedDemo   bool
	timezone   string
)

var rootCmd = &cobra.Command{
	Use:   "tasktimer",
	Short: "Clock, stopwatch and task list for the terminal",
	Long: `tasktimer shows a wall clock with a lap-tracking stopwatch and a task list
with categories, priorities and due dates. Press 1 and 2 to switch tabs.
Tasks live for one session only.`,
	Run: func(cmd *cobra.Command, args []string) {
		runPanes(cmd, panes{clock: true, tasks: true})
	},
}

func init() {
	rootCmd.PersistentFlags().StringVar(&configPath, "config", "", "config file (default $XDG_CONFIG_HOME/tasktimer/config.toml)")
	rootCmd.PersistentFlags().BoolVar(&seedDemo, "demo", false, "start with a set of sample tasks")
	rootCmd.PersistentFlags().StringVar(&timezone, "tz", "", "IANA timezone for the clock, overrides ui.timezone")
	rootCmd.AddCommand(clockCmd, tasksCmd, configCmd)
}

func main() {
	if err := rootCmd.Execute(); err != nil {
		os.Exit(1)
	}
}
