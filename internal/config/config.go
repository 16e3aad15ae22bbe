package config

import (
	"errors"
	"fmt"
	"os"
	"path/filepath"
	"strings"

	"github.com/spf13/viper"

	"github.com/jask/tasktimer/internal/stopwatch"
	"github.com/jask/tasktimer/internal/tasks"
)

const (
	TabClock = "clock"
	TabTasks = "tasks"
)

// Config holds application configuration.
type Config struct {
	Database    DatabaseConfig  `mapstructure:"database"`
	UI          UIConfig        `mapstructure:"ui"`
	Stopwatch   StopwatchConfig `mapstructure:"stopwatch"`
	Tasks       TasksConfig     `mapstructure:"tasks"`
	Log         LogConfig       `mapstructure:"log"`
	Keybindings []Keybinding    `mapstructure:"keybindings"`
}

// DatabaseConfig holds sqlite settings. The default is an in-memory
// database that lives for one session.
type DatabaseConfig struct {
	Path string `mapstructure:"path"`
}

// UIConfig holds presentation settings. Empty timezone and locale mean
// "use the host's".
type UIConfig struct {
	Timezone string `mapstructure:"timezone"`
	Locale   string `mapstructure:"locale"`
	StartTab string `mapstructure:"start_tab"`
}

type StopwatchConfig struct {
	Accumulation string `mapstructure:"accumulation"`
	QuantumMS    int    `mapstructure:"quantum_ms"`
}

type TasksConfig struct {
	DefaultCategory     string  `mapstructure:"default_category"`
	DefaultPriority     string  `mapstructure:"default_priority"`
	Celebrate           bool    `mapstructure:"celebrate"`
	SimilarityThreshold float64 `mapstructure:"similarity_threshold"`
}

type LogConfig struct {
	File string `mapstructure:"file"`
}

// Keybinding overrides the keys of one action in one scope.
type Keybinding struct {
	Scope  string   `mapstructure:"scope" toml:"scope"`
	Action string   `mapstructure:"action" toml:"action"`
	Keys   []string `mapstructure:"keys" toml:"keys"`
}

// Default returns the configuration used when no file or env overrides exist.
func Default() Config {
	return Config{
		Database:  DatabaseConfig{Path: ":memory:"},
		UI:        UIConfig{StartTab: TabClock},
		Stopwatch: StopwatchConfig{Accumulation: string(stopwatch.ModeQuantum), QuantumMS: int(stopwatch.DefaultQuantum.Milliseconds())},
		Tasks: TasksConfig{
			DefaultCategory:     string(tasks.CategoryPersonal),
			DefaultPriority:     string(tasks.PriorityMedium),
			Celebrate:           true,
			SimilarityThreshold: 0.85,
		},
	}
}

// Path resolves the config file location: the explicit path if set, then
// $TASKTIMER_CONFIG, then $XDG_CONFIG_HOME/tasktimer/config.toml.
func Path(explicit string) string {
	if explicit != "" {
		return explicit
	}
	if p := os.Getenv("TASKTIMER_CONFIG"); p != "" {
		return p
	}
	dir := os.Getenv("XDG_CONFIG_HOME")
	if dir == "" {
		dir = filepath.Join(os.Getenv("HOME"), ".config")
	}
	return filepath.Join(dir, "tasktimer", "config.toml")
}

// Load reads configuration from file and env. Env var overrides use prefix
// TASKTIMER_. A missing file is not an error.
func Load(path string) (Config, error) {
	v := viper.New()
	setDefaults(v, Default())

	v.SetConfigType("toml")
	v.SetConfigFile(Path(path))

	v.SetEnvPrefix("TASKTIMER")
	v.AutomaticEnv()
	v.SetEnvKeyReplacer(strings.NewReplacer(".", "_"))

	if err := v.ReadInConfig(); err != nil {
		var notFound viper.ConfigFileNotFoundError
		if !errors.As(err, &notFound) && !errors.Is(err, os.ErrNotExist) {
			return Config{}, fmt.Errorf("read config: %w", err)
		}
	}

	var c Config
	if err := v.Unmarshal(&c); err != nil {
		return Config{}, fmt.Errorf("unmarshal config: %w", err)
	}
	if err := c.Validate(); err != nil {
		return Config{}, err
	}
	return c, nil
}

func setDefaults(v *viper.Viper, d Config) {
	v.SetDefault("database.path", d.Database.Path)
	v.SetDefault("ui.timezone", d.UI.Timezone)
	v.SetDefault("ui.locale", d.UI.Locale)
	v.SetDefault("ui.start_tab", d.UI.StartTab)
	v.SetDefault("stopwatch.accumulation", d.Stopwatch.Accumulation)
	v.SetDefault("stopwatch.quantum_ms", d.Stopwatch.QuantumMS)
	v.SetDefault("tasks.default_category", d.Tasks.DefaultCategory)
	v.SetDefault("tasks.default_priority", d.Tasks.DefaultPriority)
	v.SetDefault("tasks.celebrate", d.Tasks.Celebrate)
	v.SetDefault("tasks.similarity_threshold", d.Tasks.SimilarityThreshold)
	v.SetDefault("log.file", d.Log.File)
}

// Validate rejects values the application cannot run with.
func (c Config) Validate() error {
	if _, err := stopwatch.ParseMode(c.Stopwatch.Accumulation); err != nil {
		return fmt.Errorf("stopwatch.accumulation: %w", err)
	}
	if c.Stopwatch.QuantumMS <= 0 {
		return fmt.Errorf("stopwatch.quantum_ms must be positive, got %d", c.Stopwatch.QuantumMS)
	}
	if t := c.Tasks.SimilarityThreshold; t <= 0 || t > 1 {
		return fmt.Errorf("tasks.similarity_threshold must be in (0,1], got %v", t)
	}
	switch c.UI.StartTab {
	case TabClock, TabTasks:
	default:
		return fmt.Errorf("ui.start_tab must be %q or %q, got %q", TabClock, TabTasks, c.UI.StartTab)
	}
	if !tasks.Category(c.Tasks.DefaultCategory).Valid() {
		return fmt.Errorf("tasks.default_category: unknown category %q", c.Tasks.DefaultCategory)
	}
	if !tasks.Priority(c.Tasks.DefaultPriority).Valid() {
		return fmt.Errorf("tasks.default_priority: unknown priority %q", c.Tasks.DefaultPriority)
	}
	return nil
}

// Save writes cfg to path (resolved as in Load), creating the config
// directory if needed.
func Save(cfg Config, path string) (string, error) {
	path = Path(path)
	if err := os.MkdirAll(filepath.Dir(path), 0o755); err != nil {
		return "", fmt.Errorf("mkdir config dir: %w", err)
	}

	v := viper.New()
	v.SetConfigType("toml")
	v.Set("database.path", cfg.Database.Path)
	v.Set("ui.timezone", cfg.UI.Timezone)
	v.Set("ui.locale", cfg.UI.Locale)
	v.Set("ui.start_tab", cfg.UI.StartTab)
	v.Set("stopwatch.accumulation", cfg.Stopwatch.Accumulation)
	v.Set("stopwatch.quantum_ms", cfg.Stopwatch.QuantumMS)
	v.Set("tasks.default_category", cfg.Tasks.DefaultCategory)
	v.Set("tasks.default_priority", cfg.Tasks.DefaultPriority)
	v.Set("tasks.celebrate", cfg.Tasks.Celebrate)
	v.Set("tasks.similarity_threshold", cfg.Tasks.SimilarityThreshold)
	v.Set("log.file", cfg.Log.File)
	if len(cfg.Keybindings) > 0 {
		items := make([]map[string]any, 0, len(cfg.Keybindings))
		for _, kb := range cfg.Keybindings {
			items = append(items, map[string]any{"scope": kb.Scope, "action": kb.Action, "keys": kb.Keys})
		}
		v.Set("keybindings", items)
	}

	if err := v.WriteConfigAs(path); err != nil {
		return "", fmt.Errorf("write config: %w", err)
	}
	return path, nil
}
