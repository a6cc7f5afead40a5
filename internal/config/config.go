// Package config loads application settings from defaults, an optional
// YAML file and LESSONPLAN_* environment variables, in that order.
package config

import (
	"errors"
	"fmt"
	"os"
	"path/filepath"
	"strconv"

	"gopkg.in/yaml.v3"

	"github.com/abhisek/lessonplan/internal/llm"
	"github.com/abhisek/lessonplan/internal/planner"
)

// Config holds all application settings.
type Config struct {
	LLM     llm.Config     `yaml:"llm"`
	Planner planner.Config `yaml:"planner"`

	// DB is the SQLite file. Empty selects store.DefaultDBPath.
	DB string `yaml:"db"`

	// ExportDir receives exported PDF and Word files.
	ExportDir string `yaml:"export_dir"`

	Log LogConfig `yaml:"log"`
}

// LogConfig selects the log format and destination.
type LogConfig struct {
	Mode string `yaml:"mode"` // "dev" or "prod"
	File string `yaml:"file"` // empty disables logging
}

// Default returns the built-in settings.
func Default() Config {
	return Config{
		LLM:       llm.DefaultConfig(),
		Planner:   planner.DefaultConfig(),
		ExportDir: ".",
		Log: LogConfig{
			Mode: "prod",
			File: defaultLogPath(),
		},
	}
}

// Load builds the configuration. path names a YAML file; when empty the
// default location is read if it exists.
func Load(path string) (Config, error) {
	cfg := Default()

	explicit := path != ""
	if !explicit {
		path = DefaultPath()
	}
	if path != "" {
		data, err := os.ReadFile(path)
		switch {
		case err == nil:
			if err := yaml.Unmarshal(data, &cfg); err != nil {
				return Config{}, fmt.Errorf("parse config file %s: %w", path, err)
			}
		case errors.Is(err, os.ErrNotExist) && !explicit:
		default:
			return Config{}, fmt.Errorf("read config file: %w", err)
		}
	}

	ApplyEnv(&cfg)

	if err := cfg.Validate(); err != nil {
		return Config{}, err
	}
	return cfg, nil
}

// ApplyEnv overrides cfg with environment variables.
func ApplyEnv(cfg *Config) {
	llm.ApplyEnv(&cfg.LLM)

	if v := os.Getenv("LESSONPLAN_DB"); v != "" {
		cfg.DB = v
	}
	if v := os.Getenv("LESSONPLAN_EXPORT_DIR"); v != "" {
		cfg.ExportDir = v
	}
	if v := os.Getenv("LESSONPLAN_LOG_MODE"); v != "" {
		cfg.Log.Mode = v
	}
	if v, ok := os.LookupEnv("LESSONPLAN_LOG_FILE"); ok {
		cfg.Log.File = v
	}
	if v := os.Getenv("LESSONPLAN_MAX_TOKENS"); v != "" {
		if n, err := strconv.Atoi(v); err == nil {
			cfg.Planner.MaxTokens = n
		}
	}
	if v := os.Getenv("LESSONPLAN_TEMPERATURE"); v != "" {
		if f, err := strconv.ParseFloat(v, 64); err == nil {
			cfg.Planner.Temperature = f
		}
	}
}

// Validate checks the settings that do not depend on the chosen provider.
// Provider credentials are checked by llm.Config.Validate when a provider
// is built, so history and export commands work without an API key.
func (c Config) Validate() error {
	if c.Planner.MaxTokens < 1 {
		return fmt.Errorf("planner.max_tokens must be positive, got %d", c.Planner.MaxTokens)
	}
	if c.Planner.Temperature < 0 || c.Planner.Temperature > 2 {
		return fmt.Errorf("planner.temperature must be between 0 and 2, got %g", c.Planner.Temperature)
	}
	if c.LLM.Retry.MaxAttempts < 1 {
		return fmt.Errorf("llm.retry.max_attempts must be at least 1, got %d", c.LLM.Retry.MaxAttempts)
	}
	if c.ExportDir == "" {
		return errors.New("export_dir must not be empty")
	}
	return nil
}

// DefaultPath resolves the config file location:
// LESSONPLAN_CONFIG, then $XDG_CONFIG_HOME/lessonplan/config.yaml, then
// ~/.config/lessonplan/config.yaml.
func DefaultPath() string {
	if p := os.Getenv("LESSONPLAN_CONFIG"); p != "" {
		return p
	}
	if dir := os.Getenv("XDG_CONFIG_HOME"); dir != "" {
		return filepath.Join(dir, "lessonplan", "config.yaml")
	}
	home, err := os.UserHomeDir()
	if err != nil {
		return ""
	}
	return filepath.Join(home, ".config", "lessonplan", "config.yaml")
}

func defaultLogPath() string {
	if dir := os.Getenv("XDG_STATE_HOME"); dir != "" {
		return filepath.Join(dir, "lessonplan", "lessonplan.log")
	}
	home, err := os.UserHomeDir()
	if err != nil {
		return ""
	}
	return filepath.Join(home, ".local", "state", "lessonplan", "lessonplan.log")
}
