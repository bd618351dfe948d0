package config

import (
	"fmt"
	"os"
	"path/filepath"
	"strings"
	"time"

	"github.com/caarlos0/env/v11"
	"gopkg.in/yaml.v3"
)

const (
	BackendFile = "file"
	BackendBolt = "bolt"
)

type Config struct {
	DataDir  string         `yaml:"data_dir" env:"CAFETALK_DATA_DIR"`
	Timezone string         `yaml:"timezone" env:"CAFETALK_TIMEZONE"`
	Storage  StorageConfig  `yaml:"storage"`
	Logging  LoggingConfig  `yaml:"logging"`
	Reminder ReminderConfig `yaml:"reminder"`
	Journal  JournalConfig  `yaml:"journal"`
}

type StorageConfig struct {
	// Backend is "file" (JSON blob) or "bolt" (bbolt key-value store).
	Backend string `yaml:"backend" env:"CAFETALK_STORAGE_BACKEND"`
}

type LoggingConfig struct {
	Level string `yaml:"level" env:"CAFETALK_LOG_LEVEL"` // debug, info, warn, error
}

type ReminderConfig struct {
	At string `yaml:"at" env:"CAFETALK_REMINDER_AT"` // HH:MM, local to Timezone
}

type JournalConfig struct {
	Enabled bool `yaml:"enabled" env:"CAFETALK_JOURNAL"`
}

// DefaultDataDir is ~/.cafetalk, or ./.cafetalk when the home directory is unknown.
func DefaultDataDir() string {
	home, err := os.UserHomeDir()
	if err != nil || home == "" {
		return ".cafetalk"
	}
	return filepath.Join(home, ".cafetalk")
}

// DefaultPath is where Load looks when no --config flag is given.
func DefaultPath() string {
	return filepath.Join(DefaultDataDir(), "config.yaml")
}

func Default(dataDir string) *Config {
	if strings.TrimSpace(dataDir) == "" {
		dataDir = DefaultDataDir()
	}
	return &Config{
		DataDir:  dataDir,
		Storage:  StorageConfig{Backend: BackendFile},
		Logging:  LoggingConfig{Level: "info"},
		Reminder: ReminderConfig{At: "19:00"},
		Journal:  JournalConfig{Enabled: true},
	}
}

// Load reads defaults, then the YAML file at path (a missing file is fine),
// then CAFETALK_* environment overrides, and validates the result.
func Load(path string) (*Config, error) {
	cfg := Default("")

	if path != "" {
		data, err := os.ReadFile(path)
		switch {
		case err == nil:
			if err := yaml.Unmarshal(data, cfg); err != nil {
				return nil, fmt.Errorf("parse config %s: %w", path, err)
			}
		case os.IsNotExist(err):
		default:
			return nil, fmt.Errorf("read config: %w", err)
		}
	}

	if err := env.Parse(cfg); err != nil {
		return nil, fmt.Errorf("parse env: %w", err)
	}
	if err := cfg.Validate(); err != nil {
		return nil, err
	}
	return cfg, nil
}

// Save writes the configuration as YAML, creating parent directories.
func (c *Config) Save(path string) error {
	if err := os.MkdirAll(filepath.Dir(path), 0o755); err != nil {
		return fmt.Errorf("create config dir: %w", err)
	}
	data, err := yaml.Marshal(c)
	if err != nil {
		return fmt.Errorf("marshal config: %w", err)
	}
	if err := os.WriteFile(path, data, 0o644); err != nil {
		return fmt.Errorf("write config: %w", err)
	}
	return nil
}

func (c *Config) Validate() error {
	var errs []string
	if strings.TrimSpace(c.DataDir) == "" {
		errs = append(errs, "data_dir is required")
	}
	switch c.Storage.Backend {
	case BackendFile, BackendBolt:
	default:
		errs = append(errs, fmt.Sprintf("storage.backend must be %q or %q, got %q", BackendFile, BackendBolt, c.Storage.Backend))
	}
	if _, err := c.Location(); err != nil {
		errs = append(errs, err.Error())
	}
	if _, _, err := c.ReminderClock(); err != nil {
		errs = append(errs, err.Error())
	}
	if len(errs) > 0 {
		return fmt.Errorf("invalid config: %s", strings.Join(errs, "; "))
	}
	return nil
}

// Location resolves Timezone; empty means the host's local zone.
func (c *Config) Location() (*time.Location, error) {
	if strings.TrimSpace(c.Timezone) == "" {
		return time.Local, nil
	}
	loc, err := time.LoadLocation(c.Timezone)
	if err != nil {
		return nil, fmt.Errorf("timezone %q: %w", c.Timezone, err)
	}
	return loc, nil
}

// ReminderClock parses Reminder.At as hour and minute.
func (c *Config) ReminderClock() (int, int, error) {
	t, err := time.Parse("15:04", strings.TrimSpace(c.Reminder.At))
	if err != nil {
		return 0, 0, fmt.Errorf("reminder.at must be HH:MM, got %q", c.Reminder.At)
	}
	return t.Hour(), t.Minute(), nil
}

func (c *Config) StatePath() string  { return filepath.Join(c.DataDir, "progress.json") }
func (c *Config) BoltPath() string   { return filepath.Join(c.DataDir, "progress.db") }
func (c *Config) IndexPath() string  { return filepath.Join(c.DataDir, "index.db") }
func (c *Config) JournalDir() string { return filepath.Join(c.DataDir, "sessions") }
