// Package config handles configuration loading from files, defaults, and environment variables.
package config

import (
	"errors"
	"fmt"
	"os"
	"path/filepath"
	"strconv"
	"strings"

	"github.com/pelletier/go-toml/v2"

	"github.com/ritmoapp/ritmo/internal/slot"
)

// Config holds the application configuration.
type Config struct {
	Schedule ScheduleConfig `toml:"schedule"`
	Storage  StorageConfig  `toml:"storage"`
	Profile  ProfileConfig  `toml:"profile"`
}

// ScheduleConfig holds the slot grid settings.
type ScheduleConfig struct {
	DayStart    string `toml:"day_start"`    // first schedulable slot, e.g. "06:00"
	DayEnd      string `toml:"day_end"`      // last schedulable slot, e.g. "23:45"
	SlotMinutes int    `toml:"slot_minutes"` // slot width
}

// StorageConfig holds database settings.
type StorageConfig struct {
	DBPath string `toml:"db_path"`
}

// ProfileConfig identifies the acting user for the session bootstrap.
type ProfileConfig struct {
	ID    string `toml:"id"`
	Email string `toml:"email"`
	Name  string `toml:"name"`
}

// Default returns the default configuration.
func Default() *Config {
	return &Config{
		Schedule: ScheduleConfig{
			DayStart:    "06:00",
			DayEnd:      "23:45",
			SlotMinutes: 15,
		},
		Storage: StorageConfig{
			DBPath: defaultDBPath(),
		},
	}
}

// defaultDBPath returns the default database path.
func defaultDBPath() string {
	home, err := os.UserHomeDir()
	if err != nil {
		return "ritmo.db"
	}
	return filepath.Join(home, ".local", "share", "ritmo", "ritmo.db")
}

// DefaultConfigPath returns the default config file path.
func DefaultConfigPath() string {
	home, err := os.UserHomeDir()
	if err != nil {
		return "config.toml"
	}
	return filepath.Join(home, ".config", "ritmo", "config.toml")
}

// Load loads configuration from the default path, merging with defaults and env vars.
func Load() (*Config, error) {
	return LoadFrom(DefaultConfigPath())
}

// LoadFrom loads configuration from the specified path.
// It starts with defaults, overlays file config if it exists, then applies env overrides.
func LoadFrom(path string) (*Config, error) {
	cfg := Default()

	if err := loadFromFile(path, cfg); err != nil {
		return nil, err
	}

	applyEnvOverrides(cfg)

	cfg.Storage.DBPath = expandPath(cfg.Storage.DBPath)

	if err := cfg.Validate(); err != nil {
		return nil, fmt.Errorf("invalid config: %w", err)
	}

	return cfg, nil
}

// loadFromFile loads config from a file if it exists.
func loadFromFile(path string, cfg *Config) error {
	data, err := os.ReadFile(path)
	if err != nil {
		if os.IsNotExist(err) {
			return nil // File doesn't exist, use defaults
		}
		return fmt.Errorf("reading config file: %w", err)
	}

	if err := toml.Unmarshal(data, cfg); err != nil {
		return fmt.Errorf("parsing config file: %w", err)
	}

	return nil
}

// applyEnvOverrides applies environment variable overrides to the config.
// Environment variables take precedence over file config.
func applyEnvOverrides(cfg *Config) {
	if v := os.Getenv("RITMO_DAY_START"); v != "" {
		cfg.Schedule.DayStart = v
	}
	if v := os.Getenv("RITMO_DAY_END"); v != "" {
		cfg.Schedule.DayEnd = v
	}
	if v := os.Getenv("RITMO_SLOT_MINUTES"); v != "" {
		if n, err := strconv.Atoi(v); err == nil {
			cfg.Schedule.SlotMinutes = n
		}
	}
	if v := os.Getenv("RITMO_DB_PATH"); v != "" {
		cfg.Storage.DBPath = v
	}
	if v := os.Getenv("RITMO_PROFILE_ID"); v != "" {
		cfg.Profile.ID = v
	}
	if v := os.Getenv("RITMO_PROFILE_EMAIL"); v != "" {
		cfg.Profile.Email = v
	}
	if v := os.Getenv("RITMO_PROFILE_NAME"); v != "" {
		cfg.Profile.Name = v
	}
}

// expandPath expands ~ to the user's home directory.
func expandPath(path string) string {
	if strings.HasPrefix(path, "~/") {
		home, err := os.UserHomeDir()
		if err != nil {
			return path
		}
		return filepath.Join(home, path[2:])
	}
	return path
}

// Validate checks if the configuration is valid.
func (c *Config) Validate() error {
	// NewGrid covers time formats, ordering and slot divisibility.
	if _, err := c.Grid(); err != nil {
		return err
	}
	if c.Storage.DBPath == "" {
		return errors.New("db_path must be set")
	}
	return nil
}

// Grid builds the slot grid described by the schedule settings.
func (c *Config) Grid() (*slot.Grid, error) {
	return slot.NewGrid(c.Schedule.DayStart, c.Schedule.DayEnd, c.Schedule.SlotMinutes)
}

// Save writes the configuration to the default path.
func (c *Config) Save() error {
	return c.SaveTo(DefaultConfigPath())
}

// SaveTo writes the configuration to the specified path.
func (c *Config) SaveTo(path string) error {
	dir := filepath.Dir(path)
	if err := os.MkdirAll(dir, 0o755); err != nil {
		return fmt.Errorf("creating config directory: %w", err)
	}

	data, err := toml.Marshal(c)
	if err != nil {
		return fmt.Errorf("marshaling config: %w", err)
	}

	if err := os.WriteFile(path, data, 0o644); err != nil {
		return fmt.Errorf("writing config file: %w", err)
	}

	return nil
}
