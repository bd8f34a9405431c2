// Package config handles configuration loading from files, defaults, and environment variables.
package config

import (
	"errors"
	"fmt"
	"os"
	"path/filepath"
	"strconv"
	"strings"
	"time"

	"github.com/pelletier/go-toml/v2"

	"github.com/javiermolinar/rocinante/internal/dateutil"
)

// Config holds the application configuration.
type Config struct {
	Trip    TripConfig    `toml:"trip"`
	Storage StorageConfig `toml:"storage"`
	UI      UIConfig      `toml:"ui"`
}

// TripConfig holds the trip and timeline settings.
type TripConfig struct {
	Name        string `toml:"name"`         // e.g., "Andalucía"
	StartDate   string `toml:"start_date"`   // YYYY-MM-DD, first day of the trip
	Days        int    `toml:"days"`         // number of day columns
	DayStart    string `toml:"day_start"`    // e.g., "07:00"
	DayEnd      string `toml:"day_end"`      // e.g., "23:00"
	SnapMinutes int    `toml:"snap_minutes"` // 10 or 15
}

// Date returns the calendar date of a trip day, ok=false when no
// start date is configured.
func (t TripConfig) Date(day int) (time.Time, bool) {
	if t.StartDate == "" {
		return time.Time{}, false
	}
	start, err := dateutil.ParseDate(t.StartDate)
	if err != nil {
		return time.Time{}, false
	}
	return dateutil.TripDay(start, day), true
}

// StorageConfig holds database settings.
type StorageConfig struct {
	DBPath string `toml:"db_path"`
}

// UIConfig holds TUI settings.
type UIConfig struct {
	Theme string `toml:"theme"` // "mocha", "macchiato", "frappe", "latte"
}

// Default returns the default configuration.
func Default() *Config {
	return &Config{
		Trip: TripConfig{
			Name:        "My trip",
			StartDate:   "",
			Days:        5,
			DayStart:    "07:00",
			DayEnd:      "23:00",
			SnapMinutes: 15,
		},
		Storage: StorageConfig{
			DBPath: defaultDBPath(),
		},
		UI: UIConfig{
			Theme: "frappe",
		},
	}
}

// defaultDBPath returns the default database path.
func defaultDBPath() string {
	home, err := os.UserHomeDir()
	if err != nil {
		return "rocinante.db"
	}
	return filepath.Join(home, ".local", "share", "rocinante", "rocinante.db")
}

// DefaultConfigPath returns the default config file path.
func DefaultConfigPath() string {
	home, err := os.UserHomeDir()
	if err != nil {
		return "config.toml"
	}
	return filepath.Join(home, ".config", "rocinante", "config.toml")
}

// Load loads configuration from the default path, merging with defaults and env vars.
func Load() (*Config, error) {
	return LoadFrom(DefaultConfigPath())
}

// LoadFrom loads configuration from the specified path.
// It starts with defaults, overlays file config if it exists, then applies env overrides.
func LoadFrom(path string) (*Config, error) {
	cfg := Default()

	// Try to load from file (not an error if it doesn't exist)
	if err := loadFromFile(path, cfg); err != nil {
		return nil, err
	}

	// Apply environment variable overrides
	applyEnvOverrides(cfg)

	// Expand paths
	cfg.Storage.DBPath = expandPath(cfg.Storage.DBPath)

	// Validate
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
	// Trip overrides
	if v := os.Getenv("ROCINANTE_TRIP_NAME"); v != "" {
		cfg.Trip.Name = v
	}
	if v := os.Getenv("ROCINANTE_TRIP_START_DATE"); v != "" {
		cfg.Trip.StartDate = v
	}
	if v := os.Getenv("ROCINANTE_TRIP_DAYS"); v != "" {
		if n, err := strconv.Atoi(v); err == nil {
			cfg.Trip.Days = n
		}
	}
	if v := os.Getenv("ROCINANTE_DAY_START"); v != "" {
		cfg.Trip.DayStart = v
	}
	if v := os.Getenv("ROCINANTE_DAY_END"); v != "" {
		cfg.Trip.DayEnd = v
	}
	if v := os.Getenv("ROCINANTE_SNAP_MINUTES"); v != "" {
		if n, err := strconv.Atoi(v); err == nil {
			cfg.Trip.SnapMinutes = n
		}
	}

	// Storage overrides
	if v := os.Getenv("ROCINANTE_DB_PATH"); v != "" {
		cfg.Storage.DBPath = v
	}

	// UI overrides
	if v := os.Getenv("ROCINANTE_UI_THEME"); v != "" {
		cfg.UI.Theme = v
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
	if err := validateTime(c.Trip.DayStart, "day_start"); err != nil {
		return err
	}
	if err := validateTime(c.Trip.DayEnd, "day_end"); err != nil {
		return err
	}
	if c.Trip.DayStart >= c.Trip.DayEnd {
		return errors.New("day_start must be before day_end")
	}
	if c.Trip.Days <= 0 {
		return errors.New("trip must have at least one day")
	}
	if c.Trip.SnapMinutes <= 0 || 60%c.Trip.SnapMinutes != 0 {
		return fmt.Errorf("snap_minutes must divide 60, got %d", c.Trip.SnapMinutes)
	}
	if c.Trip.StartDate != "" {
		if err := validateDate(c.Trip.StartDate); err != nil {
			return err
		}
	}
	if c.Storage.DBPath == "" {
		return errors.New("db_path must be set")
	}
	return nil
}

// validateTime checks if a time string is in HH:MM format.
func validateTime(t, field string) error {
	if len(t) != 5 || t[2] != ':' {
		return fmt.Errorf("%s must be in HH:MM format, got %q", field, t)
	}
	hour := t[0:2]
	min := t[3:5]
	if !isDigits(hour) || !isDigits(min) {
		return fmt.Errorf("%s must be in HH:MM format, got %q", field, t)
	}
	return nil
}

// validateDate checks if a date string is in YYYY-MM-DD format.
func validateDate(d string) error {
	if _, err := dateutil.ParseDate(d); err != nil {
		return fmt.Errorf("start_date must be in YYYY-MM-DD format, got %q", d)
	}
	return nil
}

func isDigits(s string) bool {
	for _, c := range s {
		if c < '0' || c > '9' {
			return false
		}
	}
	return true
}

// Save writes the configuration to the default path.
func (c *Config) Save() error {
	return c.SaveTo(DefaultConfigPath())
}

// SaveTo writes the configuration to the specified path.
func (c *Config) SaveTo(path string) error {
	// Ensure directory exists
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
