package config

import (
	"errors"
	"fmt"
	"io/fs"
	"log/slog"
	"os"
	"path/filepath"
	"strings"

	"gopkg.in/yaml.v3"
)

const (
	DefaultListen           = "127.0.0.1:8080"
	DefaultLogLevel         = "info"
	DefaultTimelinePadDays  = 120
	DefaultAgendaWeeks      = 8
	DefaultExportWeeksBack  = 4
	DefaultExportWeeksAhead = 26
)

// ExportConfig controls the scheduled ICS export run by `clccal serve`.
// An empty Cron disables the schedule.
type ExportConfig struct {
	Path       string `yaml:"path" json:"path"`
	Cron       string `yaml:"cron" json:"cron"`
	WeeksBack  int    `yaml:"weeks_back" json:"weeks_back"`
	WeeksAhead int    `yaml:"weeks_ahead" json:"weeks_ahead"`
}

// Config is the top-level application configuration.
type Config struct {
	// DBPath is the SQLite record store. Empty means ~/.clccal/clccal.db.
	DBPath string `yaml:"db_path" json:"db_path"`

	// Listen is the HTTP listen address for `clccal serve`.
	Listen string `yaml:"listen" json:"listen"`

	// LogLevel is one of debug, info, warn, error.
	LogLevel string `yaml:"log_level" json:"log_level"`

	// LogUseCases writes one structured line per view build or write.
	LogUseCases bool `yaml:"log_use_cases" json:"log_use_cases"`

	// AdminPassword unlocks deletes. Empty disables admin access entirely.
	AdminPassword string `yaml:"admin_password,omitempty" json:"-"`

	// TimelinePadDays is how far before the timeline window placements are
	// looked up.
	TimelinePadDays int `yaml:"timeline_pad_days" json:"timeline_pad_days"`

	// AgendaWeeks is the default agenda length.
	AgendaWeeks int `yaml:"agenda_weeks" json:"agenda_weeks"`

	Export ExportConfig `yaml:"export" json:"export"`
}

// DefaultConfig returns an in-memory default configuration.
func DefaultConfig() *Config {
	return &Config{
		Listen:          DefaultListen,
		LogLevel:        DefaultLogLevel,
		TimelinePadDays: DefaultTimelinePadDays,
		AgendaWeeks:     DefaultAgendaWeeks,
		Export: ExportConfig{
			WeeksBack:  DefaultExportWeeksBack,
			WeeksAhead: DefaultExportWeeksAhead,
		},
	}
}

// Normalize fills in missing or out-of-range values with defaults so that
// partially-filled files still behave.
func (c *Config) Normalize() {
	if c.Listen == "" {
		c.Listen = DefaultListen
	}
	c.LogLevel = strings.ToLower(strings.TrimSpace(c.LogLevel))
	switch c.LogLevel {
	case "debug", "info", "warn", "error":
	default:
		c.LogLevel = DefaultLogLevel
	}
	if c.TimelinePadDays <= 0 {
		c.TimelinePadDays = DefaultTimelinePadDays
	}
	if c.AgendaWeeks <= 0 {
		c.AgendaWeeks = DefaultAgendaWeeks
	}
	if c.Export.WeeksBack < 0 {
		c.Export.WeeksBack = DefaultExportWeeksBack
	}
	if c.Export.WeeksAhead <= 0 {
		c.Export.WeeksAhead = DefaultExportWeeksAhead
	}
	c.Export.Cron = strings.TrimSpace(c.Export.Cron)
}

// SlogLevel maps LogLevel onto a slog level.
func (c *Config) SlogLevel() slog.Level {
	switch c.LogLevel {
	case "debug":
		return slog.LevelDebug
	case "warn":
		return slog.LevelWarn
	case "error":
		return slog.LevelError
	default:
		return slog.LevelInfo
	}
}

// IsAdmin reports whether password unlocks admin actions.
func (c *Config) IsAdmin(password string) bool {
	return c.AdminPassword != "" && password == c.AdminPassword
}

// Home returns ~/.clccal.
func Home() (string, error) {
	home, err := os.UserHomeDir()
	if err != nil {
		return "", fmt.Errorf("finding home directory: %w", err)
	}
	return filepath.Join(home, ".clccal"), nil
}

// DefaultPath is the config file used when none is given.
func DefaultPath() (string, error) {
	dir, err := Home()
	if err != nil {
		return "", err
	}
	return filepath.Join(dir, "config.yaml"), nil
}

// ResolveDBPath fills DBPath from the home directory when unset.
func (c *Config) ResolveDBPath() error {
	if c.DBPath != "" {
		return nil
	}
	dir, err := Home()
	if err != nil {
		return err
	}
	c.DBPath = filepath.Join(dir, "clccal.db")
	return nil
}

// Load loads configuration from the given YAML path.
//
// A missing file is created with defaults (mode 0600) and the defaults
// are returned. An existing file is read and normalized.
func Load(path string) (*Config, error) {
	if path == "" {
		return nil, errors.New("config path is empty")
	}

	data, err := os.ReadFile(path)
	if err != nil {
		if errors.Is(err, fs.ErrNotExist) {
			cfg := DefaultConfig()
			if err := Save(path, cfg); err != nil {
				return cfg, err
			}
			return cfg, nil
		}
		return nil, err
	}

	cfg := DefaultConfig()
	if err := yaml.Unmarshal(data, cfg); err != nil {
		return nil, fmt.Errorf("parsing %s: %w", path, err)
	}
	cfg.Normalize()

	return cfg, nil
}

// Save writes cfg to path atomically via a temp file and rename. The parent
// directory is created 0700 and the file ends up 0600.
func Save(path string, cfg *Config) error {
	if path == "" {
		return errors.New("config path is empty")
	}
	if cfg == nil {
		return errors.New("config is nil")
	}

	cfg.Normalize()

	dir := filepath.Dir(path)
	if err := os.MkdirAll(dir, 0o700); err != nil {
		return err
	}

	data, err := yaml.Marshal(cfg)
	if err != nil {
		return err
	}

	tmp, err := os.CreateTemp(dir, ".clccal-config-*.tmp")
	if err != nil {
		return err
	}
	tmpName := tmp.Name()
	defer os.Remove(tmpName)

	if _, err := tmp.Write(data); err != nil {
		tmp.Close()
		return err
	}
	if err := tmp.Sync(); err != nil {
		tmp.Close()
		return err
	}
	if err := tmp.Close(); err != nil {
		return err
	}
	if err := os.Chmod(tmpName, 0o600); err != nil {
		return err
	}
	return os.Rename(tmpName, path)
}

// Save delegates to the package-level Save.
func (c *Config) Save(path string) error {
	return Save(path, c)
}
