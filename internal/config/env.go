package config

import (
	"errors"
	"io/fs"
	"os"
	"strconv"

	"github.com/joho/godotenv"
)

// EnvPrefix prefixes every environment override.
const EnvPrefix = "CLCCAL_"

// LoadDotEnv loads variables from the given .env files (./.env when none
// are named) without overriding variables already set. Missing files are
// not an error.
func LoadDotEnv(files ...string) error {
	if len(files) == 0 {
		files = []string{".env"}
	}
	for _, f := range files {
		if err := godotenv.Load(f); err != nil && !errors.Is(err, fs.ErrNotExist) {
			return err
		}
	}
	return nil
}

// ApplyEnv overrides cfg from CLCCAL_* variables. Unparseable values are
// ignored and the file value kept.
func ApplyEnv(cfg *Config) {
	if v := os.Getenv(EnvPrefix + "DB"); v != "" {
		cfg.DBPath = v
	}
	if v := os.Getenv(EnvPrefix + "LISTEN"); v != "" {
		cfg.Listen = v
	}
	if v := os.Getenv(EnvPrefix + "LOG_LEVEL"); v != "" {
		cfg.LogLevel = v
	}
	if v := os.Getenv(EnvPrefix + "LOG_USE_CASES"); v != "" {
		if b, err := strconv.ParseBool(v); err == nil {
			cfg.LogUseCases = b
		}
	}
	if v, ok := os.LookupEnv(EnvPrefix + "ADMIN_PASSWORD"); ok {
		cfg.AdminPassword = v
	}
	applyIntEnv(&cfg.TimelinePadDays, EnvPrefix+"TIMELINE_PAD_DAYS", 1)
	applyIntEnv(&cfg.AgendaWeeks, EnvPrefix+"AGENDA_WEEKS", 1)
	if v := os.Getenv(EnvPrefix + "EXPORT_PATH"); v != "" {
		cfg.Export.Path = v
	}
	if v, ok := os.LookupEnv(EnvPrefix + "EXPORT_CRON"); ok {
		cfg.Export.Cron = v
	}
	applyIntEnv(&cfg.Export.WeeksBack, EnvPrefix+"EXPORT_WEEKS_BACK", 0)
	applyIntEnv(&cfg.Export.WeeksAhead, EnvPrefix+"EXPORT_WEEKS_AHEAD", 1)
	cfg.Normalize()
}

func applyIntEnv(dst *int, envName string, min int) {
	v := os.Getenv(envName)
	if v == "" {
		return
	}
	n, err := strconv.Atoi(v)
	if err != nil || n < min {
		return
	}
	*dst = n
}

// Resolve is the full startup sequence: .env files, the YAML file at path
// (created on first run), then environment overrides. An empty path uses
// CLCCAL_CONFIG or DefaultPath.
func Resolve(path string) (*Config, error) {
	if err := LoadDotEnv(); err != nil {
		return nil, err
	}
	if path == "" {
		path = os.Getenv(EnvPrefix + "CONFIG")
	}
	if path == "" {
		p, err := DefaultPath()
		if err != nil {
			return nil, err
		}
		path = p
	}
	cfg, err := Load(path)
	if err != nil {
		return nil, err
	}
	ApplyEnv(cfg)
	if err := cfg.ResolveDBPath(); err != nil {
		return nil, err
	}
	return cfg, nil
}
