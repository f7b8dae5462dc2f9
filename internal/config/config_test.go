package config

import (
	"log/slog"
	"os"
	"path/filepath"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestLoad_CreatesDefaultOnFirstRun(t *testing.T) {
	path := filepath.Join(t.TempDir(), "nested", "config.yaml")

	cfg, err := Load(path)
	require.NoError(t, err)
	assert.Equal(t, DefaultConfig(), cfg)

	info, err := os.Stat(path)
	require.NoError(t, err)
	assert.Equal(t, os.FileMode(0o600), info.Mode().Perm())

	again, err := Load(path)
	require.NoError(t, err)
	assert.Equal(t, cfg, again)
}

func TestLoad_NormalizesPartialFile(t *testing.T) {
	path := filepath.Join(t.TempDir(), "config.yaml")
	body := "db_path: /srv/clc.db\nlog_level: LOUD\nagenda_weeks: -2\nexport:\n  cron: \" 0 6 * * 1-5 \"\n"
	require.NoError(t, os.WriteFile(path, []byte(body), 0o600))

	cfg, err := Load(path)
	require.NoError(t, err)
	assert.Equal(t, "/srv/clc.db", cfg.DBPath)
	assert.Equal(t, DefaultLogLevel, cfg.LogLevel)
	assert.Equal(t, DefaultAgendaWeeks, cfg.AgendaWeeks)
	assert.Equal(t, DefaultTimelinePadDays, cfg.TimelinePadDays)
	assert.Equal(t, "0 6 * * 1-5", cfg.Export.Cron)
	assert.Equal(t, DefaultExportWeeksAhead, cfg.Export.WeeksAhead)
}

func TestLoad_RejectsBadYAML(t *testing.T) {
	path := filepath.Join(t.TempDir(), "config.yaml")
	require.NoError(t, os.WriteFile(path, []byte("listen: [unclosed"), 0o600))

	_, err := Load(path)
	assert.Error(t, err)
}

func TestSave_RoundTripsAdminPassword(t *testing.T) {
	path := filepath.Join(t.TempDir(), "config.yaml")
	cfg := DefaultConfig()
	cfg.AdminPassword = "s3cret"
	require.NoError(t, cfg.Save(path))

	loaded, err := Load(path)
	require.NoError(t, err)
	assert.True(t, loaded.IsAdmin("s3cret"))
	assert.False(t, loaded.IsAdmin("guess"))
}

func TestIsAdmin_EmptyPasswordLocksDeletes(t *testing.T) {
	cfg := DefaultConfig()
	assert.False(t, cfg.IsAdmin(""))
}

func TestApplyEnv_Overrides(t *testing.T) {
	t.Setenv("CLCCAL_DB", "/tmp/override.db")
	t.Setenv("CLCCAL_LOG_LEVEL", "debug")
	t.Setenv("CLCCAL_LOG_USE_CASES", "true")
	t.Setenv("CLCCAL_TIMELINE_PAD_DAYS", "45")
	t.Setenv("CLCCAL_AGENDA_WEEKS", "not-a-number")
	t.Setenv("CLCCAL_EXPORT_CRON", "@hourly")
	t.Setenv("CLCCAL_EXPORT_WEEKS_BACK", "0")

	cfg := DefaultConfig()
	ApplyEnv(cfg)

	assert.Equal(t, "/tmp/override.db", cfg.DBPath)
	assert.Equal(t, slog.LevelDebug, cfg.SlogLevel())
	assert.True(t, cfg.LogUseCases)
	assert.Equal(t, 45, cfg.TimelinePadDays)
	assert.Equal(t, DefaultAgendaWeeks, cfg.AgendaWeeks)
	assert.Equal(t, "@hourly", cfg.Export.Cron)
	assert.Equal(t, 0, cfg.Export.WeeksBack)
}

func TestLoadDotEnv_DoesNotOverrideEnvironment(t *testing.T) {
	dir := t.TempDir()
	envFile := filepath.Join(dir, "test.env")
	require.NoError(t, os.WriteFile(envFile, []byte("CLCCAL_LISTEN=0.0.0.0:9999\nCLCCAL_LOG_LEVEL=error\n"), 0o600))
	t.Setenv("CLCCAL_LOG_LEVEL", "warn")
	t.Cleanup(func() { os.Unsetenv("CLCCAL_LISTEN") })

	require.NoError(t, LoadDotEnv(envFile))
	require.NoError(t, LoadDotEnv(filepath.Join(dir, "missing.env")))

	cfg := DefaultConfig()
	ApplyEnv(cfg)
	assert.Equal(t, "0.0.0.0:9999", cfg.Listen)
	assert.Equal(t, "warn", cfg.LogLevel)
}

func TestResolve_UsesConfigEnv(t *testing.T) {
	dir := t.TempDir()
	path := filepath.Join(dir, "clccal.yaml")
	require.NoError(t, os.WriteFile(path, []byte("db_path: "+filepath.Join(dir, "x.db")+"\n"), 0o600))
	t.Setenv("CLCCAL_CONFIG", path)

	cfg, err := Resolve("")
	require.NoError(t, err)
	assert.Equal(t, filepath.Join(dir, "x.db"), cfg.DBPath)
}
