package app

import (
	"os"
	"path/filepath"
	"testing"
	"time"

	"github.com/stretchr/testify/require"
)

func TestLoadConfig_Defaults(t *testing.T) {
	cfg, err := LoadConfig(t.TempDir())
	require.NoError(t, err)

	require.Equal(t, 8000, cfg.Server.Port)
	require.Equal(t, "info", cfg.Server.LogLevel)
	require.Equal(t, "sqlite", cfg.Database.Driver)
	require.Equal(t, "@every 1m", cfg.Email.DispatchSchedule)
	require.Equal(t, "Medien", cfg.Media.MainFolderName)
	require.Equal(t, 10*time.Second, cfg.Email.SMTP.Timeout)
	require.InDelta(t, 3.0, cfg.Reporting.OutletFactors["print"], 0.001)
	require.InDelta(t, 0.6, cfg.Reporting.SentimentMultipliers["negative"], 0.001)
}

func TestLoadConfig_ReadsYAMLFile(t *testing.T) {
	dir := t.TempDir()
	contents := []byte(`
server:
  port: 9100
  log_level: debug
database:
  driver: postgres
  postgres:
    host: db.internal
    port: 5433
    database: pressdeck
    username: press
    password: secret
email:
  dispatch_schedule: "@every 30s"
`)
	require.NoError(t, os.WriteFile(filepath.Join(dir, "config.yaml"), contents, 0o600))

	cfg, err := LoadConfig(dir)
	require.NoError(t, err)
	require.Equal(t, 9100, cfg.Server.Port)
	require.Equal(t, "debug", cfg.Server.LogLevel)
	require.Equal(t, "@every 30s", cfg.Email.DispatchSchedule)

	dbCfg := cfg.DatabaseConfig()
	require.Equal(t, "postgres", dbCfg.Driver)
	require.Equal(t, "db.internal", dbCfg.Host)
	require.Equal(t, 5433, dbCfg.Port)
	require.Equal(t, "press", dbCfg.User)
}

func TestDatabaseConfig_DefaultsToSQLite(t *testing.T) {
	cfg := &Config{}
	dbCfg := cfg.DatabaseConfig()
	require.Equal(t, "sqlite", dbCfg.Driver)
}

func TestSMTPSettings_TrimsAddresses(t *testing.T) {
	cfg := &Config{}
	cfg.Email.SMTP.Enabled = true
	cfg.Email.SMTP.Host = " mail.example.com "
	cfg.Email.SMTP.From = " noreply@example.com "

	settings := cfg.SMTPSettings()
	require.Equal(t, "mail.example.com", settings.Host)
	require.Equal(t, "noreply@example.com", settings.From)
}
