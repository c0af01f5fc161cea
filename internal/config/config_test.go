package config

import (
	"os"
	"path/filepath"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/oukeidos/watchly-config/internal/catalog"
)

func isolate(t *testing.T) string {
	t.Helper()
	dir := t.TempDir()
	t.Setenv("HOME", dir)
	for _, k := range []string{"BACKEND_URL", "APP_URL", "LOG_LEVEL", "DEFAULT_LANGUAGE", "WATCHLY_BACKEND_URL", "WATCHLY_LOG_LEVEL"} {
		t.Setenv(k, "")
		os.Unsetenv(k)
	}
	wd, err := os.Getwd()
	require.NoError(t, err)
	require.NoError(t, os.Chdir(dir))
	t.Cleanup(func() { _ = os.Chdir(wd) })
	return dir
}

func TestLoad_WithDefaults(t *testing.T) {
	dir := isolate(t)

	cfg, err := Load(Options{})
	require.NoError(t, err)

	assert.Equal(t, "http://localhost:8000", cfg.Backend.URL)
	assert.Equal(t, 30*time.Second, cfg.Backend.Timeout)
	assert.Equal(t, "en-US", cfg.Wizard.DefaultLanguage)
	assert.Equal(t, SessionKeyring, cfg.Session.Backend)
	assert.Equal(t, filepath.Join(dir, ".watchly", "session.json"), cfg.Session.File)
	assert.Equal(t, 720*time.Hour, cfg.Session.TTL)
	assert.Equal(t, []string{catalog.IDTheme}, cfg.Catalogs.NonRenamable)

	roster, err := cfg.Roster()
	require.NoError(t, err)
	assert.Equal(t, catalog.DefaultRoster(), roster)
}

func TestLoad_ConfigFileAndEnv(t *testing.T) {
	dir := isolate(t)
	path := filepath.Join(dir, "watchly.yaml")
	require.NoError(t, os.WriteFile(path, []byte(`
backend:
  url: https://watchly.example.com/
  timeout: 5s
session:
  backend: file
catalogs:
  non_renamable: [watchly.rec]
  roster:
    - id: watchly.rec
      name: Picks
    - id: watchly.theme
      name: Themes
      mode: movie
      enabled: false
`), 0600))
	t.Setenv("WATCHLY_LOG_LEVEL", "debug")

	cfg, err := Load(Options{ConfigFile: path})
	require.NoError(t, err)

	assert.Equal(t, "https://watchly.example.com", cfg.Backend.URL)
	assert.Equal(t, 5*time.Second, cfg.Backend.Timeout)
	assert.Equal(t, SessionFile, cfg.Session.Backend)
	assert.Equal(t, "debug", cfg.Log.Level)

	p := cfg.Policy()
	assert.False(t, p.CanRename(catalog.IDTopPicks))
	assert.True(t, p.CanRename(catalog.IDTheme))

	roster, err := cfg.Roster()
	require.NoError(t, err)
	require.Len(t, roster, 2)
	assert.Equal(t, "Themes", roster[1].Name)
	assert.False(t, roster[1].Enabled)
	assert.Equal(t, catalog.ModeMovie, roster[1].Mode())
}

func TestLoad_AlternativeEnvNames(t *testing.T) {
	isolate(t)
	t.Setenv("BACKEND_URL", "https://alt.example.com")

	cfg, err := Load(Options{})
	require.NoError(t, err)
	assert.Equal(t, "https://alt.example.com", cfg.Backend.URL)
}

func TestLoad_EnvFile(t *testing.T) {
	dir := isolate(t)
	envPath := filepath.Join(dir, "custom.env")
	require.NoError(t, os.WriteFile(envPath, []byte("WATCHLY_WIZARD_DEFAULT_LANGUAGE=de-DE\n"), 0600))
	t.Cleanup(func() { os.Unsetenv("WATCHLY_WIZARD_DEFAULT_LANGUAGE") })

	cfg, err := Load(Options{EnvFile: envPath})
	require.NoError(t, err)
	assert.Equal(t, "de-DE", cfg.Wizard.DefaultLanguage)
}

func TestValidate(t *testing.T) {
	cases := []struct {
		name   string
		mutate func(*Config)
	}{
		{"bad scheme", func(c *Config) { c.Backend.URL = "ftp://host" }},
		{"no host", func(c *Config) { c.Backend.URL = "http://" }},
		{"zero timeout", func(c *Config) { c.Backend.Timeout = 0 }},
		{"unknown session backend", func(c *Config) { c.Session.Backend = "sqlite" }},
		{"file backend without path", func(c *Config) { c.Session.Backend = SessionFile; c.Session.File = " " }},
		{"negative ttl", func(c *Config) { c.Session.TTL = -time.Hour }},
		{"log level", func(c *Config) { c.Log.Level = "loud" }},
		{"log format", func(c *Config) { c.Log.Format = "xml" }},
		{"empty default language", func(c *Config) { c.Wizard.DefaultLanguage = "" }},
		{"malformed default language", func(c *Config) { c.Wizard.DefaultLanguage = "en US" }},
		{"duplicate roster ids", func(c *Config) {
			c.Catalogs.Roster = []catalog.RosterEntry{{ID: "a"}, {ID: "a"}}
		}},
	}
	for _, tc := range cases {
		t.Run(tc.name, func(t *testing.T) {
			cfg := Default()
			require.NoError(t, cfg.Validate())
			tc.mutate(cfg)
			assert.Error(t, cfg.Validate())
		})
	}
}
