package setup

import (
	"os"
	"path/filepath"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/oukeidos/watchly-config/internal/cleanup"
	"github.com/oukeidos/watchly-config/internal/config"
	"github.com/oukeidos/watchly-config/internal/files"
	"github.com/oukeidos/watchly-config/internal/session"
)

func isolate(t *testing.T) string {
	t.Helper()
	dir := t.TempDir()
	t.Setenv("HOME", dir)
	wd, err := os.Getwd()
	if err != nil {
		t.Fatal(err)
	}
	if err := os.Chdir(dir); err != nil {
		t.Fatal(err)
	}
	t.Cleanup(func() { _ = os.Chdir(wd) })
	return dir
}

func TestLoadOverrides(t *testing.T) {
	dir := isolate(t)
	logPath := filepath.Join(dir, "logs", "watchly.jsonl")
	t.Setenv("WATCHLY_SESSION_BACKEND", "file")

	env, err := Load(Overrides{
		BackendURL: "https://watchly.example.com/",
		LogLevel:   "debug",
		LogFile:    logPath,
	})
	require.NoError(t, err)
	t.Cleanup(func() { _ = cleanup.RunAll() })

	assert.Equal(t, "https://watchly.example.com", env.Config.Backend.URL)
	assert.Equal(t, "https://watchly.example.com", env.Client.BaseURL())
	assert.Equal(t, "debug", env.Config.Log.Level)
	assert.FileExists(t, logPath)
	assert.Len(t, env.Roster, 5)
	assert.False(t, env.Policy.CanRename("watchly.theme"))

	app, err := env.Wizard(nil)
	require.NoError(t, err)
	assert.Len(t, app.Catalogs(), 5)
}

func TestLoadRejectsBadOverride(t *testing.T) {
	isolate(t)
	_, err := Load(Overrides{BackendURL: "ftp://nope"})
	assert.Error(t, err)
	_, err = Load(Overrides{LogLevel: "loud"})
	assert.Error(t, err)
}

func TestStoreSelection(t *testing.T) {
	cfg := config.Default()
	_, ok := Store(cfg).(*session.KeyringStore)
	assert.True(t, ok)

	cfg.Session.Backend = config.SessionFile
	cfg.Session.File = filepath.Join(t.TempDir(), "s.json")
	fs, ok := Store(cfg).(*session.FileStore)
	require.True(t, ok)
	assert.Equal(t, cfg.Session.File, fs.Path)
}

func TestLogFileRejectsSymlink(t *testing.T) {
	dir := t.TempDir()
	target := filepath.Join(dir, "real.log")
	require.NoError(t, os.WriteFile(target, nil, 0600))
	link := filepath.Join(dir, "link.log")
	if err := os.Symlink(target, link); err != nil {
		t.Skip("symlinks unavailable")
	}
	_, err := openLogFile(link)
	assert.ErrorIs(t, err, files.ErrLinkedPath)
}
