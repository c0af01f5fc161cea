package main

import (
	"bytes"
	"io"
	"os"
	"strings"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"github.com/zalando/go-keyring"

	"github.com/oukeidos/watchly-config/internal/apitest"
	"github.com/oukeidos/watchly-config/internal/cleanup"
	"github.com/oukeidos/watchly-config/internal/prompt"
)

// cliFixture isolates config lookup, mocks the keychain and points every
// command at a fake backend.
type cliFixture struct {
	backend *apitest.Backend
	input   string
	tty     bool
}

func newFixture(t *testing.T) *cliFixture {
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
	for _, v := range []string{envAuthKey, envPassword, "BACKEND_URL", "APP_URL", "WATCHLY_SESSION_BACKEND"} {
		t.Setenv(v, "")
	}
	keyring.MockInit()

	f := &cliFixture{backend: apitest.New(t)}
	prev := newConfirmer
	newConfirmer = func() *prompt.Confirmer {
		return &prompt.Confirmer{
			In:            strings.NewReader(f.input),
			Out:           io.Discard,
			IsInteractive: func() bool { return f.tty },
		}
	}
	t.Cleanup(func() {
		newConfirmer = prev
		_ = cleanup.RunAll()
	})
	return f
}

func (f *cliFixture) run(t *testing.T, args ...string) (string, error) {
	t.Helper()
	return executeCommand(t, append(args, "--backend", f.backend.URL())...)
}

func (f *cliFixture) login(t *testing.T) {
	t.Helper()
	t.Setenv(envPassword, "x")
	_, err := f.run(t, "login", "--email", "a@b.com")
	require.NoError(t, err)
	t.Setenv(envPassword, "")
}

func executeCommand(t *testing.T, args ...string) (string, error) {
	t.Helper()
	cmd := newRootCmd()
	buf := &bytes.Buffer{}
	cmd.SetOut(buf)
	cmd.SetErr(buf)
	cmd.SetArgs(args)
	err := cmd.Execute()
	return buf.String(), err
}

func TestAbout(t *testing.T) {
	out, err := executeCommand(t, "about")
	require.NoError(t, err)
	assert.Contains(t, out, "Watchly")

	out, err = executeCommand(t, "about", "--notices")
	require.NoError(t, err)
	assert.Contains(t, out, "github.com/spf13/cobra")

	_, err = executeCommand(t, "about", "--license", "--notices")
	assert.Error(t, err)
}

func TestVersionFlag(t *testing.T) {
	out, err := executeCommand(t, "--version")
	require.NoError(t, err)
	assert.True(t, strings.HasPrefix(out, "watchly "))
}

func TestUnknownCommand(t *testing.T) {
	_, err := executeCommand(t, "translate")
	assert.Error(t, err)
}

func TestGenres(t *testing.T) {
	out, err := executeCommand(t, "genres", "series")
	require.NoError(t, err)
	assert.Contains(t, out, "series genres:")
	assert.Contains(t, out, "10762")
	assert.Contains(t, out, "Kids")
	assert.NotContains(t, out, "movie genres:")

	_, err = executeCommand(t, "genres", "anime")
	assert.Error(t, err)
}

func TestLanguages(t *testing.T) {
	f := newFixture(t)
	out, err := f.run(t, "languages")
	require.NoError(t, err)
	lines := strings.Split(strings.TrimSpace(out), "\n")
	require.Len(t, lines, 3)
	assert.Contains(t, lines[0], "English", "default language first")
	assert.Contains(t, out, "German (Deutsch)")
}

func TestAnnouncement(t *testing.T) {
	f := newFixture(t)
	out, err := f.run(t, "announcement")
	require.NoError(t, err)
	assert.Contains(t, out, "No announcement.")

	f.backend.Announcement = func(map[string]any) apitest.Reply {
		return apitest.Reply{ContentType: "text/html", Body: "<p>Maintenance <b>tonight</b></p>"}
	}
	out, err = f.run(t, "announcement")
	require.NoError(t, err)
	assert.Contains(t, out, "Maintenance tonight")
}

func TestBadBackendFlag(t *testing.T) {
	newFixture(t)
	_, err := executeCommand(t, "catalogs", "--backend", "not a url")
	assert.Error(t, err)
}
