package main

import (
	"net/http"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestLoginWithPasswordFromEnv(t *testing.T) {
	f := newFixture(t)
	t.Setenv(envPassword, "x")

	out, err := f.run(t, "login", "--email", "a@b.com")
	require.NoError(t, err)
	assert.Contains(t, out, "Signed in as a@b.com.")
	assert.Contains(t, out, "No settings yet")

	out, err = f.run(t, "status")
	require.NoError(t, err)
	assert.Contains(t, out, "Login: account a@b.com")
	assert.Contains(t, out, "Expires: ")
}

func TestLoginPromptsWhenInteractive(t *testing.T) {
	f := newFixture(t)
	f.tty = true
	f.input = "a@b.com\nsecret\n"

	_, err := f.run(t, "login")
	require.NoError(t, err)
	body := f.backend.RequestsTo(http.MethodPost, "/tokens/stremio-identity")[0].Body
	assert.Equal(t, "a@b.com", body["email"])
	assert.Equal(t, "secret", body["password"])
}

func TestLoginNonInteractiveNeedsSecret(t *testing.T) {
	f := newFixture(t)
	_, err := f.run(t, "login", "--email", "a@b.com")
	require.Error(t, err)
	assert.Contains(t, err.Error(), envPassword)
	assert.Empty(t, f.backend.Requests())
}

func TestLoginWithAuthKeyFromEnv(t *testing.T) {
	f := newFixture(t)
	t.Setenv(envAuthKey, `"ABC123"`)

	out, err := f.run(t, "login")
	require.NoError(t, err)
	assert.Contains(t, out, "Signed in as")
	body := f.backend.RequestsTo(http.MethodPost, "/tokens/stremio-identity")[0].Body
	assert.Equal(t, map[string]any{"authKey": "ABC123"}, body)

	out, err = f.run(t, "status")
	require.NoError(t, err)
	assert.Contains(t, out, "auth key ABC123")
}

func TestLoginRejected(t *testing.T) {
	f := newFixture(t)
	t.Setenv(envPassword, "wrong")

	_, err := f.run(t, "login", "--email", "a@b.com")
	require.Error(t, err)
	assert.Contains(t, err.Error(), "Failed to verify Stremio identity.")

	out, err := f.run(t, "status")
	require.NoError(t, err)
	assert.Contains(t, out, "not signed in")
}

func TestLoginInvalidEmail(t *testing.T) {
	f := newFixture(t)
	t.Setenv(envPassword, "x")
	_, err := f.run(t, "login", "--email", "nope")
	require.Error(t, err)
	assert.Contains(t, err.Error(), "valid email")
	assert.Empty(t, f.backend.Requests())
}

func TestLoginFromLaunchURL(t *testing.T) {
	f := newFixture(t)
	out, err := f.run(t, "login", "--launch-url", "watchly://configure?key=ABC123")
	require.NoError(t, err)
	assert.Contains(t, out, "Signed in as")

	_, err = f.run(t, "login", "--launch-url", "watchly://configure?key=bad1")
	require.Error(t, err)
	assert.Contains(t, err.Error(), "Invalid Stremio auth key.")

	_, err = f.run(t, "login", "--launch-url", "watchly://configure")
	assert.Error(t, err)
}

func TestLogout(t *testing.T) {
	f := newFixture(t)
	f.login(t)

	out, err := f.run(t, "logout")
	require.NoError(t, err)
	assert.Contains(t, out, "Signed out.")

	out, err = f.run(t, "status")
	require.NoError(t, err)
	assert.Contains(t, out, "not signed in")
}

func TestStatusVerify(t *testing.T) {
	f := newFixture(t)
	f.login(t)

	out, err := f.run(t, "status", "--verify")
	require.NoError(t, err)
	assert.Contains(t, out, "Verified: yes (no settings yet)")
}
