package prompt

import (
	"bytes"
	"errors"
	"strings"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func confirmer(input string, interactive bool) (*Confirmer, *bytes.Buffer) {
	out := &bytes.Buffer{}
	return &Confirmer{
		In:            strings.NewReader(input),
		Out:           out,
		IsInteractive: func() bool { return interactive },
	}, out
}

func TestConfirmNonInteractive(t *testing.T) {
	c, _ := confirmer("y\n", false)
	ok, err := c.Confirm("Delete?", "--yes", false)
	assert.False(t, ok)
	assert.ErrorIs(t, err, ErrNotInteractive)
	assert.Contains(t, err.Error(), "--yes")
}

func TestConfirmAssumeYes(t *testing.T) {
	c, out := confirmer("n\n", false)
	ok, err := c.Confirm("Delete?", "--yes", true)
	require.NoError(t, err)
	assert.True(t, ok)
	assert.Empty(t, out.String())
}

func TestConfirmInteractive(t *testing.T) {
	for input, want := range map[string]bool{"y\n": true, "YES\n": true, "n\n": false, "\n": false} {
		c, out := confirmer(input, true)
		ok, err := c.Confirm("Delete?", "--yes", false)
		require.NoError(t, err, input)
		assert.Equal(t, want, ok, input)
		assert.Contains(t, out.String(), "Delete? (y/n)")
	}
}

func TestConfirmEOF(t *testing.T) {
	c, _ := confirmer("", true)
	_, err := c.Confirm("Delete?", "--yes", false)
	assert.Error(t, err)
}

func TestConfirmOverwrite(t *testing.T) {
	c, out := confirmer("y\n", true)
	ok, err := c.ConfirmOverwrite("out.json", false)
	require.NoError(t, err)
	assert.True(t, ok)
	assert.Contains(t, out.String(), "out.json already exists")
}

func TestAskThenSecret(t *testing.T) {
	c, _ := confirmer(" me@example.com \nhunter2\n", true)
	email, err := c.Ask("Email: ")
	require.NoError(t, err)
	assert.Equal(t, "me@example.com", email)

	pw, err := c.Secret("Password: ")
	require.NoError(t, err)
	assert.Equal(t, "hunter2", pw)
}

func TestSecretUsesPasswordReader(t *testing.T) {
	c, out := confirmer("", true)
	c.ReadPassword = func() ([]byte, error) { return []byte(" key \n"), nil }
	s, err := c.Secret("Auth key: ")
	require.NoError(t, err)
	assert.Equal(t, "key", s)
	assert.Equal(t, "Auth key: \n", out.String())

	c.ReadPassword = func() ([]byte, error) { return nil, errors.New("tty gone") }
	_, err = c.Secret("Auth key: ")
	assert.Error(t, err)
}

func TestSecretNonInteractive(t *testing.T) {
	c, _ := confirmer("x\n", false)
	_, err := c.Secret("Password: ")
	assert.ErrorIs(t, err, ErrNotInteractive)
}
