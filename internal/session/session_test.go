package session

import (
	"os"
	"path/filepath"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"github.com/zalando/go-keyring"
)

func fixedClock(t time.Time) func() time.Time {
	return func() time.Time { return t }
}

func TestNormalizeAuthKey(t *testing.T) {
	cases := map[string]string{
		`abc`:       "abc",
		`  abc  `:   "abc",
		`"abc"`:     "abc",
		` " abc " `: "abc",
		`"`:         `"`,
		`"abc`:      `"abc`,
		`""`:        "",
		`"a"b"`:     `a"b`,
	}
	for in, want := range cases {
		assert.Equal(t, want, NormalizeAuthKey(in), "input %q", in)
	}
}

func TestCredentialKind(t *testing.T) {
	assert.Equal(t, KindAuthKey, FromAuthKey("k").Kind())
	assert.Equal(t, KindPassword, FromPassword(" a@b.com ", "x").Kind())
	assert.Equal(t, KindNone, FromPassword("a@b.com", "").Kind())
	assert.Equal(t, KindNone, Credential{}.Kind())

	both := Credential{AuthKey: "k", Email: "a@b.com", Password: "x"}
	assert.Equal(t, Credential{AuthKey: "k"}, both.Exclusive())
}

func TestManagerWithKeyring(t *testing.T) {
	keyring.MockInit()
	now := time.Date(2026, 3, 1, 12, 0, 0, 0, time.UTC)
	m := NewManager(NewKeyringStore(), 0)
	m.SetClock(fixedClock(now))

	_, ok := m.Recall()
	assert.False(t, ok)

	require.NoError(t, m.Remember(Credential{AuthKey: "abcdef123", Email: "a@b.com", Password: "x"}))

	c, ok := m.Recall()
	require.True(t, ok)
	assert.Equal(t, "abcdef123", c.AuthKey)
	assert.Empty(t, c.Email, "inactive identity form is not stored")
	assert.Equal(t, now.Add(DefaultTTL).UnixMilli(), c.ExpiresAt)

	m.SetClock(fixedClock(now.Add(DefaultTTL)))
	_, ok = m.Recall()
	assert.False(t, ok, "expired at the boundary")

	_, err := m.Peek()
	assert.ErrorIs(t, err, ErrNoCredential, "expired entry is cleared")
}

func TestManagerRejectsEmptyCredential(t *testing.T) {
	keyring.MockInit()
	m := NewManager(NewKeyringStore(), time.Hour)
	assert.Error(t, m.Remember(Credential{Email: "a@b.com"}))
}

func TestManagerForgetIsIdempotent(t *testing.T) {
	keyring.MockInit()
	m := NewManager(NewKeyringStore(), time.Hour)
	require.NoError(t, m.Forget())
	require.NoError(t, m.Remember(FromPassword("a@b.com", "pw")))
	require.NoError(t, m.Forget())
	_, ok := m.Recall()
	assert.False(t, ok)
}

func TestFileStore(t *testing.T) {
	path := filepath.Join(t.TempDir(), "nested", "session.json")
	m := NewManager(&FileStore{Path: path}, time.Hour)

	require.NoError(t, m.Remember(FromPassword("a@b.com", "pw")))

	info, err := os.Stat(path)
	require.NoError(t, err)
	if info.Mode().Perm() != 0600 {
		t.Errorf("expected 0600 session file, got %v", info.Mode().Perm())
	}

	c, ok := m.Recall()
	require.True(t, ok)
	assert.Equal(t, "a@b.com", c.Email)
	assert.Equal(t, "pw", c.Password)

	require.NoError(t, m.Forget())
	_, err = os.Stat(path)
	assert.True(t, os.IsNotExist(err))
}

func TestFileStoreCorruptIsDiscarded(t *testing.T) {
	path := filepath.Join(t.TempDir(), "session.json")
	require.NoError(t, os.WriteFile(path, []byte("{not json"), 0600))

	m := NewManager(&FileStore{Path: path}, time.Hour)
	_, ok := m.Recall()
	assert.False(t, ok)
	_, err := os.Stat(path)
	assert.True(t, os.IsNotExist(err))
}

func TestDescribeRedacts(t *testing.T) {
	assert.Equal(t, "auth key abcdef***", FromAuthKey("abcdef123456").Describe())
	assert.Equal(t, "account a@b.com", FromPassword("a@b.com", "secret").Describe())
}
