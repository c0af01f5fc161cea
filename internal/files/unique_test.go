package files

import (
	"os"
	"path/filepath"
	"strings"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestUniquePathFree(t *testing.T) {
	path := filepath.Join(t.TempDir(), "settings.json")
	got, changed, err := UniquePath(path)
	require.NoError(t, err)
	assert.False(t, changed)
	assert.Equal(t, path, got)
}

func TestUniquePathNumbered(t *testing.T) {
	dir := t.TempDir()
	path := filepath.Join(dir, "settings.json")
	require.NoError(t, os.WriteFile(path, []byte("x"), 0600))
	require.NoError(t, os.WriteFile(filepath.Join(dir, "settings_1.json"), []byte("x"), 0600))

	got, changed, err := UniquePath(path)
	require.NoError(t, err)
	assert.True(t, changed)
	assert.Equal(t, filepath.Join(dir, "settings_2.json"), got)
}

func TestUniquePathFallsBackToUUID(t *testing.T) {
	dir := t.TempDir()
	path := filepath.Join(dir, "settings.json")
	require.NoError(t, os.WriteFile(path, nil, 0600))
	for i := 1; i <= 9; i++ {
		require.NoError(t, os.WriteFile(filepath.Join(dir, "settings_"+string(rune('0'+i))+".json"), nil, 0600))
	}

	got, changed, err := UniquePath(path)
	require.NoError(t, err)
	assert.True(t, changed)
	assert.True(t, strings.HasPrefix(filepath.Base(got), "settings_"))
	assert.Equal(t, ".json", filepath.Ext(got))
	assert.Greater(t, len(filepath.Base(got)), len("settings_9.json"))
}

func TestUniquePathEmpty(t *testing.T) {
	_, _, err := UniquePath(" ")
	assert.Error(t, err)
}

func TestWriteNewKeepsExisting(t *testing.T) {
	dir := t.TempDir()
	path := filepath.Join(dir, "export.json")
	require.NoError(t, os.WriteFile(path, []byte("old"), 0600))

	got, err := WriteNew(path, []byte("new"), 0600)
	require.NoError(t, err)
	assert.Equal(t, filepath.Join(dir, "export_1.json"), got)

	old, _ := os.ReadFile(path)
	assert.Equal(t, "old", string(old))
	fresh, _ := os.ReadFile(got)
	assert.Equal(t, "new", string(fresh))
}

func TestAtomicWriteReplaces(t *testing.T) {
	path := filepath.Join(t.TempDir(), "session.json")
	require.NoError(t, AtomicWrite(path, []byte("a"), 0600))
	require.NoError(t, AtomicWrite(path, []byte("b"), 0600))

	data, err := os.ReadFile(path)
	require.NoError(t, err)
	assert.Equal(t, "b", string(data))

	leftovers, _ := filepath.Glob(filepath.Join(filepath.Dir(path), "watchly-*.tmp"))
	assert.Empty(t, leftovers)
}
