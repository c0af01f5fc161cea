package main

import (
	"strings"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/oukeidos/watchly-config/internal/apitest"
	"github.com/oukeidos/watchly-config/internal/catalog"
)

func TestCatalogsTable(t *testing.T) {
	f := newFixture(t)
	out, err := f.run(t, "catalogs")
	require.NoError(t, err)

	lines := strings.Split(strings.TrimSpace(out), "\n")
	require.Len(t, lines, 6)
	assert.Contains(t, lines[0], "RENAME")
	assert.Contains(t, lines[1], "watchly.rec")
	assert.Contains(t, lines[4], "watchly.theme")
	assert.True(t, strings.HasSuffix(lines[4], "fixed"))
	assert.Contains(t, lines[5], " no ")
}

func TestCatalogsReflectSavedSettings(t *testing.T) {
	f := newFixture(t)
	f.backend.Identity = apitest.ExistingAccount(map[string]any{
		"catalogs": []map[string]any{{"id": "watchly.rec", "enabled": true, "name": "My picks for a very long evening at home"}},
	})
	f.login(t)

	out, err := f.run(t, "catalogs")
	require.NoError(t, err)
	assert.Contains(t, out, "My picks for a very long evenin…")
}

func TestRejectedRememberedLoginIsReported(t *testing.T) {
	f := newFixture(t)
	f.login(t)
	f.backend.Identity = func(map[string]any) apitest.Reply {
		return apitest.Detail(400, "Failed to verify Stremio identity.")
	}
	out, err := f.run(t, "catalogs")
	require.NoError(t, err)
	assert.Contains(t, out, "remembered login was rejected")
}

func TestDescribeCatalog(t *testing.T) {
	d := catalog.Descriptor{Name: "Loved", Enabled: false, EnabledMovie: true, DisplayAtHome: true}
	assert.Equal(t, "Loved (movie, disabled, home)", describeCatalog(d))
}
