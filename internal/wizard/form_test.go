package wizard

import (
	"testing"

	"github.com/stretchr/testify/assert"

	"github.com/oukeidos/watchly-config/internal/genre"
)

func TestExtractLaunchKey(t *testing.T) {
	cases := []struct {
		name     string
		raw      string
		key      string
		stripped string
		ok       bool
	}{
		{"empty", "", "", "", false},
		{"no key", "https://watchly.example.com/configure?x=1", "", "https://watchly.example.com/configure?x=1", false},
		{"key", "https://watchly.example.com/configure?key=ABC", "ABC", "https://watchly.example.com/configure", true},
		{"authKey", "watchly://open?authKey=XYZ&tab=config", "XYZ", "watchly://open?tab=config", true},
		{"both prefers key", "watchly://open?authKey=B&key=A", "A", "watchly://open", true},
		{"blank value", "watchly://open?key=%20", "", "watchly://open?key=%20", false},
	}
	for _, tc := range cases {
		t.Run(tc.name, func(t *testing.T) {
			key, stripped, ok := ExtractLaunchKey(tc.raw)
			assert.Equal(t, tc.ok, ok)
			assert.Equal(t, tc.key, key)
			assert.Equal(t, tc.stripped, stripped)
		})
	}
}

func TestInstallURL(t *testing.T) {
	assert.Equal(t, "stremio://host/t/manifest.json", InstallURL("https://host/t/manifest.json"))
	assert.Equal(t, "stremio://localhost:8000/t/manifest.json", InstallURL("http://localhost:8000/t/manifest.json"))
	assert.Equal(t, "stremio://x", InstallURL("stremio://x"))
}

func TestValidEmail(t *testing.T) {
	for _, ok := range []string{"a@b.co", " user.name+tag@example.org "} {
		assert.True(t, ValidEmail(ok), ok)
	}
	for _, bad := range []string{"", "a@b", "a b@c.d", "@c.d", "a@@c.d"} {
		assert.False(t, ValidEmail(bad), bad)
	}
}

func TestFormExcluded(t *testing.T) {
	f := Form{ExcludedMovie: []string{"27"}, ExcludedSeries: []string{"16"}}
	assert.True(t, f.Excluded(genre.Movie, "27"))
	assert.False(t, f.Excluded(genre.Series, "27"))
	assert.True(t, f.Excluded(genre.Series, "16"))
}
