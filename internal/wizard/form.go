package wizard

import (
	"net/url"
	"regexp"
	"strings"

	"github.com/oukeidos/watchly-config/internal/genre"
	"github.com/oukeidos/watchly-config/internal/language"
)

// Framing is the create/update wording of the install section. It never
// changes the payload.
type Framing struct {
	Title  string
	Button string
}

var (
	createFraming = Framing{Title: "Create your Watchly addon", Button: "Save & Install"}
	updateFraming = Framing{Title: "Update your Watchly addon", Button: "Update & Re-Install"}
)

// Form is the render model for every non-catalog field.
type Form struct {
	LoggedIn bool
	Account  string
	Identity string
	Exists   bool
	Framing  Framing

	Language  string
	Languages []language.Language

	PosterProvider string
	PosterKey      string

	ExcludedMovie  []string
	ExcludedSeries []string
}

// Excluded reports whether a genre checkbox is ticked.
func (f Form) Excluded(kind genre.Kind, id string) bool {
	list := f.ExcludedMovie
	if kind == genre.Series {
		list = f.ExcludedSeries
	}
	for _, v := range list {
		if v == id {
			return true
		}
	}
	return false
}

var emailPattern = regexp.MustCompile(`^[^\s@]+@[^\s@]+\.[^\s@]+$`)

// ValidEmail is a permissive shape check.
func ValidEmail(s string) bool {
	return emailPattern.MatchString(strings.TrimSpace(s))
}

// launchKeyParams are the query parameters that carry a login callback.
var launchKeyParams = []string{"key", "authKey"}

// ExtractLaunchKey pulls an auth key out of a launch URL and returns the URL
// without the login parameters. ok is false when no key is present.
func ExtractLaunchKey(raw string) (key, stripped string, ok bool) {
	if strings.TrimSpace(raw) == "" {
		return "", raw, false
	}
	u, err := url.Parse(raw)
	if err != nil {
		return "", raw, false
	}
	q := u.Query()
	for _, p := range launchKeyParams {
		if v := strings.TrimSpace(q.Get(p)); v != "" && key == "" {
			key = v
		}
	}
	if key == "" {
		return "", raw, false
	}
	for _, p := range launchKeyParams {
		q.Del(p)
	}
	u.RawQuery = q.Encode()
	return key, u.String(), true
}

// InstallURL turns a manifest URL into a stremio:// deep link.
func InstallURL(manifest string) string {
	for _, prefix := range []string{"https://", "http://"} {
		if strings.HasPrefix(manifest, prefix) {
			return "stremio://" + strings.TrimPrefix(manifest, prefix)
		}
	}
	return manifest
}
