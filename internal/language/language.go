// Package language models the content-language choices offered by the
// backend and orders them for display.
package language

import (
	"encoding/json"
	"fmt"
	"sort"
	"strings"

	"golang.org/x/text/collate"
	xlang "golang.org/x/text/language"
)

// DefaultCode is the language a new account starts with.
const DefaultCode = "en-US"

// Language is one TMDB language descriptor.
type Language struct {
	Code        string `json:"iso_639_1"`
	EnglishName string `json:"english_name,omitempty"`
	Name        string `json:"name,omitempty"`
}

// UnmarshalJSON also accepts the short {"iso_639_1","language"} shape used by
// the backend's own fallback list.
func (l *Language) UnmarshalJSON(data []byte) error {
	var raw struct {
		Code        string `json:"iso_639_1"`
		EnglishName string `json:"english_name"`
		Name        string `json:"name"`
		Language    string `json:"language"`
	}
	if err := json.Unmarshal(data, &raw); err != nil {
		return err
	}
	l.Code = strings.TrimSpace(raw.Code)
	l.EnglishName = raw.EnglishName
	if l.EnglishName == "" {
		l.EnglishName = raw.Language
	}
	l.Name = raw.Name
	return nil
}

// Label is the text shown in selectors.
func (l Language) Label() string {
	switch {
	case l.EnglishName != "" && l.Name != "" && l.Name != l.EnglishName:
		return fmt.Sprintf("%s (%s)", l.EnglishName, l.Name)
	case l.EnglishName != "":
		return l.EnglishName
	case l.Name != "":
		return l.Name
	}
	return l.Code
}

// Fallback is used when the language list cannot be fetched.
func Fallback() []Language {
	return []Language{{Code: DefaultCode, EnglishName: "English"}}
}

// ValidCode reports whether code is shaped like a language code: ASCII
// letters and digits in hyphen or underscore separated parts. Registered
// BCP 47 subtags are not required; TMDB serves codes such as "cn" and "sh".
func ValidCode(code string) bool {
	if code == "" || len(code) > 35 {
		return false
	}
	part := 0
	for _, r := range code {
		switch {
		case r >= 'a' && r <= 'z', r >= 'A' && r <= 'Z', r >= '0' && r <= '9':
			part++
		case (r == '-' || r == '_') && part > 0:
			part = 0
		default:
			return false
		}
	}
	return part > 0
}

// Sort orders langs by label using English collation and forces the entry
// matching def first. An exact code match wins over a base-language match.
// The input is not modified; blank codes and duplicates are dropped.
func Sort(langs []Language, def string) []Language {
	out := make([]Language, 0, len(langs))
	seen := make(map[string]bool, len(langs))
	for _, l := range langs {
		if l.Code == "" || seen[l.Code] {
			continue
		}
		seen[l.Code] = true
		out = append(out, l)
	}

	c := collate.New(xlang.English, collate.IgnoreCase)
	sort.SliceStable(out, func(i, j int) bool {
		return c.CompareString(out[i].Label(), out[j].Label()) < 0
	})

	if idx := defaultIndex(out, def); idx > 0 {
		first := out[idx]
		copy(out[1:idx+1], out[:idx])
		out[0] = first
	}
	return out
}

func defaultIndex(langs []Language, def string) int {
	for i, l := range langs {
		if strings.EqualFold(l.Code, def) {
			return i
		}
	}
	base := baseOf(def)
	if base == "" {
		return -1
	}
	for i, l := range langs {
		if baseOf(l.Code) == base {
			return i
		}
	}
	return -1
}

func baseOf(code string) string {
	tag, err := xlang.Parse(code)
	if err != nil {
		return ""
	}
	b, _ := tag.Base()
	return b.String()
}

// Find returns the entry with code, matching case-insensitively. The
// returned entry carries the code exactly as listed.
func Find(langs []Language, code string) (Language, bool) {
	for _, l := range langs {
		if strings.EqualFold(l.Code, code) {
			return l, true
		}
	}
	return Language{}, false
}
