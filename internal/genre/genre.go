// Package genre holds the TMDB genre tables behind the exclusion checkboxes.
package genre

import (
	"fmt"
	"sort"
	"strconv"
	"strings"
)

// Kind selects the movie or series table.
type Kind string

const (
	Movie  Kind = "movie"
	Series Kind = "series"
)

// Genre is one TMDB genre. IDs travel as strings on the wire.
type Genre struct {
	ID   string
	Name string
}

var movieGenres = []Genre{
	{"28", "Action"},
	{"12", "Adventure"},
	{"16", "Animation"},
	{"35", "Comedy"},
	{"80", "Crime"},
	{"99", "Documentary"},
	{"18", "Drama"},
	{"10751", "Family"},
	{"14", "Fantasy"},
	{"36", "History"},
	{"27", "Horror"},
	{"10402", "Music"},
	{"9648", "Mystery"},
	{"10749", "Romance"},
	{"878", "Science Fiction"},
	{"10770", "TV Movie"},
	{"53", "Thriller"},
	{"10752", "War"},
	{"37", "Western"},
}

var seriesGenres = []Genre{
	{"10759", "Action & Adventure"},
	{"16", "Animation"},
	{"35", "Comedy"},
	{"80", "Crime"},
	{"99", "Documentary"},
	{"18", "Drama"},
	{"10751", "Family"},
	{"10762", "Kids"},
	{"9648", "Mystery"},
	{"10763", "News"},
	{"10764", "Reality"},
	{"10765", "Sci-Fi & Fantasy"},
	{"10766", "Soap"},
	{"10767", "Talk"},
	{"10768", "War & Politics"},
	{"37", "Western"},
}

// All returns the table for kind in display order.
func All(kind Kind) []Genre {
	src := movieGenres
	if kind == Series {
		src = seriesGenres
	}
	out := make([]Genre, len(src))
	copy(out, src)
	return out
}

// Lookup resolves a genre by id or case-insensitive name.
func Lookup(kind Kind, ref string) (Genre, bool) {
	ref = strings.TrimSpace(ref)
	if ref == "" {
		return Genre{}, false
	}
	for _, g := range All(kind) {
		if g.ID == ref || strings.EqualFold(g.Name, ref) {
			return g, true
		}
	}
	return Genre{}, false
}

// Set is an unordered group of excluded genre ids.
type Set map[string]struct{}

// NewSet builds a set from ids, dropping blanks.
func NewSet(ids ...string) Set {
	s := make(Set, len(ids))
	for _, id := range ids {
		if id = strings.TrimSpace(id); id != "" {
			s[id] = struct{}{}
		}
	}
	return s
}

// Has reports membership.
func (s Set) Has(id string) bool {
	_, ok := s[id]
	return ok
}

// IDs returns the members sorted numerically so payloads are stable.
func (s Set) IDs() []string {
	out := make([]string, 0, len(s))
	for id := range s {
		out = append(out, id)
	}
	sort.Slice(out, func(i, j int) bool {
		a, errA := strconv.Atoi(out[i])
		b, errB := strconv.Atoi(out[j])
		if errA != nil || errB != nil {
			return out[i] < out[j]
		}
		return a < b
	})
	return out
}

// Resolve turns user references (ids or names) into a set, failing on the
// first unknown entry.
func Resolve(kind Kind, refs []string) (Set, error) {
	s := make(Set, len(refs))
	for _, ref := range refs {
		if strings.TrimSpace(ref) == "" {
			continue
		}
		g, ok := Lookup(kind, ref)
		if !ok {
			return nil, fmt.Errorf("unknown %s genre %q", kind, ref)
		}
		s[g.ID] = struct{}{}
	}
	return s, nil
}
