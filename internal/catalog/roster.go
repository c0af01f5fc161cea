package catalog

import "strings"

// Well-known catalog ids served by the addon.
const (
	IDTopPicks = "watchly.rec"
	IDLoved    = "watchly.loved"
	IDWatched  = "watchly.watched"
	IDTheme    = "watchly.theme"
	IDCreators = "watchly.creators"
)

// Policy decides which catalogs may be renamed. The rule has moved between
// releases of the addon, so it is data rather than code.
type Policy struct {
	fixed map[string]bool
}

// NewPolicy returns a policy that forbids renaming the given ids.
func NewPolicy(nonRenamable ...string) Policy {
	p := Policy{fixed: make(map[string]bool, len(nonRenamable))}
	for _, id := range nonRenamable {
		if id = strings.TrimSpace(id); id != "" {
			p.fixed[id] = true
		}
	}
	return p
}

// DefaultPolicy fixes the name of the genre/theme catalog, whose title is
// generated downstream.
func DefaultPolicy() Policy {
	return NewPolicy(IDTheme)
}

// CanRename reports whether id accepts a user-supplied name.
func (p Policy) CanRename(id string) bool {
	return !p.fixed[id]
}

// DefaultRoster is the catalog set a new account starts from.
func DefaultRoster() []Descriptor {
	return []Descriptor{
		{
			ID: IDTopPicks, Name: "Top Picks for You",
			Enabled: true, EnabledMovie: true, EnabledSeries: true, DisplayAtHome: true,
			Description: "Personalized recommendations based on your library",
		},
		{
			ID: IDLoved, Name: "More like what you loved",
			Enabled: true, EnabledMovie: true, EnabledSeries: true, DisplayAtHome: true,
			Description: "Titles similar to the ones you rated highly",
		},
		{
			ID: IDWatched, Name: "Because you watched",
			Enabled: true, EnabledMovie: true, EnabledSeries: true, DisplayAtHome: true,
			Description: "Follow-ups to your most recent watches",
		},
		{
			ID: IDTheme, Name: "Because of Genre/Theme",
			Enabled: true, EnabledMovie: true, EnabledSeries: true, DisplayAtHome: true,
			Description: "Dynamic rows built from your favourite genres and keywords",
		},
		{
			ID: IDCreators, Name: "From your favourite Creators",
			Enabled: false, EnabledMovie: true, EnabledSeries: true, DisplayAtHome: true,
			Description: "Directors and writers behind titles you loved",
		},
	}
}

// RosterEntry is the config-file form of a roster entry.
type RosterEntry struct {
	ID          string `mapstructure:"id"`
	Name        string `mapstructure:"name"`
	Enabled     *bool  `mapstructure:"enabled"`
	Mode        string `mapstructure:"mode"`
	Home        *bool  `mapstructure:"display_at_home"`
	Shuffle     bool   `mapstructure:"shuffle"`
	Description string `mapstructure:"description"`
}

// RosterFromEntries converts configured entries into descriptors. Missing
// enabled/home flags default to true and a missing mode means both.
func RosterFromEntries(entries []RosterEntry) ([]Descriptor, error) {
	out := make([]Descriptor, 0, len(entries))
	for _, e := range entries {
		mode := ModeBoth
		if strings.TrimSpace(e.Mode) != "" {
			m, err := ParseMode(e.Mode)
			if err != nil {
				return nil, err
			}
			mode = m
		}
		movie, series := mode.Flags()
		name := strings.TrimSpace(e.Name)
		if name == "" {
			name = e.ID
		}
		out = append(out, Descriptor{
			ID:            strings.TrimSpace(e.ID),
			Name:          name,
			Enabled:       boolOr(e.Enabled, true),
			EnabledMovie:  movie,
			EnabledSeries: series,
			DisplayAtHome: boolOr(e.Home, true),
			Shuffle:       e.Shuffle,
			Description:   e.Description,
		})
	}
	return out, nil
}

func boolOr(b *bool, def bool) bool {
	if b == nil {
		return def
	}
	return *b
}

// IsZero reports whether p was never initialised.
func (p Policy) IsZero() bool {
	return p.fixed == nil
}
