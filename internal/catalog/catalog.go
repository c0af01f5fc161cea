// Package catalog holds the ordered, user-editable list of addon catalogs.
//
// The list is the single source of truth for catalog order, names and the
// movie/series mode. Views render it through the change hook and never keep
// state of their own.
package catalog

import (
	"errors"
	"fmt"
	"strings"
)

// Mode is the content-type selector shown for every catalog. It projects
// onto the two independent EnabledMovie/EnabledSeries flags.
type Mode string

const (
	ModeBoth   Mode = "both"
	ModeMovie  Mode = "movie"
	ModeSeries Mode = "series"
)

// Modes lists the selector values in display order.
var Modes = []Mode{ModeBoth, ModeMovie, ModeSeries}

// ParseMode accepts both/movie/series, case-insensitively.
func ParseMode(s string) (Mode, error) {
	switch Mode(strings.ToLower(strings.TrimSpace(s))) {
	case ModeBoth:
		return ModeBoth, nil
	case ModeMovie:
		return ModeMovie, nil
	case ModeSeries:
		return ModeSeries, nil
	}
	return "", fmt.Errorf("unknown catalog mode %q (want both, movie or series)", s)
}

// Flags returns the (enabledMovie, enabledSeries) pair for the mode.
func (m Mode) Flags() (movie, series bool) {
	switch m {
	case ModeMovie:
		return true, false
	case ModeSeries:
		return false, true
	default:
		return true, true
	}
}

var (
	ErrUnknownCatalog = errors.New("unknown catalog")
	ErrNotRenamable   = errors.New("catalog name is fixed")
	ErrDuplicateID    = errors.New("duplicate catalog id")
)

// Descriptor is one catalog row.
type Descriptor struct {
	ID            string
	Name          string
	Enabled       bool
	EnabledMovie  bool
	EnabledSeries bool
	DisplayAtHome bool
	Shuffle       bool
	// Description is display-only and never submitted.
	Description string
}

// Mode reports the selector state. (false, false) is unreachable through the
// list's mutators; it is shown as both.
func (d Descriptor) Mode() Mode {
	switch {
	case d.EnabledMovie && !d.EnabledSeries:
		return ModeMovie
	case !d.EnabledMovie && d.EnabledSeries:
		return ModeSeries
	default:
		return ModeBoth
	}
}

// Config is the wire form of a catalog, as sent to and returned by the
// backend. Optional fields are pointers so that absent values in stored
// settings can be told apart from false.
type Config struct {
	ID            string  `json:"id"`
	Name          *string `json:"name,omitempty"`
	Enabled       bool    `json:"enabled"`
	EnabledMovie  *bool   `json:"enabled_movie,omitempty"`
	EnabledSeries *bool   `json:"enabled_series,omitempty"`
	DisplayAtHome *bool   `json:"display_at_home,omitempty"`
	Shuffle       *bool   `json:"shuffle,omitempty"`
}

// List is the ordered catalog model.
type List struct {
	items    []Descriptor
	policy   Policy
	onChange func([]Descriptor)
}

// NewList seeds a list from a roster. The roster is copied.
func NewList(roster []Descriptor, policy Policy) (*List, error) {
	l := &List{policy: policy}
	if err := l.Set(roster); err != nil {
		return nil, err
	}
	return l, nil
}

// OnChange registers the render hook. It receives a snapshot after every
// mutation, including no-op moves.
func (l *List) OnChange(fn func([]Descriptor)) {
	l.onChange = fn
}

// Policy returns the rename policy in effect.
func (l *List) Policy() Policy { return l.policy }

// Catalogs returns a snapshot of the list in order.
func (l *List) Catalogs() []Descriptor {
	out := make([]Descriptor, len(l.items))
	copy(out, l.items)
	return out
}

// Set replaces the contents in place. Ids must be unique and non-empty.
func (l *List) Set(items []Descriptor) error {
	seen := make(map[string]bool, len(items))
	for _, d := range items {
		if strings.TrimSpace(d.ID) == "" {
			return fmt.Errorf("%w: empty id", ErrUnknownCatalog)
		}
		if seen[d.ID] {
			return fmt.Errorf("%w: %s", ErrDuplicateID, d.ID)
		}
		seen[d.ID] = true
	}
	l.items = append(l.items[:0:0], items...)
	l.changed()
	return nil
}

// Index returns the position of id, or -1.
func (l *List) Index(id string) int {
	for i := range l.items {
		if l.items[i].ID == id {
			return i
		}
	}
	return -1
}

// MoveUp swaps entry i with its predecessor. Index 0 and out-of-range indexes
// leave the order untouched but still re-render.
func (l *List) MoveUp(i int) bool {
	moved := false
	if i > 0 && i < len(l.items) {
		l.items[i-1], l.items[i] = l.items[i], l.items[i-1]
		moved = true
	}
	l.changed()
	return moved
}

// MoveDown swaps entry i with its successor. The last index is a no-op.
func (l *List) MoveDown(i int) bool {
	moved := false
	if i >= 0 && i < len(l.items)-1 {
		l.items[i], l.items[i+1] = l.items[i+1], l.items[i]
		moved = true
	}
	l.changed()
	return moved
}

// CanRename reports whether the policy allows renaming id.
func (l *List) CanRename(id string) bool {
	return l.policy.CanRename(id)
}

// Rename commits a new display name. The name is trimmed; an empty result
// keeps the previous name and reports false.
func (l *List) Rename(id, name string) (bool, error) {
	i := l.Index(id)
	if i < 0 {
		return false, fmt.Errorf("%w: %s", ErrUnknownCatalog, id)
	}
	if !l.policy.CanRename(id) {
		return false, fmt.Errorf("%w: %s", ErrNotRenamable, id)
	}
	trimmed := strings.TrimSpace(name)
	if trimmed == "" || trimmed == l.items[i].Name {
		l.changed()
		return false, nil
	}
	l.items[i].Name = trimmed
	l.changed()
	return true, nil
}

// SetEnabled shows or hides a catalog in the addon.
func (l *List) SetEnabled(id string, enabled bool) error {
	return l.update(id, func(d *Descriptor) { d.Enabled = enabled })
}

// SetMode applies the exclusive both/movie/series selector.
func (l *List) SetMode(id string, m Mode) error {
	if _, err := ParseMode(string(m)); err != nil {
		return err
	}
	return l.update(id, func(d *Descriptor) {
		d.EnabledMovie, d.EnabledSeries = m.Flags()
	})
}

// SetDisplayAtHome toggles home-screen visibility independently of the rest.
func (l *List) SetDisplayAtHome(id string, on bool) error {
	return l.update(id, func(d *Descriptor) { d.DisplayAtHome = on })
}

// SetShuffle toggles random item order.
func (l *List) SetShuffle(id string, on bool) error {
	return l.update(id, func(d *Descriptor) { d.Shuffle = on })
}

// ApplyRemote overwrites fields of matching catalogs from stored settings.
// Order is preserved, remote ids that are not in the list are ignored, and
// local entries without a remote match keep their current values. Only fields
// present in a remote entry are written.
func (l *List) ApplyRemote(remote []Config) {
	for _, rc := range remote {
		i := l.Index(rc.ID)
		if i < 0 {
			continue
		}
		d := &l.items[i]
		d.Enabled = rc.Enabled
		if rc.Name != nil && strings.TrimSpace(*rc.Name) != "" && l.policy.CanRename(rc.ID) {
			d.Name = strings.TrimSpace(*rc.Name)
		}
		if rc.EnabledMovie != nil {
			d.EnabledMovie = *rc.EnabledMovie
		}
		if rc.EnabledSeries != nil {
			d.EnabledSeries = *rc.EnabledSeries
		}
		if !d.EnabledMovie && !d.EnabledSeries {
			d.EnabledMovie, d.EnabledSeries = ModeBoth.Flags()
		}
		if rc.DisplayAtHome != nil {
			d.DisplayAtHome = *rc.DisplayAtHome
		}
		if rc.Shuffle != nil {
			d.Shuffle = *rc.Shuffle
		}
	}
	l.changed()
}

// Serialize returns the wire form in list order with every field set.
func (l *List) Serialize() []Config {
	out := make([]Config, 0, len(l.items))
	for _, d := range l.items {
		name := d.Name
		movie, series := d.Mode().Flags()
		home, shuffle := d.DisplayAtHome, d.Shuffle
		out = append(out, Config{
			ID:            d.ID,
			Name:          &name,
			Enabled:       d.Enabled,
			EnabledMovie:  &movie,
			EnabledSeries: &series,
			DisplayAtHome: &home,
			Shuffle:       &shuffle,
		})
	}
	return out
}

func (l *List) update(id string, fn func(*Descriptor)) error {
	i := l.Index(id)
	if i < 0 {
		return fmt.Errorf("%w: %s", ErrUnknownCatalog, id)
	}
	fn(&l.items[i])
	l.changed()
	return nil
}

func (l *List) changed() {
	if l.onChange != nil {
		l.onChange(l.Catalogs())
	}
}
