// Package nav tracks which wizard section is visible and which sidebar
// entries are usable.
package nav

import "fmt"

// Section names one wizard page.
type Section string

const (
	Welcome  Section = "welcome"
	Login    Section = "login"
	Config   Section = "config"
	Catalogs Section = "catalogs"
	Install  Section = "install"
	Success  Section = "success"
)

// Sections lists every section in sidebar order.
var Sections = []Section{Welcome, Login, Config, Catalogs, Install, Success}

// lockedWhenLoggedOut are unusable until a login succeeds.
var lockedWhenLoggedOut = []Section{Config, Catalogs, Install}

// ParseSection validates a section name.
func ParseSection(s string) (Section, error) {
	for _, sec := range Sections {
		if string(sec) == s {
			return sec, nil
		}
	}
	return "", fmt.Errorf("unknown section %q", s)
}

// Title is the sidebar label.
func (s Section) Title() string {
	switch s {
	case Welcome:
		return "Welcome"
	case Login:
		return "Sign in"
	case Config:
		return "Preferences"
	case Catalogs:
		return "Catalogs"
	case Install:
		return "Install"
	case Success:
		return "Done"
	}
	return string(s)
}

// State is a snapshot handed to the view after every change.
type State struct {
	Current  Section
	Disabled map[Section]bool
}

// Controller owns the visible section. Transitions are not validated; any
// section can be shown from any other.
type Controller struct {
	current  Section
	disabled map[Section]bool

	onChange    func(State)
	resetScroll func()
}

// NewController starts on the welcome section with everything enabled.
func NewController() *Controller {
	return &Controller{current: Welcome, disabled: make(map[Section]bool)}
}

// OnChange registers the view hook.
func (c *Controller) OnChange(fn func(State)) { c.onChange = fn }

// OnScrollReset registers the hook that scrolls the main area to the top.
func (c *Controller) OnScrollReset(fn func()) { c.resetScroll = fn }

// Current returns the visible section.
func (c *Controller) Current() Section { return c.current }

// Disabled reports whether the sidebar entry for s is disabled.
func (c *Controller) Disabled(s Section) bool { return c.disabled[s] }

// Switch shows s and scrolls to the top. Unknown sections leave the current
// one visible but still update the sidebar.
func (c *Controller) Switch(s Section) {
	if _, err := ParseSection(string(s)); err == nil {
		c.current = s
	}
	if c.resetScroll != nil {
		c.resetScroll()
	}
	c.changed()
}

// Click handles a sidebar press. Disabled entries do nothing.
func (c *Controller) Click(s Section) bool {
	if c.disabled[s] {
		return false
	}
	c.Switch(s)
	return true
}

// LockForLoggedOut disables the sections that need an account.
func (c *Controller) LockForLoggedOut() {
	for _, s := range lockedWhenLoggedOut {
		c.disabled[s] = true
	}
	c.changed()
}

// Unlock enables every entry.
func (c *Controller) Unlock() {
	c.disabled = make(map[Section]bool)
	c.changed()
}

// State returns a snapshot.
func (c *Controller) State() State {
	d := make(map[Section]bool, len(c.disabled))
	for k, v := range c.disabled {
		d[k] = v
	}
	return State{Current: c.current, Disabled: d}
}

func (c *Controller) changed() {
	if c.onChange != nil {
		c.onChange(c.State())
	}
}
