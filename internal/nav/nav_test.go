package nav

import (
	"testing"

	"github.com/stretchr/testify/assert"
)

func TestSwitchResetsScroll(t *testing.T) {
	c := NewController()
	scrolls := 0
	var last State
	c.OnScrollReset(func() { scrolls++ })
	c.OnChange(func(s State) { last = s })

	c.Switch(Catalogs)
	assert.Equal(t, Catalogs, c.Current())
	assert.Equal(t, Catalogs, last.Current)
	assert.Equal(t, 1, scrolls)

	c.Switch(Section("nowhere"))
	assert.Equal(t, Catalogs, c.Current())
	assert.Equal(t, 2, scrolls)
}

func TestLockAndUnlock(t *testing.T) {
	c := NewController()
	c.LockForLoggedOut()

	for _, s := range []Section{Config, Catalogs, Install} {
		assert.True(t, c.Disabled(s), s)
		assert.False(t, c.Click(s), s)
	}
	assert.Equal(t, Welcome, c.Current())

	assert.True(t, c.Click(Login))
	assert.Equal(t, Login, c.Current())

	c.Unlock()
	for _, s := range Sections {
		assert.False(t, c.Disabled(s), s)
	}
	assert.True(t, c.Click(Install))
}

func TestAnySectionReachable(t *testing.T) {
	c := NewController()
	c.Switch(Success)
	c.Switch(Welcome)
	c.Switch(Install)
	assert.Equal(t, Install, c.Current())
}

func TestStateIsSnapshot(t *testing.T) {
	c := NewController()
	c.LockForLoggedOut()
	st := c.State()
	st.Disabled[Config] = false
	assert.True(t, c.Disabled(Config))
}

func TestParseSection(t *testing.T) {
	s, err := ParseSection("install")
	assert.NoError(t, err)
	assert.Equal(t, Install, s)
	_, err = ParseSection("settings")
	assert.Error(t, err)
}
