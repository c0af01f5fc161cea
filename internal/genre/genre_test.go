package genre

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestTables(t *testing.T) {
	assert.Len(t, All(Movie), 19)
	assert.Len(t, All(Series), 16)

	all := All(Movie)
	all[0].Name = "changed"
	assert.Equal(t, "Action", All(Movie)[0].Name)
}

func TestLookup(t *testing.T) {
	cases := []struct {
		kind Kind
		ref  string
		id   string
		ok   bool
	}{
		{Movie, "28", "28", true},
		{Movie, "science fiction", "878", true},
		{Series, "Sci-Fi & Fantasy", "10765", true},
		{Series, "10770", "", false},
		{Movie, "Kids", "", false},
		{Movie, "  ", "", false},
	}
	for _, tc := range cases {
		g, ok := Lookup(tc.kind, tc.ref)
		assert.Equal(t, tc.ok, ok, tc.ref)
		assert.Equal(t, tc.id, g.ID, tc.ref)
	}
}

func TestResolve(t *testing.T) {
	s, err := Resolve(Movie, []string{"Horror", "27", "10752", ""})
	require.NoError(t, err)
	assert.Equal(t, []string{"27", "10752"}, s.IDs())

	_, err = Resolve(Series, []string{"Horror"})
	assert.Error(t, err)
}

func TestSetIDsSortedNumerically(t *testing.T) {
	s := NewSet("10751", "9", "878", " ")
	assert.Equal(t, []string{"9", "878", "10751"}, s.IDs())
	assert.True(t, s.Has("878"))
	assert.False(t, s.Has(""))
}
