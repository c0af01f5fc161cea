package wizard

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/oukeidos/watchly-config/internal/apperrors"
)

func TestFlightOnePerAction(t *testing.T) {
	f := NewFlight()
	t1, err := f.Begin(ActionSubmit)
	require.NoError(t, err)
	assert.True(t, f.Busy(ActionSubmit))

	_, err = f.Begin(ActionSubmit)
	assert.True(t, apperrors.Is(err, apperrors.KindBusy))

	_, err = f.Begin(ActionValidate)
	assert.NoError(t, err, "actions are independent")

	f.End(t1)
	assert.False(t, f.Busy(ActionSubmit))
}

func TestFlightInvalidate(t *testing.T) {
	f := NewFlight()
	old, err := f.Begin(ActionLogin)
	require.NoError(t, err)
	assert.True(t, f.Current(old))

	f.Invalidate()
	assert.False(t, f.Current(old))
	assert.False(t, f.Busy(ActionLogin))

	fresh, err := f.Begin(ActionLogin)
	require.NoError(t, err)
	f.End(old)
	assert.True(t, f.Busy(ActionLogin), "stale End leaves the new claim alone")
	assert.True(t, f.Current(fresh))
	f.End(fresh)
	assert.False(t, f.Busy(ActionLogin))
}
