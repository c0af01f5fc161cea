package cleanup

import (
	"errors"
	"testing"

	"github.com/stretchr/testify/assert"
)

func TestRunAllOrderAndOnce(t *testing.T) {
	var order []string
	Register("first", func() error { order = append(order, "first"); return nil })
	Register("second", func() error { order = append(order, "second"); return errors.New("boom") })
	Register("nil", nil)

	err := RunAll()
	assert.Equal(t, []string{"second", "first"}, order)
	assert.ErrorContains(t, err, "second: boom")

	assert.NoError(t, RunAll())
	assert.Len(t, order, 2)
}
