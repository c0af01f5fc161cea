package licenses

import (
	"testing"

	"github.com/stretchr/testify/assert"
)

func TestEmbeddedTexts(t *testing.T) {
	assert.Contains(t, LicenseText(), "MIT License")
	assert.Contains(t, NoticesText(), "fyne.io/fyne/v2")
	assert.Contains(t, DisclaimerText(), "Watchly")
}
