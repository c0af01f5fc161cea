package main

import (
	_ "embed"

	"fyne.io/fyne/v2"
	"fyne.io/fyne/v2/theme"
)

//go:embed assets/icon.png
var iconPNG []byte

var appIcon = fyne.NewStaticResource("watchly.png", iconPNG)

// comfortableTheme bumps the base text size a little.
type comfortableTheme struct{ fyne.Theme }

func (m comfortableTheme) Size(n fyne.ThemeSizeName) float32 {
	if n == theme.SizeNameText {
		return 15
	}
	return theme.DefaultTheme().Size(n)
}
