package main

import (
	"crypto/sha256"
	"encoding/hex"
	"strings"

	"fyne.io/fyne/v2"

	"github.com/oukeidos/watchly-config/internal/logger"
)

// guiConfig is what the desktop app remembers between runs. Account data
// never goes here; the session store owns remembered logins.
type guiConfig struct {
	WindowWidth  float32
	WindowHeight float32
	// DismissedBanner is the digest of the last announcement the user closed.
	DismissedBanner string
}

const (
	defaultWindowWidth  = 960
	defaultWindowHeight = 720
	minWindowWidth      = 720
	minWindowHeight     = 520
	maxWindowSide       = 4096
)

func loadConfig(prefs fyne.Preferences) guiConfig {
	c := guiConfig{
		WindowWidth:     float32(prefs.FloatWithFallback("WindowWidth", defaultWindowWidth)),
		WindowHeight:    float32(prefs.FloatWithFallback("WindowHeight", defaultWindowHeight)),
		DismissedBanner: prefs.String("DismissedBanner"),
	}
	w, h := clampWindow(c.WindowWidth, c.WindowHeight)
	if w != c.WindowWidth || h != c.WindowHeight {
		logger.Warn("Window size clamped", "requested_width", c.WindowWidth, "requested_height", c.WindowHeight, "width", w, "height", h)
		c.WindowWidth, c.WindowHeight = w, h
	}
	return c
}

func saveConfig(prefs fyne.Preferences, c guiConfig) {
	prefs.SetFloat("WindowWidth", float64(c.WindowWidth))
	prefs.SetFloat("WindowHeight", float64(c.WindowHeight))
	prefs.SetString("DismissedBanner", c.DismissedBanner)
}

func clampWindow(w, h float32) (float32, float32) {
	return clampSide(w, minWindowWidth), clampSide(h, minWindowHeight)
}

func clampSide(v, lo float32) float32 {
	switch {
	case v < lo:
		return lo
	case v > maxWindowSide:
		return maxWindowSide
	}
	return v
}

// bannerDigest identifies an announcement by its text so that a changed
// announcement shows again after an earlier one was dismissed.
func bannerDigest(text string) string {
	text = strings.TrimSpace(text)
	if text == "" {
		return ""
	}
	sum := sha256.Sum256([]byte(text))
	return hex.EncodeToString(sum[:8])
}

func (c guiConfig) bannerDismissed(text string) bool {
	d := bannerDigest(text)
	return d != "" && d == c.DismissedBanner
}
