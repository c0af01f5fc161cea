package main

import (
	"testing"

	"fyne.io/fyne/v2/test"
)

func TestClampWindow(t *testing.T) {
	tests := []struct {
		name         string
		w, h         float32
		wantW, wantH float32
	}{
		{"default kept", defaultWindowWidth, defaultWindowHeight, defaultWindowWidth, defaultWindowHeight},
		{"too small", 100, 100, minWindowWidth, minWindowHeight},
		{"too large", 9000, 800, maxWindowSide, 800},
	}
	for _, tc := range tests {
		t.Run(tc.name, func(t *testing.T) {
			w, h := clampWindow(tc.w, tc.h)
			if w != tc.wantW || h != tc.wantH {
				t.Fatalf("clampWindow(%v, %v) = (%v, %v), want (%v, %v)", tc.w, tc.h, w, h, tc.wantW, tc.wantH)
			}
		})
	}
}

func TestConfigRoundTripThroughPreferences(t *testing.T) {
	app := test.NewTempApp(t)
	prefs := app.Preferences()

	c := loadConfig(prefs)
	if c.WindowWidth != defaultWindowWidth || c.DismissedBanner != "" {
		t.Fatalf("unexpected defaults: %+v", c)
	}

	c.WindowWidth = 1200
	c.DismissedBanner = bannerDigest("Maintenance tonight")
	saveConfig(prefs, c)

	got := loadConfig(prefs)
	if got.WindowWidth != 1200 {
		t.Fatalf("width = %v, want 1200", got.WindowWidth)
	}
	if !got.bannerDismissed("  Maintenance tonight ") {
		t.Fatalf("banner should be dismissed")
	}
	if got.bannerDismissed("New catalogs") {
		t.Fatalf("a different banner must show again")
	}
}

func TestBannerDigestEmpty(t *testing.T) {
	if bannerDigest("  ") != "" {
		t.Fatalf("empty text should have no digest")
	}
	var c guiConfig
	if c.bannerDismissed("") {
		t.Fatalf("empty banner is never dismissed")
	}
}
