package main

import (
	"fmt"
	"net/url"
	"strings"

	"fyne.io/fyne/v2"
	"fyne.io/fyne/v2/container"
	"fyne.io/fyne/v2/dialog"
	"fyne.io/fyne/v2/widget"

	"github.com/oukeidos/watchly-config/internal/licenses"
	"github.com/oukeidos/watchly-config/internal/version"
)

const projectURL = "https://github.com/oukeidos/watchly-config"

func showAbout(w fyne.Window) {
	info := widget.NewForm(
		widget.NewFormItem("App", widget.NewLabel("Watchly")),
		widget.NewFormItem("Version", widget.NewLabel(version.Version)),
		widget.NewFormItem("Commit", widget.NewLabel(version.Commit)),
		widget.NewFormItem("Build", widget.NewLabel(version.BuildDate)),
		widget.NewFormItem("Copyright", widget.NewLabel("(c) 2026 oukeidos")),
		widget.NewFormItem("Links", newHyperlink("GitHub", projectURL)),
	)

	buttons := container.NewHBox(
		textButton(w, "License", "LICENSE", licenses.LicenseText),
		textButton(w, "Third-party notices", "Third-Party Notices", licenses.NoticesText),
		textButton(w, "Disclaimer", "Disclaimer", licenses.DisclaimerText),
	)

	dialog.ShowCustom("About", "Close", container.NewVBox(info, widget.NewSeparator(), buttons), w)
}

func textButton(w fyne.Window, label, title string, text func() string) *widget.Button {
	return widget.NewButton(label, func() {
		body := text()
		if strings.TrimSpace(body) == "" {
			dialog.ShowError(fmt.Errorf("embedded %s is empty", title), w)
			return
		}
		showTextDialog(w, title, body)
	})
}

func newHyperlink(label, raw string) *widget.Hyperlink {
	u, _ := url.Parse(raw)
	return widget.NewHyperlink(label, u)
}

func showTextDialog(w fyne.Window, title, text string) {
	entry := widget.NewMultiLineEntry()
	entry.SetText(text)
	entry.Wrapping = fyne.TextWrapWord
	lock := false
	entry.OnChanged = func(s string) {
		if lock || s == text {
			return
		}
		lock = true
		entry.SetText(text)
		lock = false
	}
	scroll := container.NewScroll(entry)
	scroll.SetMinSize(fyne.NewSize(640, 460))
	d := dialog.NewCustom(title, "Close", scroll, w)
	d.Resize(fyne.NewSize(680, 500))
	d.Show()
}
