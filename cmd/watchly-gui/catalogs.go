package main

import (
	"image/color"

	"fyne.io/fyne/v2"
	"fyne.io/fyne/v2/canvas"
	"fyne.io/fyne/v2/container"
	"fyne.io/fyne/v2/theme"
	"fyne.io/fyne/v2/widget"

	"github.com/oukeidos/watchly-config/internal/catalog"
	"github.com/oukeidos/watchly-config/internal/textwidth"
)

const maxFixedNameWidth = 40

// renameEntry commits on Enter or when focus leaves, and Escape restores
// the name it was built with.
type renameEntry struct {
	widget.Entry
	original string
	onCommit func(string)
}

func newRenameEntry(name string, onCommit func(string)) *renameEntry {
	e := &renameEntry{original: name, onCommit: onCommit}
	e.ExtendBaseWidget(e)
	e.SetText(name)
	e.OnSubmitted = func(string) { e.commit() }
	return e
}

func (e *renameEntry) commit() {
	if e.Text == e.original {
		return
	}
	e.original = e.Text
	if e.onCommit != nil {
		e.onCommit(e.Text)
	}
}

func (e *renameEntry) FocusLost() {
	e.Entry.FocusLost()
	e.commit()
}

func (e *renameEntry) TypedKey(k *fyne.KeyEvent) {
	if k.Name == fyne.KeyEscape {
		e.SetText(e.original)
		return
	}
	e.Entry.TypedKey(k)
}

// renderCatalogRows rebuilds the list. Rows hold no state of their own:
// every control reports to the wizard, which renders again.
func (a *guiApp) renderCatalogRows(list []catalog.Descriptor) {
	rows := make([]fyne.CanvasObject, 0, len(list)*2)
	for i, d := range list {
		if i > 0 {
			rows = append(rows, widget.NewSeparator())
		}
		rows = append(rows, a.catalogRow(i, len(list), d))
	}
	a.catalogRows.Objects = rows
	a.catalogRows.Refresh()
}

func (a *guiApp) catalogRow(i, n int, d catalog.Descriptor) fyne.CanvasObject {
	id := d.ID

	up := widget.NewButtonWithIcon("", theme.MoveUpIcon(), func() { a.wiz.MoveUp(i) })
	if i == 0 {
		up.Disable()
	}
	down := widget.NewButtonWithIcon("", theme.MoveDownIcon(), func() { a.wiz.MoveDown(i) })
	if i == n-1 {
		down.Disable()
	}

	enabled := widget.NewCheck("", nil)
	enabled.SetChecked(d.Enabled)
	enabled.OnChanged = func(on bool) {
		if a.syncing {
			return
		}
		a.report(a.wiz.SetCatalogEnabled(id, on))
	}

	var name fyne.CanvasObject
	if a.policy.CanRename(id) {
		name = newRenameEntry(d.Name, func(text string) {
			if _, err := a.wiz.RenameCatalog(id, text); err != nil {
				a.report(err)
			}
		})
	} else {
		l := widget.NewLabelWithStyle(textwidth.Truncate(d.Name, maxFixedNameWidth), fyne.TextAlignLeading, fyne.TextStyle{Bold: true})
		if !d.Enabled {
			l.Importance = widget.LowImportance
		}
		name = l
	}

	mode := widget.NewRadioGroup(modeOptions(), nil)
	mode.Horizontal = true
	mode.Required = true
	mode.SetSelected(modeLabel(d.Mode()))
	mode.OnChanged = func(label string) {
		if a.syncing {
			return
		}
		if m, ok := modeFromLabel(label); ok {
			a.report(a.wiz.SetCatalogMode(id, m))
		}
	}

	home := widget.NewCheck("Home", nil)
	home.SetChecked(d.DisplayAtHome)
	home.OnChanged = func(on bool) {
		if a.syncing {
			return
		}
		a.report(a.wiz.SetCatalogHome(id, on))
	}
	shuffle := widget.NewCheck("Shuffle", nil)
	shuffle.SetChecked(d.Shuffle)
	shuffle.OnChanged = func(on bool) {
		if a.syncing {
			return
		}
		a.report(a.wiz.SetCatalogShuffle(id, on))
	}

	top := container.NewBorder(nil, nil, container.NewHBox(up, down, enabled), nil, name)
	controls := container.NewHBox(mode, home, shuffle)
	row := container.NewVBox(top, controls)
	if d.Description != "" {
		row.Add(hint(d.Description))
	}
	if !d.Enabled {
		return dimmed(row)
	}
	return row
}

// dimmed lays a translucent veil over obj. The veil is not interactive, so
// the controls underneath keep working.
func dimmed(obj fyne.CanvasObject) *fyne.Container {
	return container.NewStack(obj, canvas.NewRectangle(veilColor()))
}

func veilColor() color.Color {
	r, g, b, _ := theme.Color(theme.ColorNameBackground).RGBA()
	return color.NRGBA{R: uint8(r >> 8), G: uint8(g >> 8), B: uint8(b >> 8), A: 0x99}
}
