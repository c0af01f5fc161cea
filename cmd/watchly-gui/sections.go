package main

import (
	"context"
	"fmt"
	"net/url"

	"fyne.io/fyne/v2"
	"fyne.io/fyne/v2/container"
	"fyne.io/fyne/v2/dialog"
	"fyne.io/fyne/v2/theme"
	"fyne.io/fyne/v2/widget"

	"github.com/oukeidos/watchly-config/internal/genre"
	"github.com/oukeidos/watchly-config/internal/logger"
	"github.com/oukeidos/watchly-config/internal/nav"
	"github.com/oukeidos/watchly-config/internal/wizard"
)

func (a *guiApp) buildWelcome() fyne.CanvasObject {
	title := widget.NewLabelWithStyle("Personal recommendations in Stremio", fyne.TextAlignLeading, fyne.TextStyle{Bold: true})
	intro := hint("Watchly builds catalogs from what you watch and love in Stremio. " +
		"Sign in with your Stremio account, pick your language and genres, arrange the catalogs, " +
		"then install the addon with one click.")
	start := widget.NewButtonWithIcon("Get started", theme.NavigateNextIcon(), func() {
		a.wiz.Navigate(nav.Login)
	})
	start.Importance = widget.HighImportance
	return container.NewVBox(title, intro, container.NewHBox(start))
}

func (a *guiApp) buildLogin() fyne.CanvasObject {
	a.email = widget.NewEntry()
	a.email.SetPlaceHolder("you@example.com")
	a.password = widget.NewPasswordEntry()
	a.password.SetPlaceHolder("Stremio password")
	a.loginError = widget.NewLabel("")
	a.loginError.Importance = widget.DangerImportance
	a.loginError.Wrapping = fyne.TextWrapWord
	a.loginError.Hide()

	submitPassword := func() {
		email, password := a.email.Text, a.password.Text
		a.loginError.Hide()
		a.run("wizard.login", func(ctx context.Context) error {
			return a.wiz.LoginWithPassword(ctx, email, password)
		})
	}
	a.password.OnSubmitted = func(string) { submitPassword() }
	a.loginBtn = widget.NewButton("Sign in", submitPassword)
	a.loginBtn.Importance = widget.HighImportance

	a.authKey = widget.NewPasswordEntry()
	a.authKey.SetPlaceHolder("Paste your Stremio auth key")
	submitKey := func() {
		key := a.authKey.Text
		a.loginError.Hide()
		a.run("wizard.login_key", func(ctx context.Context) error {
			return a.wiz.LoginWithAuthKey(ctx, key)
		})
	}
	a.authKey.OnSubmitted = func(string) { submitKey() }
	a.keyLoginBtn = widget.NewButton("Use auth key", submitKey)

	form := widget.NewForm(
		widget.NewFormItem("Email", a.email),
		widget.NewFormItem("Password", a.password),
	)
	keyForm := widget.NewForm(widget.NewFormItem("Auth key", a.authKey))

	return container.NewVBox(
		heading("Sign in with Stremio"),
		hint("Your credentials go only to the Watchly backend, which uses them to read your library."),
		form,
		container.NewHBox(a.loginBtn),
		a.loginError,
		separatorRow(),
		heading("Or use an auth key"),
		hint("If you signed in to Stremio through a third party, copy the auth key from the Stremio web app."),
		keyForm,
		container.NewHBox(a.keyLoginBtn),
	)
}

func (a *guiApp) buildPreferences() fyne.CanvasObject {
	a.account = widget.NewLabel("")
	a.account.Importance = widget.LowImportance

	a.languageSelect = widget.NewSelect(nil, func(label string) {
		if a.syncing {
			return
		}
		code, ok := a.languageCodes[label]
		if !ok {
			return
		}
		a.report(a.wiz.SetLanguage(code))
	})

	a.posterSelect = widget.NewSelect(posterOptions(), func(label string) {
		if a.syncing {
			return
		}
		a.report(a.wiz.SetPosterProvider(posterValue(label)))
	})
	a.posterKey = widget.NewPasswordEntry()
	a.posterKey.SetPlaceHolder("Poster rating API key")
	a.posterKey.OnChanged = func(key string) {
		if a.syncing {
			return
		}
		a.wiz.SetPosterKey(key)
	}
	a.validateBtn = widget.NewButtonWithIcon("Check key", theme.ConfirmIcon(), func() {
		a.run("wizard.check_poster", a.wiz.CheckPosterKey)
	})

	a.genreChecks = map[genre.Kind]map[string]*widget.Check{}
	movies := a.genreGrid(genre.Movie)
	series := a.genreGrid(genre.Series)

	next := widget.NewButtonWithIcon("Next: catalogs", theme.NavigateNextIcon(), func() {
		a.wiz.Navigate(nav.Catalogs)
	})

	return container.NewVBox(
		heading("Preferences"),
		a.account,
		widget.NewForm(
			widget.NewFormItem("Language", a.languageSelect),
			widget.NewFormItem("Poster ratings", a.posterSelect),
			widget.NewFormItem("API key", container.NewBorder(nil, nil, nil, a.validateBtn, a.posterKey)),
		),
		separatorRow(),
		heading("Exclude movie genres"),
		movies,
		heading("Exclude series genres"),
		series,
		container.NewHBox(next),
	)
}

func (a *guiApp) genreGrid(kind genre.Kind) fyne.CanvasObject {
	checks := make(map[string]*widget.Check)
	grid := container.NewGridWithColumns(3)
	for _, g := range genre.All(kind) {
		id := g.ID
		c := widget.NewCheck(g.Name, func(on bool) {
			if a.syncing {
				return
			}
			a.report(a.wiz.SetGenreExcluded(kind, id, on))
		})
		checks[id] = c
		grid.Add(c)
	}
	a.genreChecks[kind] = checks
	return grid
}

func (a *guiApp) buildCatalogs() fyne.CanvasObject {
	a.catalogRows = container.NewVBox()
	next := widget.NewButtonWithIcon("Next: install", theme.NavigateNextIcon(), func() {
		a.wiz.Navigate(nav.Install)
	})
	return container.NewVBox(
		heading("Catalogs"),
		hint("Use the arrows to reorder. Untick a catalog to hide it. Names in a text box can be changed; press Enter to keep a new name or Escape to undo."),
		a.catalogRows,
		container.NewHBox(next),
	)
}

func (a *guiApp) buildInstall() fyne.CanvasObject {
	a.installTitle = heading("")
	a.submitBtn = widget.NewButtonWithIcon("", theme.DownloadIcon(), func() {
		a.run("wizard.submit", func(ctx context.Context) error {
			_, err := a.wiz.Submit(ctx)
			return err
		})
	})
	a.submitBtn.Importance = widget.HighImportance

	a.exportBtn = widget.NewButtonWithIcon("Export settings", theme.DocumentSaveIcon(), a.exportSettings)
	a.exportBtn.Importance = widget.LowImportance

	a.deleteBtn = widget.NewButtonWithIcon("Delete settings", theme.DeleteIcon(), func() {
		a.run("wizard.delete", a.wiz.Delete)
	})
	a.deleteBtn.Importance = widget.DangerImportance

	a.logoutBtn = widget.NewButtonWithIcon("Sign out", theme.LogoutIcon(), func() {
		a.cancelRequests("sign out")
		a.wiz.Logout()
	})

	return container.NewVBox(
		a.installTitle,
		hint("Saving stores your preferences with Watchly and gives you a personal addon link. Saving again updates the same addon."),
		container.NewHBox(a.submitBtn, a.exportBtn),
		separatorRow(),
		heading("Account"),
		container.NewHBox(a.logoutBtn, a.deleteBtn),
	)
}

func (a *guiApp) buildSuccess() fyne.CanvasObject {
	a.manifest = widget.NewEntry()
	a.manifest.Disable()
	copyBtn := widget.NewButtonWithIcon("Copy", theme.ContentCopyIcon(), func() {
		fyne.CurrentApp().Clipboard().SetContent(a.manifest.Text)
		a.showToast(wizard.ToastSuccess, "Manifest URL copied.")
	})
	a.installLink = widget.NewHyperlink("Install in Stremio", nil)
	a.expiry = hint("")
	back := widget.NewButtonWithIcon("Back to preferences", theme.NavigateBackIcon(), func() {
		a.wiz.Navigate(nav.Config)
	})

	return container.NewVBox(
		heading("Your addon is ready"),
		hint("Open the link below to install it in Stremio, or paste the manifest URL into Stremio's addon search."),
		container.NewBorder(nil, nil, nil, copyBtn, a.manifest),
		a.installLink,
		a.expiry,
		container.NewHBox(back),
	)
}

// exportSettings saves the payload that would be submitted, with secrets
// masked.
func (a *guiApp) exportSettings() {
	data, err := a.wiz.ExportPayload()
	if err != nil {
		a.report(err)
		return
	}
	save := dialog.NewFileSave(func(w fyne.URIWriteCloser, err error) {
		if err != nil {
			dialog.ShowError(err, a.window)
			return
		}
		if w == nil {
			return
		}
		defer w.Close()
		if _, err := w.Write(append(data, '\n')); err != nil {
			logger.Error("Failed to export settings", "uri", w.URI().String(), "error", err)
			dialog.ShowError(fmt.Errorf("failed to write settings: %w", err), a.window)
			return
		}
		a.showToast(wizard.ToastSuccess, "Settings exported to "+w.URI().Name()+".")
	}, a.window)
	save.SetFileName("watchly-settings.json")
	save.Show()
}

func parseLink(raw string) *url.URL {
	u, err := url.Parse(raw)
	if err != nil || u.Scheme == "" {
		return nil
	}
	return u
}
