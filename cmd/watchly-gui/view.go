package main

import (
	"context"
	"time"

	"fyne.io/fyne/v2/dialog"
	"fyne.io/fyne/v2/widget"

	"github.com/oukeidos/watchly-config/internal/announce"
	"github.com/oukeidos/watchly-config/internal/catalog"
	"github.com/oukeidos/watchly-config/internal/logger"
	"github.com/oukeidos/watchly-config/internal/nav"
	"github.com/oukeidos/watchly-config/internal/wizard"
)

func (a *guiApp) RenderNav(s nav.State) {
	a.onUI("view.nav", func() {
		for sec, btn := range a.navButtons {
			if s.Disabled[sec] {
				btn.Disable()
			} else {
				btn.Enable()
			}
			btn.Importance = sidebarImportance(sec, s)
			btn.Refresh()
		}
		if obj, ok := a.sections[s.Current]; ok {
			a.body.Objects[0] = obj
			a.body.Refresh()
		}
	})
}

func sidebarImportance(sec nav.Section, s nav.State) widget.Importance {
	if sec == s.Current {
		return widget.HighImportance
	}
	return widget.LowImportance
}

func (a *guiApp) ScrollToTop() {
	a.onUI("view.scroll", func() {
		a.scroll.ScrollToTop()
	})
}

func (a *guiApp) RenderCatalogs(list []catalog.Descriptor) {
	a.onUI("view.catalogs", func() {
		a.syncing = true
		defer func() { a.syncing = false }()
		a.renderCatalogRows(list)
	})
}

func (a *guiApp) RenderForm(f wizard.Form) {
	a.onUI("view.form", func() {
		a.syncing = true
		defer func() { a.syncing = false }()

		if f.LoggedIn {
			a.account.SetText(accountText(f))
		} else {
			a.account.SetText("Not signed in.")
		}

		a.languages = f.Languages
		labels, codes := languageChoices(f.Languages)
		a.languageCodes = codes
		a.languageSelect.SetOptions(labels)
		a.languageSelect.SetSelected(languageLabel(f.Languages, f.Language))

		a.posterSelect.SetSelected(posterLabel(f.PosterProvider))
		if a.posterKey.Text != f.PosterKey {
			a.posterKey.SetText(f.PosterKey)
		}
		a.posterEnabled = f.PosterProvider != ""
		if a.posterEnabled {
			a.posterKey.Enable()
		} else {
			a.posterKey.Disable()
		}
		a.setEnabled(a.validateBtn, a.posterEnabled && !a.busy[wizard.ActionValidate])

		for kind, checks := range a.genreChecks {
			for id, c := range checks {
				c.SetChecked(f.Excluded(kind, id))
			}
		}

		a.installTitle.SetText(f.Framing.Title)
		a.submitBtn.SetText(f.Framing.Button)
		a.exists = f.Exists
		a.setEnabled(a.deleteBtn, a.exists && !a.busy[wizard.ActionDelete])
	})
}

func accountText(f wizard.Form) string {
	who := f.Account
	if who == "" {
		who = f.Identity
	}
	if f.Exists {
		return "Signed in as " + who + ". Your saved settings are loaded."
	}
	return "Signed in as " + who + ". No saved settings yet."
}

func (a *guiApp) SetBusy(action wizard.Action, busy bool) {
	a.onUI("view.busy", func() {
		a.busy[action] = busy
		for _, btn := range a.busyButtons(action) {
			a.setEnabled(btn, !busy && a.allowed(btn))
		}
	})
}

// allowed reports whether the form state permits btn, ignoring busy flags.
func (a *guiApp) allowed(btn *widget.Button) bool {
	switch btn {
	case a.deleteBtn:
		return a.exists
	case a.validateBtn:
		return a.posterEnabled
	}
	return true
}

func (a *guiApp) setEnabled(btn *widget.Button, on bool) {
	if on {
		btn.Enable()
	} else {
		btn.Disable()
	}
}

func (a *guiApp) busyButtons(action wizard.Action) []*widget.Button {
	switch action {
	case wizard.ActionLogin:
		return []*widget.Button{a.loginBtn, a.keyLoginBtn}
	case wizard.ActionSubmit:
		return []*widget.Button{a.submitBtn}
	case wizard.ActionDelete:
		return []*widget.Button{a.deleteBtn, a.logoutBtn}
	case wizard.ActionValidate:
		return []*widget.Button{a.validateBtn}
	}
	return nil
}

func (a *guiApp) Toast(kind wizard.ToastKind, msg string) {
	a.onUI("view.toast", func() {
		a.showToast(kind, msg)
	})
}

func (a *guiApp) LoginFailed(email, msg string) {
	a.onUI("view.login_failed", func() {
		if email != "" {
			a.email.SetText(email)
		}
		a.password.SetText("")
		a.loginError.SetText(msg)
		a.loginError.Show()
	})
}

// Confirm blocks the calling worker until the dialog is answered or ctx is
// done. It must not be called on the UI goroutine.
func (a *guiApp) Confirm(ctx context.Context, q wizard.Question) bool {
	answer := make(chan bool, 1)
	a.onUI("view.confirm", func() {
		d := dialog.NewConfirm(q.Title, q.Message, func(ok bool) {
			answer <- ok
		}, a.window)
		d.SetConfirmText(q.AcceptLabel())
		d.SetDismissText(q.DeclineLabel())
		d.SetConfirmImportance(acceptImportance(q))
		d.Show()
	})
	select {
	case ok := <-answer:
		return ok
	case <-ctx.Done():
		logger.Debug("Confirmation abandoned", "title", q.Title, "error", ctx.Err())
		return false
	}
}

func acceptImportance(q wizard.Question) widget.Importance {
	if q.Destructive {
		return widget.DangerImportance
	}
	return widget.HighImportance
}

func (a *guiApp) ReplaceLaunchURL(stripped string) {
	a.onUI("view.launch_url", func() {
		a.launchURL = stripped
	})
	logger.Debug("Launch URL consumed", "url", stripped)
}

func (a *guiApp) ShowResult(r wizard.Result) {
	a.onUI("view.result", func() {
		a.manifest.SetText(r.ManifestURL)
		if u := parseLink(r.InstallURL); u != nil {
			a.installLink.SetURL(u)
			a.installLink.Show()
		} else {
			a.installLink.Hide()
		}
		a.expiry.SetText(expiryText(r.ExpiresAt, time.Now()))
	})
}

func (a *guiApp) ShowAnnouncement(b announce.Banner) {
	a.onUI("view.announcement", func() {
		if a.cfg.bannerDismissed(b.Text) {
			logger.Debug("Announcement already dismissed")
			return
		}
		a.bannerBody = b.Text
		a.bannerText.SetText(b.Text)
		a.banner.Show()
	})
}

// guiApp is the wizard's view. Every method hands its work to the UI
// goroutine and returns; only Confirm waits.
var _ wizard.View = (*guiApp)(nil)
