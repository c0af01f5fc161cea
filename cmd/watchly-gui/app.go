package main

import (
	"context"
	"errors"
	"image/color"
	"sync"
	"sync/atomic"
	"time"

	"fyne.io/fyne/v2"
	"fyne.io/fyne/v2/canvas"
	"fyne.io/fyne/v2/container"
	"fyne.io/fyne/v2/layout"
	"fyne.io/fyne/v2/theme"
	"fyne.io/fyne/v2/widget"

	"github.com/oukeidos/watchly-config/internal/apperrors"
	"github.com/oukeidos/watchly-config/internal/catalog"
	"github.com/oukeidos/watchly-config/internal/genre"
	"github.com/oukeidos/watchly-config/internal/language"
	"github.com/oukeidos/watchly-config/internal/logger"
	"github.com/oukeidos/watchly-config/internal/nav"
	"github.com/oukeidos/watchly-config/internal/setup"
	"github.com/oukeidos/watchly-config/internal/wizard"
)

const toastDuration = 4 * time.Second

type guiApp struct {
	window fyne.Window
	prefs  fyne.Preferences
	cfg    guiConfig
	env    *setup.Env
	policy catalog.Policy
	wiz    *wizard.App

	reqMu     sync.Mutex
	reqCtx    context.Context
	reqCancel context.CancelFunc

	// syncing is set on the UI goroutine while the view pushes model state
	// into widgets, so their change callbacks do not echo it back.
	syncing         bool
	busy            map[wizard.Action]bool
	exists          bool
	posterEnabled   bool
	toastSeq        atomic.Uint64
	panicNoticeOnce sync.Once
	launchURL       string

	navButtons map[nav.Section]*widget.Button
	sections   map[nav.Section]fyne.CanvasObject
	body       *fyne.Container
	scroll     *container.Scroll

	banner     *fyne.Container
	bannerText *widget.Label
	bannerBody string

	toast     *fyne.Container
	toastBg   *canvas.Rectangle
	toastText *widget.Label

	email       *widget.Entry
	password    *widget.Entry
	authKey     *widget.Entry
	loginError  *widget.Label
	loginBtn    *widget.Button
	keyLoginBtn *widget.Button

	account        *widget.Label
	languageSelect *widget.Select
	languageCodes  map[string]string
	languages      []language.Language
	posterSelect   *widget.Select
	posterKey      *widget.Entry
	validateBtn    *widget.Button
	genreChecks    map[genre.Kind]map[string]*widget.Check

	catalogRows *fyne.Container

	installTitle *widget.Label
	submitBtn    *widget.Button
	deleteBtn    *widget.Button
	logoutBtn    *widget.Button
	exportBtn    *widget.Button

	manifest    *widget.Entry
	installLink *widget.Hyperlink
	expiry      *widget.Label
}

func newGUIApp(w fyne.Window, env *setup.Env, prefs fyne.Preferences, cfg guiConfig) (*guiApp, error) {
	a := &guiApp{
		window: w,
		prefs:  prefs,
		cfg:    cfg,
		env:    env,
		policy: env.Policy,
		busy:   make(map[wizard.Action]bool),
	}
	if a.policy.IsZero() {
		a.policy = catalog.DefaultPolicy()
	}
	a.reqCtx, a.reqCancel = context.WithCancel(context.Background())

	a.setupUI()
	wiz, err := env.Wizard(a)
	if err != nil {
		return nil, err
	}
	a.wiz = wiz
	return a, nil
}

func (a *guiApp) setupUI() {
	a.sections = map[nav.Section]fyne.CanvasObject{
		nav.Welcome:  a.buildWelcome(),
		nav.Login:    a.buildLogin(),
		nav.Config:   a.buildPreferences(),
		nav.Catalogs: a.buildCatalogs(),
		nav.Install:  a.buildInstall(),
		nav.Success:  a.buildSuccess(),
	}

	a.body = container.NewStack(a.sections[nav.Welcome])
	a.scroll = container.NewVScroll(container.NewPadded(a.body))

	a.bannerText = widget.NewLabel("")
	a.bannerText.Wrapping = fyne.TextWrapWord
	dismiss := widget.NewButtonWithIcon("", theme.CancelIcon(), a.dismissBanner)
	dismiss.Importance = widget.LowImportance
	a.banner = container.NewBorder(nil, nil, widget.NewIcon(theme.InfoIcon()), dismiss, a.bannerText)
	a.banner.Hide()

	a.toastBg = canvas.NewRectangle(theme.Color(theme.ColorNamePrimary))
	a.toastBg.CornerRadius = theme.InputRadiusSize()
	a.toastText = widget.NewLabel("")
	a.toastText.Wrapping = fyne.TextWrapWord
	a.toast = container.NewStack(a.toastBg, container.NewPadded(a.toastText))
	a.toast.Hide()

	content := container.NewBorder(a.banner, a.toast, nil, nil, a.scroll)
	split := container.NewHSplit(a.buildSidebar(), content)
	split.Offset = 0.2
	a.window.SetContent(split)
}

func (a *guiApp) buildSidebar() fyne.CanvasObject {
	a.navButtons = make(map[nav.Section]*widget.Button, len(nav.Sections))
	items := container.NewVBox()
	for _, s := range nav.Sections {
		btn := widget.NewButton(s.Title(), func() {
			a.wiz.Navigate(s)
		})
		btn.Alignment = widget.ButtonAlignLeading
		a.navButtons[s] = btn
		items.Add(btn)
	}
	about := widget.NewButtonWithIcon("About", theme.InfoIcon(), func() {
		showAbout(a.window)
	})
	about.Importance = widget.LowImportance

	title := canvas.NewText("Watchly", theme.Color(theme.ColorNamePrimary))
	title.TextSize = 22
	title.TextStyle = fyne.TextStyle{Bold: true}
	return container.NewBorder(
		container.NewPadded(title),
		container.NewPadded(about),
		nil, nil,
		container.NewPadded(items),
	)
}

// requestContext is shared by every network call until the next cancel.
func (a *guiApp) requestContext() context.Context {
	a.reqMu.Lock()
	defer a.reqMu.Unlock()
	return a.reqCtx
}

func (a *guiApp) cancelRequests(reason string) {
	a.reqMu.Lock()
	defer a.reqMu.Unlock()
	logger.Info("Cancelling requests", "reason", reason)
	a.reqCancel()
	a.reqCtx, a.reqCancel = context.WithCancel(context.Background())
}

// run executes a wizard call off the UI goroutine. The wizard reports its
// own failures through the view; only a busy claim is shown here.
func (a *guiApp) run(scope string, fn func(ctx context.Context) error) {
	ctx := a.requestContext()
	a.background(scope, func() {
		err := fn(ctx)
		switch {
		case err == nil:
		case apperrors.Is(err, apperrors.KindBusy):
			a.Toast(wizard.ToastInfo, apperrors.PublicMessage(err))
		case errors.Is(err, context.Canceled), errors.Is(err, wizard.ErrStale):
			logger.Debug("Request dropped", "scope", scope, "error", err)
		default:
			logger.Debug("Request failed", "scope", scope, "error", err)
		}
	})
}

// report shows a synchronous setter failure. It runs on the UI goroutine.
func (a *guiApp) report(err error) {
	if err == nil {
		return
	}
	logger.Debug("Input rejected", "error", err)
	a.showToast(wizard.ToastError, apperrors.PublicMessage(err))
}

func (a *guiApp) showToast(kind wizard.ToastKind, msg string) {
	seq := a.toastSeq.Add(1)
	a.toastBg.FillColor = theme.Color(toastColor(kind))
	a.toastBg.Refresh()
	a.toastText.SetText(msg)
	a.toast.Show()

	a.background("ui.toast.hide", func() {
		time.Sleep(toastDuration)
		a.onUI("ui.toast.hide", func() {
			if a.toastSeq.Load() == seq {
				a.toast.Hide()
			}
		})
	})
}

func (a *guiApp) dismissBanner() {
	a.banner.Hide()
	a.cfg.DismissedBanner = bannerDigest(a.bannerBody)
	saveConfig(a.prefs, a.cfg)
}

func (a *guiApp) boot() {
	launchURL := a.launchURL
	a.run("wizard.boot", func(ctx context.Context) error {
		return a.wiz.Boot(ctx, launchURL)
	})
}

func (a *guiApp) close() {
	a.cancelRequests("window closed")
	size := a.window.Canvas().Size()
	a.cfg.WindowWidth, a.cfg.WindowHeight = clampWindow(size.Width, size.Height)
	saveConfig(a.prefs, a.cfg)
}

func heading(text string) *widget.Label {
	return widget.NewLabelWithStyle(text, fyne.TextAlignLeading, fyne.TextStyle{Bold: true})
}

func hint(text string) *widget.Label {
	l := widget.NewLabel(text)
	l.Wrapping = fyne.TextWrapWord
	l.Importance = widget.LowImportance
	return l
}

func separatorRow() fyne.CanvasObject {
	line := canvas.NewRectangle(color.Transparent)
	line.SetMinSize(fyne.NewSize(1, theme.Padding()*2))
	return container.New(layout.NewVBoxLayout(), line, widget.NewSeparator())
}
