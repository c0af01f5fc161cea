// Package wizard is the Watchly configuration flow: sign in, adjust
// preferences and catalogs, then save and install the addon. App owns every
// piece of state; views only render what it hands them.
package wizard

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"strings"
	"sync"
	"time"

	"github.com/oukeidos/watchly-config/internal/announce"
	"github.com/oukeidos/watchly-config/internal/api"
	"github.com/oukeidos/watchly-config/internal/apperrors"
	"github.com/oukeidos/watchly-config/internal/catalog"
	"github.com/oukeidos/watchly-config/internal/genre"
	"github.com/oukeidos/watchly-config/internal/language"
	"github.com/oukeidos/watchly-config/internal/logger"
	"github.com/oukeidos/watchly-config/internal/nav"
	"github.com/oukeidos/watchly-config/internal/session"
)

// ErrCanceled is returned when the user declines a confirmation.
var ErrCanceled = errors.New("canceled by user")

// Backend is the part of the API client the wizard uses.
type Backend interface {
	VerifyIdentity(ctx context.Context, id api.Identity) (*api.IdentityResponse, error)
	SaveSettings(ctx context.Context, req api.TokenRequest) (*api.TokenResponse, error)
	DeleteSettings(ctx context.Context, id api.Identity) (*api.DeleteResponse, error)
	Languages(ctx context.Context) ([]language.Language, error)
	ValidatePosterKey(ctx context.Context, pr api.PosterRating) (*api.ValidateResponse, error)
	Announcement(ctx context.Context) ([]byte, string, error)
}

// Options configures an App. Only Backend is required.
type Options struct {
	Backend         Backend
	Sessions        *session.Manager
	View            View
	Roster          []catalog.Descriptor
	Policy          catalog.Policy
	DefaultLanguage string
	Now             func() time.Time
}

// App is the wizard state. It is safe for concurrent use.
type App struct {
	mu sync.Mutex

	backend  Backend
	sessions *session.Manager
	view     View
	nav      *nav.Controller
	catalogs *catalog.List
	flight   *Flight
	now      func() time.Time

	roster          []catalog.Descriptor
	defaultLanguage string

	cred      session.Credential
	loggedIn  bool
	account   string
	exists    bool
	lang      string
	languages []language.Language

	posterProvider string
	posterKey      string
	excludedMovie  genre.Set
	excludedSeries genre.Set

	result *Result
}

// New builds an App in the logged-out state on the welcome section.
func New(opts Options) (*App, error) {
	if opts.Backend == nil {
		return nil, errors.New("wizard: backend is required")
	}
	a := &App{
		backend:         opts.Backend,
		sessions:        opts.Sessions,
		view:            opts.View,
		nav:             nav.NewController(),
		flight:          NewFlight(),
		now:             opts.Now,
		roster:          opts.Roster,
		defaultLanguage: opts.DefaultLanguage,
	}
	if a.view == nil {
		a.view = NopView{}
	}
	if a.sessions == nil {
		a.sessions = session.NewManager(&session.MemoryStore{}, session.DefaultTTL)
	}
	if a.now == nil {
		a.now = time.Now
	}
	if len(a.roster) == 0 {
		a.roster = catalog.DefaultRoster()
	}
	if a.defaultLanguage == "" {
		a.defaultLanguage = language.DefaultCode
	}
	policy := opts.Policy
	if policy.IsZero() {
		policy = catalog.DefaultPolicy()
	}

	list, err := catalog.NewList(a.roster, policy)
	if err != nil {
		return nil, fmt.Errorf("wizard: invalid catalog roster: %w", err)
	}
	a.catalogs = list
	a.languages = language.Fallback()

	a.nav.OnChange(a.view.RenderNav)
	a.nav.OnScrollReset(a.view.ScrollToTop)
	a.catalogs.OnChange(a.view.RenderCatalogs)

	a.mu.Lock()
	a.resetLocked()
	a.mu.Unlock()
	return a, nil
}

// Boot runs the start-up sequence: load languages and the announcement, then
// sign in from the launch URL's key parameter or from a remembered login.
// A rejected launch key resets the wizard and shows a toast; a rejected
// remembered login resets quietly.
func (a *App) Boot(ctx context.Context, launchURL string) error {
	t, err := a.flight.Begin(ActionBoot)
	if err != nil {
		return err
	}
	defer a.flight.End(t)

	a.LoadLanguages(ctx)
	a.LoadAnnouncement(ctx)

	if key, stripped, ok := ExtractLaunchKey(launchURL); ok {
		a.view.ReplaceLaunchURL(stripped)
		cred := session.FromAuthKey(key)
		logger.Info("Signing in from launch URL", "identity", cred.Describe())
		err := a.verifyAndEnter(ctx, cred, t)
		if err != nil && !errors.Is(err, ErrStale) {
			logger.Warn("Launch URL sign-in failed", "error", err)
			a.Reset()
			a.view.Toast(ToastError, apperrors.PublicMessage(err))
		}
		return err
	}

	stored, ok := a.sessions.Recall()
	if !ok {
		return nil
	}
	err = a.verifyAndEnter(ctx, stored, t)
	if err != nil && !errors.Is(err, ErrStale) {
		logger.Warn("Remembered login rejected; signing out", "identity", stored.Describe(), "error", err)
		a.Reset()
	}
	return err
}

// LoginWithPassword signs in with Stremio account credentials. On failure
// the email stays in the form and the password is cleared.
func (a *App) LoginWithPassword(ctx context.Context, email, password string) error {
	email = strings.TrimSpace(email)
	if email == "" || password == "" {
		return a.loginRejected(email, apperrors.Validation("Please enter your email and password."))
	}
	if !ValidEmail(email) {
		return a.loginRejected(email, apperrors.Validation("Please enter a valid email address."))
	}
	return a.manualLogin(ctx, session.FromPassword(email, password), email)
}

// LoginWithAuthKey signs in with a pasted Stremio auth key.
func (a *App) LoginWithAuthKey(ctx context.Context, key string) error {
	cred := session.FromAuthKey(key)
	if cred.AuthKey == "" {
		return a.loginRejected("", apperrors.Validation("Please enter your Stremio auth key."))
	}
	return a.manualLogin(ctx, cred, "")
}

func (a *App) manualLogin(ctx context.Context, cred session.Credential, email string) error {
	t, err := a.flight.Begin(ActionLogin)
	if err != nil {
		return err
	}
	a.view.SetBusy(ActionLogin, true)
	defer func() {
		a.flight.End(t)
		a.view.SetBusy(ActionLogin, false)
	}()

	err = a.verifyAndEnter(ctx, cred, t)
	if err != nil && !errors.Is(err, ErrStale) {
		logger.Info("Sign-in failed", "identity", cred.Describe(), "error", err)
		a.view.LoginFailed(email, apperrors.PublicMessage(err))
	}
	return err
}

func (a *App) loginRejected(email string, err error) error {
	a.view.LoginFailed(email, apperrors.PublicMessage(err))
	return err
}

func (a *App) verifyAndEnter(ctx context.Context, cred session.Credential, t Ticket) error {
	resp, err := a.backend.VerifyIdentity(ctx, identityOf(cred))
	if !a.flight.Current(t) {
		return ErrStale
	}
	if err != nil {
		return err
	}

	cred = cred.Exclusive()
	a.mu.Lock()
	if !a.flight.Current(t) {
		a.mu.Unlock()
		return ErrStale
	}
	a.cred = cred
	a.loggedIn = true
	a.account = resp.DisplayName()
	a.exists = resp.Exists
	a.result = nil
	if resp.Exists && resp.Settings != nil {
		a.applySettingsLocked(resp.Settings)
	}
	a.nav.Unlock()
	a.nav.Switch(nav.Config)
	a.renderFormLocked()
	a.mu.Unlock()

	if err := a.sessions.Remember(cred); err != nil {
		logger.Warn("Could not remember login", "error", err)
	}
	logger.Info("Signed in", "identity", cred.Describe(), "existing_account", resp.Exists)
	return nil
}

// applySettingsLocked loads a returning user's stored settings. Genre
// exclusions are replaced outright; catalogs are updated field by field.
func (a *App) applySettingsLocked(s *api.Settings) {
	if s.Language != "" {
		a.lang = s.Language
	}
	a.posterProvider, a.posterKey = "", ""
	if pr := s.EffectivePosterRating(); pr != nil {
		if api.ValidProvider(pr.Provider) {
			a.posterProvider, a.posterKey = pr.Provider, pr.APIKey
		} else {
			logger.Warn("Ignoring stored poster rating with unknown provider", "provider", pr.Provider)
		}
	}
	a.excludedMovie = genre.NewSet(s.ExcludedMovieGenres...)
	a.excludedSeries = genre.NewSet(s.ExcludedSeriesGenres...)
	a.catalogs.ApplyRemote(s.Catalogs)
}

// Submit validates the poster key if one is set, then creates or updates
// the account's settings and moves to the success section.
func (a *App) Submit(ctx context.Context) (*Result, error) {
	a.mu.Lock()
	id := identityOf(a.cred)
	pr := api.PosterRating{Provider: a.posterProvider, APIKey: a.posterKey}
	a.mu.Unlock()

	if !id.Present() {
		return nil, a.requireLogin("Please sign in before saving your settings.")
	}

	t, err := a.flight.Begin(ActionSubmit)
	if err != nil {
		return nil, err
	}
	a.view.SetBusy(ActionSubmit, true)
	defer func() {
		a.flight.End(t)
		a.view.SetBusy(ActionSubmit, false)
	}()

	if pr.Provider != "" && pr.APIKey != "" {
		if err := a.checkPoster(ctx, t, pr); err != nil {
			if !errors.Is(err, ErrStale) {
				a.view.Toast(ToastError, apperrors.PublicMessage(err))
			}
			return nil, err
		}
	}

	req := a.Payload()
	resp, err := a.backend.SaveSettings(ctx, req)
	if !a.flight.Current(t) {
		return nil, ErrStale
	}
	if err != nil {
		logger.Warn("Saving settings failed", "error", err)
		a.view.Toast(ToastError, apperrors.PublicMessage(err))
		return nil, err
	}

	res := Result{
		ManifestURL: resp.ManifestURL,
		InstallURL:  InstallURL(resp.ManifestURL),
		Token:       resp.Token,
	}
	if resp.ExpiresInSeconds != nil && *resp.ExpiresInSeconds > 0 {
		res.ExpiresAt = a.now().Add(time.Duration(*resp.ExpiresInSeconds) * time.Second)
	}

	a.mu.Lock()
	if !a.flight.Current(t) {
		a.mu.Unlock()
		return nil, ErrStale
	}
	a.result = &res
	a.exists = true
	a.nav.Switch(nav.Success)
	a.renderFormLocked()
	a.view.ShowResult(res)
	a.mu.Unlock()

	logger.Info("Settings saved", "token", logger.RedactToken(res.Token), "catalogs", len(req.Catalogs))
	return &res, nil
}

// CheckPosterKey validates the current poster rating key on its own.
func (a *App) CheckPosterKey(ctx context.Context) error {
	a.mu.Lock()
	pr := api.PosterRating{Provider: a.posterProvider, APIKey: a.posterKey}
	a.mu.Unlock()
	if pr.Provider == "" || pr.APIKey == "" {
		return apperrors.Validation("API key cannot be empty")
	}

	t, err := a.flight.Begin(ActionSubmit)
	if err != nil {
		return err
	}
	defer a.flight.End(t)

	err = a.checkPoster(ctx, t, pr)
	switch {
	case errors.Is(err, ErrStale):
	case err != nil:
		a.view.Toast(ToastError, apperrors.PublicMessage(err))
	default:
		a.view.Toast(ToastSuccess, "Poster rating key is valid.")
	}
	return err
}

// checkPoster runs the server-side key check. An invalid key is removed
// from the form.
func (a *App) checkPoster(ctx context.Context, t Ticket, pr api.PosterRating) error {
	if !api.ValidProvider(pr.Provider) {
		return apperrors.Validation(fmt.Sprintf("Unknown poster rating provider %q.", pr.Provider))
	}
	vt, err := a.flight.Begin(ActionValidate)
	if err != nil {
		return err
	}
	a.view.SetBusy(ActionValidate, true)
	defer func() {
		a.flight.End(vt)
		a.view.SetBusy(ActionValidate, false)
	}()

	resp, err := a.backend.ValidatePosterKey(ctx, pr)
	if !a.flight.Current(t) {
		return ErrStale
	}
	if err != nil {
		return err
	}
	if resp.Valid {
		return nil
	}

	msg := strings.TrimSpace(resp.Message)
	if msg == "" {
		msg = "Invalid poster rating API key."
	}
	a.mu.Lock()
	if a.posterKey == pr.APIKey {
		a.posterKey = ""
	}
	a.renderFormLocked()
	a.mu.Unlock()
	logger.Info("Poster rating key rejected", "provider", pr.Provider)
	return apperrors.Validation(msg)
}

var deleteQuestion = Question{
	Title:       "Delete settings",
	Message:     "This removes your Watchly settings and the installed addon stops working. Continue?",
	Accept:      "Delete",
	Decline:     "Cancel",
	Destructive: true,
}

// Delete removes the account's settings after confirmation and resets the
// wizard.
func (a *App) Delete(ctx context.Context) error {
	a.mu.Lock()
	id := identityOf(a.cred)
	a.mu.Unlock()

	if !id.Present() {
		return a.requireLogin("Please sign in before deleting your settings.")
	}
	if !a.view.Confirm(ctx, deleteQuestion) {
		return ErrCanceled
	}

	t, err := a.flight.Begin(ActionDelete)
	if err != nil {
		return err
	}
	a.view.SetBusy(ActionDelete, true)
	defer func() {
		a.flight.End(t)
		a.view.SetBusy(ActionDelete, false)
	}()

	resp, err := a.backend.DeleteSettings(ctx, id)
	if !a.flight.Current(t) {
		return ErrStale
	}
	if err != nil {
		logger.Warn("Deleting settings failed", "error", err)
		a.view.Toast(ToastError, apperrors.PublicMessage(err))
		return err
	}

	a.Reset()
	msg := strings.TrimSpace(resp.Detail)
	if msg == "" {
		msg = "Settings deleted."
	}
	a.view.Toast(ToastSuccess, msg)
	return nil
}

func (a *App) requireLogin(msg string) error {
	err := apperrors.Validation(msg)
	a.mu.Lock()
	a.nav.Switch(nav.Login)
	a.mu.Unlock()
	a.view.Toast(ToastError, msg)
	return err
}

// Logout forgets the login and returns to the welcome section.
func (a *App) Logout() {
	a.Reset()
	a.view.Toast(ToastInfo, "Signed out.")
}

// Reset drops all state, forgets the remembered login and re-locks
// navigation. Responses to requests started before the reset are ignored.
func (a *App) Reset() {
	a.flight.Invalidate()
	a.mu.Lock()
	a.resetLocked()
	a.mu.Unlock()
	if err := a.sessions.Forget(); err != nil {
		logger.Warn("Could not clear remembered login", "error", err)
	}
}

func (a *App) resetLocked() {
	a.cred = session.Credential{}
	a.loggedIn = false
	a.account = ""
	a.exists = false
	a.lang = a.defaultLanguage
	a.posterProvider, a.posterKey = "", ""
	a.excludedMovie = genre.NewSet()
	a.excludedSeries = genre.NewSet()
	a.result = nil
	if err := a.catalogs.Set(a.roster); err != nil {
		logger.Error("Default catalog roster rejected", "error", err)
	}
	a.nav.LockForLoggedOut()
	a.nav.Switch(nav.Welcome)
	a.renderFormLocked()
}

// LoadLanguages fetches the language list, falling back to English only.
func (a *App) LoadLanguages(ctx context.Context) []language.Language {
	langs, err := a.backend.Languages(ctx)
	if err != nil || len(langs) == 0 {
		logger.Warn("Language list unavailable; using fallback", "error", err)
		langs = language.Fallback()
	}
	a.mu.Lock()
	defer a.mu.Unlock()
	a.languages = language.Sort(langs, a.defaultLanguage)
	a.renderFormLocked()
	out := make([]language.Language, len(a.languages))
	copy(out, a.languages)
	return out
}

// LoadAnnouncement shows the banner if the backend has one. Errors are
// logged and otherwise ignored.
func (a *App) LoadAnnouncement(ctx context.Context) announce.Banner {
	body, ctype, err := a.backend.Announcement(ctx)
	if err != nil {
		logger.Debug("No announcement", "error", err)
		return announce.Banner{}
	}
	b := announce.Parse(body, ctype)
	if !b.Empty() {
		a.view.ShowAnnouncement(b)
	}
	return b
}

// Navigate handles a sidebar press.
func (a *App) Navigate(s nav.Section) bool {
	a.mu.Lock()
	defer a.mu.Unlock()
	return a.nav.Click(s)
}

// SetLanguage selects the content language. The code must be one of the
// loaded languages and is kept as the backend listed it; "" selects the
// default.
func (a *App) SetLanguage(code string) error {
	code = strings.TrimSpace(code)
	a.mu.Lock()
	defer a.mu.Unlock()
	if code == "" {
		code = a.defaultLanguage
	}
	l, ok := language.Find(a.languages, code)
	switch {
	case ok:
		code = l.Code
	case strings.EqualFold(code, a.defaultLanguage):
		code = a.defaultLanguage
	default:
		return apperrors.Validation(fmt.Sprintf("Language %q is not offered by the backend.", code))
	}
	a.lang = code
	a.renderFormLocked()
	return nil
}

// SetPosterProvider selects a poster rating provider. "" or "none" turns the
// feature off and clears the key.
func (a *App) SetPosterProvider(provider string) error {
	provider = strings.TrimSpace(strings.ToLower(provider))
	if provider == "none" {
		provider = ""
	}
	if provider != "" && !api.ValidProvider(provider) {
		return apperrors.Validation(fmt.Sprintf("Unknown poster rating provider %q.", provider))
	}
	a.mu.Lock()
	defer a.mu.Unlock()
	a.posterProvider = provider
	if provider == "" {
		a.posterKey = ""
	}
	a.renderFormLocked()
	return nil
}

// SetPosterKey stores the poster rating API key.
func (a *App) SetPosterKey(key string) {
	a.mu.Lock()
	defer a.mu.Unlock()
	a.posterKey = strings.TrimSpace(key)
	a.renderFormLocked()
}

// SetGenreExcluded ticks or clears one genre checkbox.
func (a *App) SetGenreExcluded(kind genre.Kind, ref string, excluded bool) error {
	g, ok := genre.Lookup(kind, ref)
	if !ok {
		return apperrors.Validation(fmt.Sprintf("Unknown %s genre %q.", kind, ref))
	}
	a.mu.Lock()
	defer a.mu.Unlock()
	set := a.excludedMovie
	if kind == genre.Series {
		set = a.excludedSeries
	}
	if excluded {
		set[g.ID] = struct{}{}
	} else {
		delete(set, g.ID)
	}
	a.renderFormLocked()
	return nil
}

// SetExcludedGenres replaces every checkbox of one kind.
func (a *App) SetExcludedGenres(kind genre.Kind, refs []string) error {
	set, err := genre.Resolve(kind, refs)
	if err != nil {
		return apperrors.New(apperrors.KindValidation, err.Error(), err)
	}
	a.mu.Lock()
	defer a.mu.Unlock()
	if kind == genre.Series {
		a.excludedSeries = set
	} else {
		a.excludedMovie = set
	}
	a.renderFormLocked()
	return nil
}

// Catalogs returns the catalog list in order.
func (a *App) Catalogs() []catalog.Descriptor {
	a.mu.Lock()
	defer a.mu.Unlock()
	return a.catalogs.Catalogs()
}

// CanRename reports whether the catalog accepts a custom name.
func (a *App) CanRename(id string) bool {
	a.mu.Lock()
	defer a.mu.Unlock()
	return a.catalogs.CanRename(id)
}

func (a *App) MoveUp(i int) bool {
	a.mu.Lock()
	defer a.mu.Unlock()
	return a.catalogs.MoveUp(i)
}

func (a *App) MoveDown(i int) bool {
	a.mu.Lock()
	defer a.mu.Unlock()
	return a.catalogs.MoveDown(i)
}

// RenameCatalog commits an in-place edit. Blank names keep the old one.
func (a *App) RenameCatalog(id, name string) (bool, error) {
	a.mu.Lock()
	defer a.mu.Unlock()
	return a.catalogs.Rename(id, name)
}

func (a *App) SetCatalogEnabled(id string, on bool) error {
	return a.withCatalogs(func(l *catalog.List) error { return l.SetEnabled(id, on) })
}

func (a *App) SetCatalogMode(id string, m catalog.Mode) error {
	return a.withCatalogs(func(l *catalog.List) error { return l.SetMode(id, m) })
}

func (a *App) SetCatalogHome(id string, on bool) error {
	return a.withCatalogs(func(l *catalog.List) error { return l.SetDisplayAtHome(id, on) })
}

func (a *App) SetCatalogShuffle(id string, on bool) error {
	return a.withCatalogs(func(l *catalog.List) error { return l.SetShuffle(id, on) })
}

func (a *App) withCatalogs(fn func(*catalog.List) error) error {
	a.mu.Lock()
	defer a.mu.Unlock()
	if err := fn(a.catalogs); err != nil {
		return apperrors.New(apperrors.KindValidation, err.Error(), err)
	}
	return nil
}

// Payload assembles the save request from the model.
func (a *App) Payload() api.TokenRequest {
	a.mu.Lock()
	defer a.mu.Unlock()
	req := api.TokenRequest{
		Identity:             identityOf(a.cred),
		Catalogs:             a.catalogs.Serialize(),
		Language:             a.lang,
		ExcludedMovieGenres:  a.excludedMovie.IDs(),
		ExcludedSeriesGenres: a.excludedSeries.IDs(),
	}
	if req.Language == "" {
		req.Language = a.defaultLanguage
	}
	if a.posterProvider != "" && a.posterKey != "" {
		req.PosterRating = &api.PosterRating{Provider: a.posterProvider, APIKey: a.posterKey}
		if a.posterProvider == api.ProviderRPDB {
			req.RPDBKey = a.posterKey
		}
	}
	return req
}

// ExportPayload renders the save request as indented JSON with the identity
// removed and keys redacted.
func (a *App) ExportPayload() ([]byte, error) {
	req := a.Payload()
	req.Identity = api.Identity{}
	if req.PosterRating != nil {
		pr := *req.PosterRating
		pr.APIKey = logger.RedactToken(pr.APIKey)
		req.PosterRating = &pr
	}
	if req.RPDBKey != "" {
		req.RPDBKey = logger.RedactToken(req.RPDBKey)
	}
	return json.MarshalIndent(req, "", "  ")
}

// Snapshot is a read-only copy of the wizard state.
type Snapshot struct {
	Nav      nav.State
	Form     Form
	Catalogs []catalog.Descriptor
	Result   *Result
}

// State returns a snapshot.
func (a *App) State() Snapshot {
	a.mu.Lock()
	defer a.mu.Unlock()
	s := Snapshot{
		Nav:      a.nav.State(),
		Form:     a.formLocked(),
		Catalogs: a.catalogs.Catalogs(),
	}
	if a.result != nil {
		r := *a.result
		s.Result = &r
	}
	return s
}

// Busy reports whether action is in flight.
func (a *App) Busy(action Action) bool {
	return a.flight.Busy(action)
}

func (a *App) framingLocked() Framing {
	if a.exists {
		return updateFraming
	}
	return createFraming
}

func (a *App) formLocked() Form {
	langs := make([]language.Language, len(a.languages))
	copy(langs, a.languages)
	return Form{
		LoggedIn:       a.loggedIn,
		Account:        a.account,
		Identity:       a.cred.Kind().String(),
		Exists:         a.exists,
		Framing:        a.framingLocked(),
		Language:       a.lang,
		Languages:      langs,
		PosterProvider: a.posterProvider,
		PosterKey:      a.posterKey,
		ExcludedMovie:  a.excludedMovie.IDs(),
		ExcludedSeries: a.excludedSeries.IDs(),
	}
}

func (a *App) renderFormLocked() {
	a.view.RenderForm(a.formLocked())
}

func identityOf(c session.Credential) api.Identity {
	switch c.Kind() {
	case session.KindAuthKey:
		return api.Identity{AuthKey: c.AuthKey}
	case session.KindPassword:
		return api.Identity{Email: c.Email, Password: c.Password}
	}
	return api.Identity{}
}
