package wizard

import (
	"context"
	"time"

	"github.com/oukeidos/watchly-config/internal/announce"
	"github.com/oukeidos/watchly-config/internal/catalog"
	"github.com/oukeidos/watchly-config/internal/nav"
)

type ToastKind int

const (
	ToastInfo ToastKind = iota
	ToastSuccess
	ToastError
)

// View is a projection of wizard state. The app calls it after every change,
// sometimes while holding its lock, so implementations must not call back
// into the App synchronously.
type View interface {
	RenderNav(nav.State)
	ScrollToTop()
	RenderCatalogs([]catalog.Descriptor)
	RenderForm(Form)
	SetBusy(a Action, busy bool)
	Toast(kind ToastKind, msg string)
	// LoginFailed keeps email in the login form, clears the password and
	// shows msg inline.
	LoginFailed(email, msg string)
	// Confirm asks q and blocks until it is answered or ctx is done.
	Confirm(ctx context.Context, q Question) bool
	// ReplaceLaunchURL swaps the launch URL for one without login params.
	ReplaceLaunchURL(stripped string)
	ShowResult(Result)
	ShowAnnouncement(announce.Banner)
}

// Question is a yes/no prompt. Empty labels fall back to "Yes" and "No".
type Question struct {
	Title   string
	Message string
	Accept  string
	Decline string
	// Destructive marks the accept choice as one that loses data.
	Destructive bool
}

// AcceptLabel is the text of the affirmative choice.
func (q Question) AcceptLabel() string {
	if q.Accept == "" {
		return "Yes"
	}
	return q.Accept
}

// DeclineLabel is the text of the negative choice.
func (q Question) DeclineLabel() string {
	if q.Decline == "" {
		return "No"
	}
	return q.Decline
}

// Result is what the success section shows.
type Result struct {
	ManifestURL string
	InstallURL  string
	Token       string
	ExpiresAt   time.Time
}

// NopView ignores every call. Embed it to implement part of View.
type NopView struct{}

func (NopView) RenderNav(nav.State)                    {}
func (NopView) ScrollToTop()                           {}
func (NopView) RenderCatalogs([]catalog.Descriptor)    {}
func (NopView) RenderForm(Form)                        {}
func (NopView) SetBusy(Action, bool)                   {}
func (NopView) Toast(ToastKind, string)                {}
func (NopView) LoginFailed(string, string)             {}
func (NopView) Confirm(context.Context, Question) bool { return false }
func (NopView) ReplaceLaunchURL(string)                {}
func (NopView) ShowResult(Result)                      {}
func (NopView) ShowAnnouncement(announce.Banner)       {}
