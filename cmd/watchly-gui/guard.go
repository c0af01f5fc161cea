package main

import (
	"fmt"
	"runtime/debug"
	"strings"

	"fyne.io/fyne/v2"
	"fyne.io/fyne/v2/dialog"

	"github.com/oukeidos/watchly-config/internal/logger"
)

// guarded runs fn and turns a panic into an error log plus a call to
// onPanic. The panic does not propagate.
func guarded(scope string, onPanic func(scope string), fn func()) {
	defer func() {
		r := recover()
		if r == nil {
			return
		}
		logger.Error("Recovered panic", "scope", scope, "panic", fmt.Sprint(r), "stack", string(debug.Stack()))
		if onPanic != nil {
			onPanic(scope)
		}
	}()
	fn()
}

// background runs fn on a new goroutine.
func (a *guiApp) background(scope string, fn func()) {
	go guarded(scope, a.recovered, fn)
}

// onUI queues fn for the UI goroutine.
func (a *guiApp) onUI(scope string, fn func()) {
	guarded(scope+".dispatch", a.recovered, func() {
		fyne.Do(func() {
			guarded(scope, a.recovered, fn)
		})
	})
}

// recovered stops in-flight requests, gives the buttons back and tells the
// user once per run. Wizard state is kept so nothing typed is lost.
func (a *guiApp) recovered(scope string) {
	if a == nil || fyne.CurrentApp() == nil || strings.HasPrefix(scope, "panic.") {
		return
	}
	a.cancelRequests("panic recovered: " + scope)
	a.onUI("panic.reset_busy", func() {
		for action := range a.busy {
			a.busy[action] = false
			for _, btn := range a.busyButtons(action) {
				a.setEnabled(btn, a.allowed(btn))
			}
		}
	})
	a.panicNoticeOnce.Do(func() {
		a.onUI("panic.notice", func() {
			dialog.ShowInformation(
				"Unexpected Error",
				"Something went wrong and the running request was stopped. Please try again; if it keeps happening, restart Watchly.",
				a.window,
			)
		})
	})
}
