package main

import (
	"context"
	"fmt"
	"io"

	"github.com/oukeidos/watchly-config/internal/logger"
	"github.com/oukeidos/watchly-config/internal/prompt"
	"github.com/oukeidos/watchly-config/internal/wizard"
)

// cliView renders the wizard to a terminal. Error toasts are not printed
// because the failing operation also returns the error to cobra.
type cliView struct {
	wizard.NopView

	out       io.Writer
	confirmer *prompt.Confirmer
	assumeYes bool

	confirmErr error
}

func newCLIView(out io.Writer, c *prompt.Confirmer, assumeYes bool) *cliView {
	return &cliView{out: out, confirmer: c, assumeYes: assumeYes}
}

func (v *cliView) notice(msg string) {
	fmt.Fprintln(v.out, msg)
}

func (v *cliView) Toast(kind wizard.ToastKind, msg string) {
	if kind == wizard.ToastError {
		logger.Debug("Toast", "message", msg)
		return
	}
	v.notice(msg)
}

func (v *cliView) Confirm(_ context.Context, q wizard.Question) bool {
	ok, err := v.confirmer.Confirm(fmt.Sprintf("%s: %s", q.Title, q.Message), "--yes", v.assumeYes)
	if err != nil {
		v.confirmErr = err
		return false
	}
	return ok
}

func (v *cliView) ReplaceLaunchURL(stripped string) {
	logger.Debug("Launch URL consumed", "url", stripped)
}
