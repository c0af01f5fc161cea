package main

import (
	"context"
	"errors"
	"os"
	"os/signal"
	"syscall"

	"github.com/spf13/cobra"

	"github.com/oukeidos/watchly-config/internal/logger"
	"github.com/oukeidos/watchly-config/internal/prompt"
	"github.com/oukeidos/watchly-config/internal/setup"
	"github.com/oukeidos/watchly-config/internal/wizard"
)

var (
	loadEnv      = setup.Load
	newConfirmer = prompt.DefaultConfirmer
)

func (o *globalOptions) overrides() setup.Overrides {
	return setup.Overrides{
		ConfigFile: o.configFile,
		EnvFile:    o.envFile,
		BackendURL: o.backend,
		LogLevel:   o.logLevel,
		LogFile:    o.logFile,
	}
}

// session is one command's wizard plus the terminal view it renders into.
type session struct {
	env  *setup.Env
	app  *wizard.App
	view *cliView
}

func openSession(cmd *cobra.Command, opts *globalOptions, assumeYes bool) (*session, error) {
	env, err := loadEnv(opts.overrides())
	if err != nil {
		return nil, err
	}
	view := newCLIView(cmd.OutOrStdout(), newConfirmer(), assumeYes)
	app, err := env.Wizard(view)
	if err != nil {
		return nil, err
	}
	return &session{env: env, app: app, view: view}, nil
}

// boot signs in from the launch URL or the remembered login. A rejected
// launch key is an error; a rejected remembered login only leaves the
// wizard signed out.
func (s *session) boot(ctx context.Context, launchURL string) error {
	err := s.app.Boot(ctx, launchURL)
	if err == nil {
		return nil
	}
	if _, _, ok := wizard.ExtractLaunchKey(launchURL); ok {
		return err
	}
	if !errors.Is(err, wizard.ErrStale) {
		s.view.notice("Your remembered login was rejected; you are signed out.")
	}
	return nil
}

func signalContext() (context.Context, func()) {
	ctx, cancel := context.WithCancel(context.Background())
	sigCh := make(chan os.Signal, 1)
	signal.Notify(sigCh, os.Interrupt, syscall.SIGTERM)
	go func() {
		select {
		case <-sigCh:
			logger.Warn("Cancellation requested")
			cancel()
		case <-ctx.Done():
		}
	}()
	stop := func() {
		signal.Stop(sigCh)
		cancel()
	}
	return ctx, stop
}
