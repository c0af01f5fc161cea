// Command watchly-gui is the desktop front end of the Watchly addon setup.
package main

import (
	"errors"
	"fmt"
	"os"

	"fyne.io/fyne/v2"
	"fyne.io/fyne/v2/app"
	"fyne.io/fyne/v2/theme"
	"github.com/spf13/pflag"

	"github.com/oukeidos/watchly-config/internal/cleanup"
	"github.com/oukeidos/watchly-config/internal/logger"
	"github.com/oukeidos/watchly-config/internal/setup"
	"github.com/oukeidos/watchly-config/internal/version"
)

const appID = "com.oukeidos.watchly"

func main() {
	os.Exit(run(os.Args[1:]))
}

func run(args []string) (code int) {
	defer func() {
		if r := recover(); r != nil {
			logger.Error("Unrecovered GUI panic", "scope", "main", "panic", fmt.Sprint(r))
			code = 1
		}
		if err := cleanup.RunAll(); err != nil {
			logger.Warn("Cleanup failed", "error", err)
		}
	}()

	opts, err := parseArgs(args)
	if errors.Is(err, pflag.ErrHelp) {
		return 0
	}
	if err != nil {
		fmt.Fprintln(os.Stderr, "Error:", err)
		return 2
	}
	if opts.showVersion {
		fmt.Println(version.Info())
		return 0
	}

	env, err := setup.Load(opts.Overrides)
	if err != nil {
		fmt.Fprintln(os.Stderr, "Error:", err)
		return 1
	}

	fa := app.NewWithID(appID)
	fa.Settings().SetTheme(comfortableTheme{Theme: theme.DefaultTheme()})
	fa.SetIcon(appIcon)

	cfg := loadConfig(fa.Preferences())
	w := fa.NewWindow("Watchly")
	w.SetIcon(appIcon)
	w.SetMaster()
	w.Resize(fyne.NewSize(cfg.WindowWidth, cfg.WindowHeight))
	w.CenterOnScreen()

	ga, err := newGUIApp(w, env, fa.Preferences(), cfg)
	if err != nil {
		logger.Error("Failed to start", "error", err)
		fmt.Fprintln(os.Stderr, "Error:", err)
		return 1
	}
	ga.launchURL = opts.launchURL

	w.SetCloseIntercept(func() {
		ga.close()
		w.SetCloseIntercept(nil)
		w.Close()
	})

	ga.boot()
	w.ShowAndRun()
	return 0
}
