package main

import (
	"errors"
	"fmt"
	"strings"
	"time"

	"fyne.io/fyne/v2"
	"fyne.io/fyne/v2/theme"
	"github.com/spf13/pflag"

	"github.com/oukeidos/watchly-config/internal/api"
	"github.com/oukeidos/watchly-config/internal/catalog"
	"github.com/oukeidos/watchly-config/internal/language"
	"github.com/oukeidos/watchly-config/internal/setup"
	"github.com/oukeidos/watchly-config/internal/wizard"
)

type launchOptions struct {
	setup.Overrides
	launchURL   string
	showVersion bool
}

// parseArgs reads the command line. A single positional argument is taken
// as the launch URL so the app can be registered as a URL handler.
func parseArgs(args []string) (launchOptions, error) {
	var o launchOptions
	fs := pflag.NewFlagSet("watchly-gui", pflag.ContinueOnError)
	fs.StringVar(&o.ConfigFile, "config", "", "Config file path")
	fs.StringVar(&o.EnvFile, "env-file", "", "Dotenv file to load before reading the config")
	fs.StringVar(&o.BackendURL, "backend", "", "Watchly backend URL")
	fs.StringVar(&o.LogLevel, "log-level", "", "Log level: debug, info, warn or error")
	fs.StringVar(&o.LogFile, "log-file", "", "Also write logs to this file")
	fs.StringVar(&o.launchURL, "launch-url", "", "Launch URL, e.g. watchly://configure?key=...")
	fs.BoolVarP(&o.showVersion, "version", "v", false, "Print version and exit")
	if err := fs.Parse(args); err != nil {
		return o, err
	}
	switch fs.NArg() {
	case 0:
	case 1:
		if o.launchURL != "" {
			return o, errors.New("give the launch URL either as an argument or with --launch-url, not both")
		}
		o.launchURL = fs.Arg(0)
	default:
		return o, fmt.Errorf("expected at most one launch URL, got %d arguments", fs.NArg())
	}
	return o, nil
}

const posterNone = "None"

var posterLabels = map[string]string{
	api.ProviderRPDB:       "RPDB",
	api.ProviderTopPosters: "Top Posters",
}

// posterOptions lists the select entries, "None" first.
func posterOptions() []string {
	out := []string{posterNone}
	for _, p := range api.Providers {
		out = append(out, posterLabels[p])
	}
	return out
}

func posterLabel(provider string) string {
	if l, ok := posterLabels[provider]; ok {
		return l
	}
	return posterNone
}

func posterValue(label string) string {
	for p, l := range posterLabels {
		if l == label {
			return p
		}
	}
	return ""
}

var modeLabels = map[catalog.Mode]string{
	catalog.ModeBoth:   "Both",
	catalog.ModeMovie:  "Movies",
	catalog.ModeSeries: "Series",
}

func modeOptions() []string {
	out := make([]string, 0, len(catalog.Modes))
	for _, m := range catalog.Modes {
		out = append(out, modeLabels[m])
	}
	return out
}

func modeLabel(m catalog.Mode) string {
	return modeLabels[m]
}

func modeFromLabel(label string) (catalog.Mode, bool) {
	for m, l := range modeLabels {
		if l == label {
			return m, true
		}
	}
	return "", false
}

// languageChoices returns the select labels in order and a label to code
// map. Duplicate labels get the code appended.
func languageChoices(langs []language.Language) ([]string, map[string]string) {
	labels := make([]string, 0, len(langs))
	codes := make(map[string]string, len(langs))
	for _, l := range langs {
		label := l.Label()
		if _, dup := codes[label]; dup {
			label = fmt.Sprintf("%s [%s]", label, l.Code)
		}
		labels = append(labels, label)
		codes[label] = l.Code
	}
	return labels, codes
}

func languageLabel(langs []language.Language, code string) string {
	labels, codes := languageChoices(langs)
	for _, label := range labels {
		if strings.EqualFold(codes[label], code) {
			return label
		}
	}
	return ""
}

func expiryText(expires, now time.Time) string {
	if expires.IsZero() {
		return "This addon link does not expire."
	}
	left := expires.Sub(now).Round(time.Hour)
	if left < time.Hour {
		return fmt.Sprintf("Expires %s.", expires.Local().Format("Jan 2, 15:04"))
	}
	days := int(left.Hours()) / 24
	if days >= 1 {
		return fmt.Sprintf("Expires in %d day(s), on %s.", days, expires.Local().Format("Jan 2, 2006"))
	}
	return fmt.Sprintf("Expires in %d hour(s).", int(left.Hours()))
}

func toastColor(kind wizard.ToastKind) fyne.ThemeColorName {
	switch kind {
	case wizard.ToastSuccess:
		return theme.ColorNameSuccess
	case wizard.ToastError:
		return theme.ColorNameError
	}
	return theme.ColorNamePrimary
}
