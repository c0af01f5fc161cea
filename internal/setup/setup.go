// Package setup turns loaded configuration into the pieces both front ends
// share: logging, the remembered-login store and the backend client.
package setup

import (
	"fmt"
	"io"
	"os"
	"path/filepath"
	"strings"

	"github.com/oukeidos/watchly-config/internal/api"
	"github.com/oukeidos/watchly-config/internal/catalog"
	"github.com/oukeidos/watchly-config/internal/cleanup"
	"github.com/oukeidos/watchly-config/internal/config"
	"github.com/oukeidos/watchly-config/internal/files"
	"github.com/oukeidos/watchly-config/internal/httpclient"
	"github.com/oukeidos/watchly-config/internal/logger"
	"github.com/oukeidos/watchly-config/internal/session"
	"github.com/oukeidos/watchly-config/internal/wizard"
)

// Overrides are command-line values that win over the config file.
type Overrides struct {
	ConfigFile string
	EnvFile    string
	BackendURL string
	LogLevel   string
	LogFile    string
}

// Env is a ready-to-use environment.
type Env struct {
	Config   *config.Config
	Client   *api.Client
	Sessions *session.Manager
	Roster   []catalog.Descriptor
	Policy   catalog.Policy
}

// Load reads configuration, applies overrides and installs the logger.
func Load(o Overrides) (*Env, error) {
	cfg, err := config.Load(config.Options{ConfigFile: o.ConfigFile, EnvFile: o.EnvFile})
	if err != nil {
		return nil, err
	}
	if o.BackendURL != "" {
		cfg.Backend.URL = strings.TrimRight(o.BackendURL, "/")
	}
	if o.LogLevel != "" {
		cfg.Log.Level = o.LogLevel
	}
	if o.LogFile != "" {
		cfg.Log.File = o.LogFile
	}
	if err := cfg.Validate(); err != nil {
		return nil, err
	}
	return FromConfig(cfg)
}

// FromConfig builds an Env from an already validated config.
func FromConfig(cfg *config.Config) (*Env, error) {
	logW, err := openLogFile(cfg.Log.File)
	if err != nil {
		return nil, err
	}
	if err := logger.Configure(cfg.Log.Level, cfg.Log.Format, logW); err != nil {
		return nil, err
	}

	roster, err := cfg.Roster()
	if err != nil {
		return nil, err
	}

	env := &Env{
		Config:   cfg,
		Client:   api.NewClient(cfg.Backend.URL, httpclient.NewClient(cfg.Backend.Timeout)),
		Sessions: session.NewManager(Store(cfg), cfg.Session.TTL),
		Roster:   roster,
		Policy:   cfg.Policy(),
	}
	logger.Debug("Configuration loaded",
		"backend", cfg.Backend.URL,
		"session_backend", cfg.Session.Backend,
		"catalogs", len(roster))
	return env, nil
}

// Store picks the session backend named by the config.
func Store(cfg *config.Config) session.Store {
	if cfg.Session.Backend == config.SessionFile {
		return &session.FileStore{Path: cfg.Session.File}
	}
	return session.NewKeyringStore()
}

// Wizard builds the wizard App rendering into view.
func (e *Env) Wizard(view wizard.View) (*wizard.App, error) {
	return wizard.New(wizard.Options{
		Backend:         e.Client,
		Sessions:        e.Sessions,
		View:            view,
		Roster:          e.Roster,
		Policy:          e.Policy,
		DefaultLanguage: e.Config.Wizard.DefaultLanguage,
	})
}

func openLogFile(path string) (io.Writer, error) {
	if strings.TrimSpace(path) == "" {
		return nil, nil
	}
	if err := files.RejectSymlinkPath(path); err != nil {
		return nil, err
	}
	if err := os.MkdirAll(filepath.Dir(path), 0700); err != nil {
		return nil, fmt.Errorf("failed to create log directory: %w", err)
	}
	f, err := os.OpenFile(path, os.O_APPEND|os.O_CREATE|os.O_WRONLY, 0600)
	if err != nil {
		return nil, fmt.Errorf("failed to open log file: %w", err)
	}
	cleanup.Register("log file", f.Close)
	return f, nil
}
