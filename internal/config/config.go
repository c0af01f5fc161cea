package config

import (
	"errors"
	"fmt"
	"io/fs"
	"net/url"
	"os"
	"path/filepath"
	"strings"
	"time"

	"github.com/joho/godotenv"
	"github.com/spf13/viper"

	"github.com/oukeidos/watchly-config/internal/catalog"
	"github.com/oukeidos/watchly-config/internal/language"
	"github.com/oukeidos/watchly-config/internal/logger"
)

// Session store backends.
const (
	SessionKeyring = "keyring"
	SessionFile    = "file"
)

// Config holds the application configuration
type Config struct {
	Backend  BackendConfig  `mapstructure:"backend"`
	Wizard   WizardConfig   `mapstructure:"wizard"`
	Session  SessionConfig  `mapstructure:"session"`
	Log      LogConfig      `mapstructure:"log"`
	Catalogs CatalogsConfig `mapstructure:"catalogs"`
}

// BackendConfig points at the Watchly server.
type BackendConfig struct {
	URL     string        `mapstructure:"url"`
	Timeout time.Duration `mapstructure:"timeout"`
}

// WizardConfig holds form defaults.
type WizardConfig struct {
	DefaultLanguage string `mapstructure:"default_language"`
}

// SessionConfig selects where the remembered login lives.
type SessionConfig struct {
	Backend string        `mapstructure:"backend"`
	File    string        `mapstructure:"file"`
	TTL     time.Duration `mapstructure:"ttl"`
}

// LogConfig holds logging settings
type LogConfig struct {
	Level  string `mapstructure:"level"`
	Format string `mapstructure:"format"`
	File   string `mapstructure:"file"`
}

// CatalogsConfig overrides the catalog rename policy and default roster.
type CatalogsConfig struct {
	NonRenamable []string              `mapstructure:"non_renamable"`
	Roster       []catalog.RosterEntry `mapstructure:"roster"`
}

// Options locate optional config sources. Empty fields use the search path.
type Options struct {
	ConfigFile string
	EnvFile    string
}

// Load reads, in increasing precedence: defaults, the config file, a .env
// file and the process environment.
func Load(opts Options) (*Config, error) {
	if err := loadEnvFile(opts.EnvFile); err != nil {
		return nil, err
	}

	v := viper.New()
	setDefaults(v)

	if opts.ConfigFile != "" {
		v.SetConfigFile(opts.ConfigFile)
	} else {
		v.SetConfigName("config")
		v.SetConfigType("yaml")
		v.AddConfigPath(".")
		if dir, err := DefaultDir(); err == nil {
			v.AddConfigPath(dir)
		}
		v.AddConfigPath("/etc/watchly")
	}

	v.SetEnvPrefix("WATCHLY")
	v.SetEnvKeyReplacer(strings.NewReplacer(".", "_"))
	v.AutomaticEnv()

	// Support both WATCHLY_ prefixed names and the backend's own names
	bindEnvWithAlternatives(v, "backend.url", "BACKEND_URL", "APP_URL")
	bindEnvWithAlternatives(v, "log.level", "LOG_LEVEL")
	bindEnvWithAlternatives(v, "wizard.default_language", "DEFAULT_LANGUAGE")

	if err := v.ReadInConfig(); err != nil {
		var notFound viper.ConfigFileNotFoundError
		if !errors.As(err, &notFound) {
			return nil, fmt.Errorf("failed to read config file: %w", err)
		}
	} else {
		logger.Debug("Config file loaded", "path", v.ConfigFileUsed())
	}

	cfg := &Config{}
	if err := v.Unmarshal(cfg); err != nil {
		return nil, fmt.Errorf("failed to unmarshal config: %w", err)
	}
	cfg.Backend.URL = strings.TrimRight(strings.TrimSpace(cfg.Backend.URL), "/")

	if err := cfg.Validate(); err != nil {
		return nil, fmt.Errorf("configuration validation failed: %w", err)
	}
	return cfg, nil
}

// Default returns the built-in configuration without reading any source.
func Default() *Config {
	v := viper.New()
	setDefaults(v)
	cfg := &Config{}
	_ = v.Unmarshal(cfg)
	return cfg
}

// DefaultDir is the per-user configuration directory.
func DefaultDir() (string, error) {
	home, err := os.UserHomeDir()
	if err != nil {
		return "", err
	}
	return filepath.Join(home, ".watchly"), nil
}

func loadEnvFile(path string) error {
	if path == "" {
		path = ".env"
	}
	if err := godotenv.Load(path); err != nil {
		if errors.Is(err, fs.ErrNotExist) {
			return nil
		}
		return fmt.Errorf("failed to load env file %s: %w", path, err)
	}
	return nil
}

// bindEnvWithAlternatives binds a key to its prefixed variable and copies the
// first non-empty alternative over it.
func bindEnvWithAlternatives(v *viper.Viper, key string, alternatives ...string) {
	_ = v.BindEnv(key)
	for _, alt := range alternatives {
		if value := os.Getenv(alt); value != "" {
			v.Set(key, value)
			break
		}
	}
}

func setDefaults(v *viper.Viper) {
	v.SetDefault("backend.url", "http://localhost:8000")
	v.SetDefault("backend.timeout", 30*time.Second)

	v.SetDefault("wizard.default_language", language.DefaultCode)

	v.SetDefault("session.backend", SessionKeyring)
	sessionFile := "session.json"
	if dir, err := DefaultDir(); err == nil {
		sessionFile = filepath.Join(dir, "session.json")
	}
	v.SetDefault("session.file", sessionFile)
	v.SetDefault("session.ttl", 30*24*time.Hour)

	v.SetDefault("log.level", "info")
	v.SetDefault("log.format", "pretty")
	v.SetDefault("log.file", "")

	v.SetDefault("catalogs.non_renamable", []string{catalog.IDTheme})
}

// Validate checks the loaded values.
func (c *Config) Validate() error {
	u, err := url.Parse(c.Backend.URL)
	if err != nil || (u.Scheme != "http" && u.Scheme != "https") || u.Host == "" {
		return fmt.Errorf("backend.url must be an http(s) URL, got %q", c.Backend.URL)
	}
	if c.Backend.Timeout <= 0 {
		return fmt.Errorf("backend.timeout must be positive")
	}

	switch c.Session.Backend {
	case SessionKeyring:
	case SessionFile:
		if strings.TrimSpace(c.Session.File) == "" {
			return fmt.Errorf("session.file is required when session.backend is %q", SessionFile)
		}
	default:
		return fmt.Errorf("session.backend must be one of: keyring, file")
	}
	if c.Session.TTL <= 0 {
		return fmt.Errorf("session.ttl must be positive")
	}

	if _, err := logger.ParseLevel(c.Log.Level); err != nil {
		return fmt.Errorf("log.level must be one of: debug, info, warn, error")
	}
	switch strings.ToLower(c.Log.Format) {
	case "", "pretty", "text", "json":
	default:
		return fmt.Errorf("log.format must be one of: pretty, json")
	}

	if !language.ValidCode(c.Wizard.DefaultLanguage) {
		return fmt.Errorf("wizard.default_language %q is not a language code", c.Wizard.DefaultLanguage)
	}

	if _, err := c.Roster(); err != nil {
		return fmt.Errorf("catalogs.roster: %w", err)
	}
	return nil
}

// Policy builds the catalog rename policy.
func (c *Config) Policy() catalog.Policy {
	return catalog.NewPolicy(c.Catalogs.NonRenamable...)
}

// Roster returns the configured roster or the built-in default.
func (c *Config) Roster() ([]catalog.Descriptor, error) {
	if len(c.Catalogs.Roster) == 0 {
		return catalog.DefaultRoster(), nil
	}
	roster, err := catalog.RosterFromEntries(c.Catalogs.Roster)
	if err != nil {
		return nil, err
	}
	if _, err := catalog.NewList(roster, c.Policy()); err != nil {
		return nil, err
	}
	return roster, nil
}
