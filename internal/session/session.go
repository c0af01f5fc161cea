// Package session remembers the login used by the wizard so the next launch
// can sign in silently. Exactly one identity form is stored: a Stremio auth
// key, or an email and password pair.
package session

import (
	"errors"
	"strings"
	"time"

	"github.com/oukeidos/watchly-config/internal/logger"
)

// DefaultTTL is how long a remembered login stays valid.
const DefaultTTL = 30 * 24 * time.Hour

// Kind identifies which identity form a credential carries.
type Kind int

const (
	KindNone Kind = iota
	KindAuthKey
	KindPassword
)

func (k Kind) String() string {
	switch k {
	case KindAuthKey:
		return "stremio auth key"
	case KindPassword:
		return "email and password"
	default:
		return "none"
	}
}

// Credential is the persisted login blob. ExpiresAt is epoch milliseconds.
type Credential struct {
	AuthKey   string `json:"authKey,omitempty"`
	Email     string `json:"email,omitempty"`
	Password  string `json:"password,omitempty"`
	ExpiresAt int64  `json:"expiresAt"`
}

// FromAuthKey builds an auth-key credential.
func FromAuthKey(key string) Credential {
	return Credential{AuthKey: NormalizeAuthKey(key)}
}

// FromPassword builds an email/password credential.
func FromPassword(email, password string) Credential {
	return Credential{Email: strings.TrimSpace(email), Password: password}
}

// NormalizeAuthKey trims whitespace and a single pair of wrapping double
// quotes, which is how the key appears when copied from browser storage.
func NormalizeAuthKey(key string) string {
	key = strings.TrimSpace(key)
	if len(key) >= 2 && strings.HasPrefix(key, `"`) && strings.HasSuffix(key, `"`) {
		key = strings.TrimSpace(key[1 : len(key)-1])
	}
	return key
}

// Kind reports the identity form. An auth key wins when both are present.
func (c Credential) Kind() Kind {
	switch {
	case c.AuthKey != "":
		return KindAuthKey
	case c.Email != "" && c.Password != "":
		return KindPassword
	default:
		return KindNone
	}
}

// Usable reports whether the credential can identify a user.
func (c Credential) Usable() bool {
	return c.Kind() != KindNone
}

// Exclusive drops the fields of the inactive identity form.
func (c Credential) Exclusive() Credential {
	switch c.Kind() {
	case KindAuthKey:
		return Credential{AuthKey: c.AuthKey, ExpiresAt: c.ExpiresAt}
	case KindPassword:
		return Credential{Email: c.Email, Password: c.Password, ExpiresAt: c.ExpiresAt}
	}
	return Credential{}
}

// Expiry returns ExpiresAt as a time. Zero means unset.
func (c Credential) Expiry() time.Time {
	if c.ExpiresAt == 0 {
		return time.Time{}
	}
	return time.UnixMilli(c.ExpiresAt)
}

// Expired reports whether the credential is past its expiry. A missing
// expiry counts as expired.
func (c Credential) Expired(now time.Time) bool {
	return c.ExpiresAt == 0 || !now.Before(c.Expiry())
}

// Describe is a log- and status-safe summary.
func (c Credential) Describe() string {
	switch c.Kind() {
	case KindAuthKey:
		return "auth key " + logger.RedactToken(c.AuthKey)
	case KindPassword:
		return "account " + c.Email
	}
	return "none"
}

// ErrNoCredential is returned by Store.Load when nothing is stored.
var ErrNoCredential = errors.New("no stored credential")

// Store persists a single credential blob.
type Store interface {
	Load() (Credential, error)
	Save(Credential) error
	Clear() error
}

// Manager applies expiry rules on top of a Store.
type Manager struct {
	store Store
	ttl   time.Duration
	now   func() time.Time
}

// NewManager wraps store. A non-positive ttl uses DefaultTTL.
func NewManager(store Store, ttl time.Duration) *Manager {
	if ttl <= 0 {
		ttl = DefaultTTL
	}
	return &Manager{store: store, ttl: ttl, now: time.Now}
}

// SetClock replaces the time source.
func (m *Manager) SetClock(now func() time.Time) {
	m.now = now
}

// Remember stores c with a fresh expiry. Only the active identity form is
// written.
func (m *Manager) Remember(c Credential) error {
	c = c.Exclusive()
	if !c.Usable() {
		return errors.New("credential has no identity")
	}
	c.ExpiresAt = m.now().Add(m.ttl).UnixMilli()
	if err := m.store.Save(c); err != nil {
		return err
	}
	logger.Debug("Login remembered", "identity", c.Describe(), "expires", c.Expiry().Format(time.RFC3339))
	return nil
}

// Recall returns the stored credential if it is usable and unexpired.
// Expired or malformed entries are cleared.
func (m *Manager) Recall() (Credential, bool) {
	c, err := m.store.Load()
	if err != nil {
		if !errors.Is(err, ErrNoCredential) {
			logger.Warn("Stored login unreadable; discarding", "error", err)
			_ = m.store.Clear()
		}
		return Credential{}, false
	}
	if !c.Usable() || c.Expired(m.now()) {
		logger.Info("Stored login expired or incomplete; discarding")
		if err := m.store.Clear(); err != nil {
			logger.Warn("Failed to clear stored login", "error", err)
		}
		return Credential{}, false
	}
	return c.Exclusive(), true
}

// Peek returns whatever is stored without applying expiry rules.
func (m *Manager) Peek() (Credential, error) {
	return m.store.Load()
}

// Forget clears the stored credential. Clearing an empty store succeeds.
func (m *Manager) Forget() error {
	return m.store.Clear()
}
