// Package apitest runs an in-process Watchly backend for tests. It records
// every request and serves scripted answers that default to the real
// server's behaviour.
package apitest

import (
	"encoding/json"
	"io"
	"net/http"
	"net/http/httptest"
	"strings"
	"sync"
	"testing"

	"github.com/gorilla/mux"
)

// ValidAuthKey is accepted by the default identity handler; any other key
// starting with "bad" is rejected.
const ValidAuthKey = "ABC123"

// Request is one recorded call.
type Request struct {
	Method string
	Path   string
	Header http.Header
	Raw    []byte
	Body   map[string]any
}

// Reply is a scripted answer.
type Reply struct {
	Status      int
	ContentType string
	Body        any
}

// Handler produces a reply for a decoded request body.
type Handler func(body map[string]any) Reply

// Backend is the fake server. Handlers may be replaced before use.
type Backend struct {
	Server *httptest.Server

	Identity     Handler
	Save         Handler
	Delete       Handler
	Validate     Handler
	Languages    Handler
	Announcement Handler

	mu       sync.Mutex
	requests []Request
	holds    map[string]chan struct{}
}

// New starts a backend that is closed when the test ends.
func New(t testing.TB) *Backend {
	b := &Backend{
		Identity:     DefaultIdentity,
		Save:         DefaultSave,
		Delete:       DefaultDelete,
		Validate:     DefaultValidate,
		Languages:    DefaultLanguages,
		Announcement: func(map[string]any) Reply { return Reply{Status: http.StatusNotFound} },
		holds:        make(map[string]chan struct{}),
	}

	r := mux.NewRouter()
	r.Use(b.record)
	r.HandleFunc("/tokens/stremio-identity", b.serve(func() Handler { return b.Identity })).Methods(http.MethodPost)
	r.HandleFunc("/tokens/", b.serve(func() Handler { return b.Save })).Methods(http.MethodPost)
	r.HandleFunc("/tokens/", b.serve(func() Handler { return b.Delete })).Methods(http.MethodDelete)
	r.HandleFunc("/api/languages", b.serve(func() Handler { return b.Languages })).Methods(http.MethodGet)
	r.HandleFunc("/poster-rating/validate", b.serve(func() Handler { return b.Validate })).Methods(http.MethodPost)
	r.HandleFunc("/announcement", b.serve(func() Handler { return b.Announcement })).Methods(http.MethodGet)

	b.Server = httptest.NewServer(r)
	t.Cleanup(func() {
		b.releaseAll()
		b.Server.Close()
	})
	return b
}

// URL is the backend root.
func (b *Backend) URL() string { return b.Server.URL }

// Requests returns every recorded call in arrival order.
func (b *Backend) Requests() []Request {
	b.mu.Lock()
	defer b.mu.Unlock()
	out := make([]Request, len(b.requests))
	copy(out, b.requests)
	return out
}

// RequestsTo filters recorded calls by method and path.
func (b *Backend) RequestsTo(method, path string) []Request {
	var out []Request
	for _, r := range b.Requests() {
		if r.Method == method && r.Path == path {
			out = append(out, r)
		}
	}
	return out
}

// Hold makes calls to path block until the returned release func runs.
func (b *Backend) Hold(path string) (release func()) {
	ch := make(chan struct{})
	b.mu.Lock()
	b.holds[path] = ch
	b.mu.Unlock()
	var once sync.Once
	return func() {
		once.Do(func() {
			b.mu.Lock()
			delete(b.holds, path)
			b.mu.Unlock()
			close(ch)
		})
	}
}

func (b *Backend) releaseAll() {
	b.mu.Lock()
	defer b.mu.Unlock()
	for path, ch := range b.holds {
		close(ch)
		delete(b.holds, path)
	}
}

func (b *Backend) record(next http.Handler) http.Handler {
	return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		raw, _ := io.ReadAll(r.Body)
		r.Body.Close()
		var body map[string]any
		_ = json.Unmarshal(raw, &body)

		b.mu.Lock()
		b.requests = append(b.requests, Request{
			Method: r.Method,
			Path:   r.URL.Path,
			Header: r.Header.Clone(),
			Raw:    raw,
			Body:   body,
		})
		hold := b.holds[r.URL.Path]
		b.mu.Unlock()

		if hold != nil {
			select {
			case <-hold:
			case <-r.Context().Done():
				return
			}
		}

		r.Body = io.NopCloser(strings.NewReader(string(raw)))
		next.ServeHTTP(w, r)
	})
}

func (b *Backend) serve(pick func() Handler) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		raw, _ := io.ReadAll(r.Body)
		var body map[string]any
		_ = json.Unmarshal(raw, &body)

		reply := pick()(body)
		if reply.Status == 0 {
			reply.Status = http.StatusOK
		}
		if reply.ContentType == "" {
			reply.ContentType = "application/json"
		}
		w.Header().Set("Content-Type", reply.ContentType)
		w.WriteHeader(reply.Status)

		switch v := reply.Body.(type) {
		case nil:
		case string:
			io.WriteString(w, v)
		case []byte:
			w.Write(v)
		default:
			_ = json.NewEncoder(w).Encode(v)
		}
	}
}

// Detail builds the backend's error body.
func Detail(status int, msg string) Reply {
	return Reply{Status: status, Body: map[string]any{"detail": msg}}
}

// Str reads a string field from a decoded body.
func Str(body map[string]any, key string) string {
	s, _ := body[key].(string)
	return s
}

// DefaultIdentity accepts ValidAuthKey or any email/password pair and
// reports a new account.
func DefaultIdentity(body map[string]any) Reply {
	key := Str(body, "authKey")
	email, password := Str(body, "email"), Str(body, "password")
	switch {
	case key != "":
		if strings.HasPrefix(key, "bad") {
			return Detail(http.StatusBadRequest, "Invalid Stremio auth key.")
		}
		return Reply{Body: map[string]any{"user_id": "user-" + key, "exists": false}}
	case email != "" && password != "":
		if password == "wrong" {
			return Detail(http.StatusBadRequest, "Failed to verify Stremio identity.")
		}
		return Reply{Body: map[string]any{"user_id": "user-1", "email": email, "exists": false}}
	}
	return Detail(http.StatusBadRequest, "Credentials required.")
}

// ExistingAccount returns an identity handler for a returning user.
func ExistingAccount(settings map[string]any) Handler {
	return func(body map[string]any) Reply {
		return Reply{Body: map[string]any{
			"user_id":  "user-1",
			"email":    Str(body, "email"),
			"exists":   true,
			"settings": settings,
		}}
	}
}

// DefaultSave returns a manifest for the caller.
func DefaultSave(body map[string]any) Reply {
	if Str(body, "authKey") == "" && (Str(body, "email") == "" || Str(body, "password") == "") {
		return Detail(http.StatusBadRequest, "Credentials required.")
	}
	return Reply{Body: map[string]any{
		"token":            "tok123456789",
		"manifestUrl":      "https://watchly.example.com/tok123456789/manifest.json",
		"expiresInSeconds": nil,
	}}
}

// DefaultDelete reports success.
func DefaultDelete(map[string]any) Reply {
	return Reply{Body: map[string]any{"detail": "Settings deleted successfully"}}
}

// DefaultValidate accepts any key that does not start with "bad".
func DefaultValidate(body map[string]any) Reply {
	key := Str(body, "api_key")
	switch {
	case key == "":
		return Reply{Body: map[string]any{"valid": false, "message": "API key cannot be empty"}}
	case strings.HasPrefix(key, "bad"):
		return Reply{Body: map[string]any{"valid": false, "message": "Invalid API key"}}
	}
	return Reply{Body: map[string]any{"valid": true}}
}

// DefaultLanguages serves a small TMDB-shaped list.
func DefaultLanguages(map[string]any) Reply {
	return Reply{Body: []map[string]any{
		{"iso_639_1": "fr", "english_name": "French", "name": "Français"},
		{"iso_639_1": "de", "english_name": "German", "name": "Deutsch"},
		{"iso_639_1": "en", "english_name": "English", "name": "English"},
	}}
}
