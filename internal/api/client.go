// Package api talks to the Watchly backend. Every call is a single attempt;
// failures map onto apperrors kinds and are never retried.
package api

import (
	"bytes"
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"io"
	"net/http"
	"strings"

	"github.com/google/uuid"

	"github.com/oukeidos/watchly-config/internal/apperrors"
	"github.com/oukeidos/watchly-config/internal/httpclient"
	"github.com/oukeidos/watchly-config/internal/language"
	"github.com/oukeidos/watchly-config/internal/logger"
)

// RequestIDHeader carries a per-call id so client and server logs line up.
const RequestIDHeader = "X-Request-ID"

// Messages surfaced when the backend gives no detail of its own.
const (
	MsgIdentityFailed = "Failed to verify Stremio identity."
	MsgSaveFailed     = "Failed to save settings."
	MsgDeleteFailed   = "Failed to delete settings."
	MsgValidateFailed = "Could not validate the poster rating key."
)

type Client struct {
	baseURL string
	http    *http.Client
}

// NewClient targets baseURL. A nil httpClient uses the process default.
func NewClient(baseURL string, httpClient *http.Client) *Client {
	if httpClient == nil {
		httpClient = httpclient.GetDefaultClient()
	}
	return &Client{
		baseURL: strings.TrimRight(baseURL, "/"),
		http:    httpClient,
	}
}

// BaseURL returns the backend root.
func (c *Client) BaseURL() string { return c.baseURL }

// VerifyIdentity resolves an auth key or email/password to an account and
// its stored settings.
func (c *Client) VerifyIdentity(ctx context.Context, id Identity) (*IdentityResponse, error) {
	var out IdentityResponse
	if err := c.do(ctx, http.MethodPost, "/tokens/stremio-identity", id, &out, MsgIdentityFailed); err != nil {
		if apperrors.Is(err, apperrors.KindRemote) {
			return nil, apperrors.Auth(apperrors.PublicMessage(err), err)
		}
		return nil, err
	}
	return &out, nil
}

// SaveSettings creates or updates the account's settings.
func (c *Client) SaveSettings(ctx context.Context, req TokenRequest) (*TokenResponse, error) {
	var out TokenResponse
	if err := c.do(ctx, http.MethodPost, "/tokens/", req, &out, MsgSaveFailed); err != nil {
		return nil, err
	}
	if strings.TrimSpace(out.ManifestURL) == "" {
		return nil, apperrors.New(apperrors.KindTransport, MsgSaveFailed, errors.New("response missing manifestUrl"))
	}
	return &out, nil
}

// DeleteSettings removes the account's settings.
func (c *Client) DeleteSettings(ctx context.Context, id Identity) (*DeleteResponse, error) {
	var out DeleteResponse
	if err := c.do(ctx, http.MethodDelete, "/tokens/", id, &out, MsgDeleteFailed); err != nil {
		return nil, err
	}
	return &out, nil
}

// Languages fetches the language list.
func (c *Client) Languages(ctx context.Context) ([]language.Language, error) {
	var out []language.Language
	if err := c.do(ctx, http.MethodGet, "/api/languages", nil, &out, ""); err != nil {
		return nil, err
	}
	return out, nil
}

// ValidatePosterKey asks the backend to check a provider key.
func (c *Client) ValidatePosterKey(ctx context.Context, pr PosterRating) (*ValidateResponse, error) {
	var out ValidateResponse
	if err := c.do(ctx, http.MethodPost, "/poster-rating/validate", pr, &out, MsgValidateFailed); err != nil {
		return nil, err
	}
	return &out, nil
}

// Announcement returns the raw banner body and its content type. A 404 is
// reported as an empty body.
func (c *Client) Announcement(ctx context.Context) ([]byte, string, error) {
	req, err := c.newRequest(ctx, http.MethodGet, "/announcement", nil)
	if err != nil {
		return nil, "", err
	}
	body, resp, err := httpclient.DoAndRead(c.http, req)
	if err != nil {
		return nil, "", apperrors.Transport(err)
	}
	if resp.StatusCode == http.StatusNotFound || resp.StatusCode == http.StatusNoContent {
		return nil, "", nil
	}
	if resp.StatusCode < 200 || resp.StatusCode > 299 {
		return nil, "", apperrors.Remote(resp.StatusCode, parseDetail(body))
	}
	return body, resp.Header.Get("Content-Type"), nil
}

func (c *Client) newRequest(ctx context.Context, method, path string, payload any) (*http.Request, error) {
	var body io.Reader
	if payload != nil {
		data, err := json.Marshal(payload)
		if err != nil {
			return nil, fmt.Errorf("failed to marshal request: %w", err)
		}
		body = bytes.NewReader(data)
	}

	req, err := http.NewRequestWithContext(ctx, method, c.baseURL+path, body)
	if err != nil {
		return nil, fmt.Errorf("failed to create request: %w", err)
	}
	if payload != nil {
		req.Header.Set("Content-Type", "application/json")
	}
	req.Header.Set("Accept", "application/json")
	req.Header.Set(RequestIDHeader, uuid.NewString())
	return req, nil
}

func (c *Client) do(ctx context.Context, method, path string, payload, out any, fallback string) error {
	req, err := c.newRequest(ctx, method, path, payload)
	if err != nil {
		return apperrors.New(apperrors.KindTransport, fallback, err)
	}
	log := logger.With("method", method, "path", path, "request_id", req.Header.Get(RequestIDHeader))

	body, resp, err := httpclient.DoAndRead(c.http, req)
	if err != nil {
		log.Warn("Backend request failed", "error", err)
		return apperrors.New(apperrors.KindTransport, "", fmt.Errorf("request failed: %w", err))
	}

	if resp.StatusCode < 200 || resp.StatusCode > 299 {
		detail := parseDetail(body)
		log.Info("Backend rejected request", "status", resp.StatusCode, "detail", detail)
		if detail == "" {
			detail = fallback
		}
		return apperrors.Remote(resp.StatusCode, detail)
	}

	if out != nil {
		if err := json.Unmarshal(body, out); err != nil {
			log.Warn("Backend response was not JSON", "status", resp.StatusCode, "error", err)
			return apperrors.New(apperrors.KindTransport, fallback, fmt.Errorf("failed to decode response: %w", err))
		}
	}
	log.Debug("Backend request done", "status", resp.StatusCode)
	return nil
}

// parseDetail pulls a message out of an error body. FastAPI sends either a
// string detail or a list of validation errors with msg fields.
func parseDetail(body []byte) string {
	var envelope struct {
		Detail json.RawMessage `json:"detail"`
	}
	if err := json.Unmarshal(body, &envelope); err != nil || len(envelope.Detail) == 0 {
		return ""
	}
	var s string
	if err := json.Unmarshal(envelope.Detail, &s); err == nil {
		return strings.TrimSpace(s)
	}
	var items []struct {
		Msg string `json:"msg"`
	}
	if err := json.Unmarshal(envelope.Detail, &items); err == nil {
		msgs := make([]string, 0, len(items))
		for _, it := range items {
			if m := strings.TrimSpace(it.Msg); m != "" {
				msgs = append(msgs, m)
			}
		}
		return strings.Join(msgs, "; ")
	}
	return ""
}
