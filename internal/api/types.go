package api

import (
	"github.com/oukeidos/watchly-config/internal/catalog"
)

// Poster rating providers accepted by the backend.
const (
	ProviderRPDB       = "rpdb"
	ProviderTopPosters = "top_posters"
)

// Providers lists the poster rating providers in display order.
var Providers = []string{ProviderRPDB, ProviderTopPosters}

// ValidProvider reports whether p is a known provider.
func ValidProvider(p string) bool {
	for _, known := range Providers {
		if p == known {
			return true
		}
	}
	return false
}

// Identity names the account a request acts on. Exactly one form is set.
type Identity struct {
	AuthKey  string `json:"authKey,omitempty"`
	Email    string `json:"email,omitempty"`
	Password string `json:"password,omitempty"`
}

// Present reports whether the identity can be sent at all.
func (i Identity) Present() bool {
	return i.AuthKey != "" || (i.Email != "" && i.Password != "")
}

type PosterRating struct {
	Provider string `json:"provider"`
	APIKey   string `json:"api_key"`
}

// Settings is the stored configuration returned for an existing account.
type Settings struct {
	Language             string           `json:"language,omitempty"`
	RPDBKey              string           `json:"rpdb_key,omitempty"`
	PosterRating         *PosterRating    `json:"poster_rating,omitempty"`
	ExcludedMovieGenres  []string         `json:"excluded_movie_genres,omitempty"`
	ExcludedSeriesGenres []string         `json:"excluded_series_genres,omitempty"`
	Catalogs             []catalog.Config `json:"catalogs,omitempty"`
}

// EffectivePosterRating folds the legacy rpdb_key into the provider form.
func (s *Settings) EffectivePosterRating() *PosterRating {
	if s == nil {
		return nil
	}
	if s.PosterRating != nil && s.PosterRating.Provider != "" {
		pr := *s.PosterRating
		return &pr
	}
	if s.RPDBKey != "" {
		return &PosterRating{Provider: ProviderRPDB, APIKey: s.RPDBKey}
	}
	return nil
}

type IdentityResponse struct {
	UserID   string    `json:"user_id,omitempty"`
	Email    string    `json:"email,omitempty"`
	Exists   bool      `json:"exists"`
	Settings *Settings `json:"settings,omitempty"`
}

// DisplayName is the best label for the signed-in user.
func (r *IdentityResponse) DisplayName() string {
	if r.Email != "" {
		return r.Email
	}
	return r.UserID
}

// TokenRequest is the create/update payload for POST /tokens/.
type TokenRequest struct {
	Identity
	Catalogs             []catalog.Config `json:"catalogs"`
	Language             string           `json:"language"`
	PosterRating         *PosterRating    `json:"poster_rating,omitempty"`
	RPDBKey              string           `json:"rpdb_key,omitempty"`
	ExcludedMovieGenres  []string         `json:"excluded_movie_genres"`
	ExcludedSeriesGenres []string         `json:"excluded_series_genres"`
}

type TokenResponse struct {
	Token            string `json:"token,omitempty"`
	ManifestURL      string `json:"manifestUrl"`
	ExpiresInSeconds *int   `json:"expiresInSeconds,omitempty"`
}

type DeleteResponse struct {
	Detail string `json:"detail"`
}

type ValidateResponse struct {
	Valid   bool   `json:"valid"`
	Message string `json:"message,omitempty"`
}
