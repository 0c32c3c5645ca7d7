// Package oauth defines the provider adapter contract for social login.
// Each provider (kakao, google, naver) lives in its own subpackage and owns
// its payload parsing; callers are written once against Provider.
package oauth

import (
	"context"
	"errors"
	"fmt"
	"strconv"
	"strings"
)

// Profile is the normalized identity a provider reports about a user.
// Optional fields missing from the provider payload are substituted with a
// provider-specific placeholder (nickname) or left empty (email).
type Profile struct {
	ExternalID   string
	Email        string
	Name         string
	Nickname     string
	ProfileImage string
}

// TokenResponse is the decoded token-endpoint payload. Only AccessToken is
// guaranteed after a successful exchange.
type TokenResponse struct {
	AccessToken  string  `json:"access_token"`
	TokenType    string  `json:"token_type"`
	RefreshToken string  `json:"refresh_token"`
	ExpiresIn    Seconds `json:"expires_in"`
	Error        string  `json:"error,omitempty"`
	ErrorDesc    string  `json:"error_description,omitempty"`
}

// Seconds decodes a duration that Kakao and Google send as a JSON number
// but Naver sends as a quoted string.
type Seconds int

func (s *Seconds) UnmarshalJSON(b []byte) error {
	raw := strings.Trim(string(b), `"`)
	if raw == "" || raw == "null" {
		*s = 0
		return nil
	}
	n, err := strconv.Atoi(raw)
	if err != nil {
		return fmt.Errorf("expires_in: %v", err)
	}
	*s = Seconds(n)
	return nil
}

// Provider is the capability set each social login variant implements.
// Implementations return identity facts only; user creation and token
// issuance happen elsewhere.
type Provider interface {
	// Name returns the provider tag ("kakao", "google", "naver").
	Name() string

	// AuthURL returns the authorization URL the browser is redirected to.
	// Implementations must always return a usable URL on encoding trouble
	// rather than failing the login attempt.
	AuthURL(ctx context.Context) (string, error)

	// ExchangeCode exchanges an authorization code for tokens. state is
	// only meaningful for providers that carry it through the exchange.
	ExchangeCode(ctx context.Context, code, state string) (*TokenResponse, error)

	// FetchProfile fetches and normalizes the user profile.
	FetchProfile(ctx context.Context, accessToken string) (*Profile, error)

	// RequiresState reports whether callbacks for this provider must carry
	// a CSRF state token issued at AuthURL time.
	RequiresState() bool
}

// Sentinel errors shared by all provider clients.
var (
	// ErrTransport wraps network/timeout failures talking to a provider.
	ErrTransport = errors.New("provider transport error")

	// ErrTokenExchange indicates the token endpoint answered without an
	// access token (or with an explicit error payload).
	ErrTokenExchange = errors.New("token exchange failed")

	// ErrProfileFetch indicates the profile endpoint failed or returned an
	// unusable payload.
	ErrProfileFetch = errors.New("profile fetch failed")

	// ErrUnknownProvider indicates a lookup for an unregistered provider.
	ErrUnknownProvider = errors.New("unknown provider")
)

// Registry holds the configured providers keyed by name.
type Registry struct {
	providers map[string]Provider
}

// NewRegistry registers the given providers by Name. Names must be unique.
func NewRegistry(list ...Provider) *Registry {
	m := make(map[string]Provider, len(list))
	for _, p := range list {
		m[p.Name()] = p
	}
	return &Registry{providers: m}
}

// Get returns the provider by name or ErrUnknownProvider.
func (r *Registry) Get(name string) (Provider, error) {
	p, ok := r.providers[name]
	if !ok {
		return nil, fmt.Errorf("%w: %s", ErrUnknownProvider, name)
	}
	return p, nil
}

// Names returns the registered provider names.
func (r *Registry) Names() []string {
	out := make([]string, 0, len(r.providers))
	for n := range r.providers {
		out = append(out, n)
	}
	return out
}
