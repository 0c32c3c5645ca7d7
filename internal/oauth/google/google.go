// Package google implements OAuth 2.0 authentication with Google.
// Google returns a flat userinfo object; name falls back to given/family
// name composition when absent.
package google

import (
	"context"
	"encoding/json"
	"fmt"
	"net/http"
	"net/url"
	"strings"
	"time"

	"github.com/seoeunjin/api/internal/oauth"
)

const (
	authEndpoint    = "https://accounts.google.com/o/oauth2/v2/auth"
	tokenEndpoint   = "https://oauth2.googleapis.com/token"
	profileEndpoint = "https://www.googleapis.com/oauth2/v2/userinfo"

	scope = "openid email profile"

	defaultName = "Google User"
)

// Client is the Google OAuth 2.0 client.
type Client struct {
	ClientID     string
	ClientSecret string
	RedirectURI  string

	// Endpoint overrides, used by tests.
	AuthEndpoint    string
	TokenEndpoint   string
	ProfileEndpoint string

	http *http.Client
}

// New creates a Google client with a bounded-timeout HTTP client.
func New(clientID, clientSecret, redirectURI string) *Client {
	return &Client{
		ClientID:        clientID,
		ClientSecret:    clientSecret,
		RedirectURI:     redirectURI,
		AuthEndpoint:    authEndpoint,
		TokenEndpoint:   tokenEndpoint,
		ProfileEndpoint: profileEndpoint,
		http:            &http.Client{Timeout: 10 * time.Second},
	}
}

func (c *Client) Name() string { return "google" }

// AuthURL builds the Google authorization URL.
func (c *Client) AuthURL(ctx context.Context) (string, error) {
	u, err := url.Parse(c.AuthEndpoint)
	if err != nil {
		return fmt.Sprintf("%s?client_id=%s&redirect_uri=%s&response_type=code&scope=openid%%20email%%20profile",
			c.AuthEndpoint, c.ClientID, c.RedirectURI), nil
	}
	q := u.Query()
	q.Set("client_id", c.ClientID)
	q.Set("redirect_uri", c.RedirectURI)
	q.Set("response_type", "code")
	q.Set("scope", scope)
	u.RawQuery = q.Encode()
	return u.String(), nil
}

// ExchangeCode exchanges an authorization code for an access token.
func (c *Client) ExchangeCode(ctx context.Context, code, state string) (*oauth.TokenResponse, error) {
	form := url.Values{}
	form.Set("code", code)
	form.Set("client_id", c.ClientID)
	form.Set("client_secret", c.ClientSecret)
	form.Set("redirect_uri", c.RedirectURI)
	form.Set("grant_type", "authorization_code")

	req, err := http.NewRequestWithContext(ctx, http.MethodPost, c.TokenEndpoint, strings.NewReader(form.Encode()))
	if err != nil {
		return nil, err
	}
	req.Header.Set("Content-Type", "application/x-www-form-urlencoded")
	req.Header.Set("Accept", "application/json")

	resp, err := c.http.Do(req)
	if err != nil {
		return nil, fmt.Errorf("%w: %v", oauth.ErrTransport, err)
	}
	defer resp.Body.Close()

	var tr oauth.TokenResponse
	if err := json.NewDecoder(resp.Body).Decode(&tr); err != nil {
		return nil, fmt.Errorf("%w: decode token response: %v", oauth.ErrTokenExchange, err)
	}
	if tr.Error != "" {
		return nil, fmt.Errorf("%w: %s %s", oauth.ErrTokenExchange, tr.Error, tr.ErrorDesc)
	}
	if tr.AccessToken == "" {
		return nil, fmt.Errorf("%w: no access_token in response", oauth.ErrTokenExchange)
	}
	return &tr, nil
}

// userInfo mirrors Google's /oauth2/v2/userinfo payload (flat object).
type userInfo struct {
	ID         string `json:"id"`
	Email      string `json:"email"`
	Name       string `json:"name"`
	Picture    string `json:"picture"`
	GivenName  string `json:"given_name"`
	FamilyName string `json:"family_name"`
}

// FetchProfile fetches the user profile and normalizes it.
func (c *Client) FetchProfile(ctx context.Context, accessToken string) (*oauth.Profile, error) {
	req, err := http.NewRequestWithContext(ctx, http.MethodGet, c.ProfileEndpoint, nil)
	if err != nil {
		return nil, err
	}
	req.Header.Set("Authorization", "Bearer "+accessToken)
	req.Header.Set("Accept", "application/json")

	resp, err := c.http.Do(req)
	if err != nil {
		return nil, fmt.Errorf("%w: %v", oauth.ErrTransport, err)
	}
	defer resp.Body.Close()

	if resp.StatusCode != http.StatusOK {
		return nil, fmt.Errorf("%w: google api status %d", oauth.ErrProfileFetch, resp.StatusCode)
	}

	var info userInfo
	if err := json.NewDecoder(resp.Body).Decode(&info); err != nil {
		return nil, fmt.Errorf("%w: decode user info: %v", oauth.ErrProfileFetch, err)
	}
	if info.ID == "" {
		return nil, fmt.Errorf("%w: missing user id", oauth.ErrProfileFetch)
	}

	name := info.Name
	if name == "" {
		name = strings.TrimSpace(info.GivenName + " " + info.FamilyName)
	}
	if name == "" {
		name = defaultName
	}

	return &oauth.Profile{
		ExternalID:   info.ID,
		Email:        info.Email,
		Name:         name,
		Nickname:     name,
		ProfileImage: info.Picture,
	}, nil
}

// RequiresState reports that Google callbacks carry no CSRF state.
func (c *Client) RequiresState() bool { return false }
