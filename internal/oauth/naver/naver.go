// Package naver implements OAuth 2.0 authentication with Naver.
// Naver requires a CSRF state parameter on the authorization URL and carries
// it through the token exchange instead of redirect_uri; the profile payload
// is nested under "response".
package naver

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
	authEndpoint    = "https://nid.naver.com/oauth2.0/authorize"
	tokenEndpoint   = "https://nid.naver.com/oauth2.0/token"
	profileEndpoint = "https://openapi.naver.com/v1/nid/me"

	defaultNickname = "Naver User"
)

// StateIssuer mints single-use CSRF state tokens for the authorization URL.
type StateIssuer interface {
	Issue(ctx context.Context) (string, error)
}

// Client is the Naver OAuth 2.0 client.
type Client struct {
	ClientID     string
	ClientSecret string
	RedirectURI  string

	// Endpoint overrides, used by tests.
	AuthEndpoint    string
	TokenEndpoint   string
	ProfileEndpoint string

	states StateIssuer
	http   *http.Client
}

// New creates a Naver client. states must not be nil: every authorization
// URL embeds a fresh state token.
func New(clientID, clientSecret, redirectURI string, states StateIssuer) *Client {
	return &Client{
		ClientID:        clientID,
		ClientSecret:    clientSecret,
		RedirectURI:     redirectURI,
		AuthEndpoint:    authEndpoint,
		TokenEndpoint:   tokenEndpoint,
		ProfileEndpoint: profileEndpoint,
		states:          states,
		http:            &http.Client{Timeout: 10 * time.Second},
	}
}

func (c *Client) Name() string { return "naver" }

// AuthURL builds the Naver authorization URL with a fresh CSRF state.
func (c *Client) AuthURL(ctx context.Context) (string, error) {
	state, err := c.states.Issue(ctx)
	if err != nil {
		return "", err
	}

	u, err := url.Parse(c.AuthEndpoint)
	if err != nil {
		return fmt.Sprintf("%s?response_type=code&client_id=%s&redirect_uri=%s&state=%s",
			c.AuthEndpoint, c.ClientID, c.RedirectURI, state), nil
	}
	q := u.Query()
	q.Set("response_type", "code")
	q.Set("client_id", c.ClientID)
	q.Set("redirect_uri", c.RedirectURI)
	q.Set("state", state)
	u.RawQuery = q.Encode()
	return u.String(), nil
}

// ExchangeCode exchanges an authorization code for an access token.
// Naver wants the state echoed back in place of redirect_uri.
func (c *Client) ExchangeCode(ctx context.Context, code, state string) (*oauth.TokenResponse, error) {
	form := url.Values{}
	form.Set("grant_type", "authorization_code")
	form.Set("client_id", c.ClientID)
	form.Set("client_secret", c.ClientSecret)
	form.Set("code", code)
	form.Set("state", state)

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

// userInfo mirrors Naver's /v1/nid/me payload:
// { "resultcode": "00", "message": "success", "response": { "id", "email",
// "name", "nickname", "profile_image" } }
type userInfo struct {
	ResultCode string `json:"resultcode"`
	Message    string `json:"message"`
	Response   *struct {
		ID           string `json:"id"`
		Email        string `json:"email"`
		Name         string `json:"name"`
		Nickname     string `json:"nickname"`
		ProfileImage string `json:"profile_image"`
	} `json:"response"`
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
		return nil, fmt.Errorf("%w: naver api status %d", oauth.ErrProfileFetch, resp.StatusCode)
	}

	var info userInfo
	if err := json.NewDecoder(resp.Body).Decode(&info); err != nil {
		return nil, fmt.Errorf("%w: decode user info: %v", oauth.ErrProfileFetch, err)
	}
	if info.Response == nil || info.Response.ID == "" {
		return nil, fmt.Errorf("%w: missing response object", oauth.ErrProfileFetch)
	}

	nickname := info.Response.Nickname
	if nickname == "" {
		nickname = defaultNickname
	}

	return &oauth.Profile{
		ExternalID:   info.Response.ID,
		Email:        info.Response.Email,
		Name:         info.Response.Name,
		Nickname:     nickname,
		ProfileImage: info.Response.ProfileImage,
	}, nil
}

// RequiresState reports that Naver callbacks must echo the issued state.
func (c *Client) RequiresState() bool { return true }
