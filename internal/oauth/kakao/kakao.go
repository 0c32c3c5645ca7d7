// Package kakao implements OAuth 2.0 authentication with Kakao.
// Kakao nests profile data under kakao_account.profile, with a legacy
// properties block as fallback for accounts created before the consent
// items were split.
package kakao

import (
	"context"
	"encoding/json"
	"fmt"
	"net/http"
	"net/url"
	"strconv"
	"strings"
	"time"

	"github.com/seoeunjin/api/internal/oauth"
)

const (
	authEndpoint    = "https://kauth.kakao.com/oauth/authorize"
	tokenEndpoint   = "https://kauth.kakao.com/oauth/token"
	profileEndpoint = "https://kapi.kakao.com/v2/user/me"

	// profile_image and account_email need extra consent items in the
	// Kakao developer console; the base scope is nickname only.
	scope = "profile_nickname"

	defaultNickname = "Kakao User"
)

// Client is the Kakao OAuth 2.0 client.
type Client struct {
	ClientID     string
	ClientSecret string
	RedirectURI  string

	// Endpoint overrides, used by tests. Zero values mean the real Kakao
	// endpoints.
	AuthEndpoint    string
	TokenEndpoint   string
	ProfileEndpoint string

	http *http.Client
}

// New creates a Kakao client with a bounded-timeout HTTP client.
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

func (c *Client) Name() string { return "kakao" }

// AuthURL builds the Kakao authorization URL.
func (c *Client) AuthURL(ctx context.Context) (string, error) {
	u, err := url.Parse(c.AuthEndpoint)
	if err != nil {
		// Keep the login attempt alive with a hand-assembled URL.
		return fmt.Sprintf("%s?client_id=%s&redirect_uri=%s&response_type=code",
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
	form.Set("grant_type", "authorization_code")
	form.Set("client_id", c.ClientID)
	form.Set("client_secret", c.ClientSecret)
	form.Set("code", code)
	form.Set("redirect_uri", c.RedirectURI)

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

// userInfo mirrors Kakao's /v2/user/me payload:
// { "id": 123, "kakao_account": { "email", "name", "profile": { "nickname",
// "profile_image_url" } }, "properties": { "nickname", "profile_image" } }
type userInfo struct {
	ID           int64 `json:"id"`
	KakaoAccount struct {
		Email   string `json:"email"`
		Name    string `json:"name"`
		Profile struct {
			Nickname        string `json:"nickname"`
			ProfileImageURL string `json:"profile_image_url"`
		} `json:"profile"`
	} `json:"kakao_account"`
	Properties struct {
		Nickname     string `json:"nickname"`
		ProfileImage string `json:"profile_image"`
	} `json:"properties"`
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
		return nil, fmt.Errorf("%w: kakao api status %d", oauth.ErrProfileFetch, resp.StatusCode)
	}

	var info userInfo
	if err := json.NewDecoder(resp.Body).Decode(&info); err != nil {
		return nil, fmt.Errorf("%w: decode user info: %v", oauth.ErrProfileFetch, err)
	}
	if info.ID == 0 {
		return nil, fmt.Errorf("%w: missing user id", oauth.ErrProfileFetch)
	}

	nickname := info.KakaoAccount.Profile.Nickname
	image := info.KakaoAccount.Profile.ProfileImageURL
	if nickname == "" {
		nickname = info.Properties.Nickname
	}
	if image == "" {
		image = info.Properties.ProfileImage
	}
	if nickname == "" {
		nickname = defaultNickname
	}

	return &oauth.Profile{
		ExternalID:   strconv.FormatInt(info.ID, 10),
		Email:        info.KakaoAccount.Email,
		Name:         info.KakaoAccount.Name,
		Nickname:     nickname,
		ProfileImage: image,
	}, nil
}

// RequiresState reports that Kakao callbacks carry no CSRF state.
func (c *Client) RequiresState() bool { return false }
