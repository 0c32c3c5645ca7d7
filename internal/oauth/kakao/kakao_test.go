package kakao

import (
	"context"
	"errors"
	"net/http"
	"net/http/httptest"
	"net/url"
	"strings"
	"testing"

	"github.com/seoeunjin/api/internal/oauth"
)

func TestAuthURL(t *testing.T) {
	c := New("kid", "ksecret", "http://localhost:8080/kakao/callback")

	raw, err := c.AuthURL(context.Background())
	if err != nil {
		t.Fatalf("AuthURL: %v", err)
	}
	u, err := url.Parse(raw)
	if err != nil {
		t.Fatalf("parse: %v", err)
	}
	if !strings.HasPrefix(raw, "https://kauth.kakao.com/oauth/authorize") {
		t.Fatalf("unexpected endpoint: %s", raw)
	}
	q := u.Query()
	if q.Get("client_id") != "kid" {
		t.Fatalf("client_id = %q", q.Get("client_id"))
	}
	if q.Get("redirect_uri") != "http://localhost:8080/kakao/callback" {
		t.Fatalf("redirect_uri = %q", q.Get("redirect_uri"))
	}
	if q.Get("response_type") != "code" {
		t.Fatalf("response_type = %q", q.Get("response_type"))
	}
	if q.Get("scope") != "profile_nickname" {
		t.Fatalf("scope = %q", q.Get("scope"))
	}
}

func TestExchangeCode(t *testing.T) {
	var gotForm url.Values
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		_ = r.ParseForm()
		gotForm = r.PostForm
		w.Header().Set("Content-Type", "application/json")
		_, _ = w.Write([]byte(`{"access_token":"tok-1","token_type":"bearer","expires_in":3600}`))
	}))
	defer srv.Close()

	c := New("kid", "ksecret", "http://cb")
	c.TokenEndpoint = srv.URL

	tr, err := c.ExchangeCode(context.Background(), "code-1", "")
	if err != nil {
		t.Fatalf("ExchangeCode: %v", err)
	}
	if tr.AccessToken != "tok-1" {
		t.Fatalf("access_token = %q", tr.AccessToken)
	}
	if gotForm.Get("grant_type") != "authorization_code" ||
		gotForm.Get("client_id") != "kid" ||
		gotForm.Get("client_secret") != "ksecret" ||
		gotForm.Get("code") != "code-1" ||
		gotForm.Get("redirect_uri") != "http://cb" {
		t.Fatalf("unexpected form: %v", gotForm)
	}
}

func TestExchangeCodeProviderError(t *testing.T) {
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		w.Header().Set("Content-Type", "application/json")
		w.WriteHeader(http.StatusBadRequest)
		_, _ = w.Write([]byte(`{"error":"invalid_grant","error_description":"code expired"}`))
	}))
	defer srv.Close()

	c := New("kid", "ksecret", "http://cb")
	c.TokenEndpoint = srv.URL

	_, err := c.ExchangeCode(context.Background(), "bad", "")
	if !errors.Is(err, oauth.ErrTokenExchange) {
		t.Fatalf("want ErrTokenExchange, got %v", err)
	}
}

func TestFetchProfileNested(t *testing.T) {
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		if got := r.Header.Get("Authorization"); got != "Bearer tok-1" {
			t.Errorf("Authorization = %q", got)
		}
		w.Header().Set("Content-Type", "application/json")
		_, _ = w.Write([]byte(`{
			"id": 321,
			"kakao_account": {
				"email": "k@example.com",
				"profile": {"nickname": "kn", "profile_image_url": "http://img"}
			}
		}`))
	}))
	defer srv.Close()

	c := New("kid", "ksecret", "http://cb")
	c.ProfileEndpoint = srv.URL

	p, err := c.FetchProfile(context.Background(), "tok-1")
	if err != nil {
		t.Fatalf("FetchProfile: %v", err)
	}
	if p.ExternalID != "321" || p.Email != "k@example.com" || p.Nickname != "kn" || p.ProfileImage != "http://img" {
		t.Fatalf("profile mismatch: %+v", p)
	}
}

func TestFetchProfilePropertiesFallback(t *testing.T) {
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		w.Header().Set("Content-Type", "application/json")
		_, _ = w.Write([]byte(`{"id": 55, "properties": {"nickname": "legacy", "profile_image": "http://old"}}`))
	}))
	defer srv.Close()

	c := New("kid", "ksecret", "http://cb")
	c.ProfileEndpoint = srv.URL

	p, err := c.FetchProfile(context.Background(), "tok")
	if err != nil {
		t.Fatalf("FetchProfile: %v", err)
	}
	if p.Nickname != "legacy" || p.ProfileImage != "http://old" {
		t.Fatalf("fallback not applied: %+v", p)
	}
}

func TestFetchProfilePlaceholderNickname(t *testing.T) {
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		w.Header().Set("Content-Type", "application/json")
		_, _ = w.Write([]byte(`{"id": 9}`))
	}))
	defer srv.Close()

	c := New("kid", "ksecret", "http://cb")
	c.ProfileEndpoint = srv.URL

	p, err := c.FetchProfile(context.Background(), "tok")
	if err != nil {
		t.Fatalf("FetchProfile: %v", err)
	}
	if p.Nickname != "Kakao User" {
		t.Fatalf("nickname = %q, want placeholder", p.Nickname)
	}
}

func TestFetchProfileMissingID(t *testing.T) {
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		w.Header().Set("Content-Type", "application/json")
		_, _ = w.Write([]byte(`{}`))
	}))
	defer srv.Close()

	c := New("kid", "ksecret", "http://cb")
	c.ProfileEndpoint = srv.URL

	if _, err := c.FetchProfile(context.Background(), "tok"); !errors.Is(err, oauth.ErrProfileFetch) {
		t.Fatalf("want ErrProfileFetch, got %v", err)
	}
}
