package social

import (
	"context"
	"errors"
	"net/http"
	"net/http/httptest"
	"net/url"
	"testing"

	"github.com/go-chi/chi/v5"

	"github.com/seoeunjin/api/internal/domain/repository"
	svc "github.com/seoeunjin/api/internal/http/services/social"
)

type fakeCallbackService struct {
	gotReq svc.CallbackRequest
	result *svc.CallbackResult
	err    error
}

func (f *fakeCallbackService) Callback(ctx context.Context, req svc.CallbackRequest) (*svc.CallbackResult, error) {
	f.gotReq = req
	if f.err != nil {
		return nil, f.err
	}
	return f.result, nil
}

func newCallbackRouter(s svc.CallbackService, record func(string, string)) http.Handler {
	c := NewCallbackController(s, Config{
		FrontendURL:  "http://front.example",
		CookieDomain: "front.example",
		RecordLogin:  record,
	})
	r := chi.NewRouter()
	r.Get("/{provider}/callback", c.Callback)
	return r
}

func get(t *testing.T, h http.Handler, target string) *httptest.ResponseRecorder {
	t.Helper()
	req := httptest.NewRequest(http.MethodGet, target, nil)
	rr := httptest.NewRecorder()
	h.ServeHTTP(rr, req)
	return rr
}

func TestCallbackErrorRedirects(t *testing.T) {
	cases := []struct {
		name    string
		err     error
		wantErr string
	}{
		{"cancelled", svc.ErrCallbackCancelled, "kakao_cancel"},
		{"missing code", svc.ErrCallbackMissingCode, "kakao_no_code"},
		{"invalid state", svc.ErrCallbackInvalidState, "kakao_invalid_state"},
		{"exchange failed", svc.ErrCallbackTokenExchange, "kakao_token_failed"},
		{"auth failed", svc.ErrCallbackAuthFailed, "kakao_auth_failed"},
		{"unknown provider", svc.ErrCallbackProviderUnknown, "kakao_auth_failed"},
	}
	for _, tc := range cases {
		t.Run(tc.name, func(t *testing.T) {
			h := newCallbackRouter(&fakeCallbackService{err: tc.err}, nil)

			rr := get(t, h, "/kakao/callback?code=c")
			if rr.Code != http.StatusFound {
				t.Fatalf("status = %d, want 302", rr.Code)
			}
			loc, err := url.Parse(rr.Header().Get("Location"))
			if err != nil {
				t.Fatalf("bad Location: %v", err)
			}
			if loc.Path != "/login" {
				t.Fatalf("path = %q, want /login", loc.Path)
			}
			if got := loc.Query().Get("error"); got != tc.wantErr {
				t.Fatalf("error = %q, want %q", got, tc.wantErr)
			}
		})
	}
}

func TestCallbackAuthFailedCarriesMessage(t *testing.T) {
	wrapped := errors.New("authentication failed: profile fetch failed")
	h := newCallbackRouter(&fakeCallbackService{err: wrapped}, nil)

	rr := get(t, h, "/google/callback?code=c")
	loc, _ := url.Parse(rr.Header().Get("Location"))
	if got := loc.Query().Get("error"); got != "google_auth_failed" {
		t.Fatalf("error = %q", got)
	}
	if got := loc.Query().Get("message"); got == "" {
		t.Fatal("auth_failed redirect should carry a message")
	}
}

func TestCallbackNonAuthFailedOmitsMessage(t *testing.T) {
	h := newCallbackRouter(&fakeCallbackService{err: svc.ErrCallbackInvalidState}, nil)

	rr := get(t, h, "/naver/callback?code=c&state=x")
	loc, _ := url.Parse(rr.Header().Get("Location"))
	if loc.Query().Has("message") {
		t.Fatal("invalid_state redirect must not carry a message")
	}
}

func TestCallbackSuccessSetsCookieAndRedirects(t *testing.T) {
	fake := &fakeCallbackService{result: &svc.CallbackResult{
		Token:    "jwt-value",
		Identity: &repository.Identity{ID: "id-1"},
	}}
	var recorded [][2]string
	h := newCallbackRouter(fake, func(p, r string) { recorded = append(recorded, [2]string{p, r}) })

	rr := get(t, h, "/naver/callback?code=c&state=st")
	if rr.Code != http.StatusFound {
		t.Fatalf("status = %d, want 302", rr.Code)
	}
	if got := rr.Header().Get("Location"); got != "http://front.example/dashboard/naver" {
		t.Fatalf("Location = %q", got)
	}

	res := rr.Result()
	defer res.Body.Close()
	var cookie *http.Cookie
	for _, ck := range res.Cookies() {
		if ck.Name == "access_token" {
			cookie = ck
		}
	}
	if cookie == nil {
		t.Fatal("access_token cookie not set")
	}
	if cookie.Value != "jwt-value" {
		t.Fatalf("cookie value = %q", cookie.Value)
	}
	if cookie.Path != "/" || cookie.Domain != "front.example" || cookie.MaxAge != 86400 {
		t.Fatalf("cookie attrs: path=%q domain=%q maxage=%d", cookie.Path, cookie.Domain, cookie.MaxAge)
	}
	if !cookie.HttpOnly {
		t.Fatal("cookie must be HttpOnly")
	}
	if cookie.SameSite != http.SameSiteLaxMode {
		t.Fatalf("SameSite = %v, want Lax", cookie.SameSite)
	}

	if fake.gotReq.Provider != "naver" || fake.gotReq.Code != "c" || fake.gotReq.State != "st" {
		t.Fatalf("service request mismatch: %+v", fake.gotReq)
	}
	if len(recorded) != 1 || recorded[0] != [2]string{"naver", "success"} {
		t.Fatalf("metrics record = %v", recorded)
	}
}

func TestCallbackPassesProviderErrorParam(t *testing.T) {
	fake := &fakeCallbackService{err: svc.ErrCallbackCancelled}
	h := newCallbackRouter(fake, nil)

	_ = get(t, h, "/kakao/callback?error=access_denied")
	if fake.gotReq.Error != "access_denied" {
		t.Fatalf("error param not forwarded: %+v", fake.gotReq)
	}
}
