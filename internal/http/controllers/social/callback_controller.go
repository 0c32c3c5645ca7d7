package social

import (
	"errors"
	"net/http"
	"net/url"
	"strings"

	"github.com/go-chi/chi/v5"

	svc "github.com/seoeunjin/api/internal/http/services/social"
	"github.com/seoeunjin/api/internal/observability/logger"
)

// sessionCookieMaxAge keeps the cookie aligned with the 24h token TTL.
const sessionCookieMaxAge = 86400

// CallbackController handles the social login callback endpoint.
//
// Every request terminates in a redirect to the frontend: successful logins
// land on the dashboard with a session cookie set, failures land on the
// login page with an error code in the query string. No fault escapes as a
// bare HTTP error.
type CallbackController struct {
	service svc.CallbackService
	cfg     Config
}

// NewCallbackController creates a new CallbackController.
func NewCallbackController(service svc.CallbackService, cfg Config) *CallbackController {
	return &CallbackController{service: service, cfg: cfg}
}

// Callback handles GET /{provider}/callback.
func (c *CallbackController) Callback(w http.ResponseWriter, r *http.Request) {
	ctx := r.Context()
	log := logger.From(ctx).With(logger.Layer("controller"), logger.Op("CallbackController.Callback"))

	provider := chi.URLParam(r, "provider")
	q := r.URL.Query()

	result, err := c.service.Callback(ctx, svc.CallbackRequest{
		Provider: provider,
		Code:     strings.TrimSpace(q.Get("code")),
		State:    strings.TrimSpace(q.Get("state")),
		Error:    strings.TrimSpace(q.Get("error")),
	})
	if err != nil {
		log.Warn("callback failed", logger.Provider(provider), logger.Err(err))
		reason, message := mapCallbackError(err)
		c.record(provider, reason)
		c.redirectWithError(w, r, provider, reason, message)
		return
	}
	c.record(provider, "success")

	http.SetCookie(w, &http.Cookie{
		Name:     "access_token",
		Value:    result.Token,
		Path:     "/",
		Domain:   c.cfg.CookieDomain,
		MaxAge:   sessionCookieMaxAge,
		HttpOnly: true,
		Secure:   c.cfg.CookieSecure,
		SameSite: http.SameSiteLaxMode,
	})

	w.Header().Set("Cache-Control", "no-store")
	http.Redirect(w, r, c.cfg.FrontendURL+"/dashboard/"+provider, http.StatusFound)

	log.Debug("redirecting to dashboard", logger.Provider(provider))
}

func (c *CallbackController) record(provider, result string) {
	if c.cfg.RecordLogin != nil {
		c.cfg.RecordLogin(provider, result)
	}
}

// mapCallbackError maps a service error to the frontend error code and an
// optional human-readable message.
func mapCallbackError(err error) (reason, message string) {
	switch {
	case errors.Is(err, svc.ErrCallbackCancelled):
		return "cancel", ""
	case errors.Is(err, svc.ErrCallbackMissingCode):
		return "no_code", ""
	case errors.Is(err, svc.ErrCallbackInvalidState):
		return "invalid_state", ""
	case errors.Is(err, svc.ErrCallbackTokenExchange):
		return "token_failed", ""
	default:
		return "auth_failed", err.Error()
	}
}

// redirectWithError sends the browser back to the frontend login page with
// the provider-prefixed error code.
func (c *CallbackController) redirectWithError(w http.ResponseWriter, r *http.Request, provider, reason, message string) {
	v := url.Values{}
	v.Set("error", provider+"_"+reason)
	if message != "" {
		v.Set("message", message)
	}

	w.Header().Set("Cache-Control", "no-store")
	http.Redirect(w, r, c.cfg.FrontendURL+"/login?"+v.Encode(), http.StatusFound)
}
