// Package social contains controllers for the social login endpoints.
package social

import svc "github.com/seoeunjin/api/internal/http/services/social"

// Config carries the redirect and cookie settings shared by the controllers.
type Config struct {
	// FrontendURL is the base URL of the web app, without trailing slash.
	FrontendURL string
	// CookieDomain scopes the session cookie.
	CookieDomain string
	// CookieSecure marks the session cookie Secure.
	CookieSecure bool
	// RecordLogin, when set, is called with the provider and the callback
	// outcome (success or the error reason).
	RecordLogin func(provider, result string)
}

// Controllers aggregates the social login controllers.
type Controllers struct {
	Login    *LoginController
	Callback *CallbackController
}

// NewControllers creates the social controllers aggregator.
func NewControllers(s svc.Services, cfg Config) *Controllers {
	return &Controllers{
		Login:    NewLoginController(s.Start),
		Callback: NewCallbackController(s.Callback, cfg),
	}
}
