package social

import (
	"context"
	"errors"

	"github.com/seoeunjin/api/internal/domain/repository"
)

// CallbackService handles the callback phase of social login.
type CallbackService interface {
	// Callback processes the OAuth callback: it validates the request,
	// exchanges the code, provisions the identity and issues a session token.
	Callback(ctx context.Context, req CallbackRequest) (*CallbackResult, error)
}

// CallbackRequest contains the parameters for processing the callback.
type CallbackRequest struct {
	Provider string
	Code     string
	State    string
	// Error carries the provider error query parameter, when present.
	Error string
}

// CallbackResult contains the result of a successful callback.
type CallbackResult struct {
	Token    string
	Identity *repository.Identity
}

// Errors for callback service.
var (
	ErrCallbackCancelled       = errors.New("user cancelled login")
	ErrCallbackMissingCode     = errors.New("missing code")
	ErrCallbackProviderUnknown = errors.New("unknown provider")
	ErrCallbackInvalidState    = errors.New("invalid state")
	ErrCallbackTokenExchange   = errors.New("token exchange failed")
	ErrCallbackAuthFailed      = errors.New("authentication failed")
)
