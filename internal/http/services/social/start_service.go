package social

import (
	"context"
	"errors"
)

// StartService handles the start phase of social login.
type StartService interface {
	// Start initiates the social login flow and returns the provider
	// authorization URL the browser should be sent to.
	Start(ctx context.Context, req StartRequest) (*StartResult, error)
}

// StartRequest contains the parameters for starting social login.
type StartRequest struct {
	Provider string
}

// StartResult contains the result of starting social login.
type StartResult struct {
	AuthURL string
}

// Errors for start service.
var (
	ErrStartProviderUnknown = errors.New("unknown provider")
	ErrStartAuthURLFailed   = errors.New("failed to generate auth URL")
)
