package social

import (
	"context"
	"fmt"

	"github.com/seoeunjin/api/internal/oauth"
	"github.com/seoeunjin/api/internal/observability/logger"
	"github.com/seoeunjin/api/internal/state"
)

// TokenIssuer signs a session credential for a provisioned identity.
type TokenIssuer interface {
	Issue(subject, email, name, provider string) (string, error)
}

// CallbackDeps contains dependencies for callback service.
type CallbackDeps struct {
	Providers    *oauth.Registry
	States       state.Store
	Provisioning ProvisioningService
	Tokens       TokenIssuer
}

// callbackService implements CallbackService.
type callbackService struct {
	providers    *oauth.Registry
	states       state.Store
	provisioning ProvisioningService
	tokens       TokenIssuer
}

// NewCallbackService creates a new CallbackService.
func NewCallbackService(d CallbackDeps) CallbackService {
	return &callbackService{
		providers:    d.Providers,
		states:       d.States,
		provisioning: d.Provisioning,
		tokens:       d.Tokens,
	}
}

// Callback processes the OAuth callback end to end.
func (s *callbackService) Callback(ctx context.Context, req CallbackRequest) (*CallbackResult, error) {
	log := logger.From(ctx).With(logger.Layer("service"), logger.Component("social.callback"), logger.Provider(req.Provider))

	// The provider reported an error (typically the user hit cancel on the
	// consent screen). Nothing else in the request is trustworthy.
	if req.Error != "" {
		log.Info("provider returned error", logger.String("provider_error", req.Error))
		return nil, ErrCallbackCancelled
	}
	if req.Code == "" {
		return nil, ErrCallbackMissingCode
	}

	p, err := s.providers.Get(req.Provider)
	if err != nil {
		return nil, ErrCallbackProviderUnknown
	}

	if p.RequiresState() {
		if req.State == "" || !s.states.Consume(ctx, req.State) {
			log.Warn("state validation failed")
			return nil, ErrCallbackInvalidState
		}
	}

	tok, err := p.ExchangeCode(ctx, req.Code, req.State)
	if err != nil {
		log.Error("code exchange failed", logger.Err(err))
		return nil, fmt.Errorf("%w: %v", ErrCallbackTokenExchange, err)
	}
	if tok.AccessToken == "" {
		log.Error("token response missing access_token")
		return nil, ErrCallbackTokenExchange
	}

	profile, err := p.FetchProfile(ctx, tok.AccessToken)
	if err != nil {
		log.Error("profile fetch failed", logger.Err(err))
		return nil, fmt.Errorf("%w: %v", ErrCallbackAuthFailed, err)
	}

	identity, err := s.provisioning.FindOrCreate(ctx, req.Provider, profile)
	if err != nil {
		log.Error("provisioning failed", logger.Err(err))
		return nil, fmt.Errorf("%w: %v", ErrCallbackAuthFailed, err)
	}

	displayName := identity.Name
	if displayName == "" {
		displayName = identity.Nickname
	}
	token, err := s.tokens.Issue(identity.ID, identity.Email, displayName, req.Provider)
	if err != nil {
		log.Error("token issuance failed", logger.Err(err))
		return nil, fmt.Errorf("%w: %v", ErrCallbackAuthFailed, err)
	}

	log.Info("social login completed", logger.IdentityID(identity.ID))

	return &CallbackResult{
		Token:    token,
		Identity: identity,
	}, nil
}
