package social

import (
	"context"
	"fmt"

	"github.com/seoeunjin/api/internal/oauth"
	"github.com/seoeunjin/api/internal/observability/logger"
)

// StartDeps contains dependencies for start service.
type StartDeps struct {
	Providers *oauth.Registry
}

// startService implements StartService.
type startService struct {
	providers *oauth.Registry
}

// NewStartService creates a new StartService.
func NewStartService(d StartDeps) StartService {
	return &startService{
		providers: d.Providers,
	}
}

// Start initiates the social login flow and returns the authorization URL.
func (s *startService) Start(ctx context.Context, req StartRequest) (*StartResult, error) {
	log := logger.From(ctx).With(logger.Layer("service"), logger.Component("social.start"))

	p, err := s.providers.Get(req.Provider)
	if err != nil {
		return nil, ErrStartProviderUnknown
	}

	authURL, err := p.AuthURL(ctx)
	if err != nil {
		log.Error("failed to build auth URL",
			logger.Provider(req.Provider),
			logger.Err(err),
		)
		return nil, fmt.Errorf("%w: %v", ErrStartAuthURLFailed, err)
	}

	log.Info("social login started", logger.Provider(req.Provider))

	return &StartResult{
		AuthURL: authURL,
	}, nil
}
