package social

import (
	"context"
	"errors"
	"fmt"

	"github.com/seoeunjin/api/internal/domain/repository"
	"github.com/seoeunjin/api/internal/oauth"
	"github.com/seoeunjin/api/internal/observability/logger"
)

// ProvisioningDeps contains dependencies for provisioning service.
type ProvisioningDeps struct {
	Identities repository.IdentityRepository
}

// provisioningService implements ProvisioningService.
type provisioningService struct {
	identities repository.IdentityRepository
}

// NewProvisioningService creates a new ProvisioningService.
func NewProvisioningService(d ProvisioningDeps) ProvisioningService {
	return &provisioningService{
		identities: d.Identities,
	}
}

// FindOrCreate reconciles a provider profile with the identity store.
func (s *provisioningService) FindOrCreate(ctx context.Context, provider string, profile *oauth.Profile) (*repository.Identity, error) {
	log := logger.From(ctx).With(logger.Layer("service"), logger.Component("social.provisioning"))

	if profile == nil || profile.ExternalID == "" {
		return nil, ErrProvisioningExternalIDMissing
	}

	existing, err := s.identities.FindByExternalIDAndProvider(ctx, profile.ExternalID, provider)
	if err != nil && !errors.Is(err, repository.ErrNotFound) {
		log.Error("identity lookup failed",
			logger.Provider(provider),
			logger.ExternalID(profile.ExternalID),
			logger.Err(err),
		)
		return nil, fmt.Errorf("%w: %v", ErrProvisioningFailed, err)
	}

	var id repository.Identity
	if existing != nil {
		id = *existing
		// Refresh only fields the provider actually sent.
		if profile.Email != "" {
			id.Email = profile.Email
		}
		if profile.Name != "" {
			id.Name = profile.Name
		}
		if profile.Nickname != "" {
			id.Nickname = profile.Nickname
		}
		if profile.ProfileImage != "" {
			id.ProfileImage = profile.ProfileImage
		}
	} else {
		id = repository.Identity{
			ExternalID:   profile.ExternalID,
			Provider:     provider,
			Email:        profile.Email,
			Name:         profile.Name,
			Nickname:     profile.Nickname,
			ProfileImage: profile.ProfileImage,
		}
		if id.Name == "" {
			id.Name = profile.Nickname
		}
	}

	saved, err := s.identities.Save(ctx, &id)
	if err != nil {
		log.Error("identity save failed",
			logger.Provider(provider),
			logger.ExternalID(profile.ExternalID),
			logger.Err(err),
		)
		return nil, fmt.Errorf("%w: %v", ErrProvisioningFailed, err)
	}

	if existing == nil {
		log.Info("identity created",
			logger.Provider(provider),
			logger.IdentityID(saved.ID),
		)
	}

	return saved, nil
}
