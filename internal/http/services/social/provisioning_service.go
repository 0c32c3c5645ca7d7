package social

import (
	"context"
	"errors"

	"github.com/seoeunjin/api/internal/domain/repository"
	"github.com/seoeunjin/api/internal/oauth"
)

// ProvisioningService reconciles provider profiles with stored identities.
type ProvisioningService interface {
	// FindOrCreate looks up the identity for (profile.ExternalID, provider)
	// and creates it when missing. Existing records are refreshed with any
	// non-empty profile fields.
	FindOrCreate(ctx context.Context, provider string, profile *oauth.Profile) (*repository.Identity, error)
}

// Errors for provisioning service.
var (
	ErrProvisioningExternalIDMissing = errors.New("external id missing from profile")
	ErrProvisioningFailed            = errors.New("identity provisioning failed")
)
