package repository

import (
	"context"
	"time"
)

// Identity is the local record of a user, keyed by (ExternalID, Provider).
// One row per external account per provider; profile fields are refreshed on
// every successful login.
type Identity struct {
	ID           string
	ExternalID   string // user id at the provider, opaque to us
	Provider     string // "kakao", "google", "naver"
	Email        string
	Name         string
	Nickname     string
	ProfileImage string
	CreatedAt    time.Time
	UpdatedAt    time.Time
}

// IdentityRepository persists identities. Save is an upsert keyed by
// (ExternalID, Provider) and must be atomic per row so two concurrent first
// logins for the same external account cannot create duplicates.
type IdentityRepository interface {
	// FindByExternalIDAndProvider returns ErrNotFound when no row exists.
	FindByExternalIDAndProvider(ctx context.Context, externalID, provider string) (*Identity, error)

	// Save inserts or updates the identity and returns the persisted row
	// with ID/CreatedAt/UpdatedAt filled in.
	Save(ctx context.Context, id *Identity) (*Identity, error)
}
