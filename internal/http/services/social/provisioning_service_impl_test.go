package social

import (
	"context"
	"errors"
	"testing"

	"github.com/seoeunjin/api/internal/oauth"
	storememory "github.com/seoeunjin/api/internal/store/memory"
)

func TestFindOrCreateCreates(t *testing.T) {
	store := storememory.New()
	svc := NewProvisioningService(ProvisioningDeps{Identities: store})

	id, err := svc.FindOrCreate(context.Background(), "kakao", &oauth.Profile{
		ExternalID: "123",
		Nickname:   "nick",
	})
	if err != nil {
		t.Fatalf("FindOrCreate: %v", err)
	}
	if id.ID == "" {
		t.Fatal("identity must get an id")
	}
	if id.Name != "nick" {
		t.Fatalf("name = %q, want nickname fallback on create", id.Name)
	}
	if store.Count() != 1 {
		t.Fatalf("rows = %d", store.Count())
	}
}

func TestFindOrCreateIsIdempotent(t *testing.T) {
	store := storememory.New()
	svc := NewProvisioningService(ProvisioningDeps{Identities: store})
	ctx := context.Background()

	first, err := svc.FindOrCreate(ctx, "google", &oauth.Profile{ExternalID: "g-1", Email: "a@b.com"})
	if err != nil {
		t.Fatalf("FindOrCreate: %v", err)
	}
	second, err := svc.FindOrCreate(ctx, "google", &oauth.Profile{ExternalID: "g-1", Email: "a@b.com"})
	if err != nil {
		t.Fatalf("FindOrCreate again: %v", err)
	}
	if first.ID != second.ID {
		t.Fatalf("repeat login changed identity: %s -> %s", first.ID, second.ID)
	}
	if store.Count() != 1 {
		t.Fatalf("rows = %d, want 1", store.Count())
	}
}

func TestFindOrCreateKeepsFieldsWhenIncomingEmpty(t *testing.T) {
	store := storememory.New()
	svc := NewProvisioningService(ProvisioningDeps{Identities: store})
	ctx := context.Background()

	if _, err := svc.FindOrCreate(ctx, "naver", &oauth.Profile{
		ExternalID:   "n-1",
		Email:        "keep@me.com",
		Name:         "Keep",
		ProfileImage: "http://img",
	}); err != nil {
		t.Fatalf("seed: %v", err)
	}

	// Next login the provider withholds email and image (consent revoked);
	// only the nickname changed.
	got, err := svc.FindOrCreate(ctx, "naver", &oauth.Profile{
		ExternalID: "n-1",
		Nickname:   "fresh",
	})
	if err != nil {
		t.Fatalf("FindOrCreate: %v", err)
	}
	if got.Email != "keep@me.com" || got.Name != "Keep" || got.ProfileImage != "http://img" {
		t.Fatalf("stored fields clobbered by empty incoming: %+v", got)
	}
	if got.Nickname != "fresh" {
		t.Fatalf("nickname = %q, want refreshed", got.Nickname)
	}
}

func TestFindOrCreateOverwritesNonEmpty(t *testing.T) {
	store := storememory.New()
	svc := NewProvisioningService(ProvisioningDeps{Identities: store})
	ctx := context.Background()

	_, _ = svc.FindOrCreate(ctx, "kakao", &oauth.Profile{ExternalID: "k-1", Email: "old@x.com"})
	got, err := svc.FindOrCreate(ctx, "kakao", &oauth.Profile{ExternalID: "k-1", Email: "new@x.com"})
	if err != nil {
		t.Fatalf("FindOrCreate: %v", err)
	}
	if got.Email != "new@x.com" {
		t.Fatalf("email = %q, want updated", got.Email)
	}
}

func TestFindOrCreateMissingExternalID(t *testing.T) {
	svc := NewProvisioningService(ProvisioningDeps{Identities: storememory.New()})

	if _, err := svc.FindOrCreate(context.Background(), "kakao", &oauth.Profile{}); !errors.Is(err, ErrProvisioningExternalIDMissing) {
		t.Fatalf("want ErrProvisioningExternalIDMissing, got %v", err)
	}
	if _, err := svc.FindOrCreate(context.Background(), "kakao", nil); !errors.Is(err, ErrProvisioningExternalIDMissing) {
		t.Fatalf("want ErrProvisioningExternalIDMissing for nil profile, got %v", err)
	}
}
