// Package memory is the in-process identity store used in dev mode and
// tests. The mutex spans the whole Save so concurrent first logins for the
// same external account collapse into one row, same as the postgres upsert.
package memory

import (
	"context"
	"sync"
	"time"

	"github.com/google/uuid"

	"github.com/seoeunjin/api/internal/domain/repository"
)

type Store struct {
	mu   sync.Mutex
	rows map[string]repository.Identity
}

func New() *Store {
	return &Store{rows: make(map[string]repository.Identity)}
}

func key(externalID, provider string) string {
	return provider + "\x00" + externalID
}

func (s *Store) FindByExternalIDAndProvider(ctx context.Context, externalID, provider string) (*repository.Identity, error) {
	s.mu.Lock()
	defer s.mu.Unlock()
	row, ok := s.rows[key(externalID, provider)]
	if !ok {
		return nil, repository.ErrNotFound
	}
	out := row
	return &out, nil
}

func (s *Store) Save(ctx context.Context, id *repository.Identity) (*repository.Identity, error) {
	if id.ExternalID == "" || id.Provider == "" {
		return nil, repository.ErrInvalidInput
	}

	s.mu.Lock()
	defer s.mu.Unlock()

	now := time.Now().UTC()
	k := key(id.ExternalID, id.Provider)
	row := *id

	if existing, ok := s.rows[k]; ok {
		// Upsert: the row identity and creation time survive.
		row.ID = existing.ID
		row.CreatedAt = existing.CreatedAt
	} else {
		if row.ID == "" {
			row.ID = uuid.NewString()
		}
		row.CreatedAt = now
	}
	row.UpdatedAt = now

	s.rows[k] = row
	out := row
	return &out, nil
}

// Count returns the number of stored identities. Test helper.
func (s *Store) Count() int {
	s.mu.Lock()
	defer s.mu.Unlock()
	return len(s.rows)
}
