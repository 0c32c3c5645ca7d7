// Package pg is the postgres identity store backed by a pgx pool. Save is a
// single INSERT … ON CONFLICT upsert so two concurrent first logins for the
// same (external_id, provider) can never create duplicate rows.
package pg

import (
	"context"
	"errors"
	"fmt"

	"github.com/google/uuid"
	"github.com/jackc/pgx/v5"
	"github.com/jackc/pgx/v5/pgxpool"

	"github.com/seoeunjin/api/internal/domain/repository"
)

type Store struct {
	pool *pgxpool.Pool
}

// New connects the pool and pings it once so a bad DSN fails at startup
// instead of on the first login.
func New(ctx context.Context, dsn string) (*Store, error) {
	pool, err := pgxpool.New(ctx, dsn)
	if err != nil {
		return nil, fmt.Errorf("pg: connect: %w", err)
	}
	if err := pool.Ping(ctx); err != nil {
		pool.Close()
		return nil, fmt.Errorf("pg: ping: %w", err)
	}
	return &Store{pool: pool}, nil
}

// Close releases the pool.
func (s *Store) Close() { s.pool.Close() }

// Ping checks connectivity, used by the readiness probe.
func (s *Store) Ping(ctx context.Context) error { return s.pool.Ping(ctx) }

func (s *Store) FindByExternalIDAndProvider(ctx context.Context, externalID, provider string) (*repository.Identity, error) {
	const q = `
		SELECT id, external_id, provider, email, name, nickname, profile_image, created_at, updated_at
		FROM identities
		WHERE external_id = $1 AND provider = $2
	`
	var row repository.Identity
	err := s.pool.QueryRow(ctx, q, externalID, provider).Scan(
		&row.ID, &row.ExternalID, &row.Provider,
		&row.Email, &row.Name, &row.Nickname, &row.ProfileImage,
		&row.CreatedAt, &row.UpdatedAt,
	)
	if errors.Is(err, pgx.ErrNoRows) {
		return nil, repository.ErrNotFound
	}
	if err != nil {
		return nil, err
	}
	return &row, nil
}

func (s *Store) Save(ctx context.Context, id *repository.Identity) (*repository.Identity, error) {
	if id.ExternalID == "" || id.Provider == "" {
		return nil, repository.ErrInvalidInput
	}

	rowID := id.ID
	if rowID == "" {
		rowID = uuid.NewString()
	}

	const q = `
		INSERT INTO identities (id, external_id, provider, email, name, nickname, profile_image)
		VALUES ($1, $2, $3, $4, $5, $6, $7)
		ON CONFLICT (external_id, provider) DO UPDATE SET
			email         = EXCLUDED.email,
			name          = EXCLUDED.name,
			nickname      = EXCLUDED.nickname,
			profile_image = EXCLUDED.profile_image,
			updated_at    = now()
		RETURNING id, external_id, provider, email, name, nickname, profile_image, created_at, updated_at
	`
	var row repository.Identity
	err := s.pool.QueryRow(ctx, q,
		rowID, id.ExternalID, id.Provider,
		id.Email, id.Name, id.Nickname, id.ProfileImage,
	).Scan(
		&row.ID, &row.ExternalID, &row.Provider,
		&row.Email, &row.Name, &row.Nickname, &row.ProfileImage,
		&row.CreatedAt, &row.UpdatedAt,
	)
	if err != nil {
		return nil, err
	}
	return &row, nil
}
