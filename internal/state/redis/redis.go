// Package redis is the distributed state store. GETDEL gives single-use
// semantics across instances without any client-side locking.
package redis

import (
	"context"
	"time"

	rdb "github.com/redis/go-redis/v9"

	"github.com/seoeunjin/api/internal/state"
)

type Store struct {
	c      *rdb.Client
	prefix string
	ttl    time.Duration
}

// New creates a redis-backed store. Entries expire after ttl.
func New(addr string, db int, prefix string, ttl time.Duration) *Store {
	return &Store{
		c:      rdb.NewClient(&rdb.Options{Addr: addr, DB: db}),
		prefix: prefix,
		ttl:    ttl,
	}
}

func (s *Store) Issue(ctx context.Context) (string, error) {
	token, err := state.NewToken()
	if err != nil {
		return "", err
	}
	if err := s.c.Set(ctx, s.prefix+token, "1", s.ttl).Err(); err != nil {
		return "", err
	}
	return token, nil
}

func (s *Store) Consume(ctx context.Context, token string) bool {
	v, err := s.c.GetDel(ctx, s.prefix+token).Result()
	return err == nil && v != ""
}

// Close releases the underlying client.
func (s *Store) Close() error { return s.c.Close() }
