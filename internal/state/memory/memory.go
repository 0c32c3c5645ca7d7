// Package memory is the in-process state store, suitable for a single
// instance. Entries expire via go-cache's janitor.
package memory

import (
	"context"
	"sync"
	"time"

	gocache "github.com/patrickmn/go-cache"

	"github.com/seoeunjin/api/internal/state"
)

type Store struct {
	mu sync.Mutex
	c  *gocache.Cache
}

// New creates a memory store whose entries expire after ttl.
func New(ttl time.Duration) *Store {
	return &Store{c: gocache.New(ttl, time.Minute)}
}

func (s *Store) Issue(ctx context.Context) (string, error) {
	token, err := state.NewToken()
	if err != nil {
		return "", err
	}
	s.mu.Lock()
	s.c.SetDefault(token, struct{}{})
	s.mu.Unlock()
	return token, nil
}

// Consume removes the token and reports whether it was present. The mutex
// makes lookup+delete one critical section so a token can never validate
// twice under concurrent callbacks.
func (s *Store) Consume(ctx context.Context, token string) bool {
	s.mu.Lock()
	defer s.mu.Unlock()
	if _, ok := s.c.Get(token); !ok {
		return false
	}
	s.c.Delete(token)
	return true
}
