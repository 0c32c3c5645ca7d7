// Package state manages single-use CSRF state tokens for providers that
// require them on the authorization request (Naver).
package state

import (
	"context"
	"crypto/rand"
	"encoding/base64"
)

// Store issues and consumes CSRF state tokens. A token is consumable exactly
// once: Consume returns true only on the first call for a token previously
// returned by Issue, and false for reused or unknown tokens. Implementations
// must keep check-and-remove atomic under concurrent requests, and expire
// entries so abandoned logins do not accumulate.
type Store interface {
	Issue(ctx context.Context) (string, error)
	Consume(ctx context.Context, token string) bool
}

// NewToken returns a 128-bit random token, base64 raw-URL encoded.
func NewToken() (string, error) {
	b := make([]byte, 16)
	if _, err := rand.Read(b); err != nil {
		return "", err
	}
	return base64.RawURLEncoding.EncodeToString(b), nil
}
