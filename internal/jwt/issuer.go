// Package jwt issues and verifies the session credential handed out after a
// successful social login. Tokens are HS256-signed with a process-wide
// symmetric key and carry the local identity id plus display claims.
package jwt

import (
	"errors"
	"fmt"
	"time"

	jwtv5 "github.com/golang-jwt/jwt/v5"
)

// minKeyLen is the HS256 floor: 32 bytes (256 bits).
const minKeyLen = 32

// ErrInvalidToken covers bad signature, malformed structure and expiry.
var ErrInvalidToken = errors.New("invalid token")

// Claims are the verified contents of a session credential.
type Claims struct {
	Subject   string // local identity id
	Email     string
	Name      string
	Provider  string
	IssuedAt  time.Time
	ExpiresAt time.Time
}

// Issuer signs and verifies session credentials.
type Issuer struct {
	key []byte
	ttl time.Duration

	// now is swappable so expiry can be tested against a simulated clock.
	now func() time.Time
}

// NewIssuer builds an issuer from the configured secret. Secrets shorter
// than 32 bytes are stretched by cyclic repetition rather than rejected, so
// a short dev secret still boots.
func NewIssuer(secret string, ttl time.Duration) *Issuer {
	return &Issuer{
		key: stretchKey([]byte(secret)),
		ttl: ttl,
		now: time.Now,
	}
}

func stretchKey(b []byte) []byte {
	if len(b) == 0 || len(b) >= minKeyLen {
		return b
	}
	out := make([]byte, minKeyLen)
	for i := range out {
		out[i] = b[i%len(b)]
	}
	return out
}

// Issue signs a credential for the given identity.
func (i *Issuer) Issue(subject, email, name, provider string) (string, error) {
	now := i.now().UTC()
	claims := jwtv5.MapClaims{
		"sub":      subject,
		"userId":   subject,
		"email":    email,
		"name":     name,
		"provider": provider,
		"iat":      now.Unix(),
		"exp":      now.Add(i.ttl).Unix(),
	}
	tk := jwtv5.NewWithClaims(jwtv5.SigningMethodHS256, claims)
	signed, err := tk.SignedString(i.key)
	if err != nil {
		return "", err
	}
	return signed, nil
}

// Verify parses and validates a credential. Verification is side-effect-free.
func (i *Issuer) Verify(token string) (*Claims, error) {
	tk, err := jwtv5.Parse(token,
		func(t *jwtv5.Token) (any, error) { return i.key, nil },
		jwtv5.WithValidMethods([]string{"HS256"}),
		jwtv5.WithTimeFunc(i.now),
	)
	if err != nil || !tk.Valid {
		return nil, fmt.Errorf("%w: %v", ErrInvalidToken, err)
	}
	mc, ok := tk.Claims.(jwtv5.MapClaims)
	if !ok {
		return nil, ErrInvalidToken
	}

	c := &Claims{
		Subject:  getString(mc, "sub"),
		Email:    getString(mc, "email"),
		Name:     getString(mc, "name"),
		Provider: getString(mc, "provider"),
	}
	if v, ok := mc["iat"].(float64); ok {
		c.IssuedAt = time.Unix(int64(v), 0)
	}
	if v, ok := mc["exp"].(float64); ok {
		c.ExpiresAt = time.Unix(int64(v), 0)
	}
	return c, nil
}

// Subject returns the local identity id from a credential.
func (i *Issuer) Subject(token string) (string, error) {
	c, err := i.Verify(token)
	if err != nil {
		return "", err
	}
	return c.Subject, nil
}

// Email returns the email claim from a credential.
func (i *Issuer) Email(token string) (string, error) {
	c, err := i.Verify(token)
	if err != nil {
		return "", err
	}
	return c.Email, nil
}

// Name returns the display-name claim from a credential.
func (i *Issuer) Name(token string) (string, error) {
	c, err := i.Verify(token)
	if err != nil {
		return "", err
	}
	return c.Name, nil
}

func getString(m map[string]any, key string) string {
	if v, ok := m[key].(string); ok {
		return v
	}
	return ""
}
