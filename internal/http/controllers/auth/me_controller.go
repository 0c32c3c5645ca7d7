// Package auth contains controllers for session introspection.
package auth

import (
	"net/http"
	"strings"

	httperrors "github.com/seoeunjin/api/internal/http/errors"
	"github.com/seoeunjin/api/internal/jwt"
	"github.com/seoeunjin/api/internal/observability/logger"
)

// Verifier validates a session credential and returns its claims.
type Verifier interface {
	Verify(token string) (*jwt.Claims, error)
}

// MeController returns the claims of the authenticated session.
type MeController struct {
	verifier Verifier
}

// NewMeController creates a new MeController.
func NewMeController(verifier Verifier) *MeController {
	return &MeController{verifier: verifier}
}

type meResponse struct {
	ID       string `json:"id"`
	Email    string `json:"email,omitempty"`
	Name     string `json:"name,omitempty"`
	Provider string `json:"provider"`
}

// Me handles GET /auth/me. The credential is read from the access_token
// cookie, falling back to a bearer Authorization header.
func (c *MeController) Me(w http.ResponseWriter, r *http.Request) {
	log := logger.From(r.Context()).With(logger.Layer("controller"), logger.Op("MeController.Me"))

	token := tokenFromRequest(r)
	if token == "" {
		httperrors.WriteError(w, http.StatusUnauthorized, "unauthorized", "missing credentials")
		return
	}

	claims, err := c.verifier.Verify(token)
	if err != nil {
		log.Debug("token verification failed", logger.Err(err))
		httperrors.WriteError(w, http.StatusUnauthorized, "unauthorized", "invalid or expired token")
		return
	}

	httperrors.WriteJSON(w, http.StatusOK, meResponse{
		ID:       claims.Subject,
		Email:    claims.Email,
		Name:     claims.Name,
		Provider: claims.Provider,
	})
}

func tokenFromRequest(r *http.Request) string {
	if ck, err := r.Cookie("access_token"); err == nil && ck.Value != "" {
		return ck.Value
	}
	auth := r.Header.Get("Authorization")
	if strings.HasPrefix(auth, "Bearer ") {
		return strings.TrimSpace(strings.TrimPrefix(auth, "Bearer "))
	}
	return ""
}
