package social

import (
	"errors"
	"net/http"

	"github.com/go-chi/chi/v5"

	httperrors "github.com/seoeunjin/api/internal/http/errors"
	svc "github.com/seoeunjin/api/internal/http/services/social"
	"github.com/seoeunjin/api/internal/observability/logger"
)

// LoginController handles the social login start endpoints.
type LoginController struct {
	service svc.StartService
}

// NewLoginController creates a new LoginController.
func NewLoginController(service svc.StartService) *LoginController {
	return &LoginController{service: service}
}

// loginResponse is the body returned by the POST variant.
type loginResponse struct {
	Success bool   `json:"success"`
	Message string `json:"message"`
	AuthURL string `json:"authUrl,omitempty"`
}

// Redirect handles GET /{provider}/login by sending the browser straight
// to the provider's consent screen.
func (c *LoginController) Redirect(w http.ResponseWriter, r *http.Request) {
	ctx := r.Context()
	log := logger.From(ctx).With(logger.Layer("controller"), logger.Op("LoginController.Redirect"))

	provider := chi.URLParam(r, "provider")

	result, err := c.service.Start(ctx, svc.StartRequest{Provider: provider})
	if err != nil {
		if errors.Is(err, svc.ErrStartProviderUnknown) {
			httperrors.WriteError(w, http.StatusNotFound, "unknown_provider", "unsupported login provider")
			return
		}
		log.Error("login start failed", logger.Provider(provider), logger.Err(err))
		httperrors.WriteError(w, http.StatusInternalServerError, "server_error", "failed to start login")
		return
	}

	w.Header().Set("Cache-Control", "no-store")
	http.Redirect(w, r, result.AuthURL, http.StatusFound)
}

// Start handles POST /{provider}/login and returns the authorization URL
// as JSON so the frontend can navigate itself.
func (c *LoginController) Start(w http.ResponseWriter, r *http.Request) {
	ctx := r.Context()
	log := logger.From(ctx).With(logger.Layer("controller"), logger.Op("LoginController.Start"))

	provider := chi.URLParam(r, "provider")

	result, err := c.service.Start(ctx, svc.StartRequest{Provider: provider})
	if err != nil {
		if errors.Is(err, svc.ErrStartProviderUnknown) {
			httperrors.WriteJSON(w, http.StatusNotFound, loginResponse{
				Success: false,
				Message: "unsupported login provider",
			})
			return
		}
		log.Error("login start failed", logger.Provider(provider), logger.Err(err))
		httperrors.WriteJSON(w, http.StatusInternalServerError, loginResponse{
			Success: false,
			Message: "failed to start login",
		})
		return
	}

	httperrors.WriteJSON(w, http.StatusOK, loginResponse{
		Success: true,
		Message: "redirect to the provider login page",
		AuthURL: result.AuthURL,
	})
}
