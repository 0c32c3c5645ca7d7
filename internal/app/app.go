// Package app wires configuration into the running service: stores,
// providers, services, controllers and the HTTP router.
package app

import (
	"context"
	"fmt"

	"github.com/seoeunjin/api/internal/config"
	"github.com/seoeunjin/api/internal/domain/repository"
	httpapi "github.com/seoeunjin/api/internal/http"
	authctrl "github.com/seoeunjin/api/internal/http/controllers/auth"
	socialctrl "github.com/seoeunjin/api/internal/http/controllers/social"
	socialsvc "github.com/seoeunjin/api/internal/http/services/social"
	"github.com/seoeunjin/api/internal/jwt"
	"github.com/seoeunjin/api/internal/oauth"
	"github.com/seoeunjin/api/internal/oauth/google"
	"github.com/seoeunjin/api/internal/oauth/kakao"
	"github.com/seoeunjin/api/internal/oauth/naver"
	"github.com/seoeunjin/api/internal/observability/logger"
	"github.com/seoeunjin/api/internal/state"
	statememory "github.com/seoeunjin/api/internal/state/memory"
	stateredis "github.com/seoeunjin/api/internal/state/redis"
	storememory "github.com/seoeunjin/api/internal/store/memory"
	storepg "github.com/seoeunjin/api/internal/store/pg"
	"go.uber.org/zap"
)

// Container holds the assembled application.
type Container struct {
	Cfg      *config.Config
	Server   *httpapi.Server
	Issuer   *jwt.Issuer
	Identity repository.IdentityRepository
	States   state.Store

	closers []func()
}

// New assembles the application from config.
func New(ctx context.Context, cfg *config.Config) (*Container, error) {
	log := logger.L().With(logger.Component("app"))

	c := &Container{Cfg: cfg}

	// Identity store.
	var pgStore *storepg.Store
	switch cfg.Storage.Driver {
	case "postgres":
		s, err := storepg.New(ctx, cfg.Storage.DSN)
		if err != nil {
			return nil, fmt.Errorf("app: identity store: %w", err)
		}
		pgStore = s
		c.Identity = s
		c.closers = append(c.closers, s.Close)
	case "memory", "":
		c.Identity = storememory.New()
	default:
		return nil, fmt.Errorf("app: unknown storage driver %q", cfg.Storage.Driver)
	}

	// State store.
	switch cfg.State.Kind {
	case "redis":
		s := stateredis.New(cfg.State.Redis.Addr, cfg.State.Redis.DB, cfg.State.Redis.Prefix, cfg.StateTTL())
		c.States = s
		c.closers = append(c.closers, func() { _ = s.Close() })
	case "memory", "":
		c.States = statememory.New(cfg.StateTTL())
	default:
		return nil, fmt.Errorf("app: unknown state store %q", cfg.State.Kind)
	}

	c.Issuer = jwt.NewIssuer(cfg.JWT.Secret, cfg.JWTTTL())

	registry := oauth.NewRegistry(
		kakao.New(cfg.Providers.Kakao.ClientID, cfg.Providers.Kakao.ClientSecret, cfg.Providers.Kakao.RedirectURI),
		google.New(cfg.Providers.Google.ClientID, cfg.Providers.Google.ClientSecret, cfg.Providers.Google.RedirectURI),
		naver.New(cfg.Providers.Naver.ClientID, cfg.Providers.Naver.ClientSecret, cfg.Providers.Naver.RedirectURI, c.States),
	)

	provisioning := socialsvc.NewProvisioningService(socialsvc.ProvisioningDeps{
		Identities: c.Identity,
	})
	services := socialsvc.Services{
		Start: socialsvc.NewStartService(socialsvc.StartDeps{
			Providers: registry,
		}),
		Callback: socialsvc.NewCallbackService(socialsvc.CallbackDeps{
			Providers:    registry,
			States:       c.States,
			Provisioning: provisioning,
			Tokens:       c.Issuer,
		}),
		Provisioning: provisioning,
	}

	metricsHandler, err := httpapi.RegisterMetrics(nil)
	if err != nil {
		return nil, fmt.Errorf("app: metrics: %w", err)
	}

	social := socialctrl.NewControllers(services, socialctrl.Config{
		FrontendURL:  cfg.Frontend.BaseURL,
		CookieDomain: cfg.Cookie.Domain,
		CookieSecure: cfg.Cookie.Secure,
		RecordLogin:  httpapi.RecordLogin,
	})

	router := httpapi.NewRouter(httpapi.RouterDeps{
		Social:  social,
		Me:      authctrl.NewMeController(c.Issuer),
		Metrics: metricsHandler,
		Ready: func() error {
			if pgStore != nil {
				return pgStore.Ping(context.Background())
			}
			return nil
		},
		CORSAllowedOrigins: cfg.Server.CORSAllowedOrigins,
	})

	c.Server = httpapi.NewServer(cfg.Server.Addr, router)

	log.Info("application assembled",
		zap.String("addr", cfg.Server.Addr),
		zap.String("storage", cfg.Storage.Driver),
		zap.String("state_store", cfg.State.Kind),
		zap.Strings("providers", registry.Names()),
	)

	return c, nil
}

// Close releases every resource opened by New, in reverse order.
func (c *Container) Close() {
	for i := len(c.closers) - 1; i >= 0; i-- {
		c.closers[i]()
	}
}
