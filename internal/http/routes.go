package http

import (
	stdhttp "net/http"

	"github.com/go-chi/chi/v5"

	authctrl "github.com/seoeunjin/api/internal/http/controllers/auth"
	socialctrl "github.com/seoeunjin/api/internal/http/controllers/social"
)

// RouterDeps contains everything the router mounts.
type RouterDeps struct {
	Social  *socialctrl.Controllers
	Me      *authctrl.MeController
	Metrics stdhttp.Handler
	// Ready reports whether backing stores are reachable.
	Ready func() error

	CORSAllowedOrigins []string
}

// NewRouter assembles the full route table with the shared middleware chain.
func NewRouter(deps RouterDeps) stdhttp.Handler {
	r := chi.NewRouter()

	r.Get("/healthz", func(w stdhttp.ResponseWriter, _ *stdhttp.Request) {
		w.WriteHeader(stdhttp.StatusOK)
		_, _ = w.Write([]byte("ok"))
	})
	r.Get("/readyz", func(w stdhttp.ResponseWriter, r *stdhttp.Request) {
		if deps.Ready != nil {
			if err := deps.Ready(); err != nil {
				w.WriteHeader(stdhttp.StatusServiceUnavailable)
				_, _ = w.Write([]byte("not ready"))
				return
			}
		}
		w.WriteHeader(stdhttp.StatusOK)
		_, _ = w.Write([]byte("ready"))
	})

	if deps.Metrics != nil {
		r.Handle("/metrics", deps.Metrics)
	}

	if deps.Me != nil {
		r.Get("/auth/me", deps.Me.Me)
	}

	r.Get("/{provider}/login", deps.Social.Login.Redirect)
	r.Post("/{provider}/login", deps.Social.Login.Start)
	r.Get("/{provider}/callback", deps.Social.Callback.Callback)

	var h stdhttp.Handler = r
	h = WithMetrics(h)
	h = WithLogging(h)
	h = WithCORS(h, deps.CORSAllowedOrigins)
	h = WithRequestID(h)
	h = WithRecover(h)
	return h
}
