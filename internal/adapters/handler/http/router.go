package http

import (
	"net/http"
	"time"

	"github.com/go-chi/chi/v5"
	"github.com/go-chi/chi/v5/middleware"
	"github.com/storekit/catalog/internal/core/ports"
	"github.com/storekit/catalog/internal/ratelimit"
)

// NewHandler wires the request pipeline: logging, panic recovery, timeout and
// rate limiting run for every route; the bearer-token check only guards the
// protected group.
func NewHandler(
	authHandler *AuthHandler,
	productHandler *ProductHandler,
	userHandler *UserHandler,
	tokens ports.TokenProvider,
	limiter *ratelimit.Limiter,
	timeout time.Duration,
) http.Handler {
	r := chi.NewRouter()
	r.Use(middleware.Logger)
	r.Use(middleware.Recoverer)
	r.Use(middleware.Timeout(timeout))
	r.Use(RateLimit(limiter))

	r.Route("/api", func(r chi.Router) {
		r.Route("/auth", func(r chi.Router) {
			r.Post("/register", authHandler.Register)
			r.Post("/login", authHandler.Login)
		})

		r.Group(func(r chi.Router) {
			r.Use(Authenticator(tokens))

			r.Get("/user", userHandler.Me)

			r.Route("/products", func(r chi.Router) {
				r.Get("/", productHandler.List)
				r.Post("/", productHandler.Create)
				r.Get("/{id}", productHandler.Get)
				r.Put("/{id}", productHandler.Update)
				r.Patch("/{id}", productHandler.Update)
				r.Delete("/{id}", productHandler.Delete)
			})
		})
	})

	return r
}
