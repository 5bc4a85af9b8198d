package router

import (
	"github.com/go-chi/chi/v5"
	"github.com/go-chi/cors"
	"github.com/prometheus/client_golang/prometheus/promhttp"

	"github.com/yogeshrakate/skill-matrix-backend/internal/middleware"
	"github.com/yogeshrakate/skill-matrix-backend/internal/setup"
)

// New configures all routes. Auth endpoints are public; the admin
// catalog requires a bearer token.
func New(deps *setup.Dependencies) *chi.Mux {
	r := chi.NewRouter()

	r.Use(middleware.Metrics)
	r.Use(cors.Handler(cors.Options{
		AllowedOrigins: []string{"*"},
		AllowedMethods: []string{"GET", "POST", "PUT", "DELETE", "OPTIONS"},
		AllowedHeaders: []string{"Content-Type", "Authorization"},
	}))

	h := deps.Handler

	r.Get("/health", h.Health)
	r.Get("/ready", h.Ready)
	r.Handle("/metrics", promhttp.Handler())

	r.Route("/auth", func(r chi.Router) {
		r.Post("/signup", h.Signup)
		r.Get("/verify-email", h.VerifyEmail)
		r.Post("/login", h.Login)
		r.Post("/forgot-password", h.ForgotPassword)
		r.Post("/update-password", h.UpdatePassword)
	})

	r.Route("/admin", func(r chi.Router) {
		r.Use(middleware.Auth(deps.Tokens))
		r.Route("/{entity}", func(r chi.Router) {
			r.Post("/", h.CreateEntity)
			r.Get("/", h.ListEntities)
			r.Get("/{id}", h.GetEntity)
			r.Put("/{id}", h.UpdateEntity)
			r.Delete("/{id}", h.DeleteEntity)
		})
	})

	return r
}
