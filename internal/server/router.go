// Package server assembles the HTTP routes.
package server

import (
	"log/slog"
	"net/http"

	"github.com/go-chi/chi/v5"
	chimw "github.com/go-chi/chi/v5/middleware"
	"github.com/go-chi/cors"

	"github.com/ayush/food-ratings/internal/auth"
	"github.com/ayush/food-ratings/internal/foods"
	"github.com/ayush/food-ratings/internal/middleware"
)

// NewRouter wires the public and token protected routes.
func NewRouter(logger *slog.Logger, corsOrigins []string, authSvc *auth.Service, foodSvc *foods.Service) http.Handler {
	authHandler := auth.NewHandler(authSvc)
	foodHandler := foods.NewHandler(foodSvc)

	r := chi.NewRouter()
	r.Use(chimw.RequestID)
	r.Use(chimw.RealIP)
	r.Use(middleware.Logger(logger))
	r.Use(chimw.Recoverer)
	r.Use(cors.Handler(cors.Options{
		AllowedOrigins: corsOrigins,
		AllowedMethods: []string{"GET", "POST", "OPTIONS"},
		AllowedHeaders: []string{"Content-Type", "Authorization"},
		MaxAge:         300,
	}))

	// Health check
	r.Get("/health", func(w http.ResponseWriter, r *http.Request) {
		w.Header().Set("Content-Type", "application/json")
		w.Write([]byte(`{"status":"ok"}`))
	})

	// Public
	r.Post("/users", authHandler.Register)
	r.Post("/sessions", authHandler.Login)

	// Token protected
	r.Group(func(r chi.Router) {
		r.Use(middleware.RequireAuth(authSvc))
		r.Get("/secret", authHandler.Secret)
		r.Get("/profile", authHandler.Profile)
		r.Post("/food", foodHandler.Create)
		r.Get("/foods", foodHandler.List)
	})

	return r
}
