package api

import (
	"net/http"

	"github.com/go-chi/chi/v5"
)

func (s *Server) Routes() http.Handler {
	r := chi.NewRouter()
	r.Use(recoveryMiddleware)
	r.Use(loggingMiddleware)
	r.Use(securityHeadersMiddleware)

	r.Get("/health", s.handleHealth)
	r.Get("/ready", s.handleReady)

	r.Route("/api", func(r chi.Router) {
		r.Route("/auth", func(r chi.Router) {
			r.Post("/register", s.handleRegister)
			r.Post("/login", s.handleLogin)
			r.Post("/refresh", s.handleRefresh)
			r.With(s.authMiddleware).Get("/me", s.handleCurrentUser)
		})

		r.Group(func(r chi.Router) {
			r.Use(s.authMiddleware)

			r.Route("/cards", func(r chi.Router) {
				r.Get("/", s.handleListCards)
				r.Post("/", s.handleCreateCard)
				r.Get("/due", s.handleListDueCards)
				r.Get("/{id}", s.handleGetCard)
				r.Delete("/{id}", s.handleDeleteCard)
				r.Patch("/{id}/difficulty", s.handleUpdateDifficulty)
				r.Post("/{id}/review", s.handleReviewCard)
			})

			r.Get("/stats", s.handleStats)
			r.Get("/categories", s.handleCategories)
		})
	})

	return r
}
