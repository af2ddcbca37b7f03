package http

import (
	"github.com/go-chi/chi/v5"
	"github.com/go-chi/chi/v5/middleware"
)

func (h *Handler) Init() *chi.Mux {
	router := chi.NewRouter()
	router.Use(middleware.Recoverer)
	router.Use(h.withTraceID)
	router.Use(h.withLogging)

	// routes without authorization
	router.Group(func(r chi.Router) {
		r.Post("/api/auth/register", h.register)
		r.Post("/api/auth/login", h.login)
	})

	router.Group(func(r chi.Router) {
		r.Use(h.auth)

		r.Route("/api/users", func(r chi.Router) {
			r.Get("/", h.listUsers)
			r.Get("/stats", h.userStats)
			r.Get("/{id}", h.getUser)
			r.Patch("/{id}/status", h.updateUserStatus)
			r.Delete("/{id}", h.deleteUser)
			r.Get("/{id}/activities", h.listActivities)
		})

		r.Route("/api/reviews", func(r chi.Router) {
			r.Post("/", h.createReview)
			r.Get("/", h.listReviews)
			r.Get("/{id}", h.getReview)
			r.Post("/{id}/analysis-result", h.recordAnalysisResult)
		})

		r.Route("/api/analyses", func(r chi.Router) {
			r.Post("/", h.startJob)
			r.Get("/", h.listJobs)
			r.Get("/{id}", h.getJob)
			r.Post("/{id}/transition", h.transitionJob)
		})

		r.Post("/api/activities", h.logActivity)
	})

	return router
}
