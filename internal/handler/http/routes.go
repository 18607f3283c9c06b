package http

import (
	"github.com/MKhiriev/go-aliyah/internal/i18n"
	"github.com/go-chi/chi/v5"
	"github.com/go-chi/chi/v5/middleware"
)

func (h *Handler) Init() *chi.Mux {
	router := chi.NewRouter()
	router.Use(middleware.Recoverer)
	router.Use(h.withTraceID)
	router.Use(h.withLogging)
	if h.options.Metrics != nil {
		router.Use(h.options.Metrics.Middleware)
	}
	router.Use(i18n.Middleware(h.options.DefaultLanguage))
	router.Use(withGZip)
	if h.options.RequestTimeout > 0 {
		router.Use(middleware.Timeout(h.options.RequestTimeout))
	}

	// operational routes
	router.Get("/health", h.health)
	router.Get("/api/version", h.getServerVersion)
	if h.options.MetricsHandler != nil {
		router.Handle("/metrics", h.options.MetricsHandler)
	}

	// routes without authorization
	router.Group(func(r chi.Router) {
		r.Post("/api/users/register", h.register)
		r.Post("/api/users/login", h.login)

		r.Get("/api/quizzes", h.listQuizzes)
		r.Get("/api/quizzes/{slug}", h.getQuiz)

		r.Get("/api/news", h.latestNews)

		r.With(h.withRateLimit).Post("/api/contact", h.contact)
	})

	// routes with authorization
	router.Group(func(r chi.Router) {
		r.Use(h.auth)

		r.Get("/api/users/me/profile", h.getProfile)
		r.Put("/api/users/me/profile", h.updateProfile)

		r.Get("/api/quizzes/attempts", h.listAttempts)
		r.Post("/api/quizzes/{slug}/submit", h.submitQuiz)
	})

	router.MethodNotAllowed(h.checkHTTPMethod(router))

	return router
}
