package router

import (
	"net/http"

	"github.com/go-chi/chi/v5"
	chimiddleware "github.com/go-chi/chi/v5/middleware"

	"roaster-backend/internal/handlers"
	"roaster-backend/internal/middleware"
)

func New(
	chatHandler *handlers.ChatHandler,
	cardHandler *handlers.CardHandler,
	limiter middleware.Limiter,
	frontendURL string,
) http.Handler {
	r := chi.NewRouter()

	// Global middleware
	r.Use(chimiddleware.Logger)
	r.Use(chimiddleware.Recoverer)
	r.Use(chimiddleware.RealIP)
	r.Use(middleware.RequestID)
	r.Use(middleware.CORS(frontendURL))

	// Health check
	r.Get("/health", func(w http.ResponseWriter, r *http.Request) {
		w.Header().Set("Content-Type", "application/json")
		w.Write([]byte(`{"status":"ok"}`))
	})

	api := func(r chi.Router) {
		r.Group(func(r chi.Router) {
			if limiter != nil {
				r.Use(middleware.RateLimit(limiter))
			}
			r.Post("/chat", chatHandler.Generate)
			r.Post("/card", cardHandler.Render)
		})
	}

	r.Route("/api", func(r chi.Router) {
		api(r)
		r.Route("/v1", api)
	})

	return r
}
