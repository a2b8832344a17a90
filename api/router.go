package api

import (
	"net/http"

	"github.com/go-chi/chi/v5"
	"github.com/go-chi/chi/v5/middleware"
)

// NewRouter wires the HTTP surface. wsHandler and metricsHandler may be nil.
func NewRouter(h *Handler, wsHandler, metricsHandler http.Handler) http.Handler {
	r := chi.NewRouter()
	r.Use(middleware.RealIP)
	r.Use(middleware.Recoverer)

	r.Get("/healthz", h.Health)
	if wsHandler != nil {
		r.Handle("/ws", wsHandler)
	}
	if metricsHandler != nil {
		r.Handle("/metrics", metricsHandler)
	}

	r.Route("/api", func(r chi.Router) {
		r.Use(corsMiddleware)
		r.Get("/scores", h.Scores)
		r.Get("/stats", h.Stats)
		r.Get("/themes", h.ThemesList)
	})
	return r
}

// corsMiddleware applies CORS and answers preflight requests.
func corsMiddleware(next http.Handler) http.Handler {
	return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		if CORS(w, r) {
			return
		}
		next.ServeHTTP(w, r)
	})
}
