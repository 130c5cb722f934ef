package web

import (
	"net/http"
	"time"

	"github.com/charmbracelet/log"
	"github.com/go-chi/chi/v5"
	"github.com/go-chi/cors"
)

// NewRouter mounts the API under /api.
func NewRouter(h *Handler, logger *log.Logger) chi.Router {
	r := chi.NewRouter()

	r.Use(cors.Handler(cors.Options{
		AllowedOrigins:   []string{"*"},
		AllowedMethods:   []string{"GET", "POST", "DELETE", "OPTIONS"},
		AllowedHeaders:   []string{"Accept", "Content-Type"},
		AllowCredentials: false,
		MaxAge:           60 * 15,
	}))
	if logger != nil {
		r.Use(requestLogger(logger))
	}

	r.Route("/api", func(rr chi.Router) {
		rr.Get("/rules", h.Rules)
		rr.Get("/scores", h.Scores)

		rr.Route("/sessions", func(sr chi.Router) {
			sr.Post("/", h.Create)
			sr.Route("/{id}", func(ir chi.Router) {
				ir.Get("/", h.Get)
				ir.Delete("/", h.Delete)
				ir.Post("/click", h.Click)
				ir.Post("/exchange", h.Exchange)
				ir.Post("/reset", h.Reset)
			})
		})
	})

	return r
}

// statusRecorder captures the status code for request logs.
type statusRecorder struct {
	http.ResponseWriter
	status int
}

func (s *statusRecorder) WriteHeader(code int) {
	s.status = code
	s.ResponseWriter.WriteHeader(code)
}

func requestLogger(logger *log.Logger) func(http.Handler) http.Handler {
	return func(next http.Handler) http.Handler {
		return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
			start := time.Now()
			rec := &statusRecorder{ResponseWriter: w, status: http.StatusOK}
			next.ServeHTTP(rec, r)
			logger.Debug("request",
				"method", r.Method,
				"path", r.URL.Path,
				"status", rec.status,
				"took", time.Since(start),
			)
		})
	}
}
