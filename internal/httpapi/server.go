// Package httpapi serves a read-only snapshot of the monitors, for poking at
// a running instance. It is optional and disabled unless a bind address is
// configured.
package httpapi

import (
	"encoding/json"
	"net/http"

	"github.com/go-chi/chi/v5"
	"github.com/go-chi/cors"
	"go.uber.org/zap"

	"downtimed/internal/monitor"
)

type Server struct {
	Logger   *zap.Logger
	Monitors []monitor.StatusReporter
}

func NewServer(l *zap.Logger, monitors ...monitor.StatusReporter) *Server {
	return &Server{Logger: l, Monitors: monitors}
}

func (s *Server) Router() http.Handler {
	r := chi.NewRouter()
	r.Use(cors.AllowAll().Handler)

	r.Get("/healthz", func(w http.ResponseWriter, r *http.Request) {
		w.WriteHeader(http.StatusOK)
		w.Write([]byte("ok"))
	})

	r.Get("/api/status", s.handleStatus)

	return r
}

func (s *Server) handleStatus(w http.ResponseWriter, r *http.Request) {
	out := make([]monitor.Status, 0, len(s.Monitors))
	for _, m := range s.Monitors {
		out = append(out, m.Status())
	}
	w.Header().Set("Content-Type", "application/json")
	if err := json.NewEncoder(w).Encode(out); err != nil {
		s.Logger.Warn("status_encode_error", zap.Error(err))
	}
}
