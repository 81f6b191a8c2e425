package web

import (
	"context"
	"fmt"
	"net/http"
	"time"

	"github.com/go-chi/chi/v5"
	"github.com/prometheus/client_golang/prometheus/promhttp"
	"github.com/rs/zerolog"

	"retail-ai-assistant/internal/usecase"
)

// Server exposes the assistant over HTTP: the ask/greet API plus health and
// metrics endpoints.
type Server struct {
	dialogue usecase.DialogueUseCase
	log      *zerolog.Logger
	srv      *http.Server
}

func NewServer(port int, dialogue usecase.DialogueUseCase, logger *zerolog.Logger) *Server {
	s := &Server{dialogue: dialogue, log: logger}

	r := chi.NewRouter()
	r.Use(s.requestID)
	r.Use(s.requestLogger)

	r.Get("/healthz", func(w http.ResponseWriter, _ *http.Request) {
		w.WriteHeader(http.StatusOK)
		_, _ = w.Write([]byte("OK"))
	})
	r.Method(http.MethodGet, "/metrics", promhttp.Handler())

	r.Route("/api/v1", func(r chi.Router) {
		r.Post("/ask", s.handleAsk)
		r.Get("/greet", s.handleGreet)
	})

	s.srv = &http.Server{
		Addr:              fmt.Sprintf(":%d", port),
		Handler:           r,
		ReadHeaderTimeout: 5 * time.Second,
	}
	return s
}

func (s *Server) Start() error {
	s.log.Info().Str("addr", s.srv.Addr).Msg("http server listening")
	return s.srv.ListenAndServe()
}

func (s *Server) Shutdown(ctx context.Context) error {
	return s.srv.Shutdown(ctx)
}
