// Package debugsrv serves live input state and dispatcher metrics over HTTP.
//
// Routes:
//
//	GET /healthz    liveness probe
//	GET /state      JSON snapshot of keys, buttons and pointer
//	GET /listeners  JSON map of event name to listener count
//	GET /metrics    Prometheus exposition
package debugsrv

import (
	"context"
	"encoding/json"
	"errors"
	"net"
	"net/http"
	"time"

	"github.com/go-chi/chi/v5"
	"github.com/go-chi/chi/v5/middleware"
	"github.com/go-chi/cors"
	"github.com/rs/zerolog"

	"github.com/dshills/inputbus/internal/input"
)

// StateSource provides input state snapshots.
type StateSource interface {
	Snapshot() input.Snapshot
}

// ListenerSource reports registered listeners.
type ListenerSource interface {
	Names() []string
	CountByName(name string) int
}

// Options configures a Server.
type Options struct {
	// Addr is the listen address, e.g. "127.0.0.1:9090".
	Addr string
	// CORSOrigins lists allowed origins. Empty disables CORS headers.
	CORSOrigins []string
	// Metrics serves /metrics when non-nil.
	Metrics http.Handler
	// Logger receives request and lifecycle logs.
	Logger zerolog.Logger
}

// Server is the debug HTTP server.
type Server struct {
	opts      Options
	state     StateSource
	listeners ListenerSource
	logger    zerolog.Logger
}

// New creates a debug server.
func New(state StateSource, listeners ListenerSource, opts Options) *Server {
	return &Server{
		opts:      opts,
		state:     state,
		listeners: listeners,
		logger:    opts.Logger.With().Str("component", "debugsrv").Logger(),
	}
}

// Router builds the HTTP handler.
func (s *Server) Router() http.Handler {
	r := chi.NewRouter()
	r.Use(middleware.Recoverer)
	if len(s.opts.CORSOrigins) > 0 {
		r.Use(cors.Handler(cors.Options{
			AllowedOrigins: s.opts.CORSOrigins,
			AllowedMethods: []string{http.MethodGet, http.MethodOptions},
			MaxAge:         300,
		}))
	}

	r.Get("/healthz", func(w http.ResponseWriter, _ *http.Request) {
		w.WriteHeader(http.StatusOK)
		_, _ = w.Write([]byte("ok\n"))
	})
	r.Get("/state", s.handleState)
	r.Get("/listeners", s.handleListeners)
	if s.opts.Metrics != nil {
		r.Method(http.MethodGet, "/metrics", s.opts.Metrics)
	}
	return r
}

func (s *Server) handleState(w http.ResponseWriter, _ *http.Request) {
	writeJSON(w, s.state.Snapshot())
}

func (s *Server) handleListeners(w http.ResponseWriter, _ *http.Request) {
	counts := make(map[string]int)
	for _, name := range s.listeners.Names() {
		counts[name] = s.listeners.CountByName(name)
	}
	writeJSON(w, counts)
}

// Run serves until ctx is cancelled, then shuts down gracefully.
func (s *Server) Run(ctx context.Context) error {
	ln, err := net.Listen("tcp", s.opts.Addr)
	if err != nil {
		return err
	}
	return s.Serve(ctx, ln)
}

// Serve serves on ln until ctx is cancelled.
func (s *Server) Serve(ctx context.Context, ln net.Listener) error {
	srv := &http.Server{
		Handler:           s.Router(),
		ReadHeaderTimeout: 5 * time.Second,
	}

	errCh := make(chan error, 1)
	go func() {
		s.logger.Info().Str("addr", ln.Addr().String()).Msg("debug server listening")
		errCh <- srv.Serve(ln)
	}()

	select {
	case err := <-errCh:
		if errors.Is(err, http.ErrServerClosed) {
			return nil
		}
		return err
	case <-ctx.Done():
	}

	shutdownCtx, cancel := context.WithTimeout(context.Background(), 5*time.Second)
	defer cancel()
	if err := srv.Shutdown(shutdownCtx); err != nil {
		s.logger.Warn().Err(err).Msg("graceful shutdown error")
		return err
	}
	return nil
}

func writeJSON(w http.ResponseWriter, v any) {
	w.Header().Set("Content-Type", "application/json")
	if err := json.NewEncoder(w).Encode(v); err != nil {
		http.Error(w, err.Error(), http.StatusInternalServerError)
	}
}
