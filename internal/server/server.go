package server

import (
	"fmt"
	"net/http"
	"time"

	"github.com/go-chi/chi/v5"

	"github.com/haguru/torii/internal/interfaces"
)

var (
	ReadTimeout  = 10 * time.Second
	WriteTimeout = 10 * time.Second
	IdleTimeout  = 30 * time.Second
)

type Server struct {
	Port   string
	Host   string
	server *http.Server
	mux    *chi.Mux
	Logger interfaces.Logger
}

// NewServer creates a new Server instance with the specified host and port.
func NewServer(host, port string, logger interfaces.Logger) interfaces.Server {
	mux := chi.NewRouter()
	server := &http.Server{
		Addr:         host + ":" + port,
		Handler:      mux,
		ReadTimeout:  ReadTimeout,
		WriteTimeout: WriteTimeout,
		IdleTimeout:  IdleTimeout,
	}

	return &Server{
		Host:   host,
		Port:   port,
		server: server,
		mux:    mux,
		Logger: logger,
	}
}

// AddRoute registers a handler for the given HTTP method and chi pattern.
// Patterns follow chi syntax; "/*" is the catch-all used by file serving.
// It returns an error if the method or pattern is not registrable.
func (s *Server) AddRoute(method, pattern string, handler func(w http.ResponseWriter, r *http.Request)) (err error) {
	// chi panics on malformed patterns and unknown methods; surface that
	// as an error to the caller instead.
	defer func() {
		if rec := recover(); rec != nil {
			err = fmt.Errorf("failed to add route %s %s: %v", method, pattern, rec)
		}
	}()

	s.mux.Method(method, pattern, http.HandlerFunc(handler))
	s.Logger.Info("Route added", "method", method, "route", pattern)
	return nil
}

// SetNotFoundHandler installs the handler used for unmatched routes and
// unmatched methods, so every miss funnels to the same response.
func (s *Server) SetNotFoundHandler(handler func(w http.ResponseWriter, r *http.Request)) {
	s.mux.NotFound(handler)
	s.mux.MethodNotAllowed(handler)
}

// ListenAndServe starts the HTTP server and listens for incoming requests.
func (s *Server) ListenAndServe() error {
	s.Logger.Info("Starting server", "host", s.Host, "port", s.Port)
	err := s.server.ListenAndServe()
	if err != nil {
		s.Logger.Error("Failed to start server", "error", err)
		return fmt.Errorf("failed to start server: %w", err)
	}

	return nil
}

// Handler exposes the underlying mux, mainly for tests.
func (s *Server) Handler() http.Handler {
	return s.mux
}
