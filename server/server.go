package server

import (
	"context"
	"errors"
	"fmt"
	"log/slog"
	"net"
	"net/http"
	"os"
	"time"

	"github.com/gorilla/mux"
)

// Server serves the documents of a Store over HTTP.
type Server struct {
	Spec Spec

	store      *Store
	httpServer *http.Server
	listener   net.Listener
}

// New creates a new Server instance with an empty store.
func New(spec *Spec) *Server {
	if spec.Log == nil {
		spec.Log = slog.New(slog.NewJSONHandler(os.Stdout, &slog.HandlerOptions{
			Level: slogLevel(),
		}))
	}
	if spec.Config == nil {
		spec.Config = DefaultConfig()
	}
	return &Server{
		Spec:  *spec,
		store: NewStore(),
	}
}

func slogLevel() slog.Level {
	if os.Getenv("JV_DEBUG") != "" {
		return slog.LevelDebug
	}
	return slog.LevelInfo
}

func (s *Server) Store() *Store {
	return s.store
}

// Handler returns the router of the server.
func (s *Server) Handler() http.Handler {
	r := mux.NewRouter()
	r.Handle("/", s.route(s.root)).Methods(http.MethodGet)
	r.Handle("/healthz", s.route(s.health)).Methods(http.MethodGet)
	r.Handle("/docs", s.route(s.listDocs)).Methods(http.MethodGet)
	r.Handle("/docs/{name}", s.route(s.getDoc)).Methods(http.MethodGet)
	r.Handle("/docs/{name}", s.route(s.putDoc)).Methods(http.MethodPut)
	r.Handle("/docs/{name}", s.route(s.patchDoc)).Methods(http.MethodPatch)
	r.Handle("/docs/{name}", s.route(s.deleteDoc)).Methods(http.MethodDelete)
	r.Handle("/docs/{name}/diff/{other}", s.route(s.diffDocs)).Methods(http.MethodGet)
	r.Handle("/docs/{name}/eval", s.route(s.evalDoc)).Methods(http.MethodPost)
	return r
}

// Start listens on addr and serves in a separate goroutine.
func (s *Server) Start(addr string) error {
	if s.httpServer != nil {
		return fmt.Errorf("server already running")
	}
	ln, err := net.Listen("tcp", addr)
	if err != nil {
		return err
	}
	s.listener = ln
	s.httpServer = &http.Server{
		Handler:           s.Handler(),
		ReadHeaderTimeout: 10 * time.Second,
		ErrorLog:          slog.NewLogLogger(s.Spec.Log.Handler(), slog.LevelError),
	}
	srv := s.httpServer
	go func() {
		if err := srv.Serve(ln); err != nil && !errors.Is(err, http.ErrServerClosed) {
			s.Spec.Log.Error("http server error", "error", err)
		}
	}()
	return nil
}

// Stop shuts the server down, waiting for active requests until ctx is
// done.
func (s *Server) Stop(ctx context.Context) error {
	if s.httpServer == nil {
		return nil
	}
	err := s.httpServer.Shutdown(ctx)
	s.httpServer = nil
	s.listener = nil
	return err
}

// Addr returns the listen address, or empty string if not running.
func (s *Server) Addr() string {
	if s.listener == nil {
		return ""
	}
	return s.listener.Addr().String()
}
