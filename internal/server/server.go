// Package server exposes room play over HTTP. Every mutation is a POST
// answering with the acting seat's masked snapshot; GET /api/seven/ws
// streams fresh snapshots as a room changes.
package server

import (
	"context"
	"errors"
	"io"
	"net"
	"net/http"
	"time"

	"github.com/charmbracelet/log"
	"github.com/go-chi/chi/v5"
	"github.com/go-chi/chi/v5/middleware"
	"github.com/gorilla/websocket"
	"github.com/lox/sevenstud/internal/room"
	"golang.org/x/sync/errgroup"
)

// DefaultSweepInterval is how often idle rooms are looked for.
const DefaultSweepInterval = time.Minute

// Server serves the stud API for one room manager.
type Server struct {
	manager       *room.Manager
	logger        *log.Logger
	upgrader      websocket.Upgrader
	router        chi.Router
	sweepInterval time.Duration
}

// Option configures a Server.
type Option func(*Server)

// WithLogger sets the server's logger.
func WithLogger(l *log.Logger) Option {
	return func(s *Server) {
		s.logger = l
	}
}

// WithSweepInterval sets how often Run sweeps idle rooms.
func WithSweepInterval(d time.Duration) Option {
	return func(s *Server) {
		if d > 0 {
			s.sweepInterval = d
		}
	}
}

// NewServer creates a server over manager.
func NewServer(manager *room.Manager, opts ...Option) *Server {
	s := &Server{
		manager:       manager,
		logger:        log.New(io.Discard),
		sweepInterval: DefaultSweepInterval,
		upgrader: websocket.Upgrader{
			ReadBufferSize:  1024,
			WriteBufferSize: 1024,
			// Any origin may connect.
			CheckOrigin: func(*http.Request) bool { return true },
		},
	}
	for _, opt := range opts {
		opt(s)
	}
	s.logger = s.logger.WithPrefix("server")
	s.router = s.routes()
	return s
}

func (s *Server) routes() chi.Router {
	r := chi.NewRouter()
	r.Use(middleware.RealIP)
	r.Use(middleware.Recoverer)
	r.Use(s.logRequests)

	r.Get("/health", s.handleHealth)
	r.Route("/api/seven", func(r chi.Router) {
		r.Post("/start", s.handleStart)
		r.Post("/next", s.handleNext)
		r.Post("/resume", s.handleResume)
		r.Post("/{action}", s.handleAction)
		r.Get("/state", s.handleState)
		r.Get("/history", s.handleHistory)
		r.Get("/ws", s.handleStream)
	})
	return r
}

// Handler returns the server's HTTP handler.
func (s *Server) Handler() http.Handler {
	return s.router
}

// Run serves on addr and sweeps idle rooms until ctx is done, then shuts
// the listener down gracefully.
func (s *Server) Run(ctx context.Context, addr string) error {
	g, ctx := errgroup.WithContext(ctx)

	srv := &http.Server{
		Addr:              addr,
		Handler:           s.router,
		ReadHeaderTimeout: 10 * time.Second,
		// Streams end when ctx does; Shutdown does not close hijacked
		// connections.
		BaseContext: func(net.Listener) context.Context { return ctx },
	}

	g.Go(func() error {
		s.logger.Info("listening", "addr", addr)
		if err := srv.ListenAndServe(); !errors.Is(err, http.ErrServerClosed) {
			return err
		}
		return nil
	})
	g.Go(func() error {
		<-ctx.Done()
		shutdownCtx, cancel := context.WithTimeout(context.Background(), 5*time.Second)
		defer cancel()
		s.logger.Info("shutting down")
		return srv.Shutdown(shutdownCtx)
	})
	g.Go(func() error {
		s.manager.RunSweeper(ctx, s.sweepInterval)
		return nil
	})

	return g.Wait()
}

func (s *Server) logRequests(next http.Handler) http.Handler {
	return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		ww := middleware.NewWrapResponseWriter(w, r.ProtoMajor)
		start := time.Now()
		next.ServeHTTP(ww, r)
		s.logger.Debug("request", "method", r.Method, "path", r.URL.Path, "status", ww.Status(), "duration", time.Since(start))
	})
}
