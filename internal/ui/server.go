// Package ui provides the TraceViz web UI server: one page rendering the
// trace graph, SSE endpoints driving the filter/highlight controller, and
// an optional trace-file watcher that rebuilds the model live.
package ui

import (
	"context"
	"fmt"
	"log/slog"
	"net"
	"net/http"
	"sync"
	"time"

	"github.com/fsnotify/fsnotify"
	"github.com/go-chi/chi/v5"
	"github.com/go-chi/chi/v5/middleware"
	"github.com/gorilla/sessions"
	"golang.org/x/sync/errgroup"

	"github.com/leapstack-labs/traceviz/internal/ui/notifier"
	"github.com/leapstack-labs/traceviz/internal/ui/router"
	"github.com/leapstack-labs/traceviz/pkg/traceviz"
)

// ContainerID is the element the served page mounts the graph into.
const ContainerID = "traceviz-graph"

// Config holds configuration for the UI server.
type Config struct {
	Instance  *traceviz.Instance
	Reload    func() (*traceviz.Instance, error)
	TracePath string
	Port      int
	Watch     bool
	Secret    string
	Logger    *slog.Logger
}

// Server is the main UI server.
type Server struct {
	mu     sync.RWMutex
	inst   *traceviz.Instance
	reload func() (*traceviz.Instance, error)

	tracePath    string
	sessionStore *sessions.CookieStore
	port         int
	watch        bool
	logger       *slog.Logger
	notifier     *notifier.Notifier
}

// NewServer creates a new UI server instance.
func NewServer(cfg Config) *Server {
	sessionStore := sessions.NewCookieStore([]byte(cfg.Secret))
	sessionStore.MaxAge(86400 * 30) // 30 days
	sessionStore.Options.Path = "/"
	sessionStore.Options.HttpOnly = true
	sessionStore.Options.SameSite = http.SameSiteLaxMode

	logger := cfg.Logger
	if logger == nil {
		logger = slog.New(slog.DiscardHandler)
	}

	return &Server{
		inst:         cfg.Instance,
		reload:       cfg.Reload,
		tracePath:    cfg.TracePath,
		sessionStore: sessionStore,
		port:         cfg.Port,
		watch:        cfg.Watch,
		logger:       logger,
		notifier:     notifier.New(),
	}
}

// Instance returns the current graph instance. The watcher may swap it;
// handlers must not cache it across requests.
func (s *Server) Instance() *traceviz.Instance {
	s.mu.RLock()
	defer s.mu.RUnlock()
	return s.inst
}

// Serve starts the UI server and blocks until the context is cancelled.
func (s *Server) Serve(ctx context.Context) error {
	addr := fmt.Sprintf(":%d", s.port)
	s.logger.Info("starting UI server", "addr", fmt.Sprintf("http://localhost:%d", s.port))

	eg, egctx := errgroup.WithContext(ctx)

	r := chi.NewMux()
	r.Use(
		middleware.Logger,
		middleware.Recoverer,
		middleware.Compress(5),
	)

	if err := router.SetupRoutes(r, s, s.sessionStore, s.notifier); err != nil {
		return fmt.Errorf("failed to setup routes: %w", err)
	}

	srv := &http.Server{
		Addr:    addr,
		Handler: r,
		BaseContext: func(_ net.Listener) context.Context {
			return egctx
		},
		ReadHeaderTimeout: 10 * time.Second,
	}

	if s.watch && s.tracePath != "" {
		eg.Go(func() error {
			return s.watchTrace(egctx)
		})
	}

	eg.Go(func() error {
		if err := srv.ListenAndServe(); err != nil && err != http.ErrServerClosed {
			return fmt.Errorf("server error: %w", err)
		}
		return nil
	})

	eg.Go(func() error {
		<-egctx.Done()
		shutdownCtx, cancel := context.WithTimeout(context.Background(), 5*time.Second)
		defer cancel()

		s.logger.Debug("shutting down UI server...")
		return srv.Shutdown(shutdownCtx)
	})

	return eg.Wait()
}

// watchTrace watches the trace file and rebuilds the graph on change.
func (s *Server) watchTrace(ctx context.Context) error {
	watcher, err := fsnotify.NewWatcher()
	if err != nil {
		return err
	}
	defer func() { _ = watcher.Close() }()

	if err := watcher.Add(s.tracePath); err != nil {
		s.logger.Error("failed to watch trace file", "error", err)
		// Don't fail - continue without watching
		return nil
	}

	// Debounce timer
	var debounceTimer *time.Timer

	for {
		select {
		case <-ctx.Done():
			return nil

		case event := <-watcher.Events:
			if event.Op&(fsnotify.Write|fsnotify.Create) == 0 {
				continue
			}

			if debounceTimer != nil {
				debounceTimer.Stop()
			}
			debounceTimer = time.AfterFunc(100*time.Millisecond, func() {
				s.logger.Debug("trace file changed, rebuilding", "file", event.Name)

				inst, err := s.reload()
				if err != nil {
					// A broken trace keeps the last good graph on screen.
					s.logger.Error("rebuild failed", "error", err)
					return
				}

				s.mu.Lock()
				s.inst = inst
				s.mu.Unlock()

				s.notifier.Broadcast()
			})

		case err := <-watcher.Errors:
			s.logger.Error("watcher error", "error", err)
		}
	}
}
