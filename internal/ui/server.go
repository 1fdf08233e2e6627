// Package ui provides the OfficeHoursQ landing web server.
package ui

import (
	"context"
	"errors"
	"fmt"
	"io/fs"
	"log/slog"
	"net"
	"net/http"
	"path/filepath"
	"time"

	"github.com/fsnotify/fsnotify"
	"github.com/go-chi/chi/v5"
	"github.com/go-chi/chi/v5/middleware"
	"github.com/gorilla/sessions"
	"golang.org/x/sync/errgroup"

	view "github.com/officehoursq/officehoursq/internal/landing"
	"github.com/officehoursq/officehoursq/internal/theme"
	"github.com/officehoursq/officehoursq/internal/ui/notifier"
	"github.com/officehoursq/officehoursq/internal/ui/resources"
	"github.com/officehoursq/officehoursq/internal/ui/router"
)

// shutdownTimeout bounds graceful shutdown once the context is cancelled.
const shutdownTimeout = 5 * time.Second

// Server is the landing page server.
type Server struct {
	theme          theme.Definition
	defaultVariant view.Variant
	sessionStore   *sessions.CookieStore
	host           string
	port           int
	dev            bool
	staticDir      string
	corsOrigins    []string
	version        string
	logger         *slog.Logger
	notifier       *notifier.Notifier
}

// Config holds configuration for the server.
type Config struct {
	Theme          theme.Definition
	DefaultVariant view.Variant
	Host           string
	Port           int
	Dev            bool
	StaticDir      string // watched in dev mode; defaults to the source static dir
	SessionSecret  string
	CORSOrigins    []string
	Version        string
	Logger         *slog.Logger
}

// NewServer creates a new server instance.
func NewServer(cfg Config) *Server {
	sessionStore := sessions.NewCookieStore([]byte(cfg.SessionSecret))
	sessionStore.MaxAge(86400 * 30) // 30 days
	sessionStore.Options.Path = "/"
	sessionStore.Options.HttpOnly = true
	sessionStore.Options.SameSite = http.SameSiteLaxMode

	def := cfg.Theme
	if def.Len() == 0 {
		def = theme.Default()
	}
	variant := cfg.DefaultVariant
	if variant == "" {
		variant = view.VariantHero
	}
	logger := cfg.Logger
	if logger == nil {
		logger = slog.New(slog.DiscardHandler)
	}
	staticDir := cfg.StaticDir
	if staticDir == "" {
		staticDir = resources.Dir()
	}

	return &Server{
		theme:          def,
		defaultVariant: variant,
		sessionStore:   sessionStore,
		host:           cfg.Host,
		port:           cfg.Port,
		dev:            cfg.Dev,
		staticDir:      staticDir,
		corsOrigins:    cfg.CORSOrigins,
		version:        cfg.Version,
		logger:         logger,
		notifier:       notifier.New(),
	}
}

// Addr returns the configured listen address.
func (s *Server) Addr() string {
	return net.JoinHostPort(s.host, fmt.Sprint(s.port))
}

// Handler builds the HTTP handler with middleware and all routes.
func (s *Server) Handler() (http.Handler, error) {
	r := chi.NewMux()
	r.Use(
		middleware.RequestID,
		middleware.RealIP,
		middleware.Logger,
		middleware.Recoverer,
		middleware.Compress(5),
	)
	if len(s.corsOrigins) > 0 {
		r.Use(router.CORS(s.corsOrigins))
	}

	if err := router.SetupRoutes(r, s.theme, s.defaultVariant, s.sessionStore, s.notifier, s.version, s.IsDev()); err != nil {
		return nil, fmt.Errorf("failed to setup routes: %w", err)
	}
	return r, nil
}

// Serve listens on the configured address and blocks until ctx is cancelled.
func (s *Server) Serve(ctx context.Context) error {
	var lc net.ListenConfig
	ln, err := lc.Listen(ctx, "tcp", s.Addr())
	if err != nil {
		return fmt.Errorf("failed to listen on %s: %w", s.Addr(), err)
	}
	return s.ServeListener(ctx, ln)
}

// ServeListener serves on ln until ctx is cancelled, then shuts down gracefully.
// The listener is closed on return.
func (s *Server) ServeListener(ctx context.Context, ln net.Listener) error {
	handler, err := s.Handler()
	if err != nil {
		_ = ln.Close()
		return err
	}

	s.logger.Info("starting landing server", "addr", "http://"+ln.Addr().String(), "dev", s.dev)

	eg, egctx := errgroup.WithContext(ctx)

	srv := &http.Server{
		Handler: handler,
		BaseContext: func(_ net.Listener) context.Context {
			return egctx
		},
		ReadHeaderTimeout: 10 * time.Second,
	}

	// Watch static assets in dev mode
	if s.dev && s.staticDir != "" {
		eg.Go(func() error {
			return s.watchFiles(egctx)
		})
	}

	eg.Go(func() error {
		if err := srv.Serve(ln); err != nil && !errors.Is(err, http.ErrServerClosed) {
			return fmt.Errorf("server error: %w", err)
		}
		return nil
	})

	eg.Go(func() error {
		<-egctx.Done()
		shutdownCtx, cancel := context.WithTimeout(context.Background(), shutdownTimeout)
		defer cancel()

		s.logger.Debug("shutting down landing server...")
		return srv.Shutdown(shutdownCtx)
	})

	return eg.Wait()
}

// IsDev reports whether dev mode (hot reload, no caching) is on.
func (s *Server) IsDev() bool {
	return s.dev
}

// Notifier returns the server's notifier for reload pings.
func (s *Server) Notifier() *notifier.Notifier {
	return s.notifier
}

// watchFiles pings reload listeners when a static asset changes.
func (s *Server) watchFiles(ctx context.Context) error {
	watcher, err := fsnotify.NewWatcher()
	if err != nil {
		return err
	}
	defer func() { _ = watcher.Close() }()

	if err := watchDirRecursive(watcher, s.staticDir); err != nil {
		// Serving still works without the watcher.
		s.logger.Error("failed to watch static directory", "dir", s.staticDir, "error", err)
	}

	var debounceTimer *time.Timer
	defer func() {
		if debounceTimer != nil {
			debounceTimer.Stop()
		}
	}()

	for {
		select {
		case <-ctx.Done():
			return nil

		case event, ok := <-watcher.Events:
			if !ok {
				return nil
			}
			if event.Op&(fsnotify.Write|fsnotify.Create|fsnotify.Remove|fsnotify.Rename) == 0 {
				continue
			}
			if !isWatchedAsset(event.Name) {
				continue
			}

			if debounceTimer != nil {
				debounceTimer.Stop()
			}
			name := event.Name
			debounceTimer = time.AfterFunc(100*time.Millisecond, func() {
				s.logger.Debug("asset changed, reloading clients", "file", name)
				s.notifier.Broadcast()
			})

		case err, ok := <-watcher.Errors:
			if !ok {
				return nil
			}
			s.logger.Error("watcher error", "error", err)
		}
	}
}

func isWatchedAsset(name string) bool {
	switch filepath.Ext(name) {
	case ".css", ".svg", ".js", ".html", ".png", ".ico":
		return true
	default:
		return false
	}
}

// watchDirRecursive adds a directory and all subdirectories to the watcher.
func watchDirRecursive(watcher *fsnotify.Watcher, dir string) error {
	return filepath.WalkDir(dir, func(path string, d fs.DirEntry, err error) error {
		if err != nil {
			return err
		}
		if d.IsDir() {
			return watcher.Add(path)
		}
		return nil
	})
}
