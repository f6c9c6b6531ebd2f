// Package server exposes the schema engine over HTTP. Each browser session
// gets its own conversation context, keyed by a signed cookie; the schema
// itself lives in the shared workspace store.
package server

import (
	"context"
	"crypto/rand"
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

	"github.com/leapstack-labs/tablesmith/internal/state"
	"github.com/leapstack-labs/tablesmith/pkg/chat"
	"github.com/leapstack-labs/tablesmith/pkg/core"
)

const sessionCookie = "tablesmith_session"

// Config holds server settings.
type Config struct {
	Host   string
	Port   int
	Schema string
	// SessionKey signs the session cookies. A random key is generated
	// when empty, invalidating sessions across restarts.
	SessionKey string
	// Watch reloads the active schema when the workspace database file
	// changes on disk.
	Watch     bool
	WatchPath string
	Logger    *slog.Logger
}

// Server handles the HTTP API.
type Server struct {
	cfg     Config
	store   state.Store
	cookies *sessions.CookieStore
	exec    *chat.Executor
	logger  *slog.Logger
	dbPath  string

	mu       sync.Mutex
	sessions map[string]*core.Session
}

// New creates a server on top of an open workspace store.
func New(cfg Config, store state.Store) *Server {
	key := []byte(cfg.SessionKey)
	if len(key) == 0 {
		key = make([]byte, 32)
		_, _ = rand.Read(key)
	}
	cookieStore := sessions.NewCookieStore(key)
	cookieStore.MaxAge(86400 * 30)
	cookieStore.Options.Path = "/"
	cookieStore.Options.HttpOnly = true
	cookieStore.Options.SameSite = http.SameSiteLaxMode

	logger := cfg.Logger
	if logger == nil {
		logger = slog.Default()
	}

	return &Server{
		cfg:      cfg,
		store:    store,
		cookies:  cookieStore,
		exec:     chat.New(),
		logger:   logger,
		dbPath:   cfg.WatchPath,
		sessions: make(map[string]*core.Session),
	}
}

// Serve starts the server and blocks until the context is cancelled.
func (s *Server) Serve(ctx context.Context) error {
	addr := fmt.Sprintf("%s:%d", s.cfg.Host, s.cfg.Port)
	s.logger.Info("starting server", "addr", fmt.Sprintf("http://%s", addr), "schema", s.cfg.Schema)

	eg, egctx := errgroup.WithContext(ctx)

	r := chi.NewMux()
	r.Use(
		middleware.Logger,
		middleware.Recoverer,
		middleware.Compress(5),
	)
	s.routes(r)

	srv := &http.Server{
		Addr:    addr,
		Handler: r,
		BaseContext: func(_ net.Listener) context.Context {
			return egctx
		},
		ReadHeaderTimeout: 10 * time.Second,
	}

	if s.cfg.Watch && s.dbPath != "" {
		eg.Go(func() error {
			return s.watchWorkspace(egctx)
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
		s.logger.Debug("shutting down server")
		return srv.Shutdown(shutdownCtx)
	})

	return eg.Wait()
}

// session returns the conversation context for a request, creating the
// cookie and the context on first sight.
func (s *Server) session(w http.ResponseWriter, r *http.Request) *core.Session {
	cookie, _ := s.cookies.Get(r, sessionCookie)
	id, _ := cookie.Values["id"].(string)
	if id == "" {
		id = newSessionID()
		cookie.Values["id"] = id
		_ = cookie.Save(r, w)
	}

	s.mu.Lock()
	defer s.mu.Unlock()
	sess, ok := s.sessions[id]
	if !ok {
		sess = core.NewSession()
		s.sessions[id] = sess
	}
	return sess
}

func newSessionID() string {
	b := make([]byte, 16)
	_, _ = rand.Read(b)
	return fmt.Sprintf("%x", b)
}

// watchWorkspace resets the per-session conversation contexts when the
// workspace database changes outside this process, so stale table references
// do not linger.
func (s *Server) watchWorkspace(ctx context.Context) error {
	watcher, err := fsnotify.NewWatcher()
	if err != nil {
		return err
	}
	defer func() { _ = watcher.Close() }()

	if err := watcher.Add(s.dbPath); err != nil {
		s.logger.Error("failed to watch workspace", "error", err)
		return nil
	}

	var debounce *time.Timer
	for {
		select {
		case <-ctx.Done():
			return nil

		case event := <-watcher.Events:
			if event.Op&(fsnotify.Write|fsnotify.Create) == 0 {
				continue
			}
			if debounce != nil {
				debounce.Stop()
			}
			debounce = time.AfterFunc(200*time.Millisecond, func() {
				s.logger.Debug("workspace changed, resetting conversation contexts")
				s.mu.Lock()
				s.sessions = make(map[string]*core.Session)
				s.mu.Unlock()
			})

		case err := <-watcher.Errors:
			s.logger.Error("watcher error", "error", err)
		}
	}
}
