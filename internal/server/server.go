package server

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"net"
	"net/http"
	"strings"
	"time"

	"log/slog"

	"shelf/internal/catalog"
	"shelf/internal/config"
	"shelf/internal/listing"
	"shelf/internal/logging"
	"shelf/internal/notifications"
	"shelf/internal/resolve"
	"shelf/internal/session"
)

// Server is the HTTP API surface of the daemon.
type Server struct {
	bind     string
	token    string
	logger   *slog.Logger
	cfg      *config.Config
	store    *catalog.Store
	sessions *session.Store
	builder  *listing.Builder
	resolver *resolve.Resolver
	notifier notifications.Service

	listener net.Listener
	server   *http.Server
}

// New wires the API server. The resolver and notifier may be nil in reduced
// deployments; the corresponding endpoints degrade gracefully.
func New(cfg *config.Config, store *catalog.Store, resolver *resolve.Resolver, notifier notifications.Service, logger *slog.Logger) (*Server, error) {
	if cfg == nil || store == nil {
		return nil, errors.New("config and store required")
	}
	bind := strings.TrimSpace(cfg.Paths.APIBind)
	if bind == "" {
		return nil, errors.New("api bind address required")
	}
	if logger == nil {
		logger = slog.New(slog.DiscardHandler)
	}
	if notifier == nil {
		notifier = notifications.NewService(cfg)
	}

	sessions := session.NewStore()
	srv := &Server{
		bind:     bind,
		token:    strings.TrimSpace(cfg.Paths.APIToken),
		logger:   logger,
		cfg:      cfg,
		store:    store,
		sessions: sessions,
		builder:  listing.NewBuilder(store, sessions, cfg.Listing.PageSize, logger),
		resolver: resolver,
		notifier: notifier,
	}

	mux := http.NewServeMux()
	mux.HandleFunc("/api/health", srv.handleHealth)
	mux.HandleFunc("/api/items", authMiddleware(srv.token, srv.handleItems))
	mux.HandleFunc("/api/items/", authMiddleware(srv.token, srv.handleItem))
	mux.HandleFunc("/api/lookup/barcode", authMiddleware(srv.token, srv.handleBarcodeLookup))
	mux.HandleFunc("/api/lookup/search", authMiddleware(srv.token, srv.handleTextSearch))
	mux.HandleFunc("/api/locations", authMiddleware(srv.token, srv.handleLocations))
	mux.HandleFunc("/api/locations/", authMiddleware(srv.token, srv.handleLocation))
	mux.HandleFunc("/api/collections", authMiddleware(srv.token, srv.handleCollections))
	mux.HandleFunc("/api/labels", authMiddleware(srv.token, srv.handleLabels))

	srv.server = &http.Server{
		Handler:           mux,
		ReadHeaderTimeout: 5 * time.Second,
		ReadTimeout:       15 * time.Second,
		WriteTimeout:      30 * time.Second,
		IdleTimeout:       60 * time.Second,
	}
	return srv, nil
}

// Start binds the listener and serves until the context is canceled.
func (s *Server) Start(ctx context.Context) error {
	listener, err := net.Listen("tcp", s.bind)
	if err != nil {
		return fmt.Errorf("api listen: %w", err)
	}
	s.listener = listener

	go func() {
		if err := s.server.Serve(listener); err != nil && !errors.Is(err, http.ErrServerClosed) {
			s.log().Error("api server error", slog.String("error", err.Error()))
		}
	}()

	go func() {
		<-ctx.Done()
		shutdownCtx, cancel := context.WithTimeout(context.Background(), 5*time.Second)
		defer cancel()
		_ = s.server.Shutdown(shutdownCtx)
	}()

	s.log().Info("api server listening", slog.String("address", listener.Addr().String()))
	return nil
}

// Stop shuts the server down synchronously.
func (s *Server) Stop() {
	if s == nil {
		return
	}
	if s.server != nil {
		shutdownCtx, cancel := context.WithTimeout(context.Background(), 5*time.Second)
		defer cancel()
		_ = s.server.Shutdown(shutdownCtx)
	}
	if s.listener != nil {
		_ = s.listener.Close()
		s.listener = nil
	}
}

// Addr returns the bound listener address, empty before Start.
func (s *Server) Addr() string {
	if s.listener == nil {
		return ""
	}
	return s.listener.Addr().String()
}

// Handler exposes the routed handler for tests.
func (s *Server) Handler() http.Handler {
	return s.server.Handler
}

func (s *Server) handleHealth(w http.ResponseWriter, r *http.Request) {
	if r.Method != http.MethodGet {
		s.writeError(w, http.StatusMethodNotAllowed, "method not allowed")
		return
	}
	s.writeJSON(w, http.StatusOK, map[string]string{"status": "ok"})
}

// requestUser resolves the acting user: the user parameter when supplied,
// the configured default otherwise. Users are created on first sight.
func (s *Server) requestUser(r *http.Request) (*catalog.User, error) {
	name := strings.TrimSpace(r.URL.Query().Get("user"))
	if name == "" {
		name = s.cfg.Listing.DefaultUser
	}
	return s.store.EnsureUser(r.Context(), name)
}

func (s *Server) writeJSON(w http.ResponseWriter, status int, payload any) {
	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(status)
	if payload == nil {
		return
	}
	if err := json.NewEncoder(w).Encode(payload); err != nil {
		s.log().Error("failed to encode response", slog.String("error", err.Error()))
	}
}

func (s *Server) writeError(w http.ResponseWriter, status int, message string) {
	s.writeJSON(w, status, map[string]string{"error": message})
}

func (s *Server) log() *slog.Logger {
	return s.logger.With(logging.FieldComponent, "api-server")
}
