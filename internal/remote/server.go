package remote

import (
	"context"
	"encoding/json"
	"errors"
	"net"
	"net/http"
	"strconv"
	"time"

	hconsole "github.com/msto63/hcmd/foundation/console"
	mdwlog "github.com/msto63/hcmd/foundation/core/log"
	"github.com/msto63/hcmd/pkg/core/config"
	"github.com/msto63/hcmd/pkg/core/version"
)

// Server is the remote console server
type Server struct {
	httpServer *http.Server
	handler    *Handler
	logger     *mdwlog.Logger
	addr       string
	path       string
}

// Config holds server configuration
type Config struct {
	Host           string
	Port           int
	Path           string
	ReadTimeout    time.Duration
	WriteTimeout   time.Duration
	MaxMessageSize int64

	Session  hconsole.Options
	Autoexec []string

	// CheckOrigin defaults to same-origin checking
	CheckOrigin func(r *http.Request) bool
}

// FromConfig builds the server configuration from the application config
func FromConfig(cfg *config.Config) Config {
	return Config{
		Host:           cfg.Remote.Host,
		Port:           cfg.Remote.Port,
		Path:           cfg.Remote.Path,
		ReadTimeout:    cfg.Remote.ReadTimeout.Duration,
		WriteTimeout:   cfg.Remote.WriteTimeout.Duration,
		MaxMessageSize: cfg.Remote.MaxMessageSize,
		Session: hconsole.Options{
			MaxAliasContexts: cfg.Console.MaxAliasContexts,
			Suggest:          cfg.Console.Suggest,
			Aliases:          cfg.Console.Aliases,
		},
		Autoexec: cfg.Console.Autoexec,
	}
}

// New creates a new remote console server
func New(cfg Config, logger *mdwlog.Logger) *Server {
	if logger == nil {
		logger = mdwlog.GetDefault()
	}
	if cfg.Path == "" {
		cfg.Path = "/console"
	}
	logger = logger.WithField("component", "remote-server")

	h := NewHandler(HandlerConfig{
		Session:      cfg.Session,
		Autoexec:     cfg.Autoexec,
		ReadTimeout:  cfg.ReadTimeout,
		WriteTimeout: cfg.WriteTimeout,
		ReadLimit:    cfg.MaxMessageSize,
		CheckOrigin:  cfg.CheckOrigin,
	}, logger)

	s := &Server{
		handler: h,
		logger:  logger,
		addr:    net.JoinHostPort(cfg.Host, strconv.Itoa(cfg.Port)),
		path:    cfg.Path,
	}

	mux := http.NewServeMux()
	mux.Handle(cfg.Path, h)
	mux.HandleFunc("/healthz", s.handleHealth)

	// No read/write timeouts on the http.Server: they would cut hijacked
	// websocket connections. The handler sets per-message deadlines.
	s.httpServer = &http.Server{
		Addr:              s.addr,
		Handler:           loggingMiddleware(logger, mux),
		ReadHeaderTimeout: 10 * time.Second,
	}
	return s
}

// HealthStatus is returned by /healthz
type HealthStatus struct {
	Status   string `json:"status"`
	Version  string `json:"version"`
	Protocol string `json:"protocol"`
	Sessions int64  `json:"sessions"`
}

func (s *Server) handleHealth(w http.ResponseWriter, r *http.Request) {
	w.Header().Set("Content-Type", "application/json")
	json.NewEncoder(w).Encode(HealthStatus{
		Status:   "healthy",
		Version:  version.Version,
		Protocol: version.Protocol,
		Sessions: s.handler.Sessions(),
	})
}

// Handler returns the http handler serving console path and health check
func (s *Server) Handler() http.Handler {
	return s.httpServer.Handler
}

// loggingMiddleware adds request logging
func loggingMiddleware(logger *mdwlog.Logger, next http.Handler) http.Handler {
	return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		start := time.Now()
		next.ServeHTTP(w, r)

		logger.Debug("http request", mdwlog.Fields{
			"method":   r.Method,
			"path":     r.URL.Path,
			"remote":   r.RemoteAddr,
			"duration": time.Since(start).String(),
		})
	})
}

// Start starts the server and blocks until it stops
func (s *Server) Start() error {
	s.logger.Info("starting remote console", mdwlog.Fields{"address": s.addr, "path": s.path})
	if err := s.httpServer.ListenAndServe(); err != nil && !errors.Is(err, http.ErrServerClosed) {
		return err
	}
	return nil
}

// Serve serves on an existing listener
func (s *Server) Serve(l net.Listener) error {
	s.logger.Info("starting remote console", mdwlog.Fields{"address": l.Addr().String(), "path": s.path})
	if err := s.httpServer.Serve(l); err != nil && !errors.Is(err, http.ErrServerClosed) {
		return err
	}
	return nil
}

// Stop gracefully stops the server
func (s *Server) Stop(ctx context.Context) error {
	s.logger.Info("stopping remote console")
	return s.httpServer.Shutdown(ctx)
}

// Address returns the server address
func (s *Server) Address() string {
	return s.addr
}

// Reconfigure applies the console settings of cfg to new sessions. The
// listen address is not changed.
func (s *Server) Reconfigure(cfg Config) {
	s.handler.Reconfigure(cfg.Session, cfg.Autoexec)
}

// Sessions returns the number of connected clients
func (s *Server) Sessions() int64 {
	return s.handler.Sessions()
}
