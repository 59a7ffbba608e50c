package server

import (
	"context"
	"errors"
	"fmt"
	"net"
	"net/http"
	"sync"
	"time"

	"github.com/gin-gonic/gin"
	"golang.org/x/net/http2"
	"golang.org/x/net/http2/h2c"

	"github.com/kbukum/fetchkit/component"
	"github.com/kbukum/fetchkit/logger"
)

// Server is a Gin echo server speaking HTTP/1.1 and h2c on one port,
// used by `fetchkit serve-echo` to exercise the client end to end.
type Server struct {
	engine *gin.Engine
	config Config
	log    *logger.Logger

	mu       sync.Mutex
	http     *http.Server
	listener net.Listener
}

var _ component.Component = (*Server)(nil)
var _ component.Describable = (*Server)(nil)

// New creates a server with the echo routes registered.
func New(cfg Config, log *logger.Logger) *Server {
	cfg.ApplyDefaults()
	if log == nil {
		log = logger.Nop()
	}
	log = log.WithComponent("server")

	gin.SetMode(gin.ReleaseMode)
	engine := gin.New()
	engine.Use(Recovery(log), RequestID(), RequestLogger(log))
	RegisterEcho(engine, nil)

	return &Server{engine: engine, config: cfg, log: log}
}

// Engine returns the Gin engine for extra routes.
func (s *Server) Engine() *gin.Engine { return s.engine }

func (s *Server) Name() string { return "echo-server" }

// Start binds the port and serves in the background.
func (s *Server) Start(_ context.Context) error {
	if err := s.config.Validate(); err != nil {
		return err
	}
	listener, err := net.Listen("tcp", s.config.Addr())
	if err != nil {
		return fmt.Errorf("server failed to bind %s: %w", s.config.Addr(), err)
	}

	h2s := &http2.Server{IdleTimeout: s.config.IdleTimeout}
	srv := &http.Server{
		Handler:     h2c.NewHandler(s.engine, h2s),
		ReadTimeout: s.config.ReadTimeout,
		IdleTimeout: s.config.IdleTimeout,
	}

	s.mu.Lock()
	s.http, s.listener = srv, listener
	s.mu.Unlock()

	go func() {
		if err := srv.Serve(listener); err != nil && !errors.Is(err, http.ErrServerClosed) {
			s.log.Error("Server error", logger.Fields(logger.FieldError, err.Error()))
		}
	}()

	s.log.Info("Echo server listening", logger.Fields("addr", listener.Addr().String()))
	return nil
}

// Stop shuts the server down with a 5-second deadline.
func (s *Server) Stop(ctx context.Context) error {
	s.mu.Lock()
	srv := s.http
	s.http, s.listener = nil, nil
	s.mu.Unlock()
	if srv == nil {
		return nil
	}

	shutdownCtx, cancel := context.WithTimeout(ctx, 5*time.Second)
	defer cancel()
	if err := srv.Shutdown(shutdownCtx); err != nil {
		return fmt.Errorf("server shutdown error: %w", err)
	}
	return nil
}

func (s *Server) Health(_ context.Context) component.Health {
	h := component.Health{Name: s.Name(), Status: component.StatusHealthy}
	if s.Addr() == "" {
		h.Status = component.StatusUnhealthy
		h.Message = "not listening"
	}
	return h
}

func (s *Server) Describe() component.Description {
	addr := s.Addr()
	if addr == "" {
		addr = s.config.Addr()
	}
	return component.Description{Name: "Echo server", Type: "server", Details: addr + " h2c"}
}

// Addr returns the bound address, or "" when not started.
func (s *Server) Addr() string {
	s.mu.Lock()
	defer s.mu.Unlock()
	if s.listener == nil {
		return ""
	}
	return s.listener.Addr().String()
}

// URL returns http://addr for the bound listener.
func (s *Server) URL() string {
	if addr := s.Addr(); addr != "" {
		return "http://" + addr
	}
	return ""
}
