package http

import (
	"context"
	"errors"
	"fmt"
	"log/slog"
	"net"
	"net/http"
	"strconv"
	"time"

	"github.com/jsamuelsen11/todo-partiql-service/internal/platform/config"
)

// drainTimeout bounds Shutdown when the caller's context has no deadline.
const drainTimeout = 10 * time.Second

// Server owns the listener and http.Server for the todo API. Listen binds
// the port up front so a busy port fails startup before Serve runs in the
// background.
type Server struct {
	srv    *http.Server
	ln     net.Listener
	logger *slog.Logger
}

func NewServer(cfg config.ServerConfig, handler http.Handler, logger *slog.Logger) *Server {
	if logger == nil {
		logger = slog.New(slog.DiscardHandler)
	}
	return &Server{
		srv: &http.Server{
			Addr:              net.JoinHostPort(cfg.Host, strconv.Itoa(cfg.Port)),
			Handler:           handler,
			ReadTimeout:       cfg.ReadTimeout,
			ReadHeaderTimeout: cfg.ReadTimeout,
			WriteTimeout:      cfg.WriteTimeout,
			IdleTimeout:       cfg.IdleTimeout,
			ErrorLog:          slog.NewLogLogger(logger.Handler(), slog.LevelWarn),
		},
		logger: logger,
	}
}

// Listen binds the configured address. Port 0 picks a free port, reported
// afterwards by Addr.
func (s *Server) Listen() error {
	ln, err := net.Listen("tcp", s.srv.Addr)
	if err != nil {
		return fmt.Errorf("listen on %s: %w", s.srv.Addr, err)
	}
	s.ln = ln
	return nil
}

// Serve accepts connections until Shutdown. It listens first if Listen was
// not called. A graceful stop returns nil.
func (s *Server) Serve() error {
	if s.ln == nil {
		if err := s.Listen(); err != nil {
			return err
		}
	}

	s.logger.Info("listening", slog.String("addr", s.Addr()))

	err := s.srv.Serve(s.ln)
	if errors.Is(err, http.ErrServerClosed) {
		return nil
	}
	return fmt.Errorf("serve: %w", err)
}

// Shutdown stops accepting connections and waits for in-flight requests,
// such as a pending delete, to finish.
func (s *Server) Shutdown(ctx context.Context) error {
	if _, ok := ctx.Deadline(); !ok {
		var cancel context.CancelFunc
		ctx, cancel = context.WithTimeout(ctx, drainTimeout)
		defer cancel()
	}

	s.logger.Info("draining connections")
	return s.srv.Shutdown(ctx)
}

// Addr is the bound address once listening, else the configured one.
func (s *Server) Addr() string {
	if s.ln != nil {
		return s.ln.Addr().String()
	}
	return s.srv.Addr
}
