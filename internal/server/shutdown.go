package server

import (
	"context"
	"fmt"
	"log/slog"
	"net/http"
	"os"
	"os/signal"
	"syscall"
	"time"
)

// GracefulServer wraps an http.Server with SIGINT/SIGTERM handling and
// shutdown hooks that run before the listener stops accepting.
type GracefulServer struct {
	server  *http.Server
	logger  *slog.Logger
	timeout time.Duration
	hooks   []func(ctx context.Context) error
}

func NewGracefulServer(server *http.Server, logger *slog.Logger, shutdownTimeout time.Duration) *GracefulServer {
	return &GracefulServer{
		server:  server,
		logger:  logger,
		timeout: shutdownTimeout,
	}
}

// RegisterShutdownHook adds a hook run during shutdown. Register before
// calling ListenAndServe; hooks run in registration order.
func (gs *GracefulServer) RegisterShutdownHook(fn func(ctx context.Context) error) {
	gs.hooks = append(gs.hooks, fn)
}

func (gs *GracefulServer) ListenAndServe() error {
	serverErrors := make(chan error, 1)

	go func() {
		gs.logger.Info("starting server", "addr", gs.server.Addr)
		serverErrors <- gs.server.ListenAndServe()
	}()

	shutdown := make(chan os.Signal, 1)
	signal.Notify(shutdown, syscall.SIGINT, syscall.SIGTERM)

	select {
	case err := <-serverErrors:
		if err != nil && err != http.ErrServerClosed {
			return fmt.Errorf("server failed: %w", err)
		}
		return nil

	case sig := <-shutdown:
		gs.logger.Info("shutdown signal received", "signal", sig)

		ctx, cancel := context.WithTimeout(context.Background(), gs.timeout)
		defer cancel()

		return gs.shutdownAll(ctx)
	}
}

func (gs *GracefulServer) shutdownAll(ctx context.Context) error {
	gs.logger.Info("starting graceful shutdown", "timeout", gs.timeout)

	var firstErr error
	for i, hook := range gs.hooks {
		if err := hook(ctx); err != nil {
			gs.logger.Error("shutdown hook failed", "hook_index", i, "error", err)
			if firstErr == nil {
				firstErr = fmt.Errorf("shutdown hook %d: %w", i, err)
			}
		}
	}

	if err := gs.server.Shutdown(ctx); err != nil {
		gs.logger.Error("HTTP server shutdown failed", "error", err)
		if firstErr == nil {
			firstErr = fmt.Errorf("server shutdown: %w", err)
		}
	} else {
		gs.logger.Info("HTTP server stopped gracefully")
	}

	return firstErr
}
