package httpserver

import (
	"context"
	"errors"
	"fmt"
	"net"
	"net/http"
	"strconv"
	"time"

	relayRedis "auris-notifier/internal/relay/delivery/redis"
)

const shutdownTimeout = 10 * time.Second

// Run starts the hub, the Redis subscriber and the HTTP server, then blocks
// until ctx is done and shuts everything down.
func (srv *HTTPServer) Run(ctx context.Context) error {
	ln, err := net.Listen("tcp", net.JoinHostPort(srv.host, strconv.Itoa(srv.port)))
	if err != nil {
		return fmt.Errorf("listen: %w", err)
	}
	return srv.Serve(ctx, ln)
}

// Serve is Run on an existing listener.
func (srv *HTTPServer) Serve(ctx context.Context, ln net.Listener) error {
	go srv.relayUC.Run()
	srv.logger.Info(ctx, "httpserver.Serve: relay hub started")

	var sub relayRedis.Subscriber
	if srv.redis != nil {
		sub = relayRedis.New(srv.redis, srv.relayUC, srv.logger)
		if err := sub.Start(ctx); err != nil {
			ln.Close()
			return fmt.Errorf("start redis subscriber: %w", err)
		}
	}

	httpSrv := &http.Server{Handler: srv.gin, ReadHeaderTimeout: 10 * time.Second}
	errCh := make(chan error, 1)
	go func() {
		errCh <- httpSrv.Serve(ln)
	}()
	srv.logger.Infof(ctx, "httpserver.Serve: listening on %s", ln.Addr())

	var serveErr error
	select {
	case <-ctx.Done():
	case serveErr = <-errCh:
	}

	srv.logger.Info(ctx, "httpserver.Serve: stopping relay...")
	shutdownCtx, cancel := context.WithTimeout(context.WithoutCancel(ctx), shutdownTimeout)
	defer cancel()

	if sub != nil {
		if err := sub.Shutdown(shutdownCtx); err != nil {
			srv.logger.Errorf(shutdownCtx, "httpserver.Serve: subscriber shutdown: %v", err)
		}
	}
	if err := srv.relayUC.Shutdown(shutdownCtx); err != nil {
		srv.logger.Errorf(shutdownCtx, "httpserver.Serve: hub shutdown: %v", err)
	}
	if err := httpSrv.Shutdown(shutdownCtx); err != nil {
		srv.logger.Errorf(shutdownCtx, "httpserver.Serve: http shutdown: %v", err)
	}

	if serveErr != nil && !errors.Is(serveErr, http.ErrServerClosed) {
		return serveErr
	}
	return nil
}
