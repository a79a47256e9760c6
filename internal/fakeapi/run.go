package fakeapi

import (
	"context"
	"errors"
	"net"
	"net/http"
	"time"
)

const shutdownTimeout = 5 * time.Second

// Run serves the API on addr until ctx is cancelled, then shuts down
// gracefully.
func (s *Server) Run(ctx context.Context, addr string) error {
	listen, err := net.Listen("tcp", addr)
	if err != nil {
		return err
	}
	return s.serve(ctx, listen)
}

func (s *Server) serve(ctx context.Context, listen net.Listener) error {
	srv := &http.Server{
		Handler:           s.Handler(),
		ReadHeaderTimeout: 10 * time.Second,
	}

	ctx, cancel := context.WithCancel(ctx)
	defer cancel()

	done := make(chan error, 1)
	go func() {
		<-ctx.Done()
		s.log.Info(context.Background(), "Stopping API server...")
		sctx, stop := context.WithTimeout(context.Background(), shutdownTimeout)
		defer stop()
		done <- srv.Shutdown(sctx)
	}()

	s.log.Info(ctx, "Starting API server", "address", listen.Addr().String())

	if err := srv.Serve(listen); err != nil && !errors.Is(err, http.ErrServerClosed) {
		cancel()
		<-done
		return err
	}
	return <-done
}
