// Package netx holds the gRPC transport plumbing shared by both services:
// server construction and lifecycle, client dialing, common interceptors
// and the failure status format.
package netx

import (
	"context"
	"net"

	"github.com/dmitrijs2005/gophauth/internal/logging"
	"google.golang.org/grpc"
)

// NewServer builds a grpc.Server with a fixed stream worker pool and the
// standard interceptor chain: logging, then the concurrency limit, then
// any extra interceptors.
func NewServer(logger logging.Logger, maxConcurrent int, extra ...grpc.UnaryServerInterceptor) *grpc.Server {
	chain := append([]grpc.UnaryServerInterceptor{
		LoggingInterceptor(logger),
		ConcurrencyLimiter(maxConcurrent),
	}, extra...)

	return grpc.NewServer(
		grpc.NumStreamWorkers(uint32(maxConcurrent)),
		grpc.ChainUnaryInterceptor(chain...),
	)
}

// Serve listens on address and serves srv until ctx is cancelled, then
// stops gracefully. It returns nil after a graceful stop.
func Serve(ctx context.Context, srv *grpc.Server, address string, logger logging.Logger) error {
	// announces address
	listen, err := net.Listen("tcp", address)
	if err != nil {
		return err
	}
	return ServeListener(ctx, srv, listen, logger)
}

// ServeListener is Serve over an existing listener, e.g. a bufconn in tests.
func ServeListener(ctx context.Context, srv *grpc.Server, listen net.Listener, logger logging.Logger) error {
	stopped := make(chan struct{})
	go func() {
		defer close(stopped)
		<-ctx.Done()
		logger.Info(ctx, "Stopping gRPC server...")
		srv.GracefulStop()
	}()

	logger.Info(ctx, "Starting gRPC server", "address", listen.Addr().String())

	if err := srv.Serve(listen); err != nil {
		return err
	}
	<-stopped
	return nil
}
