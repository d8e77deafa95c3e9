package netx

import (
	"context"
	"time"

	"github.com/dmitrijs2005/gophauth/internal/logging"
	"golang.org/x/sync/semaphore"
	"google.golang.org/grpc"
	"google.golang.org/grpc/status"
)

// ConcurrencyLimiter admits at most n handlers at a time. Callers beyond
// the limit wait for a slot until their own deadline.
func ConcurrencyLimiter(n int) grpc.UnaryServerInterceptor {
	if n < 1 {
		n = 1
	}
	sem := semaphore.NewWeighted(int64(n))

	return func(ctx context.Context, req any, info *grpc.UnaryServerInfo, handler grpc.UnaryHandler) (any, error) {
		if err := sem.Acquire(ctx, 1); err != nil {
			return nil, status.FromContextError(err).Err()
		}
		defer sem.Release(1)

		return handler(ctx, req)
	}
}

// LoggingInterceptor logs every unary call with its status code and latency.
func LoggingInterceptor(logger logging.Logger) grpc.UnaryServerInterceptor {
	return func(ctx context.Context, req any, info *grpc.UnaryServerInfo, handler grpc.UnaryHandler) (any, error) {
		start := time.Now()
		resp, err := handler(ctx, req)

		logger.Info(ctx, "rpc",
			"method", info.FullMethod,
			"code", status.Code(err).String(),
			"duration", time.Since(start).String())

		return resp, err
	}
}
