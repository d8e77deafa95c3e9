package authz

import (
	"context"

	"google.golang.org/grpc"
)

// UnaryServerInterceptor runs Authorize before the handler of every method
// in protected (full method names). With no methods listed, every method is
// protected.
func (a *Authorizer) UnaryServerInterceptor(protected ...string) grpc.UnaryServerInterceptor {
	set := make(map[string]struct{}, len(protected))
	for _, m := range protected {
		set[m] = struct{}{}
	}

	return func(ctx context.Context, req any, info *grpc.UnaryServerInfo, handler grpc.UnaryHandler) (any, error) {
		if _, ok := set[info.FullMethod]; ok || len(set) == 0 {
			authCtx, err := a.Authorize(ctx)
			if err != nil {
				return nil, err
			}
			ctx = authCtx
		}

		return handler(ctx, req)
	}
}
