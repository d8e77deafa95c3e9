// Package bearer carries an opaque bearer token in gRPC call metadata as
// "authorization: Bearer <token>" and extracts it on the receiving side.
package bearer

import (
	"context"
	"strings"

	"google.golang.org/grpc"
	"google.golang.org/grpc/metadata"

	"github.com/dmitrijs2005/gophauth/internal/common"
)

// Attach returns ctx with the token set in its outgoing metadata, replacing
// any authorization value already present.
func Attach(ctx context.Context, token string) context.Context {
	md, _ := metadata.FromOutgoingContext(ctx)
	md = md.Copy()
	if md == nil {
		md = metadata.MD{}
	}
	md.Set(common.AuthorizationHeaderName, common.BearerPrefix+token)

	return metadata.NewOutgoingContext(ctx, md)
}

// FromIncoming returns the bearer token of an inbound call. A missing key,
// a value without the "Bearer " prefix and an empty token all yield ok=false.
func FromIncoming(ctx context.Context) (token string, ok bool) {
	md, found := metadata.FromIncomingContext(ctx)
	if !found {
		return "", false
	}

	// MD.Get lowercases the key, so the lookup is case-insensitive.
	values := md.Get(common.AuthorizationHeaderName)
	if len(values) == 0 {
		return "", false
	}

	token, ok = strings.CutPrefix(values[0], common.BearerPrefix)
	if !ok || token == "" {
		return "", false
	}
	return token, true
}

// TokenSource supplies the token to attach to outbound calls. An empty
// string means no token is attached.
type TokenSource func() string

// UnaryClientInterceptor attaches the token from src to every outbound call.
func UnaryClientInterceptor(src TokenSource) grpc.UnaryClientInterceptor {
	return func(ctx context.Context, method string, req, reply any, cc *grpc.ClientConn, invoker grpc.UnaryInvoker, opts ...grpc.CallOption) error {
		if token := src(); token != "" {
			ctx = Attach(ctx, token)
		}
		return invoker(ctx, method, req, reply, cc, opts...)
	}
}
