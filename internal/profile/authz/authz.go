// Package authz decides whether an inbound call to the profile service may
// proceed, by asking the identity authority about the caller's bearer token.
package authz

import (
	"context"

	"github.com/dmitrijs2005/gophauth/internal/bearer"
	"github.com/dmitrijs2005/gophauth/internal/logging"
	"github.com/dmitrijs2005/gophauth/internal/netx"
	"github.com/dmitrijs2005/gophauth/internal/profile/authclient"
	"google.golang.org/grpc/codes"
)

const (
	MsgAuthenticationRequired = "Authentication required."
	MsgAuthenticationFailed   = "Authentication failed: Invalid token."
)

// Verifier is the remote token check, implemented by authclient.Client.
type Verifier interface {
	Verify(ctx context.Context, token string) (*authclient.Outcome, error)
}

// Principal is the authenticated caller.
type Principal struct {
	UserID   string
	UserName string
}

type principalKey struct{}

// WithPrincipal returns ctx carrying p.
func WithPrincipal(ctx context.Context, p Principal) context.Context {
	return context.WithValue(ctx, principalKey{}, p)
}

// PrincipalFromContext returns the principal stored by Authorize.
func PrincipalFromContext(ctx context.Context) (Principal, bool) {
	p, ok := ctx.Value(principalKey{}).(Principal)
	return p, ok
}

type Authorizer struct {
	verifier Verifier
	logger   logging.Logger
}

func NewAuthorizer(v Verifier, logger logging.Logger) *Authorizer {
	return &Authorizer{verifier: v, logger: logger.With("module", "authz")}
}

// Authorize returns the context to run the call with, carrying the
// principal, or an Unauthenticated status. A call without a usable bearer
// token is rejected without contacting the authority. An unreachable
// authority denies the call.
func (a *Authorizer) Authorize(ctx context.Context) (context.Context, error) {
	token, ok := bearer.FromIncoming(ctx)
	if !ok {
		a.logger.Warn(ctx, "no authorization token found in metadata")
		return nil, netx.Failure(codes.Unauthenticated, netx.ReasonAuthenticationRequired, MsgAuthenticationRequired)
	}

	out, err := a.verifier.Verify(ctx, token)
	if err != nil {
		a.logger.Error(ctx, "token verification unavailable", "error", err)
		return nil, netx.Failure(codes.Unauthenticated, netx.ReasonAuthenticationFailed, MsgAuthenticationFailed)
	}
	if out == nil {
		a.logger.Error(ctx, "token verification returned no outcome")
		return nil, netx.Failure(codes.Unauthenticated, netx.ReasonAuthenticationFailed, MsgAuthenticationFailed)
	}

	if !out.Valid {
		a.logger.Warn(ctx, "token rejected by authority", "reason", out.Reason, "message", out.Message)
		return nil, netx.Failure(codes.Unauthenticated, netx.ReasonAuthenticationFailed, MsgAuthenticationFailed)
	}
	if out.UserID == "" {
		a.logger.Warn(ctx, "authority accepted a token without subject")
		return nil, netx.Failure(codes.Unauthenticated, netx.ReasonAuthenticationFailed, MsgAuthenticationFailed)
	}

	a.logger.Info(ctx, "token verified", "user_id", out.UserID)
	return WithPrincipal(ctx, Principal{UserID: out.UserID, UserName: out.UserName}), nil
}
