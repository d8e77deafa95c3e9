package authz

import (
	"context"
	"errors"
	"testing"

	"github.com/dmitrijs2005/gophauth/internal/common"
	"github.com/dmitrijs2005/gophauth/internal/logging"
	"github.com/dmitrijs2005/gophauth/internal/netx"
	"github.com/dmitrijs2005/gophauth/internal/profile/authclient"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"google.golang.org/grpc"
	"google.golang.org/grpc/codes"
	"google.golang.org/grpc/metadata"
	"google.golang.org/grpc/status"
)

type fakeVerifier struct {
	out   *authclient.Outcome
	err   error
	calls int
	token string
}

func (f *fakeVerifier) Verify(ctx context.Context, token string) (*authclient.Outcome, error) {
	f.calls++
	f.token = token
	return f.out, f.err
}

func incoming(kv ...string) context.Context {
	return metadata.NewIncomingContext(context.Background(), metadata.Pairs(kv...))
}

func TestAuthorize_NoToken_NoRemoteCall(t *testing.T) {
	ctxs := map[string]context.Context{
		"no metadata":  context.Background(),
		"no header":    incoming("x-other", "1"),
		"wrong scheme": incoming("authorization", "Basic abc"),
		"empty bearer": incoming("authorization", "Bearer "),
	}

	for name, ctx := range ctxs {
		t.Run(name, func(t *testing.T) {
			v := &fakeVerifier{}
			_, err := NewAuthorizer(v, logging.Discard()).Authorize(ctx)

			assert.Equal(t, codes.Unauthenticated, status.Code(err))
			assert.Equal(t, MsgAuthenticationRequired, netx.FailureMessage(err))
			assert.Zero(t, v.calls)
		})
	}
}

func TestAuthorize_Valid(t *testing.T) {
	v := &fakeVerifier{out: &authclient.Outcome{Valid: true, UserID: "u1", UserName: "alice"}}

	ctx, err := NewAuthorizer(v, logging.Discard()).Authorize(incoming("authorization", "Bearer tok"))
	require.NoError(t, err)
	assert.Equal(t, "tok", v.token)

	p, ok := PrincipalFromContext(ctx)
	require.True(t, ok)
	assert.Equal(t, Principal{UserID: "u1", UserName: "alice"}, p)
}

func TestAuthorize_Denied(t *testing.T) {
	tests := map[string]*fakeVerifier{
		"invalid":     {out: &authclient.Outcome{Reason: "expired"}},
		"unavailable": {err: errors.Join(common.ErrUnavailable, errors.New("refused"))},
		"nil outcome": {},
		"no subject":  {out: &authclient.Outcome{Valid: true}},
	}

	for name, v := range tests {
		t.Run(name, func(t *testing.T) {
			ctx, err := NewAuthorizer(v, logging.Discard()).Authorize(incoming("authorization", "Bearer tok"))
			assert.Nil(t, ctx)
			assert.Equal(t, codes.Unauthenticated, status.Code(err))

			info, ok := netx.FailureInfo(err)
			require.True(t, ok)
			assert.Equal(t, netx.ReasonAuthenticationFailed, info.GetReason())
			assert.Equal(t, 1, v.calls)
		})
	}
}

func TestInterceptor_OnlyProtectedMethods(t *testing.T) {
	v := &fakeVerifier{}
	it := NewAuthorizer(v, logging.Discard()).UnaryServerInterceptor("/svc/Protected")

	called := false
	handler := func(ctx context.Context, req any) (any, error) {
		called = true
		_, hasPrincipal := PrincipalFromContext(ctx)
		assert.False(t, hasPrincipal)
		return "ok", nil
	}

	resp, err := it(context.Background(), nil, &grpc.UnaryServerInfo{FullMethod: "/svc/Open"}, handler)
	require.NoError(t, err)
	assert.Equal(t, "ok", resp)
	assert.True(t, called)
	assert.Zero(t, v.calls)
}

func TestInterceptor_BlocksAndPasses(t *testing.T) {
	v := &fakeVerifier{out: &authclient.Outcome{Valid: true, UserID: "u1"}}
	it := NewAuthorizer(v, logging.Discard()).UnaryServerInterceptor("/svc/Protected")
	info := &grpc.UnaryServerInfo{FullMethod: "/svc/Protected"}

	var got Principal
	handler := func(ctx context.Context, req any) (any, error) {
		got, _ = PrincipalFromContext(ctx)
		return "ok", nil
	}

	_, err := it(context.Background(), nil, info, handler)
	assert.Equal(t, codes.Unauthenticated, status.Code(err))
	assert.Empty(t, got.UserID)

	_, err = it(incoming("authorization", "Bearer tok"), nil, info, handler)
	require.NoError(t, err)
	assert.Equal(t, "u1", got.UserID)
}

func TestInterceptor_NoListProtectsAll(t *testing.T) {
	v := &fakeVerifier{}
	it := NewAuthorizer(v, logging.Discard()).UnaryServerInterceptor()

	_, err := it(context.Background(), nil, &grpc.UnaryServerInfo{FullMethod: "/any/Method"},
		func(ctx context.Context, req any) (any, error) { return nil, nil })
	assert.Equal(t, codes.Unauthenticated, status.Code(err))
}
