package bearer

import (
	"context"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"google.golang.org/grpc"
	"google.golang.org/grpc/metadata"
)

// incoming turns the outgoing metadata of ctx into incoming metadata, as the
// transport would.
func incoming(t *testing.T, ctx context.Context) context.Context {
	t.Helper()
	md, ok := metadata.FromOutgoingContext(ctx)
	require.True(t, ok)
	return metadata.NewIncomingContext(context.Background(), md)
}

func TestAttachThenExtract(t *testing.T) {
	ctx := Attach(context.Background(), "abc.def.ghi")

	md, _ := metadata.FromOutgoingContext(ctx)
	assert.Equal(t, []string{"Bearer abc.def.ghi"}, md.Get("authorization"))

	token, ok := FromIncoming(incoming(t, ctx))
	require.True(t, ok)
	assert.Equal(t, "abc.def.ghi", token)
}

func TestAttach_ReplacesExistingAndKeepsOthers(t *testing.T) {
	ctx := metadata.AppendToOutgoingContext(context.Background(), "authorization", "Bearer old", "x-request-id", "r1")
	ctx = Attach(ctx, "new")

	md, _ := metadata.FromOutgoingContext(ctx)
	assert.Equal(t, []string{"Bearer new"}, md.Get("authorization"))
	assert.Equal(t, []string{"r1"}, md.Get("x-request-id"))
}

func TestFromIncoming_Absent(t *testing.T) {
	tests := []struct {
		name string
		ctx  context.Context
	}{
		{"no metadata", context.Background()},
		{"no key", metadata.NewIncomingContext(context.Background(), metadata.Pairs("other", "x"))},
		{"no prefix", metadata.NewIncomingContext(context.Background(), metadata.Pairs("authorization", "abc"))},
		{"other scheme", metadata.NewIncomingContext(context.Background(), metadata.Pairs("authorization", "Basic abc"))},
		{"empty token", metadata.NewIncomingContext(context.Background(), metadata.Pairs("authorization", "Bearer "))},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			token, ok := FromIncoming(tt.ctx)
			assert.False(t, ok)
			assert.Empty(t, token)
		})
	}
}

func TestFromIncoming_KeyIsCaseInsensitive(t *testing.T) {
	md := metadata.MD{}
	md.Set("Authorization", "Bearer tok")
	ctx := metadata.NewIncomingContext(context.Background(), md)

	token, ok := FromIncoming(ctx)
	require.True(t, ok)
	assert.Equal(t, "tok", token)
}

func TestUnaryClientInterceptor(t *testing.T) {
	var seen metadata.MD
	invoker := func(ctx context.Context, method string, req, reply any, cc *grpc.ClientConn, opts ...grpc.CallOption) error {
		seen, _ = metadata.FromOutgoingContext(ctx)
		return nil
	}

	token := ""
	icpt := UnaryClientInterceptor(func() string { return token })

	require.NoError(t, icpt(context.Background(), "/m", nil, nil, nil, invoker))
	assert.Empty(t, seen.Get("authorization"))

	token = "t1"
	require.NoError(t, icpt(context.Background(), "/m", nil, nil, nil, invoker))
	assert.Equal(t, []string{"Bearer t1"}, seen.Get("authorization"))
}
