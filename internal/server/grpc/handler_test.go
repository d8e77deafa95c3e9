package grpc

import (
	"context"
	"errors"
	"testing"
	"time"

	"github.com/dmitrijs2005/gophauth/internal/common"
	"github.com/dmitrijs2005/gophauth/internal/logging"
	"github.com/dmitrijs2005/gophauth/internal/netx"
	pb "github.com/dmitrijs2005/gophauth/internal/proto"
	"github.com/dmitrijs2005/gophauth/internal/server/models"
	"github.com/dmitrijs2005/gophauth/internal/server/services"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"google.golang.org/grpc/codes"
	"google.golang.org/grpc/status"
)

// ---- fakes ----

type fakeIdentity struct {
	regResp *models.User
	regErr  error

	authResp *services.Session
	authErr  error

	verifyResp services.Verification
	lastToken  string
}

func (f *fakeIdentity) Register(ctx context.Context, username, password string) (*models.User, error) {
	return f.regResp, f.regErr
}

func (f *fakeIdentity) Authenticate(ctx context.Context, username, password string) (*services.Session, error) {
	return f.authResp, f.authErr
}

func (f *fakeIdentity) Verify(ctx context.Context, token string) services.Verification {
	f.lastToken = token
	return f.verifyResp
}

func newTestServer(f *fakeIdentity) *GRPCServer {
	return NewGRPCServer("127.0.0.1:0", logging.Discard(), f, 4)
}

// assertFailure checks code, status message and the ErrorInfo pair.
func assertFailure(t *testing.T, err error, code codes.Code, reason, msg string) {
	t.Helper()
	require.Error(t, err)
	assert.Equal(t, code, status.Code(err))

	info, ok := netx.FailureInfo(err)
	require.True(t, ok, "missing ErrorInfo detail")
	assert.Equal(t, reason, info.GetReason())
	assert.Equal(t, "false", info.GetMetadata()["success"])
	assert.Equal(t, msg, info.GetMetadata()["message"])
}

// ---- Register ----

func TestRegister_Success(t *testing.T) {
	s := newTestServer(&fakeIdentity{regResp: &models.User{ID: "u-1", UserName: "alice"}})

	resp, err := s.Register(context.Background(), &pb.RegisterRequest{Username: "alice", Password: "pw"})
	require.NoError(t, err)
	assert.True(t, resp.GetSuccess())
	assert.Equal(t, "u-1", resp.GetUserId())
	assert.Equal(t, msgRegistered, resp.GetMessage())
}

func TestRegister_ErrorMapping(t *testing.T) {
	tests := []struct {
		name   string
		err    error
		code   codes.Code
		reason string
		msg    string
	}{
		{"exists", common.ErrAlreadyExists, codes.AlreadyExists, netx.ReasonAlreadyExists, msgUserExists},
		{"invalid", &services.InvalidArgumentError{Message: "username is required"}, codes.InvalidArgument, netx.ReasonInvalidArgument, "username is required"},
		{"internal", errors.Join(common.ErrInternal, errors.New("pq: secret detail")), codes.Internal, netx.ReasonInternal, msgRegisterFailed},
		{"unknown", errors.New("surprise"), codes.Internal, netx.ReasonInternal, msgRegisterFailed},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			s := newTestServer(&fakeIdentity{regErr: tt.err})
			resp, err := s.Register(context.Background(), &pb.RegisterRequest{Username: "alice", Password: "pw"})
			assert.Nil(t, resp)
			assertFailure(t, err, tt.code, tt.reason, tt.msg)
			assert.NotContains(t, status.Convert(err).Message(), "secret detail")
		})
	}
}

// ---- Authenticate ----

func TestAuthenticate_Success(t *testing.T) {
	exp := time.Unix(1_900_000_000, 0)
	s := newTestServer(&fakeIdentity{authResp: &services.Session{Token: "tok", ExpiresAt: exp, UserID: "u-1"}})

	resp, err := s.Authenticate(context.Background(), &pb.AuthenticateRequest{Username: "alice", Password: "pw"})
	require.NoError(t, err)
	assert.True(t, resp.GetSuccess())
	assert.Equal(t, "tok", resp.GetToken())
	assert.Equal(t, exp.Unix(), resp.GetExpiresAt())
	assert.Equal(t, msgAuthenticated, resp.GetMessage())
}

func TestAuthenticate_ErrorMapping(t *testing.T) {
	tests := []struct {
		name   string
		err    error
		code   codes.Code
		reason string
		msg    string
	}{
		{"not found", common.ErrNotFound, codes.NotFound, netx.ReasonUserNotFound, msgUserNotFound},
		{"bad password", common.ErrUnauthenticated, codes.Unauthenticated, netx.ReasonInvalidCredentials, msgBadCredentials},
		{"internal", common.ErrInternal, codes.Internal, netx.ReasonInternal, msgLoginFailed},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			s := newTestServer(&fakeIdentity{authErr: tt.err})
			resp, err := s.Authenticate(context.Background(), &pb.AuthenticateRequest{Username: "alice", Password: "pw"})
			assert.Nil(t, resp)
			assertFailure(t, err, tt.code, tt.reason, tt.msg)
		})
	}
}

// ---- VerifyToken ----

func TestVerifyToken_Valid(t *testing.T) {
	f := &fakeIdentity{verifyResp: services.Verification{Valid: true, SubjectID: "u-1", UserName: "alice"}}
	s := newTestServer(f)

	resp, err := s.VerifyToken(context.Background(), &pb.VerifyTokenRequest{Token: "tok"})
	require.NoError(t, err)
	assert.Equal(t, "tok", f.lastToken)
	assert.Equal(t, &pb.VerifyTokenResponse{IsValid: true, UserId: "u-1", Username: "alice", Message: msgTokenValid}, resp)
}

func TestVerifyToken_InvalidNeverErrors(t *testing.T) {
	tests := []struct {
		reason services.Reason
		wire   string
		msg    string
	}{
		{services.ReasonExpired, pb.ReasonExpired, msgTokenExpired},
		{services.ReasonMalformed, pb.ReasonMalformed, msgTokenMalformed},
		{services.ReasonMissingSubject, pb.ReasonMissingSubject, msgTokenMissingUser},
	}

	for _, tt := range tests {
		t.Run(string(tt.reason), func(t *testing.T) {
			s := newTestServer(&fakeIdentity{verifyResp: services.Verification{Reason: tt.reason}})

			resp, err := s.VerifyToken(context.Background(), &pb.VerifyTokenRequest{Token: "x"})
			require.NoError(t, err)
			assert.False(t, resp.GetIsValid())
			assert.Empty(t, resp.GetUserId())
			assert.Equal(t, tt.wire, resp.GetReason())
			assert.Equal(t, tt.msg, resp.GetMessage())
		})
	}
}
