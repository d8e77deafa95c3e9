package grpc

import (
	"context"
	"errors"

	"github.com/dmitrijs2005/gophauth/internal/common"
	"github.com/dmitrijs2005/gophauth/internal/netx"
	pb "github.com/dmitrijs2005/gophauth/internal/proto"
	"github.com/dmitrijs2005/gophauth/internal/server/services"
	"google.golang.org/grpc/codes"
)

const (
	msgRegistered       = "User registered successfully"
	msgAuthenticated    = "Authentication successful"
	msgUserExists       = "Username already exists"
	msgUserNotFound     = "User not found"
	msgBadCredentials   = "Invalid username or password"
	msgRegisterFailed   = "Server error during registration"
	msgLoginFailed      = "Server error during login"
	msgTokenValid       = "Token is valid"
	msgTokenExpired     = "Token has expired"
	msgTokenMalformed   = "Invalid token"
	msgTokenMissingUser = "Invalid token payload"
)

func (s *GRPCServer) Register(ctx context.Context, req *pb.RegisterRequest) (*pb.RegisterResponse, error) {

	s.logger.Info(ctx, "Registration request", "username", req.GetUsername())

	user, err := s.identity.Register(ctx, req.GetUsername(), req.GetPassword())
	if err != nil {
		return nil, toStatus(err, msgRegisterFailed)
	}

	return &pb.RegisterResponse{Success: true, UserId: user.ID, Message: msgRegistered}, nil
}

func (s *GRPCServer) Authenticate(ctx context.Context, req *pb.AuthenticateRequest) (*pb.AuthenticateResponse, error) {

	s.logger.Info(ctx, "Authentication request", "username", req.GetUsername())

	sess, err := s.identity.Authenticate(ctx, req.GetUsername(), req.GetPassword())
	if err != nil {
		return nil, toStatus(err, msgLoginFailed)
	}

	return &pb.AuthenticateResponse{
		Success:   true,
		Token:     sess.Token,
		ExpiresAt: sess.ExpiresAt.Unix(),
		Message:   msgAuthenticated,
	}, nil
}

// VerifyToken always succeeds at the RPC level; an unusable token is
// reported as IsValid=false with a reason.
func (s *GRPCServer) VerifyToken(ctx context.Context, req *pb.VerifyTokenRequest) (*pb.VerifyTokenResponse, error) {

	v := s.identity.Verify(ctx, req.GetToken())
	if !v.Valid {
		return &pb.VerifyTokenResponse{Reason: string(v.Reason), Message: reasonMessage(v.Reason)}, nil
	}

	return &pb.VerifyTokenResponse{
		IsValid:  true,
		UserId:   v.SubjectID,
		Username: v.UserName,
		Message:  msgTokenValid,
	}, nil
}

func reasonMessage(r services.Reason) string {
	switch r {
	case services.ReasonExpired:
		return msgTokenExpired
	case services.ReasonMissingSubject:
		return msgTokenMissingUser
	default:
		return msgTokenMalformed
	}
}

// toStatus maps a service error to its status code. internalMsg is used
// for anything outside the known taxonomy so storage details never leak.
func toStatus(err error, internalMsg string) error {
	var iae *services.InvalidArgumentError

	switch {
	case errors.As(err, &iae):
		return netx.Failure(codes.InvalidArgument, netx.ReasonInvalidArgument, iae.Message)
	case errors.Is(err, common.ErrAlreadyExists):
		return netx.Failure(codes.AlreadyExists, netx.ReasonAlreadyExists, msgUserExists)
	case errors.Is(err, common.ErrNotFound):
		return netx.Failure(codes.NotFound, netx.ReasonUserNotFound, msgUserNotFound)
	case errors.Is(err, common.ErrUnauthenticated):
		return netx.Failure(codes.Unauthenticated, netx.ReasonInvalidCredentials, msgBadCredentials)
	default:
		return netx.Failure(codes.Internal, netx.ReasonInternal, internalMsg)
	}
}
