package grpc

import (
	"context"
	"fmt"

	"github.com/dmitrijs2005/gophauth/internal/netx"
	"github.com/dmitrijs2005/gophauth/internal/profile/authz"
	pb "github.com/dmitrijs2005/gophauth/internal/proto"
	"google.golang.org/grpc/codes"
)

const msgProfileRetrieved = "Profile retrieved successfully."

// GetProfile returns the profile of the authenticated caller. Profile data
// is derived from the user ID; there is no profile store.
func (s *GRPCServer) GetProfile(ctx context.Context, _ *pb.GetProfileRequest) (*pb.GetProfileResponse, error) {
	p, ok := authz.PrincipalFromContext(ctx)
	if !ok {
		s.logger.Error(ctx, "GetProfile reached without principal")
		return nil, netx.Failure(codes.Unauthenticated, netx.ReasonAuthenticationRequired, authz.MsgAuthenticationRequired)
	}

	s.logger.Info(ctx, "GetProfile request", "user_id", p.UserID)

	return &pb.GetProfileResponse{
		Success:  true,
		UserId:   p.UserID,
		Username: p.UserName,
		Email:    fmt.Sprintf("user_%s@example.com", p.UserID),
		FullName: fmt.Sprintf("User %s Name", p.UserID),
		Message:  msgProfileRetrieved,
	}, nil
}
