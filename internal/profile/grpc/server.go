// Package grpc serves ProfileService. Every call passes through the
// delegated authorizer before reaching a handler.
package grpc

import (
	"context"

	"github.com/dmitrijs2005/gophauth/internal/logging"
	"github.com/dmitrijs2005/gophauth/internal/netx"
	"github.com/dmitrijs2005/gophauth/internal/profile/authz"
	pb "github.com/dmitrijs2005/gophauth/internal/proto"
	"google.golang.org/grpc"
)

// ProtectedMethods lists the ProfileService methods that require a
// verified caller.
var ProtectedMethods = []string{
	pb.ProfileService_GetProfile_FullMethodName,
}

type GRPCServer struct {
	pb.UnimplementedProfileServiceServer
	address       string
	authorizer    *authz.Authorizer
	logger        logging.Logger
	maxConcurrent int
}

func NewGRPCServer(a string, l logging.Logger, authorizer *authz.Authorizer, maxConcurrent int) *GRPCServer {
	return &GRPCServer{
		address:       a,
		logger:        l.With("module", "grpc_server"),
		authorizer:    authorizer,
		maxConcurrent: maxConcurrent,
	}
}

func (s *GRPCServer) Server() *grpc.Server {
	srv := netx.NewServer(s.logger, s.maxConcurrent, s.authorizer.UnaryServerInterceptor(ProtectedMethods...))
	pb.RegisterProfileServiceServer(srv, s)
	return srv
}

func (s *GRPCServer) Run(ctx context.Context) error {
	return netx.Serve(ctx, s.Server(), s.address, s.logger)
}
