package grpc

import (
	"context"

	"github.com/dmitrijs2005/gophauth/internal/logging"
	"github.com/dmitrijs2005/gophauth/internal/netx"
	pb "github.com/dmitrijs2005/gophauth/internal/proto"
	"github.com/dmitrijs2005/gophauth/internal/server/models"
	"github.com/dmitrijs2005/gophauth/internal/server/services"
	"google.golang.org/grpc"
)

// IdentityService is the business layer behind AuthService.
type IdentityService interface {
	Register(ctx context.Context, username, password string) (*models.User, error)
	Authenticate(ctx context.Context, username, password string) (*services.Session, error)
	Verify(ctx context.Context, token string) services.Verification
}

type GRPCServer struct {
	pb.UnimplementedAuthServiceServer
	address       string
	identity      IdentityService
	logger        logging.Logger
	maxConcurrent int
}

func NewGRPCServer(a string, l logging.Logger, identity IdentityService, maxConcurrent int) *GRPCServer {
	return &GRPCServer{
		address:       a,
		logger:        l.With("module", "grpc_server"),
		identity:      identity,
		maxConcurrent: maxConcurrent,
	}
}

// Server builds the grpc.Server with AuthService registered.
func (s *GRPCServer) Server() *grpc.Server {
	srv := netx.NewServer(s.logger, s.maxConcurrent)
	pb.RegisterAuthServiceServer(srv, s)
	return srv
}

// Run serves until ctx is cancelled.
func (s *GRPCServer) Run(ctx context.Context) error {
	return netx.Serve(ctx, s.Server(), s.address, s.logger)
}
