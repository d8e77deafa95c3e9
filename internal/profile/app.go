// Package profile runs the profile service: a protected resource that
// trusts the identity authority for every caller's token.
package profile

import (
	"context"
	"fmt"
	"io"
	"os"
	"os/signal"
	"syscall"

	"github.com/dmitrijs2005/gophauth/internal/logging"
	"github.com/dmitrijs2005/gophauth/internal/profile/authclient"
	"github.com/dmitrijs2005/gophauth/internal/profile/authz"
	"github.com/dmitrijs2005/gophauth/internal/profile/config"
	"google.golang.org/grpc"

	pgs "github.com/dmitrijs2005/gophauth/internal/profile/grpc"
)

type App struct {
	config *config.Config
	logger logging.Logger
	conn   *grpc.ClientConn
	server *pgs.GRPCServer
}

// NewApp prepares the authority client and the server. The authority is
// dialled lazily, so it need not be up yet.
func NewApp(c *config.Config, w io.Writer, dialOpts ...grpc.DialOption) (*App, error) {
	base, err := logging.New(c.LogLevel, c.LogFormat, w)
	if err != nil {
		return nil, fmt.Errorf("logger init error: %w", err)
	}
	logger := base.With("service", "profileserver")

	client, conn, err := authclient.Dial(c.AuthServiceAddr, c.VerifyTimeout, dialOpts...)
	if err != nil {
		return nil, err
	}

	authorizer := authz.NewAuthorizer(client, logger)
	s := pgs.NewGRPCServer(c.EndpointAddrGRPC, logger, authorizer, c.MaxConcurrentRequests)

	return &App{config: c, logger: logger, conn: conn, server: s}, nil
}

func (app *App) initSignalHandler(cancelFunc context.CancelFunc) {
	sigs := make(chan os.Signal, 1)
	signal.Notify(sigs, syscall.SIGINT, syscall.SIGTERM, syscall.SIGQUIT)

	go func() {
		<-sigs
		cancelFunc()
	}()
}

// Server exposes the configured gRPC server, e.g. for serving on a custom
// listener.
func (app *App) Server() *grpc.Server {
	return app.server.Server()
}

// Run serves until ctx is cancelled or a termination signal arrives.
func (app *App) Run(ctx context.Context) error {

	ctx, cancelFunc := context.WithCancel(ctx)
	defer cancelFunc()

	app.logger.Info(ctx, "Starting app...", "address", app.config.EndpointAddrGRPC, "auth_service", app.config.AuthServiceAddr)

	app.initSignalHandler(cancelFunc)

	err := app.server.Run(ctx)
	if err != nil {
		app.logger.Error(ctx, "grpc server failed", "error", err)
	}

	if cerr := app.Close(); cerr != nil {
		app.logger.Error(ctx, "auth connection close failed", "error", cerr)
	}

	app.logger.Info(ctx, "App stopped")
	return err
}

// Close releases the authority connection.
func (app *App) Close() error {
	return app.conn.Close()
}
