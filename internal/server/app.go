// Package server initializes and runs the identity authority: it opens the
// credential store, wires the identity service and serves AuthService until
// a shutdown signal arrives.
package server

import (
	"context"
	"fmt"
	"io"
	"os"
	"os/signal"
	"syscall"

	"github.com/dmitrijs2005/gophauth/internal/logging"
	"github.com/dmitrijs2005/gophauth/internal/server/auth"
	"github.com/dmitrijs2005/gophauth/internal/server/config"
	"github.com/dmitrijs2005/gophauth/internal/server/repositories/repomanager"
	"github.com/dmitrijs2005/gophauth/internal/server/services"

	gs "github.com/dmitrijs2005/gophauth/internal/server/grpc"
)

type App struct {
	config *config.Config
	logger logging.Logger
	store  repomanager.RepositoryManager
	server *gs.GRPCServer
}

// NewApp connects the store (with retry) and builds the server. Logs go to w.
func NewApp(ctx context.Context, c *config.Config, w io.Writer) (*App, error) {
	base, err := logging.New(c.LogLevel, c.LogFormat, w)
	if err != nil {
		return nil, fmt.Errorf("logger init error: %w", err)
	}
	logger := base.With("service", "authserver")

	if c.UsingDevSecret() {
		logger.Warn(ctx, "USING THE DEFAULT DEVELOPMENT SECRET KEY, tokens can be forged by anyone who reads the source; set AUTH_SECRET_KEY or -s in production")
	}

	store, err := repomanager.Open(ctx, c, logger)
	if err != nil {
		return nil, fmt.Errorf("store init error: %w", err)
	}

	identity := services.NewIdentityService(
		store.Users(),
		auth.NewPasswordHasher(),
		auth.NewTokenCodec([]byte(c.SecretKey)),
		c,
		logger,
	)

	s := gs.NewGRPCServer(c.EndpointAddrGRPC, logger, identity, c.MaxConcurrentRequests)

	return &App{config: c, logger: logger, store: store, server: s}, nil
}

func (app *App) initSignalHandler(cancelFunc context.CancelFunc) {
	// Channel to catch OS signals.
	sigs := make(chan os.Signal, 1)
	signal.Notify(sigs, syscall.SIGINT, syscall.SIGTERM, syscall.SIGQUIT)

	go func() {
		<-sigs
		cancelFunc()
	}()
}

// Run serves until ctx is cancelled or a termination signal arrives, then
// closes the store.
func (app *App) Run(ctx context.Context) error {

	ctx, cancelFunc := context.WithCancel(ctx)
	defer cancelFunc()

	app.logger.Info(ctx, "Starting app...", "address", app.config.EndpointAddrGRPC, "store", app.config.StoreDriver)

	app.initSignalHandler(cancelFunc)

	err := app.server.Run(ctx)
	if err != nil {
		app.logger.Error(ctx, "grpc server failed", "error", err)
	}

	if cerr := app.store.Close(); cerr != nil {
		app.logger.Error(ctx, "store close failed", "error", cerr)
	}

	app.logger.Info(ctx, "App stopped")
	return err
}
