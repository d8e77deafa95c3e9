// Package client is the caller-side library for the identity authority and
// the profile service. It keeps the bearer token obtained by Login and
// attaches it to profile calls.
package client

import (
	"context"
	"errors"
	"sync"
	"time"

	"github.com/dmitrijs2005/gophauth/internal/bearer"
	"github.com/dmitrijs2005/gophauth/internal/netx"
	pb "github.com/dmitrijs2005/gophauth/internal/proto"
	"google.golang.org/grpc"
)

// Session is the outcome of a successful Login.
type Session struct {
	Token     string
	ExpiresAt time.Time
}

// Profile is the caller's profile as returned by the profile service.
type Profile struct {
	UserID   string
	UserName string
	Email    string
	FullName string
}

type GRPCClient struct {
	auth    pb.AuthServiceClient
	profile pb.ProfileServiceClient
	timeout time.Duration
	conns   []*grpc.ClientConn

	mu    sync.RWMutex
	token string
}

// New wraps already constructed service clients. The profile client must
// attach Token itself, e.g. via bearer.UnaryClientInterceptor. timeout
// bounds every call; zero leaves calls bounded only by the caller's context.
func New(auth pb.AuthServiceClient, profile pb.ProfileServiceClient, timeout time.Duration) *GRPCClient {
	return &GRPCClient{auth: auth, profile: profile, timeout: timeout}
}

// Dial connects lazily to both services. The profile connection carries the
// session token on every call.
func Dial(authAddr, profileAddr string, timeout time.Duration, opts ...grpc.DialOption) (*GRPCClient, error) {
	c := &GRPCClient{timeout: timeout}

	authConn, err := netx.Dial(authAddr, opts...)
	if err != nil {
		return nil, err
	}

	profileOpts := append([]grpc.DialOption{grpc.WithChainUnaryInterceptor(bearer.UnaryClientInterceptor(c.Token))}, opts...)
	profileConn, err := netx.Dial(profileAddr, profileOpts...)
	if err != nil {
		_ = authConn.Close()
		return nil, err
	}

	c.auth = pb.NewAuthServiceClient(authConn)
	c.profile = pb.NewProfileServiceClient(profileConn)
	c.conns = []*grpc.ClientConn{authConn, profileConn}
	return c, nil
}

func (c *GRPCClient) withTimeout(ctx context.Context) (context.Context, context.CancelFunc) {
	if c.timeout <= 0 {
		return ctx, func() {}
	}
	return context.WithTimeout(ctx, c.timeout)
}

// Token returns the current session token, empty before Login.
func (c *GRPCClient) Token() string {
	c.mu.RLock()
	defer c.mu.RUnlock()
	return c.token
}

// SetToken installs a token obtained elsewhere, e.g. from a previous run.
func (c *GRPCClient) SetToken(token string) {
	c.mu.Lock()
	c.token = token
	c.mu.Unlock()
}

// Register creates an account and returns its user ID.
func (c *GRPCClient) Register(ctx context.Context, userName, password string) (string, error) {
	ctx, cancel := c.withTimeout(ctx)
	defer cancel()

	resp, err := c.auth.Register(ctx, &pb.RegisterRequest{Username: userName, Password: password})
	if err != nil {
		return "", mapError(err)
	}
	return resp.GetUserId(), nil
}

// Login authenticates and keeps the issued token for later profile calls.
func (c *GRPCClient) Login(ctx context.Context, userName, password string) (*Session, error) {
	ctx, cancel := c.withTimeout(ctx)
	defer cancel()

	resp, err := c.auth.Authenticate(ctx, &pb.AuthenticateRequest{Username: userName, Password: password})
	if err != nil {
		return nil, mapError(err)
	}

	c.SetToken(resp.GetToken())

	return &Session{Token: resp.GetToken(), ExpiresAt: time.Unix(resp.GetExpiresAt(), 0).UTC()}, nil
}

// GetProfile fetches the profile of the logged-in user. The token travels
// through the interceptor installed by Dial.
func (c *GRPCClient) GetProfile(ctx context.Context) (*Profile, error) {
	if c.Token() == "" {
		return nil, ErrUnauthorized
	}

	ctx, cancel := c.withTimeout(ctx)
	defer cancel()

	resp, err := c.profile.GetProfile(ctx, &pb.GetProfileRequest{})
	if err != nil {
		return nil, mapError(err)
	}

	return &Profile{
		UserID:   resp.GetUserId(),
		UserName: resp.GetUsername(),
		Email:    resp.GetEmail(),
		FullName: resp.GetFullName(),
	}, nil
}

func (c *GRPCClient) Close() error {
	var errs []error
	for _, conn := range c.conns {
		errs = append(errs, conn.Close())
	}
	return errors.Join(errs...)
}
