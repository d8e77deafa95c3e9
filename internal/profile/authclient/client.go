// Package authclient calls the identity authority's VerifyToken on behalf
// of the profile service.
package authclient

import (
	"context"
	"fmt"
	"time"

	"github.com/dmitrijs2005/gophauth/internal/common"
	"github.com/dmitrijs2005/gophauth/internal/netx"
	pb "github.com/dmitrijs2005/gophauth/internal/proto"
	"google.golang.org/grpc"
)

// Outcome is the authority's answer about one token.
type Outcome struct {
	Valid    bool
	UserID   string
	UserName string
	Reason   string
	Message  string
}

type Client struct {
	rpc     pb.AuthServiceClient
	timeout time.Duration
}

// New wraps rpc. Every Verify is bounded by timeout; a non-positive
// timeout falls back to common.DefaultVerifyTimeout.
func New(rpc pb.AuthServiceClient, timeout time.Duration) *Client {
	if timeout <= 0 {
		timeout = common.DefaultVerifyTimeout
	}
	return &Client{rpc: rpc, timeout: timeout}
}

// Dial connects lazily to the authority at address.
func Dial(address string, timeout time.Duration, opts ...grpc.DialOption) (*Client, *grpc.ClientConn, error) {
	conn, err := netx.Dial(address, opts...)
	if err != nil {
		return nil, nil, fmt.Errorf("dial auth service %s: %w", address, err)
	}
	return New(pb.NewAuthServiceClient(conn), timeout), conn, nil
}

// Verify asks the authority about token. Transport failures, including the
// timeout, return an error wrapping common.ErrUnavailable; an invalid token
// is not an error.
func (c *Client) Verify(ctx context.Context, token string) (*Outcome, error) {
	ctx, cancel := context.WithTimeout(ctx, c.timeout)
	defer cancel()

	resp, err := c.rpc.VerifyToken(ctx, &pb.VerifyTokenRequest{Token: token})
	if err != nil {
		return nil, fmt.Errorf("%w: verify token: %w", common.ErrUnavailable, err)
	}

	return &Outcome{
		Valid:    resp.GetIsValid(),
		UserID:   resp.GetUserId(),
		UserName: resp.GetUsername(),
		Reason:   resp.GetReason(),
		Message:  resp.GetMessage(),
	}, nil
}
