package client

import (
	"errors"
	"fmt"

	"github.com/dmitrijs2005/gophauth/internal/netx"
	"google.golang.org/grpc/codes"
	"google.golang.org/grpc/status"
)

var (
	ErrUnavailable        = errors.New("server unavailable")
	ErrUnauthorized       = errors.New("unauthorized")
	ErrAlreadyExists      = errors.New("user already exists")
	ErrUserNotFound       = errors.New("user not found")
	ErrInvalidCredentials = errors.New("invalid credentials")
	ErrInvalidArgument    = errors.New("invalid argument")
	ErrServer             = errors.New("server error")
)

var reasonErrors = map[string]error{
	netx.ReasonAlreadyExists:          ErrAlreadyExists,
	netx.ReasonUserNotFound:           ErrUserNotFound,
	netx.ReasonInvalidCredentials:     ErrInvalidCredentials,
	netx.ReasonInvalidArgument:        ErrInvalidArgument,
	netx.ReasonInternal:               ErrServer,
	netx.ReasonAuthenticationRequired: ErrUnauthorized,
	netx.ReasonAuthenticationFailed:   ErrUnauthorized,
}

// mapError turns an RPC error into one of the sentinels above, keeping the
// server's human-readable message. The ErrorInfo reason wins over the code.
func mapError(err error) error {
	if err == nil {
		return nil
	}

	msg := netx.FailureMessage(err)

	if info, ok := netx.FailureInfo(err); ok {
		if sentinel, ok := reasonErrors[info.GetReason()]; ok {
			return fmt.Errorf("%w: %s", sentinel, msg)
		}
	}

	st, _ := status.FromError(err)
	switch st.Code() {
	case codes.Unauthenticated, codes.PermissionDenied:
		return fmt.Errorf("%w: %s", ErrUnauthorized, msg)
	case codes.Unavailable, codes.DeadlineExceeded, codes.Canceled:
		return fmt.Errorf("%w: %s", ErrUnavailable, msg)
	case codes.AlreadyExists:
		return fmt.Errorf("%w: %s", ErrAlreadyExists, msg)
	case codes.NotFound:
		return fmt.Errorf("%w: %s", ErrUserNotFound, msg)
	case codes.InvalidArgument:
		return fmt.Errorf("%w: %s", ErrInvalidArgument, msg)
	default:
		return fmt.Errorf("rpc error: %w", err)
	}
}
