package netx

import (
	"google.golang.org/genproto/googleapis/rpc/errdetails"
	"google.golang.org/grpc/codes"
	"google.golang.org/grpc/status"
)

// ErrorDomain tags the ErrorInfo attached by Failure.
const ErrorDomain = "gophauth"

// Machine-readable failure reasons carried in ErrorInfo.Reason.
const (
	ReasonAlreadyExists          = "ALREADY_EXISTS"
	ReasonUserNotFound           = "USER_NOT_FOUND"
	ReasonInvalidCredentials     = "INVALID_CREDENTIALS"
	ReasonInvalidArgument        = "INVALID_ARGUMENT"
	ReasonInternal               = "INTERNAL"
	ReasonAuthenticationRequired = "AUTHENTICATION_REQUIRED"
	ReasonAuthenticationFailed   = "AUTHENTICATION_FAILED"
)

// Failure builds a status error whose details repeat the outcome as
// success=false plus message, so a caller that inspects details gets the
// same pair a successful response carries.
func Failure(code codes.Code, reason, message string) error {
	st := status.New(code, message)

	detailed, err := st.WithDetails(&errdetails.ErrorInfo{
		Reason: reason,
		Domain: ErrorDomain,
		Metadata: map[string]string{
			"success": "false",
			"message": message,
		},
	})
	if err != nil {
		return st.Err()
	}
	return detailed.Err()
}

// FailureInfo extracts the ErrorInfo attached by Failure.
func FailureInfo(err error) (*errdetails.ErrorInfo, bool) {
	st, ok := status.FromError(err)
	if !ok || err == nil {
		return nil, false
	}

	for _, d := range st.Details() {
		if info, ok := d.(*errdetails.ErrorInfo); ok && info.GetDomain() == ErrorDomain {
			return info, true
		}
	}
	return nil, false
}

// FailureMessage returns the message of a failed call: the ErrorInfo
// message when present, else the status message.
func FailureMessage(err error) string {
	if info, ok := FailureInfo(err); ok {
		if m, ok := info.GetMetadata()["message"]; ok {
			return m
		}
	}
	if st, ok := status.FromError(err); ok {
		return st.Message()
	}
	return err.Error()
}
