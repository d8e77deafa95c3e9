// Package common defines shared constants and sentinel errors used across
// client and server layers. Callers should use errors.Is to match these values.
package common

import "errors"

var (
	// Repository-level errors.
	ErrNotFound      = errors.New("not found")
	ErrAlreadyExists = errors.New("already exists")

	// Service-level errors.
	ErrInternal        = errors.New("internal error")
	ErrUnauthenticated = errors.New("unauthenticated")
	ErrInvalidArgument = errors.New("invalid argument")

	// ErrHashing reports a failure of the password hashing primitive itself.
	ErrHashing = errors.New("password hashing failed")

	// Token decoding errors. Each one is a distinct verification reason.
	ErrTokenMalformed      = errors.New("token malformed")
	ErrTokenExpired        = errors.New("token expired")
	ErrTokenMissingSubject = errors.New("token missing subject")

	// ErrUnavailable is a transport-level failure reaching a remote service.
	ErrUnavailable = errors.New("service unavailable")
)
