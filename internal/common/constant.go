// Package common contains shared constants and sentinel errors used across
// the authority, the profile service and the client.
package common

import "time"

// AuthorizationHeaderName is the gRPC metadata key carrying the bearer token.
const AuthorizationHeaderName = "authorization"

// BearerPrefix is the scheme prefix required in front of the token value.
const BearerPrefix = "Bearer "

// DefaultAccessTokenTTL is how long an issued token stays usable.
const DefaultAccessTokenTTL = 30 * time.Minute

// DefaultVerifyTimeout bounds a delegated VerifyToken call.
const DefaultVerifyTimeout = 10 * time.Second

// DevSecretKey is the signing secret used when none is configured.
// Starting with it is allowed only with a loud warning.
const DevSecretKey = "default-secret-for-dev"
