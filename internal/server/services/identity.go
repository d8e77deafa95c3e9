// Package services contains server-side business logic. IdentityService
// registers users, authenticates them into signed access tokens and
// verifies those tokens for other services.
package services

import (
	"context"
	"errors"
	"fmt"
	"time"

	"github.com/dmitrijs2005/gophauth/internal/common"
	"github.com/dmitrijs2005/gophauth/internal/logging"
	"github.com/dmitrijs2005/gophauth/internal/server/auth"
	"github.com/dmitrijs2005/gophauth/internal/server/config"
	"github.com/dmitrijs2005/gophauth/internal/server/models"
	"github.com/dmitrijs2005/gophauth/internal/server/repositories/users"
)

type PasswordHasher interface {
	Hash(plaintext string) (string, error)
	Verify(plaintext, stored string) bool
}

type TokenCodec interface {
	Issue(subjectID, displayName string, ttl time.Duration) (string, time.Time, error)
	Decode(token string) (*auth.Claims, error)
}

// Reason explains why a token failed verification.
type Reason string

const (
	ReasonNone           Reason = ""
	ReasonExpired        Reason = "expired"
	ReasonMalformed      Reason = "malformed"
	ReasonMissingSubject Reason = "missing_subject"
)

// Session is the result of a successful Authenticate.
type Session struct {
	Token     string
	ExpiresAt time.Time
	UserID    string
	UserName  string
}

// Verification is the outcome of Verify. Reason is set only when Valid is
// false.
type Verification struct {
	Valid     bool
	SubjectID string
	UserName  string
	Reason    Reason
}

type IdentityService struct {
	users    users.Repository
	hasher   PasswordHasher
	tokens   TokenCodec
	tokenTTL time.Duration
	logger   logging.Logger
}

func NewIdentityService(repo users.Repository, hasher PasswordHasher, tokens TokenCodec, cfg *config.Config, logger logging.Logger) *IdentityService {
	return &IdentityService{
		users:    repo,
		hasher:   hasher,
		tokens:   tokens,
		tokenTTL: cfg.AccessTokenValidityDuration,
		logger:   logger.With("module", "identity"),
	}
}

// Register creates an identity record for username. An existing username
// yields common.ErrAlreadyExists, both when seen up front and when a
// concurrent registration wins the insert.
func (s *IdentityService) Register(ctx context.Context, username, password string) (*models.User, error) {
	if err := validateCredentials(username, password); err != nil {
		return nil, err
	}

	_, err := s.users.GetUserByLogin(ctx, username)
	switch {
	case err == nil:
		s.logger.Info(ctx, "registration rejected, username taken", "username", username)
		return nil, common.ErrAlreadyExists
	case !errors.Is(err, common.ErrNotFound):
		s.logger.Error(ctx, "user lookup failed", "username", username, "error", err)
		return nil, fmt.Errorf("%w: user lookup: %v", common.ErrInternal, err)
	}

	hash, err := s.hasher.Hash(password)
	if err != nil {
		s.logger.Error(ctx, "password hashing failed", "username", username, "error", err)
		return nil, fmt.Errorf("%w: %w", common.ErrInternal, err)
	}

	user, err := s.users.Create(ctx, &models.User{UserName: username, PasswordHash: hash})
	if err != nil {
		if errors.Is(err, common.ErrAlreadyExists) {
			s.logger.Info(ctx, "registration lost race, username taken", "username", username)
			return nil, common.ErrAlreadyExists
		}
		s.logger.Error(ctx, "user insert failed", "username", username, "error", err)
		return nil, fmt.Errorf("%w: user insert: %v", common.ErrInternal, err)
	}

	s.logger.Info(ctx, "user registered", "username", username, "user_id", user.ID)
	return user, nil
}

// Authenticate checks the password and issues an access token. An unknown
// username is common.ErrNotFound, distinct from a wrong password
// (common.ErrUnauthenticated). Input is not validated: an over-long name
// cannot be stored and an empty or over-long password never verifies.
func (s *IdentityService) Authenticate(ctx context.Context, username, password string) (*Session, error) {
	user, err := s.users.GetUserByLogin(ctx, username)
	if err != nil {
		if errors.Is(err, common.ErrNotFound) {
			s.logger.Info(ctx, "login for unknown user", "username", username)
			return nil, common.ErrNotFound
		}
		s.logger.Error(ctx, "user lookup failed", "username", username, "error", err)
		return nil, fmt.Errorf("%w: user lookup: %v", common.ErrInternal, err)
	}

	if !s.hasher.Verify(password, user.PasswordHash) {
		s.logger.Info(ctx, "login with wrong password", "username", username)
		return nil, common.ErrUnauthenticated
	}

	token, exp, err := s.tokens.Issue(user.ID, user.UserName, s.tokenTTL)
	if err != nil {
		s.logger.Error(ctx, "token issue failed", "user_id", user.ID, "error", err)
		return nil, fmt.Errorf("%w: issue token: %v", common.ErrInternal, err)
	}

	s.logger.Info(ctx, "user authenticated", "user_id", user.ID)
	return &Session{Token: token, ExpiresAt: exp, UserID: user.ID, UserName: user.UserName}, nil
}

// Verify decodes token. It never fails: problems are reported through
// Verification.Reason. The credential store is not consulted.
func (s *IdentityService) Verify(ctx context.Context, token string) Verification {
	claims, err := s.tokens.Decode(token)
	if err != nil {
		reason := reasonFor(err)
		s.logger.Debug(ctx, "token rejected", "reason", string(reason))
		return Verification{Reason: reason}
	}

	return Verification{Valid: true, SubjectID: claims.Subject, UserName: claims.Username}
}

func reasonFor(err error) Reason {
	switch {
	case errors.Is(err, common.ErrTokenExpired):
		return ReasonExpired
	case errors.Is(err, common.ErrTokenMissingSubject):
		return ReasonMissingSubject
	default:
		return ReasonMalformed
	}
}
