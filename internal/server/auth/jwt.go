package auth

import (
	"errors"
	"time"

	"github.com/dmitrijs2005/gophauth/internal/common"
	"github.com/golang-jwt/jwt/v5"
)

// Claims carried by every access token. Subject holds the user ID.
type Claims struct {
	Username string `json:"username,omitempty"`
	jwt.RegisteredClaims
}

// TokenCodec issues and decodes HS256 access tokens signed with one shared
// secret.
type TokenCodec struct {
	secret []byte
	now    func() time.Time
	parser *jwt.Parser
}

type TokenCodecOption func(*TokenCodec)

// WithClock overrides the time source used for iat, exp and expiry checks.
func WithClock(now func() time.Time) TokenCodecOption {
	return func(c *TokenCodec) { c.now = now }
}

func NewTokenCodec(secret []byte, opts ...TokenCodecOption) *TokenCodec {
	c := &TokenCodec{
		secret: secret,
		now:    time.Now,
		// exp is checked by Decode itself, after the signature
		parser: jwt.NewParser(
			jwt.WithValidMethods([]string{jwt.SigningMethodHS256.Alg()}),
			jwt.WithoutClaimsValidation(),
		),
	}
	for _, o := range opts {
		o(c)
	}
	return c
}

// Issue signs a token for subjectID valid for ttl and returns it with its
// expiry. A zero ttl yields a token that is already expired.
//
// exp is a NumericDate in whole seconds, so now+ttl is truncated and the
// token may expire up to one second early. The returned expiry is the
// truncated instant Decode enforces.
func (c *TokenCodec) Issue(subjectID, displayName string, ttl time.Duration) (string, time.Time, error) {
	now := c.now()
	exp := jwt.NewNumericDate(now.Add(ttl))

	token := jwt.NewWithClaims(jwt.SigningMethodHS256, Claims{
		Username: displayName,
		RegisteredClaims: jwt.RegisteredClaims{
			Subject:   subjectID,
			IssuedAt:  jwt.NewNumericDate(now),
			ExpiresAt: exp,
		},
	})

	s, err := token.SignedString(c.secret)
	if err != nil {
		return "", time.Time{}, err
	}
	return s, exp.Time, nil
}

// Decode verifies the signature and then the claims. It returns
// common.ErrTokenMalformed, common.ErrTokenExpired or
// common.ErrTokenMissingSubject, checked in that order.
func (c *TokenCodec) Decode(tokenString string) (*Claims, error) {
	claims := &Claims{}

	token, err := c.parser.ParseWithClaims(tokenString, claims, func(t *jwt.Token) (any, error) {
		return c.secret, nil
	})
	if err != nil || !token.Valid {
		return nil, errors.Join(common.ErrTokenMalformed, err)
	}

	if claims.ExpiresAt == nil {
		return nil, common.ErrTokenMalformed
	}
	if !c.now().Before(claims.ExpiresAt.Time) {
		return nil, common.ErrTokenExpired
	}

	if claims.Subject == "" {
		return nil, common.ErrTokenMissingSubject
	}

	return claims, nil
}
