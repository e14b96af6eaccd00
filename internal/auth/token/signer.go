package token

import (
	"fmt"
	"time"

	"github.com/golang-jwt/jwt/v5"

	"github.com/AlibekovAA/credential-auth/internal/common/clock"
	commonerrors "github.com/AlibekovAA/credential-auth/internal/common/errors"
	"github.com/AlibekovAA/credential-auth/internal/observability/metrics"
)

var (
	ErrMissingSecret = commonerrors.ErrMissingSigningSecret
	ErrInvalidToken  = commonerrors.ErrInvalidToken
	ErrMissingClaims = commonerrors.ErrMissingTokenClaims
)

// Claims is the identity asserted by an access token.
type Claims struct {
	UserID string
	Email  string
}

type jwtClaims struct {
	Email string `json:"email"`
	jwt.RegisteredClaims
}

type Signer interface {
	Sign(claims Claims) (string, error)
}

type Verifier interface {
	Parse(tokenString string) (Claims, error)
}

// JWTSigner issues and verifies HS256 access tokens with a fixed lifetime.
type JWTSigner struct {
	secret []byte
	ttl    time.Duration
	clock  clock.Clock
}

func NewJWTSigner(secret string, ttl time.Duration, clk clock.Clock) *JWTSigner {
	return &JWTSigner{
		secret: []byte(secret),
		ttl:    ttl,
		clock:  clk,
	}
}

func (s *JWTSigner) Sign(claims Claims) (string, error) {
	if len(s.secret) == 0 {
		return "", ErrMissingSecret
	}

	now := s.clock.Now()
	t := jwt.NewWithClaims(jwt.SigningMethodHS256, jwtClaims{
		Email: claims.Email,
		RegisteredClaims: jwt.RegisteredClaims{
			Subject:   claims.UserID,
			IssuedAt:  jwt.NewNumericDate(now),
			ExpiresAt: jwt.NewNumericDate(now.Add(s.ttl)),
		},
	})

	signed, err := t.SignedString(s.secret)
	if err != nil {
		return "", fmt.Errorf("failed to sign token: %w", err)
	}

	metrics.AccessTokensIssued.Inc()
	return signed, nil
}

func (s *JWTSigner) Parse(tokenString string) (Claims, error) {
	metrics.JWTValidationsTotal.Inc()

	claims, err := s.parse(tokenString)
	if err != nil {
		metrics.JWTValidationsFailed.Inc()
		return Claims{}, err
	}
	return claims, nil
}

func (s *JWTSigner) parse(tokenString string) (Claims, error) {
	if len(s.secret) == 0 {
		return Claims{}, ErrMissingSecret
	}

	var parsed jwtClaims
	_, err := jwt.ParseWithClaims(
		tokenString,
		&parsed,
		func(t *jwt.Token) (any, error) {
			return s.secret, nil
		},
		jwt.WithValidMethods([]string{jwt.SigningMethodHS256.Alg()}),
		jwt.WithExpirationRequired(),
		jwt.WithTimeFunc(s.clock.Now),
	)
	if err != nil {
		return Claims{}, ErrInvalidToken.WithCause(err)
	}

	if parsed.Subject == "" || parsed.Email == "" {
		return Claims{}, ErrMissingClaims
	}

	return Claims{
		UserID: parsed.Subject,
		Email:  parsed.Email,
	}, nil
}
