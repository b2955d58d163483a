// Copyright (c) 2026 Yomira. All rights reserved.
// Author: tai.buivan.jp@gmail.com

// Package sec provides cryptographic primitives and session token management.
//
// # Architecture
//
// This package isolates security-sensitive code (hashing, token signing) from
// the domain logic. The session credential is a stateless HS256 JWT signed with
// one process-wide secret that is injected at construction and never rotated
// at runtime.
package sec

import (
	"errors"
	"fmt"
	"time"

	"github.com/golang-jwt/jwt/v5"
	"github.com/google/uuid"
)

// # Validation Failures

var (
	// ErrTokenMalformed means the token could not be parsed or lacks a user id.
	ErrTokenMalformed = errors.New("sec: session token is malformed")

	// ErrInvalidSignature means the token was not signed with our secret.
	ErrInvalidSignature = errors.New("sec: session token signature is invalid")

	// ErrTokenExpired means the token verified but its expiry has passed.
	ErrTokenExpired = errors.New("sec: session token has expired")
)

// AuthClaims is the payload embedded in a session token.
type AuthClaims struct {
	jwt.RegisteredClaims

	// UserID is abbreviated to keep the cookie small.
	UserID string `json:"uid"`
}

// SessionTokenService issues and verifies session tokens.
//
// It holds no mutable state after construction and is safe for concurrent use.
type SessionTokenService struct {
	secret []byte
	issuer string
	ttl    time.Duration
	now    func() time.Time
}

// Option customises a [SessionTokenService].
type Option func(*SessionTokenService)

// WithClock replaces the wall clock used for issuing and expiry checks.
func WithClock(now func() time.Time) Option {
	return func(service *SessionTokenService) {
		service.now = now
	}
}

// NewSessionTokenService creates a token service bound to one signing secret.
func NewSessionTokenService(secret []byte, issuer string, ttl time.Duration, opts ...Option) (*SessionTokenService, error) {
	if len(secret) == 0 {
		return nil, errors.New("sec: signing secret must not be empty")
	}
	if ttl <= 0 {
		return nil, errors.New("sec: token lifetime must be positive")
	}

	service := &SessionTokenService{
		secret: secret,
		issuer: issuer,
		ttl:    ttl,
		now:    time.Now,
	}
	for _, opt := range opts {
		opt(service)
	}

	return service, nil
}

// TTL returns the configured token lifetime.
func (service *SessionTokenService) TTL() time.Duration {
	return service.ttl
}

// Issue mints a signed token for userID and reports when it expires.
func (service *SessionTokenService) Issue(userID string) (string, time.Time, error) {
	if userID == "" {
		return "", time.Time{}, errors.New("sec: cannot issue a token without a user id")
	}

	tokenID, err := uuid.NewV7()
	if err != nil {
		return "", time.Time{}, fmt.Errorf("sec: failed to generate token id: %w", err)
	}

	issuedAt := service.now()
	expiresAt := issuedAt.Add(service.ttl)

	claims := AuthClaims{
		RegisteredClaims: jwt.RegisteredClaims{
			ID:        tokenID.String(),
			Subject:   userID,
			Issuer:    service.issuer,
			IssuedAt:  jwt.NewNumericDate(issuedAt),
			ExpiresAt: jwt.NewNumericDate(expiresAt),
		},
		UserID: userID,
	}

	signed, err := jwt.NewWithClaims(jwt.SigningMethodHS256, claims).SignedString(service.secret)
	if err != nil {
		return "", time.Time{}, fmt.Errorf("sec: failed to sign token: %w", err)
	}

	return signed, expiresAt, nil
}

// Parse verifies the signature and expiry of a token and returns its claims.
//
// The returned error is one of [ErrTokenMalformed], [ErrInvalidSignature] or
// [ErrTokenExpired], wrapping the library error for logging.
func (service *SessionTokenService) Parse(tokenString string) (*AuthClaims, error) {
	claims := &AuthClaims{}

	parser := jwt.NewParser(
		jwt.WithValidMethods([]string{jwt.SigningMethodHS256.Alg()}),
		jwt.WithIssuer(service.issuer),
		jwt.WithExpirationRequired(),
		jwt.WithTimeFunc(service.now),
	)

	_, err := parser.ParseWithClaims(tokenString, claims, func(token *jwt.Token) (any, error) {
		return service.secret, nil
	})
	if err != nil {
		return nil, classify(err)
	}

	if claims.UserID == "" {
		return nil, ErrTokenMalformed
	}

	return claims, nil
}

// classify folds the jwt library's error set into the session taxonomy.
func classify(err error) error {
	switch {
	case errors.Is(err, jwt.ErrTokenMalformed):
		return fmt.Errorf("%w: %v", ErrTokenMalformed, err)
	case errors.Is(err, jwt.ErrTokenSignatureInvalid),
		errors.Is(err, jwt.ErrTokenUnverifiable),
		errors.Is(err, jwt.ErrTokenInvalidIssuer):
		return fmt.Errorf("%w: %v", ErrInvalidSignature, err)
	case errors.Is(err, jwt.ErrTokenExpired):
		return fmt.Errorf("%w: %v", ErrTokenExpired, err)
	default:
		return fmt.Errorf("%w: %v", ErrTokenMalformed, err)
	}
}
