// Copyright (c) 2026 Yomira. All rights reserved.
// Author: tai.buivan.jp@gmail.com

package auth

import (
	"context"
	"errors"
	"fmt"
	"log/slog"
	"strings"
	"time"

	"github.com/taibuivan/dishdiary/internal/platform/apperr"
	"github.com/taibuivan/dishdiary/internal/platform/ctxutil"
	"github.com/taibuivan/dishdiary/internal/platform/sec"
	"github.com/taibuivan/dishdiary/pkg/uuid"
)

// # Session Failures

var (
	// ErrUnknownUser means the token validated but its account no longer exists.
	ErrUnknownUser = errors.New("auth: session user no longer exists")

	// ErrSessionRevoked means the token was explicitly logged out.
	ErrSessionRevoked = errors.New("auth: session revoked")
)

// # Contracts & Types

// TokenIssuer signs and validates session tokens.
type TokenIssuer interface {
	Issue(userID string) (string, time.Time, error)
	Parse(token string) (*sec.AuthClaims, error)
}

// Service implements registration, login and session resolution.
type Service struct {
	users    UserRepository
	tokens   TokenIssuer
	denylist SessionDenylist
}

// NewService constructs a new [Service]. denylist may be nil, in which case
// logout only clears the client cookie and tokens stay valid until expiry.
func NewService(users UserRepository, tokens TokenIssuer, denylist SessionDenylist) *Service {
	return &Service{users: users, tokens: tokens, denylist: denylist}
}

// RegisterInput holds the data required to create an account.
type RegisterInput struct {
	Name     string
	Email    string
	Password string
}

// LoginInput defines credentials for an authentication attempt.
type LoginInput struct {
	Email    string
	Password string
}

// LoginSession is a freshly issued session for a user.
type LoginSession struct {
	Token     string
	ExpiresAt time.Time
	User      *User
}

// NormalizeEmail lower-cases and trims an email for storage and lookup.
func NormalizeEmail(email string) string {
	return strings.ToLower(strings.TrimSpace(email))
}

/*
Register creates an account and issues its first session.

Returns:
  - *LoginSession: Token and the created user
  - error: CONFLICT if the email is already registered
*/
func (service *Service) Register(ctx context.Context, input RegisterInput) (*LoginSession, error) {
	email := NormalizeEmail(input.Email)

	_, err := service.users.FindByEmail(ctx, email)
	switch {
	case err == nil:
		return nil, apperr.Conflict("Email is already registered")
	case !apperr.HasCode(err, apperr.CodeNotFound):
		return nil, err
	}

	hashedPassword, err := sec.HashPassword(input.Password)
	if err != nil {
		return nil, apperr.Internal(fmt.Errorf("auth_service_hash_failed: %w", err))
	}

	user := &User{
		ID:           uuid.New(),
		Name:         strings.TrimSpace(input.Name),
		Email:        email,
		PasswordHash: hashedPassword,
	}

	// A concurrent registration can still win the unique index.
	if err := service.users.Create(ctx, user); err != nil {
		if apperr.HasCode(err, apperr.CodeConflict) {
			return nil, apperr.Conflict("Email is already registered")
		}
		return nil, err
	}

	ctxutil.GetLogger(ctx).InfoContext(ctx, "user_registered", slog.String("user_id", user.ID))

	return service.issue(user)
}

/*
Login verifies credentials and issues a session.

Unknown emails and wrong passwords produce the same UNAUTHORIZED error.
*/
func (service *Service) Login(ctx context.Context, input LoginInput) (*LoginSession, error) {
	user, err := service.users.FindByEmail(ctx, NormalizeEmail(input.Email))
	if err != nil {
		if apperr.HasCode(err, apperr.CodeNotFound) {
			return nil, apperr.Unauthorized("Invalid email or password")
		}
		return nil, err
	}

	if !sec.CheckPasswordHash(input.Password, user.PasswordHash) {
		return nil, apperr.Unauthorized("Invalid email or password")
	}

	return service.issue(user)
}

func (service *Service) issue(user *User) (*LoginSession, error) {
	token, expiresAt, err := service.tokens.Issue(user.ID)
	if err != nil {
		return nil, apperr.Internal(fmt.Errorf("auth_service_token_issue_failed: %w", err))
	}
	return &LoginSession{Token: token, ExpiresAt: expiresAt, User: user}, nil
}

/*
ResolveSession validates a token and loads the account it names.

Returns:
  - *sec.Identity: The caller
  - error: sec.ErrTokenMalformed, sec.ErrInvalidSignature, sec.ErrTokenExpired,
    ErrSessionRevoked, ErrUnknownUser, or a storage error
*/
func (service *Service) ResolveSession(ctx context.Context, token string) (*sec.Identity, error) {
	claims, err := service.tokens.Parse(token)
	if err != nil {
		return nil, err
	}

	if service.denylist != nil {
		revoked, err := service.denylist.IsRevoked(ctx, claims.ID)
		if err != nil {
			return nil, apperr.Upstream("Session store", err)
		}
		if revoked {
			return nil, ErrSessionRevoked
		}
	}

	user, err := service.users.FindByID(ctx, claims.UserID)
	if err != nil {
		if apperr.HasCode(err, apperr.CodeNotFound) {
			return nil, ErrUnknownUser
		}
		return nil, err
	}

	return user.Identity(claims), nil
}

/*
Logout revokes the caller's token when a denylist is configured.

Failures are logged and swallowed: the cookie is cleared regardless.
*/
func (service *Service) Logout(ctx context.Context, identity *sec.Identity) {
	if service.denylist == nil || identity == nil || identity.TokenID == "" {
		return
	}

	ttl := time.Until(identity.ExpiresAt)
	if err := service.denylist.Revoke(ctx, identity.TokenID, ttl); err != nil {
		ctxutil.GetLogger(ctx).ErrorContext(ctx, "session_revoke_failed",
			slog.String("user_id", identity.UserID),
			slog.Any("error", err),
		)
	}
}
