// Copyright (c) 2026 Yomira. All rights reserved.
// Author: tai.buivan.jp@gmail.com

package auth

import (
	"context"
	"time"
)

// # User Data Access

// UserRepository defines the data access contract for user accounts.
//
// Lookups return an apperr NOT_FOUND error when no row matches, and Create
// returns CONFLICT when the email is already taken.
type UserRepository interface {
	Create(ctx context.Context, user *User) error
	FindByID(ctx context.Context, id string) (*User, error)
	FindByEmail(ctx context.Context, email string) (*User, error)
}

// # Session Revocation

// SessionDenylist remembers revoked token IDs until the tokens would have
// expired anyway.
type SessionDenylist interface {

	/*
		Revoke marks the token ID as unusable for ttl.

		Parameters:
		  - ctx: context.Context
		  - tokenID: string (the token's jti claim)
		  - ttl: time.Duration (remaining token lifetime)

		Returns:
		  - error: Store failures
	*/
	Revoke(ctx context.Context, tokenID string, ttl time.Duration) error

	// IsRevoked reports whether the token ID was revoked.
	IsRevoked(ctx context.Context, tokenID string) (bool, error)
}
