// Copyright (c) 2026 Yomira. All rights reserved.
// Author: tai.buivan.jp@gmail.com

/*
Package auth owns user accounts and the session lifecycle.

It issues session tokens at register/login, resolves them back to a live
account on every guarded request, and optionally revokes them on logout.

# Architecture

  - Service: Register, Login, ResolveSession, Logout.
  - Repository: [UserRepository] on Postgres, [SessionDenylist] on Redis.
  - Handler: JSON endpoints that set and clear the session cookie.
*/
package auth

import (
	"time"

	"github.com/taibuivan/dishdiary/internal/platform/sec"
)

// # Domain Entities

// User is a registered account. Email is stored lower-cased and is unique.
type User struct {
	ID           string    `json:"id"`
	Name         string    `json:"name"`
	Email        string    `json:"email"`
	PasswordHash string    `json:"-"`
	CreatedAt    time.Time `json:"created_at"`
	UpdatedAt    time.Time `json:"updated_at"`
}

// Identity converts the account into the request-scoped caller.
func (u *User) Identity(claims *sec.AuthClaims) *sec.Identity {
	identity := &sec.Identity{UserID: u.ID, Name: u.Name, Email: u.Email}
	if claims != nil {
		identity.TokenID = claims.ID
		if claims.ExpiresAt != nil {
			identity.ExpiresAt = claims.ExpiresAt.Time
		}
	}
	return identity
}

// UserView is the public projection returned by the auth endpoints.
type UserView struct {
	ID    string `json:"id"`
	Name  string `json:"name"`
	Email string `json:"email"`
}

// ViewOf projects an identity for the client.
func ViewOf(identity *sec.Identity) *UserView {
	if identity == nil {
		return nil
	}
	return &UserView{ID: identity.UserID, Name: identity.Name, Email: identity.Email}
}

// # Field Identifiers

const (
	FieldName     = "name"
	FieldEmail    = "email"
	FieldPassword = "password"
)

// # Input Constraints

const (
	MinPasswordLength = 6
	MaxPasswordBytes  = 72 // bcrypt rejects longer inputs
	MaxNameLength     = 100
	MaxEmailLength    = 254
)
