// Copyright (c) 2026 Yomira. All rights reserved.
// Author: tai.buivan.jp@gmail.com

package auth_test

import (
	"context"
	"errors"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/taibuivan/dishdiary/internal/platform/apperr"
	"github.com/taibuivan/dishdiary/internal/platform/sec"
	"github.com/taibuivan/dishdiary/internal/users/auth"
)

var registration = auth.RegisterInput{Name: "A", Email: "a@x.com", Password: "secret1"}

/*
TestService_RegisterResolve issues a session that resolves to the new user.
*/
func TestService_RegisterResolve(t *testing.T) {
	ctx := context.Background()
	c := &clock{current: time.Now()}
	service := auth.NewService(newMemoryUsers(), newTokens(t, c), nil)

	session, err := service.Register(ctx, auth.RegisterInput{Name: " A ", Email: " A@X.com ", Password: "secret1"})
	require.NoError(t, err)
	assert.Equal(t, "a@x.com", session.User.Email)
	assert.Equal(t, "A", session.User.Name)
	assert.NotEqual(t, "secret1", session.User.PasswordHash)

	identity, err := service.ResolveSession(ctx, session.Token)
	require.NoError(t, err)
	assert.Equal(t, session.User.ID, identity.UserID)
	assert.Equal(t, "a@x.com", identity.Email)
	assert.NotEmpty(t, identity.TokenID)

	c.current = c.current.Add(time.Hour + time.Second)
	_, err = service.ResolveSession(ctx, session.Token)
	assert.ErrorIs(t, err, sec.ErrTokenExpired)
}

/*
TestService_RegisterDuplicate rejects a second account for the same email.
*/
func TestService_RegisterDuplicate(t *testing.T) {
	ctx := context.Background()
	service := auth.NewService(newMemoryUsers(), newTokens(t, &clock{current: time.Now()}), nil)

	_, err := service.Register(ctx, registration)
	require.NoError(t, err)

	_, err = service.Register(ctx, auth.RegisterInput{Name: "B", Email: "A@x.com", Password: "secret2"})
	assert.True(t, apperr.HasCode(err, apperr.CodeConflict))
}

/*
TestService_Login distinguishes nothing between unknown email and bad password.
*/
func TestService_Login(t *testing.T) {
	ctx := context.Background()
	service := auth.NewService(newMemoryUsers(), newTokens(t, &clock{current: time.Now()}), nil)

	registered, err := service.Register(ctx, registration)
	require.NoError(t, err)

	_, wrongPassword := service.Login(ctx, auth.LoginInput{Email: "a@x.com", Password: "secret2"})
	_, unknownEmail := service.Login(ctx, auth.LoginInput{Email: "b@x.com", Password: "secret1"})

	require.True(t, apperr.HasCode(wrongPassword, apperr.CodeUnauthorized))
	require.True(t, apperr.HasCode(unknownEmail, apperr.CodeUnauthorized))
	assert.Equal(t, wrongPassword.Error(), unknownEmail.Error())

	session, err := service.Login(ctx, auth.LoginInput{Email: "A@x.com", Password: "secret1"})
	require.NoError(t, err)
	assert.Equal(t, registered.User.ID, session.User.ID)
}

/*
TestService_ResolveUnknownUser fails once the account is gone.
*/
func TestService_ResolveUnknownUser(t *testing.T) {
	ctx := context.Background()
	users := newMemoryUsers()
	service := auth.NewService(users, newTokens(t, &clock{current: time.Now()}), nil)

	session, err := service.Register(ctx, registration)
	require.NoError(t, err)

	users.remove(session.User.ID)

	_, err = service.ResolveSession(ctx, session.Token)
	assert.ErrorIs(t, err, auth.ErrUnknownUser)
}

/*
TestService_ResolveStorageFailure surfaces store errors unchanged.
*/
func TestService_ResolveStorageFailure(t *testing.T) {
	ctx := context.Background()
	users := newMemoryUsers()
	service := auth.NewService(users, newTokens(t, &clock{current: time.Now()}), nil)

	session, err := service.Register(ctx, registration)
	require.NoError(t, err)

	users.err = apperr.Upstream("Database", errors.New("connection refused"))

	_, err = service.ResolveSession(ctx, session.Token)
	assert.True(t, apperr.HasCode(err, apperr.CodeUpstream))
}

/*
TestService_LogoutRevokes blocks a token after logout when a denylist is set,
and leaves it usable when none is configured.
*/
func TestService_LogoutRevokes(t *testing.T) {
	ctx := context.Background()
	c := &clock{current: time.Now()}

	denylist := &memoryDenylist{}
	service := auth.NewService(newMemoryUsers(), newTokens(t, c), denylist)

	session, err := service.Register(ctx, registration)
	require.NoError(t, err)
	identity, err := service.ResolveSession(ctx, session.Token)
	require.NoError(t, err)

	service.Logout(ctx, identity)

	_, err = service.ResolveSession(ctx, session.Token)
	assert.ErrorIs(t, err, auth.ErrSessionRevoked)

	stateless := auth.NewService(newMemoryUsers(), newTokens(t, c), nil)
	session, err = stateless.Register(ctx, registration)
	require.NoError(t, err)
	identity, err = stateless.ResolveSession(ctx, session.Token)
	require.NoError(t, err)

	stateless.Logout(ctx, identity)

	_, err = stateless.ResolveSession(ctx, session.Token)
	assert.NoError(t, err)
}
