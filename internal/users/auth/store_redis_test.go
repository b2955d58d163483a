// Copyright (c) 2026 Yomira. All rights reserved.
// Author: tai.buivan.jp@gmail.com

package auth_test

import (
	"context"
	"testing"
	"time"

	"github.com/alicebob/miniredis/v2"
	"github.com/redis/go-redis/v9"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/taibuivan/dishdiary/internal/users/auth"
)

/*
TestRedisSessionDenylist stores revocations until the token would expire.
*/
func TestRedisSessionDenylist(t *testing.T) {
	server := miniredis.RunT(t)
	client := redis.NewClient(&redis.Options{Addr: server.Addr()})
	t.Cleanup(func() { _ = client.Close() })

	ctx := context.Background()
	denylist := auth.NewSessionDenylist(client)

	revoked, err := denylist.IsRevoked(ctx, "jti-1")
	require.NoError(t, err)
	assert.False(t, revoked)

	require.NoError(t, denylist.Revoke(ctx, "jti-1", 10*time.Minute))

	revoked, err = denylist.IsRevoked(ctx, "jti-1")
	require.NoError(t, err)
	assert.True(t, revoked)

	server.FastForward(11 * time.Minute)

	revoked, err = denylist.IsRevoked(ctx, "jti-1")
	require.NoError(t, err)
	assert.False(t, revoked)
}

/*
TestRedisSessionDenylist_ExpiredToken skips writing when nothing remains.
*/
func TestRedisSessionDenylist_ExpiredToken(t *testing.T) {
	server := miniredis.RunT(t)
	client := redis.NewClient(&redis.Options{Addr: server.Addr()})
	t.Cleanup(func() { _ = client.Close() })

	denylist := auth.NewSessionDenylist(client)
	require.NoError(t, denylist.Revoke(context.Background(), "jti-2", -time.Second))
	assert.Empty(t, server.Keys())
}
