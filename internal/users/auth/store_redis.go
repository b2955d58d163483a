// Copyright (c) 2026 Yomira. All rights reserved.
// Author: tai.buivan.jp@gmail.com

package auth

import (
	"context"
	"fmt"
	"time"

	"github.com/redis/go-redis/v9"

	"github.com/taibuivan/dishdiary/internal/platform/constants"
)

// RedisSessionDenylist implements [SessionDenylist] with expiring keys.
type RedisSessionDenylist struct {
	client redis.UniversalClient
}

// NewSessionDenylist creates a Redis-backed SessionDenylist.
func NewSessionDenylist(client redis.UniversalClient) *RedisSessionDenylist {
	return &RedisSessionDenylist{client: client}
}

func revokedKey(tokenID string) string {
	return constants.RedisPrefixRevokedSession + tokenID
}

// Revoke stores the token ID until the token's own expiry.
func (repository *RedisSessionDenylist) Revoke(ctx context.Context, tokenID string, ttl time.Duration) error {
	if ttl <= 0 {
		return nil
	}

	if err := repository.client.Set(ctx, revokedKey(tokenID), 1, ttl).Err(); err != nil {
		return fmt.Errorf("redis_session_revoke_failed: %w", err)
	}
	return nil
}

// IsRevoked reports whether a revocation key exists for the token ID.
func (repository *RedisSessionDenylist) IsRevoked(ctx context.Context, tokenID string) (bool, error) {
	count, err := repository.client.Exists(ctx, revokedKey(tokenID)).Result()
	if err != nil {
		return false, fmt.Errorf("redis_session_lookup_failed: %w", err)
	}
	return count > 0, nil
}
