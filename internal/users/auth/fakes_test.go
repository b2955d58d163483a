// Copyright (c) 2026 Yomira. All rights reserved.
// Author: tai.buivan.jp@gmail.com

package auth_test

import (
	"context"
	"sync"
	"testing"
	"time"

	"github.com/stretchr/testify/require"

	"github.com/taibuivan/dishdiary/internal/platform/apperr"
	"github.com/taibuivan/dishdiary/internal/platform/sec"
	"github.com/taibuivan/dishdiary/internal/users/auth"
)

// memoryUsers is an in-memory [auth.UserRepository].
type memoryUsers struct {
	mu   sync.Mutex
	byID map[string]*auth.User
	err  error
}

func newMemoryUsers() *memoryUsers {
	return &memoryUsers{byID: map[string]*auth.User{}}
}

func (m *memoryUsers) Create(_ context.Context, user *auth.User) error {
	m.mu.Lock()
	defer m.mu.Unlock()
	if m.err != nil {
		return m.err
	}
	for _, existing := range m.byID {
		if existing.Email == user.Email {
			return apperr.Conflict("User already exists")
		}
	}
	copied := *user
	m.byID[user.ID] = &copied
	return nil
}

func (m *memoryUsers) FindByID(_ context.Context, id string) (*auth.User, error) {
	m.mu.Lock()
	defer m.mu.Unlock()
	if m.err != nil {
		return nil, m.err
	}
	if user, ok := m.byID[id]; ok {
		copied := *user
		return &copied, nil
	}
	return nil, apperr.NotFound("User")
}

func (m *memoryUsers) FindByEmail(_ context.Context, email string) (*auth.User, error) {
	m.mu.Lock()
	defer m.mu.Unlock()
	if m.err != nil {
		return nil, m.err
	}
	for _, user := range m.byID {
		if user.Email == email {
			copied := *user
			return &copied, nil
		}
	}
	return nil, apperr.NotFound("User")
}

func (m *memoryUsers) remove(id string) {
	m.mu.Lock()
	defer m.mu.Unlock()
	delete(m.byID, id)
}

// memoryDenylist is an in-memory [auth.SessionDenylist].
type memoryDenylist struct {
	mu      sync.Mutex
	revoked map[string]time.Duration
}

func (d *memoryDenylist) Revoke(_ context.Context, tokenID string, ttl time.Duration) error {
	d.mu.Lock()
	defer d.mu.Unlock()
	if d.revoked == nil {
		d.revoked = map[string]time.Duration{}
	}
	d.revoked[tokenID] = ttl
	return nil
}

func (d *memoryDenylist) IsRevoked(_ context.Context, tokenID string) (bool, error) {
	d.mu.Lock()
	defer d.mu.Unlock()
	_, ok := d.revoked[tokenID]
	return ok, nil
}

// clock is a settable time source for the token service.
type clock struct{ current time.Time }

func (c *clock) Now() time.Time { return c.current }

func newTokens(t *testing.T, c *clock) *sec.SessionTokenService {
	t.Helper()
	tokens, err := sec.NewSessionTokenService(
		[]byte("0123456789abcdef0123456789abcdef"), "dishdiary.test", time.Hour, sec.WithClock(c.Now))
	require.NoError(t, err)
	return tokens
}
