// Copyright (c) 2026 Yomira. All rights reserved.
// Author: tai.buivan.jp@gmail.com

package recipe_test

import (
	"context"
	"errors"
	"fmt"
	"io"
	"slices"
	"strings"
	"sync"
	"time"

	"github.com/taibuivan/dishdiary/internal/platform/media"
	"github.com/taibuivan/dishdiary/internal/recipe"
	"github.com/taibuivan/dishdiary/pkg/slug"
)

// memoryRepo is an in-memory [recipe.Repository]. Listings are newest first.
type memoryRepo struct {
	mu        sync.Mutex
	byID      map[string]*recipe.Recipe
	order     []string
	updateErr error
	createErr error
}

func newMemoryRepo() *memoryRepo {
	return &memoryRepo{byID: map[string]*recipe.Recipe{}}
}

func (m *memoryRepo) list(match func(*recipe.Recipe) bool, filter recipe.Filter, limit, offset int) []*recipe.Recipe {
	key := slug.From(filter.Query)
	var out []*recipe.Recipe
	for i := len(m.order) - 1; i >= 0; i-- {
		r := m.byID[m.order[i]]
		if !match(r) || !strings.Contains(slug.From(r.Title), key) {
			continue
		}
		copied := *r
		out = append(out, &copied)
	}
	total := len(out)
	if offset >= total {
		return nil
	}
	return out[offset:min(offset+limit, total)]
}

func (m *memoryRepo) ListByOwner(_ context.Context, ownerID string, filter recipe.Filter, limit, offset int) ([]*recipe.Recipe, int, error) {
	m.mu.Lock()
	defer m.mu.Unlock()
	match := func(r *recipe.Recipe) bool { return r.OwnerID == ownerID }
	all := m.list(match, filter, len(m.order), 0)
	return m.list(match, filter, limit, offset), len(all), nil
}

func (m *memoryRepo) ListPublic(_ context.Context, filter recipe.Filter, limit, offset int) ([]*recipe.Recipe, int, error) {
	m.mu.Lock()
	defer m.mu.Unlock()
	match := func(r *recipe.Recipe) bool { return r.IsPublic }
	all := m.list(match, filter, len(m.order), 0)
	return m.list(match, filter, limit, offset), len(all), nil
}

func (m *memoryRepo) FindByID(_ context.Context, id string) (*recipe.Recipe, error) {
	m.mu.Lock()
	defer m.mu.Unlock()
	r, ok := m.byID[id]
	if !ok {
		return nil, recipe.ErrNotFound()
	}
	copied := *r
	return &copied, nil
}

func (m *memoryRepo) Create(_ context.Context, r *recipe.Recipe) error {
	m.mu.Lock()
	defer m.mu.Unlock()
	if m.createErr != nil {
		return m.createErr
	}
	r.CreatedAt = time.Now().UTC()
	r.UpdatedAt = r.CreatedAt
	r.Cooked = []time.Time{}
	copied := *r
	m.byID[r.ID] = &copied
	m.order = append(m.order, r.ID)
	return nil
}

func (m *memoryRepo) Update(_ context.Context, r *recipe.Recipe) error {
	m.mu.Lock()
	defer m.mu.Unlock()
	if m.updateErr != nil {
		return m.updateErr
	}
	existing, ok := m.byID[r.ID]
	if !ok {
		return recipe.ErrNotFound()
	}
	copied := *r
	copied.OwnerID = existing.OwnerID
	copied.Cooked = existing.Cooked
	m.byID[r.ID] = &copied
	return nil
}

func (m *memoryRepo) Delete(_ context.Context, id string) error {
	m.mu.Lock()
	defer m.mu.Unlock()
	if _, ok := m.byID[id]; !ok {
		return recipe.ErrNotFound()
	}
	delete(m.byID, id)
	m.order = slices.DeleteFunc(m.order, func(v string) bool { return v == id })
	return nil
}

func (m *memoryRepo) AppendCookDate(_ context.Context, id string, cookedAt time.Time) error {
	m.mu.Lock()
	defer m.mu.Unlock()
	r, ok := m.byID[id]
	if !ok {
		return recipe.ErrNotFound()
	}
	r.Cooked = append(r.Cooked, cookedAt.UTC())
	return nil
}

func (m *memoryRepo) stored(id string) *recipe.Recipe {
	m.mu.Lock()
	defer m.mu.Unlock()
	return m.byID[id]
}

// fakeStorage records uploads and deletes without touching a network.
type fakeStorage struct {
	mu        sync.Mutex
	next      int
	live      map[string]bool
	deleted   []string
	deleteErr error
}

func newFakeStorage() *fakeStorage {
	return &fakeStorage{live: map[string]bool{}}
}

func (f *fakeStorage) Upload(_ context.Context, upload media.Upload) (*media.Object, error) {
	if _, err := io.ReadAll(upload.Body); err != nil {
		return nil, err
	}
	f.mu.Lock()
	defer f.mu.Unlock()
	f.next++
	key := fmt.Sprintf("dish-diary/img-%d.jpg", f.next)
	f.live[key] = true
	return &media.Object{Key: key, URL: "https://cdn.example/" + key, ContentType: "image/jpeg"}, nil
}

func (f *fakeStorage) Delete(_ context.Context, key string) error {
	f.mu.Lock()
	defer f.mu.Unlock()
	if f.deleteErr != nil {
		return f.deleteErr
	}
	delete(f.live, key)
	f.deleted = append(f.deleted, key)
	return nil
}

func (f *fakeStorage) isLive(key string) bool {
	f.mu.Lock()
	defer f.mu.Unlock()
	return f.live[key]
}

var errBoom = errors.New("boom")
