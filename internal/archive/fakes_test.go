// Copyright (c) 2026 Yomira. All rights reserved.
// Author: tai.buivan.jp@gmail.com

package archive_test

import (
	"context"
	"errors"
	"slices"
	"sort"
	"sync"
	"time"

	"github.com/taibuivan/dishdiary/internal/archive"
	"github.com/taibuivan/dishdiary/internal/platform/apperr"
	"github.com/taibuivan/dishdiary/internal/recipe"
)

// memoryLedger is an in-memory [archive.Repository].
type memoryLedger struct {
	mu      sync.Mutex
	entries []*archive.Entry
}

func (m *memoryLedger) Create(_ context.Context, entry *archive.Entry) error {
	m.mu.Lock()
	defer m.mu.Unlock()
	entry.CreatedAt = time.Now().UTC()
	copied := *entry
	m.entries = append(m.entries, &copied)
	return nil
}

func (m *memoryLedger) ListByUser(_ context.Context, userID, recipeID string, limit, offset int) ([]*archive.Entry, int, error) {
	m.mu.Lock()
	defer m.mu.Unlock()
	var out []*archive.Entry
	for _, entry := range m.entries {
		if entry.UserID != userID || (recipeID != "" && (entry.RecipeID == nil || *entry.RecipeID != recipeID)) {
			continue
		}
		copied := *entry
		out = append(out, &copied)
	}
	sort.SliceStable(out, func(i, j int) bool { return out[i].CookedAt.After(out[j].CookedAt) })

	total := len(out)
	if offset >= total {
		return []*archive.Entry{}, total, nil
	}
	return out[offset:min(offset+limit, total)], total, nil
}

func (m *memoryLedger) DeleteOne(_ context.Context, userID, id string) error {
	m.mu.Lock()
	defer m.mu.Unlock()
	before := len(m.entries)
	m.entries = slices.DeleteFunc(m.entries, func(e *archive.Entry) bool {
		return e.ID == id && e.UserID == userID
	})
	if len(m.entries) == before {
		return apperr.NotFound("Archive entry")
	}
	return nil
}

func (m *memoryLedger) DeleteAll(_ context.Context, userID string) (int64, error) {
	m.mu.Lock()
	defer m.mu.Unlock()
	before := len(m.entries)
	m.entries = slices.DeleteFunc(m.entries, func(e *archive.Entry) bool { return e.UserID == userID })
	return int64(before - len(m.entries)), nil
}

// unlink clears the recipe link of every entry, as ON DELETE SET NULL does.
func (m *memoryLedger) unlink(recipeID string) {
	m.mu.Lock()
	defer m.mu.Unlock()
	for _, entry := range m.entries {
		if entry.RecipeID != nil && *entry.RecipeID == recipeID {
			entry.RecipeID = nil
		}
	}
}

// kitchenRepo is a [recipe.Repository] whose Delete reaches into the ledger
// the way the kitchen.archive foreign key does.
type kitchenRepo struct {
	mu     sync.Mutex
	byID   map[string]*recipe.Recipe
	ledger *memoryLedger
}

func newKitchenRepo(ledger *memoryLedger) *kitchenRepo {
	return &kitchenRepo{byID: map[string]*recipe.Recipe{}, ledger: ledger}
}

func (k *kitchenRepo) list(match func(*recipe.Recipe) bool, limit, offset int) ([]*recipe.Recipe, int, error) {
	k.mu.Lock()
	defer k.mu.Unlock()
	var out []*recipe.Recipe
	for _, r := range k.byID {
		if match(r) {
			copied := *r
			out = append(out, &copied)
		}
	}
	total := len(out)
	if offset >= total {
		return []*recipe.Recipe{}, total, nil
	}
	return out[offset:min(offset+limit, total)], total, nil
}

func (k *kitchenRepo) ListByOwner(_ context.Context, ownerID string, _ recipe.Filter, limit, offset int) ([]*recipe.Recipe, int, error) {
	return k.list(func(r *recipe.Recipe) bool { return r.OwnerID == ownerID }, limit, offset)
}

func (k *kitchenRepo) ListPublic(_ context.Context, _ recipe.Filter, limit, offset int) ([]*recipe.Recipe, int, error) {
	return k.list(func(r *recipe.Recipe) bool { return r.IsPublic }, limit, offset)
}

func (k *kitchenRepo) FindByID(_ context.Context, id string) (*recipe.Recipe, error) {
	k.mu.Lock()
	defer k.mu.Unlock()
	r, ok := k.byID[id]
	if !ok {
		return nil, recipe.ErrNotFound()
	}
	copied := *r
	return &copied, nil
}

func (k *kitchenRepo) Create(_ context.Context, r *recipe.Recipe) error {
	k.mu.Lock()
	defer k.mu.Unlock()
	copied := *r
	k.byID[r.ID] = &copied
	return nil
}

func (k *kitchenRepo) Update(_ context.Context, r *recipe.Recipe) error {
	k.mu.Lock()
	defer k.mu.Unlock()
	if _, ok := k.byID[r.ID]; !ok {
		return recipe.ErrNotFound()
	}
	copied := *r
	k.byID[r.ID] = &copied
	return nil
}

func (k *kitchenRepo) Delete(_ context.Context, id string) error {
	k.mu.Lock()
	_, ok := k.byID[id]
	delete(k.byID, id)
	k.mu.Unlock()
	if !ok {
		return recipe.ErrNotFound()
	}
	k.ledger.unlink(id)
	return nil
}

func (k *kitchenRepo) AppendCookDate(_ context.Context, id string, cookedAt time.Time) error {
	k.mu.Lock()
	defer k.mu.Unlock()
	r, ok := k.byID[id]
	if !ok {
		return recipe.ErrNotFound()
	}
	r.Cooked = append(r.Cooked, cookedAt)
	return nil
}

// fakeRecipes is an [archive.RecipeSource] that applies the real visibility policy.
type fakeRecipes struct {
	mu        sync.Mutex
	byID      map[string]*recipe.Recipe
	appendErr error
}

func newFakeRecipes(recipes ...*recipe.Recipe) *fakeRecipes {
	f := &fakeRecipes{byID: map[string]*recipe.Recipe{}}
	for _, r := range recipes {
		f.byID[r.ID] = r
	}
	return f
}

func (f *fakeRecipes) Viewable(_ context.Context, callerID, id string) (*recipe.Recipe, error) {
	f.mu.Lock()
	defer f.mu.Unlock()
	r, ok := f.byID[id]
	if !ok {
		return nil, recipe.ErrNotFound()
	}
	if err := recipe.CheckRead(r, callerID); err != nil {
		return nil, err
	}
	copied := *r
	return &copied, nil
}

func (f *fakeRecipes) AppendCookDate(_ context.Context, id string, cookedAt time.Time) error {
	f.mu.Lock()
	defer f.mu.Unlock()
	if f.appendErr != nil {
		return f.appendErr
	}
	r, ok := f.byID[id]
	if !ok {
		return recipe.ErrNotFound()
	}
	r.Cooked = append(r.Cooked, cookedAt)
	return nil
}

func (f *fakeRecipes) cooked(id string) []time.Time {
	f.mu.Lock()
	defer f.mu.Unlock()
	return slices.Clone(f.byID[id].Cooked)
}

var errBoom = errors.New("boom")

// Fixed recipe IDs so HTTP paths validate as UUIDs.
const (
	publicRecipeID  = "0192f1a0-0000-7000-8000-000000000001"
	privateRecipeID = "0192f1a0-0000-7000-8000-000000000002"
)

func sampleRecipes() *fakeRecipes {
	return newFakeRecipes(
		&recipe.Recipe{ID: publicRecipeID, OwnerID: "alice", Title: "Bread", IsPublic: true},
		&recipe.Recipe{ID: privateRecipeID, OwnerID: "alice", Title: "Secret Stew", IsPublic: false},
	)
}
