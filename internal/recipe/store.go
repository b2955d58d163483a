// Copyright (c) 2026 Yomira. All rights reserved.
// Author: tai.buivan.jp@gmail.com

package recipe

import (
	"context"
	"time"
)

// Repository defines the data access contract for recipes.
//
// ListByOwner and ListPublic are separate queries: the visibility policy
// chooses which one runs rather than filtering a shared result.
type Repository interface {
	// ListByOwner returns the owner's recipes of both visibilities, newest
	// first, and the total count.
	ListByOwner(ctx context.Context, ownerID string, filter Filter, limit, offset int) ([]*Recipe, int, error)

	// ListPublic returns public recipes, newest first, and the total count.
	ListPublic(ctx context.Context, filter Filter, limit, offset int) ([]*Recipe, int, error)

	// FindByID returns NOT_FOUND when no recipe has the ID.
	FindByID(ctx context.Context, id string) (*Recipe, error)

	Create(ctx context.Context, r *Recipe) error

	// Update writes the mutable fields. The owner column is never written.
	Update(ctx context.Context, r *Recipe) error

	// Delete returns NOT_FOUND when no recipe has the ID. It never removes
	// archive entries; they are owned by the users who recorded them.
	Delete(ctx context.Context, id string) error

	// AppendCookDate atomically appends to the cook history. It returns
	// NOT_FOUND when the recipe no longer exists.
	AppendCookDate(ctx context.Context, id string, cookedAt time.Time) error
}
