// Copyright (c) 2026 Yomira. All rights reserved.
// Author: tai.buivan.jp@gmail.com

package archive

import "context"

// Repository defines the data access contract for archive entries.
//
// Every query is scoped by user: an entry that exists but belongs to someone
// else is indistinguishable from one that does not exist.
type Repository interface {
	Create(ctx context.Context, entry *Entry) error

	// ListByUser returns the user's entries, latest cook date first. An
	// empty recipeID lists entries for every recipe.
	ListByUser(ctx context.Context, userID, recipeID string, limit, offset int) ([]*Entry, int, error)

	// DeleteOne returns NOT_FOUND unless the entry exists and belongs to userID.
	DeleteOne(ctx context.Context, userID, id string) error

	// DeleteAll removes every entry of the user and returns how many went.
	DeleteAll(ctx context.Context, userID string) (int64, error)
}
