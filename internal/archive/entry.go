// Copyright (c) 2026 Yomira. All rights reserved.
// Author: tai.buivan.jp@gmail.com

/*
Package archive is the cooking ledger: one entry per time a user cooked a
recipe, with an optional rating and note.

Recording an entry also appends the cook date to the recipe's history. The
two writes are not atomic; when the second fails the entry stays and the
caller receives a warning.
*/
package archive

import "time"

// Entry is one cooking event. UserID is set from the authenticated caller.
//
// RecipeID becomes nil when the recipe is deleted; the entry belongs to its
// user and keeps its Title snapshot.
type Entry struct {
	ID        string    `json:"id"`
	UserID    string    `json:"user_id"`
	RecipeID  *string   `json:"recipe_id"`
	Title     string    `json:"title"`
	CookedAt  time.Time `json:"cooked_at"`
	Stars     *int      `json:"stars"`
	Note      string    `json:"note"`
	CreatedAt time.Time `json:"created_at"`
}

// # Field Identifiers

const (
	FieldRecipeID = "recipe_id"
	FieldTitle    = "title"
	FieldStars    = "stars"
	FieldNote     = "note"
	FieldCookedAt = "cooked_at"
)

// # Input Constraints

const (
	MinStars       = 0
	MaxStars       = 5
	MaxTitleLength = 200
	MaxNoteLength  = 2000
)
