// Copyright (c) 2026 Yomira. All rights reserved.
// Author: tai.buivan.jp@gmail.com

package schema

// KitchenArchiveTable represents the 'kitchen.archive' table
type KitchenArchiveTable struct {
	Table     string
	ID        string
	UserID    string
	RecipeID  string
	Title     string
	CookedAt  string
	Stars     string
	Note      string
	CreatedAt string
}

// KitchenArchive is the schema definition for kitchen.archive
var KitchenArchive = KitchenArchiveTable{
	Table:     "kitchen.archive",
	ID:        "id",
	UserID:    "userid",
	RecipeID:  "recipeid",
	Title:     "title",
	CookedAt:  "cookedat",
	Stars:     "stars",
	Note:      "note",
	CreatedAt: "createdat",
}

// Columns returns all standard column names
func (t KitchenArchiveTable) Columns() []string {
	return []string{t.ID, t.UserID, t.RecipeID, t.Title, t.CookedAt, t.Stars, t.Note, t.CreatedAt}
}
