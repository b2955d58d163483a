// Copyright (c) 2026 Yomira. All rights reserved.
// Author: tai.buivan.jp@gmail.com

package schema

// KitchenRecipeTable represents the 'kitchen.recipe' table
type KitchenRecipeTable struct {
	Table        string
	ID           string
	OwnerID      string
	Title        string
	TitleKey     string
	Author       string
	Description  string
	Ingredients  string
	Instructions string
	Duration     string
	Portion      string
	IsPublic     string
	ImageURL     string
	ImageKey     string
	Cooked       string
	CreatedAt    string
	UpdatedAt    string
}

// KitchenRecipe is the schema definition for kitchen.recipe
var KitchenRecipe = KitchenRecipeTable{
	Table:        "kitchen.recipe",
	ID:           "id",
	OwnerID:      "ownerid",
	Title:        "title",
	TitleKey:     "titlekey",
	Author:       "author",
	Description:  "description",
	Ingredients:  "ingredients",
	Instructions: "instructions",
	Duration:     "duration",
	Portion:      "portion",
	IsPublic:     "ispublic",
	ImageURL:     "imageurl",
	ImageKey:     "imagekey",
	Cooked:       "cooked",
	CreatedAt:    "createdat",
	UpdatedAt:    "updatedat",
}

// Columns returns the columns read by recipe queries, in scan order.
func (t KitchenRecipeTable) Columns() []string {
	return []string{
		t.ID, t.OwnerID, t.Title, t.Author, t.Description, t.Ingredients,
		t.Instructions, t.Duration, t.Portion, t.IsPublic, t.ImageURL,
		t.ImageKey, t.Cooked, t.CreatedAt, t.UpdatedAt,
	}
}
