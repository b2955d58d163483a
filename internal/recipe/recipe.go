// Copyright (c) 2026 Yomira. All rights reserved.
// Author: tai.buivan.jp@gmail.com

package recipe

import (
	"encoding/json"
	"strings"
	"time"
)

// Recipe is a dish owned by exactly one user.
//
// OwnerID is set once at creation from the authenticated caller and no
// operation reassigns it. Cooked only grows, through [Service.AppendCookDate].
type Recipe struct {
	ID           string      `json:"id"`
	OwnerID      string      `json:"owner_id"`
	Title        string      `json:"title"`
	Author       string      `json:"author"`
	Description  string      `json:"description"`
	Ingredients  []string    `json:"ingredients"`
	Instructions []string    `json:"instructions"`
	Duration     int         `json:"duration"`
	Portion      int         `json:"portion"`
	IsPublic     bool        `json:"is_public"`
	ImageURL     string      `json:"image_url"`
	ImageKey     string      `json:"-"`
	Cooked       []time.Time `json:"cooked"`
	CreatedAt    time.Time   `json:"created_at"`
	UpdatedAt    time.Time   `json:"updated_at"`
}

// Lines is an ordered list of ingredient or instruction lines.
//
// Clients may send a JSON array or one newline-separated string; blank lines
// are dropped either way.
type Lines []string

// UnmarshalJSON accepts either a string array or a single string. A JSON
// null leaves the value untouched.
func (l *Lines) UnmarshalJSON(data []byte) error {
	if string(data) == "null" {
		return nil
	}

	var text string
	if err := json.Unmarshal(data, &text); err == nil {
		*l = SplitLines(text)
		return nil
	}

	var items []string
	if err := json.Unmarshal(data, &items); err != nil {
		return err
	}
	*l = clean(items)
	return nil
}

// SplitLines splits text on newlines, trimming each line and dropping blanks.
func SplitLines(text string) Lines {
	return clean(strings.Split(strings.ReplaceAll(text, "\r\n", "\n"), "\n"))
}

func clean(items []string) Lines {
	lines := make(Lines, 0, len(items))
	for _, item := range items {
		if trimmed := strings.TrimSpace(item); trimmed != "" {
			lines = append(lines, trimmed)
		}
	}
	return lines
}

// Filter narrows a listing.
type Filter struct {
	// Query matches against the accent-folded title.
	Query string
}

// # Field Identifiers

const (
	FieldTitle        = "title"
	FieldAuthor       = "author"
	FieldDescription  = "description"
	FieldIngredients  = "ingredients"
	FieldInstructions = "instructions"
	FieldDuration     = "duration"
	FieldPortion      = "portion"
	FieldIsPublic     = "is_public"
)

// # Input Constraints

const (
	MaxTitleLength       = 200
	MaxAuthorLength      = 100
	MaxDescriptionLength = 5000
	MaxLines             = 100
	MaxLineLength        = 500
	MaxDuration          = 7 * 24 * 60 // minutes
	MaxPortion           = 100
	DefaultPortion       = 1
)
