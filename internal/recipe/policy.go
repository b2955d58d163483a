// Copyright (c) 2026 Yomira. All rights reserved.
// Author: tai.buivan.jp@gmail.com

package recipe

import "github.com/taibuivan/dishdiary/internal/platform/apperr"

// # Ownership & Visibility
//
// Every function here is pure. An empty callerID means an anonymous caller.

// CanRead reports whether the caller may see the recipe: public recipes are
// visible to everyone, private ones only to their owner.
func CanRead(r *Recipe, callerID string) bool {
	return r.IsPublic || (callerID != "" && callerID == r.OwnerID)
}

// CanMutate reports whether the caller may edit or delete the recipe.
func CanMutate(r *Recipe, callerID string) bool {
	return callerID != "" && callerID == r.OwnerID
}

// ListScope names the query a listing issues.
type ListScope int

const (
	// ScopePublic lists every recipe with is_public set.
	ScopePublic ListScope = iota
	// ScopeOwner lists the caller's own recipes of both visibilities.
	ScopeOwner
)

// ScopeFor picks the listing query for a caller.
func ScopeFor(callerID string) ListScope {
	if callerID == "" {
		return ScopePublic
	}
	return ScopeOwner
}

// ErrNotFound hides private recipes and missing ones behind the same error.
func ErrNotFound() *apperr.AppError {
	return apperr.NotFound("Recipe")
}

// ErrForbidden is returned when a non-owner tries to change a recipe.
func ErrForbidden() *apperr.AppError {
	return apperr.Forbidden("Only the owner can change this recipe")
}

// CheckRead returns NOT_FOUND unless the caller may read the recipe.
func CheckRead(r *Recipe, callerID string) error {
	if !CanRead(r, callerID) {
		return ErrNotFound()
	}
	return nil
}

// CheckMutate returns FORBIDDEN unless the caller owns the recipe.
func CheckMutate(r *Recipe, callerID string) error {
	if !CanMutate(r, callerID) {
		return ErrForbidden()
	}
	return nil
}
