// Copyright (c) 2026 Yomira. All rights reserved.
// Author: tai.buivan.jp@gmail.com

/*
Package recipe owns recipes: their storage, the ownership and visibility
policy, and the HTTP endpoints.

Writes that touch both the database and the image host commit the database
first. A failed image cleanup after a successful write is reported to the
client as a warning rather than an error.
*/
package recipe

import (
	"context"
	"log/slog"
	"strings"
	"time"

	"github.com/taibuivan/dishdiary/internal/platform/apperr"
	"github.com/taibuivan/dishdiary/internal/platform/ctxutil"
	"github.com/taibuivan/dishdiary/internal/platform/media"
	"github.com/taibuivan/dishdiary/pkg/pointer"
	"github.com/taibuivan/dishdiary/pkg/uuid"
)

// WarningImageCleanup flags an image that could not be removed from the host.
const WarningImageCleanup = "IMAGE_CLEANUP_FAILED"

// Service implements recipe business logic.
type Service struct {
	repo         Repository
	storage      media.Storage
	defaultImage string
}

// NewService constructs a new [Service]. defaultImage is the URL given to
// recipes created without an image.
func NewService(repo Repository, storage media.Storage, defaultImage string) *Service {
	return &Service{repo: repo, storage: storage, defaultImage: defaultImage}
}

// Input carries the client-supplied fields of a create or update.
//
// A nil field is left unchanged on update and defaulted on create.
type Input struct {
	Title        *string
	Author       *string
	Description  *string
	Ingredients  Lines
	Instructions Lines
	Duration     *int
	Portion      *int
	IsPublic     *bool
	Image        *media.Upload
}

// # Reads

/*
List returns the caller's own recipes, or public recipes for anonymous callers.

Returns:
  - []*Recipe: One page, newest first
  - int: Total across all pages
*/
func (service *Service) List(ctx context.Context, callerID string, filter Filter, limit, offset int) ([]*Recipe, int, error) {
	if ScopeFor(callerID) == ScopeOwner {
		return service.repo.ListByOwner(ctx, callerID, filter, limit, offset)
	}
	return service.repo.ListPublic(ctx, filter, limit, offset)
}

// ListPublic returns public recipes regardless of the caller.
func (service *Service) ListPublic(ctx context.Context, filter Filter, limit, offset int) ([]*Recipe, int, error) {
	return service.repo.ListPublic(ctx, filter, limit, offset)
}

// Get returns a recipe the caller may read. Private recipes of other users
// are reported as NOT_FOUND.
func (service *Service) Get(ctx context.Context, callerID, id string) (*Recipe, error) {
	r, err := service.repo.FindByID(ctx, id)
	if err != nil {
		return nil, err
	}
	if err := CheckRead(r, callerID); err != nil {
		return nil, err
	}
	return r, nil
}

// Viewable is [Service.Get] under the name the archive ledger uses.
func (service *Service) Viewable(ctx context.Context, callerID, id string) (*Recipe, error) {
	return service.Get(ctx, callerID, id)
}

// AppendCookDate adds one date to the recipe's cook history.
func (service *Service) AppendCookDate(ctx context.Context, id string, cookedAt time.Time) error {
	return service.repo.AppendCookDate(ctx, id, cookedAt)
}

// # Writes

/*
Create stores a recipe owned by the caller.

Description: An attached image is uploaded first. If the insert then fails
the upload is deleted again on a best-effort basis.
*/
func (service *Service) Create(ctx context.Context, callerID string, input Input) (*Recipe, error) {
	r := &Recipe{
		ID:           uuid.New(),
		OwnerID:      callerID,
		Title:        strings.TrimSpace(pointer.Or(input.Title, "")),
		Author:       strings.TrimSpace(pointer.Or(input.Author, "")),
		Description:  strings.TrimSpace(pointer.Or(input.Description, "")),
		Ingredients:  orEmpty(input.Ingredients),
		Instructions: orEmpty(input.Instructions),
		Duration:     pointer.Or(input.Duration, 0),
		Portion:      pointer.Or(input.Portion, DefaultPortion),
		IsPublic:     pointer.Or(input.IsPublic, true),
		ImageURL:     service.defaultImage,
	}

	var uploaded *media.Object
	if input.Image != nil {
		object, err := service.storage.Upload(ctx, *input.Image)
		if err != nil {
			return nil, err
		}
		uploaded = object
		r.ImageURL, r.ImageKey = object.URL, object.Key
	}

	if err := service.repo.Create(ctx, r); err != nil {
		if uploaded != nil {
			service.discard(ctx, uploaded.Key, "recipe_create_failed")
		}
		return nil, err
	}

	ctxutil.GetLogger(ctx).InfoContext(ctx, "recipe_created",
		slog.String("recipe_id", r.ID),
		slog.String("user_id", callerID),
		slog.Bool("is_public", r.IsPublic),
	)

	return r, nil
}

/*
Update applies the provided fields to a recipe the caller owns.

Description: A replacement image is uploaded before the save and the old
one deleted after it. A failed save deletes the new upload; a failed delete
of the old image leaves the update committed and returns a warning.

Returns:
  - *Recipe: The saved recipe
  - []apperr.Warning: Non-fatal follow-up failures
  - error: NOT_FOUND, FORBIDDEN, or a storage/upload error
*/
func (service *Service) Update(ctx context.Context, callerID, id string, input Input) (*Recipe, []apperr.Warning, error) {
	r, err := service.Get(ctx, callerID, id)
	if err != nil {
		return nil, nil, err
	}
	if err := CheckMutate(r, callerID); err != nil {
		return nil, nil, err
	}

	apply(r, input)

	oldKey := r.ImageKey
	var uploaded *media.Object
	if input.Image != nil {
		object, err := service.storage.Upload(ctx, *input.Image)
		if err != nil {
			return nil, nil, err
		}
		uploaded = object
		r.ImageURL, r.ImageKey = object.URL, object.Key
	}

	if err := service.repo.Update(ctx, r); err != nil {
		if uploaded != nil {
			service.discard(ctx, uploaded.Key, "recipe_update_failed")
		}
		return nil, nil, err
	}

	var warnings []apperr.Warning
	if uploaded != nil && oldKey != "" {
		if w := service.cleanup(ctx, r.ID, oldKey); w != nil {
			warnings = append(warnings, *w)
		}
	}

	ctxutil.GetLogger(ctx).InfoContext(ctx, "recipe_updated",
		slog.String("recipe_id", r.ID),
		slog.String("user_id", callerID),
		slog.Bool("image_replaced", uploaded != nil),
	)

	return r, warnings, nil
}

// Delete removes a recipe the caller owns together with its hosted image.
// Archive entries other users recorded against it are kept.
func (service *Service) Delete(ctx context.Context, callerID, id string) ([]apperr.Warning, error) {
	r, err := service.Get(ctx, callerID, id)
	if err != nil {
		return nil, err
	}
	if err := CheckMutate(r, callerID); err != nil {
		return nil, err
	}

	if err := service.repo.Delete(ctx, id); err != nil {
		return nil, err
	}

	var warnings []apperr.Warning
	if r.ImageKey != "" {
		if w := service.cleanup(ctx, r.ID, r.ImageKey); w != nil {
			warnings = append(warnings, *w)
		}
	}

	ctxutil.GetLogger(ctx).InfoContext(ctx, "recipe_deleted",
		slog.String("recipe_id", id),
		slog.String("user_id", callerID),
	)

	return warnings, nil
}

// # Helpers

func apply(r *Recipe, input Input) {
	if input.Title != nil {
		r.Title = strings.TrimSpace(*input.Title)
	}
	if input.Author != nil {
		r.Author = strings.TrimSpace(*input.Author)
	}
	if input.Description != nil {
		r.Description = strings.TrimSpace(*input.Description)
	}
	if input.Ingredients != nil {
		r.Ingredients = input.Ingredients
	}
	if input.Instructions != nil {
		r.Instructions = input.Instructions
	}
	if input.Duration != nil {
		r.Duration = *input.Duration
	}
	if input.Portion != nil {
		r.Portion = *input.Portion
	}
	if input.IsPublic != nil {
		r.IsPublic = *input.IsPublic
	}
}

func orEmpty(lines Lines) []string {
	if lines == nil {
		return []string{}
	}
	return lines
}

// cleanup deletes an image that is no longer referenced and turns a failure
// into a warning.
func (service *Service) cleanup(ctx context.Context, recipeID, key string) *apperr.Warning {
	if err := service.storage.Delete(ctx, key); err != nil {
		ctxutil.GetLogger(ctx).WarnContext(ctx, "recipe_image_cleanup_failed",
			slog.String("recipe_id", recipeID),
			slog.String("image_key", key),
			slog.Any("error", err),
		)
		return &apperr.Warning{
			Code:    WarningImageCleanup,
			Message: "The previous image could not be removed from storage",
		}
	}
	return nil
}

// discard removes an upload whose database write failed.
func (service *Service) discard(ctx context.Context, key, reason string) {
	if err := service.storage.Delete(ctx, key); err != nil {
		ctxutil.GetLogger(ctx).ErrorContext(ctx, "recipe_orphaned_image",
			slog.String("image_key", key),
			slog.String("reason", reason),
			slog.Any("error", err),
		)
	}
}
