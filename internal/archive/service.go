// Copyright (c) 2026 Yomira. All rights reserved.
// Author: tai.buivan.jp@gmail.com

package archive

import (
	"context"
	"errors"
	"fmt"
	"log/slog"
	"strings"
	"time"

	"github.com/taibuivan/dishdiary/internal/platform/apperr"
	"github.com/taibuivan/dishdiary/internal/platform/ctxutil"
	"github.com/taibuivan/dishdiary/internal/recipe"
	"github.com/taibuivan/dishdiary/pkg/pointer"
	"github.com/taibuivan/dishdiary/pkg/uuid"
)

// ErrDenormalizeFailed marks an entry that was stored while the recipe's
// cook history could not be updated.
var ErrDenormalizeFailed = errors.New("archive: cook history not updated")

// WarningCookHistory is the warning code for [ErrDenormalizeFailed].
const WarningCookHistory = "COOK_HISTORY_NOT_UPDATED"

// RecipeSource is the part of the recipe service the ledger depends on.
type RecipeSource interface {
	Viewable(ctx context.Context, callerID, id string) (*recipe.Recipe, error)
	AppendCookDate(ctx context.Context, id string, cookedAt time.Time) error
}

// Service implements the archive ledger.
type Service struct {
	repo    Repository
	recipes RecipeSource
	now     func() time.Time
}

// NewService constructs a new [Service].
func NewService(repo Repository, recipes RecipeSource) *Service {
	return &Service{repo: repo, recipes: recipes, now: time.Now}
}

// RecordInput describes one cooking event. Zero CookedAt means now and an
// empty Title falls back to the recipe's title.
type RecordInput struct {
	RecipeID string
	Title    string
	CookedAt time.Time
	Stars    *int
	Note     string
}

/*
Record stores an entry for the caller and appends its date to the recipe.

Description: The recipe must be readable by the caller. Once the entry is
stored the request has succeeded; a failed history append is logged and
returned as a warning, not retried.

Returns:
  - *Entry: The stored entry
  - []apperr.Warning: Set when the cook history was not updated
  - error: NOT_FOUND if the recipe is missing or hidden, or a storage error
*/
func (service *Service) Record(ctx context.Context, callerID string, input RecordInput) (*Entry, []apperr.Warning, error) {
	r, err := service.recipes.Viewable(ctx, callerID, input.RecipeID)
	if err != nil {
		return nil, nil, err
	}

	entry := &Entry{
		ID:       uuid.New(),
		UserID:   callerID,
		RecipeID: pointer.To(r.ID),
		Title:    strings.TrimSpace(input.Title),
		CookedAt: input.CookedAt,
		Stars:    input.Stars,
		Note:     strings.TrimSpace(input.Note),
	}
	if entry.Title == "" {
		entry.Title = r.Title
	}
	if entry.CookedAt.IsZero() {
		entry.CookedAt = service.now()
	}
	entry.CookedAt = entry.CookedAt.UTC()

	if err := service.repo.Create(ctx, entry); err != nil {
		return nil, nil, err
	}

	logger := ctxutil.GetLogger(ctx)
	logger.InfoContext(ctx, "archive_entry_recorded",
		slog.String("entry_id", entry.ID),
		slog.String("recipe_id", r.ID),
		slog.String("user_id", callerID),
	)

	if err := service.recipes.AppendCookDate(ctx, r.ID, entry.CookedAt); err != nil {
		logger.ErrorContext(ctx, "archive_denormalize_failed",
			slog.String("entry_id", entry.ID),
			slog.String("recipe_id", r.ID),
			slog.Any("error", fmt.Errorf("%w: %w", ErrDenormalizeFailed, err)),
		)
		return entry, []apperr.Warning{{
			Code:    WarningCookHistory,
			Message: "The entry was saved but the recipe's cook history could not be updated",
		}}, nil
	}

	return entry, nil, nil
}

// ListMine returns the caller's entries, latest cook date first, optionally
// for one recipe.
func (service *Service) ListMine(ctx context.Context, callerID, recipeID string, limit, offset int) ([]*Entry, int, error) {
	return service.repo.ListByUser(ctx, callerID, recipeID, limit, offset)
}

// DeleteOne removes one of the caller's entries. Entries of other users are
// reported as NOT_FOUND.
func (service *Service) DeleteOne(ctx context.Context, callerID, id string) error {
	if err := service.repo.DeleteOne(ctx, callerID, id); err != nil {
		return err
	}

	ctxutil.GetLogger(ctx).InfoContext(ctx, "archive_entry_deleted",
		slog.String("entry_id", id),
		slog.String("user_id", callerID),
	)
	return nil
}

// DeleteAll clears the caller's ledger and returns the number of entries removed.
func (service *Service) DeleteAll(ctx context.Context, callerID string) (int64, error) {
	deleted, err := service.repo.DeleteAll(ctx, callerID)
	if err != nil {
		return 0, err
	}

	ctxutil.GetLogger(ctx).InfoContext(ctx, "archive_cleared",
		slog.String("user_id", callerID),
		slog.Int64("deleted", deleted),
	)
	return deleted, nil
}
