// Copyright (c) 2026 Yomira. All rights reserved.
// Author: tai.buivan.jp@gmail.com

package archive

import (
	"net/http"
	"strings"
	"time"

	"github.com/go-chi/chi/v5"

	"github.com/taibuivan/dishdiary/internal/platform/apperr"
	"github.com/taibuivan/dishdiary/internal/platform/constants"
	"github.com/taibuivan/dishdiary/internal/platform/middleware"
	requestutil "github.com/taibuivan/dishdiary/internal/platform/request"
	"github.com/taibuivan/dishdiary/internal/platform/respond"
	"github.com/taibuivan/dishdiary/internal/platform/validate"
	"github.com/taibuivan/dishdiary/pkg/pagination"
	"github.com/taibuivan/dishdiary/pkg/pointer"
)

// Handler implements the archive endpoints.
type Handler struct {
	archiveService *Service
	guard          *middleware.Guard
}

// NewHandler constructs a new [Handler].
func NewHandler(service *Service, guard *middleware.Guard) *Handler {
	return &Handler{archiveService: service, guard: guard}
}

// Routes returns a [chi.Router] configured with archive routes. Every route
// requires a session.
//
// # Endpoints
//   - GET    /      : Caller's entries (optional ?recipe_id=).
//   - POST   /      : Records a cooking event.
//   - DELETE /{id}  : Deletes one of the caller's entries.
//   - DELETE /      : Deletes all of the caller's entries.
func (handler *Handler) Routes() chi.Router {
	router := chi.NewRouter()
	router.Use(handler.guard.Required)

	router.Get("/", handler.list)
	router.Post("/", handler.record)
	router.Delete("/{id}", handler.deleteOne)
	router.Delete("/", handler.deleteAll)

	return router
}

// recordRequest accepts "notes" and "comment" as other names for "note".
// The first one present wins, in that order.
type recordRequest struct {
	RecipeID string     `json:"recipe_id"`
	Title    string     `json:"title"`
	CookedAt *time.Time `json:"cooked_at"`
	Stars    *int       `json:"stars"`
	Note     *string    `json:"note"`
	Notes    *string    `json:"notes"`
	Comment  *string    `json:"comment"`
}

func (req recordRequest) note() string {
	for _, candidate := range []*string{req.Note, req.Notes, req.Comment} {
		if candidate != nil {
			return *candidate
		}
	}
	return ""
}

/*
GET /api/v1/archives

Query: recipe_id, page, limit.
*/
func (handler *Handler) list(writer http.ResponseWriter, request *http.Request) {
	identity, err := requestutil.RequiredIdentity(request)
	if err != nil {
		respond.Error(writer, request, err)
		return
	}

	recipeID := strings.TrimSpace(request.URL.Query().Get(FieldRecipeID))
	if recipeID != "" && !validate.IsUUID(recipeID) {
		respond.Error(writer, request, apperr.Malformed("Invalid "+FieldRecipeID))
		return
	}

	params := pagination.FromRequest(request)
	entries, total, err := handler.archiveService.ListMine(request.Context(), identity.UserID, recipeID, params.Limit, params.Offset())
	if err != nil {
		respond.Error(writer, request, err)
		return
	}

	respond.Paginated(writer, entries, pagination.NewMeta(params, total))
}

/*
POST /api/v1/archives

Response:
  - 201: The entry; with warnings and X-Partial-Success when the recipe's
    cook history could not be updated
  - 400: Validation failure
  - 404: Recipe missing or not visible to the caller
*/
func (handler *Handler) record(writer http.ResponseWriter, request *http.Request) {
	identity, err := requestutil.RequiredIdentity(request)
	if err != nil {
		respond.Error(writer, request, err)
		return
	}

	var input recordRequest
	if err := requestutil.DecodeJSON(request, &input); err != nil {
		respond.Error(writer, request, err)
		return
	}

	note := input.note()
	validator := &validate.Validator{}
	validator.Required(FieldRecipeID, input.RecipeID).
		Custom(FieldRecipeID, input.RecipeID != "" && !validate.IsUUID(input.RecipeID), "Must be a valid UUID").
		MaxLen(FieldTitle, input.Title, MaxTitleLength).
		MaxLen(FieldNote, note, MaxNoteLength)
	if input.Stars != nil {
		validator.Range(FieldStars, *input.Stars, MinStars, MaxStars)
	}

	if err := validator.Err(); err != nil {
		respond.Error(writer, request, err)
		return
	}

	entry, warnings, err := handler.archiveService.Record(request.Context(), identity.UserID, RecordInput{
		RecipeID: input.RecipeID,
		Title:    input.Title,
		CookedAt: pointer.Or(input.CookedAt, time.Time{}),
		Stars:    input.Stars,
		Note:     note,
	})
	if err != nil {
		respond.Error(writer, request, err)
		return
	}

	respond.Result(writer, http.StatusCreated, entry, warnings)
}

/*
DELETE /api/v1/archives/{id}

Response:
  - 204: Deleted
  - 404: No such entry owned by the caller
*/
func (handler *Handler) deleteOne(writer http.ResponseWriter, request *http.Request) {
	identity, err := requestutil.RequiredIdentity(request)
	if err != nil {
		respond.Error(writer, request, err)
		return
	}

	id, err := requestutil.UUIDParam(request, "id")
	if err != nil {
		respond.Error(writer, request, err)
		return
	}

	if err := handler.archiveService.DeleteOne(request.Context(), identity.UserID, id); err != nil {
		respond.Error(writer, request, err)
		return
	}

	respond.NoContent(writer)
}

/*
DELETE /api/v1/archives

Response:
  - 200: {deleted: n}, n may be 0
*/
func (handler *Handler) deleteAll(writer http.ResponseWriter, request *http.Request) {
	identity, err := requestutil.RequiredIdentity(request)
	if err != nil {
		respond.Error(writer, request, err)
		return
	}

	deleted, err := handler.archiveService.DeleteAll(request.Context(), identity.UserID)
	if err != nil {
		respond.Error(writer, request, err)
		return
	}

	respond.OK(writer, map[string]int64{constants.FieldDeleted: deleted})
}
