// Copyright (c) 2026 Yomira. All rights reserved.
// Author: tai.buivan.jp@gmail.com

package recipe

import (
	"errors"
	"net/http"
	"strings"

	"github.com/go-chi/chi/v5"

	"github.com/taibuivan/dishdiary/internal/platform/apperr"
	"github.com/taibuivan/dishdiary/internal/platform/constants"
	"github.com/taibuivan/dishdiary/internal/platform/ctxutil"
	"github.com/taibuivan/dishdiary/internal/platform/media"
	"github.com/taibuivan/dishdiary/internal/platform/middleware"
	requestutil "github.com/taibuivan/dishdiary/internal/platform/request"
	"github.com/taibuivan/dishdiary/internal/platform/respond"
	"github.com/taibuivan/dishdiary/internal/platform/validate"
	"github.com/taibuivan/dishdiary/pkg/convert"
	"github.com/taibuivan/dishdiary/pkg/pagination"
)

// multipartMemory is how much of a multipart body is buffered in memory
// before spilling to temporary files.
const multipartMemory = 1 << 20

// # Definitions & Constructors

// Handler implements the recipe endpoints.
type Handler struct {
	recipeService  *Service
	guard          *middleware.Guard
	uploadMaxBytes int64
}

// NewHandler constructs a new [Handler]. uploadMaxBytes caps multipart bodies.
func NewHandler(service *Service, guard *middleware.Guard, uploadMaxBytes int64) *Handler {
	return &Handler{recipeService: service, guard: guard, uploadMaxBytes: uploadMaxBytes}
}

// Routes returns a [chi.Router] configured with recipe routes.
//
// # Endpoints
//   - GET    /        : Caller's own recipes, or public ones when anonymous.
//   - GET    /public  : Public recipes.
//   - GET    /{id}    : One recipe the caller may read.
//   - POST   /        : Creates a recipe (JSON or multipart with "image").
//   - PUT    /{id}    : Updates a recipe the caller owns.
//   - DELETE /{id}    : Deletes a recipe the caller owns.
func (handler *Handler) Routes() chi.Router {
	router := chi.NewRouter()

	router.Get("/public", handler.listPublic)

	router.Group(func(r chi.Router) {
		r.Use(handler.guard.Optional)
		r.Get("/", handler.list)
		r.Get("/{id}", handler.get)
	})

	router.Group(func(r chi.Router) {
		r.Use(handler.guard.Required)
		r.Post("/", handler.create)
		r.Put("/{id}", handler.update)
		r.Delete("/{id}", handler.delete)
	})

	return router
}

// # Request Payloads

type recipeRequest struct {
	Title        *string `json:"title"`
	Author       *string `json:"author"`
	Description  *string `json:"description"`
	Ingredients  Lines   `json:"ingredients"`
	Instructions Lines   `json:"instructions"`
	Duration     *int    `json:"duration"`
	Portion      *int    `json:"portion"`
	IsPublic     *bool   `json:"is_public"`
}

func (req recipeRequest) input() Input {
	return Input{
		Title:        req.Title,
		Author:       req.Author,
		Description:  req.Description,
		Ingredients:  req.Ingredients,
		Instructions: req.Instructions,
		Duration:     req.Duration,
		Portion:      req.Portion,
		IsPublic:     req.IsPublic,
	}
}

// # Handlers

/*
GET /api/v1/recipes

Query: q (title search), page, limit.
*/
func (handler *Handler) list(writer http.ResponseWriter, request *http.Request) {
	params := pagination.FromRequest(request)

	recipes, total, err := handler.recipeService.List(request.Context(),
		ctxutil.CallerID(request.Context()), filterFrom(request), params.Limit, params.Offset())
	if err != nil {
		respond.Error(writer, request, err)
		return
	}

	respond.Paginated(writer, recipes, pagination.NewMeta(params, total))
}

/*
GET /api/v1/recipes/public
*/
func (handler *Handler) listPublic(writer http.ResponseWriter, request *http.Request) {
	params := pagination.FromRequest(request)

	recipes, total, err := handler.recipeService.ListPublic(request.Context(),
		filterFrom(request), params.Limit, params.Offset())
	if err != nil {
		respond.Error(writer, request, err)
		return
	}

	respond.Paginated(writer, recipes, pagination.NewMeta(params, total))
}

/*
GET /api/v1/recipes/{id}

Response:
  - 200: The recipe
  - 404: Missing, or private and not owned by the caller
*/
func (handler *Handler) get(writer http.ResponseWriter, request *http.Request) {
	id, err := requestutil.UUIDParam(request, "id")
	if err != nil {
		respond.Error(writer, request, err)
		return
	}

	r, err := handler.recipeService.Get(request.Context(), ctxutil.CallerID(request.Context()), id)
	if err != nil {
		respond.Error(writer, request, err)
		return
	}

	respond.OK(writer, r)
}

/*
POST /api/v1/recipes

Response:
  - 201: The created recipe
  - 400: Validation failure or unsupported image
  - 413: Body over the upload limit
  - 503: Image sent but uploads are not configured
*/
func (handler *Handler) create(writer http.ResponseWriter, request *http.Request) {
	identity, err := requestutil.RequiredIdentity(request)
	if err != nil {
		respond.Error(writer, request, err)
		return
	}

	input, release, err := handler.decode(writer, request)
	if err != nil {
		respond.Error(writer, request, err)
		return
	}
	defer release()

	if err := validateInput(input, true); err != nil {
		respond.Error(writer, request, err)
		return
	}

	r, err := handler.recipeService.Create(request.Context(), identity.UserID, input)
	if err != nil {
		respond.Error(writer, request, err)
		return
	}

	respond.Created(writer, r)
}

/*
PUT /api/v1/recipes/{id}

Only the fields present in the body change.

Response:
  - 200: The saved recipe, with warnings when the old image could not be removed
  - 403: Caller is not the owner
  - 404: Missing, or private and not owned by the caller
*/
func (handler *Handler) update(writer http.ResponseWriter, request *http.Request) {
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

	input, release, err := handler.decode(writer, request)
	if err != nil {
		respond.Error(writer, request, err)
		return
	}
	defer release()

	if err := validateInput(input, false); err != nil {
		respond.Error(writer, request, err)
		return
	}

	r, warnings, err := handler.recipeService.Update(request.Context(), identity.UserID, id, input)
	if err != nil {
		respond.Error(writer, request, err)
		return
	}

	respond.Result(writer, http.StatusOK, r, warnings)
}

/*
DELETE /api/v1/recipes/{id}

Response:
  - 200: {message}, with warnings when the image could not be removed
  - 403: Caller is not the owner
*/
func (handler *Handler) delete(writer http.ResponseWriter, request *http.Request) {
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

	warnings, err := handler.recipeService.Delete(request.Context(), identity.UserID, id)
	if err != nil {
		respond.Error(writer, request, err)
		return
	}

	respond.Result(writer, http.StatusOK, map[string]string{constants.FieldMessage: "Recipe deleted"}, warnings)
}

// # Decoding

/*
decode reads a JSON or multipart body into an [Input].

The returned release func closes the uploaded file and removes any temporary
multipart files; call it once the service is done with the input.
*/
func (handler *Handler) decode(writer http.ResponseWriter, request *http.Request) (Input, func(), error) {
	noop := func() {}

	contentType := strings.ToLower(request.Header.Get(constants.HeaderContentType))
	if !strings.HasPrefix(contentType, "multipart/form-data") {
		var body recipeRequest
		if err := requestutil.DecodeJSON(request, &body); err != nil {
			return Input{}, noop, err
		}
		return body.input(), noop, nil
	}

	request.Body = http.MaxBytesReader(writer, request.Body, handler.uploadMaxBytes)
	if err := request.ParseMultipartForm(multipartMemory); err != nil {
		var tooLarge *http.MaxBytesError
		if errors.As(err, &tooLarge) {
			return Input{}, noop, apperr.TooLarge(handler.uploadMaxBytes)
		}
		return Input{}, noop, apperr.Malformed("Invalid multipart form").WithCause(err)
	}
	form := request.MultipartForm
	release := func() { _ = form.RemoveAll() }

	input, err := formInput(form.Value)
	if err != nil {
		release()
		return Input{}, noop, err
	}

	file, header, err := request.FormFile(media.FieldImage)
	switch {
	case errors.Is(err, http.ErrMissingFile):
		return input, release, nil
	case err != nil:
		release()
		return Input{}, noop, apperr.Malformed("Image could not be read").WithCause(err)
	}

	input.Image = &media.Upload{Filename: header.Filename, Size: header.Size, Body: file}
	return input, func() {
		_ = file.Close()
		release()
	}, nil
}

// formInput maps multipart text fields. Absent fields stay nil.
func formInput(values map[string][]string) (Input, error) {
	var input Input
	validator := &validate.Validator{}

	text := func(key string) *string {
		if v, ok := values[key]; ok && len(v) > 0 {
			return &v[0]
		}
		return nil
	}
	lines := func(key string) Lines {
		v, ok := values[key]
		if !ok {
			return nil
		}
		if len(v) == 1 {
			return SplitLines(v[0])
		}
		return clean(v)
	}

	input.Title = text(FieldTitle)
	input.Author = text(FieldAuthor)
	input.Description = text(FieldDescription)
	input.Ingredients = lines(FieldIngredients)
	input.Instructions = lines(FieldInstructions)

	var err error
	if raw := text(FieldDuration); raw != nil {
		input.Duration, err = convert.OptionalInt(*raw)
		validator.Custom(FieldDuration, err != nil, "Must be a whole number of minutes")
	}
	if raw := text(FieldPortion); raw != nil {
		input.Portion, err = convert.OptionalInt(*raw)
		validator.Custom(FieldPortion, err != nil, "Must be a whole number")
	}
	if raw := text(FieldIsPublic); raw != nil {
		input.IsPublic, err = convert.OptionalBool(*raw)
		validator.Custom(FieldIsPublic, err != nil, "Must be true or false")
	}

	return input, validator.Err()
}

func filterFrom(request *http.Request) Filter {
	return Filter{Query: strings.TrimSpace(request.URL.Query().Get("q"))}
}

// # Validation

// validateInput checks the provided fields. creating additionally requires
// title, ingredients, instructions and duration.
func validateInput(input Input, creating bool) error {
	validator := &validate.Validator{}

	if creating {
		validator.Custom(FieldTitle, input.Title == nil, "This field is required").
			NonEmptyList(FieldIngredients, input.Ingredients).
			NonEmptyList(FieldInstructions, input.Instructions).
			Custom(FieldDuration, input.Duration == nil, "This field is required")
	} else {
		validator.Custom(FieldIngredients, input.Ingredients != nil && len(input.Ingredients) == 0, "At least one entry is required").
			Custom(FieldInstructions, input.Instructions != nil && len(input.Instructions) == 0, "At least one entry is required")
	}

	if input.Title != nil {
		validator.Required(FieldTitle, *input.Title).MaxLen(FieldTitle, *input.Title, MaxTitleLength)
	}
	if input.Author != nil {
		validator.MaxLen(FieldAuthor, *input.Author, MaxAuthorLength)
	}
	if input.Description != nil {
		validator.MaxLen(FieldDescription, *input.Description, MaxDescriptionLength)
	}
	if input.Duration != nil {
		validator.Range(FieldDuration, *input.Duration, 1, MaxDuration)
	}
	if input.Portion != nil {
		validator.Range(FieldPortion, *input.Portion, 1, MaxPortion)
	}

	validator.MaxItems(FieldIngredients, input.Ingredients, MaxLines).
		MaxItems(FieldInstructions, input.Instructions, MaxLines)
	for _, line := range input.Ingredients {
		validator.MaxLen(FieldIngredients, line, MaxLineLength)
	}
	for _, line := range input.Instructions {
		validator.MaxLen(FieldInstructions, line, MaxLineLength)
	}

	return validator.Err()
}
