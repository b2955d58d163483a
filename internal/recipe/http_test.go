// Copyright (c) 2026 Yomira. All rights reserved.
// Author: tai.buivan.jp@gmail.com

package recipe_test

import (
	"bytes"
	"context"
	"encoding/json"
	"mime/multipart"
	"net/http"
	"net/http/httptest"
	"strings"
	"testing"

	"github.com/go-chi/chi/v5"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/taibuivan/dishdiary/internal/platform/apperr"
	"github.com/taibuivan/dishdiary/internal/platform/constants"
	"github.com/taibuivan/dishdiary/internal/platform/middleware"
	"github.com/taibuivan/dishdiary/internal/platform/sec"
	"github.com/taibuivan/dishdiary/internal/recipe"
)

// tokenResolver treats the bearer token as the user ID.
type tokenResolver struct{}

func (tokenResolver) ResolveSession(_ context.Context, token string) (*sec.Identity, error) {
	return &sec.Identity{UserID: token, Name: token, Email: token + "@x.com"}, nil
}

type recipeFixture struct {
	router  http.Handler
	storage *fakeStorage
}

func newRecipeFixture(t *testing.T) *recipeFixture {
	t.Helper()

	service, _, storage := newService()
	guard := middleware.NewGuard(tokenResolver{}, "token")
	handler := recipe.NewHandler(service, guard, 1<<20)

	router := chi.NewRouter()
	router.Mount("/api/v1/recipes", handler.Routes())
	return &recipeFixture{router: router, storage: storage}
}

func (f *recipeFixture) do(method, path, user, body string) *httptest.ResponseRecorder {
	req := httptest.NewRequest(method, path, strings.NewReader(body))
	req.Header.Set(constants.HeaderContentType, "application/json")
	if user != "" {
		req.Header.Set(constants.HeaderAuthorization, "Bearer "+user)
	}
	rec := httptest.NewRecorder()
	f.router.ServeHTTP(rec, req)
	return rec
}

type recipeBody struct {
	Data     recipe.Recipe    `json:"data"`
	Warnings []apperr.Warning `json:"warnings"`
}

type listBody struct {
	Data []recipe.Recipe `json:"data"`
	Meta struct {
		Total int `json:"total"`
	} `json:"meta"`
}

func decode[T any](t *testing.T, rec *httptest.ResponseRecorder) T {
	t.Helper()
	var body T
	require.NoError(t, json.NewDecoder(rec.Body).Decode(&body))
	return body
}

const breadJSON = `{"title":"Bread","ingredients":"flour\nwater","instructions":["mix","bake"],"duration":45}`

/*
TestHTTP_PrivateRecipeScenario hides a private recipe from everyone but its owner.
*/
func TestHTTP_PrivateRecipeScenario(t *testing.T) {
	f := newRecipeFixture(t)

	rec := f.do(http.MethodPost, "/api/v1/recipes", "alice",
		`{"title":"Secret Stew","ingredients":["beef"],"instructions":["simmer"],"duration":120,"is_public":false}`)
	require.Equal(t, http.StatusCreated, rec.Code, rec.Body.String())
	created := decode[recipeBody](t, rec).Data
	assert.Equal(t, "alice", created.OwnerID)
	assert.False(t, created.IsPublic)

	path := "/api/v1/recipes/" + created.ID

	assert.Equal(t, http.StatusNotFound, f.do(http.MethodGet, path, "bob", "").Code)
	assert.Equal(t, http.StatusNotFound, f.do(http.MethodGet, path, "", "").Code)
	assert.Equal(t, http.StatusOK, f.do(http.MethodGet, path, "alice", "").Code)

	rec = f.do(http.MethodGet, "/api/v1/recipes", "", "")
	require.Equal(t, http.StatusOK, rec.Code)
	assert.Equal(t, 0, decode[listBody](t, rec).Meta.Total)

	rec = f.do(http.MethodGet, "/api/v1/recipes", "alice", "")
	require.Equal(t, http.StatusOK, rec.Code)
	assert.Equal(t, 1, decode[listBody](t, rec).Meta.Total)
}

/*
TestHTTP_NonOwnerCannotMutate answers FORBIDDEN on a public recipe.
*/
func TestHTTP_NonOwnerCannotMutate(t *testing.T) {
	f := newRecipeFixture(t)

	rec := f.do(http.MethodPost, "/api/v1/recipes", "alice", breadJSON)
	require.Equal(t, http.StatusCreated, rec.Code, rec.Body.String())
	created := decode[recipeBody](t, rec).Data
	assert.Equal(t, []string{"flour", "water"}, created.Ingredients)

	path := "/api/v1/recipes/" + created.ID

	assert.Equal(t, http.StatusForbidden, f.do(http.MethodPut, path, "bob", `{"title":"Mine"}`).Code)
	assert.Equal(t, http.StatusForbidden, f.do(http.MethodDelete, path, "bob", "").Code)
	assert.Equal(t, http.StatusUnauthorized, f.do(http.MethodDelete, path, "", "").Code)

	rec = f.do(http.MethodPut, path, "alice", `{"title":"Rye Bread"}`)
	require.Equal(t, http.StatusOK, rec.Code)
	assert.Equal(t, "Rye Bread", decode[recipeBody](t, rec).Data.Title)

	assert.Equal(t, http.StatusOK, f.do(http.MethodDelete, path, "alice", "").Code)
	assert.Equal(t, http.StatusNotFound, f.do(http.MethodGet, path, "alice", "").Code)
}

/*
TestHTTP_CreateValidation reports every missing required field.
*/
func TestHTTP_CreateValidation(t *testing.T) {
	f := newRecipeFixture(t)

	rec := f.do(http.MethodPost, "/api/v1/recipes", "alice", `{"title":"  ","duration":0}`)
	require.Equal(t, http.StatusBadRequest, rec.Code)

	body := rec.Body.String()
	for _, field := range []string{recipe.FieldTitle, recipe.FieldIngredients, recipe.FieldInstructions, recipe.FieldDuration} {
		assert.Contains(t, body, `"field":"`+field+`"`)
	}

	assert.Equal(t, http.StatusBadRequest, f.do(http.MethodGet, "/api/v1/recipes/not-a-uuid", "", "").Code)
}

/*
TestHTTP_PartialSuccessHeader marks an update whose old image survived.
*/
func TestHTTP_PartialSuccessHeader(t *testing.T) {
	f := newRecipeFixture(t)

	rec := f.postMultipart(t, "/api/v1/recipes", "alice", map[string]string{
		"title":        "Bread",
		"ingredients":  "flour\nwater",
		"instructions": "mix\nbake",
		"duration":     "45",
		"is_public":    "false",
	})
	require.Equal(t, http.StatusCreated, rec.Code, rec.Body.String())
	created := decode[recipeBody](t, rec).Data
	assert.False(t, created.IsPublic)
	assert.Contains(t, created.ImageURL, "https://cdn.example/")

	f.storage.deleteErr = errBoom
	rec = f.putMultipart(t, "/api/v1/recipes/"+created.ID, "alice", map[string]string{"portion": "2"})
	require.Equal(t, http.StatusOK, rec.Code, rec.Body.String())
	assert.Equal(t, "true", rec.Header().Get(constants.HeaderPartialSuccess))

	body := decode[recipeBody](t, rec)
	assert.Equal(t, 2, body.Data.Portion)
	require.Len(t, body.Warnings, 1)
	assert.Equal(t, recipe.WarningImageCleanup, body.Warnings[0].Code)
}

/*
TestHTTP_MultipartBadNumber rejects unparseable form numbers.
*/
func TestHTTP_MultipartBadNumber(t *testing.T) {
	f := newRecipeFixture(t)

	rec := f.postMultipart(t, "/api/v1/recipes", "alice", map[string]string{
		"title":    "Bread",
		"duration": "an hour",
	})
	assert.Equal(t, http.StatusBadRequest, rec.Code)
	assert.Contains(t, rec.Body.String(), `"field":"duration"`)
}

func (f *recipeFixture) postMultipart(t *testing.T, path, user string, fields map[string]string) *httptest.ResponseRecorder {
	return f.multipart(t, http.MethodPost, path, user, fields)
}

func (f *recipeFixture) putMultipart(t *testing.T, path, user string, fields map[string]string) *httptest.ResponseRecorder {
	return f.multipart(t, http.MethodPut, path, user, fields)
}

// multipart sends fields plus a small "image" file part.
func (f *recipeFixture) multipart(t *testing.T, method, path, user string, fields map[string]string) *httptest.ResponseRecorder {
	t.Helper()

	var buf bytes.Buffer
	writer := multipart.NewWriter(&buf)
	for key, value := range fields {
		require.NoError(t, writer.WriteField(key, value))
	}
	part, err := writer.CreateFormFile("image", "dish.jpg")
	require.NoError(t, err)
	_, err = part.Write([]byte("jpeg-bytes"))
	require.NoError(t, err)
	require.NoError(t, writer.Close())

	req := httptest.NewRequest(method, path, &buf)
	req.Header.Set(constants.HeaderContentType, writer.FormDataContentType())
	req.Header.Set(constants.HeaderAuthorization, "Bearer "+user)
	rec := httptest.NewRecorder()
	f.router.ServeHTTP(rec, req)
	return rec
}
