// Copyright (c) 2026 Yomira. All rights reserved.
// Author: tai.buivan.jp@gmail.com

package archive_test

import (
	"context"
	"encoding/json"
	"net/http"
	"net/http/httptest"
	"strings"
	"testing"
	"time"

	"github.com/go-chi/chi/v5"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/taibuivan/dishdiary/internal/archive"
	"github.com/taibuivan/dishdiary/internal/platform/apperr"
	"github.com/taibuivan/dishdiary/internal/platform/constants"
	"github.com/taibuivan/dishdiary/internal/platform/middleware"
	"github.com/taibuivan/dishdiary/internal/platform/sec"
)

// tokenResolver treats the bearer token as the user ID.
type tokenResolver struct{}

func (tokenResolver) ResolveSession(_ context.Context, token string) (*sec.Identity, error) {
	return &sec.Identity{UserID: token}, nil
}

type archiveFixture struct {
	router  http.Handler
	recipes *fakeRecipes
}

func newArchiveFixture(t *testing.T) *archiveFixture {
	t.Helper()

	recipes := sampleRecipes()
	handler := archive.NewHandler(archive.NewService(&memoryLedger{}, recipes), middleware.NewGuard(tokenResolver{}, "token"))

	router := chi.NewRouter()
	router.Mount("/api/v1/archives", handler.Routes())
	return &archiveFixture{router: router, recipes: recipes}
}

func (f *archiveFixture) do(method, path, user, body string) *httptest.ResponseRecorder {
	req := httptest.NewRequest(method, path, strings.NewReader(body))
	req.Header.Set(constants.HeaderContentType, "application/json")
	if user != "" {
		req.Header.Set(constants.HeaderAuthorization, "Bearer "+user)
	}
	rec := httptest.NewRecorder()
	f.router.ServeHTTP(rec, req)
	return rec
}

type entryBody struct {
	Data     archive.Entry    `json:"data"`
	Warnings []apperr.Warning `json:"warnings"`
}

/*
TestHTTP_RecordScenario records a rated cook and finds its date on the recipe.
*/
func TestHTTP_RecordScenario(t *testing.T) {
	f := newArchiveFixture(t)

	rec := f.do(http.MethodPost, "/api/v1/archives", "bob",
		`{"recipe_id":"`+publicRecipeID+`","cooked_at":"2026-05-01T19:30:00Z","stars":4,"comment":"crusty"}`)
	require.Equal(t, http.StatusCreated, rec.Code, rec.Body.String())
	assert.Empty(t, rec.Header().Get(constants.HeaderPartialSuccess))

	var body entryBody
	require.NoError(t, json.NewDecoder(rec.Body).Decode(&body))
	assert.Equal(t, "bob", body.Data.UserID)
	assert.Equal(t, "crusty", body.Data.Note)
	assert.Equal(t, 4, *body.Data.Stars)

	cookedAt := time.Date(2026, 5, 1, 19, 30, 0, 0, time.UTC)
	assert.Equal(t, []time.Time{cookedAt}, f.recipes.cooked(publicRecipeID))

	rec = f.do(http.MethodGet, "/api/v1/archives?recipe_id="+publicRecipeID, "bob", "")
	require.Equal(t, http.StatusOK, rec.Code)
	assert.Contains(t, rec.Body.String(), body.Data.ID)

	rec = f.do(http.MethodGet, "/api/v1/archives", "alice", "")
	require.Equal(t, http.StatusOK, rec.Code)
	assert.NotContains(t, rec.Body.String(), body.Data.ID)
}

/*
TestHTTP_RecordPartialSuccess flags an entry whose cook history was not updated.
*/
func TestHTTP_RecordPartialSuccess(t *testing.T) {
	f := newArchiveFixture(t)
	f.recipes.appendErr = errBoom

	rec := f.do(http.MethodPost, "/api/v1/archives", "bob", `{"recipe_id":"`+publicRecipeID+`"}`)
	require.Equal(t, http.StatusCreated, rec.Code)
	assert.Equal(t, "true", rec.Header().Get(constants.HeaderPartialSuccess))

	var body entryBody
	require.NoError(t, json.NewDecoder(rec.Body).Decode(&body))
	require.Len(t, body.Warnings, 1)
	assert.Equal(t, archive.WarningCookHistory, body.Warnings[0].Code)
}

/*
TestHTTP_RecordNoteAliases accepts the note under each of its names.
*/
func TestHTTP_RecordNoteAliases(t *testing.T) {
	f := newArchiveFixture(t)

	tests := []struct {
		name  string
		extra string
		want  string
	}{
		{"note", `"note":"crusty"`, "crusty"},
		{"notes", `"notes":"airy crumb"`, "airy crumb"},
		{"comment", `"comment":"too salty"`, "too salty"},
		{"note_wins", `"comment":"old","notes":"newer","note":"newest"`, "newest"},
		{"notes_over_comment", `"comment":"old","notes":"newer"`, "newer"},
		{"none", `"stars":3`, ""},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			rec := f.do(http.MethodPost, "/api/v1/archives", "bob", `{"recipe_id":"`+publicRecipeID+`",`+tt.extra+`}`)
			require.Equal(t, http.StatusCreated, rec.Code, rec.Body.String())

			var body entryBody
			require.NoError(t, json.NewDecoder(rec.Body).Decode(&body))
			assert.Equal(t, tt.want, body.Data.Note)
		})
	}

	long := strings.Repeat("x", archive.MaxNoteLength+1)
	rec := f.do(http.MethodPost, "/api/v1/archives", "bob", `{"recipe_id":"`+publicRecipeID+`","notes":"`+long+`"}`)
	assert.Equal(t, http.StatusBadRequest, rec.Code)
}

/*
TestHTTP_RecordValidation rejects bad stars, bad IDs and anonymous callers.
*/
func TestHTTP_RecordValidation(t *testing.T) {
	f := newArchiveFixture(t)

	tests := []struct {
		name string
		user string
		body string
		want int
	}{
		{"anonymous", "", `{"recipe_id":"` + publicRecipeID + `"}`, http.StatusUnauthorized},
		{"stars_too_high", "bob", `{"recipe_id":"` + publicRecipeID + `","stars":6}`, http.StatusBadRequest},
		{"stars_negative", "bob", `{"recipe_id":"` + publicRecipeID + `","stars":-1}`, http.StatusBadRequest},
		{"missing_recipe", "bob", `{}`, http.StatusBadRequest},
		{"bad_recipe_id", "bob", `{"recipe_id":"abc"}`, http.StatusBadRequest},
		{"private_recipe", "bob", `{"recipe_id":"` + privateRecipeID + `"}`, http.StatusNotFound},
		{"zero_stars", "bob", `{"recipe_id":"` + publicRecipeID + `","stars":0}`, http.StatusCreated},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			rec := f.do(http.MethodPost, "/api/v1/archives", tt.user, tt.body)
			assert.Equal(t, tt.want, rec.Code, rec.Body.String())
		})
	}
}

/*
TestHTTP_DeleteAll is idempotent and scoped to the caller.
*/
func TestHTTP_DeleteAll(t *testing.T) {
	f := newArchiveFixture(t)

	for _, user := range []string{"alice", "alice", "bob"} {
		rec := f.do(http.MethodPost, "/api/v1/archives", user, `{"recipe_id":"`+publicRecipeID+`"}`)
		require.Equal(t, http.StatusCreated, rec.Code)
	}

	rec := f.do(http.MethodDelete, "/api/v1/archives", "alice", "")
	require.Equal(t, http.StatusOK, rec.Code)
	assert.JSONEq(t, `{"data":{"deleted":2}}`, rec.Body.String())

	rec = f.do(http.MethodDelete, "/api/v1/archives", "alice", "")
	require.Equal(t, http.StatusOK, rec.Code)
	assert.JSONEq(t, `{"data":{"deleted":0}}`, rec.Body.String())

	rec = f.do(http.MethodGet, "/api/v1/archives", "bob", "")
	require.Equal(t, http.StatusOK, rec.Code)
	assert.Contains(t, rec.Body.String(), `"total":1`)
}

/*
TestHTTP_DeleteOneForeignEntry answers NOT_FOUND for someone else's entry.
*/
func TestHTTP_DeleteOneForeignEntry(t *testing.T) {
	f := newArchiveFixture(t)

	rec := f.do(http.MethodPost, "/api/v1/archives", "alice", `{"recipe_id":"`+publicRecipeID+`"}`)
	require.Equal(t, http.StatusCreated, rec.Code)
	var body entryBody
	require.NoError(t, json.NewDecoder(rec.Body).Decode(&body))

	path := "/api/v1/archives/" + body.Data.ID
	assert.Equal(t, http.StatusNotFound, f.do(http.MethodDelete, path, "bob", "").Code)
	assert.Equal(t, http.StatusNoContent, f.do(http.MethodDelete, path, "alice", "").Code)
	assert.Equal(t, http.StatusNotFound, f.do(http.MethodDelete, path, "alice", "").Code)
}
