// Copyright (c) 2026 Yomira. All rights reserved.
// Author: tai.buivan.jp@gmail.com

/*
Package requestutil provides utilities for extracting data from HTTP requests.

It hides the router's parameter extraction and the body decoding patterns so
every handler reports malformed input the same way.
*/
package requestutil

import (
	"encoding/json"
	"errors"
	"net/http"

	"github.com/go-chi/chi/v5"

	"github.com/taibuivan/dishdiary/internal/platform/apperr"
	"github.com/taibuivan/dishdiary/internal/platform/ctxutil"
	"github.com/taibuivan/dishdiary/internal/platform/sec"
	"github.com/taibuivan/dishdiary/internal/platform/validate"
)

/*
DecodeJSON reads the request body and decodes it into the target structure.

Returns:
  - error: apperr.TooLarge when the body exceeded a MaxBytesReader limit,
    validate.ErrInvalidJSON if decoding fails, otherwise nil
*/
func DecodeJSON(request *http.Request, target any) error {
	if err := json.NewDecoder(request.Body).Decode(target); err != nil {
		var tooLarge *http.MaxBytesError
		if errors.As(err, &tooLarge) {
			return apperr.TooLarge(tooLarge.Limit)
		}
		return validate.ErrInvalidJSON
	}
	return nil
}

/*
Param retrieves a named URL parameter from the request.
*/
func Param(request *http.Request, name string) string {
	return chi.URLParam(request, name)
}

/*
UUIDParam retrieves a named URL parameter and rejects values that are not
canonical UUIDs with a MALFORMED error.
*/
func UUIDParam(request *http.Request, name string) (string, error) {
	value := chi.URLParam(request, name)
	if !validate.IsUUID(value) {
		return "", apperr.Malformed("Invalid " + name)
	}
	return value, nil
}

/*
Identity returns the resolved session identity, or nil for anonymous requests.
*/
func Identity(request *http.Request) *sec.Identity {
	return ctxutil.GetIdentity(request.Context())
}

/*
RequiredIdentity ensures the request is authenticated and returns its identity.

Returns:
  - *sec.Identity: The caller
  - error: apperr.Unauthorized if the request carried no valid session
*/
func RequiredIdentity(request *http.Request) (*sec.Identity, error) {
	identity := ctxutil.GetIdentity(request.Context())
	if identity == nil {
		return nil, apperr.Unauthorized("Authentication required")
	}
	return identity, nil
}
