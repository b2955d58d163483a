// Copyright (c) 2026 Yomira. All rights reserved.
// Author: tai.buivan.jp@gmail.com

package middleware

import (
	"context"
	"errors"
	"log/slog"
	"net/http"
	"strings"

	"github.com/taibuivan/dishdiary/internal/platform/apperr"
	"github.com/taibuivan/dishdiary/internal/platform/constants"
	"github.com/taibuivan/dishdiary/internal/platform/ctxutil"
	"github.com/taibuivan/dishdiary/internal/platform/respond"
	"github.com/taibuivan/dishdiary/internal/platform/sec"
)

// SessionResolver turns a raw session token into the identity it names.
//
// Implemented by the auth service; tests inject a stub.
type SessionResolver interface {
	ResolveSession(ctx context.Context, token string) (*sec.Identity, error)
}

// Guard gates handlers on the session carried by a request.
//
// The token is read from the session cookie first and from an
// "Authorization: Bearer" header second.
type Guard struct {
	resolver   SessionResolver
	cookieName string
}

// NewGuard creates a Guard reading the named cookie.
func NewGuard(resolver SessionResolver, cookieName string) *Guard {
	return &Guard{resolver: resolver, cookieName: cookieName}
}

// Optional attaches the caller's identity when the token validates and
// otherwise lets the request through anonymously. It never fails a request.
func (g *Guard) Optional(next http.Handler) http.Handler {
	return http.HandlerFunc(func(writer http.ResponseWriter, request *http.Request) {
		identity, err := g.resolve(request)
		if err != nil {
			ctxutil.GetLogger(request.Context()).DebugContext(request.Context(), "optional_session_ignored",
				slog.String("reason", err.Error()),
			)
		}
		if identity != nil {
			request = request.WithContext(ctxutil.WithIdentity(request.Context(), identity))
		}

		markServed(request)
		next.ServeHTTP(writer, request)
	})
}

// Required rejects the request with 401 unless the token validates, then
// attaches the identity for downstream handlers.
func (g *Guard) Required(next http.Handler) http.Handler {
	return http.HandlerFunc(func(writer http.ResponseWriter, request *http.Request) {
		identity, err := g.resolve(request)
		if err != nil {
			respond.Error(writer, request, unauthenticated(err))
			return
		}
		if identity == nil {
			respond.Error(writer, request, apperr.Unauthorized("Authentication required"))
			return
		}

		request = request.WithContext(ctxutil.WithIdentity(request.Context(), identity))
		markServed(request)
		next.ServeHTTP(writer, request)
	})
}

// resolve returns (nil, nil) when the request carries no token.
func (g *Guard) resolve(request *http.Request) (*sec.Identity, error) {
	token := g.extractToken(request)
	if token == "" {
		return nil, nil
	}
	return g.resolver.ResolveSession(request.Context(), token)
}

func (g *Guard) extractToken(request *http.Request) string {
	if cookie, err := request.Cookie(g.cookieName); err == nil && cookie.Value != "" {
		return cookie.Value
	}

	header := request.Header.Get(constants.HeaderAuthorization)
	if len(header) > len(constants.BearerPrefix) && strings.EqualFold(header[:len(constants.BearerPrefix)], constants.BearerPrefix) {
		return strings.TrimSpace(header[len(constants.BearerPrefix):])
	}
	return ""
}

// unauthenticated keeps the client message generic except for expiry, which
// the client can act on by logging in again.
func unauthenticated(err error) error {
	if ae := apperr.As(err); ae != nil && ae.HTTPStatus >= http.StatusInternalServerError {
		return ae
	}
	if errors.Is(err, sec.ErrTokenExpired) {
		return apperr.Unauthorized("Session expired").WithCause(err)
	}
	return apperr.Unauthorized("Invalid session").WithCause(err)
}
