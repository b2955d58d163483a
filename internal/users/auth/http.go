// Copyright (c) 2026 Yomira. All rights reserved.
// Author: tai.buivan.jp@gmail.com

package auth

import (
	"net/http"
	"time"

	"github.com/go-chi/chi/v5"

	"github.com/taibuivan/dishdiary/internal/platform/constants"
	"github.com/taibuivan/dishdiary/internal/platform/middleware"
	requestutil "github.com/taibuivan/dishdiary/internal/platform/request"
	"github.com/taibuivan/dishdiary/internal/platform/respond"
	"github.com/taibuivan/dishdiary/internal/platform/validate"
)

// # Definitions & Constructors

// CookiePolicy describes the session cookie.
type CookiePolicy struct {
	Name     string
	TTL      time.Duration
	Secure   bool
	SameSite http.SameSite
}

// NewCookiePolicy returns the production or development cookie shape.
//
// Production cookies are Secure with SameSite=None so the SPA can call the API
// cross-site; development cookies use SameSite=Lax over plain HTTP.
func NewCookiePolicy(name string, ttl time.Duration, production bool) CookiePolicy {
	policy := CookiePolicy{Name: name, TTL: ttl, SameSite: http.SameSiteLaxMode}
	if production {
		policy.Secure = true
		policy.SameSite = http.SameSiteNoneMode
	}
	return policy
}

func (policy CookiePolicy) set(writer http.ResponseWriter, token string) {
	http.SetCookie(writer, &http.Cookie{
		Name:     policy.Name,
		Value:    token,
		Path:     "/",
		MaxAge:   int(policy.TTL / time.Second),
		HttpOnly: true,
		Secure:   policy.Secure,
		SameSite: policy.SameSite,
	})
}

func (policy CookiePolicy) clear(writer http.ResponseWriter) {
	http.SetCookie(writer, &http.Cookie{
		Name:     policy.Name,
		Value:    "",
		Path:     "/",
		MaxAge:   -1,
		HttpOnly: true,
		Secure:   policy.Secure,
		SameSite: policy.SameSite,
	})
}

// Handler implements the authentication endpoints.
type Handler struct {
	authService *Service
	guard       *middleware.Guard
	cookie      CookiePolicy
}

// NewHandler constructs a new [Handler].
func NewHandler(service *Service, guard *middleware.Guard, cookie CookiePolicy) *Handler {
	return &Handler{authService: service, guard: guard, cookie: cookie}
}

// Routes returns a [chi.Router] configured with authentication routes.
//
// # Endpoints
//   - POST /register : Creates an account and sets the session cookie.
//   - POST /login    : Verifies credentials and sets the session cookie.
//   - POST /logout   : Clears the cookie (and revokes the token if enabled).
//   - GET  /me       : Returns the current user, or null.
func (handler *Handler) Routes() chi.Router {
	router := chi.NewRouter()

	router.Post("/register", handler.register)
	router.Post("/login", handler.login)

	router.Group(func(r chi.Router) {
		r.Use(handler.guard.Optional)
		r.Post("/logout", handler.logout)
		r.Get("/me", handler.me)
	})

	return router
}

// # Request Payloads

type registerRequest struct {
	Name     string `json:"name"`
	Email    string `json:"email"`
	Password string `json:"password"`
}

type loginRequest struct {
	Email    string `json:"email"`
	Password string `json:"password"`
}

type sessionResponse struct {
	User      *UserView `json:"user"`
	ExpiresAt time.Time `json:"expires_at"`
}

/*
POST /api/v1/auth/register

Response:
  - 201: {user, expires_at} and the session cookie
  - 400: Invalid JSON or validation failure
  - 409: Email already registered
*/
func (handler *Handler) register(writer http.ResponseWriter, request *http.Request) {
	var input registerRequest
	if err := requestutil.DecodeJSON(request, &input); err != nil {
		respond.Error(writer, request, err)
		return
	}

	validator := &validate.Validator{}
	validator.Required(FieldName, input.Name).
		MaxLen(FieldName, input.Name, MaxNameLength).
		Required(FieldEmail, input.Email).
		Email(FieldEmail, NormalizeEmail(input.Email)).
		MaxLen(FieldEmail, input.Email, MaxEmailLength).
		MinLen(FieldPassword, input.Password, MinPasswordLength).
		Custom(FieldPassword, len(input.Password) > MaxPasswordBytes, "Password is too long")

	if err := validator.Err(); err != nil {
		respond.Error(writer, request, err)
		return
	}

	session, err := handler.authService.Register(request.Context(), RegisterInput{
		Name:     input.Name,
		Email:    input.Email,
		Password: input.Password,
	})
	if err != nil {
		respond.Error(writer, request, err)
		return
	}

	handler.cookie.set(writer, session.Token)
	respond.Created(writer, newSessionResponse(session))
}

/*
POST /api/v1/auth/login

Response:
  - 200: {user, expires_at} and the session cookie
  - 401: Invalid email or password (no cookie)
*/
func (handler *Handler) login(writer http.ResponseWriter, request *http.Request) {
	var input loginRequest
	if err := requestutil.DecodeJSON(request, &input); err != nil {
		respond.Error(writer, request, err)
		return
	}

	validator := &validate.Validator{}
	validator.Required(FieldEmail, input.Email).
		Required(FieldPassword, input.Password)

	if err := validator.Err(); err != nil {
		respond.Error(writer, request, err)
		return
	}

	session, err := handler.authService.Login(request.Context(), LoginInput{
		Email:    input.Email,
		Password: input.Password,
	})
	if err != nil {
		respond.Error(writer, request, err)
		return
	}

	handler.cookie.set(writer, session.Token)
	respond.OK(writer, newSessionResponse(session))
}

/*
POST /api/v1/auth/logout

Always succeeds. The cookie is cleared even when no valid session was sent.
*/
func (handler *Handler) logout(writer http.ResponseWriter, request *http.Request) {
	handler.authService.Logout(request.Context(), requestutil.Identity(request))
	handler.cookie.clear(writer)

	respond.OK(writer, map[string]string{constants.FieldMessage: "Logged out"})
}

/*
GET /api/v1/auth/me

Response:
  - 200: {user: {...}} for a valid session, {user: null} otherwise
*/
func (handler *Handler) me(writer http.ResponseWriter, request *http.Request) {
	respond.OK(writer, map[string]*UserView{
		constants.FieldUser: ViewOf(requestutil.Identity(request)),
	})
}

func newSessionResponse(session *LoginSession) sessionResponse {
	return sessionResponse{
		User: &UserView{
			ID:    session.User.ID,
			Name:  session.User.Name,
			Email: session.User.Email,
		},
		ExpiresAt: session.ExpiresAt,
	}
}
