// Copyright (c) 2026 Yomira. All rights reserved.
// Author: tai.buivan.jp@gmail.com

/*
Package constants provides the fixed values shared across layers.

Categories:

  - Server Timing: Read/Write/Idle timeouts for the HTTP server.
  - Rate Limiting: Token-bucket sizing and client eviction.
  - Security: Token issuer and header names.
  - Transport: JSON envelope field names.
*/
package constants

import "time"

// # Metadata

const (
	AppName    = "dishdiary-api"
	AppVersion = "0.1.0-dev"
	AppBanner  = "Dish Diary API running"
)

// # Server Timing

const (
	// DefaultReadTimeout covers reading the whole request, multipart images included.
	DefaultReadTimeout = 30 * time.Second

	// DefaultWriteTimeout is the maximum duration before timing out writes of the response.
	DefaultWriteTimeout = 30 * time.Second

	// DefaultIdleTimeout is the maximum amount of time to wait for the next request.
	DefaultIdleTimeout = 120 * time.Second

	// DefaultReadHeaderTimeout is the amount of time allowed to read request headers.
	DefaultReadHeaderTimeout = 2 * time.Second

	// GlobalRequestTimeout is the deadline for the entire request lifecycle.
	GlobalRequestTimeout = 30 * time.Second

	// ShutdownTimeout is how long in-flight requests get during shutdown.
	ShutdownTimeout = 30 * time.Second

	// StartupTimeout bounds connecting to Postgres and Redis at boot.
	StartupTimeout = 30 * time.Second
)

// # Rate Limiting

const (
	// DefaultRateLimitRPS is the requests per second allowed per IP.
	DefaultRateLimitRPS = 50.0

	// DefaultRateLimitBurst is the maximum burst allowed for the rate limiter.
	DefaultRateLimitBurst = 100

	// RateLimitCleanupInterval is how often idle IP entries are swept.
	RateLimitCleanupInterval = 1 * time.Minute

	// RateLimitClientTTL is how long a client must be idle before its entry is deleted.
	RateLimitClientTTL = 3 * time.Minute
)

// # Authentication

const (
	// AuthIssuer is the 'iss' claim in session tokens.
	AuthIssuer = "dishdiary.app"

	// BearerPrefix precedes the token in the Authorization header fallback.
	BearerPrefix = "bearer "
)

// # HTTP Headers

const (
	HeaderXRequestID     = "X-Request-ID"
	HeaderXRealIP        = "X-Real-IP"
	HeaderXForwardedFor  = "X-Forwarded-For"
	HeaderOrigin         = "Origin"
	HeaderAuthorization  = "Authorization"
	HeaderPartialSuccess = "X-Partial-Success"
	HeaderContentType    = "Content-Type"
)

// # JSON Field Identifiers

const (
	FieldData     = "data"
	FieldMeta     = "meta"
	FieldError    = "error"
	FieldCode     = "code"
	FieldDetails  = "details"
	FieldWarnings = "warnings"
	FieldMessage  = "message"
	FieldStatus   = "status"
	FieldChecks   = "checks"
	FieldUser     = "user"
	FieldDeleted  = "deleted"
)

// # Redis Prefixes

const (
	RedisPrefixRevokedSession = "auth:revoked_session:"
)
