package constants

import "time"

// Context keys shared between middleware and handlers
const (
	ContextKeyClaims    = "session_claims"
	ContextKeyInstance  = "instance"
	ContextKeyRequestID = "request_id"
)

const (
	HeaderAuthorization = "Authorization"
	HeaderRequestID     = "X-Request-ID"
	BearerScheme        = "Bearer"
)

const (
	// DefaultSessionTTL is how long an issued session claim stays valid.
	DefaultSessionTTL = 7 * 24 * time.Hour

	DefaultBcryptCost = 10

	// FallbackSlugBase is used when a company name yields an empty slug.
	FallbackSlugBase = "instance"

	// MaxRegisterAttempts bounds retries when a concurrent registration
	// claims the same slug between probe and insert.
	MaxRegisterAttempts = 3
)
