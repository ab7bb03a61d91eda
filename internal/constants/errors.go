package constants

import "errors"

// Token errors.
var (
	ErrInvalidJWTFormat  = errors.New("invalid JWT format")
	ErrNoExpirationClaim = errors.New("no expiration claim found")
	ErrEmptyToken        = errors.New("token exchange returned an empty token")
	ErrInvalidExpiry     = errors.New("expires_at is neither epoch seconds nor RFC 3339")
)

// CLI errors.
var (
	ErrUnknownConfigKey  = errors.New("unknown configuration key")
	ErrNATSURLRequired   = errors.New("--nats-url is required")
	ErrSubjectRequired   = errors.New("--subject is required")
	ErrRefIDRequired     = errors.New("--ref is required")
	ErrUnsupportedOutput = errors.New("unsupported output format")
)
