package constants

import "time"

// File and directory permissions.
const (
	// ConfigDirPerm is the permission for configuration directories.
	ConfigDirPerm = 0750

	// ConfigFilePerm is the permission for configuration files.
	ConfigFilePerm = 0600
)

// DefaultHTTPTimeout is the default timeout for HTTP requests.
const DefaultHTTPTimeout = 30 * time.Second

// Retry limits for the transport. The core never retries on its own.
const (
	// DefaultRetryMax is zero: a failed exchange is evicted, not replayed.
	DefaultRetryMax = 0

	// DefaultRetryWaitMin is the minimum wait between transport retries.
	DefaultRetryWaitMin = 1 * time.Second

	// DefaultRetryWaitMax is the maximum wait time between retries.
	DefaultRetryWaitMax = 10 * time.Second
)

// Credential and record lifetimes.
const (
	// DefaultTokenLifetime applies when the exchange reports no lifetime
	// and the token carries no exp claim.
	DefaultTokenLifetime = 1 * time.Hour

	// DefaultUserRecordTTL is how long a looked-up user record stays cached.
	DefaultUserRecordTTL = 1 * time.Hour
)

// HTTP status codes commonly used.
const (
	// HTTPStatusOK represents a successful HTTP response.
	HTTPStatusOK = 200

	// ClientErrorCode is the envelope code for failures not mapped from a
	// transport status.
	ClientErrorCode = 400

	// HTTPStatusUnauthorized is the status that maps to an authentication error.
	HTTPStatusUnauthorized = 401
)

// Platform endpoints, relative to the API URL root.
const (
	// TokenPath is the key/secret exchange endpoint.
	TokenPath = "/get_token"

	// GraphQLPath is the GraphQL endpoint.
	GraphQLPath = "/graphql"
)

// Pagination and display limits.
const (
	// DefaultPageSize is the default number of items per page (0 lets the server decide).
	DefaultPageSize = 0

	// DefaultMaxPages bounds Collect when no limit is given.
	DefaultMaxPages = 1000
)

// JWT decoding.
const (
	// TokenPartsCount is the expected number of parts in a JWT token.
	TokenPartsCount = 3

	// Base64PaddingLength is used for base64 padding calculations.
	Base64PaddingLength = 4
)

// Format constants.
const (
	// FormatJSON for JSON output format.
	FormatJSON = "json"

	// FormatYAML for YAML output format.
	FormatYAML = "yaml"

	// FormatTable for table output format.
	FormatTable = "table"
)

// UI and display constants.
const (
	// NotAvailable is used when information is not available.
	NotAvailable = "N/A"

	// MaskedSecret is used to hide sensitive information.
	MaskedSecret = "***"
)

// Environment and config file naming.
const (
	// EnvPrefix is the environment variable prefix read by the config loader.
	EnvPrefix = "XCOOBEE"

	// ConfigDirName is the directory under $HOME holding the config file.
	ConfigDirName = ".xcoobee"

	// ConfigFileName is the config file name without extension.
	ConfigFileName = "config"

	// ConfigFileType is the config file format.
	ConfigFileType = "yml"

	// DefaultUserAgent is sent on every request unless overridden.
	DefaultUserAgent = "xcoobee-go-sdk"
)
