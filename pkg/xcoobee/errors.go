package xcoobee

import (
	"encoding/json"
	"errors"
	"fmt"
	"strings"

	"github.com/xcoobee/xcoobee-go-sdk/internal/constants"
)

// UnauthorizedMessage is the fixed message for authentication failures.
const UnauthorizedMessage = "401 Unauthorized.  Please make sure your API access token is fresh."

// ErrorKind classifies a normalized error.
type ErrorKind string

const (
	// KindAuth is a rejected credential exchange or an invalid token.
	KindAuth ErrorKind = "auth"

	// KindRemote is a structured error list returned by the platform.
	KindRemote ErrorKind = "remote"

	// KindTransport is any other failure.
	KindTransport ErrorKind = "transport"
)

// Error is the normalized error carried by failure envelopes. Raw transport
// errors never reach callers; they are converted by TransformError.
type Error struct {
	Kind    ErrorKind `json:"kind"              yaml:"kind"`
	Status  int       `json:"status,omitempty"  yaml:"status,omitempty"`
	Message string    `json:"message"           yaml:"message"`

	cause error
}

// Error implements the error interface.
func (e *Error) Error() string {
	return e.Message
}

// Unwrap returns the error this one was built from, if any.
func (e *Error) Unwrap() error {
	return e.cause
}

// Location is a position in a GraphQL document.
type Location struct {
	Line   int `json:"line"   yaml:"line"`
	Column int `json:"column" yaml:"column"`
}

// APIError is a single error descriptor returned by the platform.
type APIError struct {
	Message   string         `json:"message,omitempty"   yaml:"message,omitempty"`
	Locations []Location     `json:"locations,omitempty" yaml:"locations,omitempty"`
	Path      []interface{}  `json:"path,omitempty"      yaml:"path,omitempty"`
	Extra     map[string]any `json:"extensions,omitempty" yaml:"extensions,omitempty"`
}

// Error implements the error interface.
func (e *APIError) Error() string {
	return errorToMessage(*e)
}

// ResponseError is the failure produced by the transport: the HTTP status
// plus any error descriptors found in the body.
type ResponseError struct {
	StatusCode int        `json:"-"`
	Errors     []APIError `json:"errors"`
}

// Error implements the error interface for ResponseError.
func (e *ResponseError) Error() string {
	if len(e.Errors) == 0 {
		return fmt.Sprintf("request failed with status %d", e.StatusCode)
	}

	if len(e.Errors) == 1 {
		return e.Errors[0].Error()
	}

	return fmt.Sprintf("multiple errors: %v", e.Errors)
}

// FirstError returns the first error or nil.
func (e *ResponseError) FirstError() *APIError {
	if len(e.Errors) > 0 {
		return &e.Errors[0]
	}

	return nil
}

// ParseResponseError parses an error body from JSON.
func ParseResponseError(statusCode int, data []byte) (*ResponseError, error) {
	errResp := ResponseError{StatusCode: statusCode}

	err := json.Unmarshal(data, &errResp)
	if err != nil {
		return nil, fmt.Errorf("failed to unmarshal response error: %w", err)
	}

	return &errResp, nil
}

// TransformError normalizes any error into an *Error.
func TransformError(inputErr error) *Error {
	if inputErr == nil {
		return nil
	}

	var normalized *Error
	if errors.As(inputErr, &normalized) {
		return normalized
	}

	var envelope *ErrorResponse
	if errors.As(inputErr, &envelope) && envelope.Err != nil {
		return envelope.Err
	}

	var respErr *ResponseError
	if errors.As(inputErr, &respErr) {
		if respErr.StatusCode == constants.HTTPStatusUnauthorized {
			return &Error{Kind: KindAuth, Status: respErr.StatusCode, Message: UnauthorizedMessage, cause: inputErr}
		}

		if len(respErr.Errors) > 0 {
			lines := make([]string, 0, len(respErr.Errors))
			for _, desc := range respErr.Errors {
				lines = append(lines, errorToMessage(desc))
			}

			return &Error{
				Kind:    KindRemote,
				Status:  respErr.StatusCode,
				Message: strings.Join(lines, "\n"),
				cause:   inputErr,
			}
		}

		return &Error{Kind: KindTransport, Status: respErr.StatusCode, Message: inputErr.Error(), cause: inputErr}
	}

	return &Error{Kind: KindTransport, Message: inputErr.Error(), cause: inputErr}
}

// IsUnauthorized checks if the error is an authentication error.
func IsUnauthorized(err error) bool {
	if err == nil {
		return false
	}

	return TransformError(err).Kind == KindAuth
}

func errorToMessage(desc APIError) string {
	parts := make([]string, 0, 2)

	if desc.Message != "" {
		parts = append(parts, desc.Message)
	}

	if len(desc.Locations) > 0 {
		locs := make([]string, 0, len(desc.Locations))
		for _, loc := range desc.Locations {
			locs = append(locs, fmt.Sprintf("at line: %d, column: %d", loc.Line, loc.Column))
		}

		parts = append(parts, strings.Join(locs, ", "))
	}

	if len(parts) == 0 {
		raw, err := json.Marshal(desc)
		if err != nil {
			return "unknown error"
		}

		return string(raw)
	}

	return strings.Join(parts, " ")
}
