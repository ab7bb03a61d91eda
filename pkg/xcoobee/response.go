package xcoobee

import (
	"fmt"

	"github.com/xcoobee/xcoobee-go-sdk/internal/constants"
)

// Response is the envelope returned by every operation that performs network
// I/O. It is either a success (Error nil, Result set) or a failure (Error set);
// use the constructors to build one.
type Response[T any] struct {
	Code   int    `json:"code"             yaml:"code"`
	Result T      `json:"result,omitempty" yaml:"result,omitempty"`
	Error  *Error `json:"error,omitempty"  yaml:"error,omitempty"`
}

// NewSuccessResponse wraps a result.
func NewSuccessResponse[T any](result T) *Response[T] {
	return &Response[T]{Code: constants.HTTPStatusOK, Result: result}
}

// NewFailureResponse wraps a failure.
func NewFailureResponse[T any](failure *ErrorResponse) *Response[T] {
	return &Response[T]{Code: failure.Code, Error: failure.Err}
}

// IsSuccess reports whether the response carries a result.
func (r *Response[T]) IsSuccess() bool {
	return r.Error == nil
}

// Unwrap returns the result, or the failure as an *ErrorResponse.
func (r *Response[T]) Unwrap() (T, error) {
	if r.Error != nil {
		var zero T

		return zero, &ErrorResponse{Code: r.Code, Err: r.Error}
	}

	return r.Result, nil
}

// ErrorResponse is the failure variant of the envelope, usable as an error.
type ErrorResponse struct {
	Code int
	Err  *Error
}

// NewErrorResponse normalizes err and picks the envelope code: the transport
// status when the failure maps to an HTTP error status, otherwise code.
func NewErrorResponse(code int, err error) *ErrorResponse {
	normalized := TransformError(err)
	if normalized == nil {
		normalized = &Error{Kind: KindTransport, Message: "unknown error"}
	}

	if normalized.Status >= constants.ClientErrorCode {
		code = normalized.Status
	}

	return &ErrorResponse{Code: code, Err: normalized}
}

// Error implements the error interface.
func (e *ErrorResponse) Error() string {
	return fmt.Sprintf("%s (code: %d)", e.Err.Message, e.Code)
}

// Unwrap returns the normalized error.
func (e *ErrorResponse) Unwrap() error {
	return e.Err
}

// Envelope runs op and converts its outcome into a Response. Errors are
// normalized with the fixed client-side code unless a transport status applies.
func Envelope[T any](op func() (T, error)) *Response[T] {
	result, err := op()
	if err != nil {
		return NewFailureResponse[T](NewErrorResponse(constants.ClientErrorCode, err))
	}

	return NewSuccessResponse(result)
}
