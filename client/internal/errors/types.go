// Package errors defines the two error shapes the SDK returns: ClientError
// for every request failure and AuthError for login/signup failures.
package errors

import (
	stderrors "errors"
	"fmt"
)

// Error codes produced locally. Codes reported by the backend pass through
// untouched.
const (
	CodeUnauthorized  = "unauthorized"
	CodeUnknown       = "unknown_error"
	CodeMissingToken  = "missing_token"
	CodeAuth          = "auth_error"
	CodeNetwork       = "network_error"
	CodeCanceled      = "context_canceled"
	CodeDeadline      = "deadline_exceeded"
	CodeRequest       = "request_error"
	CodeDecode        = "decode_error"
	CodeEncode        = "json_marshal_error"
	CodeInvalidMethod = "invalid_method"
	CodeTooLarge      = "response_too_large"
)

// ClientError is the normalized failure of a single API request.
type ClientError struct {
	Status  int    `json:"status"`
	Message string `json:"message"`
	Code    string `json:"error"`
	Cause   error  `json:"-"`
}

// Error implements the error interface.
func (e *ClientError) Error() string {
	return fmt.Sprintf("HTTP %d %s: %s", e.Status, e.Code, e.Message)
}

// Unwrap returns the underlying error, if any.
func (e *ClientError) Unwrap() error { return e.Cause }

// Is matches another ClientError by code, and by status when the target
// sets one. This lets callers compare against the sentinels below.
func (e *ClientError) Is(target error) bool {
	t, ok := target.(*ClientError)
	if !ok {
		return false
	}
	return t.Code == e.Code && (t.Status == 0 || t.Status == e.Status)
}

// Sentinels for errors.Is.
var (
	ErrUnauthorized = &ClientError{Status: 401, Code: CodeUnauthorized}
	ErrMissingToken = &ClientError{Status: 500, Code: CodeMissingToken}
)

// AuthError narrows login and signup failures to their own type.
type AuthError struct {
	Status  int    `json:"status"`
	Message string `json:"message"`
	Code    string `json:"error"`
	Cause   error  `json:"-"`
}

func (e *AuthError) Error() string {
	return fmt.Sprintf("auth error %d %s: %s", e.Status, e.Code, e.Message)
}

func (e *AuthError) Unwrap() error { return e.Cause }

// NewAuthError converts err into an AuthError. A ClientError keeps its
// status, message and code; anything else becomes a 400 auth_error carrying
// err's message, or fallback when err has none.
func NewAuthError(err error, fallback string) *AuthError {
	var ce *ClientError
	if stderrors.As(err, &ce) {
		return &AuthError{Status: ce.Status, Message: ce.Message, Code: ce.Code, Cause: err}
	}
	msg := fallback
	if err != nil && err.Error() != "" {
		msg = err.Error()
	}
	return &AuthError{Status: 400, Message: msg, Code: CodeAuth, Cause: err}
}

// AsClientError unwraps err to a *ClientError.
func AsClientError(err error) (*ClientError, bool) {
	var ce *ClientError
	if stderrors.As(err, &ce) {
		return ce, true
	}
	return nil, false
}

// StatusOf returns the HTTP status carried by err, or 0 when err is not a
// ClientError or AuthError.
func StatusOf(err error) int {
	if ce, ok := AsClientError(err); ok {
		return ce.Status
	}
	var ae *AuthError
	if stderrors.As(err, &ae) {
		return ae.Status
	}
	return 0
}
