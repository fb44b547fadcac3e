package errors

import (
	"context"
	"encoding/json"
	stderrors "errors"
	"net"
	"net/http"
	"strings"
)

// backendError is the error body the backend emits.
type backendError struct {
	Error      string          `json:"error"`
	Message    json.RawMessage `json:"message"`
	StatusCode int             `json:"statusCode"`
}

// New builds a ClientError.
func New(status int, code, message string) *ClientError {
	return &ClientError{Status: status, Message: message, Code: code}
}

// Unauthorized is returned for every 401 response.
func Unauthorized() *ClientError {
	return &ClientError{Status: http.StatusUnauthorized, Message: "Session expired. Please log in again.", Code: CodeUnauthorized}
}

// MissingToken is returned when an authenticated request has no token.
// Like every failure that happens before a response exists it is a 500;
// only a real 401 from the backend carries that status.
func MissingToken() *ClientError {
	return &ClientError{Status: http.StatusInternalServerError, Message: "Authentication required but no token found", Code: CodeMissingToken}
}

// FromTransport converts a failure that happened before a response was
// obtained. An existing ClientError is returned unchanged.
func FromTransport(err error) *ClientError {
	if ce, ok := AsClientError(err); ok {
		return ce
	}
	return &ClientError{Status: http.StatusInternalServerError, Message: err.Error(), Code: transportCode(err), Cause: err}
}

func transportCode(err error) string {
	var netErr net.Error
	switch {
	case stderrors.Is(err, context.Canceled):
		return CodeCanceled
	case stderrors.Is(err, context.DeadlineExceeded):
		return CodeDeadline
	case stderrors.As(err, &netErr):
		if netErr.Timeout() {
			return CodeDeadline
		}
		return CodeNetwork
	default:
		return CodeRequest
	}
}

// FromResponse shapes a non-2xx response. jsonBody is the raw body when it
// parsed as JSON (nil otherwise); text is the raw body as a string.
//
// A body carrying error, message and statusCode maps field for field.
// Anything else becomes unknown_error with the response status.
func FromResponse(status int, jsonBody []byte, text string) *ClientError {
	if jsonBody != nil {
		if be, ok := parseBackendError(jsonBody); ok {
			return &ClientError{Status: be.StatusCode, Message: messageText(be.Message), Code: be.Error}
		}
	}
	msg := ""
	if jsonBody != nil {
		var m struct {
			Message json.RawMessage `json:"message"`
		}
		if json.Unmarshal(jsonBody, &m) == nil {
			msg = messageText(m.Message)
		}
	} else {
		msg = text
	}
	if msg == "" {
		msg = http.StatusText(status)
	}
	return &ClientError{Status: status, Message: msg, Code: CodeUnknown}
}

func parseBackendError(body []byte) (backendError, bool) {
	var keys map[string]json.RawMessage
	if err := json.Unmarshal(body, &keys); err != nil {
		return backendError{}, false
	}
	for _, k := range []string{"error", "message", "statusCode"} {
		if _, ok := keys[k]; !ok {
			return backendError{}, false
		}
	}
	var be backendError
	if err := json.Unmarshal(body, &be); err != nil {
		return backendError{}, false
	}
	return be, true
}

// messageText flattens a message that is either a string or a list of
// strings (validation failures arrive as lists).
func messageText(raw json.RawMessage) string {
	if len(raw) == 0 {
		return ""
	}
	var s string
	if json.Unmarshal(raw, &s) == nil {
		return s
	}
	var list []string
	if json.Unmarshal(raw, &list) == nil {
		return strings.Join(list, "; ")
	}
	return string(raw)
}
