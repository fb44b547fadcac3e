package client

import (
	"errors"

	apierrors "github.com/Carcandyx/baby-steps-client/client/internal/errors"
)

// ClientError is the normalized failure of a request. Branch on Status
// and Code.
type ClientError = apierrors.ClientError

// AuthError is returned by Login and Signup.
type AuthError = apierrors.AuthError

// Re-export shared SDK errors so callers compare against a single symbol.
var (
	ErrUnauthorized = apierrors.ErrUnauthorized
	ErrMissingToken = apierrors.ErrMissingToken
)

// ErrInFlight is returned by ToggleTask while the same task is being updated.
var ErrInFlight = errors.New("task update already in progress")

// AsClientError unwraps err to a *ClientError.
func AsClientError(err error) (*ClientError, bool) { return apierrors.AsClientError(err) }

// StatusOf returns the HTTP status carried by err, or 0.
func StatusOf(err error) int { return apierrors.StatusOf(err) }

// IsUnauthorized reports whether err is a 401 from the backend.
func IsUnauthorized(err error) bool { return errors.Is(err, ErrUnauthorized) }
