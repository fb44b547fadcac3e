package api

import (
	"net/http"
	"strings"

	"github.com/Carcandyx/baby-steps-client/client/internal/types"
)

// HTTPClient interface for dependency injection
type HTTPClient interface {
	Do(req *http.Request) (*http.Response, error)
}

// Session is the slice of the session store the request layer needs.
type Session interface {
	Token() (string, bool)
	SetSession(token string, user *types.User) error
	Clear()
}

// Requester carries everything a single request needs. It holds no
// per-request state and is safe for concurrent use.
type Requester struct {
	BaseURL string
	HTTP    HTTPClient
	Session Session

	// OnUnauthorized runs after the session has been cleared by a 401.
	OnUnauthorized func()
}

// resolve appends endpoint to the base URL unless it is already absolute.
func (r *Requester) resolve(endpoint string) string {
	if strings.HasPrefix(endpoint, "http") {
		return endpoint
	}
	return strings.TrimRight(r.BaseURL, "/") + endpoint
}
