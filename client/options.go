package client

import (
	"fmt"
	"net/http"
	"time"

	"github.com/Carcandyx/baby-steps-client/client/session"
)

// Option configures a Client in New. Order does not matter: transport
// decoration (debug dumps, User-Agent, metrics) is applied once every
// option has run.
type Option func(*Client) error

// WithHTTPTimeout bounds each backend call, body included. Defaults to 30s.
// A context deadline passed to a method can only shorten it.
func WithHTTPTimeout(d time.Duration) Option {
	return func(c *Client) error {
		if d <= 0 {
			return fmt.Errorf("timeout %s: must be positive", d)
		}
		c.timeout = d
		return nil
	}
}

// WithHTTPClient replaces the http.Client. Its Transport is wrapped, not
// replaced. The client is copied, so hc itself is left untouched.
func WithHTTPClient(hc *http.Client) Option {
	return func(c *Client) error {
		if hc == nil {
			return fmt.Errorf("http client cannot be nil")
		}
		cp := *hc
		c.http = &cp
		return nil
	}
}

// WithDebugLogging dumps every request and response at debug level when
// enabled. Bearer tokens are redacted but bodies, sign-in passwords
// included, are not.
func WithDebugLogging(enabled bool) Option {
	return func(c *Client) error {
		c.debug = c.debug || enabled
		return nil
	}
}

// WithSession uses s to hold the token and cached profile.
func WithSession(s *session.Store) Option {
	return func(c *Client) error {
		if s == nil {
			return fmt.Errorf("session cannot be nil")
		}
		c.session = s
		return nil
	}
}

// WithStorage keeps the session in storage, e.g. session.NewFileStorage.
func WithStorage(storage session.Storage) Option {
	return func(c *Client) error {
		if storage == nil {
			return fmt.Errorf("storage cannot be nil")
		}
		c.session = session.New(storage)
		return nil
	}
}

// WithUnauthorizedHandler registers fn to run whenever the backend answers
// 401. The session is already cleared when fn runs; use it to send the user
// back to the login screen.
func WithUnauthorizedHandler(fn func()) Option {
	return func(c *Client) error {
		c.onUnauthorized = fn
		return nil
	}
}
