package client

import (
	"net/http"
	"net/http/httputil"
	"os"

	"github.com/rs/zerolog/log"
)

// debugTransport logs every request/response dump at debug level.
//
// When to use:
//   - Set BABYSTEPS_DEBUG=true or DEBUG=true environment variable
//   - Pass WithDebugLogging(true) when constructing the client
//
// Bodies are logged in full and may contain passwords on sign-in; only the
// Authorization header is redacted.
type debugTransport struct{ base http.RoundTripper }

func (dt *debugTransport) RoundTrip(req *http.Request) (*http.Response, error) {
	base := dt.base
	if base == nil {
		base = http.DefaultTransport
	}

	redacted := req.Clone(req.Context())
	if redacted.Header.Get("Authorization") != "" {
		redacted.Header.Set("Authorization", "Bearer [REDACTED]")
	}
	// DumpRequestOut consumes the body; dump from a clone with a fresh copy
	// and skip the body when it cannot be replayed.
	withBody := req.Body == nil || req.Body == http.NoBody
	if req.GetBody != nil {
		if b, err := req.GetBody(); err == nil {
			redacted.Body = b
			withBody = true
		}
	}
	if reqDump, err := httputil.DumpRequestOut(redacted, withBody); err == nil {
		log.Debug().Str("method", req.Method).Str("url", req.URL.String()).Str("request_dump", string(reqDump)).Msg("HTTP request")
	}

	resp, err := base.RoundTrip(req)
	if err != nil {
		log.Error().Err(err).Str("method", req.Method).Str("url", req.URL.String()).Msg("HTTP request failed")
		return nil, err
	}

	if respDump, err := httputil.DumpResponse(resp, true); err == nil {
		log.Debug().Str("method", req.Method).Str("url", req.URL.String()).Int("status_code", resp.StatusCode).Str("response_dump", string(respDump)).Msg("HTTP response")
	}
	return resp, nil
}

// debugLoggingRequested reports whether BABYSTEPS_DEBUG or DEBUG is "true".
func debugLoggingRequested() bool {
	return os.Getenv("BABYSTEPS_DEBUG") == "true" || os.Getenv("DEBUG") == "true"
}
