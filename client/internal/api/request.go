package api

import (
	"bytes"
	"context"
	"encoding/json"
	"fmt"
	"io"
	"net/http"

	"github.com/google/uuid"
	"github.com/rs/zerolog/log"

	apierrors "github.com/Carcandyx/baby-steps-client/client/internal/errors"
)

// maxBodyBytes caps how much of a response body is read.
const maxBodyBytes = 8 << 20

// RequestOptions describes one call to Do.
type RequestOptions struct {
	Method        string
	Headers       map[string]string
	Body          any
	Authenticated bool
}

var allowedMethods = map[string]bool{
	http.MethodGet:    true,
	http.MethodPost:   true,
	http.MethodPut:    true,
	http.MethodPatch:  true,
	http.MethodDelete: true,
}

// Do issues a single request and decodes a 2xx response into T.
//
// Every failure is returned as a *errors.ClientError. A 401 additionally
// clears the session and fires r.OnUnauthorized before returning.
func Do[T any](ctx context.Context, r *Requester, endpoint string, opts RequestOptions) (T, error) {
	var out T
	content, err := r.send(ctx, endpoint, opts)
	if err != nil {
		return out, err
	}
	payload, err := content.successPayload()
	if err != nil {
		return out, apierrors.FromTransport(err)
	}
	if err := json.Unmarshal(payload, &out); err != nil {
		var zero T
		if content.Kind == ContentEmpty {
			// {} does not fit every T (slices); an empty body is still a success.
			return zero, nil
		}
		return zero, &apierrors.ClientError{
			Status:  http.StatusInternalServerError,
			Message: fmt.Sprintf("decode %s response: %v", content.Kind, err),
			Code:    apierrors.CodeDecode,
			Cause:   err,
		}
	}
	return out, nil
}

func (r *Requester) send(ctx context.Context, endpoint string, opts RequestOptions) (Content, error) {
	if err := ctx.Err(); err != nil {
		return Content{}, apierrors.FromTransport(err)
	}
	if !allowedMethods[opts.Method] {
		return Content{}, apierrors.New(http.StatusInternalServerError, apierrors.CodeInvalidMethod,
			fmt.Sprintf("unsupported method %q", opts.Method))
	}

	var token string
	if opts.Authenticated {
		var ok bool
		if r.Session != nil {
			token, ok = r.Session.Token()
		}
		if !ok {
			return Content{}, apierrors.MissingToken()
		}
	}

	var body io.Reader
	if opts.Body != nil {
		raw, err := json.Marshal(opts.Body)
		if err != nil {
			return Content{}, &apierrors.ClientError{
				Status:  http.StatusInternalServerError,
				Message: err.Error(),
				Code:    apierrors.CodeEncode,
				Cause:   err,
			}
		}
		body = bytes.NewReader(raw)
	}

	url := r.resolve(endpoint)
	httpReq, err := http.NewRequestWithContext(ctx, opts.Method, url, body)
	if err != nil {
		return Content{}, apierrors.FromTransport(err)
	}
	httpReq.Header.Set("Content-Type", "application/json")
	for k, v := range opts.Headers {
		httpReq.Header.Set(k, v)
	}
	if httpReq.Header.Get("X-Request-Id") == "" {
		httpReq.Header.Set("X-Request-Id", uuid.NewString())
	}
	if token != "" {
		httpReq.Header.Set("Authorization", "Bearer "+token)
	}

	resp, err := r.HTTP.Do(httpReq)
	if err != nil {
		ce := apierrors.FromTransport(err)
		log.Error().Stack().Err(err).Str("method", opts.Method).Str("url", url).Str("error_code", ce.Code).Msg("API request failed")
		return Content{}, ce
	}
	defer func() { _ = resp.Body.Close() }()

	raw, err := io.ReadAll(io.LimitReader(resp.Body, maxBodyBytes+1))
	if err != nil {
		return Content{}, apierrors.FromTransport(err)
	}
	if len(raw) > maxBodyBytes {
		log.Error().Int("status", resp.StatusCode).Str("method", opts.Method).Str("url", url).Msg("response body over limit")
		return Content{}, apierrors.New(http.StatusInternalServerError, apierrors.CodeTooLarge,
			fmt.Sprintf("response body exceeds %d bytes", maxBodyBytes))
	}
	content := ParseContent(raw)

	if resp.StatusCode == http.StatusUnauthorized {
		log.Warn().Str("method", opts.Method).Str("url", url).Msg("unauthorized response, clearing session")
		r.invalidate()
		return Content{}, apierrors.Unauthorized()
	}

	if resp.StatusCode < 200 || resp.StatusCode > 299 {
		var jsonBody []byte
		if content.Kind == ContentJSON {
			jsonBody = content.Raw
		}
		ce := apierrors.FromResponse(resp.StatusCode, jsonBody, content.Text())
		log.Error().
			Int("status", ce.Status).
			Str("error_code", ce.Code).
			Str("message", ce.Message).
			Str("method", opts.Method).
			Str("url", url).
			Msg("API error")
		return Content{}, ce
	}
	return content, nil
}

func (r *Requester) invalidate() {
	if r.Session != nil {
		r.Session.Clear()
	}
	if r.OnUnauthorized != nil {
		r.OnUnauthorized()
	}
}
