package api

import (
	"context"
	"encoding/json"
	"errors"
	"net/http"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	apierrors "github.com/Carcandyx/baby-steps-client/client/internal/errors"
	"github.com/Carcandyx/baby-steps-client/client/internal/types"
)

func TestLogin_PersistsSession(t *testing.T) {
	t.Parallel()
	var got types.LoginRequest
	b := newTestBackend(t, func(w http.ResponseWriter, r *http.Request) {
		assert.Equal(t, http.MethodPost, r.Method)
		assert.Equal(t, "/auth/sign-in", r.URL.Path)
		assert.Empty(t, r.Header.Get("Authorization"))
		_ = json.NewDecoder(r.Body).Decode(&got)
		writeJSON(w, http.StatusOK, `{"token":"tok123","user":{"id":"u1","firstName":"Ana","lastName":"Lee","email":"a@b.com"}}`)
	})
	r, s := b.requester("")
	resp, err := Login(context.Background(), r, types.LoginRequest{Email: "a@b.com", Password: "Secret1!"})
	require.NoError(t, err)
	assert.Equal(t, types.LoginRequest{Email: "a@b.com", Password: "Secret1!"}, got)
	assert.Equal(t, types.User{ID: "u1", FirstName: "Ana", LastName: "Lee", Email: "a@b.com"}, resp.User)

	tok, ok := s.Token()
	assert.True(t, ok)
	assert.Equal(t, "tok123", tok)
	require.NotNil(t, s.user)
	assert.Equal(t, "u1", s.user.ID)
}

func TestLogin_NoTokenLeavesSession(t *testing.T) {
	t.Parallel()
	b := newTestBackend(t, func(w http.ResponseWriter, r *http.Request) {
		writeJSON(w, http.StatusOK, `{"user":{"id":"u1"}}`)
	})
	r, s := b.requester("")
	resp, err := Login(context.Background(), r, types.LoginRequest{Email: "a@b.com"})
	require.NoError(t, err)
	assert.Equal(t, "u1", resp.User.ID)
	_, ok := s.Token()
	assert.False(t, ok)
}

func TestLogin_WrapsClientError(t *testing.T) {
	t.Parallel()
	b := newTestBackend(t, func(w http.ResponseWriter, r *http.Request) {
		writeJSON(w, http.StatusBadRequest, `{"error":"invalid_credentials","message":"Invalid email or password","statusCode":400}`)
	})
	r, _ := b.requester("")
	_, err := Login(context.Background(), r, types.LoginRequest{Email: "a@b.com", Password: "x"})
	var ae *apierrors.AuthError
	require.ErrorAs(t, err, &ae)
	assert.Equal(t, 400, ae.Status)
	assert.Equal(t, "invalid_credentials", ae.Code)
	assert.Equal(t, "Invalid email or password", ae.Message)
}

func TestLogin_UnauthorizedBecomesAuthError(t *testing.T) {
	t.Parallel()
	b := newTestBackend(t, func(w http.ResponseWriter, r *http.Request) {
		w.WriteHeader(http.StatusUnauthorized)
	})
	r, _ := b.requester("")
	_, err := Login(context.Background(), r, types.LoginRequest{})
	var ae *apierrors.AuthError
	require.ErrorAs(t, err, &ae)
	assert.Equal(t, 401, ae.Status)
	assert.Equal(t, apierrors.CodeUnauthorized, ae.Code)
}

func TestLogin_SessionWriteFailure(t *testing.T) {
	t.Parallel()
	b := newTestBackend(t, func(w http.ResponseWriter, r *http.Request) {
		writeJSON(w, http.StatusOK, `{"token":"tok","user":{"id":"u1"}}`)
	})
	r, s := b.requester("")
	s.setErr = errors.New("read-only storage")
	_, err := Login(context.Background(), r, types.LoginRequest{})
	var ae *apierrors.AuthError
	require.ErrorAs(t, err, &ae)
	assert.Equal(t, 400, ae.Status)
	assert.Equal(t, apierrors.CodeAuth, ae.Code)
	assert.Equal(t, "read-only storage", ae.Message)
}

func TestSignup(t *testing.T) {
	t.Parallel()
	var got types.SignupRequest
	b := newTestBackend(t, func(w http.ResponseWriter, r *http.Request) {
		assert.Equal(t, "/auth/sign-up", r.URL.Path)
		_ = json.NewDecoder(r.Body).Decode(&got)
		writeJSON(w, http.StatusCreated, `{"token":"t2","user":{"_id":"u2","firstName":"Bo","lastName":"Kim","email":"bo@k.com"}}`)
	})
	r, s := b.requester("")
	req := types.SignupRequest{FirstName: "Bo", LastName: "Kim", Email: "bo@k.com", Password: "Secret1!"}
	resp, err := Signup(context.Background(), r, req)
	require.NoError(t, err)
	assert.Equal(t, req, got)
	assert.Equal(t, "u2", resp.User.ID)
	tok, _ := s.Token()
	assert.Equal(t, "t2", tok)
}

func TestSignup_NetworkFailure(t *testing.T) {
	t.Parallel()
	r := &Requester{BaseURL: "http://example.com", HTTP: &http.Client{Transport: &errRT{}}, Session: &memSession{}}
	_, err := Signup(context.Background(), r, types.SignupRequest{})
	var ae *apierrors.AuthError
	require.ErrorAs(t, err, &ae)
	assert.Equal(t, 500, ae.Status)
}
