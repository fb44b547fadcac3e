package api

import (
	"context"
	"net/http"

	"github.com/rs/zerolog/log"

	apierrors "github.com/Carcandyx/baby-steps-client/client/internal/errors"
	"github.com/Carcandyx/baby-steps-client/client/internal/types"
)

const (
	loginFallback  = "Error during login. Please try again."
	signupFallback = "Error during registration. Please try again."
)

// Login signs in and persists the returned session.
func Login(ctx context.Context, r *Requester, req types.LoginRequest) (*types.AuthResponse, error) {
	resp, err := authenticate(ctx, r, "/auth/sign-in", req)
	if err != nil {
		log.Error().Stack().Err(err).Msg("login failed")
		return nil, apierrors.NewAuthError(err, loginFallback)
	}
	return resp, nil
}

// Signup registers a user and persists the returned session.
func Signup(ctx context.Context, r *Requester, req types.SignupRequest) (*types.AuthResponse, error) {
	resp, err := authenticate(ctx, r, "/auth/sign-up", req)
	if err != nil {
		log.Error().Stack().Err(err).Msg("signup failed")
		return nil, apierrors.NewAuthError(err, signupFallback)
	}
	return resp, nil
}

func authenticate(ctx context.Context, r *Requester, endpoint string, body any) (*types.AuthResponse, error) {
	resp, err := Do[types.AuthResponse](ctx, r, endpoint, RequestOptions{Method: http.MethodPost, Body: body})
	if err != nil {
		return nil, err
	}
	// A response without a token is returned as-is and leaves the session alone.
	if resp.Token != "" && r.Session != nil {
		user := resp.User
		if err := r.Session.SetSession(resp.Token, &user); err != nil {
			return nil, err
		}
	}
	return &resp, nil
}
