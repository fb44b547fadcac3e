package api

import (
	"context"
	"encoding/json"
	"net/http"
	"net/url"

	"github.com/Carcandyx/baby-steps-client/client/internal/types"
)

// ListBabies returns the babies of the signed-in user.
func ListBabies(ctx context.Context, r *Requester) ([]types.Baby, error) {
	return Do[[]types.Baby](ctx, r, "/baby", RequestOptions{Method: http.MethodGet, Authenticated: true})
}

// GetBaby retrieves a baby by ID.
func GetBaby(ctx context.Context, r *Requester, babyID string) (*types.Baby, error) {
	b, err := Do[types.Baby](ctx, r, "/baby/"+url.PathEscape(babyID), RequestOptions{Method: http.MethodGet, Authenticated: true})
	if err != nil {
		return nil, err
	}
	return &b, nil
}

// CreateBaby creates a baby for the signed-in user.
func CreateBaby(ctx context.Context, r *Requester, req types.CreateBabyRequest) (*types.Baby, error) {
	b, err := Do[types.Baby](ctx, r, "/baby", RequestOptions{Method: http.MethodPost, Body: req, Authenticated: true})
	if err != nil {
		return nil, err
	}
	return &b, nil
}

// DeleteBaby deletes a baby. The backend expects the ID in the body, not
// the path.
func DeleteBaby(ctx context.Context, r *Requester, babyID string) error {
	_, err := Do[json.RawMessage](ctx, r, "/baby", RequestOptions{
		Method:        http.MethodDelete,
		Body:          types.DeleteBabyRequest{BabyID: babyID},
		Authenticated: true,
	})
	return err
}
