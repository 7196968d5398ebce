package supabase

import (
	"context"
	"net/http"

	"github.com/google/uuid"

	"github.com/agrox/fieldops/internal/backend"
)

// GetUser runs GET /auth/v1/user with the given access token.
func (c *Client) GetUser(ctx context.Context, accessToken string) (*backend.User, error) {
	req, err := c.newRequest(backend.WithAccessToken(ctx, accessToken), http.MethodGet, "/auth/v1/user", nil)
	if err != nil {
		return nil, err
	}

	var user backend.User
	if err := c.do(req, &user); err != nil {
		return nil, err
	}
	if user.ID == uuid.Nil {
		return nil, backend.NewError("", "not_authenticated", http.StatusUnauthorized)
	}
	return &user, nil
}
