package backend

import (
	"context"
	"net/http"
	"net/url"
)

// UserUpdate carries the mutable account fields. Nil fields are omitted
// so the API only touches what the caller sets.
type UserUpdate struct {
	Role     *string `json:"role,omitempty"`
	IsActive *bool   `json:"isActive,omitempty"`
}

// ListUsers returns every account plus the total count. Admin only.
func (c *Client) ListUsers(ctx context.Context, token string) ([]User, int, error) {
	env, err := c.do(ctx, http.MethodGet, "/users", token, nil, nil)
	if err != nil {
		return nil, 0, err
	}
	var users []User
	if err := decodeData(env, &users); err != nil {
		return nil, 0, err
	}
	return users, env.Count, nil
}

// GetUser fetches a single account by id. Admin only.
func (c *Client) GetUser(ctx context.Context, token, id string) (*User, error) {
	env, err := c.do(ctx, http.MethodGet, "/users/"+url.PathEscape(id), token, nil, nil)
	if err != nil {
		return nil, err
	}
	var user User
	if err := decodeData(env, &user); err != nil {
		return nil, err
	}
	return &user, nil
}

// UpdateUser changes an account's role or active flag. Admin only.
func (c *Client) UpdateUser(ctx context.Context, token, id string, update UserUpdate) error {
	_, err := c.do(ctx, http.MethodPut, "/users/"+url.PathEscape(id), token, update, nil)
	return err
}

// DeleteUser removes an account. Admin only.
func (c *Client) DeleteUser(ctx context.Context, token, id string) error {
	_, err := c.do(ctx, http.MethodDelete, "/users/"+url.PathEscape(id), token, nil, nil)
	return err
}

// Favorites returns the caller's favorite vehicles, fully populated.
func (c *Client) Favorites(ctx context.Context, token string) ([]Vehicle, error) {
	env, err := c.do(ctx, http.MethodGet, "/users/favorites", token, nil, nil)
	if err != nil {
		return nil, err
	}
	var vehicles []Vehicle
	if err := decodeData(env, &vehicles); err != nil {
		return nil, err
	}
	return vehicles, nil
}

// ToggleFavorite adds or removes a vehicle from the caller's favorites.
// The API decides which; the returned message says what happened.
func (c *Client) ToggleFavorite(ctx context.Context, token, vehicleID string) (string, error) {
	env, err := c.do(ctx, http.MethodPost, "/users/favorites/toggle", token, map[string]string{"vehicleId": vehicleID}, nil)
	if err != nil {
		return "", err
	}
	return env.message(), nil
}
