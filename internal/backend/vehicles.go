package backend

import (
	"context"
	"net/http"
	"net/url"
	"strconv"
)

// VehicleFilter narrows a listing query. Zero fields are omitted from the
// request, matching everything.
type VehicleFilter struct {
	Type     string // "buy" or "rent"
	Brand    string
	Model    string
	MinPrice int
	MaxPrice int
	MinYear  int
	MaxYear  int
	Limit    int
	Sort     string
}

func (f VehicleFilter) query() url.Values {
	q := url.Values{}
	set := func(key, val string) {
		if val != "" {
			q.Set(key, val)
		}
	}
	setInt := func(key string, val int) {
		if val > 0 {
			q.Set(key, strconv.Itoa(val))
		}
	}
	set("type", f.Type)
	set("brand", f.Brand)
	set("model", f.Model)
	setInt("minPrice", f.MinPrice)
	setInt("maxPrice", f.MaxPrice)
	setInt("minYear", f.MinYear)
	setInt("maxYear", f.MaxYear)
	setInt("limit", f.Limit)
	set("sort", f.Sort)
	return q
}

// ListVehicles returns the listings matching the filter plus the total count.
func (c *Client) ListVehicles(ctx context.Context, filter VehicleFilter) ([]Vehicle, int, error) {
	env, err := c.do(ctx, http.MethodGet, "/vehicles", "", nil, filter.query())
	if err != nil {
		return nil, 0, err
	}
	var vehicles []Vehicle
	if err := decodeData(env, &vehicles); err != nil {
		return nil, 0, err
	}
	return vehicles, env.Count, nil
}

// GetVehicle fetches a single listing by id.
func (c *Client) GetVehicle(ctx context.Context, id string) (*Vehicle, error) {
	env, err := c.do(ctx, http.MethodGet, "/vehicles/"+url.PathEscape(id), "", nil, nil)
	if err != nil {
		return nil, err
	}
	var vehicle Vehicle
	if err := decodeData(env, &vehicle); err != nil {
		return nil, err
	}
	return &vehicle, nil
}

// CreateVehicle adds a listing. Admin only.
func (c *Client) CreateVehicle(ctx context.Context, token string, in VehicleInput) (string, error) {
	env, err := c.do(ctx, http.MethodPost, "/vehicles", token, in, nil)
	if err != nil {
		return "", err
	}
	return env.message(), nil
}

// UpdateVehicle replaces a listing. Admin only.
func (c *Client) UpdateVehicle(ctx context.Context, token, id string, in VehicleInput) (string, error) {
	env, err := c.do(ctx, http.MethodPut, "/vehicles/"+url.PathEscape(id), token, in, nil)
	if err != nil {
		return "", err
	}
	return env.message(), nil
}

// DeleteVehicle removes a listing. Admin only.
func (c *Client) DeleteVehicle(ctx context.Context, token, id string) error {
	_, err := c.do(ctx, http.MethodDelete, "/vehicles/"+url.PathEscape(id), token, nil, nil)
	return err
}

// VehicleAdditionStats returns vehicles added per period for the admin
// dashboard. Admin only.
func (c *Client) VehicleAdditionStats(ctx context.Context, token string) ([]StatPoint, error) {
	env, err := c.do(ctx, http.MethodGet, "/vehicles/stats/additions", token, nil, nil)
	if err != nil {
		return nil, err
	}
	var stats []StatPoint
	if err := decodeData(env, &stats); err != nil {
		return nil, err
	}
	return stats, nil
}
