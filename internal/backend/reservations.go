package backend

import (
	"context"
	"net/http"
	"net/url"
)

// ReservationInput is the payload for booking a rental.
type ReservationInput struct {
	Vehicle   string `json:"vehicle"`
	FullName  string `json:"fullName"`
	Email     string `json:"email"`
	Phone     string `json:"phone"`
	StartDate string `json:"startDate"`
	EndDate   string `json:"endDate"`
	Message   string `json:"message,omitempty"`
}

// CreateReservation books a rental. The API assigns the pending status.
// Token is optional: guests may book too.
func (c *Client) CreateReservation(ctx context.Context, token string, in ReservationInput) (string, error) {
	env, err := c.do(ctx, http.MethodPost, "/reservations", token, in, nil)
	if err != nil {
		return "", err
	}
	return env.message(), nil
}

// MyReservations returns the caller's reservations. An admin gets every
// reservation, or a single user's when forUserID is set.
func (c *Client) MyReservations(ctx context.Context, token, forUserID string) ([]Reservation, error) {
	var q url.Values
	if forUserID != "" {
		q = url.Values{"user": {forUserID}}
	}
	env, err := c.do(ctx, http.MethodGet, "/reservations/my", token, nil, q)
	if err != nil {
		return nil, err
	}
	var reservations []Reservation
	if err := decodeData(env, &reservations); err != nil {
		return nil, err
	}
	return reservations, nil
}

// SetReservationStatus moves a reservation to pending, confirmed,
// cancelled or completed. Admin only.
func (c *Client) SetReservationStatus(ctx context.Context, token, id, status string) error {
	_, err := c.do(ctx, http.MethodPut, "/reservations/"+url.PathEscape(id)+"/status", token, map[string]string{"status": status}, nil)
	return err
}

// CancelReservation cancels the caller's own reservation.
func (c *Client) CancelReservation(ctx context.Context, token, id string) error {
	_, err := c.do(ctx, http.MethodPut, "/reservations/"+url.PathEscape(id), token, map[string]string{"status": "cancelled"}, nil)
	return err
}

// DeleteReservation removes a reservation entirely. Admin only.
func (c *Client) DeleteReservation(ctx context.Context, token, id string) error {
	_, err := c.do(ctx, http.MethodDelete, "/reservations/"+url.PathEscape(id), token, nil, nil)
	return err
}

// ReservationStatusStats returns reservation counts per status. Admin only.
func (c *Client) ReservationStatusStats(ctx context.Context, token string) ([]StatPoint, error) {
	env, err := c.do(ctx, http.MethodGet, "/reservations/stats/status", token, nil, nil)
	if err != nil {
		return nil, err
	}
	var stats []StatPoint
	if err := decodeData(env, &stats); err != nil {
		return nil, err
	}
	return stats, nil
}
