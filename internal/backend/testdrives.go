package backend

import (
	"context"
	"net/http"
	"net/url"
)

// TestDriveInput is the payload for requesting or rescheduling a test drive.
type TestDriveInput struct {
	VehicleID     string `json:"vehicleId"`
	FullName      string `json:"fullName"`
	Email         string `json:"email"`
	Phone         string `json:"phone"`
	TestDriveDate string `json:"testDriveDate"`
	TestDriveTime string `json:"testDriveTime"`
	Message       string `json:"message,omitempty"`
	Status        string `json:"status,omitempty"`
}

// CreateTestDrive requests a test drive appointment.
func (c *Client) CreateTestDrive(ctx context.Context, token string, in TestDriveInput) (string, error) {
	env, err := c.do(ctx, http.MethodPost, "/testdrives", token, in, nil)
	if err != nil {
		return "", err
	}
	return env.message(), nil
}

// UpdateTestDrive reschedules an appointment. A rescheduled appointment
// goes back to pending.
func (c *Client) UpdateTestDrive(ctx context.Context, token, id string, in TestDriveInput) (string, error) {
	in.Status = "pending"
	env, err := c.do(ctx, http.MethodPut, "/testdrives/"+url.PathEscape(id), token, in, nil)
	if err != nil {
		return "", err
	}
	return env.message(), nil
}

// MyTestDrives returns the caller's appointments. An admin gets every
// appointment, or a single user's when forUserID is set.
func (c *Client) MyTestDrives(ctx context.Context, token, forUserID string) ([]TestDrive, error) {
	var q url.Values
	if forUserID != "" {
		q = url.Values{"user": {forUserID}}
	}
	env, err := c.do(ctx, http.MethodGet, "/testdrives/my", token, nil, q)
	if err != nil {
		return nil, err
	}
	var drives []TestDrive
	if err := decodeData(env, &drives); err != nil {
		return nil, err
	}
	return drives, nil
}

// SetTestDriveStatus moves an appointment to pending, confirmed,
// cancelled or completed. Admin only.
func (c *Client) SetTestDriveStatus(ctx context.Context, token, id, status string) error {
	_, err := c.do(ctx, http.MethodPut, "/testdrives/"+url.PathEscape(id)+"/status", token, map[string]string{"status": status}, nil)
	return err
}

// CancelTestDrive cancels the caller's own appointment.
func (c *Client) CancelTestDrive(ctx context.Context, token, id string) error {
	_, err := c.do(ctx, http.MethodPut, "/testdrives/"+url.PathEscape(id), token, map[string]string{"status": "cancelled"}, nil)
	return err
}

// DeleteTestDrive removes an appointment entirely. Admin only.
func (c *Client) DeleteTestDrive(ctx context.Context, token, id string) error {
	_, err := c.do(ctx, http.MethodDelete, "/testdrives/"+url.PathEscape(id), token, nil, nil)
	return err
}

// TestDriveStatusStats returns appointment counts per status. Admin only.
func (c *Client) TestDriveStatusStats(ctx context.Context, token string) ([]StatPoint, error) {
	env, err := c.do(ctx, http.MethodGet, "/testdrives/stats/status", token, nil, nil)
	if err != nil {
		return nil, err
	}
	var stats []StatPoint
	if err := decodeData(env, &stats); err != nil {
		return nil, err
	}
	return stats, nil
}
