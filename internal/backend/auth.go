package backend

import (
	"context"
	"net/http"
)

// Credentials is the login payload.
type Credentials struct {
	Email    string `json:"email"`
	Password string `json:"password"`
}

// Registration is the signup payload.
type Registration struct {
	Name     string `json:"name"`
	Email    string `json:"email"`
	Password string `json:"password"`
}

// ContactMessage is a message sent through the public contact form.
type ContactMessage struct {
	Name    string `json:"name"`
	Email   string `json:"email"`
	Subject string `json:"subject"`
	Message string `json:"message"`
}

// Login exchanges credentials for a bearer token and the account profile.
func (c *Client) Login(ctx context.Context, creds Credentials) (string, *User, error) {
	env, err := c.do(ctx, http.MethodPost, "/auth/login", "", creds, nil)
	if err != nil {
		return "", nil, err
	}
	return env.Token, env.User, nil
}

// Register creates an account and returns the API's confirmation message.
func (c *Client) Register(ctx context.Context, reg Registration) (string, error) {
	env, err := c.do(ctx, http.MethodPost, "/auth/register", "", reg, nil)
	if err != nil {
		return "", err
	}
	return env.message(), nil
}

// Me returns the profile bound to the token. A revoked or expired token
// yields a 401 *Error, detectable with IsUnauthorized.
func (c *Client) Me(ctx context.Context, token string) (*User, error) {
	env, err := c.do(ctx, http.MethodGet, "/auth/me", token, nil, nil)
	if err != nil {
		return nil, err
	}
	if env.User != nil {
		return env.User, nil
	}
	var user User
	if err := decodeData(env, &user); err != nil {
		return nil, err
	}
	return &user, nil
}

// ForgotPassword asks the API to email a reset link. The API answers with
// the same message whether or not the address exists.
func (c *Client) ForgotPassword(ctx context.Context, email string) (string, error) {
	env, err := c.do(ctx, http.MethodPost, "/auth/forgotpassword", "", map[string]string{"email": email}, nil)
	if err != nil {
		return "", err
	}
	return env.message(), nil
}

// ResetPassword sets a new password using a reset token from the email link.
func (c *Client) ResetPassword(ctx context.Context, resetToken, password string) (string, error) {
	env, err := c.do(ctx, http.MethodPut, "/auth/resetpassword/"+resetToken, "", map[string]string{"password": password}, nil)
	if err != nil {
		return "", err
	}
	return env.message(), nil
}

// Contact submits the public contact form.
func (c *Client) Contact(ctx context.Context, msg ContactMessage) (string, error) {
	env, err := c.do(ctx, http.MethodPost, "/auth/contact", "", msg, nil)
	if err != nil {
		return "", err
	}
	return env.message(), nil
}
