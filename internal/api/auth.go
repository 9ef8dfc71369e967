package api

import (
	"context"
	"fmt"
	"net/url"

	"github.com/colbuilder-dev/colbuild/internal/models"
)

// CheckAuthResult is the response of GET /api/auth/check-auth. The backend
// answers 401 with status "success" and authenticated=false for anonymous
// callers, so an unauthenticated session is a normal outcome, not an error.
type CheckAuthResult struct {
	Authenticated bool   `json:"authenticated"`
	Username      string `json:"username"`
}

// CheckAuth queries whether the persisted session cookie is still valid.
func (c *Client) CheckAuth(ctx context.Context) (*CheckAuthResult, error) {
	var result CheckAuthResult
	if err := c.doJSON(ctx, "GET", "/api/auth/check-auth", nil, &result); err != nil {
		return nil, err
	}
	return &result, nil
}

// LoginResult carries the confirmed identity after a successful login.
type LoginResult struct {
	Username string `json:"username"`
}

// Login authenticates with username and password. The server sets the
// session cookie on success; remember asks for a long-lived session.
func (c *Client) Login(ctx context.Context, username, password string, remember bool) (*LoginResult, error) {
	body := map[string]interface{}{
		"username": username,
		"password": password,
		"remember": remember,
	}
	var result LoginResult
	if err := c.doJSON(ctx, "POST", "/api/auth/login", body, &result); err != nil {
		return nil, err
	}
	return &result, nil
}

// Logout invalidates the server-side session.
func (c *Client) Logout(ctx context.Context) error {
	return c.doJSON(ctx, "POST", "/api/auth/logout", map[string]interface{}{}, nil)
}

// Register creates an account. The server logs the new user in immediately,
// mirroring Login's contract.
func (c *Client) Register(ctx context.Context, username, email, password string) (*LoginResult, error) {
	body := map[string]interface{}{
		"username": username,
		"email":    email,
		"password": password,
	}
	var result LoginResult
	if err := c.doJSON(ctx, "POST", "/api/auth/register", body, &result); err != nil {
		return nil, err
	}
	return &result, nil
}

// RequestPasswordReset asks the server to mail a reset token. The server
// always reports success to prevent email enumeration.
func (c *Client) RequestPasswordReset(ctx context.Context, email string) (string, error) {
	body := map[string]interface{}{"email": email}
	var env envelope
	if err := c.doJSON(ctx, "POST", "/api/auth/reset_password_request", body, &env); err != nil {
		return "", err
	}
	return env.Message, nil
}

// VerifyResetToken checks a reset token and returns the account email it
// belongs to.
func (c *Client) VerifyResetToken(ctx context.Context, token string) (string, error) {
	var result struct {
		Email string `json:"email"`
	}
	path := fmt.Sprintf("/api/auth/verify_reset_token/%s", url.PathEscape(token))
	if err := c.doJSON(ctx, "GET", path, nil, &result); err != nil {
		return "", err
	}
	return result.Email, nil
}

// ResetPassword sets a new password authorized by a reset token.
func (c *Client) ResetPassword(ctx context.Context, token, password string) error {
	body := map[string]interface{}{"password": password}
	path := fmt.Sprintf("/api/auth/reset_password/%s", url.PathEscape(token))
	return c.doJSON(ctx, "POST", path, body, nil)
}

// GetProfile fetches the full account record.
func (c *Client) GetProfile(ctx context.Context) (*models.Profile, error) {
	var result struct {
		Data models.Profile `json:"data"`
	}
	if err := c.doJSON(ctx, "GET", "/api/auth/profile", nil, &result); err != nil {
		return nil, err
	}
	return &result.Data, nil
}

// UpdateProfile applies a partial account update.
func (c *Client) UpdateProfile(ctx context.Context, update models.ProfileUpdate) error {
	return c.doJSON(ctx, "PUT", "/api/auth/profile", update, nil)
}

// DeleteAccount deletes the account after re-confirming the password.
func (c *Client) DeleteAccount(ctx context.Context, password string) error {
	body := map[string]interface{}{"password": password}
	return c.doJSON(ctx, "DELETE", "/api/auth/delete_account", body, nil)
}
