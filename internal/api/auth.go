package api

import (
	"context"

	"github.com/citysafe/citysafe-go/internal/models"
)

// Login exchanges credentials for a bearer token and the user record.
func (c *Client) Login(ctx context.Context, email, password string) (models.Credentials, error) {
	in := models.LoginInput{Email: email, Password: password}
	var out models.Credentials
	if err := c.postJSON(ctx, "/auth/login", in, &out); err != nil {
		return models.Credentials{}, err
	}
	return out, nil
}

// Register creates an account. The backend logs the new user straight in, so
// the response carries a token like Login's does.
func (c *Client) Register(ctx context.Context, in models.RegisterInput) (models.Credentials, error) {
	var out models.Credentials
	if err := c.postJSON(ctx, "/auth/register", in, &out); err != nil {
		return models.Credentials{}, err
	}
	return out, nil
}

// Me validates the current token and returns the authenticated user.
func (c *Client) Me(ctx context.Context) (models.User, error) {
	var out struct {
		User models.User `json:"user"`
	}
	if err := c.get(ctx, "/auth/me", nil, &out); err != nil {
		return models.User{}, err
	}
	return out.User, nil
}
