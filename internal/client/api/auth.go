package api

import (
	"context"
	"net/http"
)

type registerRequest struct {
	Email     string `json:"email"`
	Password  string `json:"password"`
	FirstName string `json:"first_name"`
	LastName  string `json:"last_name"`
}

type loginRequest struct {
	Email    string `json:"email"`
	Password string `json:"password"`
}

type tokenResponse struct {
	AccessToken string `json:"access_token"`
}

// Register creates a new account.
func (c *Client) Register(ctx context.Context, email, firstName, lastName string, password []byte) error {
	body := registerRequest{
		Email:     email,
		Password:  string(password),
		FirstName: firstName,
		LastName:  lastName,
	}
	return c.doJSON(ctx, http.MethodPost, "/api/users/register", body, nil)
}

// Login authenticates and returns a signed access token.
func (c *Client) Login(ctx context.Context, email string, password []byte) (string, error) {
	var resp tokenResponse
	err := c.doJSON(ctx, http.MethodPost, "/api/users/login", loginRequest{Email: email, Password: string(password)}, &resp)
	if err != nil {
		return "", err
	}
	return resp.AccessToken, nil
}

// Ping checks server liveness.
func (c *Client) Ping(ctx context.Context) error {
	return c.doJSON(ctx, http.MethodGet, "/api/health", nil, nil)
}
