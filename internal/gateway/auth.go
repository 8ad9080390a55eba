package gateway

import (
	"context"
	"errors"
	"net/http"

	"github.com/olejniktut/dc-landscaping/internal/domain"
	"github.com/olejniktut/dc-landscaping/internal/dto"
)

// Login exchanges credentials for a bearer token. Rejected credentials come
// back as ErrInvalidCredentials; the backend detail is preserved in the chain.
func (c *Client) Login(ctx context.Context, username, password string) (string, error) {
	var token dto.TokenResponse
	err := c.do(ctx, http.MethodPost, "/auth/login", nil,
		dto.LoginRequest{Username: username, Password: password}, &token, callOpts{})
	if err != nil {
		var apiErr *APIError
		if errors.As(err, &apiErr) && apiErr.StatusCode == http.StatusUnauthorized {
			// Keep the backend detail reachable for the failure result while
			// making the rejection checkable as a credential error.
			return "", errors.Join(domain.ErrInvalidCredentials, apiErr)
		}
		return "", err
	}
	return token.AccessToken, nil
}

// GetMe fetches the profile for the current token
func (c *Client) GetMe(ctx context.Context) (*domain.User, error) {
	var user domain.User
	if err := c.do(ctx, http.MethodGet, "/auth/me", nil, nil, &user, callOpts{authed: true}); err != nil {
		return nil, err
	}
	return &user, nil
}
