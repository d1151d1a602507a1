// Package api holds the resource clients: declarative mappings from a
// domain operation to a verb, path and payload on the request gateway.
// No retries, caching or branching live here; errors are whatever the
// gateway reports.
package api

import (
	"context"

	"github.com/flexirent/flexirent-client/internal/domain"
	"github.com/flexirent/flexirent-client/internal/gateway"
)

type AuthClient struct {
	gw *gateway.Gateway
}

func NewAuthClient(gw *gateway.Gateway) *AuthClient {
	return &AuthClient{gw: gw}
}

type SignInRequest struct {
	Username string `json:"username" validate:"required"`
	Password string `json:"password" validate:"required"`
}

// SignInResponse mirrors the remote's token response: the credential plus
// the identity it was issued for.
type SignInResponse struct {
	Token     string      `json:"token"`
	ID        int64       `json:"id"`
	Username  string      `json:"username"`
	Email     string      `json:"email"`
	FirstName string      `json:"firstName"`
	LastName  string      `json:"lastName"`
	Role      domain.Role `json:"role"`
}

type SignUpRequest struct {
	Username    string      `json:"username" validate:"required,min=3"`
	Email       string      `json:"email" validate:"required,email"`
	Password    string      `json:"password" validate:"required,min=6"`
	FirstName   string      `json:"firstName" validate:"required"`
	LastName    string      `json:"lastName" validate:"required"`
	PhoneNumber string      `json:"phoneNumber,omitempty"`
	Role        domain.Role `json:"role" validate:"required,oneof=TENANT LANDLORD"`
}

func (c *AuthClient) SignIn(ctx context.Context, req SignInRequest) (*SignInResponse, error) {
	var resp SignInResponse
	if err := c.gw.Send(ctx, "POST", "/api/auth/signin", nil, req, &resp); err != nil {
		return nil, err
	}
	return &resp, nil
}

func (c *AuthClient) SignUp(ctx context.Context, req SignUpRequest) error {
	return c.gw.Send(ctx, "POST", "/api/auth/signup", nil, req, nil)
}
