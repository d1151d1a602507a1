package api

import (
	"context"
	"fmt"
	"net/url"

	"github.com/flexirent/flexirent-client/internal/domain"
	"github.com/flexirent/flexirent-client/internal/gateway"
)

type UsersClient struct {
	gw *gateway.Gateway
}

func NewUsersClient(gw *gateway.Gateway) *UsersClient {
	return &UsersClient{gw: gw}
}

func (c *UsersClient) List(ctx context.Context) ([]domain.User, error) {
	var users []domain.User
	if err := c.gw.Send(ctx, "GET", "/api/users", nil, nil, &users); err != nil {
		return nil, err
	}
	return users, nil
}

func (c *UsersClient) Get(ctx context.Context, id int64) (*domain.User, error) {
	var user domain.User
	if err := c.gw.Send(ctx, "GET", fmt.Sprintf("/api/users/%d", id), nil, nil, &user); err != nil {
		return nil, err
	}
	return &user, nil
}

func (c *UsersClient) UpdateRole(ctx context.Context, id int64, role domain.Role) error {
	query := url.Values{"role": {string(role)}}
	return c.gw.Send(ctx, "PUT", fmt.Sprintf("/api/users/%d/role", id), query, nil, nil)
}

func (c *UsersClient) Delete(ctx context.Context, id int64) error {
	return c.gw.Send(ctx, "DELETE", fmt.Sprintf("/api/users/%d", id), nil, nil, nil)
}
