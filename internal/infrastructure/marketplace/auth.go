package marketplace

import (
	"context"
	"strings"

	"github.com/renexpress/storefront-api/internal/domain"
	"github.com/renexpress/storefront-api/internal/domain/entity"
	"github.com/renexpress/storefront-api/internal/domain/repository"
)

var _ repository.AuthGateway = (*Client)(nil)

type loginRequest struct {
	Username string `json:"username"`
	Password string `json:"password"`
}

type registerRequest struct {
	FullName string `json:"full_name"`
	Phone    string `json:"phone"`
}

// Login POST /auth/client/login/. El backend espera el usuario en mayúsculas.
func (c *Client) Login(ctx context.Context, username, password string) (*entity.Client, error) {
	req := loginRequest{
		Username: strings.ToUpper(strings.TrimSpace(username)),
		Password: strings.TrimSpace(password),
	}
	raw, err := c.post(ctx, "/auth/client/login/", req)
	if err != nil {
		return nil, err
	}
	return clientFromAuth(raw, domain.ErrUnauthorized)
}

// Register POST /auth/client/register/.
func (c *Client) Register(ctx context.Context, fullName, phone string) (*entity.Client, error) {
	req := registerRequest{FullName: strings.TrimSpace(fullName), Phone: strings.TrimSpace(phone)}
	raw, err := c.post(ctx, "/auth/client/register/", req)
	if err != nil {
		return nil, err
	}
	return clientFromAuth(raw, domain.ErrInvalidInput)
}

func clientFromAuth(raw []byte, kind error) (*entity.Client, error) {
	o, err := checkSuccess(raw, kind)
	if err != nil {
		return nil, err
	}
	client := normalizeClient(o.first("client"))
	if client == nil || client.ID.IsZero() {
		return nil, &APIError{Status: 200, Message: o.str("message"), kind: kind}
	}
	return client, nil
}
