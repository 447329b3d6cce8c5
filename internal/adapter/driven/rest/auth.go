package rest

import (
	"context"
	"net/http"

	"github.com/Juliorubiodev/inku-go/internal/domain/model"
	"github.com/Juliorubiodev/inku-go/internal/domain/port/driven"
)

// Compile-time interface satisfaction check.
var _ driven.AuthClient = (*AuthService)(nil)

// AuthService implements the driven.AuthClient port against the auth
// backend's dev helper surface.
type AuthService struct {
	client *Client
}

// NewAuthService wraps a pipeline client for the auth base URL.
func NewAuthService(client *Client) *AuthService {
	return &AuthService{client: client}
}

func (s *AuthService) DevRegister(ctx context.Context, email, password string) (*driven.DevCredentials, error) {
	var creds driven.DevCredentials
	body := map[string]string{"email": email, "password": password}
	if err := s.client.do(ctx, http.MethodPost, "/api/auth/dev/register", nil, body, &creds); err != nil {
		return nil, err
	}
	return &creds, nil
}

func (s *AuthService) DevLogin(ctx context.Context, email, password string) (*driven.DevCredentials, error) {
	var creds driven.DevCredentials
	body := map[string]string{"email": email, "password": password}
	if err := s.client.do(ctx, http.MethodPost, "/api/auth/dev/login", nil, body, &creds); err != nil {
		return nil, err
	}
	return &creds, nil
}

func (s *AuthService) Me(ctx context.Context) (*model.AuthUser, error) {
	var user model.AuthUser
	if err := s.client.do(ctx, http.MethodGet, "/api/auth/me", nil, nil, &user); err != nil {
		return nil, err
	}
	return &user, nil
}
