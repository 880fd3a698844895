package api

import (
	"context"
	"net/http"

	"github.com/jhoicas/inventario-client/internal/domain/entity"
)

// AuthGateway endpoints de autenticación. A diferencia del resto de
// recursos, /auth/login responde el payload a nivel raíz, sin envelope.
type AuthGateway struct {
	c *Client
}

// NewAuthGateway construye el gateway de autenticación.
func NewAuthGateway(c *Client) *AuthGateway {
	return &AuthGateway{c: c}
}

type loginRequest struct {
	Username string `json:"username"`
	Password string `json:"password"`
}

type loginResponse struct {
	Token string      `json:"token"`
	User  entity.User `json:"user"`
}

// Login autentica y devuelve el par (token, usuario).
func (g *AuthGateway) Login(ctx context.Context, username, password string) (entity.Credentials, error) {
	var out loginResponse
	body := loginRequest{Username: username, Password: password}
	if err := g.c.do(ctx, http.MethodPost, "/auth/login", body, &out); err != nil {
		return entity.Credentials{}, err
	}
	return entity.Credentials{Token: out.Token, User: out.User}, nil
}

type registerRequest struct {
	entity.User
	Password string `json:"password"`
}

// Register registra un usuario nuevo. No autentica: login es un paso aparte.
func (g *AuthGateway) Register(ctx context.Context, user entity.User, password string) error {
	body := registerRequest{User: user, Password: password}
	return g.c.do(ctx, http.MethodPost, "/auth/register", body, nil)
}

type changePasswordRequest struct {
	CurrentPassword string `json:"currentPassword"`
	NewPassword     string `json:"newPassword"`
}

// ChangePassword cambia la contraseña del usuario autenticado.
func (g *AuthGateway) ChangePassword(ctx context.Context, current, newPassword string) error {
	body := changePasswordRequest{CurrentPassword: current, NewPassword: newPassword}
	return g.c.do(ctx, http.MethodPost, "/auth/change-password", body, nil)
}
