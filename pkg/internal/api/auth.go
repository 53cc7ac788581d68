package api

import (
	"context"
	"strings"

	"github.com/campus-connect/campusctl/pkg/internal/models"
)

type SignInRequest struct {
	Email    string `json:"email,omitempty"`
	Usn      string `json:"usn,omitempty"`
	Password string `json:"password"`
}

type SignUpRequest struct {
	Name       string `json:"name" validate:"required"`
	Email      string `json:"email,omitempty" validate:"omitempty,email"`
	Usn        string `json:"usn,omitempty"`
	Department string `json:"department,omitempty"`
	Password   string `json:"password" validate:"required,min=8"`
}

// SignIn authenticates against the role-specific route and stores the
// returned bearer token alongside the last-known role.
func (c *Client) SignIn(ctx context.Context, role models.UserRole, request SignInRequest) (models.Token, error) {
	var token models.Token
	if err := c.post(ctx, "/"+role+"/signin", request, &token); err != nil {
		return token, err
	}

	access := strings.TrimPrefix(token.AccessToken, "Bearer ")
	if err := c.session.SetToken(access, role); err != nil {
		return token, err
	}
	return token, nil
}

func (c *Client) SignUp(ctx context.Context, role models.UserRole, request SignUpRequest) (models.User, error) {
	var user models.User
	err := c.post(ctx, "/"+role+"/signup", request, &user)
	return user, err
}

// Me fetches the session identity and populates the store; every other
// component reads the identity from there.
func (c *Client) Me(ctx context.Context) (models.User, error) {
	var user models.User
	if err := c.get(ctx, "/me", nil, &user); err != nil {
		return user, err
	}
	c.session.SetUser(user)
	return user, nil
}

func (c *Client) Logout(ctx context.Context) error {
	if err := c.post(ctx, "/logout", nil, nil); err != nil {
		return err
	}
	c.session.Clear()
	return nil
}
