// Package services contains the application flows of the client: signing in
// and out, registration, health probing and user management. Each flow talks
// to the backend through client.Client and records the outcome in the
// session.
package services

import (
	"context"
	"fmt"

	"github.com/dmitrijs2005/sessionkeeper/internal/client/client"
	"github.com/dmitrijs2005/sessionkeeper/internal/client/models"
	"github.com/dmitrijs2005/sessionkeeper/internal/client/session"
	"github.com/dmitrijs2005/sessionkeeper/internal/common"
)

// Session is the part of session.Controller the services depend on.
type Session interface {
	Login(ctx context.Context, credential string, u *models.User) error
	Logout(ctx context.Context) error
	Credential() string
	CurrentState() session.State
}

// AuthService defines authentication operations for the CLI.
//
// Contract:
//   - Login: authenticate against the backend and start a session.
//   - Register: validate the form locally, create the account, start a session.
//   - Logout: end the session.
//   - Health: check backend liveness.
type AuthService interface {
	Login(ctx context.Context, email, password string) (*models.User, error)
	Register(ctx context.Context, form RegisterForm) (*models.User, error)
	Logout(ctx context.Context) error
	Health(ctx context.Context) (*models.HealthResponse, error)
}

type authService struct {
	client  client.Client
	session Session
}

func NewAuthService(c client.Client, s Session) AuthService {
	return &authService{client: c, session: s}
}

func (a *authService) Login(ctx context.Context, email, password string) (*models.User, error) {
	resp, err := a.client.Login(ctx, models.LoginRequest{Email: email, Password: password})
	if err != nil {
		return nil, err
	}
	return a.start(ctx, resp)
}

// Register makes no network call when the form is invalid; the returned
// error is then a *ValidationError.
func (a *authService) Register(ctx context.Context, form RegisterForm) (*models.User, error) {
	if err := form.Validate(); err != nil {
		return nil, err
	}

	resp, err := a.client.Register(ctx, models.RegisterRequest{
		Email:    form.Email,
		Name:     form.Name,
		Password: form.Password,
	})
	if err != nil {
		return nil, err
	}
	return a.start(ctx, resp)
}

func (a *authService) start(ctx context.Context, resp *models.AuthResponse) (*models.User, error) {
	if resp == nil || resp.Token == "" || resp.User == nil {
		return nil, fmt.Errorf("%w: %w", client.ErrInvalidResponse, common.ErrInvalidSession)
	}
	if err := a.session.Login(ctx, resp.Token, resp.User); err != nil {
		return nil, err
	}
	return resp.User, nil
}

func (a *authService) Logout(ctx context.Context) error {
	return a.session.Logout(ctx)
}

func (a *authService) Health(ctx context.Context) (*models.HealthResponse, error) {
	return a.client.HealthCheck(ctx)
}
