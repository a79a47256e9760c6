package client

import (
	"context"

	"github.com/dmitrijs2005/sessionkeeper/internal/client/models"
)

// Client is the backend API contract. The credential argument is the bearer
// token to send; an empty credential sends no Authorization header.
type Client interface {
	Login(ctx context.Context, req models.LoginRequest) (*models.AuthResponse, error)
	Register(ctx context.Context, req models.RegisterRequest) (*models.AuthResponse, error)
	ListUsers(ctx context.Context, page, limit int, credential string) (*models.UsersResponse, error)
	GetUser(ctx context.Context, id int64, credential string) (*models.User, error)
	UpdateUser(ctx context.Context, id int64, req models.UpdateUserRequest, credential string) (*models.User, error)
	DeleteUser(ctx context.Context, id int64, credential string) error
	HealthCheck(ctx context.Context) (*models.HealthResponse, error)
}
