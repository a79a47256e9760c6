package services

import (
	"context"
	"sync"

	"github.com/dmitrijs2005/sessionkeeper/internal/client/client"
	"github.com/dmitrijs2005/sessionkeeper/internal/client/models"
)

// fakeClient implements client.Client for unit tests.
type fakeClient struct {
	mu sync.Mutex

	LoginResp *models.AuthResponse
	LoginErr  error
	LastLogin models.LoginRequest

	RegisterResp  *models.AuthResponse
	RegisterErr   error
	RegisterCalls int
	LastRegister  models.RegisterRequest

	// ListFn, when set, replaces the canned list response.
	ListFn    func(ctx context.Context, page, limit int, cred string) (*models.UsersResponse, error)
	ListResp  *models.UsersResponse
	LastLimit int
	LastCred  string

	User      *models.User
	UserErr   error
	DeleteErr error
	LastID    int64

	Health *models.HealthResponse
}

var _ client.Client = (*fakeClient)(nil)

func (f *fakeClient) Login(_ context.Context, req models.LoginRequest) (*models.AuthResponse, error) {
	f.LastLogin = req
	return f.LoginResp, f.LoginErr
}

func (f *fakeClient) Register(_ context.Context, req models.RegisterRequest) (*models.AuthResponse, error) {
	f.RegisterCalls++
	f.LastRegister = req
	return f.RegisterResp, f.RegisterErr
}

func (f *fakeClient) ListUsers(ctx context.Context, page, limit int, cred string) (*models.UsersResponse, error) {
	f.mu.Lock()
	f.LastLimit = limit
	f.LastCred = cred
	fn := f.ListFn
	f.mu.Unlock()

	if fn != nil {
		return fn(ctx, page, limit, cred)
	}
	return f.ListResp, nil
}

func (f *fakeClient) GetUser(_ context.Context, id int64, cred string) (*models.User, error) {
	f.LastID, f.LastCred = id, cred
	return f.User, f.UserErr
}

func (f *fakeClient) UpdateUser(_ context.Context, id int64, _ models.UpdateUserRequest, cred string) (*models.User, error) {
	f.LastID, f.LastCred = id, cred
	return f.User, f.UserErr
}

func (f *fakeClient) DeleteUser(_ context.Context, id int64, cred string) error {
	f.LastID, f.LastCred = id, cred
	return f.DeleteErr
}

func (f *fakeClient) HealthCheck(context.Context) (*models.HealthResponse, error) {
	return f.Health, nil
}
