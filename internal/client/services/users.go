package services

import (
	"context"
	"sync"

	"github.com/dmitrijs2005/sessionkeeper/internal/client/client"
	"github.com/dmitrijs2005/sessionkeeper/internal/client/models"
	"github.com/dmitrijs2005/sessionkeeper/internal/common"
)

// DefaultPageSize is the number of users per dashboard page.
const DefaultPageSize = 10

// UserService manages users on behalf of the signed-in user. Every call
// fails with common.ErrNotLoggedIn when there is no authenticated session.
type UserService interface {
	// List fetches one page. Starting a new List cancels the one still in
	// flight, and that older call returns common.ErrSuperseded.
	List(ctx context.Context, page int) (*models.UsersResponse, error)
	Get(ctx context.Context, id int64) (*models.User, error)
	Update(ctx context.Context, id int64, req models.UpdateUserRequest) (*models.User, error)
	Delete(ctx context.Context, id int64) error
}

type userService struct {
	client   client.Client
	session  Session
	pageSize int

	mu     sync.Mutex
	seq    uint64
	cancel context.CancelFunc
}

func NewUserService(c client.Client, s Session, pageSize int) UserService {
	if pageSize <= 0 {
		pageSize = DefaultPageSize
	}
	return &userService{client: c, session: s, pageSize: pageSize}
}

func (u *userService) credential() (string, error) {
	cred := u.session.Credential()
	if cred == "" {
		return "", common.ErrNotLoggedIn
	}
	return cred, nil
}

func (u *userService) List(ctx context.Context, page int) (*models.UsersResponse, error) {
	cred, err := u.credential()
	if err != nil {
		return nil, err
	}
	if page < 1 {
		page = 1
	}

	ctx, cancel := context.WithCancel(ctx)
	defer cancel()

	u.mu.Lock()
	if u.cancel != nil {
		u.cancel()
	}
	u.seq++
	seq := u.seq
	u.cancel = cancel
	u.mu.Unlock()

	resp, err := u.client.ListUsers(ctx, page, u.pageSize, cred)

	u.mu.Lock()
	stale := seq != u.seq
	if !stale {
		u.cancel = nil
	}
	u.mu.Unlock()

	if stale {
		return nil, common.ErrSuperseded
	}
	return resp, err
}

func (u *userService) Get(ctx context.Context, id int64) (*models.User, error) {
	cred, err := u.credential()
	if err != nil {
		return nil, err
	}
	return u.client.GetUser(ctx, id, cred)
}

func (u *userService) Update(ctx context.Context, id int64, req models.UpdateUserRequest) (*models.User, error) {
	cred, err := u.credential()
	if err != nil {
		return nil, err
	}
	return u.client.UpdateUser(ctx, id, req, cred)
}

func (u *userService) Delete(ctx context.Context, id int64) error {
	cred, err := u.credential()
	if err != nil {
		return err
	}
	return u.client.DeleteUser(ctx, id, cred)
}
