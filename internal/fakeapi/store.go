package fakeapi

import (
	"cmp"
	"errors"
	"math"
	"slices"
	"sync"
	"time"

	"github.com/dmitrijs2005/sessionkeeper/internal/client/models"
	"golang.org/x/crypto/bcrypt"
)

var (
	errEmailExists        = errors.New("email already exists")
	errInvalidCredentials = errors.New("invalid credentials")
	errUserNotFound       = errors.New("user not found")
)

type account struct {
	user models.User
	hash []byte
}

type store struct {
	mu     sync.RWMutex
	byID   map[int64]*account
	nextID int64
	cost   int
	now    func() time.Time
}

func newStore(cost int, now func() time.Time) *store {
	return &store{byID: make(map[int64]*account), nextID: 1, cost: cost, now: now}
}

func (s *store) findByEmail(email string) *account {
	for _, a := range s.byID {
		if a.user.Email == email {
			return a
		}
	}
	return nil
}

func (s *store) create(email, name, password string) (models.User, error) {
	hash, err := bcrypt.GenerateFromPassword([]byte(password), s.cost)
	if err != nil {
		return models.User{}, err
	}

	s.mu.Lock()
	defer s.mu.Unlock()

	if s.findByEmail(email) != nil {
		return models.User{}, errEmailExists
	}

	ts := s.now().UTC()
	a := &account{
		user: models.User{ID: s.nextID, Email: email, Name: name, CreatedAt: ts, UpdatedAt: ts},
		hash: hash,
	}
	s.byID[a.user.ID] = a
	s.nextID++
	return a.user, nil
}

func (s *store) authenticate(email, password string) (models.User, error) {
	s.mu.RLock()
	a := s.findByEmail(email)
	s.mu.RUnlock()

	if a == nil {
		return models.User{}, errInvalidCredentials
	}
	if err := bcrypt.CompareHashAndPassword(a.hash, []byte(password)); err != nil {
		return models.User{}, errInvalidCredentials
	}
	return a.user, nil
}

func (s *store) get(id int64) (models.User, error) {
	s.mu.RLock()
	defer s.mu.RUnlock()
	a, ok := s.byID[id]
	if !ok {
		return models.User{}, errUserNotFound
	}
	return a.user, nil
}

func (s *store) update(id int64, req models.UpdateUserRequest) (models.User, error) {
	s.mu.Lock()
	defer s.mu.Unlock()

	a, ok := s.byID[id]
	if !ok {
		return models.User{}, errUserNotFound
	}
	if req.Email != "" && req.Email != a.user.Email && s.findByEmail(req.Email) != nil {
		return models.User{}, errEmailExists
	}

	if req.Email != "" {
		a.user.Email = req.Email
	}
	if req.Name != "" {
		a.user.Name = req.Name
	}
	a.user.UpdatedAt = s.now().UTC()
	return a.user, nil
}

func (s *store) delete(id int64) error {
	s.mu.Lock()
	defer s.mu.Unlock()
	if _, ok := s.byID[id]; !ok {
		return errUserNotFound
	}
	delete(s.byID, id)
	return nil
}

// list returns users newest first. page and limit must already be
// normalized.
func (s *store) list(page, limit int) models.UsersResponse {
	s.mu.RLock()
	users := make([]*models.User, 0, len(s.byID))
	for _, a := range s.byID {
		u := a.user
		users = append(users, &u)
	}
	s.mu.RUnlock()

	slices.SortFunc(users, func(a, b *models.User) int {
		if c := b.CreatedAt.Compare(a.CreatedAt); c != 0 {
			return c
		}
		return cmp.Compare(b.ID, a.ID)
	})

	total := len(users)
	start := min((page-1)*limit, total)
	end := min(start+limit, total)

	return models.UsersResponse{
		Users: users[start:end],
		Pagination: models.Pagination{
			Page:       page,
			Limit:      limit,
			Total:      total,
			TotalPages: int(math.Ceil(float64(total) / float64(limit))),
		},
	}
}
