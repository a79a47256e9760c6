package session

import (
	"context"
	"fmt"
	"slices"
	"sync"

	"github.com/dmitrijs2005/sessionkeeper/internal/client/models"
	"github.com/dmitrijs2005/sessionkeeper/internal/common"
	"github.com/dmitrijs2005/sessionkeeper/internal/logging"
)

// State is a snapshot of the session.
//
// Loading is true until the controller has been hydrated; while loading the
// state is never authenticated.
type State struct {
	Credential      string
	User            *models.User
	IsAuthenticated bool
	Loading         bool
}

func newState(credential string, u *models.User) State {
	return State{
		Credential:      credential,
		User:            u,
		IsAuthenticated: credential != "" && u != nil,
	}
}

// Controller owns the in-memory session and writes changes through a
// Repository.
//
// Mutations are serialized. Subscribers are called after the write finished,
// in mutation order, from the goroutine that performed it. A subscriber must
// not call Login, Logout or Hydrate synchronously.
type Controller struct {
	repo *Repository
	log  logging.Logger

	// writeMu serializes mutations together with their notifications.
	writeMu sync.Mutex

	mu       sync.RWMutex
	state    State
	hydrated bool

	subMu  sync.Mutex
	subs   map[int]func(State)
	nextID int
}

func NewController(repo *Repository, log logging.Logger) *Controller {
	if repo == nil {
		repo = NewRepository(nil, log)
	}
	if log == nil {
		log = logging.Nop()
	}
	return &Controller{
		repo:  repo,
		log:   log,
		state: State{Loading: true},
		subs:  make(map[int]func(State)),
	}
}

// CurrentState returns a copy of the current session.
func (c *Controller) CurrentState() State {
	c.mu.RLock()
	defer c.mu.RUnlock()
	return c.snapshot()
}

func (c *Controller) snapshot() State {
	s := c.state
	if s.User != nil {
		u := *s.User
		s.User = &u
	}
	return s
}

// Credential returns the credential of an authenticated session, or "".
func (c *Controller) Credential() string {
	s := c.CurrentState()
	if !s.IsAuthenticated {
		return ""
	}
	return s.Credential
}

func (c *Controller) Hydrated() bool {
	c.mu.RLock()
	defer c.mu.RUnlock()
	return c.hydrated
}

// Hydrate loads the session from the repository. Only the first call has an
// effect, and it notifies subscribers even when nothing was stored.
func (c *Controller) Hydrate(ctx context.Context) {
	c.writeMu.Lock()
	defer c.writeMu.Unlock()

	if c.Hydrated() {
		return
	}

	st := newState(c.repo.Credential(ctx), c.repo.Profile(ctx))
	if !st.IsAuthenticated && (st.Credential != "" || st.User != nil) {
		c.log.Warn(ctx, "stored session is incomplete, treating as logged out",
			"has_credential", st.Credential != "", "has_profile", st.User != nil)
	}

	c.set(st)
	c.log.Debug(ctx, "session hydrated", "authenticated", st.IsAuthenticated)
	c.notify()
}

// Login stores credential and user and makes them the current session.
// If the store rejects the write, the previous session is written back and
// kept. When that fails too, the store is cleared and the in-memory session
// ends, so memory and store never disagree.
func (c *Controller) Login(ctx context.Context, credential string, u *models.User) error {
	if credential == "" || u == nil {
		return common.ErrInvalidSession
	}

	c.writeMu.Lock()
	defer c.writeMu.Unlock()

	if err := c.repo.Save(ctx, credential, u); err != nil {
		c.rollback(ctx)
		return fmt.Errorf("login: %w", err)
	}

	cp := *u
	c.set(newState(credential, &cp))
	c.log.Info(ctx, "logged in", "user_id", u.ID)
	c.notify()
	return nil
}

// rollback undoes a failed Save. Callers hold writeMu.
func (c *Controller) rollback(ctx context.Context) {
	prev := c.CurrentState()
	if prev.IsAuthenticated {
		err := c.repo.Save(ctx, prev.Credential, prev.User)
		if err == nil {
			return
		}
		c.log.Error(ctx, "failed to restore previous session", "error", err)
	}

	if err := c.repo.Clear(ctx); err != nil {
		c.log.Error(ctx, "failed to roll back partial session write", "error", err)
	}
	if prev.IsAuthenticated {
		c.set(newState("", nil))
		c.log.Info(ctx, "logged out after failed session write")
		c.notify()
	}
}

// Logout always ends the in-memory session. The returned error only reports
// a failure to clear the durable store.
func (c *Controller) Logout(ctx context.Context) error {
	c.writeMu.Lock()
	defer c.writeMu.Unlock()

	err := c.repo.Clear(ctx)
	if err != nil {
		c.log.Error(ctx, "failed to clear stored session", "error", err)
	}

	c.set(newState("", nil))
	c.log.Info(ctx, "logged out")
	c.notify()

	if err != nil {
		return fmt.Errorf("logout: %w", err)
	}
	return nil
}

func (c *Controller) set(st State) {
	c.mu.Lock()
	defer c.mu.Unlock()
	st.Loading = false
	c.state = st
	c.hydrated = true
}

// Subscribe registers fn for state changes. The returned func removes it.
func (c *Controller) Subscribe(fn func(State)) (unsubscribe func()) {
	c.subMu.Lock()
	id := c.nextID
	c.nextID++
	c.subs[id] = fn
	c.subMu.Unlock()

	var once sync.Once
	return func() {
		once.Do(func() {
			c.subMu.Lock()
			delete(c.subs, id)
			c.subMu.Unlock()
		})
	}
}

func (c *Controller) notify() {
	st := c.CurrentState()

	c.subMu.Lock()
	ids := make([]int, 0, len(c.subs))
	for id := range c.subs {
		ids = append(ids, id)
	}
	c.subMu.Unlock()

	slices.Sort(ids)
	for _, id := range ids {
		c.subMu.Lock()
		fn, ok := c.subs[id]
		c.subMu.Unlock()
		if ok {
			fn(st)
		}
	}
}
