// Package guard decides whether a protected screen may be shown.
//
// A Guard follows the session controller: it waits while the session is
// loading, lets authenticated sessions through and redirects everyone else to
// the login screen exactly once per loss of authentication.
package guard

import (
	"sync"

	"github.com/dmitrijs2005/sessionkeeper/internal/client/session"
	"github.com/dmitrijs2005/sessionkeeper/internal/common"
)

type Status int

const (
	StatusLoading Status = iota
	StatusAuthenticated
	StatusRedirecting
	// StatusOpen is used by guards that do not require authentication.
	StatusOpen
)

func (s Status) String() string {
	switch s {
	case StatusLoading:
		return "loading"
	case StatusAuthenticated:
		return "authenticated"
	case StatusRedirecting:
		return "redirecting"
	case StatusOpen:
		return "open"
	default:
		return "unknown"
	}
}

// Navigator moves the user to another screen.
type Navigator interface {
	Redirect(path string)
}

type NavigatorFunc func(path string)

func (f NavigatorFunc) Redirect(path string) { f(path) }

// Source is the part of session.Controller a guard needs.
type Source interface {
	CurrentState() session.State
	Subscribe(fn func(session.State)) (unsubscribe func())
}

type Option func(*Guard)

func RequireAuth() Option {
	return func(g *Guard) { g.requireAuth = true }
}

// WithLoginPath overrides the redirect target, common.LoginPath by default.
func WithLoginPath(path string) Option {
	return func(g *Guard) { g.loginPath = path }
}

type Guard struct {
	src         Source
	nav         Navigator
	requireAuth bool
	loginPath   string

	mu          sync.Mutex
	status      Status
	state       session.State
	version     int
	unsubscribe func()
}

func New(src Source, nav Navigator, opts ...Option) *Guard {
	g := &Guard{
		src:       src,
		nav:       nav,
		loginPath: common.LoginPath,
		status:    StatusLoading,
		state:     session.State{Loading: true},
	}
	for _, opt := range opts {
		opt(g)
	}
	if !g.requireAuth {
		g.status = StatusOpen
	}
	return g
}

// Mount starts following the session and evaluates the current state.
// Mounting twice has no additional effect.
func (g *Guard) Mount() {
	g.mu.Lock()
	if g.unsubscribe != nil {
		g.mu.Unlock()
		return
	}
	g.unsubscribe = g.src.Subscribe(g.update)
	seen := g.version
	g.mu.Unlock()

	// a notification that raced with this read is newer and wins
	g.apply(g.src.CurrentState(), seen)
}

func (g *Guard) Unmount() {
	g.mu.Lock()
	unsubscribe := g.unsubscribe
	g.unsubscribe = nil
	g.mu.Unlock()

	if unsubscribe != nil {
		unsubscribe()
	}
}

func (g *Guard) Status() Status {
	g.mu.Lock()
	defer g.mu.Unlock()
	return g.status
}

// State is the last session state the guard has seen.
func (g *Guard) State() session.State {
	g.mu.Lock()
	defer g.mu.Unlock()
	return g.state
}

// Render calls fn with the session state when the guarded content may be
// shown and reports whether it did.
func (g *Guard) Render(fn func(session.State)) bool {
	g.mu.Lock()
	st, status := g.state, g.status
	g.mu.Unlock()

	if status != StatusAuthenticated && status != StatusOpen {
		return false
	}
	fn(st)
	return true
}

func (g *Guard) update(st session.State) {
	g.apply(st, -1)
}

// apply records st unless expect is non-negative and another state was
// recorded since.
func (g *Guard) apply(st session.State, expect int) {
	g.mu.Lock()
	if expect >= 0 && g.version != expect {
		g.mu.Unlock()
		return
	}
	g.version++
	g.state = st

	if !g.requireAuth {
		g.status = StatusOpen
		g.mu.Unlock()
		return
	}

	prev := g.status
	switch {
	case st.Loading:
		g.status = StatusLoading
	case st.IsAuthenticated:
		g.status = StatusAuthenticated
	default:
		g.status = StatusRedirecting
	}
	redirect := g.status == StatusRedirecting && prev != StatusRedirecting
	g.mu.Unlock()

	if redirect && g.nav != nil {
		g.nav.Redirect(g.loginPath)
	}
}
