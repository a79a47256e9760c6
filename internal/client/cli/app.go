package cli

import (
	"bufio"
	"context"
	"database/sql"
	"fmt"
	"io"
	"net/http"
	"net/http/cookiejar"
	"os"
	"sync"

	"github.com/dmitrijs2005/sessionkeeper/internal/client/client"
	"github.com/dmitrijs2005/sessionkeeper/internal/client/config"
	"github.com/dmitrijs2005/sessionkeeper/internal/client/guard"
	"github.com/dmitrijs2005/sessionkeeper/internal/client/repositories"
	"github.com/dmitrijs2005/sessionkeeper/internal/client/services"
	"github.com/dmitrijs2005/sessionkeeper/internal/client/session"
	"github.com/dmitrijs2005/sessionkeeper/internal/common"
	"github.com/dmitrijs2005/sessionkeeper/internal/logging"
)

type App struct {
	config      *config.Config
	log         logging.Logger
	db          *sql.DB
	session     *session.Controller
	authService services.AuthService
	userService services.UserService
	reader      *bufio.Reader
	out         io.Writer

	// dashboard follows the session for the whole run and sends the user
	// back to the login screen when the session ends.
	dashboard *guard.Guard

	mu      sync.Mutex
	pending string

	page       int
	totalPages int
}

// NewApp wires the configured session store, API client and services.
func NewApp(c *config.Config) (*App, error) {
	ctx := context.Background()
	log := logging.New(os.Stderr, c.LogLevel)

	db, err := repositories.InitDatabase(ctx, c.SessionDBPath)
	if err != nil {
		log.Error(ctx, "error initializing session database", "path", c.SessionDBPath, "error", err)
		return nil, err
	}

	httpClient := &http.Client{}
	var store session.Storage = session.NewSQLStorage(db)
	if c.FrontendURL != "" {
		jar, err := cookiejar.New(nil)
		if err != nil {
			_ = db.Close()
			return nil, err
		}
		cookies, err := session.NewCookieStorage(jar, c.FrontendURL, common.CredentialCookieName)
		if err != nil {
			_ = db.Close()
			return nil, err
		}
		store = session.NewMirrorStorage(store, cookies)
		httpClient.Jar = cookies.Jar()
	}

	ctrl := session.NewController(session.NewRepository(store, log), log)
	api := client.New(c.APIBaseURL,
		client.WithHTTPClient(httpClient),
		client.WithTimeout(c.RequestTimeout),
		client.WithLogger(log.With("component", "api")),
	)

	a := &App{
		config:      c,
		log:         log,
		db:          db,
		session:     ctrl,
		authService: services.NewAuthService(api, ctrl),
		userService: services.NewUserService(api, ctrl, c.PageSize),
		reader:      bufio.NewReader(os.Stdin),
		out:         os.Stdout,
	}
	a.dashboard = guard.New(ctrl, guard.NavigatorFunc(a.navigate), guard.RequireAuth())
	return a, nil
}

// Run hydrates the session and serves the REPL until the user exits or the
// input ends.
func (a *App) Run(ctx context.Context) {
	defer a.Close()

	printlnFn("Session keeper CLI (type 'help' for commands)")

	a.dashboard.Mount()
	defer a.dashboard.Unmount()
	a.session.Hydrate(ctx)
	a.serveRedirect(ctx)

	runREPL(ctx, a, a.getStatus, a.reader)
}

func (a *App) Close() {
	if a.db != nil {
		if err := a.db.Close(); err != nil {
			a.log.Warn(context.Background(), "failed to close session database", "error", err)
		}
	}
}

func (a *App) isLoggedIn() bool {
	return a.session.CurrentState().IsAuthenticated
}

func (a *App) getStatus() string {
	st := a.session.CurrentState()
	switch {
	case st.Loading:
		return "(loading)"
	case st.IsAuthenticated:
		return fmt.Sprintf("(%s)", st.User.Email)
	default:
		return "(guest)"
	}
}

// navigate schedules a screen change. It is served by serveRedirect once
// the current command has returned.
func (a *App) navigate(path string) {
	a.mu.Lock()
	defer a.mu.Unlock()
	a.pending = path
}

func (a *App) takePending() string {
	a.mu.Lock()
	defer a.mu.Unlock()
	p := a.pending
	a.pending = ""
	return p
}

// serveRedirect follows pending screen changes until none is left. Serving
// one may request the next, as a successful login opens the dashboard.
func (a *App) serveRedirect(ctx context.Context) {
	for path := a.takePending(); path != ""; path = a.takePending() {
		switch path {
		case common.LoginPath:
			printlnFn("Please log in to continue (leave email empty to skip)")
			_ = a.Login(ctx)
		case common.DashboardPath:
			_ = a.Dashboard(ctx, 1)
		default:
			a.log.Warn(ctx, "unknown screen requested", "path", path)
		}
	}
}
