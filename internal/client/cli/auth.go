package cli

import (
	"context"
	"errors"
	"fmt"

	"github.com/dmitrijs2005/sessionkeeper/internal/client/client"
	"github.com/dmitrijs2005/sessionkeeper/internal/client/services"
	"github.com/dmitrijs2005/sessionkeeper/internal/common"
)

// getSimpleText and getPassword are indirections used to facilitate testing.
var getSimpleText = GetSimpleText
var getPassword = GetPassword

// Register prompts for the registration form and creates the account. Form
// problems are reported before anything is sent to the server.
func (a *App) Register(ctx context.Context) error {
	name, err := getSimpleText(a.reader, "Enter name", a.out)
	if err != nil {
		return err
	}
	email, err := getSimpleText(a.reader, "Enter email", a.out)
	if err != nil {
		return err
	}
	password, err := readSecret("Enter password", a.out)
	if err != nil {
		return err
	}
	confirm, err := readSecret("Confirm password", a.out)
	if err != nil {
		return err
	}

	u, err := a.authService.Register(ctx, services.RegisterForm{
		Name:     name,
		Email:    email,
		Password: password,
		Confirm:  confirm,
	})
	if err != nil {
		a.reportError(ctx, "Registration failed", err)
		return err
	}

	printlnFn(fmt.Sprintf("Welcome, %s!", u.Name))
	a.navigate(common.DashboardPath)
	return nil
}

// Login prompts for credentials and starts a session. An empty email cancels
// the prompt without contacting the server.
func (a *App) Login(ctx context.Context) error {
	email, err := getSimpleText(a.reader, "Enter email", a.out)
	if err != nil {
		return err
	}
	if email == "" {
		printlnFn("Login cancelled")
		return nil
	}
	password, err := readSecret("Enter password", a.out)
	if err != nil {
		return err
	}

	u, err := a.authService.Login(ctx, email, password)
	if err != nil {
		a.reportError(ctx, "Login failed", err)
		return err
	}

	printlnFn(fmt.Sprintf("Logged in as %s", u.Email))
	a.navigate(common.DashboardPath)
	return nil
}

// Logout ends the session. The guard following the session then asks for a
// new login.
func (a *App) Logout(ctx context.Context) error {
	if err := a.authService.Logout(ctx); err != nil {
		a.log.Error(ctx, "logout failed", "error", err)
		printlnFn("Logout failed:", err.Error())
		return err
	}
	a.resetPaging()
	printlnFn("Logged out")
	return nil
}

func (a *App) Whoami(ctx context.Context) error {
	g := a.protect()
	defer g.Unmount()

	if !a.renderProfile(g) {
		printlnFn("Not logged in")
		return common.ErrNotLoggedIn
	}
	return nil
}

func (a *App) Health(ctx context.Context) error {
	h, err := a.authService.Health(ctx)
	if err != nil {
		a.reportError(ctx, "Health check failed", err)
		return err
	}
	printlnFn(fmt.Sprintf("API status: %s (%s)", h.Status, h.Timestamp))
	return nil
}

// reportError prints a user-facing message for err. An unauthorized response
// to a signed-in user means the credential was rejected, so the session is
// ended.
func (a *App) reportError(ctx context.Context, prefix string, err error) {
	var verr *services.ValidationError
	switch {
	case errors.As(err, &verr):
		printlnFn(fmt.Sprintf("%s: %s", prefix, verr.Message))
	case errors.Is(err, common.ErrSuperseded):
		a.log.Debug(ctx, "request superseded", "error", err)
	case client.IsUnauthorized(err) && a.isLoggedIn():
		printlnFn("Your session has expired, please log in again")
		if lerr := a.authService.Logout(ctx); lerr != nil {
			a.log.Error(ctx, "logout failed", "error", lerr)
		}
		a.resetPaging()
	default:
		a.log.Debug(ctx, "command failed", "error", err)
		printlnFn(fmt.Sprintf("%s: %s", prefix, message(err)))
	}
}

// message prefers the server's text over the wrapped error chain.
func message(err error) string {
	var cerr *client.Error
	if errors.As(err, &cerr) && cerr.Message != "" {
		return cerr.Message
	}
	return err.Error()
}
