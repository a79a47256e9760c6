package cli

import (
	"context"
	"fmt"
	"io"
	"strings"
	"text/tabwriter"
	"time"

	"github.com/dmitrijs2005/sessionkeeper/internal/client/guard"
	"github.com/dmitrijs2005/sessionkeeper/internal/client/models"
	"github.com/dmitrijs2005/sessionkeeper/internal/client/session"
	"github.com/dmitrijs2005/sessionkeeper/internal/common"
	"github.com/dustin/go-humanize"
)

// protect mounts a guard for a single protected command. Callers must
// Unmount it when the command returns.
func (a *App) protect() *guard.Guard {
	g := guard.New(a.session, guard.NavigatorFunc(a.navigate), guard.RequireAuth())
	g.Mount()
	return g
}

func (a *App) renderProfile(g *guard.Guard) bool {
	return g.Render(func(st session.State) {
		printlnFn(fmt.Sprintf("%s <%s>, member since %s", st.User.Name, st.User.Email, formatDate(st.User.CreatedAt)))
	})
}

func (a *App) resetPaging() {
	a.page, a.totalPages = 0, 0
}

// Dashboard lists one page of users for the signed-in user.
func (a *App) Dashboard(ctx context.Context, page int) error {
	g := a.protect()
	defer g.Unmount()

	if g.Status() != guard.StatusAuthenticated {
		printlnFn("Please log in first")
		return common.ErrNotLoggedIn
	}

	resp, err := a.userService.List(ctx, page)
	if err != nil {
		a.reportError(ctx, "Failed to load users", err)
		return err
	}
	a.page, a.totalPages = resp.Pagination.Page, resp.Pagination.TotalPages

	g.Render(func(st session.State) {
		printlnFn(fmt.Sprintf("Welcome, %s!", st.User.Name))
		writeUsers(a.out, resp)
	})
	return nil
}

func (a *App) Next(ctx context.Context) error {
	if a.page == 0 {
		return a.Dashboard(ctx, 1)
	}
	if a.page >= a.totalPages {
		printlnFn("Already on the last page")
		return nil
	}
	return a.Dashboard(ctx, a.page+1)
}

func (a *App) Prev(ctx context.Context) error {
	if a.page == 0 {
		return a.Dashboard(ctx, 1)
	}
	if a.page == 1 {
		printlnFn("Already on the first page")
		return nil
	}
	return a.Dashboard(ctx, a.page-1)
}

func (a *App) Show(ctx context.Context, id int64) error {
	g := a.protect()
	defer g.Unmount()

	if g.Status() != guard.StatusAuthenticated {
		printlnFn("Please log in first")
		return common.ErrNotLoggedIn
	}

	u, err := a.userService.Get(ctx, id)
	if err != nil {
		a.reportError(ctx, "Failed to load user", err)
		return err
	}
	writeUser(a.out, u)
	return nil
}

// Update prompts for a new name and email. Empty answers keep the current
// values.
func (a *App) Update(ctx context.Context, id int64) error {
	g := a.protect()
	defer g.Unmount()

	if g.Status() != guard.StatusAuthenticated {
		printlnFn("Please log in first")
		return common.ErrNotLoggedIn
	}

	name, err := getSimpleText(a.reader, "New name (empty to keep)", a.out)
	if err != nil {
		return err
	}
	email, err := getSimpleText(a.reader, "New email (empty to keep)", a.out)
	if err != nil {
		return err
	}
	if name == "" && email == "" {
		printlnFn("Nothing to update")
		return nil
	}

	u, err := a.userService.Update(ctx, id, models.UpdateUserRequest{Name: name, Email: email})
	if err != nil {
		a.reportError(ctx, "Failed to update user", err)
		return err
	}
	printlnFn(fmt.Sprintf("Updated user #%d", u.ID))
	writeUser(a.out, u)
	return nil
}

func (a *App) Delete(ctx context.Context, id int64) error {
	g := a.protect()
	defer g.Unmount()

	if g.Status() != guard.StatusAuthenticated {
		printlnFn("Please log in first")
		return common.ErrNotLoggedIn
	}

	answer, err := getSimpleText(a.reader, fmt.Sprintf("Delete user #%d? Type 'yes' to confirm", id), a.out)
	if err != nil {
		return err
	}
	if !strings.EqualFold(answer, "yes") {
		printlnFn("Cancelled")
		return nil
	}

	if err := a.userService.Delete(ctx, id); err != nil {
		a.reportError(ctx, "Failed to delete user", err)
		return err
	}
	printlnFn(fmt.Sprintf("Deleted user #%d", id))
	return nil
}

func writeUsers(w io.Writer, resp *models.UsersResponse) {
	if len(resp.Users) == 0 {
		fmt.Fprintln(w, "No users found")
	} else {
		tw := tabwriter.NewWriter(w, 0, 4, 2, ' ', 0)
		fmt.Fprintln(tw, "ID\tNAME\tEMAIL\tCREATED")
		for _, u := range resp.Users {
			fmt.Fprintf(tw, "%d\t%s\t%s\t%s\n", u.ID, u.Name, u.Email, humanize.Time(u.CreatedAt))
		}
		tw.Flush()
	}

	p := resp.Pagination
	fmt.Fprintf(w, "Page %d of %d (%s users)\n", p.Page, max(p.TotalPages, 1), humanize.Comma(int64(p.Total)))

	var nav []string
	if p.Page > 1 {
		nav = append(nav, "prev")
	}
	if p.Page < p.TotalPages {
		nav = append(nav, "next")
	}
	if len(nav) > 0 {
		fmt.Fprintf(w, "Navigate with: %s\n", strings.Join(nav, ", "))
	}
}

func writeUser(w io.Writer, u *models.User) {
	tw := tabwriter.NewWriter(w, 0, 4, 2, ' ', 0)
	fmt.Fprintf(tw, "ID:\t%d\n", u.ID)
	fmt.Fprintf(tw, "Name:\t%s\n", u.Name)
	fmt.Fprintf(tw, "Email:\t%s\n", u.Email)
	fmt.Fprintf(tw, "Created:\t%s (%s)\n", formatDate(u.CreatedAt), humanize.Time(u.CreatedAt))
	fmt.Fprintf(tw, "Updated:\t%s (%s)\n", formatDate(u.UpdatedAt), humanize.Time(u.UpdatedAt))
	tw.Flush()
}

func formatDate(t time.Time) string {
	if t.IsZero() {
		return "unknown"
	}
	return t.Local().Format("2006-01-02")
}
