package cli

import (
	"bufio"
	"context"
	"fmt"
	"strings"
	"testing"

	"github.com/stretchr/testify/assert"
)

type fakeExec struct {
	loggedIn bool

	calls     []string
	redirects int
}

func (f *fakeExec) record(call string) error {
	f.calls = append(f.calls, call)
	return nil
}

func (f *fakeExec) isLoggedIn() bool { return f.loggedIn }
func (f *fakeExec) Register(ctx context.Context) error {
	return f.record("register")
}
func (f *fakeExec) Login(ctx context.Context) error {
	f.loggedIn = true
	return f.record("login")
}
func (f *fakeExec) Logout(ctx context.Context) error {
	f.loggedIn = false
	return f.record("logout")
}
func (f *fakeExec) Whoami(ctx context.Context) error { return f.record("whoami") }
func (f *fakeExec) Health(ctx context.Context) error { return f.record("health") }
func (f *fakeExec) Dashboard(ctx context.Context, page int) error {
	return f.record(fmt.Sprintf("dashboard %d", page))
}
func (f *fakeExec) Next(ctx context.Context) error { return f.record("next") }
func (f *fakeExec) Prev(ctx context.Context) error { return f.record("prev") }
func (f *fakeExec) Show(ctx context.Context, id int64) error {
	return f.record(fmt.Sprintf("show %d", id))
}
func (f *fakeExec) Update(ctx context.Context, id int64) error {
	return f.record(fmt.Sprintf("update %d", id))
}
func (f *fakeExec) Delete(ctx context.Context, id int64) error {
	return f.record(fmt.Sprintf("delete %d", id))
}
func (f *fakeExec) serveRedirect(ctx context.Context) { f.redirects++ }

func silencePrintln(t *testing.T) *[]string {
	t.Helper()
	var lines []string
	orig := printlnFn
	printlnFn = func(a ...any) (int, error) {
		lines = append(lines, strings.TrimSuffix(fmt.Sprintln(a...), "\n"))
		return 0, nil
	}
	t.Cleanup(func() { printlnFn = orig })
	return &lines
}

func TestRunREPL_DispatchesCommands(t *testing.T) {
	silencePrintln(t)

	input := strings.NewReader(strings.Join([]string{
		"help",
		"login",
		"whoami",
		"dashboard",
		"d 3",
		"next",
		"p",
		"show 12",
		"update 7",
		"delete 9",
		"health",
		"logout",
		"register",
		"exit",
		"login",
	}, "\n"))

	exec := &fakeExec{}
	runREPL(context.Background(), exec, func() string { return "status" }, bufio.NewReader(input))

	assert.Equal(t, []string{
		"login", "whoami", "dashboard 1", "dashboard 3", "next", "prev",
		"show 12", "update 7", "delete 9", "health", "logout", "register",
	}, exec.calls)
	assert.Equal(t, 13, exec.redirects)
}

func TestRunREPL_UsageErrors(t *testing.T) {
	lines := silencePrintln(t)

	input := strings.NewReader("show\nshow abc\ndelete 0\nupdate 1 2\ndashboard x\nfoobar\nquit\n")
	exec := &fakeExec{loggedIn: true}
	runREPL(context.Background(), exec, func() string { return "s" }, bufio.NewReader(input))

	assert.Empty(t, exec.calls)
	assert.Contains(t, *lines, "Usage: show <id>")
	assert.Contains(t, *lines, "Usage: delete <id>")
	assert.Contains(t, *lines, "Usage: update <id>")
	assert.Contains(t, *lines, "Usage: dashboard [page]")
	assert.Contains(t, *lines, "Unknown command: foobar")
	assert.Contains(t, *lines, "Bye!")
}

func TestRunREPL_HelpDependsOnSession(t *testing.T) {
	lines := silencePrintln(t)

	exec := &fakeExec{}
	runREPL(context.Background(), exec, func() string { return "s" }, bufio.NewReader(strings.NewReader("help\n")))
	assert.Contains(t, *lines, "Available commands: register, login, health, exit")

	*lines = nil
	exec.loggedIn = true
	runREPL(context.Background(), exec, func() string { return "s" }, bufio.NewReader(strings.NewReader("help\n")))
	assert.Contains(t, strings.Join(*lines, "\n"), "logout")
}

func TestRunREPL_PromptShowsStatus(t *testing.T) {
	lines := silencePrintln(t)

	runREPL(context.Background(), &fakeExec{}, func() string { return "(guest)" }, bufio.NewReader(strings.NewReader("")))
	assert.Equal(t, []string{"sk> (guest) > "}, *lines)
}
