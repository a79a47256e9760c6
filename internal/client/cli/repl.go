package cli

import (
	"bufio"
	"context"
	"fmt"
	"strconv"
	"strings"
)

// printlnFn is a test seam for user-facing output. In tests, replace it with a stub.
var printlnFn = fmt.Println

// execIface defines the minimal command surface the REPL needs to operate.
// The real App type satisfies this interface; tests can provide a lightweight stub.
type execIface interface {
	isLoggedIn() bool
	Register(ctx context.Context) error
	Login(ctx context.Context) error
	Logout(ctx context.Context) error
	Whoami(ctx context.Context) error
	Health(ctx context.Context) error
	Dashboard(ctx context.Context, page int) error
	Next(ctx context.Context) error
	Prev(ctx context.Context) error
	Show(ctx context.Context, id int64) error
	Update(ctx context.Context, id int64) error
	Delete(ctx context.Context, id int64) error
	serveRedirect(ctx context.Context)
}

// runREPL reads commands from reader until EOF, "exit" or "quit". Commands
// that prompt for input read from the same reader, so scripted input keeps
// its order.
//
// The prompt shows the current status (from statusFn) and accepts commands:
//
//	Not logged in:
//	  help, register, login, health, exit | quit
//
//	Logged in:
//	  help, whoami, health, dashboard [page], next, prev,
//	  show <id>, update <id>, delete <id>, logout, exit | quit
//
// Errors returned by command handlers are ignored here; handlers report
// their own errors. After every command a pending screen change requested by
// the session guard is served.
func runREPL(ctx context.Context, a execIface, statusFn func() string, reader *bufio.Reader) {
	for {
		printlnFn(fmt.Sprintf("sk> %s > ", statusFn()))
		line, err := reader.ReadString('\n')
		if err != nil && line == "" {
			return
		}
		parts := strings.Fields(line)
		if len(parts) == 0 {
			continue
		}
		cmd, args := parts[0], parts[1:]

		switch cmd {
		case "help":
			if a.isLoggedIn() {
				printlnFn("Available commands: whoami, health, (d)ashboard [page], (n)ext, (p)rev, show <id>, update <id>, delete <id>, logout, exit")
			} else {
				printlnFn("Available commands: register, login, health, exit")
			}

		case "register":
			_ = a.Register(ctx)

		case "login":
			_ = a.Login(ctx)

		case "logout":
			_ = a.Logout(ctx)

		case "whoami":
			_ = a.Whoami(ctx)

		case "health":
			_ = a.Health(ctx)

		case "d", "dashboard":
			page := 1
			if len(args) > 0 {
				n, err := strconv.Atoi(args[0])
				if err != nil || n < 1 {
					printlnFn("Usage: dashboard [page]")
					continue
				}
				page = n
			}
			_ = a.Dashboard(ctx, page)

		case "n", "next":
			_ = a.Next(ctx)

		case "p", "prev":
			_ = a.Prev(ctx)

		case "show", "update", "delete":
			id, ok := parseID(args)
			if !ok {
				printlnFn(fmt.Sprintf("Usage: %s <id>", cmd))
				continue
			}
			switch cmd {
			case "show":
				_ = a.Show(ctx, id)
			case "update":
				_ = a.Update(ctx, id)
			case "delete":
				_ = a.Delete(ctx, id)
			}

		case "exit", "quit":
			printlnFn("Bye!")
			return

		default:
			printlnFn("Unknown command:", cmd)
		}

		a.serveRedirect(ctx)
	}
}

func parseID(args []string) (int64, bool) {
	if len(args) != 1 {
		return 0, false
	}
	id, err := strconv.ParseInt(args[0], 10, 64)
	if err != nil || id < 1 {
		return 0, false
	}
	return id, true
}
