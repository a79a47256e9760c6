// Package cli provides the interactive session keeper command-line client.
//
// App wires the configuration, the persistent session store, the API client
// and the services, then runs a REPL. A guard follows the session for the
// whole run: when there is no session, or when it ends, the user is asked to
// log in. Protected commands (whoami, dashboard, show, update, delete) mount
// a guard of their own and only run for an authenticated session.
//
// The REPL is started via App.Run(ctx), which blocks until the user exits.
package cli
