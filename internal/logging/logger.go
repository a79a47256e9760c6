// Package logging is the structured logger used by the session client, the
// API gateway client and the development backend.
package logging

import "context"

// Logger takes a message plus alternating key/value pairs:
//
//	log.Debug(ctx, "request finished", "method", "GET", "status", 200)
type Logger interface {
	Debug(ctx context.Context, msg string, args ...any)
	Info(ctx context.Context, msg string, args ...any)
	// Warn is for conditions the caller recovered from, such as a corrupt
	// stored profile.
	Warn(ctx context.Context, msg string, args ...any)
	Error(ctx context.Context, msg string, args ...any)

	// With returns a child logger that adds args to every entry.
	With(args ...any) Logger
}
