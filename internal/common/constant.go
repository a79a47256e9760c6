// Package common contains shared constants and sentinel errors used across
// the session keeper packages.
package common

// Storage keys under which the session halves are persisted. The names match
// the ones the web frontend uses, so a store can be shared with it.
const (
	CredentialKey = "auth_token"
	ProfileKey    = "auth_user"
)

// CredentialCookieName is the cookie read by server-rendered route checks.
const CredentialCookieName = CredentialKey

// HTTP header names used on outbound gateway requests.
const (
	AuthorizationHeaderName = "Authorization"
	RequestIDHeaderName     = "X-Request-ID"
	ContentTypeHeaderName   = "Content-Type"
)

// Entry points of the application screens.
const (
	LoginPath     = "/login"
	DashboardPath = "/dashboard"
)
