// Package client is the typed gateway to the backend REST API.
//
// # Overview
//
// The package provides:
//  1. A transport-agnostic API contract (see the Client interface): Login,
//     Register, ListUsers, GetUser, UpdateUser, DeleteUser, HealthCheck.
//  2. A concrete HTTP/JSON implementation (see HTTPClient) built around a
//     single request primitive, HTTPClient.Request, which merges headers,
//     injects the bearer credential supplied by the caller, and turns every
//     response into either a decoded value or an *Error.
//
// The client does not know about the session. Callers pass the credential
// explicitly, which keeps it independently testable.
//
// # Error Handling
//
// Every failure is an *Error whose Error() is the user-facing message.
// Conditions can be matched with errors.Is: ErrUnavailable (transport),
// ErrUnauthorized (401), ErrNotFound (404), ErrInvalidResponse (a success
// body that is not valid JSON). Context cancellation is preserved in the
// chain, so errors.Is(err, context.Canceled) works for aborted requests.
//
// # Concurrency & Contexts
//
// HTTPClient is safe for concurrent use. Responses of racing calls are not
// ordered; callers that supersede a request should cancel its context.
package client
