// Package fakeapi is an in-memory implementation of the backend REST API.
//
// It follows the backend's contract closely enough for end-to-end tests and
// local development: the same routes, status codes and error envelopes,
// HS256 tokens carrying a user_id claim and bcrypt-hashed passwords. Nothing
// is persisted.
package fakeapi
