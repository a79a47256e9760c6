// Package session keeps the client's authenticated identity.
//
// A session is the pair of an opaque credential and the user profile the
// backend returned with it. It is authenticated only when both halves are
// present; a store holding just one of them is treated as logged out.
//
// The package is split in three layers:
//
//   - Storage backends (NopStorage, MemoryStorage, SQLStorage, CookieStorage,
//     MirrorStorage) chosen at construction time.
//   - Repository, which maps the two halves to fixed keys and never fails on
//     reads: a broken or unreadable profile is reported as absent.
//   - Controller, the in-memory source of truth. It hydrates once from the
//     repository, writes logins and logouts through it and notifies
//     subscribers after each write.
package session
