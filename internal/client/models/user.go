// Package models holds the wire types exchanged with the backend REST API.
package models

import "time"

// User is the profile returned by the backend. The client never edits it
// locally; changes go through UpdateUser.
type User struct {
	ID        int64     `json:"id"`
	Email     string    `json:"email"`
	Name      string    `json:"name"`
	CreatedAt time.Time `json:"created_at"`
	UpdatedAt time.Time `json:"updated_at"`
}

// UpdateUserRequest carries a partial update; empty fields are left out.
type UpdateUserRequest struct {
	Email string `json:"email,omitempty"`
	Name  string `json:"name,omitempty"`
}

// Pagination describes one page of a result set. Page is 1-based and
// TotalPages is computed by the backend, never by the client.
type Pagination struct {
	Page       int `json:"page"`
	Limit      int `json:"limit"`
	Total      int `json:"total"`
	TotalPages int `json:"total_pages"`
}

type UsersResponse struct {
	Users      []*User    `json:"users"`
	Pagination Pagination `json:"pagination"`
}
