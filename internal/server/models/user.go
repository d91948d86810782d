// Package models defines the server-side domain types persisted in the
// database and the query/page shapes shared by repositories and services.
package models

import (
	"fmt"
	"time"
)

// Role is the closed set of principal roles.
type Role string

const (
	RoleAdmin Role = "admin"
	RoleUser  Role = "user"
)

// Valid reports whether r is one of the known roles.
func (r Role) Valid() bool {
	switch r {
	case RoleAdmin, RoleUser:
		return true
	default:
		return false
	}
}

// ParseRole converts an external string into a Role, rejecting anything
// outside the closed set.
func ParseRole(s string) (Role, error) {
	r := Role(s)
	if !r.Valid() {
		return "", fmt.Errorf("unknown role %q", s)
	}
	return r, nil
}

// User is an authenticated principal. PasswordHash is a bcrypt hash and is
// never serialised to clients.
type User struct {
	ID           string
	Name         string
	Email        string
	PasswordHash []byte
	Role         Role
	CreatedAt    time.Time
}

// Author is the public summary of a user embedded in posts and comments.
type Author struct {
	ID    string
	Name  string
	Email string
}
