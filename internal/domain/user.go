package domain

import (
	"errors"
	"time"
)

// User is an operator of the admin tool.
type User struct {
	ID             string
	Username       string
	Name           string
	HashedPassword string
	Role           Role
	Active         bool
	CreatedAt      time.Time
	UpdatedAt      time.Time
}

// Actor identifies who performed an action, for audit fields.
type Actor struct {
	ID          string
	DisplayName string
}

// Role represents a user's access level.
type Role string

const (
	// RoleAdmin has full access to all operations
	RoleAdmin Role = "admin"

	// RoleOperator can record movements but not manage users
	RoleOperator Role = "operator"
)

var validRoles = map[Role]bool{
	RoleAdmin:    true,
	RoleOperator: true,
}

// IsValid checks if the role is a valid role.
func (r Role) IsValid() bool {
	return validRoles[r]
}

// Authentication errors
var (
	ErrUnauthorized       = errors.New("unauthorized")
	ErrInvalidToken       = errors.New("invalid token")
	ErrExpiredToken       = errors.New("token has expired")
	ErrInvalidCredentials = errors.New("incorrect username or password")
	ErrUserNotFound       = errors.New("user not found")
)
