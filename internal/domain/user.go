package domain

import (
	"context"
	"time"
)

// Role governs access to the administrative section of the site.
type Role string

const (
	RoleUser  Role = "USER"
	RoleAdmin Role = "ADMIN"
)

// User represents a registered customer or administrator of the store.
type User struct {
	ID           int64
	Email        string
	Name         string
	PasswordHash string
	Role         Role
	Phone        *string
	CreatedAt    time.Time
	UpdatedAt    time.Time
}

// Identity is the projection of a verified user handed to the session
// layer. It carries no secret material.
type Identity struct {
	ID    int64
	Email string
	Name  string
	Role  Role
}

// Identity returns the session-facing projection of the user.
func (u *User) Identity() Identity {
	return Identity{ID: u.ID, Email: u.Email, Name: u.Name, Role: u.Role}
}

// UserRepository defines persistence operations for users.
type UserRepository interface {
	Create(ctx context.Context, user *User) error
	GetByID(ctx context.Context, id int64) (*User, error)
	GetByEmail(ctx context.Context, email string) (*User, error)
	Promote(ctx context.Context, id int64, role Role) error
	CountAdmins(ctx context.Context) (int, error)
}
