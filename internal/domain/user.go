package domain

import (
	"errors"
	"time"
)

var (
	// ErrEmailAlreadyExists indicates that the email is already registered.
	ErrEmailAlreadyExists = errors.New("email already registered")
	// ErrInvalidCredentials indicates a failed login attempt.
	ErrInvalidCredentials = errors.New("invalid email or password")
)

// Role restricts what a user may administer.
type Role string

// Supported roles.
const (
	RoleCustomer Role = "CUSTOMER"
	RoleAdmin    Role = "ADMIN"
)

// User holds registered user data.
type User struct {
	ID             string    `json:"id"`
	Email          string    `json:"email"`
	HashedPassword string    `json:"-"`
	FullName       string    `json:"full_name"`
	Phone          string    `json:"phone"`
	Role           Role      `json:"role"`
	CreatedAt      time.Time `json:"created_at"`
}

// CreateUserParams is the input data for user registration.
type CreateUserParams struct {
	Email          string
	HashedPassword string
	FullName       string
	Phone          string
	Role           Role
}
