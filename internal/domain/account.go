// Package domain provides definitions of all entities.
package domain

import (
	"errors"
	"time"
)

var (
	// ErrAccountNotFound indicates that the account is not found.
	ErrAccountNotFound = errors.New("account not found")
	// ErrAccountFrozen indicates that the account status forbids balance changes.
	ErrAccountFrozen = errors.New("account is frozen")
	// ErrAccountNotFrozen indicates an unfreeze request for an account that is not frozen.
	ErrAccountNotFrozen = errors.New("account is not frozen")
	// ErrAccountNumberExists indicates a generated account number collision.
	ErrAccountNumberExists = errors.New("account number already exists")
	// ErrAccountOwnerMismatch indicates that the account belongs to another user.
	ErrAccountOwnerMismatch = errors.New("account does not belong to the user")
	// ErrUserNotFound indicates that the owner for the account is not found.
	ErrUserNotFound = errors.New("user not found")
)

// AccountStatus restricts which operations an account accepts.
type AccountStatus string

// Only ACTIVE accounts accept balance-changing operations.
const (
	StatusActive AccountStatus = "ACTIVE"
	StatusFrozen AccountStatus = "FROZEN"
)

// Account holds one user's balance under a unique account number.
type Account struct {
	ID            string        `json:"id"`
	UserID        string        `json:"user_id"`
	AccountNumber string        `json:"account_number"`
	Balance       string        `json:"balance"`
	Status        AccountStatus `json:"status"`
	CreatedAt     time.Time     `json:"created_at"`
}
