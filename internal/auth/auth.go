package auth

import (
	"errors"

	"github.com/google/uuid"
)

// Role gates what a signed-in user may do. Only admins get interactive
// access to the bill screens.
type Role string

const (
	RoleAdmin         Role = "admin"
	RoleOutletManager Role = "outlet_manager"
)

var (
	ErrNotFound           = errors.New("user not found")
	ErrInvalidCredentials = errors.New("invalid email or password")
	ErrInvalidToken       = errors.New("invalid or expired token")
)

type User struct {
	ID           uuid.UUID
	Email        string
	PasswordHash string
	Role         Role
}

// Identity is the authenticated caller carried through request contexts.
type Identity struct {
	UserID uuid.UUID
	Email  string
	Role   Role
}

func (i Identity) IsAdmin() bool {
	return i.Role == RoleAdmin
}
