package models

import (
	"time"

	"github.com/google/uuid"
)

type User struct {
	ID           uuid.UUID `json:"id"`
	Email        string    `json:"email"`
	PasswordHash string    `json:"-"`
	Name         string    `json:"name"`
	CreatedAt    time.Time `json:"created_at"`
	UpdatedAt    time.Time `json:"updated_at"`
}

type CreateUserParams struct {
	Email        string
	PasswordHash string
	Name         string
}

// UpdateUserParams carries a partial user update. Nil fields are left
// unchanged.
type UpdateUserParams struct {
	Name         *string
	Email        *string
	PasswordHash *string
}
