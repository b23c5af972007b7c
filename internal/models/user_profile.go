package models

import (
	"time"

	"github.com/google/uuid"
)

type UserProfile struct {
	Versioned

	ID           uuid.UUID `json:"id"`
	Email        string    `json:"email"`
	Phone        string    `json:"phone,omitempty"`
	FullName     string    `json:"full_name"`
	Role         string    `json:"role"` // normalized via utils.NormalizeRole
	PasswordHash string    `json:"-"`

	CreatedAt time.Time `json:"created_at"`
	UpdatedAt time.Time `json:"updated_at"`
}

func (u *UserProfile) GetID() string {
	return u.ID.String()
}
