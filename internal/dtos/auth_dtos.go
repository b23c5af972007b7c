package dtos

import "github.com/binbird1-hash/binbird-backend/internal/models"

type LoginRequest struct {
	Email    string `json:"email" validate:"required,email"`
	Password string `json:"password" validate:"required"`
}

// LoginResponse carries the token only for mobile callers; web portals
// receive it as an HttpOnly cookie instead.
type LoginResponse struct {
	AccessToken string              `json:"access_token,omitempty"`
	User        *models.UserProfile `json:"user"`
	Role        string              `json:"role"`
}

type PasswordResetRequest struct {
	Email string `json:"email" validate:"required,email"`
}

type PasswordResetConfirmRequest struct {
	Email       string `json:"email" validate:"required,email"`
	Code        string `json:"code" validate:"required,len=6,numeric"`
	NewPassword string `json:"new_password" validate:"required,min=8"`
}

type MessageResponse struct {
	Message string `json:"message"`
}
