package dto

import "time"

// RegisterRequest input per la registrazione (auth): email, password, nome studio.
type RegisterRequest struct {
	Email      string `json:"email" validate:"required,email"`
	Password   string `json:"password" validate:"required,min=8"`
	StudioName string `json:"studio_name" validate:"omitempty,max=200"`
	Plan       string `json:"plan" validate:"omitempty,oneof=free pro enterprise"`
}

// LoginRequest input per il login.
type LoginRequest struct {
	Email    string `json:"email" validate:"required,email"`
	Password string `json:"password" validate:"required"`
}

// UserResponse output di un utente (senza password).
type UserResponse struct {
	ID         string            `json:"id"`
	Email      string            `json:"email"`
	StudioName string            `json:"studio_name"`
	Plan       string            `json:"plan"`
	Preferences map[string]string `json:"preferences,omitempty"`
	CreatedAt  time.Time         `json:"created_at"`
	UpdatedAt  time.Time         `json:"updated_at"`
}

// LoginResponse token JWT più il profilo dell'utente.
type LoginResponse struct {
	Token string       `json:"token"`
	User  UserResponse `json:"user"`
}
