// Package types provides type definitions for structured data used throughout
// the CodeSync backend.
package types

import (
	"time"

	"github.com/go-playground/validator/v10"
	"github.com/google/uuid"
)

// CreateUserRequest represents the request to register a new student account.
type CreateUserRequest struct {
	Name     string `json:"name" validate:"required,min=1"`
	Email    string `json:"email" validate:"required,email"`
	Password string `json:"password" validate:"required,min=8"`
	College  string `json:"college,omitempty"`
	GradYear int    `json:"grad_year,omitempty" validate:"omitempty,min=1990,max=2100"`
}

// LoginRequest represents the login request.
type LoginRequest struct {
	Email    string `json:"email" validate:"required,email"`
	Password string `json:"password" validate:"required"`
}

// User represents a student profile for API responses (password hash excluded).
type User struct {
	ID        uuid.UUID `json:"id"`
	Name      string    `json:"name"`
	Email     string    `json:"email"`
	College   string    `json:"college,omitempty"`
	GradYear  int       `json:"grad_year,omitempty"`
	Skills    []string  `json:"skills,omitempty"`
	CreatedAt time.Time `json:"created_at"`
	UpdatedAt time.Time `json:"updated_at"`
}

// UpdateUserRequest represents a profile update. Zero-valued fields are left
// unchanged.
type UpdateUserRequest struct {
	Name     string   `json:"name,omitempty"`
	College  string   `json:"college,omitempty"`
	GradYear int      `json:"grad_year,omitempty" validate:"omitempty,min=1990,max=2100"`
	Skills   []string `json:"skills,omitempty"`
}

// LoginResponse represents the login/register response with user data and
// authentication token.
type LoginResponse struct {
	User  *User  `json:"user"`
	Token string `json:"token"`
}

// Validate validates the CreateUserRequest using the validator.
func (r *CreateUserRequest) Validate() error {
	return validator.New().Struct(r)
}

// Validate validates the LoginRequest using the validator.
func (r *LoginRequest) Validate() error {
	return validator.New().Struct(r)
}

// Validate validates the UpdateUserRequest using the validator.
func (r *UpdateUserRequest) Validate() error {
	return validator.New().Struct(r)
}
