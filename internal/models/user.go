package models

import "time"

// MaxPasswordBytes is bcrypt's input limit; it ignores anything past it
// and newer versions reject it.
const MaxPasswordBytes = 72

// User is a registered identity.
type User struct {
	ID           string    `json:"userId"`
	Name         string    `json:"name"`
	PasswordHash string    `json:"-"` // never serialize
	AccessToken  string    `json:"-"`
	CreatedAt    time.Time `json:"createdAt"`
}

// RegisterRequest is the JSON body for POST /users.
type RegisterRequest struct {
	Name     string `json:"name" validate:"required,min=2"`
	Password string `json:"password" validate:"required,min=5,bcryptmax"`
}

// Validate checks the field constraints of a new identity.
func (r RegisterRequest) Validate() error {
	return validateStruct(r)
}

// LoginRequest is the JSON body for POST /sessions.
type LoginRequest struct {
	Name     string `json:"name"`
	Password string `json:"password"`
}

// AuthResponse is returned by sign-up and login.
type AuthResponse struct {
	UserID      string `json:"userId"`
	AccessToken string `json:"accessToken"`
}

// ProfileResponse is the body of GET /profile.
type ProfileResponse struct {
	Name string `json:"name"`
}

// SecretResponse is the body of GET /secret.
type SecretResponse struct {
	SecretMessage string `json:"secretMessage"`
}

// ValidateName applies the identity and rating name rule.
func ValidateName(name string) error {
	return validateVar("name", name, "required,min=2")
}

func ValidatePassword(password string) error {
	return validateVar("password", password, "required,min=5,bcryptmax")
}
