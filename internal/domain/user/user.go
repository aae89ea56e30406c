// Package user defines the account model of the identity provider.
package user

import (
	"errors"
	"net/mail"
	"strings"
	"time"
)

// MinPasswordLength is the shortest password accepted at sign-up.
const MinPasswordLength = 6

// User is an account owner. ID is the canonical tenant user ID.
type User struct {
	ID           string    `json:"uid"`
	Email        string    `json:"email"`
	DisplayName  string    `json:"displayName,omitempty"`
	PhotoURL     string    `json:"photoURL,omitempty"`
	PasswordHash string    `json:"-"` // never serialized
	Enabled      bool      `json:"enabled"`
	CreatedAt    time.Time `json:"createdAt"`
	UpdatedAt    time.Time `json:"updatedAt"`
}

// SignUpRequest is the input for creating an account.
type SignUpRequest struct {
	Email       string `json:"email"`
	Password    string `json:"password"` //nolint:gosec // request field, not a hardcoded secret
	DisplayName string `json:"displayName,omitempty"`
}

// Normalize trims whitespace and lowercases the email.
func (r *SignUpRequest) Normalize() {
	r.Email = strings.ToLower(strings.TrimSpace(r.Email))
	r.DisplayName = strings.TrimSpace(r.DisplayName)
}

// Validate checks that the SignUpRequest is acceptable.
func (r *SignUpRequest) Validate() error {
	if r.Email == "" {
		return errors.New("email is required")
	}
	if _, err := mail.ParseAddress(r.Email); err != nil {
		return errors.New("Invalid email address") //nolint:staticcheck // user-facing message
	}
	if len(r.Password) < MinPasswordLength {
		return errors.New("Password is too weak") //nolint:staticcheck // user-facing message
	}
	return nil
}

// SignInRequest is the input for password authentication.
type SignInRequest struct {
	Email    string `json:"email"`
	Password string `json:"password"` //nolint:gosec // request field, not a hardcoded secret
}

// Validate checks that the SignInRequest has all required fields.
func (r *SignInRequest) Validate() error {
	if r.Email == "" {
		return errors.New("email is required")
	}
	if r.Password == "" {
		return errors.New("password is required")
	}
	return nil
}

// Session is returned after sign-up or sign-in.
type Session struct {
	AccessToken string `json:"access_token"` //nolint:gosec // response field, not a hardcoded secret
	ExpiresIn   int    `json:"expires_in"`   // seconds until access token expires
	User        User   `json:"user"`
}

// Claims is the identity carried by a validated access token.
type Claims struct {
	UserID      string
	Email       string
	DisplayName string
	JTI         string
	ExpiresAt   time.Time
}
