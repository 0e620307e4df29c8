// Package user holds the owner identity behind every account.
package user

import (
	"errors"
	"net/mail"
	"time"

	"github.com/google/uuid"
	"golang.org/x/crypto/bcrypt"
)

var (
	// ErrUserUnauthorized is returned for missing or invalid credentials.
	// It is intentionally generic so login failures do not reveal whether
	// the identity exists.
	ErrUserUnauthorized = errors.New("unauthorized")

	// ErrInvalidUser is returned when registration input violates an
	// invariant.
	ErrInvalidUser = errors.New("invalid user")
)

// User is an authenticated caller identity. Passwords are stored only as
// bcrypt hashes.
type User struct {
	ID             uuid.UUID
	Username       string
	Email          string
	HashedPassword string
	CreatedAt      time.Time
}

// New builds a user with a freshly hashed password.
func New(username, email, password string) (*User, error) {
	if len(username) < 3 || len(username) > 50 {
		return nil, ErrInvalidUser
	}
	if !IsEmail(email) {
		return nil, ErrInvalidUser
	}
	if len(password) < 6 || len(password) > 72 {
		return nil, ErrInvalidUser
	}
	hashed, err := bcrypt.GenerateFromPassword([]byte(password), bcrypt.DefaultCost)
	if err != nil {
		return nil, err
	}
	return &User{
		ID:             uuid.New(),
		Username:       username,
		Email:          email,
		HashedPassword: string(hashed),
		CreatedAt:      time.Now(),
	}, nil
}

// CheckPassword compares a plain password against the stored hash.
func (u *User) CheckPassword(password string) bool {
	return bcrypt.CompareHashAndPassword([]byte(u.HashedPassword), []byte(password)) == nil
}

// IsEmail reports whether s parses as an email address.
func IsEmail(s string) bool {
	_, err := mail.ParseAddress(s)
	return err == nil
}
