package domain

import (
	"errors"
	"net/mail"
	"regexp"
	"strings"
	"time"
	"unicode/utf8"

	"golang.org/x/crypto/bcrypt"
)

var (
	ErrUserNotFound       = errors.New("user not found")
	ErrEmailAlreadyExists = errors.New("email already exists")
	ErrHandleTaken        = errors.New("handle already taken")
	ErrInvalidCredentials = errors.New("invalid credentials")
	ErrInvalidEmail       = errors.New("invalid email format")
	ErrInvalidHandle      = errors.New("invalid handle (3-30 chars, letters, digits, underscore)")
	ErrPasswordTooShort   = errors.New("password must be at least 8 characters long")
	ErrUnauthorized       = errors.New("resource does not belong to the user")
)

var handleRegex = regexp.MustCompile(`^[a-zA-Z0-9_]{3,30}$`)

type User struct {
	ID           string    `json:"id" db:"id"`
	Email        string    `json:"email" db:"email"`
	Handle       string    `json:"handle" db:"handle"`
	DisplayName  string    `json:"display_name" db:"display_name"`
	Bio          string    `json:"bio,omitempty" db:"bio"`
	PasswordHash string    `json:"-" db:"password_hash"`
	CreatedAt    time.Time `json:"created_at" db:"created_at"`
	UpdatedAt    time.Time `json:"updated_at" db:"updated_at"`
}

func NewUser(id, email, handle string) (*User, error) {
	email = strings.TrimSpace(email)
	handle = strings.TrimSpace(handle)

	if !isValidEmail(email) {
		return nil, ErrInvalidEmail
	}
	if !handleRegex.MatchString(handle) {
		return nil, ErrInvalidHandle
	}

	now := time.Now().UTC()
	return &User{
		ID:          id,
		Email:       strings.ToLower(email),
		Handle:      handle,
		DisplayName: handle,
		CreatedAt:   now,
		UpdatedAt:   now,
	}, nil
}

func (u *User) SetPassword(plainPassword string) error {
	if utf8.RuneCountInString(plainPassword) < 8 {
		return ErrPasswordTooShort
	}

	hash, err := bcrypt.GenerateFromPassword([]byte(plainPassword), 12)
	if err != nil {
		return err
	}

	u.PasswordHash = string(hash)
	u.UpdatedAt = time.Now().UTC()
	return nil
}

func (u *User) CheckPassword(plainPassword string) error {
	return bcrypt.CompareHashAndPassword([]byte(u.PasswordHash), []byte(plainPassword))
}

func (u *User) UpdateProfile(displayName, bio string) {
	displayName = strings.TrimSpace(displayName)
	if displayName != "" {
		u.DisplayName = displayName
	}
	u.Bio = strings.TrimSpace(bio)
	u.UpdatedAt = time.Now().UTC()
}

func isValidEmail(email string) bool {
	_, err := mail.ParseAddress(email)
	return err == nil
}
