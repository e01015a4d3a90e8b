package domain

import (
	"context"
	"errors"
)

var (
	ErrArcNotFound = errors.New("arc not found")
)

type UserRepository interface {
	// Create persists a new user account.
	Create(ctx context.Context, user *User) error

	// GetByID retrieves a user by its unique identifier.
	GetByID(ctx context.Context, id string) (*User, error)

	// GetByEmail retrieves a user by its (lowercased) email address.
	GetByEmail(ctx context.Context, email string) (*User, error)

	// Update persists profile changes.
	Update(ctx context.Context, user *User) error
}

type ArcRepository interface {
	// Create persists a new ARC definition in the storage.
	Create(ctx context.Context, arc *Arc) error

	// GetByID retrieves an ARC by its unique identifier.
	GetByID(ctx context.Context, id string) (*Arc, error)

	// ListByUserID retrieves all ARCs associated with a specific user.
	ListByUserID(ctx context.Context, userID string) ([]*Arc, error)

	// Update modifies the state of an existing ARC.
	Update(ctx context.Context, arc *Arc) error

	// Delete permanently removes an ARC from the system.
	Delete(ctx context.Context, id string) error

	UpdateStreaks(ctx context.Context, id string, current, longest int) error
}
