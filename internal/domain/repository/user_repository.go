package repository

import (
	"context"

	"backoffice/internal/domain/entity"

	"github.com/google/uuid"
)

// UserRepository defines the persistence operations for back-office users.
type UserRepository interface {
	// Create persists a new user.
	Create(ctx context.Context, user *entity.User) error

	// FindByID retrieves a single user by their unique ID.
	FindByID(ctx context.Context, id uuid.UUID) (*entity.User, error)

	// FindByEmail retrieves a single user by their login email.
	FindByEmail(ctx context.Context, email string) (*entity.User, error)

	// Update persists changes to an existing user.
	Update(ctx context.Context, user *entity.User) error
}
