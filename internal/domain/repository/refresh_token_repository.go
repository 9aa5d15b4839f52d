package repository

import (
	"context"

	"backoffice/internal/domain/entity"

	"github.com/google/uuid"
)

// RefreshTokenRepository defines the persistence operations for refresh
// token sessions.
type RefreshTokenRepository interface {
	// CreateRefreshToken persists a new refresh token, representing a user session.
	CreateRefreshToken(ctx context.Context, token *entity.RefreshToken) error

	// FindRefreshTokenByHash retrieves a non-expired token record by its stored hash.
	FindRefreshTokenByHash(ctx context.Context, tokenHash string) (*entity.RefreshToken, error)

	// ReplaceRefreshToken atomically swaps the stored hash and expiry of an
	// existing session record, used when the refresh endpoint rotates tokens.
	// The token argument carries the new hash and expiry for record id.
	ReplaceRefreshToken(ctx context.Context, id uuid.UUID, token *entity.RefreshToken) error

	// DeleteRefreshTokenByHash deletes a token by its hash, ending a session.
	DeleteRefreshTokenByHash(ctx context.Context, tokenHash string) error

	// DeleteRefreshTokensByUserID removes all sessions for a specific user.
	DeleteRefreshTokensByUserID(ctx context.Context, userID uuid.UUID) error

	// DeleteExpiredRefreshTokens removes all expired sessions.
	DeleteExpiredRefreshTokens(ctx context.Context) error
}
