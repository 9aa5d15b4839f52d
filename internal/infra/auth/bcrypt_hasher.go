package auth

import (
	"backoffice/config"
	"backoffice/internal/domain/service"
	"backoffice/internal/errors"

	"golang.org/x/crypto/bcrypt"
)

// bcryptHasher hashes passwords with bcrypt at a configurable cost.
type bcryptHasher struct {
	cost int
}

// NewBcryptHasher is the constructor for bcryptHasher.
func NewBcryptHasher(cfg *config.Config) service.PasswordHasher {
	cost := bcrypt.DefaultCost
	if cfg.Auth != nil && cfg.Auth.BcryptCost >= bcrypt.MinCost && cfg.Auth.BcryptCost <= bcrypt.MaxCost {
		cost = cfg.Auth.BcryptCost
	}

	return &bcryptHasher{cost: cost}
}

// Hash returns the bcrypt hash of the given plaintext password.
func (h *bcryptHasher) Hash(password string) (string, error) {
	hashed, err := bcrypt.GenerateFromPassword([]byte(password), h.cost)
	if err != nil {
		return "", errors.Wrap(err, "failed to hash password")
	}

	return string(hashed), nil
}

// Check reports whether the plaintext password matches the stored hash.
func (h *bcryptHasher) Check(hashedPassword, password string) error {
	if err := bcrypt.CompareHashAndPassword([]byte(hashedPassword), []byte(password)); err != nil {
		return errors.Wrap(err, "password mismatch")
	}

	return nil
}
