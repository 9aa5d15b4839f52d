package auth

import (
	"testing"

	"backoffice/config"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestBcryptHasher_HashAndCheck(t *testing.T) {
	cfg := &config.Config{Auth: &config.AuthConfig{BcryptCost: 4}}
	hasher := NewBcryptHasher(cfg)

	hashed, err := hasher.Hash("s3cret")
	require.NoError(t, err)
	require.NotEmpty(t, hashed)
	assert.NotEqual(t, "s3cret", hashed)

	assert.NoError(t, hasher.Check(hashed, "s3cret"))
	assert.Error(t, hasher.Check(hashed, "wrong"))
}

func TestBcryptHasher_InvalidCostFallsBack(t *testing.T) {
	cfg := &config.Config{Auth: &config.AuthConfig{BcryptCost: 99}}
	hasher := NewBcryptHasher(cfg)

	hashed, err := hasher.Hash("pw")
	require.NoError(t, err)
	assert.NoError(t, hasher.Check(hashed, "pw"))
}
