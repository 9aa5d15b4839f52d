package qrcode

import (
	"testing"

	"backoffice/config"
	"backoffice/internal/domain/entity"

	"github.com/google/uuid"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestShareService_ShareURL(t *testing.T) {
	cfg := &config.Config{
		Share: &config.ShareConfig{BaseURL: "https://listings.example.com/", QRSize: 256},
	}
	svc := NewShareService(cfg)

	id := uuid.New()
	url := svc.ShareURL(entity.KindProperty, id)
	assert.Equal(t, "https://listings.example.com/share/property/"+id.String(), url)
}

func TestShareService_GenerateShareQR(t *testing.T) {
	cfg := &config.Config{
		Share: &config.ShareConfig{BaseURL: "https://listings.example.com", QRSize: 128},
	}
	svc := NewShareService(cfg)

	qrBytes, err := svc.GenerateShareQR(entity.KindLead, uuid.New())
	require.NoError(t, err)
	require.NotEmpty(t, qrBytes)

	// Valid PNG output (starts with the PNG magic number).
	assert.Equal(t, byte(0x89), qrBytes[0])
	assert.Equal(t, byte(0x50), qrBytes[1])
	assert.Equal(t, byte(0x4E), qrBytes[2])
	assert.Equal(t, byte(0x47), qrBytes[3])
}

func TestShareService_DefaultSize(t *testing.T) {
	svc := NewShareService(&config.Config{})

	qrBytes, err := svc.GenerateShareQR(entity.KindProperty, uuid.New())
	require.NoError(t, err)
	assert.NotEmpty(t, qrBytes)
}
