package service

import (
	"backoffice/internal/domain/entity"

	"github.com/google/uuid"
)

// ShareService builds public share links for listings and renders them as
// QR codes for print material.
type ShareService interface {
	// ShareURL returns the public URL for a listing.
	ShareURL(kind entity.EntityKind, id uuid.UUID) string

	// GenerateShareQR renders the share URL of a listing as a PNG QR code.
	GenerateShareQR(kind entity.EntityKind, id uuid.UUID) ([]byte, error)
}
