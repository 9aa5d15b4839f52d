// Package qrcode renders public listing share links as QR codes.
package qrcode

import (
	"fmt"
	"strings"

	"backoffice/config"
	"backoffice/internal/domain/entity"
	"backoffice/internal/domain/service"

	"github.com/google/uuid"
	"github.com/skip2/go-qrcode"
)

const defaultQRSize = 256

type shareService struct {
	baseURL string
	size    int
}

// NewShareService creates a new share link service instance
func NewShareService(cfg *config.Config) service.ShareService {
	baseURL := ""
	size := defaultQRSize
	if cfg.Share != nil {
		baseURL = strings.TrimRight(cfg.Share.BaseURL, "/")
		if cfg.Share.QRSize > 0 {
			size = cfg.Share.QRSize
		}
	}

	return &shareService{
		baseURL: baseURL,
		size:    size,
	}
}

// ShareURL returns the public URL for a listing.
func (s *shareService) ShareURL(kind entity.EntityKind, id uuid.UUID) string {
	return fmt.Sprintf("%s/share/%s/%s", s.baseURL, kind.String(), id.String())
}

// GenerateShareQR renders the share URL of a listing as a PNG QR code.
func (s *shareService) GenerateShareQR(kind entity.EntityKind, id uuid.UUID) ([]byte, error) {
	qrCode, err := qrcode.New(s.ShareURL(kind, id), qrcode.Medium)
	if err != nil {
		return nil, fmt.Errorf("failed to create QR code: %w", err)
	}

	pngBytes, err := qrCode.PNG(s.size)
	if err != nil {
		return nil, fmt.Errorf("failed to generate PNG: %w", err)
	}

	return pngBytes, nil
}
