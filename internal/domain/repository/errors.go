// Package repository defines the persistence contracts consumed by the use
// case layer, keeping it independent of any concrete database driver.
package repository

import "backoffice/internal/errors"

// Sentinel errors returned by repository implementations. Use cases translate
// these into domain errors; they never leak to the delivery layer directly.
var (
	ErrUserNotFound         = errors.New("user not found")
	ErrRefreshTokenNotFound = errors.New("refresh token not found")
	ErrRefreshTokenExpired  = errors.New("refresh token expired")
	ErrPropertyNotFound     = errors.New("property not found")
	ErrLeadNotFound         = errors.New("lead not found")
	ErrApprovalNotFound     = errors.New("approval request not found")
	ErrApprovalResolved     = errors.New("approval request already resolved")
)
