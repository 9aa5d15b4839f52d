package repository

import (
	"context"

	"backoffice/internal/domain/entity"

	"github.com/google/uuid"
)

// ApprovalRequestRepository defines the persistence operations for approval
// requests. Requests are append-then-resolve records: they are created as
// PENDING, resolved at most once, and never deleted.
type ApprovalRequestRepository interface {
	// Create persists a new PENDING request.
	Create(ctx context.Context, request *entity.ApprovalRequest) error

	// FindByID retrieves a single request by its unique ID.
	FindByID(ctx context.Context, id uuid.UUID) (*entity.ApprovalRequest, error)

	// ListPending returns all PENDING requests for an entity kind,
	// oldest first so approvers work the queue in order.
	ListPending(ctx context.Context, kind entity.EntityKind) ([]*entity.ApprovalRequest, error)

	// ListArchive returns all resolved requests for an entity kind,
	// most recently updated first.
	ListArchive(ctx context.Context, kind entity.EntityKind) ([]*entity.ApprovalRequest, error)

	// Resolve moves a PENDING request to a terminal status, stamping the
	// decider. It returns ErrApprovalResolved when the request is no longer
	// PENDING, which makes the PENDING-to-terminal transition race-safe.
	Resolve(ctx context.Context, id uuid.UUID, decision entity.ApprovalStatus, decidedBy uuid.UUID) (*entity.ApprovalRequest, error)
}
