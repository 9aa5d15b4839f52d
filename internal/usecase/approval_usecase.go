package usecase

import (
	"context"

	"backoffice/internal/domain/entity"

	"github.com/google/uuid"
)

// --- Input DTOs ---

// ChangeStatusInput defines a proposed status change for a property or lead.
// The actor fields come from the authenticated token claims, never from the
// request body.
type ChangeStatusInput struct {
	ActorID   uuid.UUID
	ActorRole entity.Role
	Kind      entity.EntityKind
	EntityID  uuid.UUID
	NewStatus entity.ListingStatus
	Comment   string
}

// DecideInput defines a privileged decision on a pending approval request.
// Kind, when set, must match the request's entity kind; a mismatch is treated
// as not found so the property and lead endpoints stay disjoint.
type DecideInput struct {
	RequestID uuid.UUID
	ActorID   uuid.UUID
	ActorRole entity.Role
	Kind      entity.EntityKind
}

// --- Output DTOs ---

// ChangeStatusOutput reports which of the two paths a status change took.
// When Applied is true the status is already live and Request is nil; when
// false the change is parked behind the returned PENDING request.
type ChangeStatusOutput struct {
	Applied bool
	Request *entity.ApprovalRequest
}

// ApprovalUsecase defines the interface for the status approval workflow.
type ApprovalUsecase interface {
	// ChangeStatus applies the change directly when the actor's role allows
	// the target status, otherwise records a PENDING approval request.
	ChangeStatus(ctx context.Context, input *ChangeStatusInput) (*ChangeStatusOutput, error)

	// ListPending returns the open requests for an entity kind, oldest first.
	ListPending(ctx context.Context, kind entity.EntityKind) ([]*entity.ApprovalRequest, error)

	// ListArchive returns the resolved requests for an entity kind.
	ListArchive(ctx context.Context, kind entity.EntityKind) ([]*entity.ApprovalRequest, error)

	// Approve resolves a pending request and applies the requested status.
	Approve(ctx context.Context, input *DecideInput) (*entity.ApprovalRequest, error)

	// Reject resolves a pending request without touching the entity.
	Reject(ctx context.Context, input *DecideInput) (*entity.ApprovalRequest, error)
}
