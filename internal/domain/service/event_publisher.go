package service

import (
	"context"
	"time"

	"backoffice/internal/domain/entity"

	"github.com/google/uuid"
)

// ApprovalDecidedEvent is published whenever an approval request leaves
// PENDING, so downstream consumers (notification fan-out, reporting) can
// react without polling the archive.
type ApprovalDecidedEvent struct {
	RequestID       uuid.UUID             `json:"request_id"`
	EntityKind      entity.EntityKind     `json:"entity_kind"`
	EntityID        uuid.UUID             `json:"entity_id"`
	RequestedBy     uuid.UUID             `json:"requested_by"`
	RequestedStatus entity.ListingStatus  `json:"requested_status"`
	Decision        entity.ApprovalStatus `json:"decision"`
	DecidedBy       uuid.UUID             `json:"decided_by"`
	DecidedAt       time.Time             `json:"decided_at"`
	RequestIDTrace  string                `json:"request_id_trace,omitempty"` // HTTP request ID, for correlation.
}

// EventPublisher defines the interface for publishing workflow events.
type EventPublisher interface {
	// PublishApprovalDecided publishes a decision event. Implementations must
	// not block the deciding transaction on delivery failures.
	PublishApprovalDecided(ctx context.Context, event *ApprovalDecidedEvent) error

	// Close releases publisher resources.
	Close() error
}
