package model

import (
	"time"

	"github.com/google/uuid"
)

// ApprovalRequestModel mirrors the 'approval_requests' table. A composite index on
// (entity_kind, approval_status) serves the pending and archive list queries.
type ApprovalRequestModel struct {
	ID              uuid.UUID  `gorm:"type:uuid;primary_key;default:uuid_generate_v7()"`
	EntityKind      string     `gorm:"type:varchar(20);not null;index:idx_approval_kind_status"`
	EntityID        uuid.UUID  `gorm:"type:uuid;not null;index"`
	RequestedBy     uuid.UUID  `gorm:"type:uuid;not null"`
	RequestedStatus string     `gorm:"type:varchar(20);not null"`
	ApprovalStatus  string     `gorm:"type:varchar(20);not null;index:idx_approval_kind_status"`
	ApprovedBy      *uuid.UUID `gorm:"type:uuid"`
	RejectedBy      *uuid.UUID `gorm:"type:uuid"`
	Comment         *string    `gorm:"type:text"`
	CreatedAt       time.Time
	UpdatedAt       time.Time
}

// TableName explicitly sets the table name for GORM.
func (ApprovalRequestModel) TableName() string {
	return "approval_requests"
}
