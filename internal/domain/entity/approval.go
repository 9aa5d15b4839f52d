// Package entity contains the core business objects of the project.
package entity

import (
	"time"

	"github.com/google/uuid"
)

// ApprovalStatus is the lifecycle state of an approval request.
// PENDING is the only non-terminal state; APPROVED and REJECTED are final.
type ApprovalStatus string

const (
	// ApprovalPending is the initial state of every request.
	ApprovalPending ApprovalStatus = "PENDING"
	// ApprovalApproved is the terminal state after a privileged approval.
	ApprovalApproved ApprovalStatus = "APPROVED"
	// ApprovalRejected is the terminal state after a privileged rejection.
	ApprovalRejected ApprovalStatus = "REJECTED"
)

// String returns the string representation of the approval status.
func (s ApprovalStatus) String() string {
	return string(s)
}

// IsTerminal reports whether the status admits no further transitions.
func (s ApprovalStatus) IsTerminal() bool {
	return s == ApprovalApproved || s == ApprovalRejected
}

// ApprovalRequest records one proposed status change awaiting (or past) a
// privileged decision. Requests are never deleted; resolved ones move to the
// archive view.
//
// Invariants: ApprovedBy is set iff ApprovalStatus is APPROVED; RejectedBy is
// set iff ApprovalStatus is REJECTED; a request leaves PENDING exactly once.
type ApprovalRequest struct {
	ID              uuid.UUID      // The unique identifier for the request.
	EntityKind      EntityKind     // Whether the target is a property or a lead.
	EntityID        uuid.UUID      // The target entity whose status change is proposed.
	RequestedBy     uuid.UUID      // The restricted-role user who asked for the change.
	RequestedStatus ListingStatus  // The status the requester wants applied.
	ApprovalStatus  ApprovalStatus // PENDING until a privileged decision resolves it.
	ApprovedBy      *uuid.UUID     // The approver, set only on APPROVED.
	RejectedBy      *uuid.UUID     // The rejecter, set only on REJECTED.
	Comment         *string        // Optional free-text note from the requester.
	CreatedAt       time.Time
	UpdatedAt       time.Time
}

// Resolved reports whether the request has left PENDING.
func (r *ApprovalRequest) Resolved() bool {
	return r.ApprovalStatus.IsTerminal()
}
