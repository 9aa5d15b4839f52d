// Package entity contains the core business objects of the project.
package entity

import (
	"time"

	"github.com/google/uuid"
)

// Property is a listed real-estate unit managed by an agent.
type Property struct {
	ID        uuid.UUID     // The unique identifier for the property.
	Reference string        // Human-readable listing reference, e.g. "PR-2031".
	Title     string        // Short marketing title.
	OwnerName string        // Name of the property owner.
	Price     int64         // Asking price in the smallest currency unit.
	Status    ListingStatus // Current workflow status; gated writes go through approvals.
	AgentID   uuid.UUID     // The agent responsible for the listing.
	CreatedAt time.Time
	UpdatedAt time.Time
}

// Lead is a prospective buyer or seller contact worked by an agent.
type Lead struct {
	ID        uuid.UUID     // The unique identifier for the lead.
	Name      string        // The contact's name.
	Phone     string        // The contact's phone number.
	Source    string        // Acquisition channel, e.g. "portal", "referral".
	Status    ListingStatus // Current workflow status; shares the property status set.
	AgentID   uuid.UUID     // The agent working the lead.
	CreatedAt time.Time
	UpdatedAt time.Time
}

// ListPage describes pagination and sorting for listing queries.
type ListPage struct {
	Offset  int
	Limit   int
	SortBy  string // Column name; repositories whitelist legal values.
	SortDir string // "asc" or "desc".
}
