// Package entity contains the core business objects of the project.
package entity

import "slices"

// ListingStatus is the color-coded sales status carried by properties and leads.
type ListingStatus string

const (
	// StatusWhite marks a fresh, unworked listing.
	StatusWhite ListingStatus = "WHITE"
	// StatusRed marks a listing that needs urgent follow-up.
	StatusRed ListingStatus = "RED"
	// StatusBlue marks a listing in active negotiation.
	StatusBlue ListingStatus = "BLUE"
	// StatusGreen marks a listing with a confirmed buyer.
	StatusGreen ListingStatus = "GREEN"
	// StatusReserved marks a listing held for a specific client.
	StatusReserved ListingStatus = "RESERVED"
	// StatusSold marks a closed deal.
	StatusSold ListingStatus = "SOLD"
)

// AllListingStatuses enumerates every legal status value, in workflow order.
func AllListingStatuses() []ListingStatus {
	return []ListingStatus{StatusWhite, StatusRed, StatusBlue, StatusGreen, StatusReserved, StatusSold}
}

// String returns the string representation of the status.
func (s ListingStatus) String() string {
	return string(s)
}

// IsValid checks if the status is a known value.
func (s ListingStatus) IsValid() bool {
	return slices.Contains(AllListingStatuses(), s)
}

// EntityKind distinguishes the two entity types that carry a workflow status.
type EntityKind string

const (
	// KindProperty refers to a property listing.
	KindProperty EntityKind = "property"
	// KindLead refers to a sales lead.
	KindLead EntityKind = "lead"
)

// String returns the string representation of the kind.
func (k EntityKind) String() string {
	return string(k)
}

// IsValid checks if the kind is a known value.
func (k EntityKind) IsValid() bool {
	return k == KindProperty || k == KindLead
}
