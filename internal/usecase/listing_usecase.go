package usecase

import (
	"context"

	"backoffice/internal/domain/entity"

	"github.com/google/uuid"
)

// --- Input DTOs ---

// CreatePropertyInput defines the data required to create a property listing.
type CreatePropertyInput struct {
	Reference string
	Title     string
	OwnerName string
	Price     int64
	AgentID   uuid.UUID
}

// UpdatePropertyInput defines the mutable listing fields. Status is absent on
// purpose: status changes go through the approval workflow.
type UpdatePropertyInput struct {
	ID        uuid.UUID
	Title     string
	OwnerName string
	Price     int64
}

// CreateLeadInput defines the data required to create a sales lead.
type CreateLeadInput struct {
	Name    string
	Phone   string
	Source  string
	AgentID uuid.UUID
}

// UpdateLeadInput defines the mutable lead fields, excluding status.
type UpdateLeadInput struct {
	ID     uuid.UUID
	Name   string
	Phone  string
	Source string
}

// ListInput defines pagination and sorting for listing queries.
type ListInput struct {
	Offset  int
	Limit   int
	SortBy  string
	SortDir string
}

// --- Output DTOs ---

// PropertyListOutput returns one page of properties with the total count.
type PropertyListOutput struct {
	Items []*entity.Property
	Total int64
}

// LeadListOutput returns one page of leads with the total count.
type LeadListOutput struct {
	Items []*entity.Lead
	Total int64
}

// ShareOutput returns a listing's public link and its QR rendering.
type ShareOutput struct {
	URL string
	PNG []byte
}

// ListingUsecase defines the interface for property and lead management.
type ListingUsecase interface {
	CreateProperty(ctx context.Context, input *CreatePropertyInput) (*entity.Property, error)
	GetProperty(ctx context.Context, id uuid.UUID) (*entity.Property, error)
	ListProperties(ctx context.Context, input *ListInput) (*PropertyListOutput, error)
	UpdateProperty(ctx context.Context, input *UpdatePropertyInput) (*entity.Property, error)

	CreateLead(ctx context.Context, input *CreateLeadInput) (*entity.Lead, error)
	GetLead(ctx context.Context, id uuid.UUID) (*entity.Lead, error)
	ListLeads(ctx context.Context, input *ListInput) (*LeadListOutput, error)
	UpdateLead(ctx context.Context, input *UpdateLeadInput) (*entity.Lead, error)

	// Share builds the public share link and QR code for an existing listing.
	Share(ctx context.Context, kind entity.EntityKind, id uuid.UUID) (*ShareOutput, error)
}
