package repository

import (
	"context"

	"backoffice/internal/domain/entity"

	"github.com/google/uuid"
)

// PropertyRepository defines the persistence operations for property listings.
type PropertyRepository interface {
	// Create persists a new property.
	Create(ctx context.Context, property *entity.Property) error

	// FindByID retrieves a single property by its unique ID.
	FindByID(ctx context.Context, id uuid.UUID) (*entity.Property, error)

	// List returns a page of properties plus the total count.
	List(ctx context.Context, page entity.ListPage) ([]*entity.Property, int64, error)

	// Update persists changes to an existing property.
	Update(ctx context.Context, property *entity.Property) error

	// UpdateStatus sets the live status field of a property.
	UpdateStatus(ctx context.Context, id uuid.UUID, status entity.ListingStatus) error
}

// LeadRepository defines the persistence operations for sales leads.
type LeadRepository interface {
	// Create persists a new lead.
	Create(ctx context.Context, lead *entity.Lead) error

	// FindByID retrieves a single lead by its unique ID.
	FindByID(ctx context.Context, id uuid.UUID) (*entity.Lead, error)

	// List returns a page of leads plus the total count.
	List(ctx context.Context, page entity.ListPage) ([]*entity.Lead, int64, error)

	// Update persists changes to an existing lead.
	Update(ctx context.Context, lead *entity.Lead) error

	// UpdateStatus sets the live status field of a lead.
	UpdateStatus(ctx context.Context, id uuid.UUID, status entity.ListingStatus) error
}
