package impl

import (
	"context"
	"log/slog"

	deliverycontext "backoffice/internal/delivery/context"
	"backoffice/internal/domain/entity"
	domainerrors "backoffice/internal/domain/errors"
	"backoffice/internal/domain/repository"
	"backoffice/internal/domain/service"
	"backoffice/internal/usecase"

	"github.com/google/uuid"
	"github.com/pkg/errors"
	"go.uber.org/fx"
)

const defaultListLimit = 50

// listingService implements the ListingUsecase interface.
type listingService struct {
	propertyRepo repository.PropertyRepository
	leadRepo     repository.LeadRepository
	shareService service.ShareService
	logger       *slog.Logger
}

// ListingServiceParams holds dependencies for listingService, injected by Fx.
type ListingServiceParams struct {
	fx.In

	PropertyRepo repository.PropertyRepository
	LeadRepo     repository.LeadRepository
	ShareService service.ShareService
	Logger       *slog.Logger
}

// NewListingService is the constructor for listingService.
func NewListingService(params ListingServiceParams) usecase.ListingUsecase {
	return &listingService{
		propertyRepo: params.PropertyRepo,
		leadRepo:     params.LeadRepo,
		shareService: params.ShareService,
		logger:       params.Logger,
	}
}

func (srv *listingService) log(ctx context.Context) *slog.Logger {
	return deliverycontext.GetLoggerOrDefault(ctx, srv.logger)
}

// CreateProperty registers a new listing. Fresh listings always start WHITE.
func (srv *listingService) CreateProperty(ctx context.Context, input *usecase.CreatePropertyInput) (*entity.Property, error) {
	property := &entity.Property{
		Reference: input.Reference,
		Title:     input.Title,
		OwnerName: input.OwnerName,
		Price:     input.Price,
		Status:    entity.StatusWhite,
		AgentID:   input.AgentID,
	}

	if err := srv.propertyRepo.Create(ctx, property); err != nil {
		srv.log(ctx).Warn("Failed to create property", slog.String("reference", input.Reference), slog.Any("error", err))

		return nil, errors.Wrap(err, "failed to create property")
	}
	srv.log(ctx).Info("Property created", slog.Any("propertyID", property.ID), slog.String("reference", property.Reference))

	return property, nil
}

// GetProperty loads a single listing.
func (srv *listingService) GetProperty(ctx context.Context, id uuid.UUID) (*entity.Property, error) {
	property, err := srv.propertyRepo.FindByID(ctx, id)
	if err != nil {
		if errors.Is(err, repository.ErrPropertyNotFound) {
			return nil, errors.Wrap(domainerrors.ErrNotFound, "property not found")
		}

		return nil, errors.Wrap(err, "failed to find property")
	}

	return property, nil
}

// ListProperties returns one page of listings with the total count.
func (srv *listingService) ListProperties(ctx context.Context, input *usecase.ListInput) (*usecase.PropertyListOutput, error) {
	items, total, err := srv.propertyRepo.List(ctx, toListPage(input))
	if err != nil {
		return nil, errors.Wrap(err, "failed to list properties")
	}

	return &usecase.PropertyListOutput{Items: items, Total: total}, nil
}

// UpdateProperty writes the mutable listing fields. Status never changes
// here; that path belongs to the approval workflow.
func (srv *listingService) UpdateProperty(ctx context.Context, input *usecase.UpdatePropertyInput) (*entity.Property, error) {
	property, err := srv.GetProperty(ctx, input.ID)
	if err != nil {
		return nil, err
	}

	property.Title = input.Title
	property.OwnerName = input.OwnerName
	property.Price = input.Price

	if err := srv.propertyRepo.Update(ctx, property); err != nil {
		srv.log(ctx).Warn("Failed to update property", slog.Any("propertyID", input.ID), slog.Any("error", err))

		return nil, errors.Wrap(err, "failed to update property")
	}

	return property, nil
}

// CreateLead registers a new sales lead, starting WHITE.
func (srv *listingService) CreateLead(ctx context.Context, input *usecase.CreateLeadInput) (*entity.Lead, error) {
	lead := &entity.Lead{
		Name:    input.Name,
		Phone:   input.Phone,
		Source:  input.Source,
		Status:  entity.StatusWhite,
		AgentID: input.AgentID,
	}

	if err := srv.leadRepo.Create(ctx, lead); err != nil {
		srv.log(ctx).Warn("Failed to create lead", slog.Any("error", err))

		return nil, errors.Wrap(err, "failed to create lead")
	}
	srv.log(ctx).Info("Lead created", slog.Any("leadID", lead.ID))

	return lead, nil
}

// GetLead loads a single lead.
func (srv *listingService) GetLead(ctx context.Context, id uuid.UUID) (*entity.Lead, error) {
	lead, err := srv.leadRepo.FindByID(ctx, id)
	if err != nil {
		if errors.Is(err, repository.ErrLeadNotFound) {
			return nil, errors.Wrap(domainerrors.ErrNotFound, "lead not found")
		}

		return nil, errors.Wrap(err, "failed to find lead")
	}

	return lead, nil
}

// ListLeads returns one page of leads with the total count.
func (srv *listingService) ListLeads(ctx context.Context, input *usecase.ListInput) (*usecase.LeadListOutput, error) {
	items, total, err := srv.leadRepo.List(ctx, toListPage(input))
	if err != nil {
		return nil, errors.Wrap(err, "failed to list leads")
	}

	return &usecase.LeadListOutput{Items: items, Total: total}, nil
}

// UpdateLead writes the mutable lead fields, excluding status.
func (srv *listingService) UpdateLead(ctx context.Context, input *usecase.UpdateLeadInput) (*entity.Lead, error) {
	lead, err := srv.GetLead(ctx, input.ID)
	if err != nil {
		return nil, err
	}

	lead.Name = input.Name
	lead.Phone = input.Phone
	lead.Source = input.Source

	if err := srv.leadRepo.Update(ctx, lead); err != nil {
		srv.log(ctx).Warn("Failed to update lead", slog.Any("leadID", input.ID), slog.Any("error", err))

		return nil, errors.Wrap(err, "failed to update lead")
	}

	return lead, nil
}

// Share builds the public share link and QR code for an existing listing.
func (srv *listingService) Share(ctx context.Context, kind entity.EntityKind, id uuid.UUID) (*usecase.ShareOutput, error) {
	// Only real listings get share links.
	switch kind {
	case entity.KindProperty:
		if _, err := srv.GetProperty(ctx, id); err != nil {
			return nil, err
		}
	case entity.KindLead:
		if _, err := srv.GetLead(ctx, id); err != nil {
			return nil, err
		}
	default:
		return nil, errors.Wrap(domainerrors.ErrValidationFailed, "unknown entity kind")
	}

	png, err := srv.shareService.GenerateShareQR(kind, id)
	if err != nil {
		srv.log(ctx).Error("Failed to render share QR", slog.Any("entityID", id), slog.Any("error", err))

		return nil, errors.Wrap(err, "failed to render share QR")
	}

	return &usecase.ShareOutput{
		URL: srv.shareService.ShareURL(kind, id),
		PNG: png,
	}, nil
}

func toListPage(input *usecase.ListInput) entity.ListPage {
	page := entity.ListPage{
		Offset:  input.Offset,
		Limit:   input.Limit,
		SortBy:  input.SortBy,
		SortDir: input.SortDir,
	}
	if page.Limit <= 0 {
		page.Limit = defaultListLimit
	}

	return page
}
