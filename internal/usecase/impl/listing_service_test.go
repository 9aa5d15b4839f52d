package impl

import (
	"context"
	"io"
	"log/slog"
	"testing"

	"backoffice/internal/domain/entity"
	domainerrors "backoffice/internal/domain/errors"
	"backoffice/internal/domain/repository"
	mockRepo "backoffice/internal/mocks/repository"
	mockSvc "backoffice/internal/mocks/service"
	"backoffice/internal/usecase"

	"github.com/google/uuid"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/mock"
	"github.com/stretchr/testify/require"
)

type listingServiceMocks struct {
	propertyRepo *mockRepo.MockPropertyRepository
	leadRepo     *mockRepo.MockLeadRepository
	shareService *mockSvc.MockShareService
}

func newListingServiceForTest(t *testing.T) (usecase.ListingUsecase, *listingServiceMocks) {
	t.Helper()

	mocks := &listingServiceMocks{
		propertyRepo: mockRepo.NewMockPropertyRepository(t),
		leadRepo:     mockRepo.NewMockLeadRepository(t),
		shareService: mockSvc.NewMockShareService(t),
	}

	service := NewListingService(ListingServiceParams{
		PropertyRepo: mocks.propertyRepo,
		LeadRepo:     mocks.leadRepo,
		ShareService: mocks.shareService,
		Logger:       slog.New(slog.NewTextHandler(io.Discard, nil)),
	})

	return service, mocks
}

func TestListingService_CreateProperty_StartsWhite(t *testing.T) {
	service, mocks := newListingServiceForTest(t)

	ctx := context.Background()
	mocks.propertyRepo.On("Create", ctx, mock.MatchedBy(func(p *entity.Property) bool {
		return p.Status == entity.StatusWhite
	})).Return(nil)

	property, err := service.CreateProperty(ctx, &usecase.CreatePropertyInput{
		Reference: "PR-2031",
		Title:     "Two-bedroom flat",
		Price:     45_000_000,
		AgentID:   uuid.New(),
	})

	require.NoError(t, err)
	assert.Equal(t, entity.StatusWhite, property.Status)
}

func TestListingService_UpdateProperty_PreservesStatus(t *testing.T) {
	service, mocks := newListingServiceForTest(t)

	ctx := context.Background()
	propertyID := uuid.New()
	existing := &entity.Property{ID: propertyID, Title: "Old", Status: entity.StatusReserved}

	mocks.propertyRepo.On("FindByID", ctx, propertyID).Return(existing, nil)
	mocks.propertyRepo.On("Update", ctx, mock.MatchedBy(func(p *entity.Property) bool {
		return p.Status == entity.StatusReserved && p.Title == "New"
	})).Return(nil)

	updated, err := service.UpdateProperty(ctx, &usecase.UpdatePropertyInput{ID: propertyID, Title: "New"})

	require.NoError(t, err)
	assert.Equal(t, entity.StatusReserved, updated.Status)
}

func TestListingService_GetLead_NotFound(t *testing.T) {
	service, mocks := newListingServiceForTest(t)

	ctx := context.Background()
	leadID := uuid.New()
	mocks.leadRepo.On("FindByID", ctx, leadID).Return(nil, repository.ErrLeadNotFound)

	_, err := service.GetLead(ctx, leadID)

	assert.ErrorIs(t, err, domainerrors.ErrNotFound)
}

func TestListingService_ListProperties_DefaultLimit(t *testing.T) {
	service, mocks := newListingServiceForTest(t)

	ctx := context.Background()
	mocks.propertyRepo.On("List", ctx, mock.MatchedBy(func(page entity.ListPage) bool {
		return page.Limit == defaultListLimit
	})).Return([]*entity.Property{{ID: uuid.New()}}, int64(1), nil)

	output, err := service.ListProperties(ctx, &usecase.ListInput{})

	require.NoError(t, err)
	assert.Len(t, output.Items, 1)
	assert.Equal(t, int64(1), output.Total)
}

func TestListingService_Share_Property(t *testing.T) {
	service, mocks := newListingServiceForTest(t)

	ctx := context.Background()
	propertyID := uuid.New()

	mocks.propertyRepo.On("FindByID", ctx, propertyID).Return(&entity.Property{ID: propertyID}, nil)
	mocks.shareService.On("GenerateShareQR", entity.KindProperty, propertyID).Return([]byte{0x89, 0x50}, nil)
	mocks.shareService.On("ShareURL", entity.KindProperty, propertyID).Return("https://example.com/share/property/" + propertyID.String())

	output, err := service.Share(ctx, entity.KindProperty, propertyID)

	require.NoError(t, err)
	assert.NotEmpty(t, output.PNG)
	assert.Contains(t, output.URL, propertyID.String())
}

func TestListingService_Share_UnknownKind(t *testing.T) {
	service, _ := newListingServiceForTest(t)

	_, err := service.Share(context.Background(), entity.EntityKind("office"), uuid.New())

	assert.ErrorIs(t, err, domainerrors.ErrValidationFailed)
}
