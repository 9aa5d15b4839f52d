package impl

import (
	"context"
	"io"
	"log/slog"
	"testing"

	"backoffice/config"
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

func newApprovalServiceForTest(t *testing.T, factory repository.RepositoryFactory, approvalRepo repository.ApprovalRequestRepository, publisher *mockSvc.MockEventPublisher) usecase.ApprovalUsecase {
	t.Helper()

	service, err := NewApprovalService(ApprovalServiceParams{
		TxManager:    &mockRepo.PassthroughTransactionManager{Factory: factory},
		ApprovalRepo: approvalRepo,
		Config:       &config.Config{},
		Publisher:    publisher,
		Logger:       slog.New(slog.NewTextHandler(io.Discard, nil)),
	})
	require.NoError(t, err)

	return service
}

func TestApprovalService_ChangeStatus_DirectWhenRoleAllowed(t *testing.T) {
	ctx := context.Background()
	propertyID := uuid.New()

	factory := mockRepo.NewMockRepositoryFactory(t)
	propertyRepo := mockRepo.NewMockPropertyRepository(t)
	approvalRepo := mockRepo.NewMockApprovalRequestRepository(t)
	publisher := mockSvc.NewMockEventPublisher(t)

	factory.On("PropertyRepo").Return(propertyRepo)
	propertyRepo.On("FindByID", ctx, propertyID).Return(&entity.Property{ID: propertyID, Status: entity.StatusBlue}, nil)
	propertyRepo.On("UpdateStatus", ctx, propertyID, entity.StatusSold).Return(nil)

	service := newApprovalServiceForTest(t, factory, approvalRepo, publisher)

	output, err := service.ChangeStatus(ctx, &usecase.ChangeStatusInput{
		ActorID:   uuid.New(),
		ActorRole: entity.RoleManager,
		Kind:      entity.KindProperty,
		EntityID:  propertyID,
		NewStatus: entity.StatusSold,
	})

	require.NoError(t, err)
	assert.True(t, output.Applied)
	assert.Nil(t, output.Request)
}

func TestApprovalService_ChangeStatus_QueuedWhenRoleRestricted(t *testing.T) {
	ctx := context.Background()
	leadID := uuid.New()
	agentID := uuid.New()

	factory := mockRepo.NewMockRepositoryFactory(t)
	leadRepo := mockRepo.NewMockLeadRepository(t)
	approvalRepo := mockRepo.NewMockApprovalRequestRepository(t)
	publisher := mockSvc.NewMockEventPublisher(t)

	factory.On("LeadRepo").Return(leadRepo)
	factory.On("ApprovalRepo").Return(approvalRepo)
	leadRepo.On("FindByID", ctx, leadID).Return(&entity.Lead{ID: leadID, Status: entity.StatusBlue}, nil)
	approvalRepo.On("Create", ctx, mock.AnythingOfType("*entity.ApprovalRequest")).Return(nil)

	service := newApprovalServiceForTest(t, factory, approvalRepo, publisher)

	output, err := service.ChangeStatus(ctx, &usecase.ChangeStatusInput{
		ActorID:   agentID,
		ActorRole: entity.RoleAgent,
		Kind:      entity.KindLead,
		EntityID:  leadID,
		NewStatus: entity.StatusGreen,
		Comment:   "buyer confirmed verbally",
	})

	require.NoError(t, err)
	assert.False(t, output.Applied)
	require.NotNil(t, output.Request)
	assert.Equal(t, entity.ApprovalPending, output.Request.ApprovalStatus)
	assert.Equal(t, agentID, output.Request.RequestedBy)
	assert.Equal(t, entity.StatusGreen, output.Request.RequestedStatus)
	require.NotNil(t, output.Request.Comment)
	assert.Equal(t, "buyer confirmed verbally", *output.Request.Comment)

	// The lead itself was never touched.
	leadRepo.AssertNotCalled(t, "UpdateStatus", mock.Anything, mock.Anything, mock.Anything)
}

func TestApprovalService_ChangeStatus_EntityNotFound(t *testing.T) {
	ctx := context.Background()
	propertyID := uuid.New()

	factory := mockRepo.NewMockRepositoryFactory(t)
	propertyRepo := mockRepo.NewMockPropertyRepository(t)
	approvalRepo := mockRepo.NewMockApprovalRequestRepository(t)
	publisher := mockSvc.NewMockEventPublisher(t)

	factory.On("PropertyRepo").Return(propertyRepo)
	propertyRepo.On("FindByID", ctx, propertyID).Return(nil, repository.ErrPropertyNotFound)

	service := newApprovalServiceForTest(t, factory, approvalRepo, publisher)

	_, err := service.ChangeStatus(ctx, &usecase.ChangeStatusInput{
		ActorID:   uuid.New(),
		ActorRole: entity.RoleCEO,
		Kind:      entity.KindProperty,
		EntityID:  propertyID,
		NewStatus: entity.StatusRed,
	})

	assert.ErrorIs(t, err, domainerrors.ErrNotFound)
}

func TestApprovalService_ChangeStatus_RejectsUnknownStatus(t *testing.T) {
	factory := mockRepo.NewMockRepositoryFactory(t)
	approvalRepo := mockRepo.NewMockApprovalRequestRepository(t)
	publisher := mockSvc.NewMockEventPublisher(t)

	service := newApprovalServiceForTest(t, factory, approvalRepo, publisher)

	_, err := service.ChangeStatus(context.Background(), &usecase.ChangeStatusInput{
		ActorID:   uuid.New(),
		ActorRole: entity.RoleManager,
		Kind:      entity.KindProperty,
		EntityID:  uuid.New(),
		NewStatus: entity.ListingStatus("PURPLE"),
	})

	assert.ErrorIs(t, err, domainerrors.ErrValidationFailed)
}

func TestApprovalService_Approve_AppliesRequestedStatus(t *testing.T) {
	ctx := context.Background()
	requestID := uuid.New()
	leadID := uuid.New()
	managerID := uuid.New()

	pending := &entity.ApprovalRequest{
		ID:              requestID,
		EntityKind:      entity.KindLead,
		EntityID:        leadID,
		RequestedBy:     uuid.New(),
		RequestedStatus: entity.StatusGreen,
		ApprovalStatus:  entity.ApprovalPending,
	}
	resolved := *pending
	resolved.ApprovalStatus = entity.ApprovalApproved
	resolved.ApprovedBy = &managerID

	factory := mockRepo.NewMockRepositoryFactory(t)
	leadRepo := mockRepo.NewMockLeadRepository(t)
	approvalRepo := mockRepo.NewMockApprovalRequestRepository(t)
	publisher := mockSvc.NewMockEventPublisher(t)

	factory.On("ApprovalRepo").Return(approvalRepo)
	factory.On("LeadRepo").Return(leadRepo)
	approvalRepo.On("FindByID", ctx, requestID).Return(pending, nil)
	approvalRepo.On("Resolve", ctx, requestID, entity.ApprovalApproved, managerID).Return(&resolved, nil)
	leadRepo.On("UpdateStatus", ctx, leadID, entity.StatusGreen).Return(nil)
	publisher.On("PublishApprovalDecided", ctx, mock.AnythingOfType("*service.ApprovalDecidedEvent")).Return(nil)

	service := newApprovalServiceForTest(t, factory, approvalRepo, publisher)

	request, err := service.Approve(ctx, &usecase.DecideInput{
		RequestID: requestID,
		ActorID:   managerID,
		ActorRole: entity.RoleManager,
	})

	require.NoError(t, err)
	assert.Equal(t, entity.ApprovalApproved, request.ApprovalStatus)
	require.NotNil(t, request.ApprovedBy)
	assert.Equal(t, managerID, *request.ApprovedBy)
}

func TestApprovalService_Reject_LeavesEntityUntouched(t *testing.T) {
	ctx := context.Background()
	requestID := uuid.New()
	managerID := uuid.New()

	pending := &entity.ApprovalRequest{
		ID:              requestID,
		EntityKind:      entity.KindProperty,
		EntityID:        uuid.New(),
		RequestedBy:     uuid.New(),
		RequestedStatus: entity.StatusSold,
		ApprovalStatus:  entity.ApprovalPending,
	}
	resolved := *pending
	resolved.ApprovalStatus = entity.ApprovalRejected
	resolved.RejectedBy = &managerID

	factory := mockRepo.NewMockRepositoryFactory(t)
	propertyRepo := mockRepo.NewMockPropertyRepository(t)
	approvalRepo := mockRepo.NewMockApprovalRequestRepository(t)
	publisher := mockSvc.NewMockEventPublisher(t)

	factory.On("ApprovalRepo").Return(approvalRepo)
	approvalRepo.On("FindByID", ctx, requestID).Return(pending, nil)
	approvalRepo.On("Resolve", ctx, requestID, entity.ApprovalRejected, managerID).Return(&resolved, nil)
	publisher.On("PublishApprovalDecided", ctx, mock.AnythingOfType("*service.ApprovalDecidedEvent")).Return(nil)

	service := newApprovalServiceForTest(t, factory, approvalRepo, publisher)

	request, err := service.Reject(ctx, &usecase.DecideInput{
		RequestID: requestID,
		ActorID:   managerID,
		ActorRole: entity.RoleManager,
	})

	require.NoError(t, err)
	assert.Equal(t, entity.ApprovalRejected, request.ApprovalStatus)
	propertyRepo.AssertNotCalled(t, "UpdateStatus", mock.Anything, mock.Anything, mock.Anything)
}

func TestApprovalService_Approve_ForbiddenForRestrictedRole(t *testing.T) {
	ctx := context.Background()
	requestID := uuid.New()

	pending := &entity.ApprovalRequest{
		ID:              requestID,
		EntityKind:      entity.KindLead,
		EntityID:        uuid.New(),
		RequestedStatus: entity.StatusGreen,
		ApprovalStatus:  entity.ApprovalPending,
	}

	factory := mockRepo.NewMockRepositoryFactory(t)
	approvalRepo := mockRepo.NewMockApprovalRequestRepository(t)
	publisher := mockSvc.NewMockEventPublisher(t)

	factory.On("ApprovalRepo").Return(approvalRepo)
	approvalRepo.On("FindByID", ctx, requestID).Return(pending, nil)

	service := newApprovalServiceForTest(t, factory, approvalRepo, publisher)

	_, err := service.Approve(ctx, &usecase.DecideInput{
		RequestID: requestID,
		ActorID:   uuid.New(),
		ActorRole: entity.RoleAgent,
	})

	assert.ErrorIs(t, err, domainerrors.ErrForbidden)
	approvalRepo.AssertNotCalled(t, "Resolve", mock.Anything, mock.Anything, mock.Anything, mock.Anything)
	publisher.AssertNotCalled(t, "PublishApprovalDecided", mock.Anything, mock.Anything)
}

func TestApprovalService_Approve_ConflictWhenAlreadyDecided(t *testing.T) {
	ctx := context.Background()
	requestID := uuid.New()
	managerID := uuid.New()

	pending := &entity.ApprovalRequest{
		ID:              requestID,
		EntityKind:      entity.KindLead,
		EntityID:        uuid.New(),
		RequestedStatus: entity.StatusGreen,
		ApprovalStatus:  entity.ApprovalPending,
	}

	factory := mockRepo.NewMockRepositoryFactory(t)
	approvalRepo := mockRepo.NewMockApprovalRequestRepository(t)
	publisher := mockSvc.NewMockEventPublisher(t)

	factory.On("ApprovalRepo").Return(approvalRepo)
	approvalRepo.On("FindByID", ctx, requestID).Return(pending, nil)
	approvalRepo.On("Resolve", ctx, requestID, entity.ApprovalApproved, managerID).Return(nil, repository.ErrApprovalResolved)

	service := newApprovalServiceForTest(t, factory, approvalRepo, publisher)

	_, err := service.Approve(ctx, &usecase.DecideInput{
		RequestID: requestID,
		ActorID:   managerID,
		ActorRole: entity.RoleManager,
	})

	assert.ErrorIs(t, err, domainerrors.ErrRequestResolved)
	publisher.AssertNotCalled(t, "PublishApprovalDecided", mock.Anything, mock.Anything)
}

func TestApprovalService_ListPending_CachesUntilInvalidated(t *testing.T) {
	ctx := context.Background()
	leadID := uuid.New()

	pendingList := []*entity.ApprovalRequest{
		{ID: uuid.New(), EntityKind: entity.KindLead, ApprovalStatus: entity.ApprovalPending},
	}

	factory := mockRepo.NewMockRepositoryFactory(t)
	leadRepo := mockRepo.NewMockLeadRepository(t)
	approvalRepo := mockRepo.NewMockApprovalRequestRepository(t)
	publisher := mockSvc.NewMockEventPublisher(t)

	// Two repo hits: before and after the invalidating write.
	approvalRepo.On("ListPending", ctx, entity.KindLead).Return(pendingList, nil).Twice()

	factory.On("LeadRepo").Return(leadRepo)
	factory.On("ApprovalRepo").Return(approvalRepo)
	leadRepo.On("FindByID", ctx, leadID).Return(&entity.Lead{ID: leadID}, nil)
	approvalRepo.On("Create", ctx, mock.AnythingOfType("*entity.ApprovalRequest")).Return(nil)

	service := newApprovalServiceForTest(t, factory, approvalRepo, publisher)

	// First read populates the cache, second is served from it.
	_, err := service.ListPending(ctx, entity.KindLead)
	require.NoError(t, err)
	_, err = service.ListPending(ctx, entity.KindLead)
	require.NoError(t, err)

	// A queued status change invalidates the cached list.
	_, err = service.ChangeStatus(ctx, &usecase.ChangeStatusInput{
		ActorID:   uuid.New(),
		ActorRole: entity.RoleAgent,
		Kind:      entity.KindLead,
		EntityID:  leadID,
		NewStatus: entity.StatusGreen,
	})
	require.NoError(t, err)

	_, err = service.ListPending(ctx, entity.KindLead)
	require.NoError(t, err)
}

func TestApprovalService_ListArchive(t *testing.T) {
	ctx := context.Background()

	archived := []*entity.ApprovalRequest{
		{ID: uuid.New(), EntityKind: entity.KindProperty, ApprovalStatus: entity.ApprovalRejected},
	}

	factory := mockRepo.NewMockRepositoryFactory(t)
	approvalRepo := mockRepo.NewMockApprovalRequestRepository(t)
	publisher := mockSvc.NewMockEventPublisher(t)

	approvalRepo.On("ListArchive", ctx, entity.KindProperty).Return(archived, nil).Once()

	service := newApprovalServiceForTest(t, factory, approvalRepo, publisher)

	requests, err := service.ListArchive(ctx, entity.KindProperty)
	require.NoError(t, err)
	assert.Len(t, requests, 1)

	// Cached on the second read.
	requests, err = service.ListArchive(ctx, entity.KindProperty)
	require.NoError(t, err)
	assert.Len(t, requests, 1)
}
