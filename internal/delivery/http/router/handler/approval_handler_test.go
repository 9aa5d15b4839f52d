package handler

import (
	"log/slog"
	"net/http"
	"testing"

	"backoffice/internal/delivery/http/middleware"
	"backoffice/internal/domain/entity"
	domainerrors "backoffice/internal/domain/errors"
	"backoffice/internal/infra/metrics"
	mockusecase "backoffice/internal/mocks/usecase"
	"backoffice/internal/usecase"

	"github.com/google/uuid"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/mock"
	"github.com/stretchr/testify/require"
)

func newApprovalHandlerForTest(t *testing.T) (*ApprovalHandler, *mockusecase.MockApprovalUsecase) {
	t.Helper()

	uc := mockusecase.NewMockApprovalUsecase(t)

	return NewApprovalHandler(uc, metrics.New(), slog.Default()), uc
}

func TestApprovalHandlerApprovePropertyPassesKind(t *testing.T) {
	handler, uc := newApprovalHandlerForTest(t)

	actorID := uuid.New()
	requestID := uuid.New()
	resolved := &entity.ApprovalRequest{
		ID:              requestID,
		EntityKind:      entity.KindProperty,
		EntityID:        uuid.New(),
		RequestedStatus: entity.StatusSold,
		ApprovalStatus:  entity.ApprovalApproved,
		ApprovedBy:      &actorID,
	}
	uc.On("Approve", mock.Anything, &usecase.DecideInput{
		RequestID: requestID,
		ActorID:   actorID,
		ActorRole: entity.RoleManager,
		Kind:      entity.KindProperty,
	}).Return(resolved, nil)

	c, rec := newTestContext(t, http.MethodPatch, "/property-requests/"+requestID.String()+"/approve", "")
	c.SetParamNames("id")
	c.SetParamValues(requestID.String())
	c.Set(middleware.ContextKeyUserID, actorID)
	c.Set(middleware.ContextKeyRole, entity.RoleManager)

	require.NoError(t, handler.ApproveProperty(c))
	require.Equal(t, http.StatusOK, rec.Code)

	data := decodeEnvelope(t, rec)["data"].(map[string]any)
	assert.Equal(t, "APPROVED", data["approvalStatus"])
	assert.Equal(t, actorID.String(), data["approvedBy"])
}

func TestApprovalHandlerRejectLeadReportsRejection(t *testing.T) {
	handler, uc := newApprovalHandlerForTest(t)

	actorID := uuid.New()
	requestID := uuid.New()
	resolved := &entity.ApprovalRequest{
		ID:              requestID,
		EntityKind:      entity.KindLead,
		RequestedStatus: entity.StatusGreen,
		ApprovalStatus:  entity.ApprovalRejected,
		RejectedBy:      &actorID,
	}
	uc.On("Reject", mock.Anything, mock.MatchedBy(func(input *usecase.DecideInput) bool {
		return input.Kind == entity.KindLead && input.RequestID == requestID
	})).Return(resolved, nil)

	c, rec := newTestContext(t, http.MethodPatch, "/lead-requests/"+requestID.String()+"/reject", "")
	c.SetParamNames("id")
	c.SetParamValues(requestID.String())
	c.Set(middleware.ContextKeyUserID, actorID)
	c.Set(middleware.ContextKeyRole, entity.RoleTeamLead)

	require.NoError(t, handler.RejectLead(c))
	require.Equal(t, http.StatusOK, rec.Code)

	data := decodeEnvelope(t, rec)["data"].(map[string]any)
	assert.Equal(t, "REJECTED", data["approvalStatus"])
	assert.Nil(t, data["approvedBy"])
}

func TestApprovalHandlerDecisionErrorPropagates(t *testing.T) {
	handler, uc := newApprovalHandlerForTest(t)

	requestID := uuid.New()
	uc.On("Approve", mock.Anything, mock.Anything).Return(nil, domainerrors.ErrForbidden)

	c, _ := newTestContext(t, http.MethodPatch, "/property-requests/"+requestID.String()+"/approve", "")
	c.SetParamNames("id")
	c.SetParamValues(requestID.String())
	c.Set(middleware.ContextKeyUserID, uuid.New())
	c.Set(middleware.ContextKeyRole, entity.RoleAgent)

	err := handler.ApproveProperty(c)

	require.ErrorIs(t, err, domainerrors.ErrForbidden)
}

func TestApprovalHandlerListPendingReturnsRequests(t *testing.T) {
	handler, uc := newApprovalHandlerForTest(t)

	requests := []*entity.ApprovalRequest{
		{ID: uuid.New(), EntityKind: entity.KindProperty, RequestedStatus: entity.StatusSold, ApprovalStatus: entity.ApprovalPending},
		{ID: uuid.New(), EntityKind: entity.KindProperty, RequestedStatus: entity.StatusGreen, ApprovalStatus: entity.ApprovalPending},
	}
	uc.On("ListPending", mock.Anything, entity.KindProperty).Return(requests, nil)

	c, rec := newTestContext(t, http.MethodGet, "/property-requests/pending", "")

	require.NoError(t, handler.ListPendingProperties(c))
	require.Equal(t, http.StatusOK, rec.Code)

	data := decodeEnvelope(t, rec)["data"].([]any)
	assert.Len(t, data, 2)
}
