package handler

import (
	"log/slog"
	"net/http"
	"testing"

	"backoffice/internal/delivery/http/middleware"
	"backoffice/internal/domain/entity"
	mockusecase "backoffice/internal/mocks/usecase"
	"backoffice/internal/usecase"

	"github.com/google/uuid"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/mock"
	"github.com/stretchr/testify/require"
)

func TestPropertyHandlerCreateUsesActorAsAgent(t *testing.T) {
	listingUC := mockusecase.NewMockListingUsecase(t)
	approvalUC := mockusecase.NewMockApprovalUsecase(t)
	handler := NewPropertyHandler(listingUC, approvalUC, slog.Default())

	actorID := uuid.New()
	listingUC.On("CreateProperty", mock.Anything, &usecase.CreatePropertyInput{
		Reference: "PR-2031",
		Title:     "Sea view duplex",
		OwnerName: "R. Costa",
		Price:     48_000_000,
		AgentID:   actorID,
	}).Return(&entity.Property{
		ID:        uuid.New(),
		Reference: "PR-2031",
		Title:     "Sea view duplex",
		Status:    entity.StatusWhite,
		AgentID:   actorID,
	}, nil)

	c, rec := newTestContext(t, http.MethodPost, "/properties",
		`{"reference":"PR-2031","title":"Sea view duplex","ownerName":"R. Costa","price":48000000}`)
	c.Set(middleware.ContextKeyUserID, actorID)
	c.Set(middleware.ContextKeyRole, entity.RoleAgent)

	require.NoError(t, handler.Create(c))
	require.Equal(t, http.StatusCreated, rec.Code)

	data := decodeEnvelope(t, rec)["data"].(map[string]any)
	assert.Equal(t, "WHITE", data["status"])
	assert.Equal(t, "PR-2031", data["reference"])
}

func TestPropertyHandlerChangeStatusAppliedDirectly(t *testing.T) {
	listingUC := mockusecase.NewMockListingUsecase(t)
	approvalUC := mockusecase.NewMockApprovalUsecase(t)
	handler := NewPropertyHandler(listingUC, approvalUC, slog.Default())

	actorID := uuid.New()
	propertyID := uuid.New()
	approvalUC.On("ChangeStatus", mock.Anything, &usecase.ChangeStatusInput{
		ActorID:   actorID,
		ActorRole: entity.RoleManager,
		Kind:      entity.KindProperty,
		EntityID:  propertyID,
		NewStatus: entity.StatusSold,
	}).Return(&usecase.ChangeStatusOutput{Applied: true}, nil)

	c, rec := newTestContext(t, http.MethodPost, "/properties/"+propertyID.String()+"/status",
		`{"status":"SOLD"}`)
	c.SetParamNames("id")
	c.SetParamValues(propertyID.String())
	c.Set(middleware.ContextKeyUserID, actorID)
	c.Set(middleware.ContextKeyRole, entity.RoleManager)

	require.NoError(t, handler.ChangeStatus(c))
	require.Equal(t, http.StatusOK, rec.Code)

	data := decodeEnvelope(t, rec)["data"].(map[string]any)
	assert.Equal(t, true, data["applied"])
	assert.Nil(t, data["request"])
}

func TestPropertyHandlerChangeStatusQueuedReturns202(t *testing.T) {
	listingUC := mockusecase.NewMockListingUsecase(t)
	approvalUC := mockusecase.NewMockApprovalUsecase(t)
	handler := NewPropertyHandler(listingUC, approvalUC, slog.Default())

	actorID := uuid.New()
	propertyID := uuid.New()
	request := &entity.ApprovalRequest{
		ID:              uuid.New(),
		EntityKind:      entity.KindProperty,
		EntityID:        propertyID,
		RequestedBy:     actorID,
		RequestedStatus: entity.StatusSold,
		ApprovalStatus:  entity.ApprovalPending,
	}
	approvalUC.On("ChangeStatus", mock.Anything, mock.Anything).
		Return(&usecase.ChangeStatusOutput{Applied: false, Request: request}, nil)

	c, rec := newTestContext(t, http.MethodPost, "/properties/"+propertyID.String()+"/status",
		`{"status":"SOLD","comment":"buyer signed"}`)
	c.SetParamNames("id")
	c.SetParamValues(propertyID.String())
	c.Set(middleware.ContextKeyUserID, actorID)
	c.Set(middleware.ContextKeyRole, entity.RoleAgent)

	require.NoError(t, handler.ChangeStatus(c))
	require.Equal(t, http.StatusAccepted, rec.Code)

	data := decodeEnvelope(t, rec)["data"].(map[string]any)
	assert.Equal(t, false, data["applied"])
	requestData := data["request"].(map[string]any)
	assert.Equal(t, "PENDING", requestData["approvalStatus"])
	assert.Equal(t, "SOLD", requestData["requestedStatus"])
}

func TestPropertyHandlerShareReturnsPNG(t *testing.T) {
	listingUC := mockusecase.NewMockListingUsecase(t)
	approvalUC := mockusecase.NewMockApprovalUsecase(t)
	handler := NewPropertyHandler(listingUC, approvalUC, slog.Default())

	propertyID := uuid.New()
	png := []byte{0x89, 'P', 'N', 'G'}
	listingUC.On("Share", mock.Anything, entity.KindProperty, propertyID).
		Return(&usecase.ShareOutput{URL: "https://example.com/share/property/" + propertyID.String(), PNG: png}, nil)

	c, rec := newTestContext(t, http.MethodGet, "/properties/"+propertyID.String()+"/share", "")
	c.SetParamNames("id")
	c.SetParamValues(propertyID.String())

	require.NoError(t, handler.Share(c))
	require.Equal(t, http.StatusOK, rec.Code)
	assert.Equal(t, "image/png", rec.Header().Get(echoHeaderContentType))
	assert.Equal(t, png, rec.Body.Bytes())
	assert.Contains(t, rec.Header().Get("X-Share-Url"), propertyID.String())
}

const echoHeaderContentType = "Content-Type"

func TestPropertyHandlerGetRejectsMalformedID(t *testing.T) {
	listingUC := mockusecase.NewMockListingUsecase(t)
	approvalUC := mockusecase.NewMockApprovalUsecase(t)
	handler := NewPropertyHandler(listingUC, approvalUC, slog.Default())

	c, rec := newTestContext(t, http.MethodGet, "/properties/not-a-uuid", "")
	c.SetParamNames("id")
	c.SetParamValues("not-a-uuid")

	require.NoError(t, handler.Get(c))
	assert.Equal(t, http.StatusBadRequest, rec.Code)
	listingUC.AssertNotCalled(t, "GetProperty", mock.Anything, mock.Anything)
}
