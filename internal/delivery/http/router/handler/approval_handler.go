package handler

import (
	"log/slog"
	"net/http"

	"backoffice/internal/delivery/http/middleware"
	"backoffice/internal/delivery/http/response"
	"backoffice/internal/domain/entity"
	"backoffice/internal/infra/metrics"
	"backoffice/internal/usecase"

	"github.com/google/uuid"
	"github.com/labstack/echo/v4"
	"github.com/pkg/errors"
)

// ApprovalHandler holds dependencies for the approval workflow handlers.
type ApprovalHandler struct {
	uc      usecase.ApprovalUsecase
	metrics *metrics.Metrics
	logger  *slog.Logger
}

// NewApprovalHandler is the constructor for ApprovalHandler, injected by Fx.
func NewApprovalHandler(uc usecase.ApprovalUsecase, m *metrics.Metrics, logger *slog.Logger) *ApprovalHandler {
	return &ApprovalHandler{uc: uc, metrics: m, logger: logger}
}

// ListPendingProperties returns the open property requests, oldest first.
func (h *ApprovalHandler) ListPendingProperties(c echo.Context) error {
	return h.listPending(c, entity.KindProperty)
}

// ListArchivedProperties returns the decided property requests.
func (h *ApprovalHandler) ListArchivedProperties(c echo.Context) error {
	return h.listArchive(c, entity.KindProperty)
}

// ListPendingLeads returns the open lead requests, oldest first.
func (h *ApprovalHandler) ListPendingLeads(c echo.Context) error {
	return h.listPending(c, entity.KindLead)
}

// ListArchivedLeads returns the decided lead requests.
func (h *ApprovalHandler) ListArchivedLeads(c echo.Context) error {
	return h.listArchive(c, entity.KindLead)
}

// ApproveProperty resolves a pending property request and applies the
// requested status.
func (h *ApprovalHandler) ApproveProperty(c echo.Context) error {
	return h.decide(c, entity.KindProperty, entity.ApprovalApproved)
}

// RejectProperty resolves a pending property request without touching the
// property.
func (h *ApprovalHandler) RejectProperty(c echo.Context) error {
	return h.decide(c, entity.KindProperty, entity.ApprovalRejected)
}

// ApproveLead resolves a pending lead request and applies the requested
// status.
func (h *ApprovalHandler) ApproveLead(c echo.Context) error {
	return h.decide(c, entity.KindLead, entity.ApprovalApproved)
}

// RejectLead resolves a pending lead request without touching the lead.
func (h *ApprovalHandler) RejectLead(c echo.Context) error {
	return h.decide(c, entity.KindLead, entity.ApprovalRejected)
}

func (h *ApprovalHandler) listPending(c echo.Context, kind entity.EntityKind) error {
	requests, err := h.uc.ListPending(c.Request().Context(), kind)
	if err != nil {
		return errors.WithStack(err)
	}

	h.metrics.SetPendingRequests(kind.String(), len(requests))

	return response.Success(c, http.StatusOK, toApprovalRequestDTOs(requests), "")
}

func (h *ApprovalHandler) listArchive(c echo.Context, kind entity.EntityKind) error {
	requests, err := h.uc.ListArchive(c.Request().Context(), kind)
	if err != nil {
		return errors.WithStack(err)
	}

	return response.Success(c, http.StatusOK, toApprovalRequestDTOs(requests), "")
}

func (h *ApprovalHandler) decide(c echo.Context, kind entity.EntityKind, decision entity.ApprovalStatus) error {
	requestID, err := uuid.Parse(c.Param("id"))
	if err != nil {
		return response.BadRequest(c, "INVALID_INPUT", "Invalid request ID")
	}

	actorID, ok := middleware.ActorID(c)
	if !ok {
		return response.Unauthorized(c, "UNAUTHORIZED", "Missing authentication")
	}
	actorRole, ok := middleware.ActorRole(c)
	if !ok {
		return response.Unauthorized(c, "UNAUTHORIZED", "Missing authentication")
	}

	input := &usecase.DecideInput{
		RequestID: requestID,
		ActorID:   actorID,
		ActorRole: actorRole,
		Kind:      kind,
	}

	var resolved *entity.ApprovalRequest
	if decision == entity.ApprovalApproved {
		resolved, err = h.uc.Approve(c.Request().Context(), input)
	} else {
		resolved, err = h.uc.Reject(c.Request().Context(), input)
	}
	if err != nil {
		return errors.WithStack(err)
	}

	h.metrics.ObserveDecision(kind.String(), decision.String())

	message := "Request approved"
	if decision == entity.ApprovalRejected {
		message = "Request rejected"
	}

	return response.Success(c, http.StatusOK, toApprovalRequestDTO(resolved), message)
}
