package handler

import (
	"log/slog"
	"net/http"

	"backoffice/internal/delivery/http/middleware"
	"backoffice/internal/delivery/http/response"
	"backoffice/internal/domain/entity"
	"backoffice/internal/usecase"

	"github.com/google/uuid"
	"github.com/labstack/echo/v4"
	"github.com/pkg/errors"
)

// LeadHandler holds dependencies for sales lead handlers.
type LeadHandler struct {
	listingUC  usecase.ListingUsecase
	approvalUC usecase.ApprovalUsecase
	logger     *slog.Logger
}

// NewLeadHandler is the constructor for LeadHandler, injected by Fx.
func NewLeadHandler(listingUC usecase.ListingUsecase, approvalUC usecase.ApprovalUsecase, logger *slog.Logger) *LeadHandler {
	return &LeadHandler{listingUC: listingUC, approvalUC: approvalUC, logger: logger}
}

type createLeadRequest struct {
	Name   string `json:"name" validate:"required"`
	Phone  string `json:"phone" validate:"required"`
	Source string `json:"source"`
}

// Create handles the lead creation request.
func (h *LeadHandler) Create(c echo.Context) error {
	var req createLeadRequest
	if err := c.Bind(&req); err != nil {
		return response.BindingError(c, "INVALID_INPUT", "Invalid lead input")
	}
	if err := c.Validate(&req); err != nil {
		return errors.WithStack(err)
	}

	actorID, ok := middleware.ActorID(c)
	if !ok {
		return response.Unauthorized(c, "UNAUTHORIZED", "Missing authentication")
	}

	lead, err := h.listingUC.CreateLead(c.Request().Context(), &usecase.CreateLeadInput{
		Name:    req.Name,
		Phone:   req.Phone,
		Source:  req.Source,
		AgentID: actorID,
	})
	if err != nil {
		return errors.WithStack(err)
	}

	return response.Success(c, http.StatusCreated, toLeadDTO(lead), "Lead created successfully")
}

// Get returns one lead by ID.
func (h *LeadHandler) Get(c echo.Context) error {
	id, err := uuid.Parse(c.Param("id"))
	if err != nil {
		return response.BadRequest(c, "INVALID_INPUT", "Invalid lead ID")
	}

	lead, err := h.listingUC.GetLead(c.Request().Context(), id)
	if err != nil {
		return errors.WithStack(err)
	}

	return response.Success(c, http.StatusOK, toLeadDTO(lead), "")
}

// List returns a page of leads.
func (h *LeadHandler) List(c echo.Context) error {
	var query listQuery
	if err := c.Bind(&query); err != nil {
		return response.BindingError(c, "INVALID_INPUT", "Invalid list query")
	}

	output, err := h.listingUC.ListLeads(c.Request().Context(), toListInput(query))
	if err != nil {
		return errors.WithStack(err)
	}

	page := pageDTO[leadDTO]{Items: make([]leadDTO, 0, len(output.Items)), Total: output.Total}
	for _, lead := range output.Items {
		page.Items = append(page.Items, toLeadDTO(lead))
	}

	return response.Success(c, http.StatusOK, page, "")
}

type updateLeadRequest struct {
	Name   string `json:"name" validate:"required"`
	Phone  string `json:"phone" validate:"required"`
	Source string `json:"source"`
}

// Update rewrites the mutable lead fields, excluding status.
func (h *LeadHandler) Update(c echo.Context) error {
	id, err := uuid.Parse(c.Param("id"))
	if err != nil {
		return response.BadRequest(c, "INVALID_INPUT", "Invalid lead ID")
	}

	var req updateLeadRequest
	if err := c.Bind(&req); err != nil {
		return response.BindingError(c, "INVALID_INPUT", "Invalid lead input")
	}
	if err := c.Validate(&req); err != nil {
		return errors.WithStack(err)
	}

	lead, err := h.listingUC.UpdateLead(c.Request().Context(), &usecase.UpdateLeadInput{
		ID:     id,
		Name:   req.Name,
		Phone:  req.Phone,
		Source: req.Source,
	})
	if err != nil {
		return errors.WithStack(err)
	}

	return response.Success(c, http.StatusOK, toLeadDTO(lead), "Lead updated successfully")
}

// ChangeStatus routes a proposed lead status change through the approval
// policy.
func (h *LeadHandler) ChangeStatus(c echo.Context) error {
	return changeStatus(c, h.approvalUC, entity.KindLead)
}

// Share returns the public share link for a lead contact card as a QR PNG.
func (h *LeadHandler) Share(c echo.Context) error {
	id, err := uuid.Parse(c.Param("id"))
	if err != nil {
		return response.BadRequest(c, "INVALID_INPUT", "Invalid lead ID")
	}

	output, err := h.listingUC.Share(c.Request().Context(), entity.KindLead, id)
	if err != nil {
		return errors.WithStack(err)
	}

	if c.QueryParam("format") == "url" {
		return response.Success(c, http.StatusOK, map[string]string{"url": output.URL}, "")
	}

	c.Response().Header().Set("X-Share-Url", output.URL)

	return c.Blob(http.StatusOK, "image/png", output.PNG)
}
