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

// PropertyHandler holds dependencies for property listing handlers.
type PropertyHandler struct {
	listingUC  usecase.ListingUsecase
	approvalUC usecase.ApprovalUsecase
	logger     *slog.Logger
}

// NewPropertyHandler is the constructor for PropertyHandler, injected by Fx.
func NewPropertyHandler(listingUC usecase.ListingUsecase, approvalUC usecase.ApprovalUsecase, logger *slog.Logger) *PropertyHandler {
	return &PropertyHandler{listingUC: listingUC, approvalUC: approvalUC, logger: logger}
}

type createPropertyRequest struct {
	Reference string `json:"reference" validate:"required"`
	Title     string `json:"title" validate:"required"`
	OwnerName string `json:"ownerName"`
	Price     int64  `json:"price" validate:"gte=0"`
}

// Create handles the property creation request. New listings always start in
// the initial workflow status.
func (h *PropertyHandler) Create(c echo.Context) error {
	var req createPropertyRequest
	if err := c.Bind(&req); err != nil {
		return response.BindingError(c, "INVALID_INPUT", "Invalid property input")
	}
	if err := c.Validate(&req); err != nil {
		return errors.WithStack(err)
	}

	actorID, ok := middleware.ActorID(c)
	if !ok {
		return response.Unauthorized(c, "UNAUTHORIZED", "Missing authentication")
	}

	property, err := h.listingUC.CreateProperty(c.Request().Context(), &usecase.CreatePropertyInput{
		Reference: req.Reference,
		Title:     req.Title,
		OwnerName: req.OwnerName,
		Price:     req.Price,
		AgentID:   actorID,
	})
	if err != nil {
		return errors.WithStack(err)
	}

	return response.Success(c, http.StatusCreated, toPropertyDTO(property), "Property created successfully")
}

// Get returns one property by ID.
func (h *PropertyHandler) Get(c echo.Context) error {
	id, err := uuid.Parse(c.Param("id"))
	if err != nil {
		return response.BadRequest(c, "INVALID_INPUT", "Invalid property ID")
	}

	property, err := h.listingUC.GetProperty(c.Request().Context(), id)
	if err != nil {
		return errors.WithStack(err)
	}

	return response.Success(c, http.StatusOK, toPropertyDTO(property), "")
}

// List returns a page of properties.
func (h *PropertyHandler) List(c echo.Context) error {
	var query listQuery
	if err := c.Bind(&query); err != nil {
		return response.BindingError(c, "INVALID_INPUT", "Invalid list query")
	}

	output, err := h.listingUC.ListProperties(c.Request().Context(), toListInput(query))
	if err != nil {
		return errors.WithStack(err)
	}

	page := pageDTO[propertyDTO]{Items: make([]propertyDTO, 0, len(output.Items)), Total: output.Total}
	for _, property := range output.Items {
		page.Items = append(page.Items, toPropertyDTO(property))
	}

	return response.Success(c, http.StatusOK, page, "")
}

type updatePropertyRequest struct {
	Title     string `json:"title" validate:"required"`
	OwnerName string `json:"ownerName"`
	Price     int64  `json:"price" validate:"gte=0"`
}

// Update rewrites the mutable listing fields. The workflow status is not
// among them; status changes go through ChangeStatus.
func (h *PropertyHandler) Update(c echo.Context) error {
	id, err := uuid.Parse(c.Param("id"))
	if err != nil {
		return response.BadRequest(c, "INVALID_INPUT", "Invalid property ID")
	}

	var req updatePropertyRequest
	if err := c.Bind(&req); err != nil {
		return response.BindingError(c, "INVALID_INPUT", "Invalid property input")
	}
	if err := c.Validate(&req); err != nil {
		return errors.WithStack(err)
	}

	property, err := h.listingUC.UpdateProperty(c.Request().Context(), &usecase.UpdatePropertyInput{
		ID:        id,
		Title:     req.Title,
		OwnerName: req.OwnerName,
		Price:     req.Price,
	})
	if err != nil {
		return errors.WithStack(err)
	}

	return response.Success(c, http.StatusOK, toPropertyDTO(property), "Property updated successfully")
}

type changeStatusRequest struct {
	Status  string `json:"status" validate:"required"`
	Comment string `json:"comment"`
}

// ChangeStatus routes a proposed status change through the approval policy:
// applied immediately when the actor's role allows it, queued otherwise.
func (h *PropertyHandler) ChangeStatus(c echo.Context) error {
	return changeStatus(c, h.approvalUC, entity.KindProperty)
}

// Share returns the public share link for a property, rendered as a QR PNG.
// Pass ?format=url for a JSON payload instead of the image.
func (h *PropertyHandler) Share(c echo.Context) error {
	id, err := uuid.Parse(c.Param("id"))
	if err != nil {
		return response.BadRequest(c, "INVALID_INPUT", "Invalid property ID")
	}

	output, err := h.listingUC.Share(c.Request().Context(), entity.KindProperty, id)
	if err != nil {
		return errors.WithStack(err)
	}

	if c.QueryParam("format") == "url" {
		return response.Success(c, http.StatusOK, map[string]string{"url": output.URL}, "")
	}

	c.Response().Header().Set("X-Share-Url", output.URL)

	return c.Blob(http.StatusOK, "image/png", output.PNG)
}

// changeStatus is the shared body of the property and lead status endpoints.
func changeStatus(c echo.Context, uc usecase.ApprovalUsecase, kind entity.EntityKind) error {
	id, err := uuid.Parse(c.Param("id"))
	if err != nil {
		return response.BadRequest(c, "INVALID_INPUT", "Invalid entity ID")
	}

	var req changeStatusRequest
	if err := c.Bind(&req); err != nil {
		return response.BindingError(c, "INVALID_INPUT", "Invalid status input")
	}
	if err := c.Validate(&req); err != nil {
		return errors.WithStack(err)
	}

	actorID, ok := middleware.ActorID(c)
	if !ok {
		return response.Unauthorized(c, "UNAUTHORIZED", "Missing authentication")
	}
	actorRole, ok := middleware.ActorRole(c)
	if !ok {
		return response.Unauthorized(c, "UNAUTHORIZED", "Missing authentication")
	}

	output, err := uc.ChangeStatus(c.Request().Context(), &usecase.ChangeStatusInput{
		ActorID:   actorID,
		ActorRole: actorRole,
		Kind:      kind,
		EntityID:  id,
		NewStatus: entity.ListingStatus(req.Status),
		Comment:   req.Comment,
	})
	if err != nil {
		return errors.WithStack(err)
	}

	statusCode := http.StatusOK
	message := "Status changed"
	if !output.Applied {
		statusCode = http.StatusAccepted
		message = "Status change queued for approval"
	}

	return response.Success(c, statusCode, statusChangeDTO{
		Applied: output.Applied,
		Request: toApprovalRequestDTO(output.Request),
	}, message)
}
