package handler

import (
	"time"

	"backoffice/internal/domain/entity"
	"backoffice/internal/usecase"

	"github.com/google/uuid"
)

// Response DTOs. Entities are never serialized directly; these projections
// pin the wire field names and keep credential fields out of responses.

type userDTO struct {
	ID    uuid.UUID `json:"id"`
	Name  string    `json:"name"`
	Email string    `json:"email"`
	Role  string    `json:"role"`
}

type sessionDTO struct {
	AccessToken  string  `json:"accessToken"`
	RefreshToken string  `json:"refreshToken"`
	User         userDTO `json:"user"`
}

type propertyDTO struct {
	ID        uuid.UUID `json:"id"`
	Reference string    `json:"reference"`
	Title     string    `json:"title"`
	OwnerName string    `json:"ownerName"`
	Price     int64     `json:"price"`
	Status    string    `json:"status"`
	AgentID   uuid.UUID `json:"agentId"`
	CreatedAt time.Time `json:"createdAt"`
	UpdatedAt time.Time `json:"updatedAt"`
}

type leadDTO struct {
	ID        uuid.UUID `json:"id"`
	Name      string    `json:"name"`
	Phone     string    `json:"phone"`
	Source    string    `json:"source"`
	Status    string    `json:"status"`
	AgentID   uuid.UUID `json:"agentId"`
	CreatedAt time.Time `json:"createdAt"`
	UpdatedAt time.Time `json:"updatedAt"`
}

type pageDTO[T any] struct {
	Items []T   `json:"items"`
	Total int64 `json:"total"`
}

type approvalRequestDTO struct {
	ID              uuid.UUID  `json:"id"`
	EntityKind      string     `json:"entityKind"`
	EntityID        uuid.UUID  `json:"entityId"`
	RequestedBy     uuid.UUID  `json:"requestedBy"`
	RequestedStatus string     `json:"requestedStatus"`
	ApprovalStatus  string     `json:"approvalStatus"`
	ApprovedBy      *uuid.UUID `json:"approvedBy,omitempty"`
	RejectedBy      *uuid.UUID `json:"rejectedBy,omitempty"`
	Comment         *string    `json:"comment,omitempty"`
	CreatedAt       time.Time  `json:"createdAt"`
	UpdatedAt       time.Time  `json:"updatedAt"`
}

type statusChangeDTO struct {
	Applied bool                `json:"applied"`
	Request *approvalRequestDTO `json:"request,omitempty"`
}

func toUserDTO(user *entity.User) userDTO {
	return userDTO{
		ID:    user.ID,
		Name:  user.Name,
		Email: user.Email,
		Role:  user.Role.String(),
	}
}

func toSessionDTO(accessToken, refreshToken string, user *entity.User) sessionDTO {
	return sessionDTO{
		AccessToken:  accessToken,
		RefreshToken: refreshToken,
		User:         toUserDTO(user),
	}
}

func toPropertyDTO(property *entity.Property) propertyDTO {
	return propertyDTO{
		ID:        property.ID,
		Reference: property.Reference,
		Title:     property.Title,
		OwnerName: property.OwnerName,
		Price:     property.Price,
		Status:    property.Status.String(),
		AgentID:   property.AgentID,
		CreatedAt: property.CreatedAt,
		UpdatedAt: property.UpdatedAt,
	}
}

func toLeadDTO(lead *entity.Lead) leadDTO {
	return leadDTO{
		ID:        lead.ID,
		Name:      lead.Name,
		Phone:     lead.Phone,
		Source:    lead.Source,
		Status:    lead.Status.String(),
		AgentID:   lead.AgentID,
		CreatedAt: lead.CreatedAt,
		UpdatedAt: lead.UpdatedAt,
	}
}

func toApprovalRequestDTO(request *entity.ApprovalRequest) *approvalRequestDTO {
	if request == nil {
		return nil
	}

	return &approvalRequestDTO{
		ID:              request.ID,
		EntityKind:      request.EntityKind.String(),
		EntityID:        request.EntityID,
		RequestedBy:     request.RequestedBy,
		RequestedStatus: request.RequestedStatus.String(),
		ApprovalStatus:  request.ApprovalStatus.String(),
		ApprovedBy:      request.ApprovedBy,
		RejectedBy:      request.RejectedBy,
		Comment:         request.Comment,
		CreatedAt:       request.CreatedAt,
		UpdatedAt:       request.UpdatedAt,
	}
}

func toApprovalRequestDTOs(requests []*entity.ApprovalRequest) []*approvalRequestDTO {
	dtos := make([]*approvalRequestDTO, 0, len(requests))
	for _, request := range requests {
		dtos = append(dtos, toApprovalRequestDTO(request))
	}

	return dtos
}

func toListInput(c listQuery) *usecase.ListInput {
	return &usecase.ListInput{
		Offset:  c.Offset,
		Limit:   c.Limit,
		SortBy:  c.SortBy,
		SortDir: c.SortDir,
	}
}

// listQuery binds pagination query parameters.
type listQuery struct {
	Offset  int    `query:"offset"`
	Limit   int    `query:"limit"`
	SortBy  string `query:"sortBy"`
	SortDir string `query:"sortDir"`
}
