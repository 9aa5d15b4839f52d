package postgres

import (
	"context"

	"backoffice/internal/domain/entity"
	domainerrors "backoffice/internal/domain/errors"
	"backoffice/internal/domain/repository"
	"backoffice/internal/infra/persistence/model"

	"github.com/google/uuid"
	"github.com/pkg/errors"
	"gorm.io/gorm"
)

// approvalRequestRepository implements the domain.ApprovalRequestRepository interface using GORM.
type approvalRequestRepository struct {
	db *gorm.DB
}

// NewApprovalRequestRepository is the constructor for approvalRequestRepository.
func NewApprovalRequestRepository(db *gorm.DB) repository.ApprovalRequestRepository {
	return &approvalRequestRepository{db: db}
}

// Create persists a new PENDING approval request.
func (repo *approvalRequestRepository) Create(ctx context.Context, request *entity.ApprovalRequest) error {
	requestM := fromApprovalDomain(request)
	requestM.ApprovalStatus = entity.ApprovalPending.String()

	if err := repo.db.WithContext(ctx).Create(requestM).Error; err != nil {
		if isForeignKeyConstraintViolation(err) {
			return domainerrors.ErrCreateFailed.WrapMessage("invalid entity reference")
		}
		if isNotNullConstraintViolation(err) {
			return domainerrors.ErrCreateFailed.WrapMessage("missing required request information")
		}

		return domainerrors.NewDatabaseExecuteError(err, "failed to create approval request")
	}

	request.ID = requestM.ID
	request.ApprovalStatus = entity.ApprovalPending
	request.CreatedAt = requestM.CreatedAt
	request.UpdatedAt = requestM.UpdatedAt

	return nil
}

// FindByID retrieves a single approval request by its unique ID.
func (repo *approvalRequestRepository) FindByID(ctx context.Context, id uuid.UUID) (*entity.ApprovalRequest, error) {
	var requestM model.ApprovalRequestModel
	if err := repo.db.WithContext(ctx).Where("id = ?", id).First(&requestM).Error; err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, repository.ErrApprovalNotFound
		}

		return nil, errors.Wrap(err, "failed to find approval request by id")
	}

	return toApprovalDomain(&requestM), nil
}

// ListPending returns all PENDING requests for an entity kind, oldest first.
func (repo *approvalRequestRepository) ListPending(ctx context.Context, kind entity.EntityKind) ([]*entity.ApprovalRequest, error) {
	var requestModels []*model.ApprovalRequestModel
	if err := repo.db.WithContext(ctx).
		Where("entity_kind = ? AND approval_status = ?", kind.String(), entity.ApprovalPending.String()).
		Order("created_at asc").
		Find(&requestModels).Error; err != nil {
		return nil, errors.Wrap(err, "failed to list pending approval requests")
	}

	return toApprovalDomainSlice(requestModels), nil
}

// ListArchive returns all resolved requests for an entity kind, most recently decided first.
func (repo *approvalRequestRepository) ListArchive(ctx context.Context, kind entity.EntityKind) ([]*entity.ApprovalRequest, error) {
	var requestModels []*model.ApprovalRequestModel
	if err := repo.db.WithContext(ctx).
		Where("entity_kind = ? AND approval_status <> ?", kind.String(), entity.ApprovalPending.String()).
		Order("updated_at desc").
		Find(&requestModels).Error; err != nil {
		return nil, errors.Wrap(err, "failed to list archived approval requests")
	}

	return toApprovalDomainSlice(requestModels), nil
}

// Resolve moves a PENDING request to a terminal status, stamping the decider.
// The guarded UPDATE makes the transition race-safe: of two concurrent
// decisions only one matches the PENDING row, the other observes zero rows
// affected and gets ErrApprovalResolved.
func (repo *approvalRequestRepository) Resolve(ctx context.Context, id uuid.UUID, decision entity.ApprovalStatus, decidedBy uuid.UUID) (*entity.ApprovalRequest, error) {
	if !decision.IsTerminal() {
		return nil, errors.Errorf("decision %q is not terminal", decision)
	}

	updates := map[string]any{
		"approval_status": decision.String(),
		"updated_at":      gorm.Expr("now()"),
	}
	switch decision {
	case entity.ApprovalApproved:
		updates["approved_by"] = decidedBy
	case entity.ApprovalRejected:
		updates["rejected_by"] = decidedBy
	}

	result := repo.db.WithContext(ctx).
		Model(&model.ApprovalRequestModel{}).
		Where("id = ? AND approval_status = ?", id, entity.ApprovalPending.String()).
		Updates(updates)

	if result.Error != nil {
		return nil, domainerrors.NewDatabaseExecuteError(result.Error, "failed to resolve approval request")
	}

	if result.RowsAffected == 0 {
		// Distinguish a missing request from one already decided.
		if _, err := repo.FindByID(ctx, id); err != nil {
			return nil, err
		}

		return nil, repository.ErrApprovalResolved
	}

	return repo.FindByID(ctx, id)
}

// --- Mapper Functions ---

// toApprovalDomain converts a GORM ApprovalRequestModel to a domain ApprovalRequest entity.
func toApprovalDomain(data *model.ApprovalRequestModel) *entity.ApprovalRequest {
	if data == nil {
		return nil
	}

	return &entity.ApprovalRequest{
		ID:              data.ID,
		EntityKind:      entity.EntityKind(data.EntityKind),
		EntityID:        data.EntityID,
		RequestedBy:     data.RequestedBy,
		RequestedStatus: entity.ListingStatus(data.RequestedStatus),
		ApprovalStatus:  entity.ApprovalStatus(data.ApprovalStatus),
		ApprovedBy:      data.ApprovedBy,
		RejectedBy:      data.RejectedBy,
		Comment:         data.Comment,
		CreatedAt:       data.CreatedAt,
		UpdatedAt:       data.UpdatedAt,
	}
}

func toApprovalDomainSlice(models []*model.ApprovalRequestModel) []*entity.ApprovalRequest {
	requests := make([]*entity.ApprovalRequest, 0, len(models))
	for _, requestM := range models {
		requests = append(requests, toApprovalDomain(requestM))
	}

	return requests
}

// fromApprovalDomain converts a domain ApprovalRequest entity to a GORM ApprovalRequestModel.
func fromApprovalDomain(data *entity.ApprovalRequest) *model.ApprovalRequestModel {
	if data == nil {
		return nil
	}

	return &model.ApprovalRequestModel{
		ID:              data.ID,
		EntityKind:      data.EntityKind.String(),
		EntityID:        data.EntityID,
		RequestedBy:     data.RequestedBy,
		RequestedStatus: data.RequestedStatus.String(),
		ApprovalStatus:  data.ApprovalStatus.String(),
		ApprovedBy:      data.ApprovedBy,
		RejectedBy:      data.RejectedBy,
		Comment:         data.Comment,
		CreatedAt:       data.CreatedAt,
		UpdatedAt:       data.UpdatedAt,
	}
}
