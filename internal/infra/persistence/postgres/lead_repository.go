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

// leadRepository implements the domain.LeadRepository interface using GORM.
type leadRepository struct {
	db *gorm.DB
}

// NewLeadRepository is the constructor for leadRepository.
func NewLeadRepository(db *gorm.DB) repository.LeadRepository {
	return &leadRepository{db: db}
}

// Create persists a new sales lead.
func (repo *leadRepository) Create(ctx context.Context, lead *entity.Lead) error {
	leadM := fromLeadDomain(lead)

	if err := repo.db.WithContext(ctx).Create(leadM).Error; err != nil {
		if isNotNullConstraintViolation(err) {
			return domainerrors.ErrCreateFailed.WrapMessage("missing required lead information")
		}

		return domainerrors.NewDatabaseExecuteError(err, "failed to create lead")
	}

	lead.ID = leadM.ID
	lead.CreatedAt = leadM.CreatedAt
	lead.UpdatedAt = leadM.UpdatedAt

	return nil
}

// FindByID retrieves a single lead by its unique ID.
func (repo *leadRepository) FindByID(ctx context.Context, id uuid.UUID) (*entity.Lead, error) {
	var leadM model.LeadModel
	if err := repo.db.WithContext(ctx).Where("id = ?", id).First(&leadM).Error; err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, repository.ErrLeadNotFound
		}

		return nil, errors.Wrap(err, "failed to find lead by id")
	}

	return toLeadDomain(&leadM), nil
}

// List returns a page of leads plus the total count.
func (repo *leadRepository) List(ctx context.Context, page entity.ListPage) ([]*entity.Lead, int64, error) {
	var total int64
	if err := repo.db.WithContext(ctx).Model(&model.LeadModel{}).Count(&total).Error; err != nil {
		return nil, 0, errors.Wrap(err, "failed to count leads")
	}

	var leadModels []*model.LeadModel
	query := repo.db.WithContext(ctx).
		Order(orderClause(page, leadSortColumns)).
		Offset(page.Offset)
	if page.Limit > 0 {
		query = query.Limit(page.Limit)
	}
	if err := query.Find(&leadModels).Error; err != nil {
		return nil, 0, errors.Wrap(err, "failed to list leads")
	}

	leads := make([]*entity.Lead, 0, len(leadModels))
	for _, leadM := range leadModels {
		leads = append(leads, toLeadDomain(leadM))
	}

	return leads, total, nil
}

// Update modifies an existing sales lead.
func (repo *leadRepository) Update(ctx context.Context, lead *entity.Lead) error {
	leadM := fromLeadDomain(lead)

	if err := repo.db.WithContext(ctx).Save(leadM).Error; err != nil {
		if isNotNullConstraintViolation(err) {
			return domainerrors.ErrUpdateFailed.WrapMessage("missing required lead information")
		}

		return domainerrors.NewDatabaseExecuteError(err, "failed to update lead")
	}

	lead.UpdatedAt = leadM.UpdatedAt

	return nil
}

// UpdateStatus sets the live status field of a lead.
func (repo *leadRepository) UpdateStatus(ctx context.Context, id uuid.UUID, status entity.ListingStatus) error {
	result := repo.db.WithContext(ctx).
		Model(&model.LeadModel{}).
		Where("id = ?", id).
		Update("status", status.String())

	if result.Error != nil {
		return domainerrors.NewDatabaseExecuteError(result.Error, "failed to update lead status")
	}

	if result.RowsAffected == 0 {
		return repository.ErrLeadNotFound
	}

	return nil
}

// --- Mapper Functions ---

// toLeadDomain converts a GORM LeadModel to a domain Lead entity.
func toLeadDomain(data *model.LeadModel) *entity.Lead {
	if data == nil {
		return nil
	}

	return &entity.Lead{
		ID:        data.ID,
		Name:      data.Name,
		Phone:     data.Phone,
		Source:    data.Source,
		Status:    entity.ListingStatus(data.Status),
		AgentID:   data.AgentID,
		CreatedAt: data.CreatedAt,
		UpdatedAt: data.UpdatedAt,
	}
}

// fromLeadDomain converts a domain Lead entity to a GORM LeadModel.
func fromLeadDomain(data *entity.Lead) *model.LeadModel {
	if data == nil {
		return nil
	}

	return &model.LeadModel{
		ID:        data.ID,
		Name:      data.Name,
		Phone:     data.Phone,
		Source:    data.Source,
		Status:    data.Status.String(),
		AgentID:   data.AgentID,
		CreatedAt: data.CreatedAt,
		UpdatedAt: data.UpdatedAt,
	}
}
