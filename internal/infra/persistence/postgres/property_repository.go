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

// propertyRepository implements the domain.PropertyRepository interface using GORM.
type propertyRepository struct {
	db *gorm.DB
}

// NewPropertyRepository is the constructor for propertyRepository.
func NewPropertyRepository(db *gorm.DB) repository.PropertyRepository {
	return &propertyRepository{db: db}
}

// Create persists a new property listing.
func (repo *propertyRepository) Create(ctx context.Context, property *entity.Property) error {
	propertyM := fromPropertyDomain(property)

	if err := repo.db.WithContext(ctx).Create(propertyM).Error; err != nil {
		if isUniqueConstraintViolation(err) {
			return domainerrors.ErrConflict.WrapMessage("listing reference already exists")
		}
		if isNotNullConstraintViolation(err) {
			return domainerrors.ErrCreateFailed.WrapMessage("missing required property information")
		}

		return domainerrors.NewDatabaseExecuteError(err, "failed to create property")
	}

	property.ID = propertyM.ID
	property.CreatedAt = propertyM.CreatedAt
	property.UpdatedAt = propertyM.UpdatedAt

	return nil
}

// FindByID retrieves a single property by its unique ID.
func (repo *propertyRepository) FindByID(ctx context.Context, id uuid.UUID) (*entity.Property, error) {
	var propertyM model.PropertyModel
	if err := repo.db.WithContext(ctx).Where("id = ?", id).First(&propertyM).Error; err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, repository.ErrPropertyNotFound
		}

		return nil, errors.Wrap(err, "failed to find property by id")
	}

	return toPropertyDomain(&propertyM), nil
}

// List returns a page of properties plus the total count.
func (repo *propertyRepository) List(ctx context.Context, page entity.ListPage) ([]*entity.Property, int64, error) {
	var total int64
	if err := repo.db.WithContext(ctx).Model(&model.PropertyModel{}).Count(&total).Error; err != nil {
		return nil, 0, errors.Wrap(err, "failed to count properties")
	}

	var propertyModels []*model.PropertyModel
	query := repo.db.WithContext(ctx).
		Order(orderClause(page, propertySortColumns)).
		Offset(page.Offset)
	if page.Limit > 0 {
		query = query.Limit(page.Limit)
	}
	if err := query.Find(&propertyModels).Error; err != nil {
		return nil, 0, errors.Wrap(err, "failed to list properties")
	}

	properties := make([]*entity.Property, 0, len(propertyModels))
	for _, propertyM := range propertyModels {
		properties = append(properties, toPropertyDomain(propertyM))
	}

	return properties, total, nil
}

// Update modifies an existing property listing.
func (repo *propertyRepository) Update(ctx context.Context, property *entity.Property) error {
	propertyM := fromPropertyDomain(property)

	if err := repo.db.WithContext(ctx).Save(propertyM).Error; err != nil {
		if isUniqueConstraintViolation(err) {
			return domainerrors.ErrConflict.WrapMessage("listing reference already exists")
		}
		if isNotNullConstraintViolation(err) {
			return domainerrors.ErrUpdateFailed.WrapMessage("missing required property information")
		}

		return domainerrors.NewDatabaseExecuteError(err, "failed to update property")
	}

	property.UpdatedAt = propertyM.UpdatedAt

	return nil
}

// UpdateStatus sets the live status field of a property.
func (repo *propertyRepository) UpdateStatus(ctx context.Context, id uuid.UUID, status entity.ListingStatus) error {
	result := repo.db.WithContext(ctx).
		Model(&model.PropertyModel{}).
		Where("id = ?", id).
		Update("status", status.String())

	if result.Error != nil {
		return domainerrors.NewDatabaseExecuteError(result.Error, "failed to update property status")
	}

	if result.RowsAffected == 0 {
		return repository.ErrPropertyNotFound
	}

	return nil
}

// --- Mapper Functions ---

// toPropertyDomain converts a GORM PropertyModel to a domain Property entity.
func toPropertyDomain(data *model.PropertyModel) *entity.Property {
	if data == nil {
		return nil
	}

	return &entity.Property{
		ID:        data.ID,
		Reference: data.Reference,
		Title:     data.Title,
		OwnerName: data.OwnerName,
		Price:     data.Price,
		Status:    entity.ListingStatus(data.Status),
		AgentID:   data.AgentID,
		CreatedAt: data.CreatedAt,
		UpdatedAt: data.UpdatedAt,
	}
}

// fromPropertyDomain converts a domain Property entity to a GORM PropertyModel.
func fromPropertyDomain(data *entity.Property) *model.PropertyModel {
	if data == nil {
		return nil
	}

	return &model.PropertyModel{
		ID:        data.ID,
		Reference: data.Reference,
		Title:     data.Title,
		OwnerName: data.OwnerName,
		Price:     data.Price,
		Status:    data.Status.String(),
		AgentID:   data.AgentID,
		CreatedAt: data.CreatedAt,
		UpdatedAt: data.UpdatedAt,
	}
}
