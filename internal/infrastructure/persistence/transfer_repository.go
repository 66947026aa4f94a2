package persistence

import (
	"context"
	"errors"

	"github.com/camposanto/backend/internal/domain/interment"
	"github.com/camposanto/backend/internal/domain/shared"
	"github.com/camposanto/backend/internal/infrastructure/persistence/models"
	"github.com/google/uuid"
	"gorm.io/gorm"
)

// GormTransferRepository implements TransferRepository using GORM
type GormTransferRepository struct {
	db *gorm.DB
}

// NewGormTransferRepository creates a new GormTransferRepository
func NewGormTransferRepository(db *gorm.DB) *GormTransferRepository {
	return &GormTransferRepository{db: db}
}

// FindByID finds a transfer by its ID
func (r *GormTransferRepository) FindByID(ctx context.Context, id uuid.UUID) (*interment.Transfer, error) {
	var model models.TransferModel
	if err := r.db.WithContext(ctx).
		First(&model, "id = ?", id).Error; err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, shared.ErrNotFound
		}
		return nil, err
	}
	return model.ToDomain(), nil
}

// ExistsForBurial checks whether a transfer references the burial
func (r *GormTransferRepository) ExistsForBurial(ctx context.Context, burialID uuid.UUID) (bool, error) {
	var count int64
	if err := r.db.WithContext(ctx).
		Model(&models.TransferModel{}).
		Where("burial_id = ?", burialID).
		Count(&count).Error; err != nil {
		return false, err
	}
	return count > 0, nil
}

// ListForTenant lists transfers for a tenant with pagination
func (r *GormTransferRepository) ListForTenant(ctx context.Context, tenantID uuid.UUID, filter shared.Filter) ([]interment.Transfer, int64, error) {
	query := r.db.WithContext(ctx).Model(&models.TransferModel{}).
		Where("tenant_id = ?", tenantID)
	if filter.Search != "" {
		searchPattern := "%" + filter.Search + "%"
		query = query.Where("document_number ILIKE ? OR destination_cemetery ILIKE ?", searchPattern, searchPattern)
	}

	var total int64
	if err := query.Count(&total).Error; err != nil {
		return nil, 0, err
	}

	var transferModels []models.TransferModel
	if err := applyFilter(query, filter).Find(&transferModels).Error; err != nil {
		return nil, 0, err
	}
	transfers := make([]interment.Transfer, len(transferModels))
	for i, model := range transferModels {
		transfers[i] = *model.ToDomain()
	}
	return transfers, total, nil
}

// Save creates or updates a transfer
func (r *GormTransferRepository) Save(ctx context.Context, transfer *interment.Transfer) error {
	model := models.TransferModelFromDomain(transfer)
	return r.db.WithContext(ctx).Save(model).Error
}

// Delete removes a transfer
func (r *GormTransferRepository) Delete(ctx context.Context, id uuid.UUID) error {
	result := r.db.WithContext(ctx).Delete(&models.TransferModel{}, "id = ?", id)
	if result.Error != nil {
		return result.Error
	}
	if result.RowsAffected == 0 {
		return shared.ErrNotFound
	}
	return nil
}

// Ensure GormTransferRepository implements TransferRepository
var _ interment.TransferRepository = (*GormTransferRepository)(nil)
