package persistence

import (
	"context"
	"errors"

	"github.com/camposanto/backend/internal/domain/cemetery"
	"github.com/camposanto/backend/internal/domain/shared"
	"github.com/camposanto/backend/internal/infrastructure/persistence/models"
	"github.com/google/uuid"
	"gorm.io/gorm"
)

// GormCemeteryRepository implements CemeteryRepository using GORM
type GormCemeteryRepository struct {
	db *gorm.DB
}

// NewGormCemeteryRepository creates a new GormCemeteryRepository
func NewGormCemeteryRepository(db *gorm.DB) *GormCemeteryRepository {
	return &GormCemeteryRepository{db: db}
}

// FindByID finds a cemetery by its ID
func (r *GormCemeteryRepository) FindByID(ctx context.Context, id uuid.UUID) (*cemetery.Cemetery, error) {
	var model models.CemeteryModel
	if err := r.db.WithContext(ctx).
		First(&model, "id = ?", id).Error; err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, shared.ErrNotFound
		}
		return nil, err
	}
	return model.ToDomain(), nil
}

// FindByIDForTenant finds a cemetery by ID for a specific tenant
func (r *GormCemeteryRepository) FindByIDForTenant(ctx context.Context, tenantID, id uuid.UUID) (*cemetery.Cemetery, error) {
	var model models.CemeteryModel
	if err := r.db.WithContext(ctx).
		Where("tenant_id = ? AND id = ?", tenantID, id).
		First(&model).Error; err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, shared.ErrNotFound
		}
		return nil, err
	}
	return model.ToDomain(), nil
}

// ListForTenant lists cemeteries for a tenant with pagination
func (r *GormCemeteryRepository) ListForTenant(ctx context.Context, tenantID uuid.UUID, filter shared.Filter) ([]cemetery.Cemetery, int64, error) {
	query := r.db.WithContext(ctx).Model(&models.CemeteryModel{}).
		Where("tenant_id = ?", tenantID)
	if filter.Search != "" {
		query = query.Where("name ILIKE ?", "%"+filter.Search+"%")
	}

	var total int64
	if err := query.Count(&total).Error; err != nil {
		return nil, 0, err
	}

	var cemeteryModels []models.CemeteryModel
	if err := applyFilter(query, filter).Find(&cemeteryModels).Error; err != nil {
		return nil, 0, err
	}
	cemeteries := make([]cemetery.Cemetery, len(cemeteryModels))
	for i, model := range cemeteryModels {
		cemeteries[i] = *model.ToDomain()
	}
	return cemeteries, total, nil
}

// Save creates or updates a cemetery
func (r *GormCemeteryRepository) Save(ctx context.Context, c *cemetery.Cemetery) error {
	model := models.CemeteryModelFromDomain(c)
	return r.db.WithContext(ctx).Save(model).Error
}

// Delete removes a cemetery
func (r *GormCemeteryRepository) Delete(ctx context.Context, id uuid.UUID) error {
	result := r.db.WithContext(ctx).Delete(&models.CemeteryModel{}, "id = ?", id)
	if result.Error != nil {
		return result.Error
	}
	if result.RowsAffected == 0 {
		return shared.ErrNotFound
	}
	return nil
}

// CountBlocks counts the blocks registered under a cemetery
func (r *GormCemeteryRepository) CountBlocks(ctx context.Context, cemeteryID uuid.UUID) (int64, error) {
	var count int64
	if err := r.db.WithContext(ctx).
		Model(&models.BlockModel{}).
		Where("cemetery_id = ?", cemeteryID).
		Count(&count).Error; err != nil {
		return 0, err
	}
	return count, nil
}

// Ensure GormCemeteryRepository implements CemeteryRepository
var _ cemetery.CemeteryRepository = (*GormCemeteryRepository)(nil)
