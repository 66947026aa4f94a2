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

// GormBlockRepository implements BlockRepository using GORM
type GormBlockRepository struct {
	db *gorm.DB
}

// NewGormBlockRepository creates a new GormBlockRepository
func NewGormBlockRepository(db *gorm.DB) *GormBlockRepository {
	return &GormBlockRepository{db: db}
}

// FindByID finds a block by its ID
func (r *GormBlockRepository) FindByID(ctx context.Context, id uuid.UUID) (*cemetery.Block, error) {
	var model models.BlockModel
	if err := r.db.WithContext(ctx).
		First(&model, "id = ?", id).Error; err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, shared.ErrNotFound
		}
		return nil, err
	}
	return model.ToDomain(), nil
}

// ListForCemetery lists blocks inside a cemetery with pagination
func (r *GormBlockRepository) ListForCemetery(ctx context.Context, cemeteryID uuid.UUID, filter shared.Filter) ([]cemetery.Block, int64, error) {
	query := r.db.WithContext(ctx).Model(&models.BlockModel{}).
		Where("cemetery_id = ?", cemeteryID)
	if filter.Search != "" {
		query = query.Where("name ILIKE ?", "%"+filter.Search+"%")
	}

	var total int64
	if err := query.Count(&total).Error; err != nil {
		return nil, 0, err
	}

	var blockModels []models.BlockModel
	if err := applyFilter(query, filter).Find(&blockModels).Error; err != nil {
		return nil, 0, err
	}
	blocks := make([]cemetery.Block, len(blockModels))
	for i, model := range blockModels {
		blocks[i] = *model.ToDomain()
	}
	return blocks, total, nil
}

// Save creates or updates a block
func (r *GormBlockRepository) Save(ctx context.Context, block *cemetery.Block) error {
	model := models.BlockModelFromDomain(block)
	return r.db.WithContext(ctx).Save(model).Error
}

// Delete removes a block
func (r *GormBlockRepository) Delete(ctx context.Context, id uuid.UUID) error {
	result := r.db.WithContext(ctx).Delete(&models.BlockModel{}, "id = ?", id)
	if result.Error != nil {
		return result.Error
	}
	if result.RowsAffected == 0 {
		return shared.ErrNotFound
	}
	return nil
}

// CountPlots counts the plots registered under a block
func (r *GormBlockRepository) CountPlots(ctx context.Context, blockID uuid.UUID) (int64, error) {
	var count int64
	if err := r.db.WithContext(ctx).
		Model(&models.PlotModel{}).
		Where("block_id = ?", blockID).
		Count(&count).Error; err != nil {
		return 0, err
	}
	return count, nil
}

// Ensure GormBlockRepository implements BlockRepository
var _ cemetery.BlockRepository = (*GormBlockRepository)(nil)
