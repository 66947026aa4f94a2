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

// GormPlotRepository implements PlotRepository using GORM
type GormPlotRepository struct {
	db *gorm.DB
}

// NewGormPlotRepository creates a new GormPlotRepository
func NewGormPlotRepository(db *gorm.DB) *GormPlotRepository {
	return &GormPlotRepository{db: db}
}

// FindByID finds a plot by its ID
func (r *GormPlotRepository) FindByID(ctx context.Context, id uuid.UUID) (*cemetery.Plot, error) {
	var model models.PlotModel
	if err := r.db.WithContext(ctx).
		First(&model, "id = ?", id).Error; err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, shared.ErrNotFound
		}
		return nil, err
	}
	return model.ToDomain(), nil
}

// FindByIDForTenant finds a plot by ID for a specific tenant
func (r *GormPlotRepository) FindByIDForTenant(ctx context.Context, tenantID, id uuid.UUID) (*cemetery.Plot, error) {
	var model models.PlotModel
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

// ListForBlock lists plots inside a block with pagination
func (r *GormPlotRepository) ListForBlock(ctx context.Context, blockID uuid.UUID, filter shared.Filter) ([]cemetery.Plot, int64, error) {
	query := r.db.WithContext(ctx).Model(&models.PlotModel{}).
		Where("block_id = ?", blockID)
	if filter.Search != "" {
		query = query.Where("identifier ILIKE ?", "%"+filter.Search+"%")
	}

	var total int64
	if err := query.Count(&total).Error; err != nil {
		return nil, 0, err
	}

	var plotModels []models.PlotModel
	if err := applyFilter(query, filter).Find(&plotModels).Error; err != nil {
		return nil, 0, err
	}
	plots := make([]cemetery.Plot, len(plotModels))
	for i, model := range plotModels {
		plots[i] = *model.ToDomain()
	}
	return plots, total, nil
}

// Save creates or updates a plot
func (r *GormPlotRepository) Save(ctx context.Context, plot *cemetery.Plot) error {
	model := models.PlotModelFromDomain(plot)
	return r.db.WithContext(ctx).Save(model).Error
}

// UpdateStatus writes only the derived status column
func (r *GormPlotRepository) UpdateStatus(ctx context.Context, plotID uuid.UUID, status cemetery.PlotStatus) error {
	result := r.db.WithContext(ctx).
		Model(&models.PlotModel{}).
		Where("id = ?", plotID).
		Update("status", status)
	if result.Error != nil {
		return result.Error
	}
	if result.RowsAffected == 0 {
		return shared.ErrNotFound
	}
	return nil
}

// Delete removes a plot
func (r *GormPlotRepository) Delete(ctx context.Context, id uuid.UUID) error {
	result := r.db.WithContext(ctx).Delete(&models.PlotModel{}, "id = ?", id)
	if result.Error != nil {
		return result.Error
	}
	if result.RowsAffected == 0 {
		return shared.ErrNotFound
	}
	return nil
}

// Ensure GormPlotRepository implements PlotRepository
var _ cemetery.PlotRepository = (*GormPlotRepository)(nil)
