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

// GormBurialRepository implements BurialRepository using GORM
type GormBurialRepository struct {
	db *gorm.DB
}

// NewGormBurialRepository creates a new GormBurialRepository
func NewGormBurialRepository(db *gorm.DB) *GormBurialRepository {
	return &GormBurialRepository{db: db}
}

// FindByID finds a burial by its ID
func (r *GormBurialRepository) FindByID(ctx context.Context, id uuid.UUID) (*interment.Burial, error) {
	var model models.BurialModel
	if err := r.db.WithContext(ctx).
		First(&model, "id = ?", id).Error; err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, shared.ErrNotFound
		}
		return nil, err
	}
	return model.ToDomain(), nil
}

// FindByIDForTenant finds a burial by ID for a specific tenant
func (r *GormBurialRepository) FindByIDForTenant(ctx context.Context, tenantID, id uuid.UUID) (*interment.Burial, error) {
	var model models.BurialModel
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

// FindByNumberInPlot finds a burial by its number inside a specific plot
func (r *GormBurialRepository) FindByNumberInPlot(ctx context.Context, plotID uuid.UUID, burialNumber string) (*interment.Burial, error) {
	var model models.BurialModel
	if err := r.db.WithContext(ctx).
		Where("plot_id = ? AND burial_number = ?", plotID, burialNumber).
		First(&model).Error; err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, shared.ErrNotFound
		}
		return nil, err
	}
	return model.ToDomain(), nil
}

// ListForPlot lists burials recorded in a plot with pagination
func (r *GormBurialRepository) ListForPlot(ctx context.Context, plotID uuid.UUID, filter shared.Filter) ([]interment.Burial, int64, error) {
	query := r.db.WithContext(ctx).Model(&models.BurialModel{}).
		Where("plot_id = ?", plotID)
	if filter.Search != "" {
		searchPattern := "%" + filter.Search + "%"
		query = query.Where("deceased_name ILIKE ? OR burial_number ILIKE ?", searchPattern, searchPattern)
	}

	var total int64
	if err := query.Count(&total).Error; err != nil {
		return nil, 0, err
	}

	var burialModels []models.BurialModel
	if err := applyFilter(query, filter).Find(&burialModels).Error; err != nil {
		return nil, 0, err
	}
	burials := make([]interment.Burial, len(burialModels))
	for i, model := range burialModels {
		burials[i] = *model.ToDomain()
	}
	return burials, total, nil
}

// CountActiveForPlot counts burials still occupying the plot
func (r *GormBurialRepository) CountActiveForPlot(ctx context.Context, plotID uuid.UUID) (int64, error) {
	var count int64
	if err := r.db.WithContext(ctx).
		Model(&models.BurialModel{}).
		Where("plot_id = ? AND exhumed = ? AND transferred = ?", plotID, false, false).
		Count(&count).Error; err != nil {
		return 0, err
	}
	return count, nil
}

// CountForPlot counts all burials ever recorded in the plot
func (r *GormBurialRepository) CountForPlot(ctx context.Context, plotID uuid.UUID) (int64, error) {
	var count int64
	if err := r.db.WithContext(ctx).
		Model(&models.BurialModel{}).
		Where("plot_id = ?", plotID).
		Count(&count).Error; err != nil {
		return 0, err
	}
	return count, nil
}

// Save creates or updates a burial
func (r *GormBurialRepository) Save(ctx context.Context, burial *interment.Burial) error {
	model := models.BurialModelFromDomain(burial)
	return r.db.WithContext(ctx).Save(model).Error
}

// UpdateLifecycleFlags writes only the exhumed/transferred columns and their dates
func (r *GormBurialRepository) UpdateLifecycleFlags(ctx context.Context, burial *interment.Burial) error {
	result := r.db.WithContext(ctx).
		Model(&models.BurialModel{}).
		Where("id = ?", burial.ID).
		Updates(map[string]interface{}{
			"exhumed":         burial.Exhumed,
			"exhumation_date": burial.ExhumationDate,
			"transferred":     burial.Transferred,
			"transfer_date":   burial.TransferDate,
		})
	if result.Error != nil {
		return result.Error
	}
	if result.RowsAffected == 0 {
		return shared.ErrNotFound
	}
	return nil
}

// Delete removes a burial
func (r *GormBurialRepository) Delete(ctx context.Context, id uuid.UUID) error {
	result := r.db.WithContext(ctx).Delete(&models.BurialModel{}, "id = ?", id)
	if result.Error != nil {
		return result.Error
	}
	if result.RowsAffected == 0 {
		return shared.ErrNotFound
	}
	return nil
}

// Ensure GormBurialRepository implements BurialRepository
var _ interment.BurialRepository = (*GormBurialRepository)(nil)
