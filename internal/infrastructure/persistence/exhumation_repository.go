package persistence

import (
	"context"
	"errors"
	"time"

	"github.com/camposanto/backend/internal/domain/interment"
	"github.com/camposanto/backend/internal/domain/shared"
	"github.com/camposanto/backend/internal/infrastructure/persistence/models"
	"github.com/google/uuid"
	"gorm.io/gorm"
)

// GormExhumationRepository implements ExhumationRepository using GORM
type GormExhumationRepository struct {
	db *gorm.DB
}

// NewGormExhumationRepository creates a new GormExhumationRepository
func NewGormExhumationRepository(db *gorm.DB) *GormExhumationRepository {
	return &GormExhumationRepository{db: db}
}

// FindByID finds an exhumation by its ID
func (r *GormExhumationRepository) FindByID(ctx context.Context, id uuid.UUID) (*interment.Exhumation, error) {
	var model models.ExhumationModel
	if err := r.db.WithContext(ctx).
		First(&model, "id = ?", id).Error; err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, shared.ErrNotFound
		}
		return nil, err
	}
	return model.ToDomain(), nil
}

// ExistsForBurial checks whether an exhumation references the burial
func (r *GormExhumationRepository) ExistsForBurial(ctx context.Context, burialID uuid.UUID) (bool, error) {
	var count int64
	if err := r.db.WithContext(ctx).
		Model(&models.ExhumationModel{}).
		Where("burial_id = ?", burialID).
		Count(&count).Error; err != nil {
		return false, err
	}
	return count > 0, nil
}

// CountQualifyingForPlot counts exhumations on the plot dated on or before the cutoff
func (r *GormExhumationRepository) CountQualifyingForPlot(ctx context.Context, plotID uuid.UUID, cutoff time.Time) (int64, error) {
	var count int64
	if err := r.db.WithContext(ctx).
		Model(&models.ExhumationModel{}).
		Where("plot_id = ? AND date <= ?", plotID, cutoff).
		Count(&count).Error; err != nil {
		return 0, err
	}
	return count, nil
}

// ListForTenant lists exhumations for a tenant with pagination
func (r *GormExhumationRepository) ListForTenant(ctx context.Context, tenantID uuid.UUID, filter shared.Filter) ([]interment.Exhumation, int64, error) {
	query := r.db.WithContext(ctx).Model(&models.ExhumationModel{}).
		Where("tenant_id = ?", tenantID)
	if filter.Search != "" {
		searchPattern := "%" + filter.Search + "%"
		query = query.Where("document_number ILIKE ? OR requester_name ILIKE ?", searchPattern, searchPattern)
	}

	var total int64
	if err := query.Count(&total).Error; err != nil {
		return nil, 0, err
	}

	var exhumationModels []models.ExhumationModel
	if err := applyFilter(query, filter).Find(&exhumationModels).Error; err != nil {
		return nil, 0, err
	}
	exhumations := make([]interment.Exhumation, len(exhumationModels))
	for i, model := range exhumationModels {
		exhumations[i] = *model.ToDomain()
	}
	return exhumations, total, nil
}

// Save creates or updates an exhumation
func (r *GormExhumationRepository) Save(ctx context.Context, exhumation *interment.Exhumation) error {
	model := models.ExhumationModelFromDomain(exhumation)
	return r.db.WithContext(ctx).Save(model).Error
}

// Delete removes an exhumation
func (r *GormExhumationRepository) Delete(ctx context.Context, id uuid.UUID) error {
	result := r.db.WithContext(ctx).Delete(&models.ExhumationModel{}, "id = ?", id)
	if result.Error != nil {
		return result.Error
	}
	if result.RowsAffected == 0 {
		return shared.ErrNotFound
	}
	return nil
}

// Ensure GormExhumationRepository implements ExhumationRepository
var _ interment.ExhumationRepository = (*GormExhumationRepository)(nil)
