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

// GormContractRepository implements ContractRepository using GORM
type GormContractRepository struct {
	db *gorm.DB
}

// NewGormContractRepository creates a new GormContractRepository
func NewGormContractRepository(db *gorm.DB) *GormContractRepository {
	return &GormContractRepository{db: db}
}

// FindByID finds a concession contract by its ID
func (r *GormContractRepository) FindByID(ctx context.Context, id uuid.UUID) (*interment.ConcessionContract, error) {
	var model models.ConcessionContractModel
	if err := r.db.WithContext(ctx).
		First(&model, "id = ?", id).Error; err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, shared.ErrNotFound
		}
		return nil, err
	}
	return model.ToDomain(), nil
}

// FindByPlot finds the contract covering a plot
func (r *GormContractRepository) FindByPlot(ctx context.Context, plotID uuid.UUID) (*interment.ConcessionContract, error) {
	var model models.ConcessionContractModel
	if err := r.db.WithContext(ctx).
		Where("plot_id = ?", plotID).
		First(&model).Error; err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, shared.ErrNotFound
		}
		return nil, err
	}
	return model.ToDomain(), nil
}

// ExistsForPlot checks whether a contract already covers the plot
func (r *GormContractRepository) ExistsForPlot(ctx context.Context, plotID uuid.UUID) (bool, error) {
	var count int64
	if err := r.db.WithContext(ctx).
		Model(&models.ConcessionContractModel{}).
		Where("plot_id = ?", plotID).
		Count(&count).Error; err != nil {
		return false, err
	}
	return count > 0, nil
}

// ListForTenant lists contracts for a tenant with pagination
func (r *GormContractRepository) ListForTenant(ctx context.Context, tenantID uuid.UUID, filter shared.Filter) ([]interment.ConcessionContract, int64, error) {
	query := r.db.WithContext(ctx).Model(&models.ConcessionContractModel{}).
		Where("tenant_id = ?", tenantID)
	if filter.Search != "" {
		searchPattern := "%" + filter.Search + "%"
		query = query.Where("grantee_name ILIKE ? OR contract_number ILIKE ?", searchPattern, searchPattern)
	}

	var total int64
	if err := query.Count(&total).Error; err != nil {
		return nil, 0, err
	}

	var contractModels []models.ConcessionContractModel
	if err := applyFilter(query, filter).Find(&contractModels).Error; err != nil {
		return nil, 0, err
	}
	contracts := make([]interment.ConcessionContract, len(contractModels))
	for i, model := range contractModels {
		contracts[i] = *model.ToDomain()
	}
	return contracts, total, nil
}

// Save creates or updates a concession contract
func (r *GormContractRepository) Save(ctx context.Context, contract *interment.ConcessionContract) error {
	model := models.ConcessionContractModelFromDomain(contract)
	return r.db.WithContext(ctx).Save(model).Error
}

// Delete removes a concession contract
func (r *GormContractRepository) Delete(ctx context.Context, id uuid.UUID) error {
	result := r.db.WithContext(ctx).Delete(&models.ConcessionContractModel{}, "id = ?", id)
	if result.Error != nil {
		return result.Error
	}
	if result.RowsAffected == 0 {
		return shared.ErrNotFound
	}
	return nil
}

// Ensure GormContractRepository implements ContractRepository
var _ interment.ContractRepository = (*GormContractRepository)(nil)
