package persistence

import (
	"context"
	"errors"

	"github.com/camposanto/backend/internal/domain/billing"
	"github.com/camposanto/backend/internal/domain/shared"
	"github.com/camposanto/backend/internal/domain/shared/valueobject"
	"github.com/camposanto/backend/internal/infrastructure/persistence/models"
	"github.com/google/uuid"
	"gorm.io/gorm"
)

// GormReceivableRepository implements ReceivableRepository using GORM
type GormReceivableRepository struct {
	db *gorm.DB
}

// NewGormReceivableRepository creates a new GormReceivableRepository
func NewGormReceivableRepository(db *gorm.DB) *GormReceivableRepository {
	return &GormReceivableRepository{db: db}
}

// FindByID finds a receivable by its ID
func (r *GormReceivableRepository) FindByID(ctx context.Context, id uuid.UUID) (*billing.Receivable, error) {
	var model models.ReceivableModel
	if err := r.db.WithContext(ctx).
		First(&model, "id = ?", id).Error; err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, shared.ErrNotFound
		}
		return nil, err
	}
	return model.ToDomain(), nil
}

// FindByIDForTenant finds a receivable by ID for a specific tenant
func (r *GormReceivableRepository) FindByIDForTenant(ctx context.Context, tenantID, id uuid.UUID) (*billing.Receivable, error) {
	var model models.ReceivableModel
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

// ListForTenant lists receivables for a tenant with pagination
func (r *GormReceivableRepository) ListForTenant(ctx context.Context, tenantID uuid.UUID, filter shared.Filter) ([]billing.Receivable, int64, error) {
	query := r.db.WithContext(ctx).Model(&models.ReceivableModel{}).
		Where("tenant_id = ?", tenantID)
	if filter.Search != "" {
		searchPattern := "%" + filter.Search + "%"
		query = query.Where("document_number ILIKE ? OR payer_name ILIKE ? OR description ILIKE ?",
			searchPattern, searchPattern, searchPattern)
	}

	var total int64
	if err := query.Count(&total).Error; err != nil {
		return nil, 0, err
	}

	var receivableModels []models.ReceivableModel
	if err := applyFilter(query, filter).Find(&receivableModels).Error; err != nil {
		return nil, 0, err
	}
	receivables := make([]billing.Receivable, len(receivableModels))
	for i, model := range receivableModels {
		receivables[i] = *model.ToDomain()
	}
	return receivables, total, nil
}

// ListBySource lists receivables generated from a specific service event
func (r *GormReceivableRepository) ListBySource(ctx context.Context, kind billing.SourceKind, sourceID uuid.UUID) ([]billing.Receivable, error) {
	var receivableModels []models.ReceivableModel
	if err := r.db.WithContext(ctx).
		Where("source_kind = ? AND source_id = ?", kind, sourceID).
		Order("installment_number ASC, created_at ASC").
		Find(&receivableModels).Error; err != nil {
		return nil, err
	}
	receivables := make([]billing.Receivable, len(receivableModels))
	for i, model := range receivableModels {
		receivables[i] = *model.ToDomain()
	}
	return receivables, nil
}

// Save creates or updates a receivable
func (r *GormReceivableRepository) Save(ctx context.Context, receivable *billing.Receivable) error {
	model := models.ReceivableModelFromDomain(receivable)
	return r.db.WithContext(ctx).Save(model).Error
}

// SaveAll persists a batch of receivables, typically one generated schedule
func (r *GormReceivableRepository) SaveAll(ctx context.Context, receivables []*billing.Receivable) error {
	if len(receivables) == 0 {
		return nil
	}
	receivableModels := make([]*models.ReceivableModel, len(receivables))
	for i, receivable := range receivables {
		receivableModels[i] = models.ReceivableModelFromDomain(receivable)
	}
	return r.db.WithContext(ctx).Create(receivableModels).Error
}

// Delete removes a receivable
func (r *GormReceivableRepository) Delete(ctx context.Context, id uuid.UUID) error {
	result := r.db.WithContext(ctx).Delete(&models.ReceivableModel{}, "id = ?", id)
	if result.Error != nil {
		return result.Error
	}
	if result.RowsAffected == 0 {
		return shared.ErrNotFound
	}
	return nil
}

// CountBySource counts receivables generated from a specific service event
func (r *GormReceivableRepository) CountBySource(ctx context.Context, kind billing.SourceKind, sourceID uuid.UUID) (int64, error) {
	var count int64
	if err := r.db.WithContext(ctx).
		Model(&models.ReceivableModel{}).
		Where("source_kind = ? AND source_id = ?", kind, sourceID).
		Count(&count).Error; err != nil {
		return 0, err
	}
	return count, nil
}

// ExistsOpenWithOutstanding checks for an open receivable under the document
// number carrying exactly the given outstanding amount
func (r *GormReceivableRepository) ExistsOpenWithOutstanding(ctx context.Context, tenantID uuid.UUID, documentNumber string, outstanding valueobject.Money) (bool, error) {
	var count int64
	if err := r.db.WithContext(ctx).
		Model(&models.ReceivableModel{}).
		Where("tenant_id = ? AND document_number = ? AND status = ? AND outstanding = ?",
			tenantID, documentNumber, billing.ReceivableStatusOpen, outstanding.Amount()).
		Count(&count).Error; err != nil {
		return false, err
	}
	return count > 0, nil
}

// Ensure GormReceivableRepository implements ReceivableRepository
var _ billing.ReceivableRepository = (*GormReceivableRepository)(nil)
