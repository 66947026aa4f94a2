package persistence

import (
	"context"

	"github.com/camposanto/backend/internal/domain/audit"
	"github.com/camposanto/backend/internal/domain/shared"
	"github.com/camposanto/backend/internal/infrastructure/persistence/models"
	"github.com/google/uuid"
	"gorm.io/gorm"
)

// GormAuditRecordRepository implements RecordRepository using GORM. The
// trail is append-only: Delete refuses unconditionally.
type GormAuditRecordRepository struct {
	db *gorm.DB
}

// NewGormAuditRecordRepository creates a new GormAuditRecordRepository
func NewGormAuditRecordRepository(db *gorm.DB) *GormAuditRecordRepository {
	return &GormAuditRecordRepository{db: db}
}

// Save appends an audit record
func (r *GormAuditRecordRepository) Save(ctx context.Context, record *audit.Record) error {
	model := models.AuditRecordModelFromDomain(record)
	return r.db.WithContext(ctx).Create(model).Error
}

// ListForTenant lists audit records for a tenant with pagination
func (r *GormAuditRecordRepository) ListForTenant(ctx context.Context, tenantID uuid.UUID, filter shared.Filter) ([]audit.Record, int64, error) {
	query := r.db.WithContext(ctx).Model(&models.AuditRecordModel{}).
		Where("tenant_id = ?", tenantID)
	if filter.Search != "" {
		searchPattern := "%" + filter.Search + "%"
		query = query.Where("entity_name ILIKE ? OR summary ILIKE ?", searchPattern, searchPattern)
	}

	var total int64
	if err := query.Count(&total).Error; err != nil {
		return nil, 0, err
	}

	var recordModels []models.AuditRecordModel
	if err := applyFilter(query, filter).Find(&recordModels).Error; err != nil {
		return nil, 0, err
	}
	records := make([]audit.Record, len(recordModels))
	for i, model := range recordModels {
		records[i] = *model.ToDomain()
	}
	return records, total, nil
}

// Delete always fails: audit records are immutable
func (r *GormAuditRecordRepository) Delete(ctx context.Context, id uuid.UUID) error {
	return shared.ErrImmutableRecord
}

// Ensure GormAuditRecordRepository implements RecordRepository
var _ audit.RecordRepository = (*GormAuditRecordRepository)(nil)
