package models

import (
	"github.com/camposanto/backend/internal/domain/numbering"
	"github.com/google/uuid"
)

// SequenceCounterModel is the persistence model for issued document numbers.
// The unique index over (tenant_id, year, number) is the hard guarantee
// against duplicate numbers; allocation additionally locks the counter rows.
type SequenceCounterModel struct {
	BaseModel
	TenantID uuid.UUID `gorm:"type:uuid;not null;uniqueIndex:idx_sequence_tenant_year_number,priority:1"`
	Year     int       `gorm:"not null;uniqueIndex:idx_sequence_tenant_year_number,priority:2"`
	Number   int64     `gorm:"not null;uniqueIndex:idx_sequence_tenant_year_number,priority:3"`
}

// TableName returns the table name for GORM
func (SequenceCounterModel) TableName() string {
	return "sequence_counters"
}

// ToDomain converts the persistence model to a domain SequenceCounter entity.
func (m *SequenceCounterModel) ToDomain() *numbering.SequenceCounter {
	return &numbering.SequenceCounter{
		BaseEntity: m.BaseModel.ToDomain(),
		TenantID:   m.TenantID,
		Year:       m.Year,
		Number:     m.Number,
	}
}

// FromDomain populates the persistence model from a domain SequenceCounter entity.
func (m *SequenceCounterModel) FromDomain(s *numbering.SequenceCounter) {
	m.FromDomainBaseEntity(s.BaseEntity)
	m.TenantID = s.TenantID
	m.Year = s.Year
	m.Number = s.Number
}

// SequenceCounterModelFromDomain creates a new persistence model from a domain SequenceCounter.
func SequenceCounterModelFromDomain(s *numbering.SequenceCounter) *SequenceCounterModel {
	m := &SequenceCounterModel{}
	m.FromDomain(s)
	return m
}
