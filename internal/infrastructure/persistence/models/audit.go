package models

import (
	"time"

	"github.com/camposanto/backend/internal/domain/audit"
	"github.com/google/uuid"
)

// AuditRecordModel is the persistence model for immutable audit entries.
// There is no delete path; the repository refuses deletion outright.
type AuditRecordModel struct {
	BaseModel
	TenantID   uuid.UUID    `gorm:"type:uuid;not null;index"`
	UserID     *uuid.UUID   `gorm:"type:uuid"`
	Action     audit.Action `gorm:"type:varchar(20);not null"`
	EntityName string       `gorm:"type:varchar(100);not null;index"`
	EntityID   string       `gorm:"type:varchar(64)"`
	Summary    string       `gorm:"type:text"`
	OccurredAt time.Time    `gorm:"not null;index"`
}

// TableName returns the table name for GORM
func (AuditRecordModel) TableName() string {
	return "audit_records"
}

// ToDomain converts the persistence model to a domain audit Record.
func (m *AuditRecordModel) ToDomain() *audit.Record {
	return &audit.Record{
		BaseEntity: m.BaseModel.ToDomain(),
		TenantID:   m.TenantID,
		UserID:     m.UserID,
		Action:     m.Action,
		EntityName: m.EntityName,
		EntityID:   m.EntityID,
		Summary:    m.Summary,
		OccurredAt: m.OccurredAt,
	}
}

// FromDomain populates the persistence model from a domain audit Record.
func (m *AuditRecordModel) FromDomain(r *audit.Record) {
	m.FromDomainBaseEntity(r.BaseEntity)
	m.TenantID = r.TenantID
	m.UserID = r.UserID
	m.Action = r.Action
	m.EntityName = r.EntityName
	m.EntityID = r.EntityID
	m.Summary = r.Summary
	m.OccurredAt = r.OccurredAt
}

// AuditRecordModelFromDomain creates a new persistence model from a domain audit Record.
func AuditRecordModelFromDomain(r *audit.Record) *AuditRecordModel {
	m := &AuditRecordModel{}
	m.FromDomain(r)
	return m
}
