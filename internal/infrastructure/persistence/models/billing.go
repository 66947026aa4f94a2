package models

import (
	"time"

	"github.com/camposanto/backend/internal/domain/billing"
	"github.com/google/uuid"
	"github.com/shopspring/decimal"
)

// ReceivableModel is the persistence model for the Receivable aggregate root.
type ReceivableModel struct {
	TenantAggregateModel
	DocumentNumber    string                   `gorm:"type:varchar(50);not null;index"`
	SourceKind        billing.SourceKind       `gorm:"type:varchar(20);not null;index"`
	SourceID          uuid.UUID                `gorm:"type:uuid;not null;index"`
	Description       string                   `gorm:"type:varchar(300)"`
	PayerName         string                   `gorm:"type:varchar(200)"`
	PayerDocument     string                   `gorm:"type:varchar(30)"`
	ValueTotal        decimal.Decimal          `gorm:"type:decimal(18,4);not null"`
	Discount          decimal.Decimal          `gorm:"type:decimal(18,4);not null"`
	PaidValue         decimal.Decimal          `gorm:"type:decimal(18,4);not null"`
	Fine              decimal.Decimal          `gorm:"type:decimal(18,4);not null"`
	Interest          decimal.Decimal          `gorm:"type:decimal(18,4);not null"`
	DailyPenalty      decimal.Decimal          `gorm:"type:decimal(18,4);not null"`
	Outstanding       decimal.Decimal          `gorm:"type:decimal(18,4);not null;index"`
	DueDate           time.Time                `gorm:"not null;index"`
	PaymentDate       *time.Time
	Status            billing.ReceivableStatus `gorm:"type:varchar(20);not null;default:'OPEN';index"`
	InstallmentNumber int                      `gorm:"not null;default:0"`
	InstallmentCount  int                      `gorm:"not null;default:0"`
}

// TableName returns the table name for GORM
func (ReceivableModel) TableName() string {
	return "receivables"
}

// ToDomain converts the persistence model to a domain Receivable entity.
func (m *ReceivableModel) ToDomain() *billing.Receivable {
	return &billing.Receivable{
		TenantAggregateRoot: m.ToDomainTenantAggregateRoot(),
		DocumentNumber:      m.DocumentNumber,
		SourceKind:          m.SourceKind,
		SourceID:            m.SourceID,
		Description:         m.Description,
		PayerName:           m.PayerName,
		PayerDocument:       m.PayerDocument,
		ValueTotal:          m.ValueTotal,
		Discount:            m.Discount,
		PaidValue:           m.PaidValue,
		Fine:                m.Fine,
		Interest:            m.Interest,
		DailyPenalty:        m.DailyPenalty,
		Outstanding:         m.Outstanding,
		DueDate:             m.DueDate,
		PaymentDate:         m.PaymentDate,
		Status:              m.Status,
		InstallmentNumber:   m.InstallmentNumber,
		InstallmentCount:    m.InstallmentCount,
	}
}

// FromDomain populates the persistence model from a domain Receivable entity.
func (m *ReceivableModel) FromDomain(r *billing.Receivable) {
	m.FromDomainTenantAggregateRoot(r.TenantAggregateRoot)
	m.DocumentNumber = r.DocumentNumber
	m.SourceKind = r.SourceKind
	m.SourceID = r.SourceID
	m.Description = r.Description
	m.PayerName = r.PayerName
	m.PayerDocument = r.PayerDocument
	m.ValueTotal = r.ValueTotal
	m.Discount = r.Discount
	m.PaidValue = r.PaidValue
	m.Fine = r.Fine
	m.Interest = r.Interest
	m.DailyPenalty = r.DailyPenalty
	m.Outstanding = r.Outstanding
	m.DueDate = r.DueDate
	m.PaymentDate = r.PaymentDate
	m.Status = r.Status
	m.InstallmentNumber = r.InstallmentNumber
	m.InstallmentCount = r.InstallmentCount
}

// ReceivableModelFromDomain creates a new persistence model from a domain Receivable.
func ReceivableModelFromDomain(r *billing.Receivable) *ReceivableModel {
	m := &ReceivableModel{}
	m.FromDomain(r)
	return m
}
