package models

import (
	"github.com/camposanto/backend/internal/domain/shared"
	"github.com/camposanto/backend/internal/domain/tenancy"
	"github.com/google/uuid"
	"github.com/shopspring/decimal"
)

// TenantModel is the persistence model for the Tenant aggregate root.
// Penalty rates are flattened into dedicated decimal columns.
type TenantModel struct {
	AggregateModel
	Name             string          `gorm:"type:varchar(200);not null"`
	LegalName        string          `gorm:"type:varchar(200)"`
	Document         string          `gorm:"type:varchar(30)"`
	OwnerUserID      uuid.UUID       `gorm:"type:uuid;not null"`
	FinePercent      decimal.Decimal `gorm:"type:decimal(18,4);not null"`
	InterestPercent  decimal.Decimal `gorm:"type:decimal(18,4);not null"`
	DailyPenaltyRate decimal.Decimal `gorm:"type:decimal(18,4);not null"`
	Active           bool            `gorm:"not null;default:true"`
}

// TableName returns the table name for GORM
func (TenantModel) TableName() string {
	return "tenants"
}

// ToDomain converts the persistence model to a domain Tenant entity.
func (m *TenantModel) ToDomain() *tenancy.Tenant {
	return &tenancy.Tenant{
		BaseAggregateRoot: m.ToDomainAggregateRoot(),
		Name:              m.Name,
		LegalName:         m.LegalName,
		Document:          m.Document,
		OwnerUserID:       m.OwnerUserID,
		PenaltyRates: tenancy.PenaltyRates{
			FinePercent:      m.FinePercent,
			InterestPercent:  m.InterestPercent,
			DailyPenaltyRate: m.DailyPenaltyRate,
		},
		Active: m.Active,
	}
}

// FromDomain populates the persistence model from a domain Tenant entity.
func (m *TenantModel) FromDomain(t *tenancy.Tenant) {
	m.FromDomainAggregateRoot(t.BaseAggregateRoot)
	m.Name = t.Name
	m.LegalName = t.LegalName
	m.Document = t.Document
	m.OwnerUserID = t.OwnerUserID
	m.FinePercent = t.PenaltyRates.FinePercent
	m.InterestPercent = t.PenaltyRates.InterestPercent
	m.DailyPenaltyRate = t.PenaltyRates.DailyPenaltyRate
	m.Active = t.Active
}

// TenantModelFromDomain creates a new persistence model from a domain Tenant.
func TenantModelFromDomain(t *tenancy.Tenant) *TenantModel {
	m := &TenantModel{}
	m.FromDomain(t)
	return m
}

// UserModel is the persistence model for the User aggregate root.
type UserModel struct {
	AggregateModel
	TenantID uuid.UUID `gorm:"type:uuid;not null;index"`
	Name     string    `gorm:"type:varchar(200);not null"`
	Email    string    `gorm:"type:varchar(200);not null;uniqueIndex"`
	Master   bool      `gorm:"not null;default:false"`
	Active   bool      `gorm:"not null;default:true"`
}

// TableName returns the table name for GORM
func (UserModel) TableName() string {
	return "users"
}

// ToDomain converts the persistence model to a domain User entity.
func (m *UserModel) ToDomain() *tenancy.User {
	return &tenancy.User{
		BaseAggregateRoot: shared.BaseAggregateRoot{
			BaseEntity: m.BaseModel.ToDomain(),
			Version:    m.Version,
		},
		TenantID: m.TenantID,
		Name:     m.Name,
		Email:    m.Email,
		Master:   m.Master,
		Active:   m.Active,
	}
}

// FromDomain populates the persistence model from a domain User entity.
func (m *UserModel) FromDomain(u *tenancy.User) {
	m.FromDomainAggregateRoot(u.BaseAggregateRoot)
	m.TenantID = u.TenantID
	m.Name = u.Name
	m.Email = u.Email
	m.Master = u.Master
	m.Active = u.Active
}

// UserModelFromDomain creates a new persistence model from a domain User.
func UserModelFromDomain(u *tenancy.User) *UserModel {
	m := &UserModel{}
	m.FromDomain(u)
	return m
}
