package models

import (
	"time"

	"github.com/camposanto/backend/internal/domain/billing"
	"github.com/camposanto/backend/internal/domain/interment"
	"github.com/google/uuid"
	"github.com/shopspring/decimal"
)

// ChargeColumns flattens a ServiceCharge into persistence columns. Embedded
// with a prefix by every priced service model.
type ChargeColumns struct {
	Mode         billing.PaymentMode `gorm:"type:varchar(20);not null"`
	Value        decimal.Decimal     `gorm:"type:decimal(18,4);not null"`
	Installments int                 `gorm:"not null;default:0"`
}

// ToDomain converts the columns to a domain ServiceCharge.
func (c ChargeColumns) ToDomain() interment.ServiceCharge {
	return interment.ServiceCharge{
		Mode:         c.Mode,
		Value:        c.Value,
		Installments: c.Installments,
	}
}

// chargeColumnsFromDomain flattens a domain ServiceCharge.
func chargeColumnsFromDomain(charge interment.ServiceCharge) ChargeColumns {
	return ChargeColumns{
		Mode:         charge.Mode,
		Value:        charge.Value,
		Installments: charge.Installments,
	}
}

// BurialModel is the persistence model for the Burial aggregate root.
type BurialModel struct {
	TenantAggregateModel
	PlotID         *uuid.UUID    `gorm:"type:uuid;index"`
	BurialNumber   string        `gorm:"type:varchar(50);not null;index"`
	DeceasedName   string        `gorm:"type:varchar(200);not null"`
	MotherName     string        `gorm:"type:varchar(200)"`
	DeathDate      time.Time     `gorm:"not null"`
	BurialDate     time.Time     `gorm:"not null;index"`
	DeathCause     string        `gorm:"type:varchar(300)"`
	Charge         ChargeColumns `gorm:"embedded;embeddedPrefix:charge_"`
	Exhumed        bool          `gorm:"not null;default:false;index"`
	ExhumationDate *time.Time
	Transferred    bool `gorm:"not null;default:false"`
	TransferDate   *time.Time
}

// TableName returns the table name for GORM
func (BurialModel) TableName() string {
	return "burials"
}

// ToDomain converts the persistence model to a domain Burial entity.
func (m *BurialModel) ToDomain() *interment.Burial {
	return &interment.Burial{
		TenantAggregateRoot: m.ToDomainTenantAggregateRoot(),
		PlotID:              m.PlotID,
		BurialNumber:        m.BurialNumber,
		DeceasedName:        m.DeceasedName,
		MotherName:          m.MotherName,
		DeathDate:           m.DeathDate,
		BurialDate:          m.BurialDate,
		DeathCause:          m.DeathCause,
		Charge:              m.Charge.ToDomain(),
		Exhumed:             m.Exhumed,
		ExhumationDate:      m.ExhumationDate,
		Transferred:         m.Transferred,
		TransferDate:        m.TransferDate,
	}
}

// FromDomain populates the persistence model from a domain Burial entity.
func (m *BurialModel) FromDomain(b *interment.Burial) {
	m.FromDomainTenantAggregateRoot(b.TenantAggregateRoot)
	m.PlotID = b.PlotID
	m.BurialNumber = b.BurialNumber
	m.DeceasedName = b.DeceasedName
	m.MotherName = b.MotherName
	m.DeathDate = b.DeathDate
	m.BurialDate = b.BurialDate
	m.DeathCause = b.DeathCause
	m.Charge = chargeColumnsFromDomain(b.Charge)
	m.Exhumed = b.Exhumed
	m.ExhumationDate = b.ExhumationDate
	m.Transferred = b.Transferred
	m.TransferDate = b.TransferDate
}

// BurialModelFromDomain creates a new persistence model from a domain Burial.
func BurialModelFromDomain(b *interment.Burial) *BurialModel {
	m := &BurialModel{}
	m.FromDomain(b)
	return m
}

// ConcessionContractModel is the persistence model for the ConcessionContract aggregate root.
type ConcessionContractModel struct {
	TenantAggregateModel
	PlotID          uuid.UUID     `gorm:"type:uuid;not null;index"`
	ContractNumber  string        `gorm:"type:varchar(50);not null;index"`
	GranteeName     string        `gorm:"type:varchar(200);not null"`
	GranteeDocument string        `gorm:"type:varchar(30)"`
	GranteeAddress  string        `gorm:"type:varchar(300)"`
	ContractDate    time.Time     `gorm:"not null"`
	Charge          ChargeColumns `gorm:"embedded;embeddedPrefix:charge_"`
}

// TableName returns the table name for GORM
func (ConcessionContractModel) TableName() string {
	return "concession_contracts"
}

// ToDomain converts the persistence model to a domain ConcessionContract entity.
func (m *ConcessionContractModel) ToDomain() *interment.ConcessionContract {
	return &interment.ConcessionContract{
		TenantAggregateRoot: m.ToDomainTenantAggregateRoot(),
		PlotID:              m.PlotID,
		ContractNumber:      m.ContractNumber,
		GranteeName:         m.GranteeName,
		GranteeDocument:     m.GranteeDocument,
		GranteeAddress:      m.GranteeAddress,
		ContractDate:        m.ContractDate,
		Charge:              m.Charge.ToDomain(),
	}
}

// FromDomain populates the persistence model from a domain ConcessionContract entity.
func (m *ConcessionContractModel) FromDomain(c *interment.ConcessionContract) {
	m.FromDomainTenantAggregateRoot(c.TenantAggregateRoot)
	m.PlotID = c.PlotID
	m.ContractNumber = c.ContractNumber
	m.GranteeName = c.GranteeName
	m.GranteeDocument = c.GranteeDocument
	m.GranteeAddress = c.GranteeAddress
	m.ContractDate = c.ContractDate
	m.Charge = chargeColumnsFromDomain(c.Charge)
}

// ConcessionContractModelFromDomain creates a new persistence model from a domain ConcessionContract.
func ConcessionContractModelFromDomain(c *interment.ConcessionContract) *ConcessionContractModel {
	m := &ConcessionContractModel{}
	m.FromDomain(c)
	return m
}

// ExhumationModel is the persistence model for the Exhumation aggregate root.
type ExhumationModel struct {
	TenantAggregateModel
	BurialID       uuid.UUID     `gorm:"type:uuid;not null;index"`
	PlotID         *uuid.UUID    `gorm:"type:uuid;index"`
	DocumentNumber string        `gorm:"type:varchar(50);not null;index"`
	Date           time.Time     `gorm:"not null;index"`
	Reason         string        `gorm:"type:varchar(300)"`
	RequesterName  string        `gorm:"type:varchar(200)"`
	Charge         ChargeColumns `gorm:"embedded;embeddedPrefix:charge_"`
}

// TableName returns the table name for GORM
func (ExhumationModel) TableName() string {
	return "exhumations"
}

// ToDomain converts the persistence model to a domain Exhumation entity.
func (m *ExhumationModel) ToDomain() *interment.Exhumation {
	return &interment.Exhumation{
		TenantAggregateRoot: m.ToDomainTenantAggregateRoot(),
		BurialID:            m.BurialID,
		PlotID:              m.PlotID,
		DocumentNumber:      m.DocumentNumber,
		Date:                m.Date,
		Reason:              m.Reason,
		RequesterName:       m.RequesterName,
		Charge:              m.Charge.ToDomain(),
	}
}

// FromDomain populates the persistence model from a domain Exhumation entity.
func (m *ExhumationModel) FromDomain(e *interment.Exhumation) {
	m.FromDomainTenantAggregateRoot(e.TenantAggregateRoot)
	m.BurialID = e.BurialID
	m.PlotID = e.PlotID
	m.DocumentNumber = e.DocumentNumber
	m.Date = e.Date
	m.Reason = e.Reason
	m.RequesterName = e.RequesterName
	m.Charge = chargeColumnsFromDomain(e.Charge)
}

// ExhumationModelFromDomain creates a new persistence model from a domain Exhumation.
func ExhumationModelFromDomain(e *interment.Exhumation) *ExhumationModel {
	m := &ExhumationModel{}
	m.FromDomain(e)
	return m
}

// TransferModel is the persistence model for the Transfer aggregate root.
type TransferModel struct {
	TenantAggregateModel
	BurialID            uuid.UUID                 `gorm:"type:uuid;not null;index"`
	DocumentNumber      string                    `gorm:"type:varchar(50);not null;index"`
	Date                time.Time                 `gorm:"not null"`
	DestinationKind     interment.DestinationKind `gorm:"type:varchar(30);not null"`
	DestinationPlotID   *uuid.UUID                `gorm:"type:uuid;index"`
	DestinationCemetery string                    `gorm:"type:varchar(200)"`
	OssuaryReference    string                    `gorm:"type:varchar(100)"`
	Charge              ChargeColumns             `gorm:"embedded;embeddedPrefix:charge_"`
}

// TableName returns the table name for GORM
func (TransferModel) TableName() string {
	return "transfers"
}

// ToDomain converts the persistence model to a domain Transfer entity.
func (m *TransferModel) ToDomain() *interment.Transfer {
	return &interment.Transfer{
		TenantAggregateRoot: m.ToDomainTenantAggregateRoot(),
		BurialID:            m.BurialID,
		DocumentNumber:      m.DocumentNumber,
		Date:                m.Date,
		DestinationKind:     m.DestinationKind,
		DestinationPlotID:   m.DestinationPlotID,
		DestinationCemetery: m.DestinationCemetery,
		OssuaryReference:    m.OssuaryReference,
		Charge:              m.Charge.ToDomain(),
	}
}

// FromDomain populates the persistence model from a domain Transfer entity.
func (m *TransferModel) FromDomain(t *interment.Transfer) {
	m.FromDomainTenantAggregateRoot(t.TenantAggregateRoot)
	m.BurialID = t.BurialID
	m.DocumentNumber = t.DocumentNumber
	m.Date = t.Date
	m.DestinationKind = t.DestinationKind
	m.DestinationPlotID = t.DestinationPlotID
	m.DestinationCemetery = t.DestinationCemetery
	m.OssuaryReference = t.OssuaryReference
	m.Charge = chargeColumnsFromDomain(t.Charge)
}

// TransferModelFromDomain creates a new persistence model from a domain Transfer.
func TransferModelFromDomain(t *interment.Transfer) *TransferModel {
	m := &TransferModel{}
	m.FromDomain(t)
	return m
}
