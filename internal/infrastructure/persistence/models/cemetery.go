package models

import (
	"github.com/camposanto/backend/internal/domain/cemetery"
	"github.com/google/uuid"
)

// CemeteryModel is the persistence model for the Cemetery aggregate root.
type CemeteryModel struct {
	TenantAggregateModel
	Name                      string `gorm:"type:varchar(200);not null"`
	Address                   string `gorm:"type:varchar(300)"`
	City                      string `gorm:"type:varchar(120)"`
	State                     string `gorm:"type:varchar(50)"`
	MinExhumationPeriodMonths int    `gorm:"not null;default:0"`
}

// TableName returns the table name for GORM
func (CemeteryModel) TableName() string {
	return "cemeteries"
}

// ToDomain converts the persistence model to a domain Cemetery entity.
func (m *CemeteryModel) ToDomain() *cemetery.Cemetery {
	return &cemetery.Cemetery{
		TenantAggregateRoot:       m.ToDomainTenantAggregateRoot(),
		Name:                      m.Name,
		Address:                   m.Address,
		City:                      m.City,
		State:                     m.State,
		MinExhumationPeriodMonths: m.MinExhumationPeriodMonths,
	}
}

// FromDomain populates the persistence model from a domain Cemetery entity.
func (m *CemeteryModel) FromDomain(c *cemetery.Cemetery) {
	m.FromDomainTenantAggregateRoot(c.TenantAggregateRoot)
	m.Name = c.Name
	m.Address = c.Address
	m.City = c.City
	m.State = c.State
	m.MinExhumationPeriodMonths = c.MinExhumationPeriodMonths
}

// CemeteryModelFromDomain creates a new persistence model from a domain Cemetery.
func CemeteryModelFromDomain(c *cemetery.Cemetery) *CemeteryModel {
	m := &CemeteryModel{}
	m.FromDomain(c)
	return m
}

// BlockModel is the persistence model for the Block aggregate root.
type BlockModel struct {
	TenantAggregateModel
	CemeteryID  uuid.UUID `gorm:"type:uuid;not null;index"`
	Name        string    `gorm:"type:varchar(100);not null"`
	Description string    `gorm:"type:text"`
}

// TableName returns the table name for GORM
func (BlockModel) TableName() string {
	return "blocks"
}

// ToDomain converts the persistence model to a domain Block entity.
func (m *BlockModel) ToDomain() *cemetery.Block {
	return &cemetery.Block{
		TenantAggregateRoot: m.ToDomainTenantAggregateRoot(),
		CemeteryID:          m.CemeteryID,
		Name:                m.Name,
		Description:         m.Description,
	}
}

// FromDomain populates the persistence model from a domain Block entity.
func (m *BlockModel) FromDomain(b *cemetery.Block) {
	m.FromDomainTenantAggregateRoot(b.TenantAggregateRoot)
	m.CemeteryID = b.CemeteryID
	m.Name = b.Name
	m.Description = b.Description
}

// BlockModelFromDomain creates a new persistence model from a domain Block.
func BlockModelFromDomain(b *cemetery.Block) *BlockModel {
	m := &BlockModel{}
	m.FromDomain(b)
	return m
}

// PlotModel is the persistence model for the Plot aggregate root.
type PlotModel struct {
	TenantAggregateModel
	BlockID        uuid.UUID           `gorm:"type:uuid;not null;uniqueIndex:idx_plot_block_identifier,priority:1"`
	Identifier     string              `gorm:"type:varchar(50);not null;uniqueIndex:idx_plot_block_identifier,priority:2"`
	Capacity       int                 `gorm:"not null;default:1"`
	Reserved       bool                `gorm:"not null;default:false"`
	ReservedReason string              `gorm:"type:varchar(300)"`
	Status         cemetery.PlotStatus `gorm:"type:varchar(20);not null;default:'AVAILABLE';index"`
}

// TableName returns the table name for GORM
func (PlotModel) TableName() string {
	return "plots"
}

// ToDomain converts the persistence model to a domain Plot entity.
func (m *PlotModel) ToDomain() *cemetery.Plot {
	return &cemetery.Plot{
		TenantAggregateRoot: m.ToDomainTenantAggregateRoot(),
		BlockID:             m.BlockID,
		Identifier:          m.Identifier,
		Capacity:            m.Capacity,
		Reserved:            m.Reserved,
		ReservedReason:      m.ReservedReason,
		Status:              m.Status,
	}
}

// FromDomain populates the persistence model from a domain Plot entity.
func (m *PlotModel) FromDomain(p *cemetery.Plot) {
	m.FromDomainTenantAggregateRoot(p.TenantAggregateRoot)
	m.BlockID = p.BlockID
	m.Identifier = p.Identifier
	m.Capacity = p.Capacity
	m.Reserved = p.Reserved
	m.ReservedReason = p.ReservedReason
	m.Status = p.Status
}

// PlotModelFromDomain creates a new persistence model from a domain Plot.
func PlotModelFromDomain(p *cemetery.Plot) *PlotModel {
	m := &PlotModel{}
	m.FromDomain(p)
	return m
}
