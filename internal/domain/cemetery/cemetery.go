// Package cemetery holds the physical registry: cemeteries, their blocks
// (quadras) and plots (tumulos). Plot occupancy status is derived, never set
// by users; the lifecycle engine recomputes it after every transition that
// touches a plot's active burial set.
package cemetery

import (
	"github.com/camposanto/backend/internal/domain/shared"
	"github.com/google/uuid"
)

// Cemetery belongs to one tenant. MinExhumationPeriodMonths governs when
// remains may be exhumed or a full plot may accept a new burial.
type Cemetery struct {
	shared.TenantAggregateRoot
	Name                      string `json:"name"`
	Address                   string `json:"address"`
	City                      string `json:"city"`
	State                     string `json:"state"`
	MinExhumationPeriodMonths int    `json:"min_exhumation_period_months"`
}

// NewCemetery creates a cemetery under the given tenant.
func NewCemetery(tenantID uuid.UUID, name string, minExhumationPeriodMonths int) (*Cemetery, error) {
	if tenantID == uuid.Nil {
		return nil, shared.NewValidationError("tenant_id", "cemetery tenant cannot be empty")
	}
	if name == "" {
		return nil, shared.NewValidationError("name", "cemetery name cannot be empty")
	}
	if minExhumationPeriodMonths < 0 {
		return nil, shared.NewValidationError("min_exhumation_period_months", "minimum exhumation period cannot be negative")
	}
	return &Cemetery{
		TenantAggregateRoot:       shared.NewTenantAggregateRoot(tenantID),
		Name:                      name,
		MinExhumationPeriodMonths: minExhumationPeriodMonths,
	}, nil
}

// Rename updates the cemetery name.
func (c *Cemetery) Rename(name string) error {
	if name == "" {
		return shared.NewValidationError("name", "cemetery name cannot be empty")
	}
	c.Name = name
	c.Touch()
	c.IncrementVersion()
	return nil
}

// SetMinExhumationPeriod updates the dormancy requirement in months.
func (c *Cemetery) SetMinExhumationPeriod(months int) error {
	if months < 0 {
		return shared.NewValidationError("min_exhumation_period_months", "minimum exhumation period cannot be negative")
	}
	c.MinExhumationPeriodMonths = months
	c.Touch()
	c.IncrementVersion()
	return nil
}
