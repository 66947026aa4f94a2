package tenancy

import (
	"github.com/camposanto/backend/internal/domain/shared"
	"github.com/google/uuid"
	"github.com/shopspring/decimal"
)

// PenaltyRates holds the tenant-configured late-payment parameters applied by
// the receivable ledger once a receivable goes past its due date.
type PenaltyRates struct {
	FinePercent      decimal.Decimal `json:"fine_percent"`       // one-off fine, % of total
	InterestPercent  decimal.Decimal `json:"interest_percent"`   // one-off interest, % of total
	DailyPenaltyRate decimal.Decimal `json:"daily_penalty_rate"` // flat amount per day overdue
}

// ZeroPenaltyRates returns rates that charge nothing.
func ZeroPenaltyRates() PenaltyRates {
	return PenaltyRates{
		FinePercent:      decimal.Zero,
		InterestPercent:  decimal.Zero,
		DailyPenaltyRate: decimal.Zero,
	}
}

// Tenant represents a municipality (prefeitura) account, the top-level data
// isolation boundary. It owns cemeteries, users, receivables and audit records.
type Tenant struct {
	shared.BaseAggregateRoot
	Name         string       `json:"name"`
	LegalName    string       `json:"legal_name"`
	Document     string       `json:"document"` // CNPJ
	OwnerUserID  uuid.UUID    `json:"owner_user_id"`
	PenaltyRates PenaltyRates `json:"penalty_rates"`
	Active       bool         `json:"active"`
}

// NewTenant creates a new tenant owned by the given master user.
func NewTenant(name, legalName, document string, ownerUserID uuid.UUID) (*Tenant, error) {
	if name == "" {
		return nil, shared.NewValidationError("name", "tenant name cannot be empty")
	}
	if ownerUserID == uuid.Nil {
		return nil, shared.NewValidationError("owner_user_id", "tenant owner cannot be empty")
	}
	return &Tenant{
		BaseAggregateRoot: shared.NewBaseAggregateRoot(),
		Name:              name,
		LegalName:         legalName,
		Document:          document,
		OwnerUserID:       ownerUserID,
		PenaltyRates:      ZeroPenaltyRates(),
		Active:            true,
	}, nil
}

// OwnerTenantID returns the tenant's own ID. The tenant is the root of its
// scope, so audit records it triggers attribute to itself.
func (t *Tenant) OwnerTenantID() uuid.UUID {
	return t.ID
}

// ConfigurePenaltyRates replaces the late-payment parameters.
func (t *Tenant) ConfigurePenaltyRates(rates PenaltyRates) error {
	if rates.FinePercent.IsNegative() || rates.InterestPercent.IsNegative() || rates.DailyPenaltyRate.IsNegative() {
		return shared.NewValidationError("penalty_rates", "penalty rates cannot be negative")
	}
	t.PenaltyRates = rates
	t.Touch()
	t.IncrementVersion()
	return nil
}

// Deactivate disables the tenant without removing its records.
func (t *Tenant) Deactivate() {
	t.Active = false
	t.Touch()
	t.IncrementVersion()
}

// Ensure tenants can be attributed by the audit recorder
var _ shared.TenantScoped = (*Tenant)(nil)
