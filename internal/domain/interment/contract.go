package interment

import (
	"time"

	"github.com/camposanto/backend/internal/domain/shared"
	"github.com/google/uuid"
)

// ConcessionContract grants a party the right to use a specific plot. Exactly
// one contract may exist per plot; the lifecycle engine rejects a second.
// Every burial, exhumation or transfer into a plot requires its contract.
type ConcessionContract struct {
	shared.TenantAggregateRoot
	PlotID          uuid.UUID     `json:"plot_id"`
	ContractNumber  string        `json:"contract_number"`
	GranteeName     string        `json:"grantee_name"`
	GranteeDocument string        `json:"grantee_document"`
	GranteeAddress  string        `json:"grantee_address"`
	ContractDate    time.Time     `json:"contract_date"`
	Charge          ServiceCharge `json:"charge"`
}

// NewConcessionContract creates a contract for the given plot. The contract
// number must already have been issued by the sequence generator.
func NewConcessionContract(
	tenantID, plotID uuid.UUID,
	contractNumber, granteeName, granteeDocument string,
	contractDate time.Time,
	charge ServiceCharge,
) (*ConcessionContract, error) {
	if plotID == uuid.Nil {
		return nil, shared.NewValidationError("plot_id", "contract plot cannot be empty")
	}
	if contractNumber == "" {
		return nil, shared.NewValidationError("contract_number", "contract number must be issued before creation")
	}
	if granteeName == "" {
		return nil, shared.NewValidationError("grantee_name", "grantee name cannot be empty")
	}
	normalized, err := charge.normalize()
	if err != nil {
		return nil, err
	}
	return &ConcessionContract{
		TenantAggregateRoot: shared.NewTenantAggregateRoot(tenantID),
		PlotID:              plotID,
		ContractNumber:      contractNumber,
		GranteeName:         granteeName,
		GranteeDocument:     granteeDocument,
		ContractDate:        contractDate,
		Charge:              normalized,
	}, nil
}
