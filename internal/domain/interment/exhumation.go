package interment

import (
	"time"

	"github.com/camposanto/backend/internal/domain/shared"
	"github.com/google/uuid"
)

// Exhumation records the removal of remains from a plot after the minimum
// dormancy period. The burial reference is protected: a burial cannot be
// deleted while an exhumation references it.
type Exhumation struct {
	shared.TenantAggregateRoot
	BurialID       uuid.UUID     `json:"burial_id"`
	PlotID         *uuid.UUID    `json:"plot_id"` // origin plot
	DocumentNumber string        `json:"document_number"`
	Date           time.Time     `json:"date"`
	Reason         string        `json:"reason"`
	RequesterName  string        `json:"requester_name"`
	Charge         ServiceCharge `json:"charge"`
}

// NewExhumation creates an exhumation of the given burial. Eligibility
// (minimum period, contract presence, not already exhumed) is validated by
// the lifecycle engine before commit.
func NewExhumation(
	tenantID, burialID uuid.UUID,
	originPlotID *uuid.UUID,
	documentNumber string,
	date time.Time,
	charge ServiceCharge,
) (*Exhumation, error) {
	if burialID == uuid.Nil {
		return nil, shared.NewValidationError("burial_id", "exhumation burial cannot be empty")
	}
	if documentNumber == "" {
		return nil, shared.NewValidationError("document_number", "document number must be issued before creation")
	}
	normalized, err := charge.normalize()
	if err != nil {
		return nil, err
	}
	return &Exhumation{
		TenantAggregateRoot: shared.NewTenantAggregateRoot(tenantID),
		BurialID:            burialID,
		PlotID:              originPlotID,
		DocumentNumber:      documentNumber,
		Date:                date,
		Charge:              normalized,
	}, nil
}
