package interment

import (
	"time"

	"github.com/camposanto/backend/internal/domain/shared"
	"github.com/google/uuid"
)

// DestinationKind is where a transfer relocates exhumed remains.
type DestinationKind string

const (
	DestinationPlot             DestinationKind = "PLOT"
	DestinationExternalCemetery DestinationKind = "EXTERNAL_CEMETERY"
	DestinationOssuary          DestinationKind = "OSSUARY"
)

// IsValid checks if the destination kind is valid
func (k DestinationKind) IsValid() bool {
	switch k {
	case DestinationPlot, DestinationExternalCemetery, DestinationOssuary:
		return true
	}
	return false
}

// String returns the string representation of DestinationKind
func (k DestinationKind) String() string {
	return string(k)
}

// Transfer (translado) relocates exhumed remains to another plot, an external
// cemetery or an ossuary. At most one transfer exists per burial. The
// original burial keeps its origin plot reference; for plot destinations a
// clone of the burial occupies the destination.
type Transfer struct {
	shared.TenantAggregateRoot
	BurialID            uuid.UUID       `json:"burial_id"`
	DocumentNumber      string          `json:"document_number"`
	Date                time.Time       `json:"date"`
	DestinationKind     DestinationKind `json:"destination_kind"`
	DestinationPlotID   *uuid.UUID      `json:"destination_plot_id"`
	DestinationCemetery string          `json:"destination_cemetery"`
	OssuaryReference    string          `json:"ossuary_reference"`
	Charge              ServiceCharge   `json:"charge"`
}

// NewTransfer creates a transfer of the given burial. Destination-specific
// eligibility (contract, capacity) is validated by the lifecycle engine.
func NewTransfer(
	tenantID, burialID uuid.UUID,
	documentNumber string,
	date time.Time,
	kind DestinationKind,
	destinationPlotID *uuid.UUID,
	destinationCemetery, ossuaryReference string,
	charge ServiceCharge,
) (*Transfer, error) {
	if burialID == uuid.Nil {
		return nil, shared.NewValidationError("burial_id", "transfer burial cannot be empty")
	}
	if documentNumber == "" {
		return nil, shared.NewValidationError("document_number", "document number must be issued before creation")
	}
	if !kind.IsValid() {
		return nil, shared.NewValidationError("destination_kind", "unknown transfer destination kind")
	}
	switch kind {
	case DestinationPlot:
		if destinationPlotID == nil || *destinationPlotID == uuid.Nil {
			return nil, shared.NewValidationError("destination_plot_id", "plot destination requires a destination plot")
		}
	case DestinationExternalCemetery:
		if destinationCemetery == "" {
			return nil, shared.NewValidationError("destination_cemetery", "external destination requires a cemetery name")
		}
		destinationPlotID = nil
	case DestinationOssuary:
		if ossuaryReference == "" {
			return nil, shared.NewValidationError("ossuary_reference", "ossuary destination requires a reference")
		}
		destinationPlotID = nil
	}
	normalized, err := charge.normalize()
	if err != nil {
		return nil, err
	}
	return &Transfer{
		TenantAggregateRoot: shared.NewTenantAggregateRoot(tenantID),
		BurialID:            burialID,
		DocumentNumber:      documentNumber,
		Date:                date,
		DestinationKind:     kind,
		DestinationPlotID:   destinationPlotID,
		DestinationCemetery: destinationCemetery,
		OssuaryReference:    ossuaryReference,
		Charge:              normalized,
	}, nil
}

// IsPlotDestination reports whether the transfer targets another plot of the
// same system.
func (t *Transfer) IsPlotDestination() bool {
	return t.DestinationKind == DestinationPlot
}
