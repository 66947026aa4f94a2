package cemetery

import (
	"github.com/camposanto/backend/internal/domain/shared"
	"github.com/google/uuid"
)

// PlotStatus is the derived occupancy status of a plot.
type PlotStatus string

const (
	PlotStatusAvailable PlotStatus = "AVAILABLE"
	PlotStatusOccupied  PlotStatus = "OCCUPIED"
	PlotStatusReserved  PlotStatus = "RESERVED"
)

// IsValid checks if the status is a valid PlotStatus
func (s PlotStatus) IsValid() bool {
	switch s {
	case PlotStatusAvailable, PlotStatusOccupied, PlotStatusReserved:
		return true
	}
	return false
}

// String returns the string representation of PlotStatus
func (s PlotStatus) String() string {
	return string(s)
}

// Plot (tumulo) is a physical burial structure with finite capacity.
// Status is a pure function of the reserved flag and the count of active
// burials; it is recomputed by the lifecycle engine and persisted with a
// targeted column update.
type Plot struct {
	shared.TenantAggregateRoot
	BlockID        uuid.UUID  `json:"block_id"`
	Identifier     string     `json:"identifier"`
	Capacity       int        `json:"capacity"`
	Reserved       bool       `json:"reserved"`
	ReservedReason string     `json:"reserved_reason"`
	Status         PlotStatus `json:"status"`
}

// NewPlot creates a plot inside the given block.
func NewPlot(tenantID, blockID uuid.UUID, identifier string, capacity int) (*Plot, error) {
	if blockID == uuid.Nil {
		return nil, shared.NewValidationError("block_id", "plot block cannot be empty")
	}
	if identifier == "" {
		return nil, shared.NewValidationError("identifier", "plot identifier cannot be empty")
	}
	if capacity < 1 {
		return nil, shared.NewValidationError("capacity", "plot capacity must be at least 1")
	}
	return &Plot{
		TenantAggregateRoot: shared.NewTenantAggregateRoot(tenantID),
		BlockID:             blockID,
		Identifier:          identifier,
		Capacity:            capacity,
		Status:              PlotStatusAvailable,
	}, nil
}

// DeriveStatus computes the occupancy status from the reserved flag and the
// number of active burials. Reserved takes precedence; a plot is occupied
// once the active burial count reaches capacity.
func (p *Plot) DeriveStatus(activeBurials int) PlotStatus {
	if p.Reserved {
		return PlotStatusReserved
	}
	if activeBurials >= p.Capacity {
		return PlotStatusOccupied
	}
	return PlotStatusAvailable
}

// Recompute applies DeriveStatus to the plot and reports whether the
// persisted status changed.
func (p *Plot) Recompute(activeBurials int) bool {
	next := p.DeriveStatus(activeBurials)
	if next == p.Status {
		return false
	}
	p.Status = next
	p.Touch()
	return true
}

// Reserve marks the plot as reserved with a reason.
func (p *Plot) Reserve(reason string) {
	p.Reserved = true
	p.ReservedReason = reason
	p.Touch()
	p.IncrementVersion()
}

// ReleaseReservation clears the reserved flag.
func (p *Plot) ReleaseReservation() {
	p.Reserved = false
	p.ReservedReason = ""
	p.Touch()
	p.IncrementVersion()
}

// SetCapacity changes the maximum simultaneous active burials.
func (p *Plot) SetCapacity(capacity int) error {
	if capacity < 1 {
		return shared.NewValidationError("capacity", "plot capacity must be at least 1")
	}
	p.Capacity = capacity
	p.Touch()
	p.IncrementVersion()
	return nil
}

// HasVacancy reports whether an additional active burial fits.
func (p *Plot) HasVacancy(activeBurials int) bool {
	return activeBurials < p.Capacity
}
