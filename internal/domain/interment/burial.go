package interment

import (
	"time"

	"github.com/camposanto/backend/internal/domain/shared"
	"github.com/google/uuid"
)

// Burial (sepultado) records remains interred in a plot. The burial number is
// issued once, at creation, by the sequence generator. A burial is active
// while it is neither exhumed nor transferred; only active burials count
// against plot capacity.
type Burial struct {
	shared.TenantAggregateRoot
	PlotID         *uuid.UUID    `json:"plot_id"`
	BurialNumber   string        `json:"burial_number"`
	DeceasedName   string        `json:"deceased_name"`
	MotherName     string        `json:"mother_name"`
	DeathDate      time.Time     `json:"death_date"`
	BurialDate     time.Time     `json:"burial_date"`
	DeathCause     string        `json:"death_cause"`
	Charge         ServiceCharge `json:"charge"`
	Exhumed        bool          `json:"exhumed"`
	ExhumationDate *time.Time    `json:"exhumation_date"`
	Transferred    bool          `json:"transferred"`
	TransferDate   *time.Time    `json:"transfer_date"`
}

// NewBurial creates a burial into the given plot. Plot eligibility (contract
// presence, capacity) is validated by the lifecycle engine before commit.
func NewBurial(
	tenantID, plotID uuid.UUID,
	burialNumber, deceasedName string,
	deathDate, burialDate time.Time,
	charge ServiceCharge,
) (*Burial, error) {
	if plotID == uuid.Nil {
		return nil, shared.NewValidationError("plot_id", "burial plot cannot be empty")
	}
	if burialNumber == "" {
		return nil, shared.NewValidationError("burial_number", "burial number must be issued before creation")
	}
	if deceasedName == "" {
		return nil, shared.NewValidationError("deceased_name", "deceased name cannot be empty")
	}
	if burialDate.Before(deathDate) {
		return nil, shared.NewValidationError("burial_date", "burial date cannot precede death date")
	}
	normalized, err := charge.normalize()
	if err != nil {
		return nil, err
	}
	pid := plotID
	return &Burial{
		TenantAggregateRoot: shared.NewTenantAggregateRoot(tenantID),
		PlotID:              &pid,
		BurialNumber:        burialNumber,
		DeceasedName:        deceasedName,
		DeathDate:           deathDate,
		BurialDate:          burialDate,
		Charge:              normalized,
	}, nil
}

// IsActive reports whether the burial still occupies its plot.
func (b *Burial) IsActive() bool {
	return !b.Exhumed && !b.Transferred
}

// MarkExhumed flips the burial into the exhumed state.
func (b *Burial) MarkExhumed(date time.Time) error {
	if b.Exhumed {
		return shared.NewValidationError("exhumed", "burial has already been exhumed")
	}
	b.Exhumed = true
	b.ExhumationDate = &date
	b.Touch()
	b.IncrementVersion()
	return nil
}

// MarkTransferred flips the burial into the transferred state. Transfers
// require a prior exhumation and at most one transfer per burial.
func (b *Burial) MarkTransferred(date time.Time) error {
	if !b.Exhumed {
		return shared.NewValidationError("transferred", "burial must be exhumed before transfer")
	}
	if b.Transferred {
		return shared.NewValidationError("transferred", "burial has already been transferred")
	}
	b.Transferred = true
	b.TransferDate = &date
	b.Touch()
	b.IncrementVersion()
	return nil
}

// RevertTransfer undoes a transfer on deletion of the transfer record. The
// exhumed flag is re-derived from whether an exhumation record independently
// exists, never assumed.
func (b *Burial) RevertTransfer(exhumationRecordExists bool) {
	b.Transferred = false
	b.TransferDate = nil
	b.Exhumed = exhumationRecordExists
	if !exhumationRecordExists {
		b.ExhumationDate = nil
	}
	b.Touch()
	b.IncrementVersion()
}

// CloneInto duplicates the burial as an active record in the destination
// plot, keeping the burial number and personal data. Used when a transfer
// relocates remains to another plot of the same system; the original record
// stays at the origin plot for history.
func (b *Burial) CloneInto(destinationPlotID uuid.UUID) *Burial {
	pid := destinationPlotID
	return &Burial{
		TenantAggregateRoot: shared.NewTenantAggregateRoot(b.TenantID),
		PlotID:              &pid,
		BurialNumber:        b.BurialNumber,
		DeceasedName:        b.DeceasedName,
		MotherName:          b.MotherName,
		DeathDate:           b.DeathDate,
		BurialDate:          b.BurialDate,
		DeathCause:          b.DeathCause,
		Charge:              FreeCharge(),
	}
}
