package interment

import (
	"context"
	"time"

	"github.com/camposanto/backend/internal/domain/shared"
	"github.com/google/uuid"
)

// BurialRepository persists Burial aggregates. UpdateLifecycleFlags writes
// only the exhumed/transferred columns and their dates so flag flips never
// cascade into full-row validation.
type BurialRepository interface {
	FindByID(ctx context.Context, id uuid.UUID) (*Burial, error)
	FindByIDForTenant(ctx context.Context, tenantID, id uuid.UUID) (*Burial, error)
	FindByNumberInPlot(ctx context.Context, plotID uuid.UUID, burialNumber string) (*Burial, error)
	ListForPlot(ctx context.Context, plotID uuid.UUID, filter shared.Filter) ([]Burial, int64, error)
	CountActiveForPlot(ctx context.Context, plotID uuid.UUID) (int64, error)
	CountForPlot(ctx context.Context, plotID uuid.UUID) (int64, error)
	Save(ctx context.Context, burial *Burial) error
	UpdateLifecycleFlags(ctx context.Context, burial *Burial) error
	Delete(ctx context.Context, id uuid.UUID) error
}

// ContractRepository persists ConcessionContract aggregates.
type ContractRepository interface {
	FindByID(ctx context.Context, id uuid.UUID) (*ConcessionContract, error)
	FindByPlot(ctx context.Context, plotID uuid.UUID) (*ConcessionContract, error)
	ExistsForPlot(ctx context.Context, plotID uuid.UUID) (bool, error)
	ListForTenant(ctx context.Context, tenantID uuid.UUID, filter shared.Filter) ([]ConcessionContract, int64, error)
	Save(ctx context.Context, contract *ConcessionContract) error
	Delete(ctx context.Context, id uuid.UUID) error
}

// ExhumationRepository persists Exhumation aggregates.
type ExhumationRepository interface {
	FindByID(ctx context.Context, id uuid.UUID) (*Exhumation, error)
	ExistsForBurial(ctx context.Context, burialID uuid.UUID) (bool, error)
	// CountQualifyingForPlot counts exhumations on the plot dated on or
	// before the cutoff; a full plot accepts a new burial only when at
	// least one exists.
	CountQualifyingForPlot(ctx context.Context, plotID uuid.UUID, cutoff time.Time) (int64, error)
	ListForTenant(ctx context.Context, tenantID uuid.UUID, filter shared.Filter) ([]Exhumation, int64, error)
	Save(ctx context.Context, exhumation *Exhumation) error
	Delete(ctx context.Context, id uuid.UUID) error
}

// TransferRepository persists Transfer aggregates.
type TransferRepository interface {
	FindByID(ctx context.Context, id uuid.UUID) (*Transfer, error)
	ExistsForBurial(ctx context.Context, burialID uuid.UUID) (bool, error)
	ListForTenant(ctx context.Context, tenantID uuid.UUID, filter shared.Filter) ([]Transfer, int64, error)
	Save(ctx context.Context, transfer *Transfer) error
	Delete(ctx context.Context, id uuid.UUID) error
}
