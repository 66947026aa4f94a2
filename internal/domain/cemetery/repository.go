package cemetery

import (
	"context"

	"github.com/camposanto/backend/internal/domain/shared"
	"github.com/google/uuid"
)

// CemeteryRepository persists Cemetery aggregates.
type CemeteryRepository interface {
	FindByID(ctx context.Context, id uuid.UUID) (*Cemetery, error)
	FindByIDForTenant(ctx context.Context, tenantID, id uuid.UUID) (*Cemetery, error)
	ListForTenant(ctx context.Context, tenantID uuid.UUID, filter shared.Filter) ([]Cemetery, int64, error)
	Save(ctx context.Context, cemetery *Cemetery) error
	Delete(ctx context.Context, id uuid.UUID) error
	CountBlocks(ctx context.Context, cemeteryID uuid.UUID) (int64, error)
}

// BlockRepository persists Block aggregates.
type BlockRepository interface {
	FindByID(ctx context.Context, id uuid.UUID) (*Block, error)
	ListForCemetery(ctx context.Context, cemeteryID uuid.UUID, filter shared.Filter) ([]Block, int64, error)
	Save(ctx context.Context, block *Block) error
	Delete(ctx context.Context, id uuid.UUID) error
	CountPlots(ctx context.Context, blockID uuid.UUID) (int64, error)
}

// PlotRepository persists Plot aggregates. UpdateStatus writes only the
// status column so a derived-status refresh never cascades into full-row
// validation.
type PlotRepository interface {
	FindByID(ctx context.Context, id uuid.UUID) (*Plot, error)
	FindByIDForTenant(ctx context.Context, tenantID, id uuid.UUID) (*Plot, error)
	ListForBlock(ctx context.Context, blockID uuid.UUID, filter shared.Filter) ([]Plot, int64, error)
	Save(ctx context.Context, plot *Plot) error
	UpdateStatus(ctx context.Context, plotID uuid.UUID, status PlotStatus) error
	Delete(ctx context.Context, id uuid.UUID) error
}
