package billing

import (
	"context"

	"github.com/camposanto/backend/internal/domain/shared"
	"github.com/camposanto/backend/internal/domain/shared/valueobject"
	"github.com/google/uuid"
)

// ReceivableRepository persists Receivable aggregates.
type ReceivableRepository interface {
	FindByID(ctx context.Context, id uuid.UUID) (*Receivable, error)
	FindByIDForTenant(ctx context.Context, tenantID, id uuid.UUID) (*Receivable, error)
	ListForTenant(ctx context.Context, tenantID uuid.UUID, filter shared.Filter) ([]Receivable, int64, error)
	ListBySource(ctx context.Context, kind SourceKind, sourceID uuid.UUID) ([]Receivable, error)
	Save(ctx context.Context, receivable *Receivable) error
	SaveAll(ctx context.Context, receivables []*Receivable) error
	Delete(ctx context.Context, id uuid.UUID) error
	CountBySource(ctx context.Context, kind SourceKind, sourceID uuid.UUID) (int64, error)
	// ExistsOpenWithOutstanding guards remainder spawning: a replacement
	// receivable is only created when no open receivable under the same
	// document number already carries that exact outstanding amount.
	ExistsOpenWithOutstanding(ctx context.Context, tenantID uuid.UUID, documentNumber string, outstanding valueobject.Money) (bool, error)
}
