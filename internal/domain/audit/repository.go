package audit

import (
	"context"

	"github.com/camposanto/backend/internal/domain/shared"
	"github.com/google/uuid"
)

// RecordRepository persists audit records. Implementations must reject
// deletion with shared.ErrImmutableRecord.
type RecordRepository interface {
	Save(ctx context.Context, record *Record) error
	ListForTenant(ctx context.Context, tenantID uuid.UUID, filter shared.Filter) ([]Record, int64, error)
	Delete(ctx context.Context, id uuid.UUID) error
}
