package numbering

import (
	"context"

	"github.com/google/uuid"
)

// SequenceRepository allocates document numbers. NextDocumentNumber must run
// inside the caller's transaction: it locks the (tenant, year) counter rows,
// reads the maximum, inserts max+1 and returns the formatted number. Rolling
// back the enclosing transaction rolls back the allocation.
type SequenceRepository interface {
	NextDocumentNumber(ctx context.Context, tenantID uuid.UUID) (string, error)
	MaxNumber(ctx context.Context, tenantID uuid.UUID, year int) (int64, error)
}
