package cemetery

import (
	"github.com/camposanto/backend/internal/domain/shared"
	"github.com/google/uuid"
)

// Block (quadra) groups plots inside a cemetery.
type Block struct {
	shared.TenantAggregateRoot
	CemeteryID  uuid.UUID `json:"cemetery_id"`
	Name        string    `json:"name"`
	Description string    `json:"description"`
}

// NewBlock creates a block inside the given cemetery.
func NewBlock(tenantID, cemeteryID uuid.UUID, name string) (*Block, error) {
	if cemeteryID == uuid.Nil {
		return nil, shared.NewValidationError("cemetery_id", "block cemetery cannot be empty")
	}
	if name == "" {
		return nil, shared.NewValidationError("name", "block name cannot be empty")
	}
	return &Block{
		TenantAggregateRoot: shared.NewTenantAggregateRoot(tenantID),
		CemeteryID:          cemeteryID,
		Name:                name,
	}, nil
}
