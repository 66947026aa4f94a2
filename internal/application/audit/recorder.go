// Package audit provides the application-level recorder that writes the
// immutable trail after every create/update/delete of a tenant-scoped record.
package audit

import (
	"context"

	"github.com/camposanto/backend/internal/application/ports"
	"github.com/camposanto/backend/internal/domain/audit"
	"github.com/camposanto/backend/internal/domain/shared"
	"github.com/google/uuid"
	"go.uber.org/zap"
)

// Recorder writes audit entries inside the caller's transaction. Tenant
// attribution resolves in order: the operation context, the entity's own
// tenant reference, the acting user's tenant. When none resolve the entry is
// skipped silently.
type Recorder struct {
	log *zap.Logger
}

// NewRecorder creates a Recorder.
func NewRecorder(log *zap.Logger) *Recorder {
	return &Recorder{log: log}
}

// Record writes one audit entry. owner may be nil when the entity carries no
// tenant reference of its own.
func (r *Recorder) Record(
	ctx context.Context,
	s ports.Stores,
	op shared.OperationContext,
	action audit.Action,
	entityName, entityID, summary string,
	owner shared.TenantScoped,
) error {
	tenantID := r.resolveTenant(ctx, s, op, owner)
	if tenantID == uuid.Nil {
		r.log.Debug("audit entry skipped, no tenant resolved",
			zap.String("entity", entityName),
			zap.String("action", action.String()),
		)
		return nil
	}

	record, err := audit.NewRecord(tenantID, op.UserID, action, entityName, entityID, summary)
	if err != nil {
		return err
	}
	return s.AuditRecords.Save(ctx, record)
}

func (r *Recorder) resolveTenant(ctx context.Context, s ports.Stores, op shared.OperationContext, owner shared.TenantScoped) uuid.UUID {
	if op.HasTenant() {
		return op.TenantID
	}
	if owner != nil {
		if id := owner.OwnerTenantID(); id != uuid.Nil {
			return id
		}
	}
	if op.UserID != nil {
		user, err := s.Users.FindByID(ctx, *op.UserID)
		if err == nil && user != nil {
			return user.TenantID
		}
	}
	return uuid.Nil
}

// DeleteRecord always fails: audit entries are immutable.
func (r *Recorder) DeleteRecord(ctx context.Context, id uuid.UUID) error {
	return shared.ErrImmutableRecord
}
