package audit

import (
	"context"

	"github.com/camposanto/backend/internal/application/ports"
	"github.com/camposanto/backend/internal/domain/audit"
	"github.com/camposanto/backend/internal/domain/shared"
)

// TrailService reads the audit trail. There is no write surface here; entries
// are appended by the Recorder inside service transactions, and deletion is
// rejected at every layer.
type TrailService struct {
	uow ports.UnitOfWork
}

// NewTrailService creates a TrailService.
func NewTrailService(uow ports.UnitOfWork) *TrailService {
	return &TrailService{uow: uow}
}

// List returns the tenant's audit records, newest first.
func (s *TrailService) List(ctx context.Context, op shared.OperationContext, filter shared.Filter) (*shared.Paginated[audit.Record], error) {
	items, total, err := s.uow.Stores().AuditRecords.ListForTenant(ctx, op.TenantID, filter)
	if err != nil {
		return nil, err
	}
	page := shared.NewPaginated(items, total, filter.Page, filter.PageSize)
	return &page, nil
}
