package interment

import (
	"context"

	"github.com/camposanto/backend/internal/domain/interment"
	"github.com/camposanto/backend/internal/domain/shared"
	"github.com/google/uuid"
)

// GetContract returns one concession contract of the operating tenant.
func (e *LifecycleEngine) GetContract(ctx context.Context, op shared.OperationContext, id uuid.UUID) (*interment.ConcessionContract, error) {
	contract, err := e.uow.Stores().Contracts.FindByID(ctx, id)
	if err != nil {
		return nil, err
	}
	if contract.TenantID != op.TenantID {
		return nil, shared.ErrNotFound
	}
	return contract, nil
}

// ListContracts returns the tenant's concession contracts.
func (e *LifecycleEngine) ListContracts(ctx context.Context, op shared.OperationContext, filter shared.Filter) (*shared.Paginated[interment.ConcessionContract], error) {
	items, total, err := e.uow.Stores().Contracts.ListForTenant(ctx, op.TenantID, filter)
	if err != nil {
		return nil, err
	}
	page := shared.NewPaginated(items, total, filter.Page, filter.PageSize)
	return &page, nil
}

// GetBurial returns one burial of the operating tenant.
func (e *LifecycleEngine) GetBurial(ctx context.Context, op shared.OperationContext, id uuid.UUID) (*interment.Burial, error) {
	return e.uow.Stores().Burials.FindByIDForTenant(ctx, op.TenantID, id)
}

// ListBurialsForPlot returns the burials recorded against a plot, active
// and historical alike.
func (e *LifecycleEngine) ListBurialsForPlot(ctx context.Context, op shared.OperationContext, plotID uuid.UUID, filter shared.Filter) (*shared.Paginated[interment.Burial], error) {
	if _, err := e.uow.Stores().Plots.FindByIDForTenant(ctx, op.TenantID, plotID); err != nil {
		return nil, err
	}
	items, total, err := e.uow.Stores().Burials.ListForPlot(ctx, plotID, filter)
	if err != nil {
		return nil, err
	}
	page := shared.NewPaginated(items, total, filter.Page, filter.PageSize)
	return &page, nil
}

// GetExhumation returns one exhumation of the operating tenant.
func (e *LifecycleEngine) GetExhumation(ctx context.Context, op shared.OperationContext, id uuid.UUID) (*interment.Exhumation, error) {
	exhumation, err := e.uow.Stores().Exhumations.FindByID(ctx, id)
	if err != nil {
		return nil, err
	}
	if exhumation.TenantID != op.TenantID {
		return nil, shared.ErrNotFound
	}
	return exhumation, nil
}

// ListExhumations returns the tenant's exhumations.
func (e *LifecycleEngine) ListExhumations(ctx context.Context, op shared.OperationContext, filter shared.Filter) (*shared.Paginated[interment.Exhumation], error) {
	items, total, err := e.uow.Stores().Exhumations.ListForTenant(ctx, op.TenantID, filter)
	if err != nil {
		return nil, err
	}
	page := shared.NewPaginated(items, total, filter.Page, filter.PageSize)
	return &page, nil
}

// GetTransfer returns one transfer of the operating tenant.
func (e *LifecycleEngine) GetTransfer(ctx context.Context, op shared.OperationContext, id uuid.UUID) (*interment.Transfer, error) {
	transfer, err := e.uow.Stores().Transfers.FindByID(ctx, id)
	if err != nil {
		return nil, err
	}
	if transfer.TenantID != op.TenantID {
		return nil, shared.ErrNotFound
	}
	return transfer, nil
}

// ListTransfers returns the tenant's transfers.
func (e *LifecycleEngine) ListTransfers(ctx context.Context, op shared.OperationContext, filter shared.Filter) (*shared.Paginated[interment.Transfer], error) {
	items, total, err := e.uow.Stores().Transfers.ListForTenant(ctx, op.TenantID, filter)
	if err != nil {
		return nil, err
	}
	page := shared.NewPaginated(items, total, filter.Page, filter.PageSize)
	return &page, nil
}
