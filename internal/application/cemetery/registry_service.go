// Package cemetery hosts the registry service for the physical hierarchy:
// cemeteries, blocks and plots, with the referential integrity guards that
// keep deletions from orphaning child records.
package cemetery

import (
	"context"

	auditapp "github.com/camposanto/backend/internal/application/audit"
	"github.com/camposanto/backend/internal/application/ports"
	"github.com/camposanto/backend/internal/domain/audit"
	"github.com/camposanto/backend/internal/domain/cemetery"
	"github.com/camposanto/backend/internal/domain/shared"
	"github.com/google/uuid"
	"go.uber.org/zap"
)

// RegistryService manages the cemetery/block/plot registry. Plot status is
// never accepted from callers; it is derived by the lifecycle engine.
type RegistryService struct {
	uow      ports.UnitOfWork
	recorder *auditapp.Recorder
	log      *zap.Logger
}

// NewRegistryService creates a RegistryService.
func NewRegistryService(uow ports.UnitOfWork, recorder *auditapp.Recorder, log *zap.Logger) *RegistryService {
	return &RegistryService{uow: uow, recorder: recorder, log: log}
}

// CreateCemeteryInput carries a cemetery registration.
type CreateCemeteryInput struct {
	Name                      string `json:"name"`
	Address                   string `json:"address"`
	City                      string `json:"city"`
	State                     string `json:"state"`
	MinExhumationPeriodMonths int    `json:"min_exhumation_period_months"`
}

// CreateCemetery registers a cemetery under the operating tenant.
func (s *RegistryService) CreateCemetery(ctx context.Context, op shared.OperationContext, in CreateCemeteryInput) (*cemetery.Cemetery, error) {
	var cem *cemetery.Cemetery
	err := s.uow.Execute(ctx, func(st ports.Stores) error {
		var err error
		cem, err = cemetery.NewCemetery(op.TenantID, in.Name, in.MinExhumationPeriodMonths)
		if err != nil {
			return err
		}
		cem.Address = in.Address
		cem.City = in.City
		cem.State = in.State
		if err := st.Cemeteries.Save(ctx, cem); err != nil {
			return err
		}
		return s.recorder.Record(ctx, st, op, audit.ActionAdd, "Cemetery",
			cem.ID.String(), cem.Name, cem)
	})
	if err != nil {
		return nil, err
	}
	return cem, nil
}

// UpdateCemeteryInput carries a cemetery update.
type UpdateCemeteryInput struct {
	Name                      string `json:"name"`
	Address                   string `json:"address"`
	City                      string `json:"city"`
	State                     string `json:"state"`
	MinExhumationPeriodMonths int    `json:"min_exhumation_period_months"`
}

// UpdateCemetery updates a cemetery's registry data.
func (s *RegistryService) UpdateCemetery(ctx context.Context, op shared.OperationContext, id uuid.UUID, in UpdateCemeteryInput) (*cemetery.Cemetery, error) {
	var cem *cemetery.Cemetery
	err := s.uow.Execute(ctx, func(st ports.Stores) error {
		var err error
		cem, err = st.Cemeteries.FindByIDForTenant(ctx, op.TenantID, id)
		if err != nil {
			return err
		}
		if err := cem.Rename(in.Name); err != nil {
			return err
		}
		if err := cem.SetMinExhumationPeriod(in.MinExhumationPeriodMonths); err != nil {
			return err
		}
		cem.Address = in.Address
		cem.City = in.City
		cem.State = in.State
		if err := st.Cemeteries.Save(ctx, cem); err != nil {
			return err
		}
		return s.recorder.Record(ctx, st, op, audit.ActionChange, "Cemetery",
			cem.ID.String(), cem.Name, cem)
	})
	if err != nil {
		return nil, err
	}
	return cem, nil
}

// DeleteCemetery removes a cemetery. Rejected while it still holds blocks.
func (s *RegistryService) DeleteCemetery(ctx context.Context, op shared.OperationContext, id uuid.UUID) error {
	return s.uow.Execute(ctx, func(st ports.Stores) error {
		cem, err := st.Cemeteries.FindByIDForTenant(ctx, op.TenantID, id)
		if err != nil {
			return err
		}
		blocks, err := st.Cemeteries.CountBlocks(ctx, cem.ID)
		if err != nil {
			return err
		}
		if blocks > 0 {
			return shared.ErrReferentialIntegrity
		}
		if err := st.Cemeteries.Delete(ctx, cem.ID); err != nil {
			return err
		}
		return s.recorder.Record(ctx, st, op, audit.ActionDelete, "Cemetery",
			cem.ID.String(), cem.Name, cem)
	})
}

// GetCemetery returns one cemetery of the operating tenant.
func (s *RegistryService) GetCemetery(ctx context.Context, op shared.OperationContext, id uuid.UUID) (*cemetery.Cemetery, error) {
	return s.uow.Stores().Cemeteries.FindByIDForTenant(ctx, op.TenantID, id)
}

// ListCemeteries returns the tenant's cemeteries.
func (s *RegistryService) ListCemeteries(ctx context.Context, op shared.OperationContext, filter shared.Filter) (*shared.Paginated[cemetery.Cemetery], error) {
	items, total, err := s.uow.Stores().Cemeteries.ListForTenant(ctx, op.TenantID, filter)
	if err != nil {
		return nil, err
	}
	page := shared.NewPaginated(items, total, filter.Page, filter.PageSize)
	return &page, nil
}

// CreateBlockInput carries a block registration.
type CreateBlockInput struct {
	CemeteryID  uuid.UUID `json:"cemetery_id"`
	Name        string    `json:"name"`
	Description string    `json:"description"`
}

// CreateBlock registers a block inside a cemetery of the operating tenant.
func (s *RegistryService) CreateBlock(ctx context.Context, op shared.OperationContext, in CreateBlockInput) (*cemetery.Block, error) {
	var block *cemetery.Block
	err := s.uow.Execute(ctx, func(st ports.Stores) error {
		cem, err := st.Cemeteries.FindByIDForTenant(ctx, op.TenantID, in.CemeteryID)
		if err != nil {
			return err
		}
		block, err = cemetery.NewBlock(op.TenantID, cem.ID, in.Name)
		if err != nil {
			return err
		}
		block.Description = in.Description
		if err := st.Blocks.Save(ctx, block); err != nil {
			return err
		}
		return s.recorder.Record(ctx, st, op, audit.ActionAdd, "Block",
			block.ID.String(), block.Name, block)
	})
	if err != nil {
		return nil, err
	}
	return block, nil
}

// DeleteBlock removes a block. Rejected while it still holds plots.
func (s *RegistryService) DeleteBlock(ctx context.Context, op shared.OperationContext, id uuid.UUID) error {
	return s.uow.Execute(ctx, func(st ports.Stores) error {
		block, err := st.Blocks.FindByID(ctx, id)
		if err != nil {
			return err
		}
		if block.TenantID != op.TenantID {
			return shared.ErrNotFound
		}
		plots, err := st.Blocks.CountPlots(ctx, block.ID)
		if err != nil {
			return err
		}
		if plots > 0 {
			return shared.ErrReferentialIntegrity
		}
		if err := st.Blocks.Delete(ctx, block.ID); err != nil {
			return err
		}
		return s.recorder.Record(ctx, st, op, audit.ActionDelete, "Block",
			block.ID.String(), block.Name, block)
	})
}

// ListBlocks returns the blocks of one cemetery.
func (s *RegistryService) ListBlocks(ctx context.Context, op shared.OperationContext, cemeteryID uuid.UUID, filter shared.Filter) (*shared.Paginated[cemetery.Block], error) {
	st := s.uow.Stores()
	if _, err := st.Cemeteries.FindByIDForTenant(ctx, op.TenantID, cemeteryID); err != nil {
		return nil, err
	}
	items, total, err := st.Blocks.ListForCemetery(ctx, cemeteryID, filter)
	if err != nil {
		return nil, err
	}
	page := shared.NewPaginated(items, total, filter.Page, filter.PageSize)
	return &page, nil
}

// CreatePlotInput carries a plot registration.
type CreatePlotInput struct {
	BlockID    uuid.UUID `json:"block_id"`
	Identifier string    `json:"identifier"`
	Capacity   int       `json:"capacity"`
}

// CreatePlot registers a plot inside a block of the operating tenant.
func (s *RegistryService) CreatePlot(ctx context.Context, op shared.OperationContext, in CreatePlotInput) (*cemetery.Plot, error) {
	var plot *cemetery.Plot
	err := s.uow.Execute(ctx, func(st ports.Stores) error {
		block, err := st.Blocks.FindByID(ctx, in.BlockID)
		if err != nil {
			return err
		}
		if block.TenantID != op.TenantID {
			return shared.ErrNotFound
		}
		plot, err = cemetery.NewPlot(op.TenantID, block.ID, in.Identifier, in.Capacity)
		if err != nil {
			return err
		}
		if err := st.Plots.Save(ctx, plot); err != nil {
			return err
		}
		return s.recorder.Record(ctx, st, op, audit.ActionAdd, "Plot",
			plot.ID.String(), plot.Identifier, plot)
	})
	if err != nil {
		return nil, err
	}
	return plot, nil
}

// UpdatePlotInput carries a plot update. Status is absent on purpose.
type UpdatePlotInput struct {
	Identifier string `json:"identifier"`
	Capacity   int    `json:"capacity"`
}

// UpdatePlot changes a plot's identifier and capacity, then re-derives its
// status since a capacity change can flip occupancy.
func (s *RegistryService) UpdatePlot(ctx context.Context, op shared.OperationContext, id uuid.UUID, in UpdatePlotInput) (*cemetery.Plot, error) {
	var plot *cemetery.Plot
	err := s.uow.Execute(ctx, func(st ports.Stores) error {
		var err error
		plot, err = st.Plots.FindByIDForTenant(ctx, op.TenantID, id)
		if err != nil {
			return err
		}
		if in.Identifier != "" {
			plot.Identifier = in.Identifier
		}
		if err := plot.SetCapacity(in.Capacity); err != nil {
			return err
		}
		active, err := st.Burials.CountActiveForPlot(ctx, plot.ID)
		if err != nil {
			return err
		}
		plot.Recompute(int(active))
		if err := st.Plots.Save(ctx, plot); err != nil {
			return err
		}
		return s.recorder.Record(ctx, st, op, audit.ActionChange, "Plot",
			plot.ID.String(), plot.Identifier, plot)
	})
	if err != nil {
		return nil, err
	}
	return plot, nil
}

// ReservePlot marks a plot reserved; reservation overrides the occupancy
// derivation until released.
func (s *RegistryService) ReservePlot(ctx context.Context, op shared.OperationContext, id uuid.UUID, reason string) (*cemetery.Plot, error) {
	return s.setReservation(ctx, op, id, true, reason)
}

// ReleasePlotReservation clears the reserved flag and re-derives the status.
func (s *RegistryService) ReleasePlotReservation(ctx context.Context, op shared.OperationContext, id uuid.UUID) (*cemetery.Plot, error) {
	return s.setReservation(ctx, op, id, false, "")
}

func (s *RegistryService) setReservation(ctx context.Context, op shared.OperationContext, id uuid.UUID, reserved bool, reason string) (*cemetery.Plot, error) {
	var plot *cemetery.Plot
	err := s.uow.Execute(ctx, func(st ports.Stores) error {
		var err error
		plot, err = st.Plots.FindByIDForTenant(ctx, op.TenantID, id)
		if err != nil {
			return err
		}
		if reserved {
			plot.Reserve(reason)
		} else {
			plot.ReleaseReservation()
		}
		active, err := st.Burials.CountActiveForPlot(ctx, plot.ID)
		if err != nil {
			return err
		}
		plot.Recompute(int(active))
		if err := st.Plots.Save(ctx, plot); err != nil {
			return err
		}
		return s.recorder.Record(ctx, st, op, audit.ActionChange, "Plot",
			plot.ID.String(), plot.Identifier, plot)
	})
	if err != nil {
		return nil, err
	}
	return plot, nil
}

// DeletePlot removes a plot. Rejected while any burial record, active or
// historical, references it.
func (s *RegistryService) DeletePlot(ctx context.Context, op shared.OperationContext, id uuid.UUID) error {
	return s.uow.Execute(ctx, func(st ports.Stores) error {
		plot, err := st.Plots.FindByIDForTenant(ctx, op.TenantID, id)
		if err != nil {
			return err
		}
		burials, err := st.Burials.CountForPlot(ctx, plot.ID)
		if err != nil {
			return err
		}
		if burials > 0 {
			return shared.ErrReferentialIntegrity
		}
		if err := st.Plots.Delete(ctx, plot.ID); err != nil {
			return err
		}
		return s.recorder.Record(ctx, st, op, audit.ActionDelete, "Plot",
			plot.ID.String(), plot.Identifier, plot)
	})
}

// GetPlot returns one plot of the operating tenant.
func (s *RegistryService) GetPlot(ctx context.Context, op shared.OperationContext, id uuid.UUID) (*cemetery.Plot, error) {
	return s.uow.Stores().Plots.FindByIDForTenant(ctx, op.TenantID, id)
}

// ListPlots returns the plots of one block.
func (s *RegistryService) ListPlots(ctx context.Context, op shared.OperationContext, blockID uuid.UUID, filter shared.Filter) (*shared.Paginated[cemetery.Plot], error) {
	st := s.uow.Stores()
	block, err := st.Blocks.FindByID(ctx, blockID)
	if err != nil {
		return nil, err
	}
	if block.TenantID != op.TenantID {
		return nil, shared.ErrNotFound
	}
	items, total, err := st.Plots.ListForBlock(ctx, blockID, filter)
	if err != nil {
		return nil, err
	}
	page := shared.NewPaginated(items, total, filter.Page, filter.PageSize)
	return &page, nil
}
