// Package interment hosts the service lifecycle engine: the validate/commit
// transitions for burials, concession contracts, exhumations and transfers,
// with their side effects on plot status, burial flags and receivables.
package interment

import (
	"context"
	"errors"
	"fmt"
	"time"

	auditapp "github.com/camposanto/backend/internal/application/audit"
	"github.com/camposanto/backend/internal/application/ports"
	"github.com/camposanto/backend/internal/domain/audit"
	"github.com/camposanto/backend/internal/domain/billing"
	"github.com/camposanto/backend/internal/domain/cemetery"
	"github.com/camposanto/backend/internal/domain/interment"
	"github.com/camposanto/backend/internal/domain/shared"
	"github.com/camposanto/backend/internal/domain/shared/valueobject"
	"github.com/google/uuid"
	"github.com/shopspring/decimal"
	"go.uber.org/zap"
)

// LifecycleEngine executes the domain transitions. Each public method is one
// atomic unit of work: validation reads, sequence allocation, writes, plot
// status recompute and audit entry commit or roll back together.
type LifecycleEngine struct {
	uow      ports.UnitOfWork
	recorder *auditapp.Recorder
	log      *zap.Logger
	now      func() time.Time
}

// LifecycleEngineOption configures the engine.
type LifecycleEngineOption func(*LifecycleEngine)

// WithClock overrides the engine clock, used by tests.
func WithClock(now func() time.Time) LifecycleEngineOption {
	return func(e *LifecycleEngine) {
		e.now = now
	}
}

// NewLifecycleEngine creates a LifecycleEngine.
func NewLifecycleEngine(uow ports.UnitOfWork, recorder *auditapp.Recorder, log *zap.Logger, opts ...LifecycleEngineOption) *LifecycleEngine {
	e := &LifecycleEngine{
		uow:      uow,
		recorder: recorder,
		log:      log,
		now:      time.Now,
	}
	for _, opt := range opts {
		opt(e)
	}
	return e
}

// ChargeInput is the payment terms section shared by all service inputs.
type ChargeInput struct {
	Mode         billing.PaymentMode `json:"payment_mode"`
	Value        decimal.Decimal     `json:"value"`
	Installments int                 `json:"installments"`
}

func (c ChargeInput) charge() interment.ServiceCharge {
	return interment.ServiceCharge{Mode: c.Mode, Value: c.Value, Installments: c.Installments}
}

// CreateContractInput carries a concession contract request.
type CreateContractInput struct {
	PlotID          uuid.UUID   `json:"plot_id"`
	GranteeName     string      `json:"grantee_name"`
	GranteeDocument string      `json:"grantee_document"`
	GranteeAddress  string      `json:"grantee_address"`
	ContractDate    time.Time   `json:"contract_date"`
	Charge          ChargeInput `json:"charge"`
}

// CreateContract creates the concession contract for a plot. A plot holds at
// most one contract; a second is rejected.
func (e *LifecycleEngine) CreateContract(ctx context.Context, op shared.OperationContext, in CreateContractInput) (*interment.ConcessionContract, error) {
	var contract *interment.ConcessionContract
	err := e.uow.Execute(ctx, func(s ports.Stores) error {
		plot, err := s.Plots.FindByIDForTenant(ctx, op.TenantID, in.PlotID)
		if err != nil {
			return fmt.Errorf("loading plot: %w", err)
		}

		exists, err := s.Contracts.ExistsForPlot(ctx, plot.ID)
		if err != nil {
			return err
		}
		if exists {
			return shared.NewValidationError("plot_id", "plot already has an active concession contract")
		}

		number, err := s.Sequences.NextDocumentNumber(ctx, op.TenantID)
		if err != nil {
			return err
		}

		contract, err = interment.NewConcessionContract(op.TenantID, plot.ID, number,
			in.GranteeName, in.GranteeDocument, in.ContractDate, in.Charge.charge())
		if err != nil {
			return err
		}
		contract.GranteeAddress = in.GranteeAddress
		if err := s.Contracts.Save(ctx, contract); err != nil {
			return err
		}

		if err := e.generateReceivables(ctx, s, op, billing.SourceKindContract, contract.ID,
			number, "Concessao de tumulo", in.GranteeName, in.GranteeDocument, contract.Charge); err != nil {
			return err
		}

		return e.recorder.Record(ctx, s, op, audit.ActionAdd, "ConcessionContract",
			contract.ID.String(), contract.ContractNumber, contract)
	})
	if err != nil {
		return nil, err
	}
	e.log.Info("concession contract created",
		zap.String("contract_number", contract.ContractNumber),
		zap.String("plot_id", in.PlotID.String()),
	)
	return contract, nil
}

// DeleteContract removes a contract. Rejected while receivables generated
// from it exist or while the plot still holds active burials.
func (e *LifecycleEngine) DeleteContract(ctx context.Context, op shared.OperationContext, contractID uuid.UUID) error {
	return e.uow.Execute(ctx, func(s ports.Stores) error {
		contract, err := s.Contracts.FindByID(ctx, contractID)
		if err != nil {
			return err
		}
		if contract.TenantID != op.TenantID {
			return shared.ErrNotFound
		}

		linked, err := s.Receivables.CountBySource(ctx, billing.SourceKindContract, contract.ID)
		if err != nil {
			return err
		}
		if linked > 0 {
			return shared.ErrReferentialIntegrity
		}

		active, err := s.Burials.CountActiveForPlot(ctx, contract.PlotID)
		if err != nil {
			return err
		}
		if active > 0 {
			return shared.ErrReferentialIntegrity
		}

		if err := s.Contracts.Delete(ctx, contract.ID); err != nil {
			return err
		}
		return e.recorder.Record(ctx, s, op, audit.ActionDelete, "ConcessionContract",
			contract.ID.String(), contract.ContractNumber, contract)
	})
}

// CreateBurialInput carries a burial request.
type CreateBurialInput struct {
	PlotID       uuid.UUID   `json:"plot_id"`
	DeceasedName string      `json:"deceased_name"`
	MotherName   string      `json:"mother_name"`
	DeathDate    time.Time   `json:"death_date"`
	BurialDate   time.Time   `json:"burial_date"`
	DeathCause   string      `json:"death_cause"`
	Charge       ChargeInput `json:"charge"`
}

// CreateBurial buries into a plot. The plot must hold a concession contract
// and either have free capacity or, when full, at least one exhumation older
// than the cemetery's minimum period.
func (e *LifecycleEngine) CreateBurial(ctx context.Context, op shared.OperationContext, in CreateBurialInput) (*interment.Burial, error) {
	var burial *interment.Burial
	err := e.uow.Execute(ctx, func(s ports.Stores) error {
		plot, err := s.Plots.FindByIDForTenant(ctx, op.TenantID, in.PlotID)
		if err != nil {
			return fmt.Errorf("loading plot: %w", err)
		}

		hasContract, err := s.Contracts.ExistsForPlot(ctx, plot.ID)
		if err != nil {
			return err
		}
		if !hasContract {
			return shared.NewValidationError("plot_id", "plot has no active concession contract")
		}

		if err := e.ensurePlotAcceptsBurial(ctx, s, plot, e.now()); err != nil {
			return err
		}

		number, err := s.Sequences.NextDocumentNumber(ctx, op.TenantID)
		if err != nil {
			return err
		}

		burial, err = interment.NewBurial(op.TenantID, plot.ID, number,
			in.DeceasedName, in.DeathDate, in.BurialDate, in.Charge.charge())
		if err != nil {
			return err
		}
		burial.MotherName = in.MotherName
		burial.DeathCause = in.DeathCause
		if err := s.Burials.Save(ctx, burial); err != nil {
			return err
		}

		if err := e.generateReceivables(ctx, s, op, billing.SourceKindBurial, burial.ID,
			number, "Sepultamento", in.DeceasedName, "", burial.Charge); err != nil {
			return err
		}

		if err := e.refreshPlotStatus(ctx, s, plot.ID); err != nil {
			return err
		}

		return e.recorder.Record(ctx, s, op, audit.ActionAdd, "Burial",
			burial.ID.String(), burial.DeceasedName, burial)
	})
	if err != nil {
		return nil, err
	}
	e.log.Info("burial recorded",
		zap.String("burial_number", burial.BurialNumber),
		zap.String("plot_id", in.PlotID.String()),
	)
	return burial, nil
}

// DeleteBurial removes a burial record. Rejected while an exhumation
// references it.
func (e *LifecycleEngine) DeleteBurial(ctx context.Context, op shared.OperationContext, burialID uuid.UUID) error {
	return e.uow.Execute(ctx, func(s ports.Stores) error {
		burial, err := s.Burials.FindByIDForTenant(ctx, op.TenantID, burialID)
		if err != nil {
			return err
		}

		exhumed, err := s.Exhumations.ExistsForBurial(ctx, burial.ID)
		if err != nil {
			return err
		}
		if exhumed {
			return shared.ErrReferentialIntegrity
		}

		if err := s.Burials.Delete(ctx, burial.ID); err != nil {
			return err
		}
		if burial.PlotID != nil {
			if err := e.refreshPlotStatus(ctx, s, *burial.PlotID); err != nil {
				return err
			}
		}
		return e.recorder.Record(ctx, s, op, audit.ActionDelete, "Burial",
			burial.ID.String(), burial.DeceasedName, burial)
	})
}

// CreateExhumationInput carries an exhumation request.
type CreateExhumationInput struct {
	BurialID      uuid.UUID   `json:"burial_id"`
	Date          time.Time   `json:"date"`
	Reason        string      `json:"reason"`
	RequesterName string      `json:"requester_name"`
	Charge        ChargeInput `json:"charge"`
}

// CreateExhumation exhumes a burial. Rejected when the burial is already
// exhumed, when the minimum dormancy period has not elapsed at the
// exhumation date, or when the origin plot carries no concession contract.
func (e *LifecycleEngine) CreateExhumation(ctx context.Context, op shared.OperationContext, in CreateExhumationInput) (*interment.Exhumation, error) {
	var exhumation *interment.Exhumation
	err := e.uow.Execute(ctx, func(s ports.Stores) error {
		burial, err := s.Burials.FindByIDForTenant(ctx, op.TenantID, in.BurialID)
		if err != nil {
			return fmt.Errorf("loading burial: %w", err)
		}
		if burial.Exhumed {
			return shared.NewValidationError("burial_id", "burial has already been exhumed")
		}
		if burial.PlotID == nil {
			return shared.NewValidationError("burial_id", "burial has no origin plot")
		}

		plot, err := s.Plots.FindByID(ctx, *burial.PlotID)
		if err != nil {
			return fmt.Errorf("loading origin plot: %w", err)
		}

		hasContract, err := s.Contracts.ExistsForPlot(ctx, plot.ID)
		if err != nil {
			return err
		}
		if !hasContract {
			return shared.NewValidationError("plot_id", "origin plot has no concession contract")
		}

		cem, err := e.plotCemetery(ctx, s, plot)
		if err != nil {
			return err
		}
		if !interment.MinimumPeriodElapsed(burial.BurialDate, in.Date, cem.MinExhumationPeriodMonths) {
			return shared.NewValidationError("date", fmt.Sprintf(
				"minimum exhumation period of %d months has not elapsed", cem.MinExhumationPeriodMonths))
		}

		number, err := s.Sequences.NextDocumentNumber(ctx, op.TenantID)
		if err != nil {
			return err
		}

		exhumation, err = interment.NewExhumation(op.TenantID, burial.ID, burial.PlotID,
			number, in.Date, in.Charge.charge())
		if err != nil {
			return err
		}
		exhumation.Reason = in.Reason
		exhumation.RequesterName = in.RequesterName
		if err := s.Exhumations.Save(ctx, exhumation); err != nil {
			return err
		}

		if err := burial.MarkExhumed(in.Date); err != nil {
			return err
		}
		if err := s.Burials.UpdateLifecycleFlags(ctx, burial); err != nil {
			return err
		}

		if err := e.generateReceivables(ctx, s, op, billing.SourceKindExhumation, exhumation.ID,
			number, "Exumacao", in.RequesterName, "", exhumation.Charge); err != nil {
			return err
		}

		if err := e.refreshPlotStatus(ctx, s, plot.ID); err != nil {
			return err
		}

		return e.recorder.Record(ctx, s, op, audit.ActionAdd, "Exhumation",
			exhumation.ID.String(), exhumation.DocumentNumber, exhumation)
	})
	if err != nil {
		return nil, err
	}
	e.log.Info("exhumation recorded",
		zap.String("document_number", exhumation.DocumentNumber),
		zap.String("burial_id", in.BurialID.String()),
	)
	return exhumation, nil
}

// DeleteExhumation removes an exhumation record. Rejected while a transfer
// depends on the exhumed state. The burial's exhumed flag is re-derived from
// the surviving exhumation records.
func (e *LifecycleEngine) DeleteExhumation(ctx context.Context, op shared.OperationContext, exhumationID uuid.UUID) error {
	return e.uow.Execute(ctx, func(s ports.Stores) error {
		exhumation, err := s.Exhumations.FindByID(ctx, exhumationID)
		if err != nil {
			return err
		}
		if exhumation.TenantID != op.TenantID {
			return shared.ErrNotFound
		}

		transferred, err := s.Transfers.ExistsForBurial(ctx, exhumation.BurialID)
		if err != nil {
			return err
		}
		if transferred {
			return shared.ErrReferentialIntegrity
		}

		if err := s.Exhumations.Delete(ctx, exhumation.ID); err != nil {
			return err
		}

		burial, err := s.Burials.FindByID(ctx, exhumation.BurialID)
		if err != nil {
			return err
		}
		stillExhumed, err := s.Exhumations.ExistsForBurial(ctx, burial.ID)
		if err != nil {
			return err
		}
		if !stillExhumed {
			burial.Exhumed = false
			burial.ExhumationDate = nil
			if err := s.Burials.UpdateLifecycleFlags(ctx, burial); err != nil {
				return err
			}
		}
		if burial.PlotID != nil {
			if err := e.refreshPlotStatus(ctx, s, *burial.PlotID); err != nil {
				return err
			}
		}
		return e.recorder.Record(ctx, s, op, audit.ActionDelete, "Exhumation",
			exhumation.ID.String(), exhumation.DocumentNumber, exhumation)
	})
}

// CreateTransferInput carries a transfer request.
type CreateTransferInput struct {
	BurialID            uuid.UUID                 `json:"burial_id"`
	Date                time.Time                 `json:"date"`
	DestinationKind     interment.DestinationKind `json:"destination_kind"`
	DestinationPlotID   *uuid.UUID                `json:"destination_plot_id"`
	DestinationCemetery string                    `json:"destination_cemetery"`
	OssuaryReference    string                    `json:"ossuary_reference"`
	Charge              ChargeInput               `json:"charge"`
}

// CreateTransfer relocates exhumed remains. The burial must be exhumed and
// not yet transferred. A plot destination must hold a contract and accept
// one more burial; the burial is cloned into the destination while the
// original keeps its origin plot for history.
func (e *LifecycleEngine) CreateTransfer(ctx context.Context, op shared.OperationContext, in CreateTransferInput) (*interment.Transfer, error) {
	var transfer *interment.Transfer
	err := e.uow.Execute(ctx, func(s ports.Stores) error {
		burial, err := s.Burials.FindByIDForTenant(ctx, op.TenantID, in.BurialID)
		if err != nil {
			return fmt.Errorf("loading burial: %w", err)
		}
		if !burial.Exhumed {
			return shared.NewValidationError("burial_id", "burial must be exhumed before transfer")
		}
		if burial.Transferred {
			return shared.NewValidationError("burial_id", "burial has already been transferred")
		}
		exists, err := s.Transfers.ExistsForBurial(ctx, burial.ID)
		if err != nil {
			return err
		}
		if exists {
			return shared.NewValidationError("burial_id", "a transfer already exists for this burial")
		}

		var destPlot *cemetery.Plot
		if in.DestinationKind == interment.DestinationPlot && in.DestinationPlotID != nil {
			destPlot, err = s.Plots.FindByIDForTenant(ctx, op.TenantID, *in.DestinationPlotID)
			if err != nil {
				return fmt.Errorf("loading destination plot: %w", err)
			}
			hasContract, err := s.Contracts.ExistsForPlot(ctx, destPlot.ID)
			if err != nil {
				return err
			}
			if !hasContract {
				return shared.NewValidationError("destination_plot_id", "destination plot has no active concession contract")
			}
			if err := e.ensurePlotAcceptsBurial(ctx, s, destPlot, in.Date); err != nil {
				return err
			}
		}

		number, err := s.Sequences.NextDocumentNumber(ctx, op.TenantID)
		if err != nil {
			return err
		}

		transfer, err = interment.NewTransfer(op.TenantID, burial.ID, number, in.Date,
			in.DestinationKind, in.DestinationPlotID, in.DestinationCemetery,
			in.OssuaryReference, in.Charge.charge())
		if err != nil {
			return err
		}
		if err := s.Transfers.Save(ctx, transfer); err != nil {
			return err
		}

		if err := burial.MarkTransferred(in.Date); err != nil {
			return err
		}
		if err := s.Burials.UpdateLifecycleFlags(ctx, burial); err != nil {
			return err
		}

		if destPlot != nil {
			clone := burial.CloneInto(destPlot.ID)
			if err := s.Burials.Save(ctx, clone); err != nil {
				return err
			}
			if err := e.refreshPlotStatus(ctx, s, destPlot.ID); err != nil {
				return err
			}
		}

		if err := e.generateReceivables(ctx, s, op, billing.SourceKindTransfer, transfer.ID,
			number, "Translado", burial.DeceasedName, "", transfer.Charge); err != nil {
			return err
		}

		return e.recorder.Record(ctx, s, op, audit.ActionAdd, "Transfer",
			transfer.ID.String(), transfer.DocumentNumber, transfer)
	})
	if err != nil {
		return nil, err
	}
	e.log.Info("transfer recorded",
		zap.String("document_number", transfer.DocumentNumber),
		zap.String("destination", transfer.DestinationKind.String()),
	)
	return transfer, nil
}

// DeleteTransfer reverses a transfer. The burial's transferred flag is
// cleared and its exhumed flag re-derived from whether an exhumation record
// independently exists; a clone buried into a destination plot is removed.
func (e *LifecycleEngine) DeleteTransfer(ctx context.Context, op shared.OperationContext, transferID uuid.UUID) error {
	return e.uow.Execute(ctx, func(s ports.Stores) error {
		transfer, err := s.Transfers.FindByID(ctx, transferID)
		if err != nil {
			return err
		}
		if transfer.TenantID != op.TenantID {
			return shared.ErrNotFound
		}

		burial, err := s.Burials.FindByID(ctx, transfer.BurialID)
		if err != nil {
			return err
		}

		if transfer.IsPlotDestination() && transfer.DestinationPlotID != nil {
			clone, err := s.Burials.FindByNumberInPlot(ctx, *transfer.DestinationPlotID, burial.BurialNumber)
			if err != nil && !errors.Is(err, shared.ErrNotFound) {
				return err
			}
			if clone != nil && clone.ID != burial.ID {
				if err := s.Burials.Delete(ctx, clone.ID); err != nil {
					return err
				}
				if err := e.refreshPlotStatus(ctx, s, *transfer.DestinationPlotID); err != nil {
					return err
				}
			}
		}

		if err := s.Transfers.Delete(ctx, transfer.ID); err != nil {
			return err
		}

		exhumationExists, err := s.Exhumations.ExistsForBurial(ctx, burial.ID)
		if err != nil {
			return err
		}
		burial.RevertTransfer(exhumationExists)
		if err := s.Burials.UpdateLifecycleFlags(ctx, burial); err != nil {
			return err
		}
		if burial.PlotID != nil {
			if err := e.refreshPlotStatus(ctx, s, *burial.PlotID); err != nil {
				return err
			}
		}

		return e.recorder.Record(ctx, s, op, audit.ActionDelete, "Transfer",
			transfer.ID.String(), transfer.DocumentNumber, transfer)
	})
}

// ensurePlotAcceptsBurial checks capacity: below capacity passes; a full
// plot passes only with at least one exhumation older than the cemetery's
// minimum period.
func (e *LifecycleEngine) ensurePlotAcceptsBurial(ctx context.Context, s ports.Stores, plot *cemetery.Plot, asOf time.Time) error {
	active, err := s.Burials.CountActiveForPlot(ctx, plot.ID)
	if err != nil {
		return err
	}
	if plot.HasVacancy(int(active)) {
		return nil
	}

	cem, err := e.plotCemetery(ctx, s, plot)
	if err != nil {
		return err
	}
	cutoff := interment.QualifyingCutoff(asOf, cem.MinExhumationPeriodMonths)
	qualifying, err := s.Exhumations.CountQualifyingForPlot(ctx, plot.ID, cutoff)
	if err != nil {
		return err
	}
	if qualifying == 0 {
		return shared.NewValidationError("plot_id", "plot is at capacity and has no qualifying exhumation")
	}
	return nil
}

// plotCemetery resolves the cemetery owning a plot through its block.
func (e *LifecycleEngine) plotCemetery(ctx context.Context, s ports.Stores, plot *cemetery.Plot) (*cemetery.Cemetery, error) {
	block, err := s.Blocks.FindByID(ctx, plot.BlockID)
	if err != nil {
		return nil, fmt.Errorf("loading block: %w", err)
	}
	cem, err := s.Cemeteries.FindByID(ctx, block.CemeteryID)
	if err != nil {
		return nil, fmt.Errorf("loading cemetery: %w", err)
	}
	return cem, nil
}

// refreshPlotStatus recomputes the derived plot status from the active
// burial count and persists it with a targeted column update.
func (e *LifecycleEngine) refreshPlotStatus(ctx context.Context, s ports.Stores, plotID uuid.UUID) error {
	plot, err := s.Plots.FindByID(ctx, plotID)
	if err != nil {
		return err
	}
	active, err := s.Burials.CountActiveForPlot(ctx, plotID)
	if err != nil {
		return err
	}
	if plot.Recompute(int(active)) {
		return s.Plots.UpdateStatus(ctx, plotID, plot.Status)
	}
	return nil
}

// generateReceivables derives and stores the billing schedule for a service
// event. The document number must already be issued.
func (e *LifecycleEngine) generateReceivables(
	ctx context.Context,
	s ports.Stores,
	op shared.OperationContext,
	kind billing.SourceKind,
	sourceID uuid.UUID,
	documentNumber, description, payerName, payerDocument string,
	charge interment.ServiceCharge,
) error {
	receivables, err := billing.GenerateSchedule(billing.ScheduleInput{
		TenantID:       op.TenantID,
		SourceKind:     kind,
		SourceID:       sourceID,
		DocumentNumber: documentNumber,
		Description:    description,
		PayerName:      payerName,
		PayerDocument:  payerDocument,
		Mode:           charge.Mode,
		Total:          valueobject.NewMoney(charge.Value),
		Installments:   charge.Installments,
		Today:          e.now(),
	})
	if err != nil {
		return err
	}
	return s.Receivables.SaveAll(ctx, receivables)
}
