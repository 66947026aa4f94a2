package interment

import (
	"context"
	"errors"
	"testing"
	"time"

	"github.com/camposanto/backend/internal/application/apptest"
	auditapp "github.com/camposanto/backend/internal/application/audit"
	"github.com/camposanto/backend/internal/domain/audit"
	"github.com/camposanto/backend/internal/domain/billing"
	"github.com/camposanto/backend/internal/domain/cemetery"
	"github.com/camposanto/backend/internal/domain/interment"
	"github.com/camposanto/backend/internal/domain/shared"
	"github.com/camposanto/backend/internal/domain/tenancy"
	"github.com/google/uuid"
	"github.com/shopspring/decimal"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"go.uber.org/zap"
)

var testNow = time.Date(2024, 5, 10, 12, 0, 0, 0, time.UTC)

type fixture struct {
	db     *apptest.MemDB
	engine *LifecycleEngine
	op     shared.OperationContext

	tenant   *tenancy.Tenant
	cemetery *cemetery.Cemetery
	block    *cemetery.Block
}

// newFixture seeds one tenant with a cemetery (36-month minimum exhumation
// period) and one block.
func newFixture(t *testing.T) *fixture {
	t.Helper()

	db := apptest.NewMemDB(testNow.Year())
	uow := &apptest.MemUOW{DB: db}
	recorder := auditapp.NewRecorder(zap.NewNop())
	engine := NewLifecycleEngine(uow, recorder, zap.NewNop(), WithClock(func() time.Time { return testNow }))

	tenant, err := tenancy.NewTenant("Prefeitura de Santa Clara", "Municipio de Santa Clara", "12.345.678/0001-00", uuid.New())
	require.NoError(t, err)
	db.Tenants[tenant.ID] = tenant

	cem, err := cemetery.NewCemetery(tenant.ID, "Cemiterio Municipal", 36)
	require.NoError(t, err)
	db.Cemeteries[cem.ID] = cem

	block, err := cemetery.NewBlock(tenant.ID, cem.ID, "Quadra A")
	require.NoError(t, err)
	db.Blocks[block.ID] = block

	return &fixture{
		db:       db,
		engine:   engine,
		op:       shared.NewOperationContext(tenant.ID).WithCemetery(cem.ID),
		tenant:   tenant,
		cemetery: cem,
		block:    block,
	}
}

func (f *fixture) seedPlot(t *testing.T, identifier string, capacity int) *cemetery.Plot {
	t.Helper()
	plot, err := cemetery.NewPlot(f.tenant.ID, f.block.ID, identifier, capacity)
	require.NoError(t, err)
	f.db.Plots[plot.ID] = plot
	return plot
}

func (f *fixture) seedContract(t *testing.T, plot *cemetery.Plot) *interment.ConcessionContract {
	t.Helper()
	contract, err := interment.NewConcessionContract(f.tenant.ID, plot.ID, "900/2020",
		"Maria Oliveira", "111.222.333-44", time.Date(2020, 1, 1, 0, 0, 0, 0, time.UTC), interment.FreeCharge())
	require.NoError(t, err)
	f.db.Contracts[contract.ID] = contract
	return contract
}

func (f *fixture) seedBurial(t *testing.T, plot *cemetery.Plot, number string, burialDate time.Time) *interment.Burial {
	t.Helper()
	burial, err := interment.NewBurial(f.tenant.ID, plot.ID, number, "Jose da Silva",
		burialDate.AddDate(0, 0, -1), burialDate, interment.FreeCharge())
	require.NoError(t, err)
	f.db.Burials[burial.ID] = burial
	return burial
}

func (f *fixture) seedExhumation(t *testing.T, burial *interment.Burial, date time.Time) *interment.Exhumation {
	t.Helper()
	exhumation, err := interment.NewExhumation(f.tenant.ID, burial.ID, burial.PlotID, "901/2020", date, interment.FreeCharge())
	require.NoError(t, err)
	f.db.Exhumations[exhumation.ID] = exhumation
	require.NoError(t, burial.MarkExhumed(date))
	return exhumation
}

func singleCharge(value string) ChargeInput {
	return ChargeInput{Mode: billing.PaymentModeSingle, Value: decimal.RequireFromString(value)}
}

func freeCharge() ChargeInput {
	return ChargeInput{Mode: billing.PaymentModeFree, Value: decimal.Zero}
}

func TestCreateContract(t *testing.T) {
	ctx := context.Background()

	t.Run("creates contract with issued number and receivable", func(t *testing.T) {
		f := newFixture(t)
		plot := f.seedPlot(t, "A-01", 1)

		contract, err := f.engine.CreateContract(ctx, f.op, CreateContractInput{
			PlotID:       plot.ID,
			GranteeName:  "Maria Oliveira",
			ContractDate: time.Date(2024, 5, 1, 0, 0, 0, 0, time.UTC),
			Charge:       singleCharge("500.00"),
		})
		require.NoError(t, err)
		assert.Equal(t, "1/2024", contract.ContractNumber)

		recs, err := f.db.Stores().Receivables.ListBySource(ctx, billing.SourceKindContract, contract.ID)
		require.NoError(t, err)
		require.Len(t, recs, 1)
		assert.Equal(t, "1/2024", recs[0].DocumentNumber)
		assert.True(t, recs[0].ValueTotal.Equal(decimal.RequireFromString("500.00")))
		assert.Equal(t, billing.ReceivableStatusOpen, recs[0].Status)
	})

	t.Run("rejects second contract on the same plot", func(t *testing.T) {
		f := newFixture(t)
		plot := f.seedPlot(t, "A-01", 1)
		f.seedContract(t, plot)

		_, err := f.engine.CreateContract(ctx, f.op, CreateContractInput{
			PlotID:       plot.ID,
			GranteeName:  "Outro Concessionario",
			ContractDate: testNow,
			Charge:       freeCharge(),
		})
		assert.True(t, shared.IsValidation(err))
	})

	t.Run("rejects plot of another tenant", func(t *testing.T) {
		f := newFixture(t)
		plot := f.seedPlot(t, "A-01", 1)

		foreign := shared.NewOperationContext(uuid.New())
		_, err := f.engine.CreateContract(ctx, foreign, CreateContractInput{
			PlotID:       plot.ID,
			GranteeName:  "Maria Oliveira",
			ContractDate: testNow,
			Charge:       freeCharge(),
		})
		assert.ErrorIs(t, err, shared.ErrNotFound)
	})

	t.Run("writes audit entry", func(t *testing.T) {
		f := newFixture(t)
		plot := f.seedPlot(t, "A-01", 1)

		_, err := f.engine.CreateContract(ctx, f.op, CreateContractInput{
			PlotID:       plot.ID,
			GranteeName:  "Maria Oliveira",
			ContractDate: testNow,
			Charge:       freeCharge(),
		})
		require.NoError(t, err)
		require.Len(t, f.db.AuditTrail, 1)
		assert.Equal(t, audit.ActionAdd, f.db.AuditTrail[0].Action)
		assert.Equal(t, "ConcessionContract", f.db.AuditTrail[0].EntityName)
		assert.Equal(t, f.tenant.ID, f.db.AuditTrail[0].TenantID)
	})
}

func TestCreateBurial(t *testing.T) {
	ctx := context.Background()

	t.Run("buries into a contracted plot and marks it occupied", func(t *testing.T) {
		f := newFixture(t)
		plot := f.seedPlot(t, "A-01", 1)
		f.seedContract(t, plot)

		burial, err := f.engine.CreateBurial(ctx, f.op, CreateBurialInput{
			PlotID:       plot.ID,
			DeceasedName: "Jose da Silva",
			DeathDate:    time.Date(2024, 5, 8, 0, 0, 0, 0, time.UTC),
			BurialDate:   time.Date(2024, 5, 9, 0, 0, 0, 0, time.UTC),
			Charge:       freeCharge(),
		})
		require.NoError(t, err)
		assert.Equal(t, "1/2024", burial.BurialNumber)
		assert.True(t, burial.IsActive())
		assert.Equal(t, cemetery.PlotStatusOccupied, f.db.Plots[plot.ID].Status)

		// gratuito service still produces a zeroed, settled receivable
		recs, err := f.db.Stores().Receivables.ListBySource(ctx, billing.SourceKindBurial, burial.ID)
		require.NoError(t, err)
		require.Len(t, recs, 1)
		assert.True(t, recs[0].ValueTotal.IsZero())
		assert.Equal(t, billing.ReceivableStatusPaid, recs[0].Status)
	})

	t.Run("plot below capacity stays available", func(t *testing.T) {
		f := newFixture(t)
		plot := f.seedPlot(t, "A-02", 2)
		f.seedContract(t, plot)

		_, err := f.engine.CreateBurial(ctx, f.op, CreateBurialInput{
			PlotID:       plot.ID,
			DeceasedName: "Jose da Silva",
			DeathDate:    testNow,
			BurialDate:   testNow,
			Charge:       freeCharge(),
		})
		require.NoError(t, err)
		assert.Equal(t, cemetery.PlotStatusAvailable, f.db.Plots[plot.ID].Status)
	})

	t.Run("rejects plot without contract", func(t *testing.T) {
		f := newFixture(t)
		plot := f.seedPlot(t, "A-01", 1)

		_, err := f.engine.CreateBurial(ctx, f.op, CreateBurialInput{
			PlotID:       plot.ID,
			DeceasedName: "Jose da Silva",
			DeathDate:    testNow,
			BurialDate:   testNow,
			Charge:       freeCharge(),
		})
		assert.True(t, shared.IsValidation(err))
	})

	t.Run("rejects full plot without qualifying exhumation", func(t *testing.T) {
		f := newFixture(t)
		plot := f.seedPlot(t, "A-01", 1)
		f.seedContract(t, plot)
		f.seedBurial(t, plot, "10/2020", time.Date(2020, 1, 1, 0, 0, 0, 0, time.UTC))

		_, err := f.engine.CreateBurial(ctx, f.op, CreateBurialInput{
			PlotID:       plot.ID,
			DeceasedName: "Jose da Silva",
			DeathDate:    testNow,
			BurialDate:   testNow,
			Charge:       freeCharge(),
		})
		assert.True(t, shared.IsValidation(err))
	})

	t.Run("full plot accepts burial when an old exhumation exists", func(t *testing.T) {
		f := newFixture(t)
		plot := f.seedPlot(t, "A-01", 2)
		f.seedContract(t, plot)
		// two active burials fill the plot; a third was exhumed in 2020,
		// well past the 36-month minimum before May 2024
		f.seedBurial(t, plot, "10/2016", time.Date(2016, 1, 1, 0, 0, 0, 0, time.UTC))
		f.seedBurial(t, plot, "11/2016", time.Date(2016, 2, 1, 0, 0, 0, 0, time.UTC))
		old := f.seedBurial(t, plot, "12/2016", time.Date(2016, 3, 1, 0, 0, 0, 0, time.UTC))
		f.seedExhumation(t, old, time.Date(2020, 6, 1, 0, 0, 0, 0, time.UTC))

		_, err := f.engine.CreateBurial(ctx, f.op, CreateBurialInput{
			PlotID:       plot.ID,
			DeceasedName: "Jose da Silva",
			DeathDate:    testNow,
			BurialDate:   testNow,
			Charge:       freeCharge(),
		})
		assert.NoError(t, err)
	})

	t.Run("document numbers run sequentially across services", func(t *testing.T) {
		f := newFixture(t)
		plotA := f.seedPlot(t, "A-01", 1)
		plotB := f.seedPlot(t, "A-02", 1)

		contract, err := f.engine.CreateContract(ctx, f.op, CreateContractInput{
			PlotID: plotA.ID, GranteeName: "Maria Oliveira", ContractDate: testNow, Charge: freeCharge(),
		})
		require.NoError(t, err)
		assert.Equal(t, "1/2024", contract.ContractNumber)

		contractB, err := f.engine.CreateContract(ctx, f.op, CreateContractInput{
			PlotID: plotB.ID, GranteeName: "Pedro Santos", ContractDate: testNow, Charge: freeCharge(),
		})
		require.NoError(t, err)
		assert.Equal(t, "2/2024", contractB.ContractNumber)

		burial, err := f.engine.CreateBurial(ctx, f.op, CreateBurialInput{
			PlotID: plotA.ID, DeceasedName: "Jose da Silva", DeathDate: testNow, BurialDate: testNow, Charge: freeCharge(),
		})
		require.NoError(t, err)
		assert.Equal(t, "3/2024", burial.BurialNumber)
	})
}

func TestCreateExhumation(t *testing.T) {
	ctx := context.Background()
	burialDate := time.Date(2020, 1, 1, 0, 0, 0, 0, time.UTC)

	setup := func(t *testing.T) (*fixture, *cemetery.Plot, *interment.Burial) {
		f := newFixture(t)
		plot := f.seedPlot(t, "A-01", 1)
		f.seedContract(t, plot)
		burial := f.seedBurial(t, plot, "10/2020", burialDate)
		plot.Status = cemetery.PlotStatusOccupied
		return f, plot, burial
	}

	t.Run("rejects before the minimum period", func(t *testing.T) {
		f, _, burial := setup(t)

		_, err := f.engine.CreateExhumation(ctx, f.op, CreateExhumationInput{
			BurialID: burial.ID,
			Date:     time.Date(2020, 6, 1, 0, 0, 0, 0, time.UTC),
			Charge:   freeCharge(),
		})
		require.Error(t, err)
		assert.True(t, shared.IsValidation(err))
	})

	t.Run("accepts after the minimum period and frees the plot", func(t *testing.T) {
		f, plot, burial := setup(t)

		exhumation, err := f.engine.CreateExhumation(ctx, f.op, CreateExhumationInput{
			BurialID:      burial.ID,
			Date:          time.Date(2023, 6, 1, 0, 0, 0, 0, time.UTC),
			Reason:        "Reforma do tumulo",
			RequesterName: "Maria Oliveira",
			Charge:        singleCharge("150.00"),
		})
		require.NoError(t, err)
		assert.Equal(t, "1/2024", exhumation.DocumentNumber)

		stored := f.db.Burials[burial.ID]
		assert.True(t, stored.Exhumed)
		assert.False(t, stored.IsActive())
		assert.Equal(t, cemetery.PlotStatusAvailable, f.db.Plots[plot.ID].Status)

		recs, err := f.db.Stores().Receivables.ListBySource(ctx, billing.SourceKindExhumation, exhumation.ID)
		require.NoError(t, err)
		require.Len(t, recs, 1)
		assert.True(t, recs[0].ValueTotal.Equal(decimal.RequireFromString("150.00")))
	})

	t.Run("rejects a second exhumation of the same burial", func(t *testing.T) {
		f, _, burial := setup(t)

		_, err := f.engine.CreateExhumation(ctx, f.op, CreateExhumationInput{
			BurialID: burial.ID, Date: time.Date(2023, 6, 1, 0, 0, 0, 0, time.UTC), Charge: freeCharge(),
		})
		require.NoError(t, err)

		_, err = f.engine.CreateExhumation(ctx, f.op, CreateExhumationInput{
			BurialID: burial.ID, Date: time.Date(2023, 7, 1, 0, 0, 0, 0, time.UTC), Charge: freeCharge(),
		})
		assert.True(t, shared.IsValidation(err))
	})
}

func TestCreateTransfer(t *testing.T) {
	ctx := context.Background()

	setup := func(t *testing.T) (*fixture, *cemetery.Plot, *interment.Burial) {
		f := newFixture(t)
		plot := f.seedPlot(t, "A-01", 1)
		f.seedContract(t, plot)
		burial := f.seedBurial(t, plot, "10/2020", time.Date(2020, 1, 1, 0, 0, 0, 0, time.UTC))
		f.seedExhumation(t, burial, time.Date(2023, 6, 1, 0, 0, 0, 0, time.UTC))
		return f, plot, burial
	}

	t.Run("rejects transfer of an unexhumed burial", func(t *testing.T) {
		f := newFixture(t)
		plot := f.seedPlot(t, "A-01", 1)
		f.seedContract(t, plot)
		burial := f.seedBurial(t, plot, "10/2020", time.Date(2020, 1, 1, 0, 0, 0, 0, time.UTC))

		_, err := f.engine.CreateTransfer(ctx, f.op, CreateTransferInput{
			BurialID:         burial.ID,
			Date:             testNow,
			DestinationKind:  interment.DestinationOssuary,
			OssuaryReference: "OSS-7",
			Charge:           freeCharge(),
		})
		assert.True(t, shared.IsValidation(err))
	})

	t.Run("transfers to ossuary", func(t *testing.T) {
		f, _, burial := setup(t)

		transfer, err := f.engine.CreateTransfer(ctx, f.op, CreateTransferInput{
			BurialID:         burial.ID,
			Date:             testNow,
			DestinationKind:  interment.DestinationOssuary,
			OssuaryReference: "OSS-7",
			Charge:           singleCharge("80.00"),
		})
		require.NoError(t, err)
		assert.True(t, f.db.Burials[burial.ID].Transferred)

		recs, err := f.db.Stores().Receivables.ListBySource(ctx, billing.SourceKindTransfer, transfer.ID)
		require.NoError(t, err)
		require.Len(t, recs, 1)
	})

	t.Run("transfers into another plot by cloning the burial", func(t *testing.T) {
		f, origin, burial := setup(t)
		dest := f.seedPlot(t, "B-01", 1)
		f.seedContract(t, dest)

		destID := dest.ID
		_, err := f.engine.CreateTransfer(ctx, f.op, CreateTransferInput{
			BurialID:          burial.ID,
			Date:              testNow,
			DestinationKind:   interment.DestinationPlot,
			DestinationPlotID: &destID,
			Charge:            freeCharge(),
		})
		require.NoError(t, err)

		// original stays at the origin, flagged transferred
		stored := f.db.Burials[burial.ID]
		assert.True(t, stored.Transferred)
		require.NotNil(t, stored.PlotID)
		assert.Equal(t, origin.ID, *stored.PlotID)

		// clone occupies the destination under the same burial number
		clone, err := f.db.Stores().Burials.FindByNumberInPlot(ctx, dest.ID, burial.BurialNumber)
		require.NoError(t, err)
		assert.NotEqual(t, burial.ID, clone.ID)
		assert.True(t, clone.IsActive())
		assert.Equal(t, cemetery.PlotStatusOccupied, f.db.Plots[dest.ID].Status)
	})

	t.Run("rejects destination plot without contract", func(t *testing.T) {
		f, _, burial := setup(t)
		dest := f.seedPlot(t, "B-01", 1)

		destID := dest.ID
		_, err := f.engine.CreateTransfer(ctx, f.op, CreateTransferInput{
			BurialID:          burial.ID,
			Date:              testNow,
			DestinationKind:   interment.DestinationPlot,
			DestinationPlotID: &destID,
			Charge:            freeCharge(),
		})
		assert.True(t, shared.IsValidation(err))
	})

	t.Run("rejects second transfer of the same burial", func(t *testing.T) {
		f, _, burial := setup(t)

		_, err := f.engine.CreateTransfer(ctx, f.op, CreateTransferInput{
			BurialID: burial.ID, Date: testNow,
			DestinationKind: interment.DestinationOssuary, OssuaryReference: "OSS-7",
			Charge: freeCharge(),
		})
		require.NoError(t, err)

		_, err = f.engine.CreateTransfer(ctx, f.op, CreateTransferInput{
			BurialID: burial.ID, Date: testNow,
			DestinationKind: interment.DestinationOssuary, OssuaryReference: "OSS-8",
			Charge: freeCharge(),
		})
		assert.True(t, shared.IsValidation(err))
	})
}

func TestDeleteTransfer(t *testing.T) {
	ctx := context.Background()

	t.Run("removes the clone and keeps the exhumed flag", func(t *testing.T) {
		f := newFixture(t)
		origin := f.seedPlot(t, "A-01", 1)
		f.seedContract(t, origin)
		burial := f.seedBurial(t, origin, "10/2020", time.Date(2020, 1, 1, 0, 0, 0, 0, time.UTC))
		f.seedExhumation(t, burial, time.Date(2023, 6, 1, 0, 0, 0, 0, time.UTC))
		dest := f.seedPlot(t, "B-01", 1)
		f.seedContract(t, dest)

		destID := dest.ID
		transfer, err := f.engine.CreateTransfer(ctx, f.op, CreateTransferInput{
			BurialID:          burial.ID,
			Date:              testNow,
			DestinationKind:   interment.DestinationPlot,
			DestinationPlotID: &destID,
			Charge:            freeCharge(),
		})
		require.NoError(t, err)
		require.Equal(t, cemetery.PlotStatusOccupied, f.db.Plots[dest.ID].Status)

		require.NoError(t, f.engine.DeleteTransfer(ctx, f.op, transfer.ID))

		stored := f.db.Burials[burial.ID]
		assert.False(t, stored.Transferred)
		assert.True(t, stored.Exhumed, "exhumation record still exists")
		assert.Equal(t, cemetery.PlotStatusAvailable, f.db.Plots[dest.ID].Status)

		_, err = f.db.Stores().Burials.FindByNumberInPlot(ctx, dest.ID, burial.BurialNumber)
		assert.ErrorIs(t, err, shared.ErrNotFound)
	})
}

func TestDeleteExhumation(t *testing.T) {
	ctx := context.Background()

	setup := func(t *testing.T) (*fixture, *cemetery.Plot, *interment.Burial, *interment.Exhumation) {
		f := newFixture(t)
		plot := f.seedPlot(t, "A-01", 1)
		f.seedContract(t, plot)
		burial := f.seedBurial(t, plot, "10/2020", time.Date(2020, 1, 1, 0, 0, 0, 0, time.UTC))
		exhumation := f.seedExhumation(t, burial, time.Date(2023, 6, 1, 0, 0, 0, 0, time.UTC))
		return f, plot, burial, exhumation
	}

	t.Run("re-derives the burial flags and re-occupies the plot", func(t *testing.T) {
		f, plot, burial, exhumation := setup(t)

		require.NoError(t, f.engine.DeleteExhumation(ctx, f.op, exhumation.ID))

		stored := f.db.Burials[burial.ID]
		assert.False(t, stored.Exhumed)
		assert.Nil(t, stored.ExhumationDate)
		assert.True(t, stored.IsActive())
		assert.Equal(t, cemetery.PlotStatusOccupied, f.db.Plots[plot.ID].Status)
	})

	t.Run("rejected while a transfer depends on it", func(t *testing.T) {
		f, _, burial, exhumation := setup(t)

		_, err := f.engine.CreateTransfer(ctx, f.op, CreateTransferInput{
			BurialID: burial.ID, Date: testNow,
			DestinationKind: interment.DestinationOssuary, OssuaryReference: "OSS-7",
			Charge: freeCharge(),
		})
		require.NoError(t, err)

		err = f.engine.DeleteExhumation(ctx, f.op, exhumation.ID)
		assert.ErrorIs(t, err, shared.ErrReferentialIntegrity)
	})
}

func TestDeleteBurial(t *testing.T) {
	ctx := context.Background()

	t.Run("deletes and frees the plot", func(t *testing.T) {
		f := newFixture(t)
		plot := f.seedPlot(t, "A-01", 1)
		f.seedContract(t, plot)
		burial := f.seedBurial(t, plot, "10/2020", time.Date(2020, 1, 1, 0, 0, 0, 0, time.UTC))
		plot.Status = cemetery.PlotStatusOccupied

		require.NoError(t, f.engine.DeleteBurial(ctx, f.op, burial.ID))
		assert.NotContains(t, f.db.Burials, burial.ID)
		assert.Equal(t, cemetery.PlotStatusAvailable, f.db.Plots[plot.ID].Status)
	})

	t.Run("rejected while an exhumation references it", func(t *testing.T) {
		f := newFixture(t)
		plot := f.seedPlot(t, "A-01", 1)
		f.seedContract(t, plot)
		burial := f.seedBurial(t, plot, "10/2020", time.Date(2020, 1, 1, 0, 0, 0, 0, time.UTC))
		f.seedExhumation(t, burial, time.Date(2023, 6, 1, 0, 0, 0, 0, time.UTC))

		err := f.engine.DeleteBurial(ctx, f.op, burial.ID)
		assert.ErrorIs(t, err, shared.ErrReferentialIntegrity)
	})
}

func TestDeleteContract(t *testing.T) {
	ctx := context.Background()

	t.Run("rejected while receivables reference it", func(t *testing.T) {
		f := newFixture(t)
		plot := f.seedPlot(t, "A-01", 1)

		contract, err := f.engine.CreateContract(ctx, f.op, CreateContractInput{
			PlotID: plot.ID, GranteeName: "Maria Oliveira", ContractDate: testNow,
			Charge: singleCharge("500.00"),
		})
		require.NoError(t, err)

		err = f.engine.DeleteContract(ctx, f.op, contract.ID)
		assert.ErrorIs(t, err, shared.ErrReferentialIntegrity)
	})

	t.Run("rejected while the plot has active burials", func(t *testing.T) {
		f := newFixture(t)
		plot := f.seedPlot(t, "A-01", 1)
		contract := f.seedContract(t, plot)
		f.seedBurial(t, plot, "10/2020", time.Date(2020, 1, 1, 0, 0, 0, 0, time.UTC))

		err := f.engine.DeleteContract(ctx, f.op, contract.ID)
		assert.ErrorIs(t, err, shared.ErrReferentialIntegrity)
	})

	t.Run("deletes an unreferenced contract", func(t *testing.T) {
		f := newFixture(t)
		plot := f.seedPlot(t, "A-01", 1)
		contract := f.seedContract(t, plot)

		require.NoError(t, f.engine.DeleteContract(ctx, f.op, contract.ID))
		assert.NotContains(t, f.db.Contracts, contract.ID)
	})
}

func TestAuditTrailIsImmutable(t *testing.T) {
	f := newFixture(t)
	err := f.db.Stores().AuditRecords.Delete(context.Background(), uuid.New())
	assert.True(t, errors.Is(err, shared.ErrImmutableRecord))
}
