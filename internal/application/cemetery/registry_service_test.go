package cemetery

import (
	"context"
	"testing"
	"time"

	"github.com/camposanto/backend/internal/application/apptest"
	auditapp "github.com/camposanto/backend/internal/application/audit"
	"github.com/camposanto/backend/internal/domain/audit"
	"github.com/camposanto/backend/internal/domain/cemetery"
	"github.com/camposanto/backend/internal/domain/interment"
	"github.com/camposanto/backend/internal/domain/shared"
	"github.com/camposanto/backend/internal/domain/tenancy"
	"github.com/google/uuid"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"go.uber.org/zap"
)

type registryFixture struct {
	db      *apptest.MemDB
	service *RegistryService
	op      shared.OperationContext
	tenant  *tenancy.Tenant
}

func newRegistryFixture(t *testing.T) *registryFixture {
	t.Helper()

	db := apptest.NewMemDB(2024)
	tenant, err := tenancy.NewTenant("Prefeitura de Santa Clara", "Municipio de Santa Clara", "12.345.678/0001-00", uuid.New())
	require.NoError(t, err)
	db.Tenants[tenant.ID] = tenant

	service := NewRegistryService(&apptest.MemUOW{DB: db}, auditapp.NewRecorder(zap.NewNop()), zap.NewNop())
	return &registryFixture{
		db:      db,
		service: service,
		op:      shared.NewOperationContext(tenant.ID),
		tenant:  tenant,
	}
}

func TestCemeteryCRUD(t *testing.T) {
	ctx := context.Background()

	t.Run("create and update", func(t *testing.T) {
		f := newRegistryFixture(t)

		cem, err := f.service.CreateCemetery(ctx, f.op, CreateCemeteryInput{
			Name:                      "Cemiterio Municipal",
			City:                      "Santa Clara",
			State:                     "SP",
			MinExhumationPeriodMonths: 36,
		})
		require.NoError(t, err)
		assert.Equal(t, f.tenant.ID, cem.TenantID)
		assert.Equal(t, 36, cem.MinExhumationPeriodMonths)

		updated, err := f.service.UpdateCemetery(ctx, f.op, cem.ID, UpdateCemeteryInput{
			Name:                      "Cemiterio Municipal Central",
			City:                      "Santa Clara",
			State:                     "SP",
			MinExhumationPeriodMonths: 48,
		})
		require.NoError(t, err)
		assert.Equal(t, "Cemiterio Municipal Central", updated.Name)
		assert.Equal(t, 48, updated.MinExhumationPeriodMonths)
	})

	t.Run("delete is rejected while blocks exist", func(t *testing.T) {
		f := newRegistryFixture(t)

		cem, err := f.service.CreateCemetery(ctx, f.op, CreateCemeteryInput{Name: "Cemiterio Municipal", MinExhumationPeriodMonths: 36})
		require.NoError(t, err)
		_, err = f.service.CreateBlock(ctx, f.op, CreateBlockInput{CemeteryID: cem.ID, Name: "Quadra A"})
		require.NoError(t, err)

		err = f.service.DeleteCemetery(ctx, f.op, cem.ID)
		assert.ErrorIs(t, err, shared.ErrReferentialIntegrity)
		assert.Contains(t, f.db.Cemeteries, cem.ID)
	})

	t.Run("delete succeeds once empty", func(t *testing.T) {
		f := newRegistryFixture(t)

		cem, err := f.service.CreateCemetery(ctx, f.op, CreateCemeteryInput{Name: "Cemiterio Municipal", MinExhumationPeriodMonths: 36})
		require.NoError(t, err)
		block, err := f.service.CreateBlock(ctx, f.op, CreateBlockInput{CemeteryID: cem.ID, Name: "Quadra A"})
		require.NoError(t, err)

		require.NoError(t, f.service.DeleteBlock(ctx, f.op, block.ID))
		require.NoError(t, f.service.DeleteCemetery(ctx, f.op, cem.ID))
		assert.NotContains(t, f.db.Cemeteries, cem.ID)
	})

	t.Run("tenant isolation", func(t *testing.T) {
		f := newRegistryFixture(t)

		cem, err := f.service.CreateCemetery(ctx, f.op, CreateCemeteryInput{Name: "Cemiterio Municipal", MinExhumationPeriodMonths: 36})
		require.NoError(t, err)

		foreign := shared.NewOperationContext(uuid.New())
		_, err = f.service.GetCemetery(ctx, foreign, cem.ID)
		assert.ErrorIs(t, err, shared.ErrNotFound)
	})
}

func TestBlockAndPlotGuards(t *testing.T) {
	ctx := context.Background()

	setup := func(t *testing.T) (*registryFixture, *cemetery.Cemetery, *cemetery.Block) {
		f := newRegistryFixture(t)
		cem, err := f.service.CreateCemetery(ctx, f.op, CreateCemeteryInput{Name: "Cemiterio Municipal", MinExhumationPeriodMonths: 36})
		require.NoError(t, err)
		block, err := f.service.CreateBlock(ctx, f.op, CreateBlockInput{CemeteryID: cem.ID, Name: "Quadra A"})
		require.NoError(t, err)
		return f, cem, block
	}

	t.Run("block delete is rejected while plots exist", func(t *testing.T) {
		f, _, block := setup(t)

		_, err := f.service.CreatePlot(ctx, f.op, CreatePlotInput{BlockID: block.ID, Identifier: "A-01", Capacity: 1})
		require.NoError(t, err)

		err = f.service.DeleteBlock(ctx, f.op, block.ID)
		assert.ErrorIs(t, err, shared.ErrReferentialIntegrity)
	})

	t.Run("plot delete is rejected while burial records reference it", func(t *testing.T) {
		f, _, block := setup(t)

		plot, err := f.service.CreatePlot(ctx, f.op, CreatePlotInput{BlockID: block.ID, Identifier: "A-01", Capacity: 1})
		require.NoError(t, err)

		burial, err := interment.NewBurial(f.tenant.ID, plot.ID, "10/2020", "Jose da Silva",
			time.Date(2020, 1, 1, 0, 0, 0, 0, time.UTC), time.Date(2020, 1, 2, 0, 0, 0, 0, time.UTC), interment.FreeCharge())
		require.NoError(t, err)
		// historical records block deletion even after exhumation
		require.NoError(t, burial.MarkExhumed(time.Date(2023, 6, 1, 0, 0, 0, 0, time.UTC)))
		f.db.Burials[burial.ID] = burial

		err = f.service.DeletePlot(ctx, f.op, plot.ID)
		assert.ErrorIs(t, err, shared.ErrReferentialIntegrity)
	})

	t.Run("plot delete succeeds without burials", func(t *testing.T) {
		f, _, block := setup(t)

		plot, err := f.service.CreatePlot(ctx, f.op, CreatePlotInput{BlockID: block.ID, Identifier: "A-01", Capacity: 1})
		require.NoError(t, err)
		require.NoError(t, f.service.DeletePlot(ctx, f.op, plot.ID))
		assert.NotContains(t, f.db.Plots, plot.ID)
	})
}

func TestPlotReservation(t *testing.T) {
	ctx := context.Background()

	f := newRegistryFixture(t)
	cem, err := f.service.CreateCemetery(ctx, f.op, CreateCemeteryInput{Name: "Cemiterio Municipal", MinExhumationPeriodMonths: 36})
	require.NoError(t, err)
	block, err := f.service.CreateBlock(ctx, f.op, CreateBlockInput{CemeteryID: cem.ID, Name: "Quadra A"})
	require.NoError(t, err)
	plot, err := f.service.CreatePlot(ctx, f.op, CreatePlotInput{BlockID: block.ID, Identifier: "A-01", Capacity: 1})
	require.NoError(t, err)

	reserved, err := f.service.ReservePlot(ctx, f.op, plot.ID, "Familia Oliveira")
	require.NoError(t, err)
	assert.Equal(t, cemetery.PlotStatusReserved, reserved.Status)
	assert.Equal(t, "Familia Oliveira", reserved.ReservedReason)

	released, err := f.service.ReleasePlotReservation(ctx, f.op, plot.ID)
	require.NoError(t, err)
	assert.Equal(t, cemetery.PlotStatusAvailable, released.Status)
	assert.False(t, released.Reserved)
}

func TestPlotCapacityUpdateRederivesStatus(t *testing.T) {
	ctx := context.Background()

	f := newRegistryFixture(t)
	cem, err := f.service.CreateCemetery(ctx, f.op, CreateCemeteryInput{Name: "Cemiterio Municipal", MinExhumationPeriodMonths: 36})
	require.NoError(t, err)
	block, err := f.service.CreateBlock(ctx, f.op, CreateBlockInput{CemeteryID: cem.ID, Name: "Quadra A"})
	require.NoError(t, err)
	plot, err := f.service.CreatePlot(ctx, f.op, CreatePlotInput{BlockID: block.ID, Identifier: "A-01", Capacity: 1})
	require.NoError(t, err)

	burial, err := interment.NewBurial(f.tenant.ID, plot.ID, "10/2024", "Jose da Silva",
		time.Date(2024, 1, 1, 0, 0, 0, 0, time.UTC), time.Date(2024, 1, 2, 0, 0, 0, 0, time.UTC), interment.FreeCharge())
	require.NoError(t, err)
	f.db.Burials[burial.ID] = burial

	// one active burial in a capacity-1 plot: raising capacity reopens it
	full, err := f.service.UpdatePlot(ctx, f.op, plot.ID, UpdatePlotInput{Identifier: "A-01", Capacity: 1})
	require.NoError(t, err)
	assert.Equal(t, cemetery.PlotStatusOccupied, full.Status)

	widened, err := f.service.UpdatePlot(ctx, f.op, plot.ID, UpdatePlotInput{Identifier: "A-01", Capacity: 2})
	require.NoError(t, err)
	assert.Equal(t, cemetery.PlotStatusAvailable, widened.Status)
}

func TestRegistryAudit(t *testing.T) {
	ctx := context.Background()

	f := newRegistryFixture(t)
	_, err := f.service.CreateCemetery(ctx, f.op, CreateCemeteryInput{Name: "Cemiterio Municipal", MinExhumationPeriodMonths: 36})
	require.NoError(t, err)

	require.Len(t, f.db.AuditTrail, 1)
	assert.Equal(t, audit.ActionAdd, f.db.AuditTrail[0].Action)
	assert.Equal(t, "Cemetery", f.db.AuditTrail[0].EntityName)
}
