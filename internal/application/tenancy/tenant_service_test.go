package tenancy

import (
	"context"
	"testing"

	"github.com/camposanto/backend/internal/application/apptest"
	auditapp "github.com/camposanto/backend/internal/application/audit"
	"github.com/camposanto/backend/internal/domain/shared"
	"github.com/shopspring/decimal"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"go.uber.org/zap"
)

func newTenantService(db *apptest.MemDB) *TenantService {
	return NewTenantService(&apptest.MemUOW{DB: db}, auditapp.NewRecorder(zap.NewNop()), zap.NewNop())
}

func TestRegisterTenant(t *testing.T) {
	ctx := context.Background()

	t.Run("creates tenant with master owner", func(t *testing.T) {
		db := apptest.NewMemDB(2024)
		service := newTenantService(db)

		tenant, err := service.RegisterTenant(ctx, RegisterTenantInput{
			Name:       "Prefeitura de Santa Clara",
			LegalName:  "Municipio de Santa Clara",
			Document:   "12.345.678/0001-00",
			OwnerName:  "Ana Souza",
			OwnerEmail: "ana@santaclara.sp.gov.br",
		})
		require.NoError(t, err)
		assert.True(t, tenant.Active)
		assert.True(t, tenant.PenaltyRates.FinePercent.IsZero())

		owner := db.Users[tenant.OwnerUserID]
		require.NotNil(t, owner)
		assert.True(t, owner.Master)
		assert.Equal(t, tenant.ID, owner.TenantID)
	})

	t.Run("rejects duplicate owner email", func(t *testing.T) {
		db := apptest.NewMemDB(2024)
		service := newTenantService(db)

		_, err := service.RegisterTenant(ctx, RegisterTenantInput{
			Name: "Prefeitura A", OwnerName: "Ana Souza", OwnerEmail: "ana@prefeitura.gov.br",
		})
		require.NoError(t, err)

		_, err = service.RegisterTenant(ctx, RegisterTenantInput{
			Name: "Prefeitura B", OwnerName: "Outra Ana", OwnerEmail: "ana@prefeitura.gov.br",
		})
		assert.True(t, shared.IsValidation(err))
	})
}

func TestConfigurePenaltyRates(t *testing.T) {
	ctx := context.Background()
	db := apptest.NewMemDB(2024)
	service := newTenantService(db)

	tenant, err := service.RegisterTenant(ctx, RegisterTenantInput{
		Name: "Prefeitura de Santa Clara", OwnerName: "Ana Souza", OwnerEmail: "ana@santaclara.sp.gov.br",
	})
	require.NoError(t, err)
	op := shared.NewOperationContext(tenant.ID)

	updated, err := service.ConfigurePenaltyRates(ctx, op, PenaltyRatesInput{
		FinePercent:      decimal.RequireFromString("2"),
		InterestPercent:  decimal.RequireFromString("1"),
		DailyPenaltyRate: decimal.RequireFromString("0.10"),
	})
	require.NoError(t, err)
	assert.True(t, updated.PenaltyRates.FinePercent.Equal(decimal.RequireFromString("2")))

	_, err = service.ConfigurePenaltyRates(ctx, op, PenaltyRatesInput{
		FinePercent: decimal.RequireFromString("-1"),
	})
	assert.True(t, shared.IsValidation(err))
}
