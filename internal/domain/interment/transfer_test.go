package interment

import (
	"testing"
	"time"

	"github.com/google/uuid"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestNewTransfer_DestinationValidation(t *testing.T) {
	tenantID := uuid.New()
	burialID := uuid.New()
	date := time.Date(2025, 2, 1, 0, 0, 0, 0, time.UTC)

	t.Run("plot destination requires a plot", func(t *testing.T) {
		_, err := NewTransfer(tenantID, burialID, "3/2025", date,
			DestinationPlot, nil, "", "", FreeCharge())
		assert.Error(t, err)
	})

	t.Run("plot destination accepted", func(t *testing.T) {
		dest := uuid.New()
		tr, err := NewTransfer(tenantID, burialID, "3/2025", date,
			DestinationPlot, &dest, "", "", FreeCharge())
		require.NoError(t, err)
		assert.True(t, tr.IsPlotDestination())
		require.NotNil(t, tr.DestinationPlotID)
		assert.Equal(t, dest, *tr.DestinationPlotID)
	})

	t.Run("external cemetery requires a name", func(t *testing.T) {
		_, err := NewTransfer(tenantID, burialID, "3/2025", date,
			DestinationExternalCemetery, nil, "", "", FreeCharge())
		assert.Error(t, err)
	})

	t.Run("external cemetery drops stray plot reference", func(t *testing.T) {
		stray := uuid.New()
		tr, err := NewTransfer(tenantID, burialID, "3/2025", date,
			DestinationExternalCemetery, &stray, "Cemiterio Municipal de Altos", "", FreeCharge())
		require.NoError(t, err)
		assert.Nil(t, tr.DestinationPlotID)
		assert.False(t, tr.IsPlotDestination())
	})

	t.Run("ossuary requires a reference", func(t *testing.T) {
		_, err := NewTransfer(tenantID, burialID, "3/2025", date,
			DestinationOssuary, nil, "", "", FreeCharge())
		assert.Error(t, err)
	})

	t.Run("unknown kind rejected", func(t *testing.T) {
		_, err := NewTransfer(tenantID, burialID, "3/2025", date,
			DestinationKind("MAUSOLEUM"), nil, "", "", FreeCharge())
		assert.Error(t, err)
	})

	t.Run("missing document number rejected", func(t *testing.T) {
		_, err := NewTransfer(tenantID, burialID, "", date,
			DestinationOssuary, nil, "", "OSS-12", FreeCharge())
		assert.Error(t, err)
	})
}
