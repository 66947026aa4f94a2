package cemetery

import (
	"testing"

	"github.com/google/uuid"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func newTestPlot(t *testing.T, capacity int) *Plot {
	p, err := NewPlot(uuid.New(), uuid.New(), "A-01", capacity)
	require.NoError(t, err)
	return p
}

func TestNewPlot(t *testing.T) {
	t.Run("valid plot starts available", func(t *testing.T) {
		p := newTestPlot(t, 2)
		assert.Equal(t, PlotStatusAvailable, p.Status)
		assert.Equal(t, 2, p.Capacity)
	})

	t.Run("rejects zero capacity", func(t *testing.T) {
		_, err := NewPlot(uuid.New(), uuid.New(), "A-01", 0)
		assert.Error(t, err)
	})

	t.Run("rejects empty identifier", func(t *testing.T) {
		_, err := NewPlot(uuid.New(), uuid.New(), "", 1)
		assert.Error(t, err)
	})
}

func TestPlot_DeriveStatus(t *testing.T) {
	tests := []struct {
		name          string
		capacity      int
		reserved      bool
		activeBurials int
		want          PlotStatus
	}{
		{"empty plot is available", 2, false, 0, PlotStatusAvailable},
		{"below capacity is available", 2, false, 1, PlotStatusAvailable},
		{"at capacity is occupied", 2, false, 2, PlotStatusOccupied},
		{"above capacity is occupied", 2, false, 3, PlotStatusOccupied},
		{"reserved wins over empty", 2, true, 0, PlotStatusReserved},
		{"reserved wins over full", 1, true, 1, PlotStatusReserved},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			p := newTestPlot(t, tt.capacity)
			if tt.reserved {
				p.Reserve("family request")
			}
			assert.Equal(t, tt.want, p.DeriveStatus(tt.activeBurials))
		})
	}
}

func TestPlot_Recompute(t *testing.T) {
	p := newTestPlot(t, 1)

	changed := p.Recompute(1)
	assert.True(t, changed)
	assert.Equal(t, PlotStatusOccupied, p.Status)

	changed = p.Recompute(1)
	assert.False(t, changed, "recompute with same result must report no change")

	changed = p.Recompute(0)
	assert.True(t, changed)
	assert.Equal(t, PlotStatusAvailable, p.Status)
}

func TestPlot_ReservationLifecycle(t *testing.T) {
	p := newTestPlot(t, 1)

	p.Reserve("historic grave")
	assert.True(t, p.Reserved)
	assert.Equal(t, "historic grave", p.ReservedReason)
	assert.Equal(t, PlotStatusReserved, p.DeriveStatus(0))

	p.ReleaseReservation()
	assert.False(t, p.Reserved)
	assert.Empty(t, p.ReservedReason)
	assert.Equal(t, PlotStatusAvailable, p.DeriveStatus(0))
}

func TestPlot_HasVacancy(t *testing.T) {
	p := newTestPlot(t, 2)
	assert.True(t, p.HasVacancy(0))
	assert.True(t, p.HasVacancy(1))
	assert.False(t, p.HasVacancy(2))
}

func TestPlotStatus_IsValid(t *testing.T) {
	assert.True(t, PlotStatusAvailable.IsValid())
	assert.True(t, PlotStatusOccupied.IsValid())
	assert.True(t, PlotStatusReserved.IsValid())
	assert.False(t, PlotStatus("UNKNOWN").IsValid())
}
