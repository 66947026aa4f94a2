package audit

import (
	"testing"

	"github.com/google/uuid"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestNewRecord(t *testing.T) {
	tenantID := uuid.New()
	userID := uuid.New()

	t.Run("valid record", func(t *testing.T) {
		r, err := NewRecord(tenantID, &userID, ActionAdd, "Burial", "abc-123", "Jose da Silva")
		require.NoError(t, err)
		assert.Equal(t, tenantID, r.TenantID)
		assert.Equal(t, ActionAdd, r.Action)
		assert.False(t, r.OccurredAt.IsZero())
	})

	t.Run("nil user is allowed", func(t *testing.T) {
		_, err := NewRecord(tenantID, nil, ActionDelete, "Plot", "abc-123", "A-01")
		assert.NoError(t, err)
	})

	t.Run("rejects nil tenant", func(t *testing.T) {
		_, err := NewRecord(uuid.Nil, nil, ActionAdd, "Burial", "abc-123", "")
		assert.Error(t, err)
	})

	t.Run("rejects unknown action", func(t *testing.T) {
		_, err := NewRecord(tenantID, nil, Action("UPSERT"), "Burial", "abc-123", "")
		assert.Error(t, err)
	})

	t.Run("rejects empty entity name", func(t *testing.T) {
		_, err := NewRecord(tenantID, nil, ActionAdd, "", "abc-123", "")
		assert.Error(t, err)
	})
}
