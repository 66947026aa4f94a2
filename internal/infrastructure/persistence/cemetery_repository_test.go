package persistence

import (
	"context"
	"testing"

	"github.com/camposanto/backend/internal/domain/cemetery"
	"github.com/camposanto/backend/internal/domain/shared"
	"github.com/google/uuid"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"gorm.io/driver/sqlite"
	"gorm.io/gorm"
)

// setupCemeteryTestDB creates an in-memory SQLite database for testing
func setupCemeteryTestDB(t *testing.T) *gorm.DB {
	db, err := gorm.Open(sqlite.Open(":memory:"), &gorm.Config{})
	require.NoError(t, err)

	err = db.Exec(`
		CREATE TABLE cemeteries (
			id TEXT PRIMARY KEY,
			created_at DATETIME NOT NULL,
			updated_at DATETIME NOT NULL,
			version INTEGER NOT NULL DEFAULT 1,
			tenant_id TEXT NOT NULL,
			name TEXT NOT NULL,
			address TEXT,
			city TEXT,
			state TEXT,
			min_exhumation_period_months INTEGER NOT NULL DEFAULT 0
		)
	`).Error
	require.NoError(t, err)

	err = db.Exec(`
		CREATE TABLE blocks (
			id TEXT PRIMARY KEY,
			created_at DATETIME NOT NULL,
			updated_at DATETIME NOT NULL,
			version INTEGER NOT NULL DEFAULT 1,
			tenant_id TEXT NOT NULL,
			cemetery_id TEXT NOT NULL,
			name TEXT NOT NULL,
			description TEXT
		)
	`).Error
	require.NoError(t, err)

	return db
}

func TestGormCemeteryRepository_SaveAndFind(t *testing.T) {
	db := setupCemeteryTestDB(t)
	repo := NewGormCemeteryRepository(db)
	ctx := context.Background()

	tenantID := uuid.New()
	cem, err := cemetery.NewCemetery(tenantID, "Cemiterio Municipal Central", 36)
	require.NoError(t, err)
	cem.City = "Santa Clara"

	require.NoError(t, repo.Save(ctx, cem))

	t.Run("finds by ID", func(t *testing.T) {
		found, err := repo.FindByID(ctx, cem.ID)
		require.NoError(t, err)
		assert.Equal(t, cem.ID, found.ID)
		assert.Equal(t, "Cemiterio Municipal Central", found.Name)
		assert.Equal(t, "Santa Clara", found.City)
		assert.Equal(t, 36, found.MinExhumationPeriodMonths)
	})

	t.Run("finds by ID within tenant", func(t *testing.T) {
		found, err := repo.FindByIDForTenant(ctx, tenantID, cem.ID)
		require.NoError(t, err)
		assert.Equal(t, cem.ID, found.ID)
	})

	t.Run("hides cemetery of another tenant", func(t *testing.T) {
		_, err := repo.FindByIDForTenant(ctx, uuid.New(), cem.ID)
		assert.Equal(t, shared.ErrNotFound, err)
	})

	t.Run("updates in place", func(t *testing.T) {
		require.NoError(t, cem.SetMinExhumationPeriod(48))
		require.NoError(t, repo.Save(ctx, cem))

		found, err := repo.FindByID(ctx, cem.ID)
		require.NoError(t, err)
		assert.Equal(t, 48, found.MinExhumationPeriodMonths)
	})
}

func TestGormCemeteryRepository_ListForTenant(t *testing.T) {
	db := setupCemeteryTestDB(t)
	repo := NewGormCemeteryRepository(db)
	ctx := context.Background()

	tenantID := uuid.New()
	for _, name := range []string{"Cemiterio Norte", "Cemiterio Sul"} {
		cem, err := cemetery.NewCemetery(tenantID, name, 36)
		require.NoError(t, err)
		require.NoError(t, repo.Save(ctx, cem))
	}
	other, err := cemetery.NewCemetery(uuid.New(), "Cemiterio Alheio", 36)
	require.NoError(t, err)
	require.NoError(t, repo.Save(ctx, other))

	cemeteries, total, err := repo.ListForTenant(ctx, tenantID, shared.DefaultFilter())

	require.NoError(t, err)
	assert.Equal(t, int64(2), total)
	assert.Len(t, cemeteries, 2)
	for _, c := range cemeteries {
		assert.Equal(t, tenantID, c.TenantID)
	}
}

func TestGormCemeteryRepository_Delete(t *testing.T) {
	db := setupCemeteryTestDB(t)
	repo := NewGormCemeteryRepository(db)
	ctx := context.Background()

	cem, err := cemetery.NewCemetery(uuid.New(), "Cemiterio Municipal", 36)
	require.NoError(t, err)
	require.NoError(t, repo.Save(ctx, cem))

	t.Run("deletes existing cemetery", func(t *testing.T) {
		require.NoError(t, repo.Delete(ctx, cem.ID))

		_, err := repo.FindByID(ctx, cem.ID)
		assert.Equal(t, shared.ErrNotFound, err)
	})

	t.Run("returns error when already gone", func(t *testing.T) {
		err := repo.Delete(ctx, cem.ID)
		assert.Equal(t, shared.ErrNotFound, err)
	})
}

func TestGormCemeteryRepository_CountBlocks(t *testing.T) {
	db := setupCemeteryTestDB(t)
	repo := NewGormCemeteryRepository(db)
	blockRepo := NewGormBlockRepository(db)
	ctx := context.Background()

	tenantID := uuid.New()
	cem, err := cemetery.NewCemetery(tenantID, "Cemiterio Municipal", 36)
	require.NoError(t, err)
	require.NoError(t, repo.Save(ctx, cem))

	count, err := repo.CountBlocks(ctx, cem.ID)
	require.NoError(t, err)
	assert.Equal(t, int64(0), count)

	for _, name := range []string{"Quadra A", "Quadra B"} {
		block, err := cemetery.NewBlock(tenantID, cem.ID, name)
		require.NoError(t, err)
		require.NoError(t, blockRepo.Save(ctx, block))
	}

	count, err = repo.CountBlocks(ctx, cem.ID)
	require.NoError(t, err)
	assert.Equal(t, int64(2), count)
}
