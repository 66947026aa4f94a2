package persistence

import (
	"context"
	"database/sql"
	"testing"
	"time"

	"github.com/DATA-DOG/go-sqlmock"
	"github.com/camposanto/backend/internal/domain/audit"
	"github.com/camposanto/backend/internal/domain/shared"
	"github.com/google/uuid"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"gorm.io/driver/postgres"
	"gorm.io/gorm"
)

// newMockAuditRepository creates a GormAuditRecordRepository with a mocked SQL connection
func newMockAuditRepository(t *testing.T) (*GormAuditRecordRepository, sqlmock.Sqlmock, *sql.DB) {
	mockDB, mock, err := sqlmock.New()
	require.NoError(t, err)

	dialector := postgres.New(postgres.Config{
		Conn:       mockDB,
		DriverName: "postgres",
	})

	gormDB, err := gorm.Open(dialector, &gorm.Config{
		SkipDefaultTransaction: true,
	})
	require.NoError(t, err)

	return NewGormAuditRecordRepository(gormDB), mock, mockDB
}

func TestGormAuditRecordRepository_Save(t *testing.T) {
	t.Run("appends a record", func(t *testing.T) {
		repo, mock, mockDB := newMockAuditRepository(t)
		defer mockDB.Close()

		userID := uuid.New()
		record, err := audit.NewRecord(uuid.New(), &userID, audit.ActionAdd, "Sepultado", uuid.New().String(), "Burial registered")
		require.NoError(t, err)

		mock.ExpectExec(`INSERT INTO "audit_records"`).
			WillReturnResult(sqlmock.NewResult(1, 1))

		err = repo.Save(context.Background(), record)

		assert.NoError(t, err)
		assert.NoError(t, mock.ExpectationsWereMet())
	})
}

func TestGormAuditRecordRepository_ListForTenant(t *testing.T) {
	t.Run("lists tenant records", func(t *testing.T) {
		repo, mock, mockDB := newMockAuditRepository(t)
		defer mockDB.Close()

		tenantID := uuid.New()
		userID := uuid.New()

		mock.ExpectQuery(`SELECT count\(\*\) FROM "audit_records" WHERE tenant_id = \$1`).
			WithArgs(tenantID).
			WillReturnRows(sqlmock.NewRows([]string{"count"}).AddRow(1))

		rows := sqlmock.NewRows([]string{"id", "created_at", "updated_at", "tenant_id", "user_id", "action", "entity_name", "entity_id", "summary", "occurred_at"}).
			AddRow(uuid.New(), time.Now(), time.Now(), tenantID, userID, "ADD", "Tumulo", uuid.New().String(), "Plot created", time.Now())

		mock.ExpectQuery(`SELECT \* FROM "audit_records" WHERE tenant_id = \$1 ORDER BY created_at DESC LIMIT .*`).
			WithArgs(tenantID, 20).
			WillReturnRows(rows)

		records, total, err := repo.ListForTenant(context.Background(), tenantID, shared.DefaultFilter())

		assert.NoError(t, err)
		assert.Equal(t, int64(1), total)
		require.Len(t, records, 1)
		assert.Equal(t, tenantID, records[0].TenantID)
		assert.Equal(t, audit.ActionAdd, records[0].Action)
		assert.Equal(t, "Tumulo", records[0].EntityName)
		assert.NoError(t, mock.ExpectationsWereMet())
	})

	t.Run("filters by search term", func(t *testing.T) {
		repo, mock, mockDB := newMockAuditRepository(t)
		defer mockDB.Close()

		tenantID := uuid.New()
		filter := shared.DefaultFilter()
		filter.Search = "exhum"

		mock.ExpectQuery(`SELECT count\(\*\) FROM "audit_records" WHERE tenant_id = \$1 AND \(entity_name ILIKE \$2 OR summary ILIKE \$3\)`).
			WithArgs(tenantID, "%exhum%", "%exhum%").
			WillReturnRows(sqlmock.NewRows([]string{"count"}).AddRow(0))

		mock.ExpectQuery(`SELECT \* FROM "audit_records" WHERE tenant_id = \$1 AND \(entity_name ILIKE \$2 OR summary ILIKE \$3\) ORDER BY created_at DESC LIMIT .*`).
			WithArgs(tenantID, "%exhum%", "%exhum%", 20).
			WillReturnRows(sqlmock.NewRows([]string{"id", "created_at", "updated_at", "tenant_id", "user_id", "action", "entity_name", "entity_id", "summary", "occurred_at"}))

		records, total, err := repo.ListForTenant(context.Background(), tenantID, filter)

		assert.NoError(t, err)
		assert.Equal(t, int64(0), total)
		assert.Empty(t, records)
		assert.NoError(t, mock.ExpectationsWereMet())
	})
}

func TestGormAuditRecordRepository_Delete(t *testing.T) {
	t.Run("refuses deletion unconditionally", func(t *testing.T) {
		repo, _, mockDB := newMockAuditRepository(t)
		defer mockDB.Close()

		err := repo.Delete(context.Background(), uuid.New())

		assert.Equal(t, shared.ErrImmutableRecord, err)
	})
}
