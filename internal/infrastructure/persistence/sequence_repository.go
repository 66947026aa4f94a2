package persistence

import (
	"context"
	"errors"
	"time"

	"github.com/camposanto/backend/internal/domain/numbering"
	"github.com/camposanto/backend/internal/domain/shared"
	"github.com/camposanto/backend/internal/infrastructure/persistence/models"
	"github.com/google/uuid"
	"github.com/jackc/pgx/v5/pgconn"
	"gorm.io/gorm"
	"gorm.io/gorm/clause"
)

// GormSequenceRepository implements SequenceRepository using GORM. It must
// run on a transactional handle; allocation takes a FOR UPDATE lock on the
// tenant/year counter rows so concurrent allocations serialize instead of
// issuing the same number twice. The unique index over
// (tenant_id, year, number) backs the lock as a second line of defense.
type GormSequenceRepository struct {
	db  *gorm.DB
	now func() time.Time
}

// NewGormSequenceRepository creates a new GormSequenceRepository
func NewGormSequenceRepository(db *gorm.DB) *GormSequenceRepository {
	return &GormSequenceRepository{db: db, now: time.Now}
}

// NextDocumentNumber allocates the next number in the current year's run and
// returns it formatted as "<sequence>/<year>".
func (r *GormSequenceRepository) NextDocumentNumber(ctx context.Context, tenantID uuid.UUID) (string, error) {
	year := numbering.CurrentYear(r.now())

	var rows []models.SequenceCounterModel
	if err := r.db.WithContext(ctx).
		Clauses(clause.Locking{Strength: "UPDATE"}).
		Where("tenant_id = ? AND year = ?", tenantID, year).
		Order("number DESC").
		Limit(1).
		Find(&rows).Error; err != nil {
		return "", translateContention(err)
	}

	var max int64
	if len(rows) > 0 {
		max = rows[0].Number
	}

	counter, err := numbering.NewSequenceCounter(tenantID, year, max+1)
	if err != nil {
		return "", err
	}
	if err := r.db.WithContext(ctx).
		Create(models.SequenceCounterModelFromDomain(counter)).Error; err != nil {
		return "", translateContention(err)
	}

	return counter.DocumentNumber(), nil
}

// translateContention maps lock and unique-index failures to ErrConcurrency
// so the caller retries the whole transaction. The first allocation of a
// tenant/year run locks no rows, so two transactions can both read max zero;
// the loser hits the unique index over (tenant_id, year, number).
func translateContention(err error) error {
	if errors.Is(err, gorm.ErrDuplicatedKey) {
		return shared.ErrConcurrency
	}
	var pgErr *pgconn.PgError
	if errors.As(err, &pgErr) {
		switch pgErr.Code {
		case "23505", // unique_violation
			"55P03", // lock_not_available
			"40001", // serialization_failure
			"40P01": // deadlock_detected
			return shared.ErrConcurrency
		}
	}
	return err
}

// MaxNumber returns the highest number issued for the tenant in the given
// year, zero when the run has not started.
func (r *GormSequenceRepository) MaxNumber(ctx context.Context, tenantID uuid.UUID, year int) (int64, error) {
	var result struct {
		Max int64
	}
	if err := r.db.WithContext(ctx).
		Model(&models.SequenceCounterModel{}).
		Select("COALESCE(MAX(number), 0) as max").
		Where("tenant_id = ? AND year = ?", tenantID, year).
		Scan(&result).Error; err != nil {
		return 0, err
	}
	return result.Max, nil
}

// Ensure GormSequenceRepository implements SequenceRepository
var _ numbering.SequenceRepository = (*GormSequenceRepository)(nil)
