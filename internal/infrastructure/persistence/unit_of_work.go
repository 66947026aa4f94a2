package persistence

import (
	"context"

	"github.com/camposanto/backend/internal/application/ports"
	"gorm.io/gorm"
)

// GormUnitOfWork implements ports.UnitOfWork over a gorm database. Execute
// opens one transaction and hands the services a Stores bundle whose
// repositories all share that transaction handle, so a failing step rolls
// back every write including allocated sequence numbers.
type GormUnitOfWork struct {
	database *Database
}

// NewGormUnitOfWork creates a new GormUnitOfWork
func NewGormUnitOfWork(database *Database) *GormUnitOfWork {
	return &GormUnitOfWork{database: database}
}

// Execute runs fn inside a database transaction
func (u *GormUnitOfWork) Execute(ctx context.Context, fn func(s ports.Stores) error) error {
	return u.database.DB.WithContext(ctx).Transaction(func(tx *gorm.DB) error {
		return fn(buildStores(tx))
	})
}

// Stores returns non-transactional stores for plain reads
func (u *GormUnitOfWork) Stores() ports.Stores {
	return buildStores(u.database.DB)
}

func buildStores(db *gorm.DB) ports.Stores {
	return ports.Stores{
		Tenants:      NewGormTenantRepository(db),
		Users:        NewGormUserRepository(db),
		Sequences:    NewGormSequenceRepository(db),
		Cemeteries:   NewGormCemeteryRepository(db),
		Blocks:       NewGormBlockRepository(db),
		Plots:        NewGormPlotRepository(db),
		Burials:      NewGormBurialRepository(db),
		Contracts:    NewGormContractRepository(db),
		Exhumations:  NewGormExhumationRepository(db),
		Transfers:    NewGormTransferRepository(db),
		Receivables:  NewGormReceivableRepository(db),
		AuditRecords: NewGormAuditRecordRepository(db),
	}
}

// Ensure GormUnitOfWork implements ports.UnitOfWork
var _ ports.UnitOfWork = (*GormUnitOfWork)(nil)
