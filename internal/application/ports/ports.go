// Package ports defines the persistence seams the application services
// depend on. Implementations live under infrastructure/persistence.
package ports

import (
	"context"

	"github.com/camposanto/backend/internal/domain/audit"
	"github.com/camposanto/backend/internal/domain/billing"
	"github.com/camposanto/backend/internal/domain/cemetery"
	"github.com/camposanto/backend/internal/domain/interment"
	"github.com/camposanto/backend/internal/domain/numbering"
	"github.com/camposanto/backend/internal/domain/tenancy"
)

// Stores bundles every repository over one database handle. Inside
// UnitOfWork.Execute the handle is a transaction.
type Stores struct {
	Tenants      tenancy.TenantRepository
	Users        tenancy.UserRepository
	Sequences    numbering.SequenceRepository
	Cemeteries   cemetery.CemeteryRepository
	Blocks       cemetery.BlockRepository
	Plots        cemetery.PlotRepository
	Burials      interment.BurialRepository
	Contracts    interment.ContractRepository
	Exhumations  interment.ExhumationRepository
	Transfers    interment.TransferRepository
	Receivables  billing.ReceivableRepository
	AuditRecords audit.RecordRepository
}

// UnitOfWork runs application operations atomically. A service transition
// (validation reads, sequence allocation, writes, status recompute, audit
// record) is one all-or-nothing unit; any error rolls everything back,
// sequence numbers included.
type UnitOfWork interface {
	Execute(ctx context.Context, fn func(s Stores) error) error
	// Stores returns non-transactional stores for plain reads.
	Stores() Stores
}
