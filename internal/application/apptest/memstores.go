// Package apptest provides in-memory fakes of the persistence ports for
// application service tests. The fakes mirror the repository contracts
// closely enough to drive the services; transactional rollback is not
// emulated, so tests assert on success paths and on rejections that happen
// before any write.
package apptest

import (
	"context"
	"sort"
	"time"

	"github.com/camposanto/backend/internal/application/ports"
	"github.com/camposanto/backend/internal/domain/audit"
	"github.com/camposanto/backend/internal/domain/billing"
	"github.com/camposanto/backend/internal/domain/cemetery"
	"github.com/camposanto/backend/internal/domain/interment"
	"github.com/camposanto/backend/internal/domain/numbering"
	"github.com/camposanto/backend/internal/domain/shared"
	"github.com/camposanto/backend/internal/domain/shared/valueobject"
	"github.com/camposanto/backend/internal/domain/tenancy"
	"github.com/google/uuid"
)

// MemDB backs the fake repositories. Tests seed and inspect it directly.
type MemDB struct {
	Tenants     map[uuid.UUID]*tenancy.Tenant
	Users       map[uuid.UUID]*tenancy.User
	Cemeteries  map[uuid.UUID]*cemetery.Cemetery
	Blocks      map[uuid.UUID]*cemetery.Block
	Plots       map[uuid.UUID]*cemetery.Plot
	Burials     map[uuid.UUID]*interment.Burial
	Contracts   map[uuid.UUID]*interment.ConcessionContract
	Exhumations map[uuid.UUID]*interment.Exhumation
	Transfers   map[uuid.UUID]*interment.Transfer
	Receivables map[uuid.UUID]*billing.Receivable
	AuditTrail  []*audit.Record

	SeqYear int
	Seqs    map[uuid.UUID]int64
}

// NewMemDB creates an empty store issuing document numbers for the given year.
func NewMemDB(seqYear int) *MemDB {
	return &MemDB{
		Tenants:     make(map[uuid.UUID]*tenancy.Tenant),
		Users:       make(map[uuid.UUID]*tenancy.User),
		Cemeteries:  make(map[uuid.UUID]*cemetery.Cemetery),
		Blocks:      make(map[uuid.UUID]*cemetery.Block),
		Plots:       make(map[uuid.UUID]*cemetery.Plot),
		Burials:     make(map[uuid.UUID]*interment.Burial),
		Contracts:   make(map[uuid.UUID]*interment.ConcessionContract),
		Exhumations: make(map[uuid.UUID]*interment.Exhumation),
		Transfers:   make(map[uuid.UUID]*interment.Transfer),
		Receivables: make(map[uuid.UUID]*billing.Receivable),
		SeqYear:     seqYear,
		Seqs:        make(map[uuid.UUID]int64),
	}
}

// Stores returns the full repository bundle over this store.
func (db *MemDB) Stores() ports.Stores {
	return ports.Stores{
		Tenants:      &memTenants{db},
		Users:        &memUsers{db},
		Sequences:    &memSequences{db},
		Cemeteries:   &memCemeteries{db},
		Blocks:       &memBlocks{db},
		Plots:        &memPlots{db},
		Burials:      &memBurials{db},
		Contracts:    &memContracts{db},
		Exhumations:  &memExhumations{db},
		Transfers:    &memTransfers{db},
		Receivables:  &memReceivables{db},
		AuditRecords: &memAudit{db},
	}
}

// MemUOW runs the unit-of-work function against the shared store.
type MemUOW struct {
	DB *MemDB
}

func (u *MemUOW) Execute(_ context.Context, fn func(s ports.Stores) error) error {
	return fn(u.DB.Stores())
}

func (u *MemUOW) Stores() ports.Stores {
	return u.DB.Stores()
}

type memTenants struct{ db *MemDB }

func (r *memTenants) FindByID(_ context.Context, id uuid.UUID) (*tenancy.Tenant, error) {
	t, ok := r.db.Tenants[id]
	if !ok {
		return nil, shared.ErrNotFound
	}
	return t, nil
}

func (r *memTenants) Save(_ context.Context, t *tenancy.Tenant) error {
	r.db.Tenants[t.ID] = t
	return nil
}

func (r *memTenants) Delete(_ context.Context, id uuid.UUID) error {
	delete(r.db.Tenants, id)
	return nil
}

type memUsers struct{ db *MemDB }

func (r *memUsers) FindByID(_ context.Context, id uuid.UUID) (*tenancy.User, error) {
	u, ok := r.db.Users[id]
	if !ok {
		return nil, shared.ErrNotFound
	}
	return u, nil
}

func (r *memUsers) FindByEmail(_ context.Context, email string) (*tenancy.User, error) {
	for _, u := range r.db.Users {
		if u.Email == email {
			return u, nil
		}
	}
	return nil, shared.ErrNotFound
}

func (r *memUsers) Save(_ context.Context, u *tenancy.User) error {
	r.db.Users[u.ID] = u
	return nil
}

type memSequences struct{ db *MemDB }

func (r *memSequences) NextDocumentNumber(_ context.Context, tenantID uuid.UUID) (string, error) {
	r.db.Seqs[tenantID]++
	return numbering.FormatDocumentNumber(r.db.Seqs[tenantID], r.db.SeqYear), nil
}

func (r *memSequences) MaxNumber(_ context.Context, tenantID uuid.UUID, year int) (int64, error) {
	if year != r.db.SeqYear {
		return 0, nil
	}
	return r.db.Seqs[tenantID], nil
}

type memCemeteries struct{ db *MemDB }

func (r *memCemeteries) FindByID(_ context.Context, id uuid.UUID) (*cemetery.Cemetery, error) {
	c, ok := r.db.Cemeteries[id]
	if !ok {
		return nil, shared.ErrNotFound
	}
	return c, nil
}

func (r *memCemeteries) FindByIDForTenant(ctx context.Context, tenantID, id uuid.UUID) (*cemetery.Cemetery, error) {
	c, err := r.FindByID(ctx, id)
	if err != nil || c.TenantID != tenantID {
		return nil, shared.ErrNotFound
	}
	return c, nil
}

func (r *memCemeteries) ListForTenant(_ context.Context, tenantID uuid.UUID, _ shared.Filter) ([]cemetery.Cemetery, int64, error) {
	var out []cemetery.Cemetery
	for _, c := range r.db.Cemeteries {
		if c.TenantID == tenantID {
			out = append(out, *c)
		}
	}
	return out, int64(len(out)), nil
}

func (r *memCemeteries) Save(_ context.Context, c *cemetery.Cemetery) error {
	r.db.Cemeteries[c.ID] = c
	return nil
}

func (r *memCemeteries) Delete(_ context.Context, id uuid.UUID) error {
	delete(r.db.Cemeteries, id)
	return nil
}

func (r *memCemeteries) CountBlocks(_ context.Context, cemeteryID uuid.UUID) (int64, error) {
	var n int64
	for _, b := range r.db.Blocks {
		if b.CemeteryID == cemeteryID {
			n++
		}
	}
	return n, nil
}

type memBlocks struct{ db *MemDB }

func (r *memBlocks) FindByID(_ context.Context, id uuid.UUID) (*cemetery.Block, error) {
	b, ok := r.db.Blocks[id]
	if !ok {
		return nil, shared.ErrNotFound
	}
	return b, nil
}

func (r *memBlocks) ListForCemetery(_ context.Context, cemeteryID uuid.UUID, _ shared.Filter) ([]cemetery.Block, int64, error) {
	var out []cemetery.Block
	for _, b := range r.db.Blocks {
		if b.CemeteryID == cemeteryID {
			out = append(out, *b)
		}
	}
	return out, int64(len(out)), nil
}

func (r *memBlocks) Save(_ context.Context, b *cemetery.Block) error {
	r.db.Blocks[b.ID] = b
	return nil
}

func (r *memBlocks) Delete(_ context.Context, id uuid.UUID) error {
	delete(r.db.Blocks, id)
	return nil
}

func (r *memBlocks) CountPlots(_ context.Context, blockID uuid.UUID) (int64, error) {
	var n int64
	for _, p := range r.db.Plots {
		if p.BlockID == blockID {
			n++
		}
	}
	return n, nil
}

type memPlots struct{ db *MemDB }

func (r *memPlots) FindByID(_ context.Context, id uuid.UUID) (*cemetery.Plot, error) {
	p, ok := r.db.Plots[id]
	if !ok {
		return nil, shared.ErrNotFound
	}
	return p, nil
}

func (r *memPlots) FindByIDForTenant(ctx context.Context, tenantID, id uuid.UUID) (*cemetery.Plot, error) {
	p, err := r.FindByID(ctx, id)
	if err != nil || p.TenantID != tenantID {
		return nil, shared.ErrNotFound
	}
	return p, nil
}

func (r *memPlots) ListForBlock(_ context.Context, blockID uuid.UUID, _ shared.Filter) ([]cemetery.Plot, int64, error) {
	var out []cemetery.Plot
	for _, p := range r.db.Plots {
		if p.BlockID == blockID {
			out = append(out, *p)
		}
	}
	return out, int64(len(out)), nil
}

func (r *memPlots) Save(_ context.Context, p *cemetery.Plot) error {
	r.db.Plots[p.ID] = p
	return nil
}

func (r *memPlots) UpdateStatus(_ context.Context, plotID uuid.UUID, status cemetery.PlotStatus) error {
	p, ok := r.db.Plots[plotID]
	if !ok {
		return shared.ErrNotFound
	}
	p.Status = status
	return nil
}

func (r *memPlots) Delete(_ context.Context, id uuid.UUID) error {
	delete(r.db.Plots, id)
	return nil
}

type memBurials struct{ db *MemDB }

func (r *memBurials) FindByID(_ context.Context, id uuid.UUID) (*interment.Burial, error) {
	b, ok := r.db.Burials[id]
	if !ok {
		return nil, shared.ErrNotFound
	}
	return b, nil
}

func (r *memBurials) FindByIDForTenant(ctx context.Context, tenantID, id uuid.UUID) (*interment.Burial, error) {
	b, err := r.FindByID(ctx, id)
	if err != nil || b.TenantID != tenantID {
		return nil, shared.ErrNotFound
	}
	return b, nil
}

func (r *memBurials) FindByNumberInPlot(_ context.Context, plotID uuid.UUID, burialNumber string) (*interment.Burial, error) {
	for _, b := range r.db.Burials {
		if b.PlotID != nil && *b.PlotID == plotID && b.BurialNumber == burialNumber {
			return b, nil
		}
	}
	return nil, shared.ErrNotFound
}

func (r *memBurials) ListForPlot(_ context.Context, plotID uuid.UUID, _ shared.Filter) ([]interment.Burial, int64, error) {
	var out []interment.Burial
	for _, b := range r.db.Burials {
		if b.PlotID != nil && *b.PlotID == plotID {
			out = append(out, *b)
		}
	}
	return out, int64(len(out)), nil
}

func (r *memBurials) CountActiveForPlot(_ context.Context, plotID uuid.UUID) (int64, error) {
	var n int64
	for _, b := range r.db.Burials {
		if b.PlotID != nil && *b.PlotID == plotID && b.IsActive() {
			n++
		}
	}
	return n, nil
}

func (r *memBurials) CountForPlot(_ context.Context, plotID uuid.UUID) (int64, error) {
	var n int64
	for _, b := range r.db.Burials {
		if b.PlotID != nil && *b.PlotID == plotID {
			n++
		}
	}
	return n, nil
}

func (r *memBurials) Save(_ context.Context, b *interment.Burial) error {
	r.db.Burials[b.ID] = b
	return nil
}

func (r *memBurials) UpdateLifecycleFlags(_ context.Context, b *interment.Burial) error {
	stored, ok := r.db.Burials[b.ID]
	if !ok {
		return shared.ErrNotFound
	}
	stored.Exhumed = b.Exhumed
	stored.ExhumationDate = b.ExhumationDate
	stored.Transferred = b.Transferred
	stored.TransferDate = b.TransferDate
	return nil
}

func (r *memBurials) Delete(_ context.Context, id uuid.UUID) error {
	delete(r.db.Burials, id)
	return nil
}

type memContracts struct{ db *MemDB }

func (r *memContracts) FindByID(_ context.Context, id uuid.UUID) (*interment.ConcessionContract, error) {
	c, ok := r.db.Contracts[id]
	if !ok {
		return nil, shared.ErrNotFound
	}
	return c, nil
}

func (r *memContracts) FindByPlot(_ context.Context, plotID uuid.UUID) (*interment.ConcessionContract, error) {
	for _, c := range r.db.Contracts {
		if c.PlotID == plotID {
			return c, nil
		}
	}
	return nil, shared.ErrNotFound
}

func (r *memContracts) ExistsForPlot(_ context.Context, plotID uuid.UUID) (bool, error) {
	for _, c := range r.db.Contracts {
		if c.PlotID == plotID {
			return true, nil
		}
	}
	return false, nil
}

func (r *memContracts) ListForTenant(_ context.Context, tenantID uuid.UUID, _ shared.Filter) ([]interment.ConcessionContract, int64, error) {
	var out []interment.ConcessionContract
	for _, c := range r.db.Contracts {
		if c.TenantID == tenantID {
			out = append(out, *c)
		}
	}
	return out, int64(len(out)), nil
}

func (r *memContracts) Save(_ context.Context, c *interment.ConcessionContract) error {
	r.db.Contracts[c.ID] = c
	return nil
}

func (r *memContracts) Delete(_ context.Context, id uuid.UUID) error {
	delete(r.db.Contracts, id)
	return nil
}

type memExhumations struct{ db *MemDB }

func (r *memExhumations) FindByID(_ context.Context, id uuid.UUID) (*interment.Exhumation, error) {
	e, ok := r.db.Exhumations[id]
	if !ok {
		return nil, shared.ErrNotFound
	}
	return e, nil
}

func (r *memExhumations) ExistsForBurial(_ context.Context, burialID uuid.UUID) (bool, error) {
	for _, e := range r.db.Exhumations {
		if e.BurialID == burialID {
			return true, nil
		}
	}
	return false, nil
}

func (r *memExhumations) CountQualifyingForPlot(_ context.Context, plotID uuid.UUID, cutoff time.Time) (int64, error) {
	var n int64
	for _, e := range r.db.Exhumations {
		if e.PlotID != nil && *e.PlotID == plotID && !e.Date.After(cutoff) {
			n++
		}
	}
	return n, nil
}

func (r *memExhumations) ListForTenant(_ context.Context, tenantID uuid.UUID, _ shared.Filter) ([]interment.Exhumation, int64, error) {
	var out []interment.Exhumation
	for _, e := range r.db.Exhumations {
		if e.TenantID == tenantID {
			out = append(out, *e)
		}
	}
	return out, int64(len(out)), nil
}

func (r *memExhumations) Save(_ context.Context, e *interment.Exhumation) error {
	r.db.Exhumations[e.ID] = e
	return nil
}

func (r *memExhumations) Delete(_ context.Context, id uuid.UUID) error {
	delete(r.db.Exhumations, id)
	return nil
}

type memTransfers struct{ db *MemDB }

func (r *memTransfers) FindByID(_ context.Context, id uuid.UUID) (*interment.Transfer, error) {
	t, ok := r.db.Transfers[id]
	if !ok {
		return nil, shared.ErrNotFound
	}
	return t, nil
}

func (r *memTransfers) ExistsForBurial(_ context.Context, burialID uuid.UUID) (bool, error) {
	for _, t := range r.db.Transfers {
		if t.BurialID == burialID {
			return true, nil
		}
	}
	return false, nil
}

func (r *memTransfers) ListForTenant(_ context.Context, tenantID uuid.UUID, _ shared.Filter) ([]interment.Transfer, int64, error) {
	var out []interment.Transfer
	for _, t := range r.db.Transfers {
		if t.TenantID == tenantID {
			out = append(out, *t)
		}
	}
	return out, int64(len(out)), nil
}

func (r *memTransfers) Save(_ context.Context, t *interment.Transfer) error {
	r.db.Transfers[t.ID] = t
	return nil
}

func (r *memTransfers) Delete(_ context.Context, id uuid.UUID) error {
	delete(r.db.Transfers, id)
	return nil
}

type memReceivables struct{ db *MemDB }

func (r *memReceivables) FindByID(_ context.Context, id uuid.UUID) (*billing.Receivable, error) {
	rec, ok := r.db.Receivables[id]
	if !ok {
		return nil, shared.ErrNotFound
	}
	return rec, nil
}

func (r *memReceivables) FindByIDForTenant(ctx context.Context, tenantID, id uuid.UUID) (*billing.Receivable, error) {
	rec, err := r.FindByID(ctx, id)
	if err != nil || rec.TenantID != tenantID {
		return nil, shared.ErrNotFound
	}
	return rec, nil
}

func (r *memReceivables) ListForTenant(_ context.Context, tenantID uuid.UUID, _ shared.Filter) ([]billing.Receivable, int64, error) {
	var out []billing.Receivable
	for _, rec := range r.db.Receivables {
		if rec.TenantID == tenantID {
			out = append(out, *rec)
		}
	}
	return out, int64(len(out)), nil
}

func (r *memReceivables) ListBySource(_ context.Context, kind billing.SourceKind, sourceID uuid.UUID) ([]billing.Receivable, error) {
	var out []billing.Receivable
	for _, rec := range r.db.Receivables {
		if rec.SourceKind == kind && rec.SourceID == sourceID {
			out = append(out, *rec)
		}
	}
	sort.Slice(out, func(i, j int) bool {
		return out[i].InstallmentNumber < out[j].InstallmentNumber
	})
	return out, nil
}

func (r *memReceivables) Save(_ context.Context, rec *billing.Receivable) error {
	r.db.Receivables[rec.ID] = rec
	return nil
}

func (r *memReceivables) SaveAll(ctx context.Context, recs []*billing.Receivable) error {
	for _, rec := range recs {
		if err := r.Save(ctx, rec); err != nil {
			return err
		}
	}
	return nil
}

func (r *memReceivables) Delete(_ context.Context, id uuid.UUID) error {
	delete(r.db.Receivables, id)
	return nil
}

func (r *memReceivables) CountBySource(_ context.Context, kind billing.SourceKind, sourceID uuid.UUID) (int64, error) {
	var n int64
	for _, rec := range r.db.Receivables {
		if rec.SourceKind == kind && rec.SourceID == sourceID {
			n++
		}
	}
	return n, nil
}

func (r *memReceivables) ExistsOpenWithOutstanding(_ context.Context, tenantID uuid.UUID, documentNumber string, outstanding valueobject.Money) (bool, error) {
	for _, rec := range r.db.Receivables {
		if rec.TenantID == tenantID &&
			rec.DocumentNumber == documentNumber &&
			rec.Status == billing.ReceivableStatusOpen &&
			valueobject.NewMoney(rec.Outstanding).Equals(outstanding) {
			return true, nil
		}
	}
	return false, nil
}

type memAudit struct{ db *MemDB }

func (r *memAudit) Save(_ context.Context, rec *audit.Record) error {
	r.db.AuditTrail = append(r.db.AuditTrail, rec)
	return nil
}

func (r *memAudit) ListForTenant(_ context.Context, tenantID uuid.UUID, _ shared.Filter) ([]audit.Record, int64, error) {
	var out []audit.Record
	for _, rec := range r.db.AuditTrail {
		if rec.TenantID == tenantID {
			out = append(out, *rec)
		}
	}
	return out, int64(len(out)), nil
}

func (r *memAudit) Delete(_ context.Context, _ uuid.UUID) error {
	return shared.ErrImmutableRecord
}
