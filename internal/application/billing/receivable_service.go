// Package billing hosts the receivable ledger service: payment and discount
// registration with penalty recomputation and remainder spawning.
package billing

import (
	"context"
	"time"

	auditapp "github.com/camposanto/backend/internal/application/audit"
	"github.com/camposanto/backend/internal/application/ports"
	"github.com/camposanto/backend/internal/domain/audit"
	"github.com/camposanto/backend/internal/domain/billing"
	"github.com/camposanto/backend/internal/domain/shared"
	"github.com/camposanto/backend/internal/domain/shared/valueobject"
	"github.com/camposanto/backend/internal/domain/tenancy"
	"github.com/google/uuid"
	"github.com/shopspring/decimal"
	"go.uber.org/zap"
)

// LedgerService operates on receivables: payments, discounts and the
// on-read penalty refresh. Receivables themselves are created only by the
// lifecycle engine.
type LedgerService struct {
	uow      ports.UnitOfWork
	recorder *auditapp.Recorder
	log      *zap.Logger
	now      func() time.Time
}

// LedgerOption configures the service.
type LedgerOption func(*LedgerService)

// WithLedgerClock overrides the service clock, used by tests.
func WithLedgerClock(now func() time.Time) LedgerOption {
	return func(s *LedgerService) {
		s.now = now
	}
}

// NewLedgerService creates a LedgerService.
func NewLedgerService(uow ports.UnitOfWork, recorder *auditapp.Recorder, log *zap.Logger, opts ...LedgerOption) *LedgerService {
	s := &LedgerService{
		uow:      uow,
		recorder: recorder,
		log:      log,
		now:      time.Now,
	}
	for _, opt := range opts {
		opt(s)
	}
	return s
}

// RegisterPaymentInput carries a payment registration.
type RegisterPaymentInput struct {
	ReceivableID uuid.UUID       `json:"receivable_id"`
	Amount       decimal.Decimal `json:"amount"`
	PaymentDate  time.Time       `json:"payment_date"`
}

// RegisterPayment applies a payment to a receivable. Penalties are refreshed
// first so the payment settles against the corrected total. A positive
// payment below the corrected total marks the receivable paid and spawns a
// fresh open receivable for the remainder, unless one with that exact
// outstanding amount already exists under the same document number.
func (s *LedgerService) RegisterPayment(ctx context.Context, op shared.OperationContext, in RegisterPaymentInput) (*billing.Receivable, error) {
	var receivable *billing.Receivable
	err := s.uow.Execute(ctx, func(st ports.Stores) error {
		var err error
		receivable, err = st.Receivables.FindByIDForTenant(ctx, op.TenantID, in.ReceivableID)
		if err != nil {
			return err
		}
		rates, err := s.tenantRates(ctx, st, op.TenantID)
		if err != nil {
			return err
		}

		today := s.now()
		if err := receivable.ApplyPayment(valueobject.NewMoney(in.Amount), in.PaymentDate); err != nil {
			return err
		}
		receivable.Recompute(rates, today)
		if err := st.Receivables.Save(ctx, receivable); err != nil {
			return err
		}

		if receivable.NeedsRemainder() {
			exists, err := st.Receivables.ExistsOpenWithOutstanding(ctx, op.TenantID,
				receivable.DocumentNumber, valueobject.NewMoney(receivable.Outstanding))
			if err != nil {
				return err
			}
			if !exists {
				remainder := receivable.SpawnRemainder(today)
				if err := st.Receivables.Save(ctx, remainder); err != nil {
					return err
				}
				s.log.Info("remainder receivable spawned",
					zap.String("document_number", remainder.DocumentNumber),
					zap.String("outstanding", remainder.Outstanding.StringFixed(2)),
				)
			}
		}

		return s.recorder.Record(ctx, st, op, audit.ActionChange, "Receivable",
			receivable.ID.String(), receivable.DocumentNumber, receivable)
	})
	if err != nil {
		return nil, err
	}
	return receivable, nil
}

// ApplyDiscountInput carries a discount registration.
type ApplyDiscountInput struct {
	ReceivableID uuid.UUID       `json:"receivable_id"`
	Discount     decimal.Decimal `json:"discount"`
}

// ApplyDiscount sets the discount on a receivable and recomputes its balance.
func (s *LedgerService) ApplyDiscount(ctx context.Context, op shared.OperationContext, in ApplyDiscountInput) (*billing.Receivable, error) {
	var receivable *billing.Receivable
	err := s.uow.Execute(ctx, func(st ports.Stores) error {
		var err error
		receivable, err = st.Receivables.FindByIDForTenant(ctx, op.TenantID, in.ReceivableID)
		if err != nil {
			return err
		}
		rates, err := s.tenantRates(ctx, st, op.TenantID)
		if err != nil {
			return err
		}
		if err := receivable.ApplyDiscount(valueobject.NewMoney(in.Discount)); err != nil {
			return err
		}
		receivable.Recompute(rates, s.now())
		if err := st.Receivables.Save(ctx, receivable); err != nil {
			return err
		}
		return s.recorder.Record(ctx, st, op, audit.ActionChange, "Receivable",
			receivable.ID.String(), receivable.DocumentNumber, receivable)
	})
	if err != nil {
		return nil, err
	}
	return receivable, nil
}

// Get returns a receivable with penalties refreshed as of today. The refresh
// is in-memory only; balances are persisted on the next payment or discount.
func (s *LedgerService) Get(ctx context.Context, op shared.OperationContext, id uuid.UUID) (*billing.Receivable, error) {
	st := s.uow.Stores()
	receivable, err := st.Receivables.FindByIDForTenant(ctx, op.TenantID, id)
	if err != nil {
		return nil, err
	}
	rates, err := s.tenantRates(ctx, st, op.TenantID)
	if err != nil {
		return nil, err
	}
	receivable.Recompute(rates, s.now())
	return receivable, nil
}

// List returns the tenant's receivables, penalties refreshed as of today.
func (s *LedgerService) List(ctx context.Context, op shared.OperationContext, filter shared.Filter) (*shared.Paginated[billing.Receivable], error) {
	st := s.uow.Stores()
	receivables, total, err := st.Receivables.ListForTenant(ctx, op.TenantID, filter)
	if err != nil {
		return nil, err
	}
	rates, err := s.tenantRates(ctx, st, op.TenantID)
	if err != nil {
		return nil, err
	}
	today := s.now()
	for i := range receivables {
		receivables[i].Recompute(rates, today)
	}
	page := shared.NewPaginated(receivables, total, filter.Page, filter.PageSize)
	return &page, nil
}

// ListBySource returns the receivables generated from one service event.
func (s *LedgerService) ListBySource(ctx context.Context, op shared.OperationContext, kind billing.SourceKind, sourceID uuid.UUID) ([]billing.Receivable, error) {
	st := s.uow.Stores()
	receivables, err := st.Receivables.ListBySource(ctx, kind, sourceID)
	if err != nil {
		return nil, err
	}
	rates, err := s.tenantRates(ctx, st, op.TenantID)
	if err != nil {
		return nil, err
	}
	today := s.now()
	out := make([]billing.Receivable, 0, len(receivables))
	for i := range receivables {
		if receivables[i].TenantID != op.TenantID {
			continue
		}
		receivables[i].Recompute(rates, today)
		out = append(out, receivables[i])
	}
	return out, nil
}

func (s *LedgerService) tenantRates(ctx context.Context, st ports.Stores, tenantID uuid.UUID) (tenancy.PenaltyRates, error) {
	tenant, err := st.Tenants.FindByID(ctx, tenantID)
	if err != nil {
		return tenancy.ZeroPenaltyRates(), err
	}
	return tenant.PenaltyRates, nil
}
