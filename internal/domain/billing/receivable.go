// Package billing holds receivables (receitas) and the schedule math that
// derives them from priced service events. Receivables are never created
// directly by users; the lifecycle engine generates them.
package billing

import (
	"time"

	"github.com/camposanto/backend/internal/domain/shared"
	"github.com/camposanto/backend/internal/domain/shared/valueobject"
	"github.com/camposanto/backend/internal/domain/tenancy"
	"github.com/google/uuid"
	"github.com/shopspring/decimal"
)

// SourceKind identifies the service event a receivable was generated from.
type SourceKind string

const (
	SourceKindContract   SourceKind = "CONTRACT"
	SourceKindBurial     SourceKind = "BURIAL"
	SourceKindExhumation SourceKind = "EXHUMATION"
	SourceKindTransfer   SourceKind = "TRANSFER"
)

// IsValid checks if the source kind is one of the four recognized services.
func (k SourceKind) IsValid() bool {
	switch k {
	case SourceKindContract, SourceKindBurial, SourceKindExhumation, SourceKindTransfer:
		return true
	}
	return false
}

// String returns the string representation of SourceKind
func (k SourceKind) String() string {
	return string(k)
}

// PaymentMode is how a service is charged.
type PaymentMode string

const (
	PaymentModeFree         PaymentMode = "FREE" // gratuito
	PaymentModeSingle       PaymentMode = "SINGLE"
	PaymentModeInstallments PaymentMode = "INSTALLMENTS"
)

// IsValid checks if the payment mode is valid
func (m PaymentMode) IsValid() bool {
	switch m {
	case PaymentModeFree, PaymentModeSingle, PaymentModeInstallments:
		return true
	}
	return false
}

// String returns the string representation of PaymentMode
func (m PaymentMode) String() string {
	return string(m)
}

// ReceivableStatus represents the payment state of a receivable.
type ReceivableStatus string

const (
	ReceivableStatusOpen    ReceivableStatus = "OPEN"
	ReceivableStatusPartial ReceivableStatus = "PARTIAL"
	ReceivableStatusPaid    ReceivableStatus = "PAID"
)

// IsValid checks if the status is a valid ReceivableStatus
func (s ReceivableStatus) IsValid() bool {
	switch s {
	case ReceivableStatusOpen, ReceivableStatusPartial, ReceivableStatusPaid:
		return true
	}
	return false
}

// String returns the string representation of ReceivableStatus
func (s ReceivableStatus) String() string {
	return string(s)
}

// NormalizeServiceValue validates a service value against its payment mode.
// Gratuito services must carry exactly 0.00 and the value is coerced to
// zero; paid services reject values of zero or less.
func NormalizeServiceValue(mode PaymentMode, value valueobject.Money) (valueobject.Money, error) {
	if !mode.IsValid() {
		return valueobject.Zero(), shared.NewValidationError("payment_mode", "unknown payment mode")
	}
	if mode == PaymentModeFree {
		if !value.IsZero() {
			return valueobject.Zero(), shared.NewValidationError("value", "gratuito service must have value 0.00")
		}
		return valueobject.Zero(), nil
	}
	if !value.IsPositive() {
		return valueobject.Zero(), shared.NewValidationError("value", "paid service must have a value greater than 0.00")
	}
	return value.Round2(), nil
}

// Receivable tracks one billable line item tied to a service event, with its
// own payment and penalty lifecycle.
type Receivable struct {
	shared.TenantAggregateRoot
	DocumentNumber    string           `json:"document_number"`
	SourceKind        SourceKind       `json:"source_kind"`
	SourceID          uuid.UUID        `json:"source_id"`
	Description       string           `json:"description"`
	PayerName         string           `json:"payer_name"`
	PayerDocument     string           `json:"payer_document"`
	ValueTotal        decimal.Decimal  `json:"value_total"`
	Discount          decimal.Decimal  `json:"discount"`
	PaidValue         decimal.Decimal  `json:"paid_value"`
	Fine              decimal.Decimal  `json:"fine"`
	Interest          decimal.Decimal  `json:"interest"`
	DailyPenalty      decimal.Decimal  `json:"daily_penalty"`
	Outstanding       decimal.Decimal  `json:"outstanding"`
	DueDate           time.Time        `json:"due_date"`
	PaymentDate       *time.Time       `json:"payment_date"`
	Status            ReceivableStatus `json:"status"`
	InstallmentNumber int              `json:"installment_number"`
	InstallmentCount  int              `json:"installment_count"`
}

// newReceivable builds a receivable line; callers come through
// GenerateSchedule or remainder spawning.
func newReceivable(
	tenantID uuid.UUID,
	documentNumber string,
	kind SourceKind,
	sourceID uuid.UUID,
	description, payerName, payerDocument string,
	total valueobject.Money,
	dueDate time.Time,
	installmentNumber, installmentCount int,
) *Receivable {
	return &Receivable{
		TenantAggregateRoot: shared.NewTenantAggregateRoot(tenantID),
		DocumentNumber:      documentNumber,
		SourceKind:          kind,
		SourceID:            sourceID,
		Description:         description,
		PayerName:           payerName,
		PayerDocument:       payerDocument,
		ValueTotal:          total.Round2().Amount(),
		Discount:            decimal.Zero,
		PaidValue:           decimal.Zero,
		Fine:                decimal.Zero,
		Interest:            decimal.Zero,
		DailyPenalty:        decimal.Zero,
		Outstanding:         total.Round2().Amount(),
		DueDate:             dueDate,
		Status:              ReceivableStatusOpen,
		InstallmentNumber:   installmentNumber,
		InstallmentCount:    installmentCount,
	}
}

// daysOverdue counts whole days past the due date, comparing calendar dates.
func daysOverdue(dueDate, today time.Time) int {
	due := time.Date(dueDate.Year(), dueDate.Month(), dueDate.Day(), 0, 0, 0, 0, time.UTC)
	now := time.Date(today.Year(), today.Month(), today.Day(), 0, 0, 0, 0, time.UTC)
	if !now.After(due) {
		return 0
	}
	return int(now.Sub(due).Hours() / 24)
}

// IsOverdue reports whether today is past the due date.
func (r *Receivable) IsOverdue(today time.Time) bool {
	return daysOverdue(r.DueDate, today) > 0
}

// Recompute refreshes penalties, the outstanding balance and the payment
// status. It is idempotent and invoked on every save.
//
// Documented source behavior, pinned by tests: any positive payment below the
// corrected total still marks the receivable PAID while the ledger spawns a
// fresh open receivable for the remainder. The PARTIAL status exists in the
// enum but is never assigned by this path.
func (r *Receivable) Recompute(rates tenancy.PenaltyRates, today time.Time) {
	total := valueobject.NewMoney(r.ValueTotal)

	overdueDays := daysOverdue(r.DueDate, today)
	if overdueDays > 0 {
		r.Fine = total.Percent(rates.FinePercent).Amount()
		r.Interest = total.Percent(rates.InterestPercent).Amount()
		r.DailyPenalty = rates.DailyPenaltyRate.Mul(decimal.NewFromInt(int64(overdueDays))).Round(2)
	} else {
		r.Fine = decimal.Zero
		r.Interest = decimal.Zero
		r.DailyPenalty = decimal.Zero
	}

	corrected := total.
		Add(valueobject.NewMoney(r.Fine)).
		Add(valueobject.NewMoney(r.Interest)).
		Add(valueobject.NewMoney(r.DailyPenalty)).
		Sub(valueobject.NewMoney(r.Discount))

	outstanding := corrected.Sub(valueobject.NewMoney(r.PaidValue)).Round2().ClampZero()
	r.Outstanding = outstanding.Amount()

	paid := valueobject.NewMoney(r.PaidValue)
	switch {
	case paid.GreaterThanOrEqual(corrected):
		r.Status = ReceivableStatusPaid
	case paid.IsPositive():
		r.Status = ReceivableStatusPaid
	default:
		r.Status = ReceivableStatusOpen
	}

	r.Touch()
}

// ApplyPayment registers a payment; the caller recomputes afterwards.
func (r *Receivable) ApplyPayment(amount valueobject.Money, paymentDate time.Time) error {
	if !amount.IsPositive() {
		return shared.NewValidationError("paid_value", "payment amount must be greater than 0.00")
	}
	r.PaidValue = valueobject.NewMoney(r.PaidValue).Add(amount).Round2().Amount()
	r.PaymentDate = &paymentDate
	r.IncrementVersion()
	return nil
}

// ApplyDiscount registers a discount; the caller recomputes afterwards.
func (r *Receivable) ApplyDiscount(amount valueobject.Money) error {
	if amount.IsNegative() {
		return shared.NewValidationError("discount", "discount cannot be negative")
	}
	r.Discount = amount.Round2().Amount()
	r.IncrementVersion()
	return nil
}

// NeedsRemainder reports whether this receivable carries a positive partial
// payment that leaves an outstanding balance, requiring a replacement
// receivable for the difference.
func (r *Receivable) NeedsRemainder() bool {
	paid := valueobject.NewMoney(r.PaidValue)
	outstanding := valueobject.NewMoney(r.Outstanding)
	return paid.IsPositive() && outstanding.IsPositive()
}

// SpawnRemainder creates the open replacement receivable for the outstanding
// balance left by a partial payment.
func (r *Receivable) SpawnRemainder(today time.Time) *Receivable {
	remainder := newReceivable(
		r.TenantID,
		r.DocumentNumber,
		r.SourceKind,
		r.SourceID,
		r.Description,
		r.PayerName,
		r.PayerDocument,
		valueobject.NewMoney(r.Outstanding),
		today,
		r.InstallmentNumber,
		r.InstallmentCount,
	)
	return remainder
}

// IsOpen reports whether the receivable still awaits payment.
func (r *Receivable) IsOpen() bool {
	return r.Status == ReceivableStatusOpen
}

// IsPaid reports whether the receivable has been marked paid.
func (r *Receivable) IsPaid() bool {
	return r.Status == ReceivableStatusPaid
}
