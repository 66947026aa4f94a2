package billing

import (
	"time"

	"github.com/camposanto/backend/internal/domain/shared"
	"github.com/camposanto/backend/internal/domain/shared/valueobject"
	"github.com/google/uuid"
	"github.com/shopspring/decimal"
)

// Schedule generation errors.
var (
	ErrInvalidServiceKind    = shared.NewDomainError("INVALID_SERVICE_KIND", "Service event kind is not recognized")
	ErrMissingDocumentNumber = shared.NewDomainError("MISSING_DOCUMENT_NUMBER", "Document number must be issued before generating receivables")
)

// ScheduleInput describes a priced service event to derive receivables from.
// The document number must already have been issued by the sequence
// generator inside the same transaction.
type ScheduleInput struct {
	TenantID       uuid.UUID
	SourceKind     SourceKind
	SourceID       uuid.UUID
	DocumentNumber string
	Description    string
	PayerName      string
	PayerDocument  string
	Mode           PaymentMode
	Total          valueobject.Money
	Installments   int
	Today          time.Time
}

// GenerateSchedule derives the receivable records for a service event.
//
//   - FREE: one receivable of 0.00, already paid, due today.
//   - SINGLE: one open receivable for the full value, due today.
//   - INSTALLMENTS(n): n open receivables of floor(total/n, 2 decimals) each,
//     with the rounding remainder folded into the last installment so the sum
//     equals the total exactly; due dates one calendar month apart starting
//     today.
func GenerateSchedule(in ScheduleInput) ([]*Receivable, error) {
	if !in.SourceKind.IsValid() {
		return nil, ErrInvalidServiceKind
	}
	if in.DocumentNumber == "" {
		return nil, ErrMissingDocumentNumber
	}

	total, err := NormalizeServiceValue(in.Mode, in.Total)
	if err != nil {
		return nil, err
	}

	switch in.Mode {
	case PaymentModeFree:
		r := newReceivable(in.TenantID, in.DocumentNumber, in.SourceKind, in.SourceID,
			in.Description, in.PayerName, in.PayerDocument, valueobject.Zero(), in.Today, 1, 1)
		r.Status = ReceivableStatusPaid
		paidAt := in.Today
		r.PaymentDate = &paidAt
		r.Outstanding = decimal.Zero
		return []*Receivable{r}, nil

	case PaymentModeSingle:
		r := newReceivable(in.TenantID, in.DocumentNumber, in.SourceKind, in.SourceID,
			in.Description, in.PayerName, in.PayerDocument, total, in.Today, 1, 1)
		return []*Receivable{r}, nil

	case PaymentModeInstallments:
		if in.Installments < 1 {
			return nil, shared.NewValidationError("installments", "installment count must be at least 1")
		}
		n := in.Installments
		share := total.Div(decimal.NewFromInt(int64(n))).Floor2()
		receivables := make([]*Receivable, 0, n)
		accumulated := valueobject.Zero()
		for i := 0; i < n; i++ {
			value := share
			if i == n-1 {
				value = total.Sub(accumulated)
			}
			accumulated = accumulated.Add(value)
			dueDate := in.Today.AddDate(0, i, 0)
			receivables = append(receivables, newReceivable(
				in.TenantID, in.DocumentNumber, in.SourceKind, in.SourceID,
				in.Description, in.PayerName, in.PayerDocument, value, dueDate, i+1, n))
		}
		return receivables, nil
	}

	return nil, shared.NewValidationError("payment_mode", "unknown payment mode")
}
