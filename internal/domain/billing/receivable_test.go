package billing

import (
	"testing"
	"time"

	"github.com/camposanto/backend/internal/domain/shared/valueobject"
	"github.com/camposanto/backend/internal/domain/tenancy"
	"github.com/google/uuid"
	"github.com/shopspring/decimal"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func testRates() tenancy.PenaltyRates {
	return tenancy.PenaltyRates{
		FinePercent:      decimal.NewFromInt(2),
		InterestPercent:  decimal.NewFromInt(1),
		DailyPenaltyRate: decimal.RequireFromString("0.10"),
	}
}

func newOpenReceivable(t *testing.T, total string, dueDate time.Time) *Receivable {
	money, err := valueobject.NewMoneyFromString(total)
	require.NoError(t, err)
	rs, err := GenerateSchedule(ScheduleInput{
		TenantID:       uuid.New(),
		SourceKind:     SourceKindContract,
		SourceID:       uuid.New(),
		DocumentNumber: "7/2025",
		Description:    "concessao de tumulo",
		PayerName:      "Maria dos Santos",
		PayerDocument:  "123.456.789-00",
		Mode:           PaymentModeSingle,
		Total:          money,
		Today:          dueDate,
	})
	require.NoError(t, err)
	require.Len(t, rs, 1)
	return rs[0]
}

func TestReceivable_Recompute_NotOverdue(t *testing.T) {
	due := time.Date(2025, 6, 1, 0, 0, 0, 0, time.UTC)
	r := newOpenReceivable(t, "100.00", due)

	r.Recompute(testRates(), due)

	assert.Equal(t, "0", r.Fine.String())
	assert.Equal(t, "0", r.Interest.String())
	assert.Equal(t, "0", r.DailyPenalty.String())
	assert.Equal(t, "100.00", r.Outstanding.StringFixed(2))
	assert.Equal(t, ReceivableStatusOpen, r.Status)
}

func TestReceivable_Recompute_Overdue10Days(t *testing.T) {
	// total=100.00, overdue 10 days, fine 2%, interest 1%, daily 0.10
	due := time.Date(2025, 6, 1, 0, 0, 0, 0, time.UTC)
	today := due.AddDate(0, 0, 10)
	r := newOpenReceivable(t, "100.00", due)

	r.Recompute(testRates(), today)

	assert.Equal(t, "2.00", r.Fine.StringFixed(2))
	assert.Equal(t, "1.00", r.Interest.StringFixed(2))
	assert.Equal(t, "1.00", r.DailyPenalty.StringFixed(2))
	assert.Equal(t, "104.00", r.Outstanding.StringFixed(2))
	assert.Equal(t, ReceivableStatusOpen, r.Status)
}

func TestReceivable_Recompute_Idempotent(t *testing.T) {
	due := time.Date(2025, 6, 1, 0, 0, 0, 0, time.UTC)
	today := due.AddDate(0, 0, 10)
	r := newOpenReceivable(t, "100.00", due)

	r.Recompute(testRates(), today)
	first := r.Outstanding
	r.Recompute(testRates(), today)

	assert.True(t, first.Equal(r.Outstanding), "recompute must not accrue penalties twice")
}

func TestReceivable_Recompute_FullPayment(t *testing.T) {
	due := time.Date(2025, 6, 1, 0, 0, 0, 0, time.UTC)
	r := newOpenReceivable(t, "100.00", due)

	require.NoError(t, r.ApplyPayment(valueobject.NewMoneyFromFloat(100.00), due))
	r.Recompute(testRates(), due)

	assert.Equal(t, ReceivableStatusPaid, r.Status)
	assert.Equal(t, "0.00", r.Outstanding.StringFixed(2))
	assert.False(t, r.NeedsRemainder())
}

// Pins the documented source behavior: a positive payment below the
// corrected total still marks the receivable PAID, and the ledger owes a
// fresh open receivable for the remainder. PARTIAL is never assigned here.
func TestReceivable_Recompute_PartialPaymentMarksPaid(t *testing.T) {
	due := time.Date(2025, 6, 1, 0, 0, 0, 0, time.UTC)
	r := newOpenReceivable(t, "100.00", due)

	require.NoError(t, r.ApplyPayment(valueobject.NewMoneyFromFloat(40.00), due))
	r.Recompute(testRates(), due)

	assert.Equal(t, ReceivableStatusPaid, r.Status)
	assert.Equal(t, "60.00", r.Outstanding.StringFixed(2))
	assert.True(t, r.NeedsRemainder())

	remainder := r.SpawnRemainder(due)
	assert.Equal(t, "60.00", remainder.ValueTotal.StringFixed(2))
	assert.Equal(t, ReceivableStatusOpen, remainder.Status)
	assert.Equal(t, r.DocumentNumber, remainder.DocumentNumber)
	assert.Equal(t, r.SourceID, remainder.SourceID)
}

func TestReceivable_Recompute_OutstandingClampedAtZero(t *testing.T) {
	due := time.Date(2025, 6, 1, 0, 0, 0, 0, time.UTC)
	r := newOpenReceivable(t, "100.00", due)

	require.NoError(t, r.ApplyPayment(valueobject.NewMoneyFromFloat(150.00), due))
	r.Recompute(testRates(), due)

	assert.Equal(t, "0.00", r.Outstanding.StringFixed(2))
	assert.Equal(t, ReceivableStatusPaid, r.Status)
}

func TestReceivable_Recompute_DiscountReducesOutstanding(t *testing.T) {
	due := time.Date(2025, 6, 1, 0, 0, 0, 0, time.UTC)
	r := newOpenReceivable(t, "100.00", due)

	require.NoError(t, r.ApplyDiscount(valueobject.NewMoneyFromFloat(10.00)))
	r.Recompute(testRates(), due)

	assert.Equal(t, "90.00", r.Outstanding.StringFixed(2))
	assert.Equal(t, ReceivableStatusOpen, r.Status)
}

func TestReceivable_ApplyPayment_RejectsNonPositive(t *testing.T) {
	due := time.Date(2025, 6, 1, 0, 0, 0, 0, time.UTC)
	r := newOpenReceivable(t, "100.00", due)

	assert.Error(t, r.ApplyPayment(valueobject.Zero(), due))
	assert.Error(t, r.ApplyPayment(valueobject.NewMoneyFromFloat(-5), due))
}

func TestReceivable_IsOverdue(t *testing.T) {
	due := time.Date(2025, 6, 1, 0, 0, 0, 0, time.UTC)
	r := newOpenReceivable(t, "100.00", due)

	assert.False(t, r.IsOverdue(due))
	assert.False(t, r.IsOverdue(due.Add(23*time.Hour)), "same calendar day is not overdue")
	assert.True(t, r.IsOverdue(due.AddDate(0, 0, 1)))
}

func TestNormalizeServiceValue(t *testing.T) {
	t.Run("free coerces zero", func(t *testing.T) {
		v, err := NormalizeServiceValue(PaymentModeFree, valueobject.Zero())
		require.NoError(t, err)
		assert.True(t, v.IsZero())
	})

	t.Run("free rejects non-zero value", func(t *testing.T) {
		_, err := NormalizeServiceValue(PaymentModeFree, valueobject.NewMoneyFromFloat(10))
		assert.Error(t, err)
	})

	t.Run("paid rejects zero", func(t *testing.T) {
		_, err := NormalizeServiceValue(PaymentModeSingle, valueobject.Zero())
		assert.Error(t, err)
	})

	t.Run("paid rejects negative", func(t *testing.T) {
		_, err := NormalizeServiceValue(PaymentModeInstallments, valueobject.NewMoneyFromFloat(-1))
		assert.Error(t, err)
	})

	t.Run("paid rounds to 2 decimals", func(t *testing.T) {
		v, err := NormalizeServiceValue(PaymentModeSingle, valueobject.NewMoneyFromFloat(10.005))
		require.NoError(t, err)
		assert.Equal(t, "10.01", v.String())
	})
}
