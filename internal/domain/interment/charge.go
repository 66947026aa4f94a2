package interment

import (
	"github.com/camposanto/backend/internal/domain/billing"
	"github.com/camposanto/backend/internal/domain/shared"
	"github.com/camposanto/backend/internal/domain/shared/valueobject"
	"github.com/shopspring/decimal"
)

// ServiceCharge is the payment terms attached to a priced service event.
type ServiceCharge struct {
	Mode         billing.PaymentMode `json:"payment_mode"`
	Value        decimal.Decimal     `json:"value"`
	Installments int                 `json:"installments"`
}

// FreeCharge returns the terms of a gratuito service.
func FreeCharge() ServiceCharge {
	return ServiceCharge{Mode: billing.PaymentModeFree, Value: decimal.Zero}
}

// normalize validates the charge against its payment mode and coerces the
// value per the gratuito rule.
func (c ServiceCharge) normalize() (ServiceCharge, error) {
	value, err := billing.NormalizeServiceValue(c.Mode, valueobject.NewMoney(c.Value))
	if err != nil {
		return ServiceCharge{}, err
	}
	if c.Mode == billing.PaymentModeInstallments && c.Installments < 1 {
		return ServiceCharge{}, shared.NewValidationError("installments", "installment count must be at least 1")
	}
	if c.Mode != billing.PaymentModeInstallments {
		c.Installments = 0
	}
	c.Value = value.Amount()
	return c, nil
}

// Money returns the charge value as a Money value object.
func (c ServiceCharge) Money() valueobject.Money {
	return valueobject.NewMoney(c.Value)
}

// IsFree reports whether the service is gratuito.
func (c ServiceCharge) IsFree() bool {
	return c.Mode == billing.PaymentModeFree
}
