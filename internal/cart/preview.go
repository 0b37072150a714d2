package cart

import (
	"encoding/json"

	"github.com/shopspring/decimal"
)

var (
	DeliveryFee = decimal.NewFromInt(50)
	TaxRate     = decimal.RequireFromString("0.13")
)

// Preview is the pre-checkout estimate. The order the backend creates is
// authoritative.
type Preview struct {
	Subtotal    decimal.Decimal
	DeliveryFee decimal.Decimal
	Tax         decimal.Decimal
	Total       decimal.Decimal
}

// Compute derives delivery, tax (rounded half-up to whole units) and total
// from the cart value. An empty cart previews to zero everywhere.
func Compute(totalValue float64) Preview {
	subtotal := decimal.NewFromFloat(totalValue)
	if !subtotal.IsPositive() {
		return Preview{Subtotal: decimal.Zero, DeliveryFee: decimal.Zero, Tax: decimal.Zero, Total: decimal.Zero}
	}
	tax := subtotal.Mul(TaxRate).Round(0)
	return Preview{
		Subtotal:    subtotal,
		DeliveryFee: DeliveryFee,
		Tax:         tax,
		Total:       subtotal.Add(DeliveryFee).Add(tax),
	}
}

func (p Preview) MarshalJSON() ([]byte, error) {
	return json.Marshal(struct {
		Subtotal    json.Number `json:"subtotal"`
		DeliveryFee json.Number `json:"deliveryFee"`
		Tax         json.Number `json:"tax"`
		Total       json.Number `json:"total"`
	}{
		Subtotal:    json.Number(p.Subtotal.String()),
		DeliveryFee: json.Number(p.DeliveryFee.String()),
		Tax:         json.Number(p.Tax.String()),
		Total:       json.Number(p.Total.String()),
	})
}
