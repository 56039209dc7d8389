package model

import (
	"encoding/json"

	"github.com/shopspring/decimal"
)

// CheckoutTotals is the figure computed at checkout and cached per
// transaction id. It is never reconciled with the server amount.
type CheckoutTotals struct {
	Subtotal decimal.Decimal
	Discount decimal.Decimal
	Total    decimal.Decimal
}

type totalsJSON struct {
	Subtotal json.Number `json:"subtotal"`
	Discount json.Number `json:"discount"`
	Total    json.Number `json:"total"`
}

func (t CheckoutTotals) MarshalJSON() ([]byte, error) {
	return json.Marshal(totalsJSON{
		Subtotal: json.Number(t.Subtotal.String()),
		Discount: json.Number(t.Discount.String()),
		Total:    json.Number(t.Total.String()),
	})
}

// UnmarshalJSON accepts numbers, numeric strings or garbage; anything that
// is not a number becomes 0.
func (t *CheckoutTotals) UnmarshalJSON(data []byte) error {
	var raw map[string]any
	if err := json.Unmarshal(data, &raw); err != nil {
		// a bare number is how older entries stored just the total
		var total any
		if err := json.Unmarshal(data, &total); err != nil {
			return err
		}
		*t = CheckoutTotals{Total: ToDecimal(total)}
		return nil
	}

	t.Subtotal = ToDecimal(raw["subtotal"])
	t.Discount = ToDecimal(raw["discount"])
	t.Total = ToDecimal(raw["total"])
	return nil
}

// ToDecimal coerces a decoded JSON value the way Number(v) || 0 would.
func ToDecimal(v any) decimal.Decimal {
	switch n := v.(type) {
	case float64:
		return decimal.NewFromFloat(n)
	case json.Number:
		d, err := decimal.NewFromString(n.String())
		if err != nil {
			return decimal.Zero
		}
		return d
	case string:
		d, err := decimal.NewFromString(n)
		if err != nil {
			return decimal.Zero
		}
		return d
	case bool:
		if n {
			return decimal.NewFromInt(1)
		}
		return decimal.Zero
	default:
		return decimal.Zero
	}
}
