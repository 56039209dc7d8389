// Package pricing computes cart totals and validates promo codes. Everything
// here is pure; the promo catalog is fetched by the caller.
package pricing

import (
	"errors"
	"strings"
	"travel-journal-bff/internal/model"

	"github.com/shopspring/decimal"
)

var (
	ErrPromoNotFound      = errors.New("promo code not found")
	ErrPromoMinimumNotMet = errors.New("subtotal below promo minimum claim price")
	ErrPromoCodeEmpty     = errors.New("promo code is empty")
)

type Totals struct {
	Subtotal decimal.Decimal `json:"subtotal"`
	Discount decimal.Decimal `json:"discount"`
	Total    decimal.Decimal `json:"total"`
}

// CheckoutTotals converts to the record cached after checkout.
func (t Totals) CheckoutTotals() model.CheckoutTotals {
	return model.CheckoutTotals{
		Subtotal: t.Subtotal,
		Discount: t.Discount,
		Total:    t.Total,
	}
}

func Subtotal(items []model.CartLineItem) decimal.Decimal {
	sum := decimal.Zero
	for _, item := range items {
		sum = sum.Add(item.LineTotal())
	}
	return sum
}

// ComputeTotals never yields a discount above the subtotal or a negative
// total. promo may be nil.
func ComputeTotals(items []model.CartLineItem, promo *model.Promo) Totals {
	subtotal := Subtotal(items)

	discount := decimal.Zero
	if promo != nil {
		discount = decimal.Min(promo.DiscountPrice, subtotal)
		if discount.IsNegative() {
			discount = decimal.Zero
		}
	}

	total := subtotal.Sub(discount)
	if total.IsNegative() {
		total = decimal.Zero
	}

	return Totals{
		Subtotal: subtotal,
		Discount: discount,
		Total:    total,
	}
}

func NormalizeCode(code string) string {
	return strings.ToUpper(strings.TrimSpace(code))
}

// ApplyPromoCode finds code in catalog (case-insensitive) and checks the
// minimum claim price against subtotal.
func ApplyPromoCode(code string, subtotal decimal.Decimal, catalog []model.Promo) (*model.Promo, error) {
	code = NormalizeCode(code)
	if code == "" {
		return nil, ErrPromoCodeEmpty
	}

	matched := false
	for i := range catalog {
		if NormalizeCode(catalog[i].Code) != code {
			continue
		}
		matched = true
		if subtotal.LessThan(catalog[i].MinimumClaimPrice) {
			continue
		}
		promo := catalog[i]
		return &promo, nil
	}

	if matched {
		return nil, ErrPromoMinimumNotMet
	}
	return nil, ErrPromoNotFound
}

func TotalQuantity(items []model.CartLineItem) int {
	sum := 0
	for _, item := range items {
		sum += item.Quantity
	}
	return sum
}
