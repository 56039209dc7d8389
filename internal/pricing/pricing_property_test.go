package pricing

import (
	"strings"
	"testing"
	"travel-journal-bff/internal/model"

	"github.com/leanovate/gopter"
	"github.com/leanovate/gopter/gen"
	"github.com/leanovate/gopter/prop"
	"github.com/shopspring/decimal"
)

func itemsFrom(prices []int64, quantities []int) []model.CartLineItem {
	n := len(prices)
	if len(quantities) < n {
		n = len(quantities)
	}
	items := make([]model.CartLineItem, 0, n)
	for i := 0; i < n; i++ {
		items = append(items, model.CartLineItem{
			ID:       string(rune('a' + i%26)),
			Quantity: quantities[i],
			Activity: model.Activity{Price: decimal.NewFromInt(prices[i])},
		})
	}
	return items
}

func TestComputeTotalsProperties(t *testing.T) {
	parameters := gopter.DefaultTestParameters()
	parameters.MinSuccessfulTests = 200
	properties := gopter.NewProperties(parameters)

	properties.Property("subtotal is the sum of price * quantity", prop.ForAll(
		func(prices []int64, quantities []int) bool {
			items := itemsFrom(prices, quantities)

			want := decimal.Zero
			for _, it := range items {
				want = want.Add(it.Activity.Price.Mul(decimal.NewFromInt(int64(it.Quantity))))
			}
			return ComputeTotals(items, nil).Subtotal.Equal(want)
		},
		gen.SliceOf(gen.Int64Range(0, 10_000_000)),
		gen.SliceOf(gen.IntRange(1, 20)),
	))

	properties.Property("discount never exceeds subtotal and total is never negative", prop.ForAll(
		func(prices []int64, quantities []int, discount int64) bool {
			items := itemsFrom(prices, quantities)
			p := model.Promo{Code: "X", DiscountPrice: decimal.NewFromInt(discount)}

			totals := ComputeTotals(items, &p)
			return totals.Discount.LessThanOrEqual(totals.Subtotal) &&
				!totals.Discount.IsNegative() &&
				!totals.Total.IsNegative() &&
				totals.Total.Equal(totals.Subtotal.Sub(totals.Discount))
		},
		gen.SliceOf(gen.Int64Range(0, 10_000_000)),
		gen.SliceOf(gen.IntRange(1, 20)),
		gen.Int64Range(-1_000_000, 100_000_000),
	))

	properties.TestingRun(t)
}

func TestApplyPromoCodeProperties(t *testing.T) {
	parameters := gopter.DefaultTestParameters()
	parameters.MinSuccessfulTests = 200
	properties := gopter.NewProperties(parameters)

	codes := gen.OneConstOf("HEMAT10", "AKHIRTAHUN25", "LIBURAN", "MUDIK")

	promoGen := gopter.CombineGens(codes, gen.Int64Range(0, 2_000_000), gen.Int64Range(0, 500_000)).
		Map(func(v []interface{}) model.Promo {
			return model.Promo{
				Code:              v[0].(string),
				MinimumClaimPrice: decimal.NewFromInt(v[1].(int64)),
				DiscountPrice:     decimal.NewFromInt(v[2].(int64)),
			}
		})

	properties.Property("succeeds iff some entry matches and its minimum is met", prop.ForAll(
		func(catalog []model.Promo, code string, lower bool, subtotal int64) bool {
			query := code
			if lower {
				query = strings.ToLower(code)
			}
			s := decimal.NewFromInt(subtotal)

			matched, eligible := false, false
			for _, p := range catalog {
				if p.Code != code {
					continue
				}
				matched = true
				if s.GreaterThanOrEqual(p.MinimumClaimPrice) {
					eligible = true
				}
			}

			got, err := ApplyPromoCode(query, s, catalog)
			switch {
			case eligible:
				return err == nil && got != nil && got.Code == code && s.GreaterThanOrEqual(got.MinimumClaimPrice)
			case matched:
				return err == ErrPromoMinimumNotMet && got == nil
			default:
				return err == ErrPromoNotFound && got == nil
			}
		},
		gen.SliceOf(promoGen),
		codes,
		gen.Bool(),
		gen.Int64Range(0, 3_000_000),
	))

	properties.TestingRun(t)
}
