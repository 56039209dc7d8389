package pricing

import (
	"testing"
	"travel-journal-bff/internal/model"

	"github.com/shopspring/decimal"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func item(id string, price int64, qty int) model.CartLineItem {
	return model.CartLineItem{
		ID:       id,
		Quantity: qty,
		Activity: model.Activity{ID: "act-" + id, Price: decimal.NewFromInt(price)},
	}
}

func promo(code string, minimum, discount int64) model.Promo {
	return model.Promo{
		ID:                "promo-" + code,
		Code:              code,
		MinimumClaimPrice: decimal.NewFromInt(minimum),
		DiscountPrice:     decimal.NewFromInt(discount),
	}
}

func TestComputeTotals_WithPromo(t *testing.T) {
	items := []model.CartLineItem{item("c1", 500000, 2)}
	p := promo("AKHIRTAHUN25", 500000, 150000)

	totals := ComputeTotals(items, &p)

	assert.True(t, totals.Subtotal.Equal(decimal.NewFromInt(1000000)))
	assert.True(t, totals.Discount.Equal(decimal.NewFromInt(150000)))
	assert.True(t, totals.Total.Equal(decimal.NewFromInt(850000)))
}

func TestComputeTotals_EmptyCart(t *testing.T) {
	totals := ComputeTotals(nil, nil)

	assert.True(t, totals.Subtotal.IsZero())
	assert.True(t, totals.Discount.IsZero())
	assert.True(t, totals.Total.IsZero())
}

func TestComputeTotals_DiscountCappedAtSubtotal(t *testing.T) {
	items := []model.CartLineItem{item("c1", 100000, 1)}
	p := promo("BIG", 0, 250000)

	totals := ComputeTotals(items, &p)

	assert.True(t, totals.Discount.Equal(decimal.NewFromInt(100000)))
	assert.True(t, totals.Total.IsZero())
}

func TestComputeTotals_NegativeDiscountIgnored(t *testing.T) {
	items := []model.CartLineItem{item("c1", 100000, 1)}
	p := promo("ODD", 0, -5000)

	totals := ComputeTotals(items, &p)

	assert.True(t, totals.Discount.IsZero())
	assert.True(t, totals.Total.Equal(decimal.NewFromInt(100000)))
}

func TestApplyPromoCode(t *testing.T) {
	catalog := []model.Promo{
		promo("AKHIRTAHUN25", 500000, 150000),
		promo("HEMAT10", 100000, 10000),
	}

	tests := []struct {
		name     string
		code     string
		subtotal int64
		wantCode string
		wantErr  error
	}{
		{name: "exact match", code: "HEMAT10", subtotal: 200000, wantCode: "HEMAT10"},
		{name: "case and spaces ignored", code: "  akhirTahun25 ", subtotal: 500000, wantCode: "AKHIRTAHUN25"},
		{name: "below minimum", code: "AKHIRTAHUN25", subtotal: 300000, wantErr: ErrPromoMinimumNotMet},
		{name: "unknown code", code: "NOPE", subtotal: 900000, wantErr: ErrPromoNotFound},
		{name: "blank code", code: "   ", subtotal: 900000, wantErr: ErrPromoCodeEmpty},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			got, err := ApplyPromoCode(tt.code, decimal.NewFromInt(tt.subtotal), catalog)
			if tt.wantErr != nil {
				assert.ErrorIs(t, err, tt.wantErr)
				assert.Nil(t, got)
				return
			}
			require.NoError(t, err)
			assert.Equal(t, tt.wantCode, got.Code)
		})
	}
}

func TestApplyPromoCode_DuplicateCodesPickEligibleEntry(t *testing.T) {
	catalog := []model.Promo{
		promo("DUP", 1000000, 50000),
		promo("dup", 100000, 20000),
	}

	got, err := ApplyPromoCode("DUP", decimal.NewFromInt(200000), catalog)

	require.NoError(t, err)
	assert.True(t, got.DiscountPrice.Equal(decimal.NewFromInt(20000)))
}

func TestApplyPromoCode_BelowMinimumKeepsTotals(t *testing.T) {
	items := []model.CartLineItem{item("c1", 300000, 1)}
	catalog := []model.Promo{promo("AKHIRTAHUN25", 500000, 150000)}

	_, err := ApplyPromoCode("AKHIRTAHUN25", Subtotal(items), catalog)
	require.ErrorIs(t, err, ErrPromoMinimumNotMet)

	totals := ComputeTotals(items, nil)
	assert.True(t, totals.Discount.IsZero())
	assert.True(t, totals.Total.Equal(totals.Subtotal))
}

func TestTotalQuantity(t *testing.T) {
	items := []model.CartLineItem{item("a", 1, 2), item("b", 1, 3)}

	assert.Equal(t, 5, TotalQuantity(items))
	assert.Equal(t, 0, TotalQuantity(nil))
}
