package service

import (
	"travel-journal-bff/internal/model"

	"github.com/shopspring/decimal"
)

func cartItem(id string, price int64, qty int) model.CartLineItem {
	return model.CartLineItem{
		ID:         id,
		ActivityID: "act-" + id,
		Quantity:   qty,
		Activity:   model.Activity{ID: "act-" + id, Title: "Activity " + id, Price: decimal.NewFromInt(price)},
	}
}

func promoEntry(code string, minimum, discount int64) model.Promo {
	return model.Promo{
		ID:                "promo-" + code,
		Title:             code,
		Code:              code,
		MinimumClaimPrice: decimal.NewFromInt(minimum),
		DiscountPrice:     decimal.NewFromInt(discount),
	}
}

func transaction(id string, status model.TransactionStatus, amount int64) model.Transaction {
	return model.Transaction{
		ID:          id,
		Status:      status,
		RawStatus:   string(status),
		TotalAmount: decimal.NewFromInt(amount),
	}
}
