package model

import "github.com/shopspring/decimal"

type CartLineItem struct {
	ID         string   `json:"id"`
	ActivityID string   `json:"activityId,omitempty"`
	Quantity   int      `json:"quantity"`
	Activity   Activity `json:"activity"`
}

// LineTotal is price * quantity.
func (c CartLineItem) LineTotal() decimal.Decimal {
	return c.Activity.Price.Mul(decimal.NewFromInt(int64(c.Quantity)))
}

// BatchResult is the outcome of one item in a best-effort batch.
type BatchResult struct {
	ID  string
	Err error
}

func (r BatchResult) OK() bool {
	return r.Err == nil
}
