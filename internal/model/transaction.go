package model

import (
	"bytes"
	"encoding/json"
	"fmt"
	"strings"
	"time"

	"github.com/shopspring/decimal"
)

type TransactionStatus string

const (
	StatusPending   TransactionStatus = "pending"
	StatusSuccess   TransactionStatus = "success"
	StatusFailed    TransactionStatus = "failed"
	StatusCancelled TransactionStatus = "cancelled"
	StatusUnknown   TransactionStatus = "unknown"
)

// ParseStatus maps the API's status spellings onto the canonical set.
// "paid" is a success.
func ParseStatus(raw string) TransactionStatus {
	switch strings.ToLower(strings.TrimSpace(raw)) {
	case "pending":
		return StatusPending
	case "success", "paid":
		return StatusSuccess
	case "failed":
		return StatusFailed
	case "cancelled", "canceled", "cancel":
		return StatusCancelled
	default:
		return StatusUnknown
	}
}

// CanTransition reports whether an admin may move a transaction from one
// status to another. Only pending -> success|failed is permitted.
func CanTransition(from, to TransactionStatus) bool {
	return from == StatusPending && (to == StatusSuccess || to == StatusFailed)
}

type TransactionItem struct {
	ID         string          `json:"id"`
	ActivityID string          `json:"activityId,omitempty"`
	Title      string          `json:"title,omitempty"`
	Price      decimal.Decimal `json:"price"`
	Quantity   int             `json:"quantity"`
}

// Transaction is the canonical client-side view of a server transaction.
type Transaction struct {
	ID            string            `json:"id"`
	InvoiceID     string            `json:"invoiceId,omitempty"`
	Status        TransactionStatus `json:"status"`
	RawStatus     string            `json:"rawStatus"`
	TotalAmount   decimal.Decimal   `json:"totalAmount"`
	PaymentMethod *PaymentMethod    `json:"paymentMethod,omitempty"`
	User          *User             `json:"user,omitempty"`
	Items         []TransactionItem `json:"items,omitempty"`
	CreatedAt     time.Time         `json:"createdAt"`
}

// Actionable is true when the admin approve/reject actions apply.
func (t Transaction) Actionable() bool {
	return t.Status == StatusPending
}

// rawTransaction lists every alias the API has been seen to use.
type rawTransaction struct {
	ID                 string          `json:"id"`
	InvoiceID          string          `json:"invoiceId"`
	Status             string          `json:"status"`
	PaymentStatus      string          `json:"paymentStatus"`
	TotalAmount        json.RawMessage `json:"totalAmount"`
	TotalPriceSnake    json.RawMessage `json:"total_price"`
	TotalPrice         json.RawMessage `json:"totalPrice"`
	Total              json.RawMessage `json:"total"`
	Amount             json.RawMessage `json:"amount"`
	PaymentMethod      *PaymentMethod  `json:"paymentMethod"`
	PaymentMethodSnake *PaymentMethod  `json:"payment_method"`
	User               *User           `json:"user"`
	Items              []rawItem       `json:"transaction_items"`
	CreatedAt          string          `json:"createdAt"`
	UpdatedAt          string          `json:"updatedAt"`
}

type rawItem struct {
	ID         string          `json:"id"`
	ActivityID string          `json:"activityId"`
	Title      string          `json:"title"`
	Price      json.RawMessage `json:"price"`
	Quantity   int             `json:"quantity"`
}

// NormalizeTransaction decodes one API transaction into the canonical type.
func NormalizeTransaction(data json.RawMessage) (Transaction, error) {
	var raw rawTransaction
	if err := json.Unmarshal(data, &raw); err != nil {
		return Transaction{}, fmt.Errorf("decode transaction: %w", err)
	}

	status := raw.Status
	if status == "" {
		status = raw.PaymentStatus
	}

	pm := raw.PaymentMethod
	if pm == nil {
		pm = raw.PaymentMethodSnake
	}

	tx := Transaction{
		ID:            raw.ID,
		InvoiceID:     raw.InvoiceID,
		Status:        ParseStatus(status),
		RawStatus:     status,
		TotalAmount:   firstAmount(raw.TotalAmount, raw.TotalPriceSnake, raw.TotalPrice, raw.Total, raw.Amount),
		PaymentMethod: pm,
		User:          raw.User,
		CreatedAt:     parseTime(raw.CreatedAt, raw.UpdatedAt),
	}
	for _, it := range raw.Items {
		tx.Items = append(tx.Items, TransactionItem{
			ID:         it.ID,
			ActivityID: it.ActivityID,
			Title:      it.Title,
			Price:      firstAmount(it.Price),
			Quantity:   it.Quantity,
		})
	}

	return tx, nil
}

// NormalizeTransactions decodes a list. Only an entry that is not a
// transaction object fails the list; odd amounts decode as zero.
func NormalizeTransactions(list []json.RawMessage) ([]Transaction, error) {
	out := make([]Transaction, 0, len(list))
	for _, item := range list {
		tx, err := NormalizeTransaction(item)
		if err != nil {
			return nil, err
		}
		out = append(out, tx)
	}
	return out, nil
}

// firstAmount returns the first non-zero amount among the aliases. Values
// that are missing, null or not numeric count as zero.
func firstAmount(values ...json.RawMessage) decimal.Decimal {
	for _, raw := range values {
		if len(raw) == 0 {
			continue
		}

		dec := json.NewDecoder(bytes.NewReader(raw))
		dec.UseNumber()
		var v any
		if err := dec.Decode(&v); err != nil {
			continue
		}

		if d := ToDecimal(v); !d.IsZero() {
			return d
		}
	}
	return decimal.Zero
}

func parseTime(values ...string) time.Time {
	for _, v := range values {
		if v == "" {
			continue
		}
		if t, err := time.Parse(time.RFC3339Nano, v); err == nil {
			return t
		}
	}
	return time.Time{}
}
