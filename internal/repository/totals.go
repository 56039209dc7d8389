package repository

import (
	"context"
	"encoding/json"
	"fmt"
	"travel-journal-bff/internal/model"

	"go.uber.org/zap"
)

// TotalsRepository keeps the checkout figures per transaction id.
type TotalsRepository interface {
	Save(ctx context.Context, clientID, transactionID string, totals model.CheckoutTotals) error
	LoadAll(ctx context.Context, clientID string) map[string]model.CheckoutTotals
}

type totalsRepoImpl struct {
	store  LocalStore
	logger *zap.Logger
}

func NewTotalsRepository(store LocalStore, logger *zap.Logger) TotalsRepository {
	return &totalsRepoImpl{
		store:  store,
		logger: logger,
	}
}

// LoadAll returns an empty map when nothing is stored or the value is not a
// JSON object.
func (r *totalsRepoImpl) LoadAll(ctx context.Context, clientID string) map[string]model.CheckoutTotals {
	out := map[string]model.CheckoutTotals{}

	raw, ok, err := r.store.Get(ctx, clientID, model.KeyTransactionTotals)
	if err != nil {
		r.logger.Warn("load transaction totals", zap.String("client_id", clientID), zap.Error(err))
		return out
	}
	if !ok || raw == "" {
		return out
	}

	if err := json.Unmarshal([]byte(raw), &out); err != nil {
		r.logger.Warn("parse transaction totals", zap.String("client_id", clientID), zap.Error(err))
		return map[string]model.CheckoutTotals{}
	}

	return out
}

func (r *totalsRepoImpl) Save(ctx context.Context, clientID, transactionID string, totals model.CheckoutTotals) error {
	if transactionID == "" {
		return nil
	}

	current := r.LoadAll(ctx, clientID)
	current[transactionID] = totals

	raw, err := json.Marshal(current)
	if err != nil {
		return fmt.Errorf("marshal transaction totals: %w", err)
	}

	return r.store.Set(ctx, clientID, model.KeyTransactionTotals, string(raw))
}
