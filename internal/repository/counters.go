package repository

import (
	"context"
	"encoding/json"
	"fmt"
	"strconv"
	"travel-journal-bff/internal/model"
)

// CounterRepository holds the small derived values the navbar and cart
// screens cache between requests. Neither is a source of truth.
type CounterRepository interface {
	SaveCartQuantities(ctx context.Context, clientID string, quantities map[string]int) error
	CartQuantities(ctx context.Context, clientID string) (map[string]int, error)
	SaveNotificationCount(ctx context.Context, clientID string, count int) error
	NotificationCount(ctx context.Context, clientID string) (int, error)
}

type counterRepoImpl struct {
	store LocalStore
}

func NewCounterRepository(store LocalStore) CounterRepository {
	return &counterRepoImpl{
		store: store,
	}
}

func (r *counterRepoImpl) SaveCartQuantities(ctx context.Context, clientID string, quantities map[string]int) error {
	raw, err := json.Marshal(quantities)
	if err != nil {
		return fmt.Errorf("marshal cart quantities: %w", err)
	}
	return r.store.Set(ctx, clientID, model.KeyCartQuantities, string(raw))
}

func (r *counterRepoImpl) CartQuantities(ctx context.Context, clientID string) (map[string]int, error) {
	quantities := map[string]int{}

	raw, ok, err := r.store.Get(ctx, clientID, model.KeyCartQuantities)
	if err != nil || !ok {
		return quantities, err
	}

	if err := json.Unmarshal([]byte(raw), &quantities); err != nil {
		return map[string]int{}, fmt.Errorf("parse cart quantities: %w", err)
	}
	return quantities, nil
}

func (r *counterRepoImpl) SaveNotificationCount(ctx context.Context, clientID string, count int) error {
	return r.store.Set(ctx, clientID, model.KeyNotificationCount, strconv.Itoa(count))
}

func (r *counterRepoImpl) NotificationCount(ctx context.Context, clientID string) (int, error) {
	raw, ok, err := r.store.Get(ctx, clientID, model.KeyNotificationCount)
	if err != nil || !ok {
		return 0, err
	}

	count, err := strconv.Atoi(raw)
	if err != nil {
		return 0, fmt.Errorf("parse notification count: %w", err)
	}
	return count, nil
}
