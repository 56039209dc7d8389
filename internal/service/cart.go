package service

import (
	"context"
	"errors"
	"fmt"
	"travel-journal-bff/internal/client"
	"travel-journal-bff/internal/model"
	"travel-journal-bff/internal/repository"

	"go.uber.org/zap"
)

var ErrCartItemNotFound = errors.New("cart item not found")

type CartService interface {
	List(ctx context.Context, token string) ([]model.CartLineItem, error)
	ChangeQuantity(ctx context.Context, clientID, token, id string, delta int) ([]model.CartLineItem, error)
	Remove(ctx context.Context, token, id string) error
	RemoveAll(ctx context.Context, token string) ([]model.BatchResult, error)
}

type cartServiceImpl struct {
	travelClient client.TravelClient
	counterRepo  repository.CounterRepository
	logger       *zap.Logger
}

func NewCartService(
	travelClient client.TravelClient,
	counterRepo repository.CounterRepository,
	logger *zap.Logger,
) CartService {
	return &cartServiceImpl{
		travelClient: travelClient,
		counterRepo:  counterRepo,
		logger:       logger,
	}
}

func (s *cartServiceImpl) List(ctx context.Context, token string) ([]model.CartLineItem, error) {
	items, err := s.travelClient.ListCarts(ctx, token)
	if err != nil {
		return nil, fmt.Errorf("travel api list carts: %w", err)
	}

	for i := range items {
		items[i].Quantity = ClampQuantity(items[i].Quantity)
	}
	return items, nil
}

// ClampQuantity keeps a line item quantity at 1 or more.
func ClampQuantity(q int) int {
	if q < 1 {
		return 1
	}
	return q
}

// ChangeQuantity reads the current quantity from the server, stores
// max(1, current+delta), then refreshes the cached quantity map.
func (s *cartServiceImpl) ChangeQuantity(ctx context.Context, clientID, token, id string, delta int) ([]model.CartLineItem, error) {
	items, err := s.List(ctx, token)
	if err != nil {
		return nil, err
	}

	idx := -1
	for i := range items {
		if items[i].ID == id {
			idx = i
			break
		}
	}
	if idx < 0 {
		return nil, ErrCartItemNotFound
	}

	newQty := ClampQuantity(items[idx].Quantity + delta)
	if err := s.travelClient.UpdateCartQuantity(ctx, token, id, newQty); err != nil {
		return nil, fmt.Errorf("travel api update cart: %w", err)
	}
	items[idx].Quantity = newQty

	quantities := make(map[string]int, len(items))
	for _, it := range items {
		quantities[it.ID] = it.Quantity
	}
	if err := s.counterRepo.SaveCartQuantities(ctx, clientID, quantities); err != nil {
		s.logger.Warn("cache cart quantities", zap.String("client_id", clientID), zap.Error(err))
	}

	return items, nil
}

func (s *cartServiceImpl) Remove(ctx context.Context, token, id string) error {
	if err := s.travelClient.DeleteCart(ctx, token, id); err != nil {
		return fmt.Errorf("travel api delete cart: %w", err)
	}
	return nil
}

// RemoveAll deletes every item one after another. A failing item is
// recorded and the loop carries on.
func (s *cartServiceImpl) RemoveAll(ctx context.Context, token string) ([]model.BatchResult, error) {
	items, err := s.List(ctx, token)
	if err != nil {
		return nil, err
	}

	results := make([]model.BatchResult, 0, len(items))
	for _, item := range items {
		err := s.Remove(ctx, token, item.ID)
		if err != nil {
			s.logger.Warn("delete cart item during clear", zap.String("cart_id", item.ID), zap.Error(err))
		}
		results = append(results, model.BatchResult{ID: item.ID, Err: err})
	}

	return results, nil
}
