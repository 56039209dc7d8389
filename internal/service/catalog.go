package service

import (
	"context"
	"fmt"
	"travel-journal-bff/internal/client"
	"travel-journal-bff/internal/dto"
	"travel-journal-bff/internal/model"

	"golang.org/x/sync/errgroup"
)

// HomeActivityLimit is how many activities the landing page shows.
const HomeActivityLimit = 8

type CatalogService interface {
	Home(ctx context.Context, token string) (*dto.HomeView, error)
	Activities(ctx context.Context, token string) (*dto.ActivityListView, error)
	Promos(ctx context.Context, token string) ([]model.Promo, error)
	Notifications(ctx context.Context, token string) ([]model.Notification, error)
}

type catalogServiceImpl struct {
	travelClient client.TravelClient
}

func NewCatalogService(travelClient client.TravelClient) CatalogService {
	return &catalogServiceImpl{
		travelClient: travelClient,
	}
}

func (s *catalogServiceImpl) Home(ctx context.Context, token string) (*dto.HomeView, error) {
	view := &dto.HomeView{}

	g, gctx := errgroup.WithContext(ctx)
	g.Go(func() error {
		promos, err := s.travelClient.ListPromos(gctx, token)
		if err != nil {
			return fmt.Errorf("travel api list promos: %w", err)
		}
		view.Promos = promos
		return nil
	})
	g.Go(func() error {
		activities, err := s.travelClient.ListActivities(gctx, token, HomeActivityLimit)
		if err != nil {
			return fmt.Errorf("travel api list activities: %w", err)
		}
		view.Activities = activities
		return nil
	})
	g.Go(func() error {
		categories, err := s.travelClient.ListCategories(gctx, token)
		if err != nil {
			return fmt.Errorf("travel api list categories: %w", err)
		}
		view.Categories = categories
		return nil
	})

	if err := g.Wait(); err != nil {
		return nil, err
	}
	return view, nil
}

func (s *catalogServiceImpl) Activities(ctx context.Context, token string) (*dto.ActivityListView, error) {
	view := &dto.ActivityListView{}

	g, gctx := errgroup.WithContext(ctx)
	g.Go(func() error {
		activities, err := s.travelClient.ListActivities(gctx, token, 0)
		if err != nil {
			return fmt.Errorf("travel api list activities: %w", err)
		}
		view.Activities = activities
		return nil
	})
	g.Go(func() error {
		promos, err := s.travelClient.ListPromos(gctx, token)
		if err != nil {
			return fmt.Errorf("travel api list promos: %w", err)
		}
		view.Promos = promos
		return nil
	})

	if err := g.Wait(); err != nil {
		return nil, err
	}
	return view, nil
}

func (s *catalogServiceImpl) Promos(ctx context.Context, token string) ([]model.Promo, error) {
	promos, err := s.travelClient.ListPromos(ctx, token)
	if err != nil {
		return nil, fmt.Errorf("travel api list promos: %w", err)
	}
	return promos, nil
}

func (s *catalogServiceImpl) Notifications(ctx context.Context, token string) ([]model.Notification, error) {
	notifications, err := s.travelClient.ListNotifications(ctx, token)
	if err != nil {
		return nil, fmt.Errorf("travel api list notifications: %w", err)
	}
	return notifications, nil
}
