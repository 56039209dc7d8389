package service

import (
	"context"
	"fmt"
	"strconv"
	"travel-journal-bff/internal/client"
	"travel-journal-bff/internal/dto"
	"travel-journal-bff/internal/model"
	"travel-journal-bff/internal/pricing"
	"travel-journal-bff/internal/repository"

	"go.uber.org/zap"
	"golang.org/x/sync/errgroup"
)

const Brand = "TravelApp"

var (
	guestLinks = []dto.NavLink{
		{To: "/", Label: "Home"},
		{To: "/activity", Label: "Activities"},
		{To: "/promos", Label: "Promos"},
		{To: "/login", Label: "Login"},
		{To: "/register", Label: "Register"},
	}
	userLinks = []dto.NavLink{
		{To: "/", Label: "Home"},
		{To: "/activity", Label: "Activities"},
		{To: "/promos", Label: "Promos"},
		{To: "/cart", Label: "Cart"},
		{To: "/transactions", Label: "My Transactions"},
		{To: "/notifications", Label: "Notifications"},
		{To: "/profile", Label: "Profile"},
	}
	adminLinks = []dto.NavLink{
		{To: "/admin", Label: "Dashboard"},
		{To: "/admin/transactions", Label: "Transactions"},
		{To: "/admin/users", Label: "Users"},
		{To: "/admin/activities", Label: "Activities"},
		{To: "/admin/promos", Label: "Promos"},
	}
)

type NavService interface {
	Nav(ctx context.Context, clientID string, session model.Session) (*dto.NavView, error)
}

type navServiceImpl struct {
	travelClient client.TravelClient
	counterRepo  repository.CounterRepository
	logger       *zap.Logger
}

func NewNavService(
	travelClient client.TravelClient,
	counterRepo repository.CounterRepository,
	logger *zap.Logger,
) NavService {
	return &navServiceImpl{
		travelClient: travelClient,
		counterRepo:  counterRepo,
		logger:       logger,
	}
}

// Nav builds the navbar. The cart and notification counters are only
// loaded for signed-in non-admin sessions; on a fetch failure the last
// cached value is shown. A rejected token is returned as an error so the
// session can be cleared.
func (s *navServiceImpl) Nav(ctx context.Context, clientID string, session model.Session) (*dto.NavView, error) {
	view := &dto.NavView{
		Brand:       Brand,
		DisplayName: session.DisplayName(),
		IsLoggedIn:  session.IsAuthenticated(),
		IsAdmin:     session.IsAdmin(),
	}

	switch {
	case !view.IsLoggedIn:
		view.Links = guestLinks
		return view, nil
	case view.IsAdmin:
		view.Links = adminLinks
		return view, nil
	}
	view.Links = userLinks

	var g errgroup.Group
	g.Go(func() error {
		count, err := s.cartCount(ctx, clientID, session.Token)
		view.CartCount = count
		return err
	})
	g.Go(func() error {
		count, err := s.notificationCount(ctx, clientID, session.Token)
		view.NotificationCount = count
		return err
	})
	if err := g.Wait(); err != nil {
		return nil, err
	}

	view.NotificationBadge = NotificationBadge(view.NotificationCount)
	return view, nil
}

// counterErr keeps only the failures the caller has to act on.
func counterErr(err error) error {
	if client.Classify(err) == client.KindUnauthorized {
		return fmt.Errorf("travel api nav counters: %w", err)
	}
	return nil
}

func (s *navServiceImpl) cartCount(ctx context.Context, clientID, token string) (int, error) {
	items, err := s.travelClient.ListCarts(ctx, token)
	if err == nil {
		return pricing.TotalQuantity(items), nil
	}

	s.logger.Warn("nav cart count", zap.String("client_id", clientID), zap.Error(err))
	cached, cacheErr := s.counterRepo.CartQuantities(ctx, clientID)
	if cacheErr != nil {
		return 0, counterErr(err)
	}
	sum := 0
	for _, q := range cached {
		sum += q
	}
	return sum, counterErr(err)
}

// notificationCount is the number of the user's pending transactions.
func (s *navServiceImpl) notificationCount(ctx context.Context, clientID, token string) (int, error) {
	txs, err := s.travelClient.MyTransactions(ctx, token)
	if err != nil {
		s.logger.Warn("nav notification count", zap.String("client_id", clientID), zap.Error(err))
		cached, cacheErr := s.counterRepo.NotificationCount(ctx, clientID)
		if cacheErr != nil {
			return 0, counterErr(err)
		}
		return cached, counterErr(err)
	}

	count := CountByStatus(txs).Pending

	if err := s.counterRepo.SaveNotificationCount(ctx, clientID, count); err != nil {
		s.logger.Warn("cache notification count", zap.String("client_id", clientID), zap.Error(err))
	}
	return count, nil
}

// NotificationBadge renders the counter bubble: empty for zero, "9+" past nine.
func NotificationBadge(count int) string {
	switch {
	case count <= 0:
		return ""
	case count > 9:
		return "9+"
	default:
		return strconv.Itoa(count)
	}
}
