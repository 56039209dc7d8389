package service

import (
	"context"
	"fmt"
	"strings"
	"sync"
	"travel-journal-bff/internal/client"
	"travel-journal-bff/internal/dto"
	"travel-journal-bff/internal/format"
	"travel-journal-bff/internal/model"

	"github.com/shopspring/decimal"
	"go.uber.org/zap"
	"golang.org/x/sync/errgroup"
)

// AdminActivityLimit is how many activities the back-office table loads.
const AdminActivityLimit = 100

type AdminService interface {
	Dashboard(ctx context.Context, token string) *dto.DashboardView

	Users(ctx context.Context, token string) ([]model.User, error)
	ChangeRole(ctx context.Context, token, userID string, role model.Role) error

	Activities(ctx context.Context, token string) ([]model.Activity, error)
	CreateActivity(ctx context.Context, token string, req dto.ActivityRequest) error
	UpdateActivity(ctx context.Context, token, id string, req dto.ActivityRequest) error
	DeleteActivity(ctx context.Context, token, id string) error

	Promos(ctx context.Context, token string) ([]model.Promo, error)
	CreatePromo(ctx context.Context, token string, req dto.PromoRequest) error
	UpdatePromo(ctx context.Context, token, id string, req dto.PromoRequest) error
	DeletePromo(ctx context.Context, token, id string) error
}

type adminServiceImpl struct {
	travelClient client.TravelClient
	logger       *zap.Logger
}

func NewAdminService(
	travelClient client.TravelClient,
	logger *zap.Logger,
) AdminService {
	return &adminServiceImpl{
		travelClient: travelClient,
		logger:       logger,
	}
}

// Dashboard loads the four back-office sources side by side. A failing source
// is reported in Errors and the others are still shown.
func (s *adminServiceImpl) Dashboard(ctx context.Context, token string) *dto.DashboardView {
	var (
		mu   sync.Mutex
		view = &dto.DashboardView{Errors: map[string]string{}}
		g    errgroup.Group
	)

	fail := func(source string, err error) {
		s.logger.Warn("dashboard source failed", zap.String("source", source), zap.Error(err))
		mu.Lock()
		view.Errors[source] = client.FriendlyMessage(err, "Failed to load "+source+".")
		mu.Unlock()
	}

	g.Go(func() error {
		users, err := s.travelClient.ListUsers(ctx, token)
		if err != nil {
			fail("users", err)
			return nil
		}
		mu.Lock()
		view.UserCount = len(users)
		mu.Unlock()
		return nil
	})
	g.Go(func() error {
		activities, err := s.travelClient.ListActivities(ctx, token, AdminActivityLimit)
		if err != nil {
			fail("activities", err)
			return nil
		}
		mu.Lock()
		view.ActivityCount = len(activities)
		mu.Unlock()
		return nil
	})
	g.Go(func() error {
		promos, err := s.travelClient.ListPromos(ctx, token)
		if err != nil {
			fail("promos", err)
			return nil
		}
		mu.Lock()
		view.PromoCount = len(promos)
		mu.Unlock()
		return nil
	})
	g.Go(func() error {
		txs, err := s.travelClient.AllTransactions(ctx, token)
		if err != nil {
			fail("transactions", err)
			return nil
		}
		mu.Lock()
		view.TransactionCount = len(txs)
		view.Revenue = Revenue(txs)
		view.StatusCounts = CountByStatus(txs)
		mu.Unlock()
		return nil
	})

	_ = g.Wait()

	view.RevenueText = format.Currency(view.Revenue)
	if len(view.Errors) == 0 {
		view.Errors = nil
	}
	return view
}

func (s *adminServiceImpl) Users(ctx context.Context, token string) ([]model.User, error) {
	users, err := s.travelClient.ListUsers(ctx, token)
	if err != nil {
		return nil, fmt.Errorf("travel api list users: %w", err)
	}
	return users, nil
}

func (s *adminServiceImpl) ChangeRole(ctx context.Context, token, userID string, role model.Role) error {
	if !role.Valid() {
		return invalid("Role must be user or admin.")
	}
	if err := s.travelClient.UpdateUserRole(ctx, token, userID, role); err != nil {
		return fmt.Errorf("travel api update user role: %w", err)
	}

	s.logger.Info("user role changed", zap.String("user_id", userID), zap.String("role", string(role)))
	return nil
}

func (s *adminServiceImpl) Activities(ctx context.Context, token string) ([]model.Activity, error) {
	activities, err := s.travelClient.ListActivities(ctx, token, AdminActivityLimit)
	if err != nil {
		return nil, fmt.Errorf("travel api list activities: %w", err)
	}
	return activities, nil
}

func activityInput(req dto.ActivityRequest) (client.ActivityInput, error) {
	title := strings.TrimSpace(req.Title)
	if title == "" {
		return client.ActivityInput{}, invalid("Title is required.")
	}

	price, err := parseAmount(req.Price, "Price")
	if err != nil {
		return client.ActivityInput{}, err
	}

	imageURL := strings.TrimSpace(req.ImageURL)
	imageURLs := []string{}
	if imageURL != "" {
		imageURLs = append(imageURLs, imageURL)
	}

	return client.ActivityInput{
		CategoryID:   strings.TrimSpace(req.CategoryID),
		Title:        title,
		Description:  strings.TrimSpace(req.Description),
		City:         strings.TrimSpace(req.City),
		Location:     strings.TrimSpace(req.Address),
		Price:        client.Number(price),
		ImageURL:     imageURL,
		ImageURLs:    imageURLs,
		Address:      strings.TrimSpace(req.Address),
		Province:     strings.TrimSpace(req.Province),
		Facilities:   strings.TrimSpace(req.Facilities),
		LocationMaps: strings.TrimSpace(req.LocationMaps),
	}, nil
}

// parseAmount reads a non-negative rupiah amount; an empty field is zero.
func parseAmount(raw, field string) (decimal.Decimal, error) {
	raw = strings.TrimSpace(raw)
	if raw == "" {
		return decimal.Zero, nil
	}

	v, err := decimal.NewFromString(raw)
	if err != nil {
		return decimal.Zero, invalid(field + " must be a number.")
	}
	if v.IsNegative() {
		return decimal.Zero, invalid(field + " must not be negative.")
	}
	return v, nil
}

func (s *adminServiceImpl) CreateActivity(ctx context.Context, token string, req dto.ActivityRequest) error {
	in, err := activityInput(req)
	if err != nil {
		return err
	}
	if err := s.travelClient.CreateActivity(ctx, token, in); err != nil {
		return fmt.Errorf("travel api create activity: %w", err)
	}
	return nil
}

func (s *adminServiceImpl) UpdateActivity(ctx context.Context, token, id string, req dto.ActivityRequest) error {
	in, err := activityInput(req)
	if err != nil {
		return err
	}
	if err := s.travelClient.UpdateActivity(ctx, token, id, in); err != nil {
		return fmt.Errorf("travel api update activity: %w", err)
	}
	return nil
}

func (s *adminServiceImpl) DeleteActivity(ctx context.Context, token, id string) error {
	if err := s.travelClient.DeleteActivity(ctx, token, id); err != nil {
		return fmt.Errorf("travel api delete activity: %w", err)
	}
	return nil
}

func (s *adminServiceImpl) Promos(ctx context.Context, token string) ([]model.Promo, error) {
	promos, err := s.travelClient.ListPromos(ctx, token)
	if err != nil {
		return nil, fmt.Errorf("travel api list promos: %w", err)
	}
	return promos, nil
}

func promoInput(req dto.PromoRequest) (client.PromoInput, error) {
	name := strings.TrimSpace(req.Name)
	code := strings.ToUpper(strings.TrimSpace(req.Code))
	if name == "" || code == "" {
		return client.PromoInput{}, invalid("Promo name and code are required.")
	}

	minimum, err := parseAmount(req.MinimumClaimPrice, "Minimum claim price")
	if err != nil {
		return client.PromoInput{}, err
	}
	discount, err := parseAmount(req.DiscountPrice, "Discount")
	if err != nil {
		return client.PromoInput{}, err
	}
	if !minimum.IsZero() && discount.GreaterThan(minimum) {
		return client.PromoInput{}, invalid("Discount must not exceed the minimum claim price.")
	}

	return client.PromoInput{
		Title:             name,
		Name:              name,
		Description:       strings.TrimSpace(req.Description),
		Code:              code,
		TermsCondition:    strings.TrimSpace(req.TermsCondition),
		MinimumClaimPrice: client.Number(minimum),
		DiscountPrice:     client.Number(discount),
		ImageURL:          strings.TrimSpace(req.ImageURL),
	}, nil
}

func (s *adminServiceImpl) CreatePromo(ctx context.Context, token string, req dto.PromoRequest) error {
	in, err := promoInput(req)
	if err != nil {
		return err
	}
	if err := s.travelClient.CreatePromo(ctx, token, in); err != nil {
		return fmt.Errorf("travel api create promo: %w", err)
	}
	return nil
}

func (s *adminServiceImpl) UpdatePromo(ctx context.Context, token, id string, req dto.PromoRequest) error {
	in, err := promoInput(req)
	if err != nil {
		return err
	}
	if err := s.travelClient.UpdatePromo(ctx, token, id, in); err != nil {
		return fmt.Errorf("travel api update promo: %w", err)
	}
	return nil
}

func (s *adminServiceImpl) DeletePromo(ctx context.Context, token, id string) error {
	if err := s.travelClient.DeletePromo(ctx, token, id); err != nil {
		return fmt.Errorf("travel api delete promo: %w", err)
	}
	return nil
}
