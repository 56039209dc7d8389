package service

import (
	"context"
	"fmt"
	"strings"
	"travel-journal-bff/internal/client"
	"travel-journal-bff/internal/dto"
	"travel-journal-bff/internal/model"
	"travel-journal-bff/internal/repository"

	"go.uber.org/zap"
)

type AuthService interface {
	Login(ctx context.Context, clientID string, req dto.LoginRequest) (model.Session, error)
	Register(ctx context.Context, req dto.RegisterRequest) error
	Logout(ctx context.Context, clientID string) error
	Session(ctx context.Context, clientID string) model.Session
	Profile(ctx context.Context, session model.Session) (*model.Profile, error)
}

type authServiceImpl struct {
	travelClient    client.TravelClient
	sessionRepo     repository.SessionRepository
	checkoutService CheckoutService
	logger          *zap.Logger
}

func NewAuthService(
	travelClient client.TravelClient,
	sessionRepo repository.SessionRepository,
	checkoutService CheckoutService,
	logger *zap.Logger,
) AuthService {
	return &authServiceImpl{
		travelClient:    travelClient,
		sessionRepo:     sessionRepo,
		checkoutService: checkoutService,
		logger:          logger,
	}
}

func (s *authServiceImpl) Login(ctx context.Context, clientID string, req dto.LoginRequest) (model.Session, error) {
	email := strings.TrimSpace(req.Email)
	if !strings.Contains(email, "@") {
		return model.Session{}, invalid("Email is not valid.")
	}
	if req.Password == "" {
		return model.Session{}, invalid("Password must not be empty.")
	}

	res, err := s.travelClient.Login(ctx, client.LoginRequest{
		Email:    email,
		Password: req.Password,
	})
	if err != nil {
		return model.Session{}, fmt.Errorf("travel api login: %w", err)
	}

	profile := res.Profile
	if profile == nil {
		profile = &model.Profile{Email: email}
	}

	if err := s.sessionRepo.Set(ctx, clientID, res.Token, profile); err != nil {
		return model.Session{}, fmt.Errorf("persist session: %w", err)
	}
	s.checkoutService.Discard(clientID)

	s.logger.Info("user logged in",
		zap.String("client_id", clientID),
		zap.String("role", string(profile.Role)))

	return model.Session{Token: res.Token, Profile: profile}, nil
}

func (s *authServiceImpl) Register(ctx context.Context, req dto.RegisterRequest) error {
	name := strings.TrimSpace(req.Name)
	email := strings.TrimSpace(req.Email)

	if name == "" || email == "" || strings.TrimSpace(req.Password) == "" {
		return invalid("Name, email and password are required.")
	}
	if !strings.Contains(email, "@") {
		return invalid("Email format is not valid.")
	}
	if len(req.Password) < 6 {
		return invalid("Password must be at least 6 characters.")
	}
	if req.Password != req.PasswordRepeat {
		return invalid("Password and password confirmation do not match.")
	}

	role := req.Role
	if role == "" {
		role = model.RoleUser
	}
	if !role.Valid() {
		return invalid("Role must be user or admin.")
	}

	err := s.travelClient.Register(ctx, client.RegisterRequest{
		Name:              name,
		Email:             email,
		Password:          req.Password,
		PasswordRepeat:    req.PasswordRepeat,
		Role:              role,
		PhoneNumber:       strings.TrimSpace(req.PhoneNumber),
		ProfilePictureURL: strings.TrimSpace(req.ProfilePictureURL),
	})
	if err != nil {
		return fmt.Errorf("travel api register: %w", err)
	}

	return nil
}

// Logout clears the stored session and everything derived from it,
// including an open checkout.
func (s *authServiceImpl) Logout(ctx context.Context, clientID string) error {
	s.checkoutService.Discard(clientID)
	if err := s.sessionRepo.Clear(ctx, clientID); err != nil {
		return fmt.Errorf("clear session: %w", err)
	}
	return nil
}

func (s *authServiceImpl) Session(ctx context.Context, clientID string) model.Session {
	return s.sessionRepo.Get(ctx, clientID)
}

func (s *authServiceImpl) Profile(ctx context.Context, session model.Session) (*model.Profile, error) {
	profile, err := s.travelClient.GetLoggedUser(ctx, session.Token)
	if err != nil {
		return nil, fmt.Errorf("travel api get user: %w", err)
	}
	return profile, nil
}
