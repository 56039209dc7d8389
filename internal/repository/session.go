package repository

import (
	"context"
	"encoding/json"
	"fmt"
	"travel-journal-bff/internal/model"

	"go.uber.org/zap"
)

// SessionRepository persists a client's token and profile.
type SessionRepository interface {
	// Get never fails: unreadable storage or a garbled profile yield an
	// unauthenticated session.
	Get(ctx context.Context, clientID string) model.Session
	Set(ctx context.Context, clientID, token string, profile *model.Profile) error
	// Clear removes the session and every value derived from it.
	Clear(ctx context.Context, clientID string) error
}

type sessionRepoImpl struct {
	store  LocalStore
	logger *zap.Logger
}

func NewSessionRepository(store LocalStore, logger *zap.Logger) SessionRepository {
	return &sessionRepoImpl{
		store:  store,
		logger: logger,
	}
}

func (r *sessionRepoImpl) Get(ctx context.Context, clientID string) model.Session {
	var session model.Session

	token, ok, err := r.store.Get(ctx, clientID, model.KeyToken)
	if err != nil {
		r.logger.Warn("read session token", zap.String("client_id", clientID), zap.Error(err))
		return model.Session{}
	}
	if ok {
		session.Token = token
	}

	raw, ok, err := r.store.Get(ctx, clientID, model.KeyUserProfile)
	if err != nil {
		r.logger.Warn("read session profile", zap.String("client_id", clientID), zap.Error(err))
		return session
	}
	if !ok || raw == "" {
		return session
	}

	var profile model.Profile
	if err := json.Unmarshal([]byte(raw), &profile); err != nil {
		r.logger.Warn("parse session profile", zap.String("client_id", clientID), zap.Error(err))
		return session
	}
	session.Profile = &profile

	return session
}

// Set writes the token first, then the profile. The two writes are not
// atomic.
func (r *sessionRepoImpl) Set(ctx context.Context, clientID, token string, profile *model.Profile) error {
	if profile == nil {
		return fmt.Errorf("set session: profile is required")
	}

	raw, err := json.Marshal(profile)
	if err != nil {
		return fmt.Errorf("marshal profile: %w", err)
	}

	if err := r.store.Set(ctx, clientID, model.KeyToken, token); err != nil {
		return fmt.Errorf("store token: %w", err)
	}
	if err := r.store.Set(ctx, clientID, model.KeyUserProfile, string(raw)); err != nil {
		return fmt.Errorf("store profile: %w", err)
	}

	return nil
}

func (r *sessionRepoImpl) Clear(ctx context.Context, clientID string) error {
	return r.store.Delete(ctx, clientID,
		model.KeyToken,
		model.KeyUserProfile,
		model.KeyCartQuantities,
		model.KeyNotificationCount,
	)
}
