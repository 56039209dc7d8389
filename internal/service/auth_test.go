package service

import (
	"context"
	"testing"
	"travel-journal-bff/internal/client"
	"travel-journal-bff/internal/dto"
	"travel-journal-bff/internal/model"
	"travel-journal-bff/internal/repository"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"go.uber.org/zap"
)

func newAuthFixture() (AuthService, *fakeTravelClient, *memStore) {
	auth, fake, store, _ := newAuthCheckoutFixture()
	return auth, fake, store
}

func newAuthCheckoutFixture() (AuthService, *fakeTravelClient, *memStore, CheckoutService) {
	fake := newFakeTravelClient()
	store := newMemStore()
	sessions := repository.NewSessionRepository(store, zap.NewNop())
	totals := repository.NewTotalsRepository(store, zap.NewNop())
	checkout := NewCheckoutService(fake, totals, zap.NewNop())
	return NewAuthService(fake, sessions, checkout, zap.NewNop()), fake, store, checkout
}

func TestLogin_PersistsSession(t *testing.T) {
	ctx := context.Background()
	auth, fake, _ := newAuthFixture()
	fake.loginResult = &client.LoginResult{
		Token:   "jwt-1",
		Profile: &model.Profile{ID: "u1", Email: "a@b.id", Role: model.RoleUser},
	}

	session, err := auth.Login(ctx, "c1", dto.LoginRequest{Email: " a@b.id ", Password: "secret"})
	require.NoError(t, err)
	assert.True(t, session.IsAuthenticated())

	stored := auth.Session(ctx, "c1")
	assert.Equal(t, "jwt-1", stored.Token)
	assert.Equal(t, model.RoleUser, stored.Role())
}

func TestLogin_MissingProfileFallsBackToEmail(t *testing.T) {
	ctx := context.Background()
	auth, fake, _ := newAuthFixture()
	fake.loginResult = &client.LoginResult{Token: "jwt-1"}

	_, err := auth.Login(ctx, "c1", dto.LoginRequest{Email: "a@b.id", Password: "secret"})
	require.NoError(t, err)

	stored := auth.Session(ctx, "c1")
	require.NotNil(t, stored.Profile)
	assert.Equal(t, "a@b.id", stored.Profile.Email)
	assert.False(t, stored.IsAdmin())
}

func TestLogin_TokenMissingPersistsNothing(t *testing.T) {
	ctx := context.Background()
	auth, fake, store := newAuthFixture()
	fake.loginErr = client.ErrTokenMissing

	_, err := auth.Login(ctx, "c1", dto.LoginRequest{Email: "a@b.id", Password: "secret"})
	assert.ErrorIs(t, err, client.ErrTokenMissing)

	assert.False(t, auth.Session(ctx, "c1").IsAuthenticated())
	assert.Empty(t, store.data["c1"])
}

func TestLogin_Validation(t *testing.T) {
	auth, _, _ := newAuthFixture()

	_, err := auth.Login(context.Background(), "c1", dto.LoginRequest{Email: "nope", Password: "x"})
	assert.True(t, IsValidation(err))

	_, err = auth.Login(context.Background(), "c1", dto.LoginRequest{Email: "a@b.id"})
	assert.True(t, IsValidation(err))
}

func TestRegister(t *testing.T) {
	valid := dto.RegisterRequest{
		Name:           "Budi",
		Email:          "budi@x.id",
		Password:       "secret1",
		PasswordRepeat: "secret1",
	}

	tests := []struct {
		name    string
		mutate  func(r *dto.RegisterRequest)
		wantErr bool
	}{
		{"valid defaults role", func(*dto.RegisterRequest) {}, false},
		{"missing name", func(r *dto.RegisterRequest) { r.Name = " " }, true},
		{"bad email", func(r *dto.RegisterRequest) { r.Email = "budi" }, true},
		{"short password", func(r *dto.RegisterRequest) { r.Password, r.PasswordRepeat = "abc", "abc" }, true},
		{"mismatch", func(r *dto.RegisterRequest) { r.PasswordRepeat = "secret2" }, true},
		{"bad role", func(r *dto.RegisterRequest) { r.Role = "root" }, true},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			auth, fake, _ := newAuthFixture()
			req := valid
			tt.mutate(&req)

			err := auth.Register(context.Background(), req)
			if tt.wantErr {
				assert.True(t, IsValidation(err))
				assert.Empty(t, fake.registered)
				return
			}
			require.NoError(t, err)
			require.Len(t, fake.registered, 1)
			assert.Equal(t, model.RoleUser, fake.registered[0].Role)
		})
	}
}

func TestLogout_ClearsSessionAndCounters(t *testing.T) {
	ctx := context.Background()
	auth, fake, store := newAuthFixture()
	fake.loginResult = &client.LoginResult{Token: "jwt-1", Profile: &model.Profile{Email: "a@b.id"}}

	_, err := auth.Login(ctx, "c1", dto.LoginRequest{Email: "a@b.id", Password: "secret"})
	require.NoError(t, err)
	require.NoError(t, store.Set(ctx, "c1", model.KeyCartQuantities, `{"c":1}`))
	require.NoError(t, store.Set(ctx, "c1", model.KeyNotificationCount, "3"))

	require.NoError(t, auth.Logout(ctx, "c1"))

	assert.False(t, auth.Session(ctx, "c1").IsAuthenticated())
	_, ok, _ := store.Get(ctx, "c1", model.KeyCartQuantities)
	assert.False(t, ok)
	_, ok, _ = store.Get(ctx, "c1", model.KeyNotificationCount)
	assert.False(t, ok)
}

func TestSessionChangeDiscardsCheckout(t *testing.T) {
	ctx := context.Background()
	auth, fake, _, checkout := newAuthCheckoutFixture()
	fake.carts = []model.CartLineItem{cartItem("c1", 100000, 1)}
	fake.loginResult = &client.LoginResult{Token: "jwt-1", Profile: &model.Profile{Email: "a@b.id"}}

	_, err := auth.Login(ctx, "c1", dto.LoginRequest{Email: "a@b.id", Password: "secret"})
	require.NoError(t, err)
	_, err = checkout.Start(ctx, "c1", "jwt-1", nil)
	require.NoError(t, err)

	require.NoError(t, auth.Logout(ctx, "c1"))
	_, err = checkout.View(ctx, "c1", "jwt-1")
	assert.ErrorIs(t, err, ErrCheckoutNotStarted)

	_, err = checkout.Start(ctx, "c1", "jwt-1", nil)
	require.NoError(t, err)
	_, err = auth.Login(ctx, "c1", dto.LoginRequest{Email: "a@b.id", Password: "secret"})
	require.NoError(t, err)
	_, err = checkout.View(ctx, "c1", "jwt-1")
	assert.ErrorIs(t, err, ErrCheckoutNotStarted)
}
