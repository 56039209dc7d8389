package service

import (
	"context"
	"fmt"
	"net/http"
	"sync"
	"travel-journal-bff/internal/client"
	"travel-journal-bff/internal/model"
)

// memStore is an in-memory repository.LocalStore.
type memStore struct {
	mu   sync.Mutex
	data map[string]map[string]string
}

func newMemStore() *memStore {
	return &memStore{data: map[string]map[string]string{}}
}

func (m *memStore) Get(_ context.Context, clientID, key string) (string, bool, error) {
	m.mu.Lock()
	defer m.mu.Unlock()
	v, ok := m.data[clientID][key]
	return v, ok, nil
}

func (m *memStore) Set(_ context.Context, clientID, key, value string) error {
	m.mu.Lock()
	defer m.mu.Unlock()
	if m.data[clientID] == nil {
		m.data[clientID] = map[string]string{}
	}
	m.data[clientID][key] = value
	return nil
}

func (m *memStore) Delete(_ context.Context, clientID string, keys ...string) error {
	m.mu.Lock()
	defer m.mu.Unlock()
	for _, k := range keys {
		delete(m.data[clientID], k)
	}
	return nil
}

func apiError(status int, body string) error {
	return &client.APIError{Method: http.MethodPost, Path: "/fake", Status: status, Body: []byte(body)}
}

// fakeTravelClient keeps carts, promos and transactions in memory and
// records every write.
type fakeTravelClient struct {
	mu sync.Mutex

	loginResult *client.LoginResult
	loginErr    error
	registered  []client.RegisterRequest
	profile     *model.Profile

	activities     []model.Activity
	categories     []model.Category
	promos         []model.Promo
	carts          []model.CartLineItem
	paymentMethods []model.PaymentMethod
	transactions   []model.Transaction
	users          []model.User
	notifications  []model.Notification

	deleteCartErr map[string]error
	createTxErr   error
	createTxHook  func()
	promosHook    func()
	listErr       map[string]error

	createdTx       []client.CreateTransactionRequest
	statusUpdates   map[string]model.TransactionStatus
	roleUpdates     map[string]model.Role
	createdActivity []client.ActivityInput
	createdPromos   []client.PromoInput
}

func newFakeTravelClient() *fakeTravelClient {
	return &fakeTravelClient{
		deleteCartErr: map[string]error{},
		listErr:       map[string]error{},
		statusUpdates: map[string]model.TransactionStatus{},
		roleUpdates:   map[string]model.Role{},
	}
}

func (f *fakeTravelClient) err(name string) error {
	f.mu.Lock()
	defer f.mu.Unlock()
	return f.listErr[name]
}

func (f *fakeTravelClient) Login(context.Context, client.LoginRequest) (*client.LoginResult, error) {
	return f.loginResult, f.loginErr
}

func (f *fakeTravelClient) Register(_ context.Context, req client.RegisterRequest) error {
	f.mu.Lock()
	defer f.mu.Unlock()
	f.registered = append(f.registered, req)
	return nil
}

func (f *fakeTravelClient) GetLoggedUser(context.Context, string) (*model.Profile, error) {
	return f.profile, f.err("user")
}

func (f *fakeTravelClient) ListActivities(_ context.Context, _ string, limit int) ([]model.Activity, error) {
	if err := f.err("activities"); err != nil {
		return nil, err
	}
	if limit > 0 && limit < len(f.activities) {
		return f.activities[:limit], nil
	}
	return f.activities, nil
}

func (f *fakeTravelClient) CreateActivity(_ context.Context, _ string, in client.ActivityInput) error {
	f.mu.Lock()
	defer f.mu.Unlock()
	f.createdActivity = append(f.createdActivity, in)
	return nil
}

func (f *fakeTravelClient) UpdateActivity(context.Context, string, string, client.ActivityInput) error {
	return nil
}

func (f *fakeTravelClient) DeleteActivity(context.Context, string, string) error {
	return nil
}

func (f *fakeTravelClient) ListPromos(context.Context, string) ([]model.Promo, error) {
	if hook := f.promosHook; hook != nil {
		f.promosHook = nil
		hook()
	}
	if err := f.err("promos"); err != nil {
		return nil, err
	}
	return f.promos, nil
}

func (f *fakeTravelClient) CreatePromo(_ context.Context, _ string, in client.PromoInput) error {
	f.mu.Lock()
	defer f.mu.Unlock()
	f.createdPromos = append(f.createdPromos, in)
	return nil
}

func (f *fakeTravelClient) UpdatePromo(context.Context, string, string, client.PromoInput) error {
	return nil
}

func (f *fakeTravelClient) DeletePromo(context.Context, string, string) error {
	return nil
}

func (f *fakeTravelClient) ListCategories(context.Context, string) ([]model.Category, error) {
	return f.categories, f.err("categories")
}

func (f *fakeTravelClient) ListCarts(context.Context, string) ([]model.CartLineItem, error) {
	if err := f.err("carts"); err != nil {
		return nil, err
	}
	f.mu.Lock()
	defer f.mu.Unlock()
	return append([]model.CartLineItem(nil), f.carts...), nil
}

func (f *fakeTravelClient) UpdateCartQuantity(_ context.Context, _ string, id string, quantity int) error {
	f.mu.Lock()
	defer f.mu.Unlock()
	for i := range f.carts {
		if f.carts[i].ID == id {
			f.carts[i].Quantity = quantity
			return nil
		}
	}
	return apiError(http.StatusNotFound, `{"message":"Cart not found"}`)
}

func (f *fakeTravelClient) DeleteCart(_ context.Context, _ string, id string) error {
	f.mu.Lock()
	defer f.mu.Unlock()
	if err := f.deleteCartErr[id]; err != nil {
		return err
	}
	for i := range f.carts {
		if f.carts[i].ID == id {
			f.carts = append(f.carts[:i], f.carts[i+1:]...)
			return nil
		}
	}
	return nil
}

func (f *fakeTravelClient) ListPaymentMethods(context.Context, string) ([]model.PaymentMethod, error) {
	return f.paymentMethods, f.err("payment-methods")
}

func (f *fakeTravelClient) CreateTransaction(_ context.Context, _ string, req client.CreateTransactionRequest) (*client.CreatedTransaction, error) {
	if f.createTxHook != nil {
		f.createTxHook()
	}

	f.mu.Lock()
	defer f.mu.Unlock()
	f.createdTx = append(f.createdTx, req)
	if f.createTxErr != nil {
		return nil, f.createTxErr
	}
	return &client.CreatedTransaction{ID: fmt.Sprintf("tx-%d", len(f.createdTx))}, nil
}

func (f *fakeTravelClient) MyTransactions(context.Context, string) ([]model.Transaction, error) {
	return f.AllTransactions(context.Background(), "")
}

func (f *fakeTravelClient) AllTransactions(context.Context, string) ([]model.Transaction, error) {
	if err := f.err("transactions"); err != nil {
		return nil, err
	}
	f.mu.Lock()
	defer f.mu.Unlock()
	return append([]model.Transaction(nil), f.transactions...), nil
}

func (f *fakeTravelClient) UpdateTransactionStatus(_ context.Context, _ string, id string, status model.TransactionStatus) error {
	f.mu.Lock()
	defer f.mu.Unlock()
	f.statusUpdates[id] = status
	for i := range f.transactions {
		if f.transactions[i].ID == id {
			f.transactions[i].Status = status
			f.transactions[i].RawStatus = string(status)
		}
	}
	return nil
}

func (f *fakeTravelClient) ListUsers(context.Context, string) ([]model.User, error) {
	return f.users, f.err("users")
}

func (f *fakeTravelClient) UpdateUserRole(_ context.Context, _ string, id string, role model.Role) error {
	f.mu.Lock()
	defer f.mu.Unlock()
	f.roleUpdates[id] = role
	return nil
}

func (f *fakeTravelClient) ListNotifications(context.Context, string) ([]model.Notification, error) {
	return f.notifications, f.err("notifications")
}
