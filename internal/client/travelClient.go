package client

import (
	"bytes"
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"io"
	"net/http"
	"net/url"
	"strconv"
	"travel-journal-bff/internal/config"
	"travel-journal-bff/internal/model"
)

var ErrTokenMissing = errors.New("token missing in login response")

// TravelClient talks to the remote Travel Journal API. token may be empty
// for anonymous calls; it is sent as a bearer token otherwise.
type TravelClient interface {
	Login(ctx context.Context, req LoginRequest) (*LoginResult, error)
	Register(ctx context.Context, req RegisterRequest) error
	GetLoggedUser(ctx context.Context, token string) (*model.Profile, error)

	ListActivities(ctx context.Context, token string, limit int) ([]model.Activity, error)
	CreateActivity(ctx context.Context, token string, in ActivityInput) error
	UpdateActivity(ctx context.Context, token, id string, in ActivityInput) error
	DeleteActivity(ctx context.Context, token, id string) error

	ListPromos(ctx context.Context, token string) ([]model.Promo, error)
	CreatePromo(ctx context.Context, token string, in PromoInput) error
	UpdatePromo(ctx context.Context, token, id string, in PromoInput) error
	DeletePromo(ctx context.Context, token, id string) error

	ListCategories(ctx context.Context, token string) ([]model.Category, error)

	ListCarts(ctx context.Context, token string) ([]model.CartLineItem, error)
	UpdateCartQuantity(ctx context.Context, token, id string, quantity int) error
	DeleteCart(ctx context.Context, token, id string) error

	ListPaymentMethods(ctx context.Context, token string) ([]model.PaymentMethod, error)

	CreateTransaction(ctx context.Context, token string, req CreateTransactionRequest) (*CreatedTransaction, error)
	MyTransactions(ctx context.Context, token string) ([]model.Transaction, error)
	AllTransactions(ctx context.Context, token string) ([]model.Transaction, error)
	UpdateTransactionStatus(ctx context.Context, token, id string, status model.TransactionStatus) error

	ListUsers(ctx context.Context, token string) ([]model.User, error)
	UpdateUserRole(ctx context.Context, token, id string, role model.Role) error

	ListNotifications(ctx context.Context, token string) ([]model.Notification, error)
}

type travelClientImpl struct {
	httpClient *http.Client
	baseURL    string
	apiKey     string
}

func NewTravelClient(cfg *config.TravelAPI) TravelClient {
	return &travelClientImpl{
		httpClient: &http.Client{
			Timeout: cfg.Timeout,
		},
		baseURL: cfg.BaseURL,
		apiKey:  cfg.APIKey,
	}
}

// payload is a prepared JSON request body.
type payload struct {
	reader io.Reader
}

func jsonPayload(v any) (*payload, error) {
	if v == nil {
		return nil, nil
	}
	body, err := json.Marshal(v)
	if err != nil {
		return nil, fmt.Errorf("marshal req payload: %w", err)
	}
	return &payload{reader: bytes.NewReader(body)}, nil
}

func (c *travelClientImpl) newRequest(ctx context.Context, method, path, token string, body *payload) (*http.Request, error) {
	var reader io.Reader
	if body != nil {
		reader = body.reader
	}

	req, err := http.NewRequestWithContext(ctx, method, c.baseURL+path, reader)
	if err != nil {
		return nil, fmt.Errorf("http new request: %w", err)
	}

	req.Header.Set("apiKey", c.apiKey)
	if token != "" {
		req.Header.Set("Authorization", "Bearer "+token)
	}

	if body != nil && req.Header.Get("Content-Type") == "" {
		req.Header.Set("Content-Type", "application/json")
	}

	return req, nil
}

// send performs the request and returns the raw body of a 2xx answer.
func (c *travelClientImpl) send(ctx context.Context, method, path, token string, body *payload) ([]byte, error) {
	req, err := c.newRequest(ctx, method, path, token, body)
	if err != nil {
		return nil, err
	}

	resp, err := c.httpClient.Do(req)
	if err != nil {
		return nil, &TransportError{Err: err}
	}
	defer resp.Body.Close()

	b, err := io.ReadAll(resp.Body)
	if err != nil {
		return nil, &TransportError{Err: fmt.Errorf("read body: %w", err)}
	}

	if resp.StatusCode < 200 || resp.StatusCode >= 300 {
		return nil, &APIError{
			Method: method,
			Path:   path,
			Status: resp.StatusCode,
			Body:   b,
		}
	}

	return b, nil
}

// call sends a JSON request and decodes the envelope's data into out.
func (c *travelClientImpl) call(ctx context.Context, method, path, token string, in, out any) error {
	body, err := jsonPayload(in)
	if err != nil {
		return err
	}

	b, err := c.send(ctx, method, path, token, body)
	if err != nil {
		return err
	}

	if out == nil {
		return nil
	}

	var env envelope
	if err := json.Unmarshal(b, &env); err != nil {
		return fmt.Errorf("decode %s response: %w", path, err)
	}
	if len(env.Data) == 0 || string(env.Data) == "null" {
		return nil
	}
	if err := json.Unmarshal(env.Data, out); err != nil {
		return fmt.Errorf("decode %s data: %w", path, err)
	}

	return nil
}

func (c *travelClientImpl) Login(ctx context.Context, req LoginRequest) (*LoginResult, error) {
	body, err := jsonPayload(req)
	if err != nil {
		return nil, err
	}

	b, err := c.send(ctx, http.MethodPost, "/login", "", body)
	if err != nil {
		return nil, err
	}

	var env envelope
	if err := json.Unmarshal(b, &env); err != nil {
		return nil, fmt.Errorf("decode login response: %w", err)
	}
	if env.Token == "" {
		return nil, ErrTokenMissing
	}

	result := &LoginResult{Token: env.Token}
	if len(env.Data) > 0 && string(env.Data) != "null" {
		var profile model.Profile
		if err := json.Unmarshal(env.Data, &profile); err != nil {
			return nil, fmt.Errorf("decode login user: %w", err)
		}
		result.Profile = &profile
	}

	return result, nil
}

func (c *travelClientImpl) Register(ctx context.Context, req RegisterRequest) error {
	return c.call(ctx, http.MethodPost, "/register", "", req, nil)
}

func (c *travelClientImpl) GetLoggedUser(ctx context.Context, token string) (*model.Profile, error) {
	var profile model.Profile
	if err := c.call(ctx, http.MethodGet, "/user", token, nil, &profile); err != nil {
		return nil, err
	}
	return &profile, nil
}

func (c *travelClientImpl) ListActivities(ctx context.Context, token string, limit int) ([]model.Activity, error) {
	path := "/activities"
	if limit > 0 {
		path += "?" + url.Values{"limit": {strconv.Itoa(limit)}}.Encode()
	}

	var activities []model.Activity
	err := c.call(ctx, http.MethodGet, path, token, nil, &activities)
	return activities, err
}

func (c *travelClientImpl) CreateActivity(ctx context.Context, token string, in ActivityInput) error {
	return c.call(ctx, http.MethodPost, "/create-activity", token, in, nil)
}

func (c *travelClientImpl) UpdateActivity(ctx context.Context, token, id string, in ActivityInput) error {
	return c.call(ctx, http.MethodPost, "/update-activity/"+url.PathEscape(id), token, in, nil)
}

func (c *travelClientImpl) DeleteActivity(ctx context.Context, token, id string) error {
	return c.call(ctx, http.MethodDelete, "/delete-activity/"+url.PathEscape(id), token, nil, nil)
}

func (c *travelClientImpl) ListPromos(ctx context.Context, token string) ([]model.Promo, error) {
	var promos []model.Promo
	err := c.call(ctx, http.MethodGet, "/promos", token, nil, &promos)
	return promos, err
}

func (c *travelClientImpl) CreatePromo(ctx context.Context, token string, in PromoInput) error {
	return c.call(ctx, http.MethodPost, "/create-promo", token, in, nil)
}

func (c *travelClientImpl) UpdatePromo(ctx context.Context, token, id string, in PromoInput) error {
	return c.call(ctx, http.MethodPost, "/update-promo/"+url.PathEscape(id), token, in, nil)
}

func (c *travelClientImpl) DeletePromo(ctx context.Context, token, id string) error {
	return c.call(ctx, http.MethodDelete, "/delete-promo/"+url.PathEscape(id), token, nil, nil)
}

func (c *travelClientImpl) ListCategories(ctx context.Context, token string) ([]model.Category, error) {
	var categories []model.Category
	err := c.call(ctx, http.MethodGet, "/categories", token, nil, &categories)
	return categories, err
}

func (c *travelClientImpl) ListCarts(ctx context.Context, token string) ([]model.CartLineItem, error) {
	var items []model.CartLineItem
	if err := c.call(ctx, http.MethodGet, "/carts", token, nil, &items); err != nil {
		return nil, err
	}

	for i := range items {
		if items[i].Quantity < 1 {
			items[i].Quantity = 1
		}
	}
	return items, nil
}

func (c *travelClientImpl) UpdateCartQuantity(ctx context.Context, token, id string, quantity int) error {
	return c.call(ctx, http.MethodPost, "/update-cart/"+url.PathEscape(id), token, updateCartRequest{Quantity: quantity}, nil)
}

func (c *travelClientImpl) DeleteCart(ctx context.Context, token, id string) error {
	return c.call(ctx, http.MethodDelete, "/delete-cart/"+url.PathEscape(id), token, nil, nil)
}

func (c *travelClientImpl) ListPaymentMethods(ctx context.Context, token string) ([]model.PaymentMethod, error) {
	var methods []model.PaymentMethod
	err := c.call(ctx, http.MethodGet, "/payment-methods", token, nil, &methods)
	return methods, err
}

func (c *travelClientImpl) CreateTransaction(ctx context.Context, token string, req CreateTransactionRequest) (*CreatedTransaction, error) {
	var created CreatedTransaction
	if err := c.call(ctx, http.MethodPost, "/create-transaction", token, req, &created); err != nil {
		return nil, err
	}
	return &created, nil
}

func (c *travelClientImpl) MyTransactions(ctx context.Context, token string) ([]model.Transaction, error) {
	return c.listTransactions(ctx, "/my-transactions", token)
}

func (c *travelClientImpl) AllTransactions(ctx context.Context, token string) ([]model.Transaction, error) {
	return c.listTransactions(ctx, "/all-transactions", token)
}

func (c *travelClientImpl) listTransactions(ctx context.Context, path, token string) ([]model.Transaction, error) {
	var raw []json.RawMessage
	if err := c.call(ctx, http.MethodGet, path, token, nil, &raw); err != nil {
		return nil, err
	}
	return model.NormalizeTransactions(raw)
}

func (c *travelClientImpl) UpdateTransactionStatus(ctx context.Context, token, id string, status model.TransactionStatus) error {
	return c.call(ctx, http.MethodPost, "/update-transaction-status/"+url.PathEscape(id), token, updateStatusRequest{Status: status}, nil)
}

func (c *travelClientImpl) ListUsers(ctx context.Context, token string) ([]model.User, error) {
	var users []model.User
	err := c.call(ctx, http.MethodGet, "/all-user", token, nil, &users)
	return users, err
}

func (c *travelClientImpl) UpdateUserRole(ctx context.Context, token, id string, role model.Role) error {
	return c.call(ctx, http.MethodPost, "/update-user-role/"+url.PathEscape(id), token, updateRoleRequest{Role: role}, nil)
}

func (c *travelClientImpl) ListNotifications(ctx context.Context, token string) ([]model.Notification, error) {
	b, err := c.send(ctx, http.MethodGet, "/notifications", token, nil)
	if err != nil {
		return nil, err
	}
	return decodeNotifications(b), nil
}

// decodeNotifications accepts data, notifications or items holding the
// list (or the list itself) and yields an empty list for anything else.
func decodeNotifications(b []byte) []model.Notification {
	var list []model.Notification
	if err := json.Unmarshal(b, &list); err == nil {
		return list
	}

	var wrapper struct {
		Data          json.RawMessage `json:"data"`
		Notifications json.RawMessage `json:"notifications"`
		Items         json.RawMessage `json:"items"`
	}
	if err := json.Unmarshal(b, &wrapper); err != nil {
		return []model.Notification{}
	}

	for _, candidate := range []json.RawMessage{wrapper.Data, wrapper.Notifications, wrapper.Items} {
		if len(candidate) == 0 || string(candidate) == "null" {
			continue
		}
		return decodeNotifications(candidate)
	}

	return []model.Notification{}
}
