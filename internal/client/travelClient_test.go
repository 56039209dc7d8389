package client

import (
	"context"
	"encoding/json"
	"io"
	"net/http"
	"net/http/httptest"
	"testing"
	"travel-journal-bff/internal/config"
	"travel-journal-bff/internal/model"

	"github.com/shopspring/decimal"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func newTestClient(t *testing.T, h http.HandlerFunc) TravelClient {
	t.Helper()
	srv := httptest.NewServer(h)
	t.Cleanup(srv.Close)

	return NewTravelClient(&config.TravelAPI{
		BaseURL: srv.URL,
		APIKey:  "test-key",
	})
}

func writeJSON(w http.ResponseWriter, status int, body string) {
	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(status)
	_, _ = io.WriteString(w, body)
}

func TestHeaders(t *testing.T) {
	var got http.Header
	c := newTestClient(t, func(w http.ResponseWriter, r *http.Request) {
		got = r.Header.Clone()
		writeJSON(w, http.StatusOK, `{"code":200,"data":null}`)
	})

	t.Run("anonymous call has api key only", func(t *testing.T) {
		_, err := c.ListPromos(context.Background(), "")
		require.NoError(t, err)

		assert.Equal(t, "test-key", got.Get("apiKey"))
		assert.Empty(t, got.Get("Authorization"))
		assert.Empty(t, got.Get("Content-Type"))
	})

	t.Run("token adds bearer and json body", func(t *testing.T) {
		err := c.UpdateCartQuantity(context.Background(), "tok-1", "cart-1", 3)
		require.NoError(t, err)

		assert.Equal(t, "test-key", got.Get("apiKey"))
		assert.Equal(t, "Bearer tok-1", got.Get("Authorization"))
		assert.Equal(t, "application/json", got.Get("Content-Type"))
	})
}

func TestLogin(t *testing.T) {
	t.Run("token and profile", func(t *testing.T) {
		c := newTestClient(t, func(w http.ResponseWriter, r *http.Request) {
			assert.Equal(t, "/login", r.URL.Path)
			var req LoginRequest
			require.NoError(t, json.NewDecoder(r.Body).Decode(&req))
			assert.Equal(t, "a@b.id", req.Email)

			writeJSON(w, http.StatusOK, `{"code":"200","status":"OK","token":"jwt-1","data":{"id":"u1","email":"a@b.id","role":"admin"}}`)
		})

		res, err := c.Login(context.Background(), LoginRequest{Email: "a@b.id", Password: "secret"})
		require.NoError(t, err)
		assert.Equal(t, "jwt-1", res.Token)
		require.NotNil(t, res.Profile)
		assert.Equal(t, model.RoleAdmin, res.Profile.Role)
	})

	t.Run("missing token", func(t *testing.T) {
		c := newTestClient(t, func(w http.ResponseWriter, r *http.Request) {
			writeJSON(w, http.StatusOK, `{"code":"200","data":{"id":"u1"}}`)
		})

		res, err := c.Login(context.Background(), LoginRequest{Email: "a@b.id", Password: "secret"})
		assert.ErrorIs(t, err, ErrTokenMissing)
		assert.Nil(t, res)
	})

	t.Run("rejected credentials", func(t *testing.T) {
		c := newTestClient(t, func(w http.ResponseWriter, r *http.Request) {
			writeJSON(w, http.StatusUnauthorized, `{"message":"Wrong password"}`)
		})

		_, err := c.Login(context.Background(), LoginRequest{Email: "a@b.id", Password: "x"})
		var apiErr *APIError
		require.ErrorAs(t, err, &apiErr)
		assert.Equal(t, http.StatusUnauthorized, apiErr.Status)
	})
}

func TestListActivities_Limit(t *testing.T) {
	var query string
	c := newTestClient(t, func(w http.ResponseWriter, r *http.Request) {
		query = r.URL.RawQuery
		writeJSON(w, http.StatusOK, `{"data":[{"id":"a1","title":"Rafting","price":250000}]}`)
	})

	activities, err := c.ListActivities(context.Background(), "", 8)
	require.NoError(t, err)
	assert.Equal(t, "limit=8", query)
	require.Len(t, activities, 1)
	assert.True(t, activities[0].Price.Equal(decimal.NewFromInt(250000)))

	_, err = c.ListActivities(context.Background(), "", 0)
	require.NoError(t, err)
	assert.Empty(t, query)
}

func TestListCarts_DefaultsQuantity(t *testing.T) {
	c := newTestClient(t, func(w http.ResponseWriter, r *http.Request) {
		writeJSON(w, http.StatusOK, `{"data":[
			{"id":"c1","quantity":2,"activity":{"id":"a1","price":500000}},
			{"id":"c2","activity":{"id":"a2","price":100000}}
		]}`)
	})

	items, err := c.ListCarts(context.Background(), "tok")
	require.NoError(t, err)
	require.Len(t, items, 2)
	assert.Equal(t, 2, items[0].Quantity)
	assert.Equal(t, 1, items[1].Quantity)
}

func TestCreateTransaction_NullPromo(t *testing.T) {
	var body map[string]any
	c := newTestClient(t, func(w http.ResponseWriter, r *http.Request) {
		assert.Equal(t, "/create-transaction", r.URL.Path)
		require.NoError(t, json.NewDecoder(r.Body).Decode(&body))
		writeJSON(w, http.StatusOK, `{"data":{"id":"tx-9"}}`)
	})

	created, err := c.CreateTransaction(context.Background(), "tok", CreateTransactionRequest{
		CartIDs:         []string{"c1"},
		PaymentMethodID: "pm-1",
	})
	require.NoError(t, err)
	assert.Equal(t, "tx-9", created.ID)

	assert.Contains(t, body, "promoCode")
	assert.Nil(t, body["promoCode"])
	assert.Equal(t, []any{"c1"}, body["cartIds"])
}

func TestMyTransactions_Normalized(t *testing.T) {
	c := newTestClient(t, func(w http.ResponseWriter, r *http.Request) {
		writeJSON(w, http.StatusOK, `{"data":[{"id":"t1","status":"paid","totalPrice":120000}]}`)
	})

	txs, err := c.MyTransactions(context.Background(), "tok")
	require.NoError(t, err)
	require.Len(t, txs, 1)
	assert.Equal(t, model.StatusSuccess, txs[0].Status)
	assert.True(t, txs[0].TotalAmount.Equal(decimal.NewFromInt(120000)))
}

func TestAllTransactions_MalformedAmount(t *testing.T) {
	c := newTestClient(t, func(w http.ResponseWriter, r *http.Request) {
		writeJSON(w, http.StatusOK, `{"data":[{"id":"t1","status":"pending","totalAmount":100000},{"id":"t2","status":"pending","totalAmount":""}]}`)
	})

	txs, err := c.AllTransactions(context.Background(), "tok")
	require.NoError(t, err)
	require.Len(t, txs, 2)
	assert.True(t, txs[1].TotalAmount.IsZero())
}

func TestListNotifications_Shapes(t *testing.T) {
	bodies := []string{
		`[{"id":"n1"}]`,
		`{"data":[{"id":"n1"}]}`,
		`{"notifications":[{"id":"n1"}]}`,
		`{"items":[{"id":"n1"}]}`,
	}

	for _, body := range bodies {
		body := body
		c := newTestClient(t, func(w http.ResponseWriter, r *http.Request) {
			writeJSON(w, http.StatusOK, body)
		})

		list, err := c.ListNotifications(context.Background(), "tok")
		require.NoError(t, err)
		require.Len(t, list, 1, body)
		assert.Equal(t, "n1", list[0].ID)
	}

	c := newTestClient(t, func(w http.ResponseWriter, r *http.Request) {
		writeJSON(w, http.StatusOK, `{"data":"nothing here"}`)
	})
	list, err := c.ListNotifications(context.Background(), "tok")
	require.NoError(t, err)
	assert.Empty(t, list)
}

func TestTransportError(t *testing.T) {
	c := NewTravelClient(&config.TravelAPI{BaseURL: "http://127.0.0.1:1", APIKey: "k"})

	_, err := c.ListPromos(context.Background(), "")
	assert.Equal(t, KindNetworkUnreachable, Classify(err))
}
