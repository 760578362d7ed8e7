package httpx_test

import (
	"bytes"
	"context"
	"encoding/json"
	"io"
	"log/slog"
	"net/http"
	"net/http/httptest"
	"sync"
	"testing"

	"github.com/ariefcatur/go-shop-backend/internal/auth"
	"github.com/ariefcatur/go-shop-backend/internal/catalog"
	"github.com/ariefcatur/go-shop-backend/internal/events"
	"github.com/ariefcatur/go-shop-backend/internal/httpx"
	"github.com/ariefcatur/go-shop-backend/internal/orders"
	"github.com/go-chi/chi/v5"
	kafkago "github.com/segmentio/kafka-go"
	"github.com/shopspring/decimal"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

type fakePublisher struct {
	mu   sync.Mutex
	msgs [][]byte
}

func (f *fakePublisher) Publish(key, value []byte, headers ...kafkago.Header) {
	f.mu.Lock()
	defer f.mu.Unlock()
	f.msgs = append(f.msgs, value)
}

func (f *fakePublisher) count() int {
	f.mu.Lock()
	defer f.mu.Unlock()
	return len(f.msgs)
}

type env struct {
	mux   *chi.Mux
	store *orders.MemoryStore
	pub   *fakePublisher
}

func testLogger() *slog.Logger {
	return slog.New(slog.NewTextHandler(io.Discard, nil))
}

func newEnv(t *testing.T) *env {
	t.Helper()
	store := orders.NewMemoryStore()
	log := testLogger()
	pub := &fakePublisher{}

	h := &httpx.Handler{
		Auth:     auth.NewService(store, auth.NewMemorySessions(), log),
		Catalog:  catalog.NewService(store, log),
		Orders:   orders.NewService(store, log),
		Producer: pub,
		Service:  "test-api",
		Log:      log,
	}
	mux := httpx.NewRouter()
	h.Register(mux)

	require.NoError(t, auth.EnsureAdmin(context.Background(), store, log))
	return &env{mux: mux, store: store, pub: pub}
}

func (e *env) do(t *testing.T, method, path, token string, body any) *httptest.ResponseRecorder {
	t.Helper()
	var buf bytes.Buffer
	if body != nil {
		require.NoError(t, json.NewEncoder(&buf).Encode(body))
	}
	req := httptest.NewRequest(method, path, &buf)
	if token != "" {
		req.Header.Set("Authorization", "Bearer "+token)
	}
	w := httptest.NewRecorder()
	e.mux.ServeHTTP(w, req)
	return w
}

func (e *env) login(t *testing.T, username, password string) string {
	t.Helper()
	w := e.do(t, http.MethodPost, "/api/auth/login", "", map[string]string{
		"username": username, "password": password,
	})
	require.Equal(t, http.StatusOK, w.Code, w.Body.String())
	var resp httpx.LoginResp
	require.NoError(t, json.Unmarshal(w.Body.Bytes(), &resp))
	require.NotEmpty(t, resp.Token)
	return resp.Token
}

func (e *env) registerUser(t *testing.T, username string) string {
	t.Helper()
	w := e.do(t, http.MethodPost, "/api/auth/register", "", map[string]string{
		"username": username,
		"email":    username + "@example.com",
		"password": "pw",
		"city":     "Warsaw",
	})
	require.Equal(t, http.StatusCreated, w.Code, w.Body.String())
	return e.login(t, username, "pw")
}

func (e *env) addProduct(t *testing.T, adminToken, name, price, vat string, qty int) string {
	t.Helper()
	w := e.do(t, http.MethodPost, "/api/products", adminToken, map[string]any{
		"name": name, "price": price, "vat": vat, "quantity": qty,
	})
	require.Equal(t, http.StatusCreated, w.Code, w.Body.String())
	var resp httpx.ProductResp
	require.NoError(t, json.Unmarshal(w.Body.Bytes(), &resp))
	return resp.ID
}

func TestRegisterValidation(t *testing.T) {
	e := newEnv(t)

	w := e.do(t, http.MethodPost, "/api/auth/register", "", map[string]string{"username": "x"})
	assert.Equal(t, http.StatusBadRequest, w.Code)

	e.registerUser(t, "jan")
	w = e.do(t, http.MethodPost, "/api/auth/register", "", map[string]string{
		"username": "jan2", "email": "jan@example.com", "password": "pw",
	})
	assert.Equal(t, http.StatusConflict, w.Code)
}

func TestLoginFailure(t *testing.T) {
	e := newEnv(t)
	w := e.do(t, http.MethodPost, "/api/auth/login", "", map[string]string{
		"username": "ghost", "password": "pw",
	})
	assert.Equal(t, http.StatusUnauthorized, w.Code)
}

func TestProductCreationRequiresAdmin(t *testing.T) {
	e := newEnv(t)
	admin := e.login(t, "admin", "admin")
	user := e.registerUser(t, "jan")

	w := e.do(t, http.MethodPost, "/api/products", user, map[string]any{
		"name": "Widget", "price": "10.00", "vat": "23", "quantity": 5,
	})
	assert.Equal(t, http.StatusForbidden, w.Code)

	w = e.do(t, http.MethodPost, "/api/products", admin, map[string]any{
		"name": "Widget", "price": "10.00", "vat": "23", "quantity": 5,
	})
	require.Equal(t, http.StatusCreated, w.Code, w.Body.String())
	var resp httpx.ProductResp
	require.NoError(t, json.Unmarshal(w.Body.Bytes(), &resp))
	assert.True(t, resp.PriceGross.Equal(decimal.RequireFromString("12.30")))

	// duplicate name
	w = e.do(t, http.MethodPost, "/api/products", admin, map[string]any{
		"name": "Widget", "price": "3.00", "vat": "8", "quantity": 1,
	})
	assert.Equal(t, http.StatusConflict, w.Code)

	// listing is public
	w = e.do(t, http.MethodGet, "/api/products", "", nil)
	require.Equal(t, http.StatusOK, w.Code)
	var list []httpx.ProductResp
	require.NoError(t, json.Unmarshal(w.Body.Bytes(), &list))
	assert.Len(t, list, 1)
}

func TestPlaceOrderAndFetchDetails(t *testing.T) {
	e := newEnv(t)
	admin := e.login(t, "admin", "admin")
	productID := e.addProduct(t, admin, "P1", "10.00", "23", 5)
	user := e.registerUser(t, "jan")

	w := e.do(t, http.MethodPost, "/api/orders/place-order", user, map[string]any{
		"items": []map[string]any{{"product_id": productID, "qty": 3}},
	})
	require.Equal(t, http.StatusCreated, w.Code, w.Body.String())
	var placed httpx.PlaceOrderResp
	require.NoError(t, json.Unmarshal(w.Body.Bytes(), &placed))
	assert.True(t, placed.TotalNet.Equal(decimal.RequireFromString("30.00")))
	assert.True(t, placed.TotalGross.Equal(decimal.RequireFromString("36.90")))
	assert.Equal(t, []string{"P1 x3"}, placed.Summaries)

	// one event published for the placement
	require.Equal(t, 1, e.pub.count())
	var ev events.Envelope
	require.NoError(t, json.Unmarshal(e.pub.msgs[0], &ev))
	assert.Equal(t, events.EventOrderPlaced, ev.EventType)

	// owner reads it back
	w = e.do(t, http.MethodGet, "/api/orders/get/"+placed.OrderID, user, nil)
	require.Equal(t, http.StatusOK, w.Code, w.Body.String())
	var details httpx.OrderDetailsResp
	require.NoError(t, json.Unmarshal(w.Body.Bytes(), &details))
	assert.Equal(t, placed.OrderID, details.OrderID)
	assert.Equal(t, "jan", details.Customer.Username)
	require.Len(t, details.Items, 1)
	assert.Equal(t, productID, details.Items[0].ProductID)
	assert.Equal(t, "P1", details.Items[0].ProductName)
	assert.Equal(t, 3, details.Items[0].Quantity)
	assert.True(t, details.Items[0].NetPrice.Equal(decimal.RequireFromString("30.00")))
	assert.True(t, details.Items[0].GrossPrice.Equal(decimal.RequireFromString("36.90")))

	// a different user may not read it, an admin may
	other := e.registerUser(t, "ola")
	w = e.do(t, http.MethodGet, "/api/orders/get/"+placed.OrderID, other, nil)
	assert.Equal(t, http.StatusForbidden, w.Code)
	w = e.do(t, http.MethodGet, "/api/orders/get/"+placed.OrderID, admin, nil)
	assert.Equal(t, http.StatusOK, w.Code)
}

func TestPlaceOrderFailureModes(t *testing.T) {
	e := newEnv(t)
	admin := e.login(t, "admin", "admin")
	productID := e.addProduct(t, admin, "Scarce", "5.00", "23", 2)
	user := e.registerUser(t, "jan")

	// no token
	w := e.do(t, http.MethodPost, "/api/orders/place-order", "", map[string]any{
		"items": []map[string]any{{"product_id": productID, "qty": 1}},
	})
	assert.Equal(t, http.StatusUnauthorized, w.Code)

	// empty items
	w = e.do(t, http.MethodPost, "/api/orders/place-order", user, map[string]any{
		"items": []map[string]any{},
	})
	assert.Equal(t, http.StatusBadRequest, w.Code)

	// non-positive quantity
	w = e.do(t, http.MethodPost, "/api/orders/place-order", user, map[string]any{
		"items": []map[string]any{{"product_id": productID, "qty": 0}},
	})
	assert.Equal(t, http.StatusBadRequest, w.Code)

	// unknown product
	w = e.do(t, http.MethodPost, "/api/orders/place-order", user, map[string]any{
		"items": []map[string]any{{"product_id": "missing", "qty": 1}},
	})
	assert.Equal(t, http.StatusNotFound, w.Code)

	// insufficient stock names the product
	w = e.do(t, http.MethodPost, "/api/orders/place-order", user, map[string]any{
		"items": []map[string]any{{"product_id": productID, "qty": 3}},
	})
	assert.Equal(t, http.StatusConflict, w.Code)
	assert.Contains(t, w.Body.String(), "Scarce")

	// nothing was published for the failures
	assert.Equal(t, 0, e.pub.count())

	// unknown order id
	w = e.do(t, http.MethodGet, "/api/orders/get/nope", user, nil)
	assert.Equal(t, http.StatusNotFound, w.Code)
}

func TestLogout(t *testing.T) {
	e := newEnv(t)
	user := e.registerUser(t, "jan")

	w := e.do(t, http.MethodPost, "/api/auth/logout", user, nil)
	assert.Equal(t, http.StatusNoContent, w.Code)

	// token no longer valid
	w = e.do(t, http.MethodPost, "/api/orders/place-order", user, map[string]any{
		"items": []map[string]any{{"product_id": "x", "qty": 1}},
	})
	assert.Equal(t, http.StatusUnauthorized, w.Code)
}
